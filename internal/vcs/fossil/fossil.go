// Package fossil provides the Fossil field extractor.
//
// Fossil stores everything in sqlite: the checkout database (_FOSSIL_ at
// the checkout root) names the repository database, and the repository
// database holds the artifact and tag tables. Branch, hash, and revision
// are answered by direct read-only queries against those databases; only
// the status flags spawn the fossil binary.
package fossil

import (
	"context"
	"database/sql"
	"path/filepath"

	"github.com/vcutil/vcprompt/internal/vcs"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// branchTagID is fossil's fixed tag id for branch names in tagxref.
const branchTagID = 8

// Fossil implements vcs.Backend for Fossil checkouts.
type Fossil struct{}

// New returns the Fossil backend.
func New() *Fossil {
	return &Fossil{}
}

// Name returns "fossil".
func (f *Fossil) Name() string { return "fossil" }

// Marker returns "_FOSSIL_".
func (f *Fossil) Marker() string { return "_FOSSIL_" }

// Extract queries the checkout and repository databases for branch, hash,
// and revision, and probes the status flags with fossil changes/extras.
func (f *Fossil) Extract(ctx context.Context, req vcs.Request) vcs.Fields {
	rec := vcs.NewFields(f.Name(), req.Unknown)

	if req.Want.Hash || req.Want.Revision || req.Want.Branch {
		f.queryMetadata(ctx, req, &rec)
	}

	if req.Want.Modified {
		if out, err := vcs.ExecContext(ctx, req.Timeout, req.Dir, "fossil", "changes"); err == nil {
			if vcs.TrimOutput(out) != "" {
				rec.Modified = vcs.GlyphModified
			} else {
				rec.Modified = ""
			}
		}
	}

	if req.Want.Untracked {
		if out, err := vcs.ExecContext(ctx, req.Timeout, req.Dir, "fossil", "extras"); err == nil {
			if vcs.TrimOutput(out) != "" {
				rec.Untracked = vcs.GlyphUntracked
			} else {
				rec.Untracked = ""
			}
		}
	}

	return rec
}

// queryMetadata resolves the repository database through the checkout
// database and reads the latest artifact uuid plus its branch tag. Any
// failure along the way leaves the affected fields at the placeholder.
func (f *Fossil) queryMetadata(ctx context.Context, req vcs.Request, rec *vcs.Fields) {
	repoPath, ok := repositoryPath(ctx, filepath.Join(req.Dir, f.Marker()))
	if !ok {
		return
	}
	if !filepath.IsAbs(repoPath) {
		repoPath = filepath.Join(req.Dir, repoPath)
	}

	db, err := openReadOnly(repoPath)
	if err != nil {
		return
	}
	defer db.Close()

	var uuid string
	err = db.QueryRowContext(ctx,
		`SELECT uuid FROM blob ORDER BY rid DESC LIMIT 1`).Scan(&uuid)
	if err != nil || uuid == "" {
		return
	}

	short := vcs.ShortHash(uuid)
	rec.Hash = short
	rec.Revision = short

	if req.Want.Branch {
		// Prefix LIKE could match several artifacts in a large
		// repository; the first row wins.
		var branch string
		err = db.QueryRowContext(ctx,
			`SELECT value FROM tagxref
			 WHERE rid = (SELECT rid FROM blob WHERE uuid LIKE ? LIMIT 1)
			   AND tagid = ?
			 LIMIT 1`,
			short+"%", branchTagID).Scan(&branch)
		if err == nil && branch != "" {
			rec.Branch = branch
		}
	}
}

// repositoryPath reads the repository database location from the checkout
// database's vvar table.
func repositoryPath(ctx context.Context, checkoutDB string) (string, bool) {
	db, err := openReadOnly(checkoutDB)
	if err != nil {
		return "", false
	}
	defer db.Close()

	var path string
	err = db.QueryRowContext(ctx,
		`SELECT value FROM vvar WHERE name = 'repository'`).Scan(&path)
	if err != nil || path == "" {
		return "", false
	}
	return path, true
}

// openReadOnly opens a sqlite database without taking any locks the
// repository owner would notice. Extraction never writes.
func openReadOnly(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
