// Package darcs provides the Darcs field extractor.
//
// Darcs has no native branch concept; the directory basename stands in.
// The latest patch hash comes from the darcs changes XML output, and the
// status flags from one darcs whatsnew pass.
package darcs

import (
	"context"
	"encoding/xml"
	"path/filepath"
	"strings"

	"github.com/vcutil/vcprompt/internal/vcs"
)

// changelog mirrors the subset of the darcs changes --xml output we read.
type changelog struct {
	XMLName xml.Name `xml:"changelog"`
	Patches []patch  `xml:"patch"`
}

type patch struct {
	Hash string `xml:"hash,attr"`
}

// Darcs implements vcs.Backend for Darcs repositories.
type Darcs struct{}

// New returns the Darcs backend.
func New() *Darcs {
	return &Darcs{}
}

// Name returns "darcs".
func (d *Darcs) Name() string { return "darcs" }

// Marker returns "_darcs".
func (d *Darcs) Marker() string { return "_darcs" }

// Extract uses the directory basename as the branch, the first patch of
// darcs changes --last 1 --xml as the hash, and darcs whatsnew for the
// status flags.
func (d *Darcs) Extract(ctx context.Context, req vcs.Request) vcs.Fields {
	f := vcs.NewFields(d.Name(), req.Unknown)

	if req.Want.Branch {
		f.Branch = filepath.Base(req.Dir)
	}

	if req.Want.Hash || req.Want.Revision {
		if out, err := vcs.ExecContext(ctx, req.Timeout, req.Dir, "darcs", "changes", "--last", "1", "--xml"); err == nil {
			if hash, ok := latestHash(out); ok {
				f.Hash = hash
				f.Revision = hash
			}
		}
	}

	if req.Want.Modified || req.Want.Untracked {
		// whatsnew is an exit-code protocol: 1 means no changes,
		// 0 means there is output to scan.
		out, code, err := vcs.ExecExitCode(ctx, req.Timeout, req.Dir, "darcs", "whatsnew", "-l", "-s")
		switch {
		case err != nil:
			// leave the placeholders
		case code == 1:
			f.Modified = ""
			f.Untracked = ""
		case code == 0:
			f.Modified = ""
			f.Untracked = ""
			for _, line := range vcs.ParseLines(out) {
				switch line[0] {
				case 'M':
					f.Modified = vcs.GlyphModified
				case 'a':
					f.Untracked = vcs.GlyphUntracked
				}
			}
		}
	}

	return f
}

// latestHash extracts the 7-character hash segment from the first patch
// element. Patch hash attributes look like
//
//	20090318093255-f9540-d21d8a4ff9f368a3e2ba4a14a4c8cdc545b85bbc.gz
//
// and the wanted segment is the trailing one. Malformed or empty XML
// reports ok=false.
func latestHash(out []byte) (string, bool) {
	var log changelog
	if err := xml.Unmarshal(out, &log); err != nil {
		return "", false
	}
	if len(log.Patches) == 0 || log.Patches[0].Hash == "" {
		return "", false
	}

	hash := strings.TrimSuffix(log.Patches[0].Hash, ".gz")
	if i := strings.LastIndex(hash, "-"); i >= 0 {
		hash = hash[i+1:]
	}
	if hash == "" {
		return "", false
	}
	return vcs.ShortHash(hash), true
}
