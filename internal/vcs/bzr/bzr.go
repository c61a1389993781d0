// Package bzr provides the Bazaar field extractor.
package bzr

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/vcutil/vcprompt/internal/vcs"
)

// Bzr implements vcs.Backend for Bazaar repositories.
type Bzr struct{}

// New returns the Bazaar backend.
func New() *Bzr {
	return &Bzr{}
}

// Name returns "bzr".
func (b *Bzr) Name() string { return "bzr" }

// Marker returns ".bzr".
func (b *Bzr) Marker() string { return ".bzr" }

// Extract parses .bzr/branch/last-revision for revision and hash, uses the
// directory basename as the branch, and scans one bzr status pass for the
// status flags.
func (b *Bzr) Extract(ctx context.Context, req vcs.Request) vcs.Fields {
	f := vcs.NewFields(b.Name(), req.Unknown)

	if req.Want.Branch {
		f.Branch = filepath.Base(req.Dir)
	}

	if req.Want.Hash || req.Want.Revision {
		// last-revision is "<revno> <revid>" where revid looks like
		// user@host-20090215221519-abcdef0123456789, or "0 null:" in
		// an empty branch.
		if content, ok := vcs.ReadMetaFile(filepath.Join(req.Dir, ".bzr", "branch", "last-revision")); ok {
			parts := strings.Fields(vcs.FirstLine(content))
			if len(parts) >= 2 {
				f.Revision = parts[0]
				if revid := parts[1]; revid != "null:" {
					seg := revid
					if i := strings.LastIndex(revid, "-"); i >= 0 {
						seg = revid[i+1:]
					}
					f.Hash = vcs.ShortHash(seg)
				}
			}
		}
	}

	if req.Want.Modified || req.Want.Untracked {
		if out, err := vcs.ExecContext(ctx, req.Timeout, req.Dir, "bzr", "status", "--short"); err == nil {
			f.Modified = ""
			f.Untracked = ""
			for _, line := range vcs.ParseLines(out) {
				switch line[0] {
				case 'M':
					f.Modified = vcs.GlyphModified
				case '?':
					f.Untracked = vcs.GlyphUntracked
				}
			}
		}
	}

	return f
}
