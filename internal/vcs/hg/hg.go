// Package hg provides the Mercurial field extractor.
//
// Branch, hash, and revision come from metadata files under .hg; only the
// status flags spawn the hg binary.
package hg

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/vcutil/vcprompt/internal/vcs"
)

// Hg implements vcs.Backend for Mercurial repositories.
type Hg struct{}

// New returns the Mercurial backend.
func New() *Hg {
	return &Hg{}
}

// Name returns "hg".
func (h *Hg) Name() string { return "hg" }

// Marker returns ".hg".
func (h *Hg) Marker() string { return ".hg" }

// Extract reads .hg/undo.branch and .hg/cache/branchheads, and probes the
// status flags with hg status.
func (h *Hg) Extract(ctx context.Context, req vcs.Request) vcs.Fields {
	f := vcs.NewFields(h.Name(), req.Unknown)

	if req.Want.Branch {
		if content, ok := vcs.ReadMetaFile(filepath.Join(req.Dir, ".hg", "undo.branch")); ok {
			f.Branch = vcs.FirstLine(content)
		}
	}

	if req.Want.Hash || req.Want.Revision {
		// First line of the branchheads cache is "<tip node> <tip rev>".
		if content, ok := vcs.ReadMetaFile(filepath.Join(req.Dir, ".hg", "cache", "branchheads")); ok {
			parts := strings.Fields(vcs.FirstLine(content))
			if len(parts) == 2 {
				f.Hash = vcs.ShortHash(parts[0])
				f.Revision = parts[1]
			}
		}
	}

	if req.Want.Modified {
		if out, err := vcs.ExecContext(ctx, req.Timeout, req.Dir, "hg", "status", "--modified"); err == nil {
			if vcs.TrimOutput(out) != "" {
				f.Modified = vcs.GlyphModified
			} else {
				f.Modified = ""
			}
		}
	}

	if req.Want.Untracked {
		if out, err := vcs.ExecContext(ctx, req.Timeout, req.Dir, "hg", "status", "--unknown"); err == nil {
			if vcs.TrimOutput(out) != "" {
				f.Untracked = vcs.GlyphUntracked
			} else {
				f.Untracked = ""
			}
		}
	}

	return f
}
