// Package git provides the Git field extractor.
//
// Branch and hash come straight from the repository metadata files
// (.git/HEAD and the loose ref it points at), so the common prompt formats
// never spawn a process. Only the status flags and the detached-HEAD
// fallback shell out to the git binary.
//
// The extractor handles both regular repositories and worktrees, where
// .git is a file containing a gitdir indirection.
package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/vcutil/vcprompt/internal/vcs"
)

// Git implements vcs.Backend for git repositories.
type Git struct{}

// New returns the git backend.
func New() *Git {
	return &Git{}
}

// Name returns "git".
func (g *Git) Name() string { return "git" }

// Marker returns ".git".
func (g *Git) Marker() string { return ".git" }

// Extract reads branch and hash from the repository metadata and probes
// the status flags with read-only git commands.
func (g *Git) Extract(ctx context.Context, req vcs.Request) vcs.Fields {
	f := vcs.NewFields(g.Name(), req.Unknown)

	// Branch resolution is a prerequisite for hash resolution: the hash
	// lives in a loose ref file keyed by the branch name.
	var (
		branch   string
		symbolic bool
		headID   string
	)
	if req.Want.Branch || req.Want.Hash {
		gitDir := metaDir(req.Dir)
		if head, ok := vcs.ReadMetaFile(filepath.Join(gitDir, "HEAD")); ok {
			line := vcs.FirstLine(head)
			if ref, found := strings.CutPrefix(line, "ref: "); found {
				if name, found := strings.CutPrefix(strings.TrimSpace(ref), "refs/heads/"); found {
					branch = name
					symbolic = true
				}
			} else {
				// Detached HEAD carries the commit id inline.
				headID = line
			}
		}

		if req.Want.Branch {
			switch {
			case symbolic:
				f.Branch = branch
			default:
				if out, err := vcs.ExecContext(ctx, req.Timeout, req.Dir, "git", "describe", "--always"); err == nil {
					if desc := vcs.TrimOutput(out); desc != "" {
						f.Branch = "(" + desc + ")"
					}
				}
			}
		}

		if req.Want.Hash {
			switch {
			case symbolic:
				if sha, ok := vcs.ReadMetaFile(filepath.Join(gitDir, "refs", "heads", branch)); ok {
					f.Hash = vcs.ShortHash(vcs.FirstLine(sha))
				}
			case headID != "":
				f.Hash = vcs.ShortHash(headID)
			}
		}
	}

	if req.Want.Modified {
		// git diff speaks in exit codes: 1 means the worktree differs
		// from the index.
		if _, code, err := vcs.ExecExitCode(ctx, req.Timeout, req.Dir, "git", "diff", "--quiet", "--exit-code"); err == nil {
			switch code {
			case 0:
				f.Modified = ""
			case 1:
				f.Modified = vcs.GlyphModified
			}
		}
	}

	if req.Want.Untracked {
		if out, err := vcs.ExecContext(ctx, req.Timeout, req.Dir, "git", "ls-files", "--other", "--exclude-standard"); err == nil {
			if vcs.TrimOutput(out) != "" {
				f.Untracked = vcs.GlyphUntracked
			} else {
				f.Untracked = ""
			}
		}
	}

	if req.Want.Staged {
		if _, code, err := vcs.ExecExitCode(ctx, req.Timeout, req.Dir, "git", "diff", "--cached", "--quiet", "--exit-code"); err == nil {
			switch code {
			case 0:
				f.Staged = ""
			case 1:
				f.Staged = vcs.GlyphStaged
			}
		}
	}

	return f
}

// metaDir returns the git metadata directory for the repository at dir.
//
// Worktrees have a .git file (not directory) containing
//
//	gitdir: /path/to/main/.git/worktrees/name
//
// which is followed so HEAD and refs resolve against the right place.
func metaDir(dir string) string {
	marker := filepath.Join(dir, ".git")
	info, err := os.Stat(marker)
	if err != nil || info.IsDir() {
		return marker
	}

	content, ok := vcs.ReadMetaFile(marker)
	if !ok {
		return marker
	}
	line := vcs.FirstLine(content)
	gitDir, found := strings.CutPrefix(line, "gitdir: ")
	if !found {
		return marker
	}
	gitDir = strings.TrimSpace(gitDir)
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(dir, gitDir)
	}
	return filepath.Clean(gitDir)
}
