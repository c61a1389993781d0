// Package svn provides the Subversion field extractor.
//
// Subversion keeps its working-copy metadata in an opaque sqlite schema
// that changes between client versions, so branch and revision come from
// one svn info invocation instead of file parsing. The invocation only
// happens when %b or %r was actually requested.
package svn

import (
	"context"
	"regexp"
	"strings"

	"github.com/vcutil/vcprompt/internal/vcs"
)

var (
	// urlRe matches the branch-carrying tail of the URL line:
	// .../branches/<name>, .../tags/<name>, or .../trunk.
	urlRe = regexp.MustCompile(`/(?:(?:tags|branches)/([^/\s]+)|(trunk))(?:/|$)`)

	revisionRe = regexp.MustCompile(`^Revision: (\d+)$`)
)

// SVN implements vcs.Backend for Subversion working copies.
type SVN struct{}

// New returns the Subversion backend.
func New() *SVN {
	return &SVN{}
}

// Name returns "svn".
func (s *SVN) Name() string { return "svn" }

// Marker returns ".svn".
func (s *SVN) Marker() string { return ".svn" }

// Extract parses svn info for branch and revision, and one svn status pass
// for the status flags.
func (s *SVN) Extract(ctx context.Context, req vcs.Request) vcs.Fields {
	f := vcs.NewFields(s.Name(), req.Unknown)

	if req.Want.Branch || req.Want.Revision {
		if out, err := vcs.ExecContext(ctx, req.Timeout, req.Dir, "svn", "info", req.Dir); err == nil {
			s.parseInfo(out, req, &f)
		}
	}

	if req.Want.Modified || req.Want.Untracked {
		if out, err := vcs.ExecContext(ctx, req.Timeout, req.Dir, "svn", "status"); err == nil {
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

// parseInfo scans svn info output for the URL and Revision lines. Lines
// that fail to match their expected shape leave the field unset.
func (s *SVN) parseInfo(out []byte, req vcs.Request, f *vcs.Fields) {
	for _, line := range vcs.ParseLines(out) {
		if req.Want.Branch && strings.HasPrefix(line, "URL: ") {
			if m := urlRe.FindStringSubmatch(line); m != nil {
				if m[1] != "" {
					f.Branch = m[1]
				} else {
					f.Branch = m[2]
				}
			}
		}
		if req.Want.Revision {
			if m := revisionRe.FindStringSubmatch(line); m != nil {
				f.Revision = m[1]
			}
		}
	}
}
