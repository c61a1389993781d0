// Package vcs detects which version-control system manages a directory and
// extracts lightweight status metadata from it for prompt display.
//
// The package deliberately avoids full VCS client libraries. Each backend
// mixes direct metadata-file parsing (cheap) with selective shell-outs
// (expensive) and only computes the fields the caller's format string
// actually references.
//
// # Architecture
//
//   - Backend: per-VCS field extractor, identified by a marker path
//   - Registry: ordered set of backends; registration order is probing order
//   - Locate: upward directory walk testing each backend's marker
//   - Fields / Render: the extracted record and the token formatter
//   - Prompter: orchestrates locate -> extract -> render
//
// # Usage
//
//	p := vcs.NewPrompter(vcs.DefaultRegistry())
//	out, err := p.Prompt(ctx, ".", vcs.Options{Format: "%s:%b", Unknown: "(unknown)"})
//	if errors.Is(err, vcs.ErrNotInVCS) {
//	    // not inside any repository
//	}
//
// # Implementations
//
// internal/vcs/bzr, cvs, darcs, fossil, git, hg, svn.
package vcs

import (
	"context"
	"time"
)

// Marker glyphs substituted for the status tokens when the underlying
// probe succeeds and reports a dirty condition. A clean condition renders
// as the empty string; a failed probe leaves the placeholder.
const (
	GlyphModified  = "+"
	GlyphUntracked = "?"
	GlyphStaged    = "*"
)

// Backend is a single VCS field extractor.
//
// Extract receives the resolved repository root and the set of requested
// fields, and returns a best-effort record. It must never mutate the
// repository and must not compute fields absent from req.Want: several
// fields cost a subprocess spawn, and this code runs on every shell prompt.
type Backend interface {
	// Name returns the short backend identifier ("git", "hg", ...).
	// It is also the value substituted for the %s and %n tokens.
	Name() string

	// Marker returns the path, relative to a candidate directory, whose
	// existence signals that this backend manages the directory
	// (".git", "_darcs", "CVS", ...).
	Marker() string

	// Extract produces the field record for a directory known to carry
	// this backend's marker. Failures are absorbed: fields that could
	// not be determined stay at req.Unknown.
	Extract(ctx context.Context, req Request) Fields
}

// Request carries the per-invocation extraction parameters.
type Request struct {
	// Dir is the resolved repository root (the directory whose marker
	// matched), always absolute.
	Dir string

	// Want is the set of fields referenced by the effective format
	// string. Extractors consult it before doing any work.
	Want FieldSet

	// Unknown is the placeholder for fields that cannot be determined.
	Unknown string

	// Timeout bounds every subprocess an extractor spawns. Zero means
	// DefaultTimeout.
	Timeout time.Duration
}

// Fields is the ephemeral record produced by one extraction. String-typed
// throughout: the status flags hold a glyph, the empty string (probe
// succeeded, condition absent), or the placeholder (probe failed).
type Fields struct {
	// Name is the backend short name.
	Name string

	// Hash is the current revision hash, truncated to 7 characters.
	Hash string

	// Revision is the VCS-native revision number, where one exists.
	Revision string

	// Branch is the current branch name.
	Branch string

	// Modified is GlyphModified when local modifications exist.
	Modified string

	// Untracked is GlyphUntracked when untracked files exist.
	Untracked string

	// Staged is GlyphStaged when staged changes exist (git only).
	Staged string
}

// NewFields returns a record with every field preset to the unknown
// placeholder. Extractors overwrite only what they can determine.
func NewFields(name, unknown string) Fields {
	return Fields{
		Name:      name,
		Hash:      unknown,
		Revision:  unknown,
		Branch:    unknown,
		Modified:  unknown,
		Untracked: unknown,
		Staged:    unknown,
	}
}

// HashLen is the uniform truncation length for revision hashes.
const HashLen = 7

// ShortHash truncates a hash to HashLen characters.
func ShortHash(hash string) string {
	if len(hash) > HashLen {
		return hash[:HashLen]
	}
	return hash
}
