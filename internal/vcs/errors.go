package vcs

import "errors"

// Sentinel errors returned by the locator and dispatcher. Check with
// errors.Is:
//
//	if errors.Is(err, vcs.ErrNotInVCS) {
//	    // outside any repository: print nothing, exit nonzero
//	}
var (
	// ErrNotInVCS is returned when no backend marker was found anywhere
	// between the start path and the filesystem root.
	ErrNotInVCS = errors.New("not in a VCS repository")

	// ErrTimeout is returned when a spawned VCS subprocess exceeded its
	// deadline. At the field level a timeout is indistinguishable from
	// any other subprocess failure.
	ErrTimeout = errors.New("VCS command timed out")
)
