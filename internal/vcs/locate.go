package vcs

import (
	"os"
	"path/filepath"
)

// Locate walks from start upward through parent directories, testing each
// registered backend's marker at every level. The first backend whose
// marker exists wins; remaining backends at that level are not probed.
//
// Detection precedence within a level is registration order. The walk
// terminates at the filesystem root with ErrNotInVCS.
//
// Each probe is a single os.Stat, so the cost is O(depth x backends).
func (r *Registry) Locate(start string) (Backend, string, error) {
	current, err := filepath.Abs(start)
	if err != nil {
		return nil, "", err
	}

	for {
		for _, b := range r.backends {
			if _, err := os.Stat(filepath.Join(current, b.Marker())); err == nil {
				return b, current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached filesystem root without finding a marker.
			return nil, "", ErrNotInVCS
		}
		current = parent
	}
}
