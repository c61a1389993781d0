// Package cvs provides the CVS field extractor.
//
// CVS keeps no branch or revision metadata that can be read cheaply, and
// a status check requires contacting the server, so every field stays at
// the unknown placeholder. The backend still participates in marker
// probing so a CVS checkout is identified by name.
package cvs

import (
	"context"

	"github.com/vcutil/vcprompt/internal/vcs"
)

// CVS implements vcs.Backend for CVS checkouts.
type CVS struct{}

// New returns the CVS backend.
func New() *CVS {
	return &CVS{}
}

// Name returns "cvs".
func (c *CVS) Name() string { return "cvs" }

// Marker returns "CVS".
func (c *CVS) Marker() string { return "CVS" }

// Extract returns a record with every field at the placeholder.
func (c *CVS) Extract(_ context.Context, req vcs.Request) vcs.Fields {
	return vcs.NewFields(c.Name(), req.Unknown)
}
