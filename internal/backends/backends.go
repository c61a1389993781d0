// Package backends assembles the default backend registry.
//
// Registration happens here through explicit calls rather than init()
// side effects in the backend packages, so the probing order is spelled
// out in one place and nothing mutates global state on import.
package backends

import (
	"github.com/vcutil/vcprompt/internal/vcs"
	"github.com/vcutil/vcprompt/internal/vcs/bzr"
	"github.com/vcutil/vcprompt/internal/vcs/cvs"
	"github.com/vcutil/vcprompt/internal/vcs/darcs"
	"github.com/vcutil/vcprompt/internal/vcs/fossil"
	"github.com/vcutil/vcprompt/internal/vcs/git"
	"github.com/vcutil/vcprompt/internal/vcs/hg"
	"github.com/vcutil/vcprompt/internal/vcs/svn"
)

// Default returns a registry with every supported backend in the fixed
// probing order. The order is part of the contract: a directory could
// satisfy more than one marker, and the first match wins.
func Default() *vcs.Registry {
	reg := vcs.NewRegistry()
	reg.Register(bzr.New())
	reg.Register(cvs.New())
	reg.Register(darcs.New())
	reg.Register(fossil.New())
	reg.Register(git.New())
	reg.Register(hg.New())
	reg.Register(svn.New())
	return reg
}
