package vcs

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Defaults for the prompt rendering parameters.
const (
	DefaultFormat  = "%s:%b"
	DefaultUnknown = "(unknown)"
)

// Prompter drives the locate -> extract -> render flow.
type Prompter struct {
	reg     *Registry
	timeout time.Duration
	logger  *log.Logger
}

// PrompterOption configures a Prompter.
type PrompterOption func(*Prompter)

// WithTimeout sets the per-subprocess timeout passed to extractors.
func WithTimeout(d time.Duration) PrompterOption {
	return func(p *Prompter) {
		p.timeout = d
	}
}

// WithLogger sets a debug logger. A nil logger keeps the Prompter silent,
// which is the default; anything written here goes to stderr so it never
// pollutes the rendered prompt on stdout.
func WithLogger(l *log.Logger) PrompterOption {
	return func(p *Prompter) {
		p.logger = l
	}
}

// NewPrompter returns a Prompter probing the given registry's backends.
func NewPrompter(reg *Registry, opts ...PrompterOption) *Prompter {
	p := &Prompter{
		reg:     reg,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Options carries the per-invocation rendering parameters.
type Options struct {
	// Format is the global template string. Empty means DefaultFormat.
	Format string

	// Unknown is the placeholder for undeterminable fields. Empty means
	// DefaultUnknown.
	Unknown string

	// Overrides maps backend short names to format strings that take
	// precedence over Format when that backend matches.
	Overrides map[string]string
}

// Prompt locates the VCS managing start, extracts the fields referenced by
// the effective format string, and renders the result.
//
// A per-backend override takes precedence over the global format. When no
// backend marker exists anywhere up to the filesystem root, Prompt returns
// ("", ErrNotInVCS). When the matched directory vanished between location
// and extraction the walk restarts from its parent rather than failing.
func (p *Prompter) Prompt(ctx context.Context, start string, opts Options) (string, error) {
	format := opts.Format
	if format == "" {
		format = DefaultFormat
	}
	unknown := opts.Unknown
	if unknown == "" {
		unknown = DefaultUnknown
	}

	current := start
	for {
		backend, root, err := p.reg.Locate(current)
		if err != nil {
			return "", err
		}

		effective := format
		if ov, ok := opts.Overrides[backend.Name()]; ok && ov != "" {
			effective = ov
		}

		// The marker probe and the extraction are separate filesystem
		// passes; the repository may be gone in between (tmpdirs,
		// racing cleanups). Resume the walk above it.
		if _, err := os.Stat(root); err != nil {
			parent := filepath.Dir(root)
			if parent == root {
				return "", ErrNotInVCS
			}
			p.logf("directory %s vanished, retrying from %s", root, parent)
			current = parent
			continue
		}

		p.logf("matched backend %s at %s (format %q)", backend.Name(), root, effective)

		rec := backend.Extract(ctx, Request{
			Dir:     root,
			Want:    ParseFormat(effective),
			Unknown: unknown,
			Timeout: p.timeout,
		})
		return rec.Render(effective), nil
	}
}

func (p *Prompter) logf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}
