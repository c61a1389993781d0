package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vcutil/vcprompt/internal/backends"
	"github.com/vcutil/vcprompt/internal/vcs"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

// errNoVCS signals the quiet no-repository exit path to main.
var errNoVCS = errors.New("no VCS found")

// registry is the fixed backend set; also drives the per-backend
// format flags.
var registry = backends.Default()

var rootCmd = newRootCmd()

// newRootCmd builds the root command. Tests construct their own instances
// so flag state never leaks between runs.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vcprompt",
		Short:   "Print version control status for your shell prompt",
		Version: version,
		Long: `Print a short version-control status string for the repository
containing a directory, suitable for embedding in a shell prompt.

vcprompt walks up from the given path until it finds a directory managed
by a known VCS, extracts only the fields your format string asks for, and
prints the rendered result. When no repository is found it prints nothing
and exits nonzero, so a prompt segment simply disappears outside of
repositories.

Format tokens:
  %s, %n  backend name (git, hg, ...)
  %b      branch name
  %r      revision number
  %h      revision hash (7 characters)
  %m      "+" if there are local modifications
  %u      "?" if there are untracked files
  %a      "*" if there are staged changes (git only)
  %%      literal percent sign

Environment:
  VCPROMPT_FORMAT             default format string
  VCPROMPT_UNKNOWN            placeholder for undeterminable fields
  VCPROMPT_FORMAT_<BACKEND>   per-backend format override (e.g. VCPROMPT_FORMAT_GIT)

A config file at $XDG_CONFIG_HOME/vcprompt/config.yaml may supply the same
keys (format, unknown, format-git, ...). Flags beat environment variables,
which beat the config file.

Example usage:
  vcprompt                          # "git:main" in a git checkout
  vcprompt -f "%s:%b%m%u"           # append dirty markers
  vcprompt --format-hg "hg:%b@%h"   # different template for Mercurial`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	flags := cmd.Flags()
	flags.StringP("path", "p", ".", "directory to start the repository search from")
	flags.StringP("format", "f", vcs.DefaultFormat, "format string")
	flags.StringP("unknown", "u", vcs.DefaultUnknown, "placeholder for fields that cannot be determined")
	flags.Duration("timeout", vcs.DefaultTimeout, "timeout for each spawned VCS command")
	flags.Bool("backends", false, "list known backends and exit")
	flags.Bool("no-env", false, "ignore all VCPROMPT_* environment variables")
	flags.BoolP("debug", "d", false, "log probing decisions to stderr")

	for _, name := range registry.Names() {
		flags.String("format-"+name, "", fmt.Sprintf("format string used when the %s backend matches", name))
	}

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	if list, _ := flags.GetBool("backends"); list {
		for _, name := range registry.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	noEnv, _ := flags.GetBool("no-env")

	v := viper.New()
	if !noEnv {
		v.SetEnvPrefix("VCPROMPT")
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		v.AutomaticEnv()
	}
	if dir, err := os.UserConfigDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(dir, "vcprompt"))
		// A missing or unreadable config file is not an error.
		_ = v.ReadInConfig()
	}

	for _, key := range []string{"format", "unknown"} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return err
		}
	}

	overrides := make(map[string]string)
	for _, name := range registry.Names() {
		key := "format-" + name
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return err
		}
		if s := v.GetString(key); s != "" {
			overrides[name] = s
		}
	}

	path, _ := flags.GetString("path")
	timeout, _ := flags.GetDuration("timeout")
	debug, _ := flags.GetBool("debug")

	popts := []vcs.PrompterOption{vcs.WithTimeout(timeout)}
	if debug {
		popts = append(popts, vcs.WithLogger(log.New(cmd.ErrOrStderr(), "[vcprompt] ", 0)))
	}

	prompter := vcs.NewPrompter(registry, popts...)
	out, err := prompter.Prompt(cmd.Context(), path, vcs.Options{
		Format:    v.GetString("format"),
		Unknown:   v.GetString("unknown"),
		Overrides: overrides,
	})
	if err != nil {
		if errors.Is(err, vcs.ErrNotInVCS) {
			return errNoVCS
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
