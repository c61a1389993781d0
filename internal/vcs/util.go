package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds every spawned VCS subprocess. A shell prompt that
// hangs is worse than one with a placeholder in it.
const DefaultTimeout = 5 * time.Second

// ===================
// Command Execution
// ===================

// ExecContext runs a VCS command with a bounded timeout and returns its
// stdout. A nonzero exit is an error with stderr folded in; a deadline hit
// is reported as ErrTimeout.
//
// Example:
//
//	out, err := vcs.ExecContext(ctx, req.Timeout, req.Dir, "hg", "status", "--modified")
func ExecContext(ctx context.Context, timeout time.Duration, dir string, name string, args ...string) ([]byte, error) {
	out, code, err := ExecExitCode(ctx, timeout, dir, name, args...)
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return nil, fmt.Errorf("%s exited with status %d", name, code)
	}
	return out, nil
}

// ExecExitCode runs a VCS command and returns its stdout and exit code,
// treating a nonzero exit as data rather than an error. Some probes are
// exit-code protocols (git diff --quiet, darcs whatsnew). The error is
// non-nil only when the command could not run at all: executable missing,
// spawn failure, or timeout (ErrTimeout).
func ExecExitCode(ctx context.Context, timeout time.Duration, dir string, name string, args ...string) ([]byte, int, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, -1, fmt.Errorf("%w: %s", ErrTimeout, name)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), exitErr.ExitCode(), nil
		}
		if stderr.Len() > 0 {
			return nil, -1, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return nil, -1, err
	}

	return stdout.Bytes(), 0, nil
}

// ===================
// Output Parsing
// ===================

// ParseLines splits command output into non-empty trimmed lines.
func ParseLines(output []byte) []string {
	if len(output) == 0 {
		return nil
	}

	lines := strings.Split(string(output), "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			result = append(result, line)
		}
	}
	return result
}

// TrimOutput trims whitespace and trailing newlines from command output.
func TrimOutput(output []byte) string {
	return strings.TrimSpace(string(output))
}

// ===================
// Metadata Files
// ===================

// ReadMetaFile reads a repository metadata file and returns its trimmed
// content. A missing, unreadable, or empty file reports ok=false; callers
// leave the affected field at the placeholder and move on.
func ReadMetaFile(path string) (string, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	s := strings.TrimSpace(string(content))
	if s == "" {
		return "", false
	}
	return s, true
}

// FirstLine returns the first line of s.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimRight(s[:i], "\r")
	}
	return s
}
