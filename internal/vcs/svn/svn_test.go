package svn

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/vcutil/vcprompt/internal/vcs"
)

func fakeSvn(t *testing.T, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool scripts need a POSIX shell")
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "svn"), []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func workingCopy(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".svn"), 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func request(dir, format string) vcs.Request {
	return vcs.Request{
		Dir:     dir,
		Want:    vcs.ParseFormat(format),
		Unknown: vcs.DefaultUnknown,
	}
}

const trunkInfo = `Path: .
URL: http://svn.example.com/myproject/trunk
Repository Root: http://svn.example.com/myproject
Revision: 42
Node Kind: directory
`

func TestExtractTrunkScenario(t *testing.T) {
	fakeSvn(t, `case "$1" in
info) cat <<'EOF'
`+trunkInfo+`EOF
;;
esac
`)

	dir := workingCopy(t)
	f := New().Extract(context.Background(), request(dir, "%s r%r (%b)"))

	if got := f.Render("%s r%r (%b)"); got != "svn r42 (trunk)" {
		t.Errorf("rendered %q, want %q", got, "svn r42 (trunk)")
	}
}

func TestParseInfoBranchVariants(t *testing.T) {
	tests := []struct {
		url    string
		branch string
	}{
		{"URL: http://svn.example.com/p/trunk", "trunk"},
		{"URL: http://svn.example.com/p/branches/release-1.2", "release-1.2"},
		{"URL: http://svn.example.com/p/tags/v1.0", "v1.0"},
		{"URL: http://svn.example.com/p/branches/feature/sub", "feature"},
	}

	s := New()
	for _, tt := range tests {
		req := vcs.Request{Want: vcs.FieldSet{Branch: true}, Unknown: "(unknown)"}
		f := vcs.NewFields("svn", req.Unknown)
		s.parseInfo([]byte(tt.url+"\n"), req, &f)
		if f.Branch != tt.branch {
			t.Errorf("%q: branch = %q, want %q", tt.url, f.Branch, tt.branch)
		}
	}
}

// A URL with no trunk/branches/tags component fails the regex and leaves
// the placeholder; malformed output is not an error.
func TestParseInfoNoMatch(t *testing.T) {
	req := vcs.Request{Want: vcs.FieldSet{Branch: true, Revision: true}, Unknown: "???"}
	f := vcs.NewFields("svn", req.Unknown)
	New().parseInfo([]byte("URL: http://svn.example.com/bare\nRevision: not-a-number\n"), req, &f)

	if f.Branch != "???" {
		t.Errorf("branch = %q, want placeholder", f.Branch)
	}
	if f.Revision != "???" {
		t.Errorf("revision = %q, want placeholder", f.Revision)
	}
}

func TestExtractStatusFlags(t *testing.T) {
	fakeSvn(t, `case "$1" in
status) printf 'M       foo.c\n?       scratch.txt\n' ;;
esac
`)

	dir := workingCopy(t)
	f := New().Extract(context.Background(), request(dir, "%m%u"))

	if f.Modified != vcs.GlyphModified {
		t.Errorf("modified = %q, want %q", f.Modified, vcs.GlyphModified)
	}
	if f.Untracked != vcs.GlyphUntracked {
		t.Errorf("untracked = %q, want %q", f.Untracked, vcs.GlyphUntracked)
	}
}

// svn info runs only when %b or %r was requested; a status-only format
// must not trigger it.
func TestExtractInfoIsConditional(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "calls.log")
	t.Setenv("FAKE_SVN_LOG", logFile)
	fakeSvn(t, `echo "$1" >> "$FAKE_SVN_LOG"`+"\n")

	dir := workingCopy(t)
	New().Extract(context.Background(), request(dir, "%m"))

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("expected one svn invocation, got none: %v", err)
	}
	if string(content) != "status\n" {
		t.Errorf("svn invocations = %q, want only %q", content, "status\n")
	}
}
