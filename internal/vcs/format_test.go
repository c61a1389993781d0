package vcs

import (
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		format string
		want   FieldSet
	}{
		{"", FieldSet{}},
		{"no tokens here", FieldSet{}},
		{"%s", FieldSet{Name: true}},
		{"%n", FieldSet{Name: true}},
		{"%b", FieldSet{Branch: true}},
		{"%s:%b", FieldSet{Name: true, Branch: true}},
		{"%s:%b@%h", FieldSet{Name: true, Branch: true, Hash: true}},
		{"%r %m %u %a", FieldSet{Revision: true, Modified: true, Untracked: true, Staged: true}},
		{"%x%y%z", FieldSet{}},
		// %% consumes both characters: the "b" after it is literal text.
		{"%%b", FieldSet{}},
		{"%%%b", FieldSet{Branch: true}},
		// Trailing percent is literal.
		{"%b%", FieldSet{Branch: true}},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.format); got != tt.want {
			t.Errorf("ParseFormat(%q) = %+v, want %+v", tt.format, got, tt.want)
		}
	}
}

func TestFieldSetAny(t *testing.T) {
	if (FieldSet{}).Any() {
		t.Error("empty FieldSet should report Any() == false")
	}
	if !(FieldSet{Untracked: true}).Any() {
		t.Error("FieldSet with a field should report Any() == true")
	}
}

func TestRender(t *testing.T) {
	rec := Fields{
		Name:      "git",
		Hash:      "abcdef1",
		Revision:  "42",
		Branch:    "main",
		Modified:  "+",
		Untracked: "?",
		Staged:    "*",
	}

	tests := []struct {
		format string
		want   string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"%s:%b", "git:main"},
		{"%n:%b", "git:main"},
		{"%s:%b@%h", "git:main@abcdef1"},
		{"%s r%r (%b)", "git r42 (main)"},
		{"%b%m%u%a", "main+?*"},
		// Unrecognized sequences and stray percents pass through.
		{"%x %b %", "%x main %"},
		{"100%%", "100%"},
		{"%%b", "%b"},
	}

	for _, tt := range tests {
		if got := rec.Render(tt.format); got != tt.want {
			t.Errorf("Render(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

// Substituted values must never be rescanned for tokens: a branch named
// "%h" renders literally, not as the hash.
func TestRenderNoSecondPass(t *testing.T) {
	rec := Fields{Name: "git", Branch: "%h", Hash: "abcdef1"}

	if got := rec.Render("%b"); got != "%h" {
		t.Errorf("Render(%%b) with branch %%h = %q, want %q", got, "%h")
	}
}

// Every recognized token must be replaced by exactly one substitution; no
// token sequence survives rendering when all fields are populated.
func TestRenderResolvesAllTokens(t *testing.T) {
	rec := Fields{
		Name:      "hg",
		Hash:      "1234567",
		Revision:  "7",
		Branch:    "default",
		Modified:  "",
		Untracked: "",
		Staged:    "",
	}

	out := rec.Render("%s %n %h %r %b %m %u %a")
	for _, tok := range []string{"%s", "%n", "%h", "%r", "%b", "%m", "%u", "%a"} {
		if strings.Contains(out, tok) {
			t.Errorf("token %s unresolved in %q", tok, out)
		}
	}
}

func TestNewFields(t *testing.T) {
	f := NewFields("svn", "???")

	if f.Name != "svn" {
		t.Errorf("Name = %q, want %q", f.Name, "svn")
	}
	for tokenName, value := range map[string]string{
		"Hash":      f.Hash,
		"Revision":  f.Revision,
		"Branch":    f.Branch,
		"Modified":  f.Modified,
		"Untracked": f.Untracked,
		"Staged":    f.Staged,
	} {
		if value != "???" {
			t.Errorf("%s = %q, want placeholder %q", tokenName, value, "???")
		}
	}
}

func TestShortHash(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abcdef1234567890", "abcdef1"},
		{"abcdef1", "abcdef1"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ShortHash(tt.in); got != tt.want {
			t.Errorf("ShortHash(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
