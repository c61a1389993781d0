package vcs

import "strings"

// Format tokens recognized by ParseFormat and Render. Any other %x
// sequence passes through unchanged.
//
//	%s, %n  backend short name
//	%h      revision hash (7 characters)
//	%r      revision number
//	%b      branch name
//	%m      modified flag
//	%u      untracked flag
//	%a      staged flag (git only)
//	%%      literal percent sign

// FieldSet records which fields a format string references. Computed once
// per invocation and consulted by extractors before any file read or
// subprocess spawn; the lazy-computation contract hangs off this type.
type FieldSet struct {
	Name      bool
	Hash      bool
	Revision  bool
	Branch    bool
	Modified  bool
	Untracked bool
	Staged    bool
}

// ParseFormat scans a format string and reports which fields it references.
func ParseFormat(format string) FieldSet {
	var want FieldSet
	for i := 0; i+1 < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		switch format[i+1] {
		case 's', 'n':
			want.Name = true
		case 'h':
			want.Hash = true
		case 'r':
			want.Revision = true
		case 'b':
			want.Branch = true
		case 'm':
			want.Modified = true
		case 'u':
			want.Untracked = true
		case 'a':
			want.Staged = true
		}
		// Skip the consumed token character so %%b reads as a literal
		// percent followed by "b", not a branch token.
		i++
	}
	return want
}

// Any reports whether the set references at least one field.
func (w FieldSet) Any() bool {
	return w.Name || w.Hash || w.Revision || w.Branch || w.Modified || w.Untracked || w.Staged
}

// Render substitutes the recognized tokens in format with the record's
// values. One linear scan: each token is replaced exactly once and
// substituted values are never rescanned, so a field value containing a
// token sequence cannot trigger a second substitution.
func (f Fields) Render(format string) string {
	var b strings.Builder
	b.Grow(len(format) + 16)
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			b.WriteByte(c)
			continue
		}
		switch format[i+1] {
		case 's', 'n':
			b.WriteString(f.Name)
		case 'h':
			b.WriteString(f.Hash)
		case 'r':
			b.WriteString(f.Revision)
		case 'b':
			b.WriteString(f.Branch)
		case 'm':
			b.WriteString(f.Modified)
		case 'u':
			b.WriteString(f.Untracked)
		case 'a':
			b.WriteString(f.Staged)
		case '%':
			b.WriteByte('%')
		default:
			// Unrecognized sequence passes through verbatim.
			b.WriteByte('%')
			b.WriteByte(format[i+1])
		}
		i++
	}
	return b.String()
}
