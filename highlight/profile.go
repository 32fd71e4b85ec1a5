package highlight

import (
	"slices"
	"strings"
)

// Options toggles the lexical categories the scanner looks for.
type Options struct {
	Numbers    bool
	Strings    bool
	Characters bool
	Comments   bool
}

// Profile is the immutable highlighting configuration for a file type.
// The zero value is the no-op profile.
type Profile struct {
	name      string
	opts      Options
	primary   []string
	secondary []string
}

const defaultProfileName = "No filetype"

var rustPrimary = []string{
	"as", "break", "const", "continue", "crate", "else", "enum", "extern",
	"false", "fn", "for", "if", "impl", "in", "let", "loop", "match", "mod",
	"move", "mut", "pub", "ref", "return", "self", "Self", "static", "struct",
	"super", "trait", "true", "type", "unsafe", "use", "where", "while",
	"dyn", "abstract", "become", "box", "do", "final", "macro", "override",
	"priv", "typeof", "unsized", "virtual", "yield", "async", "await", "try",
}

var rustSecondary = []string{
	"bool", "char", "i8", "i16", "i32", "i64", "i128", "isize",
	"u8", "u16", "u32", "u64", "u128", "usize", "f32", "f64", "str",
}

// DefaultProfile returns the profile used when no file type matches.
func DefaultProfile() Profile {
	return Profile{name: defaultProfileName}
}

// NewProfile builds a profile. The keyword slices are copied.
func NewProfile(name string, opts Options, primary, secondary []string) Profile {
	return Profile{
		name:      name,
		opts:      opts,
		primary:   slices.Clone(primary),
		secondary: slices.Clone(secondary),
	}
}

// ProfileFor selects a profile from a file name's extension.
func ProfileFor(filename string) Profile {
	if strings.HasSuffix(filename, ".rs") {
		return Profile{
			name:      "Rust",
			opts:      Options{Numbers: true, Strings: true, Characters: true, Comments: true},
			primary:   rustPrimary,
			secondary: rustSecondary,
		}
	}
	return DefaultProfile()
}

func (p Profile) Name() string {
	if p.name == "" {
		return defaultProfileName
	}
	return p.name
}

func (p Profile) Options() Options { return p.opts }

func (p Profile) PrimaryKeywords() []string { return slices.Clone(p.primary) }

func (p Profile) SecondaryKeywords() []string { return slices.Clone(p.secondary) }

// HasKeywords reports whether either keyword list is non-empty.
func (p Profile) HasKeywords() bool {
	return len(p.primary) > 0 || len(p.secondary) > 0
}
