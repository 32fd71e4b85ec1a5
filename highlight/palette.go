package highlight

import "github.com/muesli/termenv"

// Palette produces the markers embedded in rendered line text.
type Palette interface {
	Marker(k Kind) string
	Reset() string
}

// ANSIPalette emits SGR foreground sequences for a Theme, degraded to the
// colour depth of a termenv profile.
type ANSIPalette struct {
	theme   *Theme
	profile termenv.Profile
	cache   map[Kind]string
}

// NewANSIPalette precomputes the marker for every Kind.
func NewANSIPalette(theme *Theme, profile termenv.Profile) *ANSIPalette {
	p := &ANSIPalette{
		theme:   theme,
		profile: profile,
		cache:   make(map[Kind]string, len(kinds)),
	}
	for _, k := range kinds {
		p.cache[k] = p.sequence(k)
	}
	return p
}

func (p *ANSIPalette) sequence(k Kind) string {
	if p.profile == termenv.Ascii {
		return ""
	}
	hex, ok := p.theme.Color(k)
	if !ok {
		return termenv.CSI + "39m"
	}
	seq := p.profile.Color(hex).Sequence(false)
	if seq == "" {
		return termenv.CSI + "39m"
	}
	return termenv.CSI + seq + "m"
}

func (p *ANSIPalette) Marker(k Kind) string {
	if m, ok := p.cache[k]; ok {
		return m
	}
	return p.sequence(k)
}

func (p *ANSIPalette) Reset() string {
	if p.profile == termenv.Ascii {
		return ""
	}
	return termenv.CSI + termenv.ResetSeq + "m"
}

// ProfileByName maps a configured colour depth onto a termenv profile.
func ProfileByName(name string) termenv.Profile {
	switch name {
	case "none", "ascii":
		return termenv.Ascii
	case "16", "ansi":
		return termenv.ANSI
	case "256", "ansi256":
		return termenv.ANSI256
	default:
		return termenv.TrueColor
	}
}

// DefaultPalette is used by renderers that are not given a palette.
var DefaultPalette Palette = NewANSIPalette(NewTheme(DefaultStyle), termenv.TrueColor)
