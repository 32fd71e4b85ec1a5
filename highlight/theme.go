package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

const matchColour = "#268bd2"

var kinds = []Kind{None, Number, Match, String, Character, Comment, PrimaryKeyword, SecondaryKeyword}

// Theme resolves Kinds to colours taken from a chroma style.
type Theme struct {
	Name    string
	entries map[Kind]chroma.StyleEntry
}

// NewTheme loads the named chroma style. Unknown names fall back to chroma's
// default style.
func NewTheme(styleName string) *Theme {
	style := styles.Get(styleName)
	t := &Theme{
		Name:    style.Name,
		entries: make(map[Kind]chroma.StyleEntry, len(kinds)),
	}
	for _, k := range kinds {
		t.entries[k] = style.Get(k.TokenType())
	}
	return t
}

// Color returns the foreground colour of k as "#rrggbb". ok is false when the
// style leaves k uncoloured.
func (t *Theme) Color(k Kind) (string, bool) {
	if k == Match {
		return matchColour, true
	}
	e, ok := t.entries[k]
	if !ok || !e.Colour.IsSet() {
		return "", false
	}
	return e.Colour.String(), true
}

// Style derives the tcell style for k from base.
func (t *Theme) Style(k Kind, base tcell.Style) tcell.Style {
	st := base
	if hex, ok := t.Color(k); ok {
		st = st.Foreground(tcell.GetColor(hex))
	}
	if k == Match {
		return st.Underline(true)
	}
	e := t.entries[k]
	if e.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if e.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	return st
}
