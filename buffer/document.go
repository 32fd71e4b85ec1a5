package buffer

import (
	"slices"
	"strings"

	"rowedit/highlight"
)

// Document is an ordered list of lines plus the identity it is saved under.
// A document with zero lines is valid; callers draw it as one empty line.
type Document struct {
	lines   []*Line
	path    string
	dirty   bool
	profile highlight.Profile
	storage Storage
	term    string
}

type Option func(*Document)

// WithStorage replaces the file system used by Open and Save.
func WithStorage(s Storage) Option {
	return func(d *Document) { d.storage = s }
}

// New returns an empty, unsaved document.
func New(opts ...Option) *Document {
	d := &Document{
		profile: highlight.DefaultProfile(),
		storage: FileStorage{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open reads path and builds one highlighted Line per text line.
func Open(path string, opts ...Option) (*Document, error) {
	d := New(opts...)
	data, err := d.storage.ReadAll(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	d.path = path
	d.profile = highlight.ProfileFor(path)
	for _, text := range splitLines(string(data)) {
		l := NewLine(text)
		l.Highlight(d.profile, "")
		d.lines = append(d.lines, l)
	}
	return d, nil
}

// splitLines splits on '\n', dropping one trailing '\r' per line. A final
// newline does not start an extra empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	parts := strings.Split(content, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}

// Save writes every line newline-terminated to the document's path. Without
// a path it does nothing.
func (d *Document) Save() error {
	if d.path == "" {
		return nil
	}
	if err := d.storage.WriteLines(d.path, d.Lines()); err != nil {
		return &IOError{Op: "save", Path: d.path, Err: err}
	}
	d.dirty = false
	return nil
}

// SaveAs points the document at path, re-selects the profile for the new
// name and saves.
func (d *Document) SaveAs(path string) error {
	d.path = path
	profile := highlight.ProfileFor(path)
	if profile.Name() != d.profile.Name() {
		d.profile = profile
		d.Highlight(d.term)
	}
	return d.Save()
}

func (d *Document) Path() string { return d.path }

func (d *Document) Profile() highlight.Profile { return d.profile }

func (d *Document) IsDirty() bool { return d.dirty }

func (d *Document) Len() int { return len(d.lines) }

func (d *Document) IsEmpty() bool { return len(d.lines) == 0 }

// Row returns the line at index.
func (d *Document) Row(index int) (*Line, bool) {
	if index < 0 || index >= len(d.lines) {
		return nil, false
	}
	return d.lines[index], true
}

// Lines returns the raw text of every line.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	for i, l := range d.lines {
		out[i] = l.String()
	}
	return out
}

// Insert puts ch at pos. A newline splits the line instead. Positions below
// the append point are ignored.
func (d *Document) Insert(pos Position, ch rune) {
	if pos.Y < 0 || pos.Y > len(d.lines) {
		return
	}
	if ch == '\n' {
		d.InsertNewline(pos)
		return
	}
	d.dirty = true
	if pos.Y == len(d.lines) {
		l := NewLine("")
		l.Insert(0, ch)
		l.Highlight(d.profile, d.term)
		d.lines = append(d.lines, l)
		return
	}
	l := d.lines[pos.Y]
	l.Insert(pos.X, ch)
	l.Highlight(d.profile, d.term)
}

// InsertNewline splits the line at pos, moving the tail to a new line below.
// At the append point it adds an empty line.
func (d *Document) InsertNewline(pos Position) {
	if pos.Y < 0 || pos.Y > len(d.lines) {
		return
	}
	d.dirty = true
	if pos.Y == len(d.lines) {
		l := NewLine("")
		l.Highlight(d.profile, d.term)
		d.lines = append(d.lines, l)
		return
	}
	cur := d.lines[pos.Y]
	tail := cur.Split(pos.X)
	cur.Highlight(d.profile, d.term)
	tail.Highlight(d.profile, d.term)
	d.lines = slices.Insert(d.lines, pos.Y+1, tail)
}

// Delete removes the cluster at pos. At the end of any line but the last it
// joins the next line onto this one.
func (d *Document) Delete(pos Position) {
	if pos.Y < 0 || pos.Y >= len(d.lines) {
		return
	}
	l := d.lines[pos.Y]
	switch {
	case pos.X == l.Len() && pos.Y+1 < len(d.lines):
		l.Append(d.lines[pos.Y+1])
		d.lines = slices.Delete(d.lines, pos.Y+1, pos.Y+2)
	case pos.X >= 0 && pos.X < l.Len():
		l.Delete(pos.X)
	default:
		return
	}
	d.dirty = true
	l.Highlight(d.profile, d.term)
}

// Find searches for query starting at from without wrapping past either end
// of the document. The start is exclusive in both directions: a forward
// search begins at from.X+1, so a match at from itself is never returned, and
// continues at column 0 of each following line; a backward search looks in
// [0, from.X) and continues at the end of each preceding line.
func (d *Document) Find(query string, from Position, dir Direction) (Position, bool) {
	if query == "" || from.Y < 0 || from.Y >= len(d.lines) {
		return Position{}, false
	}

	if dir == Forward {
		x := from.X + 1
		for y := from.Y; y < len(d.lines); y++ {
			if i, ok := d.lines[y].Find(query, x, Forward); ok {
				return Position{X: i, Y: y}, true
			}
			x = 0
		}
		return Position{}, false
	}

	x := from.X
	for y := from.Y; y >= 0; y-- {
		if i, ok := d.lines[y].Find(query, x, Backward); ok {
			return Position{X: i, Y: y}, true
		}
		if y > 0 {
			x = d.lines[y-1].Len()
		}
	}
	return Position{}, false
}

// Highlight re-runs the highlighter on every line with term as the active
// search term. Edits keep using the term until it is cleared with "".
func (d *Document) Highlight(term string) {
	d.term = term
	for _, l := range d.lines {
		l.Highlight(d.profile, term)
	}
}

// SearchTerm returns the term set by the last Highlight call.
func (d *Document) SearchTerm() string { return d.term }
