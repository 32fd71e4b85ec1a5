package buffer

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"rowedit/highlight"
)

// memStorage is an in-memory Storage for tests.
type memStorage struct {
	files    map[string][]byte
	writeErr error
}

func newMemStorage() *memStorage {
	return &memStorage{files: make(map[string][]byte)}
}

func (m *memStorage) ReadAll(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *memStorage) WriteLines(path string, lines []string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	var out []byte
	for _, l := range lines {
		out = append(out, l...)
		out = append(out, '\n')
	}
	m.files[path] = out
	return nil
}

func docWith(t *testing.T, name string, lines ...string) *Document {
	t.Helper()
	st := newMemStorage()
	var content []byte
	for _, l := range lines {
		content = append(content, l...)
		content = append(content, '\n')
	}
	st.files[name] = content
	d, err := Open(name, WithStorage(st))
	require.NoError(t, err)
	return d
}

func TestOpenSplitsLinesAndHighlights(t *testing.T) {
	st := newMemStorage()
	st.files["main.rs"] = []byte("fn main() {\r\n    let x = 5;\r\n}\n")
	d, err := Open("main.rs", WithStorage(st))
	require.NoError(t, err)

	require.Equal(t, 3, d.Len())
	require.Equal(t, []string{"fn main() {", "    let x = 5;", "}"}, d.Lines())
	require.Equal(t, "Rust", d.Profile().Name())
	require.False(t, d.IsDirty())

	row, ok := d.Row(1)
	require.True(t, ok)
	require.Len(t, row.Highlights(), row.Len())
	require.Equal(t, highlight.PrimaryKeyword, row.Highlights()[4])
	require.Equal(t, highlight.Number, row.Highlights()[12])
}

func TestOpenEdgeCases(t *testing.T) {
	st := newMemStorage()
	st.files["empty"] = nil
	st.files["blank"] = []byte("\n")
	st.files["trailing"] = []byte("a\n\n")
	st.files["noeol"] = []byte("a\nb")

	cases := map[string][]string{
		"empty":    {},
		"blank":    {""},
		"trailing": {"a", ""},
		"noeol":    {"a", "b"},
	}
	for name, want := range cases {
		d, err := Open(name, WithStorage(st))
		require.NoError(t, err, name)
		require.Equal(t, want, d.Lines(), name)
	}
}

func TestOpenMissingFileIsIOError(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	require.Equal(t, "open", ioErr.Op)
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestSaveRoundTripsThroughFileSystem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	d := New()
	pos := Position{}
	for _, ch := range "hello\nworld" {
		d.Insert(pos, ch)
		if ch == '\n' {
			pos = Position{X: 0, Y: pos.Y + 1}
		} else {
			pos.X++
		}
	}
	require.Equal(t, []string{"hello", "world"}, d.Lines())
	require.True(t, d.IsDirty())

	require.NoError(t, d.SaveAs(path))
	require.False(t, d.IsDirty())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello\nworld\n", string(data))

	reopened, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, d.Lines(), reopened.Lines())
}

func TestSaveWithoutPathIsNoop(t *testing.T) {
	d := New()
	d.Insert(Position{}, 'x')
	require.NoError(t, d.Save())
	require.True(t, d.IsDirty())
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	st := newMemStorage()
	st.files["a.txt"] = []byte("a\n")
	d, err := Open("a.txt", WithStorage(st))
	require.NoError(t, err)

	d.Insert(Position{X: 1, Y: 0}, 'b')
	st.writeErr = fs.ErrPermission

	err = d.Save()
	require.Error(t, err)
	require.True(t, errors.Is(err, fs.ErrPermission))
	require.True(t, d.IsDirty())
}

func TestSaveAsSwitchesProfile(t *testing.T) {
	st := newMemStorage()
	d := New(WithStorage(st))
	for i, ch := range "let" {
		d.Insert(Position{X: i, Y: 0}, ch)
	}
	row, _ := d.Row(0)
	require.Equal(t, highlight.None, row.Highlights()[0])

	require.NoError(t, d.SaveAs("lib.rs"))
	require.Equal(t, "Rust", d.Profile().Name())
	row, _ = d.Row(0)
	require.Equal(t, highlight.PrimaryKeyword, row.Highlights()[0])
	require.Equal(t, "let\n", string(st.files["lib.rs"]))
}

func TestInsertIntoEmptyDocumentAppendsLine(t *testing.T) {
	d := New()
	d.Insert(Position{X: 5, Y: 0}, 'a')
	require.Equal(t, []string{"a"}, d.Lines())

	d.Insert(Position{X: 0, Y: 3}, 'b')
	require.Equal(t, []string{"a"}, d.Lines(), "insert past the append point is ignored")
}

func TestInsertRehighlightsTouchedLine(t *testing.T) {
	d := docWith(t, "a.rs", "le")
	d.Insert(Position{X: 2, Y: 0}, 't')
	row, _ := d.Row(0)
	require.Equal(t, "let", row.String())
	require.Len(t, row.Highlights(), 3)
	require.Equal(t, highlight.PrimaryKeyword, row.Highlights()[0])
}

func TestInsertNewline(t *testing.T) {
	d := docWith(t, "a.rs", "let x = 5;")
	d.Insert(Position{X: 5, Y: 0}, '\n')
	require.Equal(t, []string{"let x", " = 5;"}, d.Lines())

	first, _ := d.Row(0)
	second, _ := d.Row(1)
	require.Len(t, first.Highlights(), first.Len())
	require.Len(t, second.Highlights(), second.Len())
	require.Equal(t, highlight.Number, second.Highlights()[3])
}

func TestInsertNewlineAtEndOfLastLine(t *testing.T) {
	d := docWith(t, "notes.txt", "one", "two")
	n := d.Len()
	d.Insert(Position{X: 3, Y: 1}, '\n')
	require.Equal(t, n+1, d.Len())
	require.Equal(t, []string{"one", "two", ""}, d.Lines())

	d.InsertNewline(Position{X: 0, Y: d.Len()})
	require.Equal(t, n+2, d.Len())
}

func TestDeleteAtEndOfLineJoinsNext(t *testing.T) {
	d := docWith(t, "notes.txt", "foo", "bar")
	require.False(t, d.IsDirty())

	d.Delete(Position{X: 3, Y: 0})
	require.Equal(t, []string{"foobar"}, d.Lines())
	require.True(t, d.IsDirty())

	row, _ := d.Row(0)
	require.Len(t, row.Highlights(), 6)
}

func TestDeleteWithinLineAndOutOfRange(t *testing.T) {
	d := docWith(t, "notes.txt", "abc")
	d.Delete(Position{X: 1, Y: 0})
	require.Equal(t, []string{"ac"}, d.Lines())

	d = docWith(t, "notes.txt", "abc")
	d.Delete(Position{X: 3, Y: 0})
	d.Delete(Position{X: 0, Y: 1})
	d.Delete(Position{X: 0, Y: -1})
	require.Equal(t, []string{"abc"}, d.Lines())
	require.False(t, d.IsDirty(), "no-op deletes leave the document clean")
}

func TestFindAcrossLines(t *testing.T) {
	d := docWith(t, "notes.txt", "foo", "boo")

	pos, ok := d.Find("o", Position{X: 0, Y: 0}, Forward)
	require.True(t, ok)
	require.Equal(t, Position{X: 1, Y: 0}, pos)

	pos, ok = d.Find("o", Position{X: 2, Y: 0}, Forward)
	require.True(t, ok)
	require.Equal(t, Position{X: 1, Y: 1}, pos)

	_, ok = d.Find("o", Position{X: 2, Y: 1}, Forward)
	require.False(t, ok, "forward search does not wrap to the top")
}

func TestFindForwardSkipsMatchAtStart(t *testing.T) {
	d := docWith(t, "notes.txt", "foo", "fig")

	pos, ok := d.Find("f", Position{X: 0, Y: 0}, Forward)
	require.True(t, ok)
	require.Equal(t, Position{X: 0, Y: 1}, pos, "the cluster at from is not a forward match")

	_, ok = d.Find("g", Position{X: 2, Y: 1}, Forward)
	require.False(t, ok)
}

func TestFindBackward(t *testing.T) {
	d := docWith(t, "notes.txt", "foo", "boo", "xyz")

	pos, ok := d.Find("o", Position{X: 0, Y: 2}, Backward)
	require.True(t, ok)
	require.Equal(t, Position{X: 2, Y: 1}, pos)

	pos, ok = d.Find("o", Position{X: 1, Y: 1}, Backward)
	require.True(t, ok)
	require.Equal(t, Position{X: 2, Y: 0}, pos)

	_, ok = d.Find("f", Position{X: 0, Y: 0}, Backward)
	require.False(t, ok, "backward search does not wrap to the bottom")
}

func TestFindEmptyQueryAndEmptyDocument(t *testing.T) {
	d := docWith(t, "notes.txt", "abc")
	_, ok := d.Find("", Position{}, Forward)
	require.False(t, ok)
	_, ok = d.Find("", Position{X: 3}, Backward)
	require.False(t, ok)

	_, ok = New().Find("a", Position{}, Forward)
	require.False(t, ok)
}

func TestHighlightSearchTermPersistsAcrossEdits(t *testing.T) {
	d := docWith(t, "notes.txt", "needle")
	d.Highlight("ee")
	row, _ := d.Row(0)
	require.Equal(t, highlight.Match, row.Highlights()[1])

	d.Insert(Position{X: 0, Y: 0}, 'x')
	row, _ = d.Row(0)
	require.Equal(t, highlight.Match, row.Highlights()[2])

	d.Highlight("")
	row, _ = d.Row(0)
	require.Equal(t, highlight.None, row.Highlights()[2])
}
