package editor

import (
	"fmt"

	"rowedit/buffer"
	"rowedit/highlight"
	"rowedit/internal/grapheme"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const tabCells = 2

// cellWidth is the number of screen columns a cluster occupies.
func cellWidth(cluster string) int {
	if cluster == "\t" {
		return tabCells
	}
	return max(runewidth.StringWidth(cluster), 1)
}

// screenCol converts a cluster index on line to a screen column.
func screenCol(line *buffer.Line, x int) int {
	col := 0
	for i, c := range line.Clusters() {
		if i >= x {
			break
		}
		col += cellWidth(c)
	}
	return col
}

// textArea is the size of the document view; the bottom two rows hold the
// status and message bars.
func (e *Editor) textArea() (int, int) {
	if e.screen == nil {
		return 0, 0
	}
	w, h := e.screen.Size()
	return w, max(h-2, 0)
}

func (e *Editor) cursorCol() int {
	if row, ok := e.doc.Row(e.cursor.Y); ok {
		return screenCol(row, e.cursor.X)
	}
	return 0
}

// scroll moves the viewport so the cursor is inside it.
func (e *Editor) scroll() {
	w, h := e.textArea()
	y := e.cursor.Y
	if y < e.offset.Y {
		e.offset.Y = y
	} else if h > 0 && y >= e.offset.Y+h {
		e.offset.Y = y - h + 1
	}

	col := e.cursorCol()
	if col < e.offset.X {
		e.offset.X = col
	} else if w > 0 && col >= e.offset.X+w {
		e.offset.X = col - w + 1
	}
}

func (e *Editor) baseStyle() tcell.Style {
	return tcell.StyleDefault.Background(e.theme.Background).Foreground(e.theme.Foreground)
}

func (e *Editor) kindStyle(k highlight.Kind, base tcell.Style) tcell.Style {
	if e.color {
		return e.syntax.Style(k, base)
	}
	if k == highlight.Match {
		return base.Reverse(true)
	}
	return base
}

func (e *Editor) render() {
	screen := e.screen
	base := e.baseStyle()
	screen.SetStyle(base)
	screen.Clear()

	w, h := e.textArea()
	e.drawRows(w, h, base)
	e.drawStatusBar(w, h)
	e.drawMessageBar(w, h+1, base)

	if e.prompt != nil {
		col := runewidth.StringWidth(e.prompt.label + string(e.prompt.input))
		screen.ShowCursor(min(col, max(w-1, 0)), h+1)
	} else {
		screen.ShowCursor(e.cursorCol()-e.offset.X, e.cursor.Y-e.offset.Y)
	}
	screen.Show()
}

func (e *Editor) drawRows(w, h int, base tcell.Style) {
	tilde := base.Foreground(e.theme.Tilde)
	for r := 0; r < h; r++ {
		y := e.offset.Y + r
		if row, ok := e.doc.Row(y); ok {
			e.drawLine(row, r, w, base)
			continue
		}
		if e.doc.IsEmpty() && r == h/3 {
			e.drawWelcome(r, w, tilde)
			continue
		}
		e.screen.SetContent(0, r, '~', nil, tilde)
	}
}

func (e *Editor) drawWelcome(r, w int, style tcell.Style) {
	msg := fmt.Sprintf("Rowedit editor -- version %s", Version)
	if runewidth.StringWidth(msg) > w {
		msg = runewidth.Truncate(msg, w, "")
	}
	pad := (w - runewidth.StringWidth(msg)) / 2
	e.screen.SetContent(0, r, '~', nil, style)
	e.drawString(max(pad, 1), r, w, msg, style)
}

// drawLine paints one document line, shifted left by the horizontal offset.
func (e *Editor) drawLine(line *buffer.Line, r, w int, base tcell.Style) {
	kinds := line.Highlights()
	col := 0
	for i, c := range line.Clusters() {
		cw := cellWidth(c)
		x := col - e.offset.X
		col += cw
		if x >= w {
			break
		}
		if x < 0 {
			continue
		}

		k := highlight.None
		if i < len(kinds) {
			k = kinds[i]
		}
		style := e.kindStyle(k, base)
		if c == "\t" {
			for j := 0; j < tabCells && x+j < w; j++ {
				e.screen.SetContent(x+j, r, ' ', nil, style)
			}
			continue
		}
		runes := []rune(c)
		e.screen.SetContent(x, r, runes[0], runes[1:], style)
	}
}

func (e *Editor) drawStatusBar(w, r int) {
	style := tcell.StyleDefault.Background(e.theme.StatusBarBg).Foreground(e.theme.StatusBarFg)
	for x := 0; x < w; x++ {
		e.screen.SetContent(x, r, ' ', nil, style)
	}

	name := e.fileName()
	if runewidth.StringWidth(name) > 20 {
		name = runewidth.Truncate(name, 20, "")
	}
	left := fmt.Sprintf("%s - %d lines", name, e.doc.Len())
	if e.doc.IsDirty() {
		left += " (modified)"
	}
	right := fmt.Sprintf("%s | %d/%d", e.doc.Profile().Name(), e.cursor.Y+1, e.doc.Len())

	e.drawString(0, r, w, left, style)
	lw, rw := runewidth.StringWidth(left), runewidth.StringWidth(right)
	if lw+rw < w {
		e.drawString(w-rw, r, w, right, style)
	}
}

func (e *Editor) drawMessageBar(w, r int, base tcell.Style) {
	if e.prompt != nil {
		style := base.Foreground(e.theme.PromptFg)
		e.drawString(0, r, w, e.prompt.label+string(e.prompt.input), style)
		return
	}
	msg, isErr := e.currentMessage()
	if msg == "" {
		return
	}
	style := base.Foreground(e.theme.MessageFg)
	if isErr {
		style = style.Foreground(tcell.ColorRed)
	}
	e.drawString(0, r, w, msg, style)
}

// drawString writes s from column x, stopping at column limit.
func (e *Editor) drawString(x, r, limit int, s string, style tcell.Style) {
	for _, c := range grapheme.Split(s) {
		cw := cellWidth(c)
		if x+cw > limit {
			return
		}
		runes := []rune(c)
		e.screen.SetContent(x, r, runes[0], runes[1:], style)
		x += cw
	}
}
