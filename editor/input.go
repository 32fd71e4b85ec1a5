package editor

import (
	"fmt"
	"strings"

	"rowedit/buffer"

	"github.com/gdamore/tcell/v2"
)

func (e *Editor) handleKey(ev *tcell.EventKey) {
	if e.prompt != nil {
		e.handlePromptKey(ev)
		return
	}

	if ev.Key() == tcell.KeyCtrlQ {
		e.handleQuit()
		return
	}
	e.quitTimes = e.cfg.QuitTimes

	switch ev.Key() {
	case tcell.KeyCtrlS:
		e.save()
	case tcell.KeyCtrlF:
		e.search()
	case tcell.KeyCtrlC:
		e.copyLine()
	case tcell.KeyCtrlV:
		e.paste()
	case tcell.KeyEnter:
		e.doc.Insert(e.cursor, '\n')
		e.moveCursor(tcell.KeyRight)
	case tcell.KeyTab:
		e.insertRune('\t')
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if e.cursor.X > 0 || e.cursor.Y > 0 {
			e.moveCursor(tcell.KeyLeft)
			e.doc.Delete(e.cursor)
		}
	case tcell.KeyDelete:
		e.doc.Delete(e.cursor)
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyLeft, tcell.KeyRight,
		tcell.KeyPgUp, tcell.KeyPgDn, tcell.KeyHome, tcell.KeyEnd:
		e.moveCursor(ev.Key())
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			e.insertRune(ev.Rune())
		}
	}
	e.scroll()
}

func (e *Editor) handleQuit() {
	if e.doc.IsDirty() && e.quitTimes > 0 {
		e.setTemporaryError(fmt.Sprintf(
			"WARNING! File has unsaved changes. Press Ctrl-Q %d more times to quit.", e.quitTimes))
		e.quitTimes--
		return
	}
	e.log.Info("quit", "dirty", e.doc.IsDirty())
	e.quit = true
}

func (e *Editor) insertRune(r rune) {
	e.doc.Insert(e.cursor, r)
	e.moveCursor(tcell.KeyRight)
}

// lineLen is the cluster count of line y, 0 past the end.
func (e *Editor) lineLen(y int) int {
	if row, ok := e.doc.Row(y); ok {
		return row.Len()
	}
	return 0
}

// moveCursor moves within the document. The cursor may sit one line past
// the last, where typing starts a new line.
func (e *Editor) moveCursor(key tcell.Key) {
	_, h := e.textArea()
	x, y := e.cursor.X, e.cursor.Y
	height := e.doc.Len()
	width := e.lineLen(y)

	switch key {
	case tcell.KeyUp:
		if y > 0 {
			y--
		}
	case tcell.KeyDown:
		if y < height {
			y++
		}
	case tcell.KeyLeft:
		if x > 0 {
			x--
		} else if y > 0 {
			y--
			x = e.lineLen(y)
		}
	case tcell.KeyRight:
		if x < width {
			x++
		} else if y < height {
			y++
			x = 0
		}
	case tcell.KeyPgUp:
		y = max(y-h, 0)
	case tcell.KeyPgDn:
		y = min(y+h, height)
	case tcell.KeyHome:
		x = 0
	case tcell.KeyEnd:
		x = width
	}

	e.cursor = buffer.Position{X: min(x, e.lineLen(y)), Y: y}
}

func (e *Editor) copyLine() {
	row, ok := e.doc.Row(e.cursor.Y)
	if !ok {
		e.setTemporaryMessage("Nothing to copy.")
		return
	}
	e.clip.Copy(row.String())
	e.setTemporaryMessage(fmt.Sprintf("Copied line %d.", e.cursor.Y+1))
}

func (e *Editor) paste() {
	text := strings.ReplaceAll(e.clip.Paste(), "\r\n", "\n")
	if text == "" {
		return
	}
	for _, r := range text {
		if r == '\n' {
			e.doc.Insert(e.cursor, '\n')
			e.cursor = buffer.Position{X: 0, Y: e.cursor.Y + 1}
			continue
		}
		e.doc.Insert(e.cursor, r)
		e.cursor.X++
	}
	e.cursor.X = min(e.cursor.X, e.lineLen(e.cursor.Y))
}
