package editor

import (
	"rowedit/buffer"

	"github.com/gdamore/tcell/v2"
)

// prompt is a single-line input in the message bar. While it is open every
// key goes to it.
type prompt struct {
	label string
	input []rune
	// onKey runs after each key with the current input.
	onKey func(input string, key tcell.Key)
	// onDone runs once; ok is false when the prompt was cancelled.
	onDone func(input string, ok bool)
}

func (e *Editor) startPrompt(label string, onKey func(string, tcell.Key), onDone func(string, bool)) {
	e.prompt = &prompt{label: label, onKey: onKey, onDone: onDone}
}

func (e *Editor) handlePromptKey(ev *tcell.EventKey) {
	p := e.prompt
	switch ev.Key() {
	case tcell.KeyEnter:
		e.prompt = nil
		p.onDone(string(p.input), true)
		return
	case tcell.KeyEsc:
		e.prompt = nil
		p.onDone("", false)
		return
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			p.input = append(p.input, ev.Rune())
		}
	}
	if p.onKey != nil {
		p.onKey(string(p.input), ev.Key())
	}
}

// search runs the incremental search prompt. Typing looks for the query at
// or after the cursor, the arrows step to the next or previous match, Esc
// restores the view the search started from.
func (e *Editor) search() {
	saved, savedOffset := e.cursor, e.offset

	onKey := func(query string, key tcell.Key) {
		var (
			pos buffer.Position
			ok  bool
		)
		switch key {
		case tcell.KeyRight, tcell.KeyDown:
			pos, ok = e.doc.Find(query, e.cursor, buffer.Forward)
		case tcell.KeyLeft, tcell.KeyUp:
			pos, ok = e.doc.Find(query, e.cursor, buffer.Backward)
		default:
			pos, ok = e.findFrom(query, e.cursor)
		}
		if ok {
			e.cursor = pos
			e.scroll()
		}
		e.doc.Highlight(query)
	}

	e.startPrompt("Search (ESC to cancel, Arrows to navigate): ", onKey, func(query string, ok bool) {
		if !ok {
			e.cursor, e.offset = saved, savedOffset
		} else {
			e.log.Debug("search", "query", query, "line", e.cursor.Y, "col", e.cursor.X)
		}
		e.doc.Highlight("")
	})
}

// findFrom is a forward search that also accepts a match starting at from.
func (e *Editor) findFrom(query string, from buffer.Position) (buffer.Position, bool) {
	if row, ok := e.doc.Row(from.Y); ok {
		if x, ok := row.Find(query, from.X, buffer.Forward); ok {
			return buffer.Position{X: x, Y: from.Y}, true
		}
	}
	return e.doc.Find(query, from, buffer.Forward)
}
