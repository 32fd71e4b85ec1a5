package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"rowedit/buffer"
	"rowedit/clipboardx"
	"rowedit/config"
	"rowedit/highlight"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"
)

const Version = "0.1.0"

type Editor struct {
	screen tcell.Screen
	cfg    *config.Config
	theme  *config.ColorScheme
	syntax *highlight.Theme
	color  bool
	log    *slog.Logger
	clip   *clipboardx.Clipboard

	doc     *buffer.Document
	newPath string
	cursor  buffer.Position
	// offset.X is in screen columns, offset.Y in lines.
	offset buffer.Position

	quit      bool
	quitTimes int

	prompt *prompt

	watcher  *fileWatcher
	lastSave time.Time

	// Temporary status messages
	statusMessage        string
	statusMessageTime    time.Time
	statusMessageIsError bool

	now func() time.Time
}

type Option func(*Editor)

func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) { e.log = l }
}

func WithClipboard(c *clipboardx.Clipboard) Option {
	return func(e *Editor) { e.clip = c }
}

// WithScreen makes Run use s instead of the real terminal.
func WithScreen(s tcell.Screen) Option {
	return func(e *Editor) { e.screen = s }
}

func New(cfg *config.Config, opts ...Option) *Editor {
	theme := cfg.GetTheme()
	e := &Editor{
		cfg:       cfg,
		theme:     theme,
		syntax:    highlight.NewTheme(theme.Syntax),
		color:     highlight.ProfileByName(cfg.ColorProfile) != termenv.Ascii,
		log:       slog.New(slog.DiscardHandler),
		doc:       buffer.New(),
		quitTimes: cfg.QuitTimes,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clip == nil {
		e.clip = clipboardx.New()
	}
	return e
}

// Open loads path into the editor. A missing file leaves an empty document
// that is saved to path on the first Ctrl-S.
func (e *Editor) Open(path string) error {
	doc, err := buffer.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			e.doc = buffer.New()
			e.newPath = path
			e.log.Info("new file", "path", path)
			return nil
		}
		e.log.Error("open failed", "path", path, "err", err)
		return err
	}
	e.doc = doc
	e.cursor = buffer.Position{}
	e.offset = buffer.Position{}
	e.log.Info("opened", "path", path, "lines", doc.Len(), "profile", doc.Profile().Name())
	return nil
}

func (e *Editor) Document() *buffer.Document { return e.doc }

func (e *Editor) Cursor() buffer.Position { return e.cursor }

// Run takes over the terminal until the user quits.
func (e *Editor) Run() error {
	if e.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		e.screen = screen
	}
	if err := e.screen.Init(); err != nil {
		return err
	}
	e.screen.SetStyle(tcell.StyleDefault)
	e.screen.Clear()

	e.setTemporaryMessage("HELP: Ctrl-F = find | Ctrl-S = save | Ctrl-Q = quit")
	if e.cfg.WatchFile {
		e.watch()
	}

	for !e.quit {
		e.render()
		ev := e.screen.PollEvent()
		if ev == nil {
			break
		}
		e.handleEvent(ev)
	}

	if e.watcher != nil {
		e.watcher.Close()
	}
	e.screen.Clear()
	e.screen.Fini()
	return nil
}

func (e *Editor) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventKey:
		e.handleKey(ev)
	case *FileChangedEvent:
		e.handleFileChanged(ev)
	}
}

func (e *Editor) fileName() string {
	if p := e.path(); p != "" {
		return filepath.Base(p)
	}
	return "[No Name]"
}

// path is the document's path, or the path given on the command line for a
// file that does not exist yet.
func (e *Editor) path() string {
	if p := e.doc.Path(); p != "" {
		return p
	}
	return e.newPath
}

func (e *Editor) save() {
	path := e.doc.Path()
	if path == "" && e.newPath != "" {
		e.saveAs(e.newPath)
		return
	}
	if path == "" {
		e.startPrompt("Save as: ", nil, func(input string, ok bool) {
			if !ok || input == "" {
				e.setTemporaryMessage("Save aborted.")
				return
			}
			e.saveAs(input)
		})
		return
	}
	e.lastSave = e.now()
	if err := e.doc.Save(); err != nil {
		e.saveFailed(err)
		return
	}
	e.log.Info("saved", "path", path, "lines", e.doc.Len())
	e.setTemporaryMessage("File saved successfully.")
}

func (e *Editor) saveAs(path string) {
	e.lastSave = e.now()
	if err := e.doc.SaveAs(path); err != nil {
		e.saveFailed(err)
		return
	}
	e.newPath = ""
	e.log.Info("saved", "path", path, "lines", e.doc.Len(), "profile", e.doc.Profile().Name())
	e.setTemporaryMessage("File saved successfully.")
	if e.cfg.WatchFile {
		e.watch()
	}
}

func (e *Editor) saveFailed(err error) {
	e.log.Error("save failed", "err", err)
	e.setTemporaryError(fmt.Sprintf("Error writing file: %v", err))
}

// setTemporaryMessage sets a message that clears after the configured timeout
func (e *Editor) setTemporaryMessage(msg string) {
	e.statusMessage = msg
	e.statusMessageTime = e.now()
	e.statusMessageIsError = false
}

func (e *Editor) setTemporaryError(msg string) {
	e.statusMessage = msg
	e.statusMessageTime = e.now()
	e.statusMessageIsError = true
}

// currentMessage returns the status message unless it has expired.
func (e *Editor) currentMessage() (string, bool) {
	if e.statusMessage == "" || e.now().Sub(e.statusMessageTime) > e.cfg.StatusTimeout() {
		return "", false
	}
	return e.statusMessage, e.statusMessageIsError
}
