package editor

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"rowedit/buffer"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

const watchDebounce = 100 * time.Millisecond

// FileChangedEvent carries a change to the open file into the event loop.
type FileChangedEvent struct {
	tcell.EventTime
	Path string
	Op   fsnotify.Op
}

type eventPoster interface {
	PostEvent(ev tcell.Event) error
}

// fileWatcher watches the directory holding one file, so renames and
// editors that replace the file are seen too, and posts a debounced
// FileChangedEvent for that file.
type fileWatcher struct {
	w    *fsnotify.Watcher
	path string
	done chan struct{}
	once sync.Once
}

func newFileWatcher(path string, post eventPoster) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}
	fw := &fileWatcher{w: w, path: abs, done: make(chan struct{})}
	go fw.loop(post)
	return fw, nil
}

func (fw *fileWatcher) loop(post eventPoster) {
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	var pending fsnotify.Op

	for {
		select {
		case <-fw.done:
			timer.Stop()
			return
		case event, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			pending |= event.Op
			timer.Reset(watchDebounce)
		case <-timer.C:
			if pending == 0 {
				continue
			}
			ev := &FileChangedEvent{Path: fw.path, Op: pending}
			ev.SetEventNow()
			_ = post.PostEvent(ev)
			pending = 0
		case _, ok := <-fw.w.Errors:
			if !ok {
				return
			}
		}
	}
}

func (fw *fileWatcher) Close() {
	fw.once.Do(func() {
		close(fw.done)
		fw.w.Close()
	})
}

// watch (re)starts watching the document's file.
func (e *Editor) watch() {
	path := e.doc.Path()
	if path == "" || e.screen == nil {
		return
	}
	if e.watcher != nil {
		if abs, err := filepath.Abs(path); err == nil && abs == e.watcher.path {
			return
		}
		e.watcher.Close()
		e.watcher = nil
	}
	fw, err := newFileWatcher(path, e.screen)
	if err != nil {
		e.log.Warn("watch failed", "path", path, "err", err)
		return
	}
	e.watcher = fw
	e.log.Debug("watching", "path", fw.path)
}

func (e *Editor) handleFileChanged(ev *FileChangedEvent) {
	name := filepath.Base(ev.Path)
	e.log.Debug("file changed", "path", ev.Path, "op", ev.Op.String())

	info, err := os.Stat(ev.Path)
	if err != nil {
		if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
			e.setTemporaryError("Warning: " + name + " was removed externally")
		}
		return
	}
	// Our own save.
	if !e.lastSave.IsZero() && info.ModTime().Sub(e.lastSave) < time.Second {
		return
	}

	if e.doc.IsDirty() {
		e.setTemporaryError("Warning: " + name + " was modified externally (unsaved changes)")
		return
	}

	doc, err := buffer.Open(ev.Path)
	if err != nil {
		e.log.Error("reload failed", "path", ev.Path, "err", err)
		e.setTemporaryError("Could not reload " + name)
		return
	}
	e.doc = doc
	y := min(e.cursor.Y, doc.Len())
	e.cursor = buffer.Position{X: min(e.cursor.X, e.lineLen(y)), Y: y}
	e.scroll()
	e.log.Info("reloaded", "path", ev.Path, "lines", doc.Len())
	e.setTemporaryMessage(name + " (reloaded)")
}
