package clipboardx

import (
	"io"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/muesli/termenv"
)

// Clipboard holds the last copied text and mirrors it to the system
// clipboard and, when an output is given, to the terminal via OSC 52.
type Clipboard struct {
	mu     sync.Mutex
	last   string
	system bool
	osc52  *termenv.Output
}

type Option func(*Clipboard)

// WithSystem toggles use of the OS clipboard tools.
func WithSystem(on bool) Option {
	return func(c *Clipboard) { c.system = on }
}

// WithOSC52 writes copies to w as OSC 52 sequences so they reach the local
// clipboard over ssh.
func WithOSC52(w io.Writer) Option {
	return func(c *Clipboard) {
		if w != nil {
			c.osc52 = termenv.NewOutput(w)
		}
	}
}

// New returns a Clipboard. By default it uses the OS clipboard when one of
// its helper tools is installed.
func New(opts ...Option) *Clipboard {
	c := &Clipboard{system: !clipboard.Unsupported}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Copy stores text and reports whether it left the process.
func (c *Clipboard) Copy(text string) bool {
	c.mu.Lock()
	c.last = text
	c.mu.Unlock()

	ok := false
	if c.system {
		if err := clipboard.WriteAll(text); err == nil {
			ok = true
		}
	}
	if c.osc52 != nil && text != "" {
		c.osc52.Copy(text)
		ok = true
	}
	return ok
}

// Paste prefers the system clipboard and falls back to the last copy.
func (c *Clipboard) Paste() string {
	if c.system {
		if text, err := clipboard.ReadAll(); err == nil && text != "" {
			return text
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
