package console

import (
	"io"
	"sync"

	"github.com/pkg/errors"
)

// Simple writes status lines to a plain stream.
type Simple struct {
	mu          sync.Mutex
	w           io.Writer
	currentLine int // number of lines written so far
}

// NewSimple returns a console writing to w.
func NewSimple(w io.Writer) *Simple {
	return &Simple{w: w}
}

// WriteConsole displays a string on the console
func (c *Simple) WriteConsole(msg string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range lines(msg) {
		if _, err := io.WriteString(c.w, line); err != nil {
			return errors.Wrap(err, "console")
		}
		c.currentLine++
	}
	return nil
}

// Lines returns the number of lines written.
func (c *Simple) Lines() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLine
}
