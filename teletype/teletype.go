// Package teletype runs the board on a plain terminal: raw key input and
// a full repaint of the screen whenever it changes.
package teletype

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/pkg/errors"

	"nexus/display"
	"nexus/vga"
)

// control characters handled by the teletype itself
const (
	ctrlC = 0x03
	ctrlD = 0x04
)

// home moves the cursor to the top left corner.
const home = "\x1b[H"

// RuneReader is the raw key input.
type RuneReader interface {
	ReadRune() (rune, error)
}

// Teletype connects a key input and an output stream to the board.
type Teletype struct {
	in  RuneReader
	out io.Writer

	// Refresh is the screen polling period
	Refresh time.Duration

	last []byte
}

// New returns a teletype reading keys from in and painting on out.
func New(in RuneReader, out io.Writer) *Teletype {
	return &Teletype{in: in, out: out, Refresh: 50 * time.Millisecond}
}

// Run types keys on kb and repaints fb until ctx is done, the input ends
// or Ctrl-C or Ctrl-D is read, which calls stop.
func (t *Teletype) Run(ctx context.Context, kb display.Keyboard, fb vga.FrameBuffer, stop func()) error {
	readErr := make(chan error, 1)
	go func() {
		readErr <- t.readKeys(kb, stop)
	}()

	ticker := time.NewTicker(t.Refresh)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return t.Paint(fb)
		case err := <-readErr:
			stop()
			if perr := t.Paint(fb); perr != nil {
				return perr
			}
			if err == io.EOF {
				return nil
			}
			return err
		case <-ticker.C:
			if err := t.Paint(fb); err != nil {
				return err
			}
		}
	}
}

func (t *Teletype) readKeys(kb display.Keyboard, stop func()) error {
	for {
		r, err := t.in.ReadRune()
		if err != nil {
			if err == io.EOF {
				return err
			}
			return errors.Wrap(err, "teletype input")
		}
		switch r {
		case ctrlC, ctrlD:
			stop()
			return io.EOF
		}
		if c := display.Key(r); c != 0 {
			kb.TypeChar(c)
		}
	}
}

// Paint writes the screen if it changed since the last call.
func (t *Teletype) Paint(fb vga.FrameBuffer) error {
	var buf bytes.Buffer
	if err := display.WriteANSI(&buf, fb); err != nil {
		return err
	}
	if bytes.Equal(buf.Bytes(), t.last) {
		return nil
	}
	t.last = buf.Bytes()
	if _, err := io.WriteString(t.out, home); err != nil {
		return errors.Wrap(err, "teletype output")
	}
	_, err := t.out.Write(t.last)
	return errors.Wrap(err, "teletype output")
}
