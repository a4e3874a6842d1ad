package teletype

import (
	"github.com/mattn/go-tty"
	"github.com/pkg/errors"
)

// Open puts the controlling terminal, or device if it is not empty, in raw
// mode and returns a teletype on it. close restores the terminal. Open
// panics if the terminal refuses raw mode.
func Open(device string) (t *Teletype, close func() error, err error) {
	var term *tty.TTY
	if device == "" {
		term, err = tty.Open()
	} else {
		term, err = tty.OpenDevice(device)
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "can't open terminal")
	}
	restore := term.MustRaw()

	out := term.Output()
	out.WriteString("\x1b[2J")
	close = func() error {
		out.WriteString("\x1b[0m\n")
		if err := restore(); err != nil {
			term.Close()
			return errors.Wrap(err, "can't restore terminal")
		}
		return term.Close()
	}
	return New(term, out), close, nil
}
