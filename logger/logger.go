package logger

import (
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
)

const prefix = "NEXUS "

// New returns the emulator log. An empty path logs to stdout, "-" discards
// everything, anything else is a file opened for appending.
func New(path string) (*log.Logger, error) {
	switch path {
	case "":
		return log.New(os.Stdout, prefix, log.Ldate|log.Ltime|log.Lshortfile), nil
	case "-":
		return log.New(io.Discard, prefix, 0), nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open log %s", path)
	}
	l := log.New(f, prefix, log.Ldate|log.Ltime|log.Lshortfile)
	l.Printf("Initializing nexus.log")
	return l, nil
}
