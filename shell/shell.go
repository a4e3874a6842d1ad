package shell

import "nexus/vga"

// Prompt is printed whenever the shell is ready for a new line.
const Prompt = "nexus> "

// Output is the terminal the shell talks to.
type Output interface {
	PutChar(c byte)
	WriteString(s string)
	SetAttribute(attr vga.Attr)
	Clear()
}

// Handler executes a submitted line and reports whether the prompt should
// be printed afterwards.
type Handler interface {
	Execute(line string) bool
}

// Shell does the line editing: it collects characters into the line
// buffer, echoes them, and hands the line to its handler on enter. It is
// driven from the keyboard interrupt and never blocks.
type Shell struct {
	term    Output
	handler Handler
	buf     LineBuffer
}

// New returns a shell echoing to term and executing lines with handler.
func New(term Output, handler Handler) *Shell {
	return &Shell{term: term, handler: handler}
}

// Start empties the line buffer and prints the prompt.
func (s *Shell) Start() {
	s.buf.Reset()
	s.prompt()
}

// Input feeds one decoded character.
func (s *Shell) Input(c byte) {
	switch {
	case c == '\n':
		s.term.PutChar('\n')
		line := s.buf.String()
		s.buf.Reset()
		if s.handler.Execute(line) {
			s.prompt()
		}
	case c == '\b':
		if s.buf.Backspace() {
			s.term.PutChar('\b')
		}
	case c < ' ' || c > '~':
		// not printable
	default:
		// a full buffer drops the key
		if s.buf.Append(c) {
			s.term.PutChar(c)
		}
	}
}

// Line returns the line typed so far.
func (s *Shell) Line() string {
	return s.buf.String()
}

func (s *Shell) prompt() {
	s.term.SetAttribute(TextAttr)
	s.term.WriteString(Prompt)
}
