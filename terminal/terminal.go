package terminal

import "nexus/vga"

// DefaultAttr is the attribute applied by Initialize: white on black.
var DefaultAttr = vga.MakeAttr(vga.White, vga.Black)

const blank = ' '

// Terminal is a text terminal on top of a framebuffer. It understands
// newline, carriage return and backspace, wraps long lines and scrolls
// the contents up once the last row is full.
//
// Terminal is the only writer of its framebuffer.
type Terminal struct {
	fb vga.FrameBuffer

	width  int
	height int

	// cursor position
	row int
	col int

	attr vga.Attr
}

// New returns a terminal writing to fb. Initialize has to be called before
// the first write.
func New(fb vga.FrameBuffer) *Terminal {
	t := &Terminal{fb: fb, attr: DefaultAttr}
	t.width, t.height = fb.Dimensions()
	return t
}

// Initialize resets the attribute to DefaultAttr, homes the cursor and
// blanks the screen.
func (t *Terminal) Initialize() {
	t.attr = DefaultAttr
	t.Clear()
}

// Clear homes the cursor and fills the screen with blanks in the current
// attribute.
func (t *Terminal) Clear() {
	t.row, t.col = 0, 0
	for y := 0; y < t.height; y++ {
		t.clearRow(y)
	}
}

// SetAttribute changes the attribute of subsequent writes.
func (t *Terminal) SetAttribute(attr vga.Attr) {
	t.attr = attr
}

// Attribute returns the current attribute.
func (t *Terminal) Attribute() vga.Attr {
	return t.attr
}

// Position returns the cursor position (row, column).
func (t *Terminal) Position() (int, int) {
	return t.row, t.col
}

// PutChar writes a single character at the cursor.
func (t *Terminal) PutChar(c byte) {
	switch c {
	case '\n':
		t.col = 0
		t.lf()
	case '\r':
		t.col = 0
	case '\b':
		// never crosses a row boundary
		if t.col == 0 {
			return
		}
		t.col--
		t.fb.SetCell(t.col, t.row, vga.Cell{Char: blank, Attr: t.attr})
	default:
		t.fb.SetCell(t.col, t.row, vga.Cell{Char: c, Attr: t.attr})
		t.col++
		if t.col == t.width {
			t.col = 0
			t.lf()
		}
	}
}

// WriteString writes s character by character.
func (t *Terminal) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		t.PutChar(s[i])
	}
}

// Write implements io.Writer.
func (t *Terminal) Write(data []byte) (int, error) {
	for _, b := range data {
		t.PutChar(b)
	}
	return len(data), nil
}

// lf advances the cursor by one row, scrolling if it is on the last one.
func (t *Terminal) lf() {
	if t.row+1 < t.height {
		t.row++
		return
	}
	t.scroll()
}

// scroll moves every row up by one and blanks the last row.
func (t *Terminal) scroll() {
	for y := 1; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			t.fb.SetCell(x, y-1, t.fb.Cell(x, y))
		}
	}
	t.clearRow(t.height - 1)
	t.row = t.height - 1
	t.col = 0
}

func (t *Terminal) clearRow(y int) {
	for x := 0; x < t.width; x++ {
		t.fb.SetCell(x, y, vga.Cell{Char: blank, Attr: t.attr})
	}
}
