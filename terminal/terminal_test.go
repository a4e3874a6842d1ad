package terminal

import (
	"strings"
	"testing"

	"nexus/vga"
)

func newTerm() (*Terminal, *vga.Buffer) {
	fb := vga.NewBuffer(vga.Width, vga.Height)
	term := New(fb)
	term.Initialize()
	return term, fb
}

func TestInitialize(t *testing.T) {
	fb := vga.NewBuffer(vga.Width, vga.Height)
	for y := 0; y < vga.Height; y++ {
		for x := 0; x < vga.Width; x++ {
			fb.SetCell(x, y, vga.Cell{Char: 'X', Attr: 0x42})
		}
	}

	term := New(fb)
	term.SetAttribute(0x1E)
	term.WriteString("abc")
	term.Initialize()

	if row, col := term.Position(); row != 0 || col != 0 {
		t.Errorf("expected cursor at (0, 0); got (%d, %d)", row, col)
	}
	if term.Attribute() != DefaultAttr {
		t.Errorf("expected attribute %#x; got %#x", DefaultAttr, term.Attribute())
	}
	for y := 0; y < vga.Height; y++ {
		for x := 0; x < vga.Width; x++ {
			if c := fb.Cell(x, y); c.Char != ' ' || c.Attr != DefaultAttr {
				t.Fatalf("expected blank cell at (%d, %d); got %+v", x, y, c)
			}
		}
	}
}

func TestClearKeepsAttribute(t *testing.T) {
	term, fb := newTerm()
	attr := vga.MakeAttr(vga.Black, vga.White)
	term.SetAttribute(attr)
	term.WriteString("hello\nworld")
	term.Clear()

	if term.Attribute() != attr {
		t.Errorf("expected attribute %#x after Clear; got %#x", attr, term.Attribute())
	}
	if c := fb.Cell(3, 1); c.Char != ' ' || c.Attr != attr {
		t.Errorf("expected blank cell in attribute %#x; got %+v", attr, c)
	}
	if row, col := term.Position(); row != 0 || col != 0 {
		t.Errorf("expected cursor at (0, 0); got (%d, %d)", row, col)
	}
}

func TestPutChar(t *testing.T) {
	specs := []struct {
		name           string
		input          string
		expRow, expCol int
		expRow0        string
	}{
		{"plain text", "nexus", 0, 5, "nexus"},
		{"newline writes no cell", "ab\n", 1, 0, "ab"},
		{"carriage return", "abc\rX", 0, 1, "Xbc"},
		{"backspace clears the vacated cell", "abc\b", 0, 2, "ab"},
		{"backspace at column 0 is ignored", "\b\bab", 0, 2, "ab"},
		{"backspace does not cross rows", "ab\n\b", 1, 0, "ab"},
	}

	for _, spec := range specs {
		t.Run(spec.name, func(t *testing.T) {
			term, fb := newTerm()
			term.WriteString(spec.input)

			if row, col := term.Position(); row != spec.expRow || col != spec.expCol {
				t.Errorf("expected cursor at (%d, %d); got (%d, %d)", spec.expRow, spec.expCol, row, col)
			}
			if got := strings.TrimRight(vga.Row(fb, 0), " "); got != spec.expRow0 {
				t.Errorf("expected row 0 to be %q; got %q", spec.expRow0, got)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	term, fb := newTerm()

	term.WriteString(strings.Repeat("a", vga.Width))
	if row, col := term.Position(); row != 1 || col != 0 {
		t.Fatalf("expected cursor at (1, 0) after %d chars; got (%d, %d)", vga.Width, row, col)
	}

	term.PutChar('b')
	if row, col := term.Position(); row != 1 || col != 1 {
		t.Errorf("expected cursor at (1, 1); got (%d, %d)", row, col)
	}
	if c := fb.Cell(0, 1); c.Char != 'b' {
		t.Errorf("expected the 81st char at (0, 1); got %q", c.Char)
	}
	if got := vga.Row(fb, 0); got != strings.Repeat("a", vga.Width) {
		t.Errorf("expected row 0 to be full; got %q", got)
	}
}

func TestScroll(t *testing.T) {
	term, fb := newTerm()

	for i := 0; i < vga.Height; i++ {
		term.WriteString(string(rune('A' + i)))
		term.PutChar('\n')
	}

	// 25 lines followed by a newline: row 0 ("A") is gone
	if row, col := term.Position(); row != vga.Height-1 || col != 0 {
		t.Fatalf("expected cursor pinned at (%d, 0); got (%d, %d)", vga.Height-1, row, col)
	}
	for y := 0; y < vga.Height-1; y++ {
		if c := fb.Cell(0, y); c.Char != byte('B'+y) {
			t.Errorf("expected %q on row %d; got %q", 'B'+y, y, c.Char)
		}
	}
	if got := strings.TrimRight(vga.Row(fb, vga.Height-1), " "); got != "" {
		t.Errorf("expected blank bottom row; got %q", got)
	}
}

func TestScrollOnWrap(t *testing.T) {
	term, fb := newTerm()
	for i := 0; i < vga.Height-1; i++ {
		term.PutChar('\n')
	}
	term.WriteString(strings.Repeat("z", vga.Width+1))

	if row, col := term.Position(); row != vga.Height-1 || col != 1 {
		t.Errorf("expected cursor at (%d, 1); got (%d, %d)", vga.Height-1, row, col)
	}
	if got := vga.Row(fb, vga.Height-2); got != strings.Repeat("z", vga.Width) {
		t.Errorf("expected the full row to move up; got %q", got)
	}
}

func TestSetAttributeIsNotRetroactive(t *testing.T) {
	term, fb := newTerm()
	term.PutChar('a')
	term.SetAttribute(vga.MakeAttr(vga.LightGreen, vga.Black))
	term.PutChar('b')

	if c := fb.Cell(0, 0); c.Attr != DefaultAttr {
		t.Errorf("expected first cell to keep %#x; got %#x", DefaultAttr, c.Attr)
	}
	if c := fb.Cell(1, 0); c.Attr != vga.MakeAttr(vga.LightGreen, vga.Black) {
		t.Errorf("expected second cell in the new attribute; got %#x", c.Attr)
	}
}

func TestWriter(t *testing.T) {
	term, fb := newTerm()
	n, err := term.Write([]byte("io\n"))
	if n != 3 || err != nil {
		t.Fatalf("Write() = %d, %v", n, err)
	}
	if got := strings.TrimRight(vga.Row(fb, 0), " "); got != "io" {
		t.Errorf("expected %q; got %q", "io", got)
	}
}
