// Package display shows the text framebuffer of the board on the host
// terminal and turns host key presses back into characters for the board.
package display

import (
	"github.com/mattn/go-runewidth"

	"nexus/vga"
)

// Keyboard accepts characters typed on the host.
type Keyboard interface {
	TypeChar(c byte) bool
}

// glyph returns the host rune shown for a screen character. Characters
// outside printable ASCII have no portable glyph and show as a dot, so
// every cell takes exactly one column.
func glyph(c byte) rune {
	r := rune(c)
	if c == 0 {
		return ' '
	}
	if c < 0x20 || c > 0x7E || runewidth.RuneWidth(r) != 1 {
		return '.'
	}
	return r
}

// ansi maps the VGA color order (blue is bit 0) to the ANSI one (red is
// bit 0).
var ansi = [8]int{0, 4, 2, 6, 1, 5, 3, 7}

// Lines returns the framebuffer as plain text, one string per row.
func Lines(fb vga.FrameBuffer) []string {
	w, h := fb.Dimensions()
	out := make([]string, h)
	buf := make([]rune, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf[x] = glyph(fb.Cell(x, y).Char)
		}
		out[y] = string(buf)
	}
	return out
}

// Key translates a host key to the character the board keyboard types,
// 0 if there is none.
func Key(r rune) byte {
	switch r {
	case '\r', '\n':
		return '\n'
	case 0x7F, '\b':
		return '\b'
	}
	if r < 0x20 || r > 0x7E {
		return 0
	}
	return byte(r)
}
