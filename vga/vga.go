package vga

// Attr defines a color attribute: background in the high nibble,
// foreground in the low nibble.
type Attr uint8

// The 16 text mode colors.
const (
	Black Attr = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGrey
	Grey
	LightBlue
	LightGreen
	LightCyan
	LightRed
	LightMagenta
	LightBrown
	White
)

// Text mode geometry and the physical address of the text framebuffer.
const (
	Width   = 80
	Height  = 25
	Address = 0xB8000
)

// MakeAttr combines a foreground and a background color.
func MakeAttr(fg, bg Attr) Attr {
	return (bg << 4) | (fg & 0xF)
}

// Fg returns the foreground color.
func (a Attr) Fg() Attr { return a & 0xF }

// Bg returns the background color.
func (a Attr) Bg() Attr { return (a >> 4) & 0xF }

// Cell is a single character of the text grid.
type Cell struct {
	Char byte
	Attr Attr
}

// Word encodes the cell the way the display adapter expects it.
func (c Cell) Word() uint16 {
	return uint16(c.Attr)<<8 | uint16(c.Char)
}

// CellFromWord decodes a framebuffer word.
func CellFromWord(w uint16) Cell {
	return Cell{Char: byte(w), Attr: Attr(w >> 8)}
}

// FrameBuffer is implemented by display surfaces. Writes outside of the grid
// are ignored and reads outside of it return the zero cell.
type FrameBuffer interface {
	// Dimensions returns the width and height of the surface in characters.
	Dimensions() (int, int)

	// Cell returns the cell at (x, y).
	Cell(x, y int) Cell

	// SetCell writes the cell at (x, y).
	SetCell(x, y int, c Cell)
}
