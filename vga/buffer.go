package vga

// Buffer is a framebuffer held in Go memory. Tests use it in place of the
// memory-mapped one.
type Buffer struct {
	width, height int
	fb            []uint16
}

// NewBuffer returns a blank width x height buffer.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{width: width, height: height, fb: make([]uint16, width*height)}
}

// Dimensions returns the buffer width and height in characters.
func (b *Buffer) Dimensions() (int, int) {
	return b.width, b.height
}

// Cell returns the cell at (x, y).
func (b *Buffer) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return Cell{}
	}
	return CellFromWord(b.fb[y*b.width+x])
}

// SetCell writes the cell at (x, y).
func (b *Buffer) SetCell(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.fb[y*b.width+x] = c.Word()
}

// Row returns the characters of row y.
func Row(fb FrameBuffer, y int) string {
	w, _ := fb.Dimensions()
	row := make([]byte, w)
	for x := 0; x < w; x++ {
		row[x] = fb.Cell(x, y).Char
	}
	return string(row)
}
