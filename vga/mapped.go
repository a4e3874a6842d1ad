package vga

import "nexus/memory"

// Mapped is the text framebuffer as it lives in physical memory: a flat
// array of 16-bit cells starting at Address.
type Mapped struct {
	mem  memory.Manager
	base uint32
}

// NewMapped maps an 80x25 framebuffer at Address of mem.
func NewMapped(mem memory.Manager) *Mapped {
	return &Mapped{mem: mem, base: Address}
}

// Dimensions returns the console width and height in characters.
func (m *Mapped) Dimensions() (int, int) {
	return Width, Height
}

func (m *Mapped) offset(x, y int) (uint32, bool) {
	if x < 0 || y < 0 || x >= Width || y >= Height {
		return 0, false
	}
	return m.base + uint32((y*Width+x)*2), true
}

// Cell returns the cell at (x, y).
func (m *Mapped) Cell(x, y int) Cell {
	addr, ok := m.offset(x, y)
	if !ok {
		return Cell{}
	}
	w, err := m.mem.ReadMemoryWord(addr)
	if err != nil {
		return Cell{}
	}
	return CellFromWord(w)
}

// SetCell writes the cell at (x, y).
func (m *Mapped) SetCell(x, y int, c Cell) {
	addr, ok := m.offset(x, y)
	if !ok {
		return
	}
	// the window lies inside physical memory, so this cannot fail
	_ = m.mem.WriteMemoryWord(addr, c.Word())
}
