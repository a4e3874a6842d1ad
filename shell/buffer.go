package shell

// Capacity is the size of the input line buffer, terminator slot included.
const Capacity = 256

// LineBuffer is the bounded buffer the keyboard fills. It holds at most
// Capacity-1 characters; appends beyond that are rejected.
type LineBuffer struct {
	buf [Capacity]byte
	n   int
}

// Append adds c and reports whether there was room for it. NUL is never
// stored.
func (b *LineBuffer) Append(c byte) bool {
	if c == 0 || b.n >= Capacity-1 {
		return false
	}
	b.buf[b.n] = c
	b.n++
	return true
}

// Backspace removes the last character and reports whether there was one.
func (b *LineBuffer) Backspace() bool {
	if b.n == 0 {
		return false
	}
	b.n--
	return true
}

// Len returns the number of buffered characters.
func (b *LineBuffer) Len() int { return b.n }

// Cap returns the buffer capacity.
func (b *LineBuffer) Cap() int { return Capacity }

// Reset empties the buffer.
func (b *LineBuffer) Reset() { b.n = 0 }

// String returns the buffered line.
func (b *LineBuffer) String() string {
	return string(b.buf[:b.n])
}
