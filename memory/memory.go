package memory

import (
	"sync"

	"github.com/pkg/errors"
)

// Size of the physical address space of the board: the first megabyte,
// which is everything a real-mode-compatible PC can see below the HMA.
const Size = 1024 * 1024

// Manager is the interface of the physical memory as seen by the kernel
// drivers: the descriptor table builder copies the encoded table through it
// and the video framebuffer is mapped on top of it.
type Manager interface {

	// ReadMemoryByte returns the byte at the physical address addr
	ReadMemoryByte(addr uint32) (byte, error)

	// ReadMemoryWord returns the little endian word at the physical address addr
	ReadMemoryWord(addr uint32) (uint16, error)

	// WriteMemoryByte writes data to the physical address addr
	WriteMemoryByte(addr uint32, data byte) error

	// WriteMemoryWord writes data as a little endian word to addr
	WriteMemoryWord(addr uint32, data uint16) error

	// ReadAt and WriteAt copy whole regions, e.g. descriptor tables
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)
}

// RAM is the physical memory of the board. Access is serialized, as the
// host front-ends read the video memory while the emulated CPU writes it.
type RAM struct {
	sync.RWMutex
	Memory [Size]byte
}

// ErrBusError is returned for accesses beyond the physical address space.
var ErrBusError = errors.New("bus error")

// New returns zeroed RAM.
func New() *RAM {
	return new(RAM)
}

func check(addr uint32, width int) error {
	if uint64(addr)+uint64(width) > Size {
		return errors.Wrapf(ErrBusError, "access to 0x%x", addr)
	}
	return nil
}

// ReadMemoryByte returns the byte at addr.
func (m *RAM) ReadMemoryByte(addr uint32) (byte, error) {
	if err := check(addr, 1); err != nil {
		return 0, err
	}
	m.RLock()
	defer m.RUnlock()
	return m.Memory[addr], nil
}

// ReadMemoryWord returns the word at addr.
func (m *RAM) ReadMemoryWord(addr uint32) (uint16, error) {
	if err := check(addr, 2); err != nil {
		return 0, err
	}
	m.RLock()
	defer m.RUnlock()
	return uint16(m.Memory[addr]) | uint16(m.Memory[addr+1])<<8, nil
}

// WriteMemoryByte writes data to addr.
func (m *RAM) WriteMemoryByte(addr uint32, data byte) error {
	if err := check(addr, 1); err != nil {
		return err
	}
	m.Lock()
	defer m.Unlock()
	m.Memory[addr] = data
	return nil
}

// WriteMemoryWord writes data to addr, low byte first.
func (m *RAM) WriteMemoryWord(addr uint32, data uint16) error {
	if err := check(addr, 2); err != nil {
		return err
	}
	m.Lock()
	defer m.Unlock()
	m.Memory[addr] = byte(data)
	m.Memory[addr+1] = byte(data >> 8)
	return nil
}

// ReadAt implements io.ReaderAt.
func (m *RAM) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > Size {
		return 0, errors.Wrapf(ErrBusError, "read at 0x%x", off)
	}
	m.RLock()
	defer m.RUnlock()
	n := copy(p, m.Memory[off:])
	if n < len(p) {
		return n, errors.Wrapf(ErrBusError, "short read at 0x%x", off)
	}
	return n, nil
}

// WriteAt implements io.WriterAt.
func (m *RAM) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off > Size {
		return 0, errors.Wrapf(ErrBusError, "write at 0x%x", off)
	}
	m.Lock()
	defer m.Unlock()
	n := copy(m.Memory[off:], p)
	if n < len(p) {
		return n, errors.Wrapf(ErrBusError, "short write at 0x%x", off)
	}
	return n, nil
}
