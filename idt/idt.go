package idt

import (
	"encoding/binary"
	"fmt"

	"nexus/cpu"
	"nexus/interrupts"
	"nexus/memory"
)

// GateSize is the size of an encoded 32-bit gate descriptor.
const GateSize = 8

// Descriptor fields used by the kernel.
const (
	// KernelCodeSelector is the flat ring 0 code segment set up by the
	// boot loader's GDT.
	KernelCodeSelector = 0x08

	// FlagsInterruptGate: present, ring 0, 32-bit interrupt gate.
	FlagsInterruptGate = 0x8E

	flagPresent = 0x80
)

// DefaultBase is the physical address the table is copied to.
const DefaultBase = 0x00001000

// Gate is an interrupt gate descriptor in its in-memory layout.
type Gate struct {
	OffsetLow  uint16
	Selector   uint16
	Zero       uint8
	Flags      uint8
	OffsetHigh uint16
}

// Offset returns the handler entry point.
func (g Gate) Offset() uint32 {
	return uint32(g.OffsetHigh)<<16 | uint32(g.OffsetLow)
}

// Present reports whether the present bit is set.
func (g Gate) Present() bool {
	return g.Flags&flagPresent != 0
}

// Table is the interrupt descriptor table.
type Table [interrupts.Entries]Gate

// Reset zeroes every descriptor.
func (t *Table) Reset() {
	for i := range t {
		t[i] = Gate{}
	}
}

// Set fills the descriptor of vector.
func (t *Table) Set(vector uint8, offset uint32, selector uint16, flags uint8) {
	t[vector] = Gate{
		OffsetLow:  uint16(offset),
		Selector:   selector,
		Flags:      flags,
		OffsetHigh: uint16(offset >> 16),
	}
}

// MarshalBinary encodes the table the way the processor reads it.
func (t *Table) MarshalBinary() ([]byte, error) {
	b := make([]byte, len(t)*GateSize)
	for i, g := range t {
		e := b[i*GateSize:]
		binary.LittleEndian.PutUint16(e[0:], g.OffsetLow)
		binary.LittleEndian.PutUint16(e[2:], g.Selector)
		e[4] = g.Zero
		e[5] = g.Flags
		binary.LittleEndian.PutUint16(e[6:], g.OffsetHigh)
	}
	return b, nil
}

// Decode reads a single encoded gate.
func Decode(b []byte) Gate {
	_ = b[GateSize-1]
	return Gate{
		OffsetLow:  binary.LittleEndian.Uint16(b[0:]),
		Selector:   binary.LittleEndian.Uint16(b[2:]),
		Zero:       b[4],
		Flags:      b[5],
		OffsetHigh: binary.LittleEndian.Uint16(b[6:]),
	}
}

// Builder constructs the table and installs it.
type Builder struct {
	Memory memory.Manager
	CPU    cpu.CPU
	Base   uint32

	table Table
}

// NewBuilder returns a builder placing the table at DefaultBase.
func NewBuilder(mem memory.Manager, c cpu.CPU) *Builder {
	return &Builder{Memory: mem, CPU: c, Base: DefaultBase}
}

// BuildAndInstall zeroes the table, points the keyboard vector at entry,
// copies the table to memory and loads it into the processor. It must be
// called with interrupts disabled. Failures are boot-time
// misconfiguration and panic.
func (b *Builder) BuildAndInstall(entry uint32) {
	b.table.Reset()
	b.table.Set(interrupts.IntKeyboard, entry, KernelCodeSelector, FlagsInterruptGate)

	raw, _ := b.table.MarshalBinary()
	if _, err := b.Memory.WriteAt(raw, int64(b.Base)); err != nil {
		panic(fmt.Sprintf("idt: can't install descriptor table: %v", err))
	}

	b.CPU.LoadIDT(cpu.DescriptorPointer{
		Limit: uint16(len(raw) - 1),
		Base:  b.Base,
	})
}

// Table returns the last built table.
func (b *Builder) Table() *Table {
	return &b.table
}
