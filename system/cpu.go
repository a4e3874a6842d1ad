package system

import (
	"sync/atomic"

	"nexus/cpu"
	"nexus/idt"
)

// CPU is the processor of the board. It executes the kernel natively and
// only models what the kernel can observe: the interrupt flag, the
// descriptor table register, halting and reset.
type CPU struct {
	sys   *System
	state atomic.Int32

	interruptsEnabled bool
	idtr              cpu.DescriptorPointer

	// entry points placed by the kernel, by linear address
	entries map[uint32]func()
}

func newCPU(sys *System) *CPU {
	c := &CPU{sys: sys}
	c.reset()
	return c
}

// reset returns the processor to its power-on state.
func (c *CPU) reset() {
	c.interruptsEnabled = false
	c.idtr = cpu.DescriptorPointer{}
	c.entries = make(map[uint32]func())
	c.setState(cpu.CPURUN)
}

func (c *CPU) setState(s int) {
	c.state.Store(int32(s))
}

// State returns HALT, CPURUN or WAIT.
func (c *CPU) State() int {
	return int(c.state.Load())
}

// InterruptsEnabled reports the interrupt flag.
func (c *CPU) InterruptsEnabled() bool {
	return c.interruptsEnabled
}

// IDTR returns the descriptor table register.
func (c *CPU) IDTR() cpu.DescriptorPointer {
	return c.idtr
}

// EnableInterrupts implements cpu.CPU.
func (c *CPU) EnableInterrupts() {
	c.interruptsEnabled = true
}

// DisableInterrupts implements cpu.CPU.
func (c *CPU) DisableInterrupts() {
	c.interruptsEnabled = false
}

// LoadIDT implements cpu.CPU.
func (c *CPU) LoadIDT(ptr cpu.DescriptorPointer) {
	c.idtr = ptr
	c.sys.log.Printf("lidt base %#x limit %#x\n", ptr.Base, ptr.Limit)
}

// Link implements cpu.Linker.
func (c *CPU) Link(addr uint32, entry func()) {
	c.entries[addr] = entry
}

// Reset implements cpu.CPU.
func (c *CPU) Reset() {
	panic(resetSignal{reason: "processor reset"})
}

// Halt implements cpu.CPU. With interrupts enabled it services pending
// interrupts, waiting for host key events when there are none, and
// returns after one was delivered. With interrupts disabled nothing can
// wake the processor again and the board powers off.
func (c *CPU) Halt() {
	if !c.interruptsEnabled {
		c.setState(cpu.HALT)
		panic(powerOffSignal{})
	}

	c.setState(cpu.WAIT)
	for !c.sys.step() {
		select {
		case code := <-c.sys.keys:
			if !c.sys.Keyboard.Push(code) {
				c.sys.log.Printf("keyboard buffer full, dropping scancode %#x\n", code)
			}
		case <-c.sys.ctx.Done():
			c.setState(cpu.HALT)
			panic(stopSignal{})
		}
	}
	c.setState(cpu.CPURUN)
}

// interrupt dispatches vector through the descriptor table in memory. A
// vector outside the table, a missing gate or a gate pointing nowhere
// leaves the processor without a handler and resets it, like a triple
// fault.
func (c *CPU) interrupt(vector uint8) {
	off := uint32(vector) * idt.GateSize
	if off+idt.GateSize-1 > uint32(c.idtr.Limit) {
		panic(resetSignal{reason: "vector beyond descriptor table limit"})
	}

	raw := make([]byte, idt.GateSize)
	if _, err := c.sys.RAM.ReadAt(raw, int64(c.idtr.Base+off)); err != nil {
		panic(resetSignal{reason: err.Error()})
	}
	gate := idt.Decode(raw)
	if !gate.Present() {
		panic(resetSignal{reason: "gate not present"})
	}
	entry, ok := c.entries[gate.Offset()]
	if !ok {
		panic(resetSignal{reason: "no code at gate offset"})
	}

	// interrupt gates clear IF, iret restores it
	prev := c.interruptsEnabled
	c.interruptsEnabled = false
	c.setState(cpu.CPURUN)
	entry()
	c.interruptsEnabled = prev
}
