package pic

import (
	"nexus/interrupts"
	"nexus/ioport"
)

// 8259A I/O ports
const (
	MasterCommand uint16 = 0x20
	MasterData    uint16 = 0x21
	SlaveCommand  uint16 = 0xA0
	SlaveData     uint16 = 0xA1
)

// Initialization and operation command words
const (
	ICW1Init = 0x10 // start initialization
	ICW1ICW4 = 0x01 // ICW4 follows
	ICW1Sngl = 0x02 // single controller, no ICW3

	ICW4Mode8086 = 0x01

	OCW2EOI      = 0x20 // non-specific end of interrupt
	OCW2Specific = 0x40
	OCW3         = 0x08
	OCW3ReadIRR  = 0x02
	OCW3ReadISR  = 0x03
)

// Masks written once the controllers are remapped: everything but the
// keyboard line is disabled, the cascade line included.
const (
	MasterMask = 0xFF &^ (1 << interrupts.IRQKeyboard)
	SlaveMask  = 0xFF
)

// RemapAndMask runs the initialization sequence on both controllers so
// that their lines are delivered on vectors 0x20-0x2F, then masks every
// line except the keyboard. It must run exactly once, before interrupts
// are enabled.
func RemapAndMask(bus ioport.Bus) {
	// ICW1: begin initialization, ICW4 will follow
	bus.WriteByte(MasterCommand, ICW1Init|ICW1ICW4)
	bus.WriteByte(SlaveCommand, ICW1Init|ICW1ICW4)

	// ICW2: vector offsets
	bus.WriteByte(MasterData, interrupts.MasterOffset)
	bus.WriteByte(SlaveData, interrupts.SlaveOffset)

	// ICW3: the slave hangs off master line 2
	bus.WriteByte(MasterData, 1<<interrupts.IRQCascade)
	bus.WriteByte(SlaveData, interrupts.IRQCascade)

	// ICW4: 8086 mode
	bus.WriteByte(MasterData, ICW4Mode8086)
	bus.WriteByte(SlaveData, ICW4Mode8086)

	bus.WriteByte(MasterData, MasterMask)
	bus.WriteByte(SlaveData, SlaveMask)
}

// EndOfInterrupt acknowledges the interrupt of line to the controllers.
func EndOfInterrupt(bus ioport.Bus, line uint8) {
	if line >= 8 {
		bus.WriteByte(SlaveCommand, OCW2EOI)
	}
	bus.WriteByte(MasterCommand, OCW2EOI)
}
