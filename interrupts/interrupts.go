package interrupts

/**
 * Separate package exists mainly in order to avoid cyclic imports
 * between the kernel drivers and the board emulating the hardware.
 */

// Interrupt type - used to signal an incoming hardware interrupt
type Interrupt struct {
	Line   uint8
	Vector uint8
}

// Vector returns the vector an IRQ line is delivered on once the
// controllers are remapped.
func Vector(line uint8) uint8 {
	if line < 8 {
		return MasterOffset + line
	}
	return SlaveOffset + line - 8
}

// interrupt vector layout:

// Vectors 0 - 31 are reserved for processor exceptions, so the controller
// lines are moved right behind them.
const (
	// MasterOffset : first vector of the master controller lines 0-7
	MasterOffset = 0x20

	// SlaveOffset : first vector of the slave controller lines 8-15
	SlaveOffset = 0x28

	// Entries : size of the interrupt descriptor table
	Entries = 256
)

/********************************
 * IRQ lines:
 ********************************/

// IRQTimer - programmable interval timer
const IRQTimer = 0

// IRQKeyboard - sent when a key is pressed or released
const IRQKeyboard = 1

// IRQCascade - master line the slave controller is wired to
const IRQCascade = 2

// IntKeyboard - keyboard vector after remapping
const IntKeyboard = MasterOffset + IRQKeyboard
