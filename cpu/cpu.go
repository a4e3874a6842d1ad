package cpu

// CPU run states
const (
	HALT   = 0
	CPURUN = 1
	WAIT   = 2
)

// DescriptorPointer is the operand of the lidt instruction: the size of
// the interrupt descriptor table minus one and its linear address.
type DescriptorPointer struct {
	Limit uint16
	Base  uint32
}

// CPU is the set of privileged operations the kernel needs from the
// processor.
type CPU interface {
	// EnableInterrupts enables interrupt handling (sti).
	EnableInterrupts()

	// DisableInterrupts disables interrupt handling (cli).
	DisableInterrupts()

	// Halt stops instruction execution until the next interrupt (hlt).
	// With interrupts disabled it never returns.
	Halt()

	// LoadIDT loads the interrupt descriptor table register (lidt).
	LoadIDT(ptr DescriptorPointer)

	// Reset pulses the processor reset line. It never returns.
	Reset()
}

// Linker places interrupt entry points at fixed addresses, the way the
// linker script places the assembly stubs of a freestanding kernel.
type Linker interface {
	Link(addr uint32, entry func())
}
