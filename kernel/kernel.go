package kernel

import (
	"nexus/cpu"
	"nexus/idt"
	"nexus/interrupts"
	"nexus/ioport"
	"nexus/keyboard"
	"nexus/memory"
	"nexus/pic"
	"nexus/prng"
	"nexus/shell"
	"nexus/terminal"
	"nexus/vga"
)

// KeyboardEntry is the address the keyboard interrupt stub is linked at.
const KeyboardEntry = 0x00100100

// Kernel owns every piece of kernel state: the terminal, the shell and the
// interrupt plumbing feeding it.
type Kernel struct {
	cpu    cpu.CPU
	linker cpu.Linker
	bus    ioport.Bus

	term    *terminal.Terminal
	shell   *shell.Shell
	decoder *keyboard.Decoder
	idt     *idt.Builder
}

// New wires a kernel to the hardware it runs on.
func New(c cpu.CPU, linker cpu.Linker, bus ioport.Bus, mem memory.Manager) *Kernel {
	k := &Kernel{cpu: c, linker: linker, bus: bus}
	k.term = terminal.New(vga.NewMapped(mem))
	k.shell = shell.New(k.term, shell.NewDispatcher(k.term, prng.New(), k))
	k.decoder = keyboard.NewDecoder(bus, k.shell)
	k.idt = idt.NewBuilder(mem, c)
	return k
}

// Main is the boot entry point. Interrupts stay disabled until both the
// descriptor table and the controllers are set up; afterwards the kernel
// only idles, everything else happens in the keyboard interrupt.
func (k *Kernel) Main() {
	k.cpu.DisableInterrupts()

	k.term.Initialize()
	shell.Banner(k.term)

	k.linker.Link(KeyboardEntry, k.keyboardInterrupt)
	k.idt.BuildAndInstall(KeyboardEntry)
	pic.RemapAndMask(k.bus)

	k.shell.Start()
	k.cpu.EnableInterrupts()

	for {
		k.cpu.Halt()
	}
}

// keyboardInterrupt is the handler of IRQ 1.
func (k *Kernel) keyboardInterrupt() {
	k.decoder.HandleInterrupt()
	pic.EndOfInterrupt(k.bus, interrupts.IRQKeyboard)
}

// PowerOff stops the machine for good.
func (k *Kernel) PowerOff() {
	k.cpu.DisableInterrupts()
	for {
		k.cpu.Halt()
	}
}

// Reset restarts the machine through the keyboard controller reset line,
// falling back to the processor reset.
func (k *Kernel) Reset() {
	k.cpu.DisableInterrupts()
	k.bus.WriteByte(keyboard.StatusPort, keyboard.CommandPulseReset)
	k.cpu.Reset()
}

// Terminal returns the kernel console.
func (k *Kernel) Terminal() *terminal.Terminal {
	return k.term
}

// Shell returns the kernel shell.
func (k *Kernel) Shell() *shell.Shell {
	return k.shell
}
