package system

import (
	"context"
	"log"

	"github.com/pkg/errors"

	"nexus/console"
	"nexus/interrupts"
	"nexus/ioport"
	"nexus/kernel"
	"nexus/keyboard"
	"nexus/memory"
	"nexus/pic"
	"nexus/vga"
)

// keyQueue is the number of host key events buffered ahead of the
// keyboard controller.
const keyQueue = 256

// control flow of the board goroutine, raised with panic and recovered in
// run
type (
	powerOffSignal struct{}
	stopSignal     struct{}
	resetSignal    struct{ reason string }
)

// System is the emulated PC the kernel boots on.
type System struct {
	CPU      *CPU
	RAM      *memory.RAM
	Bus      *ioport.Router
	PIC      *pic.Pair
	Keyboard *keyboard.Controller

	// Kernel is the running kernel, replaced on every reset
	Kernel *kernel.Kernel

	// Boots counts kernel starts
	Boots int

	// Debug logs every interrupt delivered
	Debug bool

	console console.Console
	log     *log.Logger

	keys chan uint8
	ctx  context.Context
}

// InitializeSystem assembles the board: memory, the port bus and the
// interrupt and keyboard controllers attached to it.
func InitializeSystem(c console.Console, log *log.Logger) (*System, error) {
	sys := new(System)
	sys.console = c
	sys.log = log
	sys.keys = make(chan uint8, keyQueue)
	sys.ctx = context.Background()

	sys.RAM = memory.New()
	sys.Bus = ioport.NewRouter()
	sys.Bus.Fault = func(err error) {
		sys.log.Printf("port bus: %v\n", err)
	}

	sys.PIC = pic.NewPair()
	if err := sys.PIC.Attach(sys.Bus); err != nil {
		return nil, errors.Wrap(err, "can't attach interrupt controllers")
	}

	sys.Keyboard = keyboard.NewController()
	sys.Keyboard.ResetLine = func() {
		panic(resetSignal{reason: "keyboard controller reset pulse"})
	}
	if err := sys.Keyboard.Attach(sys.Bus); err != nil {
		return nil, errors.Wrap(err, "can't attach keyboard controller")
	}

	sys.CPU = newCPU(sys)
	_ = sys.console.WriteConsole("Initializing nexus board.\n")
	return sys, nil
}

// Run boots the kernel and keeps the board running until the kernel
// powers it off or ctx is done. Resets reboot a fresh kernel. Run returns
// nil after a power off and the context error after a cancellation.
func (sys *System) Run(ctx context.Context) error {
	sys.ctx = ctx
	for {
		restart, err := sys.run()
		if !restart {
			return err
		}
	}
}

// actually run the system, once
func (sys *System) run() (restart bool, err error) {
	defer func() {
		t := recover()
		switch t := t.(type) {
		case resetSignal:
			sys.log.Printf("RESET: %s\n", t.reason)
			_ = sys.console.WriteConsole("Reset.\n")
			restart = true
		case powerOffSignal:
			sys.log.Printf("processor halted with interrupts disabled\n")
			_ = sys.console.WriteConsole("System halted.\n")
		case stopSignal:
			sys.log.Printf("board stopped: %v\n", sys.ctx.Err())
			err = sys.ctx.Err()
		case nil:
			err = errors.New("kernel returned from main")
		default:
			panic(t)
		}
	}()

	sys.powerOn()
	sys.Kernel.Main()
	return false, nil
}

// powerOn resets the processor and the controllers and loads a new
// kernel. Memory keeps its contents, the kernel clears the screen itself.
func (sys *System) powerOn() {
	sys.CPU.reset()
	sys.PIC.Reset()
	sys.Keyboard.Reset()
	sys.Kernel = kernel.New(sys.CPU, sys.CPU, sys.Bus, sys.RAM)
	sys.Boots++
	_ = sys.console.WriteConsole("Booting nexus kernel.\n")
	sys.log.Printf("boot #%d\n", sys.Boots)
}

// single step of the hardware: raise the keyboard line while the
// controller holds data and deliver at most one interrupt. It reports
// whether an interrupt was delivered.
func (sys *System) step() bool {
	if sys.Keyboard.Pending() {
		sys.PIC.Raise(interrupts.IRQKeyboard)
	}
	if !sys.CPU.interruptsEnabled {
		return false
	}
	vector, ok := sys.PIC.Acknowledge()
	if !ok {
		return false
	}
	sys.processInterrupt(vector)
	return true
}

func (sys *System) processInterrupt(vector uint8) {
	if sys.Debug || vector != interrupts.IntKeyboard {
		sys.log.Printf("processing interrupt with the vector %d\n", vector)
	}
	sys.CPU.interrupt(vector)
}

// KeyEvent queues a raw scancode from the host keyboard. It reports false
// if the queue is full and the event was lost.
func (sys *System) KeyEvent(code uint8) bool {
	select {
	case sys.keys <- code:
		return true
	default:
		sys.log.Printf("key queue full, dropping scancode %#x\n", code)
		return false
	}
}

// TypeChar queues the make and break codes producing c, wrapped in a left
// shift press if needed. Characters without a key are ignored and
// reported as false.
func (sys *System) TypeChar(c byte) bool {
	code, shift, ok := keyboard.Scancode(c)
	if !ok {
		return false
	}
	if shift && !sys.KeyEvent(keyboard.LeftShift) {
		return false
	}
	ok = sys.KeyEvent(code) && sys.KeyEvent(code|keyboard.ReleaseBit)
	if shift {
		ok = sys.KeyEvent(keyboard.LeftShift|keyboard.ReleaseBit) && ok
	}
	return ok
}

// TypeString queues every character of s.
func (sys *System) TypeString(s string) {
	for i := 0; i < len(s); i++ {
		sys.TypeChar(s[i])
	}
}

// Screen returns the text framebuffer of the board.
func (sys *System) Screen() vga.FrameBuffer {
	return vga.NewMapped(sys.RAM)
}
