package keyboard

import (
	"sync"

	"github.com/pkg/errors"

	"nexus/ioport"
)

// 8042 keyboard controller ports
const (
	DataPort   uint16 = 0x60
	StatusPort uint16 = 0x64
)

// StatusOutputFull is set while a scancode waits in the output buffer.
const StatusOutputFull = 0x01

// CommandPulseReset pulses the output port line wired to the processor
// reset.
const CommandPulseReset = 0xFE

// bufferSize is the number of scancodes the controller holds before it
// starts dropping keys.
const bufferSize = 16

// Controller is an emulated keyboard controller: a small FIFO of
// scancodes readable through the data port.
type Controller struct {
	mu   sync.Mutex
	fifo [bufferSize]uint8
	head int
	n    int

	// last byte read, returned again on an empty read
	data uint8

	// ResetLine is pulsed by CommandPulseReset
	ResetLine func()
}

// NewController returns an empty controller.
func NewController() *Controller {
	return new(Controller)
}

// Attach maps the data and status ports on r.
func (c *Controller) Attach(r *ioport.Router) error {
	if err := r.Attach(DataPort, DataPort, c); err != nil {
		return errors.Wrap(err, "keyboard data port")
	}
	if err := r.Attach(StatusPort, StatusPort, c); err != nil {
		return errors.Wrap(err, "keyboard status port")
	}
	return nil
}

// Push queues a scancode. It reports false if the buffer is full and the
// key was lost.
func (c *Controller) Push(code uint8) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.n == bufferSize {
		return false
	}
	c.fifo[(c.head+c.n)%bufferSize] = code
	c.n++
	return true
}

// Reset empties the output buffer.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.head, c.n, c.data = 0, 0, 0
}

// Pending reports whether scancodes are waiting.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n > 0
}

// ReadPort implements ioport.Device.
func (c *Controller) ReadPort(port uint16) (uint8, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch port {
	case DataPort:
		if c.n > 0 {
			c.data = c.fifo[c.head]
			c.head = (c.head + 1) % bufferSize
			c.n--
		}
		return c.data, nil
	case StatusPort:
		if c.n > 0 {
			return StatusOutputFull, nil
		}
		return 0, nil
	default:
		return 0, errors.Errorf("keyboard: read from invalid port %#x", port)
	}
}

// WritePort implements ioport.Device. Apart from the reset pulse,
// controller and keyboard commands are accepted and ignored.
func (c *Controller) WritePort(port uint16, val uint8) error {
	switch port {
	case StatusPort:
		if val == CommandPulseReset && c.ResetLine != nil {
			c.ResetLine()
		}
		return nil
	case DataPort:
		return nil
	default:
		return errors.Errorf("keyboard: write to invalid port %#x", port)
	}
}
