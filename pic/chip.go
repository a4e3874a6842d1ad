package pic

import (
	"github.com/pkg/errors"

	"nexus/interrupts"
	"nexus/ioport"
)

// Chip is an emulated 8259A programmable interrupt controller.
type Chip struct {
	// IRR : interrupt request register, one bit per raised line
	IRR uint8

	// ISR : in-service register, lines delivered and not acknowledged yet
	ISR uint8

	// IMR : interrupt mask register, a set bit disables the line
	IMR uint8

	// Offset : vector of line 0 (ICW2)
	Offset uint8

	// Cascade : ICW3, slave lines on a master, identity on a slave
	Cascade uint8

	// Mode : ICW4
	Mode uint8

	// next initialization word expected on the data port, 0 when done
	icw         int
	needICW4    bool
	single      bool
	initialized bool
	readISR     bool
}

// Initialized reports whether a complete initialization sequence was
// received.
func (c *Chip) Initialized() bool {
	return c.initialized && c.icw == 0
}

// WritePort handles writes to the command (even) and data (odd) port.
func (c *Chip) WritePort(port uint16, val uint8) error {
	if port&1 == 0 {
		return c.writeCommand(val)
	}
	return c.writeData(val)
}

// ReadPort returns IRR or ISR on the command port, IMR on the data port.
func (c *Chip) ReadPort(port uint16) (uint8, error) {
	if port&1 == 1 {
		return c.IMR, nil
	}
	if c.readISR {
		return c.ISR, nil
	}
	return c.IRR, nil
}

func (c *Chip) writeCommand(val uint8) error {
	switch {
	case val&ICW1Init != 0:
		c.IMR, c.ISR, c.IRR = 0, 0, 0
		c.needICW4 = val&ICW1ICW4 != 0
		c.single = val&ICW1Sngl != 0
		c.readISR = false
		c.initialized = true
		c.icw = 2
	case val&OCW3 != 0:
		switch val & 3 {
		case OCW3ReadIRR:
			c.readISR = false
		case OCW3ReadISR:
			c.readISR = true
		}
	case val&OCW2EOI != 0:
		if val&OCW2Specific != 0 {
			c.ISR &^= 1 << (val & 7)
			return nil
		}
		for line := uint8(0); line < 8; line++ {
			if c.ISR&(1<<line) != 0 {
				c.ISR &^= 1 << line
				break
			}
		}
	default:
		return errors.Errorf("unsupported command word %#x", val)
	}
	return nil
}

func (c *Chip) writeData(val uint8) error {
	switch c.icw {
	case 2:
		c.Offset = val &^ 7
		c.icw = c.next(3)
	case 3:
		c.Cascade = val
		c.icw = c.next(4)
	case 4:
		c.Mode = val
		c.icw = 0
	default:
		c.IMR = val
	}
	return nil
}

// next returns the initialization word following the current one.
func (c *Chip) next(icw int) int {
	if icw == 3 && c.single {
		icw = 4
	}
	if icw == 4 && !c.needICW4 {
		return 0
	}
	return icw
}

// Raise signals an edge on line.
func (c *Chip) Raise(line uint8) {
	c.IRR |= 1 << (line & 7)
}

// pending returns the highest priority unmasked request that is not
// blocked by an in-service line of equal or higher priority.
func (c *Chip) pending() (uint8, bool) {
	if !c.Initialized() {
		return 0, false
	}
	req := c.IRR &^ c.IMR
	for line := uint8(0); line < 8; line++ {
		if c.ISR&(1<<line) != 0 {
			return 0, false
		}
		if req&(1<<line) != 0 {
			return line, true
		}
	}
	return 0, false
}

// acknowledge moves line from IRR to ISR.
func (c *Chip) acknowledge(line uint8) uint8 {
	c.IRR &^= 1 << line
	c.ISR |= 1 << line
	return c.Offset + line
}

// Pair is the cascaded master/slave controller pair of a PC.
type Pair struct {
	Master *Chip
	Slave  *Chip
}

// NewPair returns two uninitialized controllers.
func NewPair() *Pair {
	return &Pair{Master: new(Chip), Slave: new(Chip)}
}

// Attach maps the controllers' ports on r.
func (p *Pair) Attach(r *ioport.Router) error {
	if err := r.Attach(MasterCommand, MasterData, p.Master); err != nil {
		return errors.Wrap(err, "master controller")
	}
	if err := r.Attach(SlaveCommand, SlaveData, p.Slave); err != nil {
		return errors.Wrap(err, "slave controller")
	}
	return nil
}

// Raise signals an edge on IRQ line 0-15.
func (p *Pair) Raise(line uint8) {
	if line < 8 {
		p.Master.Raise(line)
		return
	}
	p.Slave.Raise(line - 8)
}

// Acknowledge performs the interrupt acknowledge cycle: it returns the
// vector of the highest priority pending line, if any.
func (p *Pair) Acknowledge() (uint8, bool) {
	if _, ok := p.Slave.pending(); ok {
		p.Master.IRR |= 1 << interrupts.IRQCascade
	} else {
		p.Master.IRR &^= 1 << interrupts.IRQCascade
	}

	line, ok := p.Master.pending()
	if !ok {
		return 0, false
	}
	if line != interrupts.IRQCascade {
		return p.Master.acknowledge(line), true
	}

	p.Master.acknowledge(line)
	sline, _ := p.Slave.pending()
	return p.Slave.acknowledge(sline), true
}

// Reset returns both controllers to their power-on state.
func (p *Pair) Reset() {
	*p.Master = Chip{}
	*p.Slave = Chip{}
}
