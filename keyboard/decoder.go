package keyboard

import "nexus/ioport"

// Sink receives decoded characters.
type Sink interface {
	Input(c byte)
}

// Decoder turns the scancodes of the keyboard controller into characters.
// It runs in interrupt context: one port read and one table lookup per
// interrupt, no allocation.
type Decoder struct {
	bus   ioport.Bus
	sink  Sink
	shift bool
}

// NewDecoder returns a decoder reading from bus and feeding sink.
func NewDecoder(bus ioport.Bus, sink Sink) *Decoder {
	return &Decoder{bus: bus, sink: sink}
}

// HandleInterrupt reads one scancode from the controller and decodes it.
func (d *Decoder) HandleInterrupt() {
	d.Decode(d.bus.ReadByte(DataPort))
}

// Decode handles a single scancode. Break codes are dropped, except for
// the shift keys whose state is tracked. Unmapped keys have no effect.
func (d *Decoder) Decode(code uint8) {
	if code&ReleaseBit != 0 {
		switch code &^ ReleaseBit {
		case LeftShift, RightShift:
			d.shift = false
		}
		return
	}

	switch code {
	case LeftShift, RightShift:
		d.shift = true
		return
	}

	table := &Normal
	if d.shift {
		table = &Shifted
	}
	if c := table[code]; c != 0 {
		d.sink.Input(c)
	}
}
