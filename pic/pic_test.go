package pic

import (
	"testing"

	"nexus/interrupts"
	"nexus/ioport"
)

type write struct {
	port uint16
	val  uint8
}

type recorder struct {
	writes []write
}

func (r *recorder) ReadByte(port uint16) uint8       { return 0 }
func (r *recorder) WriteByte(port uint16, val uint8) { r.writes = append(r.writes, write{port, val}) }

func TestRemapAndMaskSequence(t *testing.T) {
	bus := &recorder{}
	RemapAndMask(bus)

	exp := []write{
		{0x20, 0x11}, {0xA0, 0x11},
		{0x21, 0x20}, {0xA1, 0x28},
		{0x21, 0x04}, {0xA1, 0x02},
		{0x21, 0x01}, {0xA1, 0x01},
		{0x21, 0xFD}, {0xA1, 0xFF},
	}
	if len(bus.writes) != len(exp) {
		t.Fatalf("got %d port writes, want %d: %v", len(bus.writes), len(exp), bus.writes)
	}
	for i, w := range exp {
		if bus.writes[i] != w {
			t.Errorf("write %d = {%#x, %#x}, want {%#x, %#x}", i, bus.writes[i].port, bus.writes[i].val, w.port, w.val)
		}
	}
}

func configuredPair(t *testing.T) (*Pair, *ioport.Router) {
	t.Helper()
	r := ioport.NewRouter()
	r.Fault = func(err error) { t.Errorf("bus fault: %v", err) }
	p := NewPair()
	if err := p.Attach(r); err != nil {
		t.Fatal(err)
	}
	RemapAndMask(r)
	return p, r
}

func TestRemapAndMaskChips(t *testing.T) {
	p, r := configuredPair(t)

	if !p.Master.Initialized() || !p.Slave.Initialized() {
		t.Fatalf("controllers not initialized")
	}
	if p.Master.Offset != interrupts.MasterOffset || p.Slave.Offset != interrupts.SlaveOffset {
		t.Errorf("offsets = %#x/%#x, want %#x/%#x", p.Master.Offset, p.Slave.Offset, interrupts.MasterOffset, interrupts.SlaveOffset)
	}
	if p.Master.Cascade != 0x04 || p.Slave.Cascade != 0x02 {
		t.Errorf("cascade = %#x/%#x, want 0x04/0x02", p.Master.Cascade, p.Slave.Cascade)
	}
	if got := r.ReadByte(MasterData); got != 0xFD {
		t.Errorf("master IMR = %#x, want 0xfd", got)
	}
	if got := r.ReadByte(SlaveData); got != 0xFF {
		t.Errorf("slave IMR = %#x, want 0xff", got)
	}
}

func TestOnlyKeyboardIsDelivered(t *testing.T) {
	tests := []struct {
		name       string
		line       uint8
		wantVector uint8
		wantOK     bool
	}{
		{"timer is masked", interrupts.IRQTimer, 0, false},
		{"keyboard", interrupts.IRQKeyboard, interrupts.IntKeyboard, true},
		{"cascade is masked", interrupts.IRQCascade, 0, false},
		{"slave line is masked", 12, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := configuredPair(t)
			p.Raise(tt.line)
			v, ok := p.Acknowledge()
			if ok != tt.wantOK || v != tt.wantVector {
				t.Errorf("Acknowledge() = %v, %v, want %v, %v", v, ok, tt.wantVector, tt.wantOK)
			}
		})
	}
}

func TestEndOfInterrupt(t *testing.T) {
	p, r := configuredPair(t)

	p.Raise(interrupts.IRQKeyboard)
	if _, ok := p.Acknowledge(); !ok {
		t.Fatal("keyboard interrupt not delivered")
	}

	// a second edge is held back while the first one is in service
	p.Raise(interrupts.IRQKeyboard)
	if _, ok := p.Acknowledge(); ok {
		t.Fatal("interrupt delivered while the line is in service")
	}

	r.WriteByte(MasterCommand, OCW3|OCW3ReadISR)
	if isr := r.ReadByte(MasterCommand); isr != 1<<interrupts.IRQKeyboard {
		t.Errorf("ISR = %#x, want %#x", isr, 1<<interrupts.IRQKeyboard)
	}

	EndOfInterrupt(r, interrupts.IRQKeyboard)
	if v, ok := p.Acknowledge(); !ok || v != interrupts.IntKeyboard {
		t.Errorf("Acknowledge() after EOI = %v, %v", v, ok)
	}
}

func TestSlaveCascade(t *testing.T) {
	p, r := configuredPair(t)
	r.WriteByte(MasterData, 0xF9) // keyboard and cascade
	r.WriteByte(SlaveData, 0xEF)  // line 12

	p.Raise(12)
	v, ok := p.Acknowledge()
	if !ok || v != interrupts.Vector(12) {
		t.Fatalf("Acknowledge() = %#x, %v, want %#x", v, ok, interrupts.Vector(12))
	}
	if p.Master.ISR != 1<<interrupts.IRQCascade || p.Slave.ISR != 1<<4 {
		t.Errorf("ISR = %#x/%#x", p.Master.ISR, p.Slave.ISR)
	}

	EndOfInterrupt(r, 12)
	if p.Master.ISR != 0 || p.Slave.ISR != 0 {
		t.Errorf("ISR after EOI = %#x/%#x, want 0/0", p.Master.ISR, p.Slave.ISR)
	}
}

func TestUninitializedChipDeliversNothing(t *testing.T) {
	p := NewPair()
	p.Raise(interrupts.IRQKeyboard)
	if _, ok := p.Acknowledge(); ok {
		t.Errorf("uninitialized controller delivered an interrupt")
	}
}

func TestPairReset(t *testing.T) {
	p := NewPair()
	p.Master.IMR = 0xFD
	p.Master.Offset = 0x20
	p.Raise(1)
	p.Reset()

	if p.Master.IMR != 0 || p.Master.IRR != 0 || p.Master.Offset != 0 {
		t.Errorf("master not reset: %+v", *p.Master)
	}
	if p.Master.Initialized() || p.Slave.Initialized() {
		t.Error("reset controllers must wait for a new initialization")
	}
}
