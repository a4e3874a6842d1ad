package ioport

import (
	"errors"
	"testing"
)

type latch struct {
	regs map[uint16]uint8
	fail bool
}

func (l *latch) ReadPort(port uint16) (uint8, error) {
	if l.fail {
		return 0, errors.New("device error")
	}
	return l.regs[port], nil
}

func (l *latch) WritePort(port uint16, val uint8) error {
	if l.fail {
		return errors.New("device error")
	}
	l.regs[port] = val
	return nil
}

func TestRouter_Attach(t *testing.T) {
	tests := []struct {
		name        string
		first, last uint16
		wantErr     bool
	}{
		{"master controller", 0x20, 0x21, false},
		{"keyboard", 0x60, 0x64, false},
		{"overlapping", 0x21, 0x22, true},
		{"inverted range", 0xA1, 0xA0, true},
		{"slave controller", 0xA0, 0xA1, false},
	}

	r := NewRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Attach(tt.first, tt.last, &latch{regs: map[uint16]uint8{}})
			if (err != nil) != tt.wantErr {
				t.Errorf("Router.Attach() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRouter_ReadWrite(t *testing.T) {
	r := NewRouter()
	var faults []error
	r.Fault = func(err error) { faults = append(faults, err) }

	a := &latch{regs: map[uint16]uint8{}}
	b := &latch{regs: map[uint16]uint8{}}
	if err := r.Attach(0xA0, 0xA1, b); err != nil {
		t.Fatal(err)
	}
	if err := r.Attach(0x20, 0x21, a); err != nil {
		t.Fatal(err)
	}

	r.WriteByte(0x21, 0xFD)
	r.WriteByte(0xA1, 0xFF)
	if a.regs[0x21] != 0xFD || b.regs[0xA1] != 0xFF {
		t.Errorf("writes not routed: a=%v b=%v", a.regs, b.regs)
	}
	if got := r.ReadByte(0x21); got != 0xFD {
		t.Errorf("ReadByte(0x21) = %#x, want 0xfd", got)
	}
	if len(faults) != 0 {
		t.Fatalf("unexpected faults: %v", faults)
	}

	if got := r.ReadByte(0x80); got != Floating {
		t.Errorf("ReadByte(unmapped) = %#x, want %#x", got, Floating)
	}
	r.WriteByte(0x80, 1)
	b.fail = true
	r.WriteByte(0xA0, 0x20)
	if len(faults) != 3 {
		t.Errorf("got %d faults, want 3: %v", len(faults), faults)
	}
}
