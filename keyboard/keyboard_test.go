package keyboard

import (
	"testing"

	"nexus/ioport"
)

type collector struct {
	got []byte
}

func (c *collector) Input(ch byte) { c.got = append(c.got, ch) }

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		codes []uint8
		want  string
	}{
		{"letters", []uint8{0x23, 0x12, 0x26}, "hel"},
		{"break codes are dropped", []uint8{0x23, 0xA3, 0x17, 0x97}, "hi"},
		{"enter and backspace", []uint8{0x1E, 0x0E, 0x1C}, "a\b\n"},
		{"unmapped keys", []uint8{0x01, 0x3B, 0x1D, 0x7F}, ""},
		{"shifted quote", []uint8{LeftShift, 0x28, 0x80 | LeftShift, 0x28}, "\"'"},
		{"right shift", []uint8{RightShift, 0x0D, 0x09, 0x80 | RightShift, 0x0D}, "+*="},
		{"keypad", []uint8{0x4F, 0x4E, 0x50, 0x37}, "1+2*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &collector{}
			d := NewDecoder(nil, sink)
			for _, code := range tt.codes {
				d.Decode(code)
			}
			if string(sink.got) != tt.want {
				t.Errorf("Decode() produced %q, want %q", sink.got, tt.want)
			}
		})
	}
}

func TestHandleInterrupt(t *testing.T) {
	r := ioport.NewRouter()
	c := NewController()
	if err := c.Attach(r); err != nil {
		t.Fatal(err)
	}
	sink := &collector{}
	d := NewDecoder(r, sink)

	for _, code := range []uint8{0x31, 0x12, 0x2D} {
		c.Push(code)
	}
	for c.Pending() {
		d.HandleInterrupt()
	}
	if string(sink.got) != "nex" {
		t.Errorf("got %q, want %q", sink.got, "nex")
	}
}

func TestController(t *testing.T) {
	c := NewController()
	if st, _ := c.ReadPort(StatusPort); st != 0 {
		t.Errorf("status of an empty controller = %#x", st)
	}

	for i := 0; i < bufferSize; i++ {
		if !c.Push(uint8(i + 1)) {
			t.Fatalf("Push(%d) rejected", i+1)
		}
	}
	if c.Push(0x55) {
		t.Errorf("Push() accepted a key with a full buffer")
	}
	if st, _ := c.ReadPort(StatusPort); st&StatusOutputFull == 0 {
		t.Errorf("status = %#x, want output buffer full", st)
	}

	for i := 0; i < bufferSize; i++ {
		if v, _ := c.ReadPort(DataPort); v != uint8(i+1) {
			t.Errorf("read %d = %#x, want %#x", i, v, i+1)
		}
	}
	if v, _ := c.ReadPort(DataPort); v != bufferSize {
		t.Errorf("empty read = %#x, want the last byte %#x", v, bufferSize)
	}
	if _, err := c.ReadPort(0x61); err == nil {
		t.Errorf("expected an error reading port 0x61")
	}
}

func TestScancode(t *testing.T) {
	tests := []struct {
		c         byte
		wantCode  uint8
		wantShift bool
		wantOK    bool
	}{
		{'a', 0x1E, false, true},
		{'A', 0x1E, true, true},
		{'"', 0x28, true, true},
		{'\n', 0x1C, false, true},
		{'\b', 0x0E, false, true},
		{'5', 0x06, false, true},
		{'+', 0x4E, false, true},
		{'!', 0x02, true, true},
		{0x01, 0, false, false},
	}

	for _, tt := range tests {
		code, shift, ok := Scancode(tt.c)
		if code != tt.wantCode || shift != tt.wantShift || ok != tt.wantOK {
			t.Errorf("Scancode(%q) = %#x, %v, %v, want %#x, %v, %v",
				tt.c, code, shift, ok, tt.wantCode, tt.wantShift, tt.wantOK)
		}
	}
}

func TestTablesRoundTrip(t *testing.T) {
	for i, want := range Normal {
		if want == 0 {
			continue
		}
		code, shift, ok := Scancode(want)
		if !ok || shift {
			t.Errorf("Scancode(%q) = %v, %v", want, ok, shift)
			continue
		}
		sink := &collector{}
		NewDecoder(nil, sink).Decode(code)
		if len(sink.got) != 1 || sink.got[0] != want {
			t.Errorf("code %#x decodes to %q, want %q", i, sink.got, want)
		}
	}
}

func TestResetLine(t *testing.T) {
	c := NewController()
	pulses := 0
	c.ResetLine = func() { pulses++ }

	c.WritePort(StatusPort, 0xAE)
	c.WritePort(DataPort, CommandPulseReset)
	if pulses != 0 {
		t.Fatalf("reset pulsed by an unrelated command")
	}
	c.WritePort(StatusPort, CommandPulseReset)
	if pulses != 1 {
		t.Errorf("reset pulsed %d times, want 1", pulses)
	}
}

func TestControllerReset(t *testing.T) {
	c := NewController()
	c.Push(0x1E)
	c.Push(0x9E)
	c.Reset()
	if c.Pending() {
		t.Error("expected an empty buffer after reset")
	}
	if v, _ := c.ReadPort(DataPort); v != 0 {
		t.Errorf("expected 0 from an empty buffer, got %#x", v)
	}
}
