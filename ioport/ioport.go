package ioport

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Bus is the port-mapped I/O space as seen by a driver: the in and out
// instructions.
type Bus interface {
	ReadByte(port uint16) uint8
	WriteByte(port uint16, val uint8)
}

// Device is implemented by the emulated peripherals that are attached to
// a Router.
type Device interface {
	ReadPort(port uint16) (uint8, error)
	WritePort(port uint16, val uint8) error
}

// Floating is the value read from a port nobody answers on.
const Floating = 0xFF

type mapping struct {
	first, last uint16
	dev         Device
}

// Router decodes port addresses and forwards accesses to the attached
// devices. Accesses to unmapped ports are reported through the Fault
// callback, reads return Floating.
type Router struct {
	mu       sync.Mutex
	mappings []mapping

	// Fault is called for unmapped or failing accesses
	Fault func(err error)
}

// NewRouter returns a router without any devices.
func NewRouter() *Router {
	return &Router{}
}

// Attach maps the inclusive port range [first, last] to dev.
func (r *Router) Attach(first, last uint16, dev Device) error {
	if last < first {
		return errors.Errorf("invalid port range %#x-%#x", first, last)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.mappings {
		if first <= m.last && m.first <= last {
			return errors.Errorf("port range %#x-%#x overlaps %#x-%#x", first, last, m.first, m.last)
		}
	}
	r.mappings = append(r.mappings, mapping{first, last, dev})
	sort.Slice(r.mappings, func(i, j int) bool {
		return r.mappings[i].first < r.mappings[j].first
	})
	return nil
}

func (r *Router) lookup(port uint16) Device {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := sort.Search(len(r.mappings), func(i int) bool {
		return r.mappings[i].last >= port
	})
	if i < len(r.mappings) && r.mappings[i].first <= port {
		return r.mappings[i].dev
	}
	return nil
}

// ReadByte implements Bus.
func (r *Router) ReadByte(port uint16) uint8 {
	dev := r.lookup(port)
	if dev == nil {
		r.fault(errors.Errorf("read from unmapped port %#x", port))
		return Floating
	}
	val, err := dev.ReadPort(port)
	if err != nil {
		r.fault(errors.Wrapf(err, "read from port %#x", port))
		return Floating
	}
	return val
}

// WriteByte implements Bus.
func (r *Router) WriteByte(port uint16, val uint8) {
	dev := r.lookup(port)
	if dev == nil {
		r.fault(errors.Errorf("write %#x to unmapped port %#x", val, port))
		return
	}
	if err := dev.WritePort(port, val); err != nil {
		r.fault(errors.Wrapf(err, "write %#x to port %#x", val, port))
	}
}

func (r *Router) fault(err error) {
	if r.Fault != nil {
		r.Fault(err)
	}
}
