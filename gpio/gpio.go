// Package gpio accesses the general purpose I/O ports.
package gpio

import (
	"embedded/mmio"
	"unsafe"
)

// Per port: direction, input latch, output latch and open drain control.
type registers struct {
	tris mmio.U16
	port mmio.U16
	lat  mmio.U16
	odc  mmio.U16
}

const baseAddr uintptr = 0x02c0

var ports *[2]registers = (*[2]registers)(unsafe.Pointer(baseAddr))

// Port is a bank of up to 16 pins.
type Port struct {
	regs *registers
}

var (
	PortA = &Port{&ports[0]}
	PortB = &Port{&ports[1]}
)

// Pin returns the port's nth pin.
func (p *Port) Pin(n int) Pin {
	return Pin{p.regs, uint16(1) << n}
}

// Pin is a single I/O pin. The set, clear and toggle operations go through
// read-modify-write of the output latch and must not race with each other on
// the same port.
type Pin struct {
	regs *registers
	mask uint16
}

// SetOutput makes the pin an output, optionally open drain.
func (p Pin) SetOutput(openDrain bool) {
	if openDrain {
		p.regs.odc.SetBits(p.mask)
	} else {
		p.regs.odc.ClearBits(p.mask)
	}
	p.regs.tris.ClearBits(p.mask)
}

// SetInput makes the pin an input.
func (p Pin) SetInput() {
	p.regs.tris.SetBits(p.mask)
}

// Set drives the pin high.
func (p Pin) Set() {
	p.regs.lat.SetBits(p.mask)
}

// Clear drives the pin low.
func (p Pin) Clear() {
	p.regs.lat.ClearBits(p.mask)
}

// Toggle inverts the output latch.
func (p Pin) Toggle() {
	p.regs.lat.Store(p.regs.lat.Load() ^ p.mask)
}

// Get returns the sampled pin state.
func (p Pin) Get() bool {
	return p.regs.port.LoadBits(p.mask) != 0
}
