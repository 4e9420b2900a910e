// Package cpu provides constants and helpers for the dsc33 core and its
// 16-bit data space.
package cpu

import "unsafe"

// The instruction clock (Fcy). The reference boards clock the core at 10 MIPS
// from the internal FRC oscillator through the PLL, see machine package.
const ClockSpeed = 10e6

// Addr represents an address in the data space.
type Addr uint16

// The dual port SRAM shared between the CPU and the DMA controller. Buffers
// handed to a DMA channel must lie entirely inside this window.
const (
	DMABase Addr = 0x4000
	DMASize      = 0x0800
)

// DMAOffset returns the address of p as an offset from the start of DMA RAM,
// which is how the DMA controller's address registers expect it.
func DMAOffset(p unsafe.Pointer) uint16 {
	return uint16(uintptr(p)) - uint16(DMABase)
}

// InDMARAM reports whether the n bytes at p lie inside the DMA RAM window.
func InDMARAM(p unsafe.Pointer, n int) bool {
	start := uintptr(p)
	return start >= uintptr(DMABase) && start+uintptr(n) <= uintptr(DMABase)+DMASize
}

var dmaBrk = uintptr(DMABase)

// MakeDMASlice allocates n bytes in DMA RAM, rounded up to a whole word. The
// memory is outside the Go heap and never freed. Not safe for concurrent
// use, allocate during setup. Panics when DMA RAM is exhausted.
func MakeDMASlice(n int) []byte {
	n = (n + 1) &^ 1
	if dmaBrk+uintptr(n) > uintptr(DMABase)+DMASize {
		panic("cpu: out of DMA RAM")
	}
	p := unsafe.Slice((*byte)(unsafe.Pointer(dmaBrk)), n)
	dmaBrk += uintptr(n)
	return p
}
