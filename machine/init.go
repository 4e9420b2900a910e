//go:build dsc33

package machine

import (
	"embedded/mmio"
	"unsafe"
)

// Oscillator control. PLLFBD holds the feedback divider M minus 2, CLKDIV
// the input and output dividers, which stay at their reset defaults N1=N2=2.
var (
	clkdiv = (*mmio.U16)(unsafe.Pointer(uintptr(0x0744)))
	pllfbd = (*mmio.U16)(unsafe.Pointer(uintptr(0x0746)))
)

func init() {
	// FRC (7.37 MHz) through the PLL with M=11: Fosc = 7.37*11/4 = 20.3 MHz,
	// Fcy = Fosc/2, close enough to the 10 MIPS cpu.ClockSpeed assumes.
	pllfbd.Store(11 - 2)
}
