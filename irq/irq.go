// Package irq wraps the interrupt controller's flag and enable registers.
//
// Every peripheral interrupt has a natural number, its Source. The same
// numbers select the transfer request of a DMA channel, see the dma package.
// Each source maps to its own interrupt vector, handlers are bound the usual
// way via the rtos IRQ naming scheme, e.g. IRQ3_Handler for T1.
package irq

import (
	"embedded/rtos"
)

// Source is the natural interrupt number of a peripheral event.
type Source uint8

const (
	INT0  Source = 0  // external interrupt 0
	IC1   Source = 1  // input capture 1
	OC1   Source = 2  // output compare 1
	T1    Source = 3  // timer 1 period match
	DMA0  Source = 4  // DMA channel 0 block complete
	IC2   Source = 5  // input capture 2
	OC2   Source = 6  // output compare 2
	T2    Source = 7  // timer 2 period match
	T3    Source = 8  // timer 3 period match
	SPI1E Source = 9  // SPI1 fault
	SPI1  Source = 10 // SPI1 transfer done
	U1RX  Source = 11 // UART1 receiver
	U1TX  Source = 12 // UART1 transmitter
	ADC1  Source = 13 // ADC1 conversion done
	DMA1  Source = 14 // DMA channel 1 block complete
	NVM   Source = 15 // NVM program/erase done
	INT1  Source = 20 // external interrupt 1
	DMA2  Source = 24 // DMA channel 2 block complete
	T4    Source = 27 // timer 4 period match
	T5    Source = 28 // timer 5 period match
	INT2  Source = 29 // external interrupt 2
	U2RX  Source = 30 // UART2 receiver
	U2TX  Source = 31 // UART2 transmitter
	DMA3  Source = 36 // DMA channel 3 block complete
	DMA4  Source = 46 // DMA channel 4 block complete
	U1E   Source = 49 // UART1 error
	U2E   Source = 50 // UART2 error
	DMA5  Source = 61 // DMA channel 5 block complete
	DMA6  Source = 70 // DMA channel 6 block complete
	DMA7  Source = 71 // DMA channel 7 block complete

	SourceLast Source = 80
)

// IRQ returns the core interrupt vector of the source.
func (s Source) IRQ() rtos.IRQ {
	return rtos.IRQ(s)
}

// Enable sets the source's interrupt enable bit. A pending flag will raise
// the interrupt immediately.
func Enable(s Source) {
	regs.iec[s>>4].SetBits(1 << (s & 0xf))
}

// Disable clears the source's interrupt enable bit. The peripheral keeps
// raising the flag, a pending interrupt is delivered on reenable.
func Disable(s Source) {
	regs.iec[s>>4].ClearBits(1 << (s & 0xf))
}

// Enabled reports whether the source's interrupt is enabled.
func Enabled(s Source) bool {
	return regs.iec[s>>4].LoadBits(1<<(s&0xf)) != 0
}

// Pending reports whether the source's flag is raised.
func Pending(s Source) bool {
	return regs.ifs[s>>4].LoadBits(1<<(s&0xf)) != 0
}

// Clear acknowledges the source by clearing its flag. Must be done by the
// handler before returning, otherwise the interrupt retriggers.
func Clear(s Source) {
	regs.ifs[s>>4].ClearBits(1 << (s & 0xf))
}

// Raise sets the source's flag in software.
func Raise(s Source) {
	regs.ifs[s>>4].SetBits(1 << (s & 0xf))
}

// Mask raises the CPU interrupt priority level to prio, holding off every
// source with that priority or below until Unmask. Masking at or below the
// current level changes nothing. Returns the previous level.
//
// Masking at a source's priority acts as a lock against that source's
// handler, the usual way to share state between foreground code and an
// interrupt handler.
func Mask(prio int) int {
	old := int(sr.LoadBits(srIPL) >> srIPLn)
	if prio > old {
		sr.StoreBits(srIPL, srFlags(prio)<<srIPLn)
	}
	return old
}

// Unmask restores the CPU interrupt priority level returned by Mask. Held
// off interrupts are delivered immediately.
func Unmask(prio int) {
	sr.StoreBits(srIPL, srFlags(prio&0x7)<<srIPLn)
}

// SetPriority sets the source's priority, 0 (disabled) to 7 (highest).
// Sources at the same priority can't preempt each other.
func SetPriority(s Source, prio int) {
	shift := (s & 0x3) << 2
	regs.ipc[s>>2].StoreBits(0x7<<shift, uint16(prio&0x7)<<shift)
}

// Priority returns the source's priority.
func Priority(s Source) int {
	shift := (s & 0x3) << 2
	return int(regs.ipc[s>>2].LoadBits(0x7<<shift) >> shift)
}
