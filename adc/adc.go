// Package adc drives the 10/12-bit A/D converter in its simplest useful
// setup: one input, automatic sampling, automatic conversion. Results land in
// the result buffer or, more typically, are hauled away by a DMA channel in
// ping-pong mode so the foreground can average one half while the converter
// fills the other.
package adc

import (
	"github.com/clktmr/dsc33/cpu"
	"github.com/clktmr/dsc33/irq"
)

// Init configures continuous 12-bit conversions of the given analog input.
// The converter stays off until Start.
func Init(input int) {
	regs.con1.Store(con1Mode12 | con1SSrcAuto | con1AutoSamp)
	regs.con2.Store(0)
	// Slowest conversion clock and a generous sample time, precision over
	// throughput until somebody needs it configurable.
	regs.con3.Store(con3SampleTime | con3ClockDiv)
	regs.chs0.Store(uint16(input))
	regs.cssl.Store(0)
}

// Start enables the converter. Conversions run back to back, each one raises
// the ADC1 transfer request.
func Start() {
	regs.con1.SetBits(con1On)
}

// Stop disables the converter. The result buffer keeps its contents.
func Stop() {
	regs.con1.ClearBits(con1On)
}

// Read blocks for one conversion result. Only sensible while no DMA channel
// drains the converter.
func Read() uint16 {
	regs.con1.ClearBits(con1Done)
	for regs.con1.LoadBits(con1Done) == 0 {
	}
	return regs.buf[0].Load()
}

// DMA returns the first result buffer's address and the conversion done
// transfer request for configuring a DMA channel.
func DMA() (cpu.Addr, irq.Source) {
	return cpu.Addr(baseAddr), irq.ADC1
}
