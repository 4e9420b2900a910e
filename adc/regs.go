package adc

import (
	"embedded/mmio"
	"unsafe"
)

type con1Flags uint16

const (
	con1Done     con1Flags = 1 << 0  // conversion finished
	con1Sample   con1Flags = 1 << 1  // sample and hold is sampling
	con1AutoSamp con1Flags = 1 << 2  // restart sampling after conversion
	con1SSrcAuto con1Flags = 7 << 5  // internal counter ends sampling
	con1Form     con1Flags = 3 << 8  // output format, raw unsigned when zero
	con1Mode12   con1Flags = 1 << 10 // 12-bit single channel mode
	con1DMAOrder con1Flags = 1 << 12 // write results in conversion order
	con1IdleOff  con1Flags = 1 << 13 // halt in idle mode
	con1On       con1Flags = 1 << 15 // converter enable
)

type con2Flags uint16

type con3Flags uint16

// Sample time and conversion clock divider live in AD1CON3.
const (
	con3SampleTime con3Flags = 0x1f << 8 // auto sample time in TAD
	con3ClockDiv   con3Flags = 0xff << 0 // TAD = (div+1) / Fcy
)

type registers struct {
	buf    [16]mmio.U16
	con1   mmio.R16[con1Flags]
	con2   mmio.R16[con2Flags]
	con3   mmio.R16[con3Flags]
	chs123 mmio.U16
	chs0   mmio.U16
	pcfg   mmio.U16
	cssl   mmio.U16
}

const baseAddr uintptr = 0x0300

var regs *registers = (*registers)(unsafe.Pointer(baseAddr))
