package timer

import (
	"embedded/mmio"
	"unsafe"
)

type conFlags uint16

const (
	conSync    conFlags = 1 << 2  // synchronize external clock input
	conExtClk  conFlags = 1 << 1  // count the TxCK pin instead of Fcy
	conGate    conFlags = 1 << 6  // gated time accumulation
	conIdleOff conFlags = 1 << 13 // halt in idle mode
	conOn      conFlags = 1 << 15 // timer enable

	conPrescale conFlags = 0x3 << 4
)

// Count register, period register and control. The count resets to zero and
// raises the timer's interrupt flag when it matches the period register.
type registers struct {
	tmr mmio.U16
	pr  mmio.U16
	con mmio.R16[conFlags]
}

const timer1Addr uintptr = 0x0100

var timer1 *registers = (*registers)(unsafe.Pointer(timer1Addr))
