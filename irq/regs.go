package irq

import (
	"embedded/mmio"
	"unsafe"
)

var regs *registers = (*registers)(unsafe.Pointer(baseAddr))

const baseAddr uintptr = 0x0084

// The CPU status register. Besides the ALU flags it holds the current
// interrupt priority level, which the core saves and restores around every
// interrupt, so read-modify-write from software is safe.
var sr *mmio.R16[srFlags] = (*mmio.R16[srFlags])(unsafe.Pointer(srAddr))

const srAddr uintptr = 0x0042

type srFlags uint16

const (
	srIPL  srFlags = 7 << srIPLn // CPU interrupt priority level
	srIPLn         = 5
)

// One flag and one enable bit per source, 16 sources per register.
type registers struct {
	ifs [5]mmio.U16
	_   [3]mmio.U16
	iec [5]mmio.U16
	_   [3]mmio.U16
	ipc [20]mmio.U16
}
