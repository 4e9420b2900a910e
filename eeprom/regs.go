package eeprom

import (
	"embedded/mmio"
	"unsafe"
)

type conFlags uint16

const (
	conOpWriteWord conFlags = 0x4 << 0 // program one word
	conOpEraseRow  conFlags = 0x5 << 0 // erase one row
	conErase       conFlags = 1 << 6   // next WR is an erase
	conWRErr       conFlags = 1 << 13  // improper unlock sequence
	conWREn        conFlags = 1 << 14  // allow program/erase
	conWR          conFlags = 1 << 15  // start, cleared by hardware when done
)

// The panel is programmed word-wise through the address, data latch and key
// registers. Reads go directly through the panel's data space window.
type registers struct {
	con mmio.R16[conFlags]
	adr mmio.U16
	dat mmio.U16
	key mmio.U16
}

const baseAddr uintptr = 0x0760

var regs *registers = (*registers)(unsafe.Pointer(baseAddr))

// The data EEPROM panel as seen in data space.
const (
	panelAddr uintptr = 0x7000
	panelSize         = 1024
	rowWords          = 32
)
