package dma

import (
	"embedded/mmio"
	"unsafe"
)

// NumChannels is the number of DMA engines on the largest family members.
const NumChannels = 8

var regwins *[NumChannels]registers = (*[NumChannels]registers)(unsafe.Pointer(baseAddr))

const baseAddr uintptr = 0x0380

type conFlags uint16

const (
	conOneShot    conFlags = 1 << 0  // stop after one block
	conPingPong   conFlags = 1 << 1  // alternate between sub-buffers A and B
	conNoIncr     conFlags = 1 << 4  // register indirect without post-increment
	conPeriphIndr conFlags = 1 << 5  // peripheral indirect addressing
	conNullWrite  conFlags = 1 << 11 // write null to peripheral on reads
	conHalfBlock  conFlags = 1 << 12 // interrupt at half block instead of full
	conToPeriph   conFlags = 1 << 13 // RAM to peripheral
	conByte       conFlags = 1 << 14 // byte transfers instead of word
	conEnable     conFlags = 1 << 15 // channel enable
)

type reqFlags uint16

const (
	reqForce  reqFlags = 1 << 15 // software transfer request
	reqIRQSel reqFlags = 0x7f    // transfer request source
)

// One channel's register window. The start registers hold offsets from the
// start of DMA RAM, not absolute addresses. The count register holds the
// block size minus one.
type registers struct {
	con mmio.R16[conFlags]
	req mmio.R16[reqFlags]
	sta mmio.U16
	stb mmio.U16
	pad mmio.U16
	cnt mmio.U16
}
