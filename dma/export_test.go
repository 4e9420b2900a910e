package dma

import "unsafe"

// ChannelAt binds a Channel to an arbitrary six word register window. Lets
// tests observe register programming on plain RAM instead of the real SFRs.
func ChannelAt(win *[6]uint16) *Channel {
	return &Channel{regs: (*registers)(unsafe.Pointer(win))}
}
