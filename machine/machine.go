// Package machine is imported by the runtime and allows the target to
// implement some hooks, most importantly the default writer used by print()
// and panic() before a console is mounted.
package machine

import (
	"embedded/mmio"
	"unsafe"
)

// ResetCause are the sticky flags of the reset control register. Hardware
// sets them, software clears them, so multiple causes may accumulate until
// inspected.
type ResetCause uint16

const (
	ResetPowerOn  ResetCause = 1 << 0  // power-on reset
	ResetBrownOut ResetCause = 1 << 1  // supply dipped below threshold
	ResetIdle     ResetCause = 1 << 2  // woke from idle
	ResetSleep    ResetCause = 1 << 3  // woke from sleep
	ResetWatchdog ResetCause = 1 << 4  // watchdog timed out
	ResetSoftware ResetCause = 1 << 6  // reset instruction
	ResetExternal ResetCause = 1 << 7  // MCLR pin
	ResetIllegal  ResetCause = 1 << 14 // illegal opcode or uninitialized W reg
	ResetTrap     ResetCause = 1 << 15 // trap conflict
)

var rcon = (*mmio.R16[ResetCause])(unsafe.Pointer(uintptr(0x0740)))

// Reset returns the accumulated reset causes.
func Reset() ResetCause {
	return rcon.Load()
}

// ClearReset clears the accumulated reset causes.
func ClearReset() {
	rcon.Store(0)
}
