package machine

import (
	"embedded/mmio"
	"unsafe"

	"github.com/clktmr/dsc33/cpu"
)

// Raw view of UART1, which doubles as the failsafe logging port. Kept
// separate from the uart package so that very early boot and panic paths
// don't depend on driver state.
var u1 *uartRegs = (*uartRegs)(unsafe.Pointer(uintptr(0x0220)))

type uartRegs struct {
	mode  mmio.U16
	sta   mmio.U16
	txreg mmio.U16
	rxreg mmio.U16
	brg   mmio.U16
}

const (
	uartEnable   = 1 << 15 // UxMODE
	uartTxEnable = 1 << 10 // UxSTA
	uartTxFull   = 1 << 9  // UxSTA
	failsafeBaud = 115200
)

// Writes bytes to UART1 by polling, regardless of the uart driver's state.
// Enables the port at the failsafe baud rate if nothing did so far. Slow, but
// only intended for print() and panic() in very early boot.
//
//go:nowritebarrierrec
//go:nosplit
//go:linkname DefaultWrite runtime.defaultWrite
func DefaultWrite(fd int, p []byte) int {
	if u1.mode.Load()&uartEnable == 0 {
		u1.brg.Store(uint16(int(cpu.ClockSpeed)/(16*failsafeBaud)) - 1)
		u1.mode.Store(uartEnable)
		u1.sta.Store(u1.sta.Load() | uartTxEnable)
	}

	for _, c := range p {
		for u1.sta.Load()&uartTxFull != 0 {
			// wait
		}
		u1.txreg.Store(uint16(c))
	}

	return len(p)
}

type defaultWriter int

const DefaultWriter defaultWriter = 0

func (v defaultWriter) Write(p []byte) (int, error) {
	return DefaultWrite(int(v), p), nil
}
