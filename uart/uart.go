// Package uart drives the two asynchronous serial ports. Reads and writes
// block by polling the status flags, which is fine for a console. Bulk
// transfers should attach a DMA channel to the TX or RX request instead, see
// [UART.TxDMA] and [UART.RxDMA].
package uart

import (
	"errors"
	"unsafe"

	"github.com/clktmr/dsc33/cpu"
	"github.com/clktmr/dsc33/irq"
)

var ErrOverrun = errors.New("uart: receive overrun")

// UART is a single serial port. Writes and reads may run concurrently with
// each other, but not with themselves or Init.
type UART struct {
	regs  *registers
	rx    irq.Source
	tx    irq.Source
	rxerr error // sticky until next Read
}

var (
	UART1 = &UART{regs: (*registers)(unsafe.Pointer(uart1Addr)), rx: irq.U1RX, tx: irq.U1TX}
	UART2 = &UART{regs: (*registers)(unsafe.Pointer(uart2Addr)), rx: irq.U2RX, tx: irq.U2TX}
)

// Init enables the port with 8 data bits, no parity and one stop bit at the
// given baud rate.
func (u *UART) Init(baud int) {
	u.regs.mode.Store(0)
	u.regs.brg.Store(brgValue(baud))
	u.regs.mode.Store(modeEnable)
	u.regs.sta.SetBits(staTxEnable)
}

// brgValue computes the baud rate generator period for the standard (BRGH=0)
// divide by 16 mode, rounded to nearest.
func brgValue(baud int) uint16 {
	return uint16((int(cpu.ClockSpeed)+8*baud)/(16*baud) - 1)
}

// Baud returns the actual baud rate resulting from the programmed divider.
func (u *UART) Baud() int {
	return int(cpu.ClockSpeed) / (16 * (int(u.regs.brg.Load()) + 1))
}

// WriteByte blocks until there is room in the transmit buffer.
func (u *UART) WriteByte(c byte) error {
	for u.regs.sta.LoadBits(staTxFull) != 0 {
	}
	u.regs.txreg.Store(uint16(c))
	return nil
}

func (u *UART) Write(p []byte) (n int, err error) {
	for _, c := range p {
		u.WriteByte(c)
		n++
	}
	return
}

func (u *UART) WriteString(s string) (n int, err error) {
	return u.Write(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// Flush blocks until the shift register has drained.
func (u *UART) Flush() {
	for u.regs.sta.LoadBits(staTxEmpty) == 0 {
	}
}

// ReadByte blocks until a byte was received. A receiver overrun since the
// last read is reported once as ErrOverrun alongside the next byte.
func (u *UART) ReadByte() (byte, error) {
	for u.regs.sta.LoadBits(staRxAvail) == 0 {
		if u.regs.sta.LoadBits(staOverrun) != 0 {
			// Clearing the flag restarts reception, data was lost.
			u.regs.sta.ClearBits(staOverrun)
			u.rxerr = ErrOverrun
		}
	}
	c := byte(u.regs.rxreg.Load())
	err := u.rxerr
	u.rxerr = nil
	return c, err
}

// Ready reports whether a Read would return without blocking.
func (u *UART) Ready() bool {
	return u.regs.sta.LoadBits(staRxAvail) != 0
}

// Read blocks until at least one byte was received, then drains what the
// receive buffer holds.
func (u *UART) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return
	}
	p[0], err = u.ReadByte()
	n = 1
	for n < len(p) && u.regs.sta.LoadBits(staRxAvail) != 0 {
		p[n] = byte(u.regs.rxreg.Load())
		n++
	}
	return
}

// TxDMA returns the transmit data register's address and transfer request
// source for configuring a DMA channel that feeds the transmitter.
func (u *UART) TxDMA() (cpu.Addr, irq.Source) {
	return cpu.Addr(uintptr(unsafe.Pointer(&u.regs.txreg))), u.tx
}

// RxDMA returns the receive data register's address and transfer request
// source for configuring a DMA channel that drains the receiver.
func (u *UART) RxDMA() (cpu.Addr, irq.Source) {
	return cpu.Addr(uintptr(unsafe.Pointer(&u.regs.rxreg))), u.rx
}
