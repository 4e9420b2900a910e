package uart

import (
	"embedded/mmio"
)

type modeFlags uint16

const (
	modeStopBits2  modeFlags = 1 << 0  // two stop bits
	modeParity     modeFlags = 3 << 1  // data and parity selection
	modeParityOdd  modeFlags = 2 << 1  // 8 data bits, odd parity
	modeParityEven modeFlags = 1 << 1  // 8 data bits, even parity
	modeBRGH       modeFlags = 1 << 3  // high speed baud rate generator
	modeRxInvert   modeFlags = 1 << 4  // idle low receive
	modeAutoBaud   modeFlags = 1 << 5  // measure baud rate from sync byte
	modeLoopback   modeFlags = 1 << 6  // connect TX to RX internally
	modeWake       modeFlags = 1 << 7  // wake from sleep on start bit
	modeFlowRTS    modeFlags = 1 << 8  // enable RTS pin
	modeFlowRTSCTS modeFlags = 2 << 8  // enable RTS and CTS pins
	modeIdleStop   modeFlags = 1 << 13 // halt in idle mode
	modeEnable     modeFlags = 1 << 15 // UART enable
)

type staFlags uint16

const (
	staRxAvail   staFlags = 1 << 0  // receive buffer holds data
	staOverrun   staFlags = 1 << 1  // receive buffer overflowed, must be cleared
	staFrameErr  staFlags = 1 << 2  // top unread byte had no stop bit
	staParityErr staFlags = 1 << 3  // top unread byte failed parity
	staRxIdle    staFlags = 1 << 4  // receiver idle
	staAddrDet   staFlags = 1 << 5  // address character detection
	staTxEmpty   staFlags = 1 << 8  // shift register and buffer empty
	staTxFull    staFlags = 1 << 9  // transmit buffer full
	staTxEnable  staFlags = 1 << 10 // transmitter enable
	staTxBreak   staFlags = 1 << 11 // send break
)

type registers struct {
	mode  mmio.R16[modeFlags]
	sta   mmio.R16[staFlags]
	txreg mmio.U16
	rxreg mmio.U16
	brg   mmio.U16
}

const (
	uart1Addr uintptr = 0x0220
	uart2Addr uintptr = 0x0230
)
