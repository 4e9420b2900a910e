// Package dma configures the block transfer engines between DMA RAM and the
// peripheral bus.
//
// A channel moves blocks of words or bytes between a caller owned buffer in
// DMA RAM (see cpu.DMABase) and a single peripheral register, triggered by
// that peripheral's interrupt source or by software. In ping-pong mode the
// buffer is split in two equally sized sub-buffers which alternate as the
// transfer target, so the inactive half can be consumed by foreground code
// while the engine fills the other.
//
// The engine mutates the buffer concurrently with the CPU. The channel only
// manages the control registers: callers that need a stable view of the data
// must either consume the inactive ping-pong half or disable the channel
// before reading.
package dma

import (
	"errors"
	"unsafe"

	"github.com/clktmr/dsc33/cpu"
	"github.com/clktmr/dsc33/debug"
	"github.com/clktmr/dsc33/irq"
)

var (
	ErrChannel = errors.New("dma: invalid channel")
	ErrConfig  = errors.New("dma: invalid config")
)

// AddrMode selects how the engine generates DMA RAM addresses.
type AddrMode uint8

const (
	// Walk the buffer, advancing after each transfer.
	PostIncrement AddrMode = iota
	// Hit the same buffer address on every transfer.
	NoIncrement
	// The peripheral supplies the address, the buffer only sets the base.
	PeripheralIndirect
)

// Config describes a channel setup. The zero value selects continuous block
// transfers from the peripheral into the buffer, word sized, post-increment,
// interrupt on full block.
type Config struct {
	OneShot  bool     // disable after a single block instead of rearming
	PingPong bool     // alternate between the two buffer halves
	AddrMode AddrMode // DMA RAM address generation
	// Write null to the peripheral after each read, for peripherals that
	// need a transfer in both directions (e.g. SPI).
	NullWrite    bool
	HalfBlock    bool // raise the channel's interrupt at half block
	ToPeripheral bool // transfer from buffer to peripheral
	Byte         bool // byte transfers instead of word

	// The peripheral side: the interrupt source that requests a transfer
	// and the peripheral's data register.
	IRQ        irq.Source
	Peripheral cpu.Addr
}

func (cfg *Config) conBits() (con conFlags) {
	if cfg.OneShot {
		con |= conOneShot
	}
	if cfg.PingPong {
		con |= conPingPong
	}
	switch cfg.AddrMode {
	case PostIncrement:
	case NoIncrement:
		con |= conNoIncr
	case PeripheralIndirect:
		con |= conPeriphIndr
	}
	if cfg.NullWrite {
		con |= conNullWrite
	}
	if cfg.HalfBlock {
		con |= conHalfBlock
	}
	if cfg.ToPeripheral {
		con |= conToPeriph
	}
	if cfg.Byte {
		con |= conByte
	}
	return
}

// Channel is a single DMA engine. Its methods must not be called
// concurrently.
type Channel struct {
	regs *registers
	buf  []byte
	cfg  Config
}

var chans = [NumChannels]Channel{
	{regs: &regwins[0]}, {regs: &regwins[1]},
	{regs: &regwins[2]}, {regs: &regwins[3]},
	{regs: &regwins[4]}, {regs: &regwins[5]},
	{regs: &regwins[6]}, {regs: &regwins[7]},
}

var (
	DMA0 = &chans[0]
	DMA1 = &chans[1]
	DMA2 = &chans[2]
	DMA3 = &chans[3]
	DMA4 = &chans[4]
	DMA5 = &chans[5]
	DMA6 = &chans[6]
	DMA7 = &chans[7]
)

// Init programs the channel's registers from cfg and binds it to buf, leaving
// the channel disabled. buf must lie in DMA RAM, stay alive and untouched by
// the allocator while the channel is enabled, and hold a whole number of
// elements: an even length for word transfers, additionally an even element
// count for ping-pong. The count register is preset to one (sub-)buffer,
// SetBlockSize overrides it.
//
// On error no register is written. Reinitializing a channel that is still
// enabled is undefined, Cleanup it first.
func (ch *Channel) Init(buf []byte, cfg Config) error {
	if ch == nil || ch.regs == nil {
		return ErrChannel
	}
	elems := len(buf)
	if !cfg.Byte {
		if elems&1 != 0 {
			return ErrConfig
		}
		elems >>= 1
	}
	if elems == 0 {
		return ErrConfig
	}
	if cfg.PingPong && elems&1 != 0 {
		return ErrConfig
	}
	if cfg.AddrMode > PeripheralIndirect || cfg.IRQ >= irq.SourceLast {
		return ErrConfig
	}
	debug.Assert(cpu.InDMARAM(unsafe.Pointer(unsafe.SliceData(buf)), len(buf)),
		"dma: buffer outside DMA RAM")

	block := elems
	sta := cpu.DMAOffset(unsafe.Pointer(unsafe.SliceData(buf)))
	stb := uint16(0)
	if cfg.PingPong {
		block = elems / 2
		stb = sta + uint16(len(buf)/2)
	}

	ch.regs.con.Store(cfg.conBits())
	ch.regs.req.Store(reqFlags(cfg.IRQ) & reqIRQSel)
	ch.regs.sta.Store(sta)
	ch.regs.stb.Store(stb)
	ch.regs.pad.Store(uint16(cfg.Peripheral))
	ch.regs.cnt.Store(uint16(block - 1))

	ch.buf = buf
	ch.cfg = cfg
	return nil
}

// Enable arms the channel. Transfer requests from the configured source or
// from Force will now move data.
func (ch *Channel) Enable() error {
	if ch == nil || ch.regs == nil {
		return ErrChannel
	}
	ch.regs.con.SetBits(conEnable)
	return nil
}

// Disable stops the channel from accepting transfer requests. Hardware state
// of an in-flight block is left as the engine drops it.
func (ch *Channel) Disable() error {
	if ch == nil || ch.regs == nil {
		return ErrChannel
	}
	ch.regs.con.ClearBits(conEnable)
	return nil
}

// Force triggers a single transfer by software, as if the configured source
// had requested it.
func (ch *Channel) Force() error {
	if ch == nil || ch.regs == nil {
		return ErrChannel
	}
	ch.regs.req.SetBits(reqForce)
	return nil
}

// SetBlockSize programs the number of transfers per block. Deliberately not
// checked against the buffer size: peripheral indirect setups transfer more
// elements than the base buffer holds. The caller is responsible to keep the
// engine inside owned memory. Don't change the block size of a channel with
// a transfer in flight.
func (ch *Channel) SetBlockSize(n int) error {
	if ch == nil || ch.regs == nil {
		return ErrChannel
	}
	ch.regs.cnt.Store(uint16(n - 1))
	return nil
}

// BlockSize returns the programmed number of transfers per block, zero for
// an invalid channel.
func (ch *Channel) BlockSize() int {
	if ch == nil || ch.regs == nil {
		return 0
	}
	return int(ch.regs.cnt.Load()) + 1
}

// SubBufferA returns the first half of the buffer in ping-pong mode, the
// whole buffer otherwise. Nil before Init.
func (ch *Channel) SubBufferA() []byte {
	if ch == nil {
		return nil
	}
	if !ch.cfg.PingPong {
		return ch.buf
	}
	return ch.buf[:len(ch.buf)/2]
}

// SubBufferB returns the second half of the buffer in ping-pong mode, nil
// otherwise.
func (ch *Channel) SubBufferB() []byte {
	if ch == nil || !ch.cfg.PingPong {
		return nil
	}
	return ch.buf[len(ch.buf)/2:]
}

// Config returns the configuration stored by the last Init, the zero Config
// for an invalid channel.
func (ch *Channel) Config() Config {
	if ch == nil {
		return Config{}
	}
	return ch.cfg
}

// Cleanup disables the channel and resets its register window to the reset
// defaults, i.e. all zero. The buffer is released for the caller to reuse.
func (ch *Channel) Cleanup() error {
	if ch == nil || ch.regs == nil {
		return ErrChannel
	}
	ch.regs.con.Store(0)
	ch.regs.req.Store(0)
	ch.regs.sta.Store(0)
	ch.regs.stb.Store(0)
	ch.regs.pad.Store(0)
	ch.regs.cnt.Store(0)
	ch.buf = nil
	ch.cfg = Config{}
	return nil
}
