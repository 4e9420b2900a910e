// Package timer drives the 16-bit type A timers. Timer1 is conventionally
// reserved as the system tick source, see the sched package.
package timer

import (
	"github.com/clktmr/dsc33/cpu"
	"github.com/clktmr/dsc33/irq"
)

// Prescaler divides the instruction clock before it reaches the counter.
type Prescaler uint8

const (
	Div1 Prescaler = iota
	Div8
	Div64
	Div256
)

// Timer is a single 16-bit timer. Its methods must not be called concurrently.
type Timer struct {
	regs *registers
	src  irq.Source
}

var Timer1 = &Timer{timer1, irq.T1}

// SetPeriod programs the period register. The timer raises its interrupt
// flag and resets the counter each time the counter matches cycles.
func (t *Timer) SetPeriod(cycles uint16) {
	t.regs.pr.Store(cycles)
}

// Period returns the programmed period in timer clocks.
func (t *Timer) Period() uint16 {
	return t.regs.pr.Load()
}

// SetPrescaler selects the divider between instruction clock and counter.
func (t *Timer) SetPrescaler(div Prescaler) {
	t.regs.con.StoreBits(conPrescale, conFlags(div)<<4)
}

// Start lets the counter run from its current value.
func (t *Timer) Start() {
	t.regs.con.SetBits(conOn)
}

// Stop freezes the counter. The period and count registers are retained.
func (t *Timer) Stop() {
	t.regs.con.ClearBits(conOn)
}

// Reset clears the counter without touching the period.
func (t *Timer) Reset() {
	t.regs.tmr.Store(0)
}

// Count returns the current counter value.
func (t *Timer) Count() uint16 {
	return t.regs.tmr.Load()
}

// IRQ returns the timer's period match interrupt source.
func (t *Timer) IRQ() irq.Source {
	return t.src
}

var dividers = [4]int64{1, 8, 64, 256}

// Cycles converts a duration in nanoseconds to timer clocks at the given
// prescaler. Returns 0 if the duration doesn't fit in the 16-bit period.
func Cycles(ns int64, div Prescaler) uint16 {
	cycles := ns * int64(cpu.ClockSpeed) / (1e9 * dividers[div])
	if cycles < 1 || cycles > 0xffff {
		return 0
	}
	return uint16(cycles)
}
