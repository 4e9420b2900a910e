// Package sched implements a cooperative run-to-completion scheduler on top
// of a periodic timer tick.
//
// Tasks are submitted with a signed priority: positive values delay the task
// by that many ticks, zero and negative values make it runnable immediately,
// more negative first. Equal priorities dispatch in submission order. A
// running task is never preempted by another task, only by interrupts, and
// must not block. Waiting is expressed by resubmitting with a delay.
//
// Submit may be called from interrupt handlers, provided they run at the
// tick interrupt's priority, see irq.SetPriority. Queue updates are guarded
// by raising the CPU priority level to that priority, which holds off the
// tick and every handler allowed to submit while the foreground has the
// queue in an inconsistent state.
package sched

import (
	"embedded/rtos"
	"errors"
	"sync/atomic"
	"time"

	_ "unsafe" // for linkname

	"github.com/clktmr/dsc33/irq"
	"github.com/clktmr/dsc33/timer"
)

// Cap is the maximum number of queued tasks.
const Cap = 16

// TickPeriod is the time between two aging passes. With the reference clock
// this programs a period register value of 5000.
const TickPeriod = 500 * time.Microsecond

// tickPrio is the interrupt priority of the tick source. Handlers that
// submit tasks must run at this priority, queue accesses mask up to it.
const tickPrio = 1

var (
	ErrNoAction  = errors.New("sched: nil task function")
	ErrQueueFull = errors.New("sched: queue full")
)

var (
	queue taskq
	ticks atomic.Uint32
)

// Init programs Timer1 as tick source but leaves it stopped. Must be called
// once before Submit or Start.
func Init() {
	t := timer.Timer1
	t.Stop()
	t.SetPrescaler(timer.Div1)
	t.SetPeriod(timer.Cycles(int64(TickPeriod), timer.Div1))
	t.Reset()

	irq.Clear(t.IRQ())
	irq.SetPriority(t.IRQ(), tickPrio)
	irq.Enable(t.IRQ())
	t.IRQ().IRQ().Enable(rtos.IntPrioLow, 0)
}

// Submit queues fn to be called with arg. See the package documentation for
// the meaning of prio. The queue is bounded, a full queue fails with
// ErrQueueFull and it's the caller's decision whether to retry.
func Submit(fn func(arg any), prio int16, arg any) error {
	if fn == nil {
		return ErrNoAction
	}

	ipl := irq.Mask(tickPrio)
	ok := queue.insert(task{fn, arg, prio})
	irq.Unmask(ipl)

	if !ok {
		return ErrQueueFull
	}
	return nil
}

// Dispatch runs the runnable task with the lowest priority value to
// completion, if there is one. Reports whether a task was run. Exposed for
// targets that need to interleave dispatching with their own main loop,
// usually Start is all that's needed.
func Dispatch() bool {
	ipl := irq.Mask(tickPrio)
	t, ok := queue.next()
	irq.Unmask(ipl)

	if !ok || t.fn == nil {
		return false
	}
	t.fn(t.arg)
	return true
}

// Start starts the tick timer and dispatches tasks forever.
func Start() {
	timer.Timer1.Start()
	for {
		Dispatch()
	}
}

// Ticks returns the number of ticks since Start. Wraps around, intended for
// diagnostics only.
func Ticks() uint32 {
	return ticks.Load()
}

//go:nosplit
func tick() {
	ticks.Add(1)
	queue.age()
}

//go:interrupthandler
//go:nosplit
//go:linkname tickHandler IRQ3_Handler
func tickHandler() {
	tick()
	irq.Clear(irq.T1)
}
