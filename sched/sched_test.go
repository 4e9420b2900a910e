package sched_test

import (
	"math"
	"slices"
	"testing"

	"github.com/clktmr/dsc33/irq"
	"github.com/clktmr/dsc33/sched"
	dsctesting "github.com/clktmr/dsc33/testing"
)

func TestMain(m *testing.M) { dsctesting.TestMain(m) }

// drain dispatches until the queue yields no more runnable tasks.
func drain(t *testing.T, limit int) {
	t.Helper()
	for sched.Dispatch() {
		if limit--; limit < 0 {
			t.Fatal("dispatch didn't settle")
		}
	}
}

func TestDispatchOrder(t *testing.T) {
	sched.Reset()

	got := []string{}
	log := func(arg any) { got = append(got, arg.(string)) }

	for _, name := range []string{"f", "g", "h"} {
		if err := sched.Submit(log, 0, name); err != nil {
			t.Fatal(err)
		}
	}
	drain(t, sched.Cap)

	if want := []string{"f", "g", "h"}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if sched.Queued() != 0 {
		t.Errorf("queue not empty: %v tasks left", sched.Queued())
	}
}

func TestDelay(t *testing.T) {
	sched.Reset()

	got := []string{}
	log := func(arg any) { got = append(got, arg.(string)) }

	sched.Submit(log, 3, "f")
	sched.Submit(log, 1, "g")

	if sched.Dispatch() {
		t.Error("dispatched before any tick")
	}
	sched.Tick() // g runnable, f at 2
	drain(t, 1)
	if want := []string{"g"}; !slices.Equal(got, want) {
		t.Fatalf("after tick 1: got %v, want %v", got, want)
	}

	sched.Tick() // f at 1
	if sched.Dispatch() {
		t.Error("f dispatched one tick early")
	}
	sched.Tick() // f at 0
	drain(t, 1)
	if want := []string{"g", "f"}; !slices.Equal(got, want) {
		t.Errorf("after tick 3: got %v, want %v", got, want)
	}
}

func TestStrictPriority(t *testing.T) {
	sched.Reset()

	got := []string{}
	log := func(arg any) { got = append(got, arg.(string)) }

	sched.Submit(log, -5, "f")
	sched.Submit(log, 0, "g")
	drain(t, 2)

	if want := []string{"f", "g"}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCapacity(t *testing.T) {
	sched.Reset()

	runs := 0
	count := func(any) { runs++ }

	for i := 0; i < sched.Cap; i++ {
		if err := sched.Submit(count, 0, nil); err != nil {
			t.Fatalf("submit %v: %v", i, err)
		}
	}
	prios := sched.Prios()
	if err := sched.Submit(count, 0, nil); err != sched.ErrQueueFull {
		t.Errorf("got %v, want ErrQueueFull", err)
	}
	if !slices.Equal(prios, sched.Prios()) {
		t.Error("rejected submit modified the queue")
	}

	// Conservation: each accepted task runs exactly once.
	drain(t, sched.Cap)
	if runs != sched.Cap {
		t.Errorf("got %v runs, want %v", runs, sched.Cap)
	}
}

func TestStability(t *testing.T) {
	sched.Reset()

	got := []int{}
	log := func(arg any) { got = append(got, arg.(int)) }

	// Mixed priorities, equal ones must keep submission order.
	sched.Submit(log, 0, 2)
	sched.Submit(log, -1, 0)
	sched.Submit(log, 0, 3)
	sched.Submit(log, -1, 1)
	sched.Submit(log, 1, 4)
	sched.Submit(log, 1, 5)

	sched.Tick()
	drain(t, 6)

	if want := []int{0, 1, 2, 3, 4, 5}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestInvalidSubmit(t *testing.T) {
	sched.Reset()

	if err := sched.Submit(nil, 0, nil); err != sched.ErrNoAction {
		t.Errorf("got %v, want ErrNoAction", err)
	}
	if sched.Queued() != 0 {
		t.Error("rejected submit was queued")
	}
}

func TestResubmit(t *testing.T) {
	sched.Reset()

	got := []string{}
	log := func(arg any) { got = append(got, arg.(string)) }

	sched.Submit(func(any) {
		got = append(got, "outer")
		sched.Submit(log, 0, "inner")
	}, 0, nil)

	if !sched.Dispatch() {
		t.Fatal("outer didn't run")
	}
	drain(t, 1)

	if want := []string{"outer", "inner"}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// A handler that is allowed to submit already runs at the tick's priority.
// Submit must work from there and must not lower the mask on its way out,
// that would reopen the handler to preemption mid interrupt.
func TestSubmitMasked(t *testing.T) {
	sched.Reset()

	ran := false
	ipl := irq.Mask(1)
	err := sched.Submit(func(any) { ran = true }, 0, nil)
	masked := irq.Mask(0)
	irq.Unmask(ipl)

	if err != nil {
		t.Fatal(err)
	}
	if masked != 1 {
		t.Errorf("submit left the CPU priority level at %v, want 1", masked)
	}
	drain(t, 1)
	if !ran {
		t.Error("task submitted under mask didn't run")
	}
}

func TestAgingSaturates(t *testing.T) {
	sched.Reset()

	ran := false
	sched.Submit(func(any) { ran = true }, math.MinInt16, nil)
	sched.Tick() // must not wrap into the delay regime
	drain(t, 1)

	if !ran {
		t.Error("task at minimum priority didn't run")
	}
}

func TestTicks(t *testing.T) {
	sched.Reset()

	before := sched.Ticks()
	sched.Tick()
	sched.Tick()
	if got := sched.Ticks() - before; got != 2 {
		t.Errorf("got %v ticks, want 2", got)
	}
}
