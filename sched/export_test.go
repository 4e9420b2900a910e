package sched

// Tick runs a single aging pass, exactly like the tick interrupt would.
// Allows deterministic tests without a running timer.
func Tick() { tick() }

// Reset empties the queue and zeroes the tick counter.
func Reset() {
	queue = taskq{}
	ticks.Store(0)
}

// Queued returns the current queue occupancy.
func Queued() int { return queue.n }

// Prios returns the priorities of all queued tasks in queue order.
func Prios() []int16 {
	p := make([]int16, queue.n)
	for i := range p {
		p[i] = queue.tasks[i].prio
	}
	return p
}
