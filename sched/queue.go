package sched

import "math"

// A task is a deferred call: a function, its argument and a priority. The
// argument stays owned by the submitter, the scheduler never touches it.
//
// The priority is dual use. A positive value is the remaining delay in ticks
// before the task becomes runnable. Zero and negative values order runnable
// tasks, more negative runs earlier.
type task struct {
	fn   func(arg any)
	arg  any
	prio int16
}

// taskq keeps tasks sorted by priority. Instead of resorting before each
// dispatch it inserts at the right position: aging decrements all priorities
// uniformly, which preserves the relative order. Inserting behind tasks of
// equal priority keeps dispatch stable in submission order.
//
// All methods are called with the tick interrupt masked, age additionally
// from the tick handler itself.
type taskq struct {
	tasks [Cap]task
	n     int
}

// insert places t behind all tasks with prio <= t.prio. Reports false if the
// queue is full, leaving it unchanged.
func (q *taskq) insert(t task) bool {
	if q.n == Cap {
		return false
	}
	i := q.n
	for i > 0 && q.tasks[i-1].prio > t.prio {
		q.tasks[i] = q.tasks[i-1]
		i--
	}
	q.tasks[i] = t
	q.n++
	return true
}

// next pops the head task if it is runnable, i.e. its delay has expired.
func (q *taskq) next() (t task, ok bool) {
	if q.n == 0 || q.tasks[0].prio > 0 {
		return
	}
	t = q.tasks[0]
	copy(q.tasks[:q.n-1], q.tasks[1:q.n])
	q.n--
	q.tasks[q.n] = task{} // release references
	return t, true
}

// age decrements every queued task's priority by one tick, saturating instead
// of wrapping around. Tasks already in the negative regime just keep aging,
// which is intentional: it implements strict priority classes.
//
//go:nosplit
func (q *taskq) age() {
	for i := 0; i < q.n; i++ {
		if q.tasks[i].prio != math.MinInt16 {
			q.tasks[i].prio--
		}
	}
}
