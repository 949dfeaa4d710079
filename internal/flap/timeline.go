package flap

import (
	"container/heap"
	"sync"
	"time"
)

// task is one scheduled continuation on the timeline. Canceled tasks stay in
// the heap and are skipped when they surface.
type task struct {
	due      time.Duration
	seq      uint64
	fn       func()
	canceled bool
}

func (t *task) cancel() {
	if t != nil {
		t.canceled = true
	}
}

type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}
func (h taskHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)        { *h = append(*h, x.(*task)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// timeline is a virtual-time timer queue. Every engine state transition runs
// as a timeline task while the owning Display's mutex is held, so there is a
// single logical thread of mutation regardless of how many goroutines call
// into the engine. Tasks scheduled for the same instant fire in scheduling
// order.
type timeline struct {
	now  time.Duration
	seq  uint64
	heap taskHeap
}

func newTimeline() *timeline {
	return &timeline{}
}

// after schedules fn to run d from the current virtual time.
func (tl *timeline) after(d time.Duration, fn func()) *task {
	if d < 0 {
		d = 0
	}
	tl.seq++
	t := &task{due: tl.now + d, seq: tl.seq, fn: fn}
	heap.Push(&tl.heap, t)
	return t
}

// next returns the due time of the earliest live task.
func (tl *timeline) next() (time.Duration, bool) {
	for len(tl.heap) > 0 {
		if tl.heap[0].canceled {
			heap.Pop(&tl.heap)
			continue
		}
		return tl.heap[0].due, true
	}
	return 0, false
}

// advanceTo runs every live task due at or before t, in due order, then moves
// the virtual clock to t. Tasks may schedule further tasks; those run in the
// same pass when they also fall within t.
func (tl *timeline) advanceTo(t time.Duration) {
	for len(tl.heap) > 0 {
		head := tl.heap[0]
		if head.canceled {
			heap.Pop(&tl.heap)
			continue
		}
		if head.due > t {
			break
		}
		heap.Pop(&tl.heap)
		tl.now = head.due
		head.fn()
	}
	if t > tl.now {
		tl.now = t
	}
}

// pending counts live tasks. Test hook.
func (tl *timeline) pending() int {
	n := 0
	for _, t := range tl.heap {
		if !t.canceled {
			n++
		}
	}
	return n
}

// driver advances a timeline against the wall clock. It is the only goroutine
// the engine owns; public Display methods nudge it whenever they schedule
// work with an earlier deadline than the one it sleeps on.
type driver struct {
	mu    *sync.Mutex
	tl    *timeline
	start time.Time
	wake  chan struct{}
	stop  chan struct{}
	done  chan struct{}
}

func startDriver(mu *sync.Mutex, tl *timeline) *driver {
	d := &driver{
		mu:    mu,
		tl:    tl,
		start: time.Now(),
		wake:  make(chan struct{}, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *driver) run() {
	defer close(d.done)

	const idleWait = time.Hour

	timer := time.NewTimer(idleWait)
	defer timer.Stop()

	for {
		d.mu.Lock()
		d.tl.advanceTo(time.Since(d.start))
		next, ok := d.tl.next()
		d.mu.Unlock()

		wait := idleWait
		if ok {
			wait = next - time.Since(d.start)
			if wait < 0 {
				wait = 0
			}
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-timer.C:
		case <-d.wake:
		case <-d.stop:
			return
		}
	}
}

// nudge wakes the driver after new work was scheduled.
func (d *driver) nudge() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *driver) shutdown() {
	close(d.stop)
	<-d.done
}
