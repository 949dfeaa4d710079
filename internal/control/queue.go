package control

import (
	"sync"

	"github.com/whaeuser/splitflap/internal/model"
)

// Queue is the bounded FIFO served to polling clients. When full the oldest
// command is dropped; pollers that fall that far behind resync via the state
// endpoint anyway.
type Queue struct {
	mu    sync.Mutex
	items []model.Command
	max   int
}

// NewQueue creates a queue holding at most max commands.
func NewQueue(max int) *Queue {
	if max <= 0 {
		max = model.DefaultQueueSize
	}
	return &Queue{max: max}
}

// Push appends a command, evicting the oldest when the queue is full.
func (q *Queue) Push(cmd model.Command) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) >= q.max {
		q.items = q.items[1:]
	}
	q.items = append(q.items, cmd)
}

// Pop removes and returns the oldest command, or an ActionNone command when
// the queue is empty.
func (q *Queue) Pop() model.Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return model.Command{Action: model.ActionNone}
	}
	cmd := q.items[0]
	q.items = q.items[1:]
	return cmd
}

// Len reports the number of queued commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
