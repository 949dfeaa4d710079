package flap

import (
	"time"

	"github.com/whaeuser/splitflap/internal/model"
)

// advance moves the virtual clock forward by dt, running everything due.
// Tests construct displays without a driver and step time by hand.
func (d *Display) advance(dt time.Duration) {
	d.mu.Lock()
	d.tl.advanceTo(d.tl.now + dt)
	d.mu.Unlock()
}

// virtualNow reads the engine clock.
func (d *Display) virtualNow() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tl.now
}

// livePending counts armed timeline tasks.
func (d *Display) livePending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tl.pending()
}

type clickEvent struct {
	row, col int
	ch       rune
	final    bool
	at       time.Duration
}

type commitEvent struct {
	row, col int
	ch       rune
	at       time.Duration
}

// recorder captures engine events with virtual timestamps. The timeline
// pointer is safe to read here: events fire while the display lock is held.
type recorder struct {
	tl      *timeline
	clicks  []clickEvent
	commits []commitEvent
	colors  map[int]model.Color
	settles int
}

func newRecorder() *recorder {
	return &recorder{colors: make(map[int]model.Color)}
}

func (r *recorder) FlipStarted(row, col int, step FlipStep) {
	r.clicks = append(r.clicks, clickEvent{row, col, step.Char, step.Final, r.tl.now})
}

func (r *recorder) CellCommitted(row, col int, ch rune) {
	r.commits = append(r.commits, commitEvent{row, col, ch, r.tl.now})
}

func (r *recorder) LineColorChanged(row int, color model.Color) {
	r.colors[row] = color
}

func (r *recorder) Settled(lines [Rows]string) {
	r.settles++
}

// newTestDisplay builds a driverless engine with a recorder attached.
func newTestDisplay(opts ...Option) (*Display, *recorder) {
	rec := newRecorder()
	d := newDisplay(append(opts, WithListener(rec))...)
	rec.tl = d.tl
	return d, rec
}
