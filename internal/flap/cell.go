package flap

import "time"

// cell owns one character position's mechanical state: the glyph currently at
// rest on its leading face and the flip sequence in flight, if any. A cell's
// steps run strictly sequentially; overlap is impossible because the next
// continuation is only armed when the previous one commits.
type cell struct {
	d        *Display
	row, col int

	shown  rune // glyph at rest on the leading face
	target rune // glyph of the last requested flip

	path    []FlipStep
	stepIdx int
	timer   *task  // next armed continuation, nil when idle
	onDone  func() // settle callback of the active dispatch, may be nil
}

func newCell(d *Display, row, col int) *cell {
	return &cell{d: d, row: row, col: col, shown: ' ', target: ' '}
}

// flipTo retargets the cell. A sequence already in flight is abandoned at its
// last committed glyph and the fresh path starts after delay. When the cell
// already shows the target nothing is animated: no click, no visual change.
func (c *cell) flipTo(target rune, delay time.Duration, onDone func()) {
	c.timer.cancel()
	c.timer = nil
	if c.onDone != nil {
		// Release the superseded dispatch so its batch can settle.
		done := c.onDone
		c.onDone = nil
		done()
	}

	c.target = target
	c.onDone = onDone
	if target == c.shown {
		c.settle()
		return
	}
	c.timer = c.d.tl.after(delay, c.start)
}

func (c *cell) start() {
	c.path = c.d.charset.ComputePath(c.shown, c.target)
	if len(c.path) == 0 {
		c.settle()
		return
	}
	c.stepIdx = 0
	c.runStep()
}

func (c *cell) runStep() {
	step := c.path[c.stepIdx]
	c.d.events.FlipStarted(c.row, c.col, step)
	// Down-flip plus up-flip: the flap occupies the full transform window
	// before the glyph commits to the leading face.
	c.timer = c.d.tl.after(2*step.Duration, c.commitStep)
}

func (c *cell) commitStep() {
	step := c.path[c.stepIdx]
	c.shown = step.Char
	c.d.events.CellCommitted(c.row, c.col, c.shown)

	c.stepIdx++
	if c.stepIdx >= len(c.path) {
		c.settle()
		return
	}
	c.timer = c.d.tl.after(stepPause, c.runStep)
}

// settle returns the cell to idle and releases its dispatch callback.
func (c *cell) settle() {
	c.path = nil
	c.stepIdx = 0
	c.timer = nil
	if c.onDone != nil {
		done := c.onDone
		c.onDone = nil
		done()
	}
}

// idle reports whether no flip sequence is armed or in flight.
func (c *cell) idle() bool { return c.timer == nil && c.path == nil }
