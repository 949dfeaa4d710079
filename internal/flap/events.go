package flap

import "github.com/whaeuser/splitflap/internal/model"

// Listener receives engine side effects. Callbacks run on the engine
// timeline while its lock is held: implementations must return quickly and
// must never call back into the Display.
type Listener interface {
	// FlipStarted fires once per executed flip step, at the instant the
	// flap starts moving. This is the audio click point.
	FlipStarted(row, col int, step FlipStep)
	// CellCommitted fires when the flap comes to rest and the cell's
	// leading face shows ch.
	CellCommitted(row, col int, ch rune)
	// LineColorChanged fires when a line's styling color changes.
	LineColorChanged(row int, color model.Color)
	// Settled fires when a counted batch (setDisplay, clear, demo) has no
	// outstanding flips left.
	Settled(lines [Rows]string)
}

// NopListener ignores every event.
type NopListener struct{}

func (NopListener) FlipStarted(int, int, FlipStep)          {}
func (NopListener) CellCommitted(int, int, rune)            {}
func (NopListener) LineColorChanged(int, model.Color)       {}
func (NopListener) Settled([Rows]string)                    {}

// listeners fans events out in registration order.
type listeners []Listener

func (ls listeners) FlipStarted(row, col int, step FlipStep) {
	for _, l := range ls {
		l.FlipStarted(row, col, step)
	}
}

func (ls listeners) CellCommitted(row, col int, ch rune) {
	for _, l := range ls {
		l.CellCommitted(row, col, ch)
	}
}

func (ls listeners) LineColorChanged(row int, color model.Color) {
	for _, l := range ls {
		l.LineColorChanged(row, color)
	}
}

func (ls listeners) Settled(lines [Rows]string) {
	for _, l := range ls {
		l.Settled(lines)
	}
}
