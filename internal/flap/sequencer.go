package flap

import (
	"math"
	"time"
)

// Flip timing. The final flap settles slower than the intermediate ones, and
// every step spends its duration twice on screen: once flapping down, once
// flapping up.
const (
	stepDuration      = 150 * time.Millisecond
	finalStepDuration = 300 * time.Millisecond
	stepPause         = 50 * time.Millisecond

	minSteps = 3
	maxSteps = 6
)

// FlipStep is one mechanical transition of a single cell.
type FlipStep struct {
	Char     rune
	Duration time.Duration
	Final    bool
}

// ComputePath returns the ordered flip sequence from one glyph to another.
// An empty path means the cell is already showing the target and no animation
// is needed. Otherwise the path has between 3 and 6 steps, travels in the
// cyclic direction with the shorter distance (ties roll forward), and its
// last step always lands on the exact target glyph.
func (c *Charset) ComputePath(from, to rune) []FlipStep {
	from = c.Normalize(from)
	to = c.Normalize(to)
	if from == to {
		return nil
	}

	n := c.Size()
	fi := c.index[from]
	ti := c.index[to]

	fwd := (ti - fi + n) % n
	bwd := (fi - ti + n) % n
	dist, dir := fwd, 1
	if bwd < fwd {
		dist, dir = bwd, -1
	}

	raw := ti - fi
	if raw < 0 {
		raw = -raw
	}
	steps := raw
	if steps < minSteps {
		steps = minSteps
	}
	if steps > maxSteps {
		steps = maxSteps
	}

	path := make([]FlipStep, 0, steps)
	for i := 1; i <= steps; i++ {
		final := i == steps
		var ch rune
		if final {
			// Rounding drift never reaches the viewer: the drum must
			// stop on the requested flap exactly.
			ch = to
		} else {
			off := int(math.Round(float64(dist) * float64(i) / float64(steps)))
			ch = c.At(fi + dir*off)
		}
		dur := stepDuration
		if final {
			dur = finalStepDuration
		}
		path = append(path, FlipStep{Char: ch, Duration: dur, Final: final})
	}
	return path
}
