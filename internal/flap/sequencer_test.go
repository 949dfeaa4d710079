package flap

import (
	"testing"
	"time"
)

func TestComputePathNoOp(t *testing.T) {
	c := DefaultCharset()
	for _, r := range c.symbols {
		if path := c.ComputePath(r, r); len(path) != 0 {
			t.Fatalf("ComputePath(%q,%q) should be empty, got %d steps", r, r, len(path))
		}
	}
}

func TestComputePathEndsOnTarget(t *testing.T) {
	c := DefaultCharset()
	for _, from := range c.symbols {
		for _, to := range c.symbols {
			if from == to {
				continue
			}
			path := c.ComputePath(from, to)
			if len(path) == 0 {
				t.Fatalf("ComputePath(%q,%q) empty", from, to)
			}
			last := path[len(path)-1]
			if last.Char != to {
				t.Fatalf("ComputePath(%q,%q) ends on %q", from, to, last.Char)
			}
			if !last.Final {
				t.Fatalf("ComputePath(%q,%q): last step not marked final", from, to)
			}
		}
	}
}

func TestComputePathBounds(t *testing.T) {
	c := DefaultCharset()
	for _, from := range c.symbols {
		for _, to := range c.symbols {
			if from == to {
				continue
			}
			n := len(c.ComputePath(from, to))
			if n < 3 || n > 6 {
				t.Fatalf("ComputePath(%q,%q) has %d steps, want 3..6", from, to, n)
			}
		}
	}
}

func TestComputePathDurations(t *testing.T) {
	c := DefaultCharset()
	path := c.ComputePath('A', 'K')
	for i, step := range path {
		final := i == len(path)-1
		want := 150 * time.Millisecond
		if final {
			want = 300 * time.Millisecond
		}
		if step.Duration != want {
			t.Errorf("step %d duration %v, want %v", i, step.Duration, want)
		}
		if step.Final != final {
			t.Errorf("step %d Final = %v", i, step.Final)
		}
	}
}

func TestComputePathNormalizesInput(t *testing.T) {
	c := DefaultCharset()
	path := c.ComputePath('a', 'b')
	if path[len(path)-1].Char != 'B' {
		t.Fatalf("lowercase input should fold to uppercase target, got %q", path[len(path)-1].Char)
	}
	if got := c.ComputePath('?', '?'); len(got) != 0 {
		t.Error("two unknown glyphs both fold to space: no-op path expected")
	}
}

func TestComputePathDirectionTieRollsForward(t *testing.T) {
	// Even-sized drum so forward and backward distances can tie.
	c := NewCharset("ABCD")
	path := c.ComputePath('A', 'C')
	// Forward travel passes B; backward would pass D.
	for _, step := range path[:len(path)-1] {
		if step.Char == 'D' {
			t.Fatalf("tie must roll forward, path passed %q", step.Char)
		}
	}
}

func TestComputePathPrefersShorterDirection(t *testing.T) {
	c := DefaultCharset()
	// '/' is the last flap, one backward step from space.
	path := c.ComputePath(' ', '/')
	for _, step := range path[:len(path)-1] {
		if idx := c.IndexOf(step.Char); idx > 0 && idx < c.IndexOf('/')-maxSteps {
			t.Fatalf("path traveled forward through %q instead of rolling back", step.Char)
		}
	}
}
