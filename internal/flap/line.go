package flap

import (
	"time"

	"github.com/whaeuser/splitflap/internal/model"
)

// line owns the 16 cells of one display row plus the authoritative text that
// was last requested for it.
type line struct {
	d   *Display
	row int

	cells   [Cols]*cell
	current string // right-trimmed last requested text
	color   model.Color
}

func newLine(d *Display, row int) *line {
	l := &line{d: d, row: row, color: model.ColorWeiss}
	for i := range l.cells {
		l.cells[i] = newCell(d, row, i)
	}
	return l
}

// apply normalizes text and dispatches flips for exactly the positions whose
// requested glyph changed; unchanged cells are left untouched. Each differing
// cell starts delay + i*charStagger after now. The line's current text
// updates synchronously even though the flaps settle later. Counted
// dispatches arm the display's settle latch before the flip starts, so a
// cell that settles synchronously can never zero the latch early. Returns
// the number of cells dispatched.
func (l *line) apply(text string, delay time.Duration, counted bool) int {
	norm := l.d.charset.NormalizeLine(text)
	count := 0
	for i, ch := range norm {
		if l.cells[i].target == ch {
			continue
		}
		var onDone func()
		if counted {
			l.d.pending++
			onDone = l.d.flipDoneLocked
		}
		l.cells[i].flipTo(ch, delay+time.Duration(i)*l.d.charStagger, onDone)
		count++
	}
	l.current = trimLine(norm)
	return count
}

// setColor updates the line's styling color, emitting an event on change.
func (l *line) setColor(c model.Color) {
	if !c.Valid() || c == l.color {
		return
	}
	l.color = c
	l.d.events.LineColorChanged(l.row, c)
}

// targetRunes returns the glyphs the row is heading to, position by position.
func (l *line) targetRunes() [Cols]rune {
	var out [Cols]rune
	for i, c := range l.cells {
		out[i] = c.target
	}
	return out
}

// shownRunes returns the glyphs currently at rest on the leading faces.
func (l *line) shownRunes() [Cols]rune {
	var out [Cols]rune
	for i, c := range l.cells {
		out[i] = c.shown
	}
	return out
}
