package flap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/whaeuser/splitflap/internal/model"
)

func rainbowColor(i int) model.Color {
	return model.Colors[i%len(model.Colors)]
}

// Mode tick intervals.
const (
	scrollSpeed         = 100 * time.Millisecond
	marqueeSpeed        = 80 * time.Millisecond
	blinkInterval       = 500 * time.Millisecond
	waveStepDelay       = 50 * time.Millisecond
	typewriterCharDelay = 100 * time.Millisecond
	typewriterHold      = 200 * time.Millisecond

	typewriterCursor = '-'
)

type modeKind int

const (
	modeScroll modeKind = iota
	modeMarquee
	modeBlink
	modeWave
	modeTypewriter
	modeRainbow
	modeCountdown
)

func (k modeKind) String() string {
	switch k {
	case modeScroll:
		return "scroll"
	case modeMarquee:
		return "marquee"
	case modeBlink:
		return "blink"
	case modeWave:
		return "wave"
	case modeTypewriter:
		return "typewriter"
	case modeRainbow:
		return "rainbow"
	case modeCountdown:
		return "countdown"
	}
	return "unknown"
}

// modeState tracks the single active display mode. Exactly one continuation
// task is armed at a time; canceling it tears the whole mode down.
type modeState struct {
	kind modeKind
	task *task
}

// cancelModeLocked synchronously disarms the active mode's timer, if any.
// Called before any direct mutation and before starting another mode, so two
// modes can never write to the board concurrently.
func (d *Display) cancelModeLocked() {
	if d.mode == nil {
		return
	}
	d.mode.task.cancel()
	d.mode = nil
}

// StopAllModes cancels whichever display mode is active. No mode timers
// remain armed afterwards.
func (d *Display) StopAllModes() {
	d.mu.Lock()
	defer d.unlockNudge()
	d.cancelModeLocked()
}

// startModeLocked admits a new mode, superseding the previous one. Returns
// nil when the board is busy animating: mode starts follow the same silent
// drop policy as direct mutation.
func (d *Display) startModeLocked(kind modeKind) *modeState {
	if d.phase == phaseAnimating {
		d.logf("%s dropped: display busy", kind)
		return nil
	}
	d.cancelModeLocked()
	m := &modeState{kind: kind}
	d.mode = m
	return m
}

// modeLineLocked routes a mode's line write, honoring the datetime hold on
// line 0.
func (d *Display) modeLineLocked(idx int, text string) {
	if d.datetime && idx == 0 {
		return
	}
	d.lines[idx].apply(text, 0, false)
}

func (d *Display) validLine(idx int) error {
	if idx < 0 || idx >= Rows {
		return fmt.Errorf("line index %d out of range 0..%d", idx, Rows-1)
	}
	return nil
}

// StartScrolling scrolls text horizontally through one line. Text that fits
// the line is written directly and no timer is armed. With loop the window
// wraps forever; otherwise the mode stops after one full traversal.
func (d *Display) StartScrolling(lineIdx int, text string, loop bool) error {
	d.mu.Lock()
	defer d.unlockNudge()

	if err := d.validLine(lineIdx); err != nil {
		return err
	}
	if d.phase == phaseAnimating {
		d.logf("scroll dropped: display busy")
		return nil
	}
	if len([]rune(text)) <= Cols {
		d.cancelModeLocked()
		d.modeLineLocked(lineIdx, text)
		return nil
	}

	m := d.startModeLocked(modeScroll)
	if m == nil {
		return nil
	}

	padded := []rune(text + strings.Repeat(" ", Cols))
	pos := 0
	var tick func()
	tick = func() {
		if d.mode != m {
			return
		}
		win := make([]rune, Cols)
		for i := range win {
			win[i] = padded[(pos+i)%len(padded)]
		}
		d.modeLineLocked(lineIdx, string(win))
		pos++
		if pos >= len(padded) {
			if !loop {
				d.mode = nil
				return
			}
			pos = 0
		}
		m.task = d.tl.after(scrollSpeed, tick)
	}
	tick()
	return nil
}

// StartMarquee treats the whole board as one 96-character ring and scrolls
// text through it, one character per tick. Each tick recomputes all six
// visible windows by modular indexing into the ring.
func (d *Display) StartMarquee(text string, loop bool) error {
	d.mu.Lock()
	defer d.unlockNudge()

	if strings.TrimSpace(text) == "" {
		return errors.New("marquee: empty text")
	}
	m := d.startModeLocked(modeMarquee)
	if m == nil {
		return nil
	}

	unit := []rune(text + "   ")
	ring := make([]rune, 0, Rows*Cols+len(unit))
	for len(ring) < Rows*Cols {
		ring = append(ring, unit...)
	}

	offset := 0
	var tick func()
	tick = func() {
		if d.mode != m {
			return
		}
		for row := 0; row < Rows; row++ {
			win := make([]rune, Cols)
			for col := 0; col < Cols; col++ {
				win[col] = ring[(offset+row*Cols+col)%len(ring)]
			}
			d.modeLineLocked(row, string(win))
		}
		offset++
		if offset >= len(ring) {
			if !loop {
				d.mode = nil
				return
			}
			offset = 0
		}
		m.task = d.tl.after(marqueeSpeed, tick)
	}
	tick()
	return nil
}

// StartBlink toggles the given lines between their content and blank on a
// fixed interval. With override text the visible phase shows that text
// instead of the captured original.
func (d *Display) StartBlink(lineIdxs []int, override string) error {
	d.mu.Lock()
	defer d.unlockNudge()

	if len(lineIdxs) == 0 {
		return errors.New("blink: no lines given")
	}
	for _, idx := range lineIdxs {
		if err := d.validLine(idx); err != nil {
			return fmt.Errorf("blink: %w", err)
		}
	}
	m := d.startModeLocked(modeBlink)
	if m == nil {
		return nil
	}

	original := make(map[int]string, len(lineIdxs))
	for _, idx := range lineIdxs {
		original[idx] = d.lines[idx].current
	}

	visible := true
	var tick func()
	tick = func() {
		if d.mode != m {
			return
		}
		visible = !visible
		for _, idx := range lineIdxs {
			switch {
			case !visible:
				d.modeLineLocked(idx, "")
			case override != "":
				d.modeLineLocked(idx, override)
			default:
				d.modeLineLocked(idx, original[idx])
			}
		}
		m.task = d.tl.after(blinkInterval, tick)
	}
	m.task = d.tl.after(blinkInterval, tick)
	return nil
}

// StartWave reveals the target board column by column: every waveStepDelay
// one more column flips to its target glyph across all six lines at once.
// Terminates after the 16th column.
func (d *Display) StartWave(lines []string) error {
	d.mu.Lock()
	defer d.unlockNudge()

	m := d.startModeLocked(modeWave)
	if m == nil {
		return nil
	}

	var target [Rows][Cols]rune
	var work [Rows][]rune
	for r := 0; r < Rows; r++ {
		text := ""
		if r < len(lines) {
			text = lines[r]
		}
		target[r] = d.charset.NormalizeLine(text)
		cur := d.lines[r].targetRunes()
		work[r] = append([]rune(nil), cur[:]...)
	}

	col := 0
	var step func()
	step = func() {
		if d.mode != m {
			return
		}
		for r := 0; r < Rows; r++ {
			work[r][col] = target[r][col]
			d.modeLineLocked(r, string(work[r]))
		}
		col++
		if col >= Cols {
			d.mode = nil
			return
		}
		m.task = d.tl.after(waveStepDelay, step)
	}
	step()
	return nil
}

// StartTypewriter reveals one line character by character with a trailing
// cursor glyph, then holds briefly and removes the cursor.
func (d *Display) StartTypewriter(lineIdx int, text string) error {
	d.mu.Lock()
	defer d.unlockNudge()

	if err := d.validLine(lineIdx); err != nil {
		return fmt.Errorf("typewriter: %w", err)
	}
	m := d.startModeLocked(modeTypewriter)
	if m == nil {
		return nil
	}

	norm := d.charset.NormalizeLine(text)
	full := trimLine(norm)
	runes := []rune(full)

	i := 0
	var tick func()
	tick = func() {
		if d.mode != m {
			return
		}
		if i < len(runes) {
			partial := string(runes[:i+1])
			if i+1 < Cols {
				partial += string(typewriterCursor)
			}
			d.modeLineLocked(lineIdx, partial)
			i++
			m.task = d.tl.after(typewriterCharDelay, tick)
			return
		}
		// Full text revealed; drop the cursor after the hold.
		m.task = d.tl.after(typewriterHold, func() {
			if d.mode != m {
				return
			}
			d.modeLineLocked(lineIdx, full)
			d.mode = nil
		})
	}
	tick()
	return nil
}

// StartRainbow cycles a line through the given texts at a fixed interval,
// rotating the line color through the full vocabulary as it goes. Wraps
// forever until superseded or stopped.
func (d *Display) StartRainbow(lineIdx int, texts []string, interval time.Duration) error {
	d.mu.Lock()
	defer d.unlockNudge()

	if err := d.validLine(lineIdx); err != nil {
		return fmt.Errorf("rainbow: %w", err)
	}
	if len(texts) == 0 {
		return errors.New("rainbow: no texts given")
	}
	if interval <= 0 {
		return fmt.Errorf("rainbow: interval %v must be positive", interval)
	}
	m := d.startModeLocked(modeRainbow)
	if m == nil {
		return nil
	}

	i := 0
	var tick func()
	tick = func() {
		if d.mode != m {
			return
		}
		if !(d.datetime && lineIdx == 0) {
			d.lines[lineIdx].setColor(rainbowColor(i))
		}
		d.modeLineLocked(lineIdx, texts[i%len(texts)])
		i++
		m.task = d.tl.after(interval, tick)
	}
	tick()
	return nil
}

// StartCountdown steps a numeric display from one bound toward the other on
// a fixed interval, stopping once the bound is crossed. A positive step
// counts up, a negative one counts down.
func (d *Display) StartCountdown(lineIdx, from, to, step int, interval time.Duration) error {
	d.mu.Lock()
	defer d.unlockNudge()

	if err := d.validLine(lineIdx); err != nil {
		return fmt.Errorf("countdown: %w", err)
	}
	if interval <= 0 {
		return fmt.Errorf("countdown: interval %v must be positive", interval)
	}
	if step == 0 {
		return errors.New("countdown: step must be non-zero")
	}
	if (step > 0 && from > to) || (step < 0 && from < to) {
		return fmt.Errorf("countdown: step %d never reaches %d from %d", step, to, from)
	}
	m := d.startModeLocked(modeCountdown)
	if m == nil {
		return nil
	}

	cur := from
	var tick func()
	tick = func() {
		if d.mode != m {
			return
		}
		d.modeLineLocked(lineIdx, strconv.Itoa(cur))
		cur += step
		if (step > 0 && cur > to) || (step < 0 && cur < to) {
			d.mode = nil
			return
		}
		m.task = d.tl.after(interval, tick)
	}
	tick()
	return nil
}
