package flap

import (
	"strings"
	"sync"
	"time"

	"github.com/whaeuser/splitflap/internal/model"
)

// Default stagger offsets. Staggering turns a simultaneous update into a
// rolling wave across the board instead of a flicker.
const (
	defaultCharStagger = 80 * time.Millisecond
	defaultLineStagger = 200 * time.Millisecond

	clockInterval    = time.Second
	defaultDemoDwell = 5 * time.Second
)

type phase int

const (
	phaseIdle phase = iota
	phaseAnimating
)

// Display is the animation engine for one 6x16 split-flap board. All mutation
// happens under a single lock on a virtual timeline, which is the Go
// rendering of the original's cooperative single-threaded scheduling: public
// methods admit or drop a request synchronously, and every later state
// transition is a timeline task.
//
// Mutating calls are fire-and-forget. A call arriving while the board is
// animating is silently dropped; callers observe progress through
// IsAnimating and the Listener events, never through return values.
type Display struct {
	mu  sync.Mutex
	tl  *timeline
	drv *driver

	charset *Charset
	lines   [Rows]*line
	events  listeners

	charStagger time.Duration
	lineStagger time.Duration

	phase   phase
	pending int // outstanding counted flips while animating

	mode *modeState

	datetime     bool
	datetimeTask *task

	scenes    []Scene
	demoDwell time.Duration

	nowFn func() time.Time
	logf  func(format string, args ...any)
}

// Option configures a Display.
type Option func(*Display)

// WithListener registers an event listener. May be given multiple times.
func WithListener(l Listener) Option {
	return func(d *Display) { d.events = append(d.events, l) }
}

// WithCharset replaces the default 41-symbol drum.
func WithCharset(c *Charset) Option {
	return func(d *Display) { d.charset = c }
}

// WithCharStagger sets the per-character start offset within a line.
func WithCharStagger(s time.Duration) Option {
	return func(d *Display) { d.charStagger = s }
}

// WithLineStagger sets the per-line start offset of a full board update.
func WithLineStagger(s time.Duration) Option {
	return func(d *Display) { d.lineStagger = s }
}

// WithScenes replaces the built-in demo sequence.
func WithScenes(scenes []Scene) Option {
	return func(d *Display) { d.scenes = scenes }
}

// WithNowFunc overrides the wall clock used by datetime mode.
func WithNowFunc(fn func() time.Time) Option {
	return func(d *Display) { d.nowFn = fn }
}

// WithLogger routes dropped-command notices somewhere visible. The engine
// never logs by default.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(d *Display) { d.logf = logf }
}

// New creates a Display and starts its real-time driver. Close releases it.
func New(opts ...Option) *Display {
	d := newDisplay(opts...)
	d.drv = startDriver(&d.mu, d.tl)
	return d
}

// newDisplay builds an engine without a driver. Tests use it directly and
// advance the timeline by hand.
func newDisplay(opts ...Option) *Display {
	d := &Display{
		tl:          newTimeline(),
		charset:     DefaultCharset(),
		charStagger: defaultCharStagger,
		lineStagger: defaultLineStagger,
		scenes:      DefaultScenes,
		demoDwell:   defaultDemoDwell,
		nowFn:       time.Now,
		logf:        func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(d)
	}
	for i := range d.lines {
		d.lines[i] = newLine(d, i)
	}
	return d
}

// Close stops the driver goroutine. Pending animations are abandoned.
func (d *Display) Close() {
	if d.drv != nil {
		d.drv.shutdown()
	}
}

func (d *Display) unlockNudge() {
	d.mu.Unlock()
	if d.drv != nil {
		d.drv.nudge()
	}
}

// SetDisplay requests a full board update with optional per-line colors.
// Dropped while a previous full update is still animating. While datetime
// mode is active, line 0 is protected and skipped.
func (d *Display) SetDisplay(lines []string, colors []model.Color) {
	d.mu.Lock()
	defer d.unlockNudge()

	if d.phase == phaseAnimating {
		d.logf("setDisplay dropped: display busy")
		return
	}
	d.cancelModeLocked()

	d.beginBatchLocked(func() {
		for i := 0; i < Rows; i++ {
			if d.datetime && i == 0 {
				d.logf("setDisplay: line 0 reserved by datetime mode")
				continue
			}
			text := ""
			if i < len(lines) {
				text = lines[i]
			}
			if i < len(colors) {
				d.lines[i].setColor(colors[i])
			}
			d.lines[i].apply(text, time.Duration(i)*d.lineStagger, true)
		}
	})
}

// SetLine updates a single line without the global animating transition.
// No-op for an out-of-range index; dropped while the board is animating,
// while a display mode is active, or, for line 0, while datetime mode holds
// it.
func (d *Display) SetLine(idx int, text string, color ...model.Color) {
	d.mu.Lock()
	defer d.unlockNudge()

	if idx < 0 || idx >= Rows {
		return
	}
	if d.phase == phaseAnimating {
		d.logf("setLine dropped: display busy")
		return
	}
	if d.mode != nil {
		d.logf("setLine dropped: display mode active")
		return
	}
	if d.datetime && idx == 0 {
		d.logf("setLine: line 0 reserved by datetime mode")
		return
	}

	if len(color) > 0 {
		d.lines[idx].setColor(color[0])
	}
	d.lines[idx].apply(text, 0, false)
}

// Clear blanks the whole board. Stops datetime mode first.
func (d *Display) Clear() {
	d.mu.Lock()
	defer d.unlockNudge()

	if d.phase == phaseAnimating {
		d.logf("clear dropped: display busy")
		return
	}
	d.stopDateTimeLocked()
	d.cancelModeLocked()

	d.beginBatchLocked(func() {
		for i := 0; i < Rows; i++ {
			d.lines[i].apply("", time.Duration(i)*d.lineStagger, true)
		}
	})
}

// StartDemo plays the configured scene sequence with a fixed dwell between
// scenes. The board counts as animating for the entire run and returns to
// idle once the final scene's flips settle.
func (d *Display) StartDemo() {
	d.mu.Lock()
	defer d.unlockNudge()

	if d.phase == phaseAnimating {
		d.logf("demo dropped: display busy")
		return
	}
	d.stopDateTimeLocked()
	d.cancelModeLocked()

	if len(d.scenes) == 0 {
		return
	}

	// The run guard keeps the latch above zero between scenes; it is
	// released when the final scene has been dispatched.
	d.phase = phaseAnimating
	d.pending = 1
	for i, scene := range d.scenes {
		scene := scene
		last := i == len(d.scenes)-1
		d.tl.after(time.Duration(i)*d.demoDwell, func() {
			d.applySceneLocked(scene)
			if last {
				d.flipDoneLocked()
			}
		})
	}
}

func (d *Display) applySceneLocked(s Scene) {
	for i := 0; i < Rows; i++ {
		text := ""
		if i < len(s.Lines) {
			text = s.Lines[i]
		}
		if i < len(s.Colors) && s.Colors[i] != "" {
			d.lines[i].setColor(model.ParseColor(s.Colors[i]))
		}
		d.lines[i].apply(text, time.Duration(i)*d.lineStagger, true)
	}
}

// beginBatchLocked runs dispatch with the settle latch armed. The guard count
// covers the dispatch itself so that cells settling synchronously cannot
// flip the phase back to idle mid-batch.
func (d *Display) beginBatchLocked(dispatch func()) {
	d.phase = phaseAnimating
	d.pending = 1
	dispatch()
	d.flipDoneLocked()
}

// flipDoneLocked is the completion-counting barrier: one count per dispatched
// cell plus one guard per batch. At zero the board is settled.
func (d *Display) flipDoneLocked() {
	d.pending--
	if d.pending > 0 || d.phase != phaseAnimating {
		return
	}
	d.phase = phaseIdle
	d.events.Settled(d.snapshotLocked())
}

// StartDateTimeMode renders the clock into line 0 and keeps it current with
// a 1-second repeating task. Line 0 is protected from direct writes while
// active. Any running display mode is canceled first.
func (d *Display) StartDateTimeMode() {
	d.mu.Lock()
	defer d.unlockNudge()

	d.cancelModeLocked()
	if d.datetime {
		return
	}
	d.datetime = true
	d.renderClockLocked()
	d.datetimeTask = d.tl.after(clockInterval, d.clockTickLocked)
}

// StopDateTimeMode cancels the clock task and releases line 0.
func (d *Display) StopDateTimeMode() {
	d.mu.Lock()
	defer d.unlockNudge()
	d.stopDateTimeLocked()
}

func (d *Display) stopDateTimeLocked() {
	if !d.datetime {
		return
	}
	d.datetime = false
	d.datetimeTask.cancel()
	d.datetimeTask = nil
}

func (d *Display) clockTickLocked() {
	if !d.datetime {
		return
	}
	d.renderClockLocked()
	d.datetimeTask = d.tl.after(clockInterval, d.clockTickLocked)
}

// renderClockLocked re-renders line 0 only when the formatted text actually
// changed: the visible granularity is minutes, so most ticks flip nothing.
func (d *Display) renderClockLocked() {
	text := FormatClock(d.nowFn())
	if strings.TrimRight(text, " ") == d.lines[0].current {
		return
	}
	d.lines[0].apply(text, 0, false)
}

// FormatClock lays out date and time on one line: date left-justified, time
// right-justified, at least one space between, truncated to the line width.
// With the 10-char date and 8-char time this always truncates to
// "DD.MM.YYYY HH:MM".
func FormatClock(t time.Time) string {
	date := t.Format("02.01.2006")
	clock := t.Format("15:04:05")
	pad := Cols - len(date) - len(clock)
	if pad < 1 {
		pad = 1
	}
	s := date + strings.Repeat(" ", pad) + clock
	if len(s) > Cols {
		s = s[:Cols]
	}
	return s
}

// CurrentDisplay returns the last requested text per line, right-trimmed.
// This is the authoritative state; flaps may still be settling while it
// already reads the new content.
func (d *Display) CurrentDisplay() [Rows]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *Display) snapshotLocked() [Rows]string {
	var out [Rows]string
	for i, l := range d.lines {
		out[i] = l.current
	}
	return out
}

// Grid returns the glyphs currently at rest on the board, row by row.
func (d *Display) Grid() [Rows][Cols]rune {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out [Rows][Cols]rune
	for i, l := range d.lines {
		out[i] = l.shownRunes()
	}
	return out
}

// LineColors returns the per-line styling colors.
func (d *Display) LineColors() [Rows]model.Color {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out [Rows]model.Color
	for i, l := range d.lines {
		out[i] = l.color
	}
	return out
}

// IsAnimating reports whether a counted batch still has outstanding flips.
func (d *Display) IsAnimating() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase == phaseAnimating
}

// DateTimeActive reports whether line 0 is held by the clock.
func (d *Display) DateTimeActive() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.datetime
}

// ActiveMode returns the running display mode's name, or "" when none is
// active.
func (d *Display) ActiveMode() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mode == nil {
		return ""
	}
	return d.mode.kind.String()
}
