// Package control holds the service-side authority for the display: the
// current board content, the command queue served to polling clients, and
// the websocket fan-out. The service never animates; animation is the
// viewer's job.
package control

import (
	"strings"
	"sync"
	"time"

	"github.com/whaeuser/splitflap/internal/model"
)

// State is the authoritative display content as last commanded. Text is
// stored uppercased and width-clamped so every surface reads back the same
// thing the board will show.
type State struct {
	mu       sync.Mutex
	lines    [model.Rows]string
	colors   [model.Rows]model.Color
	datetime bool
	nowFn    func() time.Time
}

// NewState returns an empty board with all lines weiss.
func NewState() *State {
	s := &State{nowFn: time.Now}
	for i := range s.colors {
		s.colors[i] = model.ColorWeiss
	}
	return s
}

// SetDisplay replaces the full board content.
func (s *State) SetDisplay(lines [model.Rows]string, colors [model.Rows]model.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < model.Rows; i++ {
		s.lines[i] = clampLine(lines[i])
		if colors[i].Valid() {
			s.colors[i] = colors[i]
		}
	}
	s.datetime = false
}

// SetLine replaces one line. An empty color name keeps the current color.
func (s *State) SetLine(idx int, text string, color model.Color) {
	if idx < 0 || idx >= model.Rows {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[idx] = clampLine(text)
	if color.Valid() {
		s.colors[idx] = color
	}
}

// Clear blanks every line and resets all colors to weiss.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		s.lines[i] = ""
		s.colors[i] = model.ColorWeiss
	}
	s.datetime = false
}

// SetDateTime flags whether clients should run their clock on line 0.
func (s *State) SetDateTime(enable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datetime = enable
}

// Snapshot returns the wire representation of the current state.
func (s *State) Snapshot() model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := model.State{
		Lines:        make([]string, model.Rows),
		Colors:       make([]string, model.Rows),
		DatetimeMode: s.datetime,
		Timestamp:    float64(s.nowFn().UnixNano()) / float64(time.Second),
	}
	for i := 0; i < model.Rows; i++ {
		out.Lines[i] = s.lines[i]
		out.Colors[i] = string(s.colors[i])
	}
	return out
}

// clampLine uppercases and truncates to the board width, the same
// normalization a physical board applies.
func clampLine(text string) string {
	text = strings.ToUpper(strings.TrimRight(text, " "))
	r := []rune(text)
	if len(r) > model.Cols {
		r = r[:model.Cols]
	}
	return string(r)
}
