package control

import (
	"errors"
	"fmt"
	"strings"

	"github.com/whaeuser/splitflap/internal/model"
)

// Center is the single dispatch path behind every transport. REST, the
// websocket endpoint and the MQTT bridge all feed commands through Dispatch,
// which validates, updates the authoritative state, queues for polling
// clients and broadcasts to websocket clients.
type Center struct {
	state *State
	queue *Queue
	hub   *Hub
	logf  func(format string, args ...any)
}

// NewCenter wires state, queue and hub together. logf may be nil.
func NewCenter(state *State, queue *Queue, hub *Hub, logf func(format string, args ...any)) *Center {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Center{state: state, queue: queue, hub: hub, logf: logf}
}

// Snapshot returns the current display state.
func (c *Center) Snapshot() model.State {
	return c.state.Snapshot()
}

// PollCommand pops the next queued command for polling clients.
func (c *Center) PollCommand() model.Command {
	return c.queue.Pop()
}

// ClientCount reports connected websocket clients.
func (c *Center) ClientCount() int {
	return c.hub.Count()
}

// Dispatch validates and applies one command. On success the normalized
// command is queued for pollers and broadcast to websocket clients. The
// returned error maps to an HTTP 400 at the REST surface.
func (c *Center) Dispatch(cmd model.Command) error {
	switch cmd.Action {
	case model.ActionSetDisplay:
		if !cmd.HasDisplayPayload() {
			return errors.New("setDisplay: no display content in either wire format")
		}
		c.state.SetDisplay(cmd.DisplayLines(), cmd.DisplayColors())

	case model.ActionSetLine:
		if cmd.Index == nil {
			return errors.New("setLine: missing line index")
		}
		if err := validLineIndex(*cmd.Index); err != nil {
			return fmt.Errorf("setLine: %w", err)
		}
		c.state.SetLine(*cmd.Index, cmd.Text, model.Color(cmd.Color))

	case model.ActionClear:
		c.state.Clear()

	case model.ActionDemo:
		c.state.SetDateTime(false)

	case model.ActionDateTime:
		enable := true
		if cmd.Enable != nil {
			enable = *cmd.Enable
		}
		cmd.Enable = &enable
		c.state.SetDateTime(enable)

	case model.ActionMode:
		if err := validateMode(&cmd); err != nil {
			return err
		}
		if cmd.Mode != model.ModeStop {
			c.state.SetDateTime(false)
		}

	default:
		return fmt.Errorf("unknown action %q", cmd.Action)
	}

	out := cmd.Normalized()
	c.queue.Push(out)
	c.hub.Broadcast(out)
	c.logf("dispatched %s", cmd.Action)
	return nil
}

func validLineIndex(idx int) error {
	if idx < 0 || idx >= model.Rows {
		return fmt.Errorf("line index %d out of range 0..%d", idx, model.Rows-1)
	}
	return nil
}

// validateMode checks the parameters a mode needs before it is forwarded.
// The animation engine validates again on the viewer side; rejecting here
// gives REST callers a 400 instead of a silently dead command.
func validateMode(cmd *model.Command) error {
	switch cmd.Mode {
	case model.ModeStop:
		return nil

	case model.ModeScroll, model.ModeTypewriter:
		if cmd.Index == nil {
			return fmt.Errorf("%s: missing line index", cmd.Mode)
		}
		if err := validLineIndex(*cmd.Index); err != nil {
			return fmt.Errorf("%s: %w", cmd.Mode, err)
		}
		if strings.TrimSpace(cmd.Text) == "" {
			return fmt.Errorf("%s: missing text", cmd.Mode)
		}
		return nil

	case model.ModeMarquee:
		if strings.TrimSpace(cmd.Text) == "" {
			return errors.New("marquee: missing text")
		}
		return nil

	case model.ModeBlink:
		if len(cmd.LineIndices) == 0 {
			return errors.New("blink: missing line indices")
		}
		for _, idx := range cmd.LineIndices {
			if err := validLineIndex(idx); err != nil {
				return fmt.Errorf("blink: %w", err)
			}
		}
		return nil

	case model.ModeWave:
		if len(cmd.Texts) == 0 {
			return errors.New("wave: missing target lines")
		}
		if len(cmd.Texts) > model.Rows {
			return fmt.Errorf("wave: %d lines exceed the board's %d", len(cmd.Texts), model.Rows)
		}
		return nil

	case model.ModeRainbow:
		if cmd.Index == nil {
			return errors.New("rainbow: missing line index")
		}
		if err := validLineIndex(*cmd.Index); err != nil {
			return fmt.Errorf("rainbow: %w", err)
		}
		if len(cmd.Texts) == 0 {
			return errors.New("rainbow: missing texts")
		}
		if cmd.IntervalMs <= 0 {
			return errors.New("rainbow: intervalMs must be positive")
		}
		return nil

	case model.ModeCountdown:
		if cmd.Index == nil {
			return errors.New("countdown: missing line index")
		}
		if err := validLineIndex(*cmd.Index); err != nil {
			return fmt.Errorf("countdown: %w", err)
		}
		if cmd.From == nil || cmd.To == nil {
			return errors.New("countdown: missing from/to bounds")
		}
		if cmd.Step != nil && *cmd.Step == 0 {
			return errors.New("countdown: step must be non-zero")
		}
		if cmd.IntervalMs <= 0 {
			return errors.New("countdown: intervalMs must be positive")
		}
		return nil

	case "":
		return errors.New("mode: missing mode name")
	default:
		return fmt.Errorf("unknown mode %q", cmd.Mode)
	}
}
