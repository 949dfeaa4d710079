package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/whaeuser/splitflap/internal/audio"
	"github.com/whaeuser/splitflap/internal/flap"
	"github.com/whaeuser/splitflap/internal/model"
)

// CommandSender is where user commands go: the websocket client in
// production, a capture in tests.
type CommandSender interface {
	Send(cmd model.Command)
}

// Model is the viewer: a local animation engine rendered as a terminal
// board, driven by commands from the control service.
type Model struct {
	display *flap.Display
	clicker *audio.Clicker
	client  CommandSender
	keys    KeyMap

	input       textinput.Model
	inputActive bool

	connected bool
	muted     bool
	lastError string
	width     int
}

// NewModel builds the viewer around an animation engine. Client and display
// are attached after construction; the tea.Program, the engine listener and
// the websocket client reference each other, so wiring happens outside.
func NewModel(clicker *audio.Clicker) *Model {
	input := textinput.New()
	input.Prompt = ": "
	input.Placeholder = "set ABFLUG|GATE A15   line 2 rot VERSPAETET   marquee HALLO"
	input.CharLimit = 256
	return &Model{
		clicker: clicker,
		keys:    DefaultKeyMap(),
		input:   input,
	}
}

// AttachDisplay hands the model its animation engine. Must happen before
// the program runs.
func (m *Model) AttachDisplay(d *flap.Display) { m.display = d }

// AttachClient hands the model its connection to the service.
func (m *Model) AttachClient(c CommandSender) { m.client = c }

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case ConnStateMsg:
		m.connected = msg.Connected
		if msg.Err != nil {
			m.lastError = msg.Err.Error()
		} else if msg.Connected {
			m.lastError = ""
		}
		return m, nil

	case ServerCommandMsg:
		m.applyCommand(msg.Command)
		return m, nil

	case BoardChangedMsg, SettledMsg:
		// State already lives in the engine; receiving the message is
		// what triggers the redraw.
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.inputActive {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputActive {
		switch {
		case key.Matches(msg, m.keys.Escape):
			m.leaveInput()
			return m, nil
		case msg.Type == tea.KeyEnter:
			text := m.input.Value()
			m.leaveInput()
			m.submit(text)
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Clear):
		m.send(model.Command{Action: model.ActionClear})

	case key.Matches(msg, m.keys.Demo):
		m.send(model.Command{Action: model.ActionDemo})

	case key.Matches(msg, m.keys.DateTime):
		enable := !m.display.DateTimeActive()
		m.send(model.Command{Action: model.ActionDateTime, Enable: &enable})

	case key.Matches(msg, m.keys.Mute):
		m.muted = !m.muted
		if m.clicker != nil {
			m.clicker.SetMuted(m.muted)
		}

	case key.Matches(msg, m.keys.Command):
		m.inputActive = true
		m.lastError = ""
		return m, m.input.Focus()
	}
	return m, nil
}

func (m *Model) leaveInput() {
	m.inputActive = false
	m.input.Blur()
	m.input.SetValue("")
}

// submit parses one command bar entry and sends it to the service. The
// engine applies it when the service broadcasts it back, the same path
// every other client's commands take.
func (m *Model) submit(text string) {
	cmd, err := ParseInput(text)
	if err != nil {
		m.lastError = err.Error()
		return
	}
	m.send(cmd)
}

func (m *Model) send(cmd model.Command) {
	if m.client != nil {
		m.client.Send(cmd)
	}
}

// applyCommand routes a service command into the local animation engine.
func (m *Model) applyCommand(cmd model.Command) {
	switch cmd.Action {
	case model.ActionState:
		if cmd.Data == nil {
			return
		}
		colors := make([]model.Color, 0, len(cmd.Data.Colors))
		for _, name := range cmd.Data.Colors {
			colors = append(colors, model.ParseColor(name))
		}
		m.display.StopAllModes()
		m.display.StopDateTimeMode()
		m.display.SetDisplay(cmd.Data.Lines, colors)
		if cmd.Data.DatetimeMode {
			m.display.StartDateTimeMode()
		}

	case model.ActionSetDisplay:
		lines := cmd.DisplayLines()
		colors := cmd.DisplayColors()
		m.display.StopAllModes()
		m.display.SetDisplay(lines[:], colors[:])

	case model.ActionSetLine:
		if cmd.Index == nil {
			return
		}
		if cmd.Color != "" {
			m.display.SetLine(*cmd.Index, cmd.Text, model.ParseColor(cmd.Color))
		} else {
			m.display.SetLine(*cmd.Index, cmd.Text)
		}

	case model.ActionClear:
		m.display.Clear()

	case model.ActionDemo:
		m.display.StopDateTimeMode()
		m.display.StopAllModes()
		m.display.StartDemo()

	case model.ActionDateTime:
		if cmd.Enable == nil || *cmd.Enable {
			m.display.StartDateTimeMode()
		} else {
			m.display.StopDateTimeMode()
		}

	case model.ActionMode:
		if err := m.startMode(cmd); err != nil {
			m.lastError = err.Error()
		}

	case "error":
		m.lastError = cmd.Text
	}
}

func (m *Model) startMode(cmd model.Command) error {
	interval := time.Duration(cmd.IntervalMs) * time.Millisecond
	idx := 0
	if cmd.Index != nil {
		idx = *cmd.Index
	}

	switch cmd.Mode {
	case model.ModeStop:
		m.display.StopAllModes()
		return nil
	case model.ModeScroll:
		return m.display.StartScrolling(idx, cmd.Text, cmd.Loop)
	case model.ModeMarquee:
		return m.display.StartMarquee(cmd.Text, cmd.Loop)
	case model.ModeBlink:
		return m.display.StartBlink(cmd.LineIndices, cmd.Text)
	case model.ModeWave:
		return m.display.StartWave(cmd.Texts)
	case model.ModeTypewriter:
		return m.display.StartTypewriter(idx, cmd.Text)
	case model.ModeRainbow:
		return m.display.StartRainbow(idx, cmd.Texts, interval)
	case model.ModeCountdown:
		from, to := 0, 0
		if cmd.From != nil {
			from = *cmd.From
		}
		if cmd.To != nil {
			to = *cmd.To
		}
		step := -1
		if cmd.Step != nil {
			step = *cmd.Step
		} else if to > from {
			step = 1
		}
		return m.display.StartCountdown(idx, from, to, step, interval)
	}
	return nil
}
