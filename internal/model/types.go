package model

// Action identifies a display command. The wire names match the original
// protocol so existing REST and MQTT clients keep working.
type Action string

const (
	ActionNone       Action = "none"
	ActionState      Action = "state"
	ActionGetState   Action = "getState"
	ActionSetDisplay Action = "setDisplay"
	ActionSetLine    Action = "setLine"
	ActionClear      Action = "clear"
	ActionDemo       Action = "demo"
	ActionDateTime   Action = "datetime"
	ActionMode       Action = "mode"
)

// Mode names accepted by ActionMode commands.
const (
	ModeScroll     = "scroll"
	ModeMarquee    = "marquee"
	ModeBlink      = "blink"
	ModeWave       = "wave"
	ModeTypewriter = "typewriter"
	ModeRainbow    = "rainbow"
	ModeCountdown  = "countdown"
	ModeStop       = "stop"
)

// Command is the envelope exchanged over every transport. Display content is
// accepted in two wire formats: an array (`lines`/`colors`) or individual
// fields (`line1..line6`/`color1..color6`), mirroring the original API.
type Command struct {
	Action Action `json:"action"`

	Line1 string `json:"line1,omitempty"`
	Line2 string `json:"line2,omitempty"`
	Line3 string `json:"line3,omitempty"`
	Line4 string `json:"line4,omitempty"`
	Line5 string `json:"line5,omitempty"`
	Line6 string `json:"line6,omitempty"`

	Color1 string `json:"color1,omitempty"`
	Color2 string `json:"color2,omitempty"`
	Color3 string `json:"color3,omitempty"`
	Color4 string `json:"color4,omitempty"`
	Color5 string `json:"color5,omitempty"`
	Color6 string `json:"color6,omitempty"`

	Lines  []string `json:"lines,omitempty"`
	Colors []string `json:"colors,omitempty"`

	// setLine payload.
	Index *int   `json:"index,omitempty"`
	Text  string `json:"text,omitempty"`
	Color string `json:"color,omitempty"`

	// datetime payload.
	Enable *bool `json:"enable,omitempty"`

	// Mode payload.
	Mode        string   `json:"mode,omitempty"`
	Loop        bool     `json:"loop,omitempty"`
	LineIndices []int    `json:"lineIndices,omitempty"`
	Texts       []string `json:"texts,omitempty"`
	From        *int     `json:"from,omitempty"`
	To          *int     `json:"to,omitempty"`
	Step        *int     `json:"step,omitempty"`
	IntervalMs  int      `json:"intervalMs,omitempty"`

	// state payload (service → client).
	Data *State `json:"data,omitempty"`
}

// State is the authoritative display snapshot held by the service.
type State struct {
	Lines        []string `json:"lines"`
	Colors       []string `json:"colors"`
	DatetimeMode bool     `json:"datetime_mode"`
	Timestamp    float64  `json:"timestamp"`
}

// HasDisplayPayload reports whether the command carries display content in
// either wire format.
func (c *Command) HasDisplayPayload() bool {
	if c.Lines != nil {
		return true
	}
	for _, l := range c.lineFields() {
		if l != "" {
			return true
		}
	}
	return false
}

// DisplayLines resolves the command's display content to a fixed 6-line
// array, preferring the array format when both are present.
func (c *Command) DisplayLines() [Rows]string {
	var out [Rows]string
	if c.Lines != nil {
		copy(out[:], c.Lines)
		return out
	}
	copy(out[:], c.lineFields())
	return out
}

// DisplayColors resolves per-line colors; unset or unknown names yield weiss.
func (c *Command) DisplayColors() [Rows]Color {
	var out [Rows]Color
	fields := []string{c.Color1, c.Color2, c.Color3, c.Color4, c.Color5, c.Color6}
	for i := 0; i < Rows; i++ {
		name := fields[i]
		if c.Lines != nil || c.Colors != nil {
			name = ""
			if i < len(c.Colors) {
				name = c.Colors[i]
			}
		}
		out[i] = ParseColor(name)
	}
	return out
}

// Normalized returns a copy of the command with display content expanded into
// the individual line1..line6 fields, the format the original broadcast to
// its clients.
func (c Command) Normalized() Command {
	if c.Action != ActionSetDisplay {
		return c
	}
	lines := c.DisplayLines()
	colors := c.DisplayColors()
	c.Line1, c.Line2, c.Line3, c.Line4, c.Line5, c.Line6 =
		lines[0], lines[1], lines[2], lines[3], lines[4], lines[5]
	c.Color1, c.Color2, c.Color3, c.Color4, c.Color5, c.Color6 =
		string(colors[0]), string(colors[1]), string(colors[2]),
		string(colors[3]), string(colors[4]), string(colors[5])
	c.Lines = nil
	c.Colors = nil
	return c
}

func (c *Command) lineFields() []string {
	return []string{c.Line1, c.Line2, c.Line3, c.Line4, c.Line5, c.Line6}
}
