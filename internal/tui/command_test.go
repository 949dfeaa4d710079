package tui

import (
	"testing"

	"github.com/whaeuser/splitflap/internal/model"
)

func TestParseInputSet(t *testing.T) {
	cmd, err := ParseInput("set ABFLUG | GATE A15 | 12:30")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Action != model.ActionSetDisplay {
		t.Errorf("action = %q", cmd.Action)
	}
	want := []string{"ABFLUG", "GATE A15", "12:30"}
	if len(cmd.Lines) != len(want) {
		t.Fatalf("lines = %v", cmd.Lines)
	}
	for i, w := range want {
		if cmd.Lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, cmd.Lines[i], w)
		}
	}
}

func TestParseInputLine(t *testing.T) {
	cmd, err := ParseInput("line 2 rot VERSPAETET")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Action != model.ActionSetLine {
		t.Errorf("action = %q", cmd.Action)
	}
	if cmd.Index == nil || *cmd.Index != 1 {
		t.Errorf("index = %v, want 1", cmd.Index)
	}
	if cmd.Color != "rot" || cmd.Text != "VERSPAETET" {
		t.Errorf("color = %q text = %q", cmd.Color, cmd.Text)
	}
}

func TestParseInputLineWithoutColor(t *testing.T) {
	cmd, err := ParseInput("line 1 ROT IST KEINE FARBE HIER")
	if err != nil {
		t.Fatal(err)
	}
	// "ROT" uppercase still parses as a color name; only a valid leading
	// color token is consumed.
	if cmd.Color != "rot" {
		t.Errorf("color = %q", cmd.Color)
	}

	cmd, err = ParseInput("line 1 HALLO WELT")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Color != "" || cmd.Text != "HALLO WELT" {
		t.Errorf("color = %q text = %q", cmd.Color, cmd.Text)
	}
}

func TestParseInputSimpleVerbs(t *testing.T) {
	cases := []struct {
		input  string
		action model.Action
	}{
		{"clear", model.ActionClear},
		{"demo", model.ActionDemo},
		{":clear", model.ActionClear},
	}
	for _, tc := range cases {
		cmd, err := ParseInput(tc.input)
		if err != nil {
			t.Errorf("%q: %v", tc.input, err)
			continue
		}
		if cmd.Action != tc.action {
			t.Errorf("%q: action = %q, want %q", tc.input, cmd.Action, tc.action)
		}
	}
}

func TestParseInputDateTime(t *testing.T) {
	cmd, err := ParseInput("datetime off")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Enable == nil || *cmd.Enable {
		t.Error("off not parsed")
	}
	cmd, err = ParseInput("datetime")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Enable == nil || !*cmd.Enable {
		t.Error("default should be on")
	}
	if _, err := ParseInput("datetime vielleicht"); err == nil {
		t.Error("nonsense argument accepted")
	}
}

func TestParseInputModes(t *testing.T) {
	cmd, err := ParseInput("scroll 3 DIESE ZEILE IST VIEL ZU LANG")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Mode != model.ModeScroll || *cmd.Index != 2 || !cmd.Loop {
		t.Errorf("scroll = %+v", cmd)
	}

	cmd, err = ParseInput("blink 1,3 ACHTUNG")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Mode != model.ModeBlink || len(cmd.LineIndices) != 2 {
		t.Fatalf("blink = %+v", cmd)
	}
	if cmd.LineIndices[0] != 0 || cmd.LineIndices[1] != 2 {
		t.Errorf("indices = %v", cmd.LineIndices)
	}
	if cmd.Text != "ACHTUNG" {
		t.Errorf("override = %q", cmd.Text)
	}

	cmd, err = ParseInput("rainbow 4 EINS|ZWEI|DREI")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Mode != model.ModeRainbow || len(cmd.Texts) != 3 || cmd.IntervalMs != 1000 {
		t.Errorf("rainbow = %+v", cmd)
	}

	cmd, err = ParseInput("countdown 6 10 0 -1 500")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Mode != model.ModeCountdown || *cmd.Index != 5 {
		t.Errorf("countdown = %+v", cmd)
	}
	if *cmd.From != 10 || *cmd.To != 0 || *cmd.Step != -1 || cmd.IntervalMs != 500 {
		t.Errorf("countdown params = %+v", cmd)
	}

	cmd, err = ParseInput("stop")
	if err != nil || cmd.Mode != model.ModeStop {
		t.Errorf("stop = %+v (%v)", cmd, err)
	}
}

func TestParseInputErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"unbekannt",
		"set",
		"line 7 X",
		"line 0 X",
		"line 1",
		"scroll X TEXT",
		"marquee",
		"blink",
		"countdown 1 10",
		"countdown 1 zehn null",
	} {
		if _, err := ParseInput(input); err == nil {
			t.Errorf("input %q accepted", input)
		}
	}
}
