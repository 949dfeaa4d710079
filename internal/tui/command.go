package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/whaeuser/splitflap/internal/model"
)

// ParseInput turns one command bar entry into a command for the service.
// Line numbers are 1-based, matching what is printed next to the board.
//
//	set <l1>|<l2>|...
//	line <n> [color] <text>
//	clear | demo | stop
//	datetime [on|off]
//	scroll <n> <text>
//	marquee <text>
//	blink <n[,n...]> [text]
//	wave <l1>|<l2>|...
//	type <n> <text>
//	rainbow <n> <t1>|<t2>|...
//	countdown <n> <from> <to> [step] [intervalMs]
func ParseInput(input string) (model.Command, error) {
	input = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), ":"))
	if input == "" {
		return model.Command{}, errors.New("empty command")
	}
	verb, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "set":
		if rest == "" {
			return model.Command{}, errors.New("set: missing lines")
		}
		return model.Command{Action: model.ActionSetDisplay, Lines: splitLines(rest)}, nil

	case "line":
		idx, text, err := lineAndText(rest)
		if err != nil {
			return model.Command{}, fmt.Errorf("line: %w", err)
		}
		cmd := model.Command{Action: model.ActionSetLine, Index: &idx}
		// A leading color name applies to the line, the rest is content.
		if name, after, found := strings.Cut(text, " "); found && model.Color(strings.ToLower(name)).Valid() {
			cmd.Color = strings.ToLower(name)
			text = strings.TrimSpace(after)
		}
		cmd.Text = text
		return cmd, nil

	case "clear":
		return model.Command{Action: model.ActionClear}, nil

	case "demo":
		return model.Command{Action: model.ActionDemo}, nil

	case "stop":
		return model.Command{Action: model.ActionMode, Mode: model.ModeStop}, nil

	case "datetime":
		enable := true
		switch strings.ToLower(rest) {
		case "", "on":
		case "off":
			enable = false
		default:
			return model.Command{}, fmt.Errorf("datetime: %q is not on/off", rest)
		}
		return model.Command{Action: model.ActionDateTime, Enable: &enable}, nil

	case "scroll":
		idx, text, err := lineAndText(rest)
		if err != nil {
			return model.Command{}, fmt.Errorf("scroll: %w", err)
		}
		return model.Command{Action: model.ActionMode, Mode: model.ModeScroll, Index: &idx, Text: text, Loop: true}, nil

	case "marquee":
		if rest == "" {
			return model.Command{}, errors.New("marquee: missing text")
		}
		return model.Command{Action: model.ActionMode, Mode: model.ModeMarquee, Text: rest, Loop: true}, nil

	case "blink":
		nums, text, _ := strings.Cut(rest, " ")
		if nums == "" {
			return model.Command{}, errors.New("blink: missing line numbers")
		}
		var indices []int
		for _, n := range strings.Split(nums, ",") {
			idx, err := parseLineNumber(n)
			if err != nil {
				return model.Command{}, fmt.Errorf("blink: %w", err)
			}
			indices = append(indices, idx)
		}
		return model.Command{
			Action:      model.ActionMode,
			Mode:        model.ModeBlink,
			LineIndices: indices,
			Text:        strings.TrimSpace(text),
		}, nil

	case "wave":
		if rest == "" {
			return model.Command{}, errors.New("wave: missing lines")
		}
		return model.Command{Action: model.ActionMode, Mode: model.ModeWave, Texts: splitLines(rest)}, nil

	case "type":
		idx, text, err := lineAndText(rest)
		if err != nil {
			return model.Command{}, fmt.Errorf("type: %w", err)
		}
		return model.Command{Action: model.ActionMode, Mode: model.ModeTypewriter, Index: &idx, Text: text}, nil

	case "rainbow":
		idx, text, err := lineAndText(rest)
		if err != nil {
			return model.Command{}, fmt.Errorf("rainbow: %w", err)
		}
		return model.Command{
			Action:     model.ActionMode,
			Mode:       model.ModeRainbow,
			Index:      &idx,
			Texts:      splitLines(text),
			IntervalMs: 1000,
		}, nil

	case "countdown":
		fields := strings.Fields(rest)
		if len(fields) < 3 {
			return model.Command{}, errors.New("countdown: need <line> <from> <to>")
		}
		idx, err := parseLineNumber(fields[0])
		if err != nil {
			return model.Command{}, fmt.Errorf("countdown: %w", err)
		}
		nums := make([]int, 0, 4)
		for _, f := range fields[1:] {
			v, err := strconv.Atoi(f)
			if err != nil {
				return model.Command{}, fmt.Errorf("countdown: %q is not a number", f)
			}
			nums = append(nums, v)
		}
		cmd := model.Command{
			Action:     model.ActionMode,
			Mode:       model.ModeCountdown,
			Index:      &idx,
			From:       &nums[0],
			To:         &nums[1],
			IntervalMs: 1000,
		}
		if len(nums) > 2 {
			cmd.Step = &nums[2]
		}
		if len(nums) > 3 {
			cmd.IntervalMs = nums[3]
		}
		return cmd, nil
	}
	return model.Command{}, fmt.Errorf("unknown command %q", verb)
}

// lineAndText splits "<n> <text>" with a 1-based line number.
func lineAndText(rest string) (int, string, error) {
	num, text, _ := strings.Cut(rest, " ")
	idx, err := parseLineNumber(num)
	if err != nil {
		return 0, "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, "", errors.New("missing text")
	}
	return idx, text, nil
}

// parseLineNumber converts a 1-based line number to a 0-based index.
func parseLineNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > model.Rows {
		return 0, fmt.Errorf("line number %q out of range 1..%d", s, model.Rows)
	}
	return n - 1, nil
}

func splitLines(s string) []string {
	parts := strings.Split(s, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) > model.Rows {
		parts = parts[:model.Rows]
	}
	return parts
}
