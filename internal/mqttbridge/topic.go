package mqttbridge

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/whaeuser/splitflap/internal/model"
)

// ParseTopic maps one received publish onto a display command. Topics are
// relative to the configured prefix:
//
//	<prefix>/display        JSON command or raw text (newline separated lines)
//	<prefix>/line/<n>       n in 1..6, JSON {text,color} or raw text
//	<prefix>/clear          payload ignored
//	<prefix>/demo           payload ignored
//	<prefix>/datetime       "on"/"off"/"1"/"0" or JSON {enable}
//	<prefix>/mode/<name>    JSON mode parameters
func ParseTopic(prefix, topic string, payload []byte) (model.Command, error) {
	rel, ok := strings.CutPrefix(topic, prefix+"/")
	if !ok {
		return model.Command{}, fmt.Errorf("topic %q outside prefix %q", topic, prefix)
	}

	switch {
	case rel == "display":
		return parseDisplay(payload)

	case strings.HasPrefix(rel, "line/"):
		return parseLine(strings.TrimPrefix(rel, "line/"), payload)

	case rel == "clear":
		return model.Command{Action: model.ActionClear}, nil

	case rel == "demo":
		return model.Command{Action: model.ActionDemo}, nil

	case rel == "datetime":
		return parseDateTime(payload)

	case strings.HasPrefix(rel, "mode/"):
		cmd := model.Command{}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &cmd); err != nil {
				return model.Command{}, fmt.Errorf("mode payload: %w", err)
			}
		}
		cmd.Action = model.ActionMode
		cmd.Mode = strings.TrimPrefix(rel, "mode/")
		return cmd, nil
	}
	return model.Command{}, fmt.Errorf("unknown topic %q", topic)
}

func parseDisplay(payload []byte) (model.Command, error) {
	trimmed := strings.TrimSpace(string(payload))
	if strings.HasPrefix(trimmed, "{") {
		var cmd model.Command
		if err := json.Unmarshal(payload, &cmd); err != nil {
			return model.Command{}, fmt.Errorf("display payload: %w", err)
		}
		cmd.Action = model.ActionSetDisplay
		return cmd, nil
	}
	if trimmed == "" {
		return model.Command{}, fmt.Errorf("display payload empty")
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) > model.Rows {
		lines = lines[:model.Rows]
	}
	return model.Command{Action: model.ActionSetDisplay, Lines: lines}, nil
}

func parseLine(num string, payload []byte) (model.Command, error) {
	n, err := strconv.Atoi(num)
	if err != nil || n < 1 || n > model.Rows {
		return model.Command{}, fmt.Errorf("line number %q out of range 1..%d", num, model.Rows)
	}
	idx := n - 1

	cmd := model.Command{Action: model.ActionSetLine, Index: &idx}
	trimmed := strings.TrimSpace(string(payload))
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal(payload, &cmd); err != nil {
			return model.Command{}, fmt.Errorf("line payload: %w", err)
		}
		cmd.Action = model.ActionSetLine
		cmd.Index = &idx
		return cmd, nil
	}
	cmd.Text = trimmed
	return cmd, nil
}

func parseDateTime(payload []byte) (model.Command, error) {
	trimmed := strings.TrimSpace(string(payload))
	if strings.HasPrefix(trimmed, "{") {
		var cmd model.Command
		if err := json.Unmarshal(payload, &cmd); err != nil {
			return model.Command{}, fmt.Errorf("datetime payload: %w", err)
		}
		cmd.Action = model.ActionDateTime
		return cmd, nil
	}

	enable := true
	switch strings.ToLower(trimmed) {
	case "", "on", "1", "true":
	case "off", "0", "false":
		enable = false
	default:
		return model.Command{}, fmt.Errorf("datetime payload %q", trimmed)
	}
	return model.Command{Action: model.ActionDateTime, Enable: &enable}, nil
}
