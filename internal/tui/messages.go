package tui

import "github.com/whaeuser/splitflap/internal/model"

// ServerCommandMsg is one command received from the service over the
// websocket, including the initial state push.
type ServerCommandMsg struct {
	Command model.Command
}

// ConnStateMsg reports websocket connectivity changes.
type ConnStateMsg struct {
	Connected bool
	Err       error
}

// BoardChangedMsg asks the viewer to redraw after an engine event. Cheap to
// coalesce; bubbletea drops redundant renders anyway.
type BoardChangedMsg struct{}

// SettledMsg reports that the board finished animating.
type SettledMsg struct {
	Lines [model.Rows]string
}
