package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/whaeuser/splitflap/internal/audio"
	"github.com/whaeuser/splitflap/internal/flap"
	"github.com/whaeuser/splitflap/internal/model"
)

// Sender is the part of tea.Program the forwarder needs. Narrowed for tests.
type Sender interface {
	Send(msg tea.Msg)
}

// Forwarder bridges engine events into the TUI and the clicker. Listener
// methods run on the engine's driver goroutine while it holds the engine
// lock, and tea.Program.Send blocks until the event loop picks the message
// up. The event loop may at that moment be inside View, waiting on the same
// lock. Messages therefore go through a buffered queue drained by a separate
// goroutine; the engine side never blocks.
type Forwarder struct {
	sender  Sender
	clicker *audio.Clicker

	msgs chan tea.Msg
	done chan struct{}
}

// NewForwarder creates an event bridge and starts its delivery goroutine.
// clicker may be nil. Close after the engine driver has stopped.
func NewForwarder(sender Sender, clicker *audio.Clicker) *Forwarder {
	f := &Forwarder{
		sender:  sender,
		clicker: clicker,
		msgs:    make(chan tea.Msg, 64),
		done:    make(chan struct{}),
	}
	go f.pump()
	return f
}

func (f *Forwarder) pump() {
	defer close(f.done)
	for msg := range f.msgs {
		f.sender.Send(msg)
	}
}

// Close drains and stops the delivery goroutine. No listener method may be
// called after Close.
func (f *Forwarder) Close() {
	close(f.msgs)
	<-f.done
}

// post enqueues without blocking. When the queue is full the message is
// dropped; a redraw is already pending, and the board renders from engine
// state, not from the message.
func (f *Forwarder) post(msg tea.Msg) {
	select {
	case f.msgs <- msg:
	default:
	}
}

func (f *Forwarder) FlipStarted(row, col int, step flap.FlipStep) {
	if f.clicker != nil {
		if step.Final {
			f.clicker.Clack()
		} else {
			f.clicker.Click()
		}
	}
}

func (f *Forwarder) CellCommitted(row, col int, ch rune) {
	f.post(BoardChangedMsg{})
}

func (f *Forwarder) LineColorChanged(row int, color model.Color) {
	f.post(BoardChangedMsg{})
}

func (f *Forwarder) Settled(lines [model.Rows]string) {
	f.post(SettledMsg{Lines: lines})
}
