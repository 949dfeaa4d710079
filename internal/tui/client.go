package tui

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/whaeuser/splitflap/internal/model"
)

const redialDelay = 3 * time.Second

// Client keeps a websocket connection to the control service, reconnecting
// until Close. Received commands and connectivity changes are delivered to
// the Sender; outgoing commands go through Send.
type Client struct {
	url    string
	sender Sender

	conn *websocket.Conn
	out  chan model.Command
	stop chan struct{}
	done chan struct{}
}

// Dial starts the client's connection loop.
func Dial(url string, sender Sender) *Client {
	c := &Client{
		url:    url,
		sender: sender,
		out:    make(chan model.Command, 16),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go c.run()
	return c
}

// Send queues one command for the service. Dropped when the buffer is full
// or the client is shutting down.
func (c *Client) Send(cmd model.Command) {
	select {
	case c.out <- cmd:
	case <-c.stop:
	default:
	}
}

// Close tears the connection down and stops the reconnect loop.
func (c *Client) Close() {
	close(c.stop)
	<-c.done
}

func (c *Client) run() {
	defer close(c.done)
	for {
		if err := c.session(); err != nil {
			c.sender.Send(ConnStateMsg{Connected: false, Err: err})
		}
		select {
		case <-c.stop:
			return
		case <-time.After(redialDelay):
		}
	}
}

// session runs one connection: a reader feeding the Sender and a writer
// draining the outgoing queue.
func (c *Client) session() error {
	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		return err
	}
	c.conn = conn
	c.sender.Send(ConnStateMsg{Connected: true})

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for {
			select {
			case cmd := <-c.out:
				if err := conn.WriteJSON(cmd); err != nil {
					conn.Close()
					return
				}
			case <-c.stop:
				conn.Close()
				return
			}
		}
	}()

	var readErr error
	for {
		var cmd model.Command
		if readErr = conn.ReadJSON(&cmd); readErr != nil {
			break
		}
		c.sender.Send(ServerCommandMsg{Command: cmd})
	}
	conn.Close()
	<-writerDone
	return readErr
}
