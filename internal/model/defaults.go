package model

import "time"

// Shared defaults used by both the service and viewer binaries.
const (
	// Rows and Cols are the fixed board geometry of the display.
	Rows = 6
	Cols = 16

	DefaultHTTPAddr     = "0.0.0.0:8001"
	DefaultServerURL    = "ws://127.0.0.1:8001/ws"
	DefaultTopicPrefix  = "splitflap"
	DefaultMQTTClientID = "splitflap-service"

	DefaultRateLimitRequests = 100
	DefaultRateLimitWindow   = 60 * time.Second

	// DefaultQueueSize bounds the command queue served to polling clients.
	DefaultQueueSize = 256
)
