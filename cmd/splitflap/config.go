package main

import (
	"time"

	"github.com/whaeuser/splitflap/internal/model"
)

const (
	defaultHTTPAddr          = model.DefaultHTTPAddr
	defaultTopicPrefix       = model.DefaultTopicPrefix
	defaultMQTTClientID      = model.DefaultMQTTClientID
	defaultQueueSize         = model.DefaultQueueSize
	defaultRateLimitRequests = model.DefaultRateLimitRequests
	defaultRateLimitWindow   = model.DefaultRateLimitWindow
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the entrypoint.
type appConfig struct {
	HTTPAddr          string        `mapstructure:"http-addr"`
	APIKey            string        `mapstructure:"api-key"`
	RateLimitRequests int           `mapstructure:"rate-limit-requests"`
	RateLimitWindow   time.Duration `mapstructure:"rate-limit-window"`
	QueueSize         int           `mapstructure:"queue-size"`

	MQTTBroker      string `mapstructure:"mqtt-broker"`
	MQTTClientID    string `mapstructure:"mqtt-client-id"`
	MQTTTopicPrefix string `mapstructure:"mqtt-topic-prefix"`

	ConfigPath string `mapstructure:"-"` // not from config file
}
