// Package mqttbridge subscribes to the display's MQTT control topics and
// feeds the received commands into the shared dispatch path, making the
// board addressable from home-automation setups without touching HTTP.
package mqttbridge

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	mqtt "github.com/soypat/natiu-mqtt"

	"github.com/whaeuser/splitflap/internal/control"
	"github.com/whaeuser/splitflap/internal/model"
)

const (
	connectTimeout   = 10 * time.Second
	reconnectBackoff = 5 * time.Second
	maxPayload       = 4096
)

// Config carries the bridge settings. An empty BrokerAddr disables the
// bridge entirely.
type Config struct {
	BrokerAddr  string
	ClientID    string
	TopicPrefix string
}

// Bridge maintains one subscription to <prefix>/# with a reconnect loop.
type Bridge struct {
	cfg    Config
	center *control.Center
	logf   func(format string, args ...any)
}

// New creates a bridge in front of the dispatch center. logf may be nil.
func New(cfg Config, center *control.Center, logf func(format string, args ...any)) *Bridge {
	if cfg.ClientID == "" {
		cfg.ClientID = model.DefaultMQTTClientID
	}
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = model.DefaultTopicPrefix
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Bridge{cfg: cfg, center: center, logf: logf}
}

// Run connects, subscribes and pumps packets until ctx is canceled,
// reconnecting with a fixed backoff after any failure.
func (b *Bridge) Run(ctx context.Context) error {
	if b.cfg.BrokerAddr == "" {
		<-ctx.Done()
		return ctx.Err()
	}

	for {
		if err := b.session(ctx); err != nil && ctx.Err() == nil {
			b.logf("mqtt session ended: %v", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectBackoff):
		}
	}
}

// session runs one connect/subscribe/pump cycle.
func (b *Bridge) session(ctx context.Context) error {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", b.cfg.BrokerAddr)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Closing the socket is what unblocks the pump on shutdown.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	client := mqtt.NewClient(mqtt.ClientConfig{
		Decoder: mqtt.DecoderNoAlloc{UserBuffer: make([]byte, maxPayload)},
		OnPub:   b.onPub,
	})

	var varconn mqtt.VariablesConnect
	varconn.SetDefaultMQTT([]byte(b.cfg.ClientID))

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Connect(connectCtx, conn, &varconn); err != nil {
		return err
	}
	b.logf("mqtt connected to %s", b.cfg.BrokerAddr)

	subCtx, cancelSub := context.WithTimeout(ctx, connectTimeout)
	defer cancelSub()
	err = client.Subscribe(subCtx, mqtt.VariablesSubscribe{
		PacketIdentifier: 1,
		TopicFilters: []mqtt.SubscribeRequest{
			{TopicFilter: []byte(b.cfg.TopicPrefix + "/#"), QoS: mqtt.QoS0},
		},
	})
	if err != nil {
		return err
	}
	b.logf("mqtt subscribed to %s/#", b.cfg.TopicPrefix)

	for client.IsConnected() {
		if err := client.HandleNext(); err != nil {
			return err
		}
	}
	if err := client.Err(); err != nil {
		return err
	}
	return errors.New("mqtt connection closed")
}

// onPub maps one received publish onto a command and dispatches it. Parse
// and dispatch errors are logged, never returned: a bad payload must not
// tear down the subscription.
func (b *Bridge) onPub(_ mqtt.Header, varPub mqtt.VariablesPublish, r io.Reader) error {
	payload, err := io.ReadAll(io.LimitReader(r, maxPayload))
	if err != nil {
		return err
	}

	topic := string(varPub.TopicName)
	cmd, err := ParseTopic(b.cfg.TopicPrefix, topic, payload)
	if err != nil {
		b.logf("mqtt: %v", err)
		return nil
	}
	if err := b.center.Dispatch(cmd); err != nil {
		b.logf("mqtt %s: %v", topic, err)
	}
	return nil
}
