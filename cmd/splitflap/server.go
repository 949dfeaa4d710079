package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/whaeuser/splitflap/internal/control"
	"github.com/whaeuser/splitflap/internal/httpserver"
	"github.com/whaeuser/splitflap/internal/mqttbridge"
)

// runServer starts the headless control service: REST plus websocket on one
// listener, optionally an MQTT bridge.
func runServer(cfg appConfig) error {
	log.SetPrefix("splitflap ")
	log.SetFlags(log.LstdFlags)

	state := control.NewState()
	queue := control.NewQueue(cfg.QueueSize)
	hub := control.NewHub(log.Printf)
	center := control.NewCenter(state, queue, hub, log.Printf)

	api := httpserver.NewServer(httpserver.Config{
		Addr:              cfg.HTTPAddr,
		APIKey:            cfg.APIKey,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
	}, center, hub)
	if err := api.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}
	defer api.Stop()
	log.Printf("listening on %s", cfg.HTTPAddr)
	if cfg.APIKey != "" {
		log.Printf("API key authentication enabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	if cfg.MQTTBroker != "" {
		bridge := mqttbridge.New(mqttbridge.Config{
			BrokerAddr:  cfg.MQTTBroker,
			ClientID:    cfg.MQTTClientID,
			TopicPrefix: cfg.MQTTTopicPrefix,
		}, center, log.Printf)
		g.Go(func() error { return bridge.Run(ctx) })
		log.Printf("MQTT bridge targeting %s, prefix %q", cfg.MQTTBroker, cfg.MQTTTopicPrefix)
	}

	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			log.Printf("received %v, shutting down", sig)
			cancel()
		case <-ctx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
