package events

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/config"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/logger"
)

// Publisher publishes product events to NATS JetStream
type Publisher struct {
	nc     *nats.Conn
	js     nats.JetStreamContext
	logger *logger.Logger
}

// NewPublisher connects to NATS and makes sure the product stream exists,
// so events are retained even before any worker has subscribed
func NewPublisher(cfg *config.Config, log *logger.Logger) (*Publisher, error) {
	nc, err := nats.Connect(cfg.NATS.URL, nats.Name("product-api"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if err := NewStreamConfig(js, log).EnsureStream(); err != nil {
		nc.Close()
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"url":    cfg.NATS.URL,
		"stream": StreamName,
	}).Info("Connected to NATS JetStream")

	return &Publisher{
		nc:     nc,
		js:     js,
		logger: log,
	}, nil
}

// Publish stores data on the subject and waits for the stream acknowledgement
func (p *Publisher) Publish(ctx context.Context, subject string, data []byte) error {
	ack, err := p.js.Publish(subject, data, nats.Context(ctx))
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	p.logger.WithFields(map[string]interface{}{
		"subject":  subject,
		"stream":   ack.Stream,
		"sequence": ack.Sequence,
	}).Debug("Published product event")

	return nil
}

// Close drains pending publishes and closes the connection
func (p *Publisher) Close() {
	if p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.logger.Warnf("Failed to drain NATS connection: %v", err)
		p.nc.Close()
	}
	p.logger.Info("NATS publisher connection closed")
}
