package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/logger"
)

const (
	// StreamName is the JetStream stream holding product events
	StreamName = "PRODUCTS"

	// ConsumerName is the durable consumer used by the stock worker
	ConsumerName = "stock-monitor"

	// MaxDeliveryAttempts bounds redeliveries; a dropped event is harmless
	// because the next event re-reads stock from the database
	MaxDeliveryAttempts = 4

	// AckWait is how long the server waits for an ack before redelivering
	AckWait = 30 * time.Second

	// StreamMaxAge drops events no worker picked up
	StreamMaxAge = 24 * time.Hour
)

// StreamConfig bootstraps the product stream and its durable consumer
type StreamConfig struct {
	js     nats.JetStreamContext
	logger *logger.Logger
}

// NewStreamConfig creates a stream bootstrap helper
func NewStreamConfig(js nats.JetStreamContext, log *logger.Logger) *StreamConfig {
	return &StreamConfig{
		js:     js,
		logger: log,
	}
}

// generateExponentialBackoff returns 1s, 2s, 4s... for the redeliveries after
// the first attempt, so N attempts need N-1 durations
func generateExponentialBackoff(maxDeliveryAttempts int) []time.Duration {
	if maxDeliveryAttempts <= 1 {
		return nil
	}

	backoff := make([]time.Duration, maxDeliveryAttempts-1)
	for i := range backoff {
		backoff[i] = time.Duration(1<<i) * time.Second
	}
	return backoff
}

// EnsureStream creates the file-backed work-queue stream if it does not exist
func (s *StreamConfig) EnsureStream() error {
	info, err := s.js.StreamInfo(StreamName)
	if err == nil {
		s.logger.WithFields(map[string]interface{}{
			"stream":   info.Config.Name,
			"messages": info.State.Msgs,
		}).Debug("JetStream stream already exists")
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("failed to get stream info: %w", err)
	}

	_, err = s.js.AddStream(&nats.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{domain.ProductEventsSubject},
		Retention:   nats.WorkQueuePolicy,
		Storage:     nats.FileStorage,
		Replicas:    1,
		MaxAge:      StreamMaxAge,
		Discard:     nats.DiscardOld,
		Description: "Product lifecycle events",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream %s: %w", StreamName, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"stream":  StreamName,
		"subject": domain.ProductEventsSubject,
	}).Info("JetStream stream created")
	return nil
}

// EnsureConsumer creates the durable explicit-ack consumer for the stock worker
func (s *StreamConfig) EnsureConsumer() error {
	info, err := s.js.ConsumerInfo(StreamName, ConsumerName)
	if err == nil {
		s.logger.WithFields(map[string]interface{}{
			"consumer":    info.Name,
			"pending":     info.NumPending,
			"ack_pending": info.NumAckPending,
		}).Debug("JetStream consumer already exists")
		return nil
	}
	if !errors.Is(err, nats.ErrConsumerNotFound) {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}

	_, err = s.js.AddConsumer(StreamName, &nats.ConsumerConfig{
		Durable:       ConsumerName,
		AckPolicy:     nats.AckExplicitPolicy,
		AckWait:       AckWait,
		MaxDeliver:    MaxDeliveryAttempts,
		FilterSubject: domain.ProductEventsSubject,
		BackOff:       generateExponentialBackoff(MaxDeliveryAttempts),
		Description:   "Low stock detection",
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer %s: %w", ConsumerName, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"stream":   StreamName,
		"consumer": ConsumerName,
	}).Info("JetStream consumer created")
	return nil
}
