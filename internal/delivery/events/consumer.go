package events

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/config"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/logger"
)

// Handler processes one raw event payload
type Handler func(data []byte) error

// Consumer is a plain NATS subscriber, independent of JetStream acks
type Consumer struct {
	nc     *nats.Conn
	logger *logger.Logger
	subs   []*nats.Subscription
}

// NewConsumer connects to NATS
func NewConsumer(cfg *config.Config, log *logger.Logger) (*Consumer, error) {
	nc, err := nats.Connect(cfg.NATS.URL, nats.Name("product-notifier"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Infof("Connected to NATS at %s", cfg.NATS.URL)

	return &Consumer{
		nc:     nc,
		logger: log,
	}, nil
}

// Subscribe routes every message on subject to handler; handler errors are logged
func (c *Consumer) Subscribe(subject string, handler Handler) error {
	sub, err := c.nc.Subscribe(subject, func(msg *nats.Msg) {
		if err := handler(msg.Data); err != nil {
			c.logger.Errorf(err, "Failed to handle message on %s", msg.Subject)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to subject %s: %w", subject, err)
	}

	c.subs = append(c.subs, sub)
	c.logger.Infof("Subscribed to NATS subject: %s", subject)
	return nil
}

// Close unsubscribes and closes the connection
func (c *Consumer) Close() {
	for _, sub := range c.subs {
		if err := sub.Unsubscribe(); err != nil {
			c.logger.Warnf("Failed to unsubscribe from %s: %v", sub.Subject, err)
		}
	}
	if c.nc != nil {
		c.nc.Close()
		c.logger.Info("NATS consumer connection closed")
	}
}

// LoggingHandler logs each product event as structured fields
func LoggingHandler(log *logger.Logger) Handler {
	return func(data []byte) error {
		var event domain.ProductEvent
		if err := json.Unmarshal(data, &event); err != nil {
			return fmt.Errorf("failed to unmarshal product event: %w", err)
		}

		fields := map[string]interface{}{
			"event_type": event.EventType,
			"hash":       event.Hash.String(),
			"timestamp":  event.Timestamp,
		}
		if event.Product != nil {
			fields["nome"] = event.Product.Name
			fields["preco"] = event.Product.Price
			fields["quantidade"] = event.Product.Quantity
			fields["lativo"] = event.Product.Active
		}

		log.WithFields(fields).Info("Product event received")
		return nil
	}
}
