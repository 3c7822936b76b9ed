package worker

import (
	"context"
	"errors"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/logger"
)

const (
	fetchBatch      = 10
	fetchWait       = 5 * time.Second
	fetchErrorDelay = 5 * time.Second
)

// Fetcher pulls messages from a JetStream pull subscription
type Fetcher interface {
	Fetch(batch int, opts ...nats.PullOpt) ([]*nats.Msg, error)
}

// EventHandler handles one event payload
type EventHandler interface {
	HandleEvent(data []byte) error
}

// acker is the subset of *nats.Msg used to settle a delivery
type acker interface {
	Ack(opts ...nats.AckOpt) error
	Nak(opts ...nats.AckOpt) error
}

// Consume pulls batches until ctx is cancelled, acking handled messages and
// nacking failures so JetStream redelivers them with backoff
func Consume(ctx context.Context, sub Fetcher, handler EventHandler, log *logger.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msgs, err := sub.Fetch(fetchBatch, nats.MaxWait(fetchWait))
		if err != nil {
			if errors.Is(err, nats.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			log.Error("Failed to fetch messages from JetStream", err)

			select {
			case <-time.After(fetchErrorDelay):
			case <-ctx.Done():
				return
			}
			continue
		}

		for _, msg := range msgs {
			settle(msg, msg.Data, handler, log)
		}
	}
}

func settle(msg acker, data []byte, handler EventHandler, log *logger.Logger) {
	if err := handler.HandleEvent(data); err != nil {
		log.Error("Failed to handle product event", err)
		if nakErr := msg.Nak(); nakErr != nil {
			log.Error("Failed to NAK message", nakErr)
		}
		return
	}

	if ackErr := msg.Ack(); ackErr != nil {
		log.Error("Failed to ACK message", ackErr)
	}
}
