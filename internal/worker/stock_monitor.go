package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/logger"
)

const (
	maxRetries     = 3
	initialBackoff = 100 * time.Millisecond
	checkTimeout   = 5 * time.Second
)

// Checker reads the current stock of one product
type Checker interface {
	Check(ctx context.Context, hash uuid.UUID) (*domain.Product, error)
}

// StockMonitor collapses bursts of product events into one stock check per product
type StockMonitor struct {
	checker Checker
	window  time.Duration
	logger  *logger.Logger

	mu         sync.Mutex
	pending    map[uuid.UUID]*pendingCheck
	shutdownCh chan struct{}
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
}

type pendingCheck struct {
	timestamp time.Time
	timer     *time.Timer
}

// NewStockMonitor creates a monitor that waits window after the last event before checking
func NewStockMonitor(checker Checker, window time.Duration, log *logger.Logger) *StockMonitor {
	ctx, cancel := context.WithCancel(context.Background())

	return &StockMonitor{
		checker:    checker,
		window:     window,
		logger:     log,
		pending:    make(map[uuid.UUID]*pendingCheck),
		shutdownCh: make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// affectsStock reports whether an event can change the low-stock state
func affectsStock(eventType string) bool {
	switch eventType {
	case domain.EventProductCreated,
		domain.EventProductUpdated,
		domain.EventProductStatusChanged,
		domain.EventProductStockAdjusted:
		return true
	}
	return false
}

// HandleEvent decodes a product event and schedules, resets or drops its stock check
func (m *StockMonitor) HandleEvent(data []byte) error {
	var event domain.ProductEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("failed to unmarshal product event: %w", err)
	}

	m.logger.WithFields(map[string]interface{}{
		"event_type": event.EventType,
		"hash":       event.Hash.String(),
	}).Debug("Received product event")

	switch {
	case event.EventType == domain.EventProductDeleted:
		m.drop(event.Hash)
	case affectsStock(event.EventType):
		m.schedule(event.Hash, event.Timestamp)
	}
	return nil
}

func (m *StockMonitor) schedule(hash uuid.UUID, timestamp time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.shutdownCh:
		return
	default:
	}

	if existing, ok := m.pending[hash]; ok {
		if timestamp.Before(existing.timestamp) {
			m.logger.WithFields(map[string]interface{}{
				"hash":     hash.String(),
				"event_ts": timestamp,
			}).Debug("Ignoring stale event")
			return
		}
		if !existing.timer.Stop() {
			// already fired; the running check owns its WaitGroup slot
			m.wg.Add(1)
		}
	} else {
		m.wg.Add(1)
	}

	check := &pendingCheck{timestamp: timestamp}
	check.timer = time.AfterFunc(m.window, func() { m.process(hash, check) })
	m.pending[hash] = check
}

// drop cancels a scheduled check for a deleted product
func (m *StockMonitor) drop(hash uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.pending[hash]
	if !ok {
		return
	}
	if existing.timer.Stop() {
		m.wg.Done()
	}
	delete(m.pending, hash)
}

func (m *StockMonitor) process(hash uuid.UUID, check *pendingCheck) {
	defer m.wg.Done()

	m.mu.Lock()
	if m.pending[hash] == check {
		delete(m.pending, hash)
	}
	m.mu.Unlock()

	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			m.logger.WithFields(map[string]interface{}{
				"hash":       hash.String(),
				"attempt":    attempt + 1,
				"backoff_ms": backoff.Milliseconds(),
			}).Warn("Retrying stock check")

			select {
			case <-time.After(backoff):
			case <-m.ctx.Done():
				return
			}
			backoff *= 2
		}

		ctx, cancel := context.WithTimeout(m.ctx, checkTimeout)
		_, err := m.checker.Check(ctx, hash)
		cancel()
		if err == nil {
			return
		}
		lastErr = err
	}

	m.logger.WithFields(map[string]interface{}{
		"hash":        hash.String(),
		"max_retries": maxRetries,
	}).Error("Stock check failed after all retries", lastErr)
}

// Shutdown stops accepting events, cancels scheduled checks and waits for running ones
func (m *StockMonitor) Shutdown(ctx context.Context) error {
	close(m.shutdownCh)
	m.cancel()

	m.mu.Lock()
	cancelled := 0
	for hash, p := range m.pending {
		if p.timer.Stop() {
			m.wg.Done()
			cancelled++
		}
		delete(m.pending, hash)
	}
	m.mu.Unlock()

	m.logger.WithFields(map[string]interface{}{
		"cancelled_checks": cancelled,
	}).Info("Stock monitor shutting down")

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		m.logger.Warn("Shutdown timeout reached, forcing exit")
		return ctx.Err()
	}
}

// PendingCount returns the number of scheduled checks
func (m *StockMonitor) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
