package worker

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/logger"
)

const testWindow = 50 * time.Millisecond

// recordingChecker counts checks per hash and can fail the first N attempts
type recordingChecker struct {
	mu       sync.Mutex
	calls    map[uuid.UUID]int
	failures int
	release  chan struct{}
}

func newRecordingChecker() *recordingChecker {
	return &recordingChecker{calls: map[uuid.UUID]int{}}
}

func (c *recordingChecker) Check(ctx context.Context, hash uuid.UUID) (*domain.Product, error) {
	c.mu.Lock()
	c.calls[hash]++
	fail := c.failures > 0
	if fail {
		c.failures--
	}
	release := c.release
	c.mu.Unlock()

	if release != nil {
		<-release
	}
	if fail {
		return nil, assert.AnError
	}
	return &domain.Product{Hash: hash}, nil
}

func (c *recordingChecker) count(hash uuid.UUID) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[hash]
}

func eventData(t *testing.T, eventType string, hash uuid.UUID, ts time.Time) []byte {
	t.Helper()
	data, err := json.Marshal(domain.ProductEvent{EventType: eventType, Hash: hash, Timestamp: ts})
	require.NoError(t, err)
	return data
}

func setupTestMonitor(t *testing.T) (*StockMonitor, *recordingChecker) {
	checker := newRecordingChecker()
	return NewStockMonitor(checker, testWindow, logger.New("test")), checker
}

func TestStockMonitor_HandleEvent_SchedulesCheck(t *testing.T) {
	monitor, checker := setupTestMonitor(t)
	hash := uuid.New()

	err := monitor.HandleEvent(eventData(t, domain.EventProductStockAdjusted, hash, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, 1, monitor.PendingCount())

	assert.Eventually(t, func() bool { return checker.count(hash) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, monitor.PendingCount())
}

func TestStockMonitor_HandleEvent_InvalidJSON(t *testing.T) {
	monitor, _ := setupTestMonitor(t)

	err := monitor.HandleEvent([]byte(`{invalid json}`))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestStockMonitor_IgnoresPriceEvents(t *testing.T) {
	monitor, _ := setupTestMonitor(t)

	err := monitor.HandleEvent(eventData(t, domain.EventProductPriceAdjusted, uuid.New(), time.Now()))

	require.NoError(t, err)
	assert.Equal(t, 0, monitor.PendingCount())
}

func TestStockMonitor_Debouncing(t *testing.T) {
	monitor, checker := setupTestMonitor(t)
	hash := uuid.New()

	for i := 0; i < 5; i++ {
		require.NoError(t, monitor.HandleEvent(eventData(t, domain.EventProductUpdated, hash, time.Now())))
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 1, monitor.PendingCount())

	time.Sleep(testWindow + 100*time.Millisecond)

	assert.Equal(t, 1, checker.count(hash))
	assert.Equal(t, 0, monitor.PendingCount())
}

func TestStockMonitor_IgnoresStaleEvents(t *testing.T) {
	monitor, checker := setupTestMonitor(t)
	hash := uuid.New()
	now := time.Now()

	require.NoError(t, monitor.HandleEvent(eventData(t, domain.EventProductUpdated, hash, now)))
	require.NoError(t, monitor.HandleEvent(eventData(t, domain.EventProductUpdated, hash, now.Add(-time.Minute))))

	time.Sleep(testWindow + 100*time.Millisecond)

	assert.Equal(t, 1, checker.count(hash))
}

func TestStockMonitor_MultipleProducts(t *testing.T) {
	monitor, checker := setupTestMonitor(t)
	first, second := uuid.New(), uuid.New()

	require.NoError(t, monitor.HandleEvent(eventData(t, domain.EventProductCreated, first, time.Now())))
	require.NoError(t, monitor.HandleEvent(eventData(t, domain.EventProductStatusChanged, second, time.Now())))
	assert.Equal(t, 2, monitor.PendingCount())

	time.Sleep(testWindow + 100*time.Millisecond)

	assert.Equal(t, 1, checker.count(first))
	assert.Equal(t, 1, checker.count(second))
}

func TestStockMonitor_DeleteDropsPendingCheck(t *testing.T) {
	monitor, checker := setupTestMonitor(t)
	hash := uuid.New()

	require.NoError(t, monitor.HandleEvent(eventData(t, domain.EventProductStockAdjusted, hash, time.Now())))
	require.NoError(t, monitor.HandleEvent(eventData(t, domain.EventProductDeleted, hash, time.Now())))
	assert.Equal(t, 0, monitor.PendingCount())

	time.Sleep(testWindow + 50*time.Millisecond)

	assert.Equal(t, 0, checker.count(hash))
	assert.NoError(t, monitor.Shutdown(context.Background()))
}

func TestStockMonitor_RetriesFailedChecks(t *testing.T) {
	monitor, checker := setupTestMonitor(t)
	checker.failures = 2
	hash := uuid.New()

	require.NoError(t, monitor.HandleEvent(eventData(t, domain.EventProductStockAdjusted, hash, time.Now())))

	assert.Eventually(t, func() bool { return checker.count(hash) == 3 }, 2*time.Second, 20*time.Millisecond)
}

func TestStockMonitor_GracefulShutdown(t *testing.T) {
	monitor, checker := setupTestMonitor(t)
	hash := uuid.New()

	require.NoError(t, monitor.HandleEvent(eventData(t, domain.EventProductCreated, hash, time.Now())))
	time.Sleep(testWindow + 100*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, monitor.Shutdown(ctx))
	assert.Equal(t, 1, checker.count(hash))
}

func TestStockMonitor_ShutdownCancelsPendingChecks(t *testing.T) {
	monitor, checker := setupTestMonitor(t)
	hash := uuid.New()

	require.NoError(t, monitor.HandleEvent(eventData(t, domain.EventProductCreated, hash, time.Now())))

	err := monitor.Shutdown(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, monitor.PendingCount())

	time.Sleep(testWindow + 50*time.Millisecond)
	assert.Equal(t, 0, checker.count(hash))

	// events after shutdown are ignored
	require.NoError(t, monitor.HandleEvent(eventData(t, domain.EventProductCreated, hash, time.Now())))
	assert.Equal(t, 0, monitor.PendingCount())
}

func TestStockMonitor_ShutdownTimeout(t *testing.T) {
	checker := newRecordingChecker()
	checker.release = make(chan struct{})
	defer close(checker.release)
	monitor := NewStockMonitor(checker, testWindow, logger.New("test"))

	require.NoError(t, monitor.HandleEvent(eventData(t, domain.EventProductCreated, uuid.New(), time.Now())))
	time.Sleep(testWindow + 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := monitor.Shutdown(ctx)
	assert.Equal(t, context.DeadlineExceeded, err)
}
