package testutil

import (
	"context"
	"sync"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"

	"tickd/internal/models"
	"tickd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockStore implements providers.StoreProviderInterface in memory with
// injectable failures.
type MockStore struct {
	mu           sync.Mutex
	TickState    *models.TickState
	Subscription *webpush.Subscription
	IshaCache    *models.IshaCache
	Err          error
	SetTickCalls int
}

func (m *MockStore) GetTickState(_ context.Context) (*models.TickState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.TickState, nil
}

func (m *MockStore) SetTickState(_ context.Context, state *models.TickState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetTickCalls++
	if m.Err != nil {
		return m.Err
	}
	m.TickState = state
	return nil
}

func (m *MockStore) GetSubscription(_ context.Context) (*webpush.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Subscription, nil
}

func (m *MockStore) SetSubscription(_ context.Context, sub *webpush.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Subscription = sub
	return nil
}

func (m *MockStore) GetIshaCache(_ context.Context) (*models.IshaCache, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.IshaCache, nil
}

func (m *MockStore) SetIshaCache(_ context.Context, cache *models.IshaCache) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.IshaCache = cache
	return nil
}

// MockPush implements providers.PushProviderInterface and records sends.
type MockPush struct {
	mu           sync.Mutex
	Unconfigured bool
	Err          error
	Sent         []*providers.NotificationPayload
}

func (m *MockPush) Configured() bool { return !m.Unconfigured }

func (m *MockPush) Send(_ *webpush.Subscription, payload *providers.NotificationPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, payload)
	return nil
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockIsha implements tracker.IshaProviderInterface with a fixed value.
type MockIsha struct {
	Mins int
}

func (m *MockIsha) Minutes(_ context.Context, _ time.Time) int { return m.Mins }

// MockMetrics implements providers.MetricsProviderInterface and counts
// the calls the domain code makes.
type MockMetrics struct {
	mu        sync.Mutex
	Reminders map[string]int
	Skips     map[string]int
	Lookups   map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Reminders: make(map[string]int),
		Skips:     make(map[string]int),
		Lookups:   make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}

func (m *MockMetrics) IncRemindersSent(tier string, source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reminders[tier+":"+source]++
}

func (m *MockMetrics) IncJobSkips(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Skips[reason]++
}

func (m *MockMetrics) IncIshaLookups(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lookups[outcome]++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {}
func (m *MockMetrics) SetStreak(_ int)                            {}
func (m *MockMetrics) SetTodayTicked(_ bool)                      {}
