package providers

import (
	"context"
	"errors"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"tickd/internal/models"
	"tickd/internal/structures"
)

const (
	keyTickState    = "tick_state"
	keySubscription = "push_subscription"
	keyIshaCache    = "isha_cache"

	// The cached isha lookup is only meaningful for the day it was made.
	ishaCacheExpiry = 24 * time.Hour
)

// StoreProviderInterface is the remote key-value mirror. Absent keys are
// returned as (nil, nil) — a missing mirror record is a normal outcome,
// not an error.
type StoreProviderInterface interface {
	GetTickState(ctx context.Context) (*models.TickState, error)
	SetTickState(ctx context.Context, state *models.TickState) error
	GetSubscription(ctx context.Context) (*webpush.Subscription, error)
	SetSubscription(ctx context.Context, sub *webpush.Subscription) error
	GetIshaCache(ctx context.Context) (*models.IshaCache, error)
	SetIshaCache(ctx context.Context, cache *models.IshaCache) error
}

type StoreProvider struct {
	client *redis.Client
}

// NewStoreProvider constructs the redis client once per process; handlers
// and jobs receive this instance instead of building their own.
func NewStoreProvider(conf *structures.Config, logger Logger) StoreProviderInterface {
	if !conf.Redis.Enabled {
		logger.Infof(TypeApp, "Remote store disabled, mirror and push lookups will be empty")
		return &noopStore{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})

	logger.Infof(TypeApp, "Remote store initialized: %s db=%d", conf.Redis.Addr, conf.Redis.DB)

	return &StoreProvider{client: client}
}

func (s *StoreProvider) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (s *StoreProvider) setJSON(ctx context.Context, key string, val interface{}, expiry time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, expiry).Err()
}

func (s *StoreProvider) GetTickState(ctx context.Context) (*models.TickState, error) {
	var st models.TickState
	ok, err := s.getJSON(ctx, keyTickState, &st)
	if !ok || err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *StoreProvider) SetTickState(ctx context.Context, state *models.TickState) error {
	return s.setJSON(ctx, keyTickState, state, 0)
}

func (s *StoreProvider) GetSubscription(ctx context.Context) (*webpush.Subscription, error) {
	var sub webpush.Subscription
	ok, err := s.getJSON(ctx, keySubscription, &sub)
	if !ok || err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *StoreProvider) SetSubscription(ctx context.Context, sub *webpush.Subscription) error {
	return s.setJSON(ctx, keySubscription, sub, 0)
}

func (s *StoreProvider) GetIshaCache(ctx context.Context) (*models.IshaCache, error) {
	var c models.IshaCache
	ok, err := s.getJSON(ctx, keyIshaCache, &c)
	if !ok || err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *StoreProvider) SetIshaCache(ctx context.Context, cache *models.IshaCache) error {
	return s.setJSON(ctx, keyIshaCache, cache, ishaCacheExpiry)
}

// noopStore satisfies the interface when no remote store is configured.
type noopStore struct{}

func (n *noopStore) GetTickState(_ context.Context) (*models.TickState, error)       { return nil, nil }
func (n *noopStore) SetTickState(_ context.Context, _ *models.TickState) error       { return nil }
func (n *noopStore) GetSubscription(_ context.Context) (*webpush.Subscription, error) {
	return nil, nil
}
func (n *noopStore) SetSubscription(_ context.Context, _ *webpush.Subscription) error { return nil }
func (n *noopStore) GetIshaCache(_ context.Context) (*models.IshaCache, error)        { return nil, nil }
func (n *noopStore) SetIshaCache(_ context.Context, _ *models.IshaCache) error        { return nil }
