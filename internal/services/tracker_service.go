package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tickd/internal/cycle"
	"tickd/internal/models"
	"tickd/internal/providers"
	"tickd/internal/structures"
)

// ArchiveSink receives cycle records evicted past the rolling history
// window. Implemented by the tracker archive; injected after
// construction to keep the packages acyclic.
type ArchiveSink interface {
	Append(records []models.CycleRecord)
}

type TrackerServiceInterface interface {
	// State applies rollover and returns a copy of the current state.
	State() models.TrackerState
	Tick() models.TrackerState
	SwitchMode(name string) (models.TrackerState, error)
	Reset() models.TrackerState
	// Put replaces the in-memory state from a restored snapshot.
	Put(state *models.TrackerState)
	// Snapshot returns a deep copy for persistence.
	Snapshot() *models.TrackerState
	SetArchive(sink ArchiveSink)
}

type TrackerService struct {
	mu      sync.Mutex
	conf    *structures.Config
	logger  providers.Logger
	store   providers.StoreProviderInterface
	archive ArchiveSink
	state   *models.TrackerState
	now     func() time.Time
}

func NewTrackerService(conf *structures.Config, logger providers.Logger, store providers.StoreProviderInterface) TrackerServiceInterface {
	svc := &TrackerService{
		conf:   conf,
		logger: logger,
		store:  store,
		now:    time.Now,
	}
	svc.state = models.DefaultState(cycle.ModeByName(conf.Tracker.DefaultMode), svc.now())
	return svc
}

func (ts *TrackerService) SetArchive(sink ArchiveSink) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.archive = sink
}

// rollover must be called under ts.mu.
func (ts *TrackerService) rollover(now time.Time) {
	m := cycle.ModeByName(ts.state.Mode)
	evicted := ts.state.Rollover(m, now, ts.conf.Tracker.HistoryLimit)
	if evicted != nil && ts.archive != nil {
		ts.archive.Append(evicted)
	}
}

func (ts *TrackerService) State() models.TrackerState {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	before := ts.state.TodayDate
	ts.rollover(ts.now())
	if ts.state.TodayDate != before {
		ts.syncMirror()
	}
	return copyState(ts.state)
}

func (ts *TrackerService) Tick() models.TrackerState {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	now := ts.now()
	ts.rollover(now)
	ts.state.Tick(now)
	ts.syncMirror()
	return copyState(ts.state)
}

func (ts *TrackerService) SwitchMode(name string) (models.TrackerState, error) {
	if !cycle.KnownMode(name) {
		return models.TrackerState{}, fmt.Errorf("unknown mode %q", name)
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	now := ts.now()
	ts.rollover(now)
	if ts.state.Mode != name {
		evicted := ts.state.SwitchMode(cycle.ModeByName(name), now, ts.conf.Tracker.HistoryLimit)
		if evicted != nil && ts.archive != nil {
			ts.archive.Append(evicted)
		}
		ts.syncMirror()
	}
	return copyState(ts.state), nil
}

func (ts *TrackerService) Reset() models.TrackerState {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.state = models.DefaultState(cycle.ModeByName(ts.conf.Tracker.DefaultMode), ts.now())
	ts.syncMirror()
	return copyState(ts.state)
}

func (ts *TrackerService) Put(state *models.TrackerState) {
	if state == nil {
		return
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.state = &models.TrackerState{}
	*ts.state = copyState(state)
}

func (ts *TrackerService) Snapshot() *models.TrackerState {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	snap := copyState(ts.state)
	return &snap
}

// syncMirror pushes the in-progress cycle to the remote store. Best
// effort: a failure is logged and the in-memory state stays
// authoritative. Must be called under ts.mu.
func (ts *TrackerService) syncMirror() {
	now := ts.now()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ts.store.SetTickState(ctx, ts.state.Mirror(now.UnixMilli())); err != nil {
		ts.logger.Warnf(providers.TypeApp, "Failed to sync mirror state: %s", err)
	}
}

func copyState(s *models.TrackerState) models.TrackerState {
	out := *s
	out.History = append([]models.CycleRecord(nil), s.History...)
	if s.TodayTickedAt != nil {
		ts := *s.TodayTickedAt
		out.TodayTickedAt = &ts
	}
	return out
}
