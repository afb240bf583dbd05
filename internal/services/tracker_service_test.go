package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tickd/internal/cycle"
	"tickd/internal/models"
	"tickd/internal/structures"
	"tickd/internal/testutil"
)

type captureSink struct {
	records []models.CycleRecord
}

func (c *captureSink) Append(records []models.CycleRecord) {
	c.records = append(c.records, records...)
}

// newTestService pins the service clock to at so the cycle date is
// deterministic regardless of when the tests run.
func newTestService(mode string, at time.Time) (*TrackerService, *testutil.MockStore) {
	conf := &structures.Config{
		Tracker: structures.TrackerConfig{
			DefaultMode:  mode,
			HistoryLimit: 30,
		},
	}
	store := &testutil.MockStore{}
	svc := NewTrackerService(conf, &testutil.MockLogger{}, store).(*TrackerService)
	svc.now = func() time.Time { return at }
	svc.state = models.DefaultState(cycle.ModeByName(mode), at)
	return svc, store
}

func TestTrackerServiceStateStartsFresh(t *testing.T) {
	svc, _ := newTestService("normal", time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	state := svc.State()

	assert.Equal(t, "normal", state.Mode)
	assert.Equal(t, "2026-03-10", state.TodayDate)
	assert.False(t, state.TodayTicked)
	assert.Empty(t, state.History)
}

func TestTrackerServiceTickSetsTimestampAndMirrors(t *testing.T) {
	now := time.Date(2026, 3, 10, 21, 30, 0, 0, time.UTC)
	svc, store := newTestService("normal", now)

	state := svc.Tick()

	assert.True(t, state.TodayTicked)
	if assert.NotNil(t, state.TodayTickedAt) {
		assert.Equal(t, now.UnixMilli(), *state.TodayTickedAt)
	}
	if assert.NotNil(t, store.TickState) {
		assert.Equal(t, "2026-03-10", store.TickState.TodayDate)
		assert.True(t, store.TickState.TodayTicked)
	}
}

func TestTrackerServiceRolloverOnRead(t *testing.T) {
	day1 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, store := newTestService("normal", day1)
	svc.Tick()
	calls := store.SetTickCalls

	day2 := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day2 }
	state := svc.State()

	assert.Equal(t, "2026-03-11", state.TodayDate)
	assert.False(t, state.TodayTicked)
	if assert.Len(t, state.History, 1) {
		assert.Equal(t, "2026-03-10", state.History[0].Date)
		assert.False(t, state.History[0].Missed)
	}
	assert.Greater(t, store.SetTickCalls, calls, "rollover should refresh the mirror")
}

func TestTrackerServiceStateDoesNotMirrorWithoutRollover(t *testing.T) {
	svc, store := newTestService("normal", time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	svc.State()
	svc.State()

	assert.Zero(t, store.SetTickCalls)
}

func TestTrackerServiceSwitchMode(t *testing.T) {
	svc, _ := newTestService("normal", time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	svc.Tick()

	state, err := svc.SwitchMode("ramadan")

	assert.NoError(t, err)
	assert.Equal(t, "ramadan", state.Mode)
	assert.False(t, state.TodayTicked)
	if assert.Len(t, state.History, 1) {
		assert.Equal(t, "2026-03-10", state.History[0].Date)
	}
}

func TestTrackerServiceSwitchModeSameModeIsNoop(t *testing.T) {
	svc, _ := newTestService("normal", time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	svc.Tick()

	state, err := svc.SwitchMode("normal")

	assert.NoError(t, err)
	assert.True(t, state.TodayTicked)
	assert.Empty(t, state.History)
}

func TestTrackerServiceSwitchModeUnknown(t *testing.T) {
	svc, _ := newTestService("normal", time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	_, err := svc.SwitchMode("sprint")

	assert.Error(t, err)
}

func TestTrackerServiceReset(t *testing.T) {
	svc, _ := newTestService("normal", time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	svc.Tick()
	svc.now = func() time.Time { return time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC) }

	state := svc.Reset()

	assert.Equal(t, "2026-03-11", state.TodayDate)
	assert.False(t, state.TodayTicked)
	assert.Empty(t, state.History)
}

func TestTrackerServiceEvictionReachesArchive(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService("normal", start)
	svc.conf.Tracker.HistoryLimit = 5
	sink := &captureSink{}
	svc.SetArchive(sink)

	for day := 0; day < 10; day++ {
		now := start.AddDate(0, 0, day)
		svc.now = func() time.Time { return now }
		svc.Tick()
	}

	state := svc.State()
	assert.Len(t, state.History, 5)
	assert.Len(t, sink.records, 4)
	assert.Equal(t, "2026-03-01", sink.records[0].Date)
}

func TestTrackerServicePutAndSnapshot(t *testing.T) {
	svc, _ := newTestService("normal", time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	ticked := int64(1700000000000)
	restored := &models.TrackerState{
		Mode:      "ramadan",
		TodayDate: "2026-03-01",
		History: []models.CycleRecord{
			{Date: "2026-02-28", TickedAt: &ticked},
		},
	}

	svc.Put(restored)
	snap := svc.Snapshot()

	assert.Equal(t, "ramadan", snap.Mode)
	assert.Equal(t, "2026-03-01", snap.TodayDate)
	assert.Len(t, snap.History, 1)

	// The snapshot is detached from the restored value.
	restored.History[0].Date = "mutated"
	assert.Equal(t, "2026-02-28", snap.History[0].Date)
}

func TestTrackerServicePutNil(t *testing.T) {
	svc, _ := newTestService("normal", time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	svc.Put(nil)

	assert.Equal(t, "2026-03-10", svc.State().TodayDate)
}
