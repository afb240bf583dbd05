package models

import (
	"time"

	"tickd/internal/cycle"
)

// DefaultHistoryLimit bounds the rolling history window when the config
// does not override it.
const DefaultHistoryLimit = 30

// CycleRecord is one archived daily cycle. Immutable once it enters
// history. TickedAt is Unix milliseconds, nil when the cycle was missed.
type CycleRecord struct {
	Date     string `json:"date"`
	TickedAt *int64 `json:"tickedAt"`
	Missed   bool   `json:"missed"`
}

// TrackerState is the aggregate root: the in-progress cycle plus the
// bounded history of completed ones, oldest first.
type TrackerState struct {
	Mode          string        `json:"mode"`
	History       []CycleRecord `json:"history"`
	TodayDate     string        `json:"todayDate"`
	TodayTicked   bool          `json:"todayTicked"`
	TodayTickedAt *int64        `json:"todayTickedAt"`
}

// DefaultState is the state a fresh install starts from.
func DefaultState(m cycle.Mode, now time.Time) *TrackerState {
	return &TrackerState{
		Mode:      m.Name,
		History:   []CycleRecord{},
		TodayDate: cycle.Date(m, now),
	}
}

// Rollover archives the in-progress cycle and starts a new one when the
// current cycle date has moved on. Idempotent within a cycle: a second
// call before the next boundary changes nothing. Returns the records
// evicted past the history limit, oldest first.
func (s *TrackerState) Rollover(m cycle.Mode, now time.Time, limit int) []CycleRecord {
	cd := cycle.Date(m, now)
	if s.TodayDate == cd {
		return nil
	}
	evicted := s.archiveCurrent(limit)
	s.TodayDate = cd
	s.TodayTicked = false
	s.TodayTickedAt = nil
	return evicted
}

// Tick marks the in-progress cycle complete at now. History is untouched.
func (s *TrackerState) Tick(now time.Time) {
	ts := now.UnixMilli()
	s.TodayTicked = true
	s.TodayTickedAt = &ts
}

// SwitchMode archives the in-progress cycle under the old mode's date and
// starts a fresh cycle under the new mode's current date. Returns evicted
// history records.
func (s *TrackerState) SwitchMode(newMode cycle.Mode, now time.Time, limit int) []CycleRecord {
	evicted := s.archiveCurrent(limit)
	s.Mode = newMode.Name
	s.TodayDate = cycle.Date(newMode, now)
	s.TodayTicked = false
	s.TodayTickedAt = nil
	return evicted
}

// Streak counts consecutive non-missed cycles ending at the newest history
// entry, plus one when today is already ticked.
func (s *TrackerState) Streak() int {
	streak := 0
	if s.TodayTicked {
		streak = 1
	}
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Missed {
			break
		}
		streak++
	}
	return streak
}

func (s *TrackerState) archiveCurrent(limit int) []CycleRecord {
	if s.TodayDate != "" {
		s.History = append(s.History, CycleRecord{
			Date:     s.TodayDate,
			TickedAt: s.TodayTickedAt,
			Missed:   !s.TodayTicked,
		})
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if len(s.History) <= limit {
		return nil
	}
	evicted := append([]CycleRecord(nil), s.History[:len(s.History)-limit]...)
	s.History = append([]CycleRecord(nil), s.History[len(s.History)-limit:]...)
	return evicted
}
