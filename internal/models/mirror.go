package models

// TickState is the remote mirror of the in-progress cycle, kept under the
// tick_state key. A best-effort cache for the notify job, never the source
// of truth. UpdatedAt is Unix milliseconds.
type TickState struct {
	TodayDate   string `json:"todayDate"`
	TodayTicked bool   `json:"todayTicked"`
	Mode        string `json:"mode"`
	UpdatedAt   int64  `json:"updatedAt"`
}

// IshaCache is the day-scoped cached isha lookup, kept under the
// isha_cache key with a one-day expiry.
type IshaCache struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

// Mirror converts the local state to its remote mirror form.
func (s *TrackerState) Mirror(updatedAt int64) *TickState {
	return &TickState{
		TodayDate:   s.TodayDate,
		TodayTicked: s.TodayTicked,
		Mode:        s.Mode,
		UpdatedAt:   updatedAt,
	}
}
