package cycle

import (
	"fmt"
	"time"
)

// Tier is the escalation level of a reminder, derived from the minutes
// remaining before the deadline.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
	TierUrgent
)

func (t Tier) String() string {
	switch t {
	case TierUrgent:
		return "urgent"
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	default:
		return "low"
	}
}

// Interval is the minimum gap between two reminders at this tier.
func (t Tier) Interval() time.Duration {
	switch t {
	case TierUrgent:
		return 2 * time.Minute
	case TierHigh:
		return 5 * time.Minute
	case TierMedium:
		return 10 * time.Minute
	default:
		return 30 * time.Minute
	}
}

// TierFor maps minutes remaining to an escalation tier.
func TierFor(minutesRemaining float64) Tier {
	switch {
	case minutesRemaining <= 15:
		return TierUrgent
	case minutesRemaining <= 45:
		return TierHigh
	case minutesRemaining <= 90:
		return TierMedium
	default:
		return TierLow
	}
}

// FormatRemaining renders whole minutes remaining as "2h 5m" or "45 mins".
func FormatRemaining(minutesLeft int) string {
	h := minutesLeft / 60
	m := minutesLeft % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%d mins", minutesLeft)
}

// FormatCountdown renders a millisecond countdown as H:MM:SS, or MM:SS
// under an hour.
func FormatCountdown(ms int64) string {
	if ms <= 0 {
		return "00:00"
	}
	ts := ms / 1000
	h := ts / 3600
	m := (ts % 3600) / 60
	s := ts % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Message renders the reminder title and body for a tier. deadlineStr is
// the mode's human-readable deadline label.
func Message(t Tier, minutesLeft int, deadlineStr string) (title, body string) {
	timeStr := FormatRemaining(minutesLeft)
	switch t {
	case TierUrgent:
		return "TICK NOW!", fmt.Sprintf("Only %s left before %s!", timeStr, deadlineStr)
	case TierHigh:
		return "Time running out", fmt.Sprintf("%s until %s. Tick now!", timeStr, deadlineStr)
	case TierMedium:
		return "Don't forget", fmt.Sprintf("%s left until %s.", timeStr, deadlineStr)
	default:
		return "Tick Reminder", fmt.Sprintf("%s left. Remember to tick!", timeStr)
	}
}
