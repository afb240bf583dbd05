package cycle

import "time"

// DateLayout is the calendar-date form used to identify cycles.
const DateLayout = "2006-01-02"

// Mode describes one reading regime: the daily page target and where the
// cycle deadline lands. A cycle with a deadline hour of zero ends at the
// next midnight; a later deadline hour stretches the cycle past midnight
// into the early morning.
type Mode struct {
	Name         string
	Pages        int
	DeadlineHour int
	DeadlineMin  int
	Label        string
	DeadlineStr  string
}

var modes = map[string]Mode{
	"normal": {
		Name:         "normal",
		Pages:        2,
		DeadlineHour: 0,
		DeadlineMin:  0,
		Label:        "Normal Mode",
		DeadlineStr:  "12:00 AM",
	},
	"ramadan": {
		Name:         "ramadan",
		Pages:        5,
		DeadlineHour: 5,
		DeadlineMin:  0,
		Label:        "Ramadan Mode",
		DeadlineStr:  "5:00 AM",
	},
}

// ModeByName resolves a mode identifier, falling back to ramadan for
// unknown or empty names the same way the sync payload does.
func ModeByName(name string) Mode {
	if m, ok := modes[name]; ok {
		return m
	}
	return modes["ramadan"]
}

// KnownMode reports whether name identifies a configured mode.
func KnownMode(name string) bool {
	_, ok := modes[name]
	return ok
}

// Date returns the calendar date identifying the cycle that now belongs to.
// Before an early-morning deadline the night still counts against the
// previous day, so the cycle keeps yesterday's date until the deadline hour.
func Date(m Mode, now time.Time) string {
	if m.DeadlineHour > 0 && now.Hour() < m.DeadlineHour {
		return now.AddDate(0, 0, -1).Format(DateLayout)
	}
	return now.Format(DateLayout)
}

// Deadline returns the next upcoming deadline instant for the mode.
func Deadline(m Mode, now time.Time) time.Time {
	if m.DeadlineHour == 0 {
		return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	}
	if now.Hour() < m.DeadlineHour {
		return time.Date(now.Year(), now.Month(), now.Day(), m.DeadlineHour, m.DeadlineMin, 0, 0, now.Location())
	}
	return time.Date(now.Year(), now.Month(), now.Day()+1, m.DeadlineHour, m.DeadlineMin, 0, 0, now.Location())
}

// MsUntilDeadline returns the milliseconds from now to the next deadline.
// Negative only for the instant of rollover.
func MsUntilDeadline(m Mode, now time.Time) int64 {
	return Deadline(m, now).Sub(now).Milliseconds()
}

// MinutesSinceMidnight returns the local wall-clock minute of day, 0..1439.
func MinutesSinceMidnight(now time.Time) int {
	return now.Hour()*60 + now.Minute()
}

// NormalizedMinutes shifts a minute-of-day value into the 24h+ range when
// the mode's cycle has crossed midnight. Comparisons against an anchor
// minute from the previous evening (the isha instant) stay monotonic
// through the whole cycle only with this shift applied; an unshifted
// 03:00 would otherwise read as "before" a 21:00 anchor and suppress
// reminders during the early-morning tail of a ramadan cycle.
func NormalizedMinutes(m Mode, minuteOfDay int) int {
	if m.DeadlineHour > 0 && minuteOfDay < m.DeadlineHour*60 {
		return 1440 + minuteOfDay
	}
	return minuteOfDay
}
