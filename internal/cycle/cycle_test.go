package cycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 14, hour, min, 0, 0, time.Local)
}

func TestModeByName_Known(t *testing.T) {
	m := ModeByName("normal")
	assert.Equal(t, "normal", m.Name)
	assert.Equal(t, 2, m.Pages)
	assert.Equal(t, 0, m.DeadlineHour)

	m = ModeByName("ramadan")
	assert.Equal(t, 5, m.Pages)
	assert.Equal(t, 5, m.DeadlineHour)
	assert.Equal(t, "5:00 AM", m.DeadlineStr)
}

func TestModeByName_UnknownFallsBackToRamadan(t *testing.T) {
	assert.Equal(t, "ramadan", ModeByName("").Name)
	assert.Equal(t, "ramadan", ModeByName("bogus").Name)
}

func TestKnownMode(t *testing.T) {
	assert.True(t, KnownMode("normal"))
	assert.True(t, KnownMode("ramadan"))
	assert.False(t, KnownMode(""))
	assert.False(t, KnownMode("Ramadan"))
}

func TestDate_MidnightDeadlineAlwaysToday(t *testing.T) {
	m := ModeByName("normal")
	for _, h := range []int{0, 3, 5, 12, 23} {
		now := at(h, 30)
		assert.Equal(t, now.Format(DateLayout), Date(m, now), "hour %d", h)
	}
}

func TestDate_EarlyDeadlineBeforeHourIsYesterday(t *testing.T) {
	m := ModeByName("ramadan")
	now := at(3, 0)
	assert.Equal(t, "2026-03-13", Date(m, now))
}

func TestDate_EarlyDeadlineAfterHourIsToday(t *testing.T) {
	m := ModeByName("ramadan")
	assert.Equal(t, "2026-03-14", Date(m, at(6, 0)))
	assert.Equal(t, "2026-03-14", Date(m, at(5, 0)))
	assert.Equal(t, "2026-03-14", Date(m, at(23, 59)))
}

func TestDate_MonthBoundary(t *testing.T) {
	m := ModeByName("ramadan")
	now := time.Date(2026, 3, 1, 2, 0, 0, 0, time.Local)
	assert.Equal(t, "2026-02-28", Date(m, now))
}

func TestDeadline_MidnightMode(t *testing.T) {
	m := ModeByName("normal")
	now := at(22, 15)
	dl := Deadline(m, now)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local), dl)
}

func TestDeadline_EarlyMorningBeforeHour(t *testing.T) {
	m := ModeByName("ramadan")
	dl := Deadline(m, at(3, 0))
	assert.Equal(t, time.Date(2026, 3, 14, 5, 0, 0, 0, time.Local), dl)
}

func TestDeadline_EarlyMorningAfterHour(t *testing.T) {
	m := ModeByName("ramadan")
	dl := Deadline(m, at(6, 0))
	assert.Equal(t, time.Date(2026, 3, 15, 5, 0, 0, 0, time.Local), dl)
}

func TestDeadline_AlwaysInFuture(t *testing.T) {
	for _, name := range []string{"normal", "ramadan"} {
		m := ModeByName(name)
		for h := 0; h < 24; h++ {
			for _, min := range []int{0, 1, 30, 59} {
				now := at(h, min)
				assert.True(t, Deadline(m, now).After(now), "%s at %02d:%02d", name, h, min)
			}
		}
	}
}

func TestMsUntilDeadline(t *testing.T) {
	m := ModeByName("ramadan")
	now := at(4, 0)
	require.Equal(t, int64(60*60*1000), MsUntilDeadline(m, now))

	now = at(23, 0)
	require.Equal(t, int64(6*60*60*1000), MsUntilDeadline(m, now))
}

func TestMinutesSinceMidnight(t *testing.T) {
	assert.Equal(t, 0, MinutesSinceMidnight(at(0, 0)))
	assert.Equal(t, 185, MinutesSinceMidnight(at(3, 5)))
	assert.Equal(t, 1439, MinutesSinceMidnight(at(23, 59)))
}

func TestNormalizedMinutes_ShiftsEarlyMorningInRamadan(t *testing.T) {
	m := ModeByName("ramadan")
	// 03:00 is part of the previous evening's cycle, so it must compare
	// after a 21:00 isha anchor.
	assert.Equal(t, 1440+180, NormalizedMinutes(m, 180))
	assert.Greater(t, NormalizedMinutes(m, 180), 21*60)
}

func TestNormalizedMinutes_NoShiftAfterDeadlineHour(t *testing.T) {
	m := ModeByName("ramadan")
	assert.Equal(t, 300, NormalizedMinutes(m, 300))
	assert.Equal(t, 1230, NormalizedMinutes(m, 1230))
}

func TestNormalizedMinutes_NoShiftInNormalMode(t *testing.T) {
	m := ModeByName("normal")
	assert.Equal(t, 180, NormalizedMinutes(m, 180))
	assert.Equal(t, 0, NormalizedMinutes(m, 0))
}
