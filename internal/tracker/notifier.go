package tracker

import (
	"time"

	"tickd/internal/cycle"
)

// Skip reasons shared by the in-process loop and the cron notify job.
const (
	ReasonNoState        = "No tick state found"
	ReasonAlreadyTicked  = "Already ticked today"
	ReasonBeforeIsha     = "Before Isha"
	ReasonNoSubscription = "No push subscription"
	ReasonWithinInterval = "Within cadence interval"
)

// Decision is the outcome of one reminder evaluation.
type Decision struct {
	Fire        bool
	Reason      string
	Tier        cycle.Tier
	Title       string
	Body        string
	MinutesLeft int
}

// ShouldNotify decides whether an escalating reminder is due. One shared
// implementation for the periodic in-process check and the cron job, so
// the two can never drift apart. Stateless: the caller owns the
// lastFiredAt watermark (the cron job passes the zero value, having
// none).
func ShouldNotify(m cycle.Mode, ticked bool, ishaMinutes int, lastFiredAt time.Time, now time.Time) Decision {
	if ticked {
		return Decision{Reason: ReasonAlreadyTicked}
	}

	nowMin := cycle.MinutesSinceMidnight(now)
	if cycle.NormalizedMinutes(m, nowMin) < ishaMinutes {
		return Decision{Reason: ReasonBeforeIsha}
	}

	minsLeft := float64(cycle.MsUntilDeadline(m, now)) / 60000
	tier := cycle.TierFor(minsLeft)
	if now.Sub(lastFiredAt) < tier.Interval() {
		return Decision{Reason: ReasonWithinInterval, Tier: tier, MinutesLeft: int(minsLeft)}
	}

	title, body := cycle.Message(tier, int(minsLeft), m.DeadlineStr)
	return Decision{
		Fire:        true,
		Tier:        tier,
		Title:       title,
		Body:        body,
		MinutesLeft: int(minsLeft),
	}
}
