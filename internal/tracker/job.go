package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tickd/internal/cycle"
	"tickd/internal/providers"
	"tickd/internal/structures"
)

// JobResult is the outcome of one cron-triggered reminder evaluation,
// rendered back to the caller as JSON.
type JobResult struct {
	RunID    string
	Skipped  bool
	Reason   string
	Sent     bool
	Title    string
	MinsLeft int
	Err      error
}

// NotifyJob evaluates the reminder once on behalf of an external cron
// trigger. It works off the remote mirror rather than the in-memory
// state so that it gives the same answer a detached scheduler would,
// and it carries no watermark between runs: the external scheduler's
// own period is the cadence floor.
type NotifyJob struct {
	conf    *structures.Config
	store   providers.StoreProviderInterface
	push    providers.PushProviderInterface
	isha    IshaProviderInterface
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
}

func NewNotifyJob(conf *structures.Config, store providers.StoreProviderInterface, push providers.PushProviderInterface, isha IshaProviderInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) *NotifyJob {
	return &NotifyJob{
		conf:    conf,
		store:   store,
		push:    push,
		isha:    isha,
		metrics: metrics,
		logger:  logger,
	}
}

func (j *NotifyJob) Run(ctx context.Context, now time.Time) JobResult {
	result := JobResult{RunID: uuid.NewString()}

	mirror, err := j.store.GetTickState(ctx)
	if err != nil {
		result.Err = err
		return result
	}
	if mirror == nil {
		return j.skip(result, ReasonNoState)
	}

	m := cycle.ModeByName(mirror.Mode)
	ticked := mirror.TodayDate == cycle.Date(m, now) && mirror.TodayTicked

	decision := ShouldNotify(m, ticked, j.isha.Minutes(ctx, now), time.Time{}, now)
	if !decision.Fire {
		return j.skip(result, decision.Reason)
	}

	sub, err := j.store.GetSubscription(ctx)
	if err != nil {
		result.Err = err
		return result
	}
	if sub == nil {
		return j.skip(result, ReasonNoSubscription)
	}

	// A unique tag per send makes the browser renotify instead of
	// silently replacing the previous reminder.
	if err := j.push.Send(sub, &providers.NotificationPayload{
		Title: decision.Title,
		Body:  decision.Body,
		Tag:   fmt.Sprintf("tick-reminder-%d", now.UnixMilli()),
	}); err != nil {
		result.Err = err
		return result
	}

	j.metrics.IncRemindersSent(decision.Tier.String(), "cron")
	j.logger.Infof(providers.TypeApp, "Cron reminder sent: %s (%d mins left) run=%s",
		decision.Title, decision.MinutesLeft, result.RunID)

	result.Sent = true
	result.Title = decision.Title
	result.MinsLeft = decision.MinutesLeft
	return result
}

func (j *NotifyJob) skip(result JobResult, reason string) JobResult {
	j.metrics.IncJobSkips(reason)
	result.Skipped = true
	result.Reason = reason
	return result
}
