package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"tickd/internal/cycle"
	"tickd/internal/providers"
	"tickd/internal/services"
	"tickd/internal/structures"
	"tickd/internal/tracker/interfaces"
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.TrackerServiceInterface
	fileManager *FileManager
	archive     *Archive
	store       providers.StoreProviderInterface
	push        providers.PushProviderInterface
	isha        IshaProviderInterface
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex

	// lastFiredAt is the reminder watermark. Guarded by opsMu.
	lastFiredAt time.Time
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.TrackerServiceInterface, fileManager *FileManager, archive *Archive, store providers.StoreProviderInterface, push providers.PushProviderInterface, isha IshaProviderInterface, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		service:     service,
		fileManager: fileManager,
		archive:     archive,
		store:       store,
		push:        push,
		isha:        isha,
		metrics:     metrics,
	}
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if err := s.persist(); err != nil {
			return
		}
		s.logger.Infof(providers.TypeApp, "Persisted state to file %s", s.config.Persistence.FilePath)
	})

	s.cron.AddFunc(gron.Every(s.config.Tracker.CheckInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		s.evaluate(time.Now())
	})

	s.cron.Start()

	// Warm the isha lookup so the first evaluation does not block on the
	// timings API.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		mins := s.isha.Minutes(ctx, time.Now())
		s.logger.Infof(providers.TypeApp, "Isha today at %s", FormatClock(mins))
	}()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	state, err := s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
	if err != nil {
		return err
	}
	if state == nil {
		s.logger.Infof(providers.TypeApp, "No snapshot found, starting fresh")
		return nil
	}
	s.service.Put(state)
	s.logger.Infof(providers.TypeApp, "Restored state from %s (mode %s, %d history entries)",
		s.config.Persistence.FilePath, state.Mode, len(state.History))
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting tracker state to file...")
	return s.persist()
}

// persist must be called under opsMu.
func (s *Scheduler) persist() error {
	start := time.Now()
	if err := s.fileManager.SaveToFile(s.config.Persistence.FilePath, s.service.Snapshot()); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting state: %s", err)
		return err
	}
	if err := s.archive.Flush(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while flushing archive: %s", err)
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

// evaluate runs one reminder check against the live state. Must be
// called under opsMu.
func (s *Scheduler) evaluate(now time.Time) {
	state := s.service.State()
	s.metrics.SetStreak(state.Streak())
	s.metrics.SetTodayTicked(state.TodayTicked)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	m := cycle.ModeByName(state.Mode)
	decision := ShouldNotify(m, state.TodayTicked, s.isha.Minutes(ctx, now), s.lastFiredAt, now)
	if !decision.Fire {
		s.logger.Debugf(providers.TypeApp, "Reminder check: %s", decision.Reason)
		return
	}

	if !s.push.Configured() {
		s.logger.Debugf(providers.TypeApp, "Reminder due but push is not configured")
		return
	}

	sub, err := s.store.GetSubscription(ctx)
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "Failed to load push subscription: %s", err)
		return
	}
	if sub == nil {
		s.logger.Debugf(providers.TypeApp, "Reminder check: %s", ReasonNoSubscription)
		return
	}

	if err := s.push.Send(sub, &providers.NotificationPayload{
		Title: decision.Title,
		Body:  decision.Body,
		Tag:   fmt.Sprintf("tick-reminder-%d", now.UnixMilli()),
	}); err != nil {
		s.logger.Errorf(providers.TypeApp, "Failed to send reminder: %s", err)
		return
	}

	s.lastFiredAt = now
	s.metrics.IncRemindersSent(decision.Tier.String(), "scheduler")
	s.logger.Infof(providers.TypeApp, "Reminder sent: %s (%d mins left)", decision.Title, decision.MinutesLeft)
}
