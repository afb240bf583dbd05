package controllers

import (
	"net/http"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	json "github.com/goccy/go-json"

	"tickd/internal/cycle"
	"tickd/internal/models"
	"tickd/internal/providers"
	"tickd/internal/services"
	"tickd/internal/structures"
	"tickd/internal/tracker"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	conf    *structures.Config
	logger  providers.Logger
	service services.TrackerServiceInterface
	store   providers.StoreProviderInterface
	job     *tracker.NotifyJob
	isha    tracker.IshaProviderInterface
}

func NewApiController(conf *structures.Config, logger providers.Logger, service services.TrackerServiceInterface, store providers.StoreProviderInterface, job *tracker.NotifyJob, isha tracker.IshaProviderInterface) *ApiController {
	return &ApiController{
		conf:    conf,
		logger:  logger,
		service: service,
		store:   store,
		job:     job,
		isha:    isha,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// TickSync mirrors a client-side tick into the remote store so a
// detached notify job sees it. The in-memory state is not touched: the
// client owning its own state is the contract this endpoint keeps.
func (ac *ApiController) TickSync(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload struct {
		TodayDate   string `json:"todayDate"`
		TodayTicked bool   `json:"todayTicked"`
		Mode        string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	state := &models.TickState{
		TodayDate:   payload.TodayDate,
		TodayTicked: payload.TodayTicked,
		Mode:        payload.Mode,
		UpdatedAt:   time.Now().UnixMilli(),
	}
	if err := ac.store.SetTickState(r.Context(), state); err != nil {
		ac.logger.Errorf(providers.TypePost, "Failed to store tick state: %s", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Subscribe registers the push subscription reminders are delivered to.
// Single user: the latest registration wins.
func (ac *ApiController) Subscribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload struct {
		Subscription *webpush.Subscription `json:"subscription"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.Subscription == nil || payload.Subscription.Endpoint == "" {
		writeError(w, http.StatusBadRequest, "Invalid subscription")
		return
	}

	if err := ac.store.SetSubscription(r.Context(), payload.Subscription); err != nil {
		ac.logger.Errorf(providers.TypePost, "Failed to store subscription: %s", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// CronNotify runs one reminder evaluation on behalf of an external cron
// trigger, guarded by the shared secret.
func (ac *ApiController) CronNotify(w http.ResponseWriter, r *http.Request) {
	if ac.conf.Cron.Secret == "" || r.URL.Query().Get("secret") != ac.conf.Cron.Secret {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result := ac.job.Run(r.Context(), time.Now())
	if result.Err != nil {
		ac.logger.Errorf(providers.TypeGet, "Notify job %s failed: %s", result.RunID, result.Err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if result.Skipped {
		writeJSON(w, http.StatusOK, map[string]any{"skipped": true, "reason": result.Reason})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sent":     true,
		"title":    result.Title,
		"minsLeft": result.MinsLeft,
	})
}

type stateResponse struct {
	Mode          string               `json:"mode"`
	Pages         int                  `json:"pages"`
	TodayDate     string               `json:"todayDate"`
	TodayTicked   bool                 `json:"todayTicked"`
	TodayTickedAt *int64               `json:"todayTickedAt"`
	Streak        int                  `json:"streak"`
	History       []models.CycleRecord `json:"history"`
	DeadlineStr   string               `json:"deadline"`
	MsLeft        int64                `json:"msLeft"`
	Countdown     string               `json:"countdown"`
	Remaining     string               `json:"remaining"`
	Isha          string               `json:"isha"`
}

// GetState returns the full countdown snapshot a frontend renders from.
func (ac *ApiController) GetState(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	state := ac.service.State()
	m := cycle.ModeByName(state.Mode)
	msLeft := cycle.MsUntilDeadline(m, now)

	writeJSON(w, http.StatusOK, stateResponse{
		Mode:          state.Mode,
		Pages:         m.Pages,
		TodayDate:     state.TodayDate,
		TodayTicked:   state.TodayTicked,
		TodayTickedAt: state.TodayTickedAt,
		Streak:        state.Streak(),
		History:       state.History,
		DeadlineStr:   m.DeadlineStr,
		MsLeft:        msLeft,
		Countdown:     cycle.FormatCountdown(msLeft),
		Remaining:     cycle.FormatRemaining(int(msLeft / 60000)),
		Isha:          tracker.FormatClock(ac.isha.Minutes(r.Context(), now)),
	})
}

// Tick records today's reading as done.
func (ac *ApiController) Tick(w http.ResponseWriter, r *http.Request) {
	state := ac.service.Tick()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"todayDate":   state.TodayDate,
		"todayTicked": state.TodayTicked,
		"streak":      state.Streak(),
	})
}

// SwitchMode changes the active reading mode.
func (ac *ApiController) SwitchMode(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	state, err := ac.service.SwitchMode(payload.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown mode")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "mode": state.Mode})
}

// Reset wipes the tracker back to a fresh install.
func (ac *ApiController) Reset(w http.ResponseWriter, r *http.Request) {
	state := ac.service.Reset()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "todayDate": state.TodayDate})
}
