package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickd/internal/controllers"
	"tickd/internal/services"
	"tickd/internal/structures"
	"tickd/internal/testutil"
	"tickd/internal/tracker"
)

func newRouteTestController() *controllers.ApiController {
	conf := &structures.Config{
		Tracker: structures.TrackerConfig{
			DefaultMode:         "normal",
			HistoryLimit:        30,
			FallbackIshaMinutes: 1230,
		},
		Cron: structures.CronConfig{Secret: "s"},
	}
	logger := &testutil.MockLogger{}
	store := &testutil.MockStore{}
	isha := &testutil.MockIsha{Mins: 1230}
	service := services.NewTrackerService(conf, logger, store)
	job := tracker.NewNotifyJob(conf, store, &testutil.MockPush{}, isha, testutil.NewMockMetrics(), logger)
	return controllers.NewApiController(conf, logger, service, store, job, isha)
}

func TestInitRoutes_RegistersSevenRoutes(t *testing.T) {
	router := InitRoutes(newRouteTestController())
	routes := router.GetRoutes()

	require.Len(t, routes, 7)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}

	assert.Contains(t, urls, "/api/tick")
	assert.Contains(t, urls, "/api/subscribe")
	assert.Contains(t, urls, "/api/cron/notify")
	assert.Contains(t, urls, "/api/state")
	assert.Contains(t, urls, "/api/state/tick")
	assert.Contains(t, urls, "/api/mode")
	assert.Contains(t, urls, "/api/reset")
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	router := InitRoutes(newRouteTestController())

	mux := http.NewServeMux()
	for _, r := range router.GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}

	// POST-only endpoint rejects GET
	req := httptest.NewRequest(http.MethodGet, "/api/tick", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	// GET-only endpoint rejects POST
	req = httptest.NewRequest(http.MethodPost, "/api/state", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
