package tracker

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"tickd/internal/cycle"
	"tickd/internal/models"
	"tickd/internal/providers"
	"tickd/internal/structures"
)

// IshaProviderInterface resolves the day's isha instant as minutes since
// midnight. Never fails: lookup errors collapse to the configured
// fallback.
type IshaProviderInterface interface {
	Minutes(ctx context.Context, now time.Time) int
}

type IshaClient struct {
	conf    *structures.Config
	http    *http.Client
	cache   providers.CacheProviderInterface
	store   providers.StoreProviderInterface
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
}

func NewIshaClient(conf *structures.Config, cache providers.CacheProviderInterface, store providers.StoreProviderInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) IshaProviderInterface {
	return &IshaClient{
		conf:    conf,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

type timingsResponse struct {
	Data struct {
		Timings struct {
			Isha string `json:"Isha"`
		} `json:"timings"`
	} `json:"data"`
}

func (c *IshaClient) Minutes(ctx context.Context, now time.Time) int {
	date := now.Format(cycle.DateLayout)
	cacheKey := "isha:" + date

	if raw, ok := c.cache.Get(cacheKey); ok {
		if mins, err := strconv.Atoi(string(raw)); err == nil {
			return mins
		}
	}

	if cached, err := c.store.GetIshaCache(ctx); err == nil && cached != nil && cached.Date == date {
		c.metrics.IncIshaLookups("remote_cache")
		c.cache.Set(cacheKey, []byte(strconv.Itoa(cached.Minutes)))
		return cached.Minutes
	}

	mins, err := c.fetch(ctx, now)
	if err != nil {
		c.metrics.IncIshaLookups("fallback")
		c.logger.Warnf(providers.TypeApp, "Isha lookup failed, using fallback %d: %s", c.conf.Tracker.FallbackIshaMinutes, err)
		return c.conf.Tracker.FallbackIshaMinutes
	}

	c.metrics.IncIshaLookups("api")
	c.cache.Set(cacheKey, []byte(strconv.Itoa(mins)))
	if err := c.store.SetIshaCache(ctx, &models.IshaCache{Date: date, Minutes: mins}); err != nil {
		c.logger.Warnf(providers.TypeApp, "Failed to mirror isha cache: %s", err)
	}
	return mins
}

func (c *IshaClient) fetch(ctx context.Context, now time.Time) (int, error) {
	url := fmt.Sprintf("%s/%02d-%02d-%04d?latitude=%g&longitude=%g&method=%d",
		c.conf.Prayer.URL, now.Day(), int(now.Month()), now.Year(),
		c.conf.Prayer.Latitude, c.conf.Prayer.Longitude, c.conf.Prayer.Method)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("timings endpoint answered %d", resp.StatusCode)
	}

	var tr timingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return 0, err
	}

	return parseClock(tr.Data.Timings.Isha)
}

// parseClock converts "HH:MM" to minutes since midnight. Tolerates a
// trailing timezone suffix like "20:12 (BST)".
func parseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i > 0 {
		s = s[:i]
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "20:30".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
