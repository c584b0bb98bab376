// Package leetcode fetches solve statistics from the public
// leetcode-stats API and normalizes its submission calendar into per-day
// counts.
package leetcode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/felixgeelhaar/codestrike/internal/stats/domain"
)

// calendarWindowDays bounds how far back synced logs reach.
const calendarWindowDays = 30

const dayLayout = "2006-01-02"

// Config tunes the client.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Client implements domain.Provider against the stats API. Calls run
// behind a circuit breaker; results are optionally cached in Redis.
// Failures of any kind degrade to the zero-value result.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[domain.SyncResult]
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// NewClient creates a stats client. cache may be nil when Redis is not
// available; the client then fetches directly every time.
func NewClient(cfg Config, cache *redis.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	settings := gobreaker.Settings{
		Name:    "leetcode-stats",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    gobreaker.NewCircuitBreaker[domain.SyncResult](settings),
		cache:      cache,
		cacheTTL:   cfg.CacheTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// FetchStats returns the user's solve statistics. On any transport, parse,
// or breaker failure it returns the zero-value result and a nil error; the
// sync flow must never fail because the provider is down.
func (c *Client) FetchStats(ctx context.Context, username string) (domain.SyncResult, error) {
	if username == "" {
		return domain.SyncResult{}, nil
	}

	if cached, ok := c.fromCache(ctx, username); ok {
		return cached, nil
	}

	result, err := c.breaker.Execute(func() (domain.SyncResult, error) {
		return c.fetch(ctx, username)
	})
	if err != nil {
		c.logger.Warn("stats fetch failed", "username", username, "error", err)
		return domain.SyncResult{}, nil
	}

	c.toCache(ctx, username, result)
	return result, nil
}

type apiResponse struct {
	Status             string          `json:"status"`
	TotalSolved        int             `json:"totalSolved"`
	SubmissionCalendar json.RawMessage `json:"submissionCalendar"`
}

func (c *Client) fetch(ctx context.Context, username string) (domain.SyncResult, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.SyncResult{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.SyncResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.SyncResult{}, fmt.Errorf("stats API returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.SyncResult{}, err
	}

	var api apiResponse
	if err := json.Unmarshal(body, &api); err != nil {
		return domain.SyncResult{}, fmt.Errorf("decode stats response: %w", err)
	}
	if api.Status != "success" {
		return domain.SyncResult{}, fmt.Errorf("stats API status %q", api.Status)
	}

	calendar, err := parseCalendar(api.SubmissionCalendar)
	if err != nil {
		return domain.SyncResult{}, err
	}

	return c.normalize(api.TotalSolved, calendar), nil
}

// parseCalendar handles both shapes the API serves: a JSON object of
// unix-second keys to counts, or that same object double-encoded as a
// string.
func parseCalendar(raw json.RawMessage) (map[string]int, error) {
	if len(raw) == 0 {
		return map[string]int{}, nil
	}

	var calendar map[string]int
	if err := json.Unmarshal(raw, &calendar); err == nil {
		return calendar, nil
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, fmt.Errorf("unexpected submission calendar shape")
	}
	if err := json.Unmarshal([]byte(encoded), &calendar); err != nil {
		return nil, fmt.Errorf("decode stringified submission calendar: %w", err)
	}
	return calendar, nil
}

// normalize buckets the calendar into local calendar days, keeps the
// recent window, and extracts today's count.
func (c *Client) normalize(totalSolved int, calendar map[string]int) domain.SyncResult {
	now := c.now()
	today := now.Format(dayLayout)
	cutoff := now.AddDate(0, 0, -(calendarWindowDays - 1)).Format(dayLayout)

	perDay := make(map[string]int)
	for key, count := range calendar {
		sec, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		day := time.Unix(sec, 0).Format(dayLayout)
		perDay[day] += count
	}

	result := domain.SyncResult{TotalSolved: totalSolved, SolvedToday: perDay[today]}
	for day := cutoff; day <= today; day = nextDay(day) {
		if count, ok := perDay[day]; ok && count > 0 {
			result.Days = append(result.Days, domain.DayCount{Day: day, Count: count})
		}
	}
	return result
}

func nextDay(day string) string {
	t, err := time.Parse(dayLayout, day)
	if err != nil {
		return day
	}
	return t.AddDate(0, 0, 1).Format(dayLayout)
}

func (c *Client) cacheKey(username string) string {
	return "codestrike:stats:" + username
}

func (c *Client) fromCache(ctx context.Context, username string) (domain.SyncResult, bool) {
	if c.cache == nil {
		return domain.SyncResult{}, false
	}

	payload, err := c.cache.Get(ctx, c.cacheKey(username)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("stats cache read failed", "error", err)
		}
		return domain.SyncResult{}, false
	}

	var result domain.SyncResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return domain.SyncResult{}, false
	}
	return result, true
}

func (c *Client) toCache(ctx context.Context, username string, result domain.SyncResult) {
	if c.cache == nil || result.IsZero() {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, c.cacheKey(username), payload, c.cacheTTL).Err(); err != nil {
		c.logger.Debug("stats cache write failed", "error", err)
	}
}
