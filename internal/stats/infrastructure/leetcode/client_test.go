package leetcode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/codestrike/internal/stats/domain"
)

var testNow = time.Date(2026, 8, 31, 15, 0, 0, 0, time.Local)

func dayKeyAt(offset int) string {
	return testNow.AddDate(0, 0, offset).Format(dayLayout)
}

func unixAt(offset int) string {
	day := time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 12, 0, 0, 0, time.Local)
	return strconv.FormatInt(day.AddDate(0, 0, offset).Unix(), 10)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{BaseURL: server.URL}, nil, nil)
	client.now = func() time.Time { return testNow }
	return client
}

func TestFetchStats(t *testing.T) {
	t.Run("parses a calendar object", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/felix", r.URL.Path)
			fmt.Fprintf(w, `{"status":"success","totalSolved":142,"submissionCalendar":{%q:3,%q:2}}`,
				unixAt(0), unixAt(-1))
		})

		result, err := client.FetchStats(context.Background(), "felix")
		require.NoError(t, err)

		assert.Equal(t, 142, result.TotalSolved)
		assert.Equal(t, 3, result.SolvedToday)
		require.Len(t, result.Days, 2)
		assert.Equal(t, domain.DayCount{Day: dayKeyAt(-1), Count: 2}, result.Days[0])
		assert.Equal(t, domain.DayCount{Day: dayKeyAt(0), Count: 3}, result.Days[1])
	})

	t.Run("parses a stringified calendar", func(t *testing.T) {
		calendar, err := json.Marshal(fmt.Sprintf(`{%q:5}`, unixAt(0)))
		require.NoError(t, err)

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"status":"success","totalSolved":10,"submissionCalendar":%s}`, calendar)
		})

		result, err := client.FetchStats(context.Background(), "felix")
		require.NoError(t, err)

		assert.Equal(t, 5, result.SolvedToday)
		require.Len(t, result.Days, 1)
	})

	t.Run("drops days outside the recent window", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"status":"success","totalSolved":99,"submissionCalendar":{%q:7,%q:1}}`,
				unixAt(-60), unixAt(0))
		})

		result, err := client.FetchStats(context.Background(), "felix")
		require.NoError(t, err)

		require.Len(t, result.Days, 1)
		assert.Equal(t, dayKeyAt(0), result.Days[0].Day)
	})

	t.Run("HTTP error degrades to zero result", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		result, err := client.FetchStats(context.Background(), "felix")
		require.NoError(t, err)
		assert.True(t, result.IsZero())
	})

	t.Run("error status degrades to zero result", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"status":"error","message":"user does not exist"}`)
		})

		result, err := client.FetchStats(context.Background(), "nobody")
		require.NoError(t, err)
		assert.True(t, result.IsZero())
	})

	t.Run("malformed body degrades to zero result", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `not json at all`)
		})

		result, err := client.FetchStats(context.Background(), "felix")
		require.NoError(t, err)
		assert.True(t, result.IsZero())
	})

	t.Run("empty username short-circuits", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		})

		result, err := client.FetchStats(context.Background(), "")
		require.NoError(t, err)
		assert.True(t, result.IsZero())
	})

	t.Run("missing calendar yields totals only", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"status":"success","totalSolved":7}`)
		})

		result, err := client.FetchStats(context.Background(), "felix")
		require.NoError(t, err)

		assert.Equal(t, 7, result.TotalSolved)
		assert.Equal(t, 0, result.SolvedToday)
		assert.Empty(t, result.Days)
	})
}

func TestParseCalendar(t *testing.T) {
	t.Run("rejects unexpected shapes", func(t *testing.T) {
		_, err := parseCalendar(json.RawMessage(`[1,2,3]`))
		require.Error(t, err)
	})

	t.Run("empty input is an empty calendar", func(t *testing.T) {
		calendar, err := parseCalendar(nil)
		require.NoError(t, err)
		assert.Empty(t, calendar)
	})
}
