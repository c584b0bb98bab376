package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 3, cfg.BaselineDailyTarget)
	assert.Equal(t, "https://leetcode-stats-api.herokuapp.com", cfg.LeetCodeAPIURL)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 100*time.Millisecond, cfg.OutboxPollInterval)
	assert.False(t, cfg.OutboxProcessorEnabled)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CODESTRIKE_DAILY_TARGET", "5")
	t.Setenv("LEETCODE_USERNAME", "tourist")
	t.Setenv("STATS_CACHE_TTL", "30m")
	t.Setenv("OUTBOX_PROCESSOR_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 5, cfg.BaselineDailyTarget)
	assert.Equal(t, "tourist", cfg.LeetCodeUsername)
	assert.Equal(t, 30*time.Minute, cfg.StatsCacheTTL)
	assert.True(t, cfg.OutboxProcessorEnabled)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CODESTRIKE_DAILY_TARGET", "not-a-number")
	t.Setenv("STATS_CACHE_TTL", "whenever")
	t.Setenv("OUTBOX_PROCESSOR_ENABLED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.BaselineDailyTarget)
	assert.Equal(t, 10*time.Minute, cfg.StatsCacheTTL)
	assert.False(t, cfg.OutboxProcessorEnabled)
}
