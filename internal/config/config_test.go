package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProxyConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "PATH_PREFIX", "PLACES_PROVIDER", "KAKAO_BASE_URL", "UPSTREAM_TIMEOUT", "KINESIS_SEARCH_EVENTS_STREAM"} {
		t.Setenv(key, "")
	}

	cfg := LoadProxyConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "kakao", cfg.Provider)
	assert.Equal(t, "https://dapi.kakao.com", cfg.KakaoBaseURL)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Empty(t, cfg.EventStream)
}

func TestLoadProxyConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PATH_PREFIX", "/search")
	t.Setenv("PLACES_PROVIDER", "Google")
	t.Setenv("KAKAO_REST_API_KEY", "kakao-key")
	t.Setenv("UPSTREAM_TIMEOUT", "3")
	t.Setenv("KINESIS_SEARCH_EVENTS_STREAM", "search-events")

	cfg := LoadProxyConfig()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/search", cfg.PathPrefix)
	assert.Equal(t, "google", cfg.Provider)
	assert.Equal(t, "kakao-key", cfg.KakaoAPIKey)
	assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "search-events", cfg.EventStream)
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TIMEOUT_TEST", "250ms")
	assert.Equal(t, 250*time.Millisecond, getEnvDuration("TIMEOUT_TEST", time.Second))

	t.Setenv("TIMEOUT_TEST", "soon")
	assert.Equal(t, time.Second, getEnvDuration("TIMEOUT_TEST", time.Second))
}

func TestLoadRecommenderConfig_StartPosition(t *testing.T) {
	t.Setenv("START_LAT", "37.5665")
	t.Setenv("START_LNG", "126.9780")
	t.Setenv("ROUTE_MODE", "OSRM")

	cfg := LoadRecommenderConfig()
	assert.True(t, cfg.HasStart)
	assert.Equal(t, 37.5665, cfg.StartLat)
	assert.Equal(t, 126.9780, cfg.StartLng)
	assert.Equal(t, "osrm", cfg.RouteMode)

	t.Setenv("START_LNG", "east")
	assert.False(t, LoadRecommenderConfig().HasStart)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("chatty"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel(""))
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DOTENV_ONLY=from-file\nDOTENV_BOTH=from-file\n"), 0o600))

	t.Setenv("DOTENV_BOTH", "from-env")
	t.Setenv("DOTENV_ONLY", "")
	os.Unsetenv("DOTENV_ONLY")

	require.NoError(t, LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("DOTENV_ONLY"))
	assert.Equal(t, "from-env", os.Getenv("DOTENV_BOTH"))
}
