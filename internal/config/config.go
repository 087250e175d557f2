package config

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads KEY=VALUE pairs from the given files into the process
// environment. Variables already set win. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		slog.Debug("Loaded env file", "file", file)
	}
	return nil
}

// SetupLogging installs a JSON slog logger as the default
func SetupLogging(out io.Writer, level string) {
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: ParseLogLevel(level),
	}))
	slog.SetDefault(logger)
}

// ParseLogLevel maps debug/info/warn/error to a slog level, defaulting to info
func ParseLogLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// ProxyConfig configures the search proxy service
type ProxyConfig struct {
	Port            string
	PathPrefix      string
	Provider        string
	KakaoAPIKey     string
	KakaoBaseURL    string
	GoogleAPIKey    string
	UpstreamTimeout time.Duration
	EventStream     string
	LogLevel        string
}

// LoadProxyConfig reads the proxy settings from the environment
func LoadProxyConfig() ProxyConfig {
	return ProxyConfig{
		Port:            getEnv("PORT", "8080"),
		PathPrefix:      os.Getenv("PATH_PREFIX"),
		Provider:        strings.ToLower(getEnv("PLACES_PROVIDER", "kakao")),
		KakaoAPIKey:     os.Getenv("KAKAO_REST_API_KEY"),
		KakaoBaseURL:    getEnv("KAKAO_BASE_URL", "https://dapi.kakao.com"),
		GoogleAPIKey:    os.Getenv("GOOGLE_MAPS_API_KEY"),
		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		EventStream:     os.Getenv("KINESIS_SEARCH_EVENTS_STREAM"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// RecommenderConfig configures the recommender client
type RecommenderConfig struct {
	SearchProxyURL string
	MapKey         string
	PanoramaURL    string
	Geolocation    string
	StartLat       float64
	StartLng       float64
	HasStart       bool
	IPLocatorURL   string
	RouteMode      string
	OSRMBaseURL    string
	MapOutput      string
	LogLevel       string
}

// LoadRecommenderConfig reads the recommender settings from the environment
func LoadRecommenderConfig() RecommenderConfig {
	cfg := RecommenderConfig{
		SearchProxyURL: getEnv("SEARCH_PROXY_URL", "http://localhost:8080"),
		MapKey:         os.Getenv("MAP_KEY"),
		PanoramaURL:    getEnv("PANORAMA_BASE_URL", "https://maps.googleapis.com"),
		Geolocation:    strings.ToLower(getEnv("GEOLOCATION", "fixed")),
		IPLocatorURL:   getEnv("IP_LOCATOR_URL", "http://ip-api.com"),
		RouteMode:      strings.ToLower(getEnv("ROUTE_MODE", "straight")),
		OSRMBaseURL:    getEnv("OSRM_BASE_URL", "http://router.project-osrm.org"),
		MapOutput:      getEnv("MAP_OUTPUT", "recommendation.geojson"),
		LogLevel:       getEnv("LOG_LEVEL", "warn"),
	}

	lat, latOK := lookupFloat("START_LAT")
	lng, lngOK := lookupFloat("START_LNG")
	if latOK && lngOK {
		cfg.StartLat, cfg.StartLng, cfg.HasStart = lat, lng, true
	}
	return cfg
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("15s") or a bare number of seconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}

func lookupFloat(key string) (float64, bool) {
	value := os.Getenv(key)
	if value == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
