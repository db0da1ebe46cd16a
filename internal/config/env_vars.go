package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	appNameVar    = "APP_NAME"
	envVar        = "ENV"
	logLevelVar   = "LOG_LEVEL"
	apiBaseURLVar = "API_BASE_URL"
	sourceURLVar  = "SOURCE_URL"
)

var dotEnvOnce sync.Once

func loadDotEnv() {
	dotEnvOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Debug().Msg("no .env file found, using environment variables")
		}
	})
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Member Client")
}

func (EnvVars) GetEnv() string {
	return strings.ToUpper(GetEnv(envVar, "DEV"))
}

func (EnvVars) GetLogLevel() string {
	return strings.ToLower(GetEnv(logLevelVar, "info"))
}

// GetAPIBaseURL returns the member API root every route is resolved against
// (e.g., "https://api.example.com/api"). A trailing slash is trimmed.
func (EnvVars) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv(apiBaseURLVar, "http://localhost:8080"), "/")
}

// GetSourceURL returns the page URL sent with configuration loads when the
// caller does not supply one.
func (EnvVars) GetSourceURL() string {
	return GetEnv(sourceURLVar, "")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvDuration parses a Go duration ("15s", "1m"). Unparsable values fall
// back to the default.
func GetEnvDuration(envVar string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Warn().Str("var", envVar).Str("value", value).Msg("invalid duration, using default")
		return defaultValue
	}
	return d
}

func GetEnvInt(envVar string, defaultValue int) int {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("var", envVar).Str("value", value).Msg("invalid integer, using default")
		return defaultValue
	}
	return i
}
