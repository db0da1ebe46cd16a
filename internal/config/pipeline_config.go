package config

import "time"

type PipelineConfig interface {
	GetRequestTimeout() time.Duration
	GetRetryBaseDelay() time.Duration
	GetRetryAttempts() int
}

type Pipeline struct{}

var _ PipelineConfig = Pipeline{}

func (Pipeline) GetRequestTimeout() time.Duration {
	return GetEnvDuration("API_TIMEOUT", 15*time.Second)
}

func (Pipeline) GetRetryBaseDelay() time.Duration {
	return GetEnvDuration("RETRY_BASE_DELAY", 1*time.Second)
}

func (Pipeline) GetRetryAttempts() int {
	return GetEnvInt("RETRY_ATTEMPTS", 3)
}
