package config

type Config interface {
	EnvConfig
	PipelineConfig
	StorageConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetAPIBaseURL() string
	GetSourceURL() string
}

type mainConfig struct {
	EnvVars
	Pipeline
	Storage
}

// New loads an optional .env file from the working directory and returns a
// Config backed by the process environment.
func New() Config {
	loadDotEnv()
	return mainConfig{}
}
