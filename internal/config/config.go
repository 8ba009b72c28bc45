package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Study     StudyConfig     `mapstructure:"study" validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Task      TaskConfig      `mapstructure:"task" validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
}

// StudyConfig holds settings for the learner's study experience.
type StudyConfig struct {
	// TimeZone is the IANA zone used to decide calendar days for streaks.
	TimeZone          string `mapstructure:"time_zone" validate:"required,timezone"`
	DefaultQuizSize   int    `mapstructure:"default_quiz_size" validate:"gt=0"`
	SessionTTLMinutes int    `mapstructure:"session_ttl_minutes" validate:"gt=0"`
	SeedOnEmpty       bool   `mapstructure:"seed_on_empty"`
}

// LLMConfig contains all LLM integration related settings.
// An empty GeminiAPIKey disables example generation.
type LLMConfig struct {
	GeminiAPIKey        string `mapstructure:"gemini_api_key"`
	ModelName           string `mapstructure:"model_name" validate:"required_with=GeminiAPIKey"`
	MaxRetries          int    `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryBackoffSeconds int    `mapstructure:"retry_backoff_seconds" validate:"gte=1,lte=60"`
}

// TaskConfig configures the background task runner.
type TaskConfig struct {
	WorkerCount         int `mapstructure:"worker_count" validate:"gt=0"`
	QueueSize           int `mapstructure:"queue_size" validate:"gt=0"`
	StuckTaskAgeMinutes int `mapstructure:"stuck_task_age_minutes" validate:"gt=0"`
}

// RateLimitConfig configures the per-client API rate limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gt=0"`
	Burst             int     `mapstructure:"burst" validate:"gt=0"`
}

// GenerationEnabled reports whether an LLM key is configured.
func (c LLMConfig) GenerationEnabled() bool {
	return c.GeminiAPIKey != ""
}
