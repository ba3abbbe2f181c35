package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Speech     SpeechConfig     `yaml:"speech"`
	Settings   SettingsConfig   `yaml:"settings"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	SRS        SRSConfig        `yaml:"srs"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"polyglotta"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"24h"`
	BcryptCost     int           `yaml:"bcrypt_cost"      env:"AUTH_BCRYPT_COST"      env-default:"10"`
}

// AnalysisConfig holds word-analysis provider settings.
type AnalysisConfig struct {
	APIKey  string        `yaml:"api_key" env:"ANALYSIS_API_KEY" env-required:"true"`
	Model   string        `yaml:"model"   env:"ANALYSIS_MODEL"   env-default:"claude-sonnet-4-20250514"`
	Timeout time.Duration `yaml:"timeout" env:"ANALYSIS_TIMEOUT" env-default:"30s"`
}

// SpeechConfig holds text-to-speech provider, quota and cache settings.
type SpeechConfig struct {
	BaseURL           string        `yaml:"base_url"            env:"SPEECH_BASE_URL"            env-default:"https://api.speechify.dev"`
	APIKey            string        `yaml:"api_key"             env:"SPEECH_API_KEY"`
	Timeout           time.Duration `yaml:"timeout"             env:"SPEECH_TIMEOUT"             env-default:"15s"`
	DefaultVoice      string        `yaml:"default_voice"       env:"SPEECH_DEFAULT_VOICE"       env-default:"alloy"`
	MonthlyQuotaChars int           `yaml:"monthly_quota_chars" env:"SPEECH_MONTHLY_QUOTA_CHARS" env-default:"10000"`
	CacheSize         int           `yaml:"cache_size"          env:"SPEECH_CACHE_SIZE"          env-default:"1024"`
	CacheTTL          time.Duration `yaml:"cache_ttl"           env:"SPEECH_CACHE_TTL"           env-default:"24h"`
}

// SettingsConfig holds settings-synchronization settings.
type SettingsConfig struct {
	SyncInterval   time.Duration `yaml:"sync_interval"   env:"SETTINGS_SYNC_INTERVAL"   env-default:"30s"`
	InitialBackoff time.Duration `yaml:"initial_backoff" env:"SETTINGS_INITIAL_BACKOFF" env-default:"500ms"`
	MaxBackoff     time.Duration `yaml:"max_backoff"     env:"SETTINGS_MAX_BACKOFF"     env-default:"1m"`
	MaxRetries     uint64        `yaml:"max_retries"     env:"SETTINGS_MAX_RETRIES"     env-default:"5"`
}

// DictionaryConfig holds dictionary service settings.
type DictionaryConfig struct {
	MaxWordLength     int     `yaml:"max_word_length"     env:"DICT_MAX_WORD_LENGTH"     env-default:"100"`
	DefaultEaseFactor float64 `yaml:"default_ease_factor" env:"DICT_DEFAULT_EASE_FACTOR" env-default:"2.5"`
	PageSizeDefault   int     `yaml:"page_size_default"   env:"DICT_PAGE_SIZE_DEFAULT"   env-default:"50"`
	PageSizeMax       int     `yaml:"page_size_max"       env:"DICT_PAGE_SIZE_MAX"       env-default:"200"`
}

// SRSConfig holds spaced-repetition system parameters.
type SRSConfig struct {
	DefaultEaseFactor  float64 `yaml:"default_ease_factor" env:"SRS_DEFAULT_EASE"        env-default:"2.5"`
	MinEaseFactor      float64 `yaml:"min_ease_factor"     env:"SRS_MIN_EASE"            env-default:"1.3"`
	MaxIntervalDays    int     `yaml:"max_interval_days"   env:"SRS_MAX_INTERVAL"        env-default:"365"`
	GraduatingInterval int     `yaml:"graduating_interval" env:"SRS_GRADUATING_INTERVAL" env-default:"1"`
	EasyInterval       int     `yaml:"easy_interval"       env:"SRS_EASY_INTERVAL"       env-default:"4"`
	EasyBonus          float64 `yaml:"easy_bonus"          env:"SRS_EASY_BONUS"          env-default:"1.3"`
	LearningStepsRaw   string  `yaml:"learning_steps"      env:"SRS_LEARNING_STEPS"      env-default:"1m,10m"`
	MasteredInterval   int     `yaml:"mastered_interval"   env:"SRS_MASTERED_INTERVAL"   env-default:"21"`
	ReviewsPerDay      int     `yaml:"reviews_per_day"     env:"SRS_REVIEWS_DAY"         env-default:"200"`

	// LearningSteps is parsed from LearningStepsRaw during validation.
	LearningSteps []time.Duration `yaml:"-" env:"-"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// SpeechEnabled reports whether the TTS provider is configured.
func (c SpeechConfig) SpeechEnabled() bool {
	return c.APIKey != ""
}
