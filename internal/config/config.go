package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Storage backends.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string   `mapstructure:"env"`       // current application environment (local, dev, production)
	LogLevel         string   `mapstructure:"log_level"` // overrides the environment default level
	TelegramAPIToken string   `mapstructure:"-"`         // Telegram API token loaded from environment; empty disables the bot
	Storage          Storage  `mapstructure:"storage"`
	Sheets           Sheets   `mapstructure:"sheets"`
	HTTP             HTTP     `mapstructure:"http"`
	Sessions         Sessions `mapstructure:"sessions"`
	DB               DB       `mapstructure:"database"` // database configuration section
	Redis            Redis    `mapstructure:"redis"`
}

// Storage selects where settings and the leaderboard are kept.
type Storage struct {
	Backend    string `mapstructure:"backend"`     // memory, redis, sqlite or postgres
	SQLitePath string `mapstructure:"sqlite_path"` // database file for the sqlite backend
}

// Sheets configures question bank downloads.
type Sheets struct {
	Timeout         time.Duration `mapstructure:"timeout"`          // per request timeout
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`        // how long a parsed bank is reused
	RefreshSchedule string        `mapstructure:"refresh_schedule"` // cron spec for background refresh
	CacheText       bool          `mapstructure:"cache_text"`       // keep raw CSV in the key-value store
}

// HTTP configures the JSON API.
type HTTP struct {
	Addr            string        `mapstructure:"addr"` // empty disables the API
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Sessions configures per-player session tracking.
type Sessions struct {
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`
	EvictInterval time.Duration `mapstructure:"evict_interval"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Redis contains Redis connection parameters.
type Redis struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"-"` // loaded from environment
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files and environment variables.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("storage.backend", StorageMemory)
	v.SetDefault("storage.sqlite_path", "data/galaxy.db")
	v.SetDefault("sheets.timeout", "15s")
	v.SetDefault("sheets.cache_ttl", "10m")
	v.SetDefault("sheets.refresh_schedule", "*/30 * * * *")
	v.SetDefault("sheets.cache_text", true)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("sessions.idle_timeout", "2h")
	v.SetDefault("sessions.evict_interval", "10m")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("storage.backend", "STORAGE_BACKEND")
	_ = v.BindEnv("http.addr", "HTTP_ADDR")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")
	cfg.Redis.Password = v.GetString("redis_password")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case StorageMemory, StorageRedis, StorageSQLite:
	case StoragePostgres:
		if c.DB.URL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for the postgres backend", ErrMissingEnvironmentVariables)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Sessions.EvictInterval <= 0 {
		return fmt.Errorf("sessions.evict_interval must be positive, got %s", c.Sessions.EvictInterval)
	}

	if c.TelegramAPIToken == "" && c.HTTP.Addr == "" {
		return fmt.Errorf("%w: set TELEGRAM_API_TOKEN or HTTP_ADDR", ErrMissingEnvironmentVariables)
	}

	return nil
}
