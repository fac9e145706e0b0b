package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	defaultSessionSnapshotTTLMinutes = 12 * 60
	defaultRateLimitAllowedPerMin    = 120
	defaultPostgresMaxConns          = 10
)

type Config struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Environment string `toml:"environment"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresDBName   string `toml:"postgres_db_name"`
	PostgresUser     string `toml:"postgres_user"`
	PostgresMaxConns int32  `toml:"postgres_max_conns"`
	RunMigrations    bool   `toml:"run_migrations"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// gymstats
	SessionSnapshotTTLMinutes int      `toml:"session_snapshot_ttl_minutes"`
	E1RMCacheSizeBytes        int      `toml:"e1rm_cache_size_bytes"`
	E1RMCacheExpireSec        int      `toml:"e1rm_cache_expire_sec"`
	RateLimitAllowedPerMin    int      `toml:"rate_limit_allowed_per_min"`
	CorsAllowedOrigins        []string `toml:"cors_allowed_origins"`
	MCPEnabled                bool     `toml:"mcp_enabled"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the optional .env file into the process environment (secrets
// like DB and redis passwords live there) and then the TOML config section
// for the given env.
func Load(env, path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] missing in [%s]", env, path)
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.PostgresMaxConns <= 0 {
		c.PostgresMaxConns = defaultPostgresMaxConns
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.SessionSnapshotTTLMinutes <= 0 {
		c.SessionSnapshotTTLMinutes = defaultSessionSnapshotTTLMinutes
	}
	if c.RateLimitAllowedPerMin <= 0 {
		c.RateLimitAllowedPerMin = defaultRateLimitAllowedPerMin
	}
}

func (c *Config) Validate() error {
	if c.Port <= 0 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.PostgresHost == "" || c.PostgresDBName == "" {
		return errors.New("postgres host and db name must be set")
	}
	if c.RedisHost == "" {
		return errors.New("redis host must be set")
	}
	return nil
}
