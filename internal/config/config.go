package config

import "time"

type Config struct {
	API        APIConfig      `mapstructure:"api"`
	Database   DatabaseConfig `mapstructure:"database"`
	Ledger     LedgerConfig   `mapstructure:"ledger"`
	Cache      CacheConfig    `mapstructure:"cache"`
	Upload     UploadConfig   `mapstructure:"upload"`
	Log        LogConfig      `mapstructure:"log"`
	Defaults   DefaultsConfig `mapstructure:"defaults"`
	ConfigPath string         `mapstructure:"-"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LedgerConfig struct {
	Path string `mapstructure:"path"`
}

type CacheConfig struct {
	Backend   string        `mapstructure:"backend"`
	TTL       time.Duration `mapstructure:"ttl"`
	RedisAddr string        `mapstructure:"redis_addr"`
	RedisDB   int           `mapstructure:"redis_db"`
}

type UploadConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DefaultsConfig struct {
	Gateway  string `mapstructure:"gateway"`
	PageSize int    `mapstructure:"page_size"`
	Currency string `mapstructure:"currency"`
}

const (
	DefaultBaseURL      = "http://localhost:5000/api"
	CacheBackendSQLite  = "sqlite"
	CacheBackendMemory  = "memory"
	CacheBackendRedis   = "redis"
	DefaultPollInterval = 2 * time.Second
)

func NewDefault() *Config {
	return &Config{
		API:      APIConfig{BaseURL: DefaultBaseURL, Timeout: 0},
		Database: DatabaseConfig{Path: ""},
		Ledger:   LedgerConfig{Path: ""},
		Cache:    CacheConfig{Backend: CacheBackendSQLite, TTL: 30 * time.Second},
		Upload:   UploadConfig{PollInterval: DefaultPollInterval},
		Log:      LogConfig{Level: "warn"},
		Defaults: DefaultsConfig{Gateway: "paypal", PageSize: 20, Currency: "USD"},
	}
}

// Keys returns the flattened defaults so a fresh config file documents every option.
func (c *Config) Keys() map[string]any {
	return map[string]any{
		"api.base_url":         c.API.BaseURL,
		"api.timeout":          c.API.Timeout.String(),
		"database.path":        c.Database.Path,
		"ledger.path":          c.Ledger.Path,
		"cache.backend":        c.Cache.Backend,
		"cache.ttl":            c.Cache.TTL.String(),
		"cache.redis_addr":     c.Cache.RedisAddr,
		"cache.redis_db":       c.Cache.RedisDB,
		"upload.poll_interval": c.Upload.PollInterval.String(),
		"log.level":            c.Log.Level,
		"defaults.gateway":     c.Defaults.Gateway,
		"defaults.page_size":   c.Defaults.PageSize,
		"defaults.currency":    c.Defaults.Currency,
	}
}
