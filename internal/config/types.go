package config

import (
	"time"

	"github.com/raaihank/maskform/internal/currency"
)

// Config represents the main configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Currency  CurrencyConfig  `yaml:"currency" mapstructure:"currency"`
	Masking   MaskingConfig   `yaml:"masking" mapstructure:"masking"`
	Presets   PresetsConfig   `yaml:"presets" mapstructure:"presets"`
	Events    EventsConfig    `yaml:"events" mapstructure:"events"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port         int           `yaml:"port" mapstructure:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

// CurrencyConfig seeds the session formatting defaults. When Locale is set
// it selects a built-in preset first; explicit fields then override the
// preset values.
type CurrencyConfig struct {
	Locale            string `yaml:"locale" mapstructure:"locale"`
	Symbol            string `yaml:"symbol" mapstructure:"symbol"`
	DecimalDigits     *int   `yaml:"decimal_digits" mapstructure:"decimal_digits"`
	ThousandSeparator string `yaml:"thousand_separator" mapstructure:"thousand_separator"`
	DecimalSeparator  string `yaml:"decimal_separator" mapstructure:"decimal_separator"`
	Format            string `yaml:"format" mapstructure:"format"`
}

// MaskingConfig contains mask engine configuration.
type MaskingConfig struct {
	ObfuscationChar string `yaml:"obfuscation_char" mapstructure:"obfuscation_char"`
	AutoComplete    bool   `yaml:"auto_complete" mapstructure:"auto_complete"`
	PhoneCountry    string `yaml:"phone_country" mapstructure:"phone_country"`
	DateSeparator   string `yaml:"date_separator" mapstructure:"date_separator"`
}

// PresetsConfig contains the Redis preset store configuration.
type PresetsConfig struct {
	Enabled        bool          `yaml:"enabled" mapstructure:"enabled"`
	RedisURL       string        `yaml:"redis_url" mapstructure:"redis_url"`
	KeyPrefix      string        `yaml:"key_prefix" mapstructure:"key_prefix"`
	TTL            time.Duration `yaml:"ttl" mapstructure:"ttl"`
	MaxConnections int           `yaml:"max_connections" mapstructure:"max_connections"`
	MinIdleConns   int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"`
}

// EventsConfig contains the live event stream configuration.
type EventsConfig struct {
	Enabled        bool     `yaml:"enabled" mapstructure:"enabled"`
	Path           string   `yaml:"path" mapstructure:"path"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// RateLimitConfig contains per-client request rate limiting.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled" mapstructure:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // json or console
	File   struct {
		Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
		Path    string `yaml:"path" mapstructure:"path"`
	} `yaml:"file" mapstructure:"file"`
}

// GetDefaults returns a configuration with sensible defaults.
func GetDefaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Currency: CurrencyConfig{
			Locale: "en-US",
		},
		Masking: MaskingConfig{
			ObfuscationChar: "*",
			AutoComplete:    true,
			PhoneCountry:    "us",
			DateSeparator:   "/",
		},
		Presets: PresetsConfig{
			Enabled:        false,
			RedisURL:       "redis://localhost:6379/0",
			KeyPrefix:      "maskform:preset:",
			TTL:            24 * time.Hour,
			MaxConnections: 10,
			MinIdleConns:   2,
		},
		Events: EventsConfig{
			Enabled: true,
			Path:    "/ws",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 50,
			Burst:             100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// SessionCurrency resolves the currency session defaults this configuration
// describes: the locale preset first, then explicit field overrides.
func (c *Config) SessionCurrency() currency.Options {
	opts, ok := currency.LocaleOptions(c.Currency.Locale)
	if !ok {
		opts = currency.SessionDefaults()
	}

	if c.Currency.Symbol != "" {
		opts.Symbol = c.Currency.Symbol
	}
	if c.Currency.DecimalDigits != nil {
		opts.DecimalDigits = *c.Currency.DecimalDigits
	}
	if c.Currency.ThousandSeparator != "" {
		opts.ThousandSeparator = c.Currency.ThousandSeparator
	}
	if c.Currency.DecimalSeparator != "" {
		opts.DecimalSeparator = c.Currency.DecimalSeparator
	}
	if c.Currency.Format != "" {
		opts.Format = c.Currency.Format
	}
	return opts
}
