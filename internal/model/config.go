package model

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds every runtime setting. Tags serve yaml.v3 (config show/init)
// and mapstructure (viper unmarshal).
type Config struct {
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Crawl        CrawlConfig        `yaml:"crawl" mapstructure:"crawl"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	Logging      LoggingConfig      `yaml:"logging" mapstructure:"logging"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// HTTPConfig configures live page retrieval
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent" validate:"required"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes" validate:"gt=0"`
	MaxRetries   int           `yaml:"max_retries" mapstructure:"max_retries" validate:"min=1,max=10"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CrawlConfig bounds the per-site exploration
type CrawlConfig struct {
	MaxVisits     int    `yaml:"max_visits" mapstructure:"max_visits" validate:"min=1"`
	DatePolicy    string `yaml:"date_policy" mapstructure:"date_policy" validate:"oneof=highest lowest"`
	RespectRobots bool   `yaml:"respect_robots" mapstructure:"respect_robots"`
	KeepText      bool   `yaml:"keep_text" mapstructure:"keep_text"` // Keep normalized body text in records
}

// CacheConfig configures the fetch cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// RateLimitingConfig configures per-host politeness
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second" validate:"gt=0"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size" validate:"min=1"`
}

// ConcurrencyConfig configures how many sites are crawled at once
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers" validate:"min=1"`
}

// LoggingConfig configures the structured logger
type LoggingConfig struct {
	Level       string   `yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
	OutputPaths []string `yaml:"output_paths" mapstructure:"output_paths"`
}

// OutputConfig configures report rendering
type OutputConfig struct {
	Format  string `yaml:"format" mapstructure:"format" validate:"oneof=json yaml"`
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "a11ystatement/0.1 (+https://github.com/ppiankov/a11ystatement)",
			MaxBodyBytes: 5_000_000,
			MaxRetries:   3,
		},
		Crawl: CrawlConfig{
			MaxVisits:     15,
			DatePolicy:    "highest",
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".a11ystatement-cache",
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         2,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level:       "info",
			OutputPaths: []string{"stderr"},
		},
		Output: OutputConfig{
			Format: "json",
			Dir:    "./a11y-reports",
		},
	}
}

var validate = validator.New()

// Validate checks the config against its struct tags
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
