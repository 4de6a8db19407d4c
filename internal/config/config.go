package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "30s" and "5m" parse.
type Duration time.Duration

// UnmarshalYAML accepts either a duration string or a nanosecond integer.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(n)
		return nil
	}
	return fmt.Errorf("invalid duration value")
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the full service configuration, loaded from YAML with defaults
// filled in for anything unset.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Cache      CacheConfig      `yaml:"cache"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Aggregator AggregatorConfig `yaml:"aggregator"`
	Providers  ProvidersConfig  `yaml:"providers"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
	IdleTimeout  Duration `yaml:"idle_timeout"`
}

type CacheConfig struct {
	TTL Duration `yaml:"ttl"`
}

type RateLimitConfig struct {
	// Requests allowed per window per client IP.
	Requests int           `yaml:"requests"`
	Window   Duration `yaml:"window"`
}

type AggregatorConfig struct {
	MaxResultsPerProvider int           `yaml:"max_results_per_provider"`
	EnableDeduplication   *bool         `yaml:"enable_deduplication"`
	ParallelRequests      *bool         `yaml:"parallel_requests"`
	ProviderTimeout       Duration `yaml:"provider_timeout"`
}

type ProvidersConfig struct {
	// HTTPTimeout bounds each catalog backend call.
	HTTPTimeout Duration `yaml:"http_timeout"`
	// BaseURLs maps catalog names to backend URLs; a catalog without one
	// serves fixture data only.
	BaseURLs map[string]string `yaml:"base_urls"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration(10 * time.Second),
			WriteTimeout: Duration(10 * time.Second),
			IdleTimeout:  Duration(60 * time.Second),
		},
		Cache: CacheConfig{
			TTL: Duration(30 * time.Second),
		},
		RateLimit: RateLimitConfig{
			Requests: 10,
			Window:   Duration(time.Minute),
		},
		Aggregator: AggregatorConfig{
			MaxResultsPerProvider: 50,
			ProviderTimeout:       Duration(5 * time.Second),
		},
		Providers: ProvidersConfig{
			HTTPTimeout: Duration(10 * time.Second),
		},
	}
}

// Load reads configuration from a YAML file. An empty path returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg.fillDefaults()
	return cfg, nil
}

// Dedup reports whether deduplication is enabled (default true).
func (c AggregatorConfig) Dedup() bool {
	return c.EnableDeduplication == nil || *c.EnableDeduplication
}

// Parallel reports whether parallel fan-out is enabled (default true).
func (c AggregatorConfig) Parallel() bool {
	return c.ParallelRequests == nil || *c.ParallelRequests
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = def.Server.ReadTimeout
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = def.Server.WriteTimeout
	}
	if c.Server.IdleTimeout <= 0 {
		c.Server.IdleTimeout = def.Server.IdleTimeout
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = def.Cache.TTL
	}
	if c.RateLimit.Requests <= 0 {
		c.RateLimit.Requests = def.RateLimit.Requests
	}
	if c.RateLimit.Window <= 0 {
		c.RateLimit.Window = def.RateLimit.Window
	}
	if c.Aggregator.MaxResultsPerProvider <= 0 {
		c.Aggregator.MaxResultsPerProvider = def.Aggregator.MaxResultsPerProvider
	}
	if c.Aggregator.ProviderTimeout <= 0 {
		c.Aggregator.ProviderTimeout = def.Aggregator.ProviderTimeout
	}
	if c.Providers.HTTPTimeout <= 0 {
		c.Providers.HTTPTimeout = def.Providers.HTTPTimeout
	}
}
