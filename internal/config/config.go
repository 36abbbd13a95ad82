package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for everything the environment does not override.
const (
	DefaultWeatherBaseURL   = "https://api.openweathermap.org/data/2.5"
	DefaultCountriesBaseURL = "https://restcountries.com/v3.1"
	DefaultOpenAIModel      = "gpt-4o-mini"
	DefaultAnthropicModel   = "claude-3-5-sonnet-20241022"
	DefaultRemoteTimeout    = 10 * time.Second
	DefaultAITimeout        = 60 * time.Second
	DefaultCacheTTL         = 10 * time.Minute
)

// Config holds every recognized option. A yaml file is optional; environment
// variables always win over file values.
type Config struct {
	Weather   WeatherConfig   `yaml:"weather"`
	Countries CountriesConfig `yaml:"countries"`
	AI        AIConfig        `yaml:"ai"`
	Cache     CacheConfig     `yaml:"cache"`
	Server    ServerConfig    `yaml:"server"`
	LogLevel  string          `yaml:"log_level"`
}

type WeatherConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type CountriesConfig struct {
	BaseURL string `yaml:"base_url"`
}

type AIConfig struct {
	OpenAIAPIKey    string `yaml:"openai_api_key"`
	OpenAIModel     string `yaml:"openai_model"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	AnthropicModel  string `yaml:"anthropic_model"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
}

// Timeout returns the provider call timeout.
func (a AIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds > 0 {
		return time.Duration(a.TimeoutSeconds) * time.Second
	}
	return DefaultAITimeout
}

type CacheConfig struct {
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	TTLSeconds    int    `yaml:"ttl_seconds"`
}

// Enabled reports whether the response cache is turned on.
func (c CacheConfig) Enabled() bool { return c.RedisAddr != "" }

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLSeconds > 0 {
		return time.Duration(c.TTLSeconds) * time.Second
	}
	return DefaultCacheTTL
}

type ServerConfig struct {
	StaticDir string `yaml:"static_dir"`
}

// Load reads the optional yaml file at path and applies environment
// overrides and defaults. A missing file is not an error; an unreadable or
// malformed one is.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Fall through to env/defaults.
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	envString(&cfg.Weather.APIKey, "WEATHER_API_KEY")
	envString(&cfg.Weather.BaseURL, "WEATHER_API_BASE")
	envString(&cfg.Countries.BaseURL, "COUNTRIES_API_BASE")
	envString(&cfg.AI.OpenAIAPIKey, "OPENAI_API_KEY")
	envString(&cfg.AI.OpenAIModel, "OPENAI_MODEL")
	envString(&cfg.AI.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envString(&cfg.AI.AnthropicModel, "ANTHROPIC_MODEL")
	envString(&cfg.Cache.RedisAddr, "ALMANAC_REDIS_ADDR")
	envString(&cfg.Cache.RedisPassword, "ALMANAC_REDIS_PASSWORD")
	envInt(&cfg.Cache.RedisDB, "ALMANAC_REDIS_DB")
	envInt(&cfg.Cache.TTLSeconds, "ALMANAC_CACHE_TTL")
	envInt(&cfg.AI.TimeoutSeconds, "ALMANAC_AI_TIMEOUT")
	envString(&cfg.Server.StaticDir, "ALMANAC_STATIC_DIR")
	envString(&cfg.LogLevel, "ALMANAC_LOG_LEVEL")
}

func applyDefaults(cfg *Config) {
	if cfg.Weather.BaseURL == "" {
		cfg.Weather.BaseURL = DefaultWeatherBaseURL
	}
	if cfg.Countries.BaseURL == "" {
		cfg.Countries.BaseURL = DefaultCountriesBaseURL
	}
	if cfg.AI.OpenAIModel == "" {
		cfg.AI.OpenAIModel = DefaultOpenAIModel
	}
	if cfg.AI.AnthropicModel == "" {
		cfg.AI.AnthropicModel = DefaultAnthropicModel
	}
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
