// Package config loads webscraper-chat configuration.
// Source priority (highest to lowest):
// 1. Command-line flags, passed to Load as Overrides
// 2. Environment variables, including a .env file in the working directory
// 3. The config file given by --config, or config.yaml in the user config dir
// 4. Built-in defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iksnae/webscraper-chat/internal"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	appName            = "webscraper-chat"
	defaultOpenAIModel = "gpt-4o-mini"
)

// Provider names
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// StorageConfig selects the key/value backend holding the chat state
type StorageConfig struct {
	Driver string `yaml:"driver"` // sqlite | pebble | redis | memory
	Path   string `yaml:"path"`   // sqlite file or pebble directory
	Key    string `yaml:"key"`

	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	Timeout       time.Duration `yaml:"timeout"`
}

// AIConfig configures the model that answers prompts
type AIConfig struct {
	Provider        string  `yaml:"provider"` // gemini | openai | none
	Model           string  `yaml:"model"`
	APIKey          string  `yaml:"api_key"`
	BaseURL         string  `yaml:"base_url"`
	Temperature     float32 `yaml:"temperature"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console | json
}

// ScrapeConfig tunes the simulated scrape progress
type ScrapeConfig struct {
	StageDelay time.Duration `yaml:"stage_delay"`
	Jitter     time.Duration `yaml:"jitter"`
}

// MetricsConfig configures the Prometheus textfile dump
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Config is the complete configuration
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	AI      AIConfig      `yaml:"ai"`
	Log     LogConfig     `yaml:"log"`
	Scrape  ScrapeConfig  `yaml:"scrape"`
	Metrics MetricsConfig `yaml:"metrics"`

	// Path is the config file that was read, empty when none existed
	Path string `yaml:"-"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver:    internal.DriverSQLite,
			Key:       internal.DefaultStorageKey,
			RedisAddr: "localhost:6379",
			Timeout:   3 * time.Second,
		},
		AI: AIConfig{
			Provider:        ProviderGemini,
			Model:           "gemini-2.5-flash-lite",
			Temperature:     0.3,
			MaxOutputTokens: 512,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Scrape: ScrapeConfig{
			StageDelay: 1500 * time.Millisecond,
			Jitter:     1000 * time.Millisecond,
		},
	}
}

// Overrides carries command-line flag values; empty fields are ignored
type Overrides struct {
	StorageDriver   string
	StoragePath     string
	AIProvider      string
	LogLevel        string
	MetricsTextfile string
}

// Load reads .env, the config file and environment overrides, applies
// flag overrides and fills in path defaults. A missing default config
// file is not an error; an explicit path that does not exist is.
func Load(configPath string, flags Overrides) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := DefaultConfig()
	paths, pathErr := DetectDataPaths()

	explicit := configPath != ""
	if !explicit && pathErr == nil {
		configPath = paths.ConfigFile()
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
			}
			cfg.Path = configPath
		case explicit:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	applyEnvOverrides(cfg, os.Getenv)
	applyFlagOverrides(cfg, flags)
	applyProviderEnv(cfg, os.Getenv)

	if cfg.Storage.Path == "" && pathErr == nil {
		cfg.Storage.Path = paths.DefaultStoragePath(cfg.Storage.Driver)
	}
	if cfg.AI.Provider == ProviderOpenAI && cfg.AI.Model == DefaultConfig().AI.Model {
		cfg.AI.Model = defaultOpenAIModel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlagOverrides(cfg *Config, flags Overrides) {
	if flags.StorageDriver != "" {
		cfg.Storage.Driver = strings.ToLower(flags.StorageDriver)
	}
	if flags.StoragePath != "" {
		cfg.Storage.Path = flags.StoragePath
	}
	if flags.AIProvider != "" {
		cfg.AI.Provider = strings.ToLower(flags.AIProvider)
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.MetricsTextfile != "" {
		cfg.Metrics.Textfile = flags.MetricsTextfile
	}
}

// applyEnvOverrides applies environment variable overrides to the config
func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	if v := getenv("WEBSCRAPER_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = strings.ToLower(v)
	}
	if v := getenv("WEBSCRAPER_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := getenv("WEBSCRAPER_REDIS_ADDR"); v != "" {
		cfg.Storage.RedisAddr = v
	}
	if v := getenv("WEBSCRAPER_REDIS_PASSWORD"); v != "" {
		cfg.Storage.RedisPassword = v
	}
	if v := getenv("WEBSCRAPER_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Storage.RedisDB = n
		}
	}
	if v := getenv("WEBSCRAPER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv("WEBSCRAPER_AI_PROVIDER"); v != "" {
		cfg.AI.Provider = strings.ToLower(v)
	}
}

// applyProviderEnv reads the API key of the selected provider. It runs
// after flags so --provider picks up the matching key.
func applyProviderEnv(cfg *Config, getenv func(string) string) {
	switch cfg.AI.Provider {
	case ProviderGemini:
		if v := getenv("GEMINI_API_KEY"); v != "" {
			cfg.AI.APIKey = v
		}
	case ProviderOpenAI:
		if v := getenv("OPENAI_API_KEY"); v != "" {
			cfg.AI.APIKey = v
		}
		if v := getenv("OPENAI_BASE_URL"); v != "" {
			cfg.AI.BaseURL = v
		}
	}
}

// Validate checks values that would otherwise fail deep inside a command
func (c *Config) Validate() error {
	switch c.AI.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderNone:
	default:
		return fmt.Errorf("unknown ai.provider %q (supported: gemini, openai, none)", c.AI.Provider)
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("unknown log.format %q (supported: console, json)", c.Log.Format)
	}
	if _, err := internal.ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Scrape.StageDelay < 0 || c.Scrape.Jitter < 0 {
		return fmt.Errorf("scrape delays must not be negative")
	}
	return nil
}

// KVOptions converts the storage section for internal.OpenKeyValueStore
func (s StorageConfig) KVOptions() internal.KVOptions {
	return internal.KVOptions{
		Driver:        s.Driver,
		Path:          s.Path,
		RedisAddr:     s.RedisAddr,
		RedisPassword: s.RedisPassword,
		RedisDB:       s.RedisDB,
		Timeout:       s.Timeout,
	}
}
