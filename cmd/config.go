package cmd

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// StoreConfig locates the flat-file store.
type StoreConfig struct {
	DataDir string `toml:"data_dir"`
}

// MarketDataConfig tunes the quote client.
type MarketDataConfig struct {
	Endpoint        string `toml:"endpoint"`
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"`
	DiskCache       bool   `toml:"disk_cache"`
}

// ResearchConfig selects the LLM used for research.
type ResearchConfig struct {
	Model string `toml:"model"`
}

// LoggingConfig tunes diagnostic output.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Config holds all aivest configuration.
type Config struct {
	Store      StoreConfig      `toml:"store"`
	MarketData MarketDataConfig `toml:"marketdata"`
	Research   ResearchConfig   `toml:"research"`
	Logging    LoggingConfig    `toml:"logging"`
}

// newDefaultConfig returns a Config with sensible defaults.
func newDefaultConfig() Config {
	dataDir := ".aivest"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".aivest")
	}
	return Config{
		Store:   StoreConfig{DataDir: dataDir},
		Logging: LoggingConfig{Level: "warn"},
	}
}

// loadConfig loads configuration from a TOML file with defaults and env
// overrides. A missing file is not an error, a malformed one is.
func loadConfig(path string) (Config, error) {
	cfg := newDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// use defaults
		case err != nil:
			return cfg, err
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	if dir := os.Getenv("AIVEST_DATA_DIR"); dir != "" {
		cfg.Store.DataDir = dir
	}
	if model := os.Getenv("AIVEST_RESEARCH_MODEL"); model != "" {
		cfg.Research.Model = model
	}
	if level := os.Getenv("AIVEST_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}

	return cfg, nil
}

// newLogger builds the console logger at the configured level.
func newLogger(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
