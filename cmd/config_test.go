package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Store.DataDir == "" {
		t.Error("default data dir must not be empty")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("default log level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aivest.toml")
	content := `
[store]
data_dir = "/tmp/aivest-test"

[marketdata]
cache_ttl_seconds = 120
disk_cache = true

[research]
model = "gemini-x"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Store.DataDir != "/tmp/aivest-test" {
		t.Errorf("data_dir = %q", cfg.Store.DataDir)
	}
	if cfg.MarketData.CacheTTLSeconds != 120 || !cfg.MarketData.DiskCache {
		t.Errorf("marketdata = %+v", cfg.MarketData)
	}
	if cfg.Research.Model != "gemini-x" {
		t.Errorf("model = %q", cfg.Research.Model)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("AIVEST_DATA_DIR", "/tmp/from-env")
	t.Setenv("AIVEST_RESEARCH_MODEL", "gemini-env")

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Store.DataDir != "/tmp/from-env" {
		t.Errorf("data_dir = %q, want env override", cfg.Store.DataDir)
	}
	if cfg.Research.Model != "gemini-env" {
		t.Errorf("model = %q, want env override", cfg.Research.Model)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aivest.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("expected an error for malformed TOML")
	}
}

func TestNewLoggerBadLevel(t *testing.T) {
	// An unknown level falls back to warn instead of failing.
	log := newLogger(Config{Logging: LoggingConfig{Level: "chatty"}})
	if log.GetLevel().String() != "warn" {
		t.Errorf("level = %s, want warn", log.GetLevel())
	}
}

func TestCommandNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Commands {
		name := c.Name()
		if seen[name] {
			t.Errorf("duplicate command name %q", name)
		}
		seen[name] = true
		if strings.TrimSpace(c.Synopsis()) == "" {
			t.Errorf("command %q has no synopsis", name)
		}
		if !strings.Contains(c.Usage(), "aivest "+name) {
			t.Errorf("usage of %q does not mention 'aivest %s'", name, name)
		}
	}
}
