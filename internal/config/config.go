// Package config handles the TOML configuration file and the fixed reference data
// (currencies, slider domains) used by cfohelper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/cfohelper/internal/model"

	"github.com/BurntSushi/toml"
)

// Export formats accepted by ExportConfig.Format.
const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// Config holds all cfohelper configuration.
type Config struct {
	Scenario ScenarioConfig `toml:"scenario"`
	Display  DisplayConfig  `toml:"display"`
	Export   ExportConfig   `toml:"export"`
	Metering MeteringConfig `toml:"metering"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// ScenarioConfig holds the slider values the dashboard starts with.
type ScenarioConfig struct {
	Spending float64 `toml:"spending"`
	Pricing  float64 `toml:"pricing"`
	Hiring   float64 `toml:"hiring"`
}

// DisplayConfig holds presentation preferences.
type DisplayConfig struct {
	Currency string `toml:"currency"`
	Chart    string `toml:"chart"`
	Theme    string `toml:"theme"`
}

// ExportConfig controls where and how scenario reports are written.
type ExportConfig struct {
	Dir    string `toml:"dir,omitempty"`
	Format string `toml:"format"`
}

// MeteringConfig holds the mocked billing rates shown on the usage panel.
type MeteringConfig struct {
	Enabled      bool    `toml:"enabled"`
	ScenarioRate float64 `toml:"scenario_rate"`
	ExportRate   float64 `toml:"export_rate"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	EventsBuffer int    `toml:"events_buffer"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Scenario: ScenarioConfig{
			Spending: SpendingRange.Default,
			Pricing:  PricingRange.Default,
			Hiring:   HiringRange.Default,
		},
		Display: DisplayConfig{
			Currency: BaseCurrencyCode,
			Chart:    model.ChartBar.ID(),
			Theme:    "flexoki-dark",
		},
		Export: ExportConfig{
			Format: FormatJSON,
		},
		Metering: MeteringConfig{
			Enabled:      true,
			ScenarioRate: 0.10,
			ExportRate:   0.25,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8787",
			EventsBuffer: 200,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cfohelper")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "cfohelper")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG cache directory holding the usage meter and logs.
func DataDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "cfohelper")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "cfohelper")
}

// MeterPath returns the path of the SQLite usage meter.
func MeterPath() string {
	return filepath.Join(DataDir(), "usage.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadOrDefault loads config, returning defaults on error.
// The dashboard must start even when the file is corrupted.
func LoadOrDefault() Config {
	cfg, err := Load()
	if err != nil {
		cfg = DefaultConfig()
		cfg.applyEnv()
	}
	return cfg
}

func (c *Config) applyEnv() {
	if code := os.Getenv("CFOHELPER_CURRENCY"); code != "" {
		if cur, ok := LookupCurrency(code); ok {
			c.Display.Currency = cur.Code
		}
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// StartScenario builds the starting scenario from config. Slider values are clamped
// to their domains; unknown currency or chart ids fall back to the defaults.
func (c Config) StartScenario() model.Scenario {
	currency := BaseCurrencyCode
	if cur, ok := LookupCurrency(c.Display.Currency); ok {
		currency = cur.Code
	}
	chart, _ := model.ParseChartKind(c.Display.Chart)

	return model.Scenario{
		Inputs: model.Inputs{
			Spending: SpendingRange.Clamp(c.Scenario.Spending),
			Pricing:  PricingRange.Clamp(c.Scenario.Pricing),
			Hiring:   HiringRange.Clamp(c.Scenario.Hiring),
		},
		Currency: currency,
		Chart:    chart,
	}
}

// ExportFormat returns the normalized export format, defaulting to JSON.
func (c Config) ExportFormat() string {
	if strings.EqualFold(strings.TrimSpace(c.Export.Format), FormatXLSX) {
		return FormatXLSX
	}
	return FormatJSON
}

// ExportDir returns the directory reports are written to; "" means the working directory.
func (c Config) ExportDir() string {
	if c.Export.Dir == "" {
		return "."
	}
	if strings.HasPrefix(c.Export.Dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, c.Export.Dir[2:])
		}
	}
	return c.Export.Dir
}
