package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all sankeygen configuration.
type Config struct {
	Export     ExportConfig     `toml:"export"`
	Defaults   DefaultsConfig   `toml:"defaults"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// ExportConfig describes the CSV schema of the source application's export.
// This is a fixed external contract; the defaults match Hibiscus.
type ExportConfig struct {
	Delimiter      string `toml:"delimiter"`
	CategoryColumn string `toml:"category_column"`
	AmountColumn   string `toml:"amount_column"`
	// DecimalComma selects German number formatting for amounts
	// ("1.234,56" instead of "1,234.56").
	DecimalComma bool `toml:"decimal_comma"`
}

// DefaultsConfig holds fallback values for flags not given on the command line.
type DefaultsConfig struct {
	Div       float64 `toml:"div"`
	Threshold float64 `toml:"threshold"`
}

// AppearanceConfig holds label formatting preferences.
type AppearanceConfig struct {
	Currency string `toml:"currency"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Export: ExportConfig{
			Delimiter:      ";",
			CategoryColumn: "Kategorie-Pfad",
			AmountColumn:   "Betrag",
			DecimalComma:   true,
		},
		Defaults: DefaultsConfig{
			Div:       1,
			Threshold: 0,
		},
		Appearance: AppearanceConfig{
			Currency: "€",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sankeygen")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sankeygen")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
