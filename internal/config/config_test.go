package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Export.Delimiter != ";" {
		t.Errorf("Delimiter = %q, want ;", cfg.Export.Delimiter)
	}
	if cfg.Export.CategoryColumn != "Kategorie-Pfad" {
		t.Errorf("CategoryColumn = %q, want Kategorie-Pfad", cfg.Export.CategoryColumn)
	}
	if cfg.Export.AmountColumn != "Betrag" {
		t.Errorf("AmountColumn = %q, want Betrag", cfg.Export.AmountColumn)
	}
	if !cfg.Export.DecimalComma {
		t.Error("DecimalComma should default to true")
	}
	if cfg.Defaults.Div != 1 {
		t.Errorf("Div = %v, want 1", cfg.Defaults.Div)
	}
	if cfg.Defaults.Threshold != 0 {
		t.Errorf("Threshold = %v, want 0", cfg.Defaults.Threshold)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load on missing file = %+v, want defaults", cfg)
	}
	if Exists() {
		t.Error("Exists should be false before Save")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Export.Delimiter = ","
	cfg.Export.DecimalComma = false
	cfg.Defaults.Div = 12
	cfg.Defaults.Threshold = 50
	cfg.Appearance.Currency = "$"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Error("Exists should be true after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if err := os.MkdirAll(filepath.Join(dir, "sankeygen"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(), []byte("not [valid toml"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for malformed config")
	}
}
