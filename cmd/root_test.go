package cmd

import (
	"testing"

	"github.com/patrislav1/sankeygen/internal/config"
)

func TestExportSchema(t *testing.T) {
	sch := exportSchema(config.DefaultConfig().Export)

	if sch.Comma != ';' {
		t.Errorf("Comma = %q, want ;", sch.Comma)
	}
	if sch.CategoryColumn != "Kategorie-Pfad" || sch.AmountColumn != "Betrag" {
		t.Errorf("unexpected columns: %+v", sch)
	}
	if !sch.DecimalComma {
		t.Error("DecimalComma should be true by default")
	}
}

func TestExportSchema_EmptyDelimiterFallsBack(t *testing.T) {
	e := config.DefaultConfig().Export
	e.Delimiter = ""

	if sch := exportSchema(e); sch.Comma != ';' {
		t.Errorf("Comma = %q, want ; fallback", sch.Comma)
	}
}

func TestRootCommand_FlagDefaults(t *testing.T) {
	for flag, want := range map[string]string{
		"div":       "1",
		"threshold": "0",
		"plot":      "false",
		"out":       "",
		"quiet":     "false",
	} {
		f := rootCmd.Flags().Lookup(flag)
		if f == nil {
			t.Errorf("flag --%s not registered", flag)
			continue
		}
		if f.DefValue != want {
			t.Errorf("--%s default = %q, want %q", flag, f.DefValue, want)
		}
	}
}
