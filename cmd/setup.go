package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/patrislav1/sankeygen/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure the CSV export schema",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Start from the existing config so re-running keeps prior answers.
	cfg, _ := config.Load()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Category column").
				Description("Header of the column holding the category path").
				Value(&cfg.Export.CategoryColumn),
			huh.NewInput().
				Title("Amount column").
				Description("Header of the column holding the booking amount").
				Value(&cfg.Export.AmountColumn),
			huh.NewSelect[string]().
				Title("Field delimiter").
				Options(
					huh.NewOption("semicolon (;)", ";"),
					huh.NewOption("comma (,)", ","),
					huh.NewOption("tab", "\t"),
				).
				Value(&cfg.Export.Delimiter),
			huh.NewConfirm().
				Title("German number format?").
				Description("Amounts like 1.234,56 instead of 1,234.56").
				Value(&cfg.Export.DecimalComma),
			huh.NewInput().
				Title("Currency symbol").
				Value(&cfg.Appearance.Currency),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `sankeygen setup` anytime to reconfigure.")
	return nil
}
