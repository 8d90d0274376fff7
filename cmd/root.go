package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/patrislav1/sankeygen/internal/chart"
	"github.com/patrislav1/sankeygen/internal/cli"
	"github.com/patrislav1/sankeygen/internal/config"
	"github.com/patrislav1/sankeygen/internal/sankey"
	"github.com/patrislav1/sankeygen/internal/source"
	"github.com/patrislav1/sankeygen/internal/tui"
)

var (
	flagDiv         float64
	flagThreshold   float64
	flagPlot        bool
	flagOut         string
	flagQuiet       bool
	flagInteractive bool
)

var rootCmd = &cobra.Command{
	Use:   "sankeygen csv_files...",
	Short: "Generate a Sankey diagram from one or more CSV files (category path based)",
	Long: "Read bank transaction CSV exports, aggregate amounts along the\n" +
		"operator-assigned category paths, and render the result as terminal\n" +
		"tables and an interactive Sankey diagram.",
	Args:         cobra.MinimumNArgs(1),
	RunE:         runRoot,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Float64Var(&flagDiv, "div", 1,
		"Divisor for values (e.g. 12 to show monthly averages from a one year dataset)")
	rootCmd.Flags().Float64Var(&flagThreshold, "threshold", 0,
		"Lower threshold for nodes to show up")
	rootCmd.Flags().BoolVar(&flagPlot, "plot", false,
		"Plot sankey diagram")
	rootCmd.Flags().StringVar(&flagOut, "out", "",
		"Write the sankey diagram HTML to this file")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false,
		"Suppress progress output")
	rootCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false,
		"Browse the category tree in the terminal")
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	div := flagDiv
	if !cmd.Flags().Changed("div") {
		div = cfg.Defaults.Div
	}
	threshold := flagThreshold
	if !cmd.Flags().Changed("threshold") {
		threshold = cfg.Defaults.Threshold
	}
	if div <= 0 {
		return fmt.Errorf("--div must be positive, got %g", div)
	}
	if threshold < 0 {
		return fmt.Errorf("--threshold must not be negative, got %g", threshold)
	}

	res, err := source.ReadFiles(args, exportSchema(cfg.Export))
	if err != nil {
		return err
	}

	pool := sankey.NewPool()
	for _, tx := range res.Transactions {
		pool.Add(tx.Category, tx.Amount)
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Read %d transactions from %d file(s)\n", len(res.Transactions), len(args))
		if res.Skipped > 0 {
			fmt.Fprintf(os.Stderr, "  %s\n", cli.Warnf("%d rows skipped (missing category or unparseable amount)", res.Skipped))
		}
	}

	if err := pool.Div(decimal.NewFromFloat(div)); err != nil {
		return err
	}
	pool.Purge(decimal.NewFromFloat(threshold))

	if pool.Len() == 0 {
		fmt.Println(cli.Warnf("  No categories above the threshold — nothing to show."))
		return nil
	}

	pool.AssignIncome()
	pool.AssignColors()
	pool.AssignIndices()
	links := pool.Links()

	currency := cfg.Appearance.Currency

	if flagInteractive {
		if err := tui.Run(pool, currency); err != nil {
			return fmt.Errorf("running browser: %w", err)
		}
	} else {
		printSums(pool, currency)
		printFlows(links, currency)
	}

	if flagPlot || flagOut != "" {
		outPath := flagOut
		if outPath == "" {
			outPath = filepath.Join(os.TempDir(), "sankeygen.html")
		}
		if err := chart.WriteHTML(outPath, pool.Nodes(), links, currency); err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Wrote %s\n", outPath)
		}
		if flagPlot {
			if err := chart.Open(outPath); err != nil {
				return fmt.Errorf("opening %s: %w", outPath, err)
			}
		}
	}

	return nil
}

// exportSchema maps the configured export contract onto the CSV reader.
func exportSchema(e config.ExportConfig) source.Schema {
	comma := ';'
	if e.Delimiter != "" {
		comma = []rune(e.Delimiter)[0]
	}
	return source.Schema{
		Comma:          comma,
		CategoryColumn: e.CategoryColumn,
		AmountColumn:   e.AmountColumn,
		DecimalComma:   e.DecimalComma,
	}
}

func printSums(pool *sankey.Pool, currency string) {
	nodes := pool.Nodes()

	maxAbs := 0.0
	for _, n := range nodes {
		if v := n.Value.Abs().InexactFloat64(); v > maxAbs {
			maxAbs = v
		}
	}

	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		label := n.Path
		if n == pool.Income() {
			label += "  (income)"
		}
		rows = append(rows, []string{
			label,
			cli.FormatAmount(n.Value, currency),
			cli.RenderBar(n.Value.Abs().InexactFloat64(), maxAbs, 24),
		})
	}
	rows = append(rows, []string{"total", cli.FormatAmount(pool.Root().Value, currency), ""})

	fmt.Println(cli.RenderTitle(fmt.Sprintf("CATEGORY CASH FLOW  %d categories", len(nodes))))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Category sums",
		Headers: []string{"Category", "Amount", ""},
		Rows:    rows,
	}))
}

func printFlows(links []sankey.Link, currency string) {
	rows := make([][]string, 0, len(links))
	for _, l := range links {
		rows = append(rows, []string{
			fmt.Sprintf("%s → %s", l.Source.Path, l.Target.Path),
			cli.FormatAmount(l.Value, currency),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Sankey flows",
		Headers: []string{"Source → Target", "Amount"},
		Rows:    rows,
	}))
}
