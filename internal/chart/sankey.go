// Package chart renders the aggregated category flow graph as an HTML
// Sankey diagram.
package chart

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/browser"

	"github.com/patrislav1/sankeygen/internal/cli"
	"github.com/patrislav1/sankeygen/internal/sankey"
)

// Render writes the Sankey diagram HTML for the given graph.
func Render(w io.Writer, nodes []*sankey.Node, links []sankey.Link, currency string) error {
	chart := charts.NewSankey()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "sankeygen",
			Width:     "1600px",
			Height:    "900px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Category cash flow",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			TriggerOn: "mousemove",
		}),
	)

	names := labelNames(nodes, currency)
	chart.AddSeries("cashflow", seriesNodes(nodes, names, currency), seriesLinks(links, names),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Position: "right",
		}),
		charts.WithLineStyleOpts(opts.LineStyle{
			Color:     "source",
			Curveness: 0.5,
		}),
	)

	return chart.Render(w)
}

// WriteHTML renders the diagram into path, creating or truncating it.
func WriteHTML(path string, nodes []*sankey.Node, links []sankey.Link, currency string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := Render(f, nodes, links, currency); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return nil
}

// Open launches the default browser on the rendered file.
func Open(path string) error {
	return browser.OpenFile(path)
}

// labelNames maps node paths to unique display names. ECharts addresses
// Sankey nodes by name, so two nodes may not share one: the label is the
// last path segment plus the amount, falling back to the full path when
// that collides (e.g. "Insurance" under two different parents).
func labelNames(nodes []*sankey.Node, currency string) map[string]string {
	used := make(map[string]bool, len(nodes))
	names := make(map[string]string, len(nodes))
	for _, n := range nodes {
		label := fmt.Sprintf("%s %s", n.Name(), cli.FormatLabelAmount(n.Value, currency))
		if used[label] {
			label = fmt.Sprintf("%s %s", n.Path, cli.FormatLabelAmount(n.Value, currency))
		}
		used[label] = true
		names[n.Path] = label
	}
	return names
}

func seriesNodes(nodes []*sankey.Node, names map[string]string, currency string) []opts.SankeyNode {
	out := make([]opts.SankeyNode, 0, len(nodes))
	for _, n := range nodes {
		// Depth is left to the renderer: income-side links run opposite
		// to the tree direction, so tree depth is not layout depth.
		out = append(out, opts.SankeyNode{
			Name: names[n.Path],
			ItemStyle: &opts.ItemStyle{
				Color: sankey.RGBA(n.Color, 1.0),
			},
		})
	}
	return out
}

func seriesLinks(links []sankey.Link, names map[string]string) []opts.SankeyLink {
	out := make([]opts.SankeyLink, 0, len(links))
	for _, l := range links {
		out = append(out, opts.SankeyLink{
			Source: names[l.Source.Path],
			Target: names[l.Target.Path],
			Value:  float32(l.Value.InexactFloat64()),
		})
	}
	return out
}
