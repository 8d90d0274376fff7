package chart

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/patrislav1/sankeygen/internal/sankey"
)

func graphFixture(t *testing.T) ([]*sankey.Node, []sankey.Link) {
	t.Helper()
	p := sankey.NewPool()
	p.Add("Income/Salary", decimal.RequireFromString("2500"))
	p.Add("Expenses/Housing/Rent", decimal.RequireFromString("-1000"))
	p.Add("Expenses/Insurance", decimal.RequireFromString("-100"))
	p.Add("Income/Insurance", decimal.RequireFromString("50"))
	p.AssignIncome()
	p.AssignColors()
	p.AssignIndices()
	return p.Nodes(), p.Links()
}

func TestLabelNames_Unique(t *testing.T) {
	nodes, _ := graphFixture(t)

	names := labelNames(nodes, "€")
	if len(names) != len(nodes) {
		t.Fatalf("got %d names for %d nodes", len(names), len(nodes))
	}

	seen := make(map[string]bool)
	for path, name := range names {
		if seen[name] {
			t.Errorf("duplicate label %q", name)
		}
		seen[name] = true
		if name == "" {
			t.Errorf("empty label for %q", path)
		}
	}
}

func TestLabelNames_CollisionFallsBackToPath(t *testing.T) {
	p := sankey.NewPool()
	// Same leaf name and same accumulated value under two parents.
	p.Add("Expenses/Insurance", decimal.RequireFromString("-100"))
	p.Add("Income/Insurance", decimal.RequireFromString("-100"))

	names := labelNames(p.Nodes(), "€")
	a, b := names["Expenses/Insurance"], names["Income/Insurance"]
	if a == b {
		t.Errorf("colliding nodes share label %q", a)
	}
	if !strings.Contains(a, "Insurance") || !strings.Contains(b, "Insurance") {
		t.Errorf("labels should keep the segment name, got %q / %q", a, b)
	}
}

func TestSeriesLinks_MatchNodeNames(t *testing.T) {
	nodes, links := graphFixture(t)
	names := labelNames(nodes, "€")

	valid := make(map[string]bool)
	for _, n := range seriesNodes(nodes, names, "€") {
		valid[n.Name] = true
	}

	for _, l := range seriesLinks(links, names) {
		if !valid[fmt.Sprint(l.Source)] {
			t.Errorf("link source %v does not match a node name", l.Source)
		}
		if !valid[fmt.Sprint(l.Target)] {
			t.Errorf("link target %v does not match a node name", l.Target)
		}
		if l.Value < 0 {
			t.Errorf("link value %v is negative", l.Value)
		}
	}
}

func TestRender_ProducesHTML(t *testing.T) {
	nodes, links := graphFixture(t)

	var b strings.Builder
	if err := Render(&b, nodes, links, "€"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "<html") {
		t.Error("output does not look like an HTML document")
	}
	if !strings.Contains(out, "Salary") {
		t.Error("output should mention the Salary node")
	}
}
