package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/patrislav1/sankeygen/internal/sankey"
)

func testPool(t *testing.T) *sankey.Pool {
	t.Helper()
	p := sankey.NewPool()
	p.Add("Income/Salary", decimal.RequireFromString("2500"))
	p.Add("Expenses/Housing/Rent", decimal.RequireFromString("-1000"))
	p.Add("Expenses/Housing/Utilities", decimal.RequireFromString("-200"))
	p.Add("Expenses/Food", decimal.RequireFromString("-300"))
	p.AssignIncome()
	return p
}

func rowPaths(m Model) []string {
	var paths []string
	for _, r := range m.rows {
		paths = append(paths, r.node.Path)
	}
	return paths
}

func TestNew_FlattensTreeDepthFirst(t *testing.T) {
	m := New(testPool(t), "€")

	want := []string{
		"Expenses",
		"Expenses/Food",
		"Expenses/Housing",
		"Expenses/Housing/Rent",
		"Expenses/Housing/Utilities",
		"Income",
		"Income/Salary",
	}
	got := rowPaths(m)
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestUpdate_ToggleCollapsesSubtree(t *testing.T) {
	m := New(testPool(t), "€")
	m.width, m.height = 80, 24

	// Move to Expenses/Housing and fold it.
	m.cursor = 2
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	for _, path := range rowPaths(m) {
		if path == "Expenses/Housing/Rent" || path == "Expenses/Housing/Utilities" {
			t.Errorf("%s should be hidden while Housing is folded", path)
		}
	}

	// Unfold restores the rows.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if len(m.rows) != 7 {
		t.Errorf("got %d rows after unfold, want 7", len(m.rows))
	}
}

func TestUpdate_ToggleOnLeafIsNoop(t *testing.T) {
	m := New(testPool(t), "€")
	m.cursor = 1 // Expenses/Food, a leaf

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if len(m.rows) != 7 {
		t.Errorf("leaf toggle changed row count to %d", len(m.rows))
	}
}

func TestUpdate_CursorBounds(t *testing.T) {
	m := New(testPool(t), "€")
	m.width, m.height = 80, 24

	next, _ := m.Update(keyPress('k'))
	m = next.(Model)
	if m.cursor != 0 {
		t.Errorf("cursor moved above the first row: %d", m.cursor)
	}

	next, _ = m.Update(keyPress('G'))
	m = next.(Model)
	if m.cursor != len(m.rows)-1 {
		t.Errorf("G should jump to the last row, got %d", m.cursor)
	}

	next, _ = m.Update(keyPress('j'))
	m = next.(Model)
	if m.cursor != len(m.rows)-1 {
		t.Errorf("cursor moved past the last row: %d", m.cursor)
	}
}

func TestUpdate_QuitKey(t *testing.T) {
	m := New(testPool(t), "€")

	_, cmd := m.Update(keyPress('q'))
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestView_ShowsAmounts(t *testing.T) {
	m := New(testPool(t), "€")
	m.width, m.height = 100, 24

	view := m.View()
	if view == "" {
		t.Fatal("view should not be empty once sized")
	}
}
