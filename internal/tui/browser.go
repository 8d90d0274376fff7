// Package tui provides an interactive Bubble Tea browser over the
// aggregated category tree.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/patrislav1/sankeygen/internal/cli"
	"github.com/patrislav1/sankeygen/internal/sankey"
)

const barWidth = 20

// row is one visible line of the tree view.
type row struct {
	node     *sankey.Node
	children bool
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Top    key.Binding
	Bottom key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "fold/unfold")),
	Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	cursorStyle = lipgloss.NewStyle().Foreground(cli.ColorAccent).Bold(true)
	pathStyle   = lipgloss.NewStyle().Foreground(cli.ColorText)
	helpStyle   = lipgloss.NewStyle().Foreground(cli.ColorTextDim)
)

// Model is the Bubble Tea model for the category browser.
type Model struct {
	pool     *sankey.Pool
	currency string

	rows      []row
	collapsed map[string]bool
	cursor    int
	offset    int

	width  int
	height int

	maxAbs float64
}

// New builds a browser over an aggregated pool.
func New(pool *sankey.Pool, currency string) Model {
	m := Model{
		pool:      pool,
		currency:  currency,
		collapsed: make(map[string]bool),
	}
	for _, n := range pool.Nodes() {
		if v := n.Value.Abs().InexactFloat64(); v > m.maxAbs {
			m.maxAbs = v
		}
	}
	m.rebuildRows()
	return m
}

// Run starts the browser and blocks until the user quits.
func Run(pool *sankey.Pool, currency string) error {
	_, err := tea.NewProgram(New(pool, currency), tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Top):
			m.cursor = 0
		case key.Matches(msg, keys.Bottom):
			m.cursor = len(m.rows) - 1
		case key.Matches(msg, keys.Toggle):
			m.toggle()
		}
	}

	m.clamp()
	return m, nil
}

func (m *Model) toggle() {
	if m.cursor >= len(m.rows) {
		return
	}
	r := m.rows[m.cursor]
	if !r.children {
		return
	}
	m.collapsed[r.node.Path] = !m.collapsed[r.node.Path]
	m.rebuildRows()
}

// rebuildRows flattens the tree into visible lines, skipping collapsed
// subtrees. Children are visited path-sorted for stable display.
func (m *Model) rebuildRows() {
	m.rows = m.rows[:0]
	for _, n := range m.pool.Nodes() {
		if n.TopLevel() {
			m.appendRows(n)
		}
	}
	m.clamp()
}

func (m *Model) appendRows(n *sankey.Node) {
	m.rows = append(m.rows, row{node: n, children: len(n.Children) > 0})
	if m.collapsed[n.Path] {
		return
	}
	for _, path := range sortedChildPaths(n) {
		m.appendRows(n.Children[path])
	}
}

func sortedChildPaths(n *sankey.Node) []string {
	paths := make([]string, 0, len(n.Children))
	for path := range n.Children {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (m *Model) clamp() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	visible := m.visibleLines()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// visibleLines is the row budget after title and help lines.
func (m *Model) visibleLines() int {
	v := m.height - 4
	if v < 1 {
		v = 1
	}
	return v
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(cursorStyle.Render("  Categories"))
	b.WriteString(helpStyle.Render(fmt.Sprintf("  (total %s)", cli.FormatAmount(m.pool.Root().Value, m.currency))))
	b.WriteString("\n\n")

	end := m.offset + m.visibleLines()
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  j/k move · enter fold · g/G jump · q quit"))
	return b.String()
}

func (m Model) renderRow(i int) string {
	r := m.rows[i]

	marker := "  "
	switch {
	case r.children && m.collapsed[r.node.Path]:
		marker = "▸ "
	case r.children:
		marker = "▾ "
	}

	cursor := "  "
	if i == m.cursor {
		cursor = cursorStyle.Render("❯ ")
	}

	name := strings.Repeat("  ", r.node.Depth()-1) + marker + r.node.Name()
	if w := lipgloss.Width(name); w < 36 {
		name += strings.Repeat(" ", 36-w)
	}

	amount := cli.FormatAmount(r.node.Value, m.currency)
	amountStyle := cli.ExpenseStyle
	if !r.node.Value.IsNegative() {
		amountStyle = cli.IncomeStyle
	}
	if w := lipgloss.Width(amount); w < 16 {
		amount = strings.Repeat(" ", 16-w) + amount
	}

	bar := cli.RenderBar(r.node.Value.Abs().InexactFloat64(), m.maxAbs, barWidth)

	line := cursor + pathStyle.Render(name) + amountStyle.Render(amount) + "  " + bar
	if r.node.Income {
		line += helpStyle.Render("  (income)")
	}
	return line
}
