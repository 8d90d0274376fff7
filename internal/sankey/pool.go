// Package sankey builds a weighted category flow graph from transactions.
//
// Every category path ("Ausgaben/Wohnen/Miete") is split into prefixes, and
// each prefix becomes one node of a tree whose accumulated value is the
// signed sum of all transactions below it. After scaling and threshold
// pruning, the tree is flattened into node and link lists ready for a
// Sankey renderer.
package sankey

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// PathSeparator splits category paths into hierarchy segments.
const PathSeparator = "/"

// Node is one category-path prefix with its accumulated signed value.
type Node struct {
	Path     string
	Value    decimal.Decimal
	Parent   *Node
	Children map[string]*Node

	// Render attributes, populated by the Assign* passes.
	Color  string // palette hex, no leading '#'
	Index  int
	Income bool
}

// Name returns the last path segment, used for display labels.
func (n *Node) Name() string {
	if i := strings.LastIndex(n.Path, PathSeparator); i >= 0 {
		return n.Path[i+1:]
	}
	return n.Path
}

// Root reports whether this is the synthetic root node.
func (n *Node) Root() bool {
	return n.Path == ""
}

// TopLevel reports whether the node's parent is the root.
func (n *Node) TopLevel() bool {
	return n.Parent != nil && n.Parent.Root()
}

// Depth returns the number of path segments (root = 0).
func (n *Node) Depth() int {
	if n.Root() {
		return 0
	}
	return strings.Count(n.Path, PathSeparator) + 1
}

// walk visits the subtree rooted at n, children before the node itself.
func (n *Node) walk(fn func(*Node)) {
	for _, c := range n.Children {
		c.walk(fn)
	}
	fn(n)
}

// Link is a directed flow between two nodes.
type Link struct {
	Source *Node
	Target *Node
	Value  decimal.Decimal
}

// Pool accumulates category nodes and derives the flow graph from them.
// The synthetic root node holds the grand total and is never pruned.
type Pool struct {
	root   *Node
	nodes  map[string]*Node
	income *Node
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{
		root:  &Node{Children: make(map[string]*Node)},
		nodes: make(map[string]*Node),
	}
}

// Add accumulates a transaction amount into the root and into the node of
// every prefix of the category path, materializing missing ancestors.
// Empty segments (doubled or stray separators) are ignored; a path with no
// usable segments is a no-op.
func (p *Pool) Add(category string, amount decimal.Decimal) {
	segments := splitPath(category)
	if len(segments) == 0 {
		return
	}

	p.root.Value = p.root.Value.Add(amount)

	parent := p.root
	for i := range segments {
		path := strings.Join(segments[:i+1], PathSeparator)
		node, ok := p.nodes[path]
		if !ok {
			node = &Node{Path: path, Parent: parent, Children: make(map[string]*Node)}
			p.nodes[path] = node
			parent.Children[path] = node
		}
		node.Value = node.Value.Add(amount)
		parent = node
	}
}

// Len returns the number of category nodes (excluding the root).
func (p *Pool) Len() int {
	return len(p.nodes)
}

// Root returns the synthetic root node carrying the grand total.
func (p *Pool) Root() *Node {
	return p.root
}

// Lookup returns the node for an exact path, or nil.
func (p *Pool) Lookup(path string) *Node {
	return p.nodes[path]
}

// Div scales every accumulated value down by the divisor, e.g. 12 to turn
// a one-year export into monthly averages.
func (p *Pool) Div(divisor decimal.Decimal) error {
	if !divisor.IsPositive() {
		return fmt.Errorf("divisor must be positive, got %s", divisor)
	}
	p.root.Value = p.root.Value.Div(divisor)
	for _, n := range p.nodes {
		n.Value = n.Value.Div(divisor)
	}
	return nil
}

// Purge removes every node whose absolute value is below the threshold,
// together with its whole subtree: a pruned parent cannot anchor a child's
// edge, so the child is not rendered either. Pruned values are not
// redistributed into the surviving parents, so the conservation invariant
// holds only for the unpruned tree. The root always survives.
func (p *Pool) Purge(threshold decimal.Decimal) {
	for _, n := range p.Nodes() {
		if _, alive := p.nodes[n.Path]; !alive {
			continue // already removed with an ancestor
		}
		if n.Value.Abs().LessThan(threshold) {
			p.removeSubtree(n)
		}
	}
}

func (p *Pool) removeSubtree(n *Node) {
	delete(n.Parent.Children, n.Path)
	n.walk(func(d *Node) {
		delete(p.nodes, d.Path)
	})
}

// AssignIncome flags the node with the largest accumulated value, and its
// subtree, as the income side of the diagram. Flows within that subtree are
// reversed by Links so income runs toward the hub.
func (p *Pool) AssignIncome() {
	var income *Node
	for _, n := range p.Nodes() {
		if income == nil || n.Value.GreaterThan(income.Value) {
			income = n
		}
	}
	p.income = income
	if income == nil {
		return
	}
	income.walk(func(d *Node) { d.Income = true })
}

// Income returns the node selected by AssignIncome, or nil.
func (p *Pool) Income() *Node {
	return p.income
}

// AssignColors gives each top-level category a palette color, inherited by
// its whole subtree.
func (p *Pool) AssignColors() {
	var palette Palette
	for _, n := range p.Nodes() {
		if !n.TopLevel() {
			continue
		}
		color := palette.Pick()
		n.walk(func(d *Node) { d.Color = color })
	}
}

// AssignIndices numbers the path-sorted nodes for renderers that address
// nodes by position.
func (p *Pool) AssignIndices() {
	for i, n := range p.Nodes() {
		n.Index = i
	}
}

// Nodes returns all surviving category nodes sorted by path. The order is
// stable across runs for identical input.
func (p *Pool) Nodes() []*Node {
	nodes := make([]*Node, 0, len(p.nodes))
	for _, n := range p.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Path < nodes[j].Path
	})
	return nodes
}

// TreeLinks returns the plain parent→child edges of the surviving tree,
// including root→top-level, each weighted with the child's signed value.
func (p *Pool) TreeLinks() []Link {
	links := make([]Link, 0, len(p.nodes))
	for _, n := range p.Nodes() {
		links = append(links, Link{Source: n.Parent, Target: n, Value: n.Value})
	}
	return links
}

// Links derives the render edges between surviving nodes:
//
//   - expense node below the top level: parent → node
//   - expense top-level node: income hub → node
//   - income node below the top level: node → parent (reversed)
//   - the top-level income hub itself has no link of its own
//
// A link carries the absolute value of the node on its category side: the
// target normally, the source for reversed income links. Call AssignIncome
// first.
func (p *Pool) Links() []Link {
	var links []Link
	for _, n := range p.Nodes() {
		var l Link
		switch {
		case n.Income && !n.TopLevel():
			l = Link{Source: n, Target: n.Parent}
		case n.Income:
			continue // the hub: everything else connects to it
		case !n.TopLevel():
			l = Link{Source: n.Parent, Target: n}
		case p.income != nil:
			l = Link{Source: p.income, Target: n}
		default:
			continue
		}
		if l.Target.Income {
			l.Value = l.Source.Value.Abs()
		} else {
			l.Value = l.Target.Value.Abs()
		}
		links = append(links, l)
	}
	return links
}

func splitPath(category string) []string {
	var segments []string
	for _, s := range strings.Split(category, PathSeparator) {
		s = strings.TrimSpace(s)
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
