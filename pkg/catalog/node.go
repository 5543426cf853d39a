// Package catalog models the theme catalog as an explicit tree of named
// leaves and groups, and provides the flattening and counting primitives the
// picker builds its view from.
package catalog

// Kind discriminates the two node variants.
type Kind int

const (
	// KindLeaf is a single selectable theme.
	KindLeaf Kind = iota
	// KindGroup is a named collection of child nodes. Groups may nest.
	KindGroup
)

// Node is a tagged variant: either a leaf theme or a named group of nodes.
// Modeling this explicitly (rather than shape-sniffing an untyped table)
// keeps the flattening and rendering code free of array-vs-map ambiguity.
type Node struct {
	Kind     Kind
	Name     string
	Children []*Node
}

// Leaf creates a leaf node for a theme name.
func Leaf(name string) *Node {
	return &Node{Kind: KindLeaf, Name: name}
}

// Group creates a group node with the given children.
func Group(name string, children ...*Node) *Node {
	return &Node{Kind: KindGroup, Name: name, Children: children}
}

// IsLeaf reports whether the node is a leaf.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Kind == KindLeaf
}

// IsLeafGroup reports whether the node is a group whose children are all
// leaves (no nested sub-groups).
func (n *Node) IsLeafGroup() bool {
	if n == nil || n.Kind != KindGroup {
		return false
	}
	for _, c := range n.Children {
		if !c.IsLeaf() {
			return false
		}
	}
	return true
}

// LeafCount returns the number of leaves in the subtree rooted at n,
// counting duplicates.
func (n *Node) LeafCount() int {
	if n == nil {
		return 0
	}
	if n.Kind == KindLeaf {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += c.LeafCount()
	}
	return total
}

// HasLeaves reports whether any leaf exists in the subtree rooted at n.
// Groups with no leaves anywhere below them are never rendered.
func (n *Node) HasLeaves() bool {
	if n == nil {
		return false
	}
	if n.Kind == KindLeaf {
		return true
	}
	for _, c := range n.Children {
		if c.HasLeaves() {
			return true
		}
	}
	return false
}

// Flatten returns all leaf names in the subtree, depth-first and
// order-preserving. Duplicate names are kept; deduplication happens only at
// the search boundary (see FlattenUnique).
func Flatten(n *Node) []string {
	var out []string
	var walk func(*Node)
	walk = func(node *Node) {
		if node == nil {
			return
		}
		if node.Kind == KindLeaf {
			out = append(out, node.Name)
			return
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// FlattenUnique returns leaf names depth-first with duplicates removed,
// keeping the first occurrence of each name.
func FlattenUnique(n *Node) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range Flatten(n) {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Entry pairs a leaf name with the group path leading to it.
type Entry struct {
	Name      string
	GroupPath []string
}

// Entries returns all leaves with their group paths, depth-first, duplicates
// removed by name (first occurrence wins). This is the search-boundary view
// of the catalog.
func Entries(n *Node) []Entry {
	seen := make(map[string]bool)
	var out []Entry
	var walk func(node *Node, path []string)
	walk = func(node *Node, path []string) {
		if node == nil {
			return
		}
		if node.Kind == KindLeaf {
			if seen[node.Name] {
				return
			}
			seen[node.Name] = true
			out = append(out, Entry{Name: node.Name, GroupPath: append([]string(nil), path...)})
			return
		}
		childPath := path
		if node.Name != "" {
			childPath = append(append([]string(nil), path...), node.Name)
		}
		for _, c := range node.Children {
			walk(c, childPath)
		}
	}
	walk(n, nil)
	return out
}

// Restrict returns a copy of the tree containing only leaves whose names are
// in keep. Groups left without leaves are dropped.
func Restrict(n *Node, keep map[string]bool) *Node {
	if n == nil {
		return nil
	}
	if n.Kind == KindLeaf {
		if keep[n.Name] {
			return Leaf(n.Name)
		}
		return nil
	}
	g := &Node{Kind: KindGroup, Name: n.Name}
	for _, c := range n.Children {
		if rc := Restrict(c, keep); rc != nil {
			g.Children = append(g.Children, rc)
		}
	}
	if len(g.Children) == 0 {
		return nil
	}
	return g
}
