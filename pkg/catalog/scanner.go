package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions are the file extensions recognized as theme definitions.
var DefaultExtensions = []string{".yaml", ".yml", ".toml", ".theme"}

// DirProvider builds the catalog by scanning theme directories. Each
// subdirectory becomes a group (nesting preserved); files directly under a
// root become ungrouped leaves. The theme name is the file name without
// extension.
type DirProvider struct {
	Roots      []string
	Extensions []string

	root *Node
}

// NewDirProvider creates a provider over the given root directories.
func NewDirProvider(roots ...string) *DirProvider {
	return &DirProvider{Roots: roots, Extensions: DefaultExtensions}
}

// Refresh rescans the roots and rebuilds the tree. Missing roots are
// skipped; the scan fails only when a readable directory cannot be walked.
func (p *DirProvider) Refresh() error {
	root := &Node{Kind: KindGroup}
	for _, dir := range p.Roots {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		node, err := p.scanDir(dir, "")
		if err != nil {
			return fmt.Errorf("scan %s: %w", dir, err)
		}
		if node != nil {
			// Root-level files and groups merge into one top-level tree.
			root.Children = append(root.Children, node.Children...)
		}
	}
	p.root = root
	return nil
}

// Current returns the most recently scanned tree, scanning on first use.
func (p *DirProvider) Current() *Node {
	if p.root == nil {
		if err := p.Refresh(); err != nil {
			return &Node{Kind: KindGroup}
		}
	}
	return p.root
}

func (p *DirProvider) scanDir(dir, name string) (*Node, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	node := &Node{Kind: KindGroup, Name: name}
	var leaves []*Node
	var groups []*Node

	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if e.IsDir() {
			child, err := p.scanDir(filepath.Join(dir, e.Name()), e.Name())
			if err != nil {
				return nil, err
			}
			if child.HasLeaves() {
				groups = append(groups, child)
			}
			continue
		}
		ext := filepath.Ext(e.Name())
		if !p.recognized(ext) {
			continue
		}
		leaves = append(leaves, Leaf(strings.TrimSuffix(e.Name(), ext)))
	}

	sort.Slice(leaves, func(i, j int) bool { return leaves[i].Name < leaves[j].Name })
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })

	node.Children = append(node.Children, leaves...)
	node.Children = append(node.Children, groups...)
	return node, nil
}

func (p *DirProvider) recognized(ext string) bool {
	exts := p.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	for _, e := range exts {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
