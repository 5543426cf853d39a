package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GroupSpec is one group entry in a catalog file. Groups nest arbitrarily.
type GroupSpec struct {
	Name   string      `yaml:"name"`
	Themes []string    `yaml:"themes"`
	Groups []GroupSpec `yaml:"groups"`
}

// FileSpec is the on-disk catalog definition.
type FileSpec struct {
	Themes  []string          `yaml:"themes"`
	Groups  []GroupSpec       `yaml:"groups"`
	Aliases map[string]string `yaml:"aliases"`
}

// LoadFile parses a YAML catalog file into a tree plus alias mapping.
func LoadFile(path string) (*Node, Aliases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read catalog file: %w", err)
	}
	return ParseSpec(data)
}

// ParseSpec parses YAML catalog bytes.
func ParseSpec(data []byte) (*Node, Aliases, error) {
	var spec FileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, nil, fmt.Errorf("parse catalog file: %w", err)
	}

	root := &Node{Kind: KindGroup}
	for _, name := range spec.Themes {
		root.Children = append(root.Children, Leaf(name))
	}
	for _, g := range spec.Groups {
		root.Children = append(root.Children, buildGroup(g))
	}
	return root, Aliases(spec.Aliases), nil
}

func buildGroup(spec GroupSpec) *Node {
	g := &Node{Kind: KindGroup, Name: spec.Name}
	for _, name := range spec.Themes {
		g.Children = append(g.Children, Leaf(name))
	}
	for _, sub := range spec.Groups {
		g.Children = append(g.Children, buildGroup(sub))
	}
	return g
}
