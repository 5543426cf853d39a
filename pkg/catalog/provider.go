package catalog

// Provider is the source of truth for the catalog tree. The picker session
// only reads from it; Refresh is invoked on explicit reload or when the
// watcher reports a change on disk.
type Provider interface {
	Refresh() error
	Current() *Node
}

// Availability answers whether a theme is currently resolvable in the host
// environment. Queried by the view builder, never mutated by the core.
type Availability interface {
	IsAvailable(name string) bool
}

// AvailabilityFunc adapts a plain function to the Availability interface.
type AvailabilityFunc func(name string) bool

// IsAvailable implements Availability.
func (f AvailabilityFunc) IsAvailable(name string) bool { return f(name) }

// AllAvailable treats every theme as available. Used when no checker is
// configured.
var AllAvailable Availability = AvailabilityFunc(func(string) bool { return true })

// Aliases maps theme names to substitute names. Two uses share the map:
// shorthand keys resolve user input to catalog names on selection, and
// catalog-name keys resolve to display labels when rendering.
type Aliases map[string]string

// Resolve returns the display name for a theme, or the name itself when no
// alias is configured.
func (a Aliases) Resolve(name string) string {
	if a == nil {
		return name
	}
	if alias, ok := a[name]; ok && alias != "" {
		return alias
	}
	return name
}

// StaticProvider wraps a fixed tree. Refresh is a no-op. Useful for tests
// and for catalogs defined entirely in the config file.
type StaticProvider struct {
	Root *Node
}

// Refresh implements Provider.
func (p *StaticProvider) Refresh() error { return nil }

// Current implements Provider.
func (p *StaticProvider) Current() *Node { return p.Root }
