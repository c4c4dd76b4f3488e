package dispatch

import "sort"

// Registry is an immutable mapping from method name to method definition.
// Names are matched by exact, case-sensitive equality and may contain
// slashes. Built once at startup; safe for concurrent reads.
type Registry struct {
	methods map[string]Method
}

// NewRegistry builds a registry from the given definitions. The map is
// copied; later mutation of defs does not affect the registry.
func NewRegistry(defs map[string]Method) *Registry {
	methods := make(map[string]Method, len(defs))
	for name, def := range defs {
		methods[name] = def
	}
	return &Registry{methods: methods}
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (Method, bool) {
	def, ok := r.methods[name]
	return def, ok
}

// Names returns all registered method names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
