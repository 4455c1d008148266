package apiclient

import (
	"fmt"
	"sort"
)

// Registry is the static lookup table from (method, path template) to
// endpoint definition. It is built once with NewRegistry and never changes.
type Registry struct {
	routes map[Method]map[string]*EndpointDefinition
	count  int
}

// NewRegistry builds a registry from the given definitions.
//
// Every definition is checked: the method must be supported, the path
// template well formed, every {name} placeholder must have a required field
// in the path parameters (and every path field a placeholder), and each
// (method, path) pair may appear only once.
func NewRegistry(defs ...*EndpointDefinition) (*Registry, error) {
	r := &Registry{
		routes: make(map[Method]map[string]*EndpointDefinition),
	}
	for _, def := range defs {
		if def == nil {
			return nil, fmt.Errorf("apiclient: nil endpoint definition")
		}
		if err := def.check(); err != nil {
			return nil, fmt.Errorf("apiclient: endpoint %s: %w", def.ID(), err)
		}
		byPath := r.routes[def.Method]
		if byPath == nil {
			byPath = make(map[string]*EndpointDefinition)
			r.routes[def.Method] = byPath
		}
		if _, exists := byPath[def.Path]; exists {
			return nil, fmt.Errorf("apiclient: duplicate endpoint %s", def.ID())
		}
		byPath[def.Path] = def
		r.count++
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error.
// It is intended for package-level registries built at start-up.
func MustRegistry(defs ...*EndpointDefinition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the definition registered for method and path.
// It fails with CodeUnknownEndpoint if there is none.
func (r *Registry) Lookup(method Method, path string) (*EndpointDefinition, error) {
	if r != nil {
		if def, ok := r.routes[method][path]; ok {
			return def, nil
		}
	}
	return nil, Errorf(CodeUnknownEndpoint, "no endpoint registered for %s %s", method, path).
		WithDetails(map[string]any{"method": string(method), "path": path})
}

// MustLookup is like Lookup but panics if the endpoint is not registered.
func (r *Registry) MustLookup(method Method, path string) *EndpointDefinition {
	def, err := r.Lookup(method, path)
	if err != nil {
		panic(err)
	}
	return def
}

// Len returns the number of registered endpoints.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return r.count
}

// Paths returns the path templates registered for method, sorted.
func (r *Registry) Paths(method Method) []string {
	if r == nil {
		return nil
	}
	paths := make([]string, 0, len(r.routes[method]))
	for p := range r.routes[method] {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Endpoints returns all definitions sorted by path template, then by
// method in facade order.
func (r *Registry) Endpoints() []*EndpointDefinition {
	if r == nil {
		return nil
	}
	order := make(map[Method]int, len(Methods))
	for i, m := range Methods {
		order[m] = i
	}
	defs := make([]*EndpointDefinition, 0, r.count)
	for _, byPath := range r.routes {
		for _, def := range byPath {
			defs = append(defs, def)
		}
	}
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].Path != defs[j].Path {
			return defs[i].Path < defs[j].Path
		}
		return order[defs[i].Method] < order[defs[j].Method]
	})
	return defs
}
