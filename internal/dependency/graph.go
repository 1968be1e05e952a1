package dependency

import "sort"

// Ambiguity records a namespace provided by more than one unit. Provider is
// the unit the index kept (the last one inserted); Shadowed lists the earlier
// providers in insertion order.
type Ambiguity struct {
	Namespace string
	Provider  string
	Shadowed  []string
}

// Graph is the namespace index and the dependency map of one unit
// collection. It is built once and only read afterwards, so it is safe for
// concurrent readers.
type Graph[U Unit] struct {
	units    []U
	byID     map[string]int
	index    map[string]U
	edges    map[string][]U
	shadowed map[string][]string
}

// NewGraph indexes every provided namespace and resolves every required
// namespace to its provider.
//
// When two units provide the same namespace the later one wins; the earlier
// provider is only recorded, see Ambiguities. When two units share an ID the
// later one replaces the earlier one in place.
func NewGraph[U Unit](units []U) (*Graph[U], error) {
	g := &Graph[U]{
		units:    make([]U, 0, len(units)),
		byID:     make(map[string]int, len(units)),
		index:    make(map[string]U),
		edges:    make(map[string][]U, len(units)),
		shadowed: make(map[string][]string),
	}

	for _, u := range units {
		if pos, ok := g.byID[u.ID()]; ok {
			g.units[pos] = u
		} else {
			g.byID[u.ID()] = len(g.units)
			g.units = append(g.units, u)
		}
	}

	for _, u := range g.units {
		for _, ns := range u.Provides() {
			if prev, ok := g.index[ns]; ok && prev.ID() != u.ID() {
				g.shadowed[ns] = append(g.shadowed[ns], prev.ID())
			}
			g.index[ns] = u
		}
	}

	for _, u := range g.units {
		required, err := g.lookupAll(u.Requires())
		if err != nil {
			return nil, err
		}
		g.edges[u.ID()] = required
	}

	return g, nil
}

// lookupAll maps namespaces to their distinct providers, keeping first-seen
// order.
func (g *Graph[U]) lookupAll(namespaces []string) ([]U, error) {
	required := make([]U, 0, len(namespaces))
	seen := make(map[string]struct{}, len(namespaces))
	for _, ns := range namespaces {
		provider, ok := g.index[ns]
		if !ok {
			return nil, &NothingProvidesError{Namespace: ns}
		}
		if _, dup := seen[provider.ID()]; dup {
			continue
		}
		seen[provider.ID()] = struct{}{}
		required = append(required, provider)
	}
	return required, nil
}

// Provider returns the unit providing ns.
func (g *Graph[U]) Provider(ns string) (U, bool) {
	u, ok := g.index[ns]
	return u, ok
}

// Contains reports whether u (by ID) is part of the graph.
func (g *Graph[U]) Contains(u U) bool {
	_, ok := g.byID[u.ID()]
	return ok
}

// Unit returns the unit with the given ID.
func (g *Graph[U]) Unit(id string) (U, bool) {
	pos, ok := g.byID[id]
	if !ok {
		var zero U
		return zero, false
	}
	return g.units[pos], true
}

// Requirements returns the units u directly requires. The second result is
// false when u is not part of the graph.
func (g *Graph[U]) Requirements(u U) ([]U, bool) {
	deps, ok := g.edges[u.ID()]
	if !ok {
		return nil, false
	}
	out := make([]U, len(deps))
	copy(out, deps)
	return out, true
}

// requirementsOf is Requirements without the copy, falling back to the index
// for units that are not part of the graph.
func (g *Graph[U]) requirementsOf(u U) ([]U, error) {
	if deps, ok := g.edges[u.ID()]; ok {
		return deps, nil
	}
	return g.lookupAll(u.Requires())
}

// Units returns all units in input order.
func (g *Graph[U]) Units() []U {
	out := make([]U, len(g.units))
	copy(out, g.units)
	return out
}

// Len returns the number of units in the graph.
func (g *Graph[U]) Len() int {
	return len(g.units)
}

// Namespaces returns every provided namespace, sorted.
func (g *Graph[U]) Namespaces() []string {
	out := make([]string, 0, len(g.index))
	for ns := range g.index {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// Ambiguities returns the namespaces that more than one unit provides,
// sorted by namespace.
func (g *Graph[U]) Ambiguities() []Ambiguity {
	out := make([]Ambiguity, 0, len(g.shadowed))
	for ns, shadowed := range g.shadowed {
		out = append(out, Ambiguity{
			Namespace: ns,
			Provider:  g.index[ns].ID(),
			Shadowed:  append([]string(nil), shadowed...),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Namespace < out[j].Namespace })
	return out
}
