package dependency

import (
	"fmt"
	"sync"
)

// Parser turns a resource into a unit.
type Parser[R any, U ResourceUnit[R]] interface {
	Parse(resource R) (U, error)
}

// ParserFunc adapts a function to Parser.
type ParserFunc[R any, U ResourceUnit[R]] func(resource R) (U, error)

// Parse calls f(resource).
func (f ParserFunc[R, U]) Parse(resource R) (U, error) {
	return f(resource)
}

// Calculator answers dependency questions about a fixed set of resources.
// Resources are parsed once, on first use; every query then runs on a fresh
// Resolver so queries do not influence each other.
type Calculator[R any, U ResourceUnit[R]] struct {
	resources []R
	parser    Parser[R, U]
	policy    Policy[U]

	once  sync.Once
	units []U
	graph *Graph[U]
	base  []U
	err   error
}

// NewCalculator returns a Calculator. A nil policy means DefaultPolicy.
func NewCalculator[R any, U ResourceUnit[R]](resources []R, parser Parser[R, U], policy Policy[U]) *Calculator[R, U] {
	if policy == nil {
		policy = DefaultPolicy[U]{}
	}
	return &Calculator[R, U]{
		resources: resources,
		parser:    parser,
		policy:    policy,
	}
}

func (c *Calculator[R, U]) init() error {
	c.once.Do(func() {
		units := make([]U, 0, len(c.resources))
		for _, res := range c.resources {
			u, err := c.parser.Parse(res)
			if err != nil {
				c.err = fmt.Errorf("failed to parse %v: %w", res, err)
				return
			}
			units = append(units, u)
		}

		graph, err := NewGraph(c.policy.Resolvable(units))
		if err != nil {
			c.err = err
			return
		}
		c.units = units
		c.graph = graph
		c.base = c.policy.BaseList(units)
	})
	return c.err
}

// Units returns the parsed units in resource order.
func (c *Calculator[R, U]) Units() ([]U, error) {
	if err := c.init(); err != nil {
		return nil, err
	}
	out := make([]U, len(c.units))
	copy(out, c.units)
	return out, nil
}

// Graph returns the graph over the resolvable units.
func (c *Calculator[R, U]) Graph() (*Graph[U], error) {
	if err := c.init(); err != nil {
		return nil, err
	}
	return c.graph, nil
}

// BaseList returns the units the policy places first.
func (c *Calculator[R, U]) BaseList() ([]U, error) {
	if err := c.init(); err != nil {
		return nil, err
	}
	out := make([]U, len(c.base))
	copy(out, c.base)
	return out, nil
}

// Resolver returns a new Resolver seeded with the base list.
func (c *Calculator[R, U]) Resolver() (*Resolver[U], error) {
	if err := c.init(); err != nil {
		return nil, err
	}
	return NewResolver(c.graph, c.base...), nil
}

// DependenciesFor returns the ordered units needed to load namespaces.
func (c *Calculator[R, U]) DependenciesFor(namespaces ...string) ([]U, error) {
	r, err := c.Resolver()
	if err != nil {
		return nil, err
	}
	for _, ns := range namespaces {
		if err := r.ResolveNamespace(ns); err != nil {
			return nil, err
		}
	}
	return r.Resolve(), nil
}

// DependenciesForResource parses resource and returns the ordered units
// needed to load it, ending with the resource's own unit.
func (c *Calculator[R, U]) DependenciesForResource(resource R) ([]U, error) {
	r, err := c.Resolver()
	if err != nil {
		return nil, err
	}
	u, err := c.parser.Parse(resource)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", resource, err)
	}
	if err := r.ResolveNode(u); err != nil {
		return nil, err
	}
	return r.Resolve(), nil
}

// ResourcesFor is DependenciesFor mapped back to resources.
func (c *Calculator[R, U]) ResourcesFor(namespaces ...string) ([]R, error) {
	units, err := c.DependenciesFor(namespaces...)
	if err != nil {
		return nil, err
	}
	return resourcesOf[R](units), nil
}

// ResourcesForResource is DependenciesForResource mapped back to resources.
func (c *Calculator[R, U]) ResourcesForResource(resource R) ([]R, error) {
	units, err := c.DependenciesForResource(resource)
	if err != nil {
		return nil, err
	}
	return resourcesOf[R](units), nil
}

func resourcesOf[R any, U ResourceUnit[R]](units []U) []R {
	out := make([]R, len(units))
	for i, u := range units {
		out[i] = u.Resource()
	}
	return out
}
