package dependency

import (
	"fmt"
	"sync"
)

// Resolver produces a dependency-ordered, duplicate-free list of units.
//
// The resolved list is append-only: every call extends it and nothing already
// in it is ever moved. A Resolver is safe for concurrent use.
type Resolver[U Unit] struct {
	mu       sync.Mutex
	graph    *Graph[U]
	resolved []U
	seen     map[string]struct{}
}

// NewResolver returns a Resolver over graph. The units of baseList are placed
// first, in order, and are treated as already resolved: their own
// requirements are not traversed.
func NewResolver[U Unit](graph *Graph[U], baseList ...U) *Resolver[U] {
	r := &Resolver[U]{
		graph:    graph,
		resolved: make([]U, 0, len(baseList)),
		seen:     make(map[string]struct{}, len(baseList)),
	}
	for _, u := range baseList {
		if _, ok := r.seen[u.ID()]; ok {
			continue
		}
		r.seen[u.ID()] = struct{}{}
		r.resolved = append(r.resolved, u)
	}
	return r
}

// frame is one entry of the explicit resolution stack: a unit plus the
// position of the next requirement to visit.
type frame[U Unit] struct {
	unit U
	deps []U
	next int
}

// ResolveNode resolves u and everything it transitively requires.
//
// u does not have to be part of the graph; its requirements are then looked
// up through the namespace index. If the call fails, the units it appended
// are removed again.
func (r *Resolver[U]) ResolveNode(u U) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	mark := len(r.resolved)
	if err := r.resolveLocked(u); err != nil {
		r.rollback(mark)
		return fmt.Errorf("cannot resolve %s: %w", u.ID(), err)
	}
	return nil
}

// ResolveNodes resolves units one after another.
func (r *Resolver[U]) ResolveNodes(units []U) error {
	if units == nil {
		return ErrNullCollection
	}
	for _, u := range units {
		if err := r.ResolveNode(u); err != nil {
			return err
		}
	}
	return nil
}

// ResolveNamespace resolves the provider of ns.
func (r *Resolver[U]) ResolveNamespace(ns string) error {
	if ns == "" {
		return ErrNullNamespace
	}
	provider, ok := r.graph.Provider(ns)
	if !ok {
		return &NothingProvidesError{Namespace: ns}
	}
	return r.ResolveNode(provider)
}

// ResolveNamespaces resolves namespaces one after another. Namespaces that
// are already resolved are skipped without touching the existing order.
func (r *Resolver[U]) ResolveNamespaces(namespaces []string) error {
	if namespaces == nil {
		return ErrNullCollection
	}
	for _, ns := range namespaces {
		if err := r.ResolveNamespace(ns); err != nil {
			return err
		}
	}
	return nil
}

// Resolve returns a copy of the resolved list.
func (r *Resolver[U]) Resolve() []U {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]U, len(r.resolved))
	copy(out, r.resolved)
	return out
}

// Len returns the number of resolved units.
func (r *Resolver[U]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.resolved)
}

// IsResolved reports whether u is already in the resolved list.
func (r *Resolver[U]) IsResolved(u U) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.seen[u.ID()]
	return ok
}

// resolveLocked is a depth-first, post-order walk driven by an explicit
// stack. The units on the stack are the ancestor chain of the unit on top.
// Caller must hold r.mu.
func (r *Resolver[U]) resolveLocked(root U) error {
	if _, ok := r.seen[root.ID()]; ok {
		return nil
	}

	deps, err := r.graph.requirementsOf(root)
	if err != nil {
		return err
	}
	stack := []frame[U]{{unit: root, deps: deps}}
	onPath := map[string]struct{}{root.ID(): {}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.next < len(top.deps) {
			dep := top.deps[top.next]
			top.next++

			if _, ok := r.seen[dep.ID()]; ok {
				continue
			}
			if _, ok := onPath[dep.ID()]; ok {
				return &CircularDependencyError{Unit: dep.ID(), Chain: chainOf(stack)}
			}

			depDeps, err := r.graph.requirementsOf(dep)
			if err != nil {
				return err
			}
			onPath[dep.ID()] = struct{}{}
			stack = append(stack, frame[U]{unit: dep, deps: depDeps})
			continue
		}

		done := top.unit
		stack = stack[:len(stack)-1]
		delete(onPath, done.ID())
		r.seen[done.ID()] = struct{}{}
		r.resolved = append(r.resolved, done)
	}
	return nil
}

// rollback drops everything appended after mark. Caller must hold r.mu.
func (r *Resolver[U]) rollback(mark int) {
	for _, u := range r.resolved[mark:] {
		delete(r.seen, u.ID())
	}
	clear(r.resolved[mark:])
	r.resolved = r.resolved[:mark]
}

func chainOf[U Unit](stack []frame[U]) []string {
	chain := make([]string, len(stack))
	for i, f := range stack {
		chain[i] = f.unit.ID()
	}
	return chain
}
