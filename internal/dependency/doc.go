// Package dependency computes dependency-ordered load orders over a graph of
// units and partitions those units into modules.
//
// This package is the core of loadorder. It performs no I/O and does no
// logging; manifests, configuration and output live in the surrounding
// packages.
//
// # Core Concepts
//
// Unit: a node in the graph. A unit has an identity and two sets of
// namespaces:
//   - Provides: the namespaces the unit makes available
//   - Requires: the namespaces the unit needs before it can be loaded
//
// Graph: the namespace index (namespace -> providing unit) together with the
// dependency map (unit -> units it requires). Building a Graph fails when a
// required namespace has no provider.
//
// Resolver: a cycle-safe, duplicate-safe topological resolver. Every unit is
// appended only after all of its requirements have been appended. The
// resolved list only ever grows, so a Resolver can be asked for more
// namespaces over time.
//
// ModuleResolver: assigns units to named modules. When a unit would end up in
// two modules it is hoisted into their lowest common ancestor module, and the
// modules that held it gain a dependency on that ancestor. Modules are
// finally ordered with the same Resolver.
//
// # Ordering Rules
//
//  1. Requirements are always placed before the units that require them
//  2. A unit is placed at most once
//  3. Unrelated units keep the order in which their resolution was triggered
//  4. Units from the base list always come first, in base list order
//
// # Usage Example
//
//	graph, err := dependency.NewGraph(units)
//	if err != nil {
//	    return err
//	}
//
//	resolver := dependency.NewResolver(graph)
//	if err := resolver.ResolveNamespace("app.main"); err != nil {
//	    return err
//	}
//	order := resolver.Resolve()
//
// Module partitioning:
//
//	modules := dependency.NewModuleResolver(graph, "common")
//	modules.DeclareModuleDependency("admin", "app")
//	if err := modules.AssignNamespace("app", "app.main"); err != nil {
//	    return err
//	}
//	if err := modules.AssignNamespace("admin", "admin.main"); err != nil {
//	    return err
//	}
//	ordered, err := modules.Resolve()
//
// # Thread Safety
//
// Resolver is safe for concurrent use. Each top-level resolution holds one
// coarse lock for its whole check-recurse-append sequence, so concurrent
// callers never append a unit twice and never break the requirement order.
// ModuleResolver guards each public call with the same kind of lock, but it
// is meant to be built by a single writer.
//
// # Error Handling
//
// Errors are returned, never panicked:
//   - NothingProvidesError: a namespace has no provider
//   - CircularDependencyError: resolution would revisit a unit on the active path
//   - ModuleCycleError: a hoist would make the module tree cyclic
//   - ErrNullModule, ErrNullNamespace, ErrNullCollection: missing arguments
//
// A failing call changes nothing; results of earlier successful calls remain
// valid.
package dependency
