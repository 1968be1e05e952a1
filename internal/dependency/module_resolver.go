package dependency

import (
	"slices"
	"sort"
	"sync"
)

// ModuleResolver partitions units into named modules.
//
// Every unit belongs to at most one module. When a unit is requested by a
// module while another module already owns it, the unit is hoisted into the
// lowest common ancestor of both modules, and the previous owner gains a
// dependency on that ancestor.
type ModuleResolver[U Unit] struct {
	mu       sync.Mutex
	graph    *Graph[U]
	common   string
	baseList []U

	units map[string][]U
	tree  map[string]map[string]struct{}
	owner map[string]string
}

// NewModuleResolver returns a ModuleResolver over graph. common names the
// module used when two modules have no ancestor in common; it is declared
// the first time a unit is hoisted into it.
func NewModuleResolver[U Unit](graph *Graph[U], common string, baseList ...U) *ModuleResolver[U] {
	return &ModuleResolver[U]{
		graph:    graph,
		common:   common,
		baseList: baseList,
		units:    make(map[string][]U),
		tree:     make(map[string]map[string]struct{}),
		owner:    make(map[string]string),
	}
}

// CommonModule returns the name of the fallback module.
func (r *ModuleResolver[U]) CommonModule() string {
	return r.common
}

// DeclareModule makes sure the module exists. Declaring a module twice is a
// no-op.
func (r *ModuleResolver[U]) DeclareModule(name string) *ModuleResolver[U] {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.declare(name, nil)
	return r
}

// DeclareModuleDependency declares both modules and records that module
// depends on dependsOn.
func (r *ModuleResolver[U]) DeclareModuleDependency(module, dependsOn string) *ModuleResolver[U] {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.declare(module, nil)
	r.declare(dependsOn, nil)
	r.addEdge(module, dependsOn, nil)
	return r
}

// AssignNamespace resolves ns and moves every unit it needs into module,
// hoisting units that another module already owns.
//
// Units that module can already see (its own, those of the modules it
// depends on, and the base list) are left where they are. If the call fails
// the partition is left exactly as it was.
func (r *ModuleResolver[U]) AssignNamespace(module, ns string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var j journal
	if err := r.assign(module, ns, &j); err != nil {
		j.undo()
		return err
	}
	return nil
}

// AssignNamespaces assigns each namespace in turn. On failure, namespaces
// assigned before the failing one stay assigned.
func (r *ModuleResolver[U]) AssignNamespaces(module string, namespaces []string) error {
	if namespaces == nil {
		return ErrNullCollection
	}
	for _, ns := range namespaces {
		if err := r.AssignNamespace(module, ns); err != nil {
			return err
		}
	}
	return nil
}

// Modules returns a snapshot of every declared module, sorted by name.
func (r *ModuleResolver[U]) Modules() []ModuleNode[U] {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.snapshot()
}

// Resolve returns every declared module in dependency order: a module always
// comes after the modules it depends on. Unrelated modules are ordered by
// name.
func (r *ModuleResolver[U]) Resolve() ([]ModuleNode[U], error) {
	r.mu.Lock()
	nodes := r.snapshot()
	r.mu.Unlock()

	graph, err := NewGraph(nodes)
	if err != nil {
		return nil, err
	}
	resolver := NewResolver(graph)
	if err := resolver.ResolveNodes(nodes); err != nil {
		return nil, err
	}
	return resolver.Resolve(), nil
}

func (r *ModuleResolver[U]) snapshot() []ModuleNode[U] {
	names := make([]string, 0, len(r.units))
	for name := range r.units {
		names = append(names, name)
	}
	sort.Strings(names)

	nodes := make([]ModuleNode[U], 0, len(names))
	for _, name := range names {
		deps := make([]string, 0, len(r.tree[name]))
		for dep := range r.tree[name] {
			deps = append(deps, dep)
		}
		sort.Strings(deps)
		nodes = append(nodes, ModuleNode[U]{
			Name:         name,
			Units:        slices.Clone(r.units[name]),
			Dependencies: deps,
		})
	}
	return nodes
}

func (r *ModuleResolver[U]) assign(module, ns string, j *journal) error {
	if module == "" {
		return ErrNullModule
	}
	if ns == "" {
		return ErrNullNamespace
	}
	provider, ok := r.graph.Provider(ns)
	if !ok {
		return &NothingProvidesError{Namespace: ns}
	}

	r.declare(module, j)

	resolver := NewResolver(r.graph, r.visibleUnits(module)...)
	seeded := resolver.Len()
	if err := resolver.ResolveNode(provider); err != nil {
		return err
	}

	for _, u := range resolver.Resolve()[seeded:] {
		if err := r.merge(module, u, j); err != nil {
			return err
		}
	}
	return nil
}

// visibleUnits is the base list followed by the units of module and of every
// module it transitively depends on.
func (r *ModuleResolver[U]) visibleUnits(module string) []U {
	seed := slices.Clone(r.baseList)
	for _, name := range r.reachableOrder(module) {
		seed = append(seed, r.units[name]...)
	}
	return seed
}

// merge places u into target, applying the hoist rules.
func (r *ModuleResolver[U]) merge(target string, u U, j *journal) error {
	holder, held := r.owner[u.ID()]
	if !held {
		r.appendUnit(target, u, j)
		return nil
	}
	if holder == target {
		return nil
	}

	ancestor := r.lowestCommonAncestor([]string{holder, target})

	// Check every edge the hoist adds before changing anything.
	if holder != ancestor {
		if r.reaches(ancestor, holder) {
			return &ModuleCycleError{Unit: u.ID(), From: holder, To: ancestor}
		}
	}
	linkTarget := target != ancestor && !r.reaches(target, ancestor)
	if linkTarget && r.reaches(ancestor, target) {
		return &ModuleCycleError{Unit: u.ID(), From: target, To: ancestor}
	}

	r.declare(ancestor, j)
	if holder != ancestor {
		r.removeUnit(holder, u, j)
		r.addEdge(holder, ancestor, j)
		r.appendUnit(ancestor, u, j)
	}
	if linkTarget {
		r.addEdge(target, ancestor, j)
	}
	return nil
}

// lowestCommonAncestor folds the pairwise search over the sorted candidates.
func (r *ModuleResolver[U]) lowestCommonAncestor(modules []string) string {
	sorted := slices.Clone(modules)
	sort.Strings(sorted)
	sorted = slices.Compact(sorted)

	pivot := sorted[0]
	for _, m := range sorted[1:] {
		pivot = r.commonAncestor(pivot, m)
	}
	return pivot
}

// commonAncestor returns the most specific module both a and b reach. Of the
// modules both reach, those that no other shared module reaches are the
// lowest; among them the one closest to a and b wins, then the smallest name.
func (r *ModuleResolver[U]) commonAncestor(a, b string) string {
	if a == b {
		return a
	}
	fromA := r.distances(a)
	fromB := r.distances(b)

	var shared []string
	for m := range fromA {
		if _, ok := fromB[m]; ok {
			shared = append(shared, m)
		}
	}
	if len(shared) == 0 {
		return r.common
	}
	sort.Strings(shared)

	best, bestDist := "", -1
	for _, m := range shared {
		lowest := true
		for _, other := range shared {
			if other != m && r.reaches(other, m) {
				lowest = false
				break
			}
		}
		if !lowest {
			continue
		}
		if d := fromA[m] + fromB[m]; bestDist < 0 || d < bestDist {
			best, bestDist = m, d
		}
	}
	if best == "" {
		// Only possible when the shared modules form a cycle.
		return shared[0]
	}
	return best
}

// distances runs a breadth-first search along dependency edges and returns
// every module reachable from start, start included, with its edge distance.
func (r *ModuleResolver[U]) distances(start string) map[string]int {
	dist := map[string]int{start: 0}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range r.sortedEdges(cur) {
			if _, ok := dist[next]; ok {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
		}
	}
	return dist
}

// reachableOrder lists start and every module reachable from it in
// breadth-first order.
func (r *ModuleResolver[U]) reachableOrder(start string) []string {
	order := []string{start}
	seen := map[string]struct{}{start: {}}
	for i := 0; i < len(order); i++ {
		for _, next := range r.sortedEdges(order[i]) {
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			order = append(order, next)
		}
	}
	return order
}

// reaches reports whether to is reachable from from. Every module reaches
// itself.
func (r *ModuleResolver[U]) reaches(from, to string) bool {
	_, ok := r.distances(from)[to]
	return ok
}

func (r *ModuleResolver[U]) sortedEdges(module string) []string {
	out := make([]string, 0, len(r.tree[module]))
	for dep := range r.tree[module] {
		out = append(out, dep)
	}
	sort.Strings(out)
	return out
}

func (r *ModuleResolver[U]) declare(name string, j *journal) {
	if _, ok := r.units[name]; ok {
		return
	}
	r.units[name] = []U{}
	r.tree[name] = make(map[string]struct{})
	j.record(func() {
		delete(r.units, name)
		delete(r.tree, name)
	})
}

func (r *ModuleResolver[U]) addEdge(from, to string, j *journal) {
	if from == to {
		return
	}
	if _, ok := r.tree[from][to]; ok {
		return
	}
	r.tree[from][to] = struct{}{}
	j.record(func() { delete(r.tree[from], to) })
}

func (r *ModuleResolver[U]) appendUnit(module string, u U, j *journal) {
	prev, held := r.owner[u.ID()]
	r.units[module] = append(r.units[module], u)
	r.owner[u.ID()] = module
	j.record(func() {
		units := r.units[module]
		r.units[module] = units[:len(units)-1]
		if held {
			r.owner[u.ID()] = prev
		} else {
			delete(r.owner, u.ID())
		}
	})
}

func (r *ModuleResolver[U]) removeUnit(module string, u U, j *journal) {
	units := r.units[module]
	pos := slices.IndexFunc(units, func(v U) bool { return v.ID() == u.ID() })
	if pos < 0 {
		return
	}
	r.units[module] = slices.Delete(units, pos, pos+1)
	delete(r.owner, u.ID())
	j.record(func() {
		r.units[module] = slices.Insert(r.units[module], pos, u)
		r.owner[u.ID()] = module
	})
}

// journal collects undo steps for one public call. A nil journal records
// nothing.
type journal struct {
	steps []func()
}

func (j *journal) record(step func()) {
	if j == nil {
		return
	}
	j.steps = append(j.steps, step)
}

func (j *journal) undo() {
	for i := len(j.steps) - 1; i >= 0; i-- {
		j.steps[i]()
	}
	j.steps = nil
}
