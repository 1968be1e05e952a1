package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"loadorder/internal/config"
	"loadorder/internal/dependency"
	"loadorder/internal/manifest"
	"loadorder/pkg/logging"
)

// Planner loads the configured sources and turns them into plans.
type Planner struct {
	cfg    config.LoadOrderConfig
	loader *manifest.Loader
}

// New creates a planner. A nil loader parses with one worker per CPU and
// skips configuration files found in source directories.
func New(cfg config.LoadOrderConfig, loader *manifest.Loader) *Planner {
	if loader == nil {
		loader = manifest.NewLoader(0)
		loader.Ignore = []string{config.DefaultConfigFileName}
	}
	return &Planner{cfg: cfg, loader: loader}
}

// Load reads every manifest under the configured sources, or under sources
// when any are given.
func (p *Planner) Load(ctx context.Context, sources ...string) (*Workspace, error) {
	if len(sources) == 0 {
		sources = p.cfg.SourcePaths()
	}
	units, err := p.loader.Load(ctx, sources...)
	if err != nil {
		return nil, err
	}
	return NewWorkspace(p.cfg, units)
}

// Workspace is a loaded set of units ready to be resolved.
type Workspace struct {
	cfg   config.LoadOrderConfig
	units []*manifest.Unit
	calc  *dependency.Calculator[string, *manifest.Unit]
	graph *dependency.Graph[*manifest.Unit]
	base  []*manifest.Unit

	// newID generates plan IDs.
	newID func() string
}

// ErrDuplicateUnit is returned when two manifests declare the same unit name.
var ErrDuplicateUnit = errors.New("duplicate unit name")

// NewWorkspace indexes units according to cfg. It fails when two units share
// a name or when a required or base-list namespace has no provider.
func NewWorkspace(cfg config.LoadOrderConfig, units []*manifest.Unit) (*Workspace, error) {
	if err := checkUniqueNames(units); err != nil {
		return nil, err
	}
	policy, err := NewPolicy(cfg.BaseList, cfg.Exclude, cfg.Dir, units)
	if err != nil {
		return nil, fmt.Errorf("invalid base list: %w", err)
	}

	paths := make([]string, len(units))
	for i, u := range units {
		paths[i] = u.Path
	}
	calc := dependency.NewCalculator(paths, dependency.Parser[string, *manifest.Unit](manifest.NewCache(units)), policy)

	graph, err := calc.Graph()
	if err != nil {
		return nil, err
	}
	base, err := calc.BaseList()
	if err != nil {
		return nil, err
	}

	for _, a := range graph.Ambiguities() {
		logging.Warn("Planner", "Namespace %s is provided by %s, shadowing %v", a.Namespace, a.Provider, a.Shadowed)
	}
	logging.Debug("Planner", "Indexed %d units providing %d namespaces", graph.Len(), len(graph.Namespaces()))

	return &Workspace{
		cfg:   cfg,
		units: units,
		calc:  calc,
		graph: graph,
		base:  base,
		newID: uuid.NewString,
	}, nil
}

func checkUniqueNames(units []*manifest.Unit) error {
	seen := make(map[string]string, len(units))
	for _, u := range units {
		if first, ok := seen[u.Name]; ok {
			return fmt.Errorf("%w %q: declared by %s and %s", ErrDuplicateUnit, u.Name, first, u.Path)
		}
		seen[u.Name] = u.Path
	}
	return nil
}

// Units returns every loaded unit, including excluded ones.
func (w *Workspace) Units() []*manifest.Unit {
	return w.units
}

// Graph returns the graph over the resolvable units.
func (w *Workspace) Graph() *dependency.Graph[*manifest.Unit] {
	return w.graph
}

// Resolve orders the units needed for namespaces. Without namespaces every
// resolvable unit is ordered.
func (w *Workspace) Resolve(namespaces []string) (*Plan, error) {
	var (
		units []*manifest.Unit
		err   error
	)
	if len(namespaces) == 0 {
		units, err = w.resolveAll()
	} else {
		units, err = w.calc.DependenciesFor(namespaces...)
	}
	if err != nil {
		return nil, err
	}

	logging.Debug("Planner", "Resolved %d units for %d namespaces", len(units), len(namespaces))
	return &Plan{
		ID:          w.newID(),
		Kind:        KindOrder,
		Namespaces:  namespaces,
		Units:       unitEntries(units, w.baseSet()),
		Ambiguities: ambiguities(w.graph.Ambiguities()),
	}, nil
}

// ResolveEntry orders the units needed to load the manifest at path, which
// does not have to be part of the sources.
func (w *Workspace) ResolveEntry(path string) (*Plan, error) {
	units, err := w.calc.DependenciesForResource(path)
	if err != nil {
		return nil, err
	}
	return &Plan{
		ID:          w.newID(),
		Kind:        KindOrder,
		Entry:       path,
		Units:       unitEntries(units, w.baseSet()),
		Ambiguities: ambiguities(w.graph.Ambiguities()),
	}, nil
}

func (w *Workspace) resolveAll() ([]*manifest.Unit, error) {
	resolver, err := w.calc.Resolver()
	if err != nil {
		return nil, err
	}
	if err := resolver.ResolveNodes(w.graph.Units()); err != nil {
		return nil, err
	}
	return resolver.Resolve(), nil
}

// Partition assigns the namespaces of every configured module and returns
// the modules in dependency order. The plan's units are the base list
// followed by the units of each module in module order.
func (w *Workspace) Partition() (*Plan, error) {
	modules, err := w.partition()
	if err != nil {
		return nil, err
	}

	base := w.baseSet()
	plan := &Plan{
		ID:          w.newID(),
		Kind:        KindPartition,
		Units:       unitEntries(w.base, base),
		Ambiguities: ambiguities(w.graph.Ambiguities()),
	}
	for _, m := range modules {
		entries := unitEntries(m.Units, base)
		plan.Modules = append(plan.Modules, ModuleEntry{
			Name:      m.Name,
			DependsOn: m.Dependencies,
			Units:     entries,
		})
		plan.Units = append(plan.Units, entries...)
	}

	logging.Debug("Planner", "Partitioned units into %d modules", len(plan.Modules))
	return plan, nil
}

func (w *Workspace) partition() ([]dependency.ModuleNode[*manifest.Unit], error) {
	resolver := dependency.NewModuleResolver(w.graph, w.cfg.CommonModule, w.base...)
	for _, m := range w.cfg.Modules {
		resolver.DeclareModule(m.Name)
		for _, dep := range m.DependsOn {
			resolver.DeclareModuleDependency(m.Name, dep)
		}
	}
	for _, m := range w.cfg.Modules {
		if len(m.Namespaces) == 0 {
			continue
		}
		if err := resolver.AssignNamespaces(m.Name, m.Namespaces); err != nil {
			return nil, fmt.Errorf("failed to assign namespaces to module %s: %w", m.Name, err)
		}
	}
	return resolver.Resolve()
}

func (w *Workspace) baseSet() map[string]bool {
	set := make(map[string]bool, len(w.base))
	for _, u := range w.base {
		set[u.Name] = true
	}
	return set
}
