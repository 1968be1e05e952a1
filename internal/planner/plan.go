package planner

import (
	"loadorder/internal/dependency"
	"loadorder/internal/manifest"
)

// Plan is the outcome of a resolution: the ordered units and, for a
// partition, the ordered modules.
type Plan struct {
	ID          string        `json:"id"`
	Kind        PlanKind      `json:"kind"`
	Namespaces  []string      `json:"namespaces,omitempty"`
	Entry       string        `json:"entry,omitempty"`
	Units       []UnitEntry   `json:"units"`
	Modules     []ModuleEntry `json:"modules,omitempty"`
	Ambiguities []Ambiguity   `json:"ambiguities,omitempty"`
}

// PlanKind tells which operation produced a Plan.
type PlanKind string

const (
	KindOrder     PlanKind = "order"
	KindPartition PlanKind = "partition"
)

// UnitEntry is one unit in a plan.
type UnitEntry struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Provides []string `json:"provides,omitempty"`
	Requires []string `json:"requires,omitempty"`
	Base     bool     `json:"base,omitempty"`
}

// ModuleEntry is one module of a partition.
type ModuleEntry struct {
	Name      string      `json:"name"`
	DependsOn []string    `json:"dependsOn,omitempty"`
	Units     []UnitEntry `json:"units"`
}

// Ambiguity is a namespace with more than one provider.
type Ambiguity struct {
	Namespace string   `json:"namespace"`
	Provider  string   `json:"provider"`
	Shadowed  []string `json:"shadowed"`
}

// UnitNames returns the names of the plan's units in order.
func (p *Plan) UnitNames() []string {
	names := make([]string, len(p.Units))
	for i, u := range p.Units {
		names[i] = u.Name
	}
	return names
}

// Paths returns the manifest paths of the plan's units in order.
func (p *Plan) Paths() []string {
	paths := make([]string, len(p.Units))
	for i, u := range p.Units {
		paths[i] = u.Path
	}
	return paths
}

func unitEntries(units []*manifest.Unit, base map[string]bool) []UnitEntry {
	entries := make([]UnitEntry, len(units))
	for i, u := range units {
		entries[i] = UnitEntry{
			Name:     u.Name,
			Path:     u.Path,
			Provides: u.Provided,
			Requires: u.Required,
			Base:     base[u.Name],
		}
	}
	return entries
}

func ambiguities(in []dependency.Ambiguity) []Ambiguity {
	if len(in) == 0 {
		return nil
	}
	out := make([]Ambiguity, len(in))
	for i, a := range in {
		out[i] = Ambiguity{Namespace: a.Namespace, Provider: a.Provider, Shadowed: a.Shadowed}
	}
	return out
}
