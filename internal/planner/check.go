package planner

import (
	"loadorder/internal/dependency"
	"loadorder/pkg/logging"
)

// Report is the result of checking a workspace.
type Report struct {
	Units       int         `json:"units"`
	Namespaces  int         `json:"namespaces"`
	Excluded    int         `json:"excluded"`
	Modules     int         `json:"modules"`
	Ambiguities []Ambiguity `json:"ambiguities,omitempty"`
	Problems    []Problem   `json:"problems,omitempty"`
}

// Problem is one unit, or the module partition, failing to resolve.
type Problem struct {
	Unit   string `json:"unit,omitempty"`
	Module bool   `json:"module,omitempty"`
	Error  string `json:"error"`

	err error
}

// Err returns the underlying error.
func (p Problem) Err() error { return p.err }

// OK reports whether the check found no problems. Ambiguities are warnings.
func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

// HasDependencyError reports whether any problem comes from the shape of the
// dependency graph.
func (r *Report) HasDependencyError() bool {
	for _, p := range r.Problems {
		if dependency.IsDependencyError(p.err) {
			return true
		}
	}
	return false
}

// Check resolves every resolvable unit, and the configured modules if there
// are any, collecting every failure instead of stopping at the first.
func (w *Workspace) Check() *Report {
	report := &Report{
		Units:       w.graph.Len(),
		Namespaces:  len(w.graph.Namespaces()),
		Excluded:    len(w.units) - w.graph.Len(),
		Modules:     len(w.cfg.Modules),
		Ambiguities: ambiguities(w.graph.Ambiguities()),
	}

	resolver := dependency.NewResolver(w.graph, w.base...)
	for _, u := range w.graph.Units() {
		if err := resolver.ResolveNode(u); err != nil {
			report.Problems = append(report.Problems, Problem{Unit: u.Name, Error: err.Error(), err: err})
		}
	}

	if len(w.cfg.Modules) > 0 {
		if _, err := w.partition(); err != nil {
			report.Problems = append(report.Problems, Problem{Module: true, Error: err.Error(), err: err})
		}
	}

	if report.OK() {
		logging.Info("Planner", "Checked %d units, no problems found", report.Units)
	} else {
		logging.Warn("Planner", "Checked %d units, found %d problems", report.Units, len(report.Problems))
	}
	return report
}
