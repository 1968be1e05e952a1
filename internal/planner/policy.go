package planner

import (
	"path"
	"path/filepath"

	"loadorder/internal/dependency"
	"loadorder/internal/manifest"
)

// NewPolicy builds the namespace policy described by baseList and exclude.
//
// The base list holds the providers of baseList, in order; a namespace
// nobody provides is an error. Units whose name, or whose path relative to
// root, matches an exclude pattern are left out of namespace lookup.
func NewPolicy(baseList, exclude []string, root string, units []*manifest.Unit) (dependency.Policy[*manifest.Unit], error) {
	index := make(map[string]*manifest.Unit)
	for _, u := range units {
		for _, ns := range u.Provided {
			index[ns] = u
		}
	}

	var base []*manifest.Unit
	for _, ns := range baseList {
		u, ok := index[ns]
		if !ok {
			return nil, &dependency.NothingProvidesError{Namespace: ns}
		}
		base = append(base, u)
	}

	return dependency.PolicyFuncs[*manifest.Unit]{
		BaseListFunc: func([]*manifest.Unit) []*manifest.Unit {
			return base
		},
		ResolvableFunc: func(units []*manifest.Unit) []*manifest.Unit {
			if len(exclude) == 0 {
				return units
			}
			out := make([]*manifest.Unit, 0, len(units))
			for _, u := range units {
				if !excluded(u, exclude, root) {
					out = append(out, u)
				}
			}
			return out
		},
	}, nil
}

func excluded(u *manifest.Unit, patterns []string, root string) bool {
	rel := u.Path
	if root != "" {
		if r, err := filepath.Rel(root, u.Path); err == nil {
			rel = r
		}
	}
	slashPath := filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, u.Name); ok {
			return true
		}
		if ok, _ := path.Match(pattern, slashPath); ok {
			return true
		}
		if ok, _ := path.Match(pattern, path.Base(slashPath)); ok {
			return true
		}
	}
	return false
}
