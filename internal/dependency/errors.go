package dependency

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNothingProvides matches every NothingProvidesError.
	ErrNothingProvides = errors.New("nothing provides namespace")

	// ErrCircularDependency matches every CircularDependencyError.
	ErrCircularDependency = errors.New("circular dependency")

	// ErrModuleCycle matches every ModuleCycleError.
	ErrModuleCycle = errors.New("module dependency cycle")

	// ErrNullModule is returned when a module assignment has no module name.
	ErrNullModule = errors.New("cannot resolve module name of null")

	// ErrNullNamespace is returned when a namespace argument is empty.
	ErrNullNamespace = errors.New("cannot resolve namespace of null")

	// ErrNullCollection is returned when a bulk operation receives a nil
	// collection. An empty, non-nil collection is valid.
	ErrNullCollection = errors.New("cannot resolve a null collection")
)

// NothingProvidesError reports a namespace without a registered provider.
type NothingProvidesError struct {
	Namespace string
}

func (e *NothingProvidesError) Error() string {
	return fmt.Sprintf("nothing provides %s", e.Namespace)
}

// Is makes errors.Is(err, ErrNothingProvides) work.
func (e *NothingProvidesError) Is(target error) bool {
	return target == ErrNothingProvides
}

// CircularDependencyError reports a unit that was reached again while it was
// still being resolved. Chain holds the IDs of the units on the active path,
// outermost first.
type CircularDependencyError struct {
	Unit  string
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "circular dependency detected while trying to resolve %q", e.Unit)
	if len(e.Chain) > 0 {
		fmt.Fprintf(&b, " (parents: %s)", strings.Join(e.Chain, " -> "))
	}
	return b.String()
}

// Is makes errors.Is(err, ErrCircularDependency) work.
func (e *CircularDependencyError) Is(target error) bool {
	return target == ErrCircularDependency
}

// ModuleCycleError reports a hoist that would add the edge From -> To while To
// already depends, directly or transitively, on From.
type ModuleCycleError struct {
	Unit string
	From string
	To   string
}

func (e *ModuleCycleError) Error() string {
	return fmt.Sprintf("hoisting %q would create a module cycle: %s -> %s, but %s already depends on %s",
		e.Unit, e.From, e.To, e.To, e.From)
}

// Is makes errors.Is(err, ErrModuleCycle) work.
func (e *ModuleCycleError) Is(target error) bool {
	return target == ErrModuleCycle
}

// IsDependencyError reports whether err was caused by the shape of the
// dependency graph rather than by a bad argument.
func IsDependencyError(err error) bool {
	return errors.Is(err, ErrNothingProvides) ||
		errors.Is(err, ErrCircularDependency) ||
		errors.Is(err, ErrModuleCycle)
}
