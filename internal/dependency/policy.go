package dependency

// Policy decides which units are always placed first and which units take
// part in namespace lookup.
type Policy[U Unit] interface {
	// BaseList returns the units that start every resolution, in order.
	BaseList(units []U) []U

	// Resolvable returns the units that are indexed by namespace.
	Resolvable(units []U) []U
}

// DefaultPolicy has an empty base list and makes every unit resolvable.
type DefaultPolicy[U Unit] struct{}

// BaseList returns nil.
func (DefaultPolicy[U]) BaseList([]U) []U { return nil }

// Resolvable returns units unchanged.
func (DefaultPolicy[U]) Resolvable(units []U) []U { return units }

// PolicyFuncs adapts plain functions to Policy. A nil field falls back to
// DefaultPolicy.
type PolicyFuncs[U Unit] struct {
	BaseListFunc   func(units []U) []U
	ResolvableFunc func(units []U) []U
}

// BaseList calls BaseListFunc.
func (p PolicyFuncs[U]) BaseList(units []U) []U {
	if p.BaseListFunc == nil {
		return DefaultPolicy[U]{}.BaseList(units)
	}
	return p.BaseListFunc(units)
}

// Resolvable calls ResolvableFunc.
func (p PolicyFuncs[U]) Resolvable(units []U) []U {
	if p.ResolvableFunc == nil {
		return DefaultPolicy[U]{}.Resolvable(units)
	}
	return p.ResolvableFunc(units)
}
