package dependency

// ModuleNode is one module of a partition: the units it owns and the names of
// the modules it depends on.
//
// ModuleNode is itself a Unit (ID and the only provided namespace are the
// module name, the required namespaces are its dependencies), which is how
// modules are ordered by the same Resolver that orders units.
type ModuleNode[U Unit] struct {
	Name         string
	Units        []U
	Dependencies []string
}

// ID returns the module name.
func (m ModuleNode[U]) ID() string { return m.Name }

// Provides returns the module name as the single provided namespace.
func (m ModuleNode[U]) Provides() []string { return []string{m.Name} }

// Requires returns the names of the modules m depends on.
func (m ModuleNode[U]) Requires() []string { return m.Dependencies }

// UnitIDs returns the IDs of the module's units in order.
func (m ModuleNode[U]) UnitIDs() []string { return unitIDs(m.Units) }

func (m ModuleNode[U]) String() string { return m.Name }
