package dependency

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatUnits returns n independent units node_1..node_n.
func flatUnits(n int) []*Node {
	units := make([]*Node, n)
	for i := range units {
		name := fmt.Sprintf("node_%d", i+1)
		units[i] = node(name, []string{name})
	}
	return units
}

func newModuleResolver(t *testing.T, units []*Node, base ...*Node) *ModuleResolver[*Node] {
	t.Helper()
	g, err := NewGraph(units)
	require.NoError(t, err)
	return NewModuleResolver(g, "common", base...)
}

// partition maps module name to unit IDs.
func partition(modules []ModuleNode[*Node]) map[string][]string {
	out := make(map[string][]string, len(modules))
	for _, m := range modules {
		out[m.Name] = m.UnitIDs()
	}
	return out
}

func moduleNames(modules []ModuleNode[*Node]) []string {
	names := make([]string, len(modules))
	for i, m := range modules {
		names[i] = m.Name
	}
	return names
}

func TestModuleResolver_HoistToCommon(t *testing.T) {
	r := newModuleResolver(t, flatUnits(1000))

	require.NoError(t, r.AssignNamespace("A", "node_1"))
	require.NoError(t, r.AssignNamespace("B", "node_1"))

	modules, err := r.Resolve()
	require.NoError(t, err)
	require.Len(t, modules, 3)
	assert.Equal(t, map[string][]string{
		"common": {"node_1"},
		"A":      {},
		"B":      {},
	}, partition(modules))
	assert.Equal(t, "common", modules[0].Name, "hoist target is ordered first")
}

func TestModuleResolver_MixedSharing(t *testing.T) {
	r := newModuleResolver(t, flatUnits(1000))

	require.NoError(t, r.AssignNamespaces("A", []string{"node_1", "node_3"}))
	require.NoError(t, r.AssignNamespaces("B", []string{"node_1", "node_2"}))

	modules, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"common": {"node_1"},
		"A":      {"node_3"},
		"B":      {"node_2"},
	}, partition(modules))

	for _, m := range modules {
		if m.Name == "common" {
			assert.Empty(t, m.Dependencies)
			continue
		}
		assert.Equal(t, []string{"common"}, m.Dependencies, "module %s", m.Name)
	}
}

func TestModuleResolver_InternalOrdering(t *testing.T) {
	units := []*Node{
		node("node_1", []string{"node_1"}, "node_2"),
		node("node_2", []string{"node_2"}, "node_3"),
		node("node_3", []string{"node_3"}),
	}
	r := newModuleResolver(t, units)

	require.NoError(t, r.AssignNamespace("A", "node_1"))

	modules, err := r.Resolve()
	require.NoError(t, err)
	require.Len(t, modules, 1)
	assert.Equal(t, "A", modules[0].Name)
	assert.Equal(t, []string{"node_3", "node_2", "node_1"}, modules[0].UnitIDs())
}

func TestModuleResolver_HoistToDeclaredAncestor(t *testing.T) {
	units := []*Node{
		node("shared", []string{"ns.shared"}),
		node("a", []string{"ns.a"}, "ns.shared"),
		node("b", []string{"ns.b"}, "ns.shared"),
	}
	r := newModuleResolver(t, units)
	r.DeclareModuleDependency("A", "P").DeclareModuleDependency("B", "P")

	require.NoError(t, r.AssignNamespace("A", "ns.a"))
	require.NoError(t, r.AssignNamespace("B", "ns.b"))

	modules, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"A": {"a"},
		"B": {"b"},
		"P": {"shared"},
	}, partition(modules))
	assert.Equal(t, []string{"P", "A", "B"}, moduleNames(modules))
}

func TestModuleResolver_LowestOfSeveralAncestors(t *testing.T) {
	r := newModuleResolver(t, flatUnits(3))
	r.DeclareModuleDependency("A", "mid").
		DeclareModuleDependency("B", "mid").
		DeclareModuleDependency("mid", "root").
		DeclareModuleDependency("A", "root")

	require.NoError(t, r.AssignNamespace("A", "node_1"))
	require.NoError(t, r.AssignNamespace("B", "node_1"))

	assert.Equal(t, map[string][]string{
		"A":    {},
		"B":    {},
		"mid":  {"node_1"},
		"root": {},
	}, partition(r.Modules()))
}

func TestModuleResolver_UnitsVisibleThroughDependencies(t *testing.T) {
	units := []*Node{
		node("lib", []string{"ns.lib"}),
		node("app", []string{"ns.app"}, "ns.lib"),
	}
	r := newModuleResolver(t, units)
	r.DeclareModuleDependency("app", "core")

	require.NoError(t, r.AssignNamespace("core", "ns.lib"))
	require.NoError(t, r.AssignNamespace("app", "ns.app"))

	assert.Equal(t, map[string][]string{
		"app":  {"app"},
		"core": {"lib"},
	}, partition(r.Modules()), "lib stays in core because app depends on core")
}

func TestModuleResolver_HoistIntoRequester(t *testing.T) {
	r := newModuleResolver(t, flatUnits(2))
	r.DeclareModuleDependency("child", "parent")

	require.NoError(t, r.AssignNamespace("child", "node_1"))
	require.NoError(t, r.AssignNamespace("parent", "node_1"))

	modules, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"child":  {},
		"parent": {"node_1"},
	}, partition(modules))
	assert.Equal(t, []string{"parent", "child"}, moduleNames(modules))
}

func TestModuleResolver_BaseListIsNeverAssigned(t *testing.T) {
	units := []*Node{
		node("base", []string{"ns.base"}),
		node("app", []string{"ns.app"}, "ns.base"),
	}
	r := newModuleResolver(t, units, units[0])

	require.NoError(t, r.AssignNamespace("A", "ns.app"))
	assert.Equal(t, map[string][]string{"A": {"app"}}, partition(r.Modules()))
}

func TestModuleResolver_ModuleCycleLeavesStateUntouched(t *testing.T) {
	r := newModuleResolver(t, flatUnits(3))
	r.DeclareModuleDependency("common", "A")

	require.NoError(t, r.AssignNamespace("A", "node_1"))
	before := r.Modules()

	err := r.AssignNamespace("B", "node_1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModuleCycle))
	assert.True(t, IsDependencyError(err))

	var mce *ModuleCycleError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, "node_1", mce.Unit)
	assert.Equal(t, "A", mce.From)
	assert.Equal(t, "common", mce.To)

	assert.Equal(t, before, r.Modules())
}

func TestModuleResolver_FailedAssignmentRollsBack(t *testing.T) {
	units := []*Node{
		node("shared", []string{"ns.shared"}),
		node("x", []string{"ns.x"}),
		node("y", []string{"ns.y"}, "ns.x", "ns.shared"),
	}
	r := newModuleResolver(t, units)
	r.DeclareModuleDependency("common", "A")

	require.NoError(t, r.AssignNamespace("A", "ns.shared"))
	before := r.Modules()

	// x is placed into B before shared fails to hoist.
	require.Error(t, r.AssignNamespace("B", "ns.y"))
	assert.Equal(t, before, r.Modules())
}

func TestModuleResolver_Errors(t *testing.T) {
	units := []*Node{
		node("a", []string{"ns.a"}, "ns.b"),
		node("b", []string{"ns.b"}, "ns.a"),
	}
	r := newModuleResolver(t, units)

	assert.ErrorIs(t, r.AssignNamespace("", "ns.a"), ErrNullModule)
	assert.ErrorIs(t, r.AssignNamespace("A", ""), ErrNullNamespace)
	assert.ErrorIs(t, r.AssignNamespaces("A", nil), ErrNullCollection)
	assert.ErrorIs(t, r.AssignNamespace("A", "ns.none"), ErrNothingProvides)
	assert.ErrorIs(t, r.AssignNamespace("A", "ns.a"), ErrCircularDependency)
	assert.Empty(t, r.Modules(), "failed assignments declare nothing")
}

func TestModuleResolver_DeclareIsIdempotent(t *testing.T) {
	r := newModuleResolver(t, flatUnits(1))
	r.DeclareModule("A").DeclareModule("A").DeclareModuleDependency("A", "B").DeclareModuleDependency("A", "B")

	modules := r.Modules()
	require.Len(t, modules, 2)
	assert.Equal(t, "A", modules[0].Name)
	assert.Equal(t, []string{"B"}, modules[0].Dependencies)
	assert.Empty(t, modules[1].Dependencies)
}

func TestModuleResolver_ResolveOrdersModules(t *testing.T) {
	r := newModuleResolver(t, flatUnits(1))
	r.DeclareModuleDependency("web", "ui").
		DeclareModuleDependency("ui", "base").
		DeclareModuleDependency("admin", "base").
		DeclareModule("zeta")

	modules, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "admin", "ui", "web", "zeta"}, moduleNames(modules))
}

func TestModuleResolver_ResolveDeclaredCycle(t *testing.T) {
	r := newModuleResolver(t, flatUnits(1))
	r.DeclareModuleDependency("x", "y").DeclareModuleDependency("y", "x")

	_, err := r.Resolve()
	assert.ErrorIs(t, err, ErrCircularDependency)
}
