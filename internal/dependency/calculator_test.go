package dependency

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fileUnit struct {
	*Node
	path string
}

func (f fileUnit) Resource() string { return f.path }

// parseLine reads "name: provides... ; requires..." with space separated
// namespaces.
func parseLine(line string) (fileUnit, error) {
	name, rest, ok := strings.Cut(line, ":")
	if !ok {
		return fileUnit{}, errors.New("missing name")
	}
	provides, requires, _ := strings.Cut(rest, ";")
	return fileUnit{
		Node: NewNode(strings.TrimSpace(name), strings.Fields(provides), strings.Fields(requires)),
		path: line,
	}, nil
}

var lineParser = ParserFunc[string, fileUnit](parseLine)

func TestCalculator_DependenciesFor(t *testing.T) {
	resources := []string{
		"a: ns.a ; ns.b",
		"b: ns.b ; ns.c",
		"c: ns.c",
		"x: ns.x",
	}
	calc := NewCalculator(resources, Parser[string, fileUnit](lineParser), nil)

	units, err := calc.DependenciesFor("ns.a")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, unitIDs(units))

	got, err := calc.ResourcesFor("ns.b", "ns.x")
	require.NoError(t, err)
	assert.Equal(t, []string{"c: ns.c", "b: ns.b ; ns.c", "x: ns.x"}, got)

	got, err = calc.ResourcesForResource("entry: ; ns.b")
	require.NoError(t, err)
	assert.Equal(t, []string{"c: ns.c", "b: ns.b ; ns.c", "entry: ; ns.b"}, got)

	all, err := calc.Units()
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestCalculator_Policy(t *testing.T) {
	resources := []string{
		"boot: ns.boot",
		"old: ns.util",
		"new: ns.util",
		"app: ns.app ; ns.util",
	}
	policy := PolicyFuncs[fileUnit]{
		BaseListFunc: func(units []fileUnit) []fileUnit {
			return units[:1]
		},
		ResolvableFunc: func(units []fileUnit) []fileUnit {
			var out []fileUnit
			for _, u := range units {
				if u.ID() != "new" {
					out = append(out, u)
				}
			}
			return out
		},
	}
	calc := NewCalculator(resources, Parser[string, fileUnit](lineParser), Policy[fileUnit](policy))

	units, err := calc.DependenciesFor("ns.app")
	require.NoError(t, err)
	assert.Equal(t, []string{"boot", "old", "app"}, unitIDs(units))

	units, err = calc.DependenciesFor()
	require.NoError(t, err)
	assert.Equal(t, []string{"boot"}, unitIDs(units), "an empty request yields the base list")
}

func TestCalculator_Errors(t *testing.T) {
	t.Run("parse failure", func(t *testing.T) {
		calc := NewCalculator([]string{"no separator"}, Parser[string, fileUnit](lineParser), nil)
		_, err := calc.DependenciesFor("ns.a")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing name")
	})

	t.Run("missing provider at graph construction", func(t *testing.T) {
		calc := NewCalculator([]string{"a: ns.a ; ns.gone"}, Parser[string, fileUnit](lineParser), nil)
		_, err := calc.Resolver()
		assert.ErrorIs(t, err, ErrNothingProvides)
	})

	t.Run("missing provider at query time", func(t *testing.T) {
		calc := NewCalculator([]string{"a: ns.a"}, Parser[string, fileUnit](lineParser), nil)
		_, err := calc.ResourcesFor("ns.gone")
		assert.ErrorIs(t, err, ErrNothingProvides)
	})
}

func TestDefaultPolicy(t *testing.T) {
	units := chainUnits()
	var p Policy[*Node] = DefaultPolicy[*Node]{}

	assert.Empty(t, p.BaseList(units))
	assert.Equal(t, units, p.Resolvable(units))

	p = PolicyFuncs[*Node]{}
	assert.Empty(t, p.BaseList(units))
	assert.Equal(t, units, p.Resolvable(units))
}
