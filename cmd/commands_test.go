package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadorder/internal/config"
	"loadorder/internal/formatting"
	"loadorder/internal/planner"
)

// appManifests: base <- lib <- {app, admin}.
var appManifests = map[string]string{
	"base.yaml":       "name: base\nprovides: [base]\n",
	"lib.yaml":        "name: lib\nprovides: [lib]\nrequires: [base]\n",
	"src/app.yaml":    "name: app\nprovides: [app]\nrequires: [lib]\n",
	"src/admin.yaml":  "name: admin\nprovides: [admin]\nrequires: [lib]\n",
	"docs/readme.txt": "not a manifest",
}

const modulesConfig = `commonModule: common
modules:
  - name: A
    namespaces: [app]
  - name: B
    namespaces: [admin]
`

// setupWorkspace writes files into a temporary directory and points
// --config at it.
func setupWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	originalConfig, originalDebug := configPath, debug
	t.Cleanup(func() { configPath, debug = originalConfig, originalDebug })
	configPath = dir
	debug = false
	return dir
}

func withFiles(extra map[string]string) map[string]string {
	files := make(map[string]string, len(appManifests)+len(extra))
	for k, v := range appManifests {
		files[k] = v
	}
	for k, v := range extra {
		files[k] = v
	}
	return files
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	// A nil slice makes cobra fall back to os.Args.
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestResolveCommand(t *testing.T) {
	dir := setupWorkspace(t, appManifests)

	out, err := execute(t, newResolveCmd(), "app", "-q")
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		filepath.Join(dir, "base.yaml"),
		filepath.Join(dir, "lib.yaml"),
		filepath.Join(dir, "src", "app.yaml"),
	}, "\n")+"\n", out)
}

func TestResolveCommandFormats(t *testing.T) {
	setupWorkspace(t, appManifests)

	out, err := execute(t, newResolveCmd(), "admin", "-o", "json")
	require.NoError(t, err)

	var plan planner.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, []string{"base", "lib", "admin"}, plan.UnitNames())
	assert.Equal(t, []string{"admin"}, plan.Namespaces)
	assert.NotEmpty(t, plan.ID)

	out, err = execute(t, newResolveCmd(), "admin", "--template", `{{ range .Units }}{{ .Name }} {{ end }}`)
	require.NoError(t, err)
	assert.Equal(t, "base lib admin ", out)
}

func TestResolveCommandSources(t *testing.T) {
	dir := setupWorkspace(t, appManifests)

	out, err := execute(t, newResolveCmd(), "-q", "-s", filepath.Join(dir, "base.yaml"), "-s", filepath.Join(dir, "lib.yaml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "base.yaml")+"\n"+filepath.Join(dir, "lib.yaml")+"\n", out)
}

func TestResolveCommandEntry(t *testing.T) {
	dir := setupWorkspace(t, appManifests)
	entry := filepath.Join(t.TempDir(), "main.yaml")
	require.NoError(t, os.WriteFile(entry, []byte("name: main\nrequires: [app, admin]\n"), 0o644))

	out, err := execute(t, newResolveCmd(), "--entry", entry, "-o", "json")
	require.NoError(t, err)

	var plan planner.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, []string{"base", "lib", "app", "admin", "main"}, plan.UnitNames())
	assert.Equal(t, entry, plan.Entry)
	assert.Equal(t, filepath.Join(dir, "src", "app.yaml"), plan.Units[2].Path)

	_, err = execute(t, newResolveCmd(), "--entry", entry, "app")
	assert.ErrorContains(t, err, "--entry cannot be combined")
}

func TestResolveCommandErrors(t *testing.T) {
	setupWorkspace(t, withFiles(map[string]string{
		"loop/x.yaml": "name: x\nprovides: [x]\nrequires: [y]\n",
		"loop/y.yaml": "name: y\nprovides: [y]\nrequires: [x]\n",
	}))

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "missing provider", args: []string{"nope"}, wantCode: ExitCodeDependencyError},
		{name: "cycle", args: []string{"x"}, wantCode: ExitCodeDependencyError},
		{name: "bad output format", args: []string{"app", "-o", "xml"}, wantCode: ExitCodeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, newResolveCmd(), tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, getExitCode(err))
		})
	}
}

func TestResolveCommandConfigError(t *testing.T) {
	setupWorkspace(t, withFiles(map[string]string{
		config.DefaultConfigFileName: "unknownKey: true\n",
	}))

	_, err := execute(t, newResolveCmd(), "app")
	require.Error(t, err)
	assert.Equal(t, ExitCodeError, getExitCode(err))
}

func TestModulesCommand(t *testing.T) {
	setupWorkspace(t, withFiles(map[string]string{
		config.DefaultConfigFileName: modulesConfig,
	}))

	out, err := execute(t, newModulesCmd(), "-o", "json")
	require.NoError(t, err)

	var plan planner.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, planner.KindPartition, plan.Kind)

	modules := make(map[string]planner.ModuleEntry)
	var order []string
	for _, m := range plan.Modules {
		modules[m.Name] = m
		order = append(order, m.Name)
	}
	assert.Equal(t, "common", order[0], "the hoist target comes before its dependents")
	assert.ElementsMatch(t, []string{"common", "A", "B"}, order)

	var commonUnits []string
	for _, u := range modules["common"].Units {
		commonUnits = append(commonUnits, u.Name)
	}
	assert.ElementsMatch(t, []string{"base", "lib"}, commonUnits)
	assert.Equal(t, []string{"common"}, modules["A"].DependsOn)
	assert.Equal(t, []string{"common"}, modules["B"].DependsOn)
}

func TestModulesCommandWithoutModules(t *testing.T) {
	setupWorkspace(t, appManifests)

	_, err := execute(t, newModulesCmd())
	assert.ErrorContains(t, err, "no modules configured")
}

func TestCheckCommand(t *testing.T) {
	setupWorkspace(t, withFiles(map[string]string{
		config.DefaultConfigFileName: modulesConfig,
	}))

	out, err := execute(t, newCheckCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Checked 4 units")
	assert.Contains(t, out, "OK")
}

func TestCheckCommandProblems(t *testing.T) {
	setupWorkspace(t, withFiles(map[string]string{
		"loop/x.yaml": "name: x\nprovides: [x]\nrequires: [y]\n",
		"loop/y.yaml": "name: y\nprovides: [y]\nrequires: [x]\n",
	}))

	out, err := execute(t, newCheckCmd())
	require.Error(t, err)
	assert.Equal(t, ExitCodeDependencyError, getExitCode(err))
	assert.Contains(t, out, "Problems (2):")
	assert.Contains(t, out, "- x: cannot resolve x")
	assert.Contains(t, out, "- y: cannot resolve y")
}

func TestCheckCommandMissingProvider(t *testing.T) {
	setupWorkspace(t, withFiles(map[string]string{
		"broken.yaml": "name: broken\nprovides: [broken]\nrequires: [missing]\n",
	}))

	_, err := execute(t, newCheckCmd())
	require.Error(t, err)
	assert.Equal(t, ExitCodeDependencyError, getExitCode(err))
	assert.ErrorContains(t, err, "missing")
}

func TestOutputOptionsFormatter(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Output = config.OutputConfig{Format: "table", Template: "{{ .ID }}"}

	tests := []struct {
		name string
		opts outputOptions
		want formatting.OutputFormat
	}{
		{name: "configured format", opts: outputOptions{}, want: formatting.FormatTable},
		{name: "flag overrides config", opts: outputOptions{format: "yaml"}, want: formatting.FormatYAML},
		{name: "template flag implies template format", opts: outputOptions{template: "{{ .Kind }}"}, want: formatting.FormatTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tt.opts.formatter(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.GetOptions().Format)
		})
	}

	_, err := (&outputOptions{format: "xml"}).formatter(cfg)
	assert.Error(t, err)
}
