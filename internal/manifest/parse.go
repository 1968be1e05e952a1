package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// Kind identifies a manifest format.
type Kind string

const (
	KindYAML    Kind = "yaml"
	KindHCL     Kind = "hcl"
	KindClosure Kind = "closure"
)

// ErrUnsupported is returned for files whose extension maps to no format.
var ErrUnsupported = errors.New("unsupported manifest type")

// KindOf returns the manifest format of path, judged by its extension.
func KindOf(path string) (Kind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return KindYAML, true
	case ".hcl":
		return KindHCL, true
	case ".js":
		return KindClosure, true
	default:
		return "", false
	}
}

// FileParser reads manifest files from disk.
type FileParser struct{}

// Parse reads and parses the manifest at path.
func (FileParser) Parse(path string) (*Unit, error) {
	return ParseFile(path)
}

// ParseFile reads and parses the manifest at path.
func ParseFile(path string) (*Unit, error) {
	kind, ok := KindOf(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return Parse(kind, path, data)
}

// Parse parses data as a manifest of the given kind. path becomes the unit's
// resource and, where the format has no name of its own, its name.
func Parse(kind Kind, path string, data []byte) (*Unit, error) {
	var (
		u   *Unit
		err error
	)
	switch kind {
	case KindYAML:
		u, err = parseYAML(path, data)
	case KindHCL:
		u, err = parseHCL(path, data)
	case KindClosure:
		u = parseClosure(path, data)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
	if err != nil {
		return nil, err
	}
	u.Path = path
	u.Provided = dedupe(u.Provided)
	u.Required = dedupe(u.Required)
	return u, nil
}

// parseYAML decodes a YAML manifest. A manifest without a name is named
// after its path, so same-named files in different directories stay apart.
func parseYAML(path string, data []byte) (*Unit, error) {
	var u Unit
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&u); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML manifest %s: %w", path, err)
	}
	if u.Name == "" {
		u.Name = path
	}
	return &u, nil
}

// hclManifestFile is the top-level structure of an HCL manifest.
type hclManifestFile struct {
	Units []*hclUnit `hcl:"unit,block"`
}

type hclUnit struct {
	Name     string   `hcl:"name,label"`
	Provides []string `hcl:"provides,optional"`
	Requires []string `hcl:"requires,optional"`
}

func parseHCL(path string, data []byte) (*Unit, error) {
	// hclparse.Parser caches files and is not safe for concurrent use.
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL manifest %s: %w", path, diags)
	}

	var parsed hclManifestFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL manifest %s: %w", path, diags)
	}
	if len(parsed.Units) != 1 {
		return nil, fmt.Errorf("HCL manifest %s must declare exactly one unit block, found %d", path, len(parsed.Units))
	}

	block := parsed.Units[0]
	return &Unit{
		Name:     block.Name,
		Provided: block.Provides,
		Required: block.Requires,
	}, nil
}

var closurePattern = regexp.MustCompile(`(?m)^\s*(?:(?:var|let|const)\s+(?:[\w$]+|\{[^}]*\})\s*=\s*)?goog\.(provide|module|require)\(\s*['"]([\w.$]+)['"]\s*\)`)

// parseClosure scans Closure Library style sources. goog.provide and
// goog.module calls are provides, goog.require calls are requires. The unit
// is named after its path.
func parseClosure(path string, data []byte) *Unit {
	u := &Unit{Name: path}
	for _, m := range closurePattern.FindAllSubmatch(data, -1) {
		ns := string(m[2])
		switch string(m[1]) {
		case "provide", "module":
			u.Provided = append(u.Provided, ns)
		case "require":
			u.Required = append(u.Required, ns)
		}
	}
	return u
}

// dedupe drops repeated entries, keeping first-seen order.
func dedupe(values []string) []string {
	if len(values) < 2 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := values[:0:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
