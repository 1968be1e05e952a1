package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"loadorder/pkg/logging"

	"gopkg.in/yaml.v3"
)

var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

// LoadConfig loads the configuration file at configPath. An empty path means
// loadorder.yaml in the working directory, and a directory means
// loadorder.yaml inside it. A missing file yields the defaults.
func LoadConfig(configPath string) (LoadOrderConfig, error) {
	configFilePath, err := ResolvePath(configPath)
	if err != nil {
		return LoadOrderConfig{}, err
	}

	config := GetDefaultConfig() // Start with default config
	config.Dir = filepath.Dir(configFilePath)

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("Config", "No %s found at %s, using defaults", filepath.Base(configFilePath), configFilePath)
			return config, nil
		}
		return LoadOrderConfig{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}

	if err := decode(data, &config); err != nil {
		// config malformed
		return LoadOrderConfig{}, fmt.Errorf("error loading config from %s: %w", configFilePath, parseError(configFilePath, err))
	}

	if errs := config.Validate(); errs.HasErrors() {
		return LoadOrderConfig{}, FormatValidationError("config", configFilePath, errs)
	}

	logging.Info("Config", "Loaded configuration from %s", configFilePath)
	return config, nil
}

// ResolvePath returns the absolute path of the configuration file LoadConfig
// reads for configPath. The file does not have to exist.
func ResolvePath(configPath string) (string, error) {
	if configPath == "" {
		configPath = DefaultConfigFileName
	}
	info, err := os.Stat(configPath)
	if err == nil && info.IsDir() {
		configPath = filepath.Join(configPath, DefaultConfigFileName)
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("could not resolve config path %s: %w", configPath, err)
	}
	return abs, nil
}

// decode overlays data on config. Unknown keys are rejected so typos do not
// silently fall back to defaults.
func decode(data []byte, config *LoadOrderConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func parseError(path string, err error) ConfigurationError {
	ce := NewConfigurationErrorWithDetails(path, filepath.Base(path), "parse",
		"failed to parse YAML", err.Error(),
		[]string{"Check the YAML syntax", "Compare the keys against the documented configuration"})
	if m := yamlLinePattern.FindStringSubmatch(err.Error()); m != nil {
		ce.LineNumber, _ = strconv.Atoi(m[1])
	}
	return ce
}

// SourcePaths returns the configured sources with relative paths resolved
// against the configuration directory.
func (c LoadOrderConfig) SourcePaths() []string {
	paths := make([]string, 0, len(c.Sources))
	for _, src := range c.Sources {
		if filepath.IsAbs(src) || c.Dir == "" {
			paths = append(paths, filepath.Clean(src))
			continue
		}
		paths = append(paths, filepath.Join(c.Dir, src))
	}
	return paths
}
