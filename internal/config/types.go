package config

// LoadOrderConfig is the top-level configuration structure for loadorder.
type LoadOrderConfig struct {
	Sources      []string       `yaml:"sources,omitempty"`      // Manifest files or directories to load units from
	CommonModule string         `yaml:"commonModule,omitempty"` // Hoist target when two modules share no ancestor (default: common)
	BaseList     []string       `yaml:"baseList,omitempty"`     // Namespaces whose providers always come first
	Exclude      []string       `yaml:"exclude,omitempty"`      // Unit ID glob patterns left out of namespace lookup
	Modules      []ModuleConfig `yaml:"modules,omitempty"`
	Output       OutputConfig   `yaml:"output,omitempty"`
	LogLevel     string         `yaml:"logLevel,omitempty"` // debug, info, warn or error (default: info)

	// Dir is the directory the configuration was loaded from. Relative
	// sources are resolved against it.
	Dir string `yaml:"-"`
}

// ModuleConfig declares one module of the partition.
type ModuleConfig struct {
	Name       string   `yaml:"name"`
	DependsOn  []string `yaml:"dependsOn,omitempty"`
	Namespaces []string `yaml:"namespaces,omitempty"`
}

// OutputConfig holds output defaults that command-line flags override.
type OutputConfig struct {
	Format   string `yaml:"format,omitempty"`   // console, json, yaml, table or template
	Template string `yaml:"template,omitempty"` // Go template used by the template format
}
