package config

const (
	// DefaultConfigFileName is looked up in the working directory when no
	// configuration path is given.
	DefaultConfigFileName = "loadorder.yaml"

	// DefaultCommonModule is the fallback hoist target.
	DefaultCommonModule = "common"

	// DefaultOutputFormat is used when neither the configuration nor a flag
	// selects a format.
	DefaultOutputFormat = "console"
)

// OutputFormats lists the accepted output.format values.
var OutputFormats = []string{"console", "json", "yaml", "table", "template"}

// GetDefaultConfig returns the default configuration: units are loaded from
// the current directory and nothing is placed first or excluded.
func GetDefaultConfig() LoadOrderConfig {
	return LoadOrderConfig{
		Sources:      []string{"."},
		CommonModule: DefaultCommonModule,
		Output: OutputConfig{
			Format: DefaultOutputFormat,
		},
		LogLevel: "info",
		Dir:      ".",
	}
}
