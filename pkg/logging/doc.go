// Package logging provides subsystem-tagged structured logging for loadorder.
//
// This package is a thin layer over Go's standard slog package. Every entry
// carries a subsystem attribute so output can be filtered by component.
//
// # Log Levels
//   - **Debug**: Detailed information for debugging and development
//   - **Info**: General informational messages about application operation
//   - **Warn**: Warning messages that indicate potential issues
//   - **Error**: Error messages for failures and exceptional conditions
//
// # Usage Examples
//
//	// Initialize with Info level logging to stderr
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("CLI", "Resolving %d namespaces", len(args))
//	logging.Debug("Config", "Loaded configuration from %s", configPath)
//	logging.Warn("Planner", "Namespace %s is provided by more than one unit", ns)
//	logging.Error("ManifestLoader", err, "Failed to parse %s", path)
//
// Machine-readable output for CI:
//
//	logging.Init(logging.FormatJSON, logging.LevelDebug, os.Stderr)
//
// # Subsystem Organization
//
//   - **Config**: Configuration loading and validation
//   - **ManifestLoader**: Discovering and parsing unit manifests
//   - **ManifestWatcher**: Watching manifest sources for changes
//   - **Planner**: Building load plans
//   - **CLI**: Command execution
//
// # Thread Safety
//
// Logging functions are safe for concurrent use. Init swaps the logger
// atomically with respect to concurrent log calls.
package logging
