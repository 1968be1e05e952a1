package cmd

import (
	"errors"
	"os"

	"loadorder/internal/dependency"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (invalid arguments, unreadable
	// manifests, bad configuration).
	ExitCodeError = 1
	// ExitCodeDependencyError indicates the dependency graph itself is
	// broken: a missing provider, a cycle between units or between modules.
	ExitCodeDependencyError = 2
)

var (
	// configPath is the configuration file or directory given with --config.
	configPath string
	// debug enables debug logging regardless of the configured log level.
	debug bool
)

// rootCmd represents the base command for the loadorder application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "loadorder",
	Short: "Compute load orders for units with namespace dependencies",
	Long: `loadorder reads unit manifests, each declaring the namespaces it provides
and requires, and computes an order in which every unit comes after the units
it depends on. It can also partition units into modules, hoisting shared
units into the lowest module every user depends on.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "loadorder version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var failed *checkFailedError
	if errors.As(err, &failed) {
		if failed.dependency {
			return ExitCodeDependencyError
		}
		return ExitCodeError
	}

	if dependency.IsDependencyError(err) {
		return ExitCodeDependencyError
	}

	// Default to general error
	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file or directory (default: ./loadorder.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newModulesCmd())
	rootCmd.AddCommand(newCheckCmd())
}
