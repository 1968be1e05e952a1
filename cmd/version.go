package cmd

import (
	"fmt"
	"io"
	rdebug "runtime/debug"

	"github.com/spf13/cobra"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = rdebug.ReadBuildInfo

func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of loadorder",
		Long: `Print the loadorder version along with the Go toolchain and VCS
revision the binary was built from.

Use --short to print only the version number.`,
		Run: func(cmd *cobra.Command, args []string) {
			info, _ := readBuildInfo()
			writeVersion(cmd.OutOrStdout(), rootCmd.Version, info, short)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version number")
	return cmd
}

// writeVersion prints version, falling back to the module version recorded
// in info when none was set at link time.
func writeVersion(w io.Writer, version string, info *rdebug.BuildInfo, short bool) {
	if version == "" && info != nil {
		version = info.Main.Version
	}
	if version == "" {
		version = "unknown"
	}
	fmt.Fprintf(w, "loadorder version %s\n", version)
	if short || info == nil {
		return
	}

	fmt.Fprintf(w, "  go:       %s\n", info.GoVersion)
	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	if rev := settings["vcs.revision"]; rev != "" {
		if settings["vcs.modified"] == "true" {
			rev += " (modified)"
		}
		fmt.Fprintf(w, "  revision: %s\n", rev)
	}
	if at := settings["vcs.time"]; at != "" {
		fmt.Fprintf(w, "  built:    %s\n", at)
	}
	fmt.Fprintf(w, "  platform: %s/%s\n", settings["GOOS"], settings["GOARCH"])
}
