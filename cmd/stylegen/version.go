package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is overridden by release builds with
// -ldflags "-X main.version=<tag>". Otherwise the module version recorded
// by go install is used.
var version = "dev"

func resolveVersion(info *debug.BuildInfo, ok bool) string {
	if version != "dev" || !ok || info == nil {
		return version
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	return version
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the stylegen version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "stylegen %s\n", resolveVersion(debug.ReadBuildInfo()))
	},
}
