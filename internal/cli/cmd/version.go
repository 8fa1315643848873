package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/atelo/atelo/internal/domain/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		info := buildInfo
		if info.Version == "" {
			info.Version = "dev"
		}
		if info.GoVersion == "" {
			info.GoVersion = runtime.Version()
		}

		fmt.Printf("atelo %s\n", info.Version)
		if info.Commit != "" {
			fmt.Printf("  commit: %s\n", info.Commit)
		}
		if info.BuildDate != "" {
			fmt.Printf("  built:  %s\n", info.BuildDate)
		}
		fmt.Printf("  go:     %s\n", info.GoVersion)
		fmt.Printf("  source: %s\n", build.RepoURL())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
