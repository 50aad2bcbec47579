package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bnema/tabdock/internal/domain/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run: func(cmd *cobra.Command, _ []string) {
		writeVersion(cmd.OutOrStdout(), buildInfo)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func writeVersion(out io.Writer, info build.Info) {
	_, _ = fmt.Fprintf(out, "tabdock %s\n", info.Short())
	if info.Commit != "" {
		_, _ = fmt.Fprintf(out, "  commit:  %s\n", info.Commit)
	}
	if info.BuildDate != "" {
		_, _ = fmt.Fprintf(out, "  built:   %s\n", info.BuildDate)
	}
	_, _ = fmt.Fprintf(out, "  go:      %s\n", info.GoVersion)
	_, _ = fmt.Fprintf(out, "  repo:    %s\n", build.RepoURL)
}
