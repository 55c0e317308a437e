package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mateconpizza/neo/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), prettyVersion())
	},
}

func init() {
	Root.AddCommand(versionCmd)
}

func prettyVersion() string {
	return fmt.Sprintf("%s v%s %s/%s", config.App.Name, config.Version(), runtime.GOOS, runtime.GOARCH)
}
