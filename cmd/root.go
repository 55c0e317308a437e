// Package cmd is the neo command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/mateconpizza/neo/internal/config"
)

// Root is the neo root command.
var Root = &cobra.Command{
	Use:               config.App.Cmd,
	Short:             config.App.Info.Title,
	Long:              config.App.Info.Desc,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initApp,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Usage()
	},
}

func init() {
	f := config.App.Flags
	Root.PersistentFlags().StringVar(&f.Home, "home", "", "application home (env "+config.App.Env.Home+")")
	Root.PersistentFlags().CountVarP(&f.Verbose, "verbose", "v", "verbosity level (-v info, -vv debug)")
	Root.CompletionOptions.HiddenDefaultCmd = true
}

// initApp sets up logging, paths and config.yml.
func initApp(_ *cobra.Command, _ []string) error {
	config.SetVerbosity(config.App.Flags.Verbose)

	home, err := config.HomePath(config.App.Flags.Home)
	if err != nil {
		return err
	}
	config.SetAppPaths(home)

	f, err := config.LoadFile(config.App.Path.ConfigFile)
	if err != nil {
		slog.Warn("loading config file, using defaults", "path", config.App.Path.ConfigFile, "error", err)
	}
	config.App.File = f

	slog.Debug("application home", "path", home)

	return nil
}

// Execute runs the root command. A panic is logged and exits with status 2.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("unexpected error", "panic", r, "stack", string(debug.Stack()))
			fmt.Fprintf(os.Stderr, "%s: unexpected error: %v\n", config.App.Cmd, r)
			os.Exit(2)
		}
	}()

	if err := Root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", config.App.Cmd, err)
		os.Exit(1)
	}
}
