package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mateconpizza/neo/internal/scraper"
	"github.com/mateconpizza/neo/internal/sys/terminal"
)

var visitFetch bool

var visitCmd = &cobra.Command{
	Use:   "visit URL [TITLE]",
	Short: "Record a finished page load in the history",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sh, err := openShell(ctx)
		if err != nil {
			return err
		}
		defer sh.Close()

		u := sh.Resolve(args[0])
		title := parseTitle(args[1:])
		if title == "" && visitFetch {
			var opts []scraper.OptFn
			if terminal.IsTerminal(os.Stdout) {
				opts = append(opts, scraper.WithSpinner())
			}

			title, err = scraper.Title(ctx, u, opts...)
			if err != nil {
				slog.Warn("fetching title", "url", u, "error", err)
			}
		}

		sh.OnLoadFinished(ctx, u, title, true)
		fmt.Fprintln(cmd.OutOrStdout(), u)

		return nil
	},
}

func init() {
	visitCmd.Flags().BoolVarP(&visitFetch, "fetch", "f", false, "fetch the page title when none is given")
	Root.AddCommand(visitCmd)
}
