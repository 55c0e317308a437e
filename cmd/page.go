package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mateconpizza/neo/internal/scheme"
)

var pageOpen bool

var pageCmd = &cobra.Command{
	Use:       "page NAME",
	Short:     "Render an internal page (history, bookmarks, downloads, settings)",
	Args:      cobra.ExactArgs(1),
	ValidArgs: scheme.Pages(),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sh, err := openShell(ctx)
		if err != nil {
			return err
		}
		defer sh.Close()

		name := args[0]
		if n, ok := scheme.ParsePage(name); ok {
			name = n
		}

		if !pageOpen {
			return sh.Page(ctx, name, cmd.OutOrStdout())
		}

		p, err := sh.ShowPage(ctx, name, os.TempDir())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)

		return nil
	},
}

var actionCmd = &cobra.Command{
	Use:   "action NEO-URL",
	Short: "Run an internal action such as neo://clear-history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sh, err := openShell(ctx)
		if err != nil {
			return err
		}
		defer sh.Close()

		a, err := sh.Dispatch(ctx, args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s done\n", a.Name)
		if p := scheme.Page(a); p != "" {
			fmt.Fprintln(w, scheme.PageURL(p))
		}

		return nil
	},
}

func init() {
	pageCmd.Flags().BoolVarP(&pageOpen, "open", "o", false, "write the page to a file and open it")
	Root.AddCommand(pageCmd, actionCmd)
}
