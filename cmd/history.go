package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mateconpizza/neo/internal/config"
	"github.com/mateconpizza/neo/internal/history"
)

var historyFlags struct {
	limit  int
	search string
	clear  bool
	rm     string
}

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h", "hist"},
	Short:   "List, search or clear the browsing history",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		r, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer r.Close()

		f := historyFlags
		w := cmd.OutOrStdout()

		switch {
		case f.clear:
			if err := r.ClearHistory(ctx); err != nil {
				return err
			}
			fmt.Fprintln(w, "history cleared")

			return nil
		case f.rm != "":
			if err := r.DeleteHistoryEntry(ctx, f.rm); err != nil {
				return err
			}
			fmt.Fprintf(w, "removed %s\n", f.rm)

			return nil
		}

		limit := f.limit
		if limit == 0 {
			limit = config.App.File.Pages.HistoryLimit
		}

		var entries []*history.Entry
		if f.search != "" {
			entries, err = r.SearchHistory(ctx, f.search, limit)
		} else {
			entries, err = r.History(ctx, limit)
		}
		if err != nil {
			return err
		}

		if config.App.Flags.JSON {
			return printJSON(w, entries)
		}

		printHistory(w, entries)

		return nil
	},
}

func printHistory(w io.Writer, entries []*history.Entry) {
	width := lineWidth(28)
	for _, e := range entries {
		fmt.Fprintf(w, "%s %4dx  %s\n", e.LastVisit[:min(len(e.LastVisit), 19)], e.VisitCount, shorten(e.URL, width))
		if e.Title != "" {
			fmt.Fprintf(w, "%27s%s\n", "", shorten(e.Title, width))
		}
	}
}

func init() {
	f := historyCmd.Flags()
	f.IntVarP(&historyFlags.limit, "limit", "n", 0, "max entries (default from config.yml)")
	f.StringVarP(&historyFlags.search, "search", "s", "", "filter by url or title")
	f.BoolVar(&historyFlags.clear, "clear", false, "delete every history entry")
	f.StringVar(&historyFlags.rm, "rm", "", "delete the entry for URL")
	f.BoolVarP(&config.App.Flags.JSON, "json", "j", false, "output JSON")
	historyCmd.MarkFlagsMutuallyExclusive("clear", "rm", "search")
	Root.AddCommand(historyCmd)
}
