package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mateconpizza/neo/internal/config"
)

var bookmarkCmd = &cobra.Command{
	Use:     "bookmark",
	Aliases: []string{"b", "bm"},
	Short:   "Manage bookmarks",
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add URL [TITLE]",
	Short: "Add or refresh a bookmark",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		r, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer r.Close()

		if err := r.AddBookmark(ctx, args[0], parseTitle(args[1:])); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "bookmarked %s\n", args[0])

		return nil
	},
}

var bookmarkRmCmd = &cobra.Command{
	Use:     "rm URL",
	Aliases: []string{"remove"},
	Short:   "Remove a bookmark",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		r, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer r.Close()

		if err := r.RemoveBookmark(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])

		return nil
	},
}

var bookmarkToggleCmd = &cobra.Command{
	Use:   "toggle URL [TITLE]",
	Short: "Bookmark URL, or remove it when already bookmarked",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sh, err := openShell(ctx)
		if err != nil {
			return err
		}
		defer sh.Close()

		state := "removed"
		if sh.ToggleBookmark(ctx, args[0], parseTitle(args[1:])) {
			state = "bookmarked"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, args[0])

		return nil
	},
}

var bookmarkHasCmd = &cobra.Command{
	Use:   "has URL",
	Short: "Report whether URL is bookmarked",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sh, err := openShell(ctx)
		if err != nil {
			return err
		}
		defer sh.Close()

		fmt.Fprintln(cmd.OutOrStdout(), sh.IsBookmarked(ctx, args[0]))

		return nil
	},
}

var bookmarkListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List bookmarks, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		r, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer r.Close()

		bs, err := r.Bookmarks(ctx)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if config.App.Flags.JSON {
			return printJSON(w, bs)
		}

		width := lineWidth(6)
		for _, b := range bs {
			fmt.Fprintf(w, "%4d  %s\n", b.ID, shorten(b.DisplayTitle(), width))
			fmt.Fprintf(w, "      %s\n", shorten(b.URL, width))
		}

		return nil
	},
}

func init() {
	bookmarkListCmd.Flags().BoolVarP(&config.App.Flags.JSON, "json", "j", false, "output JSON")
	bookmarkCmd.AddCommand(bookmarkAddCmd, bookmarkRmCmd, bookmarkToggleCmd, bookmarkHasCmd, bookmarkListCmd)
	Root.AddCommand(bookmarkCmd)
}
