package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mateconpizza/neo/internal/config"
	"github.com/mateconpizza/neo/internal/download"
)

var downloadFailed bool

var downloadCmd = &cobra.Command{
	Use:     "download",
	Aliases: []string{"dl"},
	Short:   "Track downloads reported by the engine",
}

var downloadBeginCmd = &cobra.Command{
	Use:   "begin URL [NAME]",
	Short: "Register a new download and print its id and target path",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sh, err := openShell(ctx)
		if err != nil {
			return err
		}
		defer sh.Close()

		var name string
		if len(args) > 1 {
			name = args[1]
		}

		id, p := sh.DownloadStarted(ctx, args[0], name)
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", id, p)

		return nil
	},
}

var downloadProgressCmd = &cobra.Command{
	Use:   "progress ID RECEIVED TOTAL",
	Short: "Report bytes received",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		nums, err := parseInts(args)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		r, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer r.Close()

		rec, err := r.UpdateDownloadProgress(ctx, nums[0], nums[1], nums[2])
		if err != nil {
			return err
		}
		printDownload(cmd, rec)

		return nil
	},
}

var downloadFinishCmd = &cobra.Command{
	Use:   "finish ID",
	Short: "Mark a download completed, or failed with --failed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nums, err := parseInts(args)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		r, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer r.Close()

		rec, err := r.FinishDownload(ctx, nums[0], !downloadFailed)
		if err != nil {
			return err
		}
		printDownload(cmd, rec)

		return nil
	},
}

var downloadCancelCmd = &cobra.Command{
	Use:   "cancel ID",
	Short: "Mark a download canceled",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nums, err := parseInts(args)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		r, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer r.Close()

		rec, err := r.CancelDownload(ctx, nums[0])
		if err != nil {
			return err
		}
		printDownload(cmd, rec)

		return nil
	},
}

var downloadListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List downloads, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		r, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer r.Close()

		ds, err := r.Downloads(ctx)
		if err != nil {
			return err
		}

		if config.App.Flags.JSON {
			return printJSON(cmd.OutOrStdout(), ds)
		}

		for _, d := range ds {
			printDownload(cmd, d)
		}

		return nil
	},
}

func printDownload(cmd *cobra.Command, d *download.Record) {
	fmt.Fprintf(cmd.OutOrStdout(), "%4d  %-11s %3d%%  %9s  %s\n",
		d.ID, d.Status, d.Percent(), download.FormatSize(d.Size), shorten(d.Filename, lineWidth(36)))
}

func parseInts(args []string) ([]int64, error) {
	nums := make([]int64, 0, len(args))
	for _, a := range args {
		n, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", a, err)
		}
		nums = append(nums, n)
	}

	return nums, nil
}

func init() {
	downloadFinishCmd.Flags().BoolVar(&downloadFailed, "failed", false, "mark the download failed")
	downloadListCmd.Flags().BoolVarP(&config.App.Flags.JSON, "json", "j", false, "output JSON")
	downloadCmd.AddCommand(downloadBeginCmd, downloadProgressCmd, downloadFinishCmd, downloadCancelCmd, downloadListCmd)
	Root.AddCommand(downloadCmd)
}
