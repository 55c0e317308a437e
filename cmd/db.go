package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mateconpizza/neo/internal/config"
	"github.com/mateconpizza/neo/internal/db"
	"github.com/mateconpizza/neo/internal/sys/files"
)

type dbInfo struct {
	Path    string         `json:"path"`
	Size    string         `json:"size"`
	Records map[string]int `json:"records"`
	Backups []string       `json:"backups"`
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database maintenance",
}

var dbInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show database location, size and record counts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		r, err := openExisting()
		if err != nil {
			return err
		}
		defer r.Close()

		info := dbInfo{
			Path:    r.Cfg.Fullpath(),
			Size:    humanize.IBytes(uint64(files.Size(r.Cfg.Fullpath()))),
			Records: make(map[string]int),
		}
		for _, t := range db.Tables() {
			info.Records[string(t)] = r.Count(ctx, t)
		}

		info.Backups, err = r.ListBackups(config.App.Path.Backup)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if config.App.Flags.JSON {
			return printJSON(w, info)
		}

		fmt.Fprintf(w, "path:    %s\nsize:    %s\n", info.Path, info.Size)
		for _, t := range db.Tables() {
			fmt.Fprintf(w, "%-8s %d\n", string(t)+":", info.Records[string(t)])
		}
		fmt.Fprintf(w, "backups: %d\n", len(info.Backups))
		for _, b := range info.Backups {
			fmt.Fprintf(w, "  %s\n", filepath.Base(b))
		}

		return nil
	},
}

var dbVacuumCmd = &cobra.Command{
	Use:   "vacuum",
	Short: "Rebuild the database file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		r, err := openExisting()
		if err != nil {
			return err
		}
		defer r.Close()

		if err := r.Vacuum(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "database vacuumed")

		return nil
	},
}

var dbBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a verified copy of the database to the backup directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		r, err := openExisting()
		if err != nil {
			return err
		}
		defer r.Close()

		p, err := r.Backup(ctx, config.App.Path.Backup)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)

		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Application config file",
}

var configForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write config.yml with the current values",
	RunE: func(cmd *cobra.Command, _ []string) error {
		p := config.App.Path.ConfigFile
		if err := files.MkdirAll(config.App.Path.Data); err != nil {
			return err
		}
		if err := config.WriteFile(p, config.App.File, configForce); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)

		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the application paths and loaded config as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printJSON(cmd.OutOrStdout(), config.App)
	},
}

func init() {
	dbInfoCmd.Flags().BoolVarP(&config.App.Flags.JSON, "json", "j", false, "output JSON")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
	dbCmd.AddCommand(dbInfoCmd, dbVacuumCmd, dbBackupCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd)
	Root.AddCommand(dbCmd, configCmd)
}
