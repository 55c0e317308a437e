package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mateconpizza/neo/internal/config"
	"github.com/mateconpizza/neo/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"s", "set"},
	Short:   "Read and change user preferences",
}

var settingsGetCmd = &cobra.Command{
	Use:       "get KEY",
	Short:     "Print a setting",
	Args:      cobra.ExactArgs(1),
	ValidArgs: settings.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !settings.IsKnown(args[0]) {
			return fmt.Errorf("%w: %q", settings.ErrUnknownKey, args[0])
		}

		v, _ := loadSettings().Get(args[0])
		fmt.Fprintln(cmd.OutOrStdout(), formatSetting(v))

		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:       "set KEY VALUE",
	Short:     "Change a setting; lists are comma separated",
	Args:      cobra.ExactArgs(2),
	ValidArgs: settings.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := loadSettings()
		if err := st.SetFromString(args[0], args[1]); err != nil {
			return err
		}

		v, _ := st.Get(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], formatSetting(v))

		return nil
	},
}

var settingsListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List every setting",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st := loadSettings()
		w := cmd.OutOrStdout()
		if config.App.Flags.JSON {
			return printJSON(w, st.All())
		}

		for _, k := range settings.Keys() {
			v, _ := st.Get(k)
			fmt.Fprintf(w, "%-22s %s\n", k, formatSetting(v))
		}

		return nil
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadSettings().Reset(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "settings restored")

		return nil
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.App.Path.Settings)
	},
}

func formatSetting(v any) string {
	switch l := v.(type) {
	case []string:
		return strings.Join(l, ",")
	case []any:
		parts := make([]string, 0, len(l))
		for _, item := range l {
			parts = append(parts, fmt.Sprint(item))
		}

		return strings.Join(parts, ",")
	}

	return fmt.Sprint(v)
}

func init() {
	settingsListCmd.Flags().BoolVarP(&config.App.Flags.JSON, "json", "j", false, "output JSON")
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd, settingsListCmd, settingsResetCmd, settingsPathCmd)
	Root.AddCommand(settingsCmd)
}
