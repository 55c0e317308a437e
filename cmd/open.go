package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mateconpizza/neo/internal/settings"
	"github.com/mateconpizza/neo/internal/sys/terminal"
)

var openCmd = &cobra.Command{
	Use:   "open [INPUT...]",
	Short: "Resolve address-bar input and open it in the system browser",
	Long: `Resolve address-bar input and open it in the system browser.

Each argument is one address: a URL, a host such as example.com, an
internal page such as neo://history, or search terms. With no arguments,
addresses are read one per line from stdin when it is piped; otherwise
the startup tabs (the last session or the homepage) are opened.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sh, err := openShell(ctx)
		if err != nil {
			return err
		}
		defer sh.Close()

		inputs := args
		switch {
		case len(inputs) > 0:
		case terminal.IsPiped():
			inputs, err = readLines(cmd.InOrStdin())
			if err != nil {
				return err
			}
		default:
			inputs = sh.StartupTabs()
		}

		w := cmd.OutOrStdout()
		for _, in := range inputs {
			u, err := sh.Open(ctx, in, "", os.TempDir())
			if err != nil {
				return err
			}
			fmt.Fprintln(w, u)
		}

		return nil
	},
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Save or show the tabs restored on startup",
}

var sessionSaveCmd = &cobra.Command{
	Use:   "save [URL...]",
	Short: "Store the open tabs; internal pages are left out",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sh, err := openShell(ctx)
		if err != nil {
			return err
		}
		defer sh.Close()

		urls := args
		if len(urls) == 0 && terminal.IsPiped() {
			urls, err = readLines(cmd.InOrStdin())
			if err != nil {
				return err
			}
		}

		sh.SaveSession(urls)
		fmt.Fprintf(cmd.OutOrStdout(), "session saved (%d tabs)\n", len(sh.Settings().Strings(settings.KeyLastSessionTabs)))

		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the tabs that would open on startup",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		sh, err := openShell(ctx)
		if err != nil {
			return err
		}
		defer sh.Close()

		for _, u := range sh.StartupTabs() {
			fmt.Fprintln(cmd.OutOrStdout(), u)
		}

		return nil
	},
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}

	return lines, nil
}

func init() {
	sessionCmd.AddCommand(sessionSaveCmd, sessionShowCmd)
	Root.AddCommand(openCmd, sessionCmd)
}
