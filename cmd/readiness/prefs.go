package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-readiness/internal/workspace"
	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print preferences",
	Args:  cobra.NoArgs,
	RunE:  runPrefsShow,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a preference",
	Long: "Change a preference. Keys: " + strings.Join(workspace.PreferenceKeys(), ", ") + ". " +
		"Themes: light, dark, auto. Templates: classic, modern, minimal. " +
		"Colors: teal, navy, burgundy, forest, charcoal.",
	Args: cobra.ExactArgs(2),
	RunE: runPrefsSet,
}

func init() {
	prefsCmd.AddCommand(prefsShowCmd, prefsSetCmd)
	rootCmd.AddCommand(prefsCmd)
}

func runPrefsShow(cmd *cobra.Command, _ []string) error {
	return printJSON(cmd.OutOrStdout(), ws.Store.GetPreferences(ctxOf(cmd)))
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	if err := ws.SetPreference(ctxOf(cmd), args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s\n", strings.ToLower(args[0]), args[1])
	return nil
}
