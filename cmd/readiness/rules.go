package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and run automation rules",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List automation rules and their trigger events",
	Args:  cobra.NoArgs,
	RunE:  runRulesList,
}

var rulesTriggerCmd = &cobra.Command{
	Use:   "trigger <rule-id>",
	Short: "Run a rule now without its trigger event",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesTrigger,
}

func init() {
	addOutputFlag(rulesListCmd)

	rulesCmd.AddCommand(rulesListCmd, rulesTriggerCmd)
	rootCmd.AddCommand(rulesCmd)
}

func runRulesList(cmd *cobra.Command, _ []string) error {
	rules := ws.Engine.Rules()
	if wantJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), rules)
	}
	for _, r := range rules {
		fmt.Fprintf(cmd.OutOrStdout(), "%-36s %-28s %s\n", r.ID, r.Trigger, r.Description)
	}
	return nil
}

func runRulesTrigger(cmd *cobra.Command, args []string) error {
	if !ws.Engine.Trigger(ctxOf(cmd), args[0]) {
		return fmt.Errorf("unknown rule %q", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Ran %s\n", args[0])
	return nil
}
