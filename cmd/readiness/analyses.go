package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var analysesCmd = &cobra.Command{
	Use:   "analyses",
	Short: "List or remove stored job description analyses",
}

var analysesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored analyses, newest last",
	Args:  cobra.NoArgs,
	RunE:  runAnalysesList,
}

var analysesRemoveCmd = &cobra.Command{
	Use:   "remove <analysis-id>",
	Short: "Delete a stored analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalysesRemove,
}

func init() {
	addOutputFlag(analysesListCmd)

	analysesCmd.AddCommand(analysesListCmd, analysesRemoveCmd)
	rootCmd.AddCommand(analysesCmd)
}

func runAnalysesList(cmd *cobra.Command, _ []string) error {
	analyses := ws.Store.GetJDAnalyses(ctxOf(cmd))
	if wantJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), analyses)
	}
	if len(analyses) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No analyses yet. Run `readiness analyze` with a job description.")
		return nil
	}
	for _, a := range analyses {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %3d%%  %s\n",
			a.ID, a.AnalyzedAt.Format("2006-01-02"), a.AlignmentScore, a.JobDescription)
	}
	return nil
}

func runAnalysesRemove(cmd *cobra.Command, args []string) error {
	if err := ws.RemoveAnalysis(ctxOf(cmd), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed analysis %s\n", args[0])
	return nil
}
