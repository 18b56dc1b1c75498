package main

import (
	"github.com/jonathan/career-readiness/internal/readiness"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show your career readiness score",
	Args:  cobra.NoArgs,
	RunE:  runScore,
}

var scoreRecalc bool

func init() {
	scoreCmd.Flags().BoolVar(&scoreRecalc, "recalc", false, "Recalculate from current data instead of showing the cached score")
	addOutputFlag(scoreCmd)

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	score, err := ws.Readiness(ctxOf(cmd), scoreRecalc)
	if err != nil {
		return err
	}
	recs := readiness.Recommendations(score.Breakdown)

	if wantJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), struct {
			Overall         int                        `json:"overall"`
			Category        readiness.Category         `json:"category"`
			Breakdown       any                        `json:"breakdown"`
			Recommendations []readiness.Recommendation `json:"recommendations"`
		}{score.Overall, readiness.CategoryFor(score.Overall), score.Breakdown, recs})
	}
	printer(cmd).PrintReadiness(score, recs)
	return nil
}
