package main

import (
	"fmt"

	"github.com/jonathan/career-readiness/internal/catalog"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Take practice assessments",
}

var practiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List assessments and your latest scores",
	Args:  cobra.NoArgs,
	RunE:  runPracticeList,
}

var practiceTakeCmd = &cobra.Command{
	Use:   "take <assessment-id>",
	Short: "Take an assessment interactively or grade --answers",
	Long: "Take an assessment. Without --answers each question is shown as a menu; with --answers " +
		"the zero-based option indexes are graded directly. Retaking replaces the earlier result.",
	Args: cobra.ExactArgs(1),
	RunE: runPracticeTake,
}

var practiceAnswers []int

func init() {
	practiceTakeCmd.Flags().IntSliceVar(&practiceAnswers, "answers", nil, "Zero-based option index per question, e.g. 1,0,2,2,1")

	practiceCmd.AddCommand(practiceListCmd, practiceTakeCmd)
	rootCmd.AddCommand(practiceCmd)
}

func runPracticeList(cmd *cobra.Command, _ []string) error {
	for _, a := range catalog.Assessments() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-24s %d questions  %s\n", a.ID, a.Title, len(a.Questions), a.Description)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	printer(cmd).PrintPractice(ws.Store.GetPracticeData(ctxOf(cmd)))
	return nil
}

func runPracticeTake(cmd *cobra.Command, args []string) error {
	assessment, err := catalog.FindAssessment(args[0])
	if err != nil {
		return err
	}

	answers := practiceAnswers
	if !cmd.Flags().Changed("answers") {
		answers, err = askQuestions(assessment)
		if err != nil {
			return err
		}
	}

	attempt, err := ws.CompleteAssessment(ctxOf(cmd), assessment.ID, answers)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d%%\n", assessment.Title, attempt.Score)
	return nil
}

func askQuestions(assessment catalog.Assessment) ([]int, error) {
	answers := make([]int, 0, len(assessment.Questions))
	for i, q := range assessment.Questions {
		prompt := promptui.Select{
			Label: fmt.Sprintf("%d/%d %s", i+1, len(assessment.Questions), q.Text),
			Items: q.Options,
		}
		index, _, err := prompt.Run()
		if err != nil {
			return nil, fmt.Errorf("assessment aborted: %w", err)
		}
		answers = append(answers, index)
	}
	return answers, nil
}
