package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-readiness/internal/types"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Track job applications",
}

var applyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new application",
	Args:  cobra.NoArgs,
	RunE:  runApplyAdd,
}

var applyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List applications with per-status totals",
	Args:  cobra.NoArgs,
	RunE:  runApplyList,
}

var applyStatusCmd = &cobra.Command{
	Use:   "status <application-id> <status>",
	Short: "Move an application to a new status",
	Long:  "Move an application to a new status. Valid statuses: applied, screening, interview, offer, accepted, rejected.",
	Args:  cobra.ExactArgs(2),
	RunE:  runApplyStatus,
}

var applyNotesCmd = &cobra.Command{
	Use:   "notes <application-id> <text>...",
	Short: "Replace the notes of an application",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runApplyNotes,
}

var applyRemoveCmd = &cobra.Command{
	Use:   "remove <application-id>",
	Short: "Delete an application",
	Args:  cobra.ExactArgs(1),
	RunE:  runApplyRemove,
}

var (
	applyCompany  string
	applyPosition string
	applyLocation string
	applySalary   string
	applyNotes    string
)

func init() {
	applyAddCmd.Flags().StringVar(&applyCompany, "company", "", "Company name (required)")
	applyAddCmd.Flags().StringVar(&applyPosition, "position", "", "Position title (required)")
	applyAddCmd.Flags().StringVar(&applyLocation, "location", "", "Job location")
	applyAddCmd.Flags().StringVar(&applySalary, "salary", "", "Salary range")
	applyAddCmd.Flags().StringVar(&applyNotes, "notes", "", "Free-form notes")

	if err := applyAddCmd.MarkFlagRequired("company"); err != nil {
		panic(fmt.Sprintf("failed to mark company flag as required: %v", err))
	}
	if err := applyAddCmd.MarkFlagRequired("position"); err != nil {
		panic(fmt.Sprintf("failed to mark position flag as required: %v", err))
	}

	addOutputFlag(applyListCmd)

	applyCmd.AddCommand(applyAddCmd, applyListCmd, applyStatusCmd, applyNotesCmd, applyRemoveCmd)
	rootCmd.AddCommand(applyCmd)
}

func runApplyAdd(cmd *cobra.Command, _ []string) error {
	app, err := ws.AddApplication(ctxOf(cmd), types.Application{
		Company:  applyCompany,
		Position: applyPosition,
		Location: applyLocation,
		Salary:   applySalary,
		Notes:    applyNotes,
	})
	if err != nil {
		return fmt.Errorf("invalid application: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded application %s: %s at %s\n", app.ID, app.Position, app.Company)
	return nil
}

func runApplyList(cmd *cobra.Command, _ []string) error {
	apps := ws.Store.GetApplications(ctxOf(cmd))
	if wantJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), apps)
	}
	printer(cmd).PrintApplications(apps)
	return nil
}

func runApplyStatus(cmd *cobra.Command, args []string) error {
	status, err := types.ParseApplicationStatus(args[1])
	if err != nil {
		return err
	}
	if err := ws.UpdateApplicationStatus(ctxOf(cmd), args[0], status); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Application %s is now %s\n", args[0], status.Label())
	return nil
}

func runApplyNotes(cmd *cobra.Command, args []string) error {
	if err := ws.UpdateApplicationNotes(ctxOf(cmd), args[0], strings.Join(args[1:], " ")); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated notes for %s\n", args[0])
	return nil
}

func runApplyRemove(cmd *cobra.Command, args []string) error {
	if err := ws.RemoveApplication(ctxOf(cmd), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed application %s\n", args[0])
	return nil
}
