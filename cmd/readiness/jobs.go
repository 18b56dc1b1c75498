package main

import (
	"fmt"

	"github.com/jonathan/career-readiness/internal/catalog"
	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse the job catalog and manage saved jobs",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog jobs scored against your resume",
	Args:  cobra.NoArgs,
	RunE:  runJobsList,
}

var jobsSaveCmd = &cobra.Command{
	Use:   "save <job-id>...",
	Short: "Save catalog jobs to your job matches",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runJobsSave,
}

var jobsRemoveCmd = &cobra.Command{
	Use:   "remove <job-id>",
	Short: "Remove a saved job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsRemove,
}

var (
	jobsSearch string
	jobsRemote bool
	jobsSaved  bool
)

func init() {
	jobsListCmd.Flags().StringVarP(&jobsSearch, "search", "s", "", "Filter by title, company or skill")
	jobsListCmd.Flags().BoolVar(&jobsRemote, "remote", false, "Only remote jobs")
	jobsListCmd.Flags().BoolVar(&jobsSaved, "saved", false, "Only saved jobs")
	addOutputFlag(jobsListCmd)

	jobsCmd.AddCommand(jobsListCmd, jobsSaveCmd, jobsRemoveCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runJobsList(cmd *cobra.Command, _ []string) error {
	ctx := ctxOf(cmd)
	resume := ws.Store.GetResume(ctx)
	jobs := catalog.Browse(&resume, ws.Store.GetJobMatches(ctx), catalog.Filter{
		Search:     jobsSearch,
		SavedOnly:  jobsSaved,
		RemoteOnly: jobsRemote,
	})
	if wantJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), jobs)
	}
	printer(cmd).PrintJobs(jobs)
	return nil
}

func runJobsSave(cmd *cobra.Command, args []string) error {
	for _, id := range args {
		match, inserted, err := ws.SaveJob(ctxOf(cmd), id)
		if err != nil {
			return err
		}
		if inserted {
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s at %s (match %d%%)\n", match.Title, match.Company, match.MatchScore)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s at %s is already saved\n", match.Title, match.Company)
		}
	}
	return nil
}

func runJobsRemove(cmd *cobra.Command, args []string) error {
	if err := ws.RemoveJob(ctxOf(cmd), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed saved job %s\n", args[0])
	return nil
}
