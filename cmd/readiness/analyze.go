package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/career-readiness/internal/automation"
	"github.com/jonathan/career-readiness/internal/fetch"
	"github.com/jonathan/career-readiness/internal/types"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Analyze a job description against your resume",
	Long: `Analyze a job description against your resume and store the result.

The description is read from the arguments, from --file (use - for stdin), or downloaded
from one or more --url postings. Greenhouse, Lever, Workday, Ashby and SmartRecruiters
pages are recognized; --browser renders script-heavy pages in headless Chrome.`,
	RunE: runAnalyze,
}

var (
	analyzeFile    string
	analyzeURLs    []string
	analyzeBrowser bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Read the job description from a file (- for stdin)")
	analyzeCmd.Flags().StringSliceVar(&analyzeURLs, "url", nil, "Job posting URL (repeatable)")
	analyzeCmd.Flags().BoolVar(&analyzeBrowser, "browser", false, "Render short pages in a headless browser (requires Chrome)")
	addOutputFlag(analyzeCmd)

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := ctxOf(cmd)

	sources := 0
	for _, set := range []bool{len(args) > 0, analyzeFile != "", len(analyzeURLs) > 0} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return fmt.Errorf("provide the job description as text, --file or --url (exactly one)")
	}

	var analyses []types.JDAnalysis
	var analyzeErr error
	switch {
	case len(analyzeURLs) > 0:
		opts := cfg.FetchOptions()
		opts.UseBrowser = opts.UseBrowser || analyzeBrowser
		fetcher := fetch.New(opts, log.Named("fetch"))
		defer fetcher.Close()
		analyses, analyzeErr = ws.AnalyzeURLs(ctx, fetcher, analyzeURLs)
	default:
		text, err := readDescription(cmd, args)
		if err != nil {
			return err
		}
		stored, err := ws.AnalyzeJobDescription(ctx, text)
		if err != nil {
			return err
		}
		analyses = []types.JDAnalysis{stored}
	}

	if wantJSON(cmd) {
		if err := printJSON(cmd.OutOrStdout(), analyses); err != nil {
			return err
		}
		return analyzeErr
	}

	resume := ws.Store.GetResume(ctx)
	for i := range analyses {
		printer(cmd).PrintAnalysis(analyses[i])
		for _, s := range automation.Suggestions(&analyses[i], &resume) {
			fmt.Fprintf(cmd.OutOrStdout(), "Suggestion: %s\n", s.Message)
		}
	}
	return analyzeErr
}

func readDescription(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if analyzeFile == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(analyzeFile)
	if err != nil {
		return "", fmt.Errorf("failed to read job description file: %w", err)
	}
	return string(data), nil
}
