// Package main provides the readiness CLI: a local job-search workspace that tracks a
// resume, saved jobs, applications, job description analyses and practice assessments,
// and keeps a career readiness score up to date.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	// post-run hooks are skipped when a command fails
	_ = closeWorkspace(nil, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
