// Package observability renders boxed terminal summaries for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-readiness/internal/catalog"
	"github.com/jonathan/career-readiness/internal/readiness"
	"github.com/jonathan/career-readiness/internal/scoring"
	"github.com/jonathan/career-readiness/internal/store"
	"github.com/jonathan/career-readiness/internal/types"
)

const (
	// boxWidth is the width of every box including borders
	boxWidth = 60
	// maxItemsToShow caps list sections
	maxItemsToShow = 5
	// barWidth is the width of a score bar
	barWidth = 20
)

// Printer writes formatted summaries
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a titled box. Lines longer than the box are cut with "...".
//
//nolint:errcheck // terminal output; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad fits line to the inner width counting runes, so bars and bullets align.
func pad(line string) string {
	width := boxWidth - 4
	if utf8.RuneCountInString(line) > width {
		line = string([]rune(line)[:width-3]) + "..."
	}
	return line + strings.Repeat(" ", width-utf8.RuneCountInString(line))
}

func bar(score int) string {
	filled := max(0, min(barWidth, score*barWidth/100))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// PrintReadiness shows the overall score, its breakdown and recommendations.
func (p *Printer) PrintReadiness(score types.ReadinessScore, recs []readiness.Recommendation) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Overall: %d/100 (%s)\n\n", score.Overall, readiness.CategoryFor(score.Overall))
	b := score.Breakdown
	for _, row := range []struct {
		label string
		value int
	}{
		{"Job match quality", b.JobMatchQuality},
		{"JD skill alignment", b.JDSkillAlignment},
		{"Resume ATS score", b.ResumeATSScore},
		{"Application progress", b.ApplicationProgress},
		{"Practice completion", b.PracticeCompletion},
	} {
		fmt.Fprintf(&sb, "%-21s %s %3d\n", row.label, bar(row.value), row.value)
	}

	if len(recs) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, rec := range recs {
			fmt.Fprintf(&sb, "  • [%s] %s (+%d, try `%s`)\n", rec.Priority, rec.Message, rec.Points, rec.Action)
		}
	}

	p.printBox("CAREER READINESS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintATS shows the ATS score with its category and suggestions.
func (p *Printer) PrintATS(result scoring.ATSResult) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Score: %d/100 (%s)\n", result.Score, scoring.ATSCategory(result.Score))
	fmt.Fprintf(&sb, "%s\n", bar(result.Score))
	if len(result.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		for _, s := range result.Suggestions {
			fmt.Fprintf(&sb, "  • %s\n", s)
		}
	}

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintImprovements lists the top resume improvements, or a note when there are none.
func (p *Printer) PrintImprovements(items []string) {
	if len(items) == 0 {
		p.printBox("TOP IMPROVEMENTS", "Nothing to improve right now.")
		return
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, item)
	}
	p.printBox("TOP IMPROVEMENTS", strings.Join(lines, "\n"))
}

// PrintJobs lists catalog jobs with their match scores.
func (p *Printer) PrintJobs(jobs []catalog.ScoredListing) {
	if len(jobs) == 0 {
		p.printBox("JOBS", "No jobs match the filter.")
		return
	}

	var sb strings.Builder
	for i, job := range jobs {
		saved := ""
		if job.Saved {
			saved = " [saved]"
		}
		fmt.Fprintf(&sb, "#%s  %s - %s%s\n", job.ID, job.Title, job.Company, saved)
		fmt.Fprintf(&sb, "    %s | %s | %s\n", job.Location, job.Type, job.Salary)
		fmt.Fprintf(&sb, "    Match: %d%%", job.MatchScore)
		if len(job.MatchedSkills) > 0 {
			fmt.Fprintf(&sb, " (%s)", strings.Join(job.MatchedSkills, ", "))
		}
		sb.WriteString("\n")
		if i < len(jobs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("JOBS (%d)", len(jobs)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintApplications lists applications with per-status totals.
func (p *Printer) PrintApplications(apps []types.Application) {
	var sb strings.Builder

	counts := types.CountByStatus(apps)
	var totals []string
	for _, status := range types.ApplicationStatuses() {
		if n := counts[status]; n > 0 {
			totals = append(totals, fmt.Sprintf("%s %d", status.Label(), n))
		}
	}
	fmt.Fprintf(&sb, "Total: %d", len(apps))
	if len(totals) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(totals, ", "))
	}
	sb.WriteString("\n")

	for _, app := range apps {
		fmt.Fprintf(&sb, "\n%s - %s [%s]\n", app.Position, app.Company, app.Status.Label())
		fmt.Fprintf(&sb, "  id: %s  applied: %s\n", app.ID, app.AppliedAt.Format("2006-01-02"))
		if app.Notes != "" {
			fmt.Fprintf(&sb, "  notes: %s\n", app.Notes)
		}
	}

	p.printBox("APPLICATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis shows the result of a job description analysis.
func (p *Printer) PrintAnalysis(a types.JDAnalysis) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Alignment: %d%%  %s\n", a.AlignmentScore, bar(a.AlignmentScore))
	writeList(&sb, "Required skills", a.RequiredSkills)
	writeList(&sb, "Matched", a.MatchedSkills)
	writeList(&sb, "Missing", a.MissingSkills)
	writeList(&sb, "Keywords", a.Keywords)
	if a.ID != "" {
		fmt.Fprintf(&sb, "\nid: %s\n", a.ID)
	}

	p.printBox("JOB DESCRIPTION ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s:\n", label)
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
}

// PrintPractice shows completed assessments and the latest score per area.
func (p *Printer) PrintPractice(practice types.PracticeData) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Completed: %d  Total score: %d\n", len(practice.CompletedAssessments), practice.TotalScore)
	taken := make(map[string]bool, len(practice.CompletedAssessments))
	for _, c := range practice.CompletedAssessments {
		taken[c.AssessmentID] = true
	}
	for _, a := range catalog.Assessments() {
		if taken[a.ID] {
			score := practice.SkillScores[a.ID]
			fmt.Fprintf(&sb, "%-24s %s %3d\n", a.Title, bar(score), score)
		} else {
			fmt.Fprintf(&sb, "%-24s not taken\n", a.Title)
		}
	}

	p.printBox("PRACTICE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStats shows what the store currently holds.
func (p *Printer) PrintStats(stats store.Stats) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Resume:                %d bytes\n", stats.ResumeBytes)
	fmt.Fprintf(&sb, "Saved jobs:            %d\n", stats.JobMatches)
	fmt.Fprintf(&sb, "Applications:          %d\n", stats.Applications)
	fmt.Fprintf(&sb, "JD analyses:           %d\n", stats.JDAnalyses)
	fmt.Fprintf(&sb, "Completed assessments: %d\n", stats.CompletedAssessments)
	if stats.LastActivity != nil {
		fmt.Fprintf(&sb, "Last activity:         %s\n", stats.LastActivity.Format("2006-01-02 15:04"))
	}

	p.printBox("STORED DATA", strings.TrimSuffix(sb.String(), "\n"))
}
