package scoring

import (
	"fmt"

	"github.com/jonathan/career-readiness/internal/types"
)

const (
	// SummaryMinWords is the word count a summary must exceed to earn its points
	SummaryMinWords = 10
	// MinSkills is the total skill count that earns the skills points
	MinSkills = 5
	// MaxSuggestions is the number of ATS suggestions returned
	MaxSuggestions = 5
	// MaxScore is the ATS score ceiling
	MaxScore = 100
)

// Category is a coarse label for an ATS score
type Category string

const (
	CategoryStrong       Category = "Strong Resume"
	CategoryGettingThere Category = "Getting There"
	CategoryNeedsWork    Category = "Needs Work"
)

// ATSResult is the outcome of CalculateATSScore
type ATSResult struct {
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
}

type atsCheck struct {
	points     int
	passed     func(r *types.Resume) bool
	suggestion func(r *types.Resume) string
}

func fixed(s string) func(*types.Resume) string {
	return func(*types.Resume) string { return s }
}

// atsChecks is evaluated in order; suggestions keep this order.
var atsChecks = []atsCheck{
	{
		points:     10,
		passed:     func(r *types.Resume) bool { return r.PersonalInfo.Name != "" },
		suggestion: fixed("Add your name (+10 points)"),
	},
	{
		points:     10,
		passed:     func(r *types.Resume) bool { return r.PersonalInfo.Email != "" },
		suggestion: fixed("Add your email (+10 points)"),
	},
	{
		points:     10,
		passed:     func(r *types.Resume) bool { return wordCount(r.Summary) > SummaryMinWords },
		suggestion: fixed("Add a professional summary (+10 points)"),
	},
	{
		points: 15,
		passed: func(r *types.Resume) bool {
			for _, e := range r.Experience {
				if e.Description != "" {
					return true
				}
			}
			return false
		},
		suggestion: fixed("Add work experience with descriptions (+15 points)"),
	},
	{
		points:     10,
		passed:     func(r *types.Resume) bool { return len(r.Education) > 0 },
		suggestion: fixed("Add education (+10 points)"),
	},
	{
		points: 10,
		passed: func(r *types.Resume) bool { return r.Skills.Count() >= MinSkills },
		suggestion: func(r *types.Resume) string {
			return fmt.Sprintf("Add more skills (%d more for +10 points)", MinSkills-r.Skills.Count())
		},
	},
	{
		points:     10,
		passed:     func(r *types.Resume) bool { return len(r.Projects) > 0 },
		suggestion: fixed("Add a project (+10 points)"),
	},
	{
		points:     5,
		passed:     func(r *types.Resume) bool { return r.PersonalInfo.Phone != "" },
		suggestion: fixed("Add phone number (+5 points)"),
	},
	{
		points:     5,
		passed:     func(r *types.Resume) bool { return r.Links.LinkedIn != "" },
		suggestion: fixed("Add LinkedIn URL (+5 points)"),
	},
	{
		points:     5,
		passed:     func(r *types.Resume) bool { return r.Links.GitHub != "" },
		suggestion: fixed("Add GitHub URL (+5 points)"),
	},
	{
		points:     10,
		passed:     func(r *types.Resume) bool { return containsActionVerb(r.Summary) },
		suggestion: fixed("Use action verbs in summary (built, led, designed...) (+10 points)"),
	},
}

// CalculateATSScore scores a resume with additive checks, clamped to [0, 100].
// Suggestions name the points of each failed check, in evaluation order, capped at MaxSuggestions.
func CalculateATSScore(resume *types.Resume) ATSResult {
	if resume == nil {
		empty := types.NewResume()
		resume = &empty
	}

	score := 0
	suggestions := []string{}
	for _, check := range atsChecks {
		if check.passed(resume) {
			score += check.points
			continue
		}
		suggestions = append(suggestions, check.suggestion(resume))
	}

	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}

	return ATSResult{
		Score:       clamp(score, 0, MaxScore),
		Suggestions: suggestions,
	}
}

// ATSCategory maps an ATS score to its label.
func ATSCategory(score int) Category {
	switch {
	case score >= 71:
		return CategoryStrong
	case score >= 41:
		return CategoryGettingThere
	default:
		return CategoryNeedsWork
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
