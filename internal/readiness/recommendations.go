package readiness

import (
	"math"
	"sort"

	"github.com/jonathan/career-readiness/internal/types"
)

// Category is the four-tier label of an overall score
type Category string

const (
	CategoryExcellent Category = "Excellent"
	CategoryGood      Category = "Good"
	CategoryFair      Category = "Fair"
	CategoryNeedsWork Category = "Needs Work"
)

// CategoryFor maps an overall score to its label.
func CategoryFor(overall int) Category {
	switch {
	case overall >= 80:
		return CategoryExcellent
	case overall >= 60:
		return CategoryGood
	case overall >= 40:
		return CategoryFair
	default:
		return CategoryNeedsWork
	}
}

// Priority of a recommendation
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation suggests where the user can gain the most points
type Recommendation struct {
	Priority Priority `json:"priority"`
	Message  string   `json:"message"`
	// Action names the CLI command that addresses the gap
	Action string `json:"action"`
	Points int    `json:"points"`
}

type rule struct {
	value     func(b types.ReadinessBreakdown) int
	threshold int
	weight    float64
	priority  Priority
	message   string
	action    string
}

var rules = []rule{
	{
		value:     func(b types.ReadinessBreakdown) int { return b.ResumeATSScore },
		threshold: 70,
		weight:    atsWeight,
		priority:  PriorityHigh,
		message:   "Improve your resume ATS score",
		action:    "resume",
	},
	{
		value:     func(b types.ReadinessBreakdown) int { return b.JDSkillAlignment },
		threshold: 60,
		weight:    jdAlignmentWeight,
		priority:  PriorityHigh,
		message:   "Analyze more job descriptions to align your skills",
		action:    "analyze",
	},
	{
		value:     func(b types.ReadinessBreakdown) int { return b.JobMatchQuality },
		threshold: 50,
		weight:    jobMatchWeight,
		priority:  PriorityMedium,
		message:   "Save more job matches to increase opportunities",
		action:    "jobs",
	},
	{
		value:     func(b types.ReadinessBreakdown) int { return b.ApplicationProgress },
		threshold: 40,
		weight:    applicationWeight,
		priority:  PriorityMedium,
		message:   "Apply to more jobs and track your applications",
		action:    "apply",
	},
	{
		value:     func(b types.ReadinessBreakdown) int { return b.PracticeCompletion },
		threshold: 50,
		weight:    practiceWeight,
		priority:  PriorityLow,
		message:   "Complete practice assessments to improve readiness",
		action:    "practice",
	},
}

// Recommendations lists one entry per dimension below its threshold, sorted by
// estimated point gain, highest first.
func Recommendations(b types.ReadinessBreakdown) []Recommendation {
	out := []Recommendation{}
	for _, r := range rules {
		v := r.value(b)
		if v >= r.threshold {
			continue
		}
		out = append(out, Recommendation{
			Priority: r.priority,
			Message:  r.message,
			Action:   r.action,
			Points:   int(math.Round(float64(r.threshold-v) * r.weight)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Points > out[j].Points
	})
	return out
}
