package scoring

import (
	"sort"
	"strings"

	"github.com/jonathan/career-readiness/internal/types"
)

// Bullet guidance messages
const (
	SuggestActionVerb = "Start with a strong action verb."
	SuggestNumbers    = "Add measurable impact (numbers)."
)

const (
	// MaxImprovements is the number of top improvements returned
	MaxImprovements = 3

	minProjects       = 2
	minSummaryWords   = 40
	targetSkillsCount = 8
)

// CheckBulletGuidance returns zero, one or both guidance messages for a bullet.
// Empty or whitespace-only text yields no guidance.
func CheckBulletGuidance(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	guidance := []string{}
	if !startsWithActionVerb(text) {
		guidance = append(guidance, SuggestActionVerb)
	}
	if !containsDigit(text) {
		guidance = append(guidance, SuggestNumbers)
	}
	return guidance
}

type improvement struct {
	priority int
	message  string
	applies  func(r *types.Resume) bool
}

var improvements = []improvement{
	{
		priority: 1,
		message:  "Add at least 2 projects to showcase your work.",
		applies:  func(r *types.Resume) bool { return len(r.Projects) < minProjects },
	},
	{
		priority: 2,
		message:  "Add measurable impact with numbers (%, X, k) in your bullets.",
		applies: func(r *types.Resume) bool {
			for _, e := range r.Experience {
				if containsDigit(e.Description) {
					return false
				}
			}
			for _, p := range r.Projects {
				if containsDigit(p.Description) {
					return false
				}
			}
			return true
		},
	},
	{
		priority: 3,
		message:  "Expand your summary to 40-120 words for better impact.",
		applies:  func(r *types.Resume) bool { return wordCount(r.Summary) < minSummaryWords },
	},
	{
		priority: 4,
		message:  "Add more skills (target 8+) to improve ATS matching.",
		applies:  func(r *types.Resume) bool { return r.Skills.Count() < targetSkillsCount },
	},
	{
		priority: 5,
		message:  "Add work experience, internships, or relevant project work.",
		applies:  func(r *types.Resume) bool { return len(r.Experience) == 0 },
	},
	{
		priority: 6,
		message:  "Add GitHub or LinkedIn link to strengthen your profile.",
		applies:  func(r *types.Resume) bool { return r.Links.GitHub == "" && r.Links.LinkedIn == "" },
	},
}

// TopImprovements returns up to MaxImprovements messages for the highest-priority gaps.
func TopImprovements(resume *types.Resume) []string {
	if resume == nil {
		empty := types.NewResume()
		resume = &empty
	}

	matched := make([]improvement, 0, len(improvements))
	for _, imp := range improvements {
		if imp.applies(resume) {
			matched = append(matched, imp)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].priority < matched[j].priority
	})

	count := min(len(matched), MaxImprovements)
	out := make([]string, 0, count)
	for _, imp := range matched[:count] {
		out = append(out, imp.message)
	}
	return out
}
