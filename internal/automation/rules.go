package automation

import (
	"context"
	"strings"

	"github.com/jonathan/career-readiness/internal/events"
	"github.com/jonathan/career-readiness/internal/readiness"
	"github.com/jonathan/career-readiness/internal/skills"
	"github.com/jonathan/career-readiness/internal/types"
	"go.uber.org/zap"
)

// Rule ids
const (
	RuleUpdateReadiness              = "auto-update-readiness"
	RuleUpdateReadinessOnJob         = "auto-update-readiness-on-job"
	RuleUpdateReadinessOnApplication = "auto-update-readiness-on-application"
	RuleUpdateReadinessOnStatus      = "auto-update-readiness-on-status"
	RuleUpdateReadinessOnPractice    = "auto-update-readiness-on-practice"
	RuleUpdateReadinessOnAnalysis    = "auto-update-readiness-on-analysis"
	RuleSuggestResumeUpdates         = "auto-suggest-resume-updates"
	RuleCheckJobMatches              = "auto-check-job-matches"
	RuleTrackLastActivity            = "track-last-activity"
)

// SuggestionSource marks suggestions derived from a job description analysis.
const SuggestionSource = "jd_analysis"

const (
	maxSkillsInMessage = 3
	maxListedItems     = 5
)

// Suggestion is a single resume improvement derived from an analysis
type Suggestion struct {
	Type          string   `json:"type"`
	Message       string   `json:"message"`
	MissingSkills []string `json:"missingSkills,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
}

// SuggestionsPayload is emitted with events.ResumeSuggestions
type SuggestionsPayload struct {
	Source      string       `json:"source"`
	AnalysisID  string       `json:"analysisId"`
	Suggestions []Suggestion `json:"suggestions"`
}

// MatchesUpdatedPayload is emitted with events.JobMatchesUpdated
type MatchesUpdatedPayload struct {
	Matches []types.JobMatch `json:"matches"`
}

func defaultRules() []Rule {
	return []Rule{
		{ID: RuleUpdateReadiness, Trigger: events.ResumeUpdated,
			Description: "Recalculate readiness score when resume is updated", action: updateReadiness},
		{ID: RuleUpdateReadinessOnJob, Trigger: events.JobSaved,
			Description: "Recalculate readiness score when job is saved", action: updateReadiness},
		{ID: RuleUpdateReadinessOnApplication, Trigger: events.ApplicationAdded,
			Description: "Recalculate readiness score when application is added", action: updateReadiness},
		{ID: RuleUpdateReadinessOnStatus, Trigger: events.ApplicationStatusChanged,
			Description: "Recalculate readiness score when an application status changes", action: updateReadiness},
		{ID: RuleUpdateReadinessOnPractice, Trigger: events.PracticeCompleted,
			Description: "Recalculate readiness score when practice is completed", action: updateReadiness},
		{ID: RuleUpdateReadinessOnAnalysis, Trigger: events.JDAnalyzed,
			Description: "Recalculate readiness score when a job description is analyzed", action: updateReadiness},
		{ID: RuleSuggestResumeUpdates, Trigger: events.JDAnalyzed,
			Description: "Suggest resume updates based on JD analysis", action: suggestResumeUpdates},
		{ID: RuleCheckJobMatches, Trigger: events.ResumeSaved,
			Description: "Check for new job matches when resume is saved", action: checkJobMatches},
		{ID: RuleTrackLastActivity, Trigger: events.Wildcard,
			Description: "Track last activity timestamp on any event", action: trackLastActivity},
	}
}

// UpdateReadiness recalculates the readiness score from the stored record, caches it
// and emits events.ReadinessScoreCalculated.
func (e *Engine) UpdateReadiness(ctx context.Context) (types.ReadinessScore, error) {
	data := e.store.GetData(ctx)
	score := readiness.Calculate(data, e.store.Now())
	if err := e.store.SaveReadinessScore(ctx, score); err != nil {
		return types.ReadinessScore{}, err
	}
	e.logger.Debug("readiness score updated", zap.Int("overall", score.Overall))
	e.bus.Emit(ctx, events.ReadinessScoreCalculated, score)
	return score, nil
}

func updateReadiness(ctx context.Context, e *Engine, _ any) error {
	_, err := e.UpdateReadiness(ctx)
	return err
}

// suggestResumeUpdates compares an analysis with the current resume. Without an
// analysis payload it uses the most recent stored analysis.
func suggestResumeUpdates(ctx context.Context, e *Engine, payload any) error {
	var analysis types.JDAnalysis
	switch p := payload.(type) {
	case types.JDAnalysis:
		analysis = p
	case *types.JDAnalysis:
		if p == nil {
			return nil
		}
		analysis = *p
	default:
		stored := e.store.GetJDAnalyses(ctx)
		if len(stored) == 0 {
			return nil
		}
		analysis = stored[len(stored)-1]
	}

	resume := e.store.GetResume(ctx)
	suggestions := Suggestions(&analysis, &resume)
	if len(suggestions) == 0 {
		return nil
	}
	e.bus.Emit(ctx, events.ResumeSuggestions, SuggestionsPayload{
		Source:      SuggestionSource,
		AnalysisID:  analysis.ID,
		Suggestions: suggestions,
	})
	return nil
}

// Suggestions lists the skills and summary keywords an analysis found missing from resume.
func Suggestions(analysis *types.JDAnalysis, resume *types.Resume) []Suggestion {
	var out []Suggestion

	if len(analysis.RequiredSkills) > 0 {
		_, missing := skills.Partition(analysis.RequiredSkills, resume.Skills.All())
		if len(missing) > 0 {
			out = append(out, Suggestion{
				Type:          "skills",
				Message:       "Consider adding these skills: " + strings.Join(head(missing, maxSkillsInMessage), ", "),
				MissingSkills: head(missing, maxListedItems),
			})
		}
	}

	if len(analysis.Keywords) > 0 {
		summary := strings.ToLower(resume.Summary)
		var missing []string
		for _, keyword := range analysis.Keywords {
			if !strings.Contains(summary, strings.ToLower(keyword)) {
				missing = append(missing, keyword)
			}
		}
		if len(missing) > 0 {
			out = append(out, Suggestion{
				Type:     "summary",
				Message:  "Your summary could include more relevant keywords",
				Keywords: head(missing, maxListedItems),
			})
		}
	}

	return out
}

// checkJobMatches re-scores saved jobs against all resume skills and keeps only improvements.
func checkJobMatches(ctx context.Context, e *Engine, _ any) error {
	data := e.store.GetData(ctx)
	if len(data.JobMatches) == 0 {
		return nil
	}

	have := data.ResumeData.Skills.All()
	changed := false
	for i := range data.JobMatches {
		job := &data.JobMatches[i]
		if len(job.RequiredSkills) == 0 || job.MatchScore == 100 {
			continue
		}
		score, matched := skills.Score(job.RequiredSkills, have)
		if score > job.MatchScore {
			now := e.store.Now()
			job.MatchScore = score
			job.MatchedSkills = matched
			job.UpdatedAt = &now
			changed = true
		}
	}
	if !changed {
		return nil
	}

	if err := e.store.SaveJobMatches(ctx, data.JobMatches); err != nil {
		return err
	}
	e.bus.Emit(ctx, events.JobMatchesUpdated, MatchesUpdatedPayload{Matches: data.JobMatches})
	return nil
}

func trackLastActivity(ctx context.Context, e *Engine, _ any) error {
	return e.store.TouchActivity(ctx)
}

func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
