package events

// Event names
const (
	ResumeUpdated   = "resume:updated"
	ResumeSaved     = "resume:saved"
	TemplateChanged = "template:changed"
	ColorChanged    = "color:changed"

	JobSaved   = "job:saved"
	JobRemoved = "job:removed"

	ApplicationAdded         = "application:added"
	ApplicationStatusChanged = "application:status_changed"

	JDAnalyzed = "jd:analyzed"

	PracticeCompleted   = "practice:completed"
	AssessmentCompleted = "assessment:completed"

	ScoreUpdated             = "score:updated"
	ReadinessScoreCalculated = "readiness:score_calculated"

	NavigateTo       = "navigate:to"
	NotificationShow = "notification:show"

	ResumeSuggestions = "resume:suggestions"
	JobMatchesUpdated = "jobs:matches_updated"
)

// Wildcard is the trigger of rules that run on every known event.
const Wildcard = "*"

var known = []string{
	ResumeUpdated, ResumeSaved, TemplateChanged, ColorChanged,
	JobSaved, JobRemoved,
	ApplicationAdded, ApplicationStatusChanged,
	JDAnalyzed,
	PracticeCompleted, AssessmentCompleted,
	ScoreUpdated, ReadinessScoreCalculated,
	NavigateTo, NotificationShow,
	ResumeSuggestions, JobMatchesUpdated,
}

// Known returns every event name in declaration order.
func Known() []string {
	out := make([]string, len(known))
	copy(out, known)
	return out
}

// IsKnown reports whether name is a declared event.
func IsKnown(name string) bool {
	for _, k := range known {
		if k == name {
			return true
		}
	}
	return false
}
