package types

import (
	"fmt"
	"strings"
	"time"
)

// JobMatch is a job listing the user saved, with its derived match score
type JobMatch struct {
	ID             string     `json:"id" validate:"required"`
	Title          string     `json:"title"`
	Company        string     `json:"company"`
	Location       string     `json:"location"`
	Type           string     `json:"type"`
	Salary         string     `json:"salary"`
	Description    string     `json:"description"`
	RequiredSkills []string   `json:"requiredSkills"`
	PostedAt       string     `json:"postedAt,omitempty"`
	MatchScore     int        `json:"matchScore" validate:"gte=0,lte=100"`
	MatchedSkills  []string   `json:"matchedSkills,omitempty"`
	SavedAt        time.Time  `json:"savedAt"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

// IsRemote reports whether the listing location mentions remote work.
func (j *JobMatch) IsRemote() bool {
	return strings.Contains(strings.ToLower(j.Location), "remote")
}

// ApplicationStatus is the pipeline stage of a tracked application
type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "applied"
	StatusScreening ApplicationStatus = "screening"
	StatusInterview ApplicationStatus = "interview"
	StatusOffer     ApplicationStatus = "offer"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusRejected  ApplicationStatus = "rejected"
)

var statusLabels = map[ApplicationStatus]string{
	StatusApplied:   "Applied",
	StatusScreening: "Screening",
	StatusInterview: "Interview",
	StatusOffer:     "Offer",
	StatusAccepted:  "Accepted",
	StatusRejected:  "Rejected",
}

// ApplicationStatuses returns every status in pipeline order.
func ApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		StatusApplied, StatusScreening, StatusInterview,
		StatusOffer, StatusAccepted, StatusRejected,
	}
}

// Valid reports whether s is one of the known statuses.
func (s ApplicationStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display name of the status.
func (s ApplicationStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// ParseApplicationStatus converts user input to a status (case-insensitive).
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	status := ApplicationStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("invalid application status %q", s)
	}
	return status, nil
}

// CountByStatus tallies applications per status. Every known status is present.
func CountByStatus(apps []Application) map[ApplicationStatus]int {
	counts := make(map[ApplicationStatus]int, len(statusLabels))
	for status := range statusLabels {
		counts[status] = 0
	}
	for _, app := range apps {
		counts[app.Status]++
	}
	return counts
}

// Application is a user-tracked job application. Any status may move to any other.
type Application struct {
	ID        string            `json:"id"`
	Company   string            `json:"company" validate:"required,max=200"`
	Position  string            `json:"position" validate:"required,max=200"`
	Location  string            `json:"location" validate:"max=200"`
	Salary    string            `json:"salary" validate:"max=100"`
	Notes     string            `json:"notes"`
	Status    ApplicationStatus `json:"status"`
	AppliedAt time.Time         `json:"appliedAt"`
	UpdatedAt *time.Time        `json:"updatedAt,omitempty"`
}

// JDAnalysis is the immutable result of analyzing one job description
type JDAnalysis struct {
	ID             string    `json:"id"`
	JobDescription string    `json:"jobDescription"`
	RequiredSkills []string  `json:"requiredSkills"`
	Keywords       []string  `json:"keywords"`
	AlignmentScore int       `json:"alignmentScore" validate:"gte=0,lte=100"`
	MatchedSkills  []string  `json:"matchedSkills"`
	MissingSkills  []string  `json:"missingSkills"`
	AnalyzedAt     time.Time `json:"analyzedAt"`
}

// Assessment ids of the fixed practice catalog
const (
	AssessmentTechnical      = "technical"
	AssessmentAptitude       = "aptitude"
	AssessmentCommunication  = "communication"
	AssessmentProblemSolving = "problemSolving"
)

// AssessmentIDs returns the practice catalog ids in display order.
func AssessmentIDs() []string {
	return []string{AssessmentTechnical, AssessmentAptitude, AssessmentCommunication, AssessmentProblemSolving}
}

// CompletedAssessment records the latest attempt of one assessment
type CompletedAssessment struct {
	AssessmentID string    `json:"assessmentId" validate:"required"`
	Score        int       `json:"score" validate:"gte=0,lte=100"`
	CompletedAt  time.Time `json:"completedAt"`
}

// PracticeData holds practice progress. At most one completion is kept per assessment.
type PracticeData struct {
	CompletedAssessments []CompletedAssessment `json:"completedAssessments"`
	TotalScore           int                   `json:"totalScore"`
	SkillScores          map[string]int        `json:"skillScores"`
}

// NewPracticeData returns empty progress with every catalog skill score seeded at zero.
func NewPracticeData() PracticeData {
	p := PracticeData{}
	p.Normalize()
	return p
}

// Normalize fills nil collections and seeds missing catalog skill scores.
func (p *PracticeData) Normalize() {
	if p.CompletedAssessments == nil {
		p.CompletedAssessments = []CompletedAssessment{}
	}
	if p.SkillScores == nil {
		p.SkillScores = make(map[string]int)
	}
	for _, id := range AssessmentIDs() {
		if _, ok := p.SkillScores[id]; !ok {
			p.SkillScores[id] = 0
		}
	}
}

// Record stores an attempt, overwriting any earlier completion of the same assessment,
// and recomputes the total score.
func (p *PracticeData) Record(attempt CompletedAssessment) {
	p.Normalize()
	replaced := false
	for i := range p.CompletedAssessments {
		if p.CompletedAssessments[i].AssessmentID == attempt.AssessmentID {
			p.CompletedAssessments[i] = attempt
			replaced = true
			break
		}
	}
	if !replaced {
		p.CompletedAssessments = append(p.CompletedAssessments, attempt)
	}
	p.SkillScores[attempt.AssessmentID] = attempt.Score

	total := 0
	for _, c := range p.CompletedAssessments {
		total += c.Score
	}
	p.TotalScore = total
}

// ReadinessBreakdown holds the five 0-100 sub-scores
type ReadinessBreakdown struct {
	JobMatchQuality     int `json:"jobMatchQuality"`
	JDSkillAlignment    int `json:"jdSkillAlignment"`
	ResumeATSScore      int `json:"resumeATSScore"`
	ApplicationProgress int `json:"applicationProgress"`
	PracticeCompletion  int `json:"practiceCompletion"`
}

// ReadinessScore is a cached aggregator result. It is never edited directly.
type ReadinessScore struct {
	Overall   int                `json:"overall"`
	Breakdown ReadinessBreakdown `json:"breakdown"`
}
