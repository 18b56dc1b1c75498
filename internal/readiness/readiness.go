// Package readiness combines five sub-scores into the weighted job-search readiness score.
package readiness

import (
	"math"
	"time"

	"github.com/jonathan/career-readiness/internal/scoring"
	"github.com/jonathan/career-readiness/internal/skills"
	"github.com/jonathan/career-readiness/internal/types"
)

// Sub-score weights. They sum to 1.0.
const (
	jobMatchWeight    = 0.30
	jdAlignmentWeight = 0.25
	atsWeight         = 0.25
	applicationWeight = 0.10
	practiceWeight    = 0.10
)

const (
	recentWindow = 30 * 24 * time.Hour

	highMatchThreshold = 80
	highMatchBonus     = 15
	recentMatchBonus   = 5
	matchBaseCap       = 40

	analysisBonusCap    = 20
	applicationBonusCap = 25
	practiceBaseCap     = 50
)

// statusPoints maps application status to progress points; unknown statuses score like rejected.
var statusPoints = map[types.ApplicationStatus]float64{
	types.StatusApplied:   20,
	types.StatusScreening: 40,
	types.StatusInterview: 60,
	types.StatusOffer:     80,
	types.StatusAccepted:  100,
	types.StatusRejected:  10,
}

const unknownStatusPoints = 10

type subScores struct {
	jobMatch    float64
	jdAlignment float64
	ats         float64
	application float64
	practice    float64
}

// Calculate returns the readiness score of a record as of now. It is pure.
func Calculate(data *types.Data, now time.Time) types.ReadinessScore {
	if data == nil {
		data = types.NewData()
	}

	s := subScores{
		jobMatch:    clamp(JobMatchQuality(data.JobMatches, now)),
		jdAlignment: clamp(JDSkillAlignment(data.JDAnalyses, &data.ResumeData)),
		ats:         clamp(float64(scoring.CalculateATSScore(&data.ResumeData).Score)),
		application: clamp(ApplicationProgress(data.Applications)),
		practice:    clamp(PracticeCompletion(&data.PracticeData)),
	}

	overall := s.jobMatch*jobMatchWeight +
		s.jdAlignment*jdAlignmentWeight +
		s.ats*atsWeight +
		s.application*applicationWeight +
		s.practice*practiceWeight

	return types.ReadinessScore{
		Overall: round(overall),
		Breakdown: types.ReadinessBreakdown{
			JobMatchQuality:     round(s.jobMatch),
			JDSkillAlignment:    round(s.jdAlignment),
			ResumeATSScore:      round(s.ats),
			ApplicationProgress: round(s.application),
			PracticeCompletion:  round(s.practice),
		},
	}
}

// JobMatchQuality scores saved matches by volume, quality and recency.
func JobMatchQuality(matches []types.JobMatch, now time.Time) float64 {
	if len(matches) == 0 {
		return 0
	}

	score := math.Min(float64(10*len(matches)), matchBaseCap)
	for _, m := range matches {
		if m.MatchScore > highMatchThreshold {
			score += highMatchBonus
		}
		if !m.SavedAt.IsZero() && now.Sub(m.SavedAt) <= recentWindow {
			score += recentMatchBonus
		}
	}
	return math.Min(score, 100)
}

// JDSkillAlignment averages per-analysis skill coverage against the current resume skills
// and adds a bonus for analyzing several descriptions.
func JDSkillAlignment(analyses []types.JDAnalysis, resume *types.Resume) float64 {
	if len(analyses) == 0 {
		return 0
	}

	have := resume.Skills.All()
	total := 0.0
	for _, a := range analyses {
		total += skills.Ratio(a.RequiredSkills, have) * 100
	}

	avg := total / float64(len(analyses))
	bonus := math.Min(float64(5*(len(analyses)-1)), analysisBonusCap)
	return math.Min(avg+bonus, 100)
}

// ApplicationProgress averages status points and adds a volume bonus.
func ApplicationProgress(apps []types.Application) float64 {
	if len(apps) == 0 {
		return 0
	}

	total := 0.0
	for _, app := range apps {
		points, ok := statusPoints[app.Status]
		if !ok {
			points = unknownStatusPoints
		}
		total += points
	}

	avg := total / float64(len(apps))
	bonus := math.Min(float64(5*(len(apps)-1)), applicationBonusCap)
	return math.Min(avg+bonus, 100)
}

// PracticeCompletion rewards completed assessments plus half the mean skill score.
func PracticeCompletion(p *types.PracticeData) float64 {
	base := math.Min(float64(15*len(p.CompletedAssessments)), practiceBaseCap)

	avg := 0.0
	if len(p.SkillScores) > 0 {
		sum := 0
		for _, v := range p.SkillScores {
			sum += v
		}
		avg = float64(sum) / float64(len(p.SkillScores))
	}
	return math.Min(base+avg*0.5, 100)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(v, 100))
}

func round(v float64) int {
	return int(math.Round(v))
}
