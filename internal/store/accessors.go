package store

import (
	"context"
	"fmt"

	"github.com/jonathan/career-readiness/internal/types"
)

// GetResume returns the stored resume.
func (s *Store) GetResume(ctx context.Context) types.Resume {
	return s.GetData(ctx).ResumeData
}

// SaveResume replaces the resume, assigning ids to entries that lack one.
func (s *Store) SaveResume(ctx context.Context, resume types.Resume) error {
	resume.Normalize()
	resume.EnsureIDs(s.newID)
	resume.Skills.Dedupe()
	return s.update(ctx, func(d *types.Data) bool {
		d.ResumeData = resume
		return true
	})
}

// GetTemplate returns the selected resume template.
func (s *Store) GetTemplate(ctx context.Context) string {
	if t := s.GetData(ctx).Preferences.Template; t != "" {
		return t
	}
	return types.TemplateClassic
}

// SaveTemplate stores the selected resume template.
func (s *Store) SaveTemplate(ctx context.Context, template string) error {
	return s.updatePreferences(ctx, func(p *types.Preferences) { p.Template = template })
}

// GetColor returns the selected accent color.
func (s *Store) GetColor(ctx context.Context) string {
	if c := s.GetData(ctx).Preferences.Color; c != "" {
		return c
	}
	return types.ColorTeal
}

// SaveColor stores the selected accent color.
func (s *Store) SaveColor(ctx context.Context, color string) error {
	return s.updatePreferences(ctx, func(p *types.Preferences) { p.Color = color })
}

// GetPreferences returns the user settings.
func (s *Store) GetPreferences(ctx context.Context) types.Preferences {
	return s.GetData(ctx).Preferences
}

// SavePreferences validates and replaces the user settings.
func (s *Store) SavePreferences(ctx context.Context, prefs types.Preferences) error {
	if err := prefs.Validate(); err != nil {
		return fmt.Errorf("invalid preferences: %w", err)
	}
	return s.update(ctx, func(d *types.Data) bool {
		d.Preferences = prefs
		return true
	})
}

func (s *Store) updatePreferences(ctx context.Context, fn func(p *types.Preferences)) error {
	prefs := s.GetPreferences(ctx)
	fn(&prefs)
	return s.SavePreferences(ctx, prefs)
}

// GetJobMatches returns the saved job matches.
func (s *Store) GetJobMatches(ctx context.Context) []types.JobMatch {
	return s.GetData(ctx).JobMatches
}

// AddJobMatch saves a job unless one with the same id is already saved.
// Returns true if the job was inserted.
func (s *Store) AddJobMatch(ctx context.Context, job types.JobMatch) (bool, error) {
	if err := job.Validate(); err != nil {
		return false, fmt.Errorf("invalid job match: %w", err)
	}
	inserted := false
	err := s.update(ctx, func(d *types.Data) bool {
		for _, existing := range d.JobMatches {
			if existing.ID == job.ID {
				return false
			}
		}
		job.SavedAt = s.now()
		if job.RequiredSkills == nil {
			job.RequiredSkills = []string{}
		}
		d.JobMatches = append(d.JobMatches, job)
		inserted = true
		return true
	})
	return inserted, err
}

// RemoveJobMatch deletes a saved job. Returns false if no job has that id.
func (s *Store) RemoveJobMatch(ctx context.Context, id string) (bool, error) {
	removed := false
	err := s.update(ctx, func(d *types.Data) bool {
		for i, j := range d.JobMatches {
			if j.ID == id {
				d.JobMatches = append(d.JobMatches[:i], d.JobMatches[i+1:]...)
				removed = true
				return true
			}
		}
		return false
	})
	return removed, err
}

// SaveJobMatches replaces the whole saved-job list.
func (s *Store) SaveJobMatches(ctx context.Context, matches []types.JobMatch) error {
	for i := range matches {
		if err := matches[i].Validate(); err != nil {
			return fmt.Errorf("invalid job match %q: %w", matches[i].ID, err)
		}
	}
	return s.update(ctx, func(d *types.Data) bool {
		d.JobMatches = matches
		return true
	})
}

// GetApplications returns the tracked applications.
func (s *Store) GetApplications(ctx context.Context) []types.Application {
	return s.GetData(ctx).Applications
}

// AddApplication always appends: it assigns a new id, stamps appliedAt and sets the
// status to applied. It returns the stored application.
func (s *Store) AddApplication(ctx context.Context, app types.Application) (types.Application, error) {
	if err := app.Validate(); err != nil {
		return types.Application{}, fmt.Errorf("invalid application: %w", err)
	}
	app.ID = s.newID()
	app.AppliedAt = s.now()
	app.Status = types.StatusApplied
	app.UpdatedAt = nil

	err := s.update(ctx, func(d *types.Data) bool {
		d.Applications = append(d.Applications, app)
		return true
	})
	if err != nil {
		return types.Application{}, err
	}
	return app, nil
}

// UpdateApplicationStatus sets an application's status and stamps updatedAt.
// An unknown id is a silent no-op reported as found=false.
func (s *Store) UpdateApplicationStatus(ctx context.Context, id string, status types.ApplicationStatus) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("invalid application status %q", status)
	}
	return s.updateApplication(ctx, id, func(a *types.Application) { a.Status = status })
}

// UpdateApplicationNotes replaces an application's notes and stamps updatedAt.
func (s *Store) UpdateApplicationNotes(ctx context.Context, id, notes string) (bool, error) {
	return s.updateApplication(ctx, id, func(a *types.Application) { a.Notes = notes })
}

func (s *Store) updateApplication(ctx context.Context, id string, fn func(a *types.Application)) (bool, error) {
	found := false
	err := s.update(ctx, func(d *types.Data) bool {
		for i := range d.Applications {
			if d.Applications[i].ID == id {
				fn(&d.Applications[i])
				now := s.now()
				d.Applications[i].UpdatedAt = &now
				found = true
				return true
			}
		}
		return false
	})
	return found, err
}

// RemoveApplication deletes an application. Returns false if no application has that id.
func (s *Store) RemoveApplication(ctx context.Context, id string) (bool, error) {
	removed := false
	err := s.update(ctx, func(d *types.Data) bool {
		for i, a := range d.Applications {
			if a.ID == id {
				d.Applications = append(d.Applications[:i], d.Applications[i+1:]...)
				removed = true
				return true
			}
		}
		return false
	})
	return removed, err
}

// GetJDAnalyses returns the saved job description analyses.
func (s *Store) GetJDAnalyses(ctx context.Context) []types.JDAnalysis {
	return s.GetData(ctx).JDAnalyses
}

// AddJDAnalysis always appends, assigning an id and analyzedAt. It returns the stored analysis.
func (s *Store) AddJDAnalysis(ctx context.Context, analysis types.JDAnalysis) (types.JDAnalysis, error) {
	analysis.ID = s.newID()
	analysis.AnalyzedAt = s.now()
	if err := analysis.Validate(); err != nil {
		return types.JDAnalysis{}, fmt.Errorf("invalid analysis: %w", err)
	}
	err := s.update(ctx, func(d *types.Data) bool {
		d.JDAnalyses = append(d.JDAnalyses, analysis)
		return true
	})
	if err != nil {
		return types.JDAnalysis{}, err
	}
	return analysis, nil
}

// RemoveJDAnalysis deletes an analysis. Returns false if no analysis has that id.
func (s *Store) RemoveJDAnalysis(ctx context.Context, id string) (bool, error) {
	removed := false
	err := s.update(ctx, func(d *types.Data) bool {
		for i, a := range d.JDAnalyses {
			if a.ID == id {
				d.JDAnalyses = append(d.JDAnalyses[:i], d.JDAnalyses[i+1:]...)
				removed = true
				return true
			}
		}
		return false
	})
	return removed, err
}

// GetPracticeData returns practice progress.
func (s *Store) GetPracticeData(ctx context.Context) types.PracticeData {
	return s.GetData(ctx).PracticeData
}

// UpdatePracticeData merges the non-empty fields of patch into the stored progress.
func (s *Store) UpdatePracticeData(ctx context.Context, patch types.PracticeData) error {
	if err := patch.Validate(); err != nil {
		return fmt.Errorf("invalid practice data: %w", err)
	}
	return s.update(ctx, func(d *types.Data) bool {
		if patch.CompletedAssessments != nil {
			d.PracticeData.CompletedAssessments = patch.CompletedAssessments
		}
		if patch.TotalScore != 0 {
			d.PracticeData.TotalScore = patch.TotalScore
		}
		if patch.SkillScores != nil {
			d.PracticeData.SkillScores = patch.SkillScores
		}
		return true
	})
}

// RecordAssessment stores an attempt with score, replacing any earlier attempt of the
// same assessment. It returns the stored completion.
func (s *Store) RecordAssessment(ctx context.Context, assessmentID string, score int) (types.CompletedAssessment, error) {
	attempt := types.CompletedAssessment{
		AssessmentID: assessmentID,
		Score:        score,
		CompletedAt:  s.now(),
	}
	if err := attempt.Validate(); err != nil {
		return types.CompletedAssessment{}, fmt.Errorf("invalid assessment attempt: %w", err)
	}
	err := s.update(ctx, func(d *types.Data) bool {
		d.PracticeData.Record(attempt)
		return true
	})
	return attempt, err
}

// GetReadinessScore returns the cached readiness score.
func (s *Store) GetReadinessScore(ctx context.Context) types.ReadinessScore {
	return s.GetData(ctx).ReadinessScore
}

// SaveReadinessScore replaces the cached readiness score.
func (s *Store) SaveReadinessScore(ctx context.Context, score types.ReadinessScore) error {
	return s.update(ctx, func(d *types.Data) bool {
		d.ReadinessScore = score
		return true
	})
}

// TouchActivity stamps lastActivity without other changes.
func (s *Store) TouchActivity(ctx context.Context) error {
	return s.update(ctx, func(*types.Data) bool { return true })
}
