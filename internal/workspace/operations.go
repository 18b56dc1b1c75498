package workspace

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/career-readiness/internal/analysis"
	"github.com/jonathan/career-readiness/internal/catalog"
	"github.com/jonathan/career-readiness/internal/events"
	"github.com/jonathan/career-readiness/internal/types"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SaveResume stores the resume and announces the update and the save.
func (w *Workspace) SaveResume(ctx context.Context, resume types.Resume) error {
	if err := w.Store.SaveResume(ctx, resume); err != nil {
		return err
	}
	w.Bus.Emit(ctx, events.ResumeUpdated, nil)
	w.Bus.Emit(ctx, events.ResumeSaved, nil)
	return nil
}

// LoadSample replaces the resume with the demo resume.
func (w *Workspace) LoadSample(ctx context.Context) (types.Resume, error) {
	if err := w.SaveResume(ctx, catalog.SampleResume()); err != nil {
		return types.Resume{}, err
	}
	return w.Store.GetResume(ctx), nil
}

// ImportResume reads a YAML or JSON resume file and stores it.
func (w *Workspace) ImportResume(ctx context.Context, path string) (types.Resume, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Resume{}, fmt.Errorf("failed to open resume file: %w", err)
	}
	defer f.Close()

	resume, err := DecodeResume(f)
	if err != nil {
		return types.Resume{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := w.SaveResume(ctx, resume); err != nil {
		return types.Resume{}, err
	}
	return w.Store.GetResume(ctx), nil
}

// DecodeResume parses a resume document. JSON documents are accepted as YAML.
func DecodeResume(r io.Reader) (types.Resume, error) {
	resume := types.NewResume()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&resume); err != nil {
		return types.Resume{}, err
	}
	resume.Normalize()
	return resume, nil
}

// AddExperience appends an experience entry and returns it with its new id.
func (w *Workspace) AddExperience(ctx context.Context, e types.Experience) (types.Experience, error) {
	resume := w.Store.GetResume(ctx)
	stored := resume.AddExperience(e, w.Store.NewID)
	return stored, w.SaveResume(ctx, resume)
}

// AddEducation appends an education entry and returns it with its new id.
func (w *Workspace) AddEducation(ctx context.Context, e types.Education) (types.Education, error) {
	resume := w.Store.GetResume(ctx)
	stored := resume.AddEducation(e, w.Store.NewID)
	return stored, w.SaveResume(ctx, resume)
}

// AddProject appends a project and returns it with its new id.
func (w *Workspace) AddProject(ctx context.Context, p types.Project) (types.Project, error) {
	resume := w.Store.GetResume(ctx)
	stored := resume.AddProject(p, w.Store.NewID)
	return stored, w.SaveResume(ctx, resume)
}

// RemoveResumeEntry deletes the experience, education or project entry with the given id.
func (w *Workspace) RemoveResumeEntry(ctx context.Context, id string) error {
	resume := w.Store.GetResume(ctx)
	if !resume.RemoveEntry(id) {
		return fmt.Errorf("resume entry %q: %w", id, ErrNotFound)
	}
	return w.SaveResume(ctx, resume)
}

// AddSkill adds a skill to a category. It returns false if the skill was already listed.
func (w *Workspace) AddSkill(ctx context.Context, category types.SkillCategory, skill string) (bool, error) {
	resume := w.Store.GetResume(ctx)
	added, err := resume.Skills.Add(category, skill)
	if err != nil || !added {
		return false, err
	}
	return true, w.SaveResume(ctx, resume)
}

// RemoveSkill removes a skill from a category. It returns false if the skill was not listed.
func (w *Workspace) RemoveSkill(ctx context.Context, category types.SkillCategory, skill string) (bool, error) {
	resume := w.Store.GetResume(ctx)
	removed, err := resume.Skills.Remove(category, skill)
	if err != nil || !removed {
		return false, err
	}
	return true, w.SaveResume(ctx, resume)
}

// SetTemplate selects the resume template.
func (w *Workspace) SetTemplate(ctx context.Context, template string) error {
	if err := w.Store.SaveTemplate(ctx, template); err != nil {
		return err
	}
	w.Bus.Emit(ctx, events.TemplateChanged, template)
	return nil
}

// SetColor selects the resume accent color.
func (w *Workspace) SetColor(ctx context.Context, color string) error {
	if err := w.Store.SaveColor(ctx, color); err != nil {
		return err
	}
	w.Bus.Emit(ctx, events.ColorChanged, color)
	return nil
}

// SaveJob saves a catalog listing scored against the current resume.
// Saving an already saved listing is a no-op reported as inserted=false.
func (w *Workspace) SaveJob(ctx context.Context, jobID string) (types.JobMatch, bool, error) {
	listing, ok := catalog.FindJob(jobID)
	if !ok {
		return types.JobMatch{}, false, fmt.Errorf("job %q: %w", jobID, ErrNotFound)
	}
	resume := w.Store.GetResume(ctx)
	match := catalog.ToJobMatch(listing, &resume)

	inserted, err := w.Store.AddJobMatch(ctx, match)
	if err != nil {
		return types.JobMatch{}, false, err
	}
	if inserted {
		w.Bus.Emit(ctx, events.JobSaved, match)
	}
	return match, inserted, nil
}

// RemoveJob removes a saved job.
func (w *Workspace) RemoveJob(ctx context.Context, jobID string) error {
	removed, err := w.Store.RemoveJobMatch(ctx, jobID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("saved job %q: %w", jobID, ErrNotFound)
	}
	w.Bus.Emit(ctx, events.JobRemoved, jobID)
	return nil
}

// AddApplication records a new application.
func (w *Workspace) AddApplication(ctx context.Context, app types.Application) (types.Application, error) {
	stored, err := w.Store.AddApplication(ctx, app)
	if err != nil {
		return types.Application{}, err
	}
	w.Bus.Emit(ctx, events.ApplicationAdded, stored)
	return stored, nil
}

// UpdateApplicationStatus moves an application to a new status.
func (w *Workspace) UpdateApplicationStatus(ctx context.Context, id string, status types.ApplicationStatus) error {
	found, err := w.Store.UpdateApplicationStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("application %q: %w", id, ErrNotFound)
	}
	w.Bus.Emit(ctx, events.ApplicationStatusChanged, id)
	return nil
}

// UpdateApplicationNotes replaces an application's notes.
func (w *Workspace) UpdateApplicationNotes(ctx context.Context, id, notes string) error {
	found, err := w.Store.UpdateApplicationNotes(ctx, id, notes)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("application %q: %w", id, ErrNotFound)
	}
	return nil
}

// RemoveApplication deletes an application.
func (w *Workspace) RemoveApplication(ctx context.Context, id string) error {
	removed, err := w.Store.RemoveApplication(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("application %q: %w", id, ErrNotFound)
	}
	return nil
}

// AnalyzeJobDescription analyzes text against the current resume and stores the result.
func (w *Workspace) AnalyzeJobDescription(ctx context.Context, text string) (types.JDAnalysis, error) {
	resume := w.Store.GetResume(ctx)
	result, err := analysis.Analyze(text, &resume)
	if err != nil {
		return types.JDAnalysis{}, err
	}
	stored, err := w.Store.AddJDAnalysis(ctx, result.ToAnalysis())
	if err != nil {
		return types.JDAnalysis{}, err
	}
	w.logger.Debug("analyzed job description",
		zap.String("analysisId", stored.ID),
		zap.Int("requiredSkills", len(stored.RequiredSkills)),
		zap.Int("alignment", stored.AlignmentScore))
	w.Bus.Emit(ctx, events.JDAnalyzed, stored)
	return stored, nil
}

// RemoveAnalysis deletes a stored analysis.
func (w *Workspace) RemoveAnalysis(ctx context.Context, id string) error {
	removed, err := w.Store.RemoveJDAnalysis(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("analysis %q: %w", id, ErrNotFound)
	}
	return nil
}

// CompleteAssessment grades answers and records the attempt, replacing any earlier one.
func (w *Workspace) CompleteAssessment(ctx context.Context, assessmentID string, answers []int) (types.CompletedAssessment, error) {
	assessment, err := catalog.FindAssessment(assessmentID)
	if err != nil {
		return types.CompletedAssessment{}, err
	}
	score, err := assessment.Grade(answers)
	if err != nil {
		return types.CompletedAssessment{}, err
	}
	attempt, err := w.Store.RecordAssessment(ctx, assessmentID, score)
	if err != nil {
		return types.CompletedAssessment{}, err
	}
	w.Bus.Emit(ctx, events.AssessmentCompleted, attempt)
	w.Bus.Emit(ctx, events.PracticeCompleted, attempt)
	return attempt, nil
}

// Readiness returns the cached readiness score, recalculating it first when recalc is set.
func (w *Workspace) Readiness(ctx context.Context, recalc bool) (types.ReadinessScore, error) {
	if !recalc {
		return w.Store.GetReadinessScore(ctx), nil
	}
	score, err := w.Engine.UpdateReadiness(ctx)
	if err != nil {
		return types.ReadinessScore{}, err
	}
	w.Bus.Emit(ctx, events.ScoreUpdated, score)
	return score, nil
}

// ImportData replaces the record with an exported file and refreshes the readiness score.
func (w *Workspace) ImportData(ctx context.Context, r io.Reader) error {
	if err := w.Store.Import(ctx, r); err != nil {
		return err
	}
	_, err := w.Readiness(ctx, true)
	return err
}

// ClearAll removes every stored item.
func (w *Workspace) ClearAll(ctx context.Context) error {
	return w.Store.ClearAll(ctx)
}
