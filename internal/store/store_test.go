package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/career-readiness/internal/storage"
	"github.com/jonathan/career-readiness/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	s := New(kv, WithClock(func() time.Time { return fixedNow }), WithIDGenerator(sequentialIDs()))
	return s, kv
}

func TestGetData_Defaults(t *testing.T) {
	s, _ := newTestStore(t)

	data := s.GetData(context.Background())

	assert.Equal(t, types.CurrentVersion, data.Version)
	assert.Equal(t, types.DefaultPreferences(), data.Preferences)
	assert.Empty(t, data.JobMatches)
	assert.NotNil(t, data.JobMatches)
	assert.Len(t, data.PracticeData.SkillScores, 4)
	assert.Nil(t, data.LastActivity)
}

func TestGetData_CorruptBlobFallsBackToDefaults(t *testing.T) {
	kv := storage.NewMemory()
	core, logs := observer.New(zap.WarnLevel)
	s := New(kv, WithLogger(zap.New(core)))
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, DataKey, "{not json"))
	assert.Equal(t, types.NewData(), s.GetData(ctx))

	require.NoError(t, kv.Set(ctx, DataKey, `{"preferences": {}, "resumeData": {}, "readinessScore": {"overall": 500}}`))
	assert.Equal(t, types.NewData(), s.GetData(ctx))

	assert.Equal(t, 2, logs.Len())
}

func TestSaveData_StampsLastActivity(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	data := s.GetData(ctx)
	data.ResumeData.Summary = "hello"
	require.NoError(t, s.SaveData(ctx, data))

	got := s.GetData(ctx)
	require.NotNil(t, got.LastActivity)
	assert.True(t, fixedNow.Equal(*got.LastActivity))
	assert.Equal(t, "hello", got.ResumeData.Summary)
}

func TestSaveResume_AssignsIDs(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	resume := types.NewResume()
	resume.Experience = []types.Experience{{Company: "Acme"}, {Company: "Globex"}}
	resume.Skills.Technical = []string{"Go", "go", "SQL"}
	require.NoError(t, s.SaveResume(ctx, resume))

	got := s.GetResume(ctx)
	assert.Equal(t, "id-1", got.Experience[0].ID)
	assert.Equal(t, "id-2", got.Experience[1].ID)
	assert.Equal(t, []string{"Go", "SQL"}, got.Skills.Technical)
}

func TestTemplateAndColor(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	assert.Equal(t, types.TemplateClassic, s.GetTemplate(ctx))
	assert.Equal(t, types.ColorTeal, s.GetColor(ctx))

	require.NoError(t, s.SaveTemplate(ctx, types.TemplateModern))
	require.NoError(t, s.SaveColor(ctx, types.ColorNavy))
	assert.Equal(t, types.TemplateModern, s.GetTemplate(ctx))
	assert.Equal(t, types.ColorNavy, s.GetColor(ctx))

	assert.Error(t, s.SaveColor(ctx, "purple"))
	assert.Equal(t, types.ColorNavy, s.GetColor(ctx))
}

func TestAddJobMatch_IdempotentByID(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	job := types.JobMatch{ID: "1", Title: "Frontend Developer", MatchScore: 80}
	inserted, err := s.AddJobMatch(ctx, job)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = s.AddJobMatch(ctx, job)
	require.NoError(t, err)
	assert.False(t, inserted)

	matches := s.GetJobMatches(ctx)
	require.Len(t, matches, 1)
	assert.True(t, fixedNow.Equal(matches[0].SavedAt))
	assert.NotNil(t, matches[0].RequiredSkills)

	removed, err := s.RemoveJobMatch(ctx, "1")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = s.RemoveJobMatch(ctx, "1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAddApplication(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first, err := s.AddApplication(ctx, types.Application{Company: "Acme", Position: "Engineer", Status: types.StatusOffer})
	require.NoError(t, err)
	second, err := s.AddApplication(ctx, types.Application{Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, types.StatusApplied, first.Status)
	assert.True(t, fixedNow.Equal(first.AppliedAt))
	assert.Len(t, s.GetApplications(ctx), 2)

	_, err = s.AddApplication(ctx, types.Application{Position: "Engineer"})
	assert.Error(t, err)
	assert.Len(t, s.GetApplications(ctx), 2)
}

func TestUpdateApplicationStatus(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	app, err := s.AddApplication(ctx, types.Application{Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)

	found, err := s.UpdateApplicationStatus(ctx, app.ID, types.StatusInterview)
	require.NoError(t, err)
	assert.True(t, found)

	got := s.GetApplications(ctx)[0]
	assert.Equal(t, types.StatusInterview, got.Status)
	require.NotNil(t, got.UpdatedAt)

	found, err = s.UpdateApplicationStatus(ctx, "missing", types.StatusOffer)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = s.UpdateApplicationStatus(ctx, app.ID, "ghosted")
	assert.Error(t, err)

	found, err = s.UpdateApplicationNotes(ctx, app.ID, "call back Monday")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "call back Monday", s.GetApplications(ctx)[0].Notes)

	removed, err := s.RemoveApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, s.GetApplications(ctx))
}

func TestJDAnalyses(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	a, err := s.AddJDAnalysis(ctx, types.JDAnalysis{RequiredSkills: []string{"Go"}, AlignmentScore: 50})
	require.NoError(t, err)
	assert.Equal(t, "id-1", a.ID)
	assert.True(t, fixedNow.Equal(a.AnalyzedAt))

	_, err = s.AddJDAnalysis(ctx, types.JDAnalysis{RequiredSkills: []string{"Go"}, AlignmentScore: 50})
	require.NoError(t, err)
	assert.Len(t, s.GetJDAnalyses(ctx), 2)

	removed, err := s.RemoveJDAnalysis(ctx, "id-1")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Len(t, s.GetJDAnalyses(ctx), 1)
}

func TestRecordAssessment(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.RecordAssessment(ctx, types.AssessmentTechnical, 60)
	require.NoError(t, err)
	_, err = s.RecordAssessment(ctx, types.AssessmentAptitude, 80)
	require.NoError(t, err)
	_, err = s.RecordAssessment(ctx, types.AssessmentTechnical, 100)
	require.NoError(t, err)

	p := s.GetPracticeData(ctx)
	assert.Len(t, p.CompletedAssessments, 2)
	assert.Equal(t, 180, p.TotalScore)
	assert.Equal(t, 100, p.SkillScores[types.AssessmentTechnical])
	assert.Equal(t, 0, p.SkillScores[types.AssessmentCommunication])
}

func TestUpdatePracticeData_MergesNonZeroFields(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.RecordAssessment(ctx, types.AssessmentTechnical, 60)
	require.NoError(t, err)

	require.NoError(t, s.UpdatePracticeData(ctx, types.PracticeData{TotalScore: 75}))

	p := s.GetPracticeData(ctx)
	assert.Equal(t, 75, p.TotalScore)
	assert.Len(t, p.CompletedAssessments, 1)
}

func TestReadinessScoreRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	score := types.ReadinessScore{Overall: 42, Breakdown: types.ReadinessBreakdown{ResumeATSScore: 70}}
	require.NoError(t, s.SaveReadinessScore(ctx, score))
	assert.Equal(t, score, s.GetReadinessScore(ctx))
}

func TestClearAll(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, LegacyTemplateKey, "modern"))
	require.NoError(t, s.SaveTemplate(ctx, types.TemplateMinimal))
	require.NoError(t, s.ClearAll(ctx))

	assert.Equal(t, types.NewData(), s.GetData(ctx))
	_, found, err := kv.Get(ctx, LegacyTemplateKey)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestExportImportRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	resume := types.NewResume()
	resume.PersonalInfo.Name = "Alex Johnson"
	resume.Experience = []types.Experience{{Company: "Acme", Description: "Shipped 3 releases"}}
	resume.Projects = []types.Project{{Name: "CLI", Tech: []string{"Go"}}}
	resume.Skills.Technical = []string{"Go", "SQL"}
	require.NoError(t, s.SaveResume(ctx, resume))
	require.NoError(t, s.SaveTemplate(ctx, types.TemplateModern))
	_, err := s.AddApplication(ctx, types.Application{Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)
	_, err = s.AddJobMatch(ctx, types.JobMatch{ID: "2", Title: "Backend Engineer", MatchScore: 75})
	require.NoError(t, err)
	_, err = s.AddJDAnalysis(ctx, types.JDAnalysis{RequiredSkills: []string{"Go"}, AlignmentScore: 100})
	require.NoError(t, err)
	_, err = s.RecordAssessment(ctx, types.AssessmentTechnical, 80)
	require.NoError(t, err)
	require.NoError(t, s.SaveReadinessScore(ctx, types.ReadinessScore{Overall: 55, Breakdown: types.ReadinessBreakdown{ResumeATSScore: 70}}))

	var buf bytes.Buffer
	require.NoError(t, s.Export(ctx, &buf))
	assert.Contains(t, buf.String(), "\n  \"preferences\"")

	other, _ := newTestStore(t)
	require.NoError(t, other.Import(ctx, &buf))

	assert.Equal(t, s.GetData(ctx), other.GetData(ctx))
}

func TestImport_InvalidLeavesRecordUntouched(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTemplate(ctx, types.TemplateModern))
	before := s.GetData(ctx)

	inputs := []string{
		"not json",
		"[]",
		"{}",
		`{"resumeData": {}}`,
		`{"version": 2, "preferences": {}, "resumeData": {}, "applications": [{"id": "x", "company": "c", "position": "p", "status": "lost"}]}`,
		`{"version": 2, "preferences": {}, "resumeData": {}, "jobMatches": [{"id": ""}]}`,
	}
	for _, in := range inputs {
		err := s.Import(ctx, strings.NewReader(in))
		assert.ErrorIs(t, err, ErrInvalidFormat, in)
		assert.Equal(t, "invalid file format", strings.SplitN(err.Error(), ":", 2)[0])
	}

	assert.Equal(t, before, s.GetData(ctx))
}

func TestImport_UpgradesOlderFiles(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Import(ctx, strings.NewReader(
		`{"preferences": {}, "resumeData": {"experience": [{"company": "A"}, {"company": "B"}]}}`)))

	data := s.GetData(ctx)
	assert.Equal(t, types.CurrentVersion, data.Version)
	require.Len(t, data.ResumeData.Experience, 2)
	assert.Equal(t, "id-1", data.ResumeData.Experience[0].ID)
	assert.Equal(t, "id-2", data.ResumeData.Experience[1].ID)

	older := `{
		"version": 1,
		"preferences": {"theme": "sepia"},
		"resumeData": {"experience": [{"id": 1718000000000, "company": "Acme"}]},
		"applications": [
			{"id": 7, "company": "Acme", "position": "Dev", "status": "ghosted"},
			{"id": 7, "company": "Globex", "position": "Dev", "status": "offer"}
		],
		"jdAnalyses": [{"jobDescription": "Go", "alignmentScore": 140}]
	}`
	require.NoError(t, s.Import(ctx, strings.NewReader(older)))

	data = s.GetData(ctx)
	assert.Equal(t, "1718000000000", data.ResumeData.Experience[0].ID)
	assert.Equal(t, types.ThemeLight, data.Preferences.Theme)
	require.Len(t, data.Applications, 2)
	assert.Equal(t, "7", data.Applications[0].ID)
	assert.NotEqual(t, data.Applications[0].ID, data.Applications[1].ID)
	assert.Equal(t, types.StatusApplied, data.Applications[0].Status)
	require.Len(t, data.JDAnalyses, 1)
	assert.NotEmpty(t, data.JDAnalyses[0].ID)
	assert.Equal(t, 100, data.JDAnalyses[0].AlignmentScore)
}

func TestMutators_RejectValuesThatWouldNotLoad(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddApplication(ctx, types.Application{Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)
	_, err = s.AddJobMatch(ctx, types.JobMatch{ID: "1", MatchScore: 40})
	require.NoError(t, err)
	stored, _, err := kv.Get(ctx, DataKey)
	require.NoError(t, err)

	tests := []struct {
		name string
		run  func() error
	}{
		{"job without id", func() error {
			_, err := s.AddJobMatch(ctx, types.JobMatch{Title: "no id"})
			return err
		}},
		{"job score above 100", func() error {
			_, err := s.AddJobMatch(ctx, types.JobMatch{ID: "2", MatchScore: 150})
			return err
		}},
		{"job list with blank id", func() error {
			return s.SaveJobMatches(ctx, []types.JobMatch{{ID: "1"}, {ID: ""}})
		}},
		{"analysis score below 0", func() error {
			_, err := s.AddJDAnalysis(ctx, types.JDAnalysis{AlignmentScore: -1})
			return err
		}},
		{"assessment score above 100", func() error {
			_, err := s.RecordAssessment(ctx, types.AssessmentTechnical, 150)
			return err
		}},
		{"assessment without id", func() error {
			_, err := s.RecordAssessment(ctx, "", 50)
			return err
		}},
		{"practice skill score out of range", func() error {
			return s.UpdatePracticeData(ctx, types.PracticeData{SkillScores: map[string]int{"technical": 101}})
		}},
		{"practice completion without id", func() error {
			return s.UpdatePracticeData(ctx, types.PracticeData{CompletedAssessments: []types.CompletedAssessment{{Score: 10}}})
		}},
		{"readiness above 100", func() error {
			return s.SaveReadinessScore(ctx, types.ReadinessScore{Overall: 500})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.run())

			raw, _, err := kv.Get(ctx, DataKey)
			require.NoError(t, err)
			assert.Equal(t, stored, raw)
		})
	}

	assert.Len(t, s.GetApplications(ctx), 1)
	assert.Len(t, s.GetJobMatches(ctx), 1)
}

func TestSaveData_RejectsSchemaInvalidRecord(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	data := s.GetData(ctx)
	data.Applications = append(data.Applications, types.Application{ID: "a", Company: "Acme", Position: "Dev", Status: "lost"})
	err := s.SaveData(ctx, data)
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, found, err := kv.Get(ctx, DataKey)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "job-platform-data-2024-03-10.json", ExportFilename(fixedNow))
}

func TestStats(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddApplication(ctx, types.Application{Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)
	_, err = s.RecordAssessment(ctx, types.AssessmentAptitude, 40)
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)

	resume, err := json.Marshal(types.NewResume())
	require.NoError(t, err)
	assert.Equal(t, len(resume), stats.ResumeBytes)
	assert.Equal(t, 1, stats.Applications)
	assert.Equal(t, 1, stats.CompletedAssessments)
	assert.Equal(t, 0, stats.JobMatches)
	require.NotNil(t, stats.LastActivity)
}

func TestInit_FreshStore(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	migrated, err := s.Init(ctx)
	require.NoError(t, err)
	assert.False(t, migrated)

	raw, found, err := kv.Get(ctx, DataKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, raw, `"version":2`)

	migrated, err = s.Init(ctx)
	require.NoError(t, err)
	assert.False(t, migrated)
}

func TestInit_ImportsLegacyKeys(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	legacy := `{
		"personalInfo": {"name": "Alex Johnson", "email": "alex@example.com"},
		"summary": "Engineer",
		"experience": [{"id": 1700000000000, "company": "Acme", "description": "Shipped 3 releases"}],
		"skills": "golang, React, SQL, react"
	}`
	require.NoError(t, kv.Set(ctx, LegacyResumeKey, legacy))
	require.NoError(t, kv.Set(ctx, LegacyTemplateKey, "modern"))
	require.NoError(t, kv.Set(ctx, LegacyColorKey, `"forest"`))

	migrated, err := s.Init(ctx)
	require.NoError(t, err)
	assert.True(t, migrated)

	data := s.GetData(ctx)
	assert.Equal(t, types.CurrentVersion, data.Version)
	assert.Equal(t, "Alex Johnson", data.ResumeData.PersonalInfo.Name)
	assert.Equal(t, []string{"Go", "React", "SQL"}, data.ResumeData.Skills.Technical)
	assert.Empty(t, data.ResumeData.Skills.Soft)
	require.Len(t, data.ResumeData.Experience, 1)
	assert.Equal(t, "1700000000000", data.ResumeData.Experience[0].ID)
	assert.Equal(t, types.TemplateModern, data.Preferences.Template)
	assert.Equal(t, types.ColorForest, data.Preferences.Color)

	_, found, err := kv.Get(ctx, LegacyResumeKey)
	require.NoError(t, err)
	assert.True(t, found)

	// A user edit after migration must survive later inits.
	require.NoError(t, s.SaveTemplate(ctx, types.TemplateMinimal))
	migrated, err = s.Init(ctx)
	require.NoError(t, err)
	assert.False(t, migrated)
	assert.Equal(t, types.TemplateMinimal, s.GetTemplate(ctx))
}

func TestInit_BuilderKeyOverridesResumeKey(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, LegacyResumeKey, `{"summary": "old", "links": {"github": "gh"}}`))
	require.NoError(t, kv.Set(ctx, LegacyBuilderKey, `{"summary": "new"}`))

	_, err := s.Init(ctx)
	require.NoError(t, err)

	resume := s.GetResume(ctx)
	assert.Equal(t, "new", resume.Summary)
	assert.Equal(t, "gh", resume.Links.GitHub)
}

func TestInit_IgnoresInvalidLegacyValues(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, LegacyResumeKey, "{broken"))
	require.NoError(t, kv.Set(ctx, LegacyColorKey, "purple"))

	migrated, err := s.Init(ctx)
	require.NoError(t, err)
	assert.False(t, migrated)
	assert.Equal(t, types.ColorTeal, s.GetColor(ctx))
}

func TestInit_UpgradesUnversionedRecord(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	unversioned := `{
		"preferences": {"theme": "dark", "template": "classic", "color": "teal"},
		"resumeData": {"summary": "Existing", "skills": {"technical": ["Go", "GO"], "soft": [], "tools": []}},
		"applications": [
			{"id": 1700000000001, "company": "Acme", "position": "Dev", "status": "ghosted", "appliedAt": "2024-01-15T10:00:00.000Z"},
			{"company": "Globex", "position": "Dev", "status": "offer"}
		],
		"jdAnalyses": [],
		"practiceData": {"completedAssessments": [], "totalScore": 0, "skillScores": {"technical": 40}}
	}`
	require.NoError(t, kv.Set(ctx, DataKey, unversioned))

	migrated, err := s.Init(ctx)
	require.NoError(t, err)
	assert.True(t, migrated)

	data := s.GetData(ctx)
	assert.Equal(t, types.ThemeDark, data.Preferences.Theme)
	assert.Equal(t, "Existing", data.ResumeData.Summary)
	assert.Equal(t, []string{"Go"}, data.ResumeData.Skills.Technical)

	require.Len(t, data.Applications, 2)
	assert.Equal(t, "1700000000001", data.Applications[0].ID)
	assert.Equal(t, types.StatusApplied, data.Applications[0].Status)
	assert.Equal(t, 2024, data.Applications[0].AppliedAt.Year())
	assert.NotEmpty(t, data.Applications[1].ID)
	assert.Equal(t, types.StatusOffer, data.Applications[1].Status)

	assert.Equal(t, 40, data.PracticeData.SkillScores[types.AssessmentTechnical])
	assert.Contains(t, data.PracticeData.SkillScores, types.AssessmentProblemSolving)
}

func TestInit_RepairsOutOfRangeValues(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	unversioned := `{
		"preferences": {"theme": "neon", "color": "navy"},
		"resumeData": {},
		"jobMatches": [{"id": "1", "matchScore": 150}],
		"readinessScore": {"overall": -3},
		"practiceData": {"completedAssessments": [{"assessmentId": "", "score": 20}, {"assessmentId": "technical", "score": 120}], "skillScores": {"technical": 120}}
	}`
	require.NoError(t, kv.Set(ctx, DataKey, unversioned))

	migrated, err := s.Init(ctx)
	require.NoError(t, err)
	assert.True(t, migrated)

	data := s.GetData(ctx)
	assert.Equal(t, types.ThemeLight, data.Preferences.Theme)
	assert.Equal(t, types.ColorNavy, data.Preferences.Color)
	assert.Equal(t, 100, data.JobMatches[0].MatchScore)
	assert.Equal(t, 0, data.ReadinessScore.Overall)
	require.Len(t, data.PracticeData.CompletedAssessments, 1)
	assert.Equal(t, 100, data.PracticeData.CompletedAssessments[0].Score)
	assert.Equal(t, 100, data.PracticeData.SkillScores[types.AssessmentTechnical])
}
