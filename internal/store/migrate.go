package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/jonathan/career-readiness/internal/skills"
	"github.com/go-playground/validator/v10"
	"github.com/jonathan/career-readiness/internal/types"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// migration upgrades a record from version from to from+1. apply reports whether it
// changed any user-visible data.
type migration struct {
	from  int
	name  string
	apply func(ctx context.Context, s *Store, d *types.Data) (bool, error)
}

var migrations = []migration{
	{from: 0, name: "legacy-import", apply: importLegacy},
	{from: 1, name: "normalize", apply: normalizeRecord},
}

// Init brings the persisted record up to types.CurrentVersion and persists it once.
// It returns true when a step changed data. Calling Init on a current record is a no-op.
func (s *Store) Init(ctx context.Context) (bool, error) {
	data, err := s.loadForMigration(ctx)
	if err != nil {
		return false, err
	}
	if data.Version >= types.CurrentVersion {
		return false, nil
	}

	migrated := false
	for _, m := range migrations {
		if data.Version > m.from {
			continue
		}
		changed, err := m.apply(ctx, s, data)
		if err != nil {
			return false, fmt.Errorf("migration %s failed: %w", m.name, err)
		}
		data.Version = m.from + 1
		migrated = migrated || changed
		s.logger.Debug("applied migration",
			zap.String("migration", m.name),
			zap.Int("version", data.Version),
			zap.Bool("changed", changed))
	}

	if err := s.write(ctx, data); err != nil {
		return false, err
	}
	if migrated {
		s.logger.Info("migrated stored data", zap.Int("version", data.Version))
	}
	return migrated, nil
}

// loadForMigration reads the stored record. Records written before versioning are
// decoded leniently, since they may carry numeric ids and loosely typed fields.
func (s *Store) loadForMigration(ctx context.Context) (*types.Data, error) {
	raw, found, err := s.kv.Get(ctx, DataKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read unified record: %w", err)
	}
	if !found {
		data := types.NewData()
		data.Version = 0
		return data, nil
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		s.logger.Warn("stored unified record is corrupt, starting from defaults", zap.Error(err))
		data := types.NewData()
		data.Version = 0
		return data, nil
	}

	if version, _ := doc["version"].(float64); version >= 1 {
		data, err := decode([]byte(raw))
		if err != nil {
			s.logger.Warn("stored unified record is invalid, starting from defaults", zap.Error(err))
			data = types.NewData()
			data.Version = 0
		}
		return data, nil
	}

	data := types.NewData()
	if err := decodeLenient(doc, data); err != nil {
		s.logger.Warn("unversioned record could not be decoded, starting from defaults", zap.Error(err))
		data = types.NewData()
	}
	data.Version = 0
	data.Normalize()
	return data, nil
}

// importLegacy merges the feature-scoped blobs of older builds into the record.
// The legacy keys are only read.
func importLegacy(ctx context.Context, s *Store, d *types.Data) (bool, error) {
	changed := false

	for _, key := range []string{LegacyResumeKey, LegacyBuilderKey} {
		raw, found, err := s.kv.Get(ctx, key)
		if err != nil {
			return false, err
		}
		if !found || strings.TrimSpace(raw) == "" {
			continue
		}
		var doc map[string]any
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			s.logger.Warn("skipping unreadable legacy resume", zap.String("key", key), zap.Error(err))
			continue
		}
		if err := mergeLegacyResume(&d.ResumeData, doc); err != nil {
			s.logger.Warn("skipping undecodable legacy resume", zap.String("key", key), zap.Error(err))
			continue
		}
		changed = true
	}

	prefs := d.Preferences
	if v, ok, err := s.legacyString(ctx, LegacyTemplateKey); err != nil {
		return false, err
	} else if ok {
		prefs.Template = v
	}
	if v, ok, err := s.legacyString(ctx, LegacyColorKey); err != nil {
		return false, err
	} else if ok {
		prefs.Color = v
	}
	if prefs != d.Preferences {
		if err := prefs.Validate(); err != nil {
			s.logger.Warn("ignoring invalid legacy preferences", zap.Error(err))
		} else {
			d.Preferences = prefs
			changed = true
		}
	}

	return changed, nil
}

// legacyString reads a legacy plain-string value. JSON-quoted values are unquoted.
func (s *Store) legacyString(ctx context.Context, key string) (string, bool, error) {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil || !found {
		return "", false, err
	}
	value := strings.TrimSpace(raw)
	var unquoted string
	if err := json.Unmarshal([]byte(value), &unquoted); err == nil {
		value = unquoted
	}
	return value, value != "", nil
}

// mergeLegacyResume overlays the top-level fields present in doc onto resume.
func mergeLegacyResume(resume *types.Resume, doc map[string]any) error {
	var legacy types.Resume
	if err := decodeLenient(doc, &legacy); err != nil {
		return err
	}
	legacy.Normalize()

	for key := range doc {
		switch key {
		case "personalInfo":
			resume.PersonalInfo = legacy.PersonalInfo
		case "summary":
			resume.Summary = legacy.Summary
		case "experience":
			resume.Experience = legacy.Experience
		case "education":
			resume.Education = legacy.Education
		case "projects":
			resume.Projects = legacy.Projects
		case "skills":
			resume.Skills = legacy.Skills
		case "links":
			resume.Links = legacy.Links
		}
	}
	return nil
}

// normalizeRecord assigns missing or duplicate ids, dedupes skills, repairs unknown
// statuses and preferences, and brings scores back into range so the record passes
// the schema.
func normalizeRecord(_ context.Context, s *Store, d *types.Data) (bool, error) {
	changed := d.ResumeData.EnsureIDs(s.newID)

	before := d.ResumeData.Skills.Count()
	d.ResumeData.Skills.Dedupe()
	if d.ResumeData.Skills.Count() != before {
		changed = true
	}

	if repairPreferences(&d.Preferences) {
		changed = true
	}

	for i := range d.JobMatches {
		if d.JobMatches[i].ID == "" {
			d.JobMatches[i].ID = s.newID()
			changed = true
		}
		changed = clampPercent(&d.JobMatches[i].MatchScore) || changed
	}

	seen := make(map[string]bool)
	for i := range d.Applications {
		if app := &d.Applications[i]; app.ID == "" || seen[app.ID] {
			app.ID = s.newID()
			changed = true
		}
		seen[d.Applications[i].ID] = true
		if !d.Applications[i].Status.Valid() {
			d.Applications[i].Status = types.StatusApplied
			changed = true
		}
	}

	seen = make(map[string]bool)
	for i := range d.JDAnalyses {
		if a := &d.JDAnalyses[i]; a.ID == "" || seen[a.ID] {
			a.ID = s.newID()
			changed = true
		}
		seen[d.JDAnalyses[i].ID] = true
		changed = clampPercent(&d.JDAnalyses[i].AlignmentScore) || changed
	}

	d.PracticeData.Normalize()
	if repairPractice(&d.PracticeData) {
		changed = true
	}

	score := &d.ReadinessScore
	for _, v := range []*int{
		&score.Overall,
		&score.Breakdown.JobMatchQuality,
		&score.Breakdown.JDSkillAlignment,
		&score.Breakdown.ResumeATSScore,
		&score.Breakdown.ApplicationProgress,
		&score.Breakdown.PracticeCompletion,
	} {
		changed = clampPercent(v) || changed
	}
	return changed, nil
}

// repairPreferences resets every preference that fails validation to its default.
func repairPreferences(p *types.Preferences) bool {
	err := p.Validate()
	if err == nil {
		return false
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		*p = types.DefaultPreferences()
		return true
	}
	defaults := types.DefaultPreferences()
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "Theme":
			p.Theme = defaults.Theme
		case "Template":
			p.Template = defaults.Template
		case "Color":
			p.Color = defaults.Color
		}
	}
	return true
}

// repairPractice drops completions without an assessment id and clamps scores.
func repairPractice(p *types.PracticeData) bool {
	changed := false
	kept := p.CompletedAssessments[:0]
	for _, c := range p.CompletedAssessments {
		if c.AssessmentID == "" {
			changed = true
			continue
		}
		changed = clampPercent(&c.Score) || changed
		kept = append(kept, c)
	}
	p.CompletedAssessments = kept

	for id, score := range p.SkillScores {
		if clampPercent(&score) {
			p.SkillScores[id] = score
			changed = true
		}
	}
	if p.TotalScore < 0 {
		p.TotalScore = 0
		changed = true
	}
	return changed
}

func clampPercent(v *int) bool {
	switch {
	case *v < 0:
		*v = 0
	case *v > 100:
		*v = 100
	default:
		return false
	}
	return true
}

func decodeLenient(input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           output,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			legacySkillsHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// legacySkillsHook accepts the old comma-separated skills string and files every
// entry under technical skills.
func legacySkillsHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(types.Skills{}) {
		return data, nil
	}
	return map[string]any{
		"technical": skills.SplitList(data.(string)),
		"soft":      []string{},
		"tools":     []string{},
	}, nil
}
