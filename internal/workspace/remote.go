package workspace

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/career-readiness/internal/fetch"
	"github.com/jonathan/career-readiness/internal/types"
	"go.uber.org/zap"
)

// DescriptionFetcher downloads job postings for analysis.
type DescriptionFetcher interface {
	JobDescriptions(ctx context.Context, urls []string) ([]fetch.BatchResult, error)
}

// AnalyzeURLs fetches each posting and analyzes the ones that could be read. Analyses
// keep the order of urls; failed URLs are reported together in the returned error.
func (w *Workspace) AnalyzeURLs(ctx context.Context, f DescriptionFetcher, urls []string) ([]types.JDAnalysis, error) {
	results, err := f.JobDescriptions(ctx, urls)
	if err != nil {
		return nil, err
	}

	var analyses []types.JDAnalysis
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			continue
		}
		stored, err := w.AnalyzeJobDescription(ctx, r.Description.Text)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.URL, err))
			continue
		}
		w.logger.Info("analyzed job posting",
			zap.String("url", r.URL),
			zap.String("platform", string(r.Description.Platform)),
			zap.Int("alignment", stored.AlignmentScore))
		analyses = append(analyses, stored)
	}
	return analyses, errors.Join(errs...)
}

// Preference keys accepted by SetPreference
const (
	PrefTheme         = "theme"
	PrefTemplate      = "template"
	PrefColor         = "color"
	PrefNotifications = "notifications"
	PrefAutoSave      = "autosave"
)

// PreferenceKeys lists the keys accepted by SetPreference.
func PreferenceKeys() []string {
	return []string{PrefTheme, PrefTemplate, PrefColor, PrefNotifications, PrefAutoSave}
}

// SetPreference updates one preference from its string form.
func (w *Workspace) SetPreference(ctx context.Context, key, value string) error {
	value = strings.TrimSpace(value)
	switch strings.ToLower(key) {
	case PrefTemplate:
		return w.SetTemplate(ctx, value)
	case PrefColor:
		return w.SetColor(ctx, value)
	}

	prefs := w.Store.GetPreferences(ctx)
	switch strings.ToLower(key) {
	case PrefTheme:
		prefs.Theme = value
	case PrefNotifications, PrefAutoSave:
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: expected true or false", value, key)
		}
		if strings.ToLower(key) == PrefNotifications {
			prefs.Notifications = enabled
		} else {
			prefs.AutoSave = enabled
		}
	default:
		return fmt.Errorf("unknown preference %q (expected one of %s)", key, strings.Join(PreferenceKeys(), ", "))
	}
	return w.Store.SavePreferences(ctx, prefs)
}
