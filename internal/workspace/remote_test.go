package workspace

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/career-readiness/internal/fetch"
	"github.com/jonathan/career-readiness/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	results []fetch.BatchResult
	err     error
}

func (s stubFetcher) JobDescriptions(context.Context, []string) ([]fetch.BatchResult, error) {
	return s.results, s.err
}

func TestAnalyzeURLs(t *testing.T) {
	ctx := context.Background()
	ws := newTestWorkspace(t, nil)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			w.WriteHeader(http.StatusGone)
			return
		}
		_, _ = w.Write([]byte(`<html><body><main>Looking for Go and Kubernetes experience.</main></body></html>`))
	}))
	defer server.Close()

	f := fetch.New(fetch.DefaultOptions(), nil)
	defer f.Close()

	analyses, err := ws.AnalyzeURLs(ctx, f, []string{server.URL + "/job", server.URL + "/gone"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "410")
	require.Len(t, analyses, 1)
	assert.Contains(t, analyses[0].RequiredSkills, "kubernetes")
	assert.Len(t, ws.Store.GetJDAnalyses(ctx), 1)
}

func TestAnalyzeURLs_FetcherError(t *testing.T) {
	ws := newTestWorkspace(t, nil)

	_, err := ws.AnalyzeURLs(context.Background(), stubFetcher{err: context.Canceled}, []string{"https://example.com"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeURLs_EmptyDescription(t *testing.T) {
	ws := newTestWorkspace(t, nil)

	results := []fetch.BatchResult{
		{URL: "https://a", Description: &fetch.JobDescription{Text: "   "}},
		{URL: "https://b", Err: errors.New("boom")},
	}
	analyses, err := ws.AnalyzeURLs(context.Background(), stubFetcher{results: results}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "https://a")
	assert.Contains(t, err.Error(), "boom")
	assert.Empty(t, analyses)
}

func TestSetPreference(t *testing.T) {
	ctx := context.Background()
	ws := newTestWorkspace(t, nil)

	require.NoError(t, ws.SetPreference(ctx, "theme", "dark"))
	require.NoError(t, ws.SetPreference(ctx, "Template", "modern"))
	require.NoError(t, ws.SetPreference(ctx, "color", "navy"))
	require.NoError(t, ws.SetPreference(ctx, "notifications", "false"))
	require.NoError(t, ws.SetPreference(ctx, "autosave", "0"))

	prefs := ws.Store.GetPreferences(ctx)
	assert.Equal(t, types.Preferences{
		Theme:         types.ThemeDark,
		Template:      types.TemplateModern,
		Color:         types.ColorNavy,
		Notifications: false,
		AutoSave:      false,
	}, prefs)

	assert.Error(t, ws.SetPreference(ctx, "theme", "sepia"))
	assert.Error(t, ws.SetPreference(ctx, "autosave", "maybe"))
	assert.Error(t, ws.SetPreference(ctx, "font", "serif"))
	assert.Equal(t, types.ThemeDark, ws.Store.GetPreferences(ctx).Theme)
}
