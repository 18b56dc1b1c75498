package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestFetcher(t *testing.T, opts Options) *Fetcher {
	t.Helper()
	f := New(opts, nil)
	t.Cleanup(f.Close)
	return f
}

func posting(body string) string {
	return "<html><body><nav>Jobs Home</nav><div class=\"job-description\">" + body + "</div><form>Apply now</form></body></html>"
}

func TestPage_Success(t *testing.T) {
	var gotAgent, gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotHeader = r.Header.Get("Accept-Language")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Test</h1></body></html>"))
	}))
	defer server.Close()

	f := newTestFetcher(t, Options{Headers: map[string]string{"Accept-Language": "en"}})
	page, err := f.Page(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, server.URL, page.URL)
	assert.Contains(t, page.HTML, "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Equal(t, "text/html", page.ContentType)
	assert.Equal(t, DefaultUserAgent, gotAgent)
	assert.Equal(t, "en", gotHeader)
}

func TestPage_InvalidURL(t *testing.T) {
	f := newTestFetcher(t, DefaultOptions())

	for _, u := range []string{"not-a-valid-url", "ftp://example.com/job", "https://"} {
		_, err := f.Page(context.Background(), u)
		var fetchErr *Error
		require.ErrorAs(t, err, &fetchErr, u)
		assert.Contains(t, err.Error(), "invalid URL")
	}
}

func TestPage_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := newTestFetcher(t, DefaultOptions())
	page, err := f.Page(context.Background(), server.URL)
	require.Error(t, err)
	require.NotNil(t, page)
	assert.Equal(t, http.StatusNotFound, page.StatusCode)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "404")
}

func TestJobDescription_ExtractsPostingText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(posting("<h2>Backend Engineer</h2>\n<p>We need Go and PostgreSQL.</p>")))
	}))
	defer server.Close()

	f := newTestFetcher(t, DefaultOptions())
	jd, err := f.JobDescription(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, PlatformUnknown, jd.Platform)
	assert.Equal(t, "Backend Engineer\nWe need Go and PostgreSQL.", jd.Text)
	assert.False(t, jd.Rendered)
}

func TestJobDescription_BrowserFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(posting("Loading...")))
	}))
	defer server.Close()

	long := strings.Repeat("Design and operate distributed systems. ", 20)
	var calls int
	renderer := func(_ context.Context, url string) (string, error) {
		calls++
		assert.Equal(t, server.URL, url)
		return posting(long), nil
	}

	disabled := newTestFetcher(t, DefaultOptions()).WithRenderer(renderer)
	jd, err := disabled.JobDescription(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Loading...", jd.Text)
	assert.Zero(t, calls)

	opts := DefaultOptions()
	opts.UseBrowser = true
	enabled := newTestFetcher(t, opts).WithRenderer(renderer)
	jd, err = enabled.JobDescription(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, jd.Rendered)
	assert.Equal(t, strings.TrimSpace(long), jd.Text)
}

func TestJobDescription_BrowserFailureKeepsHTTPText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(posting("Short posting")))
	}))
	defer server.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	opts := DefaultOptions()
	opts.UseBrowser = true
	f := New(opts, zap.New(core)).WithRenderer(func(context.Context, string) (string, error) {
		return "", errors.New("chrome not installed")
	})
	t.Cleanup(f.Close)

	jd, err := f.JobDescription(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Short posting", jd.Text)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "browser rendering failed, keeping HTTP text", logs.All()[0].Message)
}

func TestJobDescription_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><nav>Only navigation</nav></body></html>"))
	}))
	defer server.Close()

	f := newTestFetcher(t, DefaultOptions())
	_, err := f.JobDescription(context.Background(), server.URL)
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "no job description text found")
}

func TestJobDescriptions_KeepsOrderAndErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(posting("Role at " + r.URL.Path)))
	}))
	defer server.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	opts := DefaultOptions()
	opts.Concurrency = 2
	f := New(opts, zap.New(core))
	t.Cleanup(f.Close)

	urls := []string{server.URL + "/a", server.URL + "/missing", server.URL + "/c"}
	results, err := f.JobDescriptions(context.Background(), urls)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "Role at /a", results[0].Description.Text)
	assert.Error(t, results[1].Err)
	assert.Nil(t, results[1].Description)
	assert.Equal(t, "Role at /c", results[2].Description.Text)
	for i, r := range results {
		assert.Equal(t, urls[i], r.URL)
	}
	assert.Equal(t, 1, logs.Len())
}

func TestJobDescriptions_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := newTestFetcher(t, DefaultOptions())
	results, err := f.JobDescriptions(ctx, []string{"https://example.com/job"})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}

func TestExtractMainText_WithMainElement(t *testing.T) {
	html := `
	<html>
		<body>
			<nav>Navigation</nav>
			<main>
				<h1>Main Content</h1>
				<p>This is the main text.</p>
			</main>
			<footer>Footer</footer>
		</body>
	</html>`

	text, err := ExtractMainText(html, JobPostingSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Main Content\nThis is the main text.", text)
}

func TestExtractMainText_FallbackToBody(t *testing.T) {
	html := `<html><body><script>var x = 1;</script><p>Body text</p></body></html>`

	text, err := ExtractMainText(html, []string{".does-not-exist"})
	require.NoError(t, err)
	assert.Equal(t, "Body text", text)
}

func TestExtractMainText_NoiseSelectors(t *testing.T) {
	html := `<html><body><article><p>Keep this</p><div class="eeo-statement">Equal opportunity</div></article></body></html>`

	text, err := ExtractMainText(html, []string{"article"}, ".eeo-statement")
	require.NoError(t, err)
	assert.Equal(t, "Keep this", text)
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("   "))
	assert.True(t, ShouldUseBrowser(strings.Repeat("a", MinContentLength-1)))
	assert.False(t, ShouldUseBrowser(strings.Repeat("a", MinContentLength)))
}
