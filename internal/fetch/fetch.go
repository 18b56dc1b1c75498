// Package fetch downloads job postings and reduces them to plain description text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; CareerReadiness/1.0)"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 5 << 20

// Page holds the raw response of a URL fetch.
type Page struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// JobDescription is the extracted text of a job posting.
type JobDescription struct {
	URL      string
	Platform Platform
	Text     string
	Rendered bool
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures a Fetcher.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	// UseBrowser enables headless rendering when a page yields too little text.
	UseBrowser bool
	// Concurrency limits parallel fetches in JobDescriptions. Zero means one per URL.
	Concurrency int
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() Options {
	return Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Fetcher retrieves job postings over HTTP, falling back to a headless browser when enabled.
type Fetcher struct {
	opts   Options
	client *http.Client
	render Renderer
	logger *zap.Logger
}

// New creates a Fetcher. A nil logger disables logging.
func New(opts Options, logger *zap.Logger) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &Fetcher{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout, Transport: transport},
		render: ChromeRenderer(opts.Timeout),
		logger: logger,
	}
}

// WithRenderer replaces the browser renderer used for the fallback.
func (f *Fetcher) WithRenderer(r Renderer) *Fetcher {
	f.render = r
	return f
}

// Close releases idle HTTP connections.
func (f *Fetcher) Close() {
	f.client.CloseIdleConnections()
}

// Page retrieves the raw HTML of a URL. A non-200 response returns the page together with an error.
func (f *Fetcher) Page(ctx context.Context, urlStr string) (*Page, error) {
	if err := validateURL(urlStr); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	for key, value := range f.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	page := &Page{
		URL:         urlStr,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		return page, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return page, nil
}

// JobDescription fetches a posting and extracts its description text using the
// selectors of the detected job board. Short results are re-fetched through the
// browser renderer when UseBrowser is set.
func (f *Fetcher) JobDescription(ctx context.Context, urlStr string) (*JobDescription, error) {
	platform := DetectPlatform(urlStr)
	log := f.logger.With(zap.String("url", urlStr), zap.String("platform", string(platform)))

	page, err := f.Page(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	text, err := ExtractMainText(page.HTML, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to extract text", Cause: err}
	}
	jd := &JobDescription{URL: urlStr, Platform: platform, Text: text}

	if ShouldUseBrowser(text) && f.opts.UseBrowser && f.render != nil {
		log.Debug("page text too short, rendering in browser", zap.Int("chars", len(text)))
		html, err := f.render(ctx, urlStr)
		if err != nil {
			log.Warn("browser rendering failed, keeping HTTP text", zap.Error(err))
		} else if rendered, err := ExtractMainText(html, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...); err == nil && len(rendered) > len(text) {
			jd.Text = rendered
			jd.Rendered = true
		}
	}

	if strings.TrimSpace(jd.Text) == "" {
		return nil, &Error{URL: urlStr, Message: "no job description text found"}
	}
	log.Debug("fetched job description", zap.Int("chars", len(jd.Text)), zap.Bool("rendered", jd.Rendered))
	return jd, nil
}

// ExtractMainText parses HTML and returns the main body text.
// It removes noise elements using noiseSelectors, then finds content using contentSelectors.
// If no content selectors match, it falls back to the body element.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup").Remove()
	if len(noiseSelectors) > 0 {
		doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
	}

	var main *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			main = selection.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	return cleanWhitespace(main.Text()), nil
}

// JobPostingSelectors returns selectors for generic job board pages.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		".job-content",
		"#job-description",
		"#job-content",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
		".content",
		"#content",
	}
}

func validateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}
	return nil
}

// cleanWhitespace trims every line and drops blank ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
