// Package scraper fetches a web page and reads its title.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mateconpizza/rotato"
)

var (
	ErrScrapeNotStarted  = errors.New("scrape not started")
	ErrUnsupportedScheme = errors.New("unsupported scheme")
	ErrBadStatus         = errors.New("unexpected status")
)

const (
	defaultTimeout = 15 * time.Second
	maxBodySize    = 10 * 1024 * 1024
)

type OptFn func(*Options)

type Options struct {
	uri     string
	doc     *goquery.Document
	ctx     context.Context
	client  *http.Client
	started bool
	sp      *rotato.Rotato
}

type Scraper struct {
	Options
}

func WithContext(ctx context.Context) OptFn {
	return func(o *Options) {
		o.ctx = ctx
	}
}

// WithClient replaces the HTTP client.
func WithClient(c *http.Client) OptFn {
	return func(o *Options) {
		o.client = c
	}
}

func WithSpinner() OptFn {
	return func(o *Options) {
		o.sp = rotato.New(
			rotato.WithMesg("fetching title..."),
			rotato.WithMesgColor(rotato.ColorYellow),
			rotato.WithSpinnerColor(rotato.ColorBrightMagenta),
		)
	}
}

func defaults() *Options {
	return &Options{
		ctx: context.Background(),
		client: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// New creates a new Scraper.
func New(s string, opts ...OptFn) *Scraper {
	o := defaults()
	for _, opt := range opts {
		opt(o)
	}

	o.uri = s

	return &Scraper{
		Options: *o,
	}
}

// Start fetches and parses the URL content.
func (s *Scraper) Start() error {
	if s.started {
		return nil
	}

	if s.sp != nil {
		s.sp.Start()
		defer s.sp.Done()
	}

	doc, err := s.fetch()
	if err != nil {
		return err
	}

	s.doc = doc
	s.started = true

	return nil
}

// Title returns the page title, or the og:title meta value when the page
// has no title element. Empty if neither is present.
func (s *Scraper) Title() (string, error) {
	if !s.started {
		return "", ErrScrapeNotStarted
	}

	t := strings.TrimSpace(s.doc.Find("head title").First().Text())
	if t == "" {
		t = strings.TrimSpace(s.doc.Find("title").First().Text())
	}
	if t == "" {
		t = strings.TrimSpace(s.doc.Find("meta[property='og:title']").AttrOr("content", ""))
	}

	return strings.Join(strings.Fields(t), " "), nil
}

// Title fetches u and returns its title.
func Title(ctx context.Context, u string, opts ...OptFn) (string, error) {
	sc := New(u, append([]OptFn{WithContext(ctx)}, opts...)...)
	if err := sc.Start(); err != nil {
		return "", err
	}

	return sc.Title()
}

func setHeaders(r *http.Request) {
	r.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:124.0) Gecko/20100101 Firefox/124.0")
	r.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	r.Header.Set("Accept-Language", "en-US,en;q=0.5")
}

// fetch fetches and parses the HTML content of the scraper's URL.
func (s *Scraper) fetch() (*goquery.Document, error) {
	u := normalizeURL(s.uri)
	if !isSupportedScheme(u) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u)
	}

	req, err := http.NewRequestWithContext(s.ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	setHeaders(req)

	start := time.Now()
	res, err := s.client.Do(req)
	if err != nil {
		slog.Warn("request failed", "url", u, "error", err, "duration", time.Since(start))
		return nil, fmt.Errorf("fetching %q: %w", u, err)
	}

	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("error closing response body", "url", u, "error", err)
		}
	}()

	slog.Debug("received response", "url", u, "status", res.StatusCode, "duration", time.Since(start))

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d from %q", ErrBadStatus, res.StatusCode, u)
	}

	contentType := res.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(strings.ToLower(contentType), "html") {
		slog.Warn("unexpected content type", "url", u, "content_type", contentType)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return doc, nil
}

func normalizeURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return "https://" + raw
	}

	return raw
}

// isSupportedScheme checks if the given URL scheme is supported.
func isSupportedScheme(rawURL string) bool {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}

	scheme := strings.ToLower(parsed.Scheme)

	return scheme == "http" || scheme == "https"
}
