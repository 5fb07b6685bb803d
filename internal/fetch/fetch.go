// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves pages and returns parsed document trees.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/pdiddy/conference-scraper/pkg/types"
)

// maxBodyBytes caps how much of a response body is read. Listing pages
// for large conferences run to a few MB; anything past this is not HTML
// we want.
const maxBodyBytes = 10 * 1024 * 1024

// Error is a fetch failure: a transport error or a non-2xx response.
// Status is zero when the request never produced a response.
type Error struct {
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetching %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Fetcher issues single GET requests and parses the responses. No
// retries, no caching; redirects follow the transport default.
type Fetcher struct {
	client *http.Client
	ua     string
	log    zerolog.Logger
}

// New creates a Fetcher with the configured timeout and User-Agent.
func New(cfg types.HTTPConfig, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: cfg.Timeout},
		ua:     cfg.UserAgent,
		log:    log,
	}
}

// NewWithClient creates a Fetcher around an existing client. Tests use
// this with httptest server clients.
func NewWithClient(client *http.Client, userAgent string, log zerolog.Logger) *Fetcher {
	return &Fetcher{client: client, ua: userAgent, log: log}
}

// Page performs a GET for url and returns the parsed document. On any
// HTTP or network failure it returns a *Error carrying the URL and cause.
func (f *Fetcher) Page(ctx context.Context, url string) (*goquery.Document, error) {
	f.log.Debug().Str("url", url).Msg("fetching page")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &Error{URL: url, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{URL: url, Err: fmt.Errorf("parsing document: %w", err)}
	}
	return doc, nil
}
