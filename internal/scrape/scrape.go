// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape ties the passes together: fetch the listing page,
// extract records, optionally enrich each one from its detail page.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/pdiddy/conference-scraper/internal/enrich"
	"github.com/pdiddy/conference-scraper/internal/extract"
	"github.com/pdiddy/conference-scraper/internal/fetch"
	"github.com/pdiddy/conference-scraper/pkg/types"
)

// ErrNoRecords reports that the listing pass yielded zero records. It is
// distinct from a fetch failure: the page was retrieved, but nothing in
// it matched the expected title/detail markup — usually a sign the site
// structure changed.
var ErrNoRecords = errors.New("no records extracted: the listing page structure may have changed")

// Result holds the outcome of one scrape run.
type Result struct {
	Records []types.PaperRecord
}

// WithAbstracts counts records carrying a non-empty abstract.
func (r Result) WithAbstracts() int {
	n := 0
	for _, rec := range r.Records {
		if rec.HasAbstract() {
			n++
		}
	}
	return n
}

// WithPDFs counts records carrying a PDF link.
func (r Result) WithPDFs() int {
	n := 0
	for _, rec := range r.Records {
		if rec.HasPDF() {
			n++
		}
	}
	return n
}

// Run executes a full scrape session. The listing fetch failing aborts
// the run; individual enrichment failures do not. Nothing is written to
// disk here, so a mid-run failure produces no partial output.
func Run(ctx context.Context, fetcher *fetch.Fetcher, cfg types.ScrapeConfig, log zerolog.Logger, w io.Writer) (Result, error) {
	base, err := baseURL(cfg.ListingURL)
	if err != nil {
		return Result{}, fmt.Errorf("parsing listing URL %q: %w", cfg.ListingURL, err)
	}

	fmt.Fprintf(w, "fetching listing: %s\n", cfg.ListingURL)
	doc, err := fetcher.Page(ctx, cfg.ListingURL)
	if err != nil {
		return Result{}, err
	}

	entries := extract.Listing(doc, base, cfg.MaxPapers, log)
	if len(entries) == 0 {
		return Result{}, ErrNoRecords
	}
	fmt.Fprintf(w, "extracted %d paper(s)\n", len(entries))

	if !cfg.FetchAbstracts {
		fmt.Fprintln(w, "skipping abstract enrichment")
		result := Result{Records: make([]types.PaperRecord, len(entries))}
		for i, e := range entries {
			result.Records[i] = e.Record
		}
		return result, nil
	}

	fmt.Fprintf(w, "fetching abstracts for %d paper(s)\n", len(entries))
	enricher := enrich.New(fetcher, cfg, log)
	records := enricher.Enrich(ctx, entries)

	result := Result{Records: records}
	fmt.Fprintf(w, "enriched: %d with abstracts, %d with PDF links\n",
		result.WithAbstracts(), result.WithPDFs())
	return result, nil
}

// baseURL derives the link-resolution base (scheme + host) from the
// listing URL.
func baseURL(listing string) (*url.URL, error) {
	u, err := url.Parse(listing)
	if err != nil {
		return nil, err
	}
	return &url.URL{Scheme: u.Scheme, Host: u.Host}, nil
}
