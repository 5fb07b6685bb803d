// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich visits each paper's detail page to fill in the abstract
// and, when still missing, the PDF link. Enrichment only augments: a
// field already set on a record is never overwritten, and a failed fetch
// leaves its record unchanged.
package enrich

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/pdiddy/conference-scraper/internal/extract"
	"github.com/pdiddy/conference-scraper/pkg/types"
)

// PageFetcher retrieves a URL as a parsed document. Satisfied by
// *fetch.Fetcher; tests substitute stubs.
type PageFetcher interface {
	Page(ctx context.Context, url string) (*goquery.Document, error)
}

var abstractClassRe = regexp.MustCompile(`(?i)abstract`)

// Enricher runs the detail enrichment pass.
type Enricher struct {
	fetcher PageFetcher
	limiter *rate.Limiter
	workers int
	log     zerolog.Logger
}

// New creates an Enricher. The throttle allows cfg.EnrichBatch fetches
// per cfg.EnrichPause interval (token bucket with burst = batch), so a
// run pauses briefly after every batch rather than hammering the site.
// cfg.Workers > 1 enables a bounded fetch pool; record order and
// per-record failure independence are preserved either way.
func New(fetcher PageFetcher, cfg types.ScrapeConfig, log zerolog.Logger) *Enricher {
	batch := cfg.EnrichBatch
	if batch <= 0 {
		batch = 5
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.EnrichPause > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.EnrichPause/time.Duration(batch)), batch)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Enricher{fetcher: fetcher, limiter: limiter, workers: workers, log: log}
}

// Enrich processes entries in order and returns the final records, one
// per entry, in the same order. Fetch failures are logged and leave the
// affected record as extracted; they never abort the pass.
func (e *Enricher) Enrich(ctx context.Context, entries []extract.Entry) []types.PaperRecord {
	records := make([]types.PaperRecord, len(entries))

	if e.workers <= 1 {
		for i, entry := range entries {
			records[i] = e.enrichOne(ctx, entry)
		}
		return records
	}

	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, entry extract.Entry) {
			defer wg.Done()
			defer func() { <-sem }()
			records[i] = e.enrichOne(ctx, entry)
		}(i, entry)
	}
	wg.Wait()
	return records
}

// enrichOne fetches the entry's detail page and augments its record.
func (e *Enricher) enrichOne(ctx context.Context, entry extract.Entry) types.PaperRecord {
	record := entry.Record

	detailURL := entry.DetailURL
	if detailURL == "" {
		detailURL = DetailURLFromPDF(record.PDFURL)
	}
	if detailURL == "" {
		return record
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return record
	}

	doc, err := e.fetcher.Page(ctx, detailURL)
	if err != nil {
		e.log.Warn().Str("url", detailURL).Err(err).Msg("detail fetch failed; record kept without abstract")
		return record
	}

	if record.Abstract == "" {
		record.Abstract = findAbstract(doc)
	}
	if record.PDFURL == "" {
		record.PDFURL = findPDFLink(doc, detailURL)
	}
	return record
}

// DetailURLFromPDF derives a detail-page URL from a PDF URL by the
// site's path convention: /papers/ becomes /, .pdf becomes .html.
// Returns "" when no PDF URL is available.
func DetailURLFromPDF(pdfURL string) string {
	if pdfURL == "" {
		return ""
	}
	u := strings.Replace(pdfURL, "/papers/", "/", 1)
	return strings.TrimSuffix(u, ".pdf") + ".html"
}

// findAbstract locates the abstract container: div#abstract first, then
// the first div whose class mentions "abstract".
func findAbstract(doc *goquery.Document) string {
	if sel := doc.Find("div#abstract").First(); sel.Length() > 0 {
		return strings.TrimSpace(sel.Text())
	}
	var text string
	doc.Find("div[class]").EachWithBreak(func(_ int, div *goquery.Selection) bool {
		class, _ := div.Attr("class")
		if abstractClassRe.MatchString(class) {
			text = strings.TrimSpace(div.Text())
			return false
		}
		return true
	})
	return text
}

// findPDFLink returns the first .pdf-suffixed link on the detail page,
// resolved against the page URL.
func findPDFLink(doc *goquery.Document, pageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}
	var href string
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		h, ok := a.Attr("href")
		if !ok || !strings.HasSuffix(h, ".pdf") {
			return true
		}
		if base != nil {
			if ref, err := url.Parse(h); err == nil {
				h = base.ResolveReference(ref).String()
			}
		}
		href = h
		return false
	})
	return href
}
