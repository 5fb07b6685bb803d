// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract walks a parsed listing document and produces paper
// records. CVF-style open-access listings announce each paper with a
// <dt> title node, optionally followed by a <dd> detail node holding
// the author links and the PDF / supplementary links.
package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/pdiddy/conference-scraper/pkg/types"
)

// Entry pairs a listing-pass record with the detail-page URL that drives
// enrichment. The detail URL is carried alongside the record rather than
// inside it: it is an enrichment input, never part of the exported data.
type Entry struct {
	Record    types.PaperRecord
	DetailURL string
}

// DefaultMaxPapers caps extraction when no explicit limit is given.
const DefaultMaxPapers = 100

var (
	pdfRe  = regexp.MustCompile(`\.pdf$`)
	suppRe = regexp.MustCompile(`(?i)supplemental|supplementary`)
)

// authorLabels are stripped from plain-text author lines before the
// comma-split fallback.
var authorLabels = []string{"Authors:", "Author:", "By:"}

// Listing extracts up to max entries from a parsed listing document, in
// document order. Base resolves relative links. Malformed entries are
// logged and skipped; a single bad entry never aborts the pass.
func Listing(doc *goquery.Document, base *url.URL, max int, log zerolog.Logger) []Entry {
	if max <= 0 {
		max = DefaultMaxPapers
	}

	var entries []Entry
	doc.Find("dt").EachWithBreak(func(i int, dt *goquery.Selection) bool {
		entry, err := extractEntry(dt, base)
		if err != nil {
			log.Warn().Int("entry", i).Err(err).Msg("skipping malformed entry")
			return true
		}
		if entry.Record.Title == "" {
			// A title node with no text is not a paper.
			return true
		}
		entries = append(entries, entry)
		return len(entries) < max
	})

	log.Info().Int("records", len(entries)).Int("max", max).Msg("listing pass complete")
	return entries
}

// extractEntry builds one Entry from a title node and its immediately
// following detail node, if any.
func extractEntry(dt *goquery.Selection, base *url.URL) (Entry, error) {
	var entry Entry

	// Title from the link text if present, else the node's own text.
	if link := dt.Find("a").First(); link.Length() > 0 {
		entry.Record.Title = strings.TrimSpace(link.Text())
		if href, ok := link.Attr("href"); ok && href != "" {
			abs, err := resolve(base, href)
			if err != nil {
				return Entry{}, fmt.Errorf("resolving title link %q: %w", href, err)
			}
			entry.DetailURL = abs
		}
	} else {
		entry.Record.Title = strings.TrimSpace(dt.Text())
	}

	dd := dt.NextFiltered("dd")
	if dd.Length() > 0 {
		entry.Record.Authors = extractAuthors(dd)
	}

	// First .pdf link and first supplemental link anywhere in the
	// combined title+detail subtree.
	combined := dt.AddSelection(dd)
	if href := firstLink(combined, pdfRe); href != "" {
		abs, err := resolve(base, href)
		if err != nil {
			return Entry{}, fmt.Errorf("resolving pdf link %q: %w", href, err)
		}
		entry.Record.PDFURL = abs
	}
	if href := firstLink(combined, suppRe); href != "" {
		abs, err := resolve(base, href)
		if err != nil {
			return Entry{}, fmt.Errorf("resolving supplementary link %q: %w", href, err)
		}
		entry.Record.SupplementaryURL = abs
	}

	return entry, nil
}

// extractAuthors returns author names from every link inside the detail
// node, in document order. When the node has no links it falls back to
// splitting its plain text on commas after stripping a leading label.
// The fallback misparses "Last, First" name formats; that matches the
// site's markup conventions and is a known limitation.
func extractAuthors(dd *goquery.Selection) []string {
	var authors []string
	dd.Find("a").Each(func(_ int, a *goquery.Selection) {
		if name := strings.TrimSpace(a.Text()); name != "" {
			authors = append(authors, name)
		}
	})
	if len(authors) > 0 {
		return authors
	}

	text := strings.TrimSpace(dd.Text())
	for _, label := range authorLabels {
		if idx := strings.Index(text, label); idx >= 0 {
			text = strings.TrimSpace(text[idx+len(label):])
			break
		}
	}
	if text == "" {
		return nil
	}
	for _, part := range strings.Split(text, ",") {
		if name := strings.TrimSpace(part); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}

// firstLink returns the href of the first anchor in sel whose target
// matches re, in document order. Empty string when none match.
func firstLink(sel *goquery.Selection, re *regexp.Regexp) string {
	var href string
	sel.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		h, ok := a.Attr("href")
		if ok && re.MatchString(h) {
			href = h
			return false
		}
		return true
	})
	return href
}

// resolve makes href absolute against base.
func resolve(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	if base == nil {
		return ref.String(), nil
	}
	return base.ResolveReference(ref).String(), nil
}
