// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/conference-scraper/pkg/types"
)

// SearchResult is an archived paper with its provenance and FTS rank.
type SearchResult struct {
	types.PaperRecord
	ListingURL string `json:"listing_url" yaml:"listing_url"`
}

// Search runs a ranked FTS5 query over title, authors, and abstract.
// maxResults of zero uses the store default.
func (s *Store) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty query")
	}
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.title, p.authors, p.abstract, p.pdf_url, p.supplementary_url, p.listing_url
		 FROM papers_fts
		 JOIN papers p ON p.rowid = papers_fts.rowid
		 WHERE papers_fts MATCH ?
		 ORDER BY papers_fts.rank
		 LIMIT ?`,
		query, maxResults,
	)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var (
			r           SearchResult
			authorsJSON sql.NullString
			abstract    sql.NullString
			pdfURL      sql.NullString
			suppURL     sql.NullString
		)
		if err := rows.Scan(&r.Title, &authorsJSON, &abstract, &pdfURL, &suppURL, &r.ListingURL); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if authorsJSON.Valid {
			json.Unmarshal([]byte(authorsJSON.String), &r.Authors)
		}
		r.Abstract = abstract.String
		r.PDFURL = pdfURL.String
		r.SupplementaryURL = suppURL.String
		results = append(results, r)
	}
	return results, rows.Err()
}

// FormatResults writes search results as a human-readable table.
func FormatResults(results []SearchResult, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-24s  %s\n", "Rank", "Title", "Authors", "PDF")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, r := range results {
		title := r.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		authors := formatAuthors(r.Authors)
		pdf := ""
		if r.PDFURL != "" {
			pdf = "yes"
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-24s  %s\n", i+1, title, authors, pdf)
	}

	fmt.Fprintf(w, "\n%d result(s)\n", len(results))
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 24)
	default:
		return truncate(authors[0], 18) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
