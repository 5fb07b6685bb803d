// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/conference-scraper/pkg/types"
)

const (
	previewCount    = 10
	previewAuthors  = 3
	abstractPreview = 200
)

// WriteSummary writes a plain-text summary report: totals, abstract and
// PDF coverage, and a preview of the first papers.
func WriteSummary(records []types.PaperRecord, title, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return writeSummary(records, title, f)
}

func writeSummary(records []types.PaperRecord, title string, w io.Writer) error {
	withAbstract := 0
	withPDF := 0
	for _, r := range records {
		if r.HasAbstract() {
			withAbstract++
		}
		if r.HasPDF() {
			withPDF++
		}
	}

	fmt.Fprintf(w, "%s\n", title)
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", 50))
	fmt.Fprintf(w, "Total Papers Extracted: %d\n\n", len(records))
	fmt.Fprintf(w, "Papers with Abstracts: %d\n", withAbstract)
	fmt.Fprintf(w, "Papers with PDF Links: %d\n\n", withPDF)

	fmt.Fprintln(w, "Sample Papers:")
	fmt.Fprintln(w, strings.Repeat("-", 50))

	for i, r := range records {
		if i >= previewCount {
			break
		}
		fmt.Fprintf(w, "\n%d. %s\n", i+1, r.Title)
		if len(r.Authors) > 0 {
			shown := r.Authors
			if len(shown) > previewAuthors {
				shown = shown[:previewAuthors]
			}
			fmt.Fprintf(w, "   Authors: %s", strings.Join(shown, ", "))
			if len(r.Authors) > previewAuthors {
				fmt.Fprintf(w, " et al. (%d total)", len(r.Authors))
			}
			fmt.Fprintln(w)
		}
		if r.Abstract != "" {
			abstract := r.Abstract
			if len(abstract) > abstractPreview {
				abstract = abstract[:abstractPreview] + "..."
			}
			fmt.Fprintf(w, "   Abstract: %s\n", abstract)
		}
	}
	return nil
}
