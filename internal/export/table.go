// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/conference-scraper/pkg/types"
)

// TableOptions control the terminal rendering of an export.
type TableOptions struct {
	// MaxRows limits how many records are shown. Zero shows all.
	MaxRows int

	// MaxColWidth caps each column's width (default 50).
	MaxColWidth int
}

// FormatTable renders records as an aligned table. Cells longer than the
// column width are truncated with an ellipsis.
func FormatTable(records []types.PaperRecord, opts TableOptions, w io.Writer) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No data to display")
		return
	}

	maxWidth := opts.MaxColWidth
	if maxWidth <= 0 {
		maxWidth = 50
	}

	shown := records
	if opts.MaxRows > 0 && len(shown) > opts.MaxRows {
		shown = shown[:opts.MaxRows]
	}

	rows := make([][]string, 0, len(shown))
	for _, r := range shown {
		rows = append(rows, []string{
			r.Title,
			strings.Join(r.Authors, authorSep),
			r.Abstract,
			r.PDFURL,
			r.SupplementaryURL,
		})
	}

	widths := make([]int, len(Columns))
	for i, col := range Columns {
		widths[i] = len(col)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for i := range widths {
		if widths[i] > maxWidth {
			widths[i] = maxWidth
		}
	}

	header := make([]string, len(Columns))
	for i, col := range Columns {
		header[i] = pad(col, widths[i])
	}
	line := strings.Join(header, " | ")
	rule := strings.Repeat("=", len(line))

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, rule)

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = pad(cell, widths[i])
		}
		fmt.Fprintln(w, strings.Join(cells, " | "))
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "\nTotal rows: %d", len(shown))
	if len(shown) < len(records) {
		fmt.Fprintf(w, " (of %d)", len(records))
	}
	fmt.Fprintln(w)
}

// pad truncates or right-pads a cell to exactly width characters.
func pad(s string, width int) string {
	if len(s) > width {
		if width > 3 {
			return s[:width-3] + "..."
		}
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
