// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes record lists: CSV, plain-text summary, YAML
// session files, and a terminal table view.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/conference-scraper/pkg/types"
)

// Columns is the fixed CSV column order.
var Columns = []string{"title", "authors", "abstract", "pdf_url", "supplementary_url"}

// authorSep joins the authors list into one CSV cell.
const authorSep = "; "

// WriteCSV writes records as delimited rows with the fixed header.
// Missing optional fields render as empty strings. The file is written
// to a temp file and renamed on success, so a failed export never leaves
// a partial file behind.
func WriteCSV(records []types.PaperRecord, path string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	w := csv.NewWriter(tmpFile)
	writeErr := w.Write(Columns)
	for _, r := range records {
		if writeErr != nil {
			break
		}
		writeErr = w.Write([]string{
			r.Title,
			strings.Join(r.Authors, authorSep),
			r.Abstract,
			r.PDFURL,
			r.SupplementaryURL,
		})
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}

	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing CSV: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ReadCSV parses a file previously written by WriteCSV back into
// records. Empty cells map back to absent fields, so a write/read
// round-trip reproduces the original list.
func ReadCSV(path string) ([]types.PaperRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}
	if !equalHeader(rows[0]) {
		return nil, fmt.Errorf("%s: unexpected header %v", path, rows[0])
	}

	var records []types.PaperRecord
	for _, row := range rows[1:] {
		rec := types.PaperRecord{
			Title:            row[0],
			Abstract:         row[2],
			PDFURL:           row[3],
			SupplementaryURL: row[4],
		}
		if row[1] != "" {
			rec.Authors = strings.Split(row[1], authorSep)
		}
		records = append(records, rec)
	}
	return records, nil
}

func equalHeader(row []string) bool {
	if len(row) != len(Columns) {
		return false
	}
	for i, col := range Columns {
		if row[i] != col {
			return false
		}
	}
	return true
}
