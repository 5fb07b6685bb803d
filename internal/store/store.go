// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists scraped paper records in a local SQLite archive
// and serves ranked full-text queries over them.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/conference-scraper/pkg/types"
)

const dbFile = "papers.db"

// Store manages the scrape archive database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// New opens or creates the archive database at archiveDir/papers.db,
// creating the schema if needed.
func New(cfg types.ArchiveConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.ArchiveDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(cfg.ArchiveDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			listing_url TEXT NOT NULL,
			source_file TEXT,
			added_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			listing_url TEXT NOT NULL,
			title TEXT NOT NULL,
			authors TEXT,
			abstract TEXT,
			pdf_url TEXT,
			supplementary_url TEXT,
			run_id INTEGER REFERENCES runs(id),
			UNIQUE(listing_url, title)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_listing_url ON papers(listing_url)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, authors, abstract, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title, authors, abstract) VALUES (new.rowid, new.title, new.authors, new.abstract);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, authors, abstract) VALUES('delete', old.rowid, old.title, old.authors, old.abstract);
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, authors, abstract) VALUES('delete', old.rowid, old.title, old.authors, old.abstract);
				INSERT INTO papers_fts(rowid, title, authors, abstract) VALUES (new.rowid, new.title, new.authors, new.abstract);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from an archive ingestion run.
type IngestSummary struct {
	Added   int
	Updated int
	RunID   int64
}

// Total returns the number of records processed.
func (s IngestSummary) Total() int {
	return s.Added + s.Updated
}

// Ingest stores records from one scrape run. Records are keyed by
// (listing URL, title): re-adding a paper already in the archive updates
// it in place rather than duplicating it.
func (s *Store) Ingest(ctx context.Context, records []types.PaperRecord, listingURL, sourceFile string, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (listing_url, source_file, added_at) VALUES (?, ?, ?)`,
		listingURL, sourceFile, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return summary, fmt.Errorf("recording run: %w", err)
	}
	summary.RunID, _ = res.LastInsertId()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (listing_url, title, authors, abstract, pdf_url, supplementary_url, run_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(listing_url, title) DO UPDATE SET
			authors=excluded.authors, abstract=excluded.abstract,
			pdf_url=excluded.pdf_url, supplementary_url=excluded.supplementary_url,
			run_id=excluded.run_id`)
	if err != nil {
		return summary, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if rec.Title == "" {
			continue
		}

		var exists int
		if err := tx.QueryRowContext(ctx,
			`SELECT count(*) FROM papers WHERE listing_url = ? AND title = ?`,
			listingURL, rec.Title,
		).Scan(&exists); err != nil {
			return summary, fmt.Errorf("checking for %q: %w", rec.Title, err)
		}

		authorsJSON, _ := json.Marshal(rec.Authors)
		if _, err := stmt.ExecContext(ctx,
			listingURL, rec.Title, string(authorsJSON),
			rec.Abstract, rec.PDFURL, rec.SupplementaryURL, summary.RunID,
		); err != nil {
			return summary, fmt.Errorf("storing %q: %w", rec.Title, err)
		}

		if exists > 0 {
			summary.Updated++
		} else {
			summary.Added++
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing: %w", err)
	}

	fmt.Fprintf(w, "archived: %d added, %d updated (run %d)\n",
		summary.Added, summary.Updated, summary.RunID)
	return summary, nil
}
