// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	// Conference sites serve different markup to non-browser agents, so
	// the default is a browser-like string.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ScrapeConfig holds settings for a scrape run.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// ListingURL is the conference listing page enumerating all papers.
	ListingURL string `json:"listing_url" yaml:"listing_url"`

	// MaxPapers caps the number of records extracted from the listing
	// (default 100).
	MaxPapers int `json:"max_papers" yaml:"max_papers"`

	// FetchAbstracts enables the detail-page enrichment pass (default true).
	FetchAbstracts bool `json:"fetch_abstracts" yaml:"fetch_abstracts"`

	// EnrichBatch is the number of detail fetches allowed before the
	// throttle kicks in (default 5).
	EnrichBatch int `json:"enrich_batch" yaml:"enrich_batch"`

	// EnrichPause is the pause applied per batch of detail fetches
	// (default 1s).
	EnrichPause time.Duration `json:"enrich_pause" yaml:"enrich_pause"`

	// Workers bounds concurrent detail fetches. 1 means fully sequential
	// (the default); higher values preserve record order and per-record
	// failure independence.
	Workers int `json:"workers" yaml:"workers"`
}

// ExportConfig holds output paths for a scrape run.
type ExportConfig struct {
	// CSVPath is the tabular output file (default "conference_papers.csv").
	CSVPath string `json:"csv_path" yaml:"csv_path"`

	// SummaryPath is the plain-text summary file
	// (default "conference_summary.txt").
	SummaryPath string `json:"summary_path" yaml:"summary_path"`

	// SessionPath, when set, records the run parameters and result
	// statistics as YAML.
	SessionPath string `json:"session_path,omitempty" yaml:"session_path,omitempty"`
}

// ArchiveConfig holds settings for the scrape archive.
type ArchiveConfig struct {
	// ArchiveDir is the directory holding the SQLite database
	// (default "archive").
	ArchiveDir string `json:"archive_dir" yaml:"archive_dir"`

	// MaxResults is the default maximum number of search results
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
