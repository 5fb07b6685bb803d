// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/conference-scraper/pkg/types"
)

// SessionFile is the on-disk record of one scrape run: the parameters
// that produced the output plus result statistics. It lets a researcher
// tell later which listing and settings an export came from without
// re-scraping.
type SessionFile struct {
	ListingURL string         `yaml:"listing_url"`
	Config     SessionConfig  `yaml:"config"`
	Summary    SessionSummary `yaml:"summary"`
}

// SessionConfig stores the effective run settings.
type SessionConfig struct {
	MaxPapers      int  `yaml:"max_papers"`
	FetchAbstracts bool `yaml:"fetch_abstracts"`
	Workers        int  `yaml:"workers,omitempty"`
}

// SessionSummary stores result statistics and a timestamp.
type SessionSummary struct {
	Total         int       `yaml:"total"`
	WithAbstracts int       `yaml:"with_abstracts"`
	WithPDFs      int       `yaml:"with_pdfs"`
	Timestamp     time.Time `yaml:"timestamp"`
}

// WriteSessionFile saves the run parameters and result statistics to a
// YAML file.
func WriteSessionFile(path string, cfg types.ScrapeConfig, records []types.PaperRecord) error {
	sf := SessionFile{
		ListingURL: cfg.ListingURL,
		Config: SessionConfig{
			MaxPapers:      cfg.MaxPapers,
			FetchAbstracts: cfg.FetchAbstracts,
			Workers:        cfg.Workers,
		},
		Summary: SessionSummary{
			Total:     len(records),
			Timestamp: time.Now(),
		},
	}
	for _, r := range records {
		if r.HasAbstract() {
			sf.Summary.WithAbstracts++
		}
		if r.HasPDF() {
			sf.Summary.WithPDFs++
		}
	}

	data, err := yaml.Marshal(sf)
	if err != nil {
		return fmt.Errorf("marshaling session file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSessionFile loads a previously written session file.
func ReadSessionFile(path string) (SessionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SessionFile{}, err
	}
	var sf SessionFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return SessionFile{}, fmt.Errorf("parsing session file %s: %w", path, err)
	}
	return sf, nil
}
