// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/conference-scraper/internal/export"
	"github.com/pdiddy/conference-scraper/internal/extract"
	"github.com/pdiddy/conference-scraper/internal/fetch"
	"github.com/pdiddy/conference-scraper/internal/scrape"
	"github.com/pdiddy/conference-scraper/pkg/types"
)

const (
	defaultListingURL = "https://openaccess.thecvf.com/CVPR2024?day=all"
	defaultTimeout    = 30 * time.Second
	defaultPause      = 1 * time.Second
	defaultBatch      = 5
	defaultUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	defaultCSVPath     = "conference_papers.csv"
	defaultSummaryPath = "conference_summary.txt"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape a conference listing page into CSV and summary files",
	Long: `Scrape fetches the listing page, extracts one record per paper (title,
authors, PDF and supplementary links), and by default visits each paper's
detail page to fill in the abstract. Results are written as CSV plus a
plain-text summary; output files are only written after the full run
completes.`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().String("url", "", "listing page URL (default: CVPR 2024)")
	scrapeCmd.Flags().Int("max-papers", extract.DefaultMaxPapers, "maximum number of papers to extract")
	scrapeCmd.Flags().Bool("no-abstracts", false, "skip abstract enrichment (faster, less complete)")
	scrapeCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	scrapeCmd.Flags().Duration("pause", defaultPause, "throttle pause per batch of detail fetches")
	scrapeCmd.Flags().Int("batch", defaultBatch, "detail fetches allowed per throttle interval")
	scrapeCmd.Flags().Int("workers", 1, "concurrent detail fetches (1 = sequential)")
	scrapeCmd.Flags().String("output", defaultCSVPath, "CSV output file")
	scrapeCmd.Flags().String("summary", defaultSummaryPath, "summary output file")
	scrapeCmd.Flags().String("session-file", "", "write run parameters and statistics to this YAML file")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg := scrapeConfigFromFlags(cmd)

	maxPapers, _ := cmd.Flags().GetInt("max-papers")
	csvPath, _ := cmd.Flags().GetString("output")
	summaryPath, _ := cmd.Flags().GetString("summary")
	sessionPath, _ := cmd.Flags().GetString("session-file")

	fetcher := fetch.New(cfg.HTTPConfig, logger)

	result, err := scrape.Run(context.Background(), fetcher, cfg, logger, os.Stdout)
	if err != nil {
		if errors.Is(err, scrape.ErrNoRecords) {
			fmt.Fprintln(os.Stderr, "No papers were extracted. The website structure may have changed.")
		}
		return err
	}

	if err := export.WriteCSV(result.Records, csvPath); err != nil {
		return err
	}
	if err := export.WriteSummary(result.Records, "Conference Papers Summary", summaryPath); err != nil {
		return err
	}
	if sessionPath != "" {
		if err := export.WriteSessionFile(sessionPath, cfg, result.Records); err != nil {
			return err
		}
	}

	fmt.Printf("\nExtracted %d paper(s) (limit %d)\n", len(result.Records), maxPapers)
	fmt.Println("Files created:")
	fmt.Printf("  - %s\n", csvPath)
	fmt.Printf("  - %s\n", summaryPath)
	if sessionPath != "" {
		fmt.Printf("  - %s\n", sessionPath)
	}
	return nil
}

// scrapeConfigFromFlags builds the run config: flags win over config file
// values, which win over defaults.
func scrapeConfigFromFlags(cmd *cobra.Command) types.ScrapeConfig {
	listingURL, _ := cmd.Flags().GetString("url")
	if listingURL == "" {
		listingURL = viper.GetString("scrape.listing_url")
	}
	if listingURL == "" {
		listingURL = defaultListingURL
	}

	userAgent := viper.GetString("scrape.user_agent")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	maxPapers, _ := cmd.Flags().GetInt("max-papers")
	noAbstracts, _ := cmd.Flags().GetBool("no-abstracts")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	pause, _ := cmd.Flags().GetDuration("pause")
	batch, _ := cmd.Flags().GetInt("batch")
	workers, _ := cmd.Flags().GetInt("workers")

	return types.ScrapeConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: userAgent,
		},
		ListingURL:     listingURL,
		MaxPapers:      maxPapers,
		FetchAbstracts: !noAbstracts,
		EnrichBatch:    batch,
		EnrichPause:    pause,
		Workers:        workers,
	}
}
