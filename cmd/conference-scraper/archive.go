// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/conference-scraper/internal/export"
	"github.com/pdiddy/conference-scraper/internal/store"
	"github.com/pdiddy/conference-scraper/pkg/types"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the local scrape archive (add, search)",
	Long: `Archive keeps past scrape results in a local SQLite database with
full-text indexing over titles, authors, and abstracts. Use subcommands
to ingest an exported CSV or to search archived papers.`,
}

var archiveAddCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Ingest an exported CSV into the archive",
	Long: `Add reads a CSV produced by scrape and stores its records. Papers are
keyed by listing URL and title; re-adding an export updates existing
entries instead of duplicating them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runArchiveAdd,
}

var archiveSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over archived papers",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArchiveSearch,
}

func init() {
	archiveCmd.PersistentFlags().String("archive-dir", "archive", "directory holding the archive database")

	archiveAddCmd.Flags().String("listing-url", defaultListingURL, "listing URL the export came from")
	archiveSearchCmd.Flags().Int("max-results", 20, "maximum number of results")
	archiveSearchCmd.Flags().Bool("json", false, "output results as JSON")

	archiveCmd.AddCommand(archiveAddCmd)
	archiveCmd.AddCommand(archiveSearchCmd)
	rootCmd.AddCommand(archiveCmd)
}

func openArchive(cmd *cobra.Command) (*store.Store, error) {
	dir, _ := cmd.Flags().GetString("archive-dir")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return store.New(types.ArchiveConfig{ArchiveDir: dir, MaxResults: maxResults})
}

func runArchiveAdd(cmd *cobra.Command, args []string) error {
	path := defaultCSVPath
	if len(args) > 0 {
		path = args[0]
	}
	listingURL, _ := cmd.Flags().GetString("listing-url")

	records, err := export.ReadCSV(path)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("%s contains no records", path)
	}

	s, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.Ingest(context.Background(), records, listingURL, path, os.Stdout)
	return err
}

func runArchiveSearch(cmd *cobra.Command, args []string) error {
	s, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	maxResults, _ := cmd.Flags().GetInt("max-results")
	results, err := s.Search(context.Background(), args[0], maxResults)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	store.FormatResults(results, os.Stdout)
	return nil
}
