// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/conference-scraper/internal/export"
)

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Display an exported CSV as a formatted table",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runView,
}

func init() {
	viewCmd.Flags().Int("max-rows", 20, "maximum number of rows to display")
	viewCmd.Flags().Int("max-width", 50, "maximum column width")
	viewCmd.Flags().Bool("all", false, "display all rows")

	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	path := defaultCSVPath
	if len(args) > 0 {
		path = args[0]
	}

	records, err := export.ReadCSV(path)
	if err != nil {
		return err
	}

	maxRows, _ := cmd.Flags().GetInt("max-rows")
	maxWidth, _ := cmd.Flags().GetInt("max-width")
	if all, _ := cmd.Flags().GetBool("all"); all {
		maxRows = 0
	}

	fmt.Printf("Viewing: %s\n", path)
	fmt.Printf("Columns: %s\n\n", strings.Join(export.Columns, ", "))

	export.FormatTable(records, export.TableOptions{MaxRows: maxRows, MaxColWidth: maxWidth}, os.Stdout)
	return nil
}
