// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the conference-scraper CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built once per invocation and passed explicitly into every
// component; there is no global logging state.
var logger zerolog.Logger

// rootCmd is the base command for the conference-scraper CLI.
var rootCmd = &cobra.Command{
	Use:   "conference-scraper",
	Short: "Extract paper metadata from conference open-access listings",
	Long: `conference-scraper extracts structured paper records (title, authors,
abstract, PDF and supplementary links) from a conference open-access
listing page, exports them as CSV plus a text summary, and can archive
past runs in a local SQLite database for full-text search.

Each operation is a subcommand: scrape, view, and archive.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
			Level(level).
			With().Timestamp().Logger()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./conference-scraper.yaml or ~/.config/conference-scraper/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("conference-scraper")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "conference-scraper"))
		}
	}

	viper.SetEnvPrefix("CONFERENCE_SCRAPER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
