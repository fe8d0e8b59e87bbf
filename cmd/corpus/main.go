// Package main implements the corpus CLI: ingestion runs and lookups
// against the justice roster.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cognicore/corpus/internal/logging"
	"github.com/cognicore/corpus/pkg/corpus/config"
)

var (
	// settingsPath is the optional YAML settings file
	settingsPath string
	// envFile is loaded into the environment before settings are read
	envFile string
	// rosterPath overrides the configured roster
	rosterPath string

	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Normalize and attribute judicial decisions",
	Long: `corpus ingests case folders (details.yaml plus HTML and Markdown opinions)
into a normalized SQLite record set, attributing each decision to the justice
who wrote it.

Settings come from --config, then CORPUS_* environment variables.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "config", "", "YAML settings file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before settings")
	rootCmd.PersistentFlags().StringVar(&rosterPath, "roster", "", "justice roster YAML (overrides settings)")
	rootCmd.AddCommand(ingestCmd, canonCmd, attributeCmd, rosterCmd)
}

// loadSettings reads the dotenv file, settings and flag overrides
func loadSettings() (*config.Settings, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}
	cfg, err := config.LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}
	if rosterPath != "" {
		cfg.Roster = rosterPath
	}
	return cfg, nil
}

// loadComponents reads the roster and taxonomy named by the settings
func loadComponents(cfg *config.Settings) (*config.Components, error) {
	return config.NewLoader(cfg).Load()
}

func newLogger(cfg *config.Settings) (*logging.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.Format)
}
