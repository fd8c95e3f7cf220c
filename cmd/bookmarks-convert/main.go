package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dastanaron/bookmarks-convert/internal/commands"
	"github.com/dastanaron/bookmarks-convert/internal/config"
	"github.com/dastanaron/bookmarks-convert/internal/converter"
	"github.com/dastanaron/bookmarks-convert/internal/logger"

	"github.com/spf13/cobra"
)

var (
	flagSource       string
	flagOutput       string
	flagOutputDir    string
	flagSplit        bool
	flagMinBookmarks int
	flagDBPath       string
	flagPreview      bool
	flagLogLevel     string
)

func main() {
	cfg := config.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "bookmarks-convert <bookmarks.html>",
		Short: "Convert a browser bookmark export to viewer JSON",
		Long: `bookmarks-convert reads a browser-exported bookmark HTML file and produces
normalized JSON documents for the bookmark viewer.

Examples:
  bookmarks-convert bookmarks.html
  bookmarks-convert bookmarks.html --source "Chrome Desktop"
  bookmarks-convert bookmarks.html --split-by-folder --output-dir ./bm_json
  bookmarks-convert bookmarks.html --preview --db ~/.bookmarks/bookmarks.db`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Init(flagLogLevel); err != nil {
				return fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
			}
			if flagOutput != "" && flagSplit {
				return errors.New("--output cannot be combined with --split-by-folder")
			}
			// Flags are valid; errors past this point are runtime failures.
			cmd.SilenceUsage = true

			convertCmd := commands.NewConvertCommand(commands.ConvertOptions{
				Source:        flagSource,
				Output:        flagOutput,
				OutputDir:     flagOutputDir,
				SplitByFolder: flagSplit,
				MinBookmarks:  flagMinBookmarks,
				DBPath:        flagDBPath,
				Preview:       flagPreview,
			})

			err := convertCmd.Execute(args[0])
			if errors.Is(err, converter.ErrNoBookmarks) {
				return fmt.Errorf("no bookmarks found in %s", args[0])
			}
			return err
		},
	}

	rootCmd.Flags().StringVarP(&flagSource, "source", "s", cfg.Source, "Source label stored on every record")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output JSON file path (default: <input name>.json)")
	rootCmd.Flags().StringVarP(&flagOutputDir, "output-dir", "d", cfg.OutputDir, "Output directory for JSON files (default: input file's directory)")
	rootCmd.Flags().BoolVar(&flagSplit, "split-by-folder", false, "Write one JSON file per top-level folder")
	rootCmd.Flags().IntVar(&flagMinBookmarks, "min-bookmarks", 1, "Minimum bookmarks required to write a folder file")
	rootCmd.Flags().StringVar(&flagDBPath, "db", cfg.DBPath, "Also import the converted bookmarks into this SQLite database")
	rootCmd.Flags().BoolVar(&flagPreview, "preview", false, "Inspect the parsed bookmarks in a TUI before writing")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
