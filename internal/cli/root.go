// Package cli implements the vidbrief command line interface.
package cli

import (
	"log/slog"
	"os"

	"github.com/mkotlyar/vidbrief/internal/config"
	"github.com/mkotlyar/vidbrief/internal/core/version"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "vidbrief",
	Short:   "Summarize videos from their transcripts",
	Version: version.Version,
	Long: `vidbrief fetches a video's transcript (captions, subtitle files, or
speech-to-text as a last resort) and condenses it into a short structured
summary.

API keys are read from the environment:
  OPENAI_API_KEY     chat completion + Whisper speech-to-text
  ANTHROPIC_API_KEY  chat completion (provider: anthropic)

Examples:
  vidbrief summarize https://www.youtube.com/watch?v=dQw4w9WgXcQ
  vidbrief summarize lecture.mp4
  vidbrief transcript dQw4w9WgXcQ`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the logger shared by all commands. Structured output
// goes to stderr so stdout stays clean for the summary text.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig loads config or exits with a readable error.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		errorExit("load config: %v", err)
	}
	return cfg
}
