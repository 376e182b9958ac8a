package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mkotlyar/vidbrief/internal/core/pipeline"
	"github.com/spf13/cobra"
)

var showTranscript bool

var summarizeCmd = &cobra.Command{
	Use:   "summarize <url-or-file>",
	Short: "Fetch a video's transcript and summarize it",
	Long: `Fetch a transcript for a video URL (or transcribe a local media file)
and print a structured summary.

Transcript acquisition tries, in order: direct captions, proxied captions
(when a proxy is configured), a direct retry, a subtitle file via yt-dlp,
and finally audio download plus speech-to-text.

Examples:
  vidbrief summarize https://youtu.be/dQw4w9WgXcQ
  vidbrief summarize talk.mp4 --transcript`,
	Args: cobra.ExactArgs(1),
	Run:  runSummarize,
}

func init() {
	summarizeCmd.Flags().BoolVar(&showTranscript, "transcript", false, "also print the raw transcript")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		errorExit("%v", err)
	}

	ctx := context.Background()
	target := args[0]

	var result *pipeline.Result
	if isLocalFile(target) {
		result, err = p.ProcessFile(ctx, target)
	} else {
		result, err = p.ProcessURL(ctx, target)
	}
	if err != nil {
		errorExit("%v", err)
	}

	printResult(result)
}

func printResult(result *pipeline.Result) {
	t := result.Transcript

	if t.Title != "" {
		color.New(color.Bold).Println(t.Title)
		fmt.Println()
	}

	fmt.Println(result.Summary)

	meta := color.New(color.Faint)
	fmt.Println()
	meta.Printf("source: %s", t.Strategy)
	if t.Language != "" {
		meta.Printf(", language: %s", t.Language)
	}
	if t.NeedsTranslation {
		meta.Printf(" (no preferred-language captions, summary follows track language)")
	}
	meta.Println()

	if showTranscript {
		fmt.Println()
		color.New(color.Bold).Println("Transcript")
		fmt.Println(t.Text)
	}
}

func isLocalFile(target string) bool {
	info, err := os.Stat(target)
	return err == nil && !info.IsDir()
}

func errorExit(format string, args ...any) {
	color.New(color.FgRed).Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
