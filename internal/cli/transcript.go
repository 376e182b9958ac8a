package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/mkotlyar/vidbrief/internal/core/pipeline"
	"github.com/spf13/cobra"
)

var transcriptCmd = &cobra.Command{
	Use:   "transcript <url>",
	Short: "Fetch a video's transcript without summarizing",
	Args:  cobra.ExactArgs(1),
	Run:   runTranscript,
}

func init() {
	rootCmd.AddCommand(transcriptCmd)
}

func runTranscript(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		errorExit("%v", err)
	}

	transcript, err := p.Transcript(context.Background(), args[0])
	if err != nil {
		errorExit("%v", err)
	}

	if transcript.Title != "" {
		color.New(color.Bold).Println(transcript.Title)
		fmt.Println()
	}
	fmt.Println(transcript.Text)

	color.New(color.Faint).Printf("\nsource: %s, language: %s\n",
		transcript.Strategy, transcript.Language)
}
