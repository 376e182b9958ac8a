// Package pipeline wires transcript acquisition and summarization into the
// end-to-end video processing flow.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mkotlyar/vidbrief/internal/config"
	"github.com/mkotlyar/vidbrief/internal/core/acquire"
	"github.com/mkotlyar/vidbrief/internal/core/media"
	"github.com/mkotlyar/vidbrief/internal/core/summarize"
	"github.com/mkotlyar/vidbrief/internal/core/transcribe"
	"github.com/mkotlyar/vidbrief/internal/executor"
)

// Pipeline processes video references through acquisition and summarization.
type Pipeline struct {
	cfg        *config.Config
	acquirer   *acquire.Acquirer
	summarizer *summarize.Summarizer
	extractor  *media.Extractor
	trans      transcribe.Transcriber
	logger     *slog.Logger
}

// Result contains the output of one pipeline invocation.
type Result struct {
	Transcript *acquire.Transcript
	Summary    string
}

// New assembles a Pipeline from configuration. The summarization backend
// is selected once here; API keys come from the environment.
func New(cfg *config.Config, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	completer, err := summarize.NewCompleter(cfg.Provider, cfg.Model, completerKey(cfg.Provider))
	if err != nil {
		return nil, fmt.Errorf("create summarizer: %w", err)
	}

	summarizer := summarize.New(completer, summarize.Options{
		DirectThresholdTokens: cfg.Summarize.DirectThresholdTokens,
		MaxTokensPerChunk:     cfg.Summarize.MaxTokensPerChunk,
		OverlapTokens:         *cfg.Summarize.OverlapTokens,
		MaxConcurrent:         cfg.Summarize.MaxConcurrent,
	}, logger)

	exec := executor.New()
	downloader := acquire.NewYtDlp(exec, cfg.YtDlpPath, cfg.TempDir, cfg.Proxy)

	// Speech-to-text is optional: without a key the audio fallback
	// strategy stays in the chain but fails fast when reached.
	var trans transcribe.Transcriber
	if key := config.OpenAIKey(); key != "" {
		trans, err = transcribe.New("openai", key)
		if err != nil {
			return nil, fmt.Errorf("create transcriber: %w", err)
		}
	}

	strategies, err := acquire.BuildChain(acquire.ChainOptions{
		Proxy:         cfg.Proxy,
		RetryAttempts: cfg.Acquire.RetryAttempts,
		RetryDelay:    time.Duration(cfg.Acquire.RetryDelaySeconds) * time.Second,
		Downloader:    downloader,
		Transcriber:   trans,
	})
	if err != nil {
		return nil, fmt.Errorf("build acquisition chain: %w", err)
	}

	acquirer := acquire.NewAcquirer(strategies,
		time.Duration(cfg.Acquire.TimeoutSeconds)*time.Second, logger)

	return &Pipeline{
		cfg:        cfg,
		acquirer:   acquirer,
		summarizer: summarizer,
		extractor:  media.NewExtractor(exec, cfg.TempDir),
		trans:      trans,
		logger:     logger,
	}, nil
}

func completerKey(provider string) string {
	if provider == "anthropic" {
		return config.AnthropicKey()
	}
	return config.OpenAIKey()
}

// Transcript acquires a transcript for a video URL or ID without
// summarizing it.
func (p *Pipeline) Transcript(ctx context.Context, rawRef string) (*acquire.Transcript, error) {
	ref, err := acquire.ParseVideoRef(rawRef)
	if err != nil {
		return nil, err
	}
	return p.acquirer.Acquire(ctx, ref, p.cfg.Languages)
}

// ProcessURL runs the full flow for a video URL or ID.
func (p *Pipeline) ProcessURL(ctx context.Context, rawRef string) (*Result, error) {
	transcript, err := p.Transcript(ctx, rawRef)
	if err != nil {
		return nil, err
	}

	summary, err := p.summarizer.Summarize(ctx, transcript.Text)
	if err != nil {
		return nil, err
	}

	return &Result{Transcript: transcript, Summary: summary}, nil
}

// ProcessFile runs the full flow for a local video file: extract the audio
// track, transcribe it, summarize the result.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*Result, error) {
	if p.trans == nil {
		return nil, fmt.Errorf("local files require speech-to-text: set OPENAI_API_KEY")
	}
	if !p.extractor.HasFFmpeg() {
		return nil, fmt.Errorf("local files require ffmpeg on PATH")
	}

	audioPath, err := p.extractor.ExtractAudio(ctx, path)
	if err != nil {
		return nil, err
	}
	defer os.Remove(audioPath)

	hint := ""
	if len(p.cfg.Languages) > 0 {
		hint = p.cfg.Languages[0]
	}

	text, err := p.trans.Transcribe(ctx, audioPath, hint)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	summary, err := p.summarizer.Summarize(ctx, text)
	if err != nil {
		return nil, err
	}

	return &Result{
		Transcript: &acquire.Transcript{
			Text:     text,
			Language: hint,
			Strategy: "local_audio",
		},
		Summary: summary,
	}, nil
}
