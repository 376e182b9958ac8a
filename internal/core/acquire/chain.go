package acquire

import (
	"time"

	"github.com/mkotlyar/vidbrief/internal/core/captions"
	"github.com/mkotlyar/vidbrief/internal/core/transcribe"
)

// ChainOptions configures the standard strategy order.
type ChainOptions struct {
	// Proxy enables the proxied-captions state when non-empty.
	Proxy string

	// RetryAttempts and RetryDelay form the retry envelope for the flaky
	// states (proxied captions, direct retry).
	RetryAttempts int
	RetryDelay    time.Duration

	Downloader  *YtDlp
	Transcriber transcribe.Transcriber // nil when no speech-to-text key is configured
}

// BuildChain assembles the acquisition states in priority order:
// direct captions, proxied captions (when a proxy is configured), a direct
// retry covering transient failures, subtitle-file download, and finally
// audio transcription.
func BuildChain(opts ChainOptions) ([]Strategy, error) {
	if opts.RetryAttempts < 1 {
		opts.RetryAttempts = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 2 * time.Second
	}

	directClient, err := captions.NewHTTPClient("", captions.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	directSource := captions.NewInnerTube(directClient)

	strategies := []Strategy{
		&CaptionsStrategy{
			StrategyName: "direct_captions",
			Source:       directSource,
			Attempts:     1,
		},
	}

	if opts.Proxy != "" {
		proxyClient, err := captions.NewHTTPClient(opts.Proxy, captions.DefaultTimeout)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, &CaptionsStrategy{
			StrategyName: "proxied_captions",
			Source:       captions.NewInnerTube(proxyClient),
			Attempts:     opts.RetryAttempts,
			Delay:        opts.RetryDelay,
		})
	}

	strategies = append(strategies,
		&CaptionsStrategy{
			StrategyName: "direct_retry",
			Source:       directSource,
			Attempts:     opts.RetryAttempts,
			Delay:        opts.RetryDelay,
		},
		&SubtitleDownloadStrategy{Downloader: opts.Downloader},
		&AudioTranscriptionStrategy{Downloader: opts.Downloader, Transcriber: opts.Transcriber},
	)

	return strategies, nil
}
