package acquire

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mkotlyar/vidbrief/internal/core/captions"
	"github.com/mkotlyar/vidbrief/internal/core/subtitles"
	"github.com/mkotlyar/vidbrief/internal/core/transcribe"
)

// CaptionsStrategy queries a caption source, optionally retrying with a
// fixed inter-attempt delay. The same type backs the direct, proxied, and
// direct-retry states; only the source and retry envelope differ.
type CaptionsStrategy struct {
	StrategyName string
	Source       captions.Source
	Attempts     int
	Delay        time.Duration
}

func (s *CaptionsStrategy) Name() string { return s.StrategyName }

func (s *CaptionsStrategy) Attempt(ctx context.Context, ref VideoRef, langs []string) (*Transcript, error) {
	attempts := s.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 && s.Delay > 0 {
			select {
			case <-time.After(s.Delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		transcript, err := s.fetchOnce(ctx, ref, langs)
		if err == nil {
			return transcript, nil
		}
		lastErr = err

		// Missing captions won't appear on a retry; bail out early.
		if errors.Is(err, captions.ErrTranscriptsDisabled) || errors.Is(err, captions.ErrNoTranscriptFound) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func (s *CaptionsStrategy) fetchOnce(ctx context.Context, ref VideoRef, langs []string) (*Transcript, error) {
	list, err := s.Source.ListTracks(ctx, ref.ID)
	if err != nil {
		return nil, err
	}

	track, needsTranslation, err := captions.PickTrack(list.Tracks, langs)
	if err != nil {
		return nil, err
	}

	segments, err := s.Source.Fetch(ctx, track)
	if err != nil {
		return nil, err
	}

	text := captions.JoinSegments(segments)
	if text == "" {
		return nil, captions.ErrNoTranscriptFound
	}

	return &Transcript{
		VideoID:          ref.ID,
		Title:            list.Title,
		Text:             text,
		Segments:         segments,
		Language:         track.Language,
		NeedsTranslation: needsTranslation,
	}, nil
}

// SubtitleDownloadStrategy shells out to the external downloader for a
// subtitle file when the captions API itself is blocked or rate-limited.
type SubtitleDownloadStrategy struct {
	Downloader *YtDlp
}

func (s *SubtitleDownloadStrategy) Name() string { return "subtitle_download" }

func (s *SubtitleDownloadStrategy) Attempt(ctx context.Context, ref VideoRef, langs []string) (*Transcript, error) {
	markup, err := s.Downloader.DownloadSubtitles(ctx, ref, langs)
	if err != nil {
		return nil, err
	}

	text := subtitles.Parse(markup)
	if text == "" {
		return nil, fmt.Errorf("subtitle file parsed to empty text")
	}
	return &Transcript{VideoID: ref.ID, Text: text}, nil
}

// AudioTranscriptionStrategy is the last resort: download the audio track
// and hand it to a speech-to-text service.
type AudioTranscriptionStrategy struct {
	Downloader  *YtDlp
	Transcriber transcribe.Transcriber
}

func (s *AudioTranscriptionStrategy) Name() string { return "audio_transcription" }

func (s *AudioTranscriptionStrategy) Attempt(ctx context.Context, ref VideoRef, langs []string) (*Transcript, error) {
	if s.Transcriber == nil {
		return nil, errors.New("speech-to-text not configured")
	}

	audioPath, err := s.Downloader.DownloadAudio(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer os.Remove(audioPath)

	hint := ""
	if len(langs) > 0 {
		hint = langs[0]
	}

	text, err := s.Transcriber.Transcribe(ctx, audioPath, hint)
	if err != nil {
		return nil, err
	}
	return &Transcript{VideoID: ref.ID, Text: text, Language: hint}, nil
}
