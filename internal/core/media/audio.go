// Package media extracts audio from local video files via ffmpeg.
package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mkotlyar/vidbrief/internal/executor"
)

// Extractor converts local media files to Whisper-ready audio.
type Extractor struct {
	exec    executor.Executor
	tempDir string
}

// NewExtractor creates an Extractor writing temp audio under tempDir.
func NewExtractor(exec executor.Executor, tempDir string) *Extractor {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Extractor{exec: exec, tempDir: tempDir}
}

// HasFFmpeg reports whether ffmpeg is available on PATH.
func (e *Extractor) HasFFmpeg() bool {
	return e.exec.LookPath("ffmpeg")
}

// ExtractAudio pulls the audio track into a 16 kHz mono WAV file suitable
// for speech-to-text. The caller owns the returned path and its cleanup.
func (e *Extractor) ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return "", fmt.Errorf("video file: %w", err)
	}

	audioPath := filepath.Join(e.tempDir, uuid.NewString()+".wav")

	_, err := e.exec.Execute(ctx, "ffmpeg",
		"-y",
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		audioPath,
	)
	if err != nil {
		os.Remove(audioPath)
		return "", fmt.Errorf("extract audio: %w", err)
	}
	return audioPath, nil
}

// Duration returns the media duration in seconds via ffprobe, or 0 when
// it cannot be determined.
func (e *Extractor) Duration(ctx context.Context, path string) float64 {
	out, err := e.exec.Execute(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0
	}
	return seconds
}
