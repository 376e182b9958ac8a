package acquire

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mkotlyar/vidbrief/internal/executor"
)

// YtDlp invokes the external yt-dlp downloader for subtitle files and
// audio tracks. A non-zero exit fails only the strategy using it.
type YtDlp struct {
	exec    executor.Executor
	binary  string
	tempDir string
	proxy   string
}

// NewYtDlp creates a downloader wrapper. An empty binary defaults to
// "yt-dlp" on PATH; proxy is passed through to the tool when set.
func NewYtDlp(exec executor.Executor, binary, tempDir, proxy string) *YtDlp {
	if binary == "" {
		binary = "yt-dlp"
	}
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &YtDlp{exec: exec, binary: binary, tempDir: tempDir, proxy: proxy}
}

// Available reports whether the downloader binary is on PATH.
func (y *YtDlp) Available() bool {
	return y.exec.LookPath(y.binary)
}

// DownloadSubtitles fetches a subtitle file (manual or auto-generated) for
// the preferred languages and returns its raw markup.
func (y *YtDlp) DownloadSubtitles(ctx context.Context, ref VideoRef, langs []string) (string, error) {
	if !y.Available() {
		return "", fmt.Errorf("%s not found on PATH", y.binary)
	}

	outDir := filepath.Join(y.tempDir, "vidbrief-subs-"+uuid.NewString())
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("create subtitle dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	subLangs := strings.Join(langs, ",")
	if subLangs == "" {
		subLangs = "en"
	}

	args := []string{
		"--skip-download",
		"--write-sub",
		"--write-auto-sub",
		"--sub-lang", subLangs,
		"--sub-format", "vtt/srt/best",
		"-o", filepath.Join(outDir, "subs.%(ext)s"),
	}
	if y.proxy != "" {
		args = append(args, "--proxy", y.proxy)
	}
	args = append(args, ref.WatchURL())

	if _, err := y.exec.Execute(ctx, y.binary, args...); err != nil {
		return "", err
	}

	path, err := findSubtitleFile(outDir)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read subtitle file: %w", err)
	}
	return string(data), nil
}

// findSubtitleFile locates the downloaded subtitle file in outDir.
func findSubtitleFile(dir string) (string, error) {
	for _, pattern := range []string{"*.vtt", "*.srt"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err == nil && len(matches) > 0 {
			return matches[0], nil
		}
	}
	return "", fmt.Errorf("downloader produced no subtitle file")
}

// DownloadAudio fetches the video's audio track as an m4a file.
// The caller owns the returned path and its cleanup.
func (y *YtDlp) DownloadAudio(ctx context.Context, ref VideoRef) (string, error) {
	if !y.Available() {
		return "", fmt.Errorf("%s not found on PATH", y.binary)
	}

	audioPath := filepath.Join(y.tempDir, "vidbrief-audio-"+uuid.NewString()+".m4a")

	args := []string{
		"-f", "bestaudio[ext=m4a]/bestaudio",
		"-o", audioPath,
	}
	if y.proxy != "" {
		args = append(args, "--proxy", y.proxy)
	}
	args = append(args, ref.WatchURL())

	if _, err := y.exec.Execute(ctx, y.binary, args...); err != nil {
		os.Remove(audioPath)
		return "", err
	}
	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("downloader produced no audio file: %w", err)
	}
	return audioPath, nil
}
