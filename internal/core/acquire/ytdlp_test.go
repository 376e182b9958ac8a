package acquire

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	onPath bool
	err    error
	// run is invoked with the full argv so the fake can drop files where
	// the real tool would
	run func(name string, args []string) error

	gotName string
	gotArgs []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.gotName = name
	f.gotArgs = args
	if f.err != nil {
		return "", f.err
	}
	if f.run != nil {
		if err := f.run(name, args); err != nil {
			return "", err
		}
	}
	return "", nil
}

func (f *fakeExecutor) LookPath(name string) bool { return f.onPath }

func argAfter(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func TestDownloadSubtitles(t *testing.T) {
	exec := &fakeExecutor{
		onPath: true,
		run: func(name string, args []string) error {
			out := argAfter(args, "-o")
			path := strings.Replace(out, "%(ext)s", "vtt", 1)
			return os.WriteFile(path, []byte("WEBVTT\n\n00:00:00.000 --> 00:00:01.000\nhello\n"), 0644)
		},
	}

	y := NewYtDlp(exec, "", t.TempDir(), "")
	markup, err := y.DownloadSubtitles(context.Background(), VideoRef{ID: "dQw4w9WgXcQ"}, []string{"ru", "en"})
	require.NoError(t, err)
	assert.Contains(t, markup, "hello")

	assert.Equal(t, "yt-dlp", exec.gotName)
	assert.Equal(t, "ru,en", argAfter(exec.gotArgs, "--sub-lang"))
	assert.Contains(t, exec.gotArgs, "--skip-download")
	assert.Contains(t, exec.gotArgs, "--write-auto-sub")
	assert.NotContains(t, exec.gotArgs, "--proxy")
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", exec.gotArgs[len(exec.gotArgs)-1])
}

func TestDownloadSubtitlesProxyPassthrough(t *testing.T) {
	exec := &fakeExecutor{
		onPath: true,
		run: func(name string, args []string) error {
			out := argAfter(args, "-o")
			return os.WriteFile(strings.Replace(out, "%(ext)s", "srt", 1), []byte("1\n00:00:00,000 --> 00:00:01,000\nhi\n"), 0644)
		},
	}

	y := NewYtDlp(exec, "yt-dlp", t.TempDir(), "socks5://127.0.0.1:1080")
	_, err := y.DownloadSubtitles(context.Background(), VideoRef{ID: "dQw4w9WgXcQ"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "socks5://127.0.0.1:1080", argAfter(exec.gotArgs, "--proxy"))
	assert.Equal(t, "en", argAfter(exec.gotArgs, "--sub-lang"))
}

func TestDownloadSubtitlesNoFile(t *testing.T) {
	y := NewYtDlp(&fakeExecutor{onPath: true}, "", t.TempDir(), "")
	_, err := y.DownloadSubtitles(context.Background(), VideoRef{ID: "dQw4w9WgXcQ"}, nil)
	assert.ErrorContains(t, err, "no subtitle file")
}

func TestDownloadSubtitlesBinaryMissing(t *testing.T) {
	y := NewYtDlp(&fakeExecutor{onPath: false}, "", t.TempDir(), "")
	_, err := y.DownloadSubtitles(context.Background(), VideoRef{ID: "dQw4w9WgXcQ"}, nil)
	assert.ErrorContains(t, err, "not found on PATH")
}

func TestDownloadAudio(t *testing.T) {
	exec := &fakeExecutor{
		onPath: true,
		run: func(name string, args []string) error {
			return os.WriteFile(argAfter(args, "-o"), []byte("fake m4a"), 0644)
		},
	}

	tempDir := t.TempDir()
	y := NewYtDlp(exec, "", tempDir, "")
	path, err := y.DownloadAudio(context.Background(), VideoRef{ID: "dQw4w9WgXcQ"})
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	assert.Equal(t, tempDir, filepath.Dir(path))
	assert.Equal(t, ".m4a", filepath.Ext(path))
	assert.Equal(t, "bestaudio[ext=m4a]/bestaudio", argAfter(exec.gotArgs, "-f"))
}

func TestDownloadAudioToolFailure(t *testing.T) {
	y := NewYtDlp(&fakeExecutor{onPath: true, err: errors.New("exit status 1")}, "", t.TempDir(), "")
	_, err := y.DownloadAudio(context.Background(), VideoRef{ID: "dQw4w9WgXcQ"})
	assert.ErrorContains(t, err, "exit status 1")
}
