package acquire

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedStrategy struct {
	name  string
	text  string
	err   error
	calls int
}

func (s *scriptedStrategy) Name() string { return s.name }

func (s *scriptedStrategy) Attempt(ctx context.Context, ref VideoRef, langs []string) (*Transcript, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.text == "" {
		return nil, nil
	}
	return &Transcript{VideoID: ref.ID, Text: s.text}, nil
}

func TestAcquireFirstStrategyWins(t *testing.T) {
	first := &scriptedStrategy{name: "direct_captions", text: "hello there"}
	second := &scriptedStrategy{name: "subtitle_download", text: "never used"}

	a := NewAcquirer([]Strategy{first, second}, time.Minute, nil)
	got, err := a.Acquire(context.Background(), VideoRef{ID: "dQw4w9WgXcQ"}, []string{"ru", "en"})

	require.NoError(t, err)
	assert.Equal(t, "hello there", got.Text)
	assert.Equal(t, "direct_captions", got.Strategy)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "later strategies must not run after a success")
}

func TestAcquireFallsThroughFailures(t *testing.T) {
	strategies := []Strategy{
		&scriptedStrategy{name: "direct_captions", err: errors.New("blocked")},
		&scriptedStrategy{name: "proxied_captions", err: errors.New("proxy down")},
		&scriptedStrategy{name: "direct_retry", err: errors.New("still blocked")},
		&scriptedStrategy{name: "subtitle_download", text: "rescued text"},
	}

	a := NewAcquirer(strategies, time.Minute, nil)
	got, err := a.Acquire(context.Background(), VideoRef{ID: "dQw4w9WgXcQ"}, nil)

	require.NoError(t, err)
	assert.Equal(t, "rescued text", got.Text)
	assert.Equal(t, "subtitle_download", got.Strategy)
	for _, s := range strategies {
		assert.Equal(t, 1, s.(*scriptedStrategy).calls)
	}
}

func TestAcquireEmptyTranscriptCountsAsFailure(t *testing.T) {
	empty := &scriptedStrategy{name: "direct_captions"} // nil transcript, nil error
	next := &scriptedStrategy{name: "subtitle_download", text: "real text"}

	a := NewAcquirer([]Strategy{empty, next}, time.Minute, nil)
	got, err := a.Acquire(context.Background(), VideoRef{ID: "dQw4w9WgXcQ"}, nil)

	require.NoError(t, err)
	assert.Equal(t, "subtitle_download", got.Strategy)
}

func TestAcquireExhaustion(t *testing.T) {
	errA := errors.New("captions disabled")
	errB := errors.New("yt-dlp missing")
	a := NewAcquirer([]Strategy{
		&scriptedStrategy{name: "direct_captions", err: errA},
		&scriptedStrategy{name: "audio_transcription", err: errB},
	}, time.Minute, nil)

	got, err := a.Acquire(context.Background(), VideoRef{ID: "dQw4w9WgXcQ"}, nil)
	assert.Nil(t, got)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "dQw4w9WgXcQ", exhausted.VideoID)
	require.Len(t, exhausted.Attempts, 2)
	assert.Equal(t, "direct_captions", exhausted.Attempts[0].Strategy)
	assert.ErrorIs(t, exhausted.Attempts[0].Err, errA)
	assert.Equal(t, "audio_transcription", exhausted.Attempts[1].Strategy)
	assert.ErrorIs(t, exhausted.Attempts[1].Err, errB)

	msg := err.Error()
	assert.Contains(t, msg, "direct_captions")
	assert.Contains(t, msg, "audio_transcription")
}

func TestAcquireCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &scriptedStrategy{name: "direct_captions", text: "unused"}
	a := NewAcquirer([]Strategy{s}, time.Minute, nil)

	_, err := a.Acquire(ctx, VideoRef{ID: "dQw4w9WgXcQ"}, nil)
	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 0, s.calls)
}
