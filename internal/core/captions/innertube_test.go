package captions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const timedtextXML = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
	<text start="0.0" dur="2.1">Hello &amp; welcome</text>
	<text start="2.1" dur="1.9">to the show</text>
	<text start="4.0" dur="1.0"></text>
</transcript>`

func newTestSource(t *testing.T, handler http.Handler) (*InnerTube, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewInnerTube(srv.Client())
	c.endpoint = srv.URL + "/player"
	return c, srv
}

func TestListTracks(t *testing.T) {
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/player", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(playerJSONFor(srv.URL)))
	})
	c, s := newTestSource(t, mux)
	srv = s

	list, err := c.ListTracks(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "Test Video", list.Title)
	require.Len(t, list.Tracks, 2)
	assert.Equal(t, "ru", list.Tracks[0].Language)
	assert.Equal(t, "", list.Tracks[0].Kind)
	assert.Equal(t, "en", list.Tracks[1].Language)
	assert.Equal(t, "asr", list.Tracks[1].Kind)
}

func playerJSONFor(base string) string {
	return `{
		"playabilityStatus": {"status": "OK"},
		"videoDetails": {"title": "Test Video"},
		"captions": {
			"playerCaptionsTracklistRenderer": {
				"captionTracks": [
					{"baseUrl": "` + base + `/timedtext?lang=ru", "languageCode": "ru"},
					{"baseUrl": "` + base + `/timedtext?lang=en", "languageCode": "en", "kind": "asr"}
				]
			}
		}
	}`
}

func TestListTracksDisabled(t *testing.T) {
	c, _ := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"playabilityStatus": {"status": "OK"}}`))
	}))

	_, err := c.ListTracks(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, ErrTranscriptsDisabled)
}

func TestListTracksUnplayable(t *testing.T) {
	c, _ := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"playabilityStatus": {"status": "LOGIN_REQUIRED", "reason": "Sign in to confirm your age"}}`))
	}))

	_, err := c.ListTracks(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, ErrTranscriptsDisabled)
	assert.Contains(t, err.Error(), "Sign in to confirm your age")
}

func TestListTracksEmpty(t *testing.T) {
	c, _ := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"captions": {"playerCaptionsTracklistRenderer": {"captionTracks": []}}}`))
	}))

	_, err := c.ListTracks(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, ErrNoTranscriptFound)
}

func TestListTracksHardFailureNotRetried(t *testing.T) {
	calls := 0
	c, _ := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.ListTracks(context.Background(), "dQw4w9WgXcQ")
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestListTracksRetriesTransientStatus(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/player", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(playerJSONFor(srv.URL)))
	})
	c, s := newTestSource(t, mux)
	srv = s

	list, err := c.ListTracks(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, list.Tracks, 2)
}

func TestFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/timedtext", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(timedtextXML))
	})
	c, srv := newTestSource(t, mux)

	segments, err := c.Fetch(context.Background(), Track{Language: "en", BaseURL: srv.URL + "/timedtext"})
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, "Hello & welcome", segments[0].Text)
	assert.Equal(t, time.Duration(0), segments[0].Start)
	assert.Equal(t, "to the show", segments[1].Text)
	assert.InDelta(t, 2.1, segments[1].Start.Seconds(), 0.001)
}

func TestFetchEmptyBaseURL(t *testing.T) {
	c := NewInnerTube(nil)
	_, err := c.Fetch(context.Background(), Track{Language: "en"})
	assert.ErrorIs(t, err, ErrNoTranscriptFound)
}

func TestFetchEmptyDocument(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/timedtext", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<transcript></transcript>`))
	})
	c, srv := newTestSource(t, mux)

	_, err := c.Fetch(context.Background(), Track{Language: "en", BaseURL: srv.URL + "/timedtext"})
	assert.ErrorIs(t, err, ErrNoTranscriptFound)
}
