package captions

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

// YouTube InnerTube ANDROID /player endpoint. The ANDROID client profile
// returns caption tracks without the PoToken gating the WEB client has.
const (
	innertubeURL     = "https://www.youtube.com/youtubei/v1/player?prettyPrint=false"
	androidVersion   = "20.10.38"
	androidUserAgent = "com.google.android.youtube/20.10.38 (Linux; U; Android 11) gzip"
	androidSDK       = 30

	maxBodySize = 6 * 1024 * 1024
)

// InnerTube implements Source against YouTube's InnerTube API.
type InnerTube struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	endpoint   string
}

// NewInnerTube creates a caption source over the given HTTP client.
// Requests are paced to stay under the provider's rate limits.
func NewInnerTube(httpClient *http.Client) *InnerTube {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &InnerTube{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
		endpoint:   innertubeURL,
	}
}

type innertubeReq struct {
	VideoID        string       `json:"videoId"`
	Context        innertubeCtx `json:"context"`
	RacyCheckOk    bool         `json:"racyCheckOk"`
	ContentCheckOk bool         `json:"contentCheckOk"`
}

type innertubeCtx struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion"`
	Hl                string `json:"hl"`
	Gl                string `json:"gl"`
}

type playerResp struct {
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	VideoDetails *struct {
		Title string `json:"title"`
	} `json:"videoDetails"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// ListTracks queries the player endpoint and returns the video's caption
// tracks. A playable video without a captions block maps to
// ErrTranscriptsDisabled; an empty track list maps to ErrNoTranscriptFound.
func (c *InnerTube) ListTracks(ctx context.Context, videoID string) (*TrackList, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     androidVersion,
				AndroidSdkVersion: androidSDK,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, c.endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("innertube player: %w", err)
	}

	var resp playerResp
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}

	if resp.Captions == nil {
		if resp.PlayabilityStatus != nil && resp.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("%w: %s", ErrTranscriptsDisabled, resp.PlayabilityStatus.Reason)
		}
		return nil, ErrTranscriptsDisabled
	}

	raw := resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(raw) == 0 {
		return nil, ErrNoTranscriptFound
	}

	list := &TrackList{VideoID: videoID}
	if resp.VideoDetails != nil {
		list.Title = resp.VideoDetails.Title
	}
	for _, t := range raw {
		list.Tracks = append(list.Tracks, Track{
			Language: t.LanguageCode,
			Kind:     t.Kind,
			BaseURL:  t.BaseURL,
		})
	}
	return list, nil
}

// timedText mirrors the timedtext XML caption document.
type timedText struct {
	Lines []struct {
		Start float64 `xml:"start,attr"`
		Text  string  `xml:",chardata"`
	} `xml:"text"`
}

// Fetch downloads and parses one caption track into ordered segments.
func (c *InnerTube) Fetch(ctx context.Context, track Track) ([]Segment, error) {
	if track.BaseURL == "" {
		return nil, ErrNoTranscriptFound
	}

	body, err := c.get(ctx, track.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	var segments []Segment
	for _, line := range tt.Lines {
		text := html.UnescapeString(line.Text)
		if text == "" {
			continue
		}
		segments = append(segments, Segment{
			Text:  text,
			Start: time.Duration(line.Start * float64(time.Second)),
		})
	}
	if len(segments) == 0 {
		return nil, ErrNoTranscriptFound
	}
	return segments, nil
}

func (c *InnerTube) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	return c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", androidUserAgent)
		req.Header.Set("X-Youtube-Client-Name", "3")
		req.Header.Set("X-Youtube-Client-Version", androidVersion)
		return req, nil
	})
}

func (c *InnerTube) get(ctx context.Context, url string) ([]byte, error) {
	return c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", androidUserAgent)
		return req, nil
	})
}

// do sends a request with rate limiting and backoff on transient failures.
func (c *InnerTube) do(ctx context.Context, build func() (*http.Request, error)) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	operation := func() ([]byte, error) {
		req, err := build()
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if retryableStatus(resp.StatusCode) {
			return nil, fmt.Errorf("status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return nil, err
		}
		return body, nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	body, err := backoff.RetryWithData(operation, policy)
	if err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			return nil, perm.Unwrap()
		}
		return nil, err
	}
	return body, nil
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
