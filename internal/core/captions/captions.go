// Package captions queries a captions provider for timed-text transcripts.
package captions

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrTranscriptsDisabled indicates the video exposes no caption data at all.
	ErrTranscriptsDisabled = errors.New("transcripts disabled for this video")
	// ErrNoTranscriptFound indicates no caption track is available.
	ErrNoTranscriptFound = errors.New("no transcript found")
)

// Track identifies one caption track on a video.
type Track struct {
	Language string // BCP-47 language code, e.g. "ru", "en"
	Kind     string // "asr" for auto-generated, empty for manual
	BaseURL  string // provider-internal fetch handle
}

// TrackList is the result of listing a video's caption tracks.
type TrackList struct {
	VideoID string
	Title   string
	Tracks  []Track
}

// Segment is one timed caption line.
type Segment struct {
	Text  string
	Start time.Duration
}

// Source lists and fetches caption tracks for a video.
type Source interface {
	ListTracks(ctx context.Context, videoID string) (*TrackList, error)
	Fetch(ctx context.Context, track Track) ([]Segment, error)
}

// PickTrack selects the best track for the given language preferences.
// Languages are tried strictly in preference order: any track in the first
// preferred language beats every track in later languages. Within one
// language a manual track beats an auto-generated one. When no preferred
// language exists, the first available track is returned with
// needsTranslation set so the consumer knows to translate downstream.
func PickTrack(tracks []Track, langs []string) (Track, bool, error) {
	if len(tracks) == 0 {
		return Track{}, false, ErrNoTranscriptFound
	}
	for _, lang := range langs {
		var asr *Track
		for i, t := range tracks {
			if !matchLang(t.Language, lang) {
				continue
			}
			if t.Kind != "asr" {
				return t, false, nil
			}
			if asr == nil {
				asr = &tracks[i]
			}
		}
		if asr != nil {
			return *asr, false, nil
		}
	}
	return tracks[0], true, nil
}

func matchLang(trackLang, want string) bool {
	return trackLang == want || strings.HasPrefix(trackLang, want+"-")
}

// JoinSegments flattens ordered segments into one text, preserving order.
func JoinSegments(segments []Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	return sb.String()
}
