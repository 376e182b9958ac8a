package acquire

import (
	"errors"
	"regexp"
)

// VideoRef is a resolved video identifier.
type VideoRef struct {
	ID string
}

// ErrInvalidVideoRef indicates the input is not a recognizable video URL or ID.
var ErrInvalidVideoRef = errors.New("not a recognizable video URL or ID")

// Supported URL forms: watch?v=, youtu.be/, shorts/, embed/, /v/.
var videoRefPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`(?:youtu\.be/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`(?:youtube\.com/shorts/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`(?:youtube\.com/embed/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`(?:youtube\.com/v/)([0-9A-Za-z_-]{11})`),
}

var bareIDPattern = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)

// ParseVideoRef extracts a video ID from a URL or accepts a bare 11-char ID.
func ParseVideoRef(raw string) (VideoRef, error) {
	for _, re := range videoRefPatterns {
		if m := re.FindStringSubmatch(raw); len(m) == 2 {
			return VideoRef{ID: m[1]}, nil
		}
	}
	if bareIDPattern.MatchString(raw) {
		return VideoRef{ID: raw}, nil
	}
	return VideoRef{}, ErrInvalidVideoRef
}

// WatchURL returns the canonical watch-page URL for the reference.
func (r VideoRef) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + r.ID
}
