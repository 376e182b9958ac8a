package acquire

import (
	"fmt"
	"strings"
)

// Attempt records one failed strategy for diagnostics.
type Attempt struct {
	Strategy string
	Err      error
}

// ExhaustedError is returned when every acquisition strategy failed.
type ExhaustedError struct {
	VideoID  string
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "no transcript available for %s after %d strategies", e.VideoID, len(e.Attempts))
	for _, a := range e.Attempts {
		fmt.Fprintf(&sb, "; %s: %v", a.Strategy, a.Err)
	}
	return sb.String()
}
