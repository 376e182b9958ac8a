package acquire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVideoRef(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{
			name:   "watch url",
			input:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantID: "dQw4w9WgXcQ",
		},
		{
			name:   "watch url with extra params",
			input:  "https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ&t=42s",
			wantID: "dQw4w9WgXcQ",
		},
		{
			name:   "short link",
			input:  "https://youtu.be/dQw4w9WgXcQ?si=abc",
			wantID: "dQw4w9WgXcQ",
		},
		{
			name:   "shorts",
			input:  "https://www.youtube.com/shorts/dQw4w9WgXcQ",
			wantID: "dQw4w9WgXcQ",
		},
		{
			name:   "embed",
			input:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
			wantID: "dQw4w9WgXcQ",
		},
		{
			name:   "legacy v path",
			input:  "https://www.youtube.com/v/dQw4w9WgXcQ",
			wantID: "dQw4w9WgXcQ",
		},
		{
			name:   "no scheme",
			input:  "youtube.com/watch?v=dQw4w9WgXcQ",
			wantID: "dQw4w9WgXcQ",
		},
		{
			name:   "bare id",
			input:  "dQw4w9WgXcQ",
			wantID: "dQw4w9WgXcQ",
		},
		{
			name:    "not a video url",
			input:   "https://example.com/watch?v=dQw4w9WgXcQ",
			wantErr: true,
		},
		{
			name:    "id too short",
			input:   "dQw4w9WgX",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseVideoRef(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidVideoRef)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantID, ref.ID)
		})
	}
}

func TestWatchURL(t *testing.T) {
	ref := VideoRef{ID: "dQw4w9WgXcQ"}
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", ref.WatchURL())
}
