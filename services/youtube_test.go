package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVideoQuery(t *testing.T) {
	assert.Equal(t, "React Hooks in depth tutorial", VideoQuery("React", "Hooks in depth"))
}

func TestWatchURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", WatchURL("abc123"))
}

func TestFallbackVideoURL(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"JavaScript nâng cao", "https://www.youtube.com/watch?v=PkZNo7MFNFg"},
		{"react hooks", "https://www.youtube.com/watch?v=DLX62G4lc44"},
		{"Python for data", "https://www.youtube.com/watch?v=rfscVS0vtbw"},
		{"Digital Marketing", "https://www.youtube.com/watch?v=wRHgqGVYrpk"},
		{"Nấu ăn", DefaultVideoURL},
		{"", DefaultVideoURL},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FallbackVideoURL(tt.topic), "topic=%q", tt.topic)
	}
}

func TestFallbackVideoURLNeverEmpty(t *testing.T) {
	for _, topic := range []string{"", "xyz", "REACT", "business marketing"} {
		assert.NotEmpty(t, FallbackVideoURL(topic))
	}
}
