package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallback(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"four sentences", "A. B. C. D.", "A. B."},
		{"no period", "just one long thought", "just one long thought."},
		{"two sentences unterminated", "First. Second", "First. Second."},
		{"empty content", "", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fallback(tt.content))
		})
	}
}

func TestFallbackDeterministic(t *testing.T) {
	content := "Alpha. Beta. Gamma."
	assert.Equal(t, Fallback(content), Fallback(content))
}
