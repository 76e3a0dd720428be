package note

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabels(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"messy input", "a, b ,, c", []string{"a", "b", "c"}},
		{"already normalized", "a,b,c", []string{"a", "b", "c"}},
		{"empty", "", []string{}},
		{"whitespace only", "  ,  , ", []string{}},
		{"duplicates kept", "a, a", []string{"a", "a"}},
		{"case kept", "Work, URGENT", []string{"Work", "URGENT"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLabels(tt.in))
		})
	}
}

func TestNormalizeLabelsIdempotent(t *testing.T) {
	once := NormalizeLabels("a, b ,, c")
	again := NormalizeLabels(JoinLabels(once))
	assert.Equal(t, once, again)
}

func TestJoinLabels(t *testing.T) {
	assert.Equal(t, "a, b, c", JoinLabels([]string{"a", "b", "c"}))
	assert.Equal(t, "", JoinLabels(nil))
}

func TestMatchesFilter(t *testing.T) {
	n := Note{Labels: []string{"Work", "groceries"}}

	assert.True(t, MatchesFilter(n, ""))
	assert.True(t, MatchesFilter(n, "   "))
	assert.True(t, MatchesFilter(Note{}, ""), "empty filter matches label-less notes too")

	assert.True(t, MatchesFilter(n, "work"))
	assert.True(t, MatchesFilter(n, "WORK"))
	assert.True(t, MatchesFilter(n, "roc"), "substring match")
	assert.False(t, MatchesFilter(n, "home"))
}

func TestMatchesFilterNoLabels(t *testing.T) {
	n := Note{Labels: []string{}}
	assert.False(t, MatchesFilter(n, "anything"))
	assert.True(t, MatchesFilter(n, ""))
}
