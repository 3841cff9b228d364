package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrigramsPadsWords(t *testing.T) {
	got := Trigrams("Cat")
	assert.Len(t, got, 4)
	for _, want := range []string{"  c", " ca", "cat", "at "} {
		assert.Contains(t, got, want)
	}
}

func TestTrigramsSplitsOnPunctuation(t *testing.T) {
	assert.Equal(t, Trigrams("mac n cheese"), Trigrams("Mac-n-Cheese!"))
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "paneer", "paneer", 1},
		{"empty", "", "paneer", 0},
		{"no overlap", "xyz", "paneer", 0},
		// 6 shared of 19 distinct trigrams
		{"misspelled biryani", "biriyani", "chicken biryani", 6.0 / 19.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarityClearsDefaultThreshold(t *testing.T) {
	assert.Greater(t, Similarity("biriyani", "chicken biryani"), 0.15)
	assert.Less(t, Similarity("biriyani", "greek salad"), 0.15)
}
