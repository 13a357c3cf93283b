package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupFallbackImage(t *testing.T) {
	t.Run("matches through normalization", func(t *testing.T) {
		url, keyword, ok := LookupFallbackImage("Organic Bananas (Family Size) 2 lb")
		require.True(t, ok)
		assert.Equal(t, "banana", keyword)
		assert.Contains(t, url, "Banana-Single.jpg")
	})

	t.Run("more specific keyword wins", func(t *testing.T) {
		_, keyword, ok := LookupFallbackImage("Red Bell Pepper")
		require.True(t, ok)
		assert.Equal(t, "bell pepper", keyword)
	})

	t.Run("no keyword means no image", func(t *testing.T) {
		_, _, ok := LookupFallbackImage("Dishwasher Detergent")
		assert.False(t, ok)
	})

	t.Run("table entries are well-formed", func(t *testing.T) {
		for _, f := range fallbackImages {
			assert.NotEmpty(t, f.Keyword)
			assert.True(t, strings.HasPrefix(f.URL, "https://"), "url for %q", f.Keyword)
		}
	})
}
