package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"units and stoplist and parenthetical", "Organic Bananas (Family Size) 2 lb", "bananas"},
		{"trademark glyphs", "Cheerios® Cereal", "cheerios cereal"},
		{"curly apostrophe", "Amy’s Soup", "amy's soup"},
		{"fluid ounces", "Whole Milk 16.9 fl oz", "whole milk"},
		{"count unit", "Eggs 12 ct", "eggs"},
		{"no salt stopword", "Peanuts No Salt", "peanuts"},
		{"family size without parens", "Potato Chips Family Size", "potato chips"},
		{"comma decimal quantity", "Juice 1,5 l", "juice"},
		{"keeps hyphen", "Half-and-Half", "half-and-half"},
		{"punctuation stripped", "Chips & Dip!", "chips dip"},
		{"already plain", "bananas", "bananas"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestNameVariants(t *testing.T) {
	t.Run("plain name has one variant", func(t *testing.T) {
		assert.Equal(t, []string{"bananas"}, nameVariants("bananas"))
	})

	t.Run("normalized form added when different", func(t *testing.T) {
		variants := nameVariants("Organic Bananas (Family Size) 2 lb")
		assert.Equal(t, []string{"Organic Bananas (Family Size) 2 lb", "bananas"}, variants)
	})

	t.Run("long normalized names get a truncated variant", func(t *testing.T) {
		variants := nameVariants("Sweet Baby Ray's Honey Barbecue Dipping Sauce")
		require := assert.New(t)
		require.Len(variants, 3)
		require.Equal("sweet baby ray's honey barbecue dipping sauce", variants[1])
		require.Equal("sweet baby ray's honey", variants[2])
	})
}
