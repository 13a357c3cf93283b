package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	// Parenthetical asides like "(Family Size)".
	parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)

	// Unit-quantity tokens like "2 lb", "16.9 fl oz", "1,5 l". The
	// compound units come first so "fl oz" is not split at "fl".
	unitQuantityPattern = regexp.MustCompile(`\b\d+(?:[.,]\d+)?\s*(?:fl\s*oz|oz|lb|ct|each|ea|g|kg|ml|l|gal|pt)\b`)

	// Marketing and packaging words that never help identify the food.
	stopWordPattern = regexp.MustCompile(`\b(?:organic|fresh|family\s*size|large|small|mini|original|single|individual|bag|pack|vp|no\s*salt)\b`)

	// Everything outside lowercase alphanumerics, hyphen and apostrophe.
	nonNamePattern = regexp.MustCompile(`[^a-z0-9\s\-']`)

	multiSpacePattern = regexp.MustCompile(`\s+`)

	glyphReplacer = strings.NewReplacer("®", " ", "™", " ", "’", "'")
)

// NormalizeName reduces a raw receipt name to the words that identify
// the food: lower-cased, trademark glyphs and parentheticals dropped,
// unit quantities and marketing/packaging words removed, punctuation
// stripped down to hyphen and apostrophe, whitespace collapsed.
//
//	"Organic Bananas (Family Size) 2 lb" -> "bananas"
func NormalizeName(name string) string {
	s := strings.ToLower(name)
	s = glyphReplacer.Replace(s)
	s = parentheticalPattern.ReplaceAllString(s, " ")
	s = unitQuantityPattern.ReplaceAllString(s, " ")
	s = stopWordPattern.ReplaceAllString(s, " ")
	s = nonNamePattern.ReplaceAllString(s, " ")
	s = multiSpacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// nameVariants returns the search queries tried against a catalog: the
// raw name, its normalized form when different, and a four-token
// truncation of the normalized form when it runs longer.
func nameVariants(rawName string) []string {
	variants := []string{rawName}
	n := NormalizeName(rawName)
	if n != "" && n != rawName {
		variants = append(variants, n)
	}
	if tokens := strings.Fields(n); len(tokens) > 4 {
		variants = append(variants, strings.Join(tokens[:4], " "))
	}
	return variants
}
