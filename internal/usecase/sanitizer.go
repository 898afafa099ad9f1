package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	// Keeps word characters, whitespace and accented Latin letters
	// (Latin-1 Supplement and Latin Extended-A), drops everything else.
	searchTermRegex = regexp.MustCompile(`[^\w\s\x{00C0}-\x{017F}]`)

	multipleSpacesRegex = regexp.MustCompile(`\s+`)
)

// maxSearchTermLength bounds free-text search input.
const maxSearchTermLength = 100

// SanitizeSearchTerm strips unsafe characters from free-text search input,
// trims surrounding whitespace and truncates to 100 characters. Malformed
// input degrades to an empty or shorter string; this never fails.
func SanitizeSearchTerm(raw string) string {
	if raw == "" {
		return ""
	}

	cleaned := searchTermRegex.ReplaceAllString(raw, "")
	cleaned = strings.TrimSpace(cleaned)

	runes := []rune(cleaned)
	if len(runes) > maxSearchTermLength {
		cleaned = strings.TrimSpace(string(runes[:maxSearchTermLength]))
	}

	return cleaned
}
