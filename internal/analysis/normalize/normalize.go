// Package normalize cleans raw text into canonical forms for feature
// extraction. Both modes are pure functions: the same input always yields
// the same output.
package normalize

import (
	"regexp"
	"strings"
)

var (
	// Characters outside the safe set: word characters, whitespace, and the
	// punctuation that carries sentence structure.
	unsafeChars = regexp.MustCompile(`[^\w\s.,;:"'-]`)
	// All punctuation, for the aggressive mode.
	punctuation = regexp.MustCompile(`[^\w\s]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Structured strips unsafe characters while preserving sentence boundaries
// and collapses whitespace runs. Used wherever lexical or semantic signal
// quality benefits from sentence structure.
func Structured(text string) string {
	text = unsafeChars.ReplaceAllString(text, " ")
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// Aggressive strips all punctuation, lower-cases, and collapses whitespace.
// Used only by the metadata-only path for uniformity with its keyword
// extraction.
func Aggressive(text string) string {
	text = punctuation.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.ToLower(strings.TrimSpace(text))
}
