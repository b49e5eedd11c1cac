package stt

import (
	"regexp"
	"strings"
)

var (
	// regexArtifacts matches non-speech markers like [BLANK_AUDIO] or
	// [MUSIC] that Whisper emits for silent or noisy stretches.
	regexArtifacts = regexp.MustCompile(`\[[A-Z_ ]+\]`)
	regexSpaces    = regexp.MustCompile(`  +`)
)

// cleanTranscript strips non-speech markers and surrounding whitespace
// from a raw transcript.
func cleanTranscript(text string) string {
	text = regexArtifacts.ReplaceAllString(text, "")
	text = regexSpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
