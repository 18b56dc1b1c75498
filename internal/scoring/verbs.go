// Package scoring provides the resume heuristics: ATS score, bullet guidance and top improvements.
package scoring

import "strings"

// ActionVerbs is the fixed vocabulary of strong resume verbs.
var ActionVerbs = []string{
	"built", "developed", "designed", "implemented", "led", "improved",
	"created", "optimized", "automated", "managed", "launched", "delivered",
	"established", "increased", "reduced", "achieved", "coordinated", "executed",
	"facilitated", "generated", "initiated", "maintained", "organized", "planned",
	"produced", "resolved", "streamlined", "transformed", "upgraded", "validated",
	"architected", "collaborated", "conducted", "directed", "enhanced", "formulated",
	"integrated",
}

// startsWithActionVerb checks the first word of text against the vocabulary.
// A word passes if it equals a verb or starts with one, so trailing punctuation is tolerated.
func startsWithActionVerb(text string) bool {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return false
	}
	first := words[0]
	for _, verb := range ActionVerbs {
		if first == verb || strings.HasPrefix(first, verb) {
			return true
		}
	}
	return false
}

// containsActionVerb reports whether any vocabulary verb appears anywhere in text.
func containsActionVerb(text string) bool {
	lower := strings.ToLower(text)
	for _, verb := range ActionVerbs {
		if strings.Contains(lower, verb) {
			return true
		}
	}
	return false
}

// containsDigit reports whether text has at least one ASCII digit.
func containsDigit(text string) bool {
	return strings.ContainsAny(text, "0123456789")
}

// wordCount counts whitespace-separated words.
func wordCount(text string) int {
	return len(strings.Fields(text))
}
