// Package llmjson isolates JSON payloads from free-text model replies.
package llmjson

import (
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// Strategy tries to locate a JSON payload in text. ok is false when the
// strategy does not apply.
type Strategy func(text string) (payload string, ok bool)

// DefaultChain is the order in which strategies are attempted.
var DefaultChain = []Strategy{FencedBlock, BracketSpan}

// Extract returns the JSON candidate from a model reply using DefaultChain.
// When no strategy applies the trimmed text is returned unchanged.
func Extract(text string) string {
	return ExtractWith(text, DefaultChain...)
}

// ExtractWith runs the given strategies in order and returns the first hit.
func ExtractWith(text string, chain ...Strategy) string {
	text = strings.TrimSpace(text)
	for _, s := range chain {
		if payload, ok := s(text); ok {
			return payload
		}
	}
	return text
}

// FencedBlock returns the contents of the first markdown code fence,
// optionally tagged "json".
func FencedBlock(text string) (string, bool) {
	m := fenceRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// BracketSpan returns the substring from the first '[' to the last ']'.
func BracketSpan(text string) (string, bool) {
	first := strings.Index(text, "[")
	last := strings.LastIndex(text, "]")
	if first == -1 || last == -1 || last < first {
		return "", false
	}
	return text[first : last+1], true
}
