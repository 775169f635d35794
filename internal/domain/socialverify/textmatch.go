package socialverify

import (
	"regexp"
	"strings"
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// RemoveURLs strips http/https links so that shortened links appended by the
// platform never break content comparison.
func RemoveURLs(s string) string {
	return urlPattern.ReplaceAllString(s, " ")
}

// NormalizeText lowercases and collapses all whitespace runs to single
// spaces. It is idempotent, also when composed with RemoveURLs.
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func normalizeContent(s string) string {
	return NormalizeText(RemoveURLs(s))
}

const punctuationCutset = ".,!?:;\"'`()[]{}<>#@*~"

// significantWords returns the normalized words longer than two characters,
// with surrounding punctuation trimmed. Short filler words carry no signal
// for similarity.
func significantWords(s string) []string {
	var words []string
	for _, w := range strings.Fields(normalizeContent(s)) {
		w = strings.Trim(w, punctuationCutset)
		if len(w) > 2 {
			words = append(words, w)
		}
	}

	return words
}

// ContentSimilarity returns the fraction of target's significant words found
// in text. A target without significant words matches nothing.
func ContentSimilarity(text, target string) float64 {
	targetWords := significantWords(target)
	if len(targetWords) == 0 {
		return 0
	}

	textWords := map[string]struct{}{}
	for _, w := range significantWords(text) {
		textWords[w] = struct{}{}
	}

	matched := 0
	for _, w := range targetWords {
		if _, ok := textWords[w]; ok {
			matched++
		}
	}

	return float64(matched) / float64(len(targetWords))
}

func containsNormalized(text, target string) bool {
	target = normalizeContent(target)
	if target == "" {
		return false
	}

	return strings.Contains(normalizeContent(text), target)
}
