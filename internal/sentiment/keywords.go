package sentiment

import (
	"slices"
	"strings"
	"unicode"
)

const (
	minKeywordLength = 3
	maxKeywords      = 6
)

// Tokenize lowercases text and returns the whole words made only of ASCII
// letters that are at least three characters long. A word is a maximal run of
// Unicode letters, numbers and underscores, so "café" or "abc123" yield nothing.
func Tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) >= minKeywordLength && isASCIIAlpha(w) {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// StopwordSet builds a lookup set from a word list.
func StopwordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return set
}

// TopKeywords returns up to limit distinct tokens ordered by frequency.
// Equal counts keep the order in which the tokens were first seen.
func TopKeywords(tokens []string, limit int) []string {
	counts := make(map[string]int, len(tokens))
	var order []string
	for _, t := range tokens {
		if _, seen := counts[t]; !seen {
			order = append(order, t)
		}
		counts[t]++
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return counts[b] - counts[a]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	return append(make([]string, 0, len(order)), order...)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isASCIIAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
