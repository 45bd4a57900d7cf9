// Package tokenizer provides the default tokenization used when documents are
// added to an index. Tokenization happens only at document-add time; the
// flatten/rebuild transforms never tokenize.
package tokenizer

import (
	"strings"
	"unicode"
)

// Tokenize converts a string into a slice of lowercase terms.
// It splits on any rune that is neither a letter nor a digit, so punctuation,
// whitespace, hyphens and underscores all act as separators. Letters outside
// ASCII are kept as-is (lowercased), so multi-byte code points survive into
// the index unchanged.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)

	split := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(split)) // Initialize as empty slice, not nil
	for _, s := range split {
		if s != "" {
			tokens = append(tokens, s)
		}
	}
	return tokens
}

// TermFrequencies tokenizes a field value and counts how many times each term
// occurs. The returned length is the total token count of the field, which the
// index records as the field length.
func TermFrequencies(text string) (freqs map[string]int, length int) {
	tokens := Tokenize(text)
	freqs = make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freqs[tok]++
	}
	return freqs, len(tokens)
}
