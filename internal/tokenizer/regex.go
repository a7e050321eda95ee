package tokenizer

import (
	"regexp"
	"strings"
)

// wordPattern matches runs of word characters: letters, digits, and
// underscore, across all Unicode scripts.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// RegexTokenizer is the fallback tokenizer: lowercase the text, then pull
// out word-character runs. It keeps digit-bearing tokens that the word
// segmenter would drop, trading precision for robustness.
type RegexTokenizer struct{}

// NewRegexTokenizer creates the regex fallback tokenizer.
func NewRegexTokenizer() *RegexTokenizer {
	return &RegexTokenizer{}
}

// Name returns the tokenizer name.
func (r *RegexTokenizer) Name() string {
	return NameRegex
}

// Tokenize splits text into lowercase word-character runs in order.
func (r *RegexTokenizer) Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}
