package tokenizer

import (
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordsTokenizer segments text on UAX #29 word boundaries and keeps only
// alphabetic tokens, lowercased. This mirrors linguistic tokenizers that
// drop punctuation, digits, and whitespace segments.
type WordsTokenizer struct {
	// lang drives the case mapping. Und applies language-neutral rules.
	lang language.Tag
}

// WordsOption configures a WordsTokenizer.
type WordsOption func(*WordsTokenizer)

// WithLanguage sets the language used for case folding.
// Some languages (e.g. Turkish) have locale-specific lowercase mappings.
func WithLanguage(tag language.Tag) WordsOption {
	return func(w *WordsTokenizer) {
		w.lang = tag
	}
}

// NewWordsTokenizer creates the UAX #29 word-boundary tokenizer.
func NewWordsTokenizer(opts ...WordsOption) (*WordsTokenizer, error) {
	w := &WordsTokenizer{
		lang: language.Und,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Name returns the tokenizer name.
func (w *WordsTokenizer) Name() string {
	return NameWords
}

// Tokenize splits text into lowercase alphabetic tokens in order.
// Segments containing no letter (punctuation, digits, whitespace runs)
// are dropped.
func (w *WordsTokenizer) Tokenize(text string) []string {
	// cases.Caser is stateful and not safe for concurrent use, so build
	// one per call rather than sharing it across workers.
	lower := cases.Lower(w.lang)

	var tokens []string
	segments := words.FromString(text)
	for segments.Next() {
		segment := segments.Value()
		if !isAlphabetic(segment) {
			continue
		}
		tokens = append(tokens, lower.String(segment))
	}
	return tokens
}

// isAlphabetic reports whether s is non-empty and consists only of letters.
func isAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
