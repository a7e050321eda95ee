package tokenizer

import (
	"fmt"
	"strings"
)

// Tokenizer converts text into an ordered sequence of normalized tokens.
// Implementations must be safe for concurrent use by multiple workers.
type Tokenizer interface {
	// Tokenize returns the normalized tokens of text in order.
	Tokenize(text string) []string

	// Name returns the tokenizer's name for logging and reporting.
	Name() string
}

// Selection names for Select.
const (
	// NameWords selects the UAX #29 word-boundary tokenizer.
	NameWords = "words"

	// NameRegex selects the regex fallback tokenizer.
	NameRegex = "regex"

	// NameAuto prefers the word-boundary tokenizer and falls back to
	// regex if it cannot be constructed.
	NameAuto = "auto"
)

// Select chooses a tokenizer implementation by name. This is the single
// feature-detection step: it runs once at crawl start, and the returned
// value is used unchanged for the whole run.
//
// With NameAuto, a failure to build the linguistic tokenizer degrades to
// the regex variant instead of failing; the caller can compare Name()
// against the request to detect the fallback.
func Select(name string) (Tokenizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameWords:
		return NewWordsTokenizer()
	case NameRegex:
		return NewRegexTokenizer(), nil
	case NameAuto, "":
		if t, err := NewWordsTokenizer(); err == nil {
			return t, nil
		}
		return NewRegexTokenizer(), nil
	default:
		return nil, fmt.Errorf("unknown tokenizer %q (want %s, %s, or %s)", name, NameWords, NameRegex, NameAuto)
	}
}
