package tokenizer

import (
	"reflect"
	"testing"
)

// TestWordsTokenizer tests the UAX #29 word-boundary tokenizer.
func TestWordsTokenizer(t *testing.T) {
	t.Parallel()

	tok, err := NewWordsTokenizer()
	if err != nil {
		t.Fatalf("failed to create words tokenizer: %v", err)
	}

	t.Run("lowercases and drops punctuation", func(t *testing.T) {
		t.Parallel()

		got := tok.Tokenize("Hello, World! Go web crawler.")
		want := []string{"hello", "world", "go", "web", "crawler"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("drops numeric tokens", func(t *testing.T) {
		t.Parallel()

		got := tok.Tokenize("version 2 of chapter 10")
		want := []string{"version", "of", "chapter"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("keeps contractions whole", func(t *testing.T) {
		t.Parallel()

		got := tok.Tokenize("don't stop")
		want := []string{"don't", "stop"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("empty input yields no tokens", func(t *testing.T) {
		t.Parallel()

		if got := tok.Tokenize(""); len(got) != 0 {
			t.Errorf("expected no tokens, got %v", got)
		}
	})

	t.Run("handles non-latin text", func(t *testing.T) {
		t.Parallel()

		got := tok.Tokenize("Écoutez Mädchen")
		want := []string{"écoutez", "mädchen"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}

// TestRegexTokenizer tests the fallback tokenizer.
func TestRegexTokenizer(t *testing.T) {
	t.Parallel()

	tok := NewRegexTokenizer()

	t.Run("extracts lowercase word runs", func(t *testing.T) {
		t.Parallel()

		got := tok.Tokenize("Hello, World! Go-lang FTW.")
		want := []string{"hello", "world", "go", "lang", "ftw"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("keeps digit-bearing tokens", func(t *testing.T) {
		t.Parallel()

		got := tok.Tokenize("ipv6 covers 2^128 addresses")
		want := []string{"ipv6", "covers", "2", "128", "addresses"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("empty input yields no tokens", func(t *testing.T) {
		t.Parallel()

		if got := tok.Tokenize("   \n\t"); len(got) != 0 {
			t.Errorf("expected no tokens, got %v", got)
		}
	})
}

// TestSelect tests tokenizer selection at startup.
func TestSelect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		request  string
		wantName string
		wantErr  bool
	}{
		{name: "words by name", request: "words", wantName: NameWords},
		{name: "regex by name", request: "regex", wantName: NameRegex},
		{name: "auto prefers words", request: "auto", wantName: NameWords},
		{name: "empty defaults to auto", request: "", wantName: NameWords},
		{name: "case insensitive", request: "WORDS", wantName: NameWords},
		{name: "unknown name fails", request: "spacy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tok, err := Select(tt.request)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.request)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tok.Name() != tt.wantName {
				t.Errorf("expected tokenizer %q, got %q", tt.wantName, tok.Name())
			}
		})
	}
}

// TestTokenizersAgreeOnPlainText verifies both variants produce the same
// output on simple ASCII prose, so swapping them does not skew the index
// for the common case.
func TestTokenizersAgreeOnPlainText(t *testing.T) {
	t.Parallel()

	wordsTok, err := NewWordsTokenizer()
	if err != nil {
		t.Fatalf("failed to create words tokenizer: %v", err)
	}
	regexTok := NewRegexTokenizer()

	text := "The quick brown fox jumps over the lazy dog"
	a := wordsTok.Tokenize(text)
	b := regexTok.Tokenize(text)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("tokenizers disagree: words=%v regex=%v", a, b)
	}
}
