// Package tokenizer splits free text into normalized tokens and counts them.
package tokenizer

import (
	"iter"
	"slices"
	"strings"
)

// DefaultMinLength is the shortest token kept; shorter words are dropped.
const DefaultMinLength = 4

// DefaultStopwords returns the words dropped by a default Tokenizer.
func DefaultStopwords() []string {
	return []string{"with", "from", "this", "that", "your", "into", "over", "made"}
}

// Tokenizer lowercases words, strips everything outside [a-z0-9] and drops
// short tokens and stopwords. It is immutable and safe for concurrent use.
type Tokenizer struct {
	minLength int
	stopwords map[string]struct{}
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithStopwords replaces the stopword set. Entries are normalized the same way
// tokens are.
func WithStopwords(words []string) Option {
	return func(t *Tokenizer) {
		t.stopwords = make(map[string]struct{}, len(words))
		for _, w := range words {
			if n := normalize(w); n != "" {
				t.stopwords[n] = struct{}{}
			}
		}
	}
}

// WithMinLength sets the minimum token length. Values below 1 are ignored.
func WithMinLength(n int) Option {
	return func(t *Tokenizer) {
		if n > 0 {
			t.minLength = n
		}
	}
}

// New creates a Tokenizer with the default stopwords and minimum length.
func New(opts ...Option) *Tokenizer {
	t := &Tokenizer{minLength: DefaultMinLength}
	WithStopwords(DefaultStopwords())(t)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// MinLength returns the configured minimum token length.
func (t *Tokenizer) MinLength() int { return t.minLength }

// Stopwords returns the stopword set, sorted.
func (t *Tokenizer) Stopwords() []string {
	out := make([]string, 0, len(t.stopwords))
	for w := range t.stopwords {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// Tokenize yields the tokens of text lazily. The same input always yields the
// same sequence and the sequence can be ranged over again.
func (t *Tokenizer) Tokenize(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, word := range strings.Fields(text) {
			tok := normalize(word)
			if len(tok) < t.minLength {
				continue
			}
			if _, stop := t.stopwords[tok]; stop {
				continue
			}
			if !yield(tok) {
				return
			}
		}
	}
}

// Tokens collects Tokenize into a slice.
func (t *Tokenizer) Tokens(text string) []string {
	return slices.Collect(t.Tokenize(text))
}

// Distinct returns the distinct tokens of text in first-seen order.
func (t *Tokenizer) Distinct(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for tok := range t.Tokenize(text) {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

func normalize(word string) string {
	lower := strings.ToLower(word)
	var b strings.Builder
	b.Grow(len(lower))
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}
