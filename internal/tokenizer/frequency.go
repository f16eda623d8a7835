package tokenizer

import (
	"iter"
	"sort"

	"catalog/internal/domain"
)

const (
	// DefaultMinFrequency is the count a token must exceed to be reported.
	DefaultMinFrequency = 5
	// DefaultTopLimit bounds keyword frequency reports.
	DefaultTopLimit = 30
)

// TokenCount is the number of occurrences of a token across a corpus.
type TokenCount struct {
	Token string
	Count int
}

// Row renders the count as token and frequency cells.
func (c TokenCount) Row() domain.Row {
	return domain.Row{
		{Name: "token", Value: c.Token},
		{Name: "frequency", Value: c.Count},
	}
}

// Count tokenizes every text and counts token occurrences. The result is
// ordered by count descending, then token ascending.
func Count(t *Tokenizer, texts iter.Seq[string]) []TokenCount {
	freq := map[string]int{}
	for text := range texts {
		for tok := range t.Tokenize(text) {
			freq[tok]++
		}
	}
	out := make([]TokenCount, 0, len(freq))
	for tok, n := range freq {
		out = append(out, TokenCount{Token: tok, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Token < out[j].Token
	})
	return out
}

// Top keeps the counts strictly greater than minFreq, truncated to limit.
// A limit of zero or less means DefaultTopLimit.
func Top(counts []TokenCount, minFreq, limit int) []TokenCount {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	out := make([]TokenCount, 0, min(limit, len(counts)))
	for _, c := range counts {
		if c.Count <= minFreq {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}
