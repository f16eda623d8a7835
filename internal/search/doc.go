// Package search provides a minimal full-text index over catalog records.
//
// An Index is built once from a table and is immutable afterwards:
//
//	idx, err := search.Build(tbl, tokenizer.New(), domain.FieldProductName, domain.FieldDescription)
//	hits := idx.Query("cashmere scarf", 30)
//
// Matching uses AND semantics: a record matches only if it contains every
// distinct query token. Postings are roaring bitmaps over record ordinals, so
// a query is an intersection of at most one bitmap per query token.
//
// # Thread Safety
//
// Build must complete before the Index is shared; after that any number of
// goroutines may query it without coordination.
package search
