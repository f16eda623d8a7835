package search

import (
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cockroachdb/errors"

	"catalog/internal/domain"
	"catalog/internal/store"
	"catalog/internal/tokenizer"
)

// DefaultLimit bounds query results when no positive limit is given.
const DefaultLimit = 30

// Index maps tokens to the records containing them.
type Index struct {
	fields   []domain.Field
	tok      *tokenizer.Tokenizer
	postings map[string]*roaring.Bitmap
	ids      []int64
	lengths  []int
}

// Hit is one query match.
type Hit struct {
	Ordinal int
	ID      int64
	Score   int
}

// Row renders the hit as id and score cells.
func (h Hit) Row() domain.Row {
	return domain.Row{
		{Name: "id", Value: h.ID},
		{Name: "score", Value: h.Score},
	}
}

// Build tokenizes the named fields of every record, concatenated with a
// space and absent values read as "", and records the postings and per-record
// token counts. The returned Index is never modified.
func Build(t *store.Table, tok *tokenizer.Tokenizer, fields ...domain.Field) (*Index, error) {
	if len(fields) == 0 {
		return nil, errors.New("search: no fields to index")
	}
	for _, f := range fields {
		if _, err := domain.ParseField(string(f)); err != nil {
			return nil, err
		}
	}
	if tok == nil {
		tok = tokenizer.New()
	}
	idx := &Index{
		fields:   append([]domain.Field(nil), fields...),
		tok:      tok,
		postings: make(map[string]*roaring.Bitmap),
		ids:      make([]int64, t.Len()),
		lengths:  make([]int, t.Len()),
	}
	parts := make([]string, len(fields))
	for i := 0; i < t.Len(); i++ {
		for j, f := range fields {
			txt, err := t.Text(i, f)
			if err != nil {
				return nil, err
			}
			parts[j] = txt.OrEmpty()
		}
		idx.ids[i] = t.ID(i)
		n := 0
		for token := range tok.Tokenize(strings.Join(parts, " ")) {
			bm, ok := idx.postings[token]
			if !ok {
				bm = roaring.New()
				idx.postings[token] = bm
			}
			bm.Add(uint32(i))
			n++
		}
		idx.lengths[i] = n
	}
	for _, bm := range idx.postings {
		bm.RunOptimize()
	}
	return idx, nil
}

// Fields returns the indexed fields.
func (idx *Index) Fields() []domain.Field { return append([]domain.Field(nil), idx.fields...) }

// Len returns the number of indexed records.
func (idx *Index) Len() int { return len(idx.ids) }

// Terms returns the number of distinct tokens.
func (idx *Index) Terms() int { return len(idx.postings) }

// DocFreq returns how many records contain token.
func (idx *Index) DocFreq(token string) int {
	bm, ok := idx.postings[token]
	if !ok {
		return 0
	}
	return int(bm.GetCardinality())
}

// TokenCount returns the number of tokens indexed for the record at ordinal.
func (idx *Index) TokenCount(ordinal int) int {
	if ordinal < 0 || ordinal >= len(idx.lengths) {
		return 0
	}
	return idx.lengths[ordinal]
}

// QueryTokens returns the distinct tokens the index would match for text.
func (idx *Index) QueryTokens(text string) []string {
	return idx.tok.Distinct(text)
}

// Query returns the records containing every distinct token of text. The
// score is the number of distinct query tokens present; hits are ordered by
// score descending, then id and ordinal ascending, and truncated to limit.
// An empty query or an empty index yields no hits.
func (idx *Index) Query(text string, limit int) []Hit {
	if limit <= 0 {
		limit = DefaultLimit
	}
	tokens := idx.QueryTokens(text)
	if len(tokens) == 0 || len(idx.ids) == 0 {
		return nil
	}
	lists := make([]*roaring.Bitmap, 0, len(tokens))
	for _, token := range tokens {
		bm, ok := idx.postings[token]
		if !ok {
			return nil
		}
		lists = append(lists, bm)
	}
	sort.Slice(lists, func(i, j int) bool {
		return lists[i].GetCardinality() < lists[j].GetCardinality()
	})
	matched := lists[0].Clone()
	for _, bm := range lists[1:] {
		matched.And(bm)
		if matched.IsEmpty() {
			return nil
		}
	}

	hits := make([]Hit, 0, matched.GetCardinality())
	it := matched.Iterator()
	for it.HasNext() {
		ord := it.Next()
		score := 0
		for _, bm := range lists {
			if bm.Contains(ord) {
				score++
			}
		}
		hits = append(hits, Hit{Ordinal: int(ord), ID: idx.ids[ord], Score: score})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		if hits[i].ID != hits[j].ID {
			return hits[i].ID < hits[j].ID
		}
		return hits[i].Ordinal < hits[j].Ordinal
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}
