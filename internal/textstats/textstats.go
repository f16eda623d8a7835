// Package textstats describes the length distribution of a text field.
package textstats

import (
	"sort"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/montanaflynn/stats"

	"catalog/internal/aggregate"
	"catalog/internal/domain"
	"catalog/internal/store"
)

// DefaultLongestLimit bounds Longest when no positive limit is given.
const DefaultLongestLimit = 20

// Summary is the length distribution of one group. Lengths are counted in
// runes; absent values are excluded from every statistic but Records.
type Summary struct {
	Key     domain.GroupKey
	Records int
	Present int
	Mean    float64
	Median  float64
	P90     float64
	Min     float64
	Max     float64
}

// Row renders the summary.
func (s Summary) Row() domain.Row {
	row := make(domain.Row, 0, len(s.Key)+7)
	for _, p := range s.Key {
		row = append(row, domain.Cell{Name: p.Name, Value: p.Value})
	}
	return append(row,
		domain.Cell{Name: "records", Value: s.Records},
		domain.Cell{Name: "with_text", Value: s.Present},
		domain.Cell{Name: "mean_len", Value: s.Mean},
		domain.Cell{Name: "median_len", Value: s.Median},
		domain.Cell{Name: "p90_len", Value: s.P90},
		domain.Cell{Name: "min_len", Value: int(s.Min)},
		domain.Cell{Name: "max_len", Value: int(s.Max)},
	)
}

// Describe computes the length distribution of field per group of dims. With
// no dims a single summary covers the whole table. Groups come back in
// ascending key order.
func Describe(t *store.Table, field domain.Field, dims ...aggregate.Dimension) ([]Summary, error) {
	if _, err := domain.ParseField(string(field)); err != nil {
		return nil, err
	}
	groups, err := aggregate.GroupCountBy(t, dims...)
	if err != nil {
		return nil, err
	}
	lengths := make(map[string][]float64, len(groups))
	for i := 0; i < t.Len(); i++ {
		txt, err := t.Text(i, field)
		if err != nil {
			return nil, err
		}
		if !txt.Valid {
			continue
		}
		enc := aggregate.KeyAt(t, dims, i).Encode()
		lengths[enc] = append(lengths[enc], float64(utf8.RuneCountInString(txt.S)))
	}

	out := make([]Summary, 0, len(groups))
	for _, g := range groups {
		s := Summary{Key: g.Key, Records: g.Count}
		data := stats.Float64Data(lengths[g.Key.Encode()])
		s.Present = data.Len()
		if s.Present > 0 {
			if err := s.fill(data); err != nil {
				return nil, errors.Wrapf(err, "describe %s", field)
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func (s *Summary) fill(data stats.Float64Data) error {
	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return err
	}
	s.Mean, _ = stats.Round(s.Mean, 2)
	if s.Median, err = stats.Median(data); err != nil {
		return err
	}
	if s.P90, err = stats.PercentileNearestRank(data, 90); err != nil {
		return err
	}
	if s.Min, err = stats.Min(data); err != nil {
		return err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return err
	}
	return nil
}

// Entry is one record of a Longest listing.
type Entry struct {
	ID     int64
	Length int
	Text   string
}

// Row renders the entry.
func (e Entry) Row() domain.Row {
	return domain.Row{
		{Name: "id", Value: e.ID},
		{Name: "length", Value: e.Length},
		{Name: "text", Value: e.Text},
	}
}

// Longest returns the records with the longest value of field, longest first
// and ties by ascending id. Absent values are skipped.
func Longest(t *store.Table, field domain.Field, limit int) ([]Entry, error) {
	if _, err := domain.ParseField(string(field)); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLongestLimit
	}
	var entries []Entry
	for i := 0; i < t.Len(); i++ {
		txt, err := t.Text(i, field)
		if err != nil {
			return nil, err
		}
		if !txt.Valid {
			continue
		}
		entries = append(entries, Entry{ID: t.ID(i), Length: utf8.RuneCountInString(txt.S), Text: txt.S})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Length != entries[j].Length {
			return entries[i].Length > entries[j].Length
		}
		return entries[i].ID < entries[j].ID
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
