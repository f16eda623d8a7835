package aggregate

import (
	"math"
	"sort"

	"catalog/internal/domain"
	"catalog/internal/store"
)

const (
	CountColumn = "count"
	PctColumn   = "pct_of_total"
	RankColumn  = "rank"
	LevelColumn = "rollup_level"
)

// Group is one aggregation bucket.
type Group struct {
	Key   domain.GroupKey
	Count int
}

// Row renders the group as key cells followed by the count.
func (g Group) Row() domain.Row {
	row := make(domain.Row, 0, len(g.Key)+1)
	for _, p := range g.Key {
		row = append(row, domain.Cell{Name: p.Name, Value: p.Value})
	}
	return append(row, domain.Cell{Name: CountColumn, Value: g.Count})
}

// GroupCount counts records per distinct combination of fields.
func GroupCount(t *store.Table, fields ...domain.Field) ([]Group, error) {
	dims, err := FieldDimensions(fields...)
	if err != nil {
		return nil, err
	}
	return GroupCountBy(t, dims...)
}

// GroupCountBy counts records per distinct combination of dimension values in
// a single pass. Missing values form their own group. Groups are returned in
// ascending key order; with no dimensions the result is one group holding
// the table size.
func GroupCountBy(t *store.Table, dims ...Dimension) ([]Group, error) {
	if err := checkDimensions(t, dims); err != nil {
		return nil, err
	}
	if len(dims) == 0 {
		return []Group{{Key: domain.GroupKey{}, Count: t.Len()}}, nil
	}
	index := make(map[string]int)
	var groups []Group
	for i := 0; i < t.Len(); i++ {
		key := KeyAt(t, dims, i)
		enc := key.Encode()
		if pos, ok := index[enc]; ok {
			groups[pos].Count++
			continue
		}
		index[enc] = len(groups)
		groups = append(groups, Group{Key: key, Count: 1})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key.Compare(groups[j].Key) < 0
	})
	return groups, nil
}

// Total sums the counts of groups.
func Total(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += g.Count
	}
	return n
}

// SortByCount orders groups by count descending, then key ascending.
func SortByCount(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key.Compare(groups[j].Key) < 0
	})
}

// Filter keeps the groups whose count is strictly greater than minCount.
func Filter(groups []Group, minCount int) []Group {
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		if g.Count > minCount {
			out = append(out, g)
		}
	}
	return out
}

// Share is a group with its percentage of the result-set total.
type Share struct {
	Group
	Pct float64
}

// Row renders the share as key cells, count and pct_of_total.
func (s Share) Row() domain.Row {
	return append(s.Group.Row(), domain.Cell{Name: PctColumn, Value: s.Pct})
}

// WithShareOfTotal computes round(100 * count / total, 2) for every group,
// where total is the sum of all counts. Group order is preserved.
func WithShareOfTotal(groups []Group) ([]Share, error) {
	total := Total(groups)
	if len(groups) == 0 || total == 0 {
		return nil, &domain.EmptyInputError{Op: "share of total"}
	}
	out := make([]Share, len(groups))
	for i, g := range groups {
		out[i] = Share{Group: g, Pct: round2(100.0 * float64(g.Count) / float64(total))}
	}
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
