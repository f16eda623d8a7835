package aggregate

import (
	"sort"

	"catalog/internal/domain"
	"catalog/internal/store"
)

// RollupRow is one row of a rollup. Level counts how many trailing
// dimensions were replaced by the ALL sentinel.
type RollupRow struct {
	Key   domain.GroupKey
	Count int
	Level int
}

// Row renders the rollup row as key cells, count and rollup_level.
func (r RollupRow) Row() domain.Row {
	row := Group{Key: r.Key, Count: r.Count}.Row()
	return append(row, domain.Cell{Name: LevelColumn, Value: r.Level})
}

// Rollup is RollupBy over record fields.
func Rollup(t *store.Table, fields ...domain.Field) ([]RollupRow, error) {
	dims, err := FieldDimensions(fields...)
	if err != nil {
		return nil, err
	}
	return RollupBy(t, dims...)
}

// RollupBy counts records at every suffix rollup of dims: for [d1, d2] the
// levels are (d1, d2), (d1, ALL) and (ALL, ALL). Every record is emitted once
// per level in a single pass. Absent source values stay Missing and are never
// confused with ALL.
//
// Rows are ordered by level, then by dimension values ascending. The grand
// total row is always present, with a count of zero for an empty table.
func RollupBy(t *store.Table, dims ...Dimension) ([]RollupRow, error) {
	if err := checkDimensions(t, dims); err != nil {
		return nil, err
	}
	n := len(dims)
	index := make(map[string]int)
	var rows []RollupRow

	emit := func(key domain.GroupKey, level int) {
		enc := key.Encode()
		if pos, ok := index[enc]; ok {
			rows[pos].Count++
			return
		}
		index[enc] = len(rows)
		rows = append(rows, RollupRow{Key: key, Count: 1, Level: level})
	}

	for i := 0; i < t.Len(); i++ {
		detail := KeyAt(t, dims, i)
		for level := 0; level <= n; level++ {
			key := make(domain.GroupKey, n)
			copy(key, detail)
			for j := n - level; j < n; j++ {
				key[j].Value = domain.All()
			}
			emit(key, level)
		}
	}
	if t.Len() == 0 {
		total := make(domain.GroupKey, n)
		for j, d := range dims {
			total[j] = domain.KeyPart{Name: d.Name, Value: domain.All()}
		}
		rows = append(rows, RollupRow{Key: total, Level: n})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Level != rows[j].Level {
			return rows[i].Level < rows[j].Level
		}
		return rows[i].Key.Compare(rows[j].Key) < 0
	})
	return rows, nil
}
