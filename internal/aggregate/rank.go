package aggregate

import (
	"cmp"
	"sort"

	"catalog/internal/domain"
)

// RankMode selects how ranks advance after a run of ties.
type RankMode int

const (
	// RankDense gives the next distinct value the rank of its position among
	// distinct values: 5, 5, 2 rank as 1, 1, 2.
	RankDense RankMode = iota
	// RankStandard gives the next distinct value its row position, leaving
	// gaps after ties: 5, 5, 2 rank as 1, 1, 3.
	RankStandard
)

type rankOptions struct {
	descending bool
	mode       RankMode
}

// RankOption configures WithPartitionRank.
type RankOption func(*rankOptions)

// Ascending ranks the lowest order value first.
func Ascending() RankOption {
	return func(o *rankOptions) { o.descending = false }
}

// WithRankMode selects dense or standard ranking.
func WithRankMode(m RankMode) RankOption {
	return func(o *rankOptions) { o.mode = m }
}

// Ranked is a group with its rank inside its partition.
type Ranked struct {
	Group
	Rank int
}

// Row renders the ranked group as key cells, count and rank.
func (r Ranked) Row() domain.Row {
	return append(r.Group.Row(), domain.Cell{Name: RankColumn, Value: r.Rank})
}

// WithPartitionRank ranks groups independently within each partition, the
// partition being the groups that share the values of the partition fields.
// orderField is "count" or the name of a key dimension; the highest value
// ranks first unless Ascending is given. Equal values share a rank.
//
// The result is ordered by partition key, then rank, then full key.
func WithPartitionRank(groups []Group, partition []string, orderField string, opts ...RankOption) ([]Ranked, error) {
	o := rankOptions{descending: true, mode: RankDense}
	for _, opt := range opts {
		opt(&o)
	}
	if len(groups) == 0 {
		return nil, &domain.EmptyInputError{Op: "partition rank"}
	}
	first := groups[0].Key
	for _, name := range partition {
		if _, ok := first.Get(name); !ok {
			return nil, &domain.InvalidFieldError{Field: name}
		}
	}
	if orderField != CountColumn {
		if _, ok := first.Get(orderField); !ok {
			return nil, &domain.InvalidFieldError{Field: orderField}
		}
	}

	type bucket struct {
		key     domain.GroupKey
		members []Group
	}
	index := make(map[string]int)
	var buckets []bucket
	for _, g := range groups {
		pk := make(domain.GroupKey, len(partition))
		for i, name := range partition {
			v, _ := g.Key.Get(name)
			pk[i] = domain.KeyPart{Name: name, Value: v}
		}
		enc := pk.Encode()
		pos, ok := index[enc]
		if !ok {
			pos = len(buckets)
			index[enc] = pos
			buckets = append(buckets, bucket{key: pk})
		}
		buckets[pos].members = append(buckets[pos].members, g)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].key.Compare(buckets[j].key) < 0
	})

	compare := func(a, b Group) int {
		var c int
		if orderField == CountColumn {
			c = cmp.Compare(a.Count, b.Count)
		} else {
			va, _ := a.Key.Get(orderField)
			vb, _ := b.Key.Get(orderField)
			c = va.Compare(vb)
		}
		if o.descending {
			c = -c
		}
		return c
	}

	out := make([]Ranked, 0, len(groups))
	for _, b := range buckets {
		members := b.members
		sort.SliceStable(members, func(i, j int) bool {
			if c := compare(members[i], members[j]); c != 0 {
				return c < 0
			}
			return members[i].Key.Compare(members[j].Key) < 0
		})
		rank := 0
		for i, g := range members {
			if i == 0 || compare(members[i-1], g) != 0 {
				if o.mode == RankStandard {
					rank = i + 1
				} else {
					rank++
				}
			}
			out = append(out, Ranked{Group: g, Rank: rank})
		}
	}
	return out, nil
}
