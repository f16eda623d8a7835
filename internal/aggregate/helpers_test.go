package aggregate

import (
	"fmt"
	"math/rand"

	"catalog/internal/domain"
	"catalog/internal/store"
)

func text(s string) domain.Text {
	if s == "" {
		return domain.None()
	}
	return domain.Some(s)
}

func table(pairs ...[2]string) *store.Table {
	records := make([]domain.Record, len(pairs))
	for i, p := range pairs {
		records[i] = domain.Record{ID: int64(i + 1), Category: text(p[0]), Subcategory: text(p[1])}
	}
	return store.Load(records)
}

func randomTable(seed int64, n int) *store.Table {
	rng := rand.New(rand.NewSource(seed))
	records := make([]domain.Record, n)
	for i := range records {
		records[i] = domain.Record{ID: int64(i)}
		if c := rng.Intn(6); c > 0 {
			records[i].Category = domain.Some(fmt.Sprintf("cat-%d", c))
		}
		if s := rng.Intn(5); s > 0 {
			records[i].Subcategory = domain.Some(fmt.Sprintf("sub-%d", s))
		}
	}
	return store.Load(records)
}

func key(parts ...string) domain.GroupKey {
	k := make(domain.GroupKey, 0, len(parts)/2)
	for i := 0; i+1 < len(parts); i += 2 {
		var v domain.Value
		switch parts[i+1] {
		case domain.AllLabel:
			v = domain.All()
		case domain.MissingLabel:
			v = domain.Missing()
		default:
			v = domain.Concrete(parts[i+1])
		}
		k = append(k, domain.KeyPart{Name: parts[i], Value: v})
	}
	return k
}
