// Package duplicates finds records that collide on a normalized field value.
package duplicates

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mozillazg/go-slugify"

	"catalog/internal/domain"
	"catalog/internal/store"
)

// Normalizer maps a raw field value to its grouping key.
type Normalizer func(string) string

// Normalize lowercases and trims s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Slug folds s to an ASCII slug, so "Tote-Bag" and "tote bag" collide.
func Slug(s string) string {
	return slugify.Slugify(s)
}

// NormalizerByName resolves a configured normalizer name.
func NormalizerByName(name string) (Normalizer, error) {
	switch name {
	case "", "default", "lower":
		return Normalize, nil
	case "slug":
		return Slug, nil
	}
	return nil, errors.Newf("unknown normalizer %q", name)
}

// Duplicate is a normalized key shared by more than one record.
type Duplicate struct {
	Key   string
	Count int
}

// Row renders the duplicate as key and count cells.
func (d Duplicate) Row() domain.Row {
	return domain.Row{
		{Name: "normalized_key", Value: d.Key},
		{Name: "count", Value: d.Count},
	}
}

type options struct {
	normalize Normalizer
}

// Option configures Find.
type Option func(*options)

// WithNormalizer replaces the default lowercase-and-trim normalizer.
func WithNormalizer(fn Normalizer) Option {
	return func(o *options) {
		if fn != nil {
			o.normalize = fn
		}
	}
}

// Find groups records on the normalized value of field and returns the keys
// seen more than once, by count descending then key ascending. Absent values
// are skipped.
func Find(t *store.Table, field domain.Field, opts ...Option) ([]Duplicate, error) {
	o := options{normalize: Normalize}
	for _, opt := range opts {
		opt(&o)
	}
	if _, err := domain.ParseField(string(field)); err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for i := 0; i < t.Len(); i++ {
		txt, err := t.Text(i, field)
		if err != nil {
			return nil, err
		}
		if !txt.Valid {
			continue
		}
		counts[o.normalize(txt.S)]++
	}
	var out []Duplicate
	for k, n := range counts {
		if n > 1 {
			out = append(out, Duplicate{Key: k, Count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}
