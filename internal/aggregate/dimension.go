// Package aggregate computes grouped counts and the window-style metrics a
// database would derive from them: share of total, partitioned rank and
// hierarchical rollup. Every function is a pure pass over an immutable table.
package aggregate

import (
	"github.com/cockroachdb/errors"

	"catalog/internal/domain"
	"catalog/internal/store"
)

// Dimension extracts one grouping value per record.
type Dimension struct {
	Name string

	field  domain.Field
	values []domain.Value
}

// FieldDimension groups on a column of the Record shape.
func FieldDimension(f domain.Field) (Dimension, error) {
	if _, err := domain.ParseField(string(f)); err != nil {
		return Dimension{}, err
	}
	return Dimension{Name: string(f), field: f}, nil
}

// FieldDimensions maps FieldDimension over fields.
func FieldDimensions(fields ...domain.Field) ([]Dimension, error) {
	dims := make([]Dimension, 0, len(fields))
	for _, f := range fields {
		d, err := FieldDimension(f)
		if err != nil {
			return nil, err
		}
		dims = append(dims, d)
	}
	return dims, nil
}

// ValuesDimension groups on a derived column holding one value per record,
// in table order.
func ValuesDimension(name string, values []domain.Value) Dimension {
	return Dimension{Name: name, values: values}
}

// LabelDimension groups on a derived column of labels, such as classifier output.
func LabelDimension(name string, labels []string) Dimension {
	values := make([]domain.Value, len(labels))
	for i, l := range labels {
		values[i] = domain.Concrete(l)
	}
	return ValuesDimension(name, values)
}

func (d Dimension) check(t *store.Table) error {
	if d.field != "" {
		return nil
	}
	if len(d.values) != t.Len() {
		return errors.Newf("dimension %q has %d values for %d records", d.Name, len(d.values), t.Len())
	}
	return nil
}

// At returns the dimension value of the record at ordinal i.
func (d Dimension) At(t *store.Table, i int) domain.Value {
	if d.field != "" {
		v, _ := t.Value(i, d.field)
		return v
	}
	return d.values[i]
}

func checkDimensions(t *store.Table, dims []Dimension) error {
	seen := make(map[string]struct{}, len(dims))
	for _, d := range dims {
		if d.Name == "" || d.Name == CountColumn {
			return &domain.InvalidFieldError{Field: d.Name}
		}
		if _, dup := seen[d.Name]; dup {
			return errors.Newf("dimension %q listed twice", d.Name)
		}
		seen[d.Name] = struct{}{}
		if err := d.check(t); err != nil {
			return err
		}
	}
	return nil
}

// KeyAt builds the group key of the record at ordinal i.
func KeyAt(t *store.Table, dims []Dimension, i int) domain.GroupKey {
	key := make(domain.GroupKey, len(dims))
	for j, d := range dims {
		key[j] = domain.KeyPart{Name: d.Name, Value: d.At(t, i)}
	}
	return key
}
