// Package store holds the product catalog as a column-oriented, read-only
// in-memory table.
package store

import (
	"iter"

	"catalog/internal/domain"
)

type column struct {
	values  []string
	present []bool
}

func (c *column) append(t domain.Text) {
	c.values = append(c.values, t.S)
	c.present = append(c.present, t.Valid)
}

func (c *column) at(i int) domain.Text {
	if !c.present[i] {
		return domain.None()
	}
	return domain.Some(c.values[i])
}

// Table is an immutable snapshot of the catalog. It is safe for concurrent
// readers; there is no mutation API.
type Table struct {
	ids         []int64
	category    column
	subcategory column
	name        column
	description column
}

// Load copies records into a new Table, preserving their order.
func Load(records []domain.Record) *Table {
	t := &Table{ids: make([]int64, 0, len(records))}
	for _, r := range records {
		t.ids = append(t.ids, r.ID)
		t.category.append(r.Category)
		t.subcategory.append(r.Subcategory)
		t.name.append(r.ProductName)
		t.description.append(r.Description)
	}
	return t
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.ids) }

// ID returns the id of the record at ordinal i.
func (t *Table) ID(i int) int64 { return t.ids[i] }

// At reconstructs the record at ordinal i.
func (t *Table) At(i int) domain.Record {
	return domain.Record{
		ID:          t.ids[i],
		Category:    t.category.at(i),
		Subcategory: t.subcategory.at(i),
		ProductName: t.name.at(i),
		Description: t.description.at(i),
	}
}

// Text returns the optional value of field f at ordinal i. The id is
// rendered in base 10.
func (t *Table) Text(i int, f domain.Field) (domain.Text, error) {
	if f == domain.FieldID {
		return t.At(i).Get(f)
	}
	c, err := t.column(f)
	if err != nil {
		return domain.Text{}, err
	}
	return c.at(i), nil
}

// Value returns field f at ordinal i as a grouping value.
func (t *Table) Value(i int, f domain.Field) (domain.Value, error) {
	txt, err := t.Text(i, f)
	if err != nil {
		return domain.Value{}, err
	}
	return domain.FromText(txt), nil
}

// Scan yields every record with its ordinal. The sequence may be ranged over
// any number of times.
func (t *Table) Scan() iter.Seq2[int, domain.Record] {
	return func(yield func(int, domain.Record) bool) {
		for i := range t.ids {
			if !yield(i, t.At(i)) {
				return
			}
		}
	}
}

// Texts yields the value of field f for every record, absent values as "".
func (t *Table) Texts(f domain.Field) (iter.Seq[string], error) {
	if _, err := domain.ParseField(string(f)); err != nil {
		return nil, err
	}
	return func(yield func(string) bool) {
		for i := range t.ids {
			txt, _ := t.Text(i, f)
			if !yield(txt.OrEmpty()) {
				return
			}
		}
	}, nil
}

func (t *Table) column(f domain.Field) (*column, error) {
	switch f {
	case domain.FieldCategory:
		return &t.category, nil
	case domain.FieldSubcategory:
		return &t.subcategory, nil
	case domain.FieldProductName:
		return &t.name, nil
	case domain.FieldDescription:
		return &t.description, nil
	}
	return nil, &domain.InvalidFieldError{Field: string(f)}
}
