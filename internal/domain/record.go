package domain

import (
	"strconv"
	"strings"
)

// Text is an optional string field of a Record.
type Text struct {
	S     string
	Valid bool
}

// Some returns a present Text holding s.
func Some(s string) Text { return Text{S: s, Valid: true} }

// None returns an absent Text.
func None() Text { return Text{} }

// OrEmpty returns the string, or "" when absent.
func (t Text) OrEmpty() string {
	if !t.Valid {
		return ""
	}
	return t.S
}

// Record is one product row of the catalog. Records are immutable once loaded.
type Record struct {
	ID          int64
	Category    Text
	Subcategory Text
	ProductName Text
	Description Text
}

// Field names a column of the Record shape.
type Field string

const (
	FieldID          Field = "id"
	FieldCategory    Field = "category"
	FieldSubcategory Field = "subcategory"
	FieldProductName Field = "product_name"
	FieldDescription Field = "description"
)

// TextFields lists the optional string fields in column order.
var TextFields = []Field{FieldCategory, FieldSubcategory, FieldProductName, FieldDescription}

// ParseField maps a column name to a Field.
func ParseField(name string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(name))); f {
	case FieldID, FieldCategory, FieldSubcategory, FieldProductName, FieldDescription:
		return f, nil
	}
	return "", &InvalidFieldError{Field: name}
}

// ParseFields maps every name with ParseField and fails on the first unknown one.
func ParseFields(names []string) ([]Field, error) {
	out := make([]Field, 0, len(names))
	for _, n := range names {
		f, err := ParseField(n)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Get returns the value of field f on r. The id is rendered in base 10.
func (r Record) Get(f Field) (Text, error) {
	switch f {
	case FieldID:
		return Some(strconv.FormatInt(r.ID, 10)), nil
	case FieldCategory:
		return r.Category, nil
	case FieldSubcategory:
		return r.Subcategory, nil
	case FieldProductName:
		return r.ProductName, nil
	case FieldDescription:
		return r.Description, nil
	}
	return Text{}, &InvalidFieldError{Field: string(f)}
}
