package domain

import "fmt"

// EmptyInputError is returned when a share-of-total or rank computation is
// requested over zero rows.
type EmptyInputError struct {
	Op string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: empty input", e.Op)
}

// InvalidFieldError is returned when a requested grouping, classification or
// ordering field does not exist.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field: %q", e.Field)
}
