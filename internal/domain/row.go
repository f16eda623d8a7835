package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Cell is one named value of a Row.
type Cell struct {
	Name  string
	Value any
}

// Row is an ordered sequence of named values handed to the reporting layer.
type Row []Cell

// Get returns the value of the named cell.
func (r Row) Get(name string) (any, bool) {
	for _, c := range r {
		if c.Name == name {
			return c.Value, true
		}
	}
	return nil, false
}

// Names returns the cell names in order.
func (r Row) Names() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Name
	}
	return out
}

// Strings renders every cell value for tabular output.
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = FormatValue(c.Value)
	}
	return out
}

// FormatValue renders a cell value as text.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case Value:
		return x.String()
	case float64:
		return fmt.Sprintf("%.2f", x)
	default:
		return fmt.Sprint(x)
	}
}

// MarshalJSON encodes the row as an object whose keys keep the cell order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		v := c.Value
		if gv, ok := v.(Value); ok {
			v = gv.String()
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
