// Package csvfile loads product records from a delimited file with a header row.
package csvfile

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"catalog/internal/domain"
)

// Config locates the file. Delimiter defaults to a comma.
type Config struct {
	Path      string
	Delimiter string
}

// Loader reads a CSV file. Columns are matched by header name, case
// insensitively; unknown columns are ignored and empty cells are absent.
type Loader struct {
	cfg Config
}

// New creates a Loader.
func New(cfg Config) *Loader { return &Loader{cfg: cfg} }

// Load opens the configured file and parses it.
func (l *Loader) Load(ctx context.Context) ([]domain.Record, error) {
	f, err := os.Open(l.cfg.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", l.cfg.Path)
	}
	defer f.Close()
	records, err := Read(ctx, f, l.cfg.Delimiter)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", l.cfg.Path)
	}
	return records, nil
}

// Read parses records from r. The header must contain an id column.
func Read(ctx context.Context, r io.Reader, delimiter string) ([]domain.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if delimiter != "" {
		cr.Comma = []rune(delimiter)[0]
	}
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header row")
		}
		return nil, err
	}
	columns := make(map[domain.Field]int)
	for i, name := range header {
		f, err := domain.ParseField(strings.TrimPrefix(name, "\ufeff"))
		if err != nil {
			continue
		}
		columns[f] = i
	}
	if _, ok := columns[domain.FieldID]; !ok {
		return nil, errors.New("header has no id column")
	}

	var out []domain.Record
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		cell := func(f domain.Field) domain.Text {
			i, ok := columns[f]
			if !ok || i >= len(row) || row[i] == "" {
				return domain.None()
			}
			return domain.Some(row[i])
		}
		rawID := strings.TrimSpace(cell(domain.FieldID).S)
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: invalid id %q", line, rawID)
		}
		out = append(out, domain.Record{
			ID:          id,
			Category:    cell(domain.FieldCategory),
			Subcategory: cell(domain.FieldSubcategory),
			ProductName: cell(domain.FieldProductName),
			Description: cell(domain.FieldDescription),
		})
	}
	return out, nil
}
