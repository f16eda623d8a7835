// Package render writes report rows as a pretty table, CSV, TSV or JSON.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"catalog/internal/domain"
)

// Supported output formats.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatTSV   = "tsv"
	FormatJSON  = "json"
)

// Formats lists every accepted format name.
func Formats() []string { return []string{FormatTable, FormatCSV, FormatTSV, FormatJSON} }

// Write renders rows to w. The header is taken from the first row; rows are
// expected to share one shape.
func Write(w io.Writer, rows []domain.Row, format string) error {
	switch format {
	case FormatTable, "":
		return writeTable(w, rows)
	case FormatCSV:
		return writeDelimited(w, rows, ',')
	case FormatTSV:
		return writeDelimited(w, rows, '\t')
	case FormatJSON:
		return writeJSON(w, rows)
	}
	return errors.Newf("unknown output format %q", format)
}

func writeTable(w io.Writer, rows []domain.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "(0 rows)")
		return err
	}
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(rows[0].Names())
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = humanizeCell(c.Value)
		}
		tw.Append(cells)
	}
	tw.Render()
	_, err := fmt.Fprintf(w, "(%s %s)\n", humanize.Comma(int64(len(rows))), plural(len(rows)))
	return err
}

func humanizeCell(v any) string {
	switch x := v.(type) {
	case int:
		return humanize.Comma(int64(x))
	case int64:
		return humanize.Comma(x)
	}
	return domain.FormatValue(v)
}

func plural(n int) string {
	if n == 1 {
		return "row"
	}
	return "rows"
}

func writeDelimited(w io.Writer, rows []domain.Row, sep rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = sep
	if len(rows) > 0 {
		if err := cw.Write(rows[0].Names()); err != nil {
			return errors.Wrap(err, "write header")
		}
	}
	for _, r := range rows {
		if err := cw.Write(r.Strings()); err != nil {
			return errors.Wrap(err, "write row")
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, rows []domain.Row) error {
	if rows == nil {
		rows = []domain.Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
