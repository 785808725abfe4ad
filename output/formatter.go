// Package output renders query results for the terminal or for other tools.
//
// Currently supported formats:
//   - table: aligned text table with borders
//   - csv: comma-separated values with header row
//   - jsonl: one JSON object per row, keys in column order
//
// Example usage:
//
//	formatter, err := output.New("table", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(res.Header, res.Rows); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"fmt"
	"io"

	"github.com/vegasq/rsql/table"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to render one result and SetOutput to
// change the output destination.
type Formatter interface {
	// Format writes a header and its rows in the formatter's specific format
	Format(header []string, rows []table.Row) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// Formats lists the names accepted by New
var Formats = []string{"table", "csv", "jsonl"}

// New returns the formatter registered under name
func New(name string, w io.Writer) (Formatter, error) {
	switch name {
	case "table":
		return NewTableFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "json", "jsonl":
		return NewJSONFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported format '%s'", name)
	}
}
