package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/rsql/table"
)

// TableFormatter renders results as a bordered text table followed by a
// row count
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (f *TableFormatter) SetOutput(w io.Writer) {
	f.writer = w
}

// Format renders header and rows. A result without columns prints only the
// row count.
func (f *TableFormatter) Format(header []string, rows []table.Row) error {
	if len(header) > 0 {
		tw := tablewriter.NewWriter(f.writer)
		tw.SetAutoFormatHeaders(false)
		tw.SetAutoWrapText(false)
		tw.SetHeader(header)
		for _, row := range rows {
			cells := make([]string, len(row))
			for i, v := range row {
				cells[i] = v.String()
			}
			tw.Append(cells)
		}
		tw.Render()
	}

	noun := "rows"
	if len(rows) == 1 {
		noun = "row"
	}
	_, err := fmt.Fprintf(f.writer, "(%d %s)\n", len(rows), noun)
	return err
}
