package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/rsql/table"
)

// CSVFormatter outputs results as CSV
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the header line followed by one record per row. An empty
// header produces no output.
func (c *CSVFormatter) Format(header []string, rows []table.Row) error {
	csvWriter := csv.NewWriter(c.writer)

	if len(header) > 0 {
		if err := csvWriter.Write(header); err != nil {
			return err
		}
		for _, row := range rows {
			record := make([]string, len(row))
			for i, v := range row {
				record[i] = formatValue(v)
			}
			if err := csvWriter.Write(record); err != nil {
				return err
			}
		}
	}

	// Flush and check for errors
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

// formatValue converts a cell to its CSV field. Null becomes an empty field.
func formatValue(v table.Value) string {
	switch v.Kind() {
	case table.KindNull:
		return ""
	case table.KindText:
		s, _ := v.AsText()
		// Sanitize against CSV injection by prefixing dangerous characters
		// that could trigger formula execution in spreadsheet applications
		if len(s) > 0 {
			switch s[0] {
			case '=', '+', '-', '@', '\t', '\r', '\n', '|':
				return "'" + strings.ReplaceAll(s, "'", "''")
			}
		}
		return s
	default:
		return v.String()
	}
}
