package output

import (
	"bufio"
	"io"

	"github.com/goccy/go-json"

	"github.com/vegasq/rsql/table"
)

// JSONFormatter outputs rows as JSON Lines
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes one JSON object per row. Keys follow header order, which a
// Go map would not preserve, so objects are assembled field by field.
func (j *JSONFormatter) Format(header []string, rows []table.Row) error {
	buf := bufio.NewWriter(j.writer)
	for _, row := range rows {
		if err := buf.WriteByte('{'); err != nil {
			return err
		}
		for i, name := range header {
			if i > 0 {
				_ = buf.WriteByte(',')
			}
			key, err := json.Marshal(name)
			if err != nil {
				return err
			}
			val, err := json.Marshal(row[i])
			if err != nil {
				return err
			}
			_, _ = buf.Write(key)
			_ = buf.WriteByte(':')
			_, _ = buf.Write(val)
		}
		if _, err := buf.WriteString("}\n"); err != nil {
			return err
		}
	}
	return buf.Flush()
}
