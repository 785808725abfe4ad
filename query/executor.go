package query

import (
	"github.com/vegasq/rsql/table"
)

// Execute runs a translated query against db.
//
// A query against a table that does not exist yields an empty header and no
// rows. Requested columns missing from the schema are skipped; the header
// and every row list the remaining columns in schema order.
func Execute(q *Query, db *table.Database) *Result {
	result := &Result{
		Header: []string{},
		Rows:   []table.Row{},
	}

	t, schema, ok := db.Lookup(q.Table)
	if !ok {
		return result
	}

	positions := projectPositions(schema, q.Projection)
	for _, p := range positions {
		result.Header = append(result.Header, schema[p])
	}

	for _, row := range t.All() {
		projected := make(table.Row, len(positions))
		for i, p := range positions {
			projected[i] = row[p]
		}
		result.Rows = append(result.Rows, projected)
	}

	return result
}

// projectPositions returns the schema positions a projection keeps, in
// schema order
func projectPositions(schema table.Schema, p Projection) []int {
	positions := make([]int, 0, len(schema))
	if p.All {
		for i := range schema {
			positions = append(positions, i)
		}
		return positions
	}

	requested := make(map[string]struct{}, len(p.Columns))
	for _, name := range p.Columns {
		requested[name] = struct{}{}
	}
	for i, name := range schema {
		if _, ok := requested[name]; ok {
			positions = append(positions, i)
		}
	}
	return positions
}
