package query

import (
	"github.com/vegasq/rsql/table"
)

// Query is the translated form of one SELECT statement
type Query struct {
	Table      string      // Target table (trailing component of the FROM identifier)
	Projection Projection  // Requested columns
	Range      *RangeCheck // BETWEEN predicate from WHERE, recorded but not evaluated
}

// Projection selects the columns a query returns.
//
// All is set for SELECT *. Otherwise Columns lists the requested names in the
// order they were written, duplicates included.
type Projection struct {
	All     bool
	Columns []string
}

// AllColumns returns the projection for SELECT *
func AllColumns() Projection {
	return Projection{All: true}
}

// Columns returns a projection of the named columns
func Columns(names ...string) Projection {
	return Projection{Columns: names}
}

// RangeCheck is a `column [NOT] BETWEEN from AND to` predicate.
//
// Bounds are kept as the SQL text of the literals. The executor does not
// filter on it.
type RangeCheck struct {
	Column string
	Negate bool // NOT BETWEEN
	From   string
	To     string
}

// Result is the projected output of a query
type Result struct {
	Header []string
	Rows   []table.Row
}

// StatementResult is the outcome of one statement of a batch: either a
// Result or the error that stopped that statement.
type StatementResult struct {
	SQL    string // Statement text as re-rendered by the parser
	Query  *Query
	Result *Result
	Err    error
}
