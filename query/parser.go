package query

import (
	"fmt"
	"strings"

	"github.com/vegasq/rsql/table"
	"github.com/xwb1989/sqlparser"
)

// Parse runs the SQL grammar over the whole input and returns every
// statement in source order. Empty statements, as in "a;;b" or a trailing
// ";", are skipped.
//
// Parsing happens once, up front: if any statement is malformed the whole
// batch is rejected with a *ParseError and nothing is returned.
func Parse(sql string) ([]sqlparser.Statement, error) {
	if err := ValidateQuery(sql); err != nil {
		return nil, &ParseError{SQL: sql, Err: err}
	}

	var stmts []sqlparser.Statement
	rest := sql
	for strings.TrimSpace(rest) != "" {
		piece, tail, err := sqlparser.SplitStatement(rest)
		if err != nil {
			return nil, &ParseError{SQL: sql, Err: err}
		}
		rest = tail
		if strings.TrimSpace(piece) == "" {
			continue
		}

		stmt, err := sqlparser.Parse(piece)
		if err != nil {
			return nil, &ParseError{SQL: sql, Err: fmt.Errorf("statement %d: %w", len(stmts)+1, err)}
		}
		stmts = append(stmts, stmt)
		if len(stmts) > MaxStatements {
			return nil, &ParseError{SQL: sql, Err: fmt.Errorf("%w: max %d", ErrTooManyStatements, MaxStatements)}
		}
	}
	return stmts, nil
}

// Run parses sql, then translates and executes each statement against db.
//
// The returned error is non-nil only for a *ParseError. Translation failures
// are reported per statement in StatementResult.Err and never stop the
// statements after them.
func Run(sql string, db *table.Database) ([]StatementResult, error) {
	stmts, err := Parse(sql)
	if err != nil {
		return nil, err
	}

	results := TranslateAll(stmts)
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		results[i].Result = Execute(results[i].Query, db)
	}
	return results, nil
}
