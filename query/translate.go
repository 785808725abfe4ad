package query

import (
	"fmt"
	"strings"

	"github.com/xwb1989/sqlparser"
)

// Translate turns one parsed statement into a Query.
//
// Only `SELECT <* | col, ...> FROM <table>` is accepted, optionally with a
// single BETWEEN predicate in WHERE. Anything else fails with an
// *UnsupportedError naming the construct.
func Translate(stmt sqlparser.Statement) (*Query, error) {
	switch s := stmt.(type) {
	case *sqlparser.Select:
		return translateSelect(s)
	case *sqlparser.Union:
		return nil, unsupported("UNION")
	case *sqlparser.ParenSelect:
		return nil, unsupported("parenthesized SELECT")
	case *sqlparser.Insert:
		return nil, unsupported("%s statement", strings.ToUpper(s.Action))
	case *sqlparser.Update:
		return nil, unsupported("UPDATE statement")
	case *sqlparser.Delete:
		return nil, unsupported("DELETE statement")
	case *sqlparser.DDL:
		return nil, unsupported("%s statement", strings.ToUpper(s.Action))
	case nil:
		return nil, unsupported("empty statement")
	default:
		return nil, unsupported("%s statement", statementKind(stmt))
	}
}

// TranslateAll translates every statement independently, in order. A failure
// is recorded on its own StatementResult and the rest still get translated.
func TranslateAll(stmts []sqlparser.Statement) []StatementResult {
	results := make([]StatementResult, 0, len(stmts))
	for _, stmt := range stmts {
		q, err := Translate(stmt)
		results = append(results, StatementResult{
			SQL:   render(stmt),
			Query: q,
			Err:   err,
		})
	}
	return results
}

func translateSelect(s *sqlparser.Select) (*Query, error) {
	switch {
	case s.Distinct != "":
		return nil, unsupported("DISTINCT")
	case len(s.GroupBy) > 0:
		return nil, unsupported("GROUP BY")
	case s.Having != nil:
		return nil, unsupported("HAVING")
	case len(s.OrderBy) > 0:
		return nil, unsupported("ORDER BY")
	case s.Limit != nil:
		return nil, unsupported("LIMIT")
	case s.Lock != "":
		return nil, unsupported("locking clause %q", strings.TrimSpace(s.Lock))
	}

	name, err := tableName(s.From)
	if err != nil {
		return nil, err
	}

	projection, err := selectProjection(s.SelectExprs)
	if err != nil {
		return nil, err
	}

	q := &Query{Table: name, Projection: projection}
	if s.Where != nil {
		q.Range, err = rangeCheck(s.Where.Expr)
		if err != nil {
			return nil, err
		}
	}
	return q, nil
}

// tableName extracts the single FROM target
func tableName(from sqlparser.TableExprs) (string, error) {
	if len(from) == 0 {
		return "", unsupported("missing FROM target")
	}
	if len(from) > 1 {
		return "", unsupported("multiple FROM targets (%s)", sqlparser.String(from))
	}

	switch te := from[0].(type) {
	case *sqlparser.AliasedTableExpr:
		switch expr := te.Expr.(type) {
		case sqlparser.TableName:
			if !te.As.IsEmpty() {
				return "", unsupported("table alias %s", te.As.String())
			}
			if te.Hints != nil {
				return "", unsupported("index hints")
			}
			// The grammar fills an absent FROM with the pseudo table dual
			if expr.Qualifier.IsEmpty() && strings.EqualFold(expr.Name.String(), "dual") {
				return "", unsupported("missing FROM target")
			}
			name := expr.Name.String()
			if err := ValidateTableName(name); err != nil {
				return "", unsupported("%v", err)
			}
			return name, nil
		case *sqlparser.Subquery:
			return "", unsupported("subquery in FROM")
		default:
			return "", unsupported("FROM target %s", sqlparser.String(te))
		}
	case *sqlparser.JoinTableExpr:
		return "", unsupported("JOIN")
	case *sqlparser.ParenTableExpr:
		return "", unsupported("parenthesized FROM target")
	default:
		return "", unsupported("FROM target %s", sqlparser.String(te))
	}
}

// selectProjection applies the select-list policy: a lone * is All, plain columns
// are kept in written order, and when both appear the explicit columns win.
func selectProjection(exprs sqlparser.SelectExprs) (Projection, error) {
	var columns []string
	star := false

	for _, se := range exprs {
		switch e := se.(type) {
		case *sqlparser.StarExpr:
			if !e.TableName.IsEmpty() {
				return Projection{}, unsupported("qualified wildcard %s", sqlparser.String(e))
			}
			star = true
		case *sqlparser.AliasedExpr:
			if !e.As.IsEmpty() {
				return Projection{}, unsupported("aliased projection %s", sqlparser.String(e))
			}
			col, ok := e.Expr.(*sqlparser.ColName)
			if !ok {
				return Projection{}, unsupported("computed projection %s", sqlparser.String(e.Expr))
			}
			if !col.Qualifier.IsEmpty() {
				return Projection{}, unsupported("qualified column %s", sqlparser.String(col))
			}
			name := col.Name.String()
			if err := ValidateColumnName(name); err != nil {
				return Projection{}, unsupported("%v", err)
			}
			columns = append(columns, name)
		default:
			return Projection{}, unsupported("projection %s", sqlparser.String(se))
		}
	}

	if len(columns) > 0 {
		return Columns(columns...), nil
	}
	if star {
		return AllColumns(), nil
	}
	return Projection{}, unsupported("empty select list")
}

// rangeCheck accepts `col [NOT] BETWEEN literal AND literal` and nothing else.
// Parentheses around the predicate or its bounds are ignored, and a signed
// number counts as a literal.
func rangeCheck(expr sqlparser.Expr) (*RangeCheck, error) {
	rc, ok := unparen(expr).(*sqlparser.RangeCond)
	if !ok {
		return nil, unsupported("WHERE predicate %s", sqlparser.String(expr))
	}
	col, ok := rc.Left.(*sqlparser.ColName)
	if !ok || !col.Qualifier.IsEmpty() {
		return nil, unsupported("BETWEEN on %s", sqlparser.String(rc.Left))
	}
	from, to := unparen(rc.From), unparen(rc.To)
	for _, bound := range []sqlparser.Expr{from, to} {
		if !isLiteral(bound) {
			return nil, unsupported("non-literal BETWEEN bound %s", sqlparser.String(bound))
		}
	}
	return &RangeCheck{
		Column: col.Name.String(),
		Negate: rc.Operator == sqlparser.NotBetweenStr,
		From:   sqlparser.String(from),
		To:     sqlparser.String(to),
	}, nil
}

func unparen(expr sqlparser.Expr) sqlparser.Expr {
	for {
		p, ok := expr.(*sqlparser.ParenExpr)
		if !ok {
			return expr
		}
		expr = p.Expr
	}
}

// isLiteral reports whether expr is a value or a signed value such as -1
func isLiteral(expr sqlparser.Expr) bool {
	switch e := expr.(type) {
	case *sqlparser.SQLVal:
		return true
	case *sqlparser.UnaryExpr:
		if e.Operator != sqlparser.UMinusStr && e.Operator != sqlparser.UPlusStr {
			return false
		}
		_, ok := unparen(e.Expr).(*sqlparser.SQLVal)
		return ok
	default:
		return false
	}
}

func render(stmt sqlparser.Statement) string {
	if stmt == nil {
		return ""
	}
	return sqlparser.String(stmt)
}

// statementKind names a statement type for error messages, e.g. "SHOW"
func statementKind(stmt sqlparser.Statement) string {
	name := fmt.Sprintf("%T", stmt)
	name = strings.TrimPrefix(name, "*")
	name = strings.TrimPrefix(name, "sqlparser.")
	return strings.ToUpper(name)
}
