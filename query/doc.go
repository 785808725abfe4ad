// Package query translates SQL text into queries and executes them against
// an in-memory table.Database.
//
// The grammar itself comes from github.com/xwb1989/sqlparser. This package
// narrows its statement tree down to the supported subset:
//
//	SELECT * FROM users
//	SELECT id, name FROM users
//	SELECT id FROM users WHERE age BETWEEN 18 AND 65
//
// Joins, subqueries, computed or aliased columns, qualified wildcards,
// DISTINCT, GROUP BY, HAVING, ORDER BY, LIMIT and every non-SELECT statement
// fail with an *UnsupportedError. A BETWEEN predicate is accepted and kept on
// Query.Range, but rows are not filtered by it.
//
// # Basic Usage
//
// Run a batch of statements in one call:
//
//	results, err := query.Run("SELECT * FROM users; SELECT id FROM users", db)
//	if err != nil {
//	    // *query.ParseError: nothing in the batch ran
//	    log.Fatal(err)
//	}
//	for _, r := range results {
//	    if r.Err != nil {
//	        fmt.Println("error:", r.Err)
//	        continue
//	    }
//	    fmt.Println(r.Result.Header, len(r.Result.Rows))
//	}
//
// Or drive the stages separately:
//
//	stmts, err := query.Parse(sql)
//	q, err := query.Translate(stmts[0])
//	res := query.Execute(q, db)
//
// # Column Order
//
// For SELECT with a column list, the result keeps the requested columns that
// exist in the table schema, in schema order. SELECT name, id returns the id
// column first when the schema declares id before name. Unknown names are
// dropped without an error.
//
// # Missing Tables
//
// A query against a table that does not exist returns an empty header and
// zero rows rather than an error.
package query
