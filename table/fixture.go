package table

import (
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
)

// Fixture returns a fresh copy of the built-in demo dataset: a single "users"
// table with five rows. Each call builds a new Database.
func Fixture() *Database {
	db := NewEmptyDatabase()
	_ = db.CreateTable("users", Schema{"id", "name", "age", "is_person"})

	rows := []Row{
		{Integer(1), Text("Alice"), Integer(30), Boolean(true)},
		{Integer(2), Text("Bob"), Integer(25), Boolean(true)},
		{Integer(3), Text("Charlie"), Integer(35), Boolean(true)},
		{Integer(4), Text("Diana"), Null(), Boolean(true)},
		{Integer(5), Text("Rex"), Integer(7), Boolean(false)},
	}
	for i, row := range rows {
		_ = db.Insert("users", int64(i+1), row)
	}
	return db
}

// seedDocument is the JSON layout accepted by ReadSeed
type seedDocument struct {
	Tables []seedTable `json:"tables"`
}

type seedTable struct {
	Name    string             `json:"name"`
	Columns []string           `json:"columns"`
	Rows    map[string][]Value `json:"rows"`
}

// ReadSeed decodes a JSON seed document into a validated Database.
//
// Example document:
//
//	{"tables": [{"name": "users", "columns": ["id", "name"],
//	             "rows": {"1": [1, "alice"], "2": [2, null]}}]}
//
// Row keys are decimal integers; cells are strings, non-negative integers,
// booleans or null.
func ReadSeed(r io.Reader) (*Database, error) {
	var doc seedDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode seed: %w", err)
	}

	db := NewEmptyDatabase()
	for _, st := range doc.Tables {
		if err := db.CreateTable(st.Name, st.Columns); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
		for k, cells := range st.Rows {
			key, err := strconv.ParseInt(k, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("seed: table %q: invalid row key %q", st.Name, k)
			}
			if err := db.Insert(st.Name, key, cells); err != nil {
				return nil, fmt.Errorf("seed: %w", err)
			}
		}
	}
	return db, nil
}
