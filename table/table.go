package table

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sort"
)

// Row is an ordered list of cells aligned with its table's Schema
type Row []Value

// Equal reports whether two rows hold equal values in the same positions
func (r Row) Equal(o Row) bool {
	return slices.EqualFunc(r, o, Value.Equal)
}

// Clone returns a copy of r
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	return slices.Clone(r)
}

// Schema is the ordered list of column names of one table
type Schema []string

// Index returns the position of name in s, or -1
func (s Schema) Index(name string) int {
	return slices.Index(s, name)
}

// Table maps row keys to rows and always iterates in ascending key order.
type Table struct {
	keys []int64
	rows map[int64]Row
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{rows: make(map[int64]Row)}
}

// Put stores row under key, replacing any existing row with that key
func (t *Table) Put(key int64, row Row) {
	if t.rows == nil {
		t.rows = make(map[int64]Row)
	}
	if _, ok := t.rows[key]; !ok {
		i, _ := slices.BinarySearch(t.keys, key)
		t.keys = slices.Insert(t.keys, i, key)
	}
	t.rows[key] = row
}

// Get returns the row stored under key
func (t *Table) Get(key int64) (Row, bool) {
	row, ok := t.rows[key]
	return row, ok
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.keys)
}

// Keys returns the row keys in ascending order
func (t *Table) Keys() []int64 {
	return slices.Clone(t.keys)
}

// All iterates rows in ascending key order
func (t *Table) All() iter.Seq2[int64, Row] {
	return func(yield func(int64, Row) bool) {
		for _, k := range t.keys {
			if !yield(k, t.rows[k]) {
				return
			}
		}
	}
}

// Equal reports whether both tables hold the same keys and equal rows
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if !slices.Equal(t.keys, o.keys) {
		return false
	}
	for _, k := range t.keys {
		if !t.rows[k].Equal(o.rows[k]) {
			return false
		}
	}
	return true
}

// Tables maps table names to their rows
type Tables map[string]*Table

// Schemas maps table names to their column names
type Schemas map[string]Schema

// Database is the pair of parallel maps every other package operates on.
//
// Every name present in Tables is present in Schemas and vice versa, and
// every row of a table has exactly as many cells as its schema has columns.
type Database struct {
	Tables  Tables
	Schemas Schemas
}

// ErrInvalidDatabase is wrapped by every Validate failure
var ErrInvalidDatabase = errors.New("invalid database")

// NewEmptyDatabase returns a database with no tables
func NewEmptyDatabase() *Database {
	return &Database{Tables: make(Tables), Schemas: make(Schemas)}
}

// NewDatabase pairs a table map with a schema map and validates the result
func NewDatabase(tables Tables, schemas Schemas) (*Database, error) {
	if tables == nil {
		tables = make(Tables)
	}
	if schemas == nil {
		schemas = make(Schemas)
	}
	db := &Database{Tables: tables, Schemas: schemas}
	if err := db.Validate(); err != nil {
		return nil, err
	}
	return db, nil
}

// Validate checks that both maps name the same tables and that row widths
// match their schemas.
func (db *Database) Validate() error {
	for name := range db.Tables {
		if _, ok := db.Schemas[name]; !ok {
			return fmt.Errorf("%w: table %q has no schema", ErrInvalidDatabase, name)
		}
	}
	for name, schema := range db.Schemas {
		t, ok := db.Tables[name]
		if !ok || t == nil {
			return fmt.Errorf("%w: schema %q has no table", ErrInvalidDatabase, name)
		}
		for key, row := range t.All() {
			if len(row) != len(schema) {
				return fmt.Errorf("%w: table %q row %d has %d cells, schema has %d columns",
					ErrInvalidDatabase, name, key, len(row), len(schema))
			}
		}
	}
	return nil
}

// Lookup returns a table and its schema
func (db *Database) Lookup(name string) (*Table, Schema, bool) {
	t, ok := db.Tables[name]
	if !ok {
		return nil, nil, false
	}
	return t, db.Schemas[name], true
}

// Names returns the table names in sorted order
func (db *Database) Names() []string {
	names := make([]string, 0, len(db.Schemas))
	for name := range db.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateTable registers an empty table. Used for seeding; SQL input never
// mutates a database.
func (db *Database) CreateTable(name string, schema Schema) error {
	if name == "" {
		return fmt.Errorf("table name must not be empty")
	}
	if _, ok := db.Schemas[name]; ok {
		return fmt.Errorf("table %q already exists", name)
	}
	db.Tables[name] = NewTable()
	db.Schemas[name] = slices.Clone(schema)
	return nil
}

// Insert stores a row in an existing table
func (db *Database) Insert(name string, key int64, row Row) error {
	t, schema, ok := db.Lookup(name)
	if !ok {
		return fmt.Errorf("table %q does not exist", name)
	}
	if len(row) != len(schema) {
		return fmt.Errorf("table %q expects %d cells, got %d", name, len(schema), len(row))
	}
	t.Put(key, row)
	return nil
}

// Equal reports whether two databases hold the same schemas and rows
func (db *Database) Equal(o *Database) bool {
	if len(db.Tables) != len(o.Tables) || len(db.Schemas) != len(o.Schemas) {
		return false
	}
	for name, schema := range db.Schemas {
		other, ok := o.Schemas[name]
		if !ok || !slices.Equal(schema, other) {
			return false
		}
	}
	for name, t := range db.Tables {
		if !t.Equal(o.Tables[name]) {
			return false
		}
	}
	return true
}
