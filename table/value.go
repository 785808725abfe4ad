// Package table holds the in-memory data model: typed cell values, rows,
// per-table schemas and the database that ties them together.
//
// A Database is two parallel maps keyed by table name, one holding the rows
// of each table and one holding its column names:
//
//	db := table.NewEmptyDatabase()
//	_ = db.CreateTable("users", table.Schema{"id", "name"})
//	_ = db.Insert("users", 1, table.Row{table.Integer(1), table.Text("alice")})
//
// Columns carry no declared type; a column may hold values of different kinds
// across rows.
package table

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// Kind identifies which variant a Value holds
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindInteger
	KindBoolean
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a single cell. The zero Value is Null.
type Value struct {
	kind    Kind
	text    string
	integer uint64
	boolean bool
}

// Null returns the null value
func Null() Value { return Value{} }

// Text returns a text value
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Integer returns a non-negative integer value
func Integer(n uint64) Value { return Value{kind: KindInteger, integer: n} }

// Boolean returns a boolean value
func Boolean(b bool) Value { return Value{kind: KindBoolean, boolean: b} }

// Kind reports the variant held by v
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsText returns the text payload and whether v is Text
func (v Value) AsText() (string, bool) { return v.text, v.kind == KindText }

// AsInteger returns the integer payload and whether v is Integer
func (v Value) AsInteger() (uint64, bool) { return v.integer, v.kind == KindInteger }

// AsBoolean returns the boolean payload and whether v is Boolean
func (v Value) AsBoolean() (bool, bool) { return v.boolean, v.kind == KindBoolean }

// String renders the value for display
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindInteger:
		return strconv.FormatUint(v.integer, 10)
	case KindBoolean:
		return strconv.FormatBool(v.boolean)
	default:
		return "NULL"
	}
}

// Interface returns the payload as a plain Go value (string, uint64, bool or nil)
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindText:
		return v.text
	case KindInteger:
		return v.integer
	case KindBoolean:
		return v.boolean
	default:
		return nil
	}
}

// Equal reports whether two values hold the same variant and payload
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == o.text
	case KindInteger:
		return v.integer == o.integer
	case KindBoolean:
		return v.boolean == o.boolean
	default:
		return true
	}
}

// MarshalJSON encodes the value as a JSON string, number, bool or null
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes a JSON string, non-negative integer, bool or null
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return fmt.Errorf("empty cell value")
	case bytes.Equal(data, []byte("null")):
		*v = Null()
	case bytes.Equal(data, []byte("true")):
		*v = Boolean(true)
	case bytes.Equal(data, []byte("false")):
		*v = Boolean(false)
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	default:
		n, err := strconv.ParseUint(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("cell value %s is not a non-negative integer", data)
		}
		*v = Integer(n)
	}
	return nil
}
