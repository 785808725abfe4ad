package table

import (
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_IteratesInKeyOrder(t *testing.T) {
	tbl := NewTable()
	for _, k := range []int64{5, 1, 3, 2, 4} {
		tbl.Put(k, Row{Integer(uint64(k))})
	}

	var keys []int64
	for k, row := range tbl.All() {
		keys = append(keys, k)
		n, ok := row[0].AsInteger()
		require.True(t, ok)
		assert.Equal(t, uint64(k), n)
	}

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, keys)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, tbl.Keys())
	assert.Equal(t, 5, tbl.Len())
}

func TestTable_PutReplaces(t *testing.T) {
	tbl := NewTable()
	tbl.Put(1, Row{Text("a")})
	tbl.Put(1, Row{Text("b")})

	assert.Equal(t, 1, tbl.Len())
	row, ok := tbl.Get(1)
	require.True(t, ok)
	assert.True(t, row.Equal(Row{Text("b")}))
}

func TestTable_AllStopsEarly(t *testing.T) {
	tbl := NewTable()
	tbl.Put(1, Row{})
	tbl.Put(2, Row{})
	tbl.Put(3, Row{})

	seen := 0
	for range tbl.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestTable_Equal(t *testing.T) {
	a := NewTable()
	a.Put(1, Row{Text("x"), Null()})
	b := NewTable()
	b.Put(1, Row{Text("x"), Null()})

	assert.True(t, a.Equal(b))

	b.Put(2, Row{Text("y"), Null()})
	assert.False(t, a.Equal(b))

	c := NewTable()
	c.Put(1, Row{Text("x"), Boolean(false)})
	assert.False(t, a.Equal(c))
}

func TestValue_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		kind  Kind
		str   string
	}{
		{name: "zero is null", value: Value{}, kind: KindNull, str: "NULL"},
		{name: "null", value: Null(), kind: KindNull, str: "NULL"},
		{name: "text", value: Text("alice"), kind: KindText, str: "alice"},
		{name: "empty text", value: Text(""), kind: KindText, str: ""},
		{name: "integer", value: Integer(42), kind: KindInteger, str: "42"},
		{name: "boolean", value: Boolean(false), kind: KindBoolean, str: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.value.Kind())
			assert.Equal(t, tt.str, tt.value.String())
		})
	}
}

func TestValue_EqualDistinguishesKinds(t *testing.T) {
	assert.True(t, Integer(0).Equal(Integer(0)))
	assert.False(t, Integer(0).Equal(Boolean(false)))
	assert.False(t, Text("").Equal(Null()))
	assert.False(t, Text("1").Equal(Integer(1)))
	assert.True(t, Null().Equal(Value{}))
}

func TestValue_JSON(t *testing.T) {
	row := Row{Text("bob"), Integer(7), Boolean(true), Null()}

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `["bob",7,true,null]`, string(data))

	var decoded []Value
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, Row(decoded).Equal(row))
}

func TestValue_UnmarshalRejectsNegativeAndFractional(t *testing.T) {
	for _, in := range []string{"-1", "1.5", "1e3", "{}"} {
		var v Value
		assert.Error(t, v.UnmarshalJSON([]byte(in)), in)
	}
}

func TestDatabase_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tables  Tables
		schemas Schemas
		wantErr bool
	}{
		{
			name:    "empty",
			tables:  Tables{},
			schemas: Schemas{},
		},
		{
			name:    "matching",
			tables:  Tables{"t": tableOf(Row{Integer(1), Text("a")})},
			schemas: Schemas{"t": {"id", "name"}},
		},
		{
			name:    "table without schema",
			tables:  Tables{"t": NewTable()},
			schemas: Schemas{},
			wantErr: true,
		},
		{
			name:    "schema without table",
			tables:  Tables{},
			schemas: Schemas{"t": {"id"}},
			wantErr: true,
		},
		{
			name:    "row width mismatch",
			tables:  Tables{"t": tableOf(Row{Integer(1)})},
			schemas: Schemas{"t": {"id", "name"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDatabase(tt.tables, tt.schemas)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidDatabase), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDatabase_CreateAndInsert(t *testing.T) {
	db := NewEmptyDatabase()
	require.NoError(t, db.CreateTable("t", Schema{"a", "b"}))
	assert.Error(t, db.CreateTable("t", Schema{"a"}))
	assert.Error(t, db.CreateTable("", Schema{"a"}))

	require.NoError(t, db.Insert("t", 10, Row{Integer(1), Null()}))
	assert.Error(t, db.Insert("t", 11, Row{Integer(1)}))
	assert.Error(t, db.Insert("missing", 1, Row{}))

	tbl, schema, ok := db.Lookup("t")
	require.True(t, ok)
	assert.Equal(t, Schema{"a", "b"}, schema)
	assert.Equal(t, 1, tbl.Len())
	assert.NoError(t, db.Validate())
}

func TestFixture(t *testing.T) {
	db := Fixture()
	require.NoError(t, db.Validate())

	users, schema, ok := db.Lookup("users")
	require.True(t, ok)
	assert.Equal(t, Schema{"id", "name", "age", "is_person"}, schema)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, users.Keys())

	row, _ := users.Get(5)
	assert.True(t, row[3].Equal(Boolean(false)))

	// Each call is independent
	_ = db.CreateTable("extra", Schema{"x"})
	assert.Equal(t, []string{"users"}, Fixture().Names())
}

func TestReadSeed(t *testing.T) {
	doc := `{"tables": [
		{"name": "pets", "columns": ["id", "name", "alive"],
		 "rows": {"2": [2, "rex", true], "1": [1, "tom", null]}},
		{"name": "empty", "columns": ["x"], "rows": {}}
	]}`

	db, err := ReadSeed(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"empty", "pets"}, db.Names())

	pets, _, _ := db.Lookup("pets")
	assert.Equal(t, []int64{1, 2}, pets.Keys())
	row, _ := pets.Get(1)
	assert.True(t, row.Equal(Row{Integer(1), Text("tom"), Null()}))

	empty, _, _ := db.Lookup("empty")
	assert.Equal(t, 0, empty.Len())
}

func TestReadSeed_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `tables`},
		{name: "bad key", doc: `{"tables":[{"name":"t","columns":["a"],"rows":{"x":[1]}}]}`},
		{name: "width mismatch", doc: `{"tables":[{"name":"t","columns":["a"],"rows":{"1":[1,2]}}]}`},
		{name: "duplicate table", doc: `{"tables":[{"name":"t","columns":[]},{"name":"t","columns":[]}]}`},
		{name: "negative cell", doc: `{"tables":[{"name":"t","columns":["a"],"rows":{"1":[-3]}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSeed(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func tableOf(rows ...Row) *Table {
	t := NewTable()
	for i, r := range rows {
		t.Put(int64(i+1), r)
	}
	return t
}
