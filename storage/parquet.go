// Package storage saves and loads a table.Database as a pair of Apache
// Parquet files.
//
// It uses the segmentio/parquet-go library. The table data and the schemas
// live in separate files and every call touches exactly one of them.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/segmentio/parquet-go"

	"github.com/vegasq/rsql/table"
)

// Default file names, relative to the working directory
const (
	DefaultDataFile    = "data.db"
	DefaultColumnsFile = "columns.db"
)

// rowRecord is one table row on disk. A table without rows is written as a
// single record with a nil Key so that it survives a round trip.
type rowRecord struct {
	Table string       `parquet:"table,dict"`
	Key   *int64       `parquet:"key,optional"`
	Cells []cellRecord `parquet:"cells"`
}

// cellRecord is one table.Value; only the payload matching Kind is meaningful
type cellRecord struct {
	Kind    int32  `parquet:"kind"`
	Text    string `parquet:"text"`
	Integer uint64 `parquet:"integer"`
	Boolean bool   `parquet:"boolean"`
}

// schemaRecord is one table schema on disk
type schemaRecord struct {
	Table   string   `parquet:"table"`
	Columns []string `parquet:"columns,list"`
}

// SaveTables writes the row data of every table to path, replacing any
// existing file.
func SaveTables(path string, tables table.Tables) error {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	records := make([]rowRecord, 0)
	for _, name := range names {
		t := tables[name]
		if t == nil || t.Len() == 0 {
			records = append(records, rowRecord{Table: name})
			continue
		}
		for key, row := range t.All() {
			records = append(records, rowRecord{
				Table: name,
				Key:   &key,
				Cells: encodeRow(row),
			})
		}
	}

	return writeFile(path, records)
}

// SaveSchemas writes every table schema to path, replacing any existing file.
func SaveSchemas(path string, schemas table.Schemas) error {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	records := make([]schemaRecord, 0, len(names))
	for _, name := range names {
		records = append(records, schemaRecord{Table: name, Columns: schemas[name]})
	}

	return writeFile(path, records)
}

// LoadTables reads a file written by SaveTables.
//
// A missing or unreadable file yields an ErrIO *Error; a file that is not
// parquet or does not hold table rows yields ErrDecode.
func LoadTables(path string) (table.Tables, error) {
	records, err := readFile[rowRecord](path)
	if err != nil {
		return nil, err
	}

	tables := make(table.Tables)
	for i, rec := range records {
		t, ok := tables[rec.Table]
		if !ok {
			t = table.NewTable()
			tables[rec.Table] = t
		}
		if rec.Key == nil {
			continue
		}
		if _, dup := t.Get(*rec.Key); dup {
			return nil, decodeError(path, fmt.Errorf("record %d: duplicate key %d in table %q", i, *rec.Key, rec.Table))
		}
		row, err := decodeRow(rec.Cells)
		if err != nil {
			return nil, decodeError(path, fmt.Errorf("record %d: %w", i, err))
		}
		t.Put(*rec.Key, row)
	}
	return tables, nil
}

// LoadSchemas reads a file written by SaveSchemas.
func LoadSchemas(path string) (table.Schemas, error) {
	records, err := readFile[schemaRecord](path)
	if err != nil {
		return nil, err
	}

	schemas := make(table.Schemas, len(records))
	for i, rec := range records {
		if _, dup := schemas[rec.Table]; dup {
			return nil, decodeError(path, fmt.Errorf("record %d: duplicate schema for table %q", i, rec.Table))
		}
		columns := rec.Columns
		if columns == nil {
			columns = table.Schema{}
		}
		schemas[rec.Table] = columns
	}
	return schemas, nil
}

func encodeRow(row table.Row) []cellRecord {
	cells := make([]cellRecord, len(row))
	for i, v := range row {
		c := cellRecord{Kind: int32(v.Kind())}
		switch v.Kind() {
		case table.KindText:
			c.Text, _ = v.AsText()
		case table.KindInteger:
			c.Integer, _ = v.AsInteger()
		case table.KindBoolean:
			c.Boolean, _ = v.AsBoolean()
		}
		cells[i] = c
	}
	return cells
}

func decodeRow(cells []cellRecord) (table.Row, error) {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		switch table.Kind(c.Kind) {
		case table.KindNull:
			row[i] = table.Null()
		case table.KindText:
			row[i] = table.Text(c.Text)
		case table.KindInteger:
			row[i] = table.Integer(c.Integer)
		case table.KindBoolean:
			row[i] = table.Boolean(c.Boolean)
		default:
			return nil, fmt.Errorf("cell %d: unknown value kind %d", i, c.Kind)
		}
	}
	return row, nil
}

// writeFile truncates path and writes records as a single parquet file
func writeFile[T any](path string, records []T) error {
	f, err := os.Create(path)
	if err != nil {
		return ioError("save", path, err)
	}

	writer := parquet.NewGenericWriter[T](f)
	if _, err := writer.Write(records); err != nil {
		_ = f.Close()
		return ioError("save", path, fmt.Errorf("failed to write records: %w", err))
	}
	if err := writer.Close(); err != nil {
		_ = f.Close()
		return ioError("save", path, fmt.Errorf("failed to close writer: %w", err))
	}
	if err := f.Close(); err != nil {
		return ioError("save", path, err)
	}
	return nil
}

// readFile loads every record of a parquet file whose schema must contain
// the columns of T.
func readFile[T any](path string) (records []T, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ioError("load", path, err)
	}
	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return nil, ioError("load", path, fmt.Errorf("failed to stat file: %w", err))
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		return nil, decodeError(path, fmt.Errorf("failed to open parquet file: %w", err))
	}

	expected := parquet.SchemaOf(new(T))
	for _, column := range expected.Columns() {
		if _, ok := pqFile.Schema().Lookup(column...); !ok {
			return nil, decodeError(path, fmt.Errorf("missing column %v", column))
		}
	}

	// parquet-go panics on some malformed pages instead of returning errors
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = decodeError(path, fmt.Errorf("%v", r))
		}
	}()

	reader := parquet.NewGenericReader[T](pqFile)
	defer func() { _ = reader.Close() }()

	records = make([]T, reader.NumRows())
	total := 0
	for total < len(records) {
		n, readErr := reader.Read(records[total:])
		total += n
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, decodeError(path, fmt.Errorf("failed to read row: %w", readErr))
		}
	}
	return records[:total], nil
}
