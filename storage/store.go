package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/vegasq/rsql/table"
)

// Open loads the table file and the schema file and pairs them into a
// validated Database.
//
// Example:
//
//	db, err := storage.Open(storage.DefaultDataFile, storage.DefaultColumnsFile)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Open(dataPath, columnsPath string) (*table.Database, error) {
	tables, err := LoadTables(dataPath)
	if err != nil {
		return nil, err
	}
	schemas, err := LoadSchemas(columnsPath)
	if err != nil {
		return nil, err
	}

	db, err := table.NewDatabase(tables, schemas)
	if err != nil {
		return nil, decodeError(dataPath, fmt.Errorf("does not match %s: %w", columnsPath, err))
	}
	return db, nil
}

// Save writes the schema file and the table file. Both writes are attempted
// even if the first fails; the returned error joins every failure.
//
// The two files are written one after the other with no shared transaction.
func Save(db *table.Database, dataPath, columnsPath string) error {
	return errors.Join(
		SaveSchemas(columnsPath, db.Schemas),
		SaveTables(dataPath, db.Tables),
	)
}

// Exists reports whether a store file is present at path
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
