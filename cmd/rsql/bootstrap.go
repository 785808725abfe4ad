package main

import (
	"fmt"
	"os"

	"github.com/labstack/gommon/log"

	"github.com/vegasq/rsql/storage"
	"github.com/vegasq/rsql/table"
)

// openDatabase loads the store files. When neither file exists the database
// is seeded, from seedPath if given or from the built-in fixture otherwise.
// Exactly one missing file is an error: the other file's contents cannot be
// trusted on their own.
func openDatabase(logger *log.Logger, dataPath, columnsPath, seedPath string) (*table.Database, error) {
	dataExists := storage.Exists(dataPath)
	columnsExists := storage.Exists(columnsPath)

	switch {
	case dataExists && columnsExists:
		db, err := storage.Open(dataPath, columnsPath)
		if err != nil {
			return nil, err
		}
		logger.Infof("loaded %d tables from %s and %s", len(db.Tables), dataPath, columnsPath)
		return db, nil
	case dataExists != columnsExists:
		missing := dataPath
		if dataExists {
			missing = columnsPath
		}
		return nil, fmt.Errorf("store file %s is missing while its pair exists", missing)
	}

	if seedPath == "" {
		logger.Warnf("no store files found, seeding built-in fixture")
		return table.Fixture(), nil
	}

	f, err := os.Open(seedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed: %w", err)
	}
	defer func() { _ = f.Close() }()

	db, err := table.ReadSeed(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", seedPath, err)
	}
	logger.Warnf("no store files found, seeded %d tables from %s", len(db.Tables), seedPath)
	return db, nil
}
