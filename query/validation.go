package query

import (
	"errors"
	"fmt"
)

// Validation constants to prevent resource exhaustion
const (
	// MaxQueryLength is the maximum allowed input length (1MB)
	MaxQueryLength = 1024 * 1024

	// MaxStatements is the maximum number of statements in one batch
	MaxStatements = 1000

	// MaxColumnNameLength is the maximum length for a column name
	MaxColumnNameLength = 256

	// MaxTableNameLength is the maximum length for a table name
	MaxTableNameLength = 256
)

var (
	// ErrQueryTooLong is returned when input exceeds MaxQueryLength
	ErrQueryTooLong = errors.New("query too long")

	// ErrTooManyStatements is returned when a batch exceeds MaxStatements
	ErrTooManyStatements = errors.New("too many statements in batch")

	// ErrColumnNameTooLong is returned when column name is too long
	ErrColumnNameTooLong = errors.New("column name too long")

	// ErrTableNameTooLong is returned when table name is too long
	ErrTableNameTooLong = errors.New("table name too long")

	// ErrEmptyTableName is returned when table name is empty
	ErrEmptyTableName = errors.New("table name cannot be empty")
)

// ValidateQuery checks the raw input before it reaches the grammar
func ValidateQuery(sql string) error {
	if len(sql) > MaxQueryLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrQueryTooLong, len(sql), MaxQueryLength)
	}
	return nil
}

// ValidateTableName validates table name length and content
func ValidateTableName(name string) error {
	if name == "" {
		return ErrEmptyTableName
	}
	if len(name) > MaxTableNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrTableNameTooLong, len(name), MaxTableNameLength)
	}
	return nil
}

// ValidateColumnName validates column name length
func ValidateColumnName(name string) error {
	if len(name) > MaxColumnNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrColumnNameTooLong, len(name), MaxColumnNameLength)
	}
	return nil
}
