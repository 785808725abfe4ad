package query

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "valid", input: "users"},
		{name: "empty", input: "", wantErr: ErrEmptyTableName},
		{name: "at limit", input: strings.Repeat("t", MaxTableNameLength)},
		{name: "too long", input: strings.Repeat("t", MaxTableNameLength+1), wantErr: ErrTableNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTableName(tt.input)
			if tt.wantErr == nil && err != nil {
				t.Errorf("ValidateTableName() unexpected error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTableName() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateColumnName(t *testing.T) {
	if err := ValidateColumnName(strings.Repeat("c", MaxColumnNameLength)); err != nil {
		t.Errorf("ValidateColumnName() unexpected error = %v", err)
	}
	if err := ValidateColumnName(strings.Repeat("c", MaxColumnNameLength+1)); !errors.Is(err, ErrColumnNameTooLong) {
		t.Errorf("ValidateColumnName() error = %v, want %v", err, ErrColumnNameTooLong)
	}
}

func TestTranslate_LongColumnName(t *testing.T) {
	_, err := translateOne(t, "select "+strings.Repeat("c", MaxColumnNameLength+1)+" from users")
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected unsupported error, got %v", err)
	}
}
