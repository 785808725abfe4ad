package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Batch(t *testing.T) {
	tests := []struct {
		name      string
		sql       string
		wantCount int
		wantErr   bool
	}{
		{
			name:      "single statement",
			sql:       "select * from users",
			wantCount: 1,
		},
		{
			name:      "trailing semicolon",
			sql:       "select * from users;",
			wantCount: 1,
		},
		{
			name:      "two statements",
			sql:       "select * from users; select id from users",
			wantCount: 2,
		},
		{
			name:      "unsupported statements still parse",
			sql:       "insert into users values (1); select id from users",
			wantCount: 2,
		},
		{
			name:      "empty statements skipped",
			sql:       "select id from users;;select * from users; ;",
			wantCount: 2,
		},
		{
			name:      "only separators",
			sql:       ";;",
			wantCount: 0,
		},
		{
			name:      "blank input",
			sql:       "   ",
			wantCount: 0,
		},
		{
			name:    "grammar error",
			sql:     "selec * from users",
			wantErr: true,
		},
		{
			name:    "grammar error in second statement aborts batch",
			sql:     "select * from users; select from",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, err := Parse(tt.sql)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrParse), "got %v", err)
				var pe *ParseError
				assert.True(t, errors.As(err, &pe))
				assert.Nil(t, stmts)
				return
			}
			require.NoError(t, err)
			assert.Len(t, stmts, tt.wantCount)
		})
	}
}

func TestParse_TooLong(t *testing.T) {
	sql := "select * from users where a between 1 and 2" + strings.Repeat(" ", MaxQueryLength)

	_, err := Parse(sql)
	assert.True(t, errors.Is(err, ErrParse))
	assert.True(t, errors.Is(err, ErrQueryTooLong))
}

func TestRun_RecoversPerStatement(t *testing.T) {
	db := testDatabase()

	results, err := Run("select * from users; select 1+1 from users; select name from users", db)
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.NoError(t, results[0].Err)
	assert.Equal(t, []string{"id", "name", "age", "is_person"}, results[0].Result.Header)
	assert.Len(t, results[0].Result.Rows, 5)

	assert.True(t, errors.Is(results[1].Err, ErrUnsupported))
	assert.Nil(t, results[1].Result)

	require.NoError(t, results[2].Err)
	assert.Equal(t, []string{"name"}, results[2].Result.Header)
}

func TestRun_SkipsEmptyStatements(t *testing.T) {
	results, err := Run("select id from users;;select name from users", testDatabase())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, []string{"id"}, results[0].Result.Header)
	assert.Equal(t, []string{"name"}, results[1].Result.Header)
}

func TestRun_ParseErrorRunsNothing(t *testing.T) {
	results, err := Run("select * from users; selec * from users", testDatabase())

	assert.True(t, errors.Is(err, ErrParse))
	assert.Nil(t, results)
}
