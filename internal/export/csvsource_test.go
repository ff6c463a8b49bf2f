package export

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shengyushen/spark-snowflake/internal/domain"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCSVFileSource(t *testing.T) {
	schema := domain.Schema{
		{Name: "id", Type: domain.TypeInteger, Nullable: false},
		{Name: "name", Type: domain.TypeString, Nullable: true},
		{Name: "amount", Type: domain.TypeFloat, Nullable: true},
		{Name: "active", Type: domain.TypeBoolean, Nullable: true},
		{Name: "day", Type: domain.TypeDate, Nullable: true},
	}
	path := writeTempCSV(t, "p0.csv",
		"1,alice,3.5,true,2024-03-15\n2,,,false,\n")

	src := &CSVFileSource{Files: []string{path}, Schema: schema}
	assert.Equal(t, 1, src.NumPartitions())

	it, err := src.Partition(context.Background(), 0)
	require.NoError(t, err)
	defer it.Close() //nolint:errcheck

	row, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(1), row[0])
	assert.Equal(t, "alice", row[1])
	assert.Equal(t, 3.5, row[2])
	assert.Equal(t, true, row[3])
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), row[4])

	// Empty fields parse as NULL.
	row, err = it.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(2), row[0])
	assert.Nil(t, row[1])
	assert.Nil(t, row[2])
	assert.Equal(t, false, row[3])
	assert.Nil(t, row[4])

	_, err = it.Next()
	assert.Equal(t, io.EOF, err)
}

func TestCSVFileSourceTimestampLayouts(t *testing.T) {
	schema := domain.Schema{{Name: "ts", Type: domain.TypeTimestamp, Nullable: true}}

	tests := []struct {
		name  string
		field string
	}{
		{name: "canonical", field: "2024-03-15 09:30:45.123 +0200"},
		{name: "rfc3339", field: "2024-03-15T09:30:45Z"},
		{name: "bare", field: "2024-03-15 09:30:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempCSV(t, "ts.csv", tt.field+"\n")
			src := &CSVFileSource{Files: []string{path}, Schema: schema}

			it, err := src.Partition(context.Background(), 0)
			require.NoError(t, err)
			defer it.Close() //nolint:errcheck

			row, err := it.Next()
			require.NoError(t, err)
			_, ok := row[0].(time.Time)
			assert.True(t, ok)
		})
	}
}

func TestCSVFileSourceParseError(t *testing.T) {
	schema := domain.Schema{{Name: "id", Type: domain.TypeInteger, Nullable: false}}
	path := writeTempCSV(t, "bad.csv", "not-a-number\n")

	src := &CSVFileSource{Files: []string{path}, Schema: schema}
	it, err := src.Partition(context.Background(), 0)
	require.NoError(t, err)
	defer it.Close() //nolint:errcheck

	_, err = it.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "id"`)
}

func TestCSVFileSourceMissingFile(t *testing.T) {
	schema := domain.Schema{{Name: "id", Type: domain.TypeInteger, Nullable: false}}
	src := &CSVFileSource{Files: []string{filepath.Join(t.TempDir(), "absent.csv")}, Schema: schema}

	_, err := src.Partition(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open partition file")
}
