package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shengyushen/spark-snowflake/internal/domain"
)

func writeJob(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validJob = `
table: analytics.sales
mode: overwrite
use_staging_table: true
post_actions:
  - GRANT SELECT ON %s TO ROLE analyst
columns:
  - name: id
    type: integer
  - name: name
    type: string
    nullable: true
  - name: updated_at
    type: timestamp
    nullable: true
data: /data/sales/*.csv
`

func TestLoadJob(t *testing.T) {
	job, err := LoadJob(writeJob(t, validJob))
	require.NoError(t, err)

	assert.Equal(t, "analytics.sales", job.Table)
	assert.Equal(t, "overwrite", job.Mode)
	assert.True(t, job.UseStagingTable)
	assert.Equal(t, []string{"GRANT SELECT ON %s TO ROLE analyst"}, job.PostActions)
	assert.Equal(t, "/data/sales/*.csv", job.Data)
	require.Len(t, job.Columns, 3)
}

func TestLoadJobValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing_table",
			content: "columns:\n  - name: id\n    type: integer\ndata: /d/*.csv\n",
			wantErr: "table is required",
		},
		{
			name:    "missing_columns",
			content: "table: sales\ndata: /d/*.csv\n",
			wantErr: "at least one column",
		},
		{
			name:    "missing_data",
			content: "table: sales\ncolumns:\n  - name: id\n    type: integer\n",
			wantErr: "data glob is required",
		},
		{
			name:    "malformed_yaml",
			content: "table: [unclosed\n",
			wantErr: "parse job file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadJob(writeJob(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadJobMissingFile(t *testing.T) {
	_, err := LoadJob(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read job file")
}

func TestJobSchema(t *testing.T) {
	job, err := LoadJob(writeJob(t, validJob))
	require.NoError(t, err)

	s, err := job.Schema()
	require.NoError(t, err)
	assert.Equal(t, domain.Schema{
		{Name: "id", Type: domain.TypeInteger, Nullable: false},
		{Name: "name", Type: domain.TypeString, Nullable: true},
		{Name: "updated_at", Type: domain.TypeTimestamp, Nullable: true},
	}, s)
}

func TestJobSchemaBadType(t *testing.T) {
	job := &Job{Columns: []JobColumn{{Name: "blob", Type: "binary"}}}
	_, err := job.Schema()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "blob"`)
}

func TestJobSaveMode(t *testing.T) {
	job := &Job{Mode: "overwrite"}
	mode, err := job.SaveMode()
	require.NoError(t, err)
	assert.Equal(t, domain.SaveModeOverwrite, mode)

	// Empty mode defaults to errorifexists.
	job = &Job{}
	mode, err = job.SaveMode()
	require.NoError(t, err)
	assert.Equal(t, domain.SaveModeErrorIfExists, mode)

	job = &Job{Mode: "upsert"}
	_, err = job.SaveMode()
	require.Error(t, err)
}
