package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shengyushen/spark-snowflake/internal/domain"
)

// JobColumn declares one dataset column in the job file.
type JobColumn struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Nullable bool   `yaml:"nullable"`
}

// Job describes one save operation: target table, save mode, dataset schema,
// and the CSV partition files to export.
type Job struct {
	Table           string      `yaml:"table"`
	Mode            string      `yaml:"mode"`
	UseStagingTable bool        `yaml:"use_staging_table"`
	PostActions     []string    `yaml:"post_actions"`
	Columns         []JobColumn `yaml:"columns"`
	Data            string      `yaml:"data"` // glob; each matched file is one partition
}

// LoadJob reads and validates a YAML job file.
func LoadJob(path string) (*Job, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		return nil, fmt.Errorf("read job file: %w", err)
	}
	var job Job
	if err := yaml.Unmarshal(raw, &job); err != nil {
		return nil, fmt.Errorf("parse job file %s: %w", path, err)
	}
	if job.Table == "" {
		return nil, fmt.Errorf("job file %s: table is required", path)
	}
	if len(job.Columns) == 0 {
		return nil, fmt.Errorf("job file %s: at least one column is required", path)
	}
	if job.Data == "" {
		return nil, fmt.Errorf("job file %s: data glob is required", path)
	}
	return &job, nil
}

// Schema converts the job's column declarations to a dataset schema.
func (j *Job) Schema() (domain.Schema, error) {
	s := make(domain.Schema, len(j.Columns))
	for i, c := range j.Columns {
		t, err := domain.ParseSemanticType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		s[i] = domain.Column{Name: c.Name, Type: t, Nullable: c.Nullable}
	}
	return s, nil
}

// SaveMode parses the job's save mode, defaulting to errorifexists.
func (j *Job) SaveMode() (domain.SaveMode, error) {
	if j.Mode == "" {
		return domain.SaveModeErrorIfExists, nil
	}
	return domain.ParseSaveMode(j.Mode)
}
