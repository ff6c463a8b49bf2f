package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shengyushen/spark-snowflake/internal/domain"
)

// CSVFileSource is a PartitionSource over local CSV files: each file is one
// partition. Field values are parsed according to the schema's semantic
// types; empty fields parse as NULL.
type CSVFileSource struct {
	Files  []string
	Schema domain.Schema
}

// NumPartitions returns the file count.
func (s *CSVFileSource) NumPartitions() int { return len(s.Files) }

// Partition opens the file at index and returns a parsing iterator.
func (s *CSVFileSource) Partition(_ context.Context, index int) (RowIterator, error) {
	f, err := os.Open(s.Files[index])
	if err != nil {
		return nil, fmt.Errorf("open partition file: %w", err)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = len(s.Schema)
	return &csvIterator{f: f, r: r, schema: s.Schema}, nil
}

type csvIterator struct {
	f      *os.File
	r      *csv.Reader
	schema domain.Schema
}

func (it *csvIterator) Next() ([]any, error) {
	record, err := it.r.Read()
	if err != nil {
		return nil, err // io.EOF at end of file
	}
	row := make([]any, len(record))
	for i, field := range record {
		v, err := parseField(field, it.schema[i].Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", it.schema[i].Name, err)
		}
		row[i] = v
	}
	return row, nil
}

func (it *csvIterator) Close() error { return it.f.Close() }

// timestampLayouts are accepted on input; output always uses TimestampLayout.
var timestampLayouts = []string{TimestampLayout, time.RFC3339Nano, "2006-01-02 15:04:05"}

func parseField(s string, t domain.SemanticType) (any, error) {
	if s == "" {
		return nil, nil
	}
	switch t {
	case domain.TypeInteger:
		return strconv.ParseInt(s, 10, 64)
	case domain.TypeFloat:
		return strconv.ParseFloat(s, 64)
	case domain.TypeBoolean:
		return strconv.ParseBool(s)
	case domain.TypeString:
		return s, nil
	case domain.TypeDate:
		return time.Parse(DateLayout, s)
	case domain.TypeTimestamp:
		var lastErr error
		for _, layout := range timestampLayouts {
			ts, err := time.Parse(layout, s)
			if err == nil {
				return ts, nil
			}
			lastErr = err
		}
		return nil, lastErr
	default:
		return nil, fmt.Errorf("unsupported semantic type %q", t)
	}
}
