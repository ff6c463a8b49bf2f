// Package export converts partitioned datasets to bulk store files.
package export

import (
	"time"

	"github.com/shengyushen/spark-snowflake/internal/domain"
)

// Canonical temporal text layouts. The COPY statement declares the matching
// warehouse format strings, so these must stay in lockstep with the ddl
// package constants.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05.000 -0700"
)

// fieldConverter renders one column value for serialization.
type fieldConverter func(v any) any

// passthrough leaves a value unchanged.
func passthrough(v any) any { return v }

func formatDate(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Format(DateLayout)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.Format(DateLayout)
	default:
		return v
	}
}

func formatTimestamp(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Format(TimestampLayout)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.Format(TimestampLayout)
	default:
		return v
	}
}

// RowConverter builds, once per schema, the per-column conversion function
// applied to every row. Dates and timestamps are rendered to canonical text;
// all other types and nils pass through unchanged. The returned function is
// safe for concurrent use and preserves column order.
func RowConverter(s domain.Schema) func(row []any) []any {
	converters := make([]fieldConverter, len(s))
	for i, c := range s {
		switch c.Type {
		case domain.TypeDate:
			converters[i] = formatDate
		case domain.TypeTimestamp:
			converters[i] = formatTimestamp
		default:
			converters[i] = passthrough
		}
	}

	return func(row []any) []any {
		out := make([]any, len(row))
		for i, v := range row {
			if v == nil || i >= len(converters) {
				out[i] = v
				continue
			}
			out[i] = converters[i](v)
		}
		return out
	}
}
