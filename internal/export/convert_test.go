package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shengyushen/spark-snowflake/internal/domain"
)

func TestRowConverterTemporal(t *testing.T) {
	schema := domain.Schema{
		{Name: "d", Type: domain.TypeDate, Nullable: true},
		{Name: "ts", Type: domain.TypeTimestamp, Nullable: true},
		{Name: "n", Type: domain.TypeInteger, Nullable: true},
	}
	convert := RowConverter(schema)

	loc := time.FixedZone("", 2*60*60)
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	stamp := time.Date(2024, 3, 15, 9, 30, 45, 123_000_000, loc)

	got := convert([]any{day, stamp, int64(7)})
	assert.Equal(t, "2024-03-15", got[0])
	assert.Equal(t, "2024-03-15 09:30:45.123 +0200", got[1])
	assert.Equal(t, int64(7), got[2])
}

func TestRowConverterTimestampRoundTrip(t *testing.T) {
	// Millisecond precision and zone offset must survive a render/parse
	// round trip through the canonical layout.
	loc := time.FixedZone("", -7*60*60)
	orig := time.Date(2023, 11, 2, 23, 59, 59, 999_000_000, loc)

	schema := domain.Schema{{Name: "ts", Type: domain.TypeTimestamp, Nullable: true}}
	convert := RowConverter(schema)

	text, ok := convert([]any{orig})[0].(string)
	require.True(t, ok)

	parsed, err := time.Parse(TimestampLayout, text)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(orig))
	_, origOffset := orig.Zone()
	_, parsedOffset := parsed.Zone()
	assert.Equal(t, origOffset, parsedOffset)
}

func TestRowConverterDateRoundTrip(t *testing.T) {
	orig := time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC)

	schema := domain.Schema{{Name: "d", Type: domain.TypeDate, Nullable: true}}
	text, ok := RowConverter(schema)([]any{orig})[0].(string)
	require.True(t, ok)

	parsed, err := time.Parse(DateLayout, text)
	require.NoError(t, err)
	assert.Equal(t, orig.Year(), parsed.Year())
	assert.Equal(t, orig.Month(), parsed.Month())
	assert.Equal(t, orig.Day(), parsed.Day())
}

func TestRowConverterNilHandling(t *testing.T) {
	schema := domain.Schema{
		{Name: "d", Type: domain.TypeDate, Nullable: true},
		{Name: "ts", Type: domain.TypeTimestamp, Nullable: true},
	}
	convert := RowConverter(schema)

	got := convert([]any{nil, (*time.Time)(nil)})
	assert.Nil(t, got[0])
	assert.Nil(t, got[1])
}

func TestRowConverterPointerTime(t *testing.T) {
	schema := domain.Schema{{Name: "d", Type: domain.TypeDate, Nullable: true}}
	convert := RowConverter(schema)

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := convert([]any{&day})
	assert.Equal(t, "2024-01-01", got[0])
}

func TestRowConverterPassthrough(t *testing.T) {
	schema := domain.Schema{
		{Name: "s", Type: domain.TypeString, Nullable: true},
		{Name: "b", Type: domain.TypeBoolean, Nullable: true},
		{Name: "f", Type: domain.TypeFloat, Nullable: true},
	}
	convert := RowConverter(schema)

	got := convert([]any{"hello", true, 3.14})
	assert.Equal(t, []any{"hello", true, 3.14}, got)
}
