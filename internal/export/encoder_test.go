package export

import (
	"bytes"
	"compress/gzip"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, opts EncoderOptions, records ...[]any) string {
	t.Helper()
	var buf bytes.Buffer
	w, err := NewCSVEncoder(opts).NewWriter(&buf)
	require.NoError(t, err)
	for _, r := range records {
		require.NoError(t, w.Write(r))
	}
	require.NoError(t, w.Close())
	return buf.String()
}

func TestCSVEncoderBasicRecord(t *testing.T) {
	got := encode(t, DefaultEncoderOptions(), []any{int64(1), "alice", 3.5, true})
	assert.Equal(t, "\"1\"|\"alice\"|\"3.5\"|\"true\"\n", got)
}

func TestCSVEncoderNullField(t *testing.T) {
	// NULL serializes as an empty unenclosed field, distinct from the empty
	// string which stays enclosed.
	got := encode(t, DefaultEncoderOptions(), []any{int64(1), nil, ""})
	assert.Equal(t, "\"1\"||\"\"\n", got)
}

func TestCSVEncoderEscaping(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  string
	}{
		{name: "embedded_quote", field: `say "hi"`, want: `"say \"hi\""` + "\n"},
		{name: "embedded_escape", field: `a\b`, want: `"a\\b"` + "\n"},
		{name: "embedded_delimiter", field: "a|b", want: `"a|b"` + "\n"},
		{name: "embedded_newline", field: "a\nb", want: "\"a\nb\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encode(t, DefaultEncoderOptions(), []any{tt.field})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCSVEncoderMultipleRecords(t *testing.T) {
	got := encode(t, DefaultEncoderOptions(), []any{int64(1)}, []any{int64(2)})
	assert.Equal(t, "\"1\"\n\"2\"\n", got)
}

func TestCSVEncoderSuffix(t *testing.T) {
	assert.Equal(t, ".csv", NewCSVEncoder(DefaultEncoderOptions()).Suffix())

	opts := DefaultEncoderOptions()
	opts.Gzip = true
	assert.Equal(t, ".csv.gz", NewCSVEncoder(opts).Suffix())
}

func TestCSVEncoderGzip(t *testing.T) {
	opts := DefaultEncoderOptions()
	opts.Gzip = true

	var buf bytes.Buffer
	w, err := NewCSVEncoder(opts).NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, w.Write([]any{"alice", int64(30)}))
	require.NoError(t, w.Close())

	gz, err := gzip.NewReader(&buf)
	require.NoError(t, err)
	raw, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, "\"alice\"|\"30\"\n", string(raw))
}

func TestRenderField(t *testing.T) {
	assert.Equal(t, "text", renderField("text"))
	assert.Equal(t, "true", renderField(true))
	assert.Equal(t, "42", renderField(42))
	assert.Equal(t, "42", renderField(int32(42)))
	assert.Equal(t, "42", renderField(int64(42)))
	assert.Equal(t, "1.5", renderField(float32(1.5)))
	assert.Equal(t, "1.5", renderField(1.5))

	// Large floats use exponent notation, which the warehouse accepts for
	// DOUBLE columns.
	assert.True(t, strings.Contains(renderField(1e21), "e+21"))
}
