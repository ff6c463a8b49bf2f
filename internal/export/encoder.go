package export

import (
	"compress/gzip"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shengyushen/spark-snowflake/internal/ddl"
)

// RecordWriter serializes converted rows onto one output object.
type RecordWriter interface {
	Write(record []any) error
	Close() error
}

// RecordEncoder is the pluggable bulk serializer. It may emit zero or more
// output files per partition (zero when the partition is empty).
type RecordEncoder interface {
	NewWriter(w io.Writer) (RecordWriter, error)
	// Suffix is appended to output object names, e.g. ".csv" or ".csv.gz".
	Suffix() string
}

// EncoderOptions configure the delimited text serialization.
type EncoderOptions struct {
	Delimiter rune
	Quote     rune
	Escape    rune
	Gzip      bool
}

// DefaultEncoderOptions match the fixed format the COPY statement declares:
// pipe delimiter, double-quote enclosure, backslash escape.
func DefaultEncoderOptions() EncoderOptions {
	return EncoderOptions{
		Delimiter: rune(ddl.CopyFieldDelimiter[0]),
		Quote:     rune(ddl.CopyFieldEnclosure[0]),
		Escape:    rune(ddl.CopyFieldEscape[0]),
	}
}

// CSVEncoder writes delimited text records. NULL values serialize as empty
// unenclosed fields; everything else is enclosed in the quote character with
// embedded quote and escape characters escaped.
//
// encoding/csv is not used because it supports neither a configurable quote
// character nor backslash escaping.
type CSVEncoder struct {
	opts EncoderOptions
}

// NewCSVEncoder creates a CSVEncoder with the given options.
func NewCSVEncoder(opts EncoderOptions) *CSVEncoder {
	return &CSVEncoder{opts: opts}
}

// Suffix returns the output object name suffix.
func (e *CSVEncoder) Suffix() string {
	if e.opts.Gzip {
		return ".csv.gz"
	}
	return ".csv"
}

// NewWriter returns a RecordWriter serializing onto w.
func (e *CSVEncoder) NewWriter(w io.Writer) (RecordWriter, error) {
	cw := &csvWriter{opts: e.opts, w: w}
	if e.opts.Gzip {
		gz := gzip.NewWriter(w)
		cw.w = gz
		cw.gz = gz
	}
	return cw, nil
}

type csvWriter struct {
	opts EncoderOptions
	w    io.Writer
	gz   *gzip.Writer
	buf  strings.Builder
}

func (c *csvWriter) Write(record []any) error {
	c.buf.Reset()
	for i, v := range record {
		if i > 0 {
			c.buf.WriteRune(c.opts.Delimiter)
		}
		if v == nil {
			continue // NULL serializes as an empty unenclosed field
		}
		c.writeField(renderField(v))
	}
	c.buf.WriteByte('\n')
	_, err := io.WriteString(c.w, c.buf.String())
	return err
}

func (c *csvWriter) writeField(s string) {
	c.buf.WriteRune(c.opts.Quote)
	for _, r := range s {
		if r == c.opts.Quote || r == c.opts.Escape {
			c.buf.WriteRune(c.opts.Escape)
		}
		c.buf.WriteRune(r)
	}
	c.buf.WriteRune(c.opts.Quote)
}

func (c *csvWriter) Close() error {
	if c.gz != nil {
		return c.gz.Close()
	}
	return nil
}

// renderField converts a Go value to its serialized text.
func renderField(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
