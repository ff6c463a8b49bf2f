package ddl

import (
	"fmt"
	"strings"
)

// Fixed text format shared by the exporter and the COPY statement. The
// exporter writes pipe-delimited, double-quote enclosed, backslash-escaped
// records with canonical temporal text; COPY declares the same format.
const (
	CopyFieldDelimiter  = "|"
	CopyFieldEnclosure  = `"`
	CopyFieldEscape     = `\`
	CopyTimestampFormat = "YYYY-MM-DD HH24:MI:SS.FF3 TZHTZM"
	CopyDateFormat      = "YYYY-MM-DD"
)

// ColumnDef describes a column for CREATE TABLE.
type ColumnDef struct {
	Name    string
	Type    string
	NotNull bool
}

// SchemaString renders the parenthesized column list fragment used by
// CREATE TABLE: ("a" INTEGER NOT NULL, "b" VARCHAR, ...).
func SchemaString(columns []ColumnDef) (string, error) {
	if len(columns) == 0 {
		return "", fmt.Errorf("at least one column is required")
	}
	colDefs := make([]string, 0, len(columns))
	for _, c := range columns {
		if err := ValidateIdentifier(c.Name); err != nil {
			return "", fmt.Errorf("invalid column name %q: %w", c.Name, err)
		}
		if err := ValidateColumnType(c.Type); err != nil {
			return "", fmt.Errorf("invalid column type for %q: %w", c.Name, err)
		}
		def := fmt.Sprintf("%s %s", QuoteIdentifier(c.Name), c.Type)
		if c.NotNull {
			def += " NOT NULL"
		}
		colDefs = append(colDefs, def)
	}
	return "(" + strings.Join(colDefs, ", ") + ")", nil
}

// CreateTableIfNotExists returns:
// CREATE TABLE IF NOT EXISTS "<table>" ("<col>" TYPE [NOT NULL], ...).
// Idempotent when the table already exists, which Append mode relies on.
func CreateTableIfNotExists(table string, columns []ColumnDef) (string, error) {
	if err := ValidateTableName(table); err != nil {
		return "", err
	}
	schema, err := SchemaString(columns)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s %s", QuoteTableName(table), schema), nil
}

// DropTableIfExists returns: DROP TABLE IF EXISTS "<table>".
func DropTableIfExists(table string) (string, error) {
	if err := ValidateTableName(table); err != nil {
		return "", err
	}
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", QuoteTableName(table)), nil
}

// CopyOptions parameterize the bulk COPY statement. Credentials are embedded
// into the statement text and must never be logged.
type CopyOptions struct {
	Location string // manifest location + file prefix, e.g. s3://bucket/tmp/<id>/part
	KeyID    string
	Secret   string
	Token    string // optional session token
}

// CopyInto returns the bulk load statement referencing the export manifest.
// The file format is fixed and matches what the exporter wrote.
func CopyInto(table string, opts CopyOptions) (string, error) {
	if err := ValidateTableName(table); err != nil {
		return "", err
	}
	if opts.Location == "" {
		return "", fmt.Errorf("copy location is required")
	}

	creds := fmt.Sprintf("AWS_KEY_ID=%s AWS_SECRET_KEY=%s",
		QuoteLiteral(opts.KeyID), QuoteLiteral(opts.Secret))
	if opts.Token != "" {
		creds += " AWS_TOKEN=" + QuoteLiteral(opts.Token)
	}

	format := fmt.Sprintf(
		"TYPE=CSV FIELD_DELIMITER='%s' FIELD_OPTIONALLY_ENCLOSED_BY='%s' ESCAPE='%s%s' DATE_FORMAT='%s' TIMESTAMP_FORMAT='%s'",
		CopyFieldDelimiter,
		CopyFieldEnclosure,
		CopyFieldEscape, CopyFieldEscape,
		CopyDateFormat,
		CopyTimestampFormat,
	)

	return fmt.Sprintf("COPY INTO %s FROM %s CREDENTIALS = (%s) FILE_FORMAT = (%s)",
		QuoteTableName(table),
		QuoteLiteral(opts.Location),
		creds,
		format,
	), nil
}

// SwapWith returns the atomic exchange of two tables' contents:
// ALTER TABLE "<table>" SWAP WITH "<other>". One warehouse primitive, never
// a drop-then-rename, so the target is never absent.
func SwapWith(table, other string) (string, error) {
	if err := ValidateTableName(table); err != nil {
		return "", err
	}
	if err := ValidateTableName(other); err != nil {
		return "", err
	}
	return fmt.Sprintf("ALTER TABLE %s SWAP WITH %s", QuoteTableName(table), QuoteTableName(other)), nil
}

// RenameTo returns: ALTER TABLE "<table>" RENAME TO "<newName>".
func RenameTo(table, newName string) (string, error) {
	if err := ValidateTableName(table); err != nil {
		return "", err
	}
	if err := ValidateTableName(newName); err != nil {
		return "", err
	}
	return fmt.Sprintf("ALTER TABLE %s RENAME TO %s", QuoteTableName(table), QuoteTableName(newName)), nil
}
