// Package domain defines core types, interfaces, and errors for the bulk writer.
package domain

import "strings"

// SemanticType is a column's logical data type, independent of any storage
// encoding or warehouse-specific type name.
type SemanticType string

const (
	TypeInteger   SemanticType = "integer"
	TypeFloat     SemanticType = "float"
	TypeString    SemanticType = "string"
	TypeBoolean   SemanticType = "boolean"
	TypeDate      SemanticType = "date"
	TypeTimestamp SemanticType = "timestamp"
)

// ParseSemanticType maps a type name to a SemanticType. Common aliases
// (int, bigint, double, varchar, text, bool, datetime) are accepted.
func ParseSemanticType(s string) (SemanticType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "integer", "int", "bigint", "long", "smallint":
		return TypeInteger, nil
	case "float", "double", "real":
		return TypeFloat, nil
	case "string", "varchar", "text":
		return TypeString, nil
	case "boolean", "bool":
		return TypeBoolean, nil
	case "date":
		return TypeDate, nil
	case "timestamp", "datetime":
		return TypeTimestamp, nil
	default:
		return "", ErrSchema("unsupported semantic type %q", s)
	}
}

// Column describes one column of a dataset schema.
type Column struct {
	Name     string
	Type     SemanticType
	Nullable bool
}

// Schema is the ordered column list of a dataset. Immutable input to one
// save operation.
type Schema []Column

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Manifest references the set of files written during one export. It is
// present only when at least one partition produced rows, consumed once by
// the load phase, and never outlives the save operation.
type Manifest struct {
	Location string // bulk store location the files were written under
	Prefix   string // fixed file name prefix shared by all output files
}

// Path returns the manifest location joined with the file prefix, the form
// referenced by the generated load statement.
func (m *Manifest) Path() string {
	return strings.TrimRight(m.Location, "/") + "/" + m.Prefix
}

// Credentials are short-lived bulk store credentials, scoped to one save
// operation and embedded transiently into one generated load statement.
type Credentials struct {
	KeyID  string
	Secret string
	Token  string // optional session token
}
