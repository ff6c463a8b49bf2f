// Package schema normalizes dataset schemas into a warehouse-loadable form.
package schema

import (
	"strings"

	"github.com/shengyushen/spark-snowflake/internal/ddl"
	"github.com/shengyushen/spark-snowflake/internal/domain"
)

// warehouseTypes maps semantic types to warehouse column types. Dates and
// timestamps load as VARCHAR because the exporter has already rendered their
// values to canonical text.
var warehouseTypes = map[domain.SemanticType]string{
	domain.TypeInteger:   "INTEGER",
	domain.TypeFloat:     "DOUBLE",
	domain.TypeString:    "VARCHAR",
	domain.TypeBoolean:   "BOOLEAN",
	domain.TypeDate:      "VARCHAR",
	domain.TypeTimestamp: "VARCHAR",
}

// Normalize lowercases column names and maps semantic types to warehouse
// types, returning the normalized schema and the ordered DDL column list.
// It fails with a SchemaError when two names collide under case-insensitive
// comparison, naming all original column names.
func Normalize(s domain.Schema) (domain.Schema, []ddl.ColumnDef, error) {
	if len(s) == 0 {
		return nil, nil, domain.ErrSchema("schema has no columns")
	}

	normalized := make(domain.Schema, len(s))
	columns := make([]ddl.ColumnDef, len(s))
	seen := make(map[string]struct{}, len(s))

	for i, c := range s {
		name := strings.ToLower(c.Name)
		seen[name] = struct{}{}

		wt, ok := warehouseTypes[c.Type]
		if !ok {
			return nil, nil, domain.ErrSchema("column %q has unsupported semantic type %q", c.Name, c.Type)
		}

		normalized[i] = domain.Column{Name: name, Type: c.Type, Nullable: c.Nullable}
		columns[i] = ddl.ColumnDef{Name: name, Type: wt, NotNull: !c.Nullable}
	}

	if len(seen) < len(s) {
		return nil, nil, domain.ErrSchemaColumns(
			"duplicate column names after lowercasing", s.Names())
	}

	return normalized, columns, nil
}
