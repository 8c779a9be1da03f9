package engine

import (
	"context"
	"fmt"
	"strings"
)

// ColumnDef is one column of an external table declaration.
type ColumnDef struct {
	Name string
	Type string // engine type: BIGINT, VARCHAR, DOUBLE, TIMESTAMP, ...
}

// Qualified returns the fully qualified table name under the engine's fixed
// catalog and schema.
func (e *Engine) Qualified(table string) string {
	return fmt.Sprintf("%s.%s.%s", e.catalog, e.schema, table)
}

// RegisterExternalTable registers a catalog table pointer: a named table
// backed by an object-store location in the declared file format. Uses
// create-if-not-exists semantics, so re-registration is a no-op and schema
// drift is unhandled.
func (e *Engine) RegisterExternalTable(ctx context.Context, table string, columns []ColumnDef, location, format string) error {
	stmt := BuildExternalTableDDL(e.Qualified(table), columns, location, format)
	_, err := e.Execute(ctx, stmt)
	return err
}

// CreateTableAs registers a table materialized from a query at an
// object-store location, with create-if-not-exists semantics.
func (e *Engine) CreateTableAs(ctx context.Context, table, location, format, query string) error {
	stmt := BuildCTAS(e.Qualified(table), location, format, query)
	_, err := e.Execute(ctx, stmt)
	return err
}

// BuildExternalTableDDL renders the CREATE TABLE statement for an external
// table pointer.
func BuildExternalTableDDL(qualified string, columns []ColumnDef, location, format string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", qualified)
	for i, col := range columns {
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "    %s %s", col.Name, col.Type)
	}
	fmt.Fprintf(&b, "\n)\nWITH (\n    external_location = '%s',\n    format = '%s'\n)", location, format)
	return b.String()
}

// BuildCTAS renders a CREATE TABLE AS statement targeting an external
// location.
func BuildCTAS(qualified, location, format, query string) string {
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s\nWITH (\n    format = '%s',\n    external_location = '%s'\n)\nAS\n%s",
		qualified, format, location, query,
	)
}
