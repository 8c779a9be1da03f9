// Package engine wraps the distributed SQL engine (Trino). Connections are
// stateless per call: each statement opens a fresh connection against the
// fixed catalog and schema, materializes every row, and closes. No pooling,
// no pagination, no cancellation beyond the caller's context.
package engine

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/trinodb/trino-go-client/trino"

	"lake-demo/internal/config"
	"lake-demo/internal/domain"
	"lake-demo/internal/frame"
)

// Engine submits SQL text to the query engine.
type Engine struct {
	dsn     string
	catalog string
	schema  string
	logger  *slog.Logger
}

// New builds an engine from the configured Trino endpoint.
func New(cfg *config.Config, logger *slog.Logger) (*Engine, error) {
	c := trino.Config{
		ServerURI: cfg.TrinoServerURI(),
		Catalog:   cfg.TrinoCatalog,
		Schema:    cfg.TrinoSchema,
		Source:    "lake-demo",
	}
	dsn, err := c.FormatDSN()
	if err != nil {
		return nil, domain.ErrConnectivity(err, "build trino DSN")
	}
	return &Engine{
		dsn:     dsn,
		catalog: cfg.TrinoCatalog,
		schema:  cfg.TrinoSchema,
		logger:  logger,
	}, nil
}

// Result holds a fully materialized statement result.
type Result struct {
	Columns []string
	Rows    [][]any
}

// Frame converts the result into a frame, decoding byte slices to strings.
func (r *Result) Frame() *frame.Frame {
	f := frame.New(r.Columns...)
	for _, row := range r.Rows {
		vals := make([]any, len(row))
		for i, v := range row {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			} else {
				vals[i] = v
			}
		}
		_ = f.Append(vals...)
	}
	return f
}

// Execute runs one statement and returns its rows. Statements without a
// result descriptor (DDL) yield an empty Result rather than an error.
func (e *Engine) Execute(ctx context.Context, query string) (*Result, error) {
	db, err := sql.Open("trino", e.dsn)
	if err != nil {
		return nil, domain.ErrConnectivity(err, "open query engine connection")
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.ErrQuery(err, "execute statement: %v", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil || len(cols) == 0 {
		return &Result{}, nil
	}

	result := &Result{Columns: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, domain.ErrQuery(err, "scan row: %v", err)
		}
		result.Rows = append(result.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrQuery(err, "read result: %v", err)
	}
	e.logger.Debug("statement executed", "columns", len(result.Columns), "rows", len(result.Rows))
	return result, nil
}

// Ping checks that the engine answers trivial queries.
func (e *Engine) Ping(ctx context.Context) error {
	if _, err := e.Execute(ctx, "SELECT 1"); err != nil {
		return domain.ErrConnectivity(err, "query engine unreachable")
	}
	return nil
}
