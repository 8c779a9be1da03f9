// Package pipeline implements the zone steps of the data-movement demo:
// ingest into the raw zone, transform into the process zone, aggregate into
// the access zone, and document everything in the govern zone. Each step is
// a short sequential program over the object store and query engine
// wrappers; steps are invoked independently and re-running one overwrites
// its prior output.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"lake-demo/internal/domain"
	"lake-demo/internal/engine"
	"lake-demo/internal/frame"
	"lake-demo/internal/governance"
	"lake-demo/internal/objectstore"
)

// Object keys used across the zones.
const (
	KeyRawTransactions = "sales/transactions.csv"
	KeyRawCustomers    = "crm/customers.csv"
	KeyRawProducts     = "inventory/products.csv"

	KeyProcTransactions = "sales/transactions.parquet"
	KeyProcCustomers    = "crm/customers.parquet"
	KeyProcProducts     = "inventory/products.parquet"
	KeyProcView         = "integrated/transaction_product_view.parquet"
	KeyProcDimProducts  = "dimensions/products.parquet"

	KeySalesByCategory    = "analytics/sales_by_category.parquet"
	KeySalesByCategoryCSV = "analytics/sales_by_category.csv"
	KeyCustomerSummary    = "analytics/customer_summary.parquet"
	KeyProductPerformance = "analytics/product_performance.parquet"
)

// SQLEngine is the slice of the query engine wrapper the steps use.
type SQLEngine interface {
	Execute(ctx context.Context, query string) (*engine.Result, error)
	RegisterExternalTable(ctx context.Context, table string, columns []engine.ColumnDef, location, format string) error
	CreateTableAs(ctx context.Context, table, location, format, query string) error
	Qualified(table string) string
}

// Steps bundles the zone step implementations over their collaborators.
type Steps struct {
	store  objectstore.Store
	eng    SQLEngine
	meta   *governance.MetadataStore
	logger *slog.Logger
	out    io.Writer
}

// NewSteps wires the zone steps. The engine may be nil, in which case table
// registration and queries are skipped with a warning.
func NewSteps(store objectstore.Store, eng SQLEngine, meta *governance.MetadataStore, logger *slog.Logger, out io.Writer) *Steps {
	return &Steps{store: store, eng: eng, meta: meta, logger: logger, out: out}
}

// publish serializes a frame, uploads it to bucket/key, and stores its
// governance metadata. Metadata failures are logged, not fatal: the dataset
// write already happened and last write wins on re-runs.
func (s *Steps) publish(ctx context.Context, f *frame.Frame, bucket, key, format string, meta domain.ObjectMetadata) error {
	data, err := frame.Encode(f, format)
	if err != nil {
		return err
	}
	if err := s.store.Upload(ctx, bucket, key, data, frame.ContentType(format)); err != nil {
		return err
	}
	sum := sha256.Sum256(data)
	meta.SourceBucket = bucket
	meta.ObjectName = key
	meta.Format = format
	meta.Rows = f.NumRows()
	meta.Columns = f.Columns()
	meta.ContentHash = hex.EncodeToString(sum[:])
	meta.SizeBytes = len(data)
	if err := s.meta.StoreObjectMetadata(ctx, meta); err != nil {
		s.logger.Warn("store object metadata failed", "bucket", bucket, "key", key, "error", err)
	}
	return nil
}

// lineage records a transformation edge; failures are logged, not fatal.
func (s *Steps) lineage(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey, description string) {
	err := s.meta.RecordTransformation(ctx,
		domain.DatasetRef{Bucket: srcBucket, Object: srcKey},
		domain.DatasetRef{Bucket: dstBucket, Object: dstKey},
		description,
	)
	if err != nil {
		s.logger.Warn("record lineage failed", "target", dstBucket+"/"+dstKey, "error", err)
	}
}

// printFrame renders a frame as an aligned text table.
func printFrame(w io.Writer, f *frame.Frame) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(f.Columns(), "\t"))
	for i := 0; i < f.NumRows(); i++ {
		cells := make([]string, f.NumCols())
		for j, col := range f.Columns() {
			cells[j] = f.Row(i).String(col)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}
