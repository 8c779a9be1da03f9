package pipeline

import (
	"context"
	"fmt"

	"lake-demo/internal/domain"
	"lake-demo/internal/engine"
	"lake-demo/internal/frame"
	"lake-demo/internal/objectstore"
)

// Dimension publishes the product dimension to the process zone and
// registers it as an external table.
func (s *Steps) Dimension(ctx context.Context) error {
	products, err := objectstore.DownloadFrame(ctx, s.store, domain.ZoneRaw, KeyRawProducts, frame.FormatCSV)
	if err != nil {
		return fmt.Errorf("download products: %w", err)
	}
	dim, err := products.Select("product_id", "product_name", "category", "price", "in_stock")
	if err != nil {
		return err
	}
	meta := domain.ObjectMetadata{Description: "Product dimension table"}
	if err := s.publish(ctx, dim, domain.ZoneProcess, KeyProcDimProducts, frame.FormatParquet, meta); err != nil {
		return fmt.Errorf("upload product dimension: %w", err)
	}
	s.lineage(ctx, domain.ZoneRaw, KeyRawProducts, domain.ZoneProcess, KeyProcDimProducts, "Projected product dimension")

	if s.eng == nil {
		s.logger.Warn("query engine not configured, skipping dimension table registration")
		return nil
	}
	columns := []engine.ColumnDef{
		{Name: "product_id", Type: "VARCHAR"},
		{Name: "product_name", Type: "VARCHAR"},
		{Name: "category", Type: "VARCHAR"},
		{Name: "price", Type: "DOUBLE"},
		{Name: "in_stock", Type: "BOOLEAN"},
	}
	location := fmt.Sprintf("s3a://%s/dimensions/", domain.ZoneProcess)
	if err := s.eng.RegisterExternalTable(ctx, "dim_products", columns, location, "PARQUET"); err != nil {
		return fmt.Errorf("register dim_products: %w", err)
	}
	fmt.Fprintln(s.out, "Product dimension table created.")
	return nil
}

// Mart materializes the sales data mart in the access zone via a
// create-table-as-select on the registered tables.
func (s *Steps) Mart(ctx context.Context) error {
	if s.eng == nil {
		return domain.ErrValidation("query engine not configured")
	}
	query := fmt.Sprintf(`SELECT
    t.year,
    t.month,
    p.category,
    COUNT(*) AS transaction_count,
    SUM(t.amount) AS total_sales,
    AVG(t.amount) AS avg_sale_value,
    COUNT(DISTINCT t.customer_id) AS unique_customers
FROM %s t
JOIN %s p ON t.product_id = p.product_id
GROUP BY t.year, t.month, p.category`,
		s.eng.Qualified("transactions"), s.eng.Qualified("dim_products"))
	location := fmt.Sprintf("s3a://%s/sales_mart/", domain.ZoneAccess)
	if err := s.eng.CreateTableAs(ctx, "sales_mart", location, "PARQUET", query); err != nil {
		return fmt.Errorf("create sales mart: %w", err)
	}
	fmt.Fprintln(s.out, "Sales data mart created in access-zone.")
	return nil
}
