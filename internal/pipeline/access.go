package pipeline

import (
	"context"
	"fmt"

	"lake-demo/internal/domain"
	"lake-demo/internal/frame"
	"lake-demo/internal/objectstore"
)

// Access aggregates the process-zone datasets into analytics-ready tables
// and uploads them to the access zone.
func (s *Steps) Access(ctx context.Context) error {
	view, err := objectstore.DownloadFrame(ctx, s.store, domain.ZoneProcess, KeyProcView, frame.FormatParquet)
	if err != nil {
		return fmt.Errorf("download transaction-product view: %w", err)
	}
	transactions, err := objectstore.DownloadFrame(ctx, s.store, domain.ZoneProcess, KeyProcTransactions, frame.FormatParquet)
	if err != nil {
		return fmt.Errorf("download transactions: %w", err)
	}
	customers, err := objectstore.DownloadFrame(ctx, s.store, domain.ZoneProcess, KeyProcCustomers, frame.FormatParquet)
	if err != nil {
		return fmt.Errorf("download customers: %w", err)
	}
	products, err := objectstore.DownloadFrame(ctx, s.store, domain.ZoneProcess, KeyProcProducts, frame.FormatParquet)
	if err != nil {
		return fmt.Errorf("download products: %w", err)
	}

	salesByCategory, err := SalesByCategory(view)
	if err != nil {
		return fmt.Errorf("aggregate sales by category: %w", err)
	}
	customerSummary, err := CustomerSummary(transactions, customers)
	if err != nil {
		return fmt.Errorf("build customer summary: %w", err)
	}
	productPerformance, err := ProductPerformance(view, products)
	if err != nil {
		return fmt.Errorf("aggregate product performance: %w", err)
	}

	uploads := []struct {
		frame       *frame.Frame
		key         string
		source      string
		description string
		meta        domain.ObjectMetadata
	}{
		{
			frame:       salesByCategory,
			key:         KeySalesByCategory,
			source:      KeyProcView,
			description: "Aggregated sales by product category and month",
			meta:        domain.ObjectMetadata{Description: "Monthly sales aggregates per product category"},
		},
		{
			frame:       customerSummary,
			key:         KeyCustomerSummary,
			source:      KeyProcTransactions,
			description: "Customer-centric sales summary with RFM scores",
			meta:        domain.ObjectMetadata{Description: "Customer sales summary with RFM segmentation"},
		},
		{
			frame:       productPerformance,
			key:         KeyProductPerformance,
			source:      KeyProcView,
			description: "Aggregated product sales performance",
			meta:        domain.ObjectMetadata{Description: "Per-product sales performance"},
		},
	}
	for _, u := range uploads {
		if err := s.publish(ctx, u.frame, domain.ZoneAccess, u.key, frame.FormatParquet, u.meta); err != nil {
			return fmt.Errorf("upload %s: %w", u.key, err)
		}
		s.lineage(ctx, domain.ZoneProcess, u.source, domain.ZoneAccess, u.key, u.description)
	}

	// CSV copy of the category aggregates for tools that prefer CSV.
	csvMeta := domain.ObjectMetadata{Description: "Monthly sales aggregates per product category"}
	if err := s.publish(ctx, salesByCategory, domain.ZoneAccess, KeySalesByCategoryCSV, frame.FormatCSV, csvMeta); err != nil {
		return fmt.Errorf("upload %s: %w", KeySalesByCategoryCSV, err)
	}

	fmt.Fprintln(s.out, "Analytics-ready datasets published to access-zone.")
	return nil
}

// SalesByCategory aggregates the transaction-product view by category and
// month.
func SalesByCategory(view *frame.Frame) (*frame.Frame, error) {
	out, err := view.GroupBy(
		[]string{"category", "month_year"},
		frame.Agg("amount", frame.AggSum, "total_sales"),
		frame.Agg("amount", frame.AggMean, "average_sale"),
		frame.Agg("amount", frame.AggCount, "transaction_count"),
		frame.Agg("transaction_id", frame.AggCountDistinct, "unique_transaction_count"),
	)
	if err != nil {
		return nil, err
	}
	if err := out.Rename("category", "product_category"); err != nil {
		return nil, err
	}
	if err := out.SortBy("month_year", "product_category"); err != nil {
		return nil, err
	}
	return out, nil
}

// CustomerSummary aggregates per-customer spending, joins customer
// attributes, and derives RFM (recency, frequency, monetary) scores.
func CustomerSummary(transactions, customers *frame.Frame) (*frame.Frame, error) {
	summary, err := transactions.GroupBy(
		[]string{"customer_id"},
		frame.Agg("transaction_id", frame.AggCount, "transaction_count"),
		frame.Agg("amount", frame.AggSum, "total_spend"),
		frame.Agg("amount", frame.AggMean, "average_spend"),
		frame.Agg("amount", frame.AggMin, "min_spend"),
		frame.Agg("amount", frame.AggMax, "max_spend"),
		frame.Agg("transaction_date", frame.AggMin, "first_purchase_date"),
		frame.Agg("transaction_date", frame.AggMax, "last_purchase_date"),
	)
	if err != nil {
		return nil, err
	}
	if err := summary.AddColumn("days_since_last_purchase", func(r frame.Row) any {
		return int64(recencyReference.Sub(r.Time("last_purchase_date")).Hours() / 24)
	}); err != nil {
		return nil, err
	}
	summary, err = summary.LeftJoin(customers, "customer_id",
		"first_name", "last_name", "email", "country", "region", "customer_segment")
	if err != nil {
		return nil, err
	}

	if err := summary.AddColumn("recency_score", func(r frame.Row) any {
		switch days := r.Int("days_since_last_purchase"); {
		case days <= 10:
			return "3-Recent"
		case days <= 20:
			return "2-Moderate"
		default:
			return "1-Inactive"
		}
	}); err != nil {
		return nil, err
	}
	if err := summary.AddColumn("frequency_score", func(r frame.Row) any {
		switch count := r.Int("transaction_count"); {
		case count >= 15:
			return "3-Frequent"
		case count >= 10:
			return "2-Regular"
		default:
			return "1-Rare"
		}
	}); err != nil {
		return nil, err
	}
	if err := summary.AddColumn("monetary_score", func(r frame.Row) any {
		switch spend := r.Float("total_spend"); {
		case spend >= 800:
			return "3-High"
		case spend >= 500:
			return "2-Medium"
		default:
			return "1-Low"
		}
	}); err != nil {
		return nil, err
	}
	if err := summary.AddColumn("rfm_segment", func(r frame.Row) any {
		return r.String("recency_score") + "_" + r.String("frequency_score") + "_" + r.String("monetary_score")
	}); err != nil {
		return nil, err
	}
	return summary, nil
}

// ProductPerformance aggregates sales per product, joins the product
// attributes, and derives the category-relative metrics: sales rank within
// the category and percentage of category revenue.
func ProductPerformance(view, products *frame.Frame) (*frame.Frame, error) {
	out, err := view.GroupBy(
		[]string{"product_id"},
		frame.Agg("transaction_id", frame.AggCount, "sales_count"),
		frame.Agg("amount", frame.AggSum, "total_revenue"),
		frame.Agg("amount", frame.AggMean, "average_price"),
	)
	if err != nil {
		return nil, err
	}
	out, err = out.LeftJoin(products, "product_id",
		"product_name", "category", "price_tier", "availability")
	if err != nil {
		return nil, err
	}

	countsByCategory := make(map[string][]int64)
	revenueByCategory := make(map[string]float64)
	for i := 0; i < out.NumRows(); i++ {
		r := out.Row(i)
		cat := r.String("category")
		countsByCategory[cat] = append(countsByCategory[cat], r.Int("sales_count"))
		revenueByCategory[cat] += r.Float("total_revenue")
	}

	// Average rank for ties, descending by sales count.
	if err := out.AddColumn("sales_rank_in_category", func(r frame.Row) any {
		count := r.Int("sales_count")
		greater, equal := 0, 0
		for _, other := range countsByCategory[r.String("category")] {
			switch {
			case other > count:
				greater++
			case other == count:
				equal++
			}
		}
		return float64(greater) + (float64(equal)+1)/2
	}); err != nil {
		return nil, err
	}
	if err := out.AddColumn("percent_of_category_sales", func(r frame.Row) any {
		total := revenueByCategory[r.String("category")]
		if total == 0 {
			return 0.0
		}
		return r.Float("total_revenue") / total * 100
	}); err != nil {
		return nil, err
	}
	if err := out.SortBy("product_id"); err != nil {
		return nil, err
	}
	return out, nil
}
