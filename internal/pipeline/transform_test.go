package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lake-demo/internal/frame"
	"lake-demo/internal/sample"
)

func TestAmountCategory(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "low"},
		{19.99, "low"},
		{20, "medium"},
		{49.99, "medium"},
		{50, "high"},
		{500, "high"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, amountCategory(tt.amount))
	}
}

func TestStandardizeTransactions(t *testing.T) {
	f := sample.Transactions()
	require.NoError(t, StandardizeTransactions(f))
	require.Equal(t, 1000, f.NumRows())

	for _, col := range []string{"year", "month", "day", "day_of_week", "amount_category"} {
		assert.True(t, f.HasColumn(col), col)
	}

	// 2024-01-01 was a Monday.
	assert.Equal(t, int64(2024), f.Value(0, "year"))
	assert.Equal(t, int64(1), f.Value(0, "month"))
	assert.Equal(t, int64(1), f.Value(0, "day"))
	assert.Equal(t, int64(0), f.Value(0, "day_of_week"))
	assert.Equal(t, "Credit Card", f.Value(0, "payment_method"))

	valid := map[string]struct{}{"low": {}, "medium": {}, "high": {}}
	categories := make(map[string]int)
	for i := 0; i < f.NumRows(); i++ {
		c := f.Row(i).String("amount_category")
		_, ok := valid[c]
		require.True(t, ok, "unexpected category %q", c)
		categories[c]++

		amount := f.Row(i).Float("amount")
		switch {
		case amount < 20:
			assert.Equal(t, "low", c)
		case amount < 50:
			assert.Equal(t, "medium", c)
		default:
			assert.Equal(t, "high", c)
		}
	}
	assert.Len(t, categories, 3)
}

func TestEnrichCustomers(t *testing.T) {
	f := sample.Customers()
	require.NoError(t, EnrichCustomers(f))

	for _, col := range []string{"tenure_days", "customer_segment", "region"} {
		assert.True(t, f.HasColumn(col), col)
	}
	// CUST0001 signed up 2023-01-01: 365 days before the reference date.
	assert.Equal(t, int64(365), f.Value(0, "tenure_days"))
	assert.Equal(t, "Loyal", f.Value(0, "customer_segment"))
	assert.Equal(t, "United States", f.Value(0, "country"))
	assert.Equal(t, "North America", f.Value(0, "region"))
	// CUST0100 signed up 2023-04-10.
	assert.Equal(t, "Regular", f.Value(99, "customer_segment"))
}

func TestCustomerSegmentThresholds(t *testing.T) {
	f := frame.New("customer_id", "signup_date", "country")
	require.NoError(t, f.Append("C1", tenureReference.AddDate(0, 0, -30), "Canada"))
	require.NoError(t, f.Append("C2", tenureReference.AddDate(0, 0, -100), "UK"))
	require.NoError(t, f.Append("C3", tenureReference.AddDate(0, 0, -400), "Japan"))
	require.NoError(t, EnrichCustomers(f))

	assert.Equal(t, "New", f.Value(0, "customer_segment"))
	assert.Equal(t, "Regular", f.Value(1, "customer_segment"))
	assert.Equal(t, "Loyal", f.Value(2, "customer_segment"))
	assert.Equal(t, "United Kingdom", f.Value(1, "country"))
	assert.Equal(t, "Europe", f.Value(1, "region"))
	assert.Nil(t, f.Value(2, "region"))
}

func TestStandardizeProducts(t *testing.T) {
	f := sample.Products()
	require.NoError(t, StandardizeProducts(f))

	assert.Equal(t, "Budget", f.Value(0, "price_tier"))
	assert.Equal(t, "Premium", f.Value(49, "price_tier"))
	assert.Equal(t, "In Stock", f.Value(0, "availability"))
	assert.Equal(t, "Out of Stock", f.Value(3, "availability"))
}

func TestStandardizeProductsTitleCasesCategory(t *testing.T) {
	f := frame.New("product_id", "product_name", "category", "price", "in_stock")
	require.NoError(t, f.Append("P1", "Widget", "electronics", 25.0, true))
	require.NoError(t, f.Append("P2", "Gadget", "HOME & GARDEN", 10.0, false))
	require.NoError(t, f.Append("P3", "Novel", "bOOks", 60.0, true))

	require.NoError(t, StandardizeProducts(f))
	assert.Equal(t, "Electronics", f.Value(0, "category"))
	assert.Equal(t, "Home & Garden", f.Value(1, "category"))
	assert.Equal(t, "Books", f.Value(2, "category"))
}

func TestTransactionProductView(t *testing.T) {
	transactions := sample.Transactions()
	require.NoError(t, StandardizeTransactions(transactions))
	products := sample.Products()
	require.NoError(t, StandardizeProducts(products))

	view, err := TransactionProductView(transactions, products)
	require.NoError(t, err)
	require.Equal(t, 1000, view.NumRows())
	for _, col := range []string{"product_name", "category", "price_tier", "month_year"} {
		assert.True(t, view.HasColumn(col), col)
	}
	assert.Equal(t, "2024-01", view.Value(0, "month_year"))
	assert.Equal(t, "Product 1", view.Value(0, "product_name"))
}
