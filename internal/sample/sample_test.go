package sample

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactions(t *testing.T) {
	f := Transactions()
	require.Equal(t, 1000, f.NumRows())
	assert.Equal(t, []string{"transaction_id", "customer_id", "transaction_date", "product_id", "amount", "payment_method"}, f.Columns())

	assert.Equal(t, int64(1), f.Value(0, "transaction_id"))
	assert.Equal(t, "CUST0001", f.Value(0, "customer_id"))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), f.Value(0, "transaction_date"))
	assert.Equal(t, int64(1000), f.Value(999, "transaction_id"))

	// Deterministic: two calls yield identical data.
	g := Transactions()
	for _, col := range f.Columns() {
		assert.Equal(t, f.Value(499, col), g.Value(499, col))
	}

	methods := make(map[string]int)
	for i := 0; i < f.NumRows(); i++ {
		methods[f.Row(i).String("payment_method")]++
		amount := f.Row(i).Float("amount")
		assert.GreaterOrEqual(t, amount, 10.0)
		assert.LessOrEqual(t, amount, 100.0)
	}
	require.Len(t, methods, 4)
	for method, n := range methods {
		assert.Equal(t, 250, n, method)
	}
}

func TestCustomers(t *testing.T) {
	f := Customers()
	require.Equal(t, 100, f.NumRows())
	assert.Equal(t, "CUST0100", f.Value(99, "customer_id"))
	assert.Equal(t, "customer1@example.com", f.Value(0, "email"))
}

func TestProducts(t *testing.T) {
	f := Products()
	require.Equal(t, 50, f.NumRows())
	assert.Equal(t, "PROD050", f.Value(49, "product_id"))

	outOfStock := 0
	for i := 0; i < f.NumRows(); i++ {
		if !f.Row(i).Bool("in_stock") {
			outOfStock++
		}
	}
	assert.Equal(t, 12, outOfStock)
}
