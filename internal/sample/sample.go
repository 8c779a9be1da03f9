// Package sample generates the deterministic synthetic retail datasets the
// ingest step uploads to the raw zone.
package sample

import (
	"fmt"
	"math"
	"time"

	"lake-demo/internal/frame"
)

var paymentMethods = []string{"credit_card", "debit_card", "cash", "digital_wallet"}

var countries = []string{"USA", "Canada", "UK", "Germany", "France"}

var categories = []string{"Electronics", "Clothing", "Home", "Books", "Food"}

func round2(x float64) float64 { return math.Round(x*100) / 100 }

// Transactions returns 1000 synthetic transactions starting 2024-01-01,
// one per day, cycling over 100 customers, 50 products, and 4 payment
// methods.
func Transactions() *frame.Frame {
	f := frame.New("transaction_id", "customer_id", "transaction_date", "product_id", "amount", "payment_method")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 1000; i++ {
		_ = f.Append(
			int64(i+1),
			fmt.Sprintf("CUST%04d", i%100+1),
			start.AddDate(0, 0, i),
			fmt.Sprintf("PROD%03d", i%50+1),
			round2(10+90*float64(i+1)/1000),
			paymentMethods[i%4],
		)
	}
	return f
}

// Customers returns 100 synthetic customers with signup dates starting
// 2023-01-01.
func Customers() *frame.Frame {
	f := frame.New("customer_id", "first_name", "last_name", "email", "signup_date", "country")
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 100; i++ {
		_ = f.Append(
			fmt.Sprintf("CUST%04d", i+1),
			fmt.Sprintf("Customer%d", i+1),
			fmt.Sprintf("Lastname%d", i+1),
			fmt.Sprintf("customer%d@example.com", i+1),
			start.AddDate(0, 0, i),
			countries[i%5],
		)
	}
	return f
}

// Products returns the 50-product catalog. Every fourth product is out of
// stock, except the last two which are always stocked.
func Products() *frame.Frame {
	f := frame.New("product_id", "product_name", "category", "price", "in_stock")
	for i := 0; i < 50; i++ {
		inStock := i%4 != 3 || i >= 48
		_ = f.Append(
			fmt.Sprintf("PROD%03d", i+1),
			fmt.Sprintf("Product %d", i+1),
			categories[i%5],
			round2(5+95*float64(i+1)/50),
			inStock,
		)
	}
	return f
}
