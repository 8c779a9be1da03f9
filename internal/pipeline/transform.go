package pipeline

import (
	"strings"
	"time"
	"unicode"

	"lake-demo/internal/frame"
)

// tenureReference anchors customer tenure and recency calculations so the
// derived fields stay stable across runs of the synthetic dataset.
var (
	tenureReference  = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recencyReference = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
)

var paymentMethodNames = map[string]string{
	"credit_card":    "Credit Card",
	"credit card":    "Credit Card",
	"creditcard":     "Credit Card",
	"debit_card":     "Debit Card",
	"debit card":     "Debit Card",
	"debitcard":      "Debit Card",
	"cash":           "Cash",
	"digital_wallet": "Digital Wallet",
	"digital wallet": "Digital Wallet",
	"digitalwallet":  "Digital Wallet",
}

var countryNames = map[string]string{
	"USA":    "United States",
	"US":     "United States",
	"U.S.A.": "United States",
	"UK":     "United Kingdom",
	"U.K.":   "United Kingdom",
}

var regions = map[string]string{
	"United States":  "North America",
	"Canada":         "North America",
	"United Kingdom": "Europe",
	"Germany":        "Europe",
	"France":         "Europe",
}

// amountCategory buckets a transaction amount: below 20 is low, below 50
// is medium, everything else high.
func amountCategory(amount float64) string {
	switch {
	case amount < 20:
		return "low"
	case amount < 50:
		return "medium"
	default:
		return "high"
	}
}

// StandardizeTransactions derives the date components, display-cases the
// payment method, and buckets the amount.
func StandardizeTransactions(f *frame.Frame) error {
	if err := f.AddColumn("year", func(r frame.Row) any {
		return int64(r.Time("transaction_date").Year())
	}); err != nil {
		return err
	}
	if err := f.AddColumn("month", func(r frame.Row) any {
		return int64(r.Time("transaction_date").Month())
	}); err != nil {
		return err
	}
	if err := f.AddColumn("day", func(r frame.Row) any {
		return int64(r.Time("transaction_date").Day())
	}); err != nil {
		return err
	}
	// Monday = 0, matching the upstream convention.
	if err := f.AddColumn("day_of_week", func(r frame.Row) any {
		return int64((int(r.Time("transaction_date").Weekday()) + 6) % 7)
	}); err != nil {
		return err
	}
	if err := f.MapColumn("payment_method", func(v any) any {
		if s, ok := v.(string); ok {
			if name, ok := paymentMethodNames[s]; ok {
				return name
			}
			return s
		}
		return v
	}); err != nil {
		return err
	}
	return f.AddColumn("amount_category", func(r frame.Row) any {
		return amountCategory(r.Float("amount"))
	})
}

// EnrichCustomers derives tenure, segment, and geography fields.
func EnrichCustomers(f *frame.Frame) error {
	if err := f.AddColumn("tenure_days", func(r frame.Row) any {
		return int64(tenureReference.Sub(r.Time("signup_date")).Hours() / 24)
	}); err != nil {
		return err
	}
	if err := f.AddColumn("customer_segment", func(r frame.Row) any {
		switch days := r.Int("tenure_days"); {
		case days < 90:
			return "New"
		case days < 365:
			return "Regular"
		default:
			return "Loyal"
		}
	}); err != nil {
		return err
	}
	if err := f.MapColumn("country", func(v any) any {
		if s, ok := v.(string); ok {
			if name, ok := countryNames[s]; ok {
				return name
			}
			return s
		}
		return v
	}); err != nil {
		return err
	}
	return f.AddColumn("region", func(r frame.Row) any {
		if region, ok := regions[r.String("country")]; ok {
			return region
		}
		return nil
	})
}

// titleCase capitalizes the first letter of every word and lowercases the
// rest, leaving non-letter runes untouched.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}

// StandardizeProducts title-cases the category and derives the price tier
// and availability label.
func StandardizeProducts(f *frame.Frame) error {
	if err := f.MapColumn("category", func(v any) any {
		if s, ok := v.(string); ok {
			return titleCase(s)
		}
		return v
	}); err != nil {
		return err
	}
	if err := f.AddColumn("price_tier", func(r frame.Row) any {
		switch price := r.Float("price"); {
		case price < 20:
			return "Budget"
		case price < 50:
			return "Standard"
		default:
			return "Premium"
		}
	}); err != nil {
		return err
	}
	return f.AddColumn("availability", func(r frame.Row) any {
		if r.Bool("in_stock") {
			return "In Stock"
		}
		return "Out of Stock"
	})
}

// TransactionProductView joins product attributes onto the transactions and
// adds the month_year partition field.
func TransactionProductView(transactions, products *frame.Frame) (*frame.Frame, error) {
	view, err := transactions.LeftJoin(products, "product_id", "product_name", "category", "price_tier")
	if err != nil {
		return nil, err
	}
	if err := view.AddColumn("month_year", func(r frame.Row) any {
		return r.Time("transaction_date").Format("2006-01")
	}); err != nil {
		return nil, err
	}
	return view, nil
}
