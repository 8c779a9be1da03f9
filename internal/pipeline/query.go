package pipeline

import (
	"context"
	"fmt"

	"lake-demo/internal/domain"
)

// Query runs the fixed analytical statements against the registered
// transactions table and prints the results. An individual query failure is
// reported and aborts the remaining statements of the step.
func (s *Steps) Query(ctx context.Context) error {
	if s.eng == nil {
		return domain.ErrValidation("query engine not configured")
	}
	table := s.eng.Qualified("transactions")
	queries := []struct {
		title string
		sql   string
	}{
		{
			title: "Transaction counts by payment method",
			sql: fmt.Sprintf(`SELECT payment_method, COUNT(*) AS transaction_count
FROM %s
GROUP BY payment_method
ORDER BY transaction_count DESC`, table),
		},
		{
			title: "Monthly transaction statistics",
			sql: fmt.Sprintf(`SELECT
    year,
    month,
    COUNT(*) AS transaction_count,
    SUM(amount) AS total_amount,
    AVG(amount) AS avg_amount,
    MIN(amount) AS min_amount,
    MAX(amount) AS max_amount
FROM %s
GROUP BY year, month
ORDER BY year, month`, table),
		},
		{
			title: "Top 10 customers by spending",
			sql: fmt.Sprintf(`SELECT
    customer_id,
    COUNT(*) AS transaction_count,
    SUM(amount) AS total_spent
FROM %s
GROUP BY customer_id
ORDER BY total_spent DESC
LIMIT 10`, table),
		},
	}

	for _, q := range queries {
		s.logger.Info("running query", "title", q.title)
		res, err := s.eng.Execute(ctx, q.sql)
		if err != nil {
			return fmt.Errorf("%s: %w", q.title, err)
		}
		fmt.Fprintf(s.out, "\n%s:\n", q.title)
		printFrame(s.out, res.Frame())
	}
	return nil
}
