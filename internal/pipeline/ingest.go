package pipeline

import (
	"context"
	"fmt"

	"lake-demo/internal/domain"
	"lake-demo/internal/frame"
	"lake-demo/internal/sample"
)

// Ingest uploads the synthetic source datasets to the raw zone in their
// native CSV format, records descriptive metadata for each, and verifies
// the uploads by listing the zone.
func (s *Steps) Ingest(ctx context.Context) error {
	s.logger.Info("creating sample datasets")
	datasets := []struct {
		frame *frame.Frame
		key   string
		meta  domain.ObjectMetadata
	}{
		{
			frame: sample.Transactions(),
			key:   KeyRawTransactions,
			meta: domain.ObjectMetadata{
				Description:        "Raw transaction data from source system",
				SourceSystem:       "Point of Sale System",
				DataOwner:          "Sales Department",
				UpdateFrequency:    "Daily",
				DataClassification: "Internal",
			},
		},
		{
			frame: sample.Customers(),
			key:   KeyRawCustomers,
			meta: domain.ObjectMetadata{
				Description:        "Raw customer data from CRM",
				SourceSystem:       "CRM System",
				DataOwner:          "Marketing Department",
				UpdateFrequency:    "Weekly",
				DataClassification: "Confidential",
			},
		},
		{
			frame: sample.Products(),
			key:   KeyRawProducts,
			meta: domain.ObjectMetadata{
				Description:        "Raw product catalog data",
				SourceSystem:       "Inventory Management System",
				DataOwner:          "Product Management",
				UpdateFrequency:    "Weekly",
				DataClassification: "Internal",
			},
		},
	}

	for _, d := range datasets {
		if err := s.publish(ctx, d.frame, domain.ZoneRaw, d.key, frame.FormatCSV, d.meta); err != nil {
			return fmt.Errorf("ingest %s: %w", d.key, err)
		}
		s.logger.Info("dataset ingested", "key", d.key, "rows", d.frame.NumRows())
	}

	for _, prefix := range []string{"sales/", "crm/", "inventory/"} {
		keys, err := s.store.List(ctx, domain.ZoneRaw, prefix)
		if err != nil {
			return fmt.Errorf("verify %s: %w", prefix, err)
		}
		fmt.Fprintf(s.out, "Files in %s: %v\n", prefix, keys)
	}

	fmt.Fprintln(s.out, "Data ingestion into raw-ingestion-zone complete.")
	return nil
}
