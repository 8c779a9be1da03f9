package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// runStep wires the app and runs one zone step, logging failures before
// returning them for exit-code handling.
func runStep(name string, step func(a *app, ctx context.Context) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := step(a, cmd.Context()); err != nil {
			a.logger.Error("step failed", "step", name, "error", err)
			return err
		}
		return nil
	}
}

func newIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Generate sample datasets and load them into the raw zone",
		RunE: runStep("ingest", func(a *app, ctx context.Context) error {
			return a.steps.Ingest(ctx)
		}),
	}
}

func newProcessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Standardize raw data into the process zone and register it with Trino",
		RunE: runStep("process", func(a *app, ctx context.Context) error {
			return a.steps.Process(ctx)
		}),
	}
}

func newAccessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "access",
		Short: "Build analytics aggregates in the access zone",
		RunE: runStep("access", func(a *app, ctx context.Context) error {
			return a.steps.Access(ctx)
		}),
	}
}

func newGovernCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "govern",
		Short: "Print the metadata catalog, lineage, and quality report; write policies",
		RunE: runStep("govern", func(a *app, ctx context.Context) error {
			return a.steps.Govern(ctx)
		}),
	}
}

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query",
		Short: "Run the demo analytical queries against the registered tables",
		RunE: runStep("query", func(a *app, ctx context.Context) error {
			return a.steps.Query(ctx)
		}),
	}
}

func newDimensionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dimension",
		Short: "Build the product dimension and register it as an external table",
		RunE: runStep("dimension", func(a *app, ctx context.Context) error {
			return a.steps.Dimension(ctx)
		}),
	}
}

func newMartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mart",
		Short: "Materialize the sales data mart in the access zone via CTAS",
		RunE: runStep("mart", func(a *app, ctx context.Context) error {
			return a.steps.Mart(ctx)
		}),
	}
}
