package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"lake-demo/internal/domain"
)

func newBootstrapCmd() *cobra.Command {
	var timeout time.Duration
	var skipEngine bool

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Wait for MinIO and Trino, then create the zone buckets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return waitFor(ctx, "object store", a.store.Ping)
			})
			if !skipEngine {
				g.Go(func() error {
					return waitFor(ctx, "query engine", a.eng.Ping)
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			for _, zone := range domain.Zones {
				if err := a.store.EnsureBucket(ctx, zone); err != nil {
					return err
				}
			}
			a.logger.Info("bootstrap complete", "buckets", len(domain.Zones))
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "how long to wait for services")
	cmd.Flags().BoolVar(&skipEngine, "skip-engine", false, "do not wait for the query engine")
	return cmd
}

// waitFor polls the ping function until it succeeds or the context expires.
func waitFor(ctx context.Context, name string, ping func(context.Context) error) error {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	var lastErr error
	for {
		if lastErr = ping(ctx); lastErr == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s not ready: %w (last: %v)", name, ctx.Err(), lastErr)
		case <-ticker.C:
		}
	}
}
