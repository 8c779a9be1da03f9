package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lake-demo/internal/pipeline"
)

func newWorkflowCmd() *cobra.Command {
	var schedule string
	var withQuery bool

	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Run the zone steps as a dependency-ordered workflow",
		Long: "Runs ingest, process, access, and govern as a task graph with dependency\n" +
			"ordering. With --schedule the workflow repeats on the given cron spec until\n" +
			"interrupted.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			wf := buildWorkflow(a, withQuery)

			if schedule == "" {
				results, err := wf.Run(cmd.Context())
				printResults(cmd, results)
				return err
			}

			sched := pipeline.NewScheduler(a.logger.With("component", "scheduler"))
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := sched.Add(schedule, wf); err != nil {
				return err
			}
			sched.Start()
			a.logger.Info("workflow scheduled", "cron", schedule)
			<-ctx.Done()
			sched.Stop()
			return nil
		},
	}
	cmd.Flags().StringVar(&schedule, "schedule", "", "cron spec for repeated runs")
	cmd.Flags().BoolVar(&withQuery, "with-query", false, "append the query step after govern")
	return cmd
}

func buildWorkflow(a *app, withQuery bool) *pipeline.Workflow {
	wf := pipeline.NewWorkflow("zone-pipeline", a.logger.With("component", "workflow"))
	wf.Add(pipeline.Task{Name: "ingest", Run: a.steps.Ingest})
	wf.Add(pipeline.Task{Name: "process", DependsOn: []string{"ingest"}, Run: a.steps.Process})
	wf.Add(pipeline.Task{Name: "access", DependsOn: []string{"process"}, Run: a.steps.Access})
	wf.Add(pipeline.Task{Name: "govern", DependsOn: []string{"access"}, Run: a.steps.Govern})
	if withQuery {
		wf.Add(pipeline.Task{Name: "query", DependsOn: []string{"govern"}, Run: a.steps.Query})
	}
	return wf
}

func printResults(cmd *cobra.Command, results []pipeline.TaskResult) {
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-8s %s\n", r.Name, r.Status, r.Duration().Round(time.Millisecond))
	}
}
