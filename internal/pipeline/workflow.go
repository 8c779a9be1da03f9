package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Task statuses reported by a workflow run.
const (
	TaskStatusPending = "PENDING"
	TaskStatusRunning = "RUNNING"
	TaskStatusSuccess = "SUCCESS"
	TaskStatusFailed  = "FAILED"
	TaskStatusSkipped = "SKIPPED"
)

// Task is one named unit of work in a workflow.
type Task struct {
	Name      string
	DependsOn []string
	Run       func(ctx context.Context) error
}

// TaskResult records the outcome of a single task.
type TaskResult struct {
	Name     string
	Status   string
	Started  time.Time
	Finished time.Time
	Err      error
}

// Duration returns how long the task ran.
func (r TaskResult) Duration() time.Duration { return r.Finished.Sub(r.Started) }

// Workflow executes tasks sequentially in dependency order, aborting on the
// first failure; tasks after the failure are reported as skipped.
type Workflow struct {
	name   string
	tasks  []Task
	logger *slog.Logger
}

// NewWorkflow creates an empty workflow.
func NewWorkflow(name string, logger *slog.Logger) *Workflow {
	return &Workflow{name: name, logger: logger}
}

// Add appends a task to the workflow.
func (w *Workflow) Add(task Task) { w.tasks = append(w.tasks, task) }

// Run resolves the execution order and runs every task. The returned
// results cover all tasks, including skipped ones; the error is the first
// task failure or a dependency-resolution error.
func (w *Workflow) Run(ctx context.Context) ([]TaskResult, error) {
	levels, err := ResolveExecutionOrder(w.tasks)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]Task, len(w.tasks))
	for _, t := range w.tasks {
		byName[t.Name] = t
	}

	w.logger.Info("workflow started", "workflow", w.name, "tasks", len(w.tasks))
	start := time.Now()
	var results []TaskResult
	var failed error

	for _, level := range levels {
		for _, name := range level {
			if failed != nil {
				results = append(results, TaskResult{Name: name, Status: TaskStatusSkipped})
				continue
			}
			task := byName[name]
			res := TaskResult{Name: name, Status: TaskStatusRunning, Started: time.Now()}
			w.logger.Info("executing task", "workflow", w.name, "task", name)
			err := task.Run(ctx)
			res.Finished = time.Now()
			if err != nil {
				res.Status = TaskStatusFailed
				res.Err = err
				failed = fmt.Errorf("task %s: %w", name, err)
				w.logger.Error("task failed", "workflow", w.name, "task", name, "error", err)
			} else {
				res.Status = TaskStatusSuccess
				w.logger.Info("task succeeded", "workflow", w.name, "task", name, "duration", res.Duration())
			}
			results = append(results, res)
		}
	}

	if failed != nil {
		w.logger.Error("workflow failed", "workflow", w.name, "duration", time.Since(start))
		return results, failed
	}
	w.logger.Info("workflow completed", "workflow", w.name, "duration", time.Since(start))
	return results, nil
}
