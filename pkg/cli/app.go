package cli

import (
	"log/slog"
	"os"

	"lake-demo/internal/config"
	"lake-demo/internal/engine"
	"lake-demo/internal/governance"
	"lake-demo/internal/objectstore"
	"lake-demo/internal/pipeline"
)

// app holds the wired collaborators every command needs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *objectstore.Client
	eng    *engine.Engine
	steps  *pipeline.Steps
}

// newApp loads configuration and wires the object store, query engine,
// governance store, and zone steps.
func newApp() (*app, error) {
	cfg := config.LoadFromEnv()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	store := objectstore.New(cfg, logger.With("component", "objectstore"))
	eng, err := engine.New(cfg, logger.With("component", "engine"))
	if err != nil {
		return nil, err
	}
	meta := governance.NewMetadataStore(store, logger.With("component", "governance"))
	steps := pipeline.NewSteps(store, eng, meta, logger.With("component", "pipeline"), os.Stdout)

	return &app{cfg: cfg, logger: logger, store: store, eng: eng, steps: steps}, nil
}
