package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sbmlteam/deviser/internal/codegen/generator"
	"github.com/sbmlteam/deviser/internal/log"
)

type Generate struct {
	Schema     string        `arg:"" help:"Package schema (YAML, JSON, TOML or XML)" type:"existingfile"`
	Output     string        `help:"Output directory; every language gets its own subdirectory" default:"./generated" env:"DEVISER_OUTPUT"`
	Lang       string        `help:"Target language: cpp, go, or 'all'" default:"all" enum:"cpp,go,all" env:"DEVISER_LANG"`
	PkgVersion int           `help:"Package version to generate; 0 selects the last declared one" default:"0" env:"DEVISER_PKG_VERSION"`
	Workers    int           `help:"Files written in parallel; 0 uses one per CPU" default:"0" env:"DEVISER_WORKERS"`
	Watch      bool          `help:"Regenerate whenever the schema file changes"`
	Debounce   time.Duration `help:"Quiet period after a schema change before regenerating" default:"200ms"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger, artifacts log.ArtifactLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return g.Execute(ctx, logger, artifacts)
}

// Execute generates once and, with Watch set, keeps regenerating until ctx ends.
// In watch mode a failing run is logged and the watch goes on.
func (g *Generate) Execute(ctx context.Context, logger *slog.Logger, artifacts log.ArtifactLogger) error {
	logger.Info("Starting deviser code generation", "schema", g.Schema, "output", g.Output, "lang", g.Lang)

	err := g.generate(ctx, logger, artifacts)
	if !g.Watch {
		return err
	}
	if err != nil {
		logger.Error("generation failed", "error", err)
	}
	return g.watch(ctx, logger, artifacts)
}

func (g *Generate) generate(ctx context.Context, logger *slog.Logger, artifacts log.ArtifactLogger) error {
	md, err := generator.LoadMetadata(g.Schema, g.PkgVersion)
	if err != nil {
		return err
	}
	gen := generator.New(g.Output, logger).WithArtifactLogger(artifacts).WithWorkers(g.Workers)
	if g.Lang == "all" {
		return gen.GenAll(ctx, md)
	}
	_, err = gen.GenerateLang(ctx, g.Lang, md)
	return err
}

func (g *Generate) watch(ctx context.Context, logger *slog.Logger, artifacts log.ArtifactLogger) error {
	target, err := filepath.Abs(g.Schema)
	if err != nil {
		return fmt.Errorf("resolve schema path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	// Editors often save by renaming a new file over the old one, which drops a
	// watch on the file itself.
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	logger.Info("Watching schema for changes", "schema", target)

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping schema watch")
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if name, err := filepath.Abs(ev.Name); err != nil || name != target {
				continue
			}
			logger.Debug("Schema changed", "op", ev.Op.String())
			fire = time.After(g.Debounce)
		case <-fire:
			fire = nil
			if err := g.generate(ctx, logger, artifacts); err != nil {
				logger.Error("generation failed", "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("schema watcher error", "error", err)
		}
	}
}
