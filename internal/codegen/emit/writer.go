// Package emit checks and writes generated artifacts.
package emit

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	dlog "github.com/sbmlteam/deviser/internal/log"
)

// Artifact is one generated file, relative to the output directory.
type Artifact struct {
	Path    string
	Content []byte
}

var (
	placeholderRe = regexp.MustCompile(`<[A-Z][A-Z0-9_]+>`)
	noValue       = []byte("<no value>")
)

// Check rejects an artifact that still carries an unfilled skeleton placeholder
// or a missing template value.
func Check(a Artifact) error {
	if m := placeholderRe.Find(a.Content); m != nil {
		line := bytes.Count(a.Content[:bytes.Index(a.Content, m)], []byte("\n")) + 1
		return NewGenerationError("check", a.Path, fmt.Sprintf("unfilled placeholder %s on line %d", m, line), nil)
	}
	if i := bytes.Index(a.Content, noValue); i >= 0 {
		line := bytes.Count(a.Content[:i], []byte("\n")) + 1
		return NewGenerationError("check", a.Path, fmt.Sprintf("missing template value on line %d", line), nil)
	}
	return nil
}

// Stats summarizes one Write call.
type Stats struct {
	Written   int
	Unchanged int
	Bytes     int64
}

// Writer writes artifacts below a directory in parallel.
type Writer struct {
	outDir    string
	workers   int
	logger    *slog.Logger
	artifacts dlog.ArtifactLogger

	mu    sync.Mutex
	stats Stats
}

// NewWriter creates a Writer. A nil artifact logger records nothing.
func NewWriter(outDir string, logger *slog.Logger, artifacts dlog.ArtifactLogger) *Writer {
	if artifacts == nil {
		artifacts = dlog.NewArtifact(nil)
	}
	return &Writer{
		outDir:    outDir,
		workers:   runtime.GOMAXPROCS(0),
		logger:    logger,
		artifacts: artifacts,
	}
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Write checks every artifact first and writes nothing if any check fails. Files
// whose content is already on disk are left untouched.
func (w *Writer) Write(ctx context.Context, arts []Artifact) (Stats, error) {
	seen := make(map[string]bool, len(arts))
	for _, a := range arts {
		if seen[a.Path] {
			return Stats{}, NewGenerationError("check", a.Path, "generated twice", nil)
		}
		seen[a.Path] = true
		if err := Check(a); err != nil {
			return Stats{}, err
		}
	}

	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return Stats{}, fmt.Errorf("create output directory: %w", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, a := range arts {
		a := a // per-iteration copy (go 1.21 loop semantics)
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeFile(a)
			}
		})
	}
	err := eg.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats, err
}

func (w *Writer) writeFile(a Artifact) error {
	fullPath := filepath.Join(w.outDir, filepath.FromSlash(a.Path))
	sum := blake2b.Sum256(a.Content)

	if old, err := os.ReadFile(fullPath); err == nil && blake2b.Sum256(old) == sum {
		w.artifacts.Log(a.Path, len(a.Content), sum[:], true)
		w.logger.Debug("Unchanged artifact", "file", a.Path)
		w.mu.Lock()
		w.stats.Unchanged++
		w.mu.Unlock()
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return NewGenerationError("write", a.Path, "create directory", err)
	}
	if err := os.WriteFile(fullPath, a.Content, 0o644); err != nil {
		return NewGenerationError("write", a.Path, "", err)
	}
	w.artifacts.Log(a.Path, len(a.Content), sum[:], false)
	w.logger.Debug("Wrote artifact", "file", a.Path, "bytes", len(a.Content))

	w.mu.Lock()
	w.stats.Written++
	w.stats.Bytes += int64(len(a.Content))
	w.mu.Unlock()
	return nil
}

// Sort orders artifacts by path.
func Sort(arts []Artifact) {
	sort.Slice(arts, func(i, j int) bool { return arts[i].Path < arts[j].Path })
}
