package generator

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"sort"

	"github.com/sbmlteam/deviser/internal/codegen/emit"
	"github.com/sbmlteam/deviser/internal/codegen/generator/cpp"
	"github.com/sbmlteam/deviser/internal/codegen/generator/gobind"
	"github.com/sbmlteam/deviser/internal/codegen/meta"
	dlog "github.com/sbmlteam/deviser/internal/log"
	"github.com/sbmlteam/deviser/schema"
)

type Generator struct {
	outputDir string
	logger    *slog.Logger
	artifacts dlog.ArtifactLogger
	workers   int
}

// LanguageGenerator renders every artifact of one target, relative to the target directory.
type LanguageGenerator func(logger *slog.Logger, md *meta.Metadata) ([]emit.Artifact, error)

var generators = map[string]LanguageGenerator{
	"cpp": cpp.Generate,
	"go":  gobind.Generate,
}

func New(outputDir string, logger *slog.Logger) *Generator {
	return &Generator{
		outputDir: outputDir,
		logger:    logger,
	}
}

// WithArtifactLogger records every written file.
func (g *Generator) WithArtifactLogger(a dlog.ArtifactLogger) *Generator {
	g.artifacts = a
	return g
}

// WithWorkers bounds the number of files written in parallel. Zero keeps the default.
func (g *Generator) WithWorkers(n int) *Generator {
	g.workers = n
	return g
}

// Languages lists the supported targets in order.
func Languages() []string {
	out := make([]string, 0, len(generators))
	for k := range generators {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// LoadMetadata loads a schema file and resolves one of its package versions.
func LoadMetadata(schemaPath string, pkgVersion int) (*meta.Metadata, error) {
	pkg, err := schema.Load(schemaPath)
	if err != nil {
		return nil, err
	}
	md, err := meta.Build(pkg, pkgVersion)
	if err != nil {
		return nil, fmt.Errorf("build metadata: %w", err)
	}
	return md, nil
}

// GenAll renders every language before writing anything, so a render failure in
// one target leaves the output tree untouched.
func (g *Generator) GenAll(ctx context.Context, md *meta.Metadata) error {
	var arts []emit.Artifact
	for _, lang := range Languages() {
		la, err := g.render(lang, md)
		if err != nil {
			return fmt.Errorf("generate %s sources: %w", lang, err)
		}
		arts = append(arts, la...)
	}
	stats, err := g.write(ctx, arts)
	if err != nil {
		return err
	}
	g.logger.Info("Source generation complete",
		"languages", Languages(),
		"output", g.outputDir,
		"written", stats.Written,
		"unchanged", stats.Unchanged)
	return nil
}

func (g *Generator) GenerateLang(ctx context.Context, lang string, md *meta.Metadata) (emit.Stats, error) {
	arts, err := g.render(lang, md)
	if err != nil {
		return emit.Stats{}, err
	}
	stats, err := g.write(ctx, arts)
	if err != nil {
		return stats, err
	}

	g.logger.Info("Source generation complete",
		"language", lang,
		"output", filepath.Join(g.outputDir, lang),
		"written", stats.Written,
		"unchanged", stats.Unchanged)
	return stats, nil
}

// render returns the artifacts of one language with paths under its target directory.
func (g *Generator) render(lang string, md *meta.Metadata) ([]emit.Artifact, error) {
	gen, ok := generators[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language '%s' (supported: %v)", lang, Languages())
	}

	g.logger.Info("Generating sources", "language", lang, "package", md.Package.Name, "uri", md.URI)

	arts, err := gen(g.logger, md)
	if err != nil {
		return nil, err
	}
	for i := range arts {
		arts[i].Path = path.Join(lang, arts[i].Path)
	}
	return arts, nil
}

func (g *Generator) write(ctx context.Context, arts []emit.Artifact) (emit.Stats, error) {
	return emit.NewWriter(g.outputDir, g.logger, g.artifacts).WithWorkers(g.workers).Write(ctx, arts)
}
