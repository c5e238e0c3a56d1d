package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/sbmlteam/deviser/sbase"
	"github.com/sbmlteam/deviser/schema"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

type Validate struct {
	Schema     string   `help:"Package schema (YAML, JSON, TOML or XML)" required:"" type:"existingfile" env:"DEVISER_SCHEMA"`
	PkgVersion int      `help:"Package version to bind; 0 selects the last declared one" default:"0" env:"DEVISER_PKG_VERSION"`
	Color      string   `help:"Colorize problems: auto, always or never" default:"auto" enum:"auto,always,never" env:"DEVISER_COLOR"`
	Documents  []string `arg:"" help:"Documents to read and check" type:"existingfile"`

	out io.Writer
}

// Run is called by Kong when the validate command is executed. Every document is
// read and checked; the command fails when any of them has an error.
func (v *Validate) Run(logger *slog.Logger) error {
	pkg, err := schema.Load(v.Schema)
	if err != nil {
		return err
	}
	b, err := sbase.Bind(pkg, v.PkgVersion)
	if err != nil {
		return err
	}

	out := v.out
	if out == nil {
		out = os.Stdout
	}
	color := useColor(v.Color, out)

	failed := 0
	for _, path := range v.Documents {
		problems, err := validateFile(path, b)
		if err != nil {
			return err
		}
		severe := false
		for _, e := range problems {
			severe = severe || e.Severity >= sbase.SeverityError
			fmt.Fprintf(out, "%s: %s\n", path, paint(e, color))
		}
		if severe {
			failed++
		}
		logger.Info("Validated document", "file", path, "problems", len(problems), "uri", b.URI)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d document(s) failed validation", failed, len(v.Documents))
	}
	return nil
}

// validateFile returns what reading logged followed by what validation found.
func validateFile(path string, b *sbase.Binding) ([]*sbase.Error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	doc, err := sbase.ReadDocument(f, b)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	problems := doc.Log().Errors()
	return append(problems, sbase.Validate(doc).Errors()...), nil
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func paint(e *sbase.Error, color bool) string {
	if !color {
		return e.Error()
	}
	c := ansiCyan
	switch {
	case e.Severity >= sbase.SeverityError:
		c = ansiRed
	case e.Severity == sbase.SeverityWarning:
		c = ansiYellow
	}
	return c + e.Error() + ansiReset
}
