package cmd

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/sbmlteam/deviser/internal/log"
)

const (
	distribSchema = "../../schema/testdata/distrib.yaml"
	coreL3V1      = "http://www.sbml.org/sbml/level3/version1/core"
	distribURI    = "http://www.sbml.org/sbml/level3/version1/distrib/version1"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestGenerateExecute(t *testing.T) {
	out := t.TempDir()
	var buf bytes.Buffer
	g := &Generate{Schema: distribSchema, Output: out, Lang: "go", Workers: 2}
	require.NoError(t, g.Execute(context.Background(), discard(), log.NewArtifact(&buf)))

	_, err := os.Stat(filepath.Join(out, "go", "distrib", "distrib.go"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "cpp"))
	assert.True(t, os.IsNotExist(err), "only the selected language is generated")
	assert.Equal(t, 3, strings.Count(buf.String(), "write "))

	g.PkgVersion = 9
	err = g.Execute(context.Background(), discard(), log.NewArtifact(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package version 9 not declared")
}

func TestGenerateWatchRegenerates(t *testing.T) {
	src, err := os.ReadFile(distribSchema)
	require.NoError(t, err)
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "distrib.yaml", string(src))
	out := filepath.Join(dir, "out")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	g := &Generate{Schema: schemaPath, Output: out, Lang: "go", Watch: true, Debounce: 10 * time.Millisecond}
	go func() { done <- g.Execute(ctx, discard(), log.NewArtifact(nil)) }()

	readme := filepath.Join(out, "go", "README.md")
	require.Eventually(t, func() bool {
		_, err := os.Stat(readme)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	renamed := strings.Replace(string(src), "fullName: Distributions", "fullName: Uncertainty", 1)
	require.Eventually(t, func() bool {
		// rewrite on every poll; the watch may not be armed yet on the first one
		writeFile(t, dir, "distrib.yaml", renamed)
		b, err := os.ReadFile(readme)
		return err == nil && strings.Contains(string(b), "# Uncertainty (distrib) Go")
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	doc := func(body string) string {
		return `<?xml version="1.0" encoding="UTF-8"?>
<sbml xmlns="` + coreL3V1 + `" xmlns:distrib="` + distribURI + `" level="3" version="1" distrib:required="true">
  <model>` + body + `</model>
</sbml>
`
	}
	good := writeFile(t, dir, "good.xml", doc(""))
	bad := writeFile(t, dir, "bad.xml", doc(`
    <distrib:listOfDistributions>
      <distrib:betaDistribution distrib:id="b"/>
    </distrib:listOfDistributions>
  `))

	tests := []struct {
		name    string
		docs    []string
		color   string
		wantErr string
		want    []string
		notWant []string
	}{
		{name: "clean document", docs: []string{good}, color: "never", notWant: []string{good}},
		{
			name:    "missing children",
			docs:    []string{good, bad},
			color:   "never",
			wantErr: "1 of 2 document(s) failed validation",
			want:    []string{bad + ": line 5:", "(1520604) [Error]", "<alpha>"},
			notWant: []string{ansiRed},
		},
		{
			name:    "colored",
			docs:    []string{bad},
			color:   "always",
			wantErr: "1 of 1 document(s) failed validation",
			want:    []string{ansiRed + "line 5:", ansiReset},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			v := &Validate{Schema: distribSchema, Color: tt.color, Documents: tt.docs, out: &out}
			err := v.Run(discard())
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
			}
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out.String(), w)
			}
		})
	}
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, useColor("always", &buf))
	assert.False(t, useColor("never", os.Stdout))
	assert.False(t, useColor("auto", &buf), "a buffer is never a terminal")
}

func TestInspect(t *testing.T) {
	var out bytes.Buffer
	i := &Inspect{Schema: distribSchema, Errors: true, out: &out}
	require.NoError(t, i.Run(discard()))

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "Distributions (distrib) SBML Level 3 Version 1, package version 1\n"))
	assert.Contains(t, s, "namespace "+distribURI)
	assert.Regexp(t, `Distribution \(abstract\)\s+distribution\s+SBase\s+SBML_DISTRIB_DISTRIBUTION\s+1501`, s)
	assert.Regexp(t, `ListOfDistributions\s+listOfDistributions\s+BetaDistribution, CategoricalDistribution`, s)
	assert.Regexp(t, `Model\s+SBML\s+distribution:lo_element`, s)
	assert.Regexp(t, `1510101\s+DistribNSUndeclared\s+Error`, s)
}

func TestInspectWithoutErrors(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, (&Inspect{Schema: distribSchema, out: &out}).Run(discard()))
	assert.NotContains(t, out.String(), "DistribNSUndeclared")
}

func TestConfigInit(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "generate.yaml")
	c := &ConfigInit{Command: "generate", Format: "yml", Output: dest}
	require.NoError(t, c.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, map[string]any{
		"output":      "./generated",
		"lang":        "all",
		"pkg_version": 0,
		"workers":     0,
		"watch":       false,
		"debounce":    "200ms",
	}, got)

	err = c.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use --force")

	c.Force = true
	c.Format = "toml"
	require.NoError(t, c.Run())
	data, err = os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), `lang = "all"`)
}

func TestConfigInitFormat(t *testing.T) {
	c := &ConfigInit{Command: "inspect", Format: "ini"}
	err := c.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, (&Version{out: &out}).Run())
	assert.True(t, strings.HasPrefix(out.String(), "deviser "))
}
