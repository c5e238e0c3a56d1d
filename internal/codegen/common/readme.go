package common

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/sbmlteam/deviser/internal/codegen/emit"
	"github.com/sbmlteam/deviser/schema"
)

const readmeTemplate = `# {{.Pkg.FullName}} ({{.Pkg.Name}}) {{.Target}}

This is an automatically generated implementation of the {{.Pkg.FullName}} package
for {{.Pkg.Language.Name}} Level {{.Version.Level}} Version {{.Version.Version}}, package version {{.Version.PkgVersion}}.

Namespace: ` + "`{{.URI}}`" + `

## Classes
{{range .Version.Classes}}
- **{{.Name}}**{{if .Abstract}} (abstract){{end}}: element ` + "`{{.ElementName}}`" + `, derived from {{.BaseClass}}
{{- end}}
{{- if .Version.Plugins}}

## Extended classes
{{range .Version.Plugins}}
- **{{.Extends}}**: {{len .Attributes}} attribute(s) and child element(s)
{{- end}}
{{- end}}

Generated by {{.Stamp}}.

## License

See LICENSE.txt for details.
`

var readmeTmpl = template.Must(template.New("readme").Option("missingkey=error").Parse(readmeTemplate))

// Readme renders README.md for one generated target into dir.
func Readme(pkg *schema.Package, v *schema.Version, target, dir string) (emit.Artifact, error) {
	var buf bytes.Buffer
	err := readmeTmpl.Execute(&buf, map[string]any{
		"Pkg":     pkg,
		"Version": v,
		"URI":     pkg.URI(v),
		"Target":  target,
		"Stamp":   Stamp(),
	})
	if err != nil {
		return emit.Artifact{}, fmt.Errorf("execute readme template: %w", err)
	}
	return emit.Artifact{Path: joinPath(dir, "README.md"), Content: buf.Bytes()}, nil
}
