package cpp

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/sbmlteam/deviser/internal/codegen/common"
)

func tplFuncs() template.FuncMap {
	return template.FuncMap{
		"pascalcase":           common.ToPascalCase,
		"camelcase":            common.ToCamelCase,
		"toScreamingSnakeCase": common.ToScreamingSnakeCase,
		"upper":                strings.ToUpper,
		"lower":                strings.ToLower,
		"cstring":              cString,
		"join":                 strings.Join,
	}
}

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(tplFuncs()).Option("missingkey=error").Parse(text))
}

func execute(t *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute %s template: %w", t.Name(), err)
	}
	return buf.Bytes(), nil
}

// indent shifts every non-empty line right by n levels of two spaces.
func indent(n int, lines []string) []string {
	pad := strings.Repeat("  ", n)
	out := make([]string, len(lines))
	for i, l := range lines {
		if l != "" {
			l = pad + l
		}
		out[i] = l
	}
	return out
}

// block renders head followed by a braced body.
func block(head string, body ...string) []string {
	out := []string{head, "{"}
	out = append(out, indent(1, body)...)
	return append(out, "}")
}

// chain renders branches as an if / else if sequence.
func chain(brs []branch) []string {
	var out []string
	for i, b := range brs {
		head := "if (" + b.cond + ")"
		if i > 0 {
			head = "else " + head
		}
		out = append(out, block(head, b.body...)...)
	}
	return out
}

func orEquals(v string, values []string) string {
	parts := make([]string, len(values))
	for i, s := range values {
		parts[i] = v + " == \"" + s + "\""
	}
	return strings.Join(parts, " || ")
}

// cString quotes s as a C string literal.
func cString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}

// initials abbreviates a class name for C API parameters: BetaDistribution -> bd.
func initials(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i == 0 || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}
