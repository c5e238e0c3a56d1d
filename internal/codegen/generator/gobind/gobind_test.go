package gobind

import (
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbmlteam/deviser/internal/codegen/meta"
	"github.com/sbmlteam/deviser/schema"
)

func loadMetadata(t *testing.T) *meta.Metadata {
	t.Helper()
	pkg, err := schema.Load("../../../../schema/testdata/distrib.yaml")
	require.NoError(t, err)
	md, err := meta.Build(pkg, 0)
	require.NoError(t, err)
	return md
}

// fieldRe matches a struct field regardless of gofmt column alignment.
func fieldRe(name, typ, tag string) *regexp.Regexp {
	return regexp.MustCompile(`\n\t` + regexp.QuoteMeta(name) + `\s+` + regexp.QuoteMeta(typ) + `\s+` + regexp.QuoteMeta("`xml:\""+tag+"\"`"))
}

func TestRenderStructs(t *testing.T) {
	f, err := Render(loadMetadata(t))
	require.NoError(t, err)
	code := f.GoString()

	assert.Contains(t, code, "package distrib")
	assert.Regexp(t, `Namespace\s+= "http://www.sbml.org/sbml/level3/version1/distrib/version1"`, code)
	assert.Contains(t, code, "type BetaDistribution struct {\n\tContinuousDistribution\n")
	assert.Contains(t, code, "type ContinuousDistribution struct {\n\tDistribution\n")

	tests := []struct {
		name, field, typ, tag string
	}{
		{"sid attribute", "ID", "string", "id,attr,omitempty"},
		{"unsigned attribute", "Rank", "*uint", "rank,attr,omitempty"},
		{"double attribute", "Probability", "*float64", "probability,attr,omitempty"},
		{"boolean attribute", "LowerTruncated", "*bool", "lowerTruncated,attr,omitempty"},
		{"array attribute", "Values", "DoubleArray", "values,attr,omitempty"},
		{"singular child", "Alpha", "*UncertValue", "alpha,omitempty"},
		{"list child", "Category", "[]Category", "listOfCategories>category,omitempty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Regexp(t, fieldRe(tt.field, tt.typ, tt.tag), code)
		})
	}
}

func TestRenderAbstractListFields(t *testing.T) {
	f, err := Render(loadMetadata(t))
	require.NoError(t, err)
	code := f.GoString()

	assert.Contains(t, code, "type DistribModelPlugin struct")
	assert.Regexp(t, fieldRe("DistributionBetaDistribution", "[]BetaDistribution", "listOfDistributions>betaDistribution,omitempty"), code)
	assert.Regexp(t, fieldRe("DistributionCategoricalDistribution", "[]CategoricalDistribution", "listOfDistributions>categoricalDistribution,omitempty"), code)
}

func TestRenderRequiredChecks(t *testing.T) {
	f, err := Render(loadMetadata(t))
	require.NoError(t, err)
	code := f.GoString()

	assert.Contains(t, code, "func (v *Category) HasRequiredAttributes() bool {\n\tif !(v.Probability != nil) {\n\t\treturn false\n\t}\n\treturn true\n}")
	assert.Contains(t, code, "func (v *BetaDistribution) HasRequiredElements() bool {\n\tif !v.ContinuousDistribution.HasRequiredElements() {")
	assert.Contains(t, code, "if !(v.Alpha != nil) {")
	assert.Contains(t, code, "if !(len(v.Category) > 0) {")
	assert.Contains(t, code, "func (v *UncertValue) HasRequiredElements() bool {\n\treturn true\n}")
}

func TestRenderEnum(t *testing.T) {
	pkg, err := schema.Parse([]byte(`
name: signs
versions:
  - classes:
      - name: Input
        attributes:
          - { name: sign, type: enum, element: Sign, required: true }
    enums:
      - name: Sign
        values:
          - { name: INPUT_SIGN_POSITIVE, value: positive }
          - { name: INPUT_SIGN_NEGATIVE, value: negative }
`), schema.FormatYAML)
	require.NoError(t, err)
	md, err := meta.Build(pkg, 0)
	require.NoError(t, err)

	f, err := Render(md)
	require.NoError(t, err)
	code := f.GoString()

	assert.Contains(t, code, "type Sign string")
	assert.Regexp(t, `SignPositive\s+Sign = "positive"`, code)
	assert.Contains(t, code, "func (v Sign) IsValid() bool {\n\tswitch v {\n\tcase SignPositive, SignNegative:\n\t\treturn true\n\t}\n\treturn false\n}")
	assert.Regexp(t, fieldRe("Sign", "Sign", "sign,attr,omitempty"), code)
	assert.Contains(t, code, `if !(v.Sign != "") {`)
	assert.NotContains(t, code, "DoubleArray")
}

func TestGoName(t *testing.T) {
	tests := map[string]string{
		"id":             "ID",
		"compartmentId":  "CompartmentID",
		"lowerTruncated": "LowerTruncated",
		"Idle":           "Idle",
		"var":            "Var",
	}
	for in, want := range tests {
		assert.Equal(t, want, goName(in), in)
	}
}

func TestGenerate(t *testing.T) {
	arts, err := Generate(slog.New(slog.NewTextHandler(io.Discard, nil)), loadMetadata(t))
	require.NoError(t, err)

	var paths []string
	for _, a := range arts {
		paths = append(paths, a.Path)
	}
	assert.Equal(t, []string{"LICENSE.txt", "README.md", "distrib/distrib.go"}, paths)
	assert.Contains(t, string(arts[2].Content), "// Code generated by deviser")
	assert.Contains(t, string(arts[2].Content), "\"strconv\"")
}
