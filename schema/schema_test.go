package schema_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbmlteam/deviser/schema"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    schema.Kind
		wantErr bool
	}{
		{in: "boolean", want: schema.KindBool},
		{in: "bool", want: schema.KindBool},
		{in: "Integer", want: schema.KindInt},
		{in: "unsigned int", want: schema.KindUInt},
		{in: "non-negative integer", want: schema.KindUInt},
		{in: "double", want: schema.KindDouble},
		{in: "ID", want: schema.KindSId},
		{in: "SIdRef", want: schema.KindSIdRef},
		{in: "IDREF", want: schema.KindSIdRef},
		{in: "array", want: schema.KindDoubleArray},
		{in: "enum", want: schema.KindEnum},
		{in: "element", want: schema.KindElement},
		{in: "lo_element", want: schema.KindListOf},
		{in: "  string ", want: schema.KindString},
		{in: "complex", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := schema.ParseKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, schema.KindInvalid, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadYAML(t *testing.T) {
	pkg, err := schema.Load("testdata/distrib.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Distrib", pkg.Prefix)
	assert.Equal(t, "SBML", pkg.Language.Name)
	assert.Equal(t, "SBase", pkg.Language.BaseClass)

	v, err := pkg.SelectVersion(0)
	require.NoError(t, err)
	assert.Equal(t, "http://www.sbml.org/sbml/level3/version1/distrib/version1", pkg.URI(v))

	cat := v.Class("Category")
	require.NotNil(t, cat)
	assert.Equal(t, "category", cat.ElementName)
	assert.Equal(t, "SBML_DISTRIB_CATEGORY", cat.TypeCode)
	assert.Equal(t, "ListOfCategories", cat.ListOfName())
	assert.Equal(t, "listOfCategories", cat.ListOfElementName())
	assert.Equal(t, schema.KindUInt, cat.Attributes[1].Kind())

	beta := v.Class("BetaDistribution")
	require.NotNil(t, beta)
	chain := v.Chain(beta)
	require.Len(t, chain, 3)
	assert.Equal(t, "Distribution", chain[2].Name)
	assert.True(t, v.IsA("BetaDistribution", "Distribution"))
	assert.False(t, v.IsA("Category", "Distribution"))
	assert.True(t, v.HasID(beta))

	attrs := v.AllAttributes(beta)
	names := make([]string, 0, len(attrs))
	for _, a := range attrs {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"id", "name", "lowerTruncated", "alpha", "beta"}, names)

	derived := v.Derived("Distribution")
	require.Len(t, derived, 2)
	assert.Equal(t, "BetaDistribution", derived[0].Name)
	assert.Equal(t, "CategoricalDistribution", derived[1].Name)

	targets := v.ListTargets()
	require.Len(t, targets, 2)
	assert.Equal(t, "Distribution", targets[0].Name)
	assert.Equal(t, "Category", targets[1].Name)
}

func TestLoadXML(t *testing.T) {
	pkg, err := schema.Load("testdata/qual.xml")
	require.NoError(t, err)

	assert.Equal(t, "Qualitative Models", pkg.FullName)
	assert.Equal(t, 3000000, pkg.Offset)
	assert.True(t, pkg.Required)

	v, err := pkg.SelectVersion(1)
	require.NoError(t, err)
	require.Len(t, v.Classes, 3)

	qs := v.Class("QualitativeSpecies")
	require.NotNil(t, qs)
	assert.Equal(t, "ListOfQualitativeSpecies", qs.ListOfName())
	assert.Equal(t, schema.KindUInt, qs.Attributes[3].Kind())

	tr := v.Class("Transition")
	require.NotNil(t, tr)
	require.Len(t, tr.Attributes, 3)
	prio := tr.Attributes[2]
	assert.Equal(t, schema.KindInt, prio.Kind())
	assert.Equal(t, "order", prio.XMLName)
	assert.Equal(t, "order", prio.XML())
	assert.Equal(t, "input", tr.Attributes[1].XML())

	sign := v.Enum("Sign")
	require.NotNil(t, sign)
	assert.True(t, sign.Has("dual"))
	assert.False(t, sign.Has("INPUT_SIGN_DUAL"))

	plugins := v.PluginsFor("Model")
	require.Len(t, plugins, 1)
	require.Len(t, plugins[0].Attributes, 2)
	assert.Equal(t, schema.KindListOf, plugins[0].Attributes[0].Kind())
	assert.Equal(t, "listOfQualitativeSpecies", v.ChildXMLName(&plugins[0].Attributes[0]))
}

func TestParseFormats(t *testing.T) {
	tomlSrc := `
name = "tiny"
offset = 100

[[versions]]
level = 3
version = 2
pkgVersion = 1

[[versions.classes]]
name = "Thing"

[[versions.classes.attributes]]
name = "id"
type = "SId"
required = true
`
	jsonSrc := `{"name":"tiny","offset":100,"versions":[{"level":3,"version":2,"pkgVersion":1,
"classes":[{"name":"Thing","attributes":[{"name":"id","type":"SId","required":true}]}]}]}`

	for _, tc := range []struct {
		name   string
		format schema.Format
		src    string
	}{
		{"toml", schema.FormatTOML, tomlSrc},
		{"json", schema.FormatJSON, jsonSrc},
	} {
		t.Run(tc.name, func(t *testing.T) {
			pkg, err := schema.Parse([]byte(tc.src), tc.format)
			require.NoError(t, err)
			v, err := pkg.SelectVersion(0)
			require.NoError(t, err)
			assert.Equal(t, "http://www.sbml.org/sbml/level3/version2/tiny/version1", pkg.URI(v))
			th := v.Class("Thing")
			require.NotNil(t, th)
			assert.Equal(t, schema.KindSId, th.Attributes[0].Kind())
			assert.True(t, th.Attributes[0].Required)
		})
	}
}

func TestValidateProblems(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "unknown type",
			src:  `{"name":"p","versions":[{"classes":[{"name":"A","attributes":[{"name":"x","type":"quaternion"}]}]}]}`,
			want: []string{`unsupported attribute type "quaternion"`},
		},
		{
			name: "cycle",
			src:  `{"name":"p","versions":[{"classes":[{"name":"A","baseClass":"B"},{"name":"B","baseClass":"A"}]}]}`,
			want: []string{"inheritance cycle"},
		},
		{
			name: "unknown base and element",
			src:  `{"name":"p","versions":[{"classes":[{"name":"A","baseClass":"Nope","attributes":[{"name":"c","type":"element","element":"Missing"}]}]}]}`,
			want: []string{"unknown base class Nope", "unknown element class Missing"},
		},
		{
			name: "attribute shadowed along chain",
			src:  `{"name":"p","versions":[{"classes":[{"name":"A","attributes":[{"name":"id","type":"SId"}]},{"name":"B","baseClass":"A","attributes":[{"name":"id","type":"string"}]}]}]}`,
			want: []string{"attribute declared in both"},
		},
		{
			name: "duplicate class",
			src:  `{"name":"p","versions":[{"classes":[{"name":"A"},{"name":"A"}]}]}`,
			want: []string{"duplicate class name"},
		},
		{
			name: "unknown enum",
			src:  `{"name":"p","versions":[{"classes":[{"name":"A","attributes":[{"name":"s","type":"enum","element":"Sign"}]}]}]}`,
			want: []string{"unknown enumeration Sign"},
		},
		{
			name: "bad level",
			src:  `{"name":"p","versions":[{"level":4,"version":1}]}`,
			want: []string{"level 4 version 1 is not a SBML namespace"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.Parse([]byte(tt.src), schema.FormatJSON)
			require.Error(t, err)
			assert.True(t, errors.Is(err, schema.ErrInvalidSchema))
			assert.True(t, schema.IsSchemaError(err))
			problems := schema.Problems(err)
			require.NotEmpty(t, problems)
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestSelectVersion(t *testing.T) {
	src := `{"name":"p","versions":[{"pkgVersion":1},{"pkgVersion":2}]}`
	pkg, err := schema.Parse([]byte(src), schema.FormatJSON)
	require.NoError(t, err)

	v, err := pkg.SelectVersion(0)
	require.NoError(t, err)
	assert.Equal(t, 2, v.PkgVersion)

	v, err = pkg.SelectVersion(1)
	require.NoError(t, err)
	assert.Equal(t, 1, v.PkgVersion)

	got, ok := pkg.VersionForURI("http://www.sbml.org/sbml/level3/version1/p/version2")
	require.True(t, ok)
	assert.Equal(t, 2, got.PkgVersion)

	_, err = pkg.SelectVersion(7)
	assert.ErrorIs(t, err, schema.ErrInvalidSchema)
}

func TestNaming(t *testing.T) {
	tests := []struct {
		in, snake, upperFirst, lowerFirst string
	}{
		{"UncertValue", "UNCERT_VALUE", "UncertValue", "uncertValue"},
		{"SBMLDocument", "SBML_DOCUMENT", "SBMLDocument", "sBMLDocument"},
		{"category", "CATEGORY", "Category", "category"},
		{"FluxObjective2", "FLUX_OBJECTIVE2", "FluxObjective2", "fluxObjective2"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.snake, schema.SnakeUpper(tt.in))
			assert.Equal(t, tt.upperFirst, schema.UpperFirst(tt.in))
			assert.Equal(t, tt.lowerFirst, schema.LowerFirst(tt.in))
		})
	}
	assert.Equal(t, "Categories", schema.Plural("Category"))
}
