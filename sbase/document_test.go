package sbase_test

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbmlteam/deviser/sbase"
	"github.com/sbmlteam/deviser/schema"
)

const (
	coreL3V1   = "http://www.sbml.org/sbml/level3/version1/core"
	distribURI = "http://www.sbml.org/sbml/level3/version1/distrib/version1"
	qualURI    = "http://www.sbml.org/sbml/level3/version1/qual/version1"
)

func distribDoc(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<sbml xmlns="` + coreL3V1 + `" xmlns:distrib="` + distribURI + `" level="3" version="1" distrib:required="true">
  <model>
    <distrib:listOfDistributions>
` + body + `
    </distrib:listOfDistributions>
  </model>
</sbml>
`
}

func codes(log *sbase.ErrorLog) []int {
	var out []int
	for _, e := range log.Errors() {
		out = append(out, e.Code)
	}
	return out
}

func TestReadDuplicateChild(t *testing.T) {
	b := loadDistrib(t)
	doc, err := sbase.ReadDocumentString(distribDoc(`
      <distrib:betaDistribution distrib:id="b1">
        <distrib:alpha distrib:value="1"/>
        <distrib:alpha distrib:value="2"/>
        <distrib:beta distrib:value="3"/>
      </distrib:betaDistribution>`), b)
	require.NoError(t, err)

	want := b.Errors.ClassCode("BetaDistribution", sbase.RuleElements)
	assert.Equal(t, []int{want}, codes(doc.Log()))

	beta := doc.Host("Model").List("distribution").Get(0)
	require.NotNil(t, beta)
	assert.Equal(t, "BetaDistribution", beta.ClassName())
	assert.Equal(t, 2.0, mustDouble(t, beta.Child("alpha"), "value"))
	assert.Same(t, beta, beta.Child("alpha").Parent())
}

func TestReadProblems(t *testing.T) {
	b := loadDistrib(t)
	et := b.Errors

	tests := []struct {
		name string
		doc  string
		want []int
	}{
		{
			name: "clean",
			doc: distribDoc(`
      <distrib:categoricalDistribution distrib:id="c">
        <distrib:listOfCategories>
          <distrib:category distrib:probability="1"/>
        </distrib:listOfCategories>
      </distrib:categoricalDistribution>`),
		},
		{
			name: "unprefixed attributes",
			doc: distribDoc(`
      <distrib:categoricalDistribution id="c">
        <distrib:listOfCategories>
          <distrib:category probability="1" rank="2"/>
        </distrib:listOfCategories>
      </distrib:categoricalDistribution>`),
		},
		{
			name: "missing required attribute",
			doc: distribDoc(`
      <distrib:categoricalDistribution>
        <distrib:listOfCategories>
          <distrib:category distrib:rank="1"/>
        </distrib:listOfCategories>
      </distrib:categoricalDistribution>`),
			want: []int{et.ClassCode("Category", sbase.RuleAttributes)},
		},
		{
			name: "bad unsigned value",
			doc: distribDoc(`
      <distrib:categoricalDistribution>
        <distrib:listOfCategories>
          <distrib:category distrib:probability="1" distrib:rank="-1"/>
        </distrib:listOfCategories>
      </distrib:categoricalDistribution>`),
			want: []int{et.ClassCode("Category", sbase.RuleAttributeValue)},
		},
		{
			name: "bad id",
			doc: distribDoc(`
      <distrib:betaDistribution distrib:id="1b">
        <distrib:alpha/>
        <distrib:beta/>
      </distrib:betaDistribution>`),
			want: []int{et.PackageCode(sbase.IDSyntaxRule)},
		},
		{
			name: "unknown attribute",
			doc: distribDoc(`
      <distrib:betaDistribution distrib:shape="2">
        <distrib:alpha/>
        <distrib:beta/>
      </distrib:betaDistribution>`),
			want: []int{et.ClassCode("BetaDistribution", sbase.RuleAttributes)},
		},
		{
			name: "missing required child",
			doc: distribDoc(`
      <distrib:betaDistribution>
        <distrib:alpha/>
      </distrib:betaDistribution>`),
			want: []int{et.ClassCode("BetaDistribution", sbase.RuleElements)},
		},
		{
			name: "missing required list",
			doc:  distribDoc(`<distrib:categoricalDistribution/>`),
			want: []int{et.ClassCode("CategoricalDistribution", sbase.RuleElements)},
		},
		{
			name: "empty required list",
			doc: distribDoc(`
      <distrib:categoricalDistribution>
        <distrib:listOfCategories/>
      </distrib:categoricalDistribution>`),
			want: []int{et.ClassCode("CategoricalDistribution", sbase.RuleElements)},
		},
		{
			name: "unknown element",
			doc: distribDoc(`
      <distrib:betaDistribution>
        <distrib:alpha/>
        <distrib:beta/>
        <distrib:gamma/>
      </distrib:betaDistribution>`),
			want: []int{et.ClassCode("BetaDistribution", sbase.RuleElements)},
		},
		{
			name: "core element in package object",
			doc: distribDoc(`
      <distrib:betaDistribution>
        <distrib:alpha/>
        <distrib:beta/>
        <parameter/>
        <notes/>
      </distrib:betaDistribution>`),
			want: []int{et.ClassCode("BetaDistribution", sbase.RuleCoreElements)},
		},
		{
			name: "missing required flag",
			doc:  `<sbml xmlns="` + coreL3V1 + `" xmlns:distrib="` + distribURI + `" level="3" version="1"/>`,
			want: []int{et.PackageCode(sbase.AttributeRequiredMissing)},
		},
		{
			name: "required flag not boolean",
			doc:  `<sbml xmlns="` + coreL3V1 + `" xmlns:distrib="` + distribURI + `" level="3" version="1" distrib:required="yes"/>`,
			want: []int{et.PackageCode(sbase.AttributeRequiredMustBeBoolean)},
		},
		{
			name: "required flag wrong value",
			doc:  `<sbml xmlns="` + coreL3V1 + `" xmlns:distrib="` + distribURI + `" level="3" version="1" distrib:required="false"/>`,
			want: []int{et.PackageCode(sbase.AttributeRequiredMustHaveValue)},
		},
		{
			name: "level and namespace disagree",
			doc:  `<sbml xmlns="` + coreL3V1 + `" level="2" version="4"/>`,
			want: []int{sbase.CodeInvalidLevelVersion},
		},
		{
			name: "wrong root",
			doc:  `<model xmlns="` + coreL3V1 + `"/>`,
			want: []int{sbase.CodeInvalidRootElement},
		},
		{
			name: "truncated",
			doc:  `<sbml xmlns="` + coreL3V1 + `" level="3" version="1"><model>`,
			want: []int{sbase.CodeNotWellFormed},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := sbase.ReadDocumentString(tt.doc, b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, codes(doc.Log()))
		})
	}
}

func TestReadLocations(t *testing.T) {
	b := loadDistrib(t)
	doc, err := sbase.ReadDocumentString(distribDoc(`      <distrib:categoricalDistribution/>`), b)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Log().Len())
	e := doc.Log().At(0)
	assert.Equal(t, 5, e.Line)
	assert.Equal(t, sbase.SeverityError, e.Severity)
	assert.Contains(t, e.Detail, "listOfCategories")
}

func buildDistrib(t *testing.T, b *sbase.Binding) *sbase.Document {
	t.Helper()
	doc := sbase.NewDocument(b)
	model := doc.Host("Model")
	require.NotNil(t, model)
	require.Same(t, model, doc.Host("Model"))
	assert.Same(t, doc.Root(), doc.Host("SBMLDocument"))
	assert.Nil(t, doc.Host("Category"))

	dists := model.List("distribution")
	cat, st := dists.Create("CategoricalDistribution")
	require.Equal(t, sbase.OperationSuccess, st)
	cat.SetAttributeString("id", "cat")
	cat.SetAttributeString("name", "dice & <co>")
	for i, p := range []float64{0.25, 0.75} {
		c, st := cat.List("category").Create("")
		require.Equal(t, sbase.OperationSuccess, st)
		c.SetAttributeDouble("probability", p)
		c.SetAttributeUint("rank", uint(i))
		c.SetArray("values", []float64{float64(i), 1.5})
	}

	beta, st := dists.Create("BetaDistribution")
	require.Equal(t, sbase.OperationSuccess, st)
	beta.SetAttributeString("id", "beta")
	beta.SetAttributeBool("lowerTruncated", true)
	beta.SetMetaID("m_beta")
	alpha, _ := beta.CreateChild("alpha", "")
	alpha.SetAttributeDouble("value", 2)
	betaValue, _ := beta.CreateChild("beta", "")
	betaValue.SetAttributeString("var", "cat")
	return doc
}

func TestWriteDocument(t *testing.T) {
	b := loadDistrib(t)
	doc := buildDistrib(t, b)

	out, err := sbase.WriteDocumentString(doc)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`+"\n<sbml "))
	assert.Contains(t, out, `<sbml xmlns="`+coreL3V1+`" xmlns:distrib="`+distribURI+`" level="3" version="1" distrib:required="true">`)
	assert.Contains(t, out, `<distrib:categoricalDistribution distrib:id="cat" distrib:name="dice &amp; &lt;co&gt;">`)
	assert.Contains(t, out, `<distrib:category distrib:rank="1" distrib:probability="0.75" distrib:values="1 1.5">`)
	assert.Contains(t, out, `<distrib:betaDistribution metaid="m_beta" distrib:id="beta" distrib:lowerTruncated="true">`)
	assert.Contains(t, out, `<distrib:beta distrib:var="cat">`)

	// children follow declaration order
	assert.Less(t, strings.Index(out, "<distrib:alpha"), strings.Index(out, "<distrib:beta "))
	assert.Less(t, strings.Index(out, "categoricalDistribution"), strings.Index(out, "betaDistribution"))
}

func TestRoundTrip(t *testing.T) {
	b := loadDistrib(t)
	first, err := sbase.WriteDocumentString(buildDistrib(t, b))
	require.NoError(t, err)

	doc, err := sbase.ReadDocumentString(first, b)
	require.NoError(t, err)
	assert.Zero(t, doc.Log().Len(), "%v", doc.Log().Errors())

	second, err := sbase.WriteDocumentString(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValidate(t *testing.T) {
	pkg, err := schema.Load("../schema/testdata/qual.xml")
	require.NoError(t, err)
	b, err := sbase.Bind(pkg, 1)
	require.NoError(t, err)

	doc, err := sbase.ReadDocumentString(`<?xml version="1.0" encoding="UTF-8"?>
<sbml xmlns="`+coreL3V1+`" xmlns:qual="`+qualURI+`" level="3" version="1" qual:required="true">
  <model>
    <qual:listOfQualitativeSpecies>
      <qual:qualitativeSpecies qual:id="A" qual:compartment="c" qual:constant="false"/>
      <qual:qualitativeSpecies qual:id="B" qual:compartment="c" qual:constant="false"/>
    </qual:listOfQualitativeSpecies>
    <qual:listOfTransitions>
      <qual:transition qual:id="A">
        <qual:listOfInputs>
          <qual:input qual:qualitativeSpecies="B" qual:sign="positive"/>
          <qual:input qual:qualitativeSpecies="Z"/>
        </qual:listOfInputs>
      </qual:transition>
    </qual:listOfTransitions>
  </model>
</sbml>`, b)
	require.NoError(t, err)
	require.Zero(t, doc.Log().Len(), "%v", doc.Log().Errors())

	log := sbase.Validate(doc)
	assert.Equal(t, []int{
		b.Errors.PackageCode(sbase.DuplicateComponentID),
		b.Errors.ClassCode("Input", sbase.RuleReference),
	}, codes(log))
	assert.Zero(t, doc.Log().Len())

	input := doc.Host("Model").List("transition").Get(0).List("input").Get(1)
	require.Equal(t, sbase.OperationSuccess, input.SetAttributeString("qualitativeSpecies", "A"))
	assert.Equal(t, []int{b.Errors.PackageCode(sbase.DuplicateComponentID)}, codes(sbase.Validate(doc)))

	_, st := input.GetAttributeString("sign")
	assert.Equal(t, sbase.OperationSuccess, st)
	assert.Equal(t, sbase.InvalidAttributeValue, input.SetAttributeString("sign", "sideways"))
}

func loadQual(t *testing.T) *sbase.Binding {
	t.Helper()
	pkg, err := schema.Load("../schema/testdata/qual.xml")
	require.NoError(t, err)
	b, err := sbase.Bind(pkg, 1)
	require.NoError(t, err)
	return b
}

func TestIntAttribute(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		want  sbase.Status
	}{
		{name: "zero", value: 0, want: sbase.OperationSuccess},
		{name: "negative", value: -7, want: sbase.OperationSuccess},
		{name: "lower bound", value: math.MinInt32, want: sbase.OperationSuccess},
		{name: "upper bound", value: math.MaxInt32 - 1, want: sbase.OperationSuccess},
		{name: "sentinel", value: sbase.UnsetInt, want: sbase.InvalidAttributeValue},
		{name: "below int32", value: math.MinInt32 - 1, want: sbase.InvalidAttributeValue},
		{name: "above int32", value: 1 << 40, want: sbase.InvalidAttributeValue},
	}
	b := loadQual(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newObject(t, b, "Transition")
			v, st := tr.GetAttributeInt("priority")
			assert.Equal(t, sbase.OperationSuccess, st)
			assert.Equal(t, sbase.UnsetInt, v)

			assert.Equal(t, tt.want, tr.SetAttributeInt("priority", int(tt.value)))
			v, _ = tr.GetAttributeInt("priority")
			if tt.want != sbase.OperationSuccess {
				assert.False(t, tr.IsSetAttribute("priority"))
				assert.Equal(t, sbase.UnsetInt, v)
				return
			}
			assert.True(t, tr.IsSetAttribute("priority"))
			assert.Equal(t, int(tt.value), v)

			assert.Equal(t, sbase.OperationSuccess, tr.UnsetAttribute("priority"))
			assert.False(t, tr.IsSetAttribute("priority"))
		})
	}
}

func TestUintAttributeRejectsSentinel(t *testing.T) {
	// generated C++ initializes unsigned members to SBML_INT_MAX
	assert.EqualValues(t, math.MaxInt32, sbase.UnsetUint)

	c := newObject(t, loadDistrib(t), "Category")
	assert.Equal(t, sbase.InvalidAttributeValue, c.SetAttributeUint("rank", sbase.UnsetUint))
	assert.False(t, c.IsSetAttribute("rank"))
	assert.Equal(t, sbase.OperationSuccess, c.SetAttributeUint("rank", sbase.UnsetUint-1))
	v, _ := c.GetAttributeUint("rank")
	assert.Equal(t, uint(sbase.UnsetUint-1), v)
}

func TestIntAttributeRoundTrip(t *testing.T) {
	b := loadQual(t)
	for _, value := range []int{math.MinInt32, -1, 0, math.MaxInt32 - 1} {
		doc := sbase.NewDocument(b)
		tr, st := doc.Host("Model").List("transition").Create("")
		require.Equal(t, sbase.OperationSuccess, st)
		require.Equal(t, sbase.OperationSuccess, tr.SetAttributeInt("priority", value))

		out, err := sbase.WriteDocumentString(doc)
		require.NoError(t, err)
		assert.Contains(t, out, `qual:order="`+strconv.Itoa(value)+`"`)

		back, err := sbase.ReadDocumentString(out, b)
		require.NoError(t, err)
		require.Zero(t, back.Log().Len(), "%v", back.Log().Errors())
		v, st := back.Host("Model").List("transition").Get(0).GetAttributeInt("priority")
		assert.Equal(t, sbase.OperationSuccess, st)
		assert.Equal(t, value, v)
	}
}

func TestReadIntAttributeOutOfRange(t *testing.T) {
	b := loadQual(t)
	for _, raw := range []string{"2147483647", "2147483648", "-2147483649", "high"} {
		doc, err := sbase.ReadDocumentString(`<?xml version="1.0" encoding="UTF-8"?>
<sbml xmlns="`+coreL3V1+`" xmlns:qual="`+qualURI+`" level="3" version="1" qual:required="true">
  <model>
    <qual:listOfTransitions>
      <qual:transition qual:order="`+raw+`"/>
    </qual:listOfTransitions>
  </model>
</sbml>`, b)
		require.NoError(t, err)
		assert.Equal(t, 1, doc.Log().Len(), raw)
		tr := doc.Host("Model").List("transition").Get(0)
		assert.False(t, tr.IsSetAttribute("priority"), raw)
	}
}
