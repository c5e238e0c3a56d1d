package sbase_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbmlteam/deviser/sbase"
	"github.com/sbmlteam/deviser/schema"
)

func loadDistrib(t *testing.T) *sbase.Binding {
	t.Helper()
	pkg, err := schema.Load("../schema/testdata/distrib.yaml")
	require.NoError(t, err)
	b, err := sbase.Bind(pkg, 0)
	require.NoError(t, err)
	return b
}

func newObject(t *testing.T, b *sbase.Binding, class string) *sbase.Object {
	t.Helper()
	o, err := b.New(class)
	require.NoError(t, err)
	return o
}

func TestNamespacesRoundTrip(t *testing.T) {
	lang := schema.DefaultLanguage()
	for _, e := range lang.Namespaces {
		ns := sbase.NewNamespaces(&lang, uint(e.Level), uint(e.Version))
		assert.Equal(t, uint(e.Level), ns.Level())
		assert.Equal(t, uint(e.Version), ns.Version())
		assert.Equal(t, e.URI, ns.URI())
		uri, ok := ns.XMLNamespaces().URI("")
		assert.True(t, ok)
		assert.Equal(t, e.URI, uri)
		assert.True(t, ns.IsValidCombination())
	}
}

func TestNamespacesInvalidPair(t *testing.T) {
	lang := schema.DefaultLanguage()
	for _, pair := range [][2]uint{{4, 1}, {3, 9}, {0, 0}, {2, 6}} {
		ns := sbase.NewNamespaces(&lang, pair[0], pair[1])
		assert.Equal(t, 0, ns.XMLNamespaces().Len())
		assert.Equal(t, sbase.InvalidLevel, ns.Level())
		assert.Equal(t, sbase.InvalidLevel, ns.Version())
		assert.False(t, ns.Valid())
	}
}

func TestNewObject(t *testing.T) {
	b := loadDistrib(t)
	lang := b.Package.Language

	_, err := sbase.NewObject(b, "Category", sbase.NewNamespaces(&lang, 4, 1))
	assert.ErrorIs(t, err, sbase.ErrIncompatibleNamespaces)

	_, err = sbase.NewObject(b, "Category", sbase.NewNamespaces(&lang, 2, 4))
	assert.ErrorIs(t, err, sbase.ErrIncompatibleNamespaces)

	_, err = b.New("Distribution")
	assert.ErrorIs(t, err, sbase.ErrAbstractClass)

	_, err = b.New("Nope")
	assert.ErrorIs(t, err, sbase.ErrUnknownClass)

	o, err := b.New("BetaDistribution")
	require.NoError(t, err)
	assert.Equal(t, "betaDistribution", o.ElementName())
	assert.Equal(t, "SBML_DISTRIB_BETA_DISTRIBUTION", o.TypeCode())
	assert.True(t, o.IsA("Distribution"))
	assert.False(t, o.IsA("Category"))
}

func TestRequiredAttributes(t *testing.T) {
	b := loadDistrib(t)
	c := newObject(t, b, "Category")

	assert.False(t, c.HasRequiredAttributes())
	require.Equal(t, sbase.OperationSuccess, c.SetAttributeDouble("probability", 0.25))
	assert.True(t, c.HasRequiredAttributes())
	require.Equal(t, sbase.OperationSuccess, c.UnsetAttribute("probability"))
	assert.False(t, c.HasRequiredAttributes())
	assert.True(t, math.IsNaN(mustDouble(t, c, "probability")))
}

func mustDouble(t *testing.T, o *sbase.Object, name string) float64 {
	t.Helper()
	v, st := o.GetAttributeDouble(name)
	require.Equal(t, sbase.OperationSuccess, st)
	return v
}

func TestCategoryRank(t *testing.T) {
	b := loadDistrib(t)
	c := newObject(t, b, "Category")

	v, st := c.GetAttributeUint("rank")
	assert.Equal(t, sbase.OperationSuccess, st)
	assert.Equal(t, uint(sbase.UnsetUint), v)
	assert.False(t, c.IsSetAttribute("rank"))

	assert.Equal(t, sbase.OperationSuccess, c.SetAttributeUint("rank", 3))
	v, st = c.GetAttributeUint("rank")
	assert.Equal(t, sbase.OperationSuccess, st)
	assert.Equal(t, uint(3), v)
	assert.True(t, c.IsSetAttribute("rank"))

	_, st = c.GetAttributeInt("rank")
	assert.Equal(t, sbase.OperationFailed, st)
	assert.Equal(t, sbase.OperationFailed, c.SetAttributeString("rank", "3"))

	_, st = c.GetAttributeUint("colour")
	assert.Equal(t, sbase.UnexpectedAttribute, st)
	assert.Equal(t, sbase.UnexpectedAttribute, c.SetAttributeBool("colour", true))

	assert.Equal(t, sbase.OperationSuccess, c.UnsetAttribute("rank"))
	assert.False(t, c.IsSetAttribute("rank"))
}

func TestStringAttributes(t *testing.T) {
	b := loadDistrib(t)
	u := newObject(t, b, "UncertValue")

	tests := []struct {
		name  string
		attr  string
		value string
		want  sbase.Status
	}{
		{"valid id", "id", "u1", sbase.OperationSuccess},
		{"id with leading digit", "id", "1u", sbase.InvalidAttributeValue},
		{"valid reference", "var", "x_2", sbase.OperationSuccess},
		{"reference with space", "var", "x 2", sbase.InvalidAttributeValue},
		{"double as string", "value", "1.0", sbase.OperationFailed},
		{"metaid", "metaid", "m1", sbase.OperationSuccess},
		{"sbo term", "sboTerm", "SBO:0000001", sbase.OperationSuccess},
		{"bad sbo term", "sboTerm", "SBO:1", sbase.InvalidAttributeValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, u.SetAttributeString(tt.attr, tt.value))
		})
	}

	assert.Equal(t, "u1", u.ID())
	assert.Equal(t, sbase.OperationSuccess, u.SetAttributeString("id", ""))
	assert.False(t, u.IsSetAttribute("id"))
	assert.Equal(t, 1, u.SBOTerm())
}

func TestSuperDelegation(t *testing.T) {
	b := loadDistrib(t)
	beta := newObject(t, b, "BetaDistribution")
	require.Equal(t, sbase.OperationSuccess, beta.SetAttributeString("id", "b1"))
	require.Equal(t, sbase.OperationSuccess, beta.SetAttributeBool("lowerTruncated", true))

	for _, name := range []string{"id", "name", "metaid", "unknown"} {
		t.Run(name, func(t *testing.T) {
			v1, st1 := beta.GetAttributeString(name)
			v2, st2 := beta.Super().GetAttributeString(name)
			assert.Equal(t, st1, st2)
			assert.Equal(t, v1, v2)
		})
	}

	v, st := beta.Super().GetAttributeBool("lowerTruncated")
	assert.Equal(t, sbase.OperationSuccess, st)
	assert.True(t, v)
}

func TestSetChild(t *testing.T) {
	b := loadDistrib(t)
	beta := newObject(t, b, "BetaDistribution")

	first := newObject(t, b, "UncertValue")
	first.SetAttributeDouble("value", 1)
	second := newObject(t, b, "UncertValue")
	second.SetAttributeDouble("value", 2)

	require.Equal(t, sbase.OperationSuccess, beta.SetChild("alpha", first))
	stored := beta.Child("alpha")
	require.NotNil(t, stored)
	assert.Same(t, beta, stored.Parent())
	assert.Nil(t, first.Parent())

	require.Equal(t, sbase.OperationSuccess, beta.SetChild("alpha", second))
	assert.Nil(t, stored.Parent())
	assert.Equal(t, 2.0, mustDouble(t, beta.Child("alpha"), "value"))
	assert.Equal(t, "alpha", beta.Child("alpha").ElementName())

	require.Equal(t, sbase.OperationSuccess, beta.UnsetChild("alpha"))
	assert.Nil(t, beta.Child("alpha"))
	assert.False(t, beta.HasRequiredElements())

	wrong := newObject(t, b, "Category")
	assert.Equal(t, sbase.InvalidObject, beta.SetChild("beta", wrong))
	assert.Equal(t, sbase.OperationFailed, beta.SetChild("lowerTruncated", first))
}

func TestListOfAppend(t *testing.T) {
	b := loadDistrib(t)
	cat := newObject(t, b, "CategoricalDistribution")
	l := cat.List("category")
	require.NotNil(t, l)
	assert.Equal(t, "listOfCategories", l.ElementName())

	item := newObject(t, b, "Category")
	assert.Equal(t, sbase.InvalidObject, l.Append(item))

	item.SetAttributeDouble("probability", 0.5)
	item.SetAttributeString("id", "c1")
	assert.Equal(t, sbase.OperationSuccess, l.Append(item))
	assert.Equal(t, sbase.DuplicateObjectID, l.Append(item))
	assert.Equal(t, sbase.OperationFailed, l.Append(nil))
	assert.Equal(t, sbase.InvalidObject, l.Append(newObject(t, b, "UncertValue")))

	created, st := l.Create("")
	require.Equal(t, sbase.OperationSuccess, st)
	created.SetAttributeString("id", "c2")
	assert.Equal(t, 2, l.Len())
	assert.Same(t, cat, l.Get(0).Parent())
	assert.NotNil(t, l.GetByID("c2"))

	_, st = l.Remove(5)
	assert.Equal(t, sbase.IndexExceedsSize, st)
	removed := l.RemoveByID("c1")
	require.NotNil(t, removed)
	assert.Nil(t, removed.Parent())
	assert.Equal(t, 1, l.Len())
}

func TestArrays(t *testing.T) {
	b := loadDistrib(t)
	c := newObject(t, b, "Category")

	assert.Equal(t, sbase.OperationSuccess, c.SetArray("values", []float64{1, 2.5}))
	got, st := c.GetArray("values")
	assert.Equal(t, sbase.OperationSuccess, st)
	assert.Equal(t, []float64{1, 2.5}, got)

	_, st = c.GetArray("rank")
	assert.Equal(t, sbase.OperationFailed, st)
	assert.Equal(t, sbase.OperationSuccess, c.SetArray("values", nil))
	assert.False(t, c.IsSetAttribute("values"))
}

func TestClone(t *testing.T) {
	b := loadDistrib(t)
	cat := newObject(t, b, "CategoricalDistribution")
	it, _ := cat.List("category").Create("")
	it.SetArray("values", []float64{1})

	c := cat.Clone()
	assert.Nil(t, c.Parent())
	c.List("category").Get(0).SetArray("values", []float64{9})
	got, _ := it.GetArray("values")
	assert.Equal(t, []float64{1}, got)
	assert.Same(t, c, c.List("category").Get(0).Parent())
}

func TestErrorTable(t *testing.T) {
	b := loadDistrib(t)
	et := b.Errors

	assert.Equal(t, 1, et.Position("Model"))
	assert.Equal(t, 5, et.Position("BetaDistribution"))
	assert.Equal(t, 1520604, et.ClassCode("BetaDistribution", sbase.RuleElements))
	assert.Equal(t, 0, et.ClassCode("Nope", sbase.RuleElements))

	d, ok := et.Lookup(1520604)
	require.True(t, ok)
	assert.Equal(t, "DistribBetaDistributionAllowedElements", d.Name)
	assert.Contains(t, d.Reference, "Section 3.7")

	d, ok = et.Lookup(et.PackageCode(sbase.AttributeRequiredMissing))
	require.True(t, ok)
	assert.Equal(t, "DistribAttributeRequiredMissing", d.Name)

	for _, e := range et.PackageEntries() {
		assert.Greater(t, e.Code, sbase.CodeInvalidRootElement)
	}
	assert.Equal(t, "UnknownError", et.Def(42).Name)
}

func TestIDs(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a", true},
		{"_a1", true},
		{"1a", false},
		{"a-b", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sbase.IsValidSId(tt.in))
		})
	}

	n, ok := sbase.ParseSBOTerm("SBO:0000064")
	assert.True(t, ok)
	assert.Equal(t, 64, n)
	assert.Equal(t, "SBO:0000064", sbase.FormatSBOTerm(64))
	_, ok = sbase.ParseSBOTerm("SBO:64")
	assert.False(t, ok)
}
