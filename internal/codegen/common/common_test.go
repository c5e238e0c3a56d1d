package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbmlteam/deviser/schema"
)

func TestCaseConversions(t *testing.T) {
	tests := []struct {
		in, pascal, camel, snake, screaming string
	}{
		{"lower_truncated", "LowerTruncated", "lowerTruncated", "lower_truncated", "LOWER_TRUNCATED"},
		{"listOfCategories", "ListOfCategories", "listOfCategories", "list_of_categories", "LIST_OF_CATEGORIES"},
		{"UncertValue", "UncertValue", "uncertValue", "uncert_value", "UNCERT_VALUE"},
		{"SBMLDocument", "SBMLDocument", "sBMLDocument", "sbml_document", "SBML_DOCUMENT"},
		{"", "", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.pascal, ToPascalCase(tt.in))
			assert.Equal(t, tt.camel, ToCamelCase(tt.in))
			assert.Equal(t, tt.snake, ToSnakeCase(tt.in))
			assert.Equal(t, tt.screaming, ToScreamingSnakeCase(tt.in))
		})
	}
}

func TestExtractPrefix(t *testing.T) {
	assert.Equal(t, "INPUT_SIGN_", ExtractPrefix([]string{"INPUT_SIGN_POSITIVE", "INPUT_SIGN_NEGATIVE", "INPUT_SIGN_DUAL"}))
	assert.Equal(t, "", ExtractPrefix([]string{"ALPHA", "BETA"}))
	assert.Equal(t, "", ExtractPrefix(nil))
	assert.Equal(t, "mId", MemberName("id"))
}

func TestEnumNames(t *testing.T) {
	tests := []struct {
		name    string
		enum    schema.Enum
		invalid string
		members []EnumMember
	}{
		{
			name: "explicit constants",
			enum: schema.Enum{Name: "Sign", Values: []schema.EnumValue{
				{Name: "INPUT_SIGN_POSITIVE", Value: "positive"},
				{Name: "INPUT_SIGN_NEGATIVE", Value: "negative"},
			}},
			invalid: "INPUT_SIGN_INVALID",
			members: []EnumMember{
				{Const: "INPUT_SIGN_POSITIVE", Ident: "SignPositive", Value: "positive"},
				{Const: "INPUT_SIGN_NEGATIVE", Ident: "SignNegative", Value: "negative"},
			},
		},
		{
			name: "derived constants",
			enum: schema.Enum{Name: "FunctionKind", Values: []schema.EnumValue{
				{Value: "1stOrder"},
				{Value: "secondOrder"},
			}},
			invalid: "FUNCTION_KIND_INVALID",
			members: []EnumMember{
				{Const: "FUNCTION_KIND_1ST_ORDER", Ident: "FunctionKindNum1stOrder", Value: "1stOrder"},
				{Const: "FUNCTION_KIND_SECOND_ORDER", Ident: "FunctionKindSecondOrder", Value: "secondOrder"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.enum.Name+"_t", EnumType(&tt.enum))
			assert.Equal(t, tt.invalid, EnumInvalid(&tt.enum))
			assert.Equal(t, tt.members, EnumMembers(&tt.enum))
		})
	}
}

func TestVersion(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = ""
	v, err := GetVersion()
	require.NoError(t, err)
	assert.Equal(t, "0.0.1-dev", v)
	assert.Equal(t, "deviser 0.0.1", Stamp())

	Version = "v1.4.2-dirty"
	v, err = GetVersion()
	require.NoError(t, err)
	assert.Equal(t, "1.4.2-dirty", v)
	major, minor, patch := ParseVersion(v)
	assert.Equal(t, []int{1, 4, 2}, []int{major, minor, patch})

	Version = "garbage"
	_, err = GetVersion()
	assert.Error(t, err)
	assert.Equal(t, "deviser (unknown version)", Stamp())
}

func distribPackage(t *testing.T) *schema.Package {
	t.Helper()
	pkg, err := schema.Load("../../../schema/testdata/distrib.yaml")
	require.NoError(t, err)
	return pkg
}

func TestFileHeader(t *testing.T) {
	pkg := distribPackage(t)
	h := FileHeader("//", pkg)
	lines := strings.Split(strings.TrimSuffix(h, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "// Code generated by deviser"))
	assert.Contains(t, lines[0], "Distributions package. DO NOT EDIT.")
	assert.Equal(t, "//", lines[1])
	assert.Equal(t, "// This file is part of the distrib package test suite.", lines[2])
}

func TestReadmeAndLicense(t *testing.T) {
	pkg := distribPackage(t)
	v, err := pkg.SelectVersion(0)
	require.NoError(t, err)

	readme, err := Readme(pkg, v, "C++", "cpp")
	require.NoError(t, err)
	assert.Equal(t, "cpp/README.md", readme.Path)
	assert.Contains(t, string(readme.Content), "# Distributions (distrib) C++")
	assert.Contains(t, string(readme.Content), "`http://www.sbml.org/sbml/level3/version1/distrib/version1`")
	assert.Contains(t, string(readme.Content), "- **Distribution** (abstract): element `distribution`, derived from SBase")
	assert.Contains(t, string(readme.Content), "- **Model**: 1 attribute(s) and child element(s)")

	lic := License(pkg, "")
	assert.Equal(t, "LICENSE.txt", lic.Path)
	assert.Equal(t, "This file is part of the distrib package test suite.\n", string(lic.Content))

	pkg.License = nil
	assert.Contains(t, string(License(pkg, "go/").Content), "MIT License")
	assert.Equal(t, "go/LICENSE.txt", License(pkg, "go/").Path)
}
