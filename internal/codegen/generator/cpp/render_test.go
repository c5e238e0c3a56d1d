package cpp

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbmlteam/deviser/internal/codegen/emit"
	"github.com/sbmlteam/deviser/internal/codegen/meta"
	"github.com/sbmlteam/deviser/schema"
)

func loadMetadata(t *testing.T, file string) *meta.Metadata {
	t.Helper()
	pkg, err := schema.Load("../../../../schema/testdata/" + file)
	require.NoError(t, err)
	md, err := meta.Build(pkg, 0)
	require.NoError(t, err)
	return md
}

func TestRenderClass(t *testing.T) {
	md := loadMetadata(t, "distrib.yaml")

	tests := []struct {
		name   string
		class  string
		header []string
		impl   []string
	}{
		{
			name:  "string and unsigned int",
			class: "Category",
			header: []string{
				"class LIBSBML_EXTERN Category : public SBase",
				"std::string mId;",
				"unsigned int mRank;",
				"bool mIsSetRank;",
				"const std::string& getId() const;",
				"int setId(const std::string& id);",
				"unsigned int getRank() const;",
				"bool isSetRank() const;",
				"int setRank(unsigned int rank);",
				"int unsetRank();",
			},
			impl: []string{
				"Category::getRank() const",
				", mRank (SBML_INT_MAX)",
				", mProbability (util_NaN())",
				"if (!(SyntaxChecker::isValidSBMLSId(id)))",
				"stream.writeAttribute(\"rank\", getPrefix(), mRank);",
				"Category_getRank(const Category_t *c)",
			},
		},
		{
			name:  "boolean",
			class: "ContinuousDistribution",
			header: []string{
				"class LIBSBML_EXTERN ContinuousDistribution : public Distribution",
				"bool getLowerTruncated() const;",
				"int setLowerTruncated(bool lowerTruncated);",
			},
			impl: []string{
				": Distribution(level, version, pkgVersion)",
				", mLowerTruncated (false)",
				", mIsSetLowerTruncated (false)",
				"return (cd != NULL) ? static_cast<int>(cd->getLowerTruncated()) : 0;",
			},
		},
		{
			name:  "double array",
			class: "Category",
			header: []string{
				"double* mValues;",
				"int mValuesLength;",
				"void getValues(double* outArray) const;",
				"int getValuesLength() const;",
				"int setValues(double* inArray, int arrayLength);",
			},
			impl: []string{
				"#include <sstream>",
				"memcpy(mValues, inArray, sizeof(double)*arrayLength);",
				"os << mValues[i];",
				"while (strStream >> val)",
			},
		},
		{
			name:  "owned singular child",
			class: "BetaDistribution",
			header: []string{
				"UncertValue* mAlpha;",
				"const UncertValue* getAlpha() const;",
				"UncertValue* getAlpha();",
				"bool isSetAlpha() const;",
				"int setAlpha(const UncertValue* alpha);",
				"UncertValue* createAlpha();",
				"int unsetAlpha();",
			},
			impl: []string{
				"if (name == \"alpha\")",
				"mAlpha = new UncertValue(distribns);",
				"mAlpha->setElementName(name);",
				"getErrorLog()->logPackageError(\"distrib\", DistribBetaDistributionAllowedElements,",
				"mAlpha = static_cast<UncertValue*>(alpha->clone());",
				"mAlpha->write(stream);",
			},
		},
		{
			name:  "owned list child",
			class: "CategoricalDistribution",
			header: []string{
				"ListOfCategories mCategory;",
				"const ListOfCategories* getListOfCategories() const;",
				"Category* getCategory(unsigned int n);",
				"Category* getCategory(const std::string& sid);",
				"int addCategory(const Category* category);",
				"unsigned int getNumCategories() const;",
				"Category* createCategory();",
				"Category* removeCategory(unsigned int n);",
			},
			impl: []string{
				", mCategory (level, version, pkgVersion)",
				"if (name == \"listOfCategories\")",
				"if (getNumCategories() > 0)",
				"mCategory.connectToParent(this);",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, impl, err := RenderClass(md, md.Class(tt.class))
			require.NoError(t, err)
			for _, want := range tt.header {
				assert.Contains(t, string(header), want)
			}
			for _, want := range tt.impl {
				assert.Contains(t, string(impl), want)
			}
		})
	}
}

func TestRenderClassDeterministic(t *testing.T) {
	md := loadMetadata(t, "distrib.yaml")
	for _, c := range md.Classes {
		h1, i1, err := RenderClass(md, c)
		require.NoError(t, err, c.Name)
		h2, i2, err := RenderClass(md, c)
		require.NoError(t, err, c.Name)
		assert.Equal(t, h1, h2, c.Name)
		assert.Equal(t, i1, i2, c.Name)
	}
}

func TestRenderAbstractClass(t *testing.T) {
	md := loadMetadata(t, "distrib.yaml")
	header, impl, err := RenderClass(md, md.Class("Distribution"))
	require.NoError(t, err)

	assert.Contains(t, string(header), "bool isBetaDistribution() const;")
	assert.Contains(t, string(header), "bool isCategoricalDistribution() const;")
	assert.NotContains(t, string(header), "Distribution_create(")
	assert.Contains(t, string(impl), "#include <sbml/packages/distrib/sbml/BetaDistribution.h>")
}

func TestRenderListOf(t *testing.T) {
	md := loadMetadata(t, "distrib.yaml")
	header, impl, err := RenderListOf(md, md.Class("Category"))
	require.NoError(t, err)

	for _, want := range []string{
		"class LIBSBML_EXTERN ListOfCategories : public ListOf",
		"Category* get(unsigned int n);",
		"const Category* get(const std::string& sid) const;",
		"int addCategory(const Category* category);",
		"unsigned int getNumCategories() const;",
		"Category* createCategory();",
		"ListOfCategories_getById(ListOf_t* lo, const char *sid);",
	} {
		assert.Contains(t, string(header), want)
	}
	for _, want := range []string{
		"static const string name = \"listOfCategories\";",
		"find_if(mItems.begin(), mItems.end(), IdEq<Category>(sid));",
		"return (tc == SBML_DISTRIB_CATEGORY);",
		"xmlns.add(DistribExtension::getXmlnsL3V1V1(), prefix);",
	} {
		assert.Contains(t, string(impl), want)
	}
	assert.NotContains(t, string(impl), "return ((tc == SBML_DISTRIB_CATEGORY));")
}

func TestRenderListOfAbstractItems(t *testing.T) {
	md := loadMetadata(t, "distrib.yaml")
	header, impl, err := RenderListOf(md, md.Class("Distribution"))
	require.NoError(t, err)

	assert.Contains(t, string(header), "BetaDistribution* createBetaDistribution();")
	assert.Contains(t, string(header), "CategoricalDistribution* createCategoricalDistribution();")
	assert.Contains(t, string(impl), "if (name == \"betaDistribution\")")
	assert.Contains(t, string(impl), "return ((tc == SBML_DISTRIB_BETA_DISTRIBUTION) || (tc == SBML_DISTRIB_CATEGORICAL_DISTRIBUTION));")
}

func TestRenderPlugin(t *testing.T) {
	md := loadMetadata(t, "distrib.yaml")
	require.Len(t, md.Plugins, 1)

	header, impl, err := RenderPlugin(md, md.Plugins[0])
	require.NoError(t, err)

	assert.Contains(t, string(header), "class LIBSBML_EXTERN DistribModelPlugin : public SBasePlugin")
	assert.Contains(t, string(header), "const ListOfDistributions* getListOfDistributions() const;")
	assert.Contains(t, string(header), "BetaDistribution* createBetaDistribution();")
	assert.NotContains(t, string(header), "mElementName")
	assert.Contains(t, string(impl), "if (prefix == targetPrefix)")
	assert.Contains(t, string(impl), "mDistribution.connectToParent(getParentSBMLObject());")
	assert.Contains(t, string(impl), "#include <sbml/Model.h>")
}

func TestCheckPair(t *testing.T) {
	ms := []method{
		{ret: "int", name: "getRank", isConst: true, body: []string{"return mRank;"}},
		{ret: "int", name: "setRank", params: []param{{typ: "int", name: "rank"}}, body: []string{"mRank = rank;", "return 0;"}},
	}
	render := func(ms []method) (string, string) {
		var h, i strings.Builder
		for _, m := range ms {
			h.WriteString(m.decl())
			i.WriteString(m.def("Category", ""))
		}
		return h.String(), i.String()
	}

	header, impl := render(ms)
	require.NoError(t, checkPair("Category", header, impl, ms, nil))

	tests := []struct {
		name   string
		header string
		impl   string
		want   string
	}{
		{name: "missing declaration", header: ms[1].decl(), impl: impl, want: "getRank declared 0 times"},
		{name: "duplicate definition", header: header, impl: impl + ms[0].def("Category", ""), want: "getRank defined 2 times"},
		{name: "stray definition", header: header, impl: impl + "int\nCategory::stray()\n{\n}\n", want: "3 definitions for 2 declarations"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkPair("Category", tt.header, tt.impl, ms, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCheckPairCAPI(t *testing.T) {
	fn := method{ret: "int", name: "Category_getRank", params: []param{{typ: "const Category_t *", name: "c"}},
		body: []string{"return c->getRank();"}}

	require.NoError(t, checkPair("Category", fn.cdecl("LIBSBML_EXTERN"), fn.def("", "LIBSBML_EXTERN"), nil, []method{fn}))

	err := checkPair("Category", "", fn.def("", "LIBSBML_EXTERN"), nil, []method{fn})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Category_getRank declared 0 times")
}

func TestMethodRendering(t *testing.T) {
	m := method{
		doc:     "Returns the rank.",
		ret:     "unsigned int",
		name:    "getRank",
		isConst: true,
		virtual: true,
		body:    []string{"return mRank;"},
	}
	assert.Equal(t, "virtual unsigned int getRank() const;", m.declLine())
	assert.Equal(t, "Category::getRank() const", m.defLine("Category"))
	assert.Equal(t, "/*\n * Returns the rank.\n */\nunsigned int\nCategory::getRank() const\n{\n  return mRank;\n}\n", m.def("Category", ""))

	ctor := method{
		name:   "Category",
		params: []param{{typ: "DistribPkgNamespaces *", name: "distribns"}},
		init:   []string{"SBase(distribns)", "mRank (SBML_INT_MAX)"},
	}
	assert.Equal(t, "Category(DistribPkgNamespaces *distribns);", ctor.declLine())
	assert.Contains(t, ctor.def("Category", ""), "  : SBase(distribns)\n  , mRank (SBML_INT_MAX)\n{\n}\n")

	withDefault := method{ret: "void", name: "f", params: []param{{typ: "unsigned int", name: "level", def: "3"}}}
	assert.Equal(t, "void f(unsigned int level = 3);", withDefault.declLine())
	assert.Equal(t, "f(unsigned int level)", withDefault.defLine(""))
}

func TestNewAttrRejectsUnknownKind(t *testing.T) {
	md := loadMetadata(t, "distrib.yaml")
	g := newGenerator(md)
	_, err := g.newAttr(schema.Attribute{Name: "broken"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no C++ rule")
}

func TestRenderEnums(t *testing.T) {
	pkg, err := schema.Parse([]byte(`
name: signs
versions:
  - classes:
      - name: Input
        attributes:
          - { name: sign, type: enum, element: Sign }
    enums:
      - name: Sign
        values:
          - { name: INPUT_SIGN_POSITIVE, value: positive }
          - { name: INPUT_SIGN_NEGATIVE, value: negative }
          - { name: INPUT_SIGN_DUAL, value: dual }
`), schema.FormatYAML)
	require.NoError(t, err)
	md, err := meta.Build(pkg, 0)
	require.NoError(t, err)

	header, impl, err := RenderEnums(md)
	require.NoError(t, err)
	assert.Contains(t, string(header), "INPUT_SIGN_POSITIVE = 0")
	assert.Contains(t, string(header), ", INPUT_SIGN_INVALID")
	assert.Contains(t, string(header), "} Sign_t;")
	assert.Contains(t, string(header), "Sign_fromString(const char* code);")
	assert.Contains(t, string(impl), "static int size = sizeof(SIGN_STRINGS)/sizeof(SIGN_STRINGS[0]);")
	assert.Contains(t, string(impl), "int max = INPUT_SIGN_DUAL;")

	classHeader, classImpl, err := RenderClass(md, md.Class("Input"))
	require.NoError(t, err)
	assert.Contains(t, string(classHeader), "#include <sbml/packages/signs/common/SignsEnums.h>")
	assert.Contains(t, string(classHeader), "Sign_t mSign;")
	assert.Contains(t, string(classImpl), "mSign = Sign_fromString(sign.c_str());")
}

func TestRenderErrorTable(t *testing.T) {
	md := loadMetadata(t, "distrib.yaml")
	header, table, err := RenderErrorTable(md)
	require.NoError(t, err)

	assert.Contains(t, string(header), "DistribUnknown = 1510100")
	assert.Contains(t, string(header), "DistribNSUndeclared = 1510101")
	assert.Contains(t, string(header), "DistribCodesUpperBound = 1599999")
	assert.Contains(t, string(table), "static const packageErrorTableEntry distribErrorTable[] =")
	assert.Contains(t, string(table), "LIBSBML_CAT_IDENTIFIER_CONSISTENCY")

	for _, d := range md.Errors.PackageEntries() {
		assert.Contains(t, string(header), d.Name, d.Name)
		assert.Contains(t, string(table), "{ "+d.Name+",", d.Name)
	}
	assert.NotContains(t, string(table), "CodesUpperBound")
}

func TestRenderExtension(t *testing.T) {
	md := loadMetadata(t, "distrib.yaml")
	header, impl, err := RenderExtension(md)
	require.NoError(t, err)

	assert.Contains(t, string(header), "static const std::string& getXmlnsL3V1V1();")
	assert.Contains(t, string(header), "typedef SBMLExtensionNamespaces<DistribExtension> DistribPkgNamespaces;")
	assert.Contains(t, string(header), "SBML_DISTRIB_UNCERT_VALUE = 1500")
	assert.Contains(t, string(impl), "\"http://www.sbml.org/sbml/level3/version1/distrib/version1\"")
	assert.Contains(t, string(impl), "SBasePluginCreator<DistribModelPlugin, DistribExtension> modelPluginCreator(modelExtPoint, packageURIs);")
	assert.Contains(t, string(impl), "SBasePluginCreator<SBMLDocumentPlugin, DistribExtension>")
	assert.Contains(t, string(impl), "return 1500000;")
}

func TestRenderNamespaces(t *testing.T) {
	pkg, err := schema.Parse([]byte(`
name: qual
language:
  name: TSB
  namespaces:
    - { level: 1, version: 1, uri: "http://www.sbml.org/tsb/level1/version1" }
    - { level: 1, version: 2, uri: "http://www.sbml.org/tsb/level1/version2" }
versions:
  - level: 1
    version: 2
    classes:
      - name: Thing
`), schema.FormatYAML)
	require.NoError(t, err)
	md, err := meta.Build(pkg, 0)
	require.NoError(t, err)

	header, impl, err := RenderNamespaces(md)
	require.NoError(t, err)
	assert.Contains(t, string(header), "#define TSB_DEFAULT_LEVEL   1")
	assert.Contains(t, string(header), "#define TSB_DEFAULT_VERSION 2")
	assert.Contains(t, string(header), "class LIBTSB_EXTERN TSBNamespaces")
	assert.Contains(t, string(impl), "uri = \"http://www.sbml.org/tsb/level1/version2\";")
	assert.Contains(t, string(impl), "mLevel = TSB_INT_MAX;")
	assert.NotContains(t, string(impl), "<SPEC_LEVEL>")
	require.NoError(t, emit.Check(emit.Artifact{Path: "TSBNamespaces.cpp", Content: impl}))
}

func TestFillSkeletonFailsFast(t *testing.T) {
	values := map[string]string{
		"LANGUAGE": "TSB",
		"INCLUDE":  "tsb",
		"PREFIX":   "LIBTSB",
		"NS_TABLE": "",
		"NS_KNOWN": "",
	}
	_, err := fillSkeleton("TSBNamespaces.h", namespacesHeaderSkeleton, "", values)
	require.Error(t, err)
	assert.ErrorIs(t, err, emit.ErrGenerationFailed)
	assert.Contains(t, err.Error(), "<SPEC_LEVEL>")

	values["SPEC_LEVEL"] = "1"
	values["SPEC_VERSION"] = "2"
	out, err := fillSkeleton("TSBNamespaces.h", namespacesHeaderSkeleton, "", values)
	require.NoError(t, err)
	assert.Contains(t, string(out), "TSBNamespaces(unsigned int level = TSB_DEFAULT_LEVEL,")
}

func TestGenerate(t *testing.T) {
	md := loadMetadata(t, "distrib.yaml")
	arts, err := Generate(slog.New(slog.NewTextHandler(io.Discard, nil)), md)
	require.NoError(t, err)

	paths := map[string]bool{}
	for i, a := range arts {
		paths[a.Path] = true
		require.NoError(t, emit.Check(a), a.Path)
		if i > 0 {
			assert.Less(t, arts[i-1].Path, a.Path)
		}
	}
	for _, want := range []string{
		"src/sbml/packages/distrib/sbml/Category.h",
		"src/sbml/packages/distrib/sbml/Category.cpp",
		"src/sbml/packages/distrib/sbml/ListOfCategories.h",
		"src/sbml/packages/distrib/sbml/ListOfDistributions.cpp",
		"src/sbml/packages/distrib/extension/DistribModelPlugin.h",
		"src/sbml/packages/distrib/extension/DistribExtension.cpp",
		"src/sbml/packages/distrib/validator/DistribSBMLError.h",
		"src/sbml/packages/distrib/validator/DistribSBMLErrorTable.h",
		"src/sbml/packages/distrib/common/distribfwd.h",
		"src/sbml/packages/distrib/common/DistribExtensionTypes.h",
		"CMakeLists.txt",
		"README.md",
		"LICENSE.txt",
	} {
		assert.True(t, paths[want], want)
	}
	assert.False(t, paths["src/sbml/SBMLNamespaces.h"])
	assert.False(t, paths["src/sbml/packages/distrib/common/DistribEnums.h"])

	for _, a := range arts {
		if a.Path == "CMakeLists.txt" {
			assert.Contains(t, string(a.Content), "${CMAKE_CURRENT_SOURCE_DIR}/src/sbml/packages/distrib/sbml/Category.cpp")
			assert.Contains(t, string(a.Content), "add_library(distrib ${DISTRIB_SOURCES})")
		}
	}
}
