package cpp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sbmlteam/deviser/internal/codegen/meta"
	"github.com/sbmlteam/deviser/sbase"
	"github.com/sbmlteam/deviser/schema"
)

const extensionHeaderTemplate = `{{.Notice}}/**
 * @file {{.Name}}.h
 * @brief Definition of {{.Name}}, the core module of the {{.Pkg}} package.
 */

#ifndef {{.Name}}_H__
#define {{.Name}}_H__


#include <{{.Inc}}/common/extern.h>
#include <{{.Inc}}/{{.Lang}}TypeCodes.h>


#ifdef __cplusplus


#include <{{.Inc}}/extension/{{.Lang}}Extension.h>
#include <{{.Inc}}/extension/{{.Lang}}ExtensionNamespaces.h>
#include <{{.Inc}}/extension/{{.Lang}}ExtensionRegister.h>

#ifndef {{.CreateNS}}
#define {{.CreateNS}}(variable, sbmlns)\
  EXTENSION_CREATE_NS({{.PkgNS}}, variable, sbmlns);
#endif

#include <vector>


{{.NSBegin}}


class {{.Export}} {{.Name}} : public {{.Lang}}Extension
{
public:
{{range .Public}}
{{.}}{{end}}
};


/*
 * {{.PkgNS}} is the {{.Lang}}Namespaces class of the {{.Pkg}} package. Package
 * classes are constructed from it.
 */
typedef {{.Lang}}ExtensionNamespaces<{{.Name}}> {{.PkgNS}};


{{.NSEnd}}


#endif /* __cplusplus */


{{.NSBegin}}


/**
 * @enum {{.TypeEnum}}
 * @brief Type codes of the classes of the &ldquo;{{.Pkg}}&rdquo; package.
 */
typedef enum
{
{{range $i, $t := .TypeCodes}}  {{if $i}}, {{else}}  {{end}}{{$t}}
{{end}}} {{.TypeEnum}};


{{.NSEnd}}


#endif /* !{{.Name}}_H__ */
`

const extensionImplTemplate = `{{.Notice}}/**
 * @file {{.Name}}.cpp
 * @brief Implementation of {{.Name}}.
 */
{{range .Includes}}#include <{{.}}>
{{end}}

using namespace std;


#ifdef __cplusplus


{{.NSBegin}}


/*
 * Names of the type codes, indexed from the first package type code.
 */
static
const char* {{.Strings}}[] =
{
{{range $i, $s := .TypeNames}}  {{if $i}}, {{else}}  {{end}}"{{$s}}"
{{end}}};

{{range .Defs}}
{{.}}{{end}}

/*
 * Registers the package when the library loads.
 */
static {{.Lang}}ExtensionRegister<{{.Name}}> {{.Pkg}}ExtensionRegistry;


/** @cond doxygenLibsbmlInternal */
template class {{.Export}} {{.Lang}}ExtensionNamespaces<{{.Name}}>;
/** @endcond */


{{.NSEnd}}


#endif /* __cplusplus */
`

var (
	extensionHeaderTmpl = mustTemplate("extension header", extensionHeaderTemplate)
	extensionImplTmpl   = mustTemplate("extension implementation", extensionImplTemplate)
)

type extensionFile struct {
	Notice    string
	Name      string
	Pkg       string
	Inc       string
	Lang      string
	Export    string
	NSBegin   string
	NSEnd     string
	CreateNS  string
	PkgNS     string
	TypeEnum  string
	TypeCodes []string
	TypeNames []string
	Strings   string
	Includes  []string
	Public    []string
	Defs      []string
}

// RenderExtension renders the extension class registering the package: its
// namespace URIs, type codes, plugin creators and error table access.
func RenderExtension(md *meta.Metadata) (header, impl []byte, err error) {
	g := newGenerator(md)
	ms := g.extensionMethods()

	f := extensionFile{
		Notice:   g.notice,
		Name:     g.ext,
		Pkg:      g.pkg,
		Inc:      g.d.inc,
		Lang:     g.d.lang,
		Export:   g.d.export(),
		NSBegin:  g.d.nsBegin(),
		NSEnd:    g.d.nsEnd(),
		CreateNS: g.createNS,
		PkgNS:    g.pkgNS,
		TypeEnum: g.prefix + g.d.lang + "TypeCode_t",
		Strings:  g.typeStrings(),
	}
	for _, c := range md.Classes {
		f.TypeCodes = append(f.TypeCodes, c.TypeCode+" = "+strconv.Itoa(c.TypeNum))
		f.TypeNames = append(f.TypeNames, c.Name)
	}
	for _, m := range ms {
		f.Public = append(f.Public, m.decl())
	}
	if header, err = execute(extensionHeaderTmpl, f); err != nil {
		return nil, nil, err
	}

	f.Includes = []string{g.extInclude(), g.d.inc + "/extension/" + g.d.lang + "ExtensionRegister.h",
		g.d.inc + "/extension/" + g.d.lang + "ExtensionRegistry.h",
		g.d.inc + "/extension/" + g.d.base + "PluginCreator.h",
		g.d.inc + "/extension/" + g.d.docPlugin + ".h",
		g.include("validator", g.prefix+g.d.lang+"ErrorTable.h"), "iostream"}
	for _, p := range g.hostPlugins() {
		f.Includes = append(f.Includes, g.include("extension", g.prefix+p.Extends+"Plugin.h"))
	}
	for _, m := range ms {
		f.Defs = append(f.Defs, m.def(g.ext, ""))
	}
	if impl, err = execute(extensionImplTmpl, f); err != nil {
		return nil, nil, err
	}
	if err := checkPair(g.ext, string(header), string(impl), ms, nil); err != nil {
		return nil, nil, fmt.Errorf("render %s: %w", g.ext, err)
	}
	return header, impl, nil
}

func (g *generator) hostPlugins() []*meta.Plugin {
	var out []*meta.Plugin
	for _, p := range g.md.Plugins {
		if p.Host == nil {
			out = append(out, p)
		}
	}
	return out
}

func (g *generator) errorTable() string { return g.pkg + "ErrorTable" }

func (g *generator) typeStrings() string {
	return strings.ToUpper(g.d.lang) + "_" + strings.ToUpper(g.pkg) + "_TYPECODE_STRINGS"
}

// uriCases renders one branch per package version returning what ret yields.
func (g *generator) uriCases(ret func(v *schema.Version) string, fallback string) []string {
	var brs []branch
	for i := range g.md.Package.Versions {
		v := &g.md.Package.Versions[i]
		brs = append(brs, branch{
			cond: "uri == " + xmlnsGetter(v.Level, v.Version, v.PkgVersion) + "()",
			body: []string{"return " + ret(v) + ";"},
		})
	}
	return append(chain(brs), "", "return "+fallback+";")
}

func (g *generator) extensionMethods() []method {
	uri := param{typ: "const std::string&", name: "uri"}
	def := g.md.Version
	ms := []method{
		{
			doc:    "Returns the nickname of the package.",
			ret:    "const std::string&",
			name:   "getPackageName",
			static: true,
			body:   []string{"static const std::string pkgName = " + cString(g.pkg) + ";", "return pkgName;"},
		},
		{doc: "Returns the default " + g.d.lang + " Level used by this package.", ret: "unsigned int",
			name: "getDefaultLevel", static: true, body: []string{"return " + strconv.Itoa(def.Level) + ";"}},
		{doc: "Returns the default " + g.d.lang + " Version used by this package.", ret: "unsigned int",
			name: "getDefaultVersion", static: true, body: []string{"return " + strconv.Itoa(def.Version) + ";"}},
		{doc: "Returns the default version of this package.", ret: "unsigned int",
			name: "getDefaultPackageVersion", static: true, body: []string{"return " + strconv.Itoa(def.PkgVersion) + ";"}},
	}
	for i := range g.md.Package.Versions {
		v := &g.md.Package.Versions[i]
		ms = append(ms, method{
			doc:    fmt.Sprintf("Returns the XML namespace URI of %s Level %d Version %d, %s version %d.", g.d.lang, v.Level, v.Version, g.pkg, v.PkgVersion),
			ret:    "const std::string&",
			name:   xmlnsGetter(v.Level, v.Version, v.PkgVersion),
			static: true,
			body:   []string{"static const std::string xmlns = " + cString(g.md.Package.URI(v)) + ";", "return xmlns;"},
		})
	}

	var uriBrs []branch
	for i := range g.md.Package.Versions {
		v := &g.md.Package.Versions[i]
		uriBrs = append(uriBrs, branch{
			cond: fmt.Sprintf("sbmlLevel == %d && sbmlVersion == %d && pkgVersion == %d", v.Level, v.Version, v.PkgVersion),
			body: []string{"return " + xmlnsGetter(v.Level, v.Version, v.PkgVersion) + "();"},
		})
	}
	getURI := append(chain(uriBrs), "", "static std::string empty = \"\";", "return empty;")

	var nsBrs []branch
	for i := range g.md.Package.Versions {
		v := &g.md.Package.Versions[i]
		nsBrs = append(nsBrs, branch{
			cond: "uri == " + xmlnsGetter(v.Level, v.Version, v.PkgVersion) + "()",
			body: []string{fmt.Sprintf("pkgns = new %s(%d, %d, %d);", g.pkgNS, v.Level, v.Version, v.PkgVersion)},
		})
	}
	getNS := append([]string{g.pkgNS + "* pkgns = NULL;", ""}, chain(nsBrs)...)
	getNS = append(getNS, "", "return pkgns;")

	typeString := []string{"return \"(Unknown " + g.d.lang + " " + g.prefix + " Type)\";"}
	if n := len(g.md.Classes); n > 0 {
		typeString = []string{
			"int min = " + g.md.Classes[0].TypeCode + ";",
			"int max = " + g.md.Classes[n-1].TypeCode + ";",
			"",
		}
		typeString = append(typeString, block("if (typeCode < min || typeCode > max)",
			"return \"(Unknown "+g.d.lang+" "+g.prefix+" Type)\";")...)
		typeString = append(typeString, "", "return "+g.typeStrings()+"[typeCode - min];")
	}

	table := g.errorTable()
	ms = append(ms,
		method{doc: "Creates a new " + g.ext + " instance.", name: g.ext,
			body: []string{}},
		method{doc: "Copy constructor for " + g.ext + ".", name: g.ext,
			params: []param{{typ: "const " + g.ext + "&", name: "orig"}},
			init:   []string{g.d.lang + "Extension(orig)"}},
		method{doc: "Assignment operator for " + g.ext + ".", ret: g.ext + "&", name: "operator=",
			params: []param{{typ: "const " + g.ext + "&", name: "rhs"}},
			body:   append(block("if (&rhs != this)", g.d.lang+"Extension::operator=(rhs);"), "", "return *this;")},
		method{doc: "Creates and returns a deep copy of this " + g.ext + " object.", ret: g.ext + "*",
			name: "clone", isConst: true, virtual: true, body: []string{"return new " + g.ext + "(*this);"}},
		method{doc: "Destructor for " + g.ext + ".", name: "~" + g.ext, virtual: true},
		method{doc: "Returns the name of this package.", ret: "const std::string&", name: "getName",
			isConst: true, virtual: true, body: []string{"return getPackageName();"}},
		method{doc: "Returns a string representing the XML namespace URI of the package for the given Level, Version and package version.",
			ret: "const std::string&", name: "getURI", isConst: true, virtual: true,
			params: []param{{typ: "unsigned int", name: "sbmlLevel"}, {typ: "unsigned int", name: "sbmlVersion"}, {typ: "unsigned int", name: "pkgVersion"}},
			body:   getURI},
		method{doc: "Returns the " + g.d.lang + " Level for the given URI of this package.", ret: "unsigned int",
			name: "getLevel", isConst: true, virtual: true, params: []param{uri},
			body: g.uriCases(func(v *schema.Version) string { return strconv.Itoa(v.Level) }, "0")},
		method{doc: "Returns the " + g.d.lang + " Version for the given URI of this package.", ret: "unsigned int",
			name: "getVersion", isConst: true, virtual: true, params: []param{uri},
			body: g.uriCases(func(v *schema.Version) string { return strconv.Itoa(v.Version) }, "0")},
		method{doc: "Returns the package version for the given URI of this package.", ret: "unsigned int",
			name: "getPackageVersion", isConst: true, virtual: true, params: []param{uri},
			body: g.uriCases(func(v *schema.Version) string { return strconv.Itoa(v.PkgVersion) }, "0")},
		method{doc: "Returns a " + g.pkgNS + " object for the given URI, or NULL if the URI is not one of this package.",
			ret: g.d.namespaces + "*", name: "get" + g.d.lang + "ExtensionNamespaces", isConst: true, virtual: true,
			params: []param{uri}, body: getNS},
		method{doc: "Returns a string describing the type code of a class of this package.", ret: "const char*",
			name: "getStringFromTypeCode", isConst: true, virtual: true,
			params: []param{{typ: "int", name: "typeCode"}}, body: typeString},
		method{doc: "Initializes the package and registers it with the extension registry.", ret: "void",
			name: "init", static: true, body: g.initBody()},
		method{doc: "Returns the entry of the package error table at index.", ret: "packageErrorTableEntry",
			name: "getErrorTable", isConst: true, virtual: true,
			params: []param{{typ: "unsigned int", name: "index"}},
			body:   []string{"return " + table + "[index];"}},
		method{doc: "Returns the index in the package error table of errorId.", ret: "unsigned int",
			name: "getErrorTableIndex", isConst: true, virtual: true,
			params: []param{{typ: "unsigned int", name: "errorId"}},
			body: append(append([]string{
				"unsigned int tableSize = sizeof(" + table + ")/sizeof(" + table + "[0]);",
				"unsigned int index = 0;",
				"",
			}, block("for (unsigned int i = 0; i < tableSize; i++)",
				block("if (errorId == "+table+"[i].code)", "index = i;", "break;")...)...),
				"", "return index;")},
		method{doc: "Returns the offset of the error ids of this package.", ret: "unsigned int",
			name: "getErrorIdOffset", isConst: true, virtual: true,
			body: []string{"return " + strconv.Itoa(g.md.Package.Offset) + ";"}},
	)
	return ms
}

// initBody registers one plugin creator per extended host class. The document
// class always gets a plugin so the package can record its required flag.
func (g *generator) initBody() []string {
	reg := g.d.lang + "ExtensionRegistry"
	ext := schema.LowerFirst(g.ext)
	body := block("if ("+reg+"::getInstance().isRegistered(getPackageName()))", "return;")
	body = append(body,
		"",
		g.ext+" "+ext+";",
		"",
		"std::vector<std::string> packageURIs;",
	)
	for i := range g.md.Package.Versions {
		v := &g.md.Package.Versions[i]
		body = append(body, "packageURIs.push_back("+xmlnsGetter(v.Level, v.Version, v.PkgVersion)+"());")
	}
	body = append(body, "")

	doc := false
	for _, p := range g.hostPlugins() {
		v := schema.LowerFirst(p.Extends)
		if p.Extends == g.d.document {
			doc = true
		}
		body = append(body,
			g.d.base+"ExtensionPoint "+v+"ExtPoint(\"core\", "+g.d.coreTypeCode(p.Extends)+");",
			g.d.base+"PluginCreator<"+g.prefix+p.Extends+"Plugin, "+g.ext+"> "+v+"PluginCreator("+v+"ExtPoint, packageURIs);",
			ext+".add"+g.d.base+"PluginCreator(&"+v+"PluginCreator);",
			"")
	}
	if !doc {
		v := schema.LowerFirst(g.d.document)
		body = append(body,
			g.d.base+"ExtensionPoint "+v+"ExtPoint(\"core\", "+g.d.coreTypeCode(g.d.document)+");",
			g.d.base+"PluginCreator<"+g.d.docPlugin+", "+g.ext+"> "+v+"PluginCreator("+v+"ExtPoint, packageURIs);",
			ext+".add"+g.d.base+"PluginCreator(&"+v+"PluginCreator);",
			"")
	}

	body = append(body, "int result = "+reg+"::getInstance().addExtension(&"+ext+");", "")
	body = append(body, block("if (result != "+g.d.status(sbase.OperationSuccess)+")",
		"std::cerr << \"[Error] "+g.ext+"::init() failed.\" << std::endl;")...)
	return body
}
