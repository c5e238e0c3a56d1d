package cpp

import (
	"fmt"
	"strings"

	"github.com/sbmlteam/deviser/internal/codegen/meta"
	"github.com/sbmlteam/deviser/sbase"
	"github.com/sbmlteam/deviser/schema"
)

// RenderListOf renders the container class holding instances of c.
func RenderListOf(md *meta.Metadata, c *meta.Class) (header, impl []byte, err error) {
	g := newGenerator(md)
	name := c.ListOfName()
	item := c.Name
	plural := schema.UpperFirst(schema.Plural(c.Name))
	v := schema.LowerFirst(item)

	ms := []method{
		{
			doc:    "Creates a new " + name + " using the given " + g.d.lang + " Level, Version and &ldquo;" + g.pkg + "&rdquo; package version.",
			name:   name,
			params: g.levelParams(),
			init:   []string{"ListOf(level, version)"},
			body:   []string{"set" + g.d.lang + "NamespacesAndOwn(new " + g.pkgNS + "(level, version, pkgVersion));"},
		},
		{
			doc:    "Creates a new " + name + " using the given " + g.pkgNS + " object.",
			name:   name,
			params: []param{{typ: g.pkgNS + " *", name: g.nsVar}},
			init:   []string{"ListOf(" + g.nsVar + ")"},
			body:   []string{"setElementNamespace(" + g.nsVar + "->getURI());"},
		},
		{
			doc:    "Copy constructor for " + name + ".",
			name:   name,
			params: []param{{typ: "const " + name + "&", name: "orig"}},
			init:   []string{"ListOf(orig)"},
		},
		{
			doc:    "Assignment operator for " + name + ".",
			ret:    name + "&",
			name:   "operator=",
			params: []param{{typ: "const " + name + "&", name: "rhs"}},
			body:   append(block("if (&rhs != this)", "ListOf::operator=(rhs);"), "", "return *this;"),
		},
		{
			doc:     "Creates and returns a deep copy of this " + name + " object.",
			ret:     name + "*",
			name:    "clone",
			isConst: true,
			virtual: true,
			body:    []string{"return new " + name + "(*this);"},
		},
		{doc: "Destructor for " + name + ".", name: "~" + name, virtual: true},
		{
			doc:    "Get a " + item + " from the " + name + ".",
			ret:    item + "*",
			name:   "get",
			params: []param{{typ: "unsigned int", name: "n"}},
			body:   []string{"return static_cast<" + item + "*>(ListOf::get(n));"},
		},
		{
			doc:     "Get a " + item + " from the " + name + ".",
			ret:     "const " + item + "*",
			name:    "get",
			params:  []param{{typ: "unsigned int", name: "n"}},
			isConst: true,
			body:    []string{"return static_cast<const " + item + "*>(ListOf::get(n));"},
		},
	}
	sid := param{typ: "const std::string&", name: "sid"}
	if c.HasID {
		ms = append(ms,
			method{
				doc:    "Get a " + item + " from the " + name + " based on its identifier.",
				ret:    item + "*",
				name:   "get",
				params: []param{sid},
				body:   []string{"return const_cast<" + item + "*>(static_cast<const " + name + "&>(*this).get(sid));"},
			},
			method{
				doc:     "Get a " + item + " from the " + name + " based on its identifier.",
				ret:     "const " + item + "*",
				name:    "get",
				params:  []param{sid},
				isConst: true,
				body: []string{
					"vector<" + g.d.base + "*>::const_iterator result;",
					"result = find_if(mItems.begin(), mItems.end(), IdEq<" + item + ">(sid));",
					"return (result == mItems.end()) ? 0 : static_cast <const " + item + "*> (*result);",
				},
			})
	}
	ms = append(ms, method{
		doc:     "Removes the nth " + item + " from this " + name + " and returns a pointer to it.",
		ret:     item + "*",
		name:    "remove",
		params:  []param{{typ: "unsigned int", name: "n"}},
		virtual: true,
		body:    []string{"return static_cast<" + item + "*>(ListOf::remove(n));"},
	})
	if c.HasID {
		ms = append(ms, method{
			doc:     "Removes the " + item + " from this " + name + " based on its identifier and returns a pointer to it.",
			ret:     item + "*",
			name:    "remove",
			params:  []param{sid},
			virtual: true,
			body: []string{
				g.d.base + "* item = NULL;",
				"vector<" + g.d.base + "*>::iterator result;",
				"",
				"result = find_if(mItems.begin(), mItems.end(), IdEq<" + item + ">(sid));",
				"",
				"if (result != mItems.end())",
				"{",
				"  item = *result;",
				"  mItems.erase(result);",
				"}",
				"",
				"return static_cast <" + item + "*> (item);",
			},
		})
	}
	ms = append(ms,
		method{
			doc:    "Adds a copy of the given " + item + " to this " + name + ".",
			ret:    "int",
			name:   "add" + item,
			params: []param{{typ: "const " + item + "*", name: v}},
			body: []string{
				"if (" + v + " == NULL)",
				"{",
				"  return " + g.d.status(sbase.OperationFailed) + ";",
				"}",
				"else if (" + v + "->hasRequiredAttributes() == false)",
				"{",
				"  return " + g.d.status(sbase.InvalidObject) + ";",
				"}",
				"else if (getLevel() != " + v + "->getLevel())",
				"{",
				"  return " + g.d.status(sbase.LevelMismatch) + ";",
				"}",
				"else if (getVersion() != " + v + "->getVersion())",
				"{",
				"  return " + g.d.status(sbase.VersionMismatch) + ";",
				"}",
				"else if (matchesRequired" + g.d.lang + "NamespacesForAddition(static_cast<const " + g.d.base + "*>(" + v + ")) == false)",
				"{",
				"  return " + g.d.status(sbase.NamespacesMismatch) + ";",
				"}",
				"else",
				"{",
				"  return append(" + v + ");",
				"}",
			},
		},
		method{
			doc:     "Get the number of " + item + " objects in this " + name + ".",
			ret:     "unsigned int",
			name:    "getNum" + plural,
			isConst: true,
			body:    []string{"return size();"},
		})
	for _, d := range concrete(c) {
		dv := schema.LowerFirst(d.Name)
		ms = append(ms, method{
			doc:  "Creates a new " + d.Name + " object, adds it to this " + name + " object and returns it.",
			ret:  d.Name + "*",
			name: "create" + d.Name,
			body: []string{
				d.Name + "* " + dv + " = NULL;",
				"",
				"try",
				"{",
				"  " + g.createNS + "(" + g.nsVar + ", get" + g.d.lang + "Namespaces());",
				"  " + dv + " = new " + d.Name + "(" + g.nsVar + ");",
				"  delete " + g.nsVar + ";",
				"}",
				"catch (...)",
				"{",
				"}",
				"",
				"if (" + dv + " != NULL)",
				"{",
				"  appendAndOwn(" + dv + ");",
				"}",
				"",
				"return " + dv + ";",
			},
		})
	}

	var codes []string
	for _, d := range concrete(c) {
		codes = append(codes, "(tc == "+d.TypeCode+")")
	}
	accepted := strings.Join(codes, " || ")
	if len(codes) > 1 {
		accepted = "(" + accepted + ")"
	}
	ms = append(ms,
		method{
			doc:     "Returns the XML element name of this " + name + " object.",
			ret:     "const std::string&",
			name:    "getElementName",
			isConst: true,
			virtual: true,
			body:    []string{"static const string name = " + cString(c.ListOfElementName()) + ";", "return name;"},
		},
		method{
			doc:     "Returns the libSBML type code for the objects contained in this " + name + ".",
			ret:     "int",
			name:    "getItemTypeCode",
			isConst: true,
			virtual: true,
			body:    []string{"return " + c.TypeCode + ";"},
		})

	var creates []branch
	for _, d := range concrete(c) {
		creates = append(creates, branch{
			cond: "name == \"" + d.ElementName + "\"",
			body: []string{"object = new " + d.Name + "(" + g.nsVar + ");", "appendAndOwn(object);"},
		})
	}
	createBody := []string{
		"const std::string& name = stream.peek().getName();",
		g.d.base + "* object = NULL;",
		g.createNS + "(" + g.nsVar + ", get" + g.d.lang + "Namespaces());",
		"",
	}
	createBody = append(createBody, chain(creates)...)
	createBody = append(createBody, "", "delete "+g.nsVar+";", "return object;")

	xmlnsBody := []string{
		"XMLNamespaces xmlns;",
		"std::string prefix = getPrefix();",
		"",
	}
	xmlnsBody = append(xmlnsBody, block("if (prefix.empty())",
		append([]string{"const XMLNamespaces* thisxmlns = getNamespaces();"},
			block("if (thisxmlns && thisxmlns->hasURI("+g.ext+"::"+g.xmlnsGetter()+"()))",
				"xmlns.add("+g.ext+"::"+g.xmlnsGetter()+"(), prefix);")...)...)...)
	xmlnsBody = append(xmlnsBody, "", "stream << xmlns;")

	protected := []method{
		{ret: g.d.base + "*", name: "createObject", virtual: true, protected: true,
			params: []param{{typ: "XMLInputStream&", name: "stream"}}, body: createBody},
		{ret: "void", name: "writeXMLNS", isConst: true, virtual: true, protected: true,
			params: []param{{typ: "XMLOutputStream&", name: "stream"}}, body: xmlnsBody},
		{ret: "bool", name: "isValidTypeForList", virtual: true, protected: true,
			params: []param{{typ: g.d.base + "*", name: "item"}},
			body: []string{
				"unsigned int tc = item->getTypeCode();",
				"",
				"return " + accepted + ";",
			}},
	}

	var capi []method
	if md.Package.CAPI() {
		lo := param{typ: "ListOf_t*", name: "lo"}
		cast := "static_cast <" + name + "*>(lo)"
		capi = append(capi,
			method{doc: "Get a " + item + "_t from the ListOf_t.", ret: item + "_t*", name: name + "_get" + item,
				params: []param{lo, {typ: "unsigned int", name: "n"}},
				body:   append(block("if (lo == NULL)", "return NULL;"), "", "return "+cast+"->get(n);")},
			method{doc: "Removes the nth " + item + "_t from this ListOf_t and returns a pointer to it.",
				ret: item + "_t*", name: name + "_remove",
				params: []param{lo, {typ: "unsigned int", name: "n"}},
				body:   append(block("if (lo == NULL)", "return NULL;"), "", "return "+cast+"->remove(n);")})
		if c.HasID {
			capi = append(capi,
				method{doc: "Get a " + item + "_t from the ListOf_t based on its identifier.", ret: item + "_t*",
					name: name + "_getById", params: []param{lo, {typ: "const char *", name: "sid"}},
					body: append(block("if (lo == NULL)", "return NULL;"), "", "return (sid != NULL) ? "+cast+"->get(sid) : NULL;")},
				method{doc: "Removes the " + item + "_t from this ListOf_t based on its identifier and returns a pointer to it.",
					ret: item + "_t*", name: name + "_removeById", params: []param{lo, {typ: "const char*", name: "sid"}},
					body: append(block("if (lo == NULL)", "return NULL;"), "", "return (sid != NULL) ? "+cast+"->remove(sid) : NULL;")})
		}
	}

	f := g.classFile(name, "ListOf")
	f.Includes = []string{g.d.inc + "/ListOf.h", g.extInclude()}
	for _, m := range ms {
		f.Public = append(f.Public, m.decl())
	}
	for _, m := range protected {
		f.Protected = append(f.Protected, m.decl())
	}
	for _, m := range capi {
		f.CAPI = append(f.CAPI, m.cdecl(g.d.export()))
	}
	if header, err = execute(classHeaderTmpl, f); err != nil {
		return nil, nil, err
	}

	f.Includes = []string{g.classInclude(name), "algorithm"}
	for _, d := range concrete(c) {
		f.Includes = append(f.Includes, g.classInclude(d.Name))
	}
	f.CAPI = nil
	all := append(ms, protected...)
	for _, m := range all {
		f.Defs = append(f.Defs, m.def(name, ""))
	}
	for _, m := range capi {
		f.CAPI = append(f.CAPI, m.def("", g.d.export()))
	}
	if impl, err = execute(classImplTmpl, f); err != nil {
		return nil, nil, err
	}
	if err := checkPair(name, string(header), string(impl), all, capi); err != nil {
		return nil, nil, fmt.Errorf("render %s: %w", name, err)
	}
	return header, impl, nil
}
