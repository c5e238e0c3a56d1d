package cpp

import (
	"fmt"

	"github.com/sbmlteam/deviser/internal/codegen/meta"
	"github.com/sbmlteam/deviser/sbase"
	"github.com/sbmlteam/deviser/schema"
)

// concrete returns the classes a child of target can be instantiated as.
func concrete(target *meta.Class) []*meta.Class {
	if !target.Abstract {
		return []*meta.Class{target}
	}
	var out []*meta.Class
	for _, d := range target.Derived {
		if !d.Abstract {
			out = append(out, d)
		}
	}
	return out
}

// --- singular children -----------------------------------------------------

type elementRule struct{}

func (elementRule) members(_ *classGen, a *attr) []string {
	return []string{a.target.Name + "* " + a.member + ";"}
}

func (elementRule) ctorInit(_ *classGen, a *attr, _ ctorKind) []string {
	return []string{a.member + " (NULL)"}
}

func (elementRule) copyBody(_ *classGen, a *attr) []string {
	return block("if (orig."+a.member+" != NULL)", a.member+" = orig."+a.member+"->clone();")
}

func (elementRule) assign(_ *classGen, a *attr) []string {
	return []string{
		"delete " + a.member + ";",
		"if (rhs." + a.member + " != NULL)",
		"{",
		"  " + a.member + " = rhs." + a.member + "->clone();",
		"}",
		"else",
		"{",
		"  " + a.member + " = NULL;",
		"}",
	}
}

func (elementRule) destroy(_ *classGen, a *attr) []string {
	return []string{"delete " + a.member + ";", a.member + " = NULL;"}
}

// renames reports whether the child is written under another name than its class element name.
func (elementRule) renames(a *attr) bool {
	return !a.target.Abstract && a.XML() != a.target.ElementName
}

func (r elementRule) createName(a *attr, c *meta.Class) string {
	if a.target.Abstract {
		return "create" + c.Name
	}
	return "create" + a.cap
}

func (r elementRule) accessors(cg *classGen, a *attr) []method {
	t := a.target.Name
	name := schema.LowerFirst(a.cap)
	set := []string{
		"if (" + a.member + " == " + name + ")",
		"{",
		"  return " + cg.d.status(sbase.OperationSuccess) + ";",
		"}",
		"else if (" + name + " == NULL)",
		"{",
		"  delete " + a.member + ";",
		"  " + a.member + " = NULL;",
		"  return " + cg.d.status(sbase.OperationSuccess) + ";",
		"}",
		"else",
		"{",
		"  delete " + a.member + ";",
		"  " + a.member + " = static_cast<" + t + "*>(" + name + "->clone());",
		"",
		"  if (" + a.member + " != NULL)",
		"  {",
	}
	if r.renames(a) {
		set = append(set, "    "+a.member+"->setElementName(\""+a.XML()+"\");")
	}
	set = append(set,
		"    "+a.member+"->connectToParent("+cg.self()+");",
		"  }",
		"",
		"  return "+cg.d.status(sbase.OperationSuccess)+";",
		"}")

	ms := []method{
		{doc: "Returns the \"" + a.Name + "\" element of this " + cg.name + ".", ret: "const " + t + "*",
			name: "get" + a.cap, isConst: true, body: []string{"return " + a.member + ";"}},
		{doc: "Returns the \"" + a.Name + "\" element of this " + cg.name + ".", ret: t + "*",
			name: "get" + a.cap, body: []string{"return " + a.member + ";"}},
		{doc: fmt.Sprintf("Predicate returning @c true if this %s's \"%s\" element is set.", cg.name, a.Name),
			ret: "bool", name: "isSet" + a.cap, isConst: true, body: []string{"return (" + a.member + " != NULL);"}},
		{doc: "Sets the \"" + a.Name + "\" element of this " + cg.name + " to a copy of " + name + ".",
			ret: "int", name: "set" + a.cap, params: []param{{typ: "const " + t + "*", name: name}}, body: set},
	}
	for _, c := range concrete(a.target) {
		body := []string{
			"if (" + a.member + " != NULL)",
			"{",
			"  delete " + a.member + ";",
			"}",
			"",
			cg.createNS + "(" + cg.nsVar + ", " + cg.getNamespaces() + ");",
			a.member + " = new " + c.Name + "(" + cg.nsVar + ");",
		}
		if r.renames(a) {
			body = append(body, a.member+"->setElementName(\""+a.XML()+"\");")
		}
		body = append(body, "delete "+cg.nsVar+";", "connectToChild();", "return static_cast<"+c.Name+"*>("+a.member+");")
		ms = append(ms, method{
			doc: "Creates a new " + c.Name + " object, sets it as the \"" + a.Name + "\" element of this " + cg.name + " and returns it.",
			ret: c.Name + "*", name: r.createName(a, c), body: body,
		})
	}
	ms = append(ms, method{
		doc: "Unsets the \"" + a.Name + "\" element of this " + cg.name + ".", ret: "int", name: "unset" + a.cap,
		body: []string{"delete " + a.member + ";", a.member + " = NULL;", "return " + cg.d.status(sbase.OperationSuccess) + ";"},
	})
	return ms
}

func (elementRule) family(*classGen, *attr) (string, string, string) { return "", "", "" }

func (elementRule) readAttr(*classGen, *attr) []string { return nil }

func (elementRule) writeAttr(*classGen, *attr) []string { return nil }

func (r elementRule) capi(cg *classGen, a *attr) []method {
	t := a.target.Name + "_t"
	name := schema.LowerFirst(a.cap)
	ms := []method{
		{doc: "Returns the \"" + a.Name + "\" element of this " + cg.cType + ".", ret: "const " + t + "*",
			name: cg.name + "_get" + a.cap, params: []param{cg.cParam(true)},
			body: []string{
				"if (" + cg.cVar + " == NULL)",
				"{",
				"  return NULL;",
				"}",
				"",
				"return (const " + t + "*)(" + cg.cVar + "->get" + a.cap + "());",
			}},
		cg.capiIsSet(a),
		{doc: "Sets the \"" + a.Name + "\" element of this " + cg.cType + ".", ret: "int",
			name: cg.name + "_set" + a.cap, params: []param{cg.cParam(false), {typ: "const " + t + "*", name: name}},
			body: []string{"return (" + cg.cVar + " != NULL) ? " + cg.cVar + "->set" + a.cap + "(" + name + ") : " + cg.d.status(sbase.InvalidObject) + ";"}},
	}
	for _, c := range concrete(a.target) {
		create := r.createName(a, c)
		ms = append(ms, method{
			doc: "Creates a new " + c.Name + "_t object, sets it as the \"" + a.Name + "\" element of this " + cg.cType + " and returns it.",
			ret: c.Name + "_t*", name: cg.name + "_" + create, params: []param{cg.cParam(false)},
			body: []string{"return (" + cg.cVar + " != NULL) ? " + cg.cVar + "->" + create + "() : NULL;"},
		})
	}
	return append(ms, cg.capiUnset(a))
}

func (r elementRule) creates(cg *classGen, a *attr) []branch {
	var out []branch
	for _, c := range concrete(a.target) {
		elem := a.XML()
		if a.target.Abstract {
			elem = c.ElementName
		}
		body := block("if (isSet"+a.cap+"())", cg.logCall(sbase.RuleElements, "\"\"", "getErrorLog()->")...)
		body = append(body,
			"",
			"delete "+a.member+";",
			a.member+" = new "+c.Name+"("+cg.nsVar+");")
		if !a.target.Abstract {
			body = append(body, a.member+"->setElementName(name);")
		}
		body = append(body, "obj = "+a.member+";")
		out = append(out, branch{cond: "name == \"" + elem + "\"", body: body})
	}
	return out
}

func (elementRule) writeElem(_ *classGen, a *attr) []string {
	return block("if (isSet"+a.cap+"() == true)", a.member+"->write(stream);")
}

func (elementRule) visit(_ *classGen, a *attr) []string {
	return block("if ("+a.member+" != NULL)", a.member+"->accept(v);")
}

func (elementRule) connect(cg *classGen, a *attr) []string {
	return block("if ("+a.member+" != NULL)", a.member+"->connectToParent("+cg.self()+");")
}

func (elementRule) setDocument(cg *classGen, a *attr) []string {
	return block("if ("+a.member+" != NULL)", a.member+"->set"+cg.d.document+"(d);")
}

func (elementRule) enablePackage(_ *classGen, a *attr) []string {
	return block("if (isSet"+a.cap+"())", a.member+"->enablePackageInternal(pkgURI, pkgPrefix, flag);")
}

func (elementRule) missing(_ *classGen, a *attr) string { return "isSet" + a.cap + "() == false" }

func (r elementRule) objects(cg *classGen, a *attr) (count, get, create []branch) {
	count = []branch{{cond: "elementName == \"" + a.XML() + "\"", body: block("if (isSet"+a.cap+"())", "return 1;")}}
	get = []branch{{cond: "elementName == \"" + a.XML() + "\"", body: []string{"return get" + a.cap + "();"}}}
	for _, c := range concrete(a.target) {
		elem := a.XML()
		if a.target.Abstract {
			elem = c.ElementName
		}
		create = append(create, branch{cond: "elementName == \"" + elem + "\"", body: []string{"return " + r.createName(a, c) + "();"}})
	}
	return count, get, create
}

// --- lists -----------------------------------------------------------------

type listRule struct{}

type listNames struct {
	item    string // Category
	plural  string // Categories
	class   string // ListOfCategories
	getList string // getListOfCategories
	hasID   bool
}

func (listRule) names(cg *classGen, a *attr) listNames {
	return listNames{
		item:    a.cap,
		plural:  schema.UpperFirst(schema.Plural(a.cap)),
		class:   a.target.ListOfName(),
		getList: "get" + schema.UpperFirst(cg.md.ChildXMLName(&a.Attribute)),
		hasID:   a.target.HasID,
	}
}

func (r listRule) createName(cg *classGen, a *attr, c *meta.Class) string {
	if a.target.Abstract {
		return "create" + c.Name
	}
	return "create" + r.names(cg, a).item
}

func (r listRule) members(cg *classGen, a *attr) []string {
	return []string{r.names(cg, a).class + " " + a.member + ";"}
}

func (listRule) ctorInit(cg *classGen, a *attr, k ctorKind) []string {
	switch k {
	case ctorCopy:
		return []string{a.member + " (orig." + a.member + ")"}
	case ctorNS:
		return []string{a.member + " (" + cg.nsVar + ")"}
	}
	return []string{a.member + " (level, version, pkgVersion)"}
}

func (listRule) copyBody(*classGen, *attr) []string { return nil }

func (listRule) assign(_ *classGen, a *attr) []string {
	return []string{a.member + " = rhs." + a.member + ";"}
}

func (listRule) destroy(*classGen, *attr) []string { return nil }

func (r listRule) accessors(cg *classGen, a *attr) []method {
	n := r.names(cg, a)
	t := a.target.Name
	v := schema.LowerFirst(t)
	lc := n.class
	ms := []method{
		{doc: "Returns the " + lc + " from this " + cg.name + ".", ret: "const " + lc + "*", name: n.getList,
			isConst: true, body: []string{"return &" + a.member + ";"}},
		{doc: "Returns the " + lc + " from this " + cg.name + ".", ret: lc + "*", name: n.getList,
			body: []string{"return &" + a.member + ";"}},
		{doc: "Get a " + t + " from the " + cg.name + " by index.", ret: t + "*", name: "get" + n.item,
			params: []param{{typ: "unsigned int", name: "n"}},
			body:   []string{"return " + a.member + ".get(n);"}},
		{doc: "Get a " + t + " from the " + cg.name + " by index.", ret: "const " + t + "*", name: "get" + n.item,
			params: []param{{typ: "unsigned int", name: "n"}}, isConst: true,
			body: []string{"return " + a.member + ".get(n);"}},
	}
	if n.hasID {
		ms = append(ms,
			method{doc: "Get a " + t + " from the " + cg.name + " based on its identifier.", ret: t + "*",
				name: "get" + n.item, params: []param{{typ: "const std::string&", name: "sid"}},
				body: []string{"return " + a.member + ".get(sid);"}},
			method{doc: "Get a " + t + " from the " + cg.name + " based on its identifier.", ret: "const " + t + "*",
				name: "get" + n.item, params: []param{{typ: "const std::string&", name: "sid"}}, isConst: true,
				body: []string{"return " + a.member + ".get(sid);"}})
	}

	add := []string{
		"if (" + v + " == NULL)",
		"{",
		"  return " + cg.d.status(sbase.OperationFailed) + ";",
		"}",
		"else if (" + v + "->hasRequiredAttributes() == false)",
		"{",
		"  return " + cg.d.status(sbase.InvalidObject) + ";",
		"}",
		"else if (getLevel() != " + v + "->getLevel())",
		"{",
		"  return " + cg.d.status(sbase.LevelMismatch) + ";",
		"}",
		"else if (getVersion() != " + v + "->getVersion())",
		"{",
		"  return " + cg.d.status(sbase.VersionMismatch) + ";",
		"}",
	}
	if !cg.plugin {
		add = append(add,
			"else if (matchesRequired"+cg.d.lang+"NamespacesForAddition(static_cast<const "+cg.d.base+"*>("+v+")) == false)",
			"{",
			"  return "+cg.d.status(sbase.NamespacesMismatch)+";",
			"}")
	}
	if n.hasID {
		add = append(add,
			"else if ("+v+"->isSetId() && ("+a.member+".get("+v+"->getId())) != NULL)",
			"{",
			"  return "+cg.d.status(sbase.DuplicateObjectID)+";",
			"}")
	}
	add = append(add, "else", "{", "  return "+a.member+".append("+v+");", "}")
	ms = append(ms,
		method{doc: "Adds a copy of the given " + t + " to this " + cg.name + ".", ret: "int", name: "add" + n.item,
			params: []param{{typ: "const " + t + "*", name: v}}, body: add},
		method{doc: "Get the number of " + t + " objects in this " + cg.name + ".", ret: "unsigned int",
			name: "getNum" + n.plural, isConst: true, body: []string{"return " + a.member + ".size();"}})

	for _, c := range concrete(a.target) {
		cv := schema.LowerFirst(c.Name)
		ms = append(ms, method{
			doc: "Creates a new " + c.Name + " object, adds it to this " + cg.name + " object and returns the " + c.Name + " object created.",
			ret: c.Name + "*", name: r.createName(cg, a, c),
			body: []string{
				c.Name + "* " + cv + " = NULL;",
				"",
				"try",
				"{",
				"  " + cg.createNS + "(" + cg.nsVar + ", " + cg.getNamespaces() + ");",
				"  " + cv + " = new " + c.Name + "(" + cg.nsVar + ");",
				"  delete " + cg.nsVar + ";",
				"}",
				"catch (...)",
				"{",
				"}",
				"",
				"if (" + cv + " != NULL)",
				"{",
				"  " + a.member + ".appendAndOwn(" + cv + ");",
				"}",
				"",
				"return " + cv + ";",
			},
		})
	}
	ms = append(ms, method{doc: "Removes the nth " + t + " from this " + cg.name + " and returns a pointer to it.",
		ret: t + "*", name: "remove" + n.item, params: []param{{typ: "unsigned int", name: "n"}},
		body: []string{"return " + a.member + ".remove(n);"}})
	if n.hasID {
		ms = append(ms, method{doc: "Removes the " + t + " with the given identifier from this " + cg.name + " and returns a pointer to it.",
			ret: t + "*", name: "remove" + n.item, params: []param{{typ: "const std::string&", name: "sid"}},
			body: []string{"return " + a.member + ".remove(sid);"}})
	}
	return ms
}

func (listRule) family(*classGen, *attr) (string, string, string) { return "", "", "" }

func (listRule) readAttr(*classGen, *attr) []string { return nil }

func (listRule) writeAttr(*classGen, *attr) []string { return nil }

func (r listRule) capi(cg *classGen, a *attr) []method {
	n := r.names(cg, a)
	t := a.target.Name + "_t"
	v := schema.LowerFirst(a.target.Name)
	nonConst := cg.cParam(false)
	invalid := func(call string) []string {
		return []string{"return (" + cg.cVar + " != NULL) ? " + call + " : " + cg.d.status(sbase.InvalidObject) + ";"}
	}
	ms := []method{
		{doc: "Returns a ListOf_t * containing " + t + " objects from this " + cg.cType + ".", ret: "ListOf_t*",
			name: cg.name + "_" + n.getList, params: []param{nonConst},
			body: []string{"return (" + cg.cVar + " != NULL) ? " + cg.cVar + "->" + n.getList + "() : NULL;"}},
		{doc: "Get a " + t + " from the " + cg.cType + " based on its index.", ret: t + "*",
			name: cg.name + "_get" + n.item, params: []param{nonConst, {typ: "unsigned int", name: "n"}},
			body: []string{"return (" + cg.cVar + " != NULL) ? " + cg.cVar + "->get" + n.item + "(n) : NULL;"}},
	}
	if n.hasID {
		ms = append(ms, method{doc: "Get a " + t + " from the " + cg.cType + " based on its identifier.", ret: t + "*",
			name: cg.name + "_get" + n.item + "ById", params: []param{nonConst, {typ: "const char *", name: "sid"}},
			body: []string{"return (" + cg.cVar + " != NULL && sid != NULL) ? " + cg.cVar + "->get" + n.item + "(sid) : NULL;"}})
	}
	ms = append(ms,
		method{doc: "Adds a copy of the given " + t + " to this " + cg.cType + ".", ret: "int",
			name: cg.name + "_add" + n.item, params: []param{nonConst, {typ: "const " + t + "*", name: v}},
			body: invalid(cg.cVar + "->add" + n.item + "(" + v + ")")},
		method{doc: "Get the number of " + t + " objects in this " + cg.cType + ".", ret: "unsigned int",
			name: cg.name + "_getNum" + n.plural, params: []param{nonConst},
			body: []string{"return (" + cg.cVar + " != NULL) ? " + cg.cVar + "->getNum" + n.plural + "() : " + cg.d.intMax() + ";"}})
	for _, c := range concrete(a.target) {
		create := r.createName(cg, a, c)
		ms = append(ms, method{doc: "Creates a new " + c.Name + "_t object, adds it to this " + cg.cType + " object and returns it.",
			ret: c.Name + "_t*", name: cg.name + "_" + create, params: []param{nonConst},
			body: []string{"return (" + cg.cVar + " != NULL) ? " + cg.cVar + "->" + create + "() : NULL;"}})
	}
	ms = append(ms, method{doc: "Removes the nth " + t + " from this " + cg.cType + " and returns a pointer to it.",
		ret: t + "*", name: cg.name + "_remove" + n.item, params: []param{nonConst, {typ: "unsigned int", name: "n"}},
		body: []string{"return (" + cg.cVar + " != NULL) ? " + cg.cVar + "->remove" + n.item + "(n) : NULL;"}})
	if n.hasID {
		ms = append(ms, method{doc: "Removes the " + t + " with the given identifier from this " + cg.cType + " and returns a pointer to it.",
			ret: t + "*", name: cg.name + "_remove" + n.item + "ById", params: []param{nonConst, {typ: "const char*", name: "sid"}},
			body: []string{"return (" + cg.cVar + " != NULL && sid != NULL) ? " + cg.cVar + "->remove" + n.item + "(sid) : NULL;"}})
	}
	return ms
}

func (r listRule) creates(cg *classGen, a *attr) []branch {
	n := r.names(cg, a)
	body := block("if (getNum"+n.plural+"() != 0)", cg.logCall(sbase.RuleElements, "\"\"", "getErrorLog()->")...)
	body = append(body, "", "obj = &"+a.member+";")
	return []branch{{cond: "name == \"" + cg.md.ChildXMLName(&a.Attribute) + "\"", body: body}}
}

func (r listRule) writeElem(cg *classGen, a *attr) []string {
	return block("if (getNum"+r.names(cg, a).plural+"() > 0)", a.member+".write(stream);")
}

func (listRule) visit(_ *classGen, a *attr) []string { return []string{a.member + ".accept(v);"} }

func (listRule) connect(cg *classGen, a *attr) []string {
	return []string{a.member + ".connectToParent(" + cg.self() + ");"}
}

func (listRule) setDocument(cg *classGen, a *attr) []string {
	return []string{a.member + ".set" + cg.d.document + "(d);"}
}

func (listRule) enablePackage(_ *classGen, a *attr) []string {
	return []string{a.member + ".enablePackageInternal(pkgURI, pkgPrefix, flag);"}
}

func (r listRule) missing(cg *classGen, a *attr) string {
	return "getNum" + r.names(cg, a).plural + "() == 0"
}

func (r listRule) objects(cg *classGen, a *attr) (count, get, create []branch) {
	n := r.names(cg, a)
	var elems []string
	for _, c := range concrete(a.target) {
		elems = append(elems, c.ElementName)
		create = append(create, branch{cond: "elementName == \"" + c.ElementName + "\"",
			body: []string{"return " + r.createName(cg, a, c) + "();"}})
	}
	cond := orEquals("elementName", elems)
	count = []branch{{cond: cond, body: []string{"return getNum" + n.plural + "();"}}}
	get = []branch{{cond: cond, body: []string{"return get" + n.item + "(index);"}}}
	return count, get, create
}
