package cpp

import (
	"fmt"

	"github.com/sbmlteam/deviser/internal/codegen/meta"
	"github.com/sbmlteam/deviser/sbase"
	"github.com/sbmlteam/deviser/schema"
)

// classGen renders one package class or one plugin.
type classGen struct {
	*generator
	c       *meta.Class // nil for plugins
	name    string
	base    string
	basePkg *meta.Class // package base class, nil when deriving from the host library
	elem    string
	entry   string // error table entry
	plugin  bool
	host    string // extended class of a plugin
	cType   string
	cVar    string
	attrs   []*attr
}

func (g *generator) classGen(c *meta.Class) (*classGen, error) {
	cg := &classGen{
		generator: g,
		c:         c,
		name:      c.Name,
		base:      c.BaseClass,
		basePkg:   c.Base,
		elem:      c.ElementName,
		entry:     c.Name,
		cType:     c.Name + "_t",
		cVar:      initials(c.Name),
	}
	own := append([]schema.Attribute(nil), c.Attributes...)
	for _, p := range c.Plugins {
		own = append(own, p.Attributes...)
	}
	if err := cg.resolve(own); err != nil {
		return nil, err
	}
	return cg, nil
}

func (g *generator) pluginGen(p *meta.Plugin) (*classGen, error) {
	base := g.d.plugin
	if p.Extends == g.d.document {
		base = g.d.docPlugin
	}
	cg := &classGen{
		generator: g,
		name:      g.prefix + p.Extends + "Plugin",
		base:      base,
		elem:      schema.LowerFirst(p.Extends),
		entry:     p.Extends,
		plugin:    true,
		host:      p.Extends,
	}
	if err := cg.resolve(p.Attributes); err != nil {
		return nil, err
	}
	return cg, nil
}

func (cg *classGen) resolve(attrs []schema.Attribute) error {
	for _, a := range attrs {
		ra, err := cg.newAttr(a)
		if err != nil {
			return fmt.Errorf("%s: %w", cg.name, err)
		}
		cg.attrs = append(cg.attrs, ra)
	}
	return nil
}

func (cg *classGen) values() []*attr {
	var out []*attr
	for _, a := range cg.attrs {
		if !a.Kind().IsChild() {
			out = append(out, a)
		}
	}
	return out
}

func (cg *classGen) children() []*attr {
	var out []*attr
	for _, a := range cg.attrs {
		if a.Kind().IsChild() {
			out = append(out, a)
		}
	}
	return out
}

func (cg *classGen) self() string {
	if cg.plugin {
		return "getParent" + cg.d.lang + "Object()"
	}
	return "this"
}

func (cg *classGen) getNamespaces() string { return "get" + cg.d.lang + "Namespaces()" }

func (cg *classGen) cParam(isConst bool) param {
	t := cg.cType + " *"
	if isConst {
		t = "const " + t
	}
	return param{typ: t, name: cg.cVar}
}

func (cg *classGen) capiIsSet(a *attr) method {
	return method{
		doc:    fmt.Sprintf("Predicate returning @c 1 if this %s's \"%s\" is set.", cg.cType, a.Name),
		ret:    "int",
		name:   cg.name + "_isSet" + a.cap,
		params: []param{cg.cParam(true)},
		body:   []string{"return (" + cg.cVar + " != NULL) ? static_cast<int>(" + cg.cVar + "->isSet" + a.cap + "()) : 0;"},
	}
}

func (cg *classGen) capiUnset(a *attr) method {
	return method{
		doc:    fmt.Sprintf("Unsets the \"%s\" of this %s.", a.Name, cg.cType),
		ret:    "int",
		name:   cg.name + "_unset" + a.cap,
		params: []param{cg.cParam(false)},
		body:   []string{"return (" + cg.cVar + " != NULL) ? " + cg.cVar + "->unset" + a.cap + "() : " + cg.d.status(sbase.InvalidObject) + ";"},
	}
}

func (cg *classGen) successIf(cond string) []string {
	out := block("if ("+cond+")", "return "+cg.d.status(sbase.OperationSuccess)+";")
	return append(out, block("else", "return "+cg.d.status(sbase.OperationFailed)+";")...)
}

func (cg *classGen) errName(r sbase.Rule) string {
	return cg.md.Errors.Def(cg.md.Errors.ClassCode(cg.entry, r)).Name
}

func (cg *classGen) pkgErr(rel int) string {
	return cg.md.Errors.Def(cg.md.Errors.PackageCode(rel)).Name
}

// logExpr logs rule from inside readAttributes, where level, version and log are locals.
func (cg *classGen) logExpr(r sbase.Rule, msg string) []string {
	return []string{
		"log->logPackageError(\"" + cg.pkg + "\", " + cg.errName(r) + ",",
		"  pkgVersion, level, version, " + msg + ", getLine(), getColumn());",
	}
}

func (cg *classGen) logMessage(r sbase.Rule, msg string) []string {
	return append([]string{"std::string message = " + cString(msg) + ";"}, cg.logExpr(r, "message")...)
}

// logCall logs rule through recv outside readAttributes.
func (cg *classGen) logCall(r sbase.Rule, msg, recv string) []string {
	return []string{
		recv + "logPackageError(\"" + cg.pkg + "\", " + cg.errName(r) + ",",
		"  getPackageVersion(), getLevel(), getVersion(), " + msg + ", getLine(), getColumn());",
	}
}

func (cg *classGen) missingMessage(a *attr) string {
	return fmt.Sprintf("%s attribute '%s' is missing from the <%s> element.", cg.prefix, a.XML(), cg.elem)
}

// build models every method of the class. The returned member lines are the data members.
func (cg *classGen) build() (public, protected, capi []method, members []string) {
	for _, a := range cg.attrs {
		members = append(members, a.rule.members(cg, a)...)
	}
	if !cg.plugin {
		members = append(members, "std::string mElementName;")
	}

	public = append(public, cg.constructors()...)
	for _, a := range cg.attrs {
		public = append(public, a.rule.accessors(cg, a)...)
	}
	if !cg.plugin {
		public = append(public, cg.predicates()...)
		public = append(public, cg.identity()...)
	}
	public = append(public, cg.required()...)
	public = append(public, cg.structure()...)
	public = append(public, cg.families()...)
	if len(cg.children()) > 0 {
		public = append(public, cg.objectAccess()...)
	}

	if len(cg.children()) > 0 {
		protected = append(protected, cg.createObject())
	}
	if !cg.plugin || len(cg.values()) > 0 {
		protected = append(protected, cg.addExpected(), cg.readAttributes(), cg.writeAttributes())
	}

	if !cg.plugin && cg.md.Package.CAPI() {
		capi = cg.capiFunctions()
	}
	return public, protected, capi, members
}

func (g *generator) levelParams() []param {
	return []param{
		{typ: "unsigned int", name: "level", def: g.ext + "::getDefaultLevel()"},
		{typ: "unsigned int", name: "version", def: g.ext + "::getDefaultVersion()"},
		{typ: "unsigned int", name: "pkgVersion", def: g.ext + "::getDefaultPackageVersion()"},
	}
}

func (cg *classGen) inits(k ctorKind) []string {
	var out []string
	for _, a := range cg.attrs {
		out = append(out, a.rule.ctorInit(cg, a, k)...)
	}
	if !cg.plugin {
		if k == ctorCopy {
			out = append(out, "mElementName (orig.mElementName)")
		} else {
			out = append(out, "mElementName ("+cString(cg.elem)+")")
		}
	}
	return out
}

func (cg *classGen) constructors() []method {
	var ms []method
	nsParam := param{typ: cg.pkgNS + " *", name: cg.nsVar}

	if cg.plugin {
		ms = append(ms, method{
			doc:    "Creates a new " + cg.name + " using the given URI, prefix and package namespace.",
			name:   cg.name,
			params: []param{{typ: "const std::string&", name: "uri"}, {typ: "const std::string&", name: "prefix"}, nsParam},
			init:   append([]string{cg.base + "(uri, prefix, " + cg.nsVar + ")"}, cg.inits(ctorNS)...),
			body:   []string{"connectToChild();"},
		})
	} else {
		baseLevel := cg.base + "(level, version)"
		if cg.basePkg != nil {
			baseLevel = cg.base + "(level, version, pkgVersion)"
		}
		ms = append(ms,
			method{
				doc:    "Creates a new " + cg.name + " using the given " + cg.d.lang + " Level, Version and &ldquo;" + cg.pkg + "&rdquo; package version.",
				name:   cg.name,
				params: cg.levelParams(),
				init:   append([]string{baseLevel}, cg.inits(ctorLevel)...),
				body: []string{
					"set" + cg.d.lang + "NamespacesAndOwn(new " + cg.pkgNS + "(level, version, pkgVersion));",
					"connectToChild();",
				},
			},
			method{
				doc:    "Creates a new " + cg.name + " using the given " + cg.pkgNS + " object.",
				name:   cg.name,
				params: []param{nsParam},
				init:   append([]string{cg.base + "(" + cg.nsVar + ")"}, cg.inits(ctorNS)...),
				body: []string{
					"setElementNamespace(" + cg.nsVar + "->getURI());",
					"connectToChild();",
					"loadPlugins(" + cg.nsVar + ");",
				},
			})
	}

	var copyBody, assign, destroy []string
	for _, a := range cg.attrs {
		copyBody = append(copyBody, a.rule.copyBody(cg, a)...)
		assign = append(assign, a.rule.assign(cg, a)...)
		destroy = append(destroy, a.rule.destroy(cg, a)...)
	}
	if !cg.plugin {
		assign = append(assign, "mElementName = rhs.mElementName;")
	}
	copyBody = append(copyBody, "connectToChild();")
	assign = append(assign, "connectToChild();")

	ms = append(ms,
		method{
			doc:    "Copy constructor for " + cg.name + ".",
			name:   cg.name,
			params: []param{{typ: "const " + cg.name + "&", name: "orig"}},
			init:   append([]string{cg.base + "(orig)"}, cg.inits(ctorCopy)...),
			body:   copyBody,
		},
		method{
			doc:    "Assignment operator for " + cg.name + ".",
			ret:    cg.name + "&",
			name:   "operator=",
			params: []param{{typ: "const " + cg.name + "&", name: "rhs"}},
			body: append(block("if (&rhs != this)",
				append([]string{cg.base + "::operator=(rhs);"}, assign...)...),
				"", "return *this;"),
		},
		method{
			doc:     "Creates and returns a deep copy of this " + cg.name + " object.",
			ret:     cg.name + "*",
			name:    "clone",
			isConst: true,
			virtual: true,
			body:    []string{"return new " + cg.name + "(*this);"},
		},
		method{
			doc:     "Destructor for " + cg.name + ".",
			name:    "~" + cg.name,
			virtual: true,
			body:    destroy,
		})
	return ms
}

// predicates are the is<Derived> tests of an abstract class.
func (cg *classGen) predicates() []method {
	if !cg.c.Abstract {
		return nil
	}
	var ms []method
	for _, d := range cg.c.Derived {
		if d.Abstract || d.Name == cg.name {
			continue
		}
		ms = append(ms, method{
			doc:     "Predicate returning @c true if this abstract " + cg.name + " is of type " + d.Name + ".",
			ret:     "bool",
			name:    "is" + d.Name,
			isConst: true,
			virtual: true,
			body:    []string{"return dynamic_cast<const " + d.Name + "*>(this) != NULL;"},
		})
	}
	return ms
}

func (cg *classGen) identity() []method {
	return []method{
		{
			doc:     "Returns the XML element name of this " + cg.name + " object.",
			ret:     "const std::string&",
			name:    "getElementName",
			isConst: true,
			virtual: true,
			body:    []string{"return mElementName;"},
		},
		{
			doc:     "Sets the XML name of this " + cg.name + " object.",
			ret:     "void",
			name:    "setElementName",
			params:  []param{{typ: "const std::string&", name: "name"}},
			virtual: true,
			body:    []string{"mElementName = name;"},
		},
		{
			doc:     "Returns the libSBML type code for this " + cg.name + " object.",
			ret:     "int",
			name:    "getTypeCode",
			isConst: true,
			virtual: true,
			body:    []string{"return " + cg.c.TypeCode + ";"},
		},
	}
}

func (cg *classGen) required() []method {
	attrs := []string{"bool allPresent = true;"}
	elems := []string{"bool allPresent = true;"}
	if cg.basePkg != nil {
		attrs = []string{"bool allPresent = " + cg.base + "::hasRequiredAttributes();"}
		elems = []string{"bool allPresent = " + cg.base + "::hasRequiredElements();"}
	}
	for _, a := range cg.attrs {
		if !a.Required {
			continue
		}
		if cr, ok := a.rule.(childRule); ok {
			elems = append(elems, "")
			elems = append(elems, block("if ("+cr.missing(cg, a)+")", "allPresent = false;")...)
			continue
		}
		attrs = append(attrs, "")
		attrs = append(attrs, block("if (isSet"+a.cap+"() == false)", "allPresent = false;")...)
	}
	attrs = append(attrs, "", "return allPresent;")
	elems = append(elems, "", "return allPresent;")
	return []method{
		{doc: "Predicate returning @c true if all the required attributes for this " + cg.name + " object have been set.",
			ret: "bool", name: "hasRequiredAttributes", isConst: true, virtual: true, body: attrs},
		{doc: "Predicate returning @c true if all the required elements for this " + cg.name + " object have been set.",
			ret: "bool", name: "hasRequiredElements", isConst: true, virtual: true, body: elems},
	}
}

// structure renders the child traversal methods.
func (cg *classGen) structure() []method {
	var visit, connect, setDoc, enable []string
	write := []string{cg.base + "::writeElements(stream);"}
	if cg.plugin {
		parent := cg.host
		visit = []string{
			"const " + parent + "* obj = static_cast<const " + parent + "*>(this->getParent" + cg.d.lang + "Object());",
			"v.visit(*obj);",
			"v.leave(*obj);",
		}
	} else {
		visit = []string{"v.visit(*this);"}
	}
	connect = []string{cg.base + "::connectToChild();"}
	setDoc = []string{cg.base + "::set" + cg.d.document + "(d);"}
	enable = []string{cg.base + "::enablePackageInternal(pkgURI, pkgPrefix, flag);"}

	for _, a := range cg.children() {
		cr := a.rule.(childRule)
		write = append(write, "")
		write = append(write, cr.writeElem(cg, a)...)
		visit = append(visit, "")
		visit = append(visit, cr.visit(cg, a)...)
		connect = append(connect, "")
		connect = append(connect, cr.connect(cg, a)...)
		setDoc = append(setDoc, "")
		setDoc = append(setDoc, cr.setDocument(cg, a)...)
		enable = append(enable, "")
		enable = append(enable, cr.enablePackage(cg, a)...)
	}
	if !cg.plugin {
		write = append(write, "", cg.d.base+"::writeExtensionElements(stream);")
		visit = append(visit, "", "v.leave(*this);")
	}
	visit = append(visit, "", "return true;")

	stream := param{typ: "XMLOutputStream&", name: "stream"}
	return []method{
		{ret: "void", name: "writeElements", params: []param{stream}, isConst: true, virtual: true, body: write},
		{doc: "Accepts the given " + cg.d.visitor + " for this instance of " + cg.name + ".",
			ret: "bool", name: "accept", params: []param{{typ: cg.d.visitor + "&", name: "v"}}, isConst: true, virtual: true, body: visit},
		{ret: "void", name: "set" + cg.d.document, params: []param{{typ: cg.d.document + "*", name: "d"}}, virtual: true, body: setDoc},
		{ret: "void", name: "connectToChild", virtual: true, body: connect},
		{ret: "void", name: "enablePackageInternal", virtual: true, body: enable,
			params: []param{{typ: "const std::string&", name: "pkgURI"}, {typ: "const std::string&", name: "pkgPrefix"}, {typ: "bool", name: "flag"}}},
	}
}

var families = []struct{ typ, param string }{
	{"bool", "bool"},
	{"int", "int"},
	{"double", "double"},
	{"unsigned int", "unsigned int"},
	{"std::string", "const std::string&"},
}

// families renders the name-keyed accessors. Own attributes are matched first,
// everything else falls through to the base class.
func (cg *classGen) families() []method {
	nameParam := param{typ: "const std::string&", name: "attributeName"}
	var ms []method
	for _, f := range families {
		var get, set []branch
		for _, a := range cg.values() {
			fam, getter, setter := a.rule.family(cg, a)
			if fam != f.typ {
				continue
			}
			cond := "attributeName == \"" + a.XML() + "\""
			get = append(get, branch{cond: cond, body: []string{"value = " + getter + ";", "return " + cg.d.status(sbase.OperationSuccess) + ";"}})
			set = append(set, branch{cond: cond, body: []string{"return " + setter + ";"}})
		}
		getBody := chain(get)
		if len(getBody) > 0 {
			getBody = append(getBody, "")
		}
		getBody = append(getBody, "return "+cg.base+"::getAttribute(attributeName, value);")
		setBody := chain(set)
		if len(setBody) > 0 {
			setBody = append(setBody, "")
		}
		setBody = append(setBody, "return "+cg.base+"::setAttribute(attributeName, value);")
		ms = append(ms,
			method{doc: "Gets the value of the \"attributeName\" attribute of this " + cg.name + ".",
				ret: "int", name: "getAttribute", isConst: true, virtual: true,
				params: []param{nameParam, {typ: f.typ + "&", name: "value"}}, body: getBody},
			method{doc: "Sets the value of the \"attributeName\" attribute of this " + cg.name + ".",
				ret: "int", name: "setAttribute", virtual: true,
				params: []param{nameParam, {typ: f.param, name: "value"}}, body: setBody})
	}

	var isSet, unset []branch
	for _, a := range cg.values() {
		cond := "attributeName == \"" + a.XML() + "\""
		isSet = append(isSet, branch{cond: cond, body: []string{"return isSet" + a.cap + "();"}})
		unset = append(unset, branch{cond: cond, body: []string{"return unset" + a.cap + "();"}})
	}
	isSetBody := chain(isSet)
	unsetBody := chain(unset)
	if len(isSet) > 0 {
		isSetBody = append(isSetBody, "")
		unsetBody = append(unsetBody, "")
	}
	isSetBody = append(isSetBody, "return "+cg.base+"::isSetAttribute(attributeName);")
	unsetBody = append(unsetBody, "return "+cg.base+"::unsetAttribute(attributeName);")
	return append(ms,
		method{doc: "Predicate returning @c true if this " + cg.name + "'s attribute \"attributeName\" is set.",
			ret: "bool", name: "isSetAttribute", isConst: true, virtual: true, params: []param{nameParam}, body: isSetBody},
		method{doc: "Unsets the value of the \"attributeName\" attribute of this " + cg.name + ".",
			ret: "int", name: "unsetAttribute", virtual: true, params: []param{nameParam}, body: unsetBody})
}

func (cg *classGen) objectAccess() []method {
	var count, get, create []branch
	for _, a := range cg.children() {
		c, g, cr := a.rule.(childRule).objects(cg, a)
		count = append(count, c...)
		get = append(get, g...)
		create = append(create, cr...)
	}
	sb := cg.d.base + "*"
	createBody := append(chain(create), "", "return NULL;")
	countBody := append(chain(count), "", "return 0;")
	getBody := append(chain(get), "", "return NULL;")
	if cg.basePkg != nil {
		createBody = append([]string{sb + " obj = " + cg.base + "::createChildObject(elementName);", ""},
			append(block("if (obj != NULL)", "return obj;"), append([]string{""}, createBody...)...)...)
		countBody[len(countBody)-1] = "return " + cg.base + "::getNumObjects(elementName);"
		getBody[len(getBody)-1] = "return " + cg.base + "::getObject(elementName, index);"
	}
	nameParam := param{typ: "const std::string&", name: "elementName"}
	return []method{
		{doc: "Creates and returns a new child object of this " + cg.name + " named elementName.",
			ret: sb, name: "createChildObject", virtual: true, params: []param{nameParam}, body: createBody},
		{doc: "Returns the number of child objects of this " + cg.name + " named elementName.",
			ret: "unsigned int", name: "getNumObjects", virtual: true, params: []param{nameParam}, body: countBody},
		{doc: "Returns the nth child object of this " + cg.name + " named elementName.",
			ret: sb, name: "getObject", virtual: true,
			params: []param{nameParam, {typ: "unsigned int", name: "index"}}, body: getBody},
	}
}

func (cg *classGen) createObject() method {
	var body []string
	if cg.basePkg != nil {
		body = append(body, cg.d.base+"* obj = "+cg.base+"::createObject(stream);", "")
		body = append(body, block("if (obj != NULL)", "return obj;")...)
		body = append(body, "")
	} else {
		body = append(body, cg.d.base+"* obj = NULL;", "")
	}
	body = append(body, "const std::string& name = stream.peek().getName();")

	var brs []branch
	for _, a := range cg.children() {
		brs = append(brs, a.rule.(childRule).creates(cg, a)...)
	}
	create := append([]string{cg.createNS + "(" + cg.nsVar + ", " + cg.getNamespaces() + ");", ""}, chain(brs)...)
	create = append(create, "", "delete "+cg.nsVar+";")

	if cg.plugin {
		body = append(body,
			"const XMLNamespaces& xmlns = stream.peek().getNamespaces();",
			"const std::string& prefix = stream.peek().getPrefix();",
			"const std::string& targetPrefix = (xmlns.hasURI(mURI)) ? xmlns.getPrefix(mURI) : mPrefix;",
			"")
		body = append(body, block("if (prefix == targetPrefix)", create...)...)
	} else {
		body = append(body, "")
		body = append(body, create...)
	}
	body = append(body, "", "connectToChild();", "", "return obj;")
	return method{ret: cg.d.base + "*", name: "createObject", virtual: true, protected: true,
		params: []param{{typ: "XMLInputStream&", name: "stream"}}, body: body}
}

func (cg *classGen) addExpected() method {
	body := []string{cg.base + "::addExpectedAttributes(attributes);"}
	if len(cg.values()) > 0 {
		body = append(body, "")
	}
	for _, a := range cg.values() {
		body = append(body, "attributes.add(\""+a.XML()+"\");")
	}
	return method{ret: "void", name: "addExpectedAttributes", virtual: true, protected: true,
		params: []param{{typ: "ExpectedAttributes&", name: "attributes"}}, body: body}
}

func (cg *classGen) readAttributes() method {
	var needNum, needAssigned bool
	for _, a := range cg.values() {
		switch a.rule.(type) {
		case scalarRule:
			needNum = true
		default:
			needAssigned = true
		}
	}
	body := []string{
		"unsigned int level = getLevel();",
		"unsigned int version = getVersion();",
		"unsigned int pkgVersion = getPackageVersion();",
	}
	if needNum {
		body = append(body, "unsigned int numErrs = 0;")
	}
	if needAssigned {
		body = append(body, "bool assigned = false;")
	}
	body = append(body,
		cg.d.errorLog+"* log = getErrorLog();",
		"",
		cg.base+"::readAttributes(attributes, expectedAttributes);")

	if !cg.plugin && cg.basePkg == nil {
		body = append(body, "")
		rewrite := func(from string, r sbase.Rule) []string {
			return block("if (log->getError(n)->getErrorId() == "+from+")",
				append([]string{
					"const std::string details = log->getError(n)->getMessage();",
					"log->remove(" + from + ");",
				}, cg.logExpr(r, "details")...)...)
		}
		inner := rewrite("UnknownPackageAttribute", sbase.RuleAttributes)
		core := rewrite("UnknownCoreAttribute", sbase.RuleCoreAttributes)
		core[0] = "else " + core[0]
		loop := block("for (int n = log->getNumErrors()-1; n >= 0; n--)", append(inner, core...)...)
		body = append(body, block("if (log)", loop...)...)
	}

	for _, a := range cg.values() {
		body = append(body, "", "// ", "// "+a.Name+" "+a.Kind().String()+" (use = \""+use(a.Required)+"\" )", "// ", "")
		body = append(body, a.rule.readAttr(cg, a)...)
	}
	return method{ret: "void", name: "readAttributes", virtual: true, protected: true,
		params: []param{{typ: "const XMLAttributes&", name: "attributes"}, {typ: "const ExpectedAttributes&", name: "expectedAttributes"}},
		body:   body}
}

func use(required bool) string {
	if required {
		return "required"
	}
	return "optional"
}

func (cg *classGen) writeAttributes() method {
	body := []string{cg.base + "::writeAttributes(stream);"}
	for _, a := range cg.values() {
		body = append(body, "")
		body = append(body, a.rule.writeAttr(cg, a)...)
	}
	if !cg.plugin {
		body = append(body, "", cg.d.base+"::writeExtensionAttributes(stream);")
	}
	return method{ret: "void", name: "writeAttributes", isConst: true, virtual: true, protected: true,
		params: []param{{typ: "XMLOutputStream&", name: "stream"}}, body: body}
}

func (cg *classGen) capiFunctions() []method {
	var ms []method
	if !cg.c.Abstract {
		ms = append(ms, method{
			doc:    "Creates a new " + cg.cType + " using the given " + cg.d.lang + " Level, Version and &ldquo;" + cg.pkg + "&rdquo; package version.",
			ret:    cg.cType + " *",
			name:   cg.name + "_create",
			params: []param{{typ: "unsigned int", name: "level"}, {typ: "unsigned int", name: "version"}, {typ: "unsigned int", name: "pkgVersion"}},
			body:   []string{"return new " + cg.name + "(level, version, pkgVersion);"},
		})
	}
	ms = append(ms,
		method{
			doc:    "Creates and returns a deep copy of this " + cg.cType + " object.",
			ret:    cg.cType + "*",
			name:   cg.name + "_clone",
			params: []param{cg.cParam(true)},
			body: append(block("if ("+cg.cVar+" != NULL)", "return static_cast<"+cg.cType+"*>("+cg.cVar+"->clone());"),
				block("else", "return NULL;")...),
		},
		method{
			doc:    "Frees this " + cg.cType + " object.",
			ret:    "void",
			name:   cg.name + "_free",
			params: []param{cg.cParam(false)},
			body:   block("if ("+cg.cVar+" != NULL)", "delete "+cg.cVar+";"),
		})
	for _, a := range cg.attrs {
		ms = append(ms, a.rule.capi(cg, a)...)
	}
	for _, what := range []string{"Attributes", "Elements"} {
		ms = append(ms, method{
			doc:    "Predicate returning @c 1 if all the required " + schema.LowerFirst(what) + " for this " + cg.cType + " object have been set.",
			ret:    "int",
			name:   cg.name + "_hasRequired" + what,
			params: []param{cg.cParam(true)},
			body:   []string{"return (" + cg.cVar + " != NULL) ? static_cast<int>(" + cg.cVar + "->hasRequired" + what + "()) : 0;"},
		})
	}
	return ms
}
