package cpp

import (
	"fmt"

	"github.com/sbmlteam/deviser/internal/codegen/common"
	"github.com/sbmlteam/deviser/internal/codegen/meta"
	"github.com/sbmlteam/deviser/sbase"
	"github.com/sbmlteam/deviser/schema"
)

// ctorKind selects the initializer list of a constructor.
type ctorKind int

const (
	ctorLevel ctorKind = iota // (level, version, pkgVersion)
	ctorNS                    // (PkgNamespaces*)
	ctorCopy                  // (const Class& orig)
)

// attr is one attribute or child of the class being rendered, with its names resolved.
type attr struct {
	schema.Attribute
	cap    string      // Pascal case name
	member string      // mName
	flag   string      // mIsSetName
	target *meta.Class // element and list children
	enum   *schema.Enum
	rule   typeRule
}

// typeRule renders everything one attribute kind contributes to a class.
type typeRule interface {
	members(cg *classGen, a *attr) []string
	ctorInit(cg *classGen, a *attr, k ctorKind) []string
	copyBody(cg *classGen, a *attr) []string
	assign(cg *classGen, a *attr) []string
	destroy(cg *classGen, a *attr) []string
	accessors(cg *classGen, a *attr) []method
	// family returns the generic accessor family, the getter expression and
	// the setter call. An empty family keeps the attribute out of the
	// getAttribute and setAttribute overloads.
	family(cg *classGen, a *attr) (typ, get, set string)
	readAttr(cg *classGen, a *attr) []string
	writeAttr(cg *classGen, a *attr) []string
	capi(cg *classGen, a *attr) []method
}

// childRule is implemented by the kinds that own child objects.
type childRule interface {
	creates(cg *classGen, a *attr) []branch
	writeElem(cg *classGen, a *attr) []string
	visit(cg *classGen, a *attr) []string
	connect(cg *classGen, a *attr) []string
	setDocument(cg *classGen, a *attr) []string
	enablePackage(cg *classGen, a *attr) []string
	missing(cg *classGen, a *attr) string
	objects(cg *classGen, a *attr) (count, get, create []branch)
}

// branch is one arm of an if / else if chain.
type branch struct {
	cond string
	body []string
}

var typeRules = map[schema.Kind]typeRule{
	schema.KindBool:        scalarRule{typ: "bool", ctype: "int", fam: "bool", cast: true},
	schema.KindInt:         scalarRule{typ: "int", ctype: "int", fam: "int", intMax: true, what: "an integer"},
	schema.KindUInt:        scalarRule{typ: "unsigned int", ctype: "unsigned int", fam: "unsigned int", intMax: true, what: "a non-negative integer"},
	schema.KindDouble:      scalarRule{typ: "double", ctype: "double", fam: "double", nan: true, what: "a double"},
	schema.KindString:      stringRule{},
	schema.KindSId:         stringRule{check: checkSId},
	schema.KindSIdRef:      stringRule{check: checkSIdRef},
	schema.KindEnum:        enumRule{},
	schema.KindDoubleArray: arrayRule{},
	schema.KindElement:     elementRule{},
	schema.KindListOf:      listRule{},
}

func (g *generator) newAttr(a schema.Attribute) (*attr, error) {
	rule, ok := typeRules[a.Kind()]
	if !ok {
		return nil, fmt.Errorf("attribute %q: no C++ rule for kind %s", a.Name, a.Kind())
	}
	pascal := common.ToPascalCase(a.Name)
	out := &attr{
		Attribute: a,
		cap:       pascal,
		member:    common.MemberName(a.Name),
		flag:      "mIsSet" + pascal,
		rule:      rule,
	}
	switch a.Kind() {
	case schema.KindElement, schema.KindListOf:
		out.target = g.md.Target(&a)
		if out.target == nil {
			return nil, fmt.Errorf("attribute %q: unknown class %q", a.Name, a.Element)
		}
	case schema.KindEnum:
		out.enum = g.md.Version.Enum(a.Element)
		if out.enum == nil {
			return nil, fmt.Errorf("attribute %q: unknown enumeration %q", a.Name, a.Element)
		}
	}
	return out, nil
}

func docAttr(verb string, a *attr, class string) string {
	return fmt.Sprintf("%s the value of the \"%s\" attribute of this %s.", verb, a.Name, class)
}

// --- scalars ---------------------------------------------------------------

type scalarRule struct {
	typ    string
	ctype  string
	fam    string
	cast   bool // bool travels through the C API as int
	intMax bool
	nan    bool
	what   string
}

func (r scalarRule) unset(cg *classGen) string {
	switch {
	case r.intMax:
		return cg.d.intMax()
	case r.nan:
		return "util_NaN()"
	}
	return "false"
}

func (r scalarRule) members(cg *classGen, a *attr) []string {
	return []string{r.typ + " " + a.member + ";", "bool " + a.flag + ";"}
}

func (r scalarRule) ctorInit(cg *classGen, a *attr, k ctorKind) []string {
	if k == ctorCopy {
		return []string{a.member + " (orig." + a.member + ")", a.flag + " (orig." + a.flag + ")"}
	}
	v := r.unset(cg)
	if a.Default != "" {
		v = a.Default
	}
	return []string{a.member + " (" + v + ")", a.flag + " (false)"}
}

func (r scalarRule) copyBody(*classGen, *attr) []string { return nil }

func (r scalarRule) assign(_ *classGen, a *attr) []string {
	return []string{a.member + " = rhs." + a.member + ";", a.flag + " = rhs." + a.flag + ";"}
}

func (r scalarRule) destroy(*classGen, *attr) []string { return nil }

func (r scalarRule) accessors(cg *classGen, a *attr) []method {
	return []method{
		{doc: docAttr("Returns", a, cg.name), ret: r.typ, name: "get" + a.cap, isConst: true,
			body: []string{"return " + a.member + ";"}},
		{doc: fmt.Sprintf("Predicate returning @c true if this %s's \"%s\" attribute is set.", cg.name, a.Name),
			ret: "bool", name: "isSet" + a.cap, isConst: true,
			body: []string{"return " + a.flag + ";"}},
		{doc: docAttr("Sets", a, cg.name), ret: "int", name: "set" + a.cap,
			params: []param{{typ: r.typ, name: schema.LowerFirst(a.cap)}},
			body: []string{
				a.member + " = " + schema.LowerFirst(a.cap) + ";",
				a.flag + " = true;",
				"return " + cg.d.status(sbase.OperationSuccess) + ";",
			}},
		{doc: docAttr("Unsets", a, cg.name), ret: "int", name: "unset" + a.cap,
			body: append([]string{
				a.member + " = " + r.unset(cg) + ";",
				a.flag + " = false;",
				"",
			}, cg.successIf("isSet"+a.cap+"() == false")...)},
	}
}

func (r scalarRule) family(_ *classGen, a *attr) (string, string, string) {
	return r.fam, "get" + a.cap + "()", "set" + a.cap + "(value)"
}

func (r scalarRule) readAttr(cg *classGen, a *attr) []string {
	out := []string{
		"if (log)",
		"{",
		"  numErrs = log->getNumErrors();",
		"}",
		"",
		a.flag + " = attributes.readInto(\"" + a.XML() + "\", " + a.member + ");",
		"",
		"if (" + a.flag + " == false && log)",
		"{",
		"  if (log->getNumErrors() == numErrs + 1 &&",
		"    log->contains(XMLAttributeTypeMismatch))",
		"  {",
		"    log->remove(XMLAttributeTypeMismatch);",
	}
	what := r.what
	if what == "" {
		what = "a boolean"
	}
	out = append(out, indent(2, cg.logMessage(sbase.RuleAttributeValue,
		fmt.Sprintf("%s attribute '%s' from the <%s> element must be %s.", cg.prefix, a.XML(), cg.elem, what)))...)
	out = append(out, "  }")
	if a.Required {
		out = append(out, "  else", "  {")
		out = append(out, indent(2, cg.logMessage(sbase.RuleAttributes, cg.missingMessage(a)))...)
		out = append(out, "  }")
	}
	return append(out, "}")
}

func (r scalarRule) writeAttr(cg *classGen, a *attr) []string {
	return block("if (isSet"+a.cap+"() == true)",
		"stream.writeAttribute(\""+a.XML()+"\", getPrefix(), "+a.member+");")
}

func (r scalarRule) capi(cg *classGen, a *attr) []method {
	get := cg.cVar + "->get" + a.cap + "()"
	if r.cast {
		get = "static_cast<int>(" + get + ")"
	}
	unset := r.unset(cg)
	if r.cast {
		unset = "0"
	}
	name := schema.LowerFirst(a.cap)
	return []method{
		{doc: docAttr("Returns", a, cg.cType), ret: r.ctype, name: cg.name + "_get" + a.cap,
			params: []param{cg.cParam(true)},
			body:   []string{"return (" + cg.cVar + " != NULL) ? " + get + " : " + unset + ";"}},
		cg.capiIsSet(a),
		{doc: docAttr("Sets", a, cg.cType), ret: "int", name: cg.name + "_set" + a.cap,
			params: []param{cg.cParam(false), {typ: r.ctype, name: name}},
			body:   []string{"return (" + cg.cVar + " != NULL) ? " + cg.cVar + "->set" + a.cap + "(" + name + ") : " + cg.d.status(sbase.InvalidObject) + ";"}},
		cg.capiUnset(a),
	}
}

// --- strings ---------------------------------------------------------------

type stringCheck int

const (
	checkNone stringCheck = iota
	checkSId
	checkSIdRef
)

type stringRule struct{ check stringCheck }

func (r stringRule) members(_ *classGen, a *attr) []string {
	return []string{"std::string " + a.member + ";"}
}

func (r stringRule) ctorInit(_ *classGen, a *attr, k ctorKind) []string {
	switch {
	case k == ctorCopy:
		return []string{a.member + " (orig." + a.member + ")"}
	case a.Default != "":
		return []string{a.member + " (" + cString(a.Default) + ")"}
	}
	return []string{a.member + " (\"\")"}
}

func (r stringRule) copyBody(*classGen, *attr) []string { return nil }

func (r stringRule) assign(_ *classGen, a *attr) []string {
	return []string{a.member + " = rhs." + a.member + ";"}
}

func (r stringRule) destroy(*classGen, *attr) []string { return nil }

func (r stringRule) accessors(cg *classGen, a *attr) []method {
	name := schema.LowerFirst(a.cap)
	set := []string{a.member + " = " + name + ";", "return " + cg.d.status(sbase.OperationSuccess) + ";"}
	if r.check != checkNone {
		set = []string{
			"if (!(" + cg.d.sidCheck(name) + "))",
			"{",
			"  return " + cg.d.status(sbase.InvalidAttributeValue) + ";",
			"}",
			"else",
			"{",
			"  " + a.member + " = " + name + ";",
			"  return " + cg.d.status(sbase.OperationSuccess) + ";",
			"}",
		}
	}
	return []method{
		{doc: docAttr("Returns", a, cg.name), ret: "const std::string&", name: "get" + a.cap, isConst: true,
			body: []string{"return " + a.member + ";"}},
		{doc: fmt.Sprintf("Predicate returning @c true if this %s's \"%s\" attribute is set.", cg.name, a.Name),
			ret: "bool", name: "isSet" + a.cap, isConst: true,
			body: []string{"return (" + a.member + ".empty() == false);"}},
		{doc: docAttr("Sets", a, cg.name), ret: "int", name: "set" + a.cap,
			params: []param{{typ: "const std::string&", name: name}}, body: set},
		{doc: docAttr("Unsets", a, cg.name), ret: "int", name: "unset" + a.cap,
			body: append([]string{a.member + ".erase();", ""}, cg.successIf(a.member+".empty() == true")...)},
	}
}

func (r stringRule) family(_ *classGen, a *attr) (string, string, string) {
	return "std::string", "get" + a.cap + "()", "set" + a.cap + "(value)"
}

func (r stringRule) readAttr(cg *classGen, a *attr) []string {
	out := []string{
		"assigned = attributes.readInto(\"" + a.XML() + "\", " + a.member + ");",
		"",
		"if (assigned == true)",
		"{",
		"  if (" + a.member + ".empty() == true && log)",
		"  {",
		"    logEmptyString(" + a.member + ", level, version, \"<" + cg.elem + ">\");",
		"  }",
	}
	switch r.check {
	case checkSId:
		out = append(out,
			"  else if ("+cg.d.sidCheck(a.member)+" == false && log)",
			"  {",
			"    log->logPackageError(\""+cg.pkg+"\", "+cg.pkgErr(sbase.IDSyntaxRule)+", pkgVersion, level, version,",
			"      \"The "+a.XML()+" on the <\" + getElementName() + \"> is '\" + "+a.member+" + \"', which does not conform to the syntax.\",",
			"      getLine(), getColumn());",
			"  }")
	case checkSIdRef:
		out = append(out, "  else if ("+cg.d.sidCheck(a.member)+" == false && log)", "  {",
			"    std::string msg = \"The "+a.XML()+" attribute on the <\" + getElementName() + \">\";",
			"    msg += \" is '\" + "+a.member+" + \"', which does not conform to the syntax.\";")
		out = append(out, indent(2, cg.logExpr(sbase.RuleAttributeValue, "msg"))...)
		out = append(out, "  }")
	}
	out = append(out, "}")
	if a.Required {
		out = append(out, "else", "{", "  if (log)", "  {")
		out = append(out, indent(2, cg.logMessage(sbase.RuleAttributes, cg.missingMessage(a)))...)
		out = append(out, "  }", "}")
	}
	return out
}

func (r stringRule) writeAttr(cg *classGen, a *attr) []string {
	return block("if (isSet"+a.cap+"() == true)",
		"stream.writeAttribute(\""+a.XML()+"\", getPrefix(), "+a.member+");")
}

func (r stringRule) capi(cg *classGen, a *attr) []method {
	name := schema.LowerFirst(a.cap)
	return []method{
		{doc: docAttr("Returns", a, cg.cType), ret: "char *", name: cg.name + "_get" + a.cap,
			params: []param{cg.cParam(true)},
			body: []string{
				"if (" + cg.cVar + " == NULL)",
				"{",
				"  return NULL;",
				"}",
				"",
				"return " + cg.cVar + "->get" + a.cap + "().empty() ? NULL : safe_strdup(" + cg.cVar + "->get" + a.cap + "().c_str());",
			}},
		cg.capiIsSet(a),
		{doc: docAttr("Sets", a, cg.cType), ret: "int", name: cg.name + "_set" + a.cap,
			params: []param{cg.cParam(false), {typ: "const char *", name: name}},
			body:   []string{"return (" + cg.cVar + " != NULL) ? " + cg.cVar + "->set" + a.cap + "(" + name + ") : " + cg.d.status(sbase.InvalidObject) + ";"}},
		cg.capiUnset(a),
	}
}

// --- enumerations ----------------------------------------------------------

type enumRule struct{}

func (enumRule) names(a *attr) (typ, invalid string) {
	return common.EnumType(a.enum), common.EnumInvalid(a.enum)
}

func (r enumRule) members(_ *classGen, a *attr) []string {
	typ, _ := r.names(a)
	return []string{typ + " " + a.member + ";"}
}

func (r enumRule) ctorInit(_ *classGen, a *attr, k ctorKind) []string {
	if k == ctorCopy {
		return []string{a.member + " (orig." + a.member + ")"}
	}
	_, invalid := r.names(a)
	return []string{a.member + " (" + invalid + ")"}
}

func (enumRule) copyBody(*classGen, *attr) []string { return nil }

func (enumRule) assign(_ *classGen, a *attr) []string {
	return []string{a.member + " = rhs." + a.member + ";"}
}

func (enumRule) destroy(*classGen, *attr) []string { return nil }

func (r enumRule) accessors(cg *classGen, a *attr) []method {
	typ, invalid := r.names(a)
	e := a.enum.Name
	name := schema.LowerFirst(a.cap)
	ok := "return " + cg.d.status(sbase.OperationSuccess) + ";"
	bad := "return " + cg.d.status(sbase.InvalidAttributeValue) + ";"
	return []method{
		{doc: docAttr("Returns", a, cg.name), ret: typ, name: "get" + a.cap, isConst: true,
			body: []string{"return " + a.member + ";"}},
		{doc: docAttr("Returns", a, cg.name) + "\nThe value is returned as its XML spelling.",
			ret: "std::string", name: "get" + a.cap + "AsString", isConst: true,
			body: []string{
				"std::string code_str = " + e + "_toString(" + a.member + ");",
				"return code_str;",
			}},
		{doc: fmt.Sprintf("Predicate returning @c true if this %s's \"%s\" attribute is set.", cg.name, a.Name),
			ret: "bool", name: "isSet" + a.cap, isConst: true,
			body: []string{"return (" + a.member + " != " + invalid + ");"}},
		{doc: docAttr("Sets", a, cg.name), ret: "int", name: "set" + a.cap,
			params: []param{{typ: "const " + typ, name: name}},
			body: []string{
				"if (" + e + "_isValid(" + name + ") == 0)",
				"{",
				"  " + a.member + " = " + invalid + ";",
				"  " + bad,
				"}",
				"else",
				"{",
				"  " + a.member + " = " + name + ";",
				"  " + ok,
				"}",
			}},
		{doc: docAttr("Sets", a, cg.name) + "\nThe value is given as its XML spelling.",
			ret: "int", name: "set" + a.cap,
			params: []param{{typ: "const std::string&", name: name}},
			body: []string{
				a.member + " = " + e + "_fromString(" + name + ".c_str());",
				"",
				"if (" + a.member + " == " + invalid + ")",
				"{",
				"  " + bad,
				"}",
				"",
				ok,
			}},
		{doc: docAttr("Unsets", a, cg.name), ret: "int", name: "unset" + a.cap,
			body: []string{a.member + " = " + invalid + ";", ok}},
	}
}

func (enumRule) family(_ *classGen, a *attr) (string, string, string) {
	return "std::string", "get" + a.cap + "AsString()", "set" + a.cap + "(value)"
}

func (r enumRule) readAttr(cg *classGen, a *attr) []string {
	_, invalid := r.names(a)
	e := a.enum.Name
	local := schema.LowerFirst(a.cap)
	out := []string{
		"std::string " + local + ";",
		"assigned = attributes.readInto(\"" + a.XML() + "\", " + local + ");",
		"",
		"if (assigned == true)",
		"{",
		"  if (" + local + ".empty() == true && log)",
		"  {",
		"    logEmptyString(" + local + ", level, version, \"<" + cg.elem + ">\");",
		"  }",
		"  else",
		"  {",
		"    " + a.member + " = " + e + "_fromString(" + local + ".c_str());",
		"",
		"    if (" + a.member + " == " + invalid + " && log)",
		"    {",
		"      std::string msg = \"The " + a.XML() + " on the <" + cg.elem + "> \";",
		"      msg += \"is '\" + " + local + " + \"', which is not a valid option.\";",
	}
	out = append(out, indent(3, cg.logExpr(sbase.RuleAttributeValue, "msg"))...)
	out = append(out, "    }", "  }", "}")
	if a.Required {
		out = append(out, "else", "{", "  if (log)", "  {")
		out = append(out, indent(2, cg.logMessage(sbase.RuleAttributes, cg.missingMessage(a)))...)
		out = append(out, "  }", "}")
	}
	return out
}

func (enumRule) writeAttr(cg *classGen, a *attr) []string {
	return block("if (isSet"+a.cap+"() == true)",
		"stream.writeAttribute(\""+a.XML()+"\", getPrefix(), "+a.enum.Name+"_toString("+a.member+"));")
}

func (r enumRule) capi(cg *classGen, a *attr) []method {
	typ, invalid := r.names(a)
	name := schema.LowerFirst(a.cap)
	return []method{
		{doc: docAttr("Returns", a, cg.cType), ret: typ, name: cg.name + "_get" + a.cap,
			params: []param{cg.cParam(true)},
			body: []string{
				"if (" + cg.cVar + " == NULL)",
				"{",
				"  return " + invalid + ";",
				"}",
				"",
				"return " + cg.cVar + "->get" + a.cap + "();",
			}},
		{doc: docAttr("Returns", a, cg.cType) + "\nThe value is returned as its XML spelling.",
			ret: "char *", name: cg.name + "_get" + a.cap + "AsString",
			params: []param{cg.cParam(true)},
			body:   []string{"return (char*)(" + a.enum.Name + "_toString(" + cg.cVar + "->get" + a.cap + "()));"}},
		cg.capiIsSet(a),
		{doc: docAttr("Sets", a, cg.cType), ret: "int", name: cg.name + "_set" + a.cap,
			params: []param{cg.cParam(false), {typ: typ, name: name}},
			body:   []string{"return (" + cg.cVar + " != NULL) ? " + cg.cVar + "->set" + a.cap + "(" + name + ") : " + cg.d.status(sbase.InvalidObject) + ";"}},
		{doc: docAttr("Sets", a, cg.cType) + "\nThe value is given as its XML spelling.",
			ret: "int", name: cg.name + "_set" + a.cap + "AsString",
			params: []param{cg.cParam(false), {typ: "const char *", name: name}},
			body:   []string{"return (" + cg.cVar + " != NULL) ? " + cg.cVar + "->set" + a.cap + "(" + name + ") : " + cg.d.status(sbase.InvalidObject) + ";"}},
		cg.capiUnset(a),
	}
}

// --- double arrays ---------------------------------------------------------

type arrayRule struct{}

func (arrayRule) length(a *attr) string { return a.member + "Length" }

func (r arrayRule) members(_ *classGen, a *attr) []string {
	return []string{"double* " + a.member + ";", "int " + r.length(a) + ";"}
}

func (r arrayRule) ctorInit(_ *classGen, a *attr, k ctorKind) []string {
	if k == ctorCopy {
		return []string{a.member + " (NULL)", r.length(a) + " (orig." + r.length(a) + ")"}
	}
	return []string{a.member + " (NULL)", r.length(a) + " (0)"}
}

func (r arrayRule) copyFrom(a *attr, src string) []string {
	return []string{
		"if (" + src + "." + a.member + " != NULL)",
		"{",
		"  " + a.member + " = new double[" + src + "." + r.length(a) + "];",
		"  memcpy(" + a.member + ", " + src + "." + a.member + ", sizeof(double)*" + src + "." + r.length(a) + ");",
		"}",
	}
}

func (r arrayRule) copyBody(_ *classGen, a *attr) []string { return r.copyFrom(a, "orig") }

func (r arrayRule) assign(_ *classGen, a *attr) []string {
	out := []string{
		r.length(a) + " = rhs." + r.length(a) + ";",
		"delete [] " + a.member + ";",
		a.member + " = NULL;",
	}
	return append(out, r.copyFrom(a, "rhs")...)
}

func (r arrayRule) destroy(_ *classGen, a *attr) []string {
	return []string{"delete [] " + a.member + ";", a.member + " = NULL;"}
}

func (r arrayRule) accessors(cg *classGen, a *attr) []method {
	return []method{
		{doc: docAttr("Copies", a, cg.name) + "\n@param outArray receives the values; it must hold get" + a.cap + "Length() doubles.",
			ret: "void", name: "get" + a.cap, isConst: true,
			params: []param{{typ: "double*", name: "outArray"}},
			body: []string{
				"if (outArray == NULL || " + a.member + " == NULL)",
				"{",
				"  return;",
				"}",
				"",
				"memcpy(outArray, " + a.member + ", sizeof(double)*" + r.length(a) + ");",
			}},
		{doc: "Returns the number of values in the \"" + a.Name + "\" attribute.",
			ret: "int", name: "get" + a.cap + "Length", isConst: true,
			body: []string{"return " + r.length(a) + ";"}},
		{doc: fmt.Sprintf("Predicate returning @c true if this %s's \"%s\" attribute is set.", cg.name, a.Name),
			ret: "bool", name: "isSet" + a.cap, isConst: true,
			body: []string{"return (" + a.member + " != NULL);"}},
		{doc: docAttr("Sets", a, cg.name), ret: "int", name: "set" + a.cap,
			params: []param{{typ: "double*", name: "inArray"}, {typ: "int", name: "arrayLength"}},
			body: []string{
				"if (inArray == NULL)",
				"{",
				"  return " + cg.d.status(sbase.InvalidAttributeValue) + ";",
				"}",
				"",
				"delete [] " + a.member + ";",
				a.member + " = new double[arrayLength];",
				"memcpy(" + a.member + ", inArray, sizeof(double)*arrayLength);",
				r.length(a) + " = arrayLength;",
				"return " + cg.d.status(sbase.OperationSuccess) + ";",
			}},
		{doc: docAttr("Unsets", a, cg.name), ret: "int", name: "unset" + a.cap,
			body: []string{
				"delete [] " + a.member + ";",
				a.member + " = NULL;",
				r.length(a) + " = 0;",
				"return " + cg.d.status(sbase.OperationSuccess) + ";",
			}},
	}
}

func (arrayRule) family(*classGen, *attr) (string, string, string) { return "", "", "" }

func (r arrayRule) readAttr(cg *classGen, a *attr) []string {
	local := schema.LowerFirst(a.cap)
	out := []string{
		"std::string " + local + ";",
		"assigned = attributes.readInto(\"" + a.XML() + "\", " + local + ");",
		"",
		"if (assigned == true)",
		"{",
		"  std::stringstream strStream(" + local + ");",
		"  std::vector<double> parsed;",
		"  double val;",
		"",
		"  while (strStream >> val)",
		"  {",
		"    parsed.push_back(val);",
		"  }",
		"",
		"  if (strStream.eof() == false && log)",
		"  {",
	}
	out = append(out, indent(2, cg.logMessage(sbase.RuleAttributeValue,
		fmt.Sprintf("%s attribute '%s' from the <%s> element must be a space separated list of doubles.", cg.prefix, a.XML(), cg.elem)))...)
	out = append(out,
		"  }",
		"  else if (parsed.empty() == false)",
		"  {",
		"    set"+a.cap+"(&parsed[0], (int)(parsed.size()));",
		"  }",
		"}")
	if a.Required {
		out = append(out, "else", "{", "  if (log)", "  {")
		out = append(out, indent(2, cg.logMessage(sbase.RuleAttributes, cg.missingMessage(a)))...)
		out = append(out, "  }", "}")
	}
	return out
}

func (r arrayRule) writeAttr(cg *classGen, a *attr) []string {
	return []string{
		"if (isSet" + a.cap + "() == true)",
		"{",
		"  std::ostringstream os;",
		"",
		"  for (int i = 0; i < " + r.length(a) + "; ++i)",
		"  {",
		"    if (i > 0)",
		"    {",
		"      os << \" \";",
		"    }",
		"",
		"    os << " + a.member + "[i];",
		"  }",
		"",
		"  stream.writeAttribute(\"" + a.XML() + "\", getPrefix(), os.str());",
		"}",
	}
}

func (r arrayRule) capi(cg *classGen, a *attr) []method {
	return []method{
		{doc: "Returns the number of values in the \"" + a.Name + "\" attribute of this " + cg.cType + ".",
			ret: "int", name: cg.name + "_get" + a.cap + "Length",
			params: []param{cg.cParam(true)},
			body:   []string{"return (" + cg.cVar + " != NULL) ? " + cg.cVar + "->get" + a.cap + "Length() : 0;"}},
		cg.capiIsSet(a),
		{doc: docAttr("Sets", a, cg.cType), ret: "int", name: cg.name + "_set" + a.cap,
			params: []param{cg.cParam(false), {typ: "double*", name: "inArray"}, {typ: "int", name: "arrayLength"}},
			body:   []string{"return (" + cg.cVar + " != NULL) ? " + cg.cVar + "->set" + a.cap + "(inArray, arrayLength) : " + cg.d.status(sbase.InvalidObject) + ";"}},
		cg.capiUnset(a),
	}
}
