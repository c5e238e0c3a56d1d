package sbase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sbmlteam/deviser/schema"
)

// Core error codes. They do not depend on any package.
const (
	CodeNotWellFormed       = 1001
	CodeInvalidLevelVersion = 1002
	CodeInvalidRootElement  = 1003
)

// Package error codes, relative to the package offset.
const (
	NSUndeclared                   = 10101
	ElementNotInNS                 = 10102
	DuplicateComponentID           = 10301
	IDSyntaxRule                   = 10302
	AttributeRequiredMissing       = 20101
	AttributeRequiredMustBeBoolean = 20102
	AttributeRequiredMustHaveValue = 20103
)

// Rule selects one of the per-class error definitions.
type Rule int

const (
	RuleCoreAttributes Rule = iota + 1
	RuleCoreElements
	RuleAttributes
	RuleElements
	RuleAttributeValue
	RuleReference
)

var ruleNames = map[Rule]string{
	RuleCoreAttributes: "AllowedCoreAttributes",
	RuleCoreElements:   "AllowedCoreElements",
	RuleAttributes:     "AllowedAttributes",
	RuleElements:       "AllowedElements",
	RuleAttributeValue: "AttributeTypes",
	RuleReference:      "ReferenceMustExist",
}

func (r Rule) String() string { return ruleNames[r] }

// classRuleBase is the first class rule block; a class at position p owns
// codes offset+classRuleBase+100*p+rule.
const classRuleBase = 20100

var coreErrors = []ErrorDef{
	{
		Code:     CodeNotWellFormed,
		Name:     "NotWellFormed",
		Category: CategoryXML,
		Severity: SeverityFatal,
		Message:  "The document is not well-formed XML.",
	},
	{
		Code:     CodeInvalidLevelVersion,
		Name:     "InvalidLevelVersion",
		Category: CategorySBML,
		Severity: SeverityError,
		Message:  "The level and version attributes of the document element must name a known combination, and its namespace must be the one defined for that combination.",
	},
	{
		Code:     CodeInvalidRootElement,
		Name:     "InvalidRootElement",
		Category: CategorySBML,
		Severity: SeverityFatal,
		Message:  "The document element is not the top level element of the language.",
	},
}

// ErrorTable holds every error definition of one package version. The same table
// drives the runtime log and the generated C++ error table, so codes agree.
type ErrorTable struct {
	offset    int
	defs      map[int]ErrorDef
	positions map[string]int
}

// NewErrorTable builds the table. Classes extended by plugins come first, in plugin
// order, then package classes in declaration order, then the document class when
// no plugin extends it.
func NewErrorTable(pkg *schema.Package, v *schema.Version) *ErrorTable {
	t := &ErrorTable{offset: pkg.Offset, defs: map[int]ErrorDef{}, positions: map[string]int{}}
	for _, d := range coreErrors {
		t.defs[d.Code] = d
	}

	uri := pkg.URI(v)
	lang := pkg.Language.Name
	ref := fmt.Sprintf("L%dV%d %s V%d", v.Level, v.Version, pkg.FullName, v.PkgVersion)
	pkgDef := func(code int, name string, cat Category, msg string) {
		t.defs[pkg.Offset+code] = ErrorDef{
			Code:      pkg.Offset + code,
			Name:      pkg.Prefix + name,
			Category:  cat,
			Severity:  SeverityError,
			Message:   msg,
			Reference: ref,
		}
	}
	pkgDef(NSUndeclared, "NSUndeclared", CategoryGeneralConsistency,
		fmt.Sprintf("To conform to the %s Package specification for %s Level %d Version %d, a %s document must declare '%s' as the XMLNamespace to use for elements of this package.",
			pkg.FullName, lang, v.Level, v.Version, lang, uri))
	pkgDef(ElementNotInNS, "ElementNotInNs", CategoryGeneralConsistency,
		fmt.Sprintf("Wherever they appear in a %s document, elements and attributes from the %s Package must use the '%s' namespace, declaring so either explicitly or implicitly.",
			lang, pkg.FullName, uri))
	pkgDef(DuplicateComponentID, "DuplicateComponentId", CategoryIdentifierConsistency,
		fmt.Sprintf("The values of the attributes id and %s:id on every object of the document must be unique across the set of all such attribute values.", pkg.Name))
	pkgDef(IDSyntaxRule, "IdSyntaxRule", CategoryIdentifierConsistency,
		fmt.Sprintf("The value of a %s:id must conform to the syntax of the %s data type SId.", pkg.Name, lang))
	pkgDef(AttributeRequiredMissing, "AttributeRequiredMissing", CategoryGeneralConsistency,
		fmt.Sprintf("In all %s documents using the %s Package, the %s object must have the %s:required attribute.", lang, pkg.FullName, pkg.Language.DocumentClass, pkg.Name))
	pkgDef(AttributeRequiredMustBeBoolean, "AttributeRequiredMustBeBoolean", CategoryGeneralConsistency,
		fmt.Sprintf("The value of attribute %s:required on the %s object must be of data type boolean.", pkg.Name, pkg.Language.DocumentClass))
	pkgDef(AttributeRequiredMustHaveValue, "AttributeRequiredMustHaveValue", CategoryGeneralConsistency,
		fmt.Sprintf("The value of attribute %s:required on the %s object must be set to '%t'.", pkg.Name, pkg.Language.DocumentClass, pkg.Required))

	for i, e := range tableEntries(pkg, v) {
		pos := i + 1
		t.positions[e.name] = pos
		for r := RuleCoreAttributes; r <= RuleReference; r++ {
			code := pkg.Offset + classRuleBase + 100*pos + int(r)
			section := ref
			if e.section != "" {
				section += " Section " + e.section
			}
			t.defs[code] = ErrorDef{
				Code:      code,
				Name:      pkg.Prefix + e.name + r.String(),
				Category:  CategoryGeneralConsistency,
				Severity:  SeverityError,
				Message:   ruleMessage(pkg, v, e, r),
				Reference: section,
			}
		}
	}
	return t
}

type tableEntry struct {
	name    string
	section string
	attrs   []schema.Attribute
}

func tableEntries(pkg *schema.Package, v *schema.Version) []tableEntry {
	var out []tableEntry
	index := map[string]int{}
	for _, pl := range v.Plugins {
		if v.Class(pl.Extends) != nil {
			continue
		}
		if i, ok := index[pl.Extends]; ok {
			out[i].attrs = append(out[i].attrs, pl.Attributes...)
			continue
		}
		index[pl.Extends] = len(out)
		out = append(out, tableEntry{name: pl.Extends, attrs: append([]schema.Attribute(nil), pl.Attributes...)})
	}
	for i := range v.Classes {
		c := &v.Classes[i]
		attrs := v.AllAttributes(c)
		for _, pl := range v.PluginsFor(c.Name) {
			attrs = append(attrs, pl.Attributes...)
		}
		out = append(out, tableEntry{name: c.Name, section: c.Section, attrs: attrs})
	}
	if _, ok := index[pkg.Language.DocumentClass]; !ok {
		out = append(out, tableEntry{name: pkg.Language.DocumentClass})
	}
	return out
}

func ruleMessage(pkg *schema.Package, v *schema.Version, e tableEntry, r Rule) string {
	lang := pkg.Language.Name
	core := fmt.Sprintf("%s Level %d Core", lang, v.Level)
	qualify := func(a schema.Attribute) string { return pkg.Name + ":" + a.XML() }

	var required, optional, children, typed, refs []string
	for _, a := range e.attrs {
		switch {
		case a.Kind().IsChild():
			children = append(children, v.ChildXMLName(&a))
		case a.Required:
			required = append(required, qualify(a))
		default:
			optional = append(optional, qualify(a))
		}
		if !a.Kind().IsChild() && a.Kind() != schema.KindString {
			typed = append(typed, fmt.Sprintf("%s (%s)", qualify(a), a.Kind()))
		}
		if a.Kind() == schema.KindSIdRef {
			refs = append(refs, qualify(a))
		}
	}
	article := "A"
	if strings.ContainsRune("AEIOU", rune(e.name[0])) {
		article = "An"
	}
	subject := fmt.Sprintf("%s %s object", article, e.name)

	switch r {
	case RuleCoreAttributes:
		return fmt.Sprintf("%s may have the optional %s attributes metaid and sboTerm. No other attributes from the %s namespaces are permitted on %s.", subject, core, core, subject)
	case RuleCoreElements:
		return fmt.Sprintf("%s may have the optional %s subobjects for notes and annotations. No other elements from the %s namespaces are permitted on %s.", subject, core, core, subject)
	case RuleAttributes:
		var b strings.Builder
		b.WriteString(subject)
		switch {
		case len(required) > 0 && len(optional) > 0:
			fmt.Fprintf(&b, " must have the required attributes %s, and may have the optional attributes %s.", strings.Join(required, ", "), strings.Join(optional, ", "))
		case len(required) > 0:
			fmt.Fprintf(&b, " must have the required attributes %s.", strings.Join(required, ", "))
		case len(optional) > 0:
			fmt.Fprintf(&b, " may have the optional attributes %s.", strings.Join(optional, ", "))
		default:
			b.WriteString(" has no attributes of its own.")
		}
		fmt.Fprintf(&b, " No other attributes from the %s Level %d %s namespaces are permitted on %s.", lang, v.Level, pkg.FullName, subject)
		return b.String()
	case RuleElements:
		if len(children) == 0 {
			return fmt.Sprintf("No elements from the %s Level %d %s namespaces are permitted inside %s.", lang, v.Level, pkg.FullName, subject)
		}
		return fmt.Sprintf("%s may contain one and only one instance of each of the %s elements. No other elements from the %s Level %d %s namespaces are permitted inside %s.",
			subject, strings.Join(children, ", "), lang, v.Level, pkg.FullName, subject)
	case RuleAttributeValue:
		if len(typed) == 0 {
			return fmt.Sprintf("The attributes of %s must conform to their declared data types.", subject)
		}
		return fmt.Sprintf("The attributes of %s must conform to their declared data types: %s.", subject, strings.Join(typed, ", "))
	case RuleReference:
		if len(refs) == 0 {
			return fmt.Sprintf("Reference attributes of %s must be the identifier of an existing object.", subject)
		}
		return fmt.Sprintf("The value of the attributes %s of %s must be the identifier of an existing object of the referenced type.", strings.Join(refs, ", "), subject)
	}
	return ""
}

// Lookup returns the definition for code.
func (t *ErrorTable) Lookup(code int) (ErrorDef, bool) {
	d, ok := t.defs[code]
	return d, ok
}

// Def returns the definition for code, or an internal definition naming the code
// when the table has no such entry.
func (t *ErrorTable) Def(code int) ErrorDef {
	if d, ok := t.defs[code]; ok {
		return d
	}
	return ErrorDef{Code: code, Name: "UnknownError", Category: CategoryInternal, Severity: SeverityError,
		Message: fmt.Sprintf("Unrecognized error code %d.", code)}
}

// PackageCode turns a relative package code into an absolute one.
func (t *ErrorTable) PackageCode(rel int) int { return t.offset + rel }

// ClassCode returns the code of rule r for a class, or 0 if the class has no entry.
func (t *ErrorTable) ClassCode(class string, r Rule) int {
	pos, ok := t.positions[class]
	if !ok {
		return 0
	}
	return t.offset + classRuleBase + 100*pos + int(r)
}

// Position is the rule block index of class, starting at 1.
func (t *ErrorTable) Position(class string) int { return t.positions[class] }

// Entries returns every definition ordered by code.
func (t *ErrorTable) Entries() []ErrorDef {
	out := make([]ErrorDef, 0, len(t.defs))
	for _, d := range t.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// PackageEntries returns the definitions owned by the package, without the core ones.
func (t *ErrorTable) PackageEntries() []ErrorDef {
	var out []ErrorDef
	for _, d := range t.Entries() {
		if d.Code > CodeInvalidRootElement {
			out = append(out, d)
		}
	}
	return out
}
