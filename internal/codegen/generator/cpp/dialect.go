package cpp

import (
	"strings"

	"github.com/sbmlteam/deviser/sbase"
	"github.com/sbmlteam/deviser/schema"
)

// dialect names the host library classes and macros the generated code builds on.
type dialect struct {
	lang       string // SBML
	lib        string // LIBSBML
	inc        string // sbml
	base       string // SBase
	document   string // SBMLDocument
	namespaces string // SBMLNamespaces
	visitor    string // SBMLVisitor
	errorLog   string // SBMLErrorLog
	plugin     string // SBasePlugin
	docPlugin  string // SBMLDocumentPlugin
	isSBML     bool
}

func newDialect(l *schema.Language) dialect {
	upper := strings.ToUpper(l.Name)
	return dialect{
		lang:       l.Name,
		lib:        "LIB" + upper,
		inc:        strings.ToLower(l.Name),
		base:       l.BaseClass,
		document:   l.DocumentClass,
		namespaces: l.Name + "Namespaces",
		visitor:    l.Name + "Visitor",
		errorLog:   l.Name + "ErrorLog",
		plugin:     l.BaseClass + "Plugin",
		docPlugin:  l.DocumentClass + "Plugin",
		isSBML:     upper == "SBML",
	}
}

func (d dialect) status(s sbase.Status) string { return d.lib + "_" + s.String() }

func (d dialect) export() string { return d.lib + "_EXTERN" }

func (d dialect) nsBegin() string { return d.lib + "_CPP_NAMESPACE_BEGIN" }

func (d dialect) nsEnd() string { return d.lib + "_CPP_NAMESPACE_END" }

func (d dialect) intMax() string { return strings.ToUpper(d.lang) + "_INT_MAX" }

func (d dialect) sidCheck(v string) string {
	return "SyntaxChecker::isValid" + d.lang + "SId(" + v + ")"
}

// coreTypeCode is the type code of a class of the host language: Model -> SBML_MODEL.
func (d dialect) coreTypeCode(class string) string {
	if class == d.document {
		return strings.ToUpper(d.lang) + "_DOCUMENT"
	}
	return strings.ToUpper(d.lang) + "_" + schema.SnakeUpper(class)
}

// categoryConst maps an error category to the host library constant.
func (d dialect) categoryConst(c sbase.Category) string {
	switch c {
	case sbase.CategoryXML:
		return d.lib + "_CAT_XML"
	case sbase.CategorySBML:
		return d.lib + "_CAT_" + strings.ToUpper(d.lang)
	case sbase.CategoryGeneralConsistency:
		return d.lib + "_CAT_GENERAL_CONSISTENCY"
	case sbase.CategoryIdentifierConsistency:
		return d.lib + "_CAT_IDENTIFIER_CONSISTENCY"
	}
	return d.lib + "_CAT_INTERNAL"
}

func (d dialect) severityConst(s sbase.Severity) string {
	return d.lib + "_SEV_" + strings.ToUpper(s.String())
}
