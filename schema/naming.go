package schema

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	upper = cases.Upper(language.Und)
	lower = cases.Lower(language.Und)
)

// UpperFirst upper-cases the first letter of s and leaves the rest untouched.
func UpperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return upper.String(string(r)) + s[n:]
}

// LowerFirst lower-cases the first letter of s and leaves the rest untouched.
func LowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return lower.String(string(r)) + s[n:]
}

// Plural returns the English plural of an identifier, keeping its leading case.
func Plural(s string) string {
	return inflect.Pluralize(s)
}

// SnakeUpper turns a CamelCase identifier into UPPER_SNAKE_CASE.
// Runs of capitals stay together: "UncertValue" -> "UNCERT_VALUE", "SBMLDocument" -> "SBML_DOCUMENT".
func SnakeUpper(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		if r == '-' || r == ' ' {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// ListOfName is the class name of the container holding instances of c.
func (c *Class) ListOfName() string {
	if c.ListOf.Name != "" {
		return c.ListOf.Name
	}
	return "ListOf" + UpperFirst(Plural(c.Name))
}

// ListOfElementName is the XML element name of the container holding instances of c.
func (c *Class) ListOfElementName() string {
	if c.ListOf.ElementName != "" {
		return c.ListOf.ElementName
	}
	return "listOf" + UpperFirst(Plural(c.Name))
}
