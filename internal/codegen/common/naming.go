package common

import (
	"strings"
	"unicode"

	"github.com/sbmlteam/deviser/schema"
)

// ToPascalCase joins the words of s, upper-casing the first letter of each and
// keeping the rest as written: "lower_truncated" -> "LowerTruncated",
// "listOfCategories" -> "ListOfCategories".
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ':' || unicode.IsSpace(r)
	})

	var result strings.Builder
	for _, word := range words {
		result.WriteString(schema.UpperFirst(word))
	}
	return result.String()
}

func ToCamelCase(s string) string {
	return schema.LowerFirst(ToPascalCase(s))
}

func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		isUpper := r >= 'A' && r <= 'Z'

		if i > 0 && isUpper {
			prevIsLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextIsLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			// "someWord" -> "some_word", "XMLParser" -> "xml_parser"
			if (prevIsLower || nextIsLower) && runes[i-1] != '_' {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// ToScreamingSnakeCase is ToSnakeCase in upper case: "UncertValue" -> "UNCERT_VALUE".
func ToScreamingSnakeCase(s string) string { return strings.ToUpper(ToSnakeCase(s)) }

// ExtractPrefix returns the longest prefix, ending in an underscore, shared by
// every name. Enumeration members such as "INPUT_SIGN_POSITIVE" and
// "INPUT_SIGN_NEGATIVE" share "INPUT_SIGN_".
func ExtractPrefix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	prefix := names[0]
	for _, n := range names[1:] {
		for !strings.HasPrefix(n, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	if idx := strings.LastIndexByte(prefix, '_'); idx >= 0 {
		return prefix[:idx+1]
	}
	return ""
}

// MemberName is the name of a class member variable: "id" -> "mId".
func MemberName(attr string) string { return "m" + ToPascalCase(attr) }
