package common

import (
	"strings"

	"github.com/sbmlteam/deviser/schema"
)

// SanitizeLeadingDigit prefixes names that start with a digit with "Num"
// to keep identifiers valid in target languages.
func SanitizeLeadingDigit(name string) string {
	if name == "" {
		return ""
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "Num" + name
	}
	return name
}

// EnumMember is one value of a generated enumeration.
type EnumMember struct {
	Const string // C constant, e.g. INPUT_SIGN_POSITIVE
	Ident string // Go identifier, e.g. SignPositive
	Value string // XML spelling, e.g. positive
}

// EnumType is the C type name of an enumeration: "Sign" -> "Sign_t".
func EnumType(e *schema.Enum) string { return e.Name + "_t" }

// EnumInvalid is the C constant of the out-of-range value, e.g. SIGN_INVALID.
func EnumInvalid(e *schema.Enum) string {
	if p := ExtractPrefix(enumConsts(e)); p != "" && len(e.Values) > 1 {
		return p + "INVALID"
	}
	return ToScreamingSnakeCase(e.Name) + "_INVALID"
}

// EnumMembers resolves the members of e in declaration order. Values without a
// C name get ENUMNAME_VALUE.
func EnumMembers(e *schema.Enum) []EnumMember {
	consts := enumConsts(e)
	prefix := ExtractPrefix(consts)
	out := make([]EnumMember, len(e.Values))
	for i, v := range e.Values {
		member := strings.TrimPrefix(consts[i], prefix)
		if len(e.Values) == 1 {
			member = v.Value
		}
		out[i] = EnumMember{
			Const: consts[i],
			Ident: e.Name + SanitizeLeadingDigit(ToPascalCase(strings.ToLower(member))),
			Value: v.Value,
		}
	}
	return out
}

func enumConsts(e *schema.Enum) []string {
	out := make([]string, len(e.Values))
	for i, v := range e.Values {
		if v.Name != "" {
			out[i] = v.Name
			continue
		}
		out[i] = ToScreamingSnakeCase(e.Name) + "_" + strings.ToUpper(ToSnakeCase(v.Value))
	}
	return out
}
