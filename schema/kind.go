package schema

import (
	"fmt"
	"strings"
)

// Kind is the normalized type of an attribute.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindUInt
	KindDouble
	KindString
	KindSId
	KindSIdRef
	KindDoubleArray
	KindEnum
	KindElement
	KindListOf
)

var kindNames = map[Kind]string{
	KindInvalid:     "invalid",
	KindBool:        "boolean",
	KindInt:         "int",
	KindUInt:        "unsigned int",
	KindDouble:      "double",
	KindString:      "string",
	KindSId:         "SId",
	KindSIdRef:      "SIdRef",
	KindDoubleArray: "array",
	KindEnum:        "enum",
	KindElement:     "element",
	KindListOf:      "lo_element",
}

// typeSynonyms maps every accepted spelling (lower case) of a schema type to its kind.
var typeSynonyms = map[string]Kind{
	"bool":                 KindBool,
	"boolean":              KindBool,
	"int":                  KindInt,
	"integer":              KindInt,
	"uint":                 KindUInt,
	"unsigned int":         KindUInt,
	"unsigned integer":     KindUInt,
	"non-negative integer": KindUInt,
	"non_negative_integer": KindUInt,
	"double":               KindDouble,
	"string":               KindString,
	"sid":                  KindSId,
	"id":                   KindSId,
	"sidref":               KindSIdRef,
	"idref":                KindSIdRef,
	"array":                KindDoubleArray,
	"double array":         KindDoubleArray,
	"double[]":             KindDoubleArray,
	"enum":                 KindEnum,
	"element":              KindElement,
	"lo_element":           KindListOf,
	"listof":               KindListOf,
	"list":                 KindListOf,
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsChild reports whether the kind describes an owned child rather than an XML attribute.
func (k Kind) IsChild() bool { return k == KindElement || k == KindListOf }

// IsStringValued reports whether values of the kind travel through the string accessor family.
func (k Kind) IsStringValued() bool {
	switch k {
	case KindString, KindSId, KindSIdRef, KindEnum:
		return true
	}
	return false
}

// ParseKind resolves a schema type spelling.
func ParseKind(s string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if k, ok := typeSynonyms[key]; ok {
		return k, nil
	}
	return KindInvalid, fmt.Errorf("unsupported attribute type %q", s)
}
