package cpp

import (
	"fmt"

	"github.com/sbmlteam/deviser/internal/codegen/common"
	"github.com/sbmlteam/deviser/internal/codegen/meta"
	"github.com/sbmlteam/deviser/schema"
)

const enumsHeaderTemplate = `{{.Notice}}/**
 * @file {{.Name}}.h
 * @brief Enumerations of the {{.Pkg}} package.
 */

#ifndef {{.Name}}_H__
#define {{.Name}}_H__


#include <{{.Inc}}/common/extern.h>


{{.NSBegin}}
BEGIN_C_DECLS
{{range .Enums}}

/**
 * @enum {{.Type}}
 * @brief Values permitted for attributes of type {{.Name}}.
 */
typedef enum
{
{{range $i, $m := .Members}}  {{if $i}}, {{else}}  {{end}}{{$m.Const}}{{if not $i}} = 0{{end}}  /*!< The value is @c "{{$m.Value}}". */
{{end}}  , {{.Invalid}}  /*!< Invalid {{.Name}} value. */
} {{.Type}};
{{range .Funcs}}
{{.}}{{end}}{{end}}

END_C_DECLS
{{.NSEnd}}


#endif /* !{{.Name}}_H__ */
`

const enumsImplTemplate = `{{.Notice}}/**
 * @file {{.Name}}.cpp
 * @brief Implementation of the enumerations of the {{.Pkg}} package.
 */
#include <{{.Own}}>
#include <string>


{{.NSBegin}}
{{range .Enums}}

static
const char* {{.Strings}}[] =
{
{{range $i, $m := .Members}}  {{if $i}}, {{else}}  {{end}}"{{$m.Value}}"
{{end}}  , "invalid {{.Name}} value"
};
{{range .Funcs}}
{{.}}{{end}}{{end}}

{{.NSEnd}}
`

var (
	enumsHeaderTmpl = mustTemplate("enums header", enumsHeaderTemplate)
	enumsImplTmpl   = mustTemplate("enums implementation", enumsImplTemplate)
)

type enumBlock struct {
	Name    string
	Type    string
	Invalid string
	Strings string
	Members []common.EnumMember
	Funcs   []string
}

type enumsFile struct {
	Notice  string
	Name    string
	Pkg     string
	Inc     string
	Own     string
	NSBegin string
	NSEnd   string
	Enums   []enumBlock
}

// RenderEnums renders every enumeration of the package with its string
// conversion and validity functions.
func RenderEnums(md *meta.Metadata) (header, impl []byte, err error) {
	g := newGenerator(md)
	name := g.prefix + "Enums"
	f := enumsFile{
		Notice:  g.notice,
		Name:    name,
		Pkg:     g.pkg,
		Inc:     g.d.inc,
		Own:     g.enumsInclude(),
		NSBegin: g.d.nsBegin(),
		NSEnd:   g.d.nsEnd(),
	}

	var all []method
	fns := make([][]method, len(md.Enums))
	for i, e := range md.Enums {
		fns[i] = g.enumFunctions(e)
		all = append(all, fns[i]...)
	}

	blockFor := func(i int, e *schema.Enum, render func(method) string) enumBlock {
		b := enumBlock{
			Name:    e.Name,
			Type:    common.EnumType(e),
			Invalid: common.EnumInvalid(e),
			Strings: enumStrings(e),
			Members: common.EnumMembers(e),
		}
		for _, m := range fns[i] {
			b.Funcs = append(b.Funcs, render(m))
		}
		return b
	}

	for i, e := range md.Enums {
		f.Enums = append(f.Enums, blockFor(i, e, func(m method) string { return m.cdecl(g.d.export()) }))
	}
	if header, err = execute(enumsHeaderTmpl, f); err != nil {
		return nil, nil, err
	}

	f.Enums = nil
	for i, e := range md.Enums {
		f.Enums = append(f.Enums, blockFor(i, e, func(m method) string { return m.def("", g.d.export()) }))
	}
	if impl, err = execute(enumsImplTmpl, f); err != nil {
		return nil, nil, err
	}
	if err := checkPair(name, string(header), string(impl), nil, all); err != nil {
		return nil, nil, fmt.Errorf("render %s: %w", name, err)
	}
	return header, impl, nil
}

func enumStrings(e *schema.Enum) string { return common.ToScreamingSnakeCase(e.Name) + "_STRINGS" }

func (g *generator) enumFunctions(e *schema.Enum) []method {
	typ := common.EnumType(e)
	members := common.EnumMembers(e)
	first := members[0].Const
	last := members[len(members)-1].Const
	invalid := common.EnumInvalid(e)
	strs := enumStrings(e)
	code := param{typ: typ, name: "code"}
	str := param{typ: "const char*", name: "code"}

	toString := []string{
		"int min = " + first + ";",
		"int max = " + invalid + ";",
		"",
	}
	toString = append(toString, block("if (code < min || code > max)", "return \"(Unknown "+e.Name+" value)\";")...)
	toString = append(toString, "", "return "+strs+"[code - min];")

	fromString := block("if (code == NULL)", "return "+invalid+";")
	fromString = append(fromString,
		"",
		"static int size = sizeof("+strs+")/sizeof("+strs+"[0]);",
		"std::string type(code);",
		"",
	)
	fromString = append(fromString, block("for (int i = 0; i < size; i++)",
		block("if (type == "+strs+"[i])", "return ("+typ+")(i);")...)...)
	fromString = append(fromString, "", "return "+invalid+";")

	isValid := []string{
		"int min = " + first + ";",
		"int max = " + last + ";",
		"",
	}
	isValid = append(isValid, block("if (code < min || code > max)", "return 0;")...)
	isValid = append(isValid, block("else", "return 1;")...)

	return []method{
		{doc: "Returns the string version of the provided " + typ + " enumeration.",
			ret: "const char*", name: e.Name + "_toString", params: []param{code}, body: toString},
		{doc: "Returns the " + typ + " enumeration corresponding to the given string, or\n" + invalid + " if there is no such match.",
			ret: typ, name: e.Name + "_fromString", params: []param{str}, body: fromString},
		{doc: "Predicate returning @c 1 if the given " + typ + " is valid.",
			ret: "int", name: e.Name + "_isValid", params: []param{code}, body: isValid},
		{doc: "Predicate returning @c 1 if the given string is a valid " + typ + " value.",
			ret: "int", name: e.Name + "_isValidString", params: []param{str},
			body: []string{"return " + e.Name + "_isValid(" + e.Name + "_fromString(code));"}},
	}
}
