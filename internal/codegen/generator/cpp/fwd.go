package cpp

import (
	"github.com/sbmlteam/deviser/internal/codegen/meta"
)

const forwardTemplate = `{{.Notice}}/**
 * @file {{.Pkg}}fwd.h
 * @brief Forward declarations of the classes of the {{.Pkg}} package.
 */

#ifndef {{.Pkg}}fwd_H__
#define {{.Pkg}}fwd_H__


/**
 * Forward declaration of all opaque C types.
 *
 * Declaring all types up-front avoids "redefinition of type 'Foo'" compile
 * errors and allows our combined C/C++ headers to depend minimally upon each
 * other.
 */
#ifdef __cplusplus
#  define CLASS_OR_STRUCT class
#else
#  define CLASS_OR_STRUCT struct
#endif /* __cplusplus */


{{.NSBegin}}

{{range .Classes}}typedef CLASS_OR_STRUCT {{.}} {{.}}_t;
{{end}}
{{.NSEnd}}


#undef CLASS_OR_STRUCT


#endif /* {{.Pkg}}fwd_H__ */
`

const extensionTypesTemplate = `{{.Notice}}/**
 * @file {{.Prefix}}ExtensionTypes.h
 * @brief Includes every header of the {{.Pkg}} package.
 */

#ifndef {{.Prefix}}ExtensionTypes_H__
#define {{.Prefix}}ExtensionTypes_H__


{{range .Includes}}#include <{{.}}>
{{end}}

#endif /* {{.Prefix}}ExtensionTypes_H__ */
`

var (
	forwardTmpl        = mustTemplate("forward declarations", forwardTemplate)
	extensionTypesTmpl = mustTemplate("extension types", extensionTypesTemplate)
)

type packageFile struct {
	Notice   string
	Pkg      string
	Prefix   string
	NSBegin  string
	NSEnd    string
	Classes  []string
	Includes []string
}

func (g *generator) packageFile() packageFile {
	return packageFile{
		Notice:  g.notice,
		Pkg:     g.pkg,
		Prefix:  g.prefix,
		NSBegin: g.d.nsBegin(),
		NSEnd:   g.d.nsEnd(),
	}
}

// classNames lists every generated class: package classes, their lists and the plugins.
func (g *generator) classNames() []string {
	var out []string
	for _, c := range g.md.Classes {
		out = append(out, c.Name)
	}
	for _, c := range g.md.ListOfs {
		out = append(out, c.ListOfName())
	}
	for _, p := range g.hostPlugins() {
		out = append(out, g.prefix+p.Extends+"Plugin")
	}
	return out
}

// RenderForward renders the C typedefs of every package class.
func RenderForward(md *meta.Metadata) ([]byte, error) {
	g := newGenerator(md)
	f := g.packageFile()
	f.Classes = g.classNames()
	return execute(forwardTmpl, f)
}

// RenderExtensionTypes renders the header that pulls in the whole package.
func RenderExtensionTypes(md *meta.Metadata) ([]byte, error) {
	g := newGenerator(md)
	f := g.packageFile()
	f.Includes = []string{g.include("common", g.pkg+"fwd.h"), g.extInclude()}
	if len(md.Enums) > 0 {
		f.Includes = append(f.Includes, g.enumsInclude())
	}
	for _, p := range g.hostPlugins() {
		f.Includes = append(f.Includes, g.include("extension", g.prefix+p.Extends+"Plugin.h"))
	}
	for _, c := range md.Classes {
		f.Includes = append(f.Includes, g.classInclude(c.Name))
	}
	for _, c := range md.ListOfs {
		f.Includes = append(f.Includes, g.classInclude(c.ListOfName()))
	}
	return execute(extensionTypesTmpl, f)
}
