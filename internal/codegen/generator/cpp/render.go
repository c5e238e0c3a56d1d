package cpp

import (
	"fmt"

	"github.com/sbmlteam/deviser/internal/codegen/meta"
	"github.com/sbmlteam/deviser/schema"
)

const classHeaderTemplate = `{{.Notice}}/**
 * @file {{.Name}}.h
 * @brief Definition of the {{.Name}} class.
 */

#ifndef {{.Guard}}
#define {{.Guard}}


#include <{{.Inc}}/common/extern.h>
#include <{{.Inc}}/common/{{.Inc}}fwd.h>
#include <{{.PkgInc}}/common/{{.Pkg}}fwd.h>


#ifdef __cplusplus


#include <string>

{{range .Includes}}#include <{{.}}>
{{end}}

{{.NSBegin}}


class {{.Export}} {{.Name}} : public {{.Base}}
{
protected:

  /** @cond doxygenLibsbmlInternal */
{{range .Members}}  {{.}}
{{end}}  /** @endcond */

public:
{{range .Public}}
{{.}}{{end}}

protected:

  /** @cond doxygenLibsbmlInternal */
{{range .Protected}}
{{.}}{{end}}
  /** @endcond */

};



{{.NSEnd}}


#endif /* __cplusplus */
{{- if .CAPI}}




#ifndef SWIG




{{.NSBegin}}




BEGIN_C_DECLS
{{range .CAPI}}
{{.}}{{end}}

END_C_DECLS




{{.NSEnd}}




#endif /* !SWIG */
{{- end}}




#endif /* !{{.Guard}} */
`

const classImplTemplate = `{{.Notice}}/**
 * @file {{.Name}}.cpp
 * @brief Implementation of the {{.Name}} class.
 */
{{range .Includes}}#include <{{.}}>
{{end}}

using namespace std;



{{.NSBegin}}




#ifdef __cplusplus
{{range .Defs}}
{{.}}{{end}}


#endif /* __cplusplus */
{{range .CAPI}}
{{.}}{{end}}



{{.NSEnd}}
`

var (
	classHeaderTmpl = mustTemplate("class header", classHeaderTemplate)
	classImplTmpl   = mustTemplate("class implementation", classImplTemplate)
)

type classFile struct {
	Notice    string
	Name      string
	Base      string
	Guard     string
	Inc       string
	PkgInc    string
	Pkg       string
	Export    string
	NSBegin   string
	NSEnd     string
	Includes  []string
	Members   []string
	Public    []string
	Protected []string
	Defs      []string
	CAPI      []string
}

// RenderClass renders the header and implementation of a package class.
func RenderClass(md *meta.Metadata, c *meta.Class) (header, impl []byte, err error) {
	g := newGenerator(md)
	cg, err := g.classGen(c)
	if err != nil {
		return nil, nil, err
	}
	return cg.render()
}

// RenderPlugin renders the header and implementation of the plugin extending a class.
func RenderPlugin(md *meta.Metadata, p *meta.Plugin) (header, impl []byte, err error) {
	g := newGenerator(md)
	cg, err := g.pluginGen(p)
	if err != nil {
		return nil, nil, err
	}
	return cg.render()
}

func (cg *classGen) render() ([]byte, []byte, error) {
	public, protected, capi, members := cg.build()

	f := cg.classFile(cg.name, cg.base)
	f.Members = members
	f.Includes = cg.headerIncludes()
	for _, m := range public {
		f.Public = append(f.Public, m.decl())
	}
	for _, m := range protected {
		f.Protected = append(f.Protected, m.decl())
	}
	for _, m := range capi {
		f.CAPI = append(f.CAPI, m.cdecl(cg.d.export()))
	}
	header, err := execute(classHeaderTmpl, f)
	if err != nil {
		return nil, nil, err
	}

	f.Includes = cg.implIncludes()
	f.CAPI = nil
	for _, m := range append(public, protected...) {
		f.Defs = append(f.Defs, m.def(cg.name, ""))
	}
	for _, m := range capi {
		f.CAPI = append(f.CAPI, m.def("", cg.d.export()))
	}
	impl, err := execute(classImplTmpl, f)
	if err != nil {
		return nil, nil, err
	}

	if err := checkPair(cg.name, string(header), string(impl), append(public, protected...), capi); err != nil {
		return nil, nil, fmt.Errorf("render %s: %w", cg.name, err)
	}
	return header, impl, nil
}

func (g *generator) classFile(name, base string) classFile {
	return classFile{
		Notice:  g.notice,
		Name:    name,
		Base:    base,
		Guard:   name + "_H__",
		Inc:     g.d.inc,
		PkgInc:  g.incDir,
		Pkg:     g.pkg,
		Export:  g.d.export(),
		NSBegin: g.d.nsBegin(),
		NSEnd:   g.d.nsEnd(),
	}
}

func (cg *classGen) headerIncludes() []string {
	var inc []string
	switch {
	case cg.plugin:
		inc = append(inc, cg.d.inc+"/extension/"+cg.base+".h")
	case cg.basePkg != nil:
		inc = append(inc, cg.classInclude(cg.base))
	default:
		inc = append(inc, cg.d.inc+"/"+cg.base+".h")
	}
	inc = append(inc, cg.extInclude())
	for _, a := range cg.attrs {
		switch {
		case a.target != nil && a.Kind() == schema.KindListOf:
			inc = append(inc, cg.classInclude(a.target.ListOfName()))
		case a.target != nil:
			inc = append(inc, cg.classInclude(a.target.Name))
		case a.enum != nil:
			inc = append(inc, cg.enumsInclude())
		}
	}
	return unique(inc)
}

func (cg *classGen) implIncludes() []string {
	own := cg.classInclude(cg.name)
	if cg.plugin {
		own = cg.include("extension", cg.name+".h")
	}
	inc := []string{
		own,
		cg.include("validator", cg.prefix+cg.d.lang+"Error.h"),
		cg.d.inc + "/util/util.h",
	}
	if cg.plugin {
		inc = append(inc, cg.d.inc+"/"+cg.host+".h")
	}
	for _, a := range cg.children() {
		for _, c := range concrete(a.target) {
			inc = append(inc, cg.classInclude(c.Name))
		}
	}
	if cg.c != nil && cg.c.Abstract {
		for _, d := range cg.c.Derived {
			if d.Name != cg.name {
				inc = append(inc, cg.classInclude(d.Name))
			}
		}
	}
	for _, a := range cg.values() {
		if a.Kind() == schema.KindDoubleArray {
			inc = append(inc, "cstring", "sstream", "vector")
			break
		}
	}
	return unique(inc)
}

func unique(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
