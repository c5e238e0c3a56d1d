// Package gobind renders plain Go bindings of an extension package: one struct
// per class with encoding/xml tags, string types for the enumerations and the
// required attribute and element checks.
package gobind

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/sbmlteam/deviser/internal/codegen/common"
	"github.com/sbmlteam/deviser/internal/codegen/emit"
	"github.com/sbmlteam/deviser/internal/codegen/meta"
	"github.com/sbmlteam/deviser/schema"
)

// Generate renders the Go binding artifacts. Paths are relative to the target directory.
func Generate(logger *slog.Logger, md *meta.Metadata) ([]emit.Artifact, error) {
	pkg := packageName(md)
	f, err := Render(md)
	if err != nil {
		return nil, emit.NewGenerationError("render", pkg+".go", "", err)
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, emit.NewGenerationError("render", pkg+".go", "format", err)
	}

	readme, err := common.Readme(md.Package, md.Version, "Go", "")
	if err != nil {
		return nil, emit.NewGenerationError("render", "README.md", "", err)
	}
	arts := []emit.Artifact{
		{Path: pkg + "/" + pkg + ".go", Content: buf.Bytes()},
		readme,
		common.License(md.Package, ""),
	}
	for _, a := range arts {
		if err := emit.Check(a); err != nil {
			return nil, err
		}
	}
	emit.Sort(arts)
	logger.Info("Rendered Go bindings", "package", md.Package.Name, "classes", len(md.Classes))
	return arts, nil
}

func packageName(md *meta.Metadata) string { return strings.ToLower(md.Package.Name) }

// Render builds the binding file.
func Render(md *meta.Metadata) (*jen.File, error) {
	f := jen.NewFile(packageName(md))
	f.HeaderComment(fmt.Sprintf("Code generated by %s for the %s package. DO NOT EDIT.", common.Stamp(), md.Package.FullName))
	f.ImportName("encoding/xml", "xml")

	f.Const().Defs(
		jen.Comment("Namespace is the XML namespace of the package elements and attributes."),
		jen.Id("Namespace").Op("=").Lit(md.URI),
		jen.Comment("Prefix is the conventional namespace prefix."),
		jen.Id("Prefix").Op("=").Lit(packageName(md)),
		jen.Id("Level").Op("=").Lit(md.Version.Level),
		jen.Id("Version").Op("=").Lit(md.Version.Version),
		jen.Id("PackageVersion").Op("=").Lit(md.Version.PkgVersion),
	)

	for _, e := range md.Enums {
		genEnum(f, e)
	}
	if usesArrays(md) {
		genDoubleArray(f)
	}
	for _, c := range md.Classes {
		if err := genClass(f, md, c); err != nil {
			return nil, err
		}
	}
	for _, p := range md.Plugins {
		if p.Host != nil {
			continue
		}
		name := md.Package.Prefix + p.Extends + "Plugin"
		if err := genStruct(f, md, name, "", p.Attributes, fmt.Sprintf("%s holds what the package adds to %s.", name, p.Extends)); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// goName is the exported Go identifier of a schema name.
func goName(s string) string {
	n := common.ToPascalCase(s)
	switch {
	case n == "Id":
		return "ID"
	case strings.HasSuffix(n, "Id") && len(n) > 2 && n[len(n)-3] >= 'a' && n[len(n)-3] <= 'z':
		return n[:len(n)-2] + "ID"
	}
	return n
}

func usesArrays(md *meta.Metadata) bool {
	check := func(attrs []schema.Attribute) bool {
		for i := range attrs {
			if attrs[i].Kind() == schema.KindDoubleArray {
				return true
			}
		}
		return false
	}
	for _, c := range md.Classes {
		if check(c.Attributes) {
			return true
		}
	}
	for _, p := range md.Plugins {
		if check(p.Attributes) {
			return true
		}
	}
	return false
}

func genEnum(f *jen.File, e *schema.Enum) {
	members := common.EnumMembers(e)
	f.Commentf("%s is one of the XML spellings of the %s enumeration.", e.Name, e.Name)
	f.Type().Id(e.Name).String()
	f.Const().DefsFunc(func(g *jen.Group) {
		for _, m := range members {
			g.Id(m.Ident).Id(e.Name).Op("=").Lit(m.Value)
		}
	})
	f.Commentf("IsValid reports whether v is a known %s value.", e.Name)
	f.Func().Params(jen.Id("v").Id(e.Name)).Id("IsValid").Params().Bool().Block(
		jen.Switch(jen.Id("v")).Block(
			jen.CaseFunc(func(g *jen.Group) {
				for _, m := range members {
					g.Id(m.Ident)
				}
			}).Block(jen.Return(jen.True())),
		),
		jen.Return(jen.False()),
	)
}

func genDoubleArray(f *jen.File) {
	f.Comment("DoubleArray is a space separated list of doubles carried in one attribute.")
	f.Type().Id("DoubleArray").Index().Float64()

	f.Func().Params(jen.Id("a").Id("DoubleArray")).Id("MarshalXMLAttr").Params(
		jen.Id("name").Qual("encoding/xml", "Name"),
	).Params(jen.Qual("encoding/xml", "Attr"), jen.Error()).Block(
		jen.Id("parts").Op(":=").Make(jen.Index().String(), jen.Len(jen.Id("a"))),
		jen.For(jen.List(jen.Id("i"), jen.Id("v")).Op(":=").Range().Id("a")).Block(
			jen.Id("parts").Index(jen.Id("i")).Op("=").Qual("strconv", "FormatFloat").Call(
				jen.Id("v"), jen.LitByte('g'), jen.Lit(-1), jen.Lit(64)),
		),
		jen.Return(jen.Qual("encoding/xml", "Attr").Values(jen.Dict{
			jen.Id("Name"):  jen.Id("name"),
			jen.Id("Value"): jen.Qual("strings", "Join").Call(jen.Id("parts"), jen.Lit(" ")),
		}), jen.Nil()),
	)

	f.Func().Params(jen.Id("a").Op("*").Id("DoubleArray")).Id("UnmarshalXMLAttr").Params(
		jen.Id("attr").Qual("encoding/xml", "Attr"),
	).Error().Block(
		jen.Id("fields").Op(":=").Qual("strings", "Fields").Call(jen.Id("attr").Dot("Value")),
		jen.Id("out").Op(":=").Make(jen.Id("DoubleArray"), jen.Lit(0), jen.Len(jen.Id("fields"))),
		jen.For(jen.List(jen.Id("_"), jen.Id("s")).Op(":=").Range().Id("fields")).Block(
			jen.List(jen.Id("v"), jen.Err()).Op(":=").Qual("strconv", "ParseFloat").Call(jen.Id("s"), jen.Lit(64)),
			jen.If(jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit("parse %s: %w"), jen.Id("attr").Dot("Name").Dot("Local"), jen.Err())),
			),
			jen.Id("out").Op("=").Append(jen.Id("out"), jen.Id("v")),
		),
		jen.Op("*").Id("a").Op("=").Id("out"),
		jen.Return(jen.Nil()),
	)
}

func genClass(f *jen.File, md *meta.Metadata, c *meta.Class) error {
	doc := fmt.Sprintf("%s is the <%s> element.", c.Name, c.ElementName)
	if c.Abstract {
		doc = fmt.Sprintf("%s holds what the classes deriving from it share. It is never written on its own.", c.Name)
	}
	if c.Doc != "" {
		doc = strings.TrimSpace(c.Doc)
	}
	embed := ""
	if c.Base != nil {
		embed = c.Base.Name
	}
	attrs := append([]schema.Attribute(nil), c.Attributes...)
	for _, p := range c.Plugins {
		attrs = append(attrs, p.Attributes...)
	}
	return genStruct(f, md, c.Name, embed, attrs, doc)
}

// field is one struct field with the expressions testing its presence.
type field struct {
	code    jen.Code
	present []jen.Code
	child   bool
}

func genStruct(f *jen.File, md *meta.Metadata, name, embed string, attrs []schema.Attribute, doc string) error {
	var fields []field
	for i := range attrs {
		fs, err := structFields(md, &attrs[i])
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fs[0].present = presence(md, &attrs[i])
		if !attrs[i].Required {
			fs[0].present = nil
		}
		fields = append(fields, fs...)
	}

	f.Comment(doc)
	f.Type().Id(name).StructFunc(func(g *jen.Group) {
		if embed != "" {
			g.Id(embed)
		}
		for _, fl := range fields {
			g.Add(fl.code)
		}
	})

	for _, which := range []string{"Attributes", "Elements"} {
		method := "HasRequired" + which
		body := []jen.Code{}
		if embed != "" {
			body = append(body, jen.If(jen.Op("!").Id("v").Dot(embed).Dot(method).Call()).Block(jen.Return(jen.False())))
		}
		wantChild := which == "Elements"
		for _, fl := range fields {
			if fl.child != wantChild || fl.present == nil {
				continue
			}
			body = append(body, jen.If(jen.Op("!").Parens(joinOr(fl.present))).Block(jen.Return(jen.False())))
		}
		body = append(body, jen.Return(jen.True()))
		f.Commentf("%s reports whether every required %s of %s is set.", method, strings.ToLower(strings.TrimSuffix(which, "s")), name)
		f.Func().Params(jen.Id("v").Op("*").Id(name)).Id(method).Params().Bool().Block(body...)
	}
	return nil
}

func joinOr(conds []jen.Code) jen.Code {
	out := jen.Add(conds[0])
	for _, c := range conds[1:] {
		out = out.Op("||").Add(c)
	}
	return out
}

func tag(name string, opts ...string) map[string]string {
	return map[string]string{"xml": strings.Join(append([]string{name}, opts...), ",")}
}

// structFields renders the field or fields of one attribute. An abstract child
// gets one field per concrete class, since each is written under its own name.
func structFields(md *meta.Metadata, a *schema.Attribute) ([]field, error) {
	id := goName(a.Name)
	switch a.Kind() {
	case schema.KindBool:
		return []field{{code: jen.Id(id).Op("*").Bool().Tag(tag(a.XML(), "attr", "omitempty"))}}, nil
	case schema.KindInt:
		return []field{{code: jen.Id(id).Op("*").Int().Tag(tag(a.XML(), "attr", "omitempty"))}}, nil
	case schema.KindUInt:
		return []field{{code: jen.Id(id).Op("*").Uint().Tag(tag(a.XML(), "attr", "omitempty"))}}, nil
	case schema.KindDouble:
		return []field{{code: jen.Id(id).Op("*").Float64().Tag(tag(a.XML(), "attr", "omitempty"))}}, nil
	case schema.KindString, schema.KindSId, schema.KindSIdRef:
		return []field{{code: jen.Id(id).String().Tag(tag(a.XML(), "attr", "omitempty"))}}, nil
	case schema.KindEnum:
		return []field{{code: jen.Id(id).Id(a.Element).Tag(tag(a.XML(), "attr", "omitempty"))}}, nil
	case schema.KindDoubleArray:
		return []field{{code: jen.Id(id).Id("DoubleArray").Tag(tag(a.XML(), "attr", "omitempty"))}}, nil
	case schema.KindElement, schema.KindListOf:
		target := md.Target(a)
		if target == nil {
			return nil, fmt.Errorf("attribute %q: unknown class %q", a.Name, a.Element)
		}
		list := a.Kind() == schema.KindListOf
		if !target.Abstract {
			if list {
				path := md.ChildXMLName(a) + ">" + target.ElementName
				return []field{{code: jen.Id(id).Index().Id(target.Name).Tag(tag(path, "omitempty")), child: true}}, nil
			}
			return []field{{code: jen.Id(id).Op("*").Id(target.Name).Tag(tag(a.XML(), "omitempty")), child: true}}, nil
		}
		var out []field
		for _, d := range target.Derived {
			if d.Abstract {
				continue
			}
			if list {
				path := md.ChildXMLName(a) + ">" + d.ElementName
				out = append(out, field{code: jen.Id(id + d.Name).Index().Id(d.Name).Tag(tag(path, "omitempty")), child: true})
				continue
			}
			out = append(out, field{code: jen.Id(id + d.Name).Op("*").Id(d.Name).Tag(tag(d.ElementName, "omitempty")), child: true})
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("attribute %q: abstract class %q has no concrete subclass", a.Name, a.Element)
		}
		return out, nil
	}
	return nil, fmt.Errorf("attribute %q: no Go rule for kind %s", a.Name, a.Kind())
}

// presence lists the conditions of which one must hold for the attribute to count as set.
func presence(md *meta.Metadata, a *schema.Attribute) []jen.Code {
	id := goName(a.Name)
	v := func(name string) *jen.Statement { return jen.Id("v").Dot(name) }
	switch a.Kind() {
	case schema.KindString, schema.KindSId, schema.KindSIdRef, schema.KindEnum:
		return []jen.Code{v(id).Op("!=").Lit("")}
	case schema.KindDoubleArray:
		return []jen.Code{jen.Len(v(id)).Op(">").Lit(0)}
	case schema.KindElement, schema.KindListOf:
		target := md.Target(a)
		list := a.Kind() == schema.KindListOf
		names := []string{id}
		if target.Abstract {
			names = nil
			for _, d := range target.Derived {
				if !d.Abstract {
					names = append(names, id+d.Name)
				}
			}
		}
		var out []jen.Code
		for _, n := range names {
			if list {
				out = append(out, jen.Len(v(n)).Op(">").Lit(0))
			} else {
				out = append(out, v(n).Op("!=").Nil())
			}
		}
		return out
	}
	return []jen.Code{v(id).Op("!=").Nil()}
}
