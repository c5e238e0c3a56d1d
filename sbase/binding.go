package sbase

import (
	"github.com/pkg/errors"

	"github.com/sbmlteam/deviser/schema"
)

// classInfo is the runtime view of one class: either a package class, or a host
// language class that package plugins add attributes and children to.
type classInfo struct {
	name        string
	elementName string
	class       *schema.Class
	base        *classInfo
	attrs       []schema.Attribute
	core        bool
	abstract    bool
}

// own returns the attribute declared on this layer.
func (ci *classInfo) own(name string) *schema.Attribute {
	for i := range ci.attrs {
		if ci.attrs[i].Name == name {
			return &ci.attrs[i]
		}
	}
	return nil
}

// chain returns ci followed by its ancestors, nearest first.
func (ci *classInfo) chain() []*classInfo {
	var out []*classInfo
	for cur := ci; cur != nil; cur = cur.base {
		out = append(out, cur)
	}
	return out
}

// lookup finds an attribute along the chain.
func (ci *classInfo) lookup(name string) *schema.Attribute {
	for cur := ci; cur != nil; cur = cur.base {
		if a := cur.own(name); a != nil {
			return a
		}
	}
	return nil
}

func (ci *classInfo) isA(other *classInfo) bool {
	for cur := ci; cur != nil; cur = cur.base {
		if cur == other {
			return true
		}
	}
	return false
}

// Binding resolves one version of a package schema for the runtime.
type Binding struct {
	Package *schema.Package
	Version *schema.Version
	URI     string
	Errors  *ErrorTable

	classes  map[string]*classInfo
	order    []*classInfo
	document *classInfo
}

// Bind resolves pkgVersion (0 selects the last declared version) of pkg.
func Bind(pkg *schema.Package, pkgVersion int) (*Binding, error) {
	v, err := pkg.SelectVersion(pkgVersion)
	if err != nil {
		return nil, errors.Wrap(err, "bind package")
	}
	b := &Binding{
		Package: pkg,
		Version: v,
		URI:     pkg.URI(v),
		Errors:  NewErrorTable(pkg, v),
		classes: map[string]*classInfo{},
	}

	for i := range v.Classes {
		c := &v.Classes[i]
		ci := &classInfo{
			name:        c.Name,
			elementName: c.ElementName,
			class:       c,
			attrs:       append([]schema.Attribute(nil), c.Attributes...),
			abstract:    c.Abstract,
		}
		b.classes[c.Name] = ci
		b.order = append(b.order, ci)
	}
	for _, ci := range b.order {
		if base, ok := b.classes[ci.class.BaseClass]; ok && base != ci {
			ci.base = base
		}
	}

	lang := &pkg.Language
	b.document = &classInfo{name: lang.DocumentClass, elementName: lang.DocumentElement, core: true}
	b.classes[lang.DocumentClass] = b.document

	for _, pl := range v.Plugins {
		host, ok := b.classes[pl.Extends]
		if !ok {
			host = &classInfo{name: pl.Extends, elementName: schema.LowerFirst(pl.Extends), core: true}
			b.classes[pl.Extends] = host
			b.document.attrs = append(b.document.attrs, schema.NewAttribute(host.elementName, schema.KindElement, host.name, false))
		}
		host.attrs = append(host.attrs, pl.Attributes...)
	}
	return b, nil
}

// MustBind is Bind for callers holding a schema they know to be valid.
func MustBind(pkg *schema.Package, pkgVersion int) *Binding {
	b, err := Bind(pkg, pkgVersion)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Binding) class(name string) *classInfo { return b.classes[name] }

// concrete lists the instantiable package classes that are, or derive from, ci.
func (b *Binding) concrete(ci *classInfo) []*classInfo {
	if ci.core {
		return []*classInfo{ci}
	}
	var out []*classInfo
	for _, c := range b.order {
		if !c.abstract && c.isA(ci) {
			out = append(out, c)
		}
	}
	return out
}

// byElement finds the concrete class of target, or a subclass, written as element name.
func (b *Binding) byElement(target *classInfo, name string) *classInfo {
	for _, c := range b.concrete(target) {
		if c.elementName == name {
			return c
		}
	}
	return nil
}

// Namespaces returns the namespaces of a document using this package version.
func (b *Binding) Namespaces() *Namespaces {
	v := b.Version
	ns := NewNamespaces(&b.Package.Language, uint(v.Level), uint(v.Version))
	ns.AddPackage(b.Package.Name, b.URI, v.PkgVersion)
	return ns
}

// Prefix is the XML prefix under which package elements and plugin attributes are written.
func (b *Binding) Prefix() string { return b.Package.Name }

// ClassNames lists the package classes in declaration order.
func (b *Binding) ClassNames() []string {
	out := make([]string, 0, len(b.order))
	for _, c := range b.order {
		out = append(out, c.name)
	}
	return out
}

func (b *Binding) code(ci *classInfo, r Rule) int { return b.Errors.ClassCode(ci.name, r) }
