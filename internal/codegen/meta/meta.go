package meta

import (
	"fmt"

	"github.com/sbmlteam/deviser/sbase"
	"github.com/sbmlteam/deviser/schema"
)

// Metadata holds the resolved package version every language generator renders.
// It is built once per run and shared read-only between generators.
type Metadata struct {
	Package *schema.Package
	Version *schema.Version
	URI     string
	Errors  *sbase.ErrorTable

	Classes []*Class          // declaration order
	ListOfs []*schema.Class   // classes held in lists, declaration order
	Plugins []*Plugin         // merged per extended class, declaration order
	Enums   []*schema.Enum    // declaration order
	byName  map[string]*Class // package classes by name
}

// Class is a package class with its inheritance resolved.
type Class struct {
	*schema.Class
	Base     *Class             // nil when the class derives from the language base class
	All      []schema.Attribute // inherited attributes first
	Children []schema.Attribute // own element and list children
	Derived  []*Class           // concrete classes that are this class or derive from it
	TypeNum  int                // numeric type code
	HasID    bool
	Plugins  []*schema.Plugin // plugins that extend this package class
}

// Plugin merges every plugin of one version that extends the same class.
type Plugin struct {
	Extends    string
	Host       *Class // nil for a class of the host language
	Attributes []schema.Attribute
}

// Build resolves pkgVersion (0 selects the last) of a validated package.
func Build(pkg *schema.Package, pkgVersion int) (*Metadata, error) {
	v, err := pkg.SelectVersion(pkgVersion)
	if err != nil {
		return nil, fmt.Errorf("select version: %w", err)
	}
	md := &Metadata{
		Package: pkg,
		Version: v,
		URI:     pkg.URI(v),
		Errors:  sbase.NewErrorTable(pkg, v),
		byName:  map[string]*Class{},
	}

	for i := range v.Classes {
		c := &Class{
			Class:   &v.Classes[i],
			All:     v.AllAttributes(&v.Classes[i]),
			TypeNum: pkg.Number + i,
			HasID:   v.HasID(&v.Classes[i]),
			Plugins: v.PluginsFor(v.Classes[i].Name),
		}
		for _, a := range c.Attributes {
			if a.Kind().IsChild() {
				c.Children = append(c.Children, a)
			}
		}
		md.Classes = append(md.Classes, c)
		md.byName[c.Name] = c
	}
	for _, c := range md.Classes {
		if b := v.Base(c.Class); b != nil {
			c.Base = md.byName[b.Name]
		}
		for _, d := range v.Derived(c.Name) {
			c.Derived = append(c.Derived, md.byName[d.Name])
		}
	}

	md.ListOfs = v.ListTargets()
	for i := range v.Enums {
		md.Enums = append(md.Enums, &v.Enums[i])
	}

	index := map[string]*Plugin{}
	for i := range v.Plugins {
		pl := &v.Plugins[i]
		p, ok := index[pl.Extends]
		if !ok {
			p = &Plugin{Extends: pl.Extends, Host: md.byName[pl.Extends]}
			index[pl.Extends] = p
			md.Plugins = append(md.Plugins, p)
		}
		p.Attributes = append(p.Attributes, pl.Attributes...)
	}
	return md, nil
}

// Class returns the package class called name, or nil.
func (md *Metadata) Class(name string) *Class { return md.byName[name] }

// Target is the package class an element, list or reference attribute points at.
func (md *Metadata) Target(a *schema.Attribute) *Class { return md.byName[a.Element] }

// ChildXMLName is the element name of a child attribute.
func (md *Metadata) ChildXMLName(a *schema.Attribute) string { return md.Version.ChildXMLName(a) }

// Language is the host language of the package.
func (md *Metadata) Language() *schema.Language { return &md.Package.Language }
