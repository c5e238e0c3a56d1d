package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Normalize fills defaults, resolves attribute type spellings and indexes classes.
// Loaders call it; callers that build a Package by hand must call it before use.
func (p *Package) Normalize() error {
	if p.Name == "" {
		return NewSchemaError("", "", "package name is required", nil)
	}
	if p.Prefix == "" {
		p.Prefix = UpperFirst(p.Name)
	}
	if p.FullName == "" {
		p.FullName = p.Prefix
	}
	if p.URIPattern == "" {
		p.URIPattern = DefaultURIPattern
	}
	p.normalizeLanguage()

	var errs []error
	for vi := range p.Versions {
		v := &p.Versions[vi]
		if v.Level == 0 && v.Version == 0 {
			v.Level, v.Version = 3, 1
		}
		if v.PkgVersion == 0 {
			v.PkgVersion = 1
		}
		for ci := range v.Classes {
			c := &v.Classes[ci]
			if c.ElementName == "" {
				c.ElementName = LowerFirst(c.Name)
			}
			if c.BaseClass == "" {
				c.BaseClass = p.Language.BaseClass
			}
			if c.TypeCode == "" {
				c.TypeCode = strings.ToUpper(p.Language.Name) + "_" + strings.ToUpper(p.Name) + "_" + SnakeUpper(c.Name)
			}
			errs = append(errs, normalizeAttributes(c.Name, c.Attributes)...)
		}
		for pi := range v.Plugins {
			pl := &v.Plugins[pi]
			errs = append(errs, normalizeAttributes(pl.Extends+"Plugin", pl.Attributes)...)
		}
		v.reindex()
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (p *Package) normalizeLanguage() {
	def := DefaultLanguage()
	l := &p.Language
	if l.Name == "" {
		l.Name = def.Name
	}
	if l.BaseClass == "" {
		l.BaseClass = l.Name + "Base"
		if l.Name == def.Name {
			l.BaseClass = def.BaseClass
		}
	}
	if l.DocumentClass == "" {
		l.DocumentClass = l.Name + "Document"
	}
	if l.DocumentElement == "" {
		l.DocumentElement = strings.ToLower(l.Name)
	}
	if len(l.Namespaces) == 0 && l.Name == def.Name {
		l.Namespaces = def.Namespaces
	}
}

func normalizeAttributes(owner string, attrs []Attribute) []error {
	var errs []error
	for i := range attrs {
		a := &attrs[i]
		k, err := ParseKind(a.Type)
		if err != nil {
			errs = append(errs, NewSchemaError(owner, a.Name, "", err))
			continue
		}
		a.kind = k
		if k == KindEnum && a.Element == "" {
			errs = append(errs, NewSchemaError(owner, a.Name, "enum attribute names no enumeration", nil))
		}
		if k.IsChild() && a.Element == "" {
			errs = append(errs, NewSchemaError(owner, a.Name, fmt.Sprintf("%s attribute names no element class", k), nil))
		}
	}
	return errs
}

func (v *Version) reindex() {
	v.byName = make(map[string]*Class, len(v.Classes))
	for i := range v.Classes {
		if _, dup := v.byName[v.Classes[i].Name]; !dup {
			v.byName[v.Classes[i].Name] = &v.Classes[i]
		}
	}
}
