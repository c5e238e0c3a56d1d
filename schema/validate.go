package schema

import (
	"errors"
	"fmt"
)

// Validate checks structural consistency of every version. All problems are
// reported at once, joined; each one is a *SchemaError.
func (p *Package) Validate() error {
	var errs []error
	add := func(class, attr, format string, args ...any) {
		errs = append(errs, NewSchemaError(class, attr, fmt.Sprintf(format, args...), nil))
	}
	if len(p.Versions) == 0 {
		add("", "", "package declares no versions")
	}
	if p.Language.Name != DefaultLanguage().Name && len(p.Language.Namespaces) == 0 {
		add("", "", "language %s declares no namespaces", p.Language.Name)
	}

	seenPkgVersions := map[int]bool{}
	for vi := range p.Versions {
		v := &p.Versions[vi]
		if seenPkgVersions[v.PkgVersion] {
			add("", "", "package version %d declared twice", v.PkgVersion)
		}
		seenPkgVersions[v.PkgVersion] = true
		if p.Language.URI(v.Level, v.Version) == "" {
			add("", "", "level %d version %d is not a %s namespace", v.Level, v.Version, p.Language.Name)
		}
		errs = append(errs, p.validateVersion(v)...)
	}
	return errors.Join(errs...)
}

func (p *Package) validateVersion(v *Version) []error {
	var errs []error
	add := func(class, attr, format string, args ...any) {
		errs = append(errs, NewSchemaError(class, attr, fmt.Sprintf(format, args...), nil))
	}

	names := map[string]bool{}
	enums := map[string]bool{}
	for _, e := range v.Enums {
		if enums[e.Name] {
			add("", "", "duplicate enumeration %s", e.Name)
		}
		enums[e.Name] = true
		if len(e.Values) == 0 {
			add("", "", "enumeration %s has no values", e.Name)
		}
	}

	isHost := func(name string) bool {
		return name == p.Language.BaseClass || name == p.Language.DocumentClass
	}

	for ci := range v.Classes {
		c := &v.Classes[ci]
		if c.Name == "" {
			add("", "", "class %d has no name", ci)
			continue
		}
		if names[c.Name] {
			add(c.Name, "", "duplicate class name")
		}
		names[c.Name] = true
		if !isHost(c.BaseClass) && v.Class(c.BaseClass) == nil {
			add(c.Name, "", "unknown base class %s", c.BaseClass)
		}
	}

	// single-parent chain walk: a class seen twice on its own chain closes a cycle
	for ci := range v.Classes {
		c := &v.Classes[ci]
		seen := map[string]bool{}
		for cur := c; cur != nil; cur = v.Class(cur.BaseClass) {
			if seen[cur.Name] {
				add(c.Name, "", "inheritance cycle through %s", cur.Name)
				break
			}
			seen[cur.Name] = true
			if isHost(cur.BaseClass) {
				break
			}
		}
	}

	checkAttrs := func(owner string, attrs []Attribute) {
		for i := range attrs {
			a := &attrs[i]
			if a.Name == "" {
				add(owner, "", "attribute %d has no name", i)
				continue
			}
			switch a.Kind() {
			case KindEnum:
				if !enums[a.Element] {
					add(owner, a.Name, "unknown enumeration %s", a.Element)
				}
			case KindElement, KindListOf:
				if v.Class(a.Element) == nil {
					add(owner, a.Name, "unknown element class %s", a.Element)
				}
			case KindSIdRef:
				if a.Element != "" && v.Class(a.Element) == nil && !isHost(a.Element) {
					add(owner, a.Name, "reference to unknown class %s", a.Element)
				}
			}
			if a.Default != "" && a.Kind().IsChild() {
				add(owner, a.Name, "child attributes cannot carry a default")
			}
		}
	}

	for ci := range v.Classes {
		c := &v.Classes[ci]
		checkAttrs(c.Name, c.Attributes)

		// names must be unique along the whole chain, since the generic accessors
		// resolve a name to exactly one layer
		seen := map[string]string{}
		children := map[string]bool{}
		for _, cl := range v.Chain(c) {
			for _, a := range cl.Attributes {
				if prev, ok := seen[a.Name]; ok {
					add(c.Name, a.Name, "attribute declared in both %s and %s", prev, cl.Name)
				}
				seen[a.Name] = cl.Name
				if a.Kind().IsChild() && a.Element != "" {
					x := v.ChildXMLName(&a)
					if children[x] {
						add(c.Name, a.Name, "child element %s declared twice", x)
					}
					children[x] = true
				}
			}
		}
	}

	for pi := range v.Plugins {
		pl := &v.Plugins[pi]
		if pl.Extends == "" {
			add("", "", "plugin %d extends nothing", pi)
			continue
		}
		if pl.Extends == p.Language.BaseClass {
			add(pl.Extends+"Plugin", "", "plugins cannot extend the language base class")
		}
		checkAttrs(pl.Extends+"Plugin", pl.Attributes)
	}
	return errs
}
