package schema

// Class returns the class with the given name, or nil.
func (v *Version) Class(name string) *Class {
	if v.byName == nil {
		v.reindex()
	}
	return v.byName[name]
}

// Index is the position of a class in declaration order, or -1.
func (v *Version) Index(name string) int {
	for i := range v.Classes {
		if v.Classes[i].Name == name {
			return i
		}
	}
	return -1
}

// Base returns the package base class of c, or nil when c derives from a host class.
func (v *Version) Base(c *Class) *Class {
	if c == nil || c.BaseClass == c.Name {
		return nil
	}
	return v.Class(c.BaseClass)
}

// Chain returns c followed by its package ancestors, nearest first.
// It stops at the first class seen twice so a cyclic schema cannot loop.
func (v *Version) Chain(c *Class) []*Class {
	var out []*Class
	seen := map[string]bool{}
	for cur := c; cur != nil && !seen[cur.Name]; cur = v.Base(cur) {
		seen[cur.Name] = true
		out = append(out, cur)
	}
	return out
}

// IsA reports whether class name is base or derives from it.
func (v *Version) IsA(name, base string) bool {
	c := v.Class(name)
	if c == nil {
		return name == base
	}
	for _, a := range v.Chain(c) {
		if a.Name == base {
			return true
		}
	}
	return false
}

// Derived lists the concrete classes that are, or derive from, base, in declaration order.
func (v *Version) Derived(base string) []*Class {
	var out []*Class
	for i := range v.Classes {
		c := &v.Classes[i]
		if !c.Abstract && v.IsA(c.Name, base) {
			out = append(out, c)
		}
	}
	return out
}

// Subclasses lists the classes whose direct base is name.
func (v *Version) Subclasses(name string) []*Class {
	var out []*Class
	for i := range v.Classes {
		if v.Classes[i].BaseClass == name && v.Classes[i].Name != name {
			out = append(out, &v.Classes[i])
		}
	}
	return out
}

// AllAttributes returns the attributes of c including inherited ones, root ancestor first.
func (v *Version) AllAttributes(c *Class) []Attribute {
	chain := v.Chain(c)
	var out []Attribute
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, chain[i].Attributes...)
	}
	return out
}

// Attribute finds an attribute of c by name, searching its ancestors too.
func (v *Version) Attribute(c *Class, name string) *Attribute {
	for _, cl := range v.Chain(c) {
		for i := range cl.Attributes {
			if cl.Attributes[i].Name == name {
				return &cl.Attributes[i]
			}
		}
	}
	return nil
}

// HasID reports whether instances of c carry an SId attribute named "id".
func (v *Version) HasID(c *Class) bool {
	a := v.Attribute(c, "id")
	return a != nil && a.Kind() == KindSId
}

// Enum returns the enumeration with the given name, or nil.
func (v *Version) Enum(name string) *Enum {
	for i := range v.Enums {
		if v.Enums[i].Name == name {
			return &v.Enums[i]
		}
	}
	return nil
}

// PluginsFor lists the plugins extending the named class.
func (v *Version) PluginsFor(name string) []*Plugin {
	var out []*Plugin
	for i := range v.Plugins {
		if v.Plugins[i].Extends == name {
			out = append(out, &v.Plugins[i])
		}
	}
	return out
}

// ChildXMLName is the element name under which a child attribute is written.
// For a list this is the container element, for a singular child the attribute name.
func (v *Version) ChildXMLName(a *Attribute) string {
	if a.XMLName != "" {
		return a.XMLName
	}
	if a.Kind() == KindListOf {
		if c := v.Class(a.Element); c != nil {
			return c.ListOfElementName()
		}
		return "listOf" + UpperFirst(Plural(a.Element))
	}
	return a.Name
}

// ListTargets returns the classes held in lists anywhere in this version, in declaration order.
func (v *Version) ListTargets() []*Class {
	want := map[string]bool{}
	collect := func(attrs []Attribute) {
		for i := range attrs {
			if attrs[i].Kind() == KindListOf {
				want[attrs[i].Element] = true
			}
		}
	}
	for i := range v.Classes {
		collect(v.Classes[i].Attributes)
	}
	for i := range v.Plugins {
		collect(v.Plugins[i].Attributes)
	}
	var out []*Class
	for i := range v.Classes {
		if want[v.Classes[i].Name] {
			out = append(out, &v.Classes[i])
		}
	}
	return out
}

// Has reports whether value is one of the XML spellings of the enumeration.
func (e *Enum) Has(value string) bool {
	for _, ev := range e.Values {
		if ev.Value == value {
			return true
		}
	}
	return false
}
