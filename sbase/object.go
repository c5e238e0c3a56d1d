package sbase

import (
	"encoding/xml"
	"math"

	"github.com/pkg/errors"

	"github.com/sbmlteam/deviser/schema"
)

// Errors returned by NewObject. Construction is the only place the runtime reports
// problems through error values; everything else returns a Status or logs.
var (
	ErrIncompatibleNamespaces = errors.New("incompatible namespaces for object")
	ErrUnknownClass           = errors.New("unknown class")
	ErrAbstractClass          = errors.New("abstract class cannot be instantiated")
)

// Object is one instance of a package class, or of a host class carrying plugin
// content. Attribute values are stored by name; a name maps to exactly one layer
// of the class chain.
type Object struct {
	Base

	binding     *Binding
	info        *classInfo
	values      map[string]any
	children    map[string]*Object
	lists       map[string]*ListOf
	extra       []xml.Attr
	parent      *Object
	elementName string
}

// NewObject creates an instance of className. It fails when ns is not a valid
// combination for the bound package version or when the class cannot be instantiated.
func NewObject(b *Binding, className string, ns *Namespaces) (*Object, error) {
	ci := b.class(className)
	if ci == nil {
		return nil, errors.Wrapf(ErrUnknownClass, "%s", className)
	}
	if ci.abstract {
		return nil, errors.Wrapf(ErrAbstractClass, "%s", className)
	}
	if ns == nil || !ns.Valid() {
		return nil, errors.Wrapf(ErrIncompatibleNamespaces, "%s: invalid level/version", className)
	}
	if ns.Level() != uint(b.Version.Level) || ns.Version() != uint(b.Version.Version) {
		return nil, errors.Wrapf(ErrIncompatibleNamespaces, "%s: level %d version %d, package requires level %d version %d",
			className, ns.Level(), ns.Version(), b.Version.Level, b.Version.Version)
	}
	if pv := ns.PackageVersion(b.URI); pv != 0 && pv != b.Version.PkgVersion {
		return nil, errors.Wrapf(ErrIncompatibleNamespaces, "%s: package version %d, bound version is %d",
			className, pv, b.Version.PkgVersion)
	}
	return newObject(b, ci, ns), nil
}

// New creates an instance of className with the binding's own namespaces.
func (b *Binding) New(className string) (*Object, error) {
	return NewObject(b, className, b.Namespaces())
}

func newObject(b *Binding, ci *classInfo, ns *Namespaces) *Object {
	o := &Object{
		Base:     newBase(ns),
		binding:  b,
		info:     ci,
		values:   map[string]any{},
		children: map[string]*Object{},
		lists:    map[string]*ListOf{},
	}
	for _, layer := range ci.chain() {
		for i := range layer.attrs {
			if layer.attrs[i].Kind() == schema.KindListOf {
				o.lists[layer.attrs[i].Name] = newListOf(o, &layer.attrs[i])
			}
		}
	}
	return o
}

// ClassName is the schema class of the object.
func (o *Object) ClassName() string { return o.info.name }

// ElementName is the XML element the object is written as.
func (o *Object) ElementName() string {
	if o.elementName != "" {
		return o.elementName
	}
	return o.info.elementName
}

// TypeCode is the type code of a package class, "" for host classes.
func (o *Object) TypeCode() string {
	if o.info.class == nil {
		return ""
	}
	return o.info.class.TypeCode
}

// PackageVersion is the version of the package the object belongs to.
func (o *Object) PackageVersion() int { return o.binding.Version.PkgVersion }

// Binding returns the package binding the object was created from.
func (o *Object) Binding() *Binding { return o.binding }

// Parent is the owning object; list items report the owner of their list.
func (o *Object) Parent() *Object { return o.parent }

// IsA reports whether the object's class is className or derives from it.
func (o *Object) IsA(className string) bool {
	ci := o.binding.class(className)
	return ci != nil && o.info.isA(ci)
}

// ID returns the value of an SId attribute named "id", or "".
func (o *Object) ID() string {
	a := o.info.lookup("id")
	if a == nil || a.Kind() != schema.KindSId {
		return ""
	}
	s, _ := o.values["id"].(string)
	return s
}

// ExtraAttributes are the host language attributes kept verbatim on host objects.
func (o *Object) ExtraAttributes() []xml.Attr { return append([]xml.Attr(nil), o.extra...) }

// layer is the view of an object restricted to one class of its chain.
type layer struct {
	o  *Object
	ci *classInfo
}

func (o *Object) top() layer { return layer{o: o, ci: o.info} }

// Super returns the accessor view of the object's base class, so that a call the
// class would answer itself can be sent directly to its parent layer.
func (o *Object) Super() AttributeBag { return o.top().below() }

func (l layer) below() AttributeBag {
	if l.ci.base != nil {
		return layer{o: l.o, ci: l.ci.base}
	}
	return &l.o.Base
}

// Super of a layer is the layer of its base class.
func (l layer) Super() AttributeBag { return l.below() }

func (l layer) attr(name string) *schema.Attribute {
	a := l.ci.own(name)
	if a == nil || a.Kind().IsChild() {
		return nil
	}
	return a
}

func (l layer) GetAttributeBool(name string) (bool, Status) {
	a := l.attr(name)
	if a == nil {
		return l.below().GetAttributeBool(name)
	}
	if a.Kind() != schema.KindBool {
		return false, OperationFailed
	}
	v, _ := l.o.values[name].(bool)
	return v, OperationSuccess
}

func (l layer) GetAttributeInt(name string) (int, Status) {
	a := l.attr(name)
	if a == nil {
		return l.below().GetAttributeInt(name)
	}
	if a.Kind() != schema.KindInt {
		return UnsetInt, OperationFailed
	}
	v, ok := l.o.values[name].(int)
	if !ok {
		return UnsetInt, OperationSuccess
	}
	return v, OperationSuccess
}

func (l layer) GetAttributeUint(name string) (uint, Status) {
	a := l.attr(name)
	if a == nil {
		return l.below().GetAttributeUint(name)
	}
	if a.Kind() != schema.KindUInt {
		return UnsetUint, OperationFailed
	}
	v, ok := l.o.values[name].(uint)
	if !ok {
		return UnsetUint, OperationSuccess
	}
	return v, OperationSuccess
}

func (l layer) GetAttributeDouble(name string) (float64, Status) {
	a := l.attr(name)
	if a == nil {
		return l.below().GetAttributeDouble(name)
	}
	if a.Kind() != schema.KindDouble {
		return UnsetDouble, OperationFailed
	}
	v, ok := l.o.values[name].(float64)
	if !ok {
		return UnsetDouble, OperationSuccess
	}
	return v, OperationSuccess
}

func (l layer) GetAttributeString(name string) (string, Status) {
	a := l.attr(name)
	if a == nil {
		return l.below().GetAttributeString(name)
	}
	if !a.Kind().IsStringValued() {
		return "", OperationFailed
	}
	v, _ := l.o.values[name].(string)
	return v, OperationSuccess
}

func (l layer) SetAttributeBool(name string, value bool) Status {
	a := l.attr(name)
	if a == nil {
		return l.below().SetAttributeBool(name, value)
	}
	if a.Kind() != schema.KindBool {
		return OperationFailed
	}
	l.o.values[name] = value
	return OperationSuccess
}

func (l layer) SetAttributeInt(name string, value int) Status {
	a := l.attr(name)
	if a == nil {
		return l.below().SetAttributeInt(name, value)
	}
	if a.Kind() != schema.KindInt {
		return OperationFailed
	}
	if value < math.MinInt32 || value >= UnsetInt {
		return InvalidAttributeValue
	}
	l.o.values[name] = value
	return OperationSuccess
}

func (l layer) SetAttributeUint(name string, value uint) Status {
	a := l.attr(name)
	if a == nil {
		return l.below().SetAttributeUint(name, value)
	}
	if a.Kind() != schema.KindUInt {
		return OperationFailed
	}
	if value >= UnsetUint {
		return InvalidAttributeValue
	}
	l.o.values[name] = value
	return OperationSuccess
}

func (l layer) SetAttributeDouble(name string, value float64) Status {
	a := l.attr(name)
	if a == nil {
		return l.below().SetAttributeDouble(name, value)
	}
	if a.Kind() != schema.KindDouble {
		return OperationFailed
	}
	l.o.values[name] = value
	return OperationSuccess
}

func (l layer) SetAttributeString(name string, value string) Status {
	a := l.attr(name)
	if a == nil {
		return l.below().SetAttributeString(name, value)
	}
	if !a.Kind().IsStringValued() {
		return OperationFailed
	}
	if value == "" {
		delete(l.o.values, name)
		return OperationSuccess
	}
	if st := l.o.binding.checkString(a, value); st != OperationSuccess {
		return st
	}
	l.o.values[name] = value
	return OperationSuccess
}

func (l layer) IsSetAttribute(name string) bool {
	if l.attr(name) == nil {
		return l.below().IsSetAttribute(name)
	}
	_, ok := l.o.values[name]
	return ok
}

func (l layer) UnsetAttribute(name string) Status {
	if l.attr(name) == nil {
		return l.below().UnsetAttribute(name)
	}
	delete(l.o.values, name)
	return OperationSuccess
}

func (b *Binding) checkString(a *schema.Attribute, value string) Status {
	switch a.Kind() {
	case schema.KindSId, schema.KindSIdRef:
		if !IsValidSId(value) {
			return InvalidAttributeValue
		}
	case schema.KindEnum:
		e := b.Version.Enum(a.Element)
		if e == nil || !e.Has(value) {
			return InvalidAttributeValue
		}
	}
	return OperationSuccess
}

func (o *Object) GetAttributeBool(name string) (bool, Status) {
	return o.top().GetAttributeBool(name)
}
func (o *Object) GetAttributeInt(name string) (int, Status) {
	return o.top().GetAttributeInt(name)
}
func (o *Object) GetAttributeUint(name string) (uint, Status) {
	return o.top().GetAttributeUint(name)
}
func (o *Object) GetAttributeDouble(name string) (float64, Status) {
	return o.top().GetAttributeDouble(name)
}
func (o *Object) GetAttributeString(name string) (string, Status) {
	return o.top().GetAttributeString(name)
}
func (o *Object) SetAttributeBool(name string, v bool) Status {
	return o.top().SetAttributeBool(name, v)
}
func (o *Object) SetAttributeInt(name string, v int) Status {
	return o.top().SetAttributeInt(name, v)
}
func (o *Object) SetAttributeUint(name string, v uint) Status {
	return o.top().SetAttributeUint(name, v)
}
func (o *Object) SetAttributeDouble(name string, v float64) Status {
	return o.top().SetAttributeDouble(name, v)
}
func (o *Object) SetAttributeString(name string, v string) Status {
	return o.top().SetAttributeString(name, v)
}
func (o *Object) IsSetAttribute(name string) bool {
	return o.top().IsSetAttribute(name)
}
func (o *Object) UnsetAttribute(name string) Status {
	return o.top().UnsetAttribute(name)
}

// GetArray returns a copy of a double array attribute. Arrays are not part of the
// generic families.
func (o *Object) GetArray(name string) ([]float64, Status) {
	a := o.info.lookup(name)
	if a == nil {
		return nil, UnexpectedAttribute
	}
	if a.Kind() != schema.KindDoubleArray {
		return nil, OperationFailed
	}
	v, _ := o.values[name].([]float64)
	return append([]float64(nil), v...), OperationSuccess
}

// SetArray stores a copy of value; an empty slice unsets the attribute.
func (o *Object) SetArray(name string, value []float64) Status {
	a := o.info.lookup(name)
	if a == nil {
		return UnexpectedAttribute
	}
	if a.Kind() != schema.KindDoubleArray {
		return OperationFailed
	}
	if len(value) == 0 {
		delete(o.values, name)
		return OperationSuccess
	}
	o.values[name] = append([]float64(nil), value...)
	return OperationSuccess
}

func (o *Object) childAttr(name string, kind schema.Kind) *schema.Attribute {
	a := o.info.lookup(name)
	if a == nil || a.Kind() != kind {
		return nil
	}
	return a
}

// Child returns the singular child stored under name, or nil.
func (o *Object) Child(name string) *Object { return o.children[name] }

// IsSetChild reports whether a singular child is stored under name.
func (o *Object) IsSetChild(name string) bool { return o.children[name] != nil }

// SetChild stores a deep copy of c under name. The previously stored child is
// released and no longer reports o as its parent. A nil c unsets the child.
func (o *Object) SetChild(name string, c *Object) Status {
	a := o.childAttr(name, schema.KindElement)
	if a == nil {
		return OperationFailed
	}
	if c == nil {
		return o.UnsetChild(name)
	}
	if st := o.compatible(c, o.binding.class(a.Element)); st != OperationSuccess {
		return st
	}
	o.attach(a, c.Clone())
	return OperationSuccess
}

// CreateChild creates and stores a new child under name. className selects a
// concrete subclass of the declared element class; "" uses the declared class.
func (o *Object) CreateChild(name, className string) (*Object, Status) {
	a := o.childAttr(name, schema.KindElement)
	if a == nil {
		return nil, OperationFailed
	}
	target := o.binding.class(a.Element)
	ci := target
	if className != "" {
		ci = o.binding.class(className)
	}
	if ci == nil || target == nil || ci.abstract || !ci.isA(target) {
		return nil, InvalidObject
	}
	c := newObject(o.binding, ci, o.ns)
	o.attach(a, c)
	return c, OperationSuccess
}

// UnsetChild releases the child stored under name.
func (o *Object) UnsetChild(name string) Status {
	if o.childAttr(name, schema.KindElement) == nil {
		return OperationFailed
	}
	if old := o.children[name]; old != nil {
		old.parent = nil
	}
	delete(o.children, name)
	return OperationSuccess
}

func (o *Object) attach(a *schema.Attribute, c *Object) {
	if old := o.children[a.Name]; old != nil && old != c {
		old.parent = nil
	}
	c.parent = o
	c.elementName = childElementName(o.binding, a, c)
	o.children[a.Name] = c
}

// childElementName is the attribute's element name, or the concrete class element
// name when the declared class is abstract.
func childElementName(b *Binding, a *schema.Attribute, c *Object) string {
	if target := b.class(a.Element); target != nil && target.abstract {
		return c.info.elementName
	}
	return a.XML()
}

// List returns the list stored under name, or nil if the class has no such list.
func (o *Object) List(name string) *ListOf { return o.lists[name] }

// compatible checks that c can be stored where target is expected.
func (o *Object) compatible(c *Object, target *classInfo) Status {
	if c.binding.Package.Name != o.binding.Package.Name {
		return NamespacesMismatch
	}
	if c.Level() != o.Level() {
		return LevelMismatch
	}
	if c.Version() != o.Version() {
		return VersionMismatch
	}
	if c.binding.Version.PkgVersion != o.binding.Version.PkgVersion {
		return PkgVersionMismatch
	}
	ci := o.binding.class(c.info.name)
	if ci == nil || target == nil || !ci.isA(target) {
		return InvalidObject
	}
	return OperationSuccess
}

// Clone returns a deep copy without a parent.
func (o *Object) Clone() *Object {
	c := &Object{
		Base:        o.Base,
		binding:     o.binding,
		info:        o.info,
		values:      make(map[string]any, len(o.values)),
		children:    make(map[string]*Object, len(o.children)),
		lists:       make(map[string]*ListOf, len(o.lists)),
		extra:       append([]xml.Attr(nil), o.extra...),
		elementName: o.elementName,
	}
	for k, v := range o.values {
		if arr, ok := v.([]float64); ok {
			v = append([]float64(nil), arr...)
		}
		c.values[k] = v
	}
	for k, ch := range o.children {
		cc := ch.Clone()
		cc.parent = c
		c.children[k] = cc
	}
	for k, l := range o.lists {
		c.lists[k] = l.cloneFor(c)
	}
	return c
}

// HasRequiredAttributes reports whether every required attribute along the chain is set.
func (o *Object) HasRequiredAttributes() bool {
	all := true
	for _, layer := range o.info.chain() {
		for _, a := range layer.attrs {
			if !a.Required || a.Kind().IsChild() {
				continue
			}
			if _, ok := o.values[a.Name]; !ok {
				all = false
			}
		}
	}
	return all
}

// HasRequiredElements reports whether every required child is set and every
// required list is non-empty.
func (o *Object) HasRequiredElements() bool {
	all := true
	for _, layer := range o.info.chain() {
		for _, a := range layer.attrs {
			if !a.Required {
				continue
			}
			switch a.Kind() {
			case schema.KindElement:
				if o.children[a.Name] == nil {
					all = false
				}
			case schema.KindListOf:
				if o.lists[a.Name].Len() == 0 {
					all = false
				}
			}
		}
	}
	return all
}

// Walk visits o and every object it owns, depth first in declaration order.
// Returning false from fn skips the children of that object.
func (o *Object) Walk(fn func(*Object) bool) {
	if !fn(o) {
		return
	}
	o.eachChild(func(_ *schema.Attribute, c *Object, l *ListOf) {
		if c != nil {
			c.Walk(fn)
			return
		}
		for _, it := range l.items {
			it.Walk(fn)
		}
	})
}

// eachChild calls fn for every set singular child and every list, root class first.
func (o *Object) eachChild(fn func(a *schema.Attribute, c *Object, l *ListOf)) {
	chain := o.info.chain()
	for i := len(chain) - 1; i >= 0; i-- {
		for j := range chain[i].attrs {
			a := &chain[i].attrs[j]
			switch a.Kind() {
			case schema.KindElement:
				if c := o.children[a.Name]; c != nil {
					fn(a, c, nil)
				}
			case schema.KindListOf:
				fn(a, nil, o.lists[a.Name])
			}
		}
	}
}
