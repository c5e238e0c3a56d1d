package sbase

import (
	"github.com/sbmlteam/deviser/schema"
)

// ListOf is an owned, ordered container of objects of one class (or its subclasses).
type ListOf struct {
	Base

	owner *Object
	attr  *schema.Attribute
	item  *classInfo
	items []*Object
}

func newListOf(owner *Object, a *schema.Attribute) *ListOf {
	return &ListOf{
		Base:  newBase(owner.ns),
		owner: owner,
		attr:  a,
		item:  owner.binding.class(a.Element),
	}
}

func (l *ListOf) cloneFor(owner *Object) *ListOf {
	c := &ListOf{Base: l.Base, owner: owner, attr: l.attr, item: l.item, items: make([]*Object, 0, len(l.items))}
	for _, it := range l.items {
		ic := it.Clone()
		ic.parent = owner
		c.items = append(c.items, ic)
	}
	return c
}

// ElementName is the XML element of the container.
func (l *ListOf) ElementName() string { return l.owner.binding.Version.ChildXMLName(l.attr) }

// ItemClass is the declared class of the items.
func (l *ListOf) ItemClass() string { return l.attr.Element }

// Owner is the object holding the list.
func (l *ListOf) Owner() *Object { return l.owner }

// Len is the number of items. A nil list is empty.
func (l *ListOf) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Get returns the i-th item, or nil when out of range.
func (l *ListOf) Get(i int) *Object {
	if i < 0 || i >= l.Len() {
		return nil
	}
	return l.items[i]
}

// GetByID returns the first item whose id is id.
func (l *ListOf) GetByID(id string) *Object {
	if id == "" {
		return nil
	}
	for _, it := range l.items {
		if it.ID() == id {
			return it
		}
	}
	return nil
}

// Items returns the items in order.
func (l *ListOf) Items() []*Object { return append([]*Object(nil), l.items...) }

// Append stores a deep copy of c at the end of the list.
func (l *ListOf) Append(c *Object) Status {
	if c == nil {
		return OperationFailed
	}
	if !c.HasRequiredAttributes() {
		return InvalidObject
	}
	if st := l.owner.compatible(c, l.item); st != OperationSuccess {
		return st
	}
	if id := c.ID(); id != "" && l.GetByID(id) != nil {
		return DuplicateObjectID
	}
	l.append(c.Clone())
	return OperationSuccess
}

func (l *ListOf) append(c *Object) {
	c.parent = l.owner
	c.elementName = ""
	l.items = append(l.items, c)
}

// Create appends a new, empty item. className selects a concrete subclass of the
// item class; "" uses the item class itself.
func (l *ListOf) Create(className string) (*Object, Status) {
	ci := l.item
	if className != "" {
		ci = l.owner.binding.class(className)
	}
	if ci == nil || l.item == nil || ci.abstract || !ci.isA(l.item) {
		return nil, InvalidObject
	}
	c := newObject(l.owner.binding, ci, l.owner.ns)
	l.append(c)
	return c, OperationSuccess
}

// Remove takes the i-th item out of the list and returns it, detached.
func (l *ListOf) Remove(i int) (*Object, Status) {
	if i < 0 || i >= l.Len() {
		return nil, IndexExceedsSize
	}
	it := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	it.parent = nil
	return it, OperationSuccess
}

// RemoveByID takes the item with the given id out of the list, or returns nil.
func (l *ListOf) RemoveByID(id string) *Object {
	for i, it := range l.items {
		if id != "" && it.ID() == id {
			removed, _ := l.Remove(i)
			return removed
		}
	}
	return nil
}
