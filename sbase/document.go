package sbase

// Document is the root of an object tree together with the namespaces it was
// declared with and the log of problems found while reading or building it.
type Document struct {
	binding *Binding
	ns      *Namespaces
	root    *Object
	log     *ErrorLog
}

// NewDocument creates an empty document for the bound package version.
func NewDocument(b *Binding) *Document {
	ns := b.Namespaces()
	return &Document{
		binding: b,
		ns:      ns,
		root:    newObject(b, b.document, ns),
		log:     NewErrorLog(),
	}
}

// Root is the object of the document element.
func (d *Document) Root() *Object { return d.root }

// Namespaces are the declarations of the document element.
func (d *Document) Namespaces() *Namespaces { return d.ns }

// Log holds the problems found while reading the document.
func (d *Document) Log() *ErrorLog { return d.log }

// Binding is the package version the document is interpreted with.
func (d *Document) Binding() *Binding { return d.binding }

func (d *Document) Level() uint   { return d.ns.Level() }
func (d *Document) Version() uint { return d.ns.Version() }

// Host returns the object of a host class that plugins extend, such as the model,
// creating it when absent. The document class itself maps to Root. Unknown or
// package classes yield nil.
func (d *Document) Host(className string) *Object {
	if className == d.binding.document.name {
		return d.root
	}
	ci := d.binding.class(className)
	if ci == nil || !ci.core {
		return nil
	}
	if c := d.root.Child(ci.elementName); c != nil {
		return c
	}
	c, st := d.root.CreateChild(ci.elementName, "")
	if st != OperationSuccess {
		return nil
	}
	return c
}
