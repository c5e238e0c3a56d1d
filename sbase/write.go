package sbase

import (
	"bytes"
	"encoding/xml"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sbmlteam/deviser/schema"
)

type writer struct {
	enc    *xml.Encoder
	b      *Binding
	prefix string
}

// WriteDocument serializes doc. Package elements and package attributes use the
// prefix the document declares for the package URI.
func WriteDocument(w io.Writer, doc *Document) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(err, "write header")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	wr := &writer{enc: enc, b: doc.binding, prefix: doc.binding.Prefix()}
	if p, ok := doc.ns.XMLNamespaces().Prefix(doc.binding.URI); ok {
		wr.prefix = p
	}
	if err := wr.writeRoot(doc); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return errors.Wrap(err, "flush document")
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteDocumentString is WriteDocument into a string.
func WriteDocumentString(doc *Document) (string, error) {
	var buf bytes.Buffer
	if err := WriteDocument(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (wr *writer) qualify(local string) string {
	if wr.prefix == "" {
		return local
	}
	return wr.prefix + ":" + local
}

func (wr *writer) writeRoot(doc *Document) error {
	root := doc.root
	start := xml.StartElement{Name: xml.Name{Local: root.ElementName()}}
	for _, d := range doc.ns.XMLNamespaces().Entries() {
		name := "xmlns"
		if d.Prefix != "" {
			name += ":" + d.Prefix
		}
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: name}, Value: d.URI})
	}
	if doc.ns.Valid() {
		start.Attr = append(start.Attr,
			xml.Attr{Name: xml.Name{Local: "level"}, Value: strconv.FormatUint(uint64(doc.Level()), 10)},
			xml.Attr{Name: xml.Name{Local: "version"}, Value: strconv.FormatUint(uint64(doc.Version()), 10)},
		)
	}
	if doc.ns.XMLNamespaces().HasURI(wr.b.URI) {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: wr.qualify("required")},
			Value: strconv.FormatBool(wr.b.Package.Required),
		})
	}
	start.Attr = append(start.Attr, wr.attributes(root)...)
	return wr.writeBody(root, start)
}

func (wr *writer) writeObject(o *Object) error {
	name := o.ElementName()
	if !o.info.core {
		name = wr.qualify(name)
	}
	start := xml.StartElement{Name: xml.Name{Local: name}, Attr: wr.attributes(o)}
	return wr.writeBody(o, start)
}

func (wr *writer) writeBody(o *Object, start xml.StartElement) error {
	if err := wr.enc.EncodeToken(start); err != nil {
		return errors.Wrapf(err, "write <%s>", start.Name.Local)
	}
	var err error
	o.eachChild(func(a *schema.Attribute, c *Object, l *ListOf) {
		if err != nil {
			return
		}
		if c != nil {
			err = wr.writeObject(c)
			return
		}
		if l.Len() > 0 {
			err = wr.writeList(l)
		}
	})
	if err != nil {
		return err
	}
	return errors.Wrapf(wr.enc.EncodeToken(start.End()), "write </%s>", start.Name.Local)
}

func (wr *writer) writeList(l *ListOf) error {
	start := xml.StartElement{Name: xml.Name{Local: wr.qualify(l.ElementName())}, Attr: baseAttributes(&l.Base)}
	if err := wr.enc.EncodeToken(start); err != nil {
		return errors.Wrapf(err, "write <%s>", start.Name.Local)
	}
	for _, it := range l.items {
		if err := wr.writeObject(it); err != nil {
			return err
		}
	}
	return errors.Wrapf(wr.enc.EncodeToken(start.End()), "write </%s>", start.Name.Local)
}

func baseAttributes(b *Base) []xml.Attr {
	var out []xml.Attr
	if b.IsSetMetaID() {
		out = append(out, xml.Attr{Name: xml.Name{Local: "metaid"}, Value: b.MetaID()})
	}
	if b.IsSetSBOTerm() {
		out = append(out, xml.Attr{Name: xml.Name{Local: "sboTerm"}, Value: b.SBOTermID()})
	}
	return out
}

// attributes renders the set attributes of o, core ones first and then each
// class layer from the root class down.
func (wr *writer) attributes(o *Object) []xml.Attr {
	out := baseAttributes(&o.Base)
	out = append(out, o.extra...)
	chain := o.info.chain()
	for i := len(chain) - 1; i >= 0; i-- {
		for _, a := range chain[i].attrs {
			if a.Kind().IsChild() {
				continue
			}
			v, ok := o.values[a.Name]
			if !ok {
				continue
			}
			out = append(out, xml.Attr{Name: xml.Name{Local: wr.qualify(a.XML())}, Value: formatValue(v)})
		}
	}
	return out
}

func formatValue(v any) string {
	switch t := v.(type) {
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case float64:
		return formatDouble(t)
	case []float64:
		parts := make([]string, len(t))
		for i, f := range t {
			parts[i] = formatDouble(f)
		}
		return strings.Join(parts, " ")
	case string:
		return t
	}
	return ""
}

func formatDouble(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
