package sbase

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sbmlteam/deviser/schema"
)

// errReadStop ends a read after a fatal problem has been logged.
var errReadStop = errors.New("read stopped")

type reader struct {
	dec     *xml.Decoder
	b       *Binding
	doc     *Document
	coreURI string
}

type readCallback func(start xml.StartElement, line, column int) error

// ReadDocument parses a document. Problems with its content, including malformed
// XML, are logged on the returned document and parsing continues where it can.
// The error is non-nil only when reading r fails.
func ReadDocument(r io.Reader, b *Binding) (*Document, error) {
	rd := &reader{dec: xml.NewDecoder(r), b: b, doc: NewDocument(b)}
	err := rd.readDocument()
	if err == errReadStop {
		err = nil
	}
	return rd.doc, err
}

// ReadDocumentString is ReadDocument over an in-memory document.
func ReadDocumentString(s string, b *Binding) (*Document, error) {
	return ReadDocument(strings.NewReader(s), b)
}

func (rd *reader) next() (xml.Token, error) {
	tok, err := rd.dec.Token()
	if err == nil {
		return tok, nil
	}
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		rd.logCode(CodeNotWellFormed, se.Msg, se.Line, 0)
		return nil, errReadStop
	}
	if err == io.EOF {
		line, col := rd.dec.InputPos()
		rd.logCode(CodeNotWellFormed, "unexpected end of document", line, col)
		return nil, errReadStop
	}
	return nil, errors.Wrap(err, "read document")
}

// readEndTo feeds every child start element to f until the element closes.
func (rd *reader) readEndTo(f readCallback) error {
	for {
		tok, err := rd.next()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			line, col := rd.dec.InputPos()
			if err := f(t.Copy(), line, col); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (rd *reader) skip() error {
	if err := rd.dec.Skip(); err != nil {
		var se *xml.SyntaxError
		if errors.As(err, &se) {
			rd.logCode(CodeNotWellFormed, se.Msg, se.Line, 0)
			return errReadStop
		}
		if err == io.EOF {
			return errReadStop
		}
		return errors.Wrap(err, "skip element")
	}
	return nil
}

func (rd *reader) logCode(code int, detail string, line, col int) {
	rd.doc.log.Log(rd.b.Errors.Def(code), detail, line, col)
}

func (rd *reader) logPkg(rel int, detail string, line, col int) {
	rd.logCode(rd.b.Errors.PackageCode(rel), detail, line, col)
}

func (rd *reader) logClass(ci *classInfo, r Rule, detail string, line, col int) {
	rd.logCode(rd.b.code(ci, r), detail, line, col)
}

func (rd *reader) readDocument() error {
	for {
		tok, err := rd.next()
		if err != nil {
			return err
		}
		if start, ok := tok.(xml.StartElement); ok {
			line, col := rd.dec.InputPos()
			return rd.readRoot(start, line, col)
		}
	}
}

func (rd *reader) readRoot(start xml.StartElement, line, col int) error {
	lang := &rd.b.Package.Language
	if start.Name.Local != lang.DocumentElement {
		rd.logCode(CodeInvalidRootElement, fmt.Sprintf("Found <%s>, expected <%s>.", start.Name.Local, lang.DocumentElement), line, col)
		return errReadStop
	}

	var level, version uint64
	var decls []XMLNamespace
	var required *xml.Attr
	rest := make([]xml.Attr, 0, len(start.Attr))
	for _, a := range start.Attr {
		switch {
		case a.Name.Space == "xmlns":
			decls = append(decls, XMLNamespace{Prefix: a.Name.Local, URI: a.Value})
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			decls = append(decls, XMLNamespace{URI: a.Value})
		case a.Name.Space == "" && a.Name.Local == "level":
			level, _ = strconv.ParseUint(strings.TrimSpace(a.Value), 10, 32)
		case a.Name.Space == "" && a.Name.Local == "version":
			version, _ = strconv.ParseUint(strings.TrimSpace(a.Value), 10, 32)
		case a.Name.Space == rd.b.URI && a.Name.Local == "required":
			required = &a
		default:
			rest = append(rest, a)
		}
	}

	ns := NewNamespaces(lang, uint(level), uint(version))
	for _, d := range decls {
		if d.URI == rd.b.URI {
			ns.AddPackage(d.Prefix, d.URI, rd.b.Version.PkgVersion)
			continue
		}
		ns.Declare(d.Prefix, d.URI)
	}
	rd.coreURI = start.Name.Space
	if rd.coreURI == "" {
		rd.coreURI = ns.URI()
	}
	if !ns.IsValidCombination() {
		rd.logCode(CodeInvalidLevelVersion, fmt.Sprintf("Level %d version %d with namespace '%s'.", level, version, rd.coreURI), line, col)
	}

	declared := ns.XMLNamespaces().HasURI(rd.b.URI)
	if !declared {
		for _, d := range decls {
			if v, ok := rd.b.Package.VersionForURI(d.URI); ok {
				rd.logPkg(NSUndeclared, fmt.Sprintf("The document declares version %d of the package; version %d is required.", v.PkgVersion, rd.b.Version.PkgVersion), line, col)
			}
		}
	}
	if declared {
		switch {
		case required == nil:
			rd.logPkg(AttributeRequiredMissing, "", line, col)
		default:
			v, ok := parseXMLBool(required.Value)
			if !ok {
				rd.logPkg(AttributeRequiredMustBeBoolean, fmt.Sprintf("Found '%s'.", required.Value), line, col)
			} else if v != rd.b.Package.Required {
				rd.logPkg(AttributeRequiredMustHaveValue, fmt.Sprintf("Found '%s'.", required.Value), line, col)
			}
		}
	}

	root := newObject(rd.b, rd.b.document, ns)
	root.line, root.column = line, col
	rd.doc.ns = ns
	rd.doc.root = root

	start.Attr = rest
	rd.readAttributes(root, start, line, col)
	return rd.readChildren(root)
}

// readAttributes classifies every attribute of start, stores the valid ones and
// logs unknown, malformed and missing required attributes.
func (rd *reader) readAttributes(o *Object, start xml.StartElement, line, col int) {
	present := map[string]bool{}
	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		switch {
		case o.info.core && a.Name.Space == rd.b.URI:
			attr := lookupXML(o.info, a.Name.Local)
			if attr == nil {
				rd.logClass(o.info, RuleAttributes, fmt.Sprintf("%s attribute '%s' is not permitted on the <%s> element.",
					rd.b.Package.Prefix, a.Name.Local, start.Name.Local), line, col)
				continue
			}
			present[attr.Name] = true
			rd.assign(o, attr, a.Value, start.Name.Local, line, col)
		case o.info.core && a.Name.Space == "":
			if isCoreAttribute(a.Name.Local) {
				rd.assignCore(&o.Base, o.info, a, start.Name.Local, line, col)
				continue
			}
			o.extra = append(o.extra, a)
		case o.info.core:
			// attributes of other namespaces on host elements are not ours
		case a.Name.Space == "" && isCoreAttribute(a.Name.Local):
			rd.assignCore(&o.Base, o.info, a, start.Name.Local, line, col)
		case a.Name.Space == "" || a.Name.Space == rd.b.URI:
			attr := lookupXML(o.info, a.Name.Local)
			if attr == nil {
				rd.logClass(o.info, RuleAttributes, fmt.Sprintf("%s attribute '%s' is not permitted on the <%s> element.",
					rd.b.Package.Prefix, a.Name.Local, start.Name.Local), line, col)
				continue
			}
			present[attr.Name] = true
			rd.assign(o, attr, a.Value, start.Name.Local, line, col)
		case a.Name.Space == rd.coreURI:
			rd.logClass(o.info, RuleCoreAttributes, fmt.Sprintf("Core attribute '%s' is not permitted on the <%s> element.",
				a.Name.Local, start.Name.Local), line, col)
		}
	}

	for _, layer := range o.info.chain() {
		for _, attr := range layer.attrs {
			if !attr.Required || attr.Kind().IsChild() || present[attr.Name] {
				continue
			}
			rd.logClass(o.info, RuleAttributes, fmt.Sprintf("The required %s attribute '%s' is missing from the <%s> element.",
				rd.b.Package.Name, attr.XML(), start.Name.Local), line, col)
		}
	}
}

func lookupXML(ci *classInfo, local string) *schema.Attribute {
	for cur := ci; cur != nil; cur = cur.base {
		for i := range cur.attrs {
			a := &cur.attrs[i]
			if !a.Kind().IsChild() && a.XML() == local {
				return a
			}
		}
	}
	return nil
}

func (rd *reader) assignCore(base *Base, ci *classInfo, a xml.Attr, elem string, line, col int) {
	switch a.Name.Local {
	case "metaid":
		if base.SetMetaID(a.Value) != OperationSuccess {
			rd.logClass(ci, RuleCoreAttributes, fmt.Sprintf("The metaid '%s' on the <%s> element is not a valid XML ID.", a.Value, elem), line, col)
		}
	case "sboTerm":
		n, ok := ParseSBOTerm(a.Value)
		if !ok || base.SetSBOTerm(n) != OperationSuccess {
			rd.logClass(ci, RuleCoreAttributes, fmt.Sprintf("The sboTerm '%s' on the <%s> element is not a valid SBO reference.", a.Value, elem), line, col)
		}
	}
}

// assign parses raw according to the attribute kind. Values that fail to parse are
// logged and not stored.
func (rd *reader) assign(o *Object, attr *schema.Attribute, raw, elem string, line, col int) {
	bad := func(what string) {
		rd.logClass(o.info, RuleAttributeValue, fmt.Sprintf("%s attribute '%s' from the <%s> element must be %s.",
			rd.b.Package.Prefix, attr.XML(), elem, what), line, col)
	}
	s := strings.TrimSpace(raw)
	switch attr.Kind() {
	case schema.KindBool:
		v, ok := parseXMLBool(s)
		if !ok {
			bad("a boolean")
			return
		}
		o.values[attr.Name] = v
	case schema.KindInt:
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil || v == UnsetInt {
			bad("an integer")
			return
		}
		o.values[attr.Name] = int(v)
	case schema.KindUInt:
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil || v >= UnsetUint {
			bad("a non-negative integer")
			return
		}
		o.values[attr.Name] = uint(v)
	case schema.KindDouble:
		v, ok := parseXMLDouble(s)
		if !ok {
			bad("a double")
			return
		}
		o.values[attr.Name] = v
	case schema.KindDoubleArray:
		fields := strings.Fields(s)
		arr := make([]float64, 0, len(fields))
		for _, f := range fields {
			v, ok := parseXMLDouble(f)
			if !ok {
				bad("a whitespace separated list of doubles")
				return
			}
			arr = append(arr, v)
		}
		if len(arr) > 0 {
			o.values[attr.Name] = arr
		}
	case schema.KindSId:
		if !IsValidSId(s) {
			rd.logPkg(IDSyntaxRule, fmt.Sprintf("The %s attribute '%s' on the <%s> element has value '%s'.",
				rd.b.Package.Name, attr.XML(), elem, raw), line, col)
			return
		}
		o.values[attr.Name] = s
	case schema.KindSIdRef:
		if !IsValidSId(s) {
			bad("of type SIdRef")
			return
		}
		o.values[attr.Name] = s
	case schema.KindEnum:
		if e := rd.b.Version.Enum(attr.Element); e == nil || !e.Has(s) {
			bad("a valid " + attr.Element + " value")
			return
		}
		o.values[attr.Name] = s
	case schema.KindString:
		if raw != "" {
			o.values[attr.Name] = raw
		}
	}
}

func parseXMLBool(s string) (bool, bool) {
	switch strings.TrimSpace(s) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	}
	return false, false
}

func parseXMLDouble(s string) (float64, bool) {
	switch s {
	case "INF", "+INF":
		return math.Inf(1), true
	case "-INF":
		return math.Inf(-1), true
	case "NaN":
		return math.NaN(), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// readChildren dispatches every child element of o until o closes, then checks
// that required children were seen.
func (rd *reader) readChildren(o *Object) error {
	seen := map[string]bool{}
	err := rd.readEndTo(func(start xml.StartElement, line, col int) error {
		return rd.createObject(o, start, seen, line, col)
	})
	if err != nil {
		return err
	}
	for _, layer := range o.info.chain() {
		for _, a := range layer.attrs {
			if !a.Required {
				continue
			}
			switch {
			case a.Kind() == schema.KindElement && o.children[a.Name] == nil:
				rd.logClass(o.info, RuleElements, fmt.Sprintf("The required <%s> element is missing from the <%s> element.",
					a.XML(), o.ElementName()), o.line, o.column)
			case a.Kind() == schema.KindListOf && !seen[a.Name]:
				rd.logClass(o.info, RuleElements, fmt.Sprintf("The required <%s> element is missing from the <%s> element.",
					rd.b.Version.ChildXMLName(&a), o.ElementName()), o.line, o.column)
			}
		}
	}
	return nil
}

// createObject handles one child element of o.
func (rd *reader) createObject(o *Object, start xml.StartElement, seen map[string]bool, line, col int) error {
	name := start.Name
	if name.Space == rd.coreURI && (name.Local == "notes" || name.Local == "annotation") {
		return rd.skip()
	}

	a, ci := rd.matchChild(o, name)
	if a != nil {
		if seen[a.Name] {
			rd.logClass(o.info, RuleElements, fmt.Sprintf("The <%s> element may only contain one <%s> element.",
				o.ElementName(), name.Local), line, col)
		}
		seen[a.Name] = true
		if a.Kind() == schema.KindListOf {
			return rd.readList(o.lists[a.Name], start, line, col)
		}
		child := newObject(rd.b, ci, o.ns)
		child.line, child.column = line, col
		o.attach(a, child)
		rd.readAttributes(child, start, line, col)
		return rd.readChildren(child)
	}

	switch {
	case name.Space == rd.b.URI:
		rd.logClass(o.info, RuleElements, fmt.Sprintf("The <%s> element is not permitted inside the <%s> element.",
			name.Local, o.ElementName()), line, col)
	case name.Space == rd.coreURI:
		if !o.info.core {
			rd.logClass(o.info, RuleCoreElements, fmt.Sprintf("Core element <%s> is not permitted inside the <%s> element.",
				name.Local, o.ElementName()), line, col)
		}
	case rd.isPackageElement(name.Local):
		rd.logPkg(ElementNotInNS, fmt.Sprintf("The <%s> element uses namespace '%s'.", name.Local, name.Space), line, col)
	}
	return rd.skip()
}

// matchChild finds the child attribute of o written as name, and the class to instantiate.
func (rd *reader) matchChild(o *Object, name xml.Name) (*schema.Attribute, *classInfo) {
	for _, layer := range o.info.chain() {
		for i := range layer.attrs {
			a := &layer.attrs[i]
			if !a.Kind().IsChild() {
				continue
			}
			target := rd.b.class(a.Element)
			if target == nil {
				continue
			}
			space := rd.b.URI
			if target.core {
				space = rd.coreURI
			}
			if name.Space != space {
				continue
			}
			switch {
			case a.Kind() == schema.KindListOf:
				if rd.b.Version.ChildXMLName(a) == name.Local {
					return a, target
				}
			case target.abstract:
				if c := rd.b.byElement(target, name.Local); c != nil {
					return a, c
				}
			case a.XML() == name.Local:
				return a, target
			}
		}
	}
	return nil, nil
}

func (rd *reader) isPackageElement(local string) bool {
	for _, ci := range rd.b.order {
		if ci.elementName == local {
			return true
		}
	}
	return false
}

func (rd *reader) readList(l *ListOf, start xml.StartElement, line, col int) error {
	owner := l.owner
	l.line, l.column = line, col
	for _, a := range start.Attr {
		switch {
		case a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns"):
		case a.Name.Space == "" && isCoreAttribute(a.Name.Local):
			rd.assignCore(&l.Base, owner.info, a, start.Name.Local, line, col)
		default:
			rd.logClass(owner.info, RuleAttributes, fmt.Sprintf("Attribute '%s' is not permitted on the <%s> element.",
				a.Name.Local, start.Name.Local), line, col)
		}
	}

	err := rd.readEndTo(func(child xml.StartElement, cline, ccol int) error {
		name := child.Name
		if name.Space == rd.b.URI && l.item != nil {
			if ci := rd.b.byElement(l.item, name.Local); ci != nil {
				item := newObject(rd.b, ci, owner.ns)
				item.line, item.column = cline, ccol
				l.append(item)
				rd.readAttributes(item, child, cline, ccol)
				return rd.readChildren(item)
			}
		}
		if name.Space == rd.coreURI && (name.Local == "notes" || name.Local == "annotation") {
			return rd.skip()
		}
		rd.logClass(owner.info, RuleElements, fmt.Sprintf("The <%s> element is not permitted inside the <%s> element.",
			name.Local, start.Name.Local), cline, ccol)
		return rd.skip()
	})
	if err != nil {
		return err
	}
	if l.Len() == 0 && l.attr.Required {
		rd.logClass(owner.info, RuleElements, fmt.Sprintf("The <%s> element must not be empty.", start.Name.Local), line, col)
	}
	return nil
}
