package sbase

import (
	"fmt"

	"github.com/sbmlteam/deviser/schema"
)

// Validate checks the object tree of doc and returns a new log with what it finds:
// missing required attributes and children, identifiers used twice, and references
// that do not resolve to an object of the expected class. The document log is not
// touched.
func Validate(doc *Document) *ErrorLog {
	log := NewErrorLog()
	b := doc.binding
	ids := map[string]*Object{}

	doc.root.Walk(func(o *Object) bool {
		checkRequired(log, b, o)
		if id := o.ID(); id != "" {
			if first, ok := ids[id]; ok {
				log.Log(b.Errors.Def(b.Errors.PackageCode(DuplicateComponentID)),
					fmt.Sprintf("The id '%s' of the <%s> element is already used by a <%s> element.",
						id, o.ElementName(), first.ElementName()), o.line, o.column)
			} else {
				ids[id] = o
			}
		}
		return true
	})

	doc.root.Walk(func(o *Object) bool {
		for _, layer := range o.info.chain() {
			for _, a := range layer.attrs {
				if a.Kind() != schema.KindSIdRef || a.Element == "" {
					continue
				}
				target := b.class(a.Element)
				if target == nil || target.core {
					continue
				}
				ref, ok := o.values[a.Name].(string)
				if !ok {
					continue
				}
				if obj := ids[ref]; obj == nil || !obj.info.isA(target) {
					log.Log(b.Errors.Def(b.code(o.info, RuleReference)),
						fmt.Sprintf("The <%s> element refers to '%s', which is not the id of a <%s>.",
							o.ElementName(), ref, target.elementName), o.line, o.column)
				}
			}
		}
		return true
	})
	return log
}

func checkRequired(log *ErrorLog, b *Binding, o *Object) {
	for _, layer := range o.info.chain() {
		for _, a := range layer.attrs {
			if !a.Required {
				continue
			}
			var missing string
			rule := RuleElements
			switch a.Kind() {
			case schema.KindElement:
				if o.children[a.Name] == nil {
					missing = fmt.Sprintf("The required <%s> element is missing from the <%s> element.", a.XML(), o.ElementName())
				}
			case schema.KindListOf:
				if o.lists[a.Name].Len() == 0 {
					missing = fmt.Sprintf("The <%s> element must contain at least one item.", b.Version.ChildXMLName(&a))
				}
			default:
				if _, ok := o.values[a.Name]; !ok {
					rule = RuleAttributes
					missing = fmt.Sprintf("The required %s attribute '%s' is missing from the <%s> element.",
						b.Package.Name, a.XML(), o.ElementName())
				}
			}
			if missing != "" {
				log.Log(b.Errors.Def(b.code(o.info, rule)), missing, o.line, o.column)
			}
		}
	}
}
