package schema

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Raw shapes of the deviser XML description. They mirror the file layout and are
// converted to the model once decoded.

type rawXMLPackage struct {
	XMLName  xml.Name        `xml:"package"`
	Name     string          `xml:"name,attr"`
	FullName string          `xml:"fullname,attr"`
	Number   int             `xml:"number,attr"`
	Offset   int             `xml:"offset,attr"`
	Required string          `xml:"required,attr"`
	Language *rawXMLLanguage `xml:"language"`
	Versions []rawXMLVersion `xml:"versions>pkgVersion"`
}

type rawXMLLanguage struct {
	Name          string              `xml:"name,attr"`
	BaseClass     string              `xml:"baseClass,attr"`
	DocumentClass string              `xml:"documentClass,attr"`
	TopElement    string              `xml:"topLevelElementName,attr"`
	Versions      []rawXMLLibraryVers `xml:"library_versions>library_version"`
}

type rawXMLLibraryVers struct {
	Level     int    `xml:"level,attr"`
	Version   int    `xml:"version,attr"`
	Namespace string `xml:"namespace,attr"`
}

type rawXMLVersion struct {
	Level      int             `xml:"level,attr"`
	Version    int             `xml:"version,attr"`
	PkgVersion int             `xml:"pkg_version,attr"`
	Elements   []rawXMLElement `xml:"elements>element"`
	Plugins    []rawXMLPlugin  `xml:"plugins>plugin"`
	Enums      []rawXMLEnum    `xml:"enums>enum"`
}

type rawXMLElement struct {
	Name            string          `xml:"name,attr"`
	TypeCode        string          `xml:"typeCode,attr"`
	BaseClass       string          `xml:"baseClass,attr"`
	Abstract        string          `xml:"abstract,attr"`
	ElementName     string          `xml:"elementName,attr"`
	HasListOf       string          `xml:"hasListOf,attr"`
	ListOfName      string          `xml:"listOfName,attr"`
	ListOfClassName string          `xml:"listOfClassName,attr"`
	Section         string          `xml:"section,attr"`
	Attributes      []rawXMLAttrDef `xml:"attributes>attribute"`
}

type rawXMLAttrDef struct {
	Name     string `xml:"name,attr"`
	Type     string `xml:"type,attr"`
	Required string `xml:"required,attr"`
	Element  string `xml:"element,attr"`
	Abstract string `xml:"abstract,attr"`
	XMLAttr  string `xml:"xmlName,attr"`
	Default  string `xml:"default,attr"`
}

type rawXMLPlugin struct {
	ExtensionPoint string          `xml:"extensionPoint,attr"`
	References     []rawXMLRef     `xml:"references>reference"`
	Attributes     []rawXMLAttrDef `xml:"attributes>attribute"`
}

type rawXMLRef struct {
	Name string `xml:"name,attr"`
}

type rawXMLEnum struct {
	Name   string `xml:"name,attr"`
	Values []struct {
		Name  string `xml:"name,attr"`
		Value string `xml:"value,attr"`
	} `xml:"enumValues>enumValue"`
}

func xmlBool(s string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(s))
	return b
}

func decodeXML(data []byte, pkg *Package) error {
	var raw rawXMLPackage
	if err := xml.Unmarshal(data, &raw); err != nil {
		return err
	}
	pkg.Name = raw.Name
	pkg.FullName = raw.FullName
	pkg.Number = raw.Number
	pkg.Offset = raw.Offset
	pkg.Required = xmlBool(raw.Required)

	if raw.Language != nil {
		l := &pkg.Language
		l.Name = raw.Language.Name
		l.BaseClass = raw.Language.BaseClass
		l.DocumentClass = raw.Language.DocumentClass
		l.DocumentElement = raw.Language.TopElement
		for _, lv := range raw.Language.Versions {
			l.Namespaces = append(l.Namespaces, NamespaceEntry{Level: lv.Level, Version: lv.Version, URI: lv.Namespace})
		}
	}

	for _, rv := range raw.Versions {
		v := Version{Level: rv.Level, Version: rv.Version, PkgVersion: rv.PkgVersion}
		listed := map[string]bool{}
		for _, re := range rv.Elements {
			c := Class{
				Name:        re.Name,
				TypeCode:    re.TypeCode,
				BaseClass:   re.BaseClass,
				Abstract:    xmlBool(re.Abstract),
				ElementName: re.ElementName,
				Section:     re.Section,
				ListOf:      ListOfSpec{Name: re.ListOfClassName, ElementName: re.ListOfName},
				Attributes:  convertXMLAttributes(re.Attributes),
			}
			listed[re.Name] = xmlBool(re.HasListOf)
			v.Classes = append(v.Classes, c)
		}
		for _, rp := range rv.Plugins {
			pl := Plugin{Extends: rp.ExtensionPoint, Attributes: convertXMLAttributes(rp.Attributes)}
			for _, ref := range rp.References {
				typ := KindElement.String()
				if listed[ref.Name] {
					typ = KindListOf.String()
				}
				pl.Attributes = append(pl.Attributes, Attribute{Name: LowerFirst(ref.Name), Type: typ, Element: ref.Name})
			}
			v.Plugins = append(v.Plugins, pl)
		}
		for _, ren := range rv.Enums {
			e := Enum{Name: ren.Name}
			for _, ev := range ren.Values {
				e.Values = append(e.Values, EnumValue{Name: ev.Name, Value: ev.Value})
			}
			v.Enums = append(v.Enums, e)
		}
		pkg.Versions = append(pkg.Versions, v)
	}
	return nil
}

func convertXMLAttributes(raw []rawXMLAttrDef) []Attribute {
	out := make([]Attribute, 0, len(raw))
	for _, ra := range raw {
		out = append(out, Attribute{
			Name:     ra.Name,
			Type:     ra.Type,
			Required: xmlBool(ra.Required),
			Element:  ra.Element,
			Abstract: xmlBool(ra.Abstract),
			XMLName:  ra.XMLAttr,
			Default:  ra.Default,
		})
	}
	return out
}
