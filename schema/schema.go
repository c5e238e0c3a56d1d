// Package schema describes an extension package: its classes, their attributes and
// child elements, enumerations and plugins, together with the host language the
// package extends. It is the single input of both the code generators and the
// sbase runtime.
package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultURIPattern builds package namespace URIs when a schema does not set one.
const DefaultURIPattern = "http://www.sbml.org/sbml/level<LEVEL>/version<VERSION>/<PKG>/version<PKGVERSION>"

// Package is a complete package description.
type Package struct {
	Name       string    `yaml:"name" json:"name" toml:"name"`
	FullName   string    `yaml:"fullName" json:"fullName" toml:"fullName"`
	Prefix     string    `yaml:"prefix" json:"prefix" toml:"prefix"`
	Number     int       `yaml:"number" json:"number" toml:"number"`
	Offset     int       `yaml:"offset" json:"offset" toml:"offset"`
	Required   bool      `yaml:"required" json:"required" toml:"required"`
	URIPattern string    `yaml:"uriPattern" json:"uriPattern" toml:"uriPattern"`
	SkipCAPI   bool      `yaml:"skipCApi" json:"skipCApi" toml:"skipCApi"`
	License    []string  `yaml:"license" json:"license" toml:"license"`
	Language   Language  `yaml:"language" json:"language" toml:"language"`
	Versions   []Version `yaml:"versions" json:"versions" toml:"versions"`
}

// Language is the host language whose documents carry the package.
type Language struct {
	Name            string           `yaml:"name" json:"name" toml:"name"`
	BaseClass       string           `yaml:"baseClass" json:"baseClass" toml:"baseClass"`
	DocumentClass   string           `yaml:"documentClass" json:"documentClass" toml:"documentClass"`
	DocumentElement string           `yaml:"documentElement" json:"documentElement" toml:"documentElement"`
	Namespaces      []NamespaceEntry `yaml:"namespaces" json:"namespaces" toml:"namespaces"`
}

// NamespaceEntry is one row of the canonical (level, version) -> URI table.
type NamespaceEntry struct {
	Level   int    `yaml:"level" json:"level" toml:"level"`
	Version int    `yaml:"version" json:"version" toml:"version"`
	URI     string `yaml:"uri" json:"uri" toml:"uri"`
}

// Version is the content of one package version.
type Version struct {
	Level      int      `yaml:"level" json:"level" toml:"level"`
	Version    int      `yaml:"version" json:"version" toml:"version"`
	PkgVersion int      `yaml:"pkgVersion" json:"pkgVersion" toml:"pkgVersion"`
	Classes    []Class  `yaml:"classes" json:"classes" toml:"classes"`
	Enums      []Enum   `yaml:"enums" json:"enums" toml:"enums"`
	Plugins    []Plugin `yaml:"plugins" json:"plugins" toml:"plugins"`

	byName map[string]*Class
}

// Class is one element type of the package.
type Class struct {
	Name        string      `yaml:"name" json:"name" toml:"name"`
	BaseClass   string      `yaml:"baseClass" json:"baseClass" toml:"baseClass"`
	ElementName string      `yaml:"elementName" json:"elementName" toml:"elementName"`
	TypeCode    string      `yaml:"typeCode" json:"typeCode" toml:"typeCode"`
	Abstract    bool        `yaml:"abstract" json:"abstract" toml:"abstract"`
	Section     string      `yaml:"section" json:"section" toml:"section"`
	Doc         string      `yaml:"doc" json:"doc" toml:"doc"`
	Attributes  []Attribute `yaml:"attributes" json:"attributes" toml:"attributes"`
	ListOf      ListOfSpec  `yaml:"listOf" json:"listOf" toml:"listOf"`
}

// ListOfSpec overrides the derived names of the container class holding instances of a class.
type ListOfSpec struct {
	Name        string `yaml:"name" json:"name" toml:"name"`
	ElementName string `yaml:"elementName" json:"elementName" toml:"elementName"`
}

// Attribute is either an XML attribute or an owned child (element / lo_element).
type Attribute struct {
	Name     string `yaml:"name" json:"name" toml:"name"`
	Type     string `yaml:"type" json:"type" toml:"type"`
	Required bool   `yaml:"required" json:"required" toml:"required"`
	Default  string `yaml:"default" json:"default" toml:"default"`
	Element  string `yaml:"element" json:"element" toml:"element"`
	XMLName  string `yaml:"xmlName" json:"xmlName" toml:"xmlName"`
	Abstract bool   `yaml:"abstract" json:"abstract" toml:"abstract"`

	kind Kind
}

// Enum is a closed set of string values.
type Enum struct {
	Name   string      `yaml:"name" json:"name" toml:"name"`
	Values []EnumValue `yaml:"values" json:"values" toml:"values"`
}

// EnumValue pairs the C identifier of an enumeration member with its XML spelling.
type EnumValue struct {
	Name  string `yaml:"name" json:"name" toml:"name"`
	Value string `yaml:"value" json:"value" toml:"value"`
}

// Plugin adds attributes or children to an existing class, either a package class or
// a class of the host language.
type Plugin struct {
	Extends    string      `yaml:"extends" json:"extends" toml:"extends"`
	Attributes []Attribute `yaml:"attributes" json:"attributes" toml:"attributes"`
}

// NewAttribute returns an already normalized attribute.
func NewAttribute(name string, kind Kind, element string, required bool) Attribute {
	return Attribute{Name: name, Type: kind.String(), Element: element, Required: required, kind: kind}
}

// Kind returns the normalized type. It is KindInvalid until the package is normalized.
func (a *Attribute) Kind() Kind { return a.kind }

// XML returns the attribute or element name used on the wire.
func (a *Attribute) XML() string {
	if a.XMLName != "" {
		return a.XMLName
	}
	return a.Name
}

// DefaultLanguage returns the SBML host language with the canonical core namespace table.
func DefaultLanguage() Language {
	return Language{
		Name:            "SBML",
		BaseClass:       "SBase",
		DocumentClass:   "SBMLDocument",
		DocumentElement: "sbml",
		Namespaces: []NamespaceEntry{
			{Level: 1, Version: 1, URI: "http://www.sbml.org/sbml/level1"},
			{Level: 1, Version: 2, URI: "http://www.sbml.org/sbml/level1"},
			{Level: 2, Version: 1, URI: "http://www.sbml.org/sbml/level2"},
			{Level: 2, Version: 2, URI: "http://www.sbml.org/sbml/level2/version2"},
			{Level: 2, Version: 3, URI: "http://www.sbml.org/sbml/level2/version3"},
			{Level: 2, Version: 4, URI: "http://www.sbml.org/sbml/level2/version4"},
			{Level: 2, Version: 5, URI: "http://www.sbml.org/sbml/level2/version5"},
			{Level: 3, Version: 1, URI: "http://www.sbml.org/sbml/level3/version1/core"},
			{Level: 3, Version: 2, URI: "http://www.sbml.org/sbml/level3/version2/core"},
		},
	}
}

// URI returns the canonical namespace for (level, version), or "" if the pair is unknown.
func (l *Language) URI(level, version int) string {
	for _, e := range l.Namespaces {
		if e.Level == level && e.Version == version {
			return e.URI
		}
	}
	return ""
}

// IsNamespace reports whether uri belongs to any row of the namespace table.
func (l *Language) IsNamespace(uri string) bool {
	for _, e := range l.Namespaces {
		if e.URI == uri {
			return true
		}
	}
	return false
}

// Latest returns the highest (level, version) pair of the table.
func (l *Language) Latest() (level, version int) {
	for _, e := range l.Namespaces {
		if e.Level > level || (e.Level == level && e.Version > version) {
			level, version = e.Level, e.Version
		}
	}
	return level, version
}

// URI returns the namespace of one version of the package.
func (p *Package) URI(v *Version) string {
	r := strings.NewReplacer(
		"<LEVEL>", strconv.Itoa(v.Level),
		"<VERSION>", strconv.Itoa(v.Version),
		"<PKG>", p.Name,
		"<PKGVERSION>", strconv.Itoa(v.PkgVersion),
	)
	return r.Replace(p.URIPattern)
}

// SelectVersion returns the version with the given package version; 0 selects the last one.
func (p *Package) SelectVersion(pkgVersion int) (*Version, error) {
	if len(p.Versions) == 0 {
		return nil, NewSchemaError("", "", "package declares no versions", nil)
	}
	if pkgVersion == 0 {
		return &p.Versions[len(p.Versions)-1], nil
	}
	for i := range p.Versions {
		if p.Versions[i].PkgVersion == pkgVersion {
			return &p.Versions[i], nil
		}
	}
	return nil, NewSchemaError("", "", fmt.Sprintf("package version %d not declared", pkgVersion), nil)
}

// VersionForURI finds the version whose namespace is uri.
func (p *Package) VersionForURI(uri string) (*Version, bool) {
	for i := range p.Versions {
		if p.URI(&p.Versions[i]) == uri {
			return &p.Versions[i], true
		}
	}
	return nil, false
}

// CAPI reports whether C wrapper functions are generated.
func (p *Package) CAPI() bool { return !p.SkipCAPI }
