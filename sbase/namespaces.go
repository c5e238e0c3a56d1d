package sbase

import (
	"math"

	"github.com/sbmlteam/deviser/schema"
)

// InvalidLevel is the level and version of a Namespaces built from an unknown pair.
const InvalidLevel uint = math.MaxUint32

// XMLNamespace is one prefix to URI declaration.
type XMLNamespace struct {
	Prefix string
	URI    string
}

// XMLNamespaces is an ordered set of namespace declarations.
type XMLNamespaces struct {
	entries []XMLNamespace
}

// Len is the number of declarations.
func (x *XMLNamespaces) Len() int { return len(x.entries) }

// Entries returns a copy of the declarations in order.
func (x *XMLNamespaces) Entries() []XMLNamespace {
	return append([]XMLNamespace(nil), x.entries...)
}

// Add declares prefix, replacing an earlier declaration of the same prefix.
func (x *XMLNamespaces) Add(prefix, uri string) {
	for i := range x.entries {
		if x.entries[i].Prefix == prefix {
			x.entries[i].URI = uri
			return
		}
	}
	x.entries = append(x.entries, XMLNamespace{Prefix: prefix, URI: uri})
}

// URI returns the URI bound to prefix.
func (x *XMLNamespaces) URI(prefix string) (string, bool) {
	for _, e := range x.entries {
		if e.Prefix == prefix {
			return e.URI, true
		}
	}
	return "", false
}

// HasURI reports whether any prefix is bound to uri.
func (x *XMLNamespaces) HasURI(uri string) bool {
	for _, e := range x.entries {
		if e.URI == uri {
			return true
		}
	}
	return false
}

// Prefix returns the prefix bound to uri.
func (x *XMLNamespaces) Prefix(uri string) (string, bool) {
	for _, e := range x.entries {
		if e.URI == uri {
			return e.Prefix, true
		}
	}
	return "", false
}

func (x *XMLNamespaces) clone() *XMLNamespaces {
	return &XMLNamespaces{entries: append([]XMLNamespace(nil), x.entries...)}
}

// Namespaces ties a (level, version) of the host language to its canonical URI and
// carries the package namespaces declared next to it.
type Namespaces struct {
	lang     *schema.Language
	level    uint
	version  uint
	xmlns    *XMLNamespaces
	packages map[string]int
}

// CoreURI returns the canonical URI of (level, version), or "" if the pair is unknown.
func CoreURI(lang *schema.Language, level, version uint) string {
	if level > math.MaxInt32 || version > math.MaxInt32 {
		return ""
	}
	return lang.URI(int(level), int(version))
}

// NewNamespaces looks up (level, version). An unknown pair yields an empty
// namespace set and InvalidLevel for both level and version.
func NewNamespaces(lang *schema.Language, level, version uint) *Namespaces {
	ns := &Namespaces{lang: lang, xmlns: &XMLNamespaces{}, packages: map[string]int{}}
	uri := CoreURI(lang, level, version)
	if uri == "" {
		ns.level, ns.version = InvalidLevel, InvalidLevel
		return ns
	}
	ns.level, ns.version = level, version
	ns.xmlns.Add("", uri)
	return ns
}

func (n *Namespaces) Level() uint   { return n.level }
func (n *Namespaces) Version() uint { return n.version }

// Language returns the host language the namespaces were built for.
func (n *Namespaces) Language() *schema.Language { return n.lang }

// URI is the canonical core URI, or "" for an invalid pair.
func (n *Namespaces) URI() string { return CoreURI(n.lang, n.level, n.version) }

// XMLNamespaces exposes the declared namespace set.
func (n *Namespaces) XMLNamespaces() *XMLNamespaces { return n.xmlns }

// Valid reports whether the (level, version) pair was recognized.
func (n *Namespaces) Valid() bool { return n.level != InvalidLevel && n.version != InvalidLevel }

// AddPackage declares a package namespace under prefix.
func (n *Namespaces) AddPackage(prefix, uri string, pkgVersion int) {
	n.xmlns.Add(prefix, uri)
	n.packages[uri] = pkgVersion
}

// PackageVersion returns the version recorded for a package URI, or 0.
func (n *Namespaces) PackageVersion(uri string) int { return n.packages[uri] }

// Declare records a namespace declaration read from a document.
func (n *Namespaces) Declare(prefix, uri string) { n.xmlns.Add(prefix, uri) }

// IsValidCombination reports whether the pair is known and every declared core
// namespace is exactly the canonical URI for it.
func (n *Namespaces) IsValidCombination() bool {
	if !n.Valid() {
		return false
	}
	want := n.URI()
	for _, e := range n.xmlns.entries {
		if n.lang.IsNamespace(e.URI) && e.URI != want {
			return false
		}
	}
	return n.xmlns.HasURI(want)
}

// Clone returns an independent copy.
func (n *Namespaces) Clone() *Namespaces {
	pk := make(map[string]int, len(n.packages))
	for k, v := range n.packages {
		pk[k] = v
	}
	return &Namespaces{lang: n.lang, level: n.level, version: n.version, xmlns: n.xmlns.clone(), packages: pk}
}
