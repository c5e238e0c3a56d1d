// Package cpp renders the C++ classes, C API and build files of an extension
// package for the libSBML style host libraries.
package cpp

import (
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/sbmlteam/deviser/internal/codegen/common"
	"github.com/sbmlteam/deviser/internal/codegen/emit"
	"github.com/sbmlteam/deviser/internal/codegen/meta"
)

// generator carries the package wide names every renderer needs.
type generator struct {
	md       *meta.Metadata
	d        dialect
	pkg      string // distrib
	prefix   string // Distrib
	pkgNS    string // DistribPkgNamespaces
	nsVar    string // distribns
	createNS string // DISTRIB_CREATE_NS
	ext      string // DistribExtension
	incDir   string // sbml/packages/distrib
	notice   string
}

func newGenerator(md *meta.Metadata) *generator {
	d := newDialect(md.Language())
	pkg := strings.ToLower(md.Package.Name)
	return &generator{
		md:       md,
		d:        d,
		pkg:      pkg,
		prefix:   md.Package.Prefix,
		pkgNS:    md.Package.Prefix + "PkgNamespaces",
		nsVar:    pkg + "ns",
		createNS: strings.ToUpper(pkg) + "_CREATE_NS",
		ext:      md.Package.Prefix + "Extension",
		incDir:   d.inc + "/packages/" + pkg,
		notice:   common.FileHeader("//", md.Package),
	}
}

// include is the include path of file in a package subdirectory.
func (g *generator) include(sub, file string) string { return g.incDir + "/" + sub + "/" + file }

func (g *generator) classInclude(name string) string { return g.include(g.d.inc, name+".h") }

func (g *generator) extInclude() string { return g.include("extension", g.ext+".h") }

func (g *generator) enumsInclude() string { return g.include("common", g.prefix+"Enums.h") }

func (g *generator) xmlnsGetter() string {
	v := g.md.Version
	return xmlnsGetter(v.Level, v.Version, v.PkgVersion)
}

func xmlnsGetter(level, version, pkgVersion int) string {
	return fmt.Sprintf("getXmlnsL%dV%dV%d", level, version, pkgVersion)
}

// source is the path of a generated file below the source root.
func (g *generator) source(include string) string { return path.Join("src", include) }

// Generate renders every artifact of the C++ target. Paths are relative to the
// target directory.
func Generate(logger *slog.Logger, md *meta.Metadata) ([]emit.Artifact, error) {
	g := newGenerator(md)
	var arts []emit.Artifact
	pair := func(include string, header, impl []byte) {
		arts = append(arts,
			emit.Artifact{Path: g.source(include), Content: header},
			emit.Artifact{Path: g.source(strings.TrimSuffix(include, ".h") + ".cpp"), Content: impl},
		)
	}

	for _, c := range md.Classes {
		header, impl, err := RenderClass(md, c)
		if err != nil {
			return nil, emit.NewGenerationError("render", g.classInclude(c.Name), "", err)
		}
		pair(g.classInclude(c.Name), header, impl)
		logger.Debug("Rendered class", "class", c.Name)
	}

	for _, t := range md.ListOfs {
		c := md.Class(t.Name)
		header, impl, err := RenderListOf(md, c)
		if err != nil {
			return nil, emit.NewGenerationError("render", g.classInclude(t.ListOfName()), "", err)
		}
		pair(g.classInclude(t.ListOfName()), header, impl)
		logger.Debug("Rendered list", "class", t.ListOfName())
	}

	for _, p := range md.Plugins {
		if p.Host != nil {
			continue
		}
		name := g.prefix + p.Extends + "Plugin"
		header, impl, err := RenderPlugin(md, p)
		if err != nil {
			return nil, emit.NewGenerationError("render", g.include("extension", name+".h"), "", err)
		}
		pair(g.include("extension", name+".h"), header, impl)
		logger.Debug("Rendered plugin", "class", name)
	}

	header, impl, err := RenderExtension(md)
	if err != nil {
		return nil, emit.NewGenerationError("render", g.extInclude(), "", err)
	}
	pair(g.extInclude(), header, impl)

	if len(md.Enums) > 0 {
		header, impl, err := RenderEnums(md)
		if err != nil {
			return nil, emit.NewGenerationError("render", g.enumsInclude(), "", err)
		}
		pair(g.enumsInclude(), header, impl)
	}

	errHeader, table, err := RenderErrorTable(md)
	if err != nil {
		return nil, emit.NewGenerationError("render", g.include("validator", g.prefix+g.d.lang+"ErrorTable.h"), "", err)
	}
	arts = append(arts,
		emit.Artifact{Path: g.source(g.include("validator", g.prefix+g.d.lang+"Error.h")), Content: errHeader},
		emit.Artifact{Path: g.source(g.include("validator", g.prefix+g.d.lang+"ErrorTable.h")), Content: table},
	)

	fwd, err := RenderForward(md)
	if err != nil {
		return nil, emit.NewGenerationError("render", g.include("common", g.pkg+"fwd.h"), "", err)
	}
	types, err := RenderExtensionTypes(md)
	if err != nil {
		return nil, emit.NewGenerationError("render", g.include("common", g.prefix+"ExtensionTypes.h"), "", err)
	}
	arts = append(arts,
		emit.Artifact{Path: g.source(g.include("common", g.pkg+"fwd.h")), Content: fwd},
		emit.Artifact{Path: g.source(g.include("common", g.prefix+"ExtensionTypes.h")), Content: types},
	)

	if !g.d.isSBML {
		header, impl, err := RenderNamespaces(md)
		if err != nil {
			return nil, emit.NewGenerationError("render", g.d.lang+"Namespaces.h", "", err)
		}
		pair(g.d.inc+"/"+g.d.lang+"Namespaces.h", header, impl)
	}

	var sources []string
	for _, a := range arts {
		if strings.HasSuffix(a.Path, ".cpp") {
			sources = append(sources, a.Path)
		}
	}
	cmake, err := RenderCMake(md, sources)
	if err != nil {
		return nil, emit.NewGenerationError("render", "CMakeLists.txt", "", err)
	}
	arts = append(arts, emit.Artifact{Path: "CMakeLists.txt", Content: cmake})

	readme, err := common.Readme(md.Package, md.Version, "C++", "")
	if err != nil {
		return nil, emit.NewGenerationError("render", "README.md", "", err)
	}
	arts = append(arts, readme, common.License(md.Package, ""))

	for _, a := range arts {
		if err := emit.Check(a); err != nil {
			return nil, err
		}
	}
	emit.Sort(arts)
	logger.Info("Rendered C++ sources", "package", md.Package.Name, "files", len(arts))
	return arts, nil
}
