package cpp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sbmlteam/deviser/internal/codegen/emit"
	"github.com/sbmlteam/deviser/internal/codegen/meta"
)

const namespacesHeaderSkeleton = `/**
 * @file <LANGUAGE>Namespaces.h
 * @brief <LANGUAGE>Namespaces, the Level and Version of a document together with its XML namespaces.
 */

#ifndef <LANGUAGE>Namespaces_h
#define <LANGUAGE>Namespaces_h


#include <<INCLUDE>/xml/XMLNamespaces.h>
#include <<INCLUDE>/common/common.h>


#ifdef __cplusplus


#include <string>


<PREFIX>_CPP_NAMESPACE_BEGIN


#define <LANGUAGE>_DEFAULT_LEVEL   <SPEC_LEVEL>
#define <LANGUAGE>_DEFAULT_VERSION <SPEC_VERSION>


class <PREFIX>_EXTERN <LANGUAGE>Namespaces
{
public:

  /**
   * Creates a new <LANGUAGE>Namespaces object for the given Level and Version.
   * An unknown combination leaves the namespace set empty and marks Level and
   * Version as invalid.
   */
  <LANGUAGE>Namespaces(unsigned int level = <LANGUAGE>_DEFAULT_LEVEL,
                 unsigned int version = <LANGUAGE>_DEFAULT_VERSION);

  virtual ~<LANGUAGE>Namespaces();

  <LANGUAGE>Namespaces(const <LANGUAGE>Namespaces& orig);

  <LANGUAGE>Namespaces& operator=(const <LANGUAGE>Namespaces& rhs);

  virtual <LANGUAGE>Namespaces* clone() const;

  /**
   * Returns the canonical namespace URI of a Level and Version, or the empty
   * string when the combination is unknown.
   */
  static std::string get<LANGUAGE>NamespaceURI(unsigned int level, unsigned int version);

  /**
   * Returns true if uri is the namespace of some Level and Version.
   */
  static bool is<LANGUAGE>Namespace(const std::string& uri);

  std::string getURI() const;

  unsigned int getLevel();

  unsigned int getLevel() const;

  unsigned int getVersion();

  unsigned int getVersion() const;

  XMLNamespaces* getNamespaces();

  const XMLNamespaces* getNamespaces() const;

  /**
   * Adds the namespaces of xmlns to this object.
   */
  int addNamespaces(const XMLNamespaces* xmlns);

  int addNamespace(const std::string& uri, const std::string& prefix);

  int removeNamespace(const std::string& uri);

  /**
   * Returns true if the Level and Version are known and every declared
   * namespace of the language is the canonical one for them.
   */
  bool isValidCombination();


protected:

  /** @cond doxygenLibsbmlInternal */
  void initNamespaces(unsigned int level, unsigned int version);

  unsigned int mLevel;
  unsigned int mVersion;
  XMLNamespaces* mNamespaces;
  /** @endcond */
};


<PREFIX>_CPP_NAMESPACE_END


#endif /* __cplusplus */


#endif /* <LANGUAGE>Namespaces_h */
`

const namespacesImplSkeleton = `/**
 * @file <LANGUAGE>Namespaces.cpp
 * @brief Implementation of <LANGUAGE>Namespaces.
 */

#include <<INCLUDE>/<LANGUAGE>Namespaces.h>
#include <<INCLUDE>/common/common.h>


using namespace std;


<PREFIX>_CPP_NAMESPACE_BEGIN


/** @cond doxygenLibsbmlInternal */
void
<LANGUAGE>Namespaces::initNamespaces(unsigned int level, unsigned int version)
{
  mLevel = level;
  mVersion = version;
  mNamespaces = new XMLNamespaces();

  const std::string uri = get<LANGUAGE>NamespaceURI(level, version);

  if (uri.empty())
  {
    mLevel = <LANGUAGE>_INT_MAX;
    mVersion = <LANGUAGE>_INT_MAX;
  }
  else
  {
    mNamespaces->add(uri, "");
  }
}
/** @endcond */


<LANGUAGE>Namespaces::<LANGUAGE>Namespaces(unsigned int level, unsigned int version)
  : mNamespaces(NULL)
{
  initNamespaces(level, version);
}


<LANGUAGE>Namespaces::~<LANGUAGE>Namespaces()
{
  if (mNamespaces != NULL)
  {
    delete mNamespaces;
  }
}


<LANGUAGE>Namespaces::<LANGUAGE>Namespaces(const <LANGUAGE>Namespaces& orig)
  : mLevel(orig.mLevel)
  , mVersion(orig.mVersion)
  , mNamespaces(NULL)
{
  if (orig.mNamespaces != NULL)
  {
    mNamespaces = new XMLNamespaces(*orig.mNamespaces);
  }
}


<LANGUAGE>Namespaces&
<LANGUAGE>Namespaces::operator=(const <LANGUAGE>Namespaces& rhs)
{
  if (&rhs != this)
  {
    mLevel = rhs.mLevel;
    mVersion = rhs.mVersion;
    delete mNamespaces;
    mNamespaces = (rhs.mNamespaces != NULL) ? new XMLNamespaces(*rhs.mNamespaces) : NULL;
  }

  return *this;
}


<LANGUAGE>Namespaces*
<LANGUAGE>Namespaces::clone() const
{
  return new <LANGUAGE>Namespaces(*this);
}


std::string
<LANGUAGE>Namespaces::get<LANGUAGE>NamespaceURI(unsigned int level, unsigned int version)
{
  std::string uri = "";

<NS_TABLE>

  return uri;
}


bool
<LANGUAGE>Namespaces::is<LANGUAGE>Namespace(const std::string& uri)
{
<NS_KNOWN>

  return false;
}


std::string
<LANGUAGE>Namespaces::getURI() const
{
  return get<LANGUAGE>NamespaceURI(mLevel, mVersion);
}


unsigned int
<LANGUAGE>Namespaces::getLevel()
{
  return mLevel;
}


unsigned int
<LANGUAGE>Namespaces::getLevel() const
{
  return mLevel;
}


unsigned int
<LANGUAGE>Namespaces::getVersion()
{
  return mVersion;
}


unsigned int
<LANGUAGE>Namespaces::getVersion() const
{
  return mVersion;
}


XMLNamespaces*
<LANGUAGE>Namespaces::getNamespaces()
{
  return mNamespaces;
}


const XMLNamespaces*
<LANGUAGE>Namespaces::getNamespaces() const
{
  return mNamespaces;
}


int
<LANGUAGE>Namespaces::addNamespaces(const XMLNamespaces* xmlns)
{
  if (xmlns == NULL)
  {
    return <PREFIX>_INVALID_OBJECT;
  }

  if (mNamespaces == NULL)
  {
    initNamespaces(getLevel(), getVersion());
  }

  int success = <PREFIX>_OPERATION_SUCCESS;

  for (int i = 0; i < xmlns->getNumNamespaces(); i++)
  {
    if (!mNamespaces->containsUri(xmlns->getURI(i)))
    {
      success = mNamespaces->add(xmlns->getURI(i), xmlns->getPrefix(i));
    }
  }

  return success;
}


int
<LANGUAGE>Namespaces::addNamespace(const std::string& uri, const std::string& prefix)
{
  if (mNamespaces == NULL)
  {
    initNamespaces(getLevel(), getVersion());
  }

  return (mNamespaces != NULL) ? mNamespaces->add(uri, prefix) : <PREFIX>_INVALID_OBJECT;
}


int
<LANGUAGE>Namespaces::removeNamespace(const std::string& uri)
{
  return (mNamespaces != NULL) ? mNamespaces->remove(mNamespaces->getIndex(uri)) : <PREFIX>_INDEX_EXCEEDS_SIZE;
}


bool
<LANGUAGE>Namespaces::isValidCombination()
{
  const std::string uri = get<LANGUAGE>NamespaceURI(mLevel, mVersion);

  if (uri.empty())
  {
    return false;
  }

  if (mNamespaces != NULL)
  {
    for (int i = 0; i < mNamespaces->getNumNamespaces(); i++)
    {
      const std::string declared = mNamespaces->getURI(i);

      if (is<LANGUAGE>Namespace(declared) && declared != uri)
      {
        return false;
      }
    }
  }

  return true;
}


<PREFIX>_CPP_NAMESPACE_END
`

// RenderNamespaces fills the namespaces skeleton of the host language with its
// (Level, Version) -> URI table.
func RenderNamespaces(md *meta.Metadata) (header, impl []byte, err error) {
	g := newGenerator(md)
	l := md.Language()
	level, version := l.Latest()
	values := map[string]string{
		"LANGUAGE":     g.d.lang,
		"INCLUDE":      g.d.inc,
		"PREFIX":       g.d.lib,
		"SPEC_LEVEL":   strconv.Itoa(level),
		"SPEC_VERSION": strconv.Itoa(version),
		"NS_TABLE":     strings.Join(indent(1, g.namespaceTable()), "\n"),
		"NS_KNOWN":     strings.Join(indent(1, g.knownNamespaces()), "\n"),
	}
	name := g.d.lang + "Namespaces"
	if header, err = fillSkeleton(name+".h", namespacesHeaderSkeleton, g.notice, values); err != nil {
		return nil, nil, err
	}
	if impl, err = fillSkeleton(name+".cpp", namespacesImplSkeleton, g.notice, values); err != nil {
		return nil, nil, err
	}
	return header, impl, nil
}

// fillSkeleton replaces every <NAME> placeholder and rejects the result if one
// is left over.
func fillSkeleton(file, skeleton, notice string, values map[string]string) ([]byte, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "<"+k+">", values[k])
	}
	out := []byte(notice + strings.NewReplacer(pairs...).Replace(skeleton))
	if err := emit.Check(emit.Artifact{Path: file, Content: out}); err != nil {
		return nil, fmt.Errorf("fill %s: %w", file, err)
	}
	return out, nil
}

// namespaceTable renders the nested level/version switch of the namespace URIs.
func (g *generator) namespaceTable() []string {
	var levels []int
	byLevel := map[int][]string{}
	for _, ns := range g.md.Language().Namespaces {
		if _, ok := byLevel[ns.Level]; !ok {
			levels = append(levels, ns.Level)
		}
		byLevel[ns.Level] = append(byLevel[ns.Level],
			"case "+strconv.Itoa(ns.Version)+":",
			"  uri = "+cString(ns.URI)+";",
			"  break;")
	}
	out := []string{"switch (level)", "{"}
	for _, lv := range levels {
		out = append(out, "case "+strconv.Itoa(lv)+":", "  switch (version)", "  {")
		out = append(out, indent(1, byLevel[lv])...)
		out = append(out, "  }", "  break;")
	}
	return append(out, "}")
}

func (g *generator) knownNamespaces() []string {
	var out []string
	seen := map[string]bool{}
	for _, ns := range g.md.Language().Namespaces {
		if seen[ns.URI] {
			continue
		}
		seen[ns.URI] = true
		out = append(out, block("if (uri == "+cString(ns.URI)+")", "return true;")...)
	}
	return out
}
