package cpp

import (
	"strings"

	"github.com/sbmlteam/deviser/internal/codegen/common"
	"github.com/sbmlteam/deviser/internal/codegen/meta"
	"github.com/sbmlteam/deviser/sbase"
)

const errorHeaderTemplate = `{{.Notice}}/**
 * @file {{.Name}}.h
 * @brief Error codes of the {{.Pkg}} package.
 */

#ifndef {{.Name}}_H__
#define {{.Name}}_H__


{{.NSBegin}}
BEGIN_C_DECLS

/**
 * @enum {{.Name}}Code_t
 * Codes for all {{.Lang}}-level errors and warnings from the &ldquo;{{.Pkg}}&rdquo; package implementation.
 */
typedef enum
{
{{range $i, $e := .Entries}}  {{if $i}}, {{else}}  {{end}}{{$e.Name}} = {{$e.Code}}
{{end}}} {{.Name}}Code_t;

END_C_DECLS
{{.NSEnd}}


#endif /* !{{.Name}}_H__ */
`

const errorTableTemplate = `{{.Notice}}/**
 * @file {{.Name}}Table.h
 * @brief Error table of the {{.Pkg}} package.
 */

#ifndef {{.Name}}Table_H__
#define {{.Name}}Table_H__


#include <{{.Inc}}/{{.Lang}}Error.h>
#include <{{.Own}}>


{{.NSBegin}}

/** @cond doxygenLibsbmlInternal */

static const packageErrorTableEntry {{.Table}}[] =
{
{{- range .Entries}}
  // {{.Code}}
  { {{.Name}},
    {{.Short}},
    {{.Category}},
    {{.Severity}},
    {{.Message}},
    { {{.Reference}}
    }
  },
{{end}}};

/** @endcond */

{{.NSEnd}}


#endif /* !{{.Name}}Table_H__ */
`

var (
	errorHeaderTmpl = mustTemplate("error header", errorHeaderTemplate)
	errorTableTmpl  = mustTemplate("error table", errorTableTemplate)
)

type errorEntry struct {
	Code      int
	Name      string
	Short     string
	Category  string
	Severity  string
	Message   string
	Reference string
}

type errorFile struct {
	Notice  string
	Name    string
	Pkg     string
	Lang    string
	Inc     string
	Own     string
	Table   string
	NSBegin string
	NSEnd   string
	Entries []errorEntry
}

// RenderErrorTable renders the error code enumeration and the table of messages
// for every package error. The codes are the ones the runtime logs.
func RenderErrorTable(md *meta.Metadata) (header, table []byte, err error) {
	g := newGenerator(md)
	name := g.prefix + g.d.lang + "Error"
	f := errorFile{
		Notice:  g.notice,
		Name:    name,
		Pkg:     g.pkg,
		Lang:    g.d.lang,
		Inc:     g.d.inc,
		Own:     g.include("validator", name+".h"),
		Table:   g.errorTable(),
		NSBegin: g.d.nsBegin(),
		NSEnd:   g.d.nsEnd(),
	}

	unknown := g.prefix + "Unknown"
	base := md.Package.Offset + 10100
	f.Entries = append(f.Entries, errorEntry{
		Code:      base,
		Name:      unknown,
		Short:     cString("Unknown error from " + g.pkg),
		Category:  g.d.categoryConst(sbase.CategoryGeneralConsistency),
		Severity:  g.d.severityConst(sbase.SeverityError),
		Message:   cString("Unknown error from " + g.pkg),
		Reference: cString(""),
	})
	for _, d := range md.Errors.PackageEntries() {
		if d.Code == base {
			continue
		}
		f.Entries = append(f.Entries, errorEntry{
			Code:      d.Code,
			Name:      d.Name,
			Short:     cString(shortDescription(g.prefix, d.Name)),
			Category:  g.d.categoryConst(d.Category),
			Severity:  g.d.severityConst(d.Severity),
			Message:   cString(d.Message),
			Reference: cString(d.Reference),
		})
	}

	if header, err = execute(errorHeaderTmpl, f.withUpperBound(g.prefix, md.Package.Offset)); err != nil {
		return nil, nil, err
	}
	if table, err = execute(errorTableTmpl, f); err != nil {
		return nil, nil, err
	}
	return header, table, nil
}

// withUpperBound appends the enumeration terminator, which has no table row.
func (f errorFile) withUpperBound(prefix string, offset int) errorFile {
	f.Entries = append(append([]errorEntry(nil), f.Entries...), errorEntry{
		Code: offset + 99999,
		Name: prefix + "CodesUpperBound",
	})
	return f
}

// shortDescription spells an error name as words: DistribBetaDistributionAllowedAttributes
// becomes "Beta distribution allowed attributes".
func shortDescription(prefix, name string) string {
	words := strings.ReplaceAll(common.ToSnakeCase(strings.TrimPrefix(name, prefix)), "_", " ")
	if words == "" {
		return name
	}
	return strings.ToUpper(words[:1]) + words[1:]
}
