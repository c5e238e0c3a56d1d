package common

import (
	"strings"

	"github.com/sbmlteam/deviser/schema"
)

// FileHeader is the generated-code notice for a line-comment language, followed
// by the license lines of the package.
func FileHeader(comment string, pkg *schema.Package) string {
	var b strings.Builder
	b.WriteString(comment + " Code generated by " + Stamp() + " for the " + pkg.FullName + " package. DO NOT EDIT.\n")
	if len(pkg.License) > 0 {
		b.WriteString(comment + "\n")
		for _, l := range pkg.License {
			b.WriteString(strings.TrimRight(comment+" "+l, " ") + "\n")
		}
	}
	return b.String()
}
