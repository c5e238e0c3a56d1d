package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sbmlteam/deviser/internal/codegen/generator"
	"github.com/sbmlteam/deviser/internal/codegen/meta"
)

type Inspect struct {
	Schema     string `arg:"" help:"Package schema (YAML, JSON, TOML or XML)" type:"existingfile"`
	PkgVersion int    `help:"Package version to resolve; 0 selects the last declared one" default:"0" env:"DEVISER_PKG_VERSION"`
	Errors     bool   `help:"Also print the error table of the package"`

	out io.Writer
}

// Run is called by Kong when the inspect command is executed.
func (i *Inspect) Run(logger *slog.Logger) error {
	md, err := generator.LoadMetadata(i.Schema, i.PkgVersion)
	if err != nil {
		return err
	}
	logger.Debug("Resolved package", "package", md.Package.Name, "classes", len(md.Classes))

	out := i.out
	if out == nil {
		out = os.Stdout
	}
	return printMetadata(out, md, i.Errors)
}

func printMetadata(out io.Writer, md *meta.Metadata, withErrors bool) error {
	pkg, v := md.Package, md.Version
	fmt.Fprintf(out, "%s (%s) %s Level %d Version %d, package version %d\n",
		pkg.FullName, pkg.Name, pkg.Language.Name, v.Level, v.Version, v.PkgVersion)
	fmt.Fprintf(out, "namespace %s\n\n", md.URI)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CLASS\tELEMENT\tBASE\tTYPE CODE\tNUM\tATTRIBUTES")
	for _, c := range md.Classes {
		name := c.Name
		if c.Abstract {
			name += " (abstract)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			name, c.ElementName, c.BaseClass, c.TypeCode, c.TypeNum, attrList(c))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(md.ListOfs) > 0 {
		fmt.Fprintln(out)
		tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "LIST\tELEMENT\tITEMS")
		for _, c := range md.ListOfs {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ListOfName(), c.ListOfElementName(), strings.Join(derivedNames(md.Class(c.Name)), ", "))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(md.Plugins) > 0 {
		fmt.Fprintln(out)
		tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "EXTENDS\tHOST\tATTRIBUTES")
		for _, p := range md.Plugins {
			host := md.Language().Name
			if p.Host != nil {
				host = pkg.Name
			}
			var attrs []string
			for _, a := range p.Attributes {
				attrs = append(attrs, a.Name+":"+a.Type)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Extends, host, strings.Join(attrs, " "))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if !withErrors {
		return nil
	}
	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tSEVERITY\tREFERENCE")
	for _, d := range md.Errors.PackageEntries() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", d.Code, d.Name, d.Severity, d.Reference)
	}
	return tw.Flush()
}

func attrList(c *meta.Class) string {
	var parts []string
	for _, a := range c.Attributes {
		s := a.Name + ":" + a.Type
		if a.Required {
			s += "!"
		}
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func derivedNames(c *meta.Class) []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.Derived))
	for i, d := range c.Derived {
		out[i] = d.Name
	}
	return out
}
