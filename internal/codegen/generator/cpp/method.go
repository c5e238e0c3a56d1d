package cpp

import (
	"fmt"
	"strings"
)

type param struct {
	typ  string
	name string
	def  string // default value, header only
}

func (p param) render(withDefault bool) string {
	s := p.typ
	if !strings.HasSuffix(s, " *") {
		s += " "
	}
	s += p.name
	if withDefault && p.def != "" {
		s += " = " + p.def
	}
	return s
}

// method is rendered twice: as a declaration in the header and as a definition
// in the implementation file. A method without a class is a C API function.
type method struct {
	doc       string
	ret       string // empty for constructors and destructors
	name      string
	params    []param
	init      []string
	isConst   bool
	virtual   bool
	static    bool
	protected bool
	body      []string
}

func (m method) paramList(withDefault bool) string {
	parts := make([]string, len(m.params))
	for i, p := range m.params {
		parts[i] = p.render(withDefault)
	}
	return strings.Join(parts, ", ")
}

// declLine is the declaration as it appears in the header, without indentation.
func (m method) declLine() string {
	var b strings.Builder
	if m.static {
		b.WriteString("static ")
	}
	if m.virtual {
		b.WriteString("virtual ")
	}
	if m.ret != "" {
		b.WriteString(m.ret + " ")
	}
	fmt.Fprintf(&b, "%s(%s)", m.name, m.paramList(true))
	if m.isConst {
		b.WriteString(" const")
	}
	b.WriteByte(';')
	return b.String()
}

// defLine is the line naming the method in its definition.
func (m method) defLine(class string) string {
	name := m.name
	if class != "" {
		name = class + "::" + m.name
	}
	s := fmt.Sprintf("%s(%s)", name, m.paramList(false))
	if m.isConst {
		s += " const"
	}
	return s
}

func (m method) docBlock(indent string, open string) string {
	if m.doc == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(indent + open + "\n")
	for _, l := range strings.Split(m.doc, "\n") {
		b.WriteString(strings.TrimRight(indent+" * "+l, " ") + "\n")
	}
	b.WriteString(indent + " */\n")
	return b.String()
}

// decl renders a class member declaration.
func (m method) decl() string {
	return m.docBlock("  ", "/**") + "  " + m.declLine() + "\n"
}

// cdecl renders a C API prototype.
func (m method) cdecl(export string) string {
	return m.docBlock("", "/**") + export + "\n" + m.ret + "\n" + m.defLine("") + ";\n"
}

// def renders the definition. C API functions carry the export macro.
func (m method) def(class, export string) string {
	var b strings.Builder
	b.WriteString(m.docBlock("", "/*"))
	if class == "" {
		b.WriteString(export + "\n")
	}
	if m.ret != "" {
		b.WriteString(m.ret + "\n")
	}
	b.WriteString(m.defLine(class) + "\n")
	for i, in := range m.init {
		if i == 0 {
			b.WriteString("  : " + in)
		} else {
			b.WriteString("  , " + in)
		}
		b.WriteByte('\n')
	}
	b.WriteString("{\n")
	for _, l := range m.body {
		if l == "" {
			b.WriteByte('\n')
			continue
		}
		b.WriteString("  " + l + "\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// checkPair verifies that every method is declared exactly once in header and
// defined exactly once in impl, and that impl defines nothing else for class.
func checkPair(class, header, impl string, methods, capi []method) error {
	hl := lineCounts(header)
	il := lineCounts(impl)
	for _, m := range methods {
		if n := hl[m.declLine()]; n != 1 {
			return fmt.Errorf("%s::%s declared %d times", class, m.name, n)
		}
		if n := il[m.defLine(class)]; n != 1 {
			return fmt.Errorf("%s::%s defined %d times", class, m.name, n)
		}
	}
	for _, m := range capi {
		proto := m.defLine("") + ";"
		if n := hl[proto]; n != 1 {
			return fmt.Errorf("%s declared %d times", m.name, n)
		}
		if n := il[m.defLine("")]; n != 1 {
			return fmt.Errorf("%s defined %d times", m.name, n)
		}
	}
	defs := 0
	for l, n := range il {
		if strings.HasPrefix(l, class+"::") {
			defs += n
		}
	}
	if defs != len(methods) {
		return fmt.Errorf("%s: %d definitions for %d declarations", class, defs, len(methods))
	}
	return nil
}

func lineCounts(s string) map[string]int {
	out := map[string]int{}
	for _, l := range strings.Split(s, "\n") {
		out[strings.TrimSpace(l)]++
	}
	return out
}
