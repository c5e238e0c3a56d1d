package sbase

import (
	"fmt"
	"strings"
)

// Severity of a logged problem.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "Info"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	case SeverityFatal:
		return "Fatal"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Category groups error definitions the way the validators report them.
type Category int

const (
	CategoryInternal Category = iota
	CategoryXML
	CategorySBML
	CategoryGeneralConsistency
	CategoryIdentifierConsistency
)

func (c Category) String() string {
	switch c {
	case CategoryInternal:
		return "Internal"
	case CategoryXML:
		return "XML"
	case CategorySBML:
		return "SBML"
	case CategoryGeneralConsistency:
		return "General SBML conformance"
	case CategoryIdentifierConsistency:
		return "SBML identifier consistency"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// ErrorDef is one row of an error table.
type ErrorDef struct {
	Code      int
	Name      string
	Category  Category
	Severity  Severity
	Message   string
	Reference string
}

// Error is one logged occurrence of an ErrorDef.
type Error struct {
	ErrorDef
	Detail string
	Line   int
	Column int
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d:%d: ", e.Line, e.Column)
	}
	fmt.Fprintf(&b, "(%d) [%s] %s", e.Code, e.Severity, e.Message)
	if e.Detail != "" {
		b.WriteString("\n")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// ErrorLog is the append-only list of problems found in one document.
type ErrorLog struct {
	errs []*Error
}

// NewErrorLog returns an empty log.
func NewErrorLog() *ErrorLog { return &ErrorLog{} }

// Add appends e.
func (l *ErrorLog) Add(e *Error) { l.errs = append(l.errs, e) }

// Log appends an occurrence of def.
func (l *ErrorLog) Log(def ErrorDef, detail string, line, column int) {
	l.Add(&Error{ErrorDef: def, Detail: detail, Line: line, Column: column})
}

// Len is the number of logged problems.
func (l *ErrorLog) Len() int { return len(l.errs) }

// At returns the i-th logged problem, or nil when out of range.
func (l *ErrorLog) At(i int) *Error {
	if i < 0 || i >= len(l.errs) {
		return nil
	}
	return l.errs[i]
}

// Errors returns the logged problems in order.
func (l *ErrorLog) Errors() []*Error { return append([]*Error(nil), l.errs...) }

// BySeverity filters the log.
func (l *ErrorLog) BySeverity(s Severity) []*Error {
	var out []*Error
	for _, e := range l.errs {
		if e.Severity == s {
			out = append(out, e)
		}
	}
	return out
}

// ByCode filters the log.
func (l *ErrorLog) ByCode(code int) []*Error {
	var out []*Error
	for _, e := range l.errs {
		if e.Code == code {
			out = append(out, e)
		}
	}
	return out
}

// NumWithSeverity counts problems of severity s.
func (l *ErrorLog) NumWithSeverity(s Severity) int {
	n := 0
	for _, e := range l.errs {
		if e.Severity == s {
			n++
		}
	}
	return n
}

// Contains reports whether code was logged at least once.
func (l *ErrorLog) Contains(code int) bool {
	for _, e := range l.errs {
		if e.Code == code {
			return true
		}
	}
	return false
}

// Severe reports whether anything of severity Error or Fatal was logged.
func (l *ErrorLog) Severe() bool {
	return l.NumWithSeverity(SeverityError)+l.NumWithSeverity(SeverityFatal) > 0
}
