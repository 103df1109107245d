package ir

import (
	"cmp"
	"fmt"
	"go/token"
	"slices"
	"strings"
)

// Severity of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic codes.
const (
	CodeMissingVerb            = "missing_verb"
	CodeDuplicateVerb          = "duplicate_verb"
	CodeInvalidPath            = "invalid_path"
	CodeInvalidHeaderName      = "invalid_header_name"
	CodeInvalidHeaderType      = "invalid_header_type"
	CodeUnknownParameter       = "unknown_parameter"
	CodeUnknownHeaderParameter = "unknown_header_parameter"
	CodeDuplicateHeader        = "duplicate_header"
	CodeReservedName           = "reserved_name"
	CodeUnsupportedReturn      = "unsupported_return"
	CodeUnknownDirective       = "unknown_directive"
	CodeMalformedDirective     = "malformed_directive"
	CodeEmbeddedInterface      = "embedded_interface"
	CodeNoMethods              = "no_methods"
	CodeEmitFailed             = "emit_failed"
)

// Diagnostic is a problem found in a declaration.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Source   token.Position

	// Declaration is the qualified name of the method, "Service.Method",
	// or the service name for problems on the interface itself.
	Declaration string

	// Parameter is set for problems with a single parameter.
	Parameter string
}

// String renders the diagnostic as "file:line:col: error: message".
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Source.IsValid() {
		b.WriteString(d.Source.String())
		b.WriteString(": ")
	}
	b.WriteString(d.Severity.String())
	b.WriteString(": ")
	if d.Declaration != "" {
		b.WriteString(d.Declaration)
		if d.Parameter != "" {
			b.WriteString("(" + d.Parameter + ")")
		}
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}

// Diagnostics accumulates diagnostics across a batch.
type Diagnostics []Diagnostic

// Errorf adds an error diagnostic.
func (ds *Diagnostics) Errorf(code string, pos token.Position, decl, param, format string, args ...any) {
	*ds = append(*ds, Diagnostic{
		Severity:    SeverityError,
		Code:        code,
		Message:     fmt.Sprintf(format, args...),
		Source:      pos,
		Declaration: decl,
		Parameter:   param,
	})
}

// Warnf adds a warning diagnostic.
func (ds *Diagnostics) Warnf(code string, pos token.Position, decl, format string, args ...any) {
	*ds = append(*ds, Diagnostic{
		Severity:    SeverityWarning,
		Code:        code,
		Message:     fmt.Sprintf(format, args...),
		Source:      pos,
		Declaration: decl,
	})
}

// HasErrors reports whether any diagnostic is an error.
func (ds Diagnostics) HasErrors() bool {
	return slices.ContainsFunc(ds, func(d Diagnostic) bool { return d.Severity == SeverityError })
}

// ErrorCount returns the number of error diagnostics.
func (ds Diagnostics) ErrorCount() int {
	n := 0
	for _, d := range ds {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Codes returns the codes of the diagnostics, in order.
func (ds Diagnostics) Codes() []string {
	codes := make([]string, len(ds))
	for i, d := range ds {
		codes[i] = d.Code
	}
	return codes
}

// Sort orders diagnostics by file, line and column. Diagnostics at the same
// position keep their relative order.
func (ds Diagnostics) Sort() {
	slices.SortStableFunc(ds, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Source.Filename, b.Source.Filename),
			cmp.Compare(a.Source.Line, b.Source.Line),
			cmp.Compare(a.Source.Column, b.Source.Column),
		)
	})
}

// String renders one diagnostic per line.
func (ds Diagnostics) String() string {
	var b strings.Builder
	for _, d := range ds {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	return b.String()
}
