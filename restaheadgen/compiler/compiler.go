package compiler

import (
	"path/filepath"
	"strings"

	"github.com/broady/restahead/restaheadgen/ir"
)

// DefaultSuffix is appended to the source file name to name generated files.
const DefaultSuffix = "_restahead.go"

// Unit is the generated file of one service.
type Unit struct {
	Service *ir.Service

	// Filename is the base name of the generated file.
	Filename string

	// Content is the formatted Go source. It is nil for incomplete units.
	Content []byte

	// Complete is false when any declaration of the service had an error
	// diagnostic. Incomplete units are never written.
	Complete bool

	// Methods is the number of methods emitted.
	Methods int
}

// Path returns the location of the generated file: next to the source file.
func (u *Unit) Path() string {
	return filepath.Join(u.Service.Package.Dir, u.Filename)
}

// Compiler compiles services into units.
type Compiler struct {
	// Suffix replaces ".go" in the source file name. Defaults to DefaultSuffix.
	Suffix string
}

// New returns a Compiler with default settings.
func New() *Compiler {
	return &Compiler{Suffix: DefaultSuffix}
}

// Compile validates every declaration of svc and, if all are valid, emits the
// implementation. The returned diagnostics cover the service and all its
// declarations.
func (c *Compiler) Compile(svc *ir.Service) (*Unit, ir.Diagnostics) {
	var diags ir.Diagnostics
	diags = append(diags, svc.Diagnostics...)

	var methods []method
	for _, decl := range svc.Declarations {
		spec, ok := BuildRequestSpecification(decl, svc.Imports, &diags)
		plan, err := PlanConversion(decl.Return)
		if err != nil {
			diags.Errorf(ir.CodeUnsupportedReturn, decl.Source, decl.QualifiedName(), "", "%v", err)
			continue
		}
		if !ok {
			continue
		}
		methods = append(methods, method{spec: spec, plan: plan, ret: decl.Return})
	}

	unit := &Unit{Service: svc, Filename: c.filename(svc, false)}
	if diags.HasErrors() {
		return unit, diags
	}

	content, err := emitFile(svc, methods)
	if err != nil {
		diags.Errorf(ir.CodeEmitFailed, svc.Source, svc.Name, "", "%v", err)
		return unit, diags
	}
	unit.Content = content
	unit.Complete = true
	unit.Methods = len(methods)
	return unit, diags
}

// CompileAll compiles each service. When a source file declares several
// services, their units are named <source>_<service><suffix> so they do not
// overwrite each other.
func (c *Compiler) CompileAll(svcs []*ir.Service) ([]*Unit, ir.Diagnostics) {
	perFile := make(map[string]int)
	for _, svc := range svcs {
		perFile[svc.File]++
	}

	var all ir.Diagnostics
	units := make([]*Unit, 0, len(svcs))
	for _, svc := range svcs {
		unit, diags := c.Compile(svc)
		if perFile[svc.File] > 1 {
			unit.Filename = c.filename(svc, true)
		}
		units = append(units, unit)
		all = append(all, diags...)
	}
	return units, all
}

func (c *Compiler) filename(svc *ir.Service, qualify bool) string {
	suffix := c.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}
	if svc.File == "" {
		return strings.ToLower(svc.Name) + suffix
	}
	base := strings.TrimSuffix(filepath.Base(svc.File), ".go")
	if qualify {
		base += "_" + strings.ToLower(svc.Name)
	}
	return base + suffix
}
