package compiler

import (
	"errors"
	"strings"

	"github.com/broady/restahead/restaheadgen/ir"
)

// reservedNames are identifiers declared by generated method bodies.
// Parameters may not use them.
var reservedNames = map[string]bool{
	"s":           true,
	"ctx":         true,
	"httpRequest": true,
	"response":    true,
	"converted":   true,
	"headerItem":  true,
	"err":         true,
}

// reserved reports whether name would shadow an identifier the generated
// method body refers to: its own locals, the packages it imports, or a
// package named by a parameter or result type.
func reserved(name string, imports []ir.Import) bool {
	switch name {
	case ir.RuntimeName, "context", "strconv":
		return true
	}
	if reservedNames[name] {
		return true
	}
	for _, imp := range imports {
		if imp.Name == name {
			return true
		}
	}
	return false
}

// BuildRequestSpecification validates decl and resolves it into a request
// specification. imports are the packages the service's type expressions
// refer to; parameters may not shadow them. Every problem found is added to
// diags; the request specification is only returned when there were none.
func BuildRequestSpecification(decl ir.Declaration, imports []ir.Import, diags *ir.Diagnostics) (*ir.RequestSpecification, bool) {
	start := len(*diags)
	qname := decl.QualifiedName()

	*diags = append(*diags, decl.Diagnostics...)

	spec := &ir.RequestSpecification{
		Name:        decl.Name,
		Passthrough: decl.Passthrough,
	}

	switch len(decl.Markers) {
	case 0:
		diags.Errorf(ir.CodeMissingVerb, decl.Source, qname, "",
			"missing verb directive, want one of //restahead:%s", strings.Join(ir.VerbMarkerNames(), ", //restahead:"))
	case 1:
		m := decl.Markers[0]
		spec.Binding = ir.VerbBinding{Verb: ir.VerbMarkers[m.Name], Path: m.Arg}
		if err := ValidatePath(m.Arg); err != nil {
			diags.Errorf(ir.CodeInvalidPath, m.Source, qname, "", "%v", err)
		}
	default:
		for _, m := range decl.Markers[1:] {
			diags.Errorf(ir.CodeDuplicateVerb, m.Source, qname, "",
				"duplicate verb directive //restahead:%s, %s already declares //restahead:%s",
				m.Name, decl.Name, decl.Markers[0].Name)
		}
	}

	headers := make(map[string]ir.HeaderMarker, len(decl.Headers))
	for _, h := range decl.Headers {
		if prev, ok := headers[h.Parameter]; ok {
			diags.Errorf(ir.CodeDuplicateHeader, h.Source, qname, h.Parameter,
				"parameter is already bound to header %s", prev.Header)
			continue
		}
		headers[h.Parameter] = h
	}

	known := make(map[string]bool, len(decl.Params))
	for i, p := range decl.Params {
		if named(p) {
			known[p.Name] = true
		}

		if i == 0 && p.Type.Kind == ir.KindContext {
			if _, marked := headers[p.Name]; !marked {
				ctx := p
				if !named(ctx) {
					ctx.Name = "ctx"
				} else if ctx.Name != "ctx" && reserved(ctx.Name, imports) {
					diags.Errorf(ir.CodeReservedName, p.Source, qname, p.Name,
						"parameter name %s is used by generated code", p.Name)
				}
				spec.Context = &ctx
				spec.Parameters = append(spec.Parameters, ctx)
				continue
			}
		}

		if !named(p) {
			diags.Errorf(ir.CodeUnknownParameter, p.Source, qname, "",
				"unnamed parameter of type %s, only the first parameter may be an unnamed context.Context", p.Type.Expr)
			continue
		}
		if reserved(p.Name, imports) {
			diags.Errorf(ir.CodeReservedName, p.Source, qname, p.Name,
				"parameter name %s is used by generated code", p.Name)
		}

		h, marked := headers[p.Name]
		if !marked {
			diags.Errorf(ir.CodeUnknownParameter, p.Source, qname, p.Name,
				"unknown parameter, missing //restahead:header directive")
			continue
		}

		binding, err := ValidateHeader(h.Header, p)
		switch {
		case errors.Is(err, ErrInvalidHeaderName):
			diags.Errorf(ir.CodeInvalidHeaderName, h.Source, qname, p.Name, "%v", err)
		case err != nil:
			diags.Errorf(ir.CodeInvalidHeaderType, p.Source, qname, p.Name, "%v", err)
		default:
			spec.Headers = append(spec.Headers, binding)
			spec.Parameters = append(spec.Parameters, p)
		}
	}

	for _, h := range decl.Headers {
		if !known[h.Parameter] {
			diags.Errorf(ir.CodeUnknownHeaderParameter, h.Source, qname, h.Parameter,
				"//restahead:header names no parameter of %s", decl.Name)
		}
	}

	if (*diags)[start:].HasErrors() {
		return nil, false
	}
	return spec, true
}

func named(p ir.ParameterDescriptor) bool {
	return p.Name != "" && p.Name != "_"
}
