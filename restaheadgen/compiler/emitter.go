package compiler

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/broady/restahead"
	"github.com/broady/restahead/restaheadgen/ir"
)

// method is a declaration that passed validation.
type method struct {
	spec *ir.RequestSpecification
	plan ir.ConversionPlan
	ret  ir.ReturnType
}

// emitter writes the generated file of one service.
type emitter struct {
	svc     *ir.Service
	methods []method
	buf     bytes.Buffer
	rt      string // runtime package qualifier
}

func emitFile(svc *ir.Service, methods []method) ([]byte, error) {
	e := &emitter{svc: svc, methods: methods, rt: ir.RuntimeName}
	e.header()
	e.imports()
	e.implementation()
	for _, m := range methods {
		e.method(m)
	}

	out, err := format.Source(e.buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code for %s: %w", svc.Name, err)
	}
	return out, nil
}

func (e *emitter) printf(format string, args ...any) {
	fmt.Fprintf(&e.buf, format, args...)
}

func (e *emitter) header() {
	e.printf("// Code generated by restahead. DO NOT EDIT.\n")
	if e.svc.File != "" {
		e.printf("// Source: %s\n", path.Base(strings.ReplaceAll(e.svc.File, "\\", "/")))
	}
	e.printf("\npackage %s\n\n", e.svc.Package.Name)
}

func (e *emitter) imports() {
	names := map[string]string{e.svc.RuntimePath(): e.rt}
	for _, imp := range e.svc.Imports {
		names[imp.Path] = imp.Name
	}
	for _, m := range e.methods {
		if m.spec.Context == nil {
			names["context"] = "context"
		}
		for _, h := range m.spec.Headers {
			switch h.Elem.Kind {
			case ir.KindBool, ir.KindInt, ir.KindUint, ir.KindFloat:
				names["strconv"] = "strconv"
			}
		}
	}

	var std, other []string
	for p := range names {
		if isStandard(p) {
			std = append(std, p)
		} else {
			other = append(other, p)
		}
	}
	slices.Sort(std)
	slices.Sort(other)

	e.printf("import (\n")
	for i, group := range [][]string{std, other} {
		if i > 0 && len(std) > 0 && len(other) > 0 {
			e.printf("\n")
		}
		for _, p := range group {
			if names[p] != path.Base(p) {
				e.printf("\t%s %q\n", names[p], p)
			} else {
				e.printf("\t%q\n", p)
			}
		}
	}
	e.printf(")\n\n")
}

// isStandard reports whether p looks like a standard library import path.
func isStandard(p string) bool {
	first, _, _ := strings.Cut(p, "/")
	return !strings.Contains(first, ".")
}

func (e *emitter) implementation() {
	impl := implName(e.svc.Name)
	ctor := constructorName(e.svc.Name)

	e.printf("type %s struct {\n", impl)
	e.printf("\tclient %s.Client\n", e.rt)
	e.printf("\tconverter %s.Converter\n", e.rt)
	e.printf("}\n\n")
	e.printf("var _ %s = (*%s)(nil)\n\n", e.svc.Name, impl)
	e.printf("// %s returns an implementation of %s that sends its calls\n", ctor, e.svc.Name)
	e.printf("// through client and decodes response bodies with converter.\n")
	e.printf("func %s(client %s.Client, converter %s.Converter) %s {\n", ctor, e.rt, e.rt, e.svc.Name)
	e.printf("\treturn &%s{client: client, converter: converter}\n", impl)
	e.printf("}\n")
}

func (e *emitter) method(m method) {
	spec := m.spec
	params := make([]string, len(spec.Parameters))
	for i, p := range spec.Parameters {
		if p.Variadic && p.Type.Elem != nil {
			params[i] = p.Name + " ..." + p.Type.Elem.Expr
		} else {
			params[i] = p.Name + " " + p.Type.Expr
		}
	}

	e.printf("\nfunc (s *%s) %s(%s) %s {\n", implName(e.svc.Name), spec.Name, strings.Join(params, ", "), m.ret.Expr)

	ctx := "ctx"
	if spec.Context != nil {
		ctx = spec.Context.Name
	} else {
		e.printf("\tctx := context.Background()\n")
	}
	e.printf("\t%s = %s.WithCall(%s, %q, %q)\n", ctx, e.rt, ctx, e.svc.Name, spec.Name)
	e.printf("\thttpRequest := %s.NewRequest(%s.%s, %q)\n", e.rt, e.rt, spec.Binding.Constant(), spec.Binding.Path)

	for _, h := range spec.Headers {
		if h.MultiValued {
			e.printf("\tfor _, headerItem := range %s {\n", h.ParameterName)
			e.printf("\t\thttpRequest.AddHeader(%q, %s)\n", h.HeaderName, headerText("headerItem", h.Elem))
			e.printf("\t}\n")
		} else {
			e.printf("\thttpRequest.AddHeader(%q, %s)\n", h.HeaderName, headerText(h.ParameterName, h.Elem))
		}
	}

	e.printf("\tresponse := s.client.Execute(%s, httpRequest)\n", ctx)

	pass := e.passthrough(spec)
	switch m.plan.Mode {
	case ir.Blocking:
		switch m.plan.Category {
		case ir.Void:
			e.printf("\t_, err := %s.Await(%s, %s.Discard(response), %s)\n", e.rt, ctx, e.rt, pass)
			e.printf("\treturn err\n")
		case ir.RawResponse:
			e.printf("\treturn %s.Await(%s, response, %s)\n", e.rt, ctx, pass)
		case ir.ConvertedValue:
			e.printf("\tconverted := %s.Convert[%s](response, s.converter)\n", e.rt, m.plan.Target.Expr)
			e.printf("\treturn %s.Await(%s, converted, %s)\n", e.rt, ctx, pass)
		}
	case ir.Async:
		switch m.plan.Category {
		case ir.Void:
			e.printf("\treturn %s.Normalized(%s.Discard(response), %s)\n", e.rt, e.rt, pass)
		case ir.RawResponse:
			e.printf("\treturn %s.Normalized(response, %s)\n", e.rt, pass)
		case ir.ConvertedValue:
			e.printf("\treturn %s.Normalized(%s.Convert[%s](response, s.converter), %s)\n", e.rt, e.rt, m.plan.Target.Expr, pass)
		}
	}
	e.printf("}\n")
}

func (e *emitter) passthrough(spec *ir.RequestSpecification) string {
	var kinds []string
	if spec.Passthrough.Has(restahead.PassTransport) {
		kinds = append(kinds, e.rt+".PassTransport")
	}
	if spec.Passthrough.Has(restahead.PassCanceled) {
		kinds = append(kinds, e.rt+".PassCanceled")
	}
	if len(kinds) == 0 {
		return e.rt + ".PassNone"
	}
	return strings.Join(kinds, " | ")
}

// headerText returns the expression converting x, of type t, to header text.
func headerText(x string, t ir.TypeRef) string {
	switch t.Kind {
	case ir.KindStringer:
		return x + ".String()"
	case ir.KindString:
		if t.Expr == "string" {
			return x
		}
		return "string(" + x + ")"
	case ir.KindBool:
		return "strconv.FormatBool(" + convert(x, t, "bool") + ")"
	case ir.KindInt:
		return "strconv.FormatInt(" + convert(x, t, "int64") + ", 10)"
	case ir.KindUint:
		return "strconv.FormatUint(" + convert(x, t, "uint64") + ", 10)"
	case ir.KindFloat:
		bits := t.Bits
		if bits != 32 {
			bits = 64
		}
		return "strconv.FormatFloat(" + convert(x, t, "float64") + ", 'g', -1, " + strconv.Itoa(bits) + ")"
	default:
		return x
	}
}

func convert(x string, t ir.TypeRef, to string) string {
	if t.Expr == to {
		return x
	}
	return to + "(" + x + ")"
}

// implName returns the unexported implementation type of an interface,
// e.g. HTTPBinService -> httpBinServiceImpl.
func implName(iface string) string {
	return lowerInitial(iface) + "Impl"
}

// constructorName returns the constructor of an interface: NewFoo for Foo,
// newFoo for foo.
func constructorName(iface string) string {
	r := []rune(iface)
	if len(r) > 0 && unicode.IsUpper(r[0]) {
		return "New" + iface
	}
	if len(r) > 0 {
		r[0] = unicode.ToUpper(r[0])
	}
	return "new" + string(r)
}

// lowerInitial lower-cases the leading run of upper-case letters, leaving the
// last one alone when it starts the next word.
func lowerInitial(s string) string {
	r := []rune(s)
	n := 0
	for n < len(r) && unicode.IsUpper(r[n]) {
		n++
	}
	if n > 1 && n < len(r) && unicode.IsLower(r[n]) {
		n--
	}
	for i := 0; i < n; i++ {
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}
