package provider

import (
	"go/types"
	"slices"
	"strconv"
	"strings"

	"github.com/broady/restahead/restaheadgen/ir"
)

// typeRef classifies t and renders it with q.
func (e *extractor) typeRef(t types.Type, q *qualifier) ir.TypeRef {
	ref := ir.TypeRef{Expr: types.TypeString(t, q.qualify), Kind: ir.KindOpaque}

	switch {
	case isNamed(t, "context", "Context"):
		ref.Kind = ir.KindContext
		return ref
	case e.isResponse(t):
		ref.Kind = ir.KindResponse
		return ref
	case isEmptyStruct(t):
		ref.Kind = ir.KindEmpty
		return ref
	case isStringer(t):
		ref.Kind = ir.KindStringer
		return ref
	}

	switch u := t.Underlying().(type) {
	case *types.Basic:
		info := u.Info()
		switch {
		case info&types.IsString != 0:
			ref.Kind = ir.KindString
		case info&types.IsBoolean != 0:
			ref.Kind = ir.KindBool
		case info&types.IsUnsigned != 0:
			ref.Kind = ir.KindUint
		case info&types.IsInteger != 0:
			ref.Kind = ir.KindInt
		case info&types.IsFloat != 0:
			ref.Kind = ir.KindFloat
			ref.Bits = 64
			if u.Kind() == types.Float32 {
				ref.Bits = 32
			}
		}
	case *types.Slice:
		elem := e.typeRef(u.Elem(), q)
		ref.Kind, ref.Elem = ir.KindSequence, &elem
	case *types.Array:
		elem := e.typeRef(u.Elem(), q)
		ref.Kind, ref.Elem = ir.KindSequence, &elem
	}
	return ref
}

func (e *extractor) isResponse(t types.Type) bool {
	ptr, ok := types.Unalias(t).(*types.Pointer)
	return ok && isNamed(ptr.Elem(), e.runtime, "Response")
}

// futureArg returns T for *Future[T] of the runtime package.
func (e *extractor) futureArg(t types.Type) (types.Type, bool) {
	ptr, ok := types.Unalias(t).(*types.Pointer)
	if !ok || !isNamed(ptr.Elem(), e.runtime, "Future") {
		return nil, false
	}
	args := types.Unalias(ptr.Elem()).(*types.Named).TypeArgs()
	if args.Len() != 1 {
		return nil, false
	}
	return args.At(0), true
}

func isNamed(t types.Type, pkgPath, name string) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == pkgPath && obj.Name() == name
}

func isError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}

// isEmptyStruct matches the unnamed struct{} only.
func isEmptyStruct(t types.Type) bool {
	s, ok := types.Unalias(t).(*types.Struct)
	return ok && s.NumFields() == 0
}

// isStringer reports whether t or *t has a String() string method.
func isStringer(t types.Type) bool {
	obj, _, _ := types.LookupFieldOrMethod(t, true, nil, "String")
	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}
	sig := fn.Type().(*types.Signature)
	if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}
	b, ok := sig.Results().At(0).Type().(*types.Basic)
	return ok && b.Kind() == types.String
}

// qualifier names the packages referenced by generated code. Names used by the
// generated code itself are reserved; colliding imports get a numeric suffix.
type qualifier struct {
	self    *types.Package
	runtime string
	names   map[string]string // path to name
	taken   map[string]string // name to path
}

func newQualifier(self *types.Package, runtime string) *qualifier {
	return &qualifier{
		self:    self,
		runtime: runtime,
		names:   map[string]string{},
		taken: map[string]string{
			ir.RuntimeName: runtime,
			"context":      "context",
			"strconv":      "strconv",
		},
	}
}

func (q *qualifier) qualify(p *types.Package) string {
	switch p.Path() {
	case q.self.Path():
		return ""
	case q.runtime:
		return ir.RuntimeName
	}
	if name, ok := q.names[p.Path()]; ok {
		return name
	}
	name := p.Name()
	for i := 2; ; i++ {
		owner, ok := q.taken[name]
		if !ok || owner == p.Path() {
			break
		}
		name = p.Name() + strconv.Itoa(i)
	}
	q.names[p.Path()] = name
	q.taken[name] = p.Path()
	return name
}

// imports returns the packages named so far, sorted by path.
func (q *qualifier) imports() []ir.Import {
	var out []ir.Import
	for path, name := range q.names {
		out = append(out, ir.Import{Name: name, Path: path})
	}
	slices.SortFunc(out, func(a, b ir.Import) int { return strings.Compare(a.Path, b.Path) })
	return out
}
