// Package provider finds restahead client interfaces in Go source and turns
// them into the intermediate representation.
package provider

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"
	"strings"

	"github.com/broady/restahead/internal/directive"
	"github.com/broady/restahead/restaheadgen/ir"
	"golang.org/x/tools/go/packages"
)

// generatedHeader starts every file written by the generator.
var generatedHeader = []byte("// Code generated by restahead. DO NOT EDIT.")

// SourceProvider extracts client interfaces by analyzing Go source code.
type SourceProvider struct {
	// Runtime is the import path of the runtime package. Defaults to ir.RuntimePath.
	Runtime string

	// Dir is the directory packages are loaded from. Defaults to the current directory.
	Dir string
}

// SourceInputOptions configures [SourceProvider.Services].
type SourceInputOptions struct {
	// Packages are package patterns, e.g. "./api" or "github.com/myorg/app/api".
	Packages []string

	// Interfaces restricts the result to the named interfaces. Empty means all.
	Interfaces []string
}

// Services loads the packages and returns one Service per interface marked
// with //restahead:client, ordered by package, file and position.
//
// Files previously written by the generator are ignored while type checking
// so a stale implementation does not prevent regeneration.
func (p *SourceProvider) Services(ctx context.Context, opts SourceInputOptions) ([]*ir.Service, error) {
	if len(opts.Packages) == 0 {
		return nil, fmt.Errorf("no packages specified")
	}

	cfg := &packages.Config{
		Context: ctx,
		Dir:     p.Dir,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedImports |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
		ParseFile: func(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
			if bytes.HasPrefix(src, generatedHeader) {
				return parser.ParseFile(fset, filename, src, parser.PackageClauseOnly)
			}
			return parser.ParseFile(fset, filename, src, parser.ParseComments|parser.AllErrors)
		},
	}

	pkgs, err := packages.Load(cfg, opts.Packages...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found")
	}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package %s has errors: %v", pkg.PkgPath, pkg.Errors[0])
		}
	}
	slices.SortFunc(pkgs, func(a, b *packages.Package) int { return strings.Compare(a.PkgPath, b.PkgPath) })

	runtime := p.Runtime
	if runtime == "" {
		runtime = ir.RuntimePath
	}

	var services []*ir.Service
	for _, pkg := range pkgs {
		e := &extractor{pkg: pkg, runtime: runtime}
		services = append(services, e.services()...)
	}

	if len(opts.Interfaces) > 0 {
		services = slices.DeleteFunc(services, func(s *ir.Service) bool {
			return !slices.Contains(opts.Interfaces, s.Name)
		})
	}
	return services, nil
}

// extractor walks the syntax of one package.
type extractor struct {
	pkg     *packages.Package
	runtime string
}

func (e *extractor) services() []*ir.Service {
	files := slices.Clone(e.pkg.Syntax)
	slices.SortFunc(files, func(a, b *ast.File) int {
		return strings.Compare(e.pkg.Fset.Position(a.Pos()).Filename, e.pkg.Fset.Position(b.Pos()).Filename)
	})

	var out []*ir.Service
	for _, f := range files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && !gd.Lparen.IsValid() {
					doc = gd.Doc
				}
				if !directive.IsClient(doc) {
					continue
				}
				out = append(out, e.service(ts, doc))
			}
		}
	}
	return out
}

func (e *extractor) service(ts *ast.TypeSpec, doc *ast.CommentGroup) *ir.Service {
	fset := e.pkg.Fset
	pos := fset.Position(ts.Name.Pos())
	svc := &ir.Service{
		Name: ts.Name.Name,
		Package: ir.PackageInfo{
			Name: e.pkg.Name,
			Path: e.pkg.PkgPath,
			Dir:  filepath.Dir(pos.Filename),
		},
		File:    pos.Filename,
		Source:  pos,
		Runtime: e.runtime,
	}
	if e.runtime == ir.RuntimePath {
		svc.Runtime = ""
	}
	directive.CheckInterface(fset, doc, svc.Name, &svc.Diagnostics)

	it, ok := ts.Type.(*ast.InterfaceType)
	if !ok {
		svc.Diagnostics.Errorf(ir.CodeMalformedDirective, pos, svc.Name, "", "//restahead:client requires an interface type")
		return svc
	}
	if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
		svc.Diagnostics.Errorf(ir.CodeMalformedDirective, pos, svc.Name, "", "generic interfaces are not supported")
		return svc
	}

	q := newQualifier(e.pkg.Types, e.runtime)
	for _, field := range it.Methods.List {
		if len(field.Names) == 0 {
			svc.Diagnostics.Errorf(ir.CodeEmbeddedInterface, fset.Position(field.Pos()), svc.Name, "",
				"embedded interfaces are not supported, declare the methods directly")
			continue
		}
		for _, name := range field.Names {
			fn, ok := e.pkg.TypesInfo.Defs[name].(*types.Func)
			if !ok {
				continue
			}
			svc.Declarations = append(svc.Declarations, e.declaration(svc.Name, fn, field.Doc, q))
		}
	}
	if len(it.Methods.List) == 0 {
		svc.Diagnostics.Warnf(ir.CodeNoMethods, pos, svc.Name, "interface declares no methods")
	}
	svc.Imports = q.imports()
	return svc
}

func (e *extractor) declaration(service string, fn *types.Func, doc *ast.CommentGroup, q *qualifier) ir.Declaration {
	fset := e.pkg.Fset
	sig := fn.Type().(*types.Signature)
	d := ir.Declaration{
		Service: service,
		Name:    fn.Name(),
		Source:  fset.Position(fn.Pos()),
	}

	m := directive.ParseMethod(fset, doc, d.QualifiedName(), &d.Diagnostics)
	d.Markers, d.Headers, d.Passthrough = m.Markers, m.Headers, m.Passthrough

	params := sig.Params()
	for i := range params.Len() {
		v := params.At(i)
		d.Params = append(d.Params, ir.ParameterDescriptor{
			Name:     v.Name(),
			Type:     e.typeRef(v.Type(), q),
			Variadic: sig.Variadic() && i == params.Len()-1,
			Source:   fset.Position(v.Pos()),
		})
	}
	d.Return = e.returnType(sig.Results(), q)
	return d
}

func (e *extractor) returnType(results *types.Tuple, q *qualifier) ir.ReturnType {
	ret := ir.ReturnType{Expr: tupleString(results, q)}
	switch results.Len() {
	case 0:
		ret.Reason = "no results, want error, (T, error) or *restahead.Future[T]"
	case 1:
		t := results.At(0).Type()
		if isError(t) {
			ret.Shape = ir.ShapeError
			return ret
		}
		if arg, ok := e.futureArg(t); ok {
			ret.Shape = ir.ShapeFuture
			ret.Value = e.typeRef(arg, q)
			return ret
		}
		ret.Reason = "a single result must be error or *restahead.Future[T]"
	case 2:
		if !isError(results.At(1).Type()) {
			ret.Reason = "the second result must be error"
			return ret
		}
		if arg, ok := e.futureArg(results.At(0).Type()); ok {
			ret.Reason = fmt.Sprintf("return *restahead.Future[%s] alone, failures travel in the future", types.TypeString(arg, q.qualify))
			return ret
		}
		ret.Shape = ir.ShapeValueError
		ret.Value = e.typeRef(results.At(0).Type(), q)
	default:
		ret.Reason = "too many results"
	}
	return ret
}

func tupleString(t *types.Tuple, q *qualifier) string {
	switch t.Len() {
	case 0:
		return ""
	case 1:
		return types.TypeString(t.At(0).Type(), q.qualify)
	}
	parts := make([]string, t.Len())
	for i := range t.Len() {
		parts[i] = types.TypeString(t.At(i).Type(), q.qualify)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
