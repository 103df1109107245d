package compiler

import (
	"go/token"

	"github.com/broady/restahead/restaheadgen/ir"
)

var (
	stringType  = ir.TypeRef{Expr: "string", Kind: ir.KindString}
	intType     = ir.TypeRef{Expr: "int", Kind: ir.KindInt}
	ctxType     = ir.TypeRef{Expr: "context.Context", Kind: ir.KindContext}
	respType    = ir.TypeRef{Expr: "*restahead.Response", Kind: ir.KindResponse}
	emptyType   = ir.TypeRef{Expr: "struct{}", Kind: ir.KindEmpty}
	opaqueType  = ir.TypeRef{Expr: "Slideshow", Kind: ir.KindOpaque}
	stringSlice = seq("[]string", stringType)
)

func seq(expr string, elem ir.TypeRef) ir.TypeRef {
	return ir.TypeRef{Expr: expr, Kind: ir.KindSequence, Elem: &elem}
}

func at(line int) token.Position {
	return token.Position{Filename: "api.go", Line: line, Column: 2}
}

func param(name string, t ir.TypeRef) ir.ParameterDescriptor {
	return ir.ParameterDescriptor{Name: name, Type: t, Source: at(10)}
}

func variadic(name string, elem ir.TypeRef) ir.ParameterDescriptor {
	return ir.ParameterDescriptor{Name: name, Type: seq("[]"+elem.Expr, elem), Variadic: true, Source: at(10)}
}

func verb(name, path string) ir.Marker {
	return ir.Marker{Name: name, Arg: path, Source: at(5)}
}

func header(param, name string) ir.HeaderMarker {
	return ir.HeaderMarker{Parameter: param, Header: name, Source: at(6)}
}

var (
	returnsError    = ir.ReturnType{Shape: ir.ShapeError, Expr: "error"}
	returnsResponse = ir.ReturnType{Shape: ir.ShapeValueError, Value: respType, Expr: "(*restahead.Response, error)"}
)

func returnsValue(t ir.TypeRef) ir.ReturnType {
	return ir.ReturnType{Shape: ir.ShapeValueError, Value: t, Expr: "(" + t.Expr + ", error)"}
}

func returnsFuture(t ir.TypeRef) ir.ReturnType {
	return ir.ReturnType{Shape: ir.ShapeFuture, Value: t, Expr: "*restahead.Future[" + t.Expr + "]"}
}

func decl(name string, markers []ir.Marker, params []ir.ParameterDescriptor, headers []ir.HeaderMarker, ret ir.ReturnType) ir.Declaration {
	return ir.Declaration{
		Service: "HttpBinService",
		Name:    name,
		Source:  at(5),
		Markers: markers,
		Params:  params,
		Headers: headers,
		Return:  ret,
	}
}
