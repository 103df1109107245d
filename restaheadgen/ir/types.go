package ir

// RuntimePath is the import path of the runtime package generated code uses.
const RuntimePath = "github.com/broady/restahead"

// RuntimeName is the name generated code refers to the runtime package by.
const RuntimeName = "restahead"

// TypeKind classifies a type as far as code generation cares.
type TypeKind string

const (
	KindString   TypeKind = "string"
	KindBool     TypeKind = "bool"
	KindInt      TypeKind = "int"
	KindUint     TypeKind = "uint"
	KindFloat    TypeKind = "float"
	KindStringer TypeKind = "stringer" // has a String() string method
	KindSequence TypeKind = "sequence" // slice or array, see Elem
	KindContext  TypeKind = "context"  // context.Context
	KindResponse TypeKind = "response" // *restahead.Response
	KindEmpty    TypeKind = "empty"    // struct{}
	KindOpaque   TypeKind = "opaque"   // anything else
)

// Scalar reports whether values of the kind convert to a single header value.
func (k TypeKind) Scalar() bool {
	switch k {
	case KindString, KindBool, KindInt, KindUint, KindFloat, KindStringer:
		return true
	}
	return false
}

// TypeRef is a Go type as written in generated code, with its classification.
type TypeRef struct {
	// Expr is the type expression, qualified with the package names listed in
	// the service imports, e.g. "[]string" or "*api.Slideshow".
	Expr string

	Kind TypeKind

	// Elem is the element type of a sequence.
	Elem *TypeRef

	// Bits is the size of a float kind, 32 or 64.
	Bits int
}

// Import is a package imported by generated code.
type Import struct {
	Name string
	Path string
}

// ReturnShape is the overall form of a declared result list.
type ReturnShape int

const (
	ShapeInvalid    ReturnShape = iota
	ShapeError                  // error
	ShapeValueError             // (T, error)
	ShapeFuture                 // *restahead.Future[T]
)

func (s ReturnShape) String() string {
	switch s {
	case ShapeError:
		return "error"
	case ShapeValueError:
		return "(T, error)"
	case ShapeFuture:
		return "*restahead.Future[T]"
	default:
		return "invalid"
	}
}

// ReturnType is the declared result list of a method.
type ReturnType struct {
	Shape ReturnShape

	// Value is T for ShapeValueError and ShapeFuture.
	Value TypeRef

	// Expr is the result list as written in the method signature.
	Expr string

	// Reason explains why the shape is invalid.
	Reason string
}
