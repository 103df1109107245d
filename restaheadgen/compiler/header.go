package compiler

import (
	"errors"
	"fmt"

	"github.com/broady/restahead/restaheadgen/ir"
	"golang.org/x/net/http/httpguts"
)

var (
	// ErrInvalidHeaderName is returned by [ValidateHeader] for names that are
	// not HTTP tokens.
	ErrInvalidHeaderName = errors.New("invalid header name")

	// ErrInvalidHeaderType is returned by [ValidateHeader] for parameters that
	// do not convert to header text.
	ErrInvalidHeaderType = errors.New("invalid header type")
)

// ValidateHeader binds p to the header called name.
//
// Scalars (strings, booleans, integers, floats, fmt.Stringer implementations
// and named types over those) produce one header entry. Slices, arrays and
// variadic parameters of scalars produce one entry per element and are
// MultiValued.
func ValidateHeader(name string, p ir.ParameterDescriptor) (ir.HeaderBinding, error) {
	if name == "" || !httpguts.ValidHeaderFieldName(name) {
		return ir.HeaderBinding{}, fmt.Errorf("%w: %q", ErrInvalidHeaderName, name)
	}

	binding := ir.HeaderBinding{HeaderName: name, ParameterName: p.Name}
	switch {
	case p.Type.Kind.Scalar():
		binding.Elem = p.Type
	case p.Type.Kind == ir.KindSequence && p.Type.Elem != nil && p.Type.Elem.Kind.Scalar():
		binding.MultiValued = true
		binding.Elem = *p.Type.Elem
	default:
		return ir.HeaderBinding{}, fmt.Errorf("%w: %s cannot be converted to header text", ErrInvalidHeaderType, describeType(p))
	}
	return binding, nil
}

func describeType(p ir.ParameterDescriptor) string {
	if p.Variadic && p.Type.Elem != nil {
		return "..." + p.Type.Elem.Expr
	}
	return p.Type.Expr
}
