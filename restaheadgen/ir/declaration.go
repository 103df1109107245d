package ir

import (
	"go/token"

	"github.com/broady/restahead"
)

// PackageInfo describes the package declaring a service.
type PackageInfo struct {
	Name string
	Path string
	Dir  string
}

// Service is an interface marked with //restahead:client.
type Service struct {
	// Name is the interface name.
	Name string

	Package PackageInfo

	// File is the path of the source file declaring the interface.
	File string

	Source token.Position

	// Runtime is the import path of the runtime package. Empty means RuntimePath.
	Runtime string

	// Declarations holds one entry per interface method, in source order.
	Declarations []Declaration

	// Imports lists the packages referenced by the type expressions of the
	// declarations, other than the runtime package.
	Imports []Import

	// Diagnostics holds problems found on the interface itself.
	Diagnostics Diagnostics
}

// RuntimePath returns the runtime import path of the service.
func (s *Service) RuntimePath() string {
	if s.Runtime == "" {
		return RuntimePath
	}
	return s.Runtime
}

// Marker is a verb directive on a declaration.
type Marker struct {
	Name   string // e.g. "get"
	Arg    string // the path as written
	Source token.Position
}

// HeaderMarker is a //restahead:header directive.
type HeaderMarker struct {
	Parameter string
	Header    string
	Source    token.Position
}

// ParameterDescriptor is a formal parameter of a declaration.
type ParameterDescriptor struct {
	// Name is the declared name; empty or "_" for unnamed parameters.
	Name string

	// Type is the parameter type. For variadic parameters it is the slice type.
	Type TypeRef

	Variadic bool

	Source token.Position
}

// Declaration is the raw description of one interface method, as found in
// source and before any validation.
type Declaration struct {
	Service string
	Name    string
	Source  token.Position

	Markers     []Marker
	Params      []ParameterDescriptor
	Headers     []HeaderMarker
	Passthrough restahead.Passthrough
	Return      ReturnType

	// Diagnostics holds problems found while reading the directives.
	Diagnostics Diagnostics
}

// QualifiedName returns "Service.Method".
func (d *Declaration) QualifiedName() string {
	return d.Service + "." + d.Name
}
