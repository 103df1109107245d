package ir

import "github.com/broady/restahead"

// HeaderBinding binds a parameter to a request header.
type HeaderBinding struct {
	HeaderName    string
	ParameterName string

	// MultiValued is set for sequence parameters: one header entry is added
	// per element, in element order.
	MultiValued bool

	// Elem is the type of a single value: the parameter type, or its element
	// type when MultiValued.
	Elem TypeRef
}

// RequestSpecification is a validated declaration, ready for emission.
type RequestSpecification struct {
	Name       string
	Binding    VerbBinding
	Parameters []ParameterDescriptor
	Headers    []HeaderBinding

	// Context is the parameter carrying the call context, if declared.
	Context *ParameterDescriptor

	Passthrough restahead.Passthrough
}

// ConversionCategory is what a call produces from the response.
type ConversionCategory int

const (
	// Void discards the response.
	Void ConversionCategory = iota + 1
	// RawResponse hands the response over as is.
	RawResponse
	// ConvertedValue decodes the body of a successful response.
	ConvertedValue
)

func (c ConversionCategory) String() string {
	switch c {
	case Void:
		return "void"
	case RawResponse:
		return "raw"
	case ConvertedValue:
		return "converted"
	default:
		return "unknown"
	}
}

// ConversionMode is how the result is delivered.
type ConversionMode int

const (
	Blocking ConversionMode = iota + 1
	Async
)

func (m ConversionMode) String() string {
	switch m {
	case Blocking:
		return "blocking"
	case Async:
		return "async"
	default:
		return "unknown"
	}
}

// ConversionPlan is derived from the declared return type.
type ConversionPlan struct {
	Category ConversionCategory
	Mode     ConversionMode

	// Target is the decoded type for ConvertedValue.
	Target TypeRef
}
