package restahead

import (
	"fmt"
	"net/http"
	"strings"
)

// Verb is the HTTP method of a request.
type Verb int

const (
	MethodGet Verb = iota + 1
	MethodPost
	MethodPut
	MethodPatch
	MethodDelete
	MethodHead
	MethodOptions
)

// String returns the HTTP method name, e.g. "DELETE".
func (v Verb) String() string {
	switch v {
	case MethodGet:
		return http.MethodGet
	case MethodPost:
		return http.MethodPost
	case MethodPut:
		return http.MethodPut
	case MethodPatch:
		return http.MethodPatch
	case MethodDelete:
		return http.MethodDelete
	case MethodHead:
		return http.MethodHead
	case MethodOptions:
		return http.MethodOptions
	default:
		return fmt.Sprintf("Verb(%d)", int(v))
	}
}

// Valid reports whether v is one of the declared methods.
func (v Verb) Valid() bool {
	return v >= MethodGet && v <= MethodOptions
}

// ParseVerb parses an HTTP method name, ignoring case.
func ParseVerb(s string) (Verb, error) {
	switch strings.ToUpper(s) {
	case http.MethodGet:
		return MethodGet, nil
	case http.MethodPost:
		return MethodPost, nil
	case http.MethodPut:
		return MethodPut, nil
	case http.MethodPatch:
		return MethodPatch, nil
	case http.MethodDelete:
		return MethodDelete, nil
	case http.MethodHead:
		return MethodHead, nil
	case http.MethodOptions:
		return MethodOptions, nil
	default:
		return 0, fmt.Errorf("unsupported HTTP method %q", s)
	}
}
