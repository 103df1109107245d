package ir

import (
	"slices"
	"strings"

	"github.com/broady/restahead"
)

// VerbMarkers maps the name of each verb directive to its verb.
// A method carries exactly one of them:
//
//	//restahead:get /path
var VerbMarkers = map[string]restahead.Verb{
	"get":     restahead.MethodGet,
	"post":    restahead.MethodPost,
	"put":     restahead.MethodPut,
	"patch":   restahead.MethodPatch,
	"delete":  restahead.MethodDelete,
	"head":    restahead.MethodHead,
	"options": restahead.MethodOptions,
}

// VerbMarkerNames returns the verb directive names, sorted.
func VerbMarkerNames() []string {
	names := make([]string, 0, len(VerbMarkers))
	for name := range VerbMarkers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// VerbBinding is the resolved verb and path of a declaration.
type VerbBinding struct {
	Verb restahead.Verb
	Path string
}

// Constant returns the name of the runtime constant for the verb, e.g. "MethodGet".
func (b VerbBinding) Constant() string {
	s := strings.ToLower(b.Verb.String())
	return "Method" + strings.ToUpper(s[:1]) + s[1:]
}
