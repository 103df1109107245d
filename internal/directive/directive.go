// Package directive parses restahead directives from Go doc comments.
//
// Directives are line comments without a space after the slashes:
//
//	//restahead:client                    on an interface type
//	//restahead:get /path                 one verb directive per method
//	//restahead:header accept Accept      binds parameter accept to header Accept
//	//restahead:passthrough transport canceled
//
// Verb directives are get, post, put, patch, delete, head and options.
package directive

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/broady/restahead"
	"github.com/broady/restahead/restaheadgen/ir"
)

// Prefix starts every directive.
const Prefix = "//restahead:"

const (
	KindClient      = "client"
	KindHeader      = "header"
	KindPassthrough = "passthrough"
)

// Directive is one directive line.
type Directive struct {
	Name string
	Args []string
	Pos  token.Pos
}

// Find returns the directives in cg, in order.
func Find(cg *ast.CommentGroup) []Directive {
	if cg == nil {
		return nil
	}
	var out []Directive
	for _, c := range cg.List {
		text, ok := strings.CutPrefix(c.Text, Prefix)
		if !ok {
			continue
		}
		fields := strings.Fields(text)
		d := Directive{Pos: c.Pos()}
		if len(fields) > 0 && !strings.HasPrefix(text, " ") {
			d.Name, d.Args = fields[0], fields[1:]
		}
		out = append(out, d)
	}
	return out
}

// IsClient reports whether cg marks an interface with //restahead:client.
func IsClient(cg *ast.CommentGroup) bool {
	for _, d := range Find(cg) {
		if d.Name == KindClient {
			return true
		}
	}
	return false
}

// CheckInterface reports directives in the doc comment of a client interface
// other than //restahead:client.
func CheckInterface(fset *token.FileSet, cg *ast.CommentGroup, service string, diags *ir.Diagnostics) {
	for _, d := range Find(cg) {
		pos := fset.Position(d.Pos)
		switch {
		case d.Name == KindClient:
			if len(d.Args) > 0 {
				diags.Errorf(ir.CodeMalformedDirective, pos, service, "", "//restahead:client takes no arguments")
			}
		case known(d.Name):
			diags.Errorf(ir.CodeMalformedDirective, pos, service, "", "//restahead:%s belongs on an interface method", d.Name)
		default:
			diags.Errorf(ir.CodeUnknownDirective, pos, service, "", "unknown directive %s%s", Prefix, d.Name)
		}
	}
}

// Method holds the directives of one interface method.
type Method struct {
	Markers     []ir.Marker
	Headers     []ir.HeaderMarker
	Passthrough restahead.Passthrough
}

// ParseMethod reads the directives of a method doc comment. Problems are
// added to diags under the qualified method name.
func ParseMethod(fset *token.FileSet, cg *ast.CommentGroup, qname string, diags *ir.Diagnostics) Method {
	var m Method
	for _, d := range Find(cg) {
		pos := fset.Position(d.Pos)
		if _, ok := ir.VerbMarkers[d.Name]; ok {
			if len(d.Args) > 1 {
				diags.Errorf(ir.CodeMalformedDirective, pos, qname, "", "//restahead:%s takes a single path, got %d arguments", d.Name, len(d.Args))
				continue
			}
			marker := ir.Marker{Name: d.Name, Source: pos}
			if len(d.Args) == 1 {
				marker.Arg = d.Args[0]
			}
			m.Markers = append(m.Markers, marker)
			continue
		}

		switch d.Name {
		case KindHeader:
			if len(d.Args) != 2 {
				diags.Errorf(ir.CodeMalformedDirective, pos, qname, "", "want //restahead:header <parameter> <Header-Name>")
				continue
			}
			m.Headers = append(m.Headers, ir.HeaderMarker{Parameter: d.Args[0], Header: d.Args[1], Source: pos})

		case KindPassthrough:
			if len(d.Args) == 0 {
				diags.Errorf(ir.CodeMalformedDirective, pos, qname, "", "want //restahead:passthrough followed by transport and/or canceled")
				continue
			}
			for _, arg := range d.Args {
				switch arg {
				case "transport":
					m.Passthrough |= restahead.PassTransport
				case "canceled":
					m.Passthrough |= restahead.PassCanceled
				default:
					diags.Errorf(ir.CodeMalformedDirective, pos, qname, "", "unknown passthrough kind %q, want transport or canceled", arg)
				}
			}

		case KindClient:
			diags.Errorf(ir.CodeMalformedDirective, pos, qname, "", "//restahead:client belongs on the interface type")

		default:
			diags.Errorf(ir.CodeUnknownDirective, pos, qname, "", "unknown directive %s%s", Prefix, d.Name)
		}
	}
	return m
}

func known(name string) bool {
	if _, ok := ir.VerbMarkers[name]; ok {
		return true
	}
	return name == KindHeader || name == KindPassthrough || name == KindClient
}
