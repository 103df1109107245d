package directive

import (
	"go/ast"
	"go/parser"
	"go/token"
	"slices"
	"testing"

	"github.com/broady/restahead"
	"github.com/broady/restahead/restaheadgen/ir"
)

// methodDoc parses src and returns the doc comment of the first method of
// the first interface.
func methodDoc(t *testing.T, src string) (*token.FileSet, *ast.CommentGroup) {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "api.go", src, parser.ParseComments)
	if err != nil {
		t.Fatal(err)
	}
	var doc *ast.CommentGroup
	ast.Inspect(f, func(n ast.Node) bool {
		if it, ok := n.(*ast.InterfaceType); ok && doc == nil {
			doc = it.Methods.List[0].Doc
			return false
		}
		return true
	})
	return fset, doc
}

func TestFind(t *testing.T) {
	_, doc := methodDoc(t, `package api

type S interface {
	// Get fetches.
	//
	//restahead:get /get
	//restahead:header accept Accept
	// restahead:post /ignored (not a directive)
	//restahead:
	Get() error
}
`)
	got := Find(doc)
	if len(got) != 3 {
		t.Fatalf("got %d directives: %+v", len(got), got)
	}
	if got[0].Name != "get" || !slices.Equal(got[0].Args, []string{"/get"}) {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Name != "header" || !slices.Equal(got[1].Args, []string{"accept", "Accept"}) {
		t.Errorf("second = %+v", got[1])
	}
	if got[2].Name != "" {
		t.Errorf("empty directive = %+v", got[2])
	}
	if Find(nil) != nil {
		t.Error("nil comment group should have no directives")
	}
}

func TestParseMethod(t *testing.T) {
	fset, doc := methodDoc(t, `package api

type S interface {
	//restahead:get /get
	//restahead:header first X-First
	//restahead:header accept Accept
	//restahead:passthrough transport canceled
	Get() error
}
`)
	var diags ir.Diagnostics
	m := ParseMethod(fset, doc, "S.Get", &diags)
	if len(diags) != 0 {
		t.Fatalf("diags = %s", diags)
	}
	if len(m.Markers) != 1 || m.Markers[0].Name != "get" || m.Markers[0].Arg != "/get" {
		t.Errorf("markers = %+v", m.Markers)
	}
	if m.Markers[0].Source.Line != 4 || m.Markers[0].Source.Filename != "api.go" {
		t.Errorf("marker position = %v", m.Markers[0].Source)
	}
	if len(m.Headers) != 2 || m.Headers[0].Parameter != "first" || m.Headers[1].Header != "Accept" {
		t.Errorf("headers = %+v", m.Headers)
	}
	if m.Passthrough != restahead.PassTransport|restahead.PassCanceled {
		t.Errorf("passthrough = %v", m.Passthrough)
	}
}

func TestParseMethod_Problems(t *testing.T) {
	fset, doc := methodDoc(t, `package api

type S interface {
	//restahead:get
	//restahead:post /a /b
	//restahead:header accept
	//restahead:passthrough
	//restahead:passthrough network
	//restahead:query q
	//restahead:client
	//restahead:GET /upper
	Get() error
}
`)
	var diags ir.Diagnostics
	m := ParseMethod(fset, doc, "S.Get", &diags)

	want := []string{
		ir.CodeMalformedDirective, // post with two paths
		ir.CodeMalformedDirective, // header without name
		ir.CodeMalformedDirective, // empty passthrough
		ir.CodeMalformedDirective, // unknown passthrough kind
		ir.CodeUnknownDirective,   // query
		ir.CodeMalformedDirective, // client on a method
		ir.CodeUnknownDirective,   // GET is case sensitive
	}
	if got := diags.Codes(); !slices.Equal(got, want) {
		t.Errorf("codes = %v\nwant %v", got, want)
	}
	// A verb without a path is kept; the path validator reports it.
	if len(m.Markers) != 1 || m.Markers[0].Arg != "" {
		t.Errorf("markers = %+v", m.Markers)
	}
	if diags[0].Declaration != "S.Get" || diags[0].Source.Line != 5 {
		t.Errorf("diag = %+v", diags[0])
	}
}

func TestInterfaceDirectives(t *testing.T) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "api.go", `package api

// S is a client.
//
//restahead:client
//restahead:get /nope
//restahead:retry 3
type S interface{}

// T is not.
type T interface{}
`, parser.ParseComments)
	if err != nil {
		t.Fatal(err)
	}
	s := f.Decls[0].(*ast.GenDecl).Doc
	tt := f.Decls[1].(*ast.GenDecl).Doc
	if !IsClient(s) || IsClient(tt) {
		t.Fatal("IsClient mismatch")
	}

	var diags ir.Diagnostics
	CheckInterface(fset, s, "S", &diags)
	want := []string{ir.CodeMalformedDirective, ir.CodeUnknownDirective}
	if got := diags.Codes(); !slices.Equal(got, want) {
		t.Errorf("codes = %v, want %v", got, want)
	}
}
