package compiler

import (
	"go/parser"
	"go/token"
	"slices"
	"strings"
	"testing"

	"github.com/broady/restahead"
	"github.com/broady/restahead/restaheadgen/ir"
)

func httpBinService(decls ...ir.Declaration) *ir.Service {
	return &ir.Service{
		Name:         "HttpBinService",
		Package:      ir.PackageInfo{Name: "httpbin", Path: "example.com/httpbin", Dir: "/src/httpbin"},
		File:         "/src/httpbin/api.go",
		Source:       at(3),
		Declarations: decls,
		Imports:      []ir.Import{{Name: "context", Path: "context"}},
	}
}

func compile(t *testing.T, svc *ir.Service) string {
	t.Helper()
	unit, diags := New().Compile(svc)
	if diags.HasErrors() {
		t.Fatalf("diagnostics:\n%s", diags)
	}
	if !unit.Complete {
		t.Fatal("unit should be complete")
	}
	if _, err := parser.ParseFile(token.NewFileSet(), unit.Filename, unit.Content, parser.AllErrors); err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, unit.Content)
	}
	return string(unit.Content)
}

func assertLines(t *testing.T, src string, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if !strings.Contains(src, line) {
			t.Errorf("generated code is missing\n\t%s\n--- code ---\n%s", line, src)
		}
	}
}

func TestCompile_File(t *testing.T) {
	src := compile(t, httpBinService(
		decl("Delete", []ir.Marker{verb("delete", "/search")}, []ir.ParameterDescriptor{param("ctx", ctxType)}, nil, returnsError),
	))

	if !strings.HasPrefix(src, "// Code generated by restahead. DO NOT EDIT.\n// Source: api.go\n\npackage httpbin\n") {
		t.Errorf("unexpected header:\n%s", src)
	}
	assertLines(t, src,
		"\t\"context\"\n\n\t\"github.com/broady/restahead\"\n",
		"type httpBinServiceImpl struct {",
		"var _ HttpBinService = (*httpBinServiceImpl)(nil)",
		"// NewHttpBinService returns an implementation of HttpBinService that sends its calls\n",
		"func NewHttpBinService(client restahead.Client, converter restahead.Converter) HttpBinService {",
		"return &httpBinServiceImpl{client: client, converter: converter}",
		"func (s *httpBinServiceImpl) Delete(ctx context.Context) error {",
		"ctx = restahead.WithCall(ctx, \"HttpBinService\", \"Delete\")",
		"httpRequest := restahead.NewRequest(restahead.MethodDelete, \"/search\")",
		"response := s.client.Execute(ctx, httpRequest)",
		"_, err := restahead.Await(ctx, restahead.Discard(response), restahead.PassNone)",
		"return err",
	)
	if strings.Contains(src, "strconv") {
		t.Error("strconv imported without numeric headers")
	}
}

func TestCompile_Plans(t *testing.T) {
	tests := []struct {
		name string
		ret  ir.ReturnType
		want []string
	}{
		{"raw", returnsResponse, []string{
			") (*restahead.Response, error) {",
			"return restahead.Await(ctx, response, restahead.PassNone)",
		}},
		{"converted", returnsValue(opaqueType), []string{
			") (Slideshow, error) {",
			"converted := restahead.Convert[Slideshow](response, s.converter)",
			"return restahead.Await(ctx, converted, restahead.PassNone)",
		}},
		{"future void", returnsFuture(emptyType), []string{
			") *restahead.Future[struct{}] {",
			"return restahead.Normalized(restahead.Discard(response), restahead.PassNone)",
		}},
		{"future raw", returnsFuture(respType), []string{
			"return restahead.Normalized(response, restahead.PassNone)",
		}},
		{"future converted", returnsFuture(opaqueType), []string{
			") *restahead.Future[Slideshow] {",
			"return restahead.Normalized(restahead.Convert[Slideshow](response, s.converter), restahead.PassNone)",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := compile(t, httpBinService(
				decl("Get", []ir.Marker{verb("get", "/get")}, []ir.ParameterDescriptor{param("ctx", ctxType)}, nil, tt.ret),
			))
			assertLines(t, src, tt.want...)
		})
	}
}

func TestCompile_Headers(t *testing.T) {
	params := []ir.ParameterDescriptor{
		param("ctx", ctxType),
		param("token", ir.TypeRef{Expr: "Token", Kind: ir.KindString}),
		param("debug", ir.TypeRef{Expr: "bool", Kind: ir.KindBool}),
		param("limit", intType),
		param("size", ir.TypeRef{Expr: "uint64", Kind: ir.KindUint}),
		param("ratio", ir.TypeRef{Expr: "float32", Kind: ir.KindFloat, Bits: 32}),
		param("wait", ir.TypeRef{Expr: "time.Duration", Kind: ir.KindStringer}),
		param("ids", seq("[]int", intType)),
		variadic("accept", stringType),
	}
	headers := []ir.HeaderMarker{
		header("token", "X-Token"),
		header("debug", "X-Debug"),
		header("limit", "X-Limit"),
		header("size", "X-Size"),
		header("ratio", "X-Ratio"),
		header("wait", "X-Wait"),
		header("ids", "X-Id"),
		header("accept", "Accept"),
	}
	svc := httpBinService(decl("Get", []ir.Marker{verb("get", "/get")}, params, headers, returnsError))
	svc.Imports = append(svc.Imports, ir.Import{Name: "time", Path: "time"})

	src := compile(t, svc)
	assertLines(t, src,
		"\t\"context\"\n\t\"strconv\"\n\t\"time\"\n",
		"func (s *httpBinServiceImpl) Get(ctx context.Context, token Token, debug bool, limit int, size uint64, ratio float32, wait time.Duration, ids []int, accept ...string) error {",
		"for _, headerItem := range accept {\n\t\thttpRequest.AddHeader(\"Accept\", headerItem)\n\t}",
		"httpRequest.AddHeader(\"X-Token\", string(token))",
		"httpRequest.AddHeader(\"X-Debug\", strconv.FormatBool(debug))",
		"httpRequest.AddHeader(\"X-Limit\", strconv.FormatInt(int64(limit), 10))",
		"httpRequest.AddHeader(\"X-Size\", strconv.FormatUint(size, 10))",
		"httpRequest.AddHeader(\"X-Ratio\", strconv.FormatFloat(float64(ratio), 'g', -1, 32))",
		"httpRequest.AddHeader(\"X-Wait\", wait.String())",
		"for _, headerItem := range ids {\n\t\thttpRequest.AddHeader(\"X-Id\", strconv.FormatInt(int64(headerItem), 10))\n\t}",
	)

	// Header statements follow the declared order.
	order := []string{`"X-Token"`, `"X-Debug"`, `"X-Limit"`, `"X-Size"`, `"X-Ratio"`, `"X-Wait"`, `"X-Id"`, `"Accept"`}
	last := -1
	for _, h := range order {
		i := strings.Index(src, "httpRequest.AddHeader("+h)
		if i < last {
			t.Errorf("header %s emitted out of order", h)
		}
		last = i
	}
}

func TestCompile_NoContextParameter(t *testing.T) {
	svc := httpBinService(decl("Get", []ir.Marker{verb("get", "/get")}, nil, nil, returnsValue(stringType)))
	svc.Imports = nil

	src := compile(t, svc)
	assertLines(t, src,
		"\t\"context\"\n",
		"func (s *httpBinServiceImpl) Get() (string, error) {",
		"ctx := context.Background()\n\tctx = restahead.WithCall(ctx, \"HttpBinService\", \"Get\")",
		"converted := restahead.Convert[string](response, s.converter)",
	)
}

func TestCompile_NamedContextAndPassthrough(t *testing.T) {
	d := decl("Get", []ir.Marker{verb("get", "/get")}, []ir.ParameterDescriptor{param("c", ctxType)}, nil, returnsResponse)
	d.Passthrough = restahead.PassTransport | restahead.PassCanceled

	src := compile(t, httpBinService(d))
	assertLines(t, src,
		"c = restahead.WithCall(c, \"HttpBinService\", \"Get\")",
		"response := s.client.Execute(c, httpRequest)",
		"return restahead.Await(c, response, restahead.PassTransport|restahead.PassCanceled)",
	)
}

func TestCompile_Incomplete(t *testing.T) {
	svc := httpBinService(
		decl("Delete", []ir.Marker{verb("delete", "/search")}, nil, nil, returnsError),
		decl("Get", []ir.Marker{verb("get", "/get")}, []ir.ParameterDescriptor{param("accept", stringType)}, nil, returnsError),
		decl("Post", []ir.Marker{verb("post", "/post")}, nil, nil, ir.ReturnType{Shape: ir.ShapeInvalid, Expr: "string", Reason: "missing error result"}),
	)

	unit, diags := New().Compile(svc)
	if unit.Complete || unit.Content != nil {
		t.Fatal("a service with invalid declarations must not produce code")
	}
	want := []string{ir.CodeUnknownParameter, ir.CodeUnsupportedReturn}
	if got := diags.Codes(); !slices.Equal(got, want) {
		t.Errorf("codes = %v, want %v", got, want)
	}
	if diags[1].Declaration != "HttpBinService.Post" {
		t.Errorf("diag = %+v", diags[1])
	}
}

func TestCompile_ServiceDiagnostics(t *testing.T) {
	svc := httpBinService()
	svc.Diagnostics.Errorf(ir.CodeEmbeddedInterface, at(4), "HttpBinService", "", "embedded interfaces are not supported")

	unit, diags := New().Compile(svc)
	if unit.Complete {
		t.Error("unit should be incomplete")
	}
	if len(diags) != 1 || diags[0].Code != ir.CodeEmbeddedInterface {
		t.Errorf("diags = %v", diags)
	}
}

func TestCompileAll_Filenames(t *testing.T) {
	a := httpBinService()
	b := httpBinService()
	b.Name = "StatusService"
	c := httpBinService()
	c.Name = "Other"
	c.File = "/src/httpbin/other.go"

	units, diags := New().CompileAll([]*ir.Service{a, b, c})
	if diags.HasErrors() {
		t.Fatal(diags)
	}
	var got []string
	for _, u := range units {
		got = append(got, u.Filename)
	}
	want := []string{"api_httpbinservice_restahead.go", "api_statusservice_restahead.go", "other_restahead.go"}
	if !slices.Equal(got, want) {
		t.Errorf("filenames = %v, want %v", got, want)
	}
	if p := units[2].Path(); p != "/src/httpbin/other_restahead.go" {
		t.Errorf("path = %q", p)
	}
}

func TestCompile_ImportAlias(t *testing.T) {
	svc := httpBinService(decl("Get", []ir.Marker{verb("get", "/get")}, []ir.ParameterDescriptor{param("ctx", ctxType)}, nil,
		returnsValue(ir.TypeRef{Expr: "yaml.Node", Kind: ir.KindOpaque})))
	svc.Imports = append(svc.Imports, ir.Import{Name: "yaml", Path: "gopkg.in/yaml.v3"})
	svc.Runtime = "example.com/rt/restahead"

	src := compile(t, svc)
	assertLines(t, src,
		"\t\"example.com/rt/restahead\"\n\tyaml \"gopkg.in/yaml.v3\"\n",
		"converted := restahead.Convert[yaml.Node](response, s.converter)",
	)
}

func TestCompile_ParameterShadowsImport(t *testing.T) {
	target := ir.TypeRef{Expr: "*model.Thing", Kind: ir.KindOpaque}
	svc := httpBinService(decl("Get", []ir.Marker{verb("get", "/get")},
		[]ir.ParameterDescriptor{param("ctx", ctxType), param("model", stringType)},
		[]ir.HeaderMarker{header("model", "X-Model")},
		returnsValue(target)))
	svc.Imports = append(svc.Imports, ir.Import{Name: "model", Path: "example.com/app/model"})

	unit, diags := New().Compile(svc)
	if unit.Complete || unit.Content != nil {
		t.Fatalf("unit should not be written:\n%s", unit.Content)
	}
	if got := diags.Codes(); !slices.Equal(got, []string{ir.CodeReservedName}) {
		t.Errorf("codes = %v", got)
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		iface, impl, ctor string
	}{
		{"HttpBinService", "httpBinServiceImpl", "NewHttpBinService"},
		{"HTTPBinService", "httpBinServiceImpl", "NewHTTPBinService"},
		{"API", "apiImpl", "NewAPI"},
		{"client", "clientImpl", "newClient"},
	}
	for _, tt := range tests {
		if got := implName(tt.iface); got != tt.impl {
			t.Errorf("implName(%q) = %q, want %q", tt.iface, got, tt.impl)
		}
		if got := constructorName(tt.iface); got != tt.ctor {
			t.Errorf("constructorName(%q) = %q, want %q", tt.iface, got, tt.ctor)
		}
	}
}
