package compiler

import (
	"errors"
	"testing"

	"github.com/broady/restahead/restaheadgen/ir"
)

func TestValidateHeader(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		param       ir.ParameterDescriptor
		wantErr     error
		wantMulti   bool
		wantElemExp string
	}{
		{"string", "Accept", param("accept", stringType), nil, false, "string"},
		{"named string", "Accept", param("accept", ir.TypeRef{Expr: "MediaType", Kind: ir.KindString}), nil, false, "MediaType"},
		{"bool", "X-Debug", param("debug", ir.TypeRef{Expr: "bool", Kind: ir.KindBool}), nil, false, "bool"},
		{"int", "X-Limit", param("limit", intType), nil, false, "int"},
		{"uint", "X-Limit", param("limit", ir.TypeRef{Expr: "uint16", Kind: ir.KindUint}), nil, false, "uint16"},
		{"float", "X-Ratio", param("ratio", ir.TypeRef{Expr: "float32", Kind: ir.KindFloat, Bits: 32}), nil, false, "float32"},
		{"stringer", "X-Wait", param("wait", ir.TypeRef{Expr: "time.Duration", Kind: ir.KindStringer}), nil, false, "time.Duration"},
		{"slice", "Accept", param("accept", stringSlice), nil, true, "string"},
		{"array", "Accept", param("accept", seq("[2]int", intType)), nil, true, "int"},
		{"variadic", "Accept", variadic("accept", stringType), nil, true, "string"},
		{"nested slice", "Accept", param("accept", seq("[][]string", stringSlice)), ErrInvalidHeaderType, false, ""},
		{"struct", "Accept", param("accept", opaqueType), ErrInvalidHeaderType, false, ""},
		{"context", "Accept", param("ctx", ctxType), ErrInvalidHeaderType, false, ""},
		{"slice of structs", "Accept", param("accept", seq("[]Slideshow", opaqueType)), ErrInvalidHeaderType, false, ""},
		{"empty name", "", param("accept", stringType), ErrInvalidHeaderName, false, ""},
		{"space in name", "Bad Header", param("accept", stringType), ErrInvalidHeaderName, false, ""},
		{"colon in name", "Accept:", param("accept", stringType), ErrInvalidHeaderName, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateHeader(tt.header, tt.param)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.HeaderName != tt.header || got.ParameterName != tt.param.Name {
				t.Errorf("binding = %+v", got)
			}
			if got.MultiValued != tt.wantMulti {
				t.Errorf("MultiValued = %v, want %v", got.MultiValued, tt.wantMulti)
			}
			if got.Elem.Expr != tt.wantElemExp {
				t.Errorf("Elem = %q, want %q", got.Elem.Expr, tt.wantElemExp)
			}
		})
	}
}

func TestValidateHeader_VariadicMessage(t *testing.T) {
	_, err := ValidateHeader("Accept", variadic("accept", opaqueType))
	if err == nil || err.Error() != "invalid header type: ...Slideshow cannot be converted to header text" {
		t.Errorf("err = %v", err)
	}
}
