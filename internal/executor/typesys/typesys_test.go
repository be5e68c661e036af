package typesys

import (
	"strings"
	"testing"

	pkgerrors "polyrun/pkg/errors"
)

func TestParseTypeListOfInt32(t *testing.T) {
	got, err := ParseType("list<int32>")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := &TypeExpr{Base: List, Params: []*TypeExpr{{Base: Int32}}}
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestParseTypeCanonicalRoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"int32", "int32"},
		{"  STRING ", "string"},
		{"list < int64 >", "list<int64>"},
		{"map<int32,list<string>>", "map<int32, list<string>>"},
		{"Map< set<char> ,  map<bool,float64> >", "map<set<char>, map<bool, float64>>"},
		{"array<array<array<decimal>>>", "array<array<array<decimal>>>"},
		{"float32", "float32"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			typ, err := ParseType(tt.in)
			if err != nil {
				t.Fatalf("parse %q: %v", tt.in, err)
			}
			if typ.String() != tt.want {
				t.Fatalf("String() = %q, want %q", typ.String(), tt.want)
			}
			again, err := ParseType(typ.String())
			if err != nil {
				t.Fatalf("reparse canonical: %v", err)
			}
			if !again.Equal(typ) {
				t.Fatalf("canonical form does not round-trip")
			}
		})
	}
}

func TestParseTypeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"map arity", "map<int32>"},
		{"list without params", "list"},
		{"scalar with params", "int32<string>"},
		{"unknown keyword", "integer"},
		{"trailing", "int32 x"},
		{"missing close", "list<int32"},
		{"missing separator", "map<int32 string>"},
		{"empty", ""},
		{"too many params", "list<int32, int64>"},
		{"keyword prefix", "sets<int32>"},
		{"keyword with digits", "int320"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseType(tt.in)
			if err == nil {
				t.Fatalf("expected error for %q", tt.in)
			}
			if !pkgerrors.Is(err, pkgerrors.MalformedType) {
				t.Fatalf("code = %v, want MalformedType", pkgerrors.GetCode(err))
			}
		})
	}
}

func TestParseTypeRejectsKeywordPrefix(t *testing.T) {
	for _, in := range []string{"sets<int32>", "list<strings>", "bool_"} {
		_, err := ParseType(in)
		if err == nil || !strings.Contains(err.Error(), "unknown type keyword") {
			t.Fatalf("ParseType(%q) = %v, want unknown type keyword", in, err)
		}
	}
}

func TestParseTypeArityErrorDetails(t *testing.T) {
	_, err := ParseType("map<int32>")
	e := pkgerrors.GetError(err)
	if e.Detail("input") != "map<int32>" {
		t.Fatalf("input detail = %q", e.Detail("input"))
	}
	if e.Detail("position") == "" {
		t.Fatalf("missing position detail")
	}
}

func TestBaseTypeProperties(t *testing.T) {
	if Map.Arity() != 2 || List.Arity() != 1 || Decimal.Arity() != 0 {
		t.Fatalf("unexpected arity")
	}
	if !Int16.IsInteger() || Int16.IsFloat() || Int16.BitSize() != 16 {
		t.Fatalf("int16 properties wrong")
	}
	if !Float32.IsFloat() || !Float32.IsNumeric() || Float32.BitSize() != 32 {
		t.Fatalf("float32 properties wrong")
	}
	if !Decimal.IsNumeric() || Decimal.BitSize() != 0 {
		t.Fatalf("decimal properties wrong")
	}
	if String.IsNumeric() {
		t.Fatalf("string is not numeric")
	}
	if len(BaseTypes()) != 14 {
		t.Fatalf("BaseTypes() = %d entries", len(BaseTypes()))
	}
}

func TestParseValueUnbracedMap(t *testing.T) {
	typ := MustParseType("map<int32, string>")
	v, err := ParseValue(typ, "1:strut1,2:touwm1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	pairs, ok := v.(*Pairs)
	if !ok {
		t.Fatalf("got %T, want *Pairs", v)
	}
	want := [][2]string{{"1", "strut1"}, {"2", "touwm1"}}
	if len(pairs.Rows) != len(want) {
		t.Fatalf("rows = %d", len(pairs.Rows))
	}
	for i, row := range pairs.Rows {
		k, kok := row.Key.(*Scalar)
		val, vok := row.Value.(*Scalar)
		if !kok || !vok {
			t.Fatalf("row %d is not scalar/scalar", i)
		}
		if k.Text != want[i][0] || val.Text != want[i][1] {
			t.Fatalf("row %d = %s:%s", i, k.Text, val.Text)
		}
		if !k.Type.Equal(typ.Params[0]) || !val.Type.Equal(typ.Params[1]) {
			t.Fatalf("row %d types not taken from map parameters", i)
		}
	}
}

func TestParseValueShapes(t *testing.T) {
	tests := []struct {
		typ  string
		in   string
		dim  int
		want string
	}{
		{"int32", "42", 0, "42"},
		{"string", "hello, {world}", 0, "hello, {world}"},
		{"list<int32>", "{1, 2, 3}", 1, "{1,2,3}"},
		{"list<int32>", "1,2,3", 1, "{1,2,3}"},
		{"list<int32>", "{}", 1, "{}"},
		{"list<int32>", "", 1, "{}"},
		{"set<string>", `{"a,b", 'c'}`, 1, `{"a,b",'c'}`},
		{"list<list<int32>>", "{{1,2},{3}}", 1, "{{1,2},{3}}"},
		{"list<list<int32>>", "{1,2},{3}", 1, "{{1,2},{3}}"},
		{"map<string, list<int32>>", "{ a : {1} , b:{} }", 2, "{a:{1},b:{}}"},
		{"map<int32, map<int32, bool>>", "{1:{2:true}}", 2, "{1:{2:true}}"},
		{"map<int32, string>", "{}", 2, "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.typ+" "+tt.in, func(t *testing.T) {
			typ := MustParseType(tt.typ)
			v, err := ParseValue(typ, tt.in)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if v.Dimension() != tt.dim {
				t.Fatalf("dimension = %d, want %d", v.Dimension(), tt.dim)
			}
			if v.String() != tt.want {
				t.Fatalf("String() = %q, want %q", v.String(), tt.want)
			}
			again, err := ParseValue(typ, v.String())
			if err != nil {
				t.Fatalf("reparse: %v", err)
			}
			if again.String() != v.String() {
				t.Fatalf("round trip %q != %q", again.String(), v.String())
			}
		})
	}
}

func TestParseValueErrors(t *testing.T) {
	tests := []struct {
		name string
		typ  string
		in   string
	}{
		{"missing close brace", "list<int32>", "{1,2"},
		{"trailing comma", "list<int32>", "{1,}"},
		{"empty element", "list<int32>", "{1,,2}"},
		{"missing colon", "map<int32, int32>", "{1 2}"},
		{"nested needs braces", "list<list<int32>>", "{{1,2},3}"},
		{"trailing after close", "list<int32>", "{1} x"},
		{"unterminated quote", "list<string>", `{"abc}`},
		{"quoted token not isolated", "list<string>", `{"a"b}`},
		{"map missing value", "map<int32, string>", "1:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseValue(MustParseType(tt.typ), tt.in)
			if err == nil {
				t.Fatalf("expected error for %q", tt.in)
			}
			if !pkgerrors.Is(err, pkgerrors.MalformedValue) {
				t.Fatalf("code = %v, want MalformedValue", pkgerrors.GetCode(err))
			}
		})
	}
}

func TestSeqPreservesOrder(t *testing.T) {
	v := MustParseValue(MustParseType("set<int32>"), "{3,1,2,1}")
	seq := v.(*Seq)
	got := ""
	for _, e := range seq.Elements {
		got += e.String()
	}
	if got != "3121" {
		t.Fatalf("elements = %q", got)
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"hello"`, "hello"},
		{`"a\nb"`, "a\nb"},
		{`'x'`, "x"},
		{`'it\'s'`, "it's"},
		{`'say "hi"'`, `say "hi"`},
		{"plain", "plain"},
		{`"`, `"`},
		{`"mismatched'`, `"mismatched'`},
	}
	for _, tt := range tests {
		if got := Unquote(tt.in); got != tt.want {
			t.Errorf("Unquote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
