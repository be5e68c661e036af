package golang

import (
	"context"
	"os/exec"
	"reflect"
	"strings"
	"testing"
	"time"

	"polyrun/internal/executor/backend"
	"polyrun/internal/executor/model"
	"polyrun/internal/executor/numeric"
	"polyrun/internal/executor/sandbox"
	"polyrun/internal/executor/typesys"
	pkgerrors "polyrun/pkg/errors"
)

func signature(name string, inputs []string, outputs []string) *model.FunctionSignature {
	fn := &model.FunctionSignature{Name: name}
	for i, t := range inputs {
		fn.InputNames = append(fn.InputNames, string(rune('a'+i)))
		fn.InputTypes = append(fn.InputTypes, typesys.MustParseType(t))
	}
	for i, t := range outputs {
		fn.OutputNames = append(fn.OutputNames, "r"+string(rune('0'+i)))
		fn.OutputTypes = append(fn.OutputTypes, typesys.MustParseType(t))
	}
	return fn
}

func testCase(fn *model.FunctionSignature, inputs []string, expected []string) model.TestCase {
	tc := model.TestCase{Function: fn}
	for i, text := range inputs {
		tc.InputValues = append(tc.InputValues, typesys.MustParseValue(fn.InputTypes[i], text))
	}
	for i, text := range expected {
		tc.ExpectedOutputValues = append(tc.ExpectedOutputValues, typesys.MustParseValue(fn.OutputTypes[i], text))
	}
	return tc
}

func TestRenderTypeName(t *testing.T) {
	r := NewRenderer()
	tests := []struct{ descriptor, want string }{
		{"int16", "int16"},
		{"char", "rune"},
		{"decimal", "float64"},
		{"set<string>", "[]string"},
		{"map<int64, list<bool>>", "map[int64][]bool"},
	}
	for _, tt := range tests {
		got, err := r.RenderTypeName(typesys.MustParseType(tt.descriptor))
		if err != nil || got != tt.want {
			t.Errorf("RenderTypeName(%s) = %q, %v; want %q", tt.descriptor, got, err, tt.want)
		}
	}
}

func TestRenderLiteral(t *testing.T) {
	r := NewRenderer()
	tests := []struct {
		typ  string
		text string
		want string
	}{
		{"int32", "5", "int32(5)"},
		{"bool", "False", "false"},
		{"float32", "0.1", "float32(0.1)"},
		{"float64", "-inf", "float64(math.Inf(-1))"},
		{"decimal", "2", "float64(2.0)"},
		{"char", "'é'", "rune('é')"},
		{"string", `"tab\there"`, `"tab\there"`},
		{"list<int8>", "{1,2}", "[]int8{int8(1), int8(2)}"},
		{"map<int32, string>", "1:strut1,2:touwm1", `map[int32]string{int32(1): "strut1", int32(2): "touwm1"}`},
	}
	for _, tt := range tests {
		v := typesys.MustParseValue(typesys.MustParseType(tt.typ), tt.text)
		got, err := r.RenderLiteral(v)
		if err != nil {
			t.Fatalf("%s %q: %v", tt.typ, tt.text, err)
		}
		if got != tt.want {
			t.Errorf("RenderLiteral(%s %q) = %s, want %s", tt.typ, tt.text, got, tt.want)
		}
	}
}

func TestRenderSkeleton(t *testing.T) {
	out, err := NewRenderer().RenderSkeleton([]*model.FunctionSignature{
		signature("sumInt32", []string{"int32", "int32"}, []string{"int32"}),
		signature("divmod", []string{"int64", "int64"}, []string{"int64", "int64"}),
		signature("touch", []string{"list<string>"}, nil),
	})
	if err != nil {
		t.Fatalf("RenderSkeleton: %v", err)
	}
	for _, want := range []string{
		"func sumInt32(a int32, b int32) int32 {\n\tpanic(\"not implemented\")\n}\n",
		"func divmod(a int64, b int64) (r0 int64, r1 int64) {",
		"func touch(a []string) {",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("skeleton missing %q:\n%s", want, out)
		}
	}
}

func TestSplitFragment(t *testing.T) {
	tests := []struct {
		name        string
		fragment    string
		wantImports []string
		wantBody    string
	}{
		{
			name:     "no imports",
			fragment: "func f() int { return 1 }\n",
			wantBody: "func f() int { return 1 }",
		},
		{
			name:        "grouped imports and package clause",
			fragment:    "package solution\n\nimport (\n\t\"sort\"\n\tstr \"strings\"\n)\n\nfunc f() {}\n",
			wantImports: []string{`"sort"`, `str "strings"`},
			wantBody:    "func f() {}",
		},
		{
			name:        "single import",
			fragment:    "import \"math\"\nfunc g() float64 { return math.Pi }",
			wantImports: []string{`"math"`},
			wantBody:    "func g() float64 { return math.Pi }",
		},
		{
			name:     "comment before package clause",
			fragment: "// solution\npackage solution\n\nfunc f() {}\n",
			wantBody: "func f() {}",
		},
		{
			name:     "package line inside raw string with broken imports",
			fragment: "import (\n\t\"fmt\"\n\nfunc f() string {\n\treturn `\npackage x\n`\n}\n",
			wantBody: "import (\n\t\"fmt\"\n\nfunc f() string {\n\treturn `\npackage x\n`\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imports, body := splitFragment(tt.fragment)
			if !reflect.DeepEqual(imports, tt.wantImports) {
				t.Fatalf("imports = %q, want %q", imports, tt.wantImports)
			}
			if strings.TrimSpace(body) != tt.wantBody {
				t.Fatalf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestMergeImportsDeduplicates(t *testing.T) {
	got := mergeImports([]string{`"math"`, `"sort"`, `m "math"`})
	if got[len(got)-2] != `"sort"` || got[len(got)-1] != `m "math"` {
		t.Fatalf("merged = %q", got)
	}
	count := 0
	for _, spec := range got {
		if spec == `"math"` {
			count++
		}
	}
	if count != 1 {
		t.Fatalf(`"math" imported %d times`, count)
	}
}

func TestRenderTestHarness(t *testing.T) {
	fn := signature("divmod", []string{"int64", "int64"}, []string{"int64", "int64"})
	out, err := NewRenderer().RenderTestHarness(
		"import \"sort\"\n\nfunc divmod(a, b int64) (int64, int64) { _ = sort.Ints; return a / b, a % b }",
		[]model.TestCase{testCase(fn, []string{"7", "2"}, []string{"3", "1"})},
		numeric.Tolerance{MaxULP: 2})
	if err != nil {
		t.Fatalf("RenderTestHarness: %v", err)
	}
	for _, want := range []string{
		"\t\"sort\"\n",
		"const polyrunMaxULP = 2",
		"o0, o1 := divmod(int64(7), int64(2))",
		"return []interface{}{int64(3), int64(1)}",
		`[]*polyrunKind{&polyrunKind{name: "int64"}, &polyrunKind{name: "int64"}}`,
		"\t\"os/exec\"\n",
		`polyrunOut = os.NewFile(3, "polyrun-results")`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("program missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "import \"sort\"") != 0 {
		t.Fatalf("fragment import was not hoisted:\n%s", out)
	}
}

func TestRenderTestHarnessRejectsBadLiteral(t *testing.T) {
	fn := signature("f", []string{"int8"}, []string{"int8"})
	_, err := NewRenderer().RenderTestHarness("", []model.TestCase{testCase(fn, []string{"1000"}, []string{"1"})}, numeric.DefaultTolerance)
	if !pkgerrors.Is(err, pkgerrors.RenderFailure) {
		t.Fatalf("expected RenderFailure, got %v", err)
	}
}

func newGoRuntime(t *testing.T) *backend.Runtime {
	t.Helper()
	if testing.Short() {
		t.Skip("compiles real programs")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not installed")
	}
	h := sandbox.NewHarness(sandbox.Config{WorkRoot: t.TempDir(), IdleTimeout: 5 * time.Second}, nil)
	rt, err := New(backend.Toolchain{}, backend.Deps{Harness: h})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return rt
}

func TestExecuteEndToEnd(t *testing.T) {
	rt := newGoRuntime(t)
	sum := signature("sumInt32", []string{"int32", "int32"}, []string{"int32"})
	uniq := signature("uniq", []string{"list<int32>"}, []string{"set<int32>"})
	addf := signature("addFloat", []string{"float64", "float64"}, []string{"float64"})

	fragment := `import "fmt"

func sumInt32(a int32, b int32) int32 {
	fmt.Println("debug output is swallowed")
	println("builtin debug", a)
	print(b, "\n\n")
	return a + b
}

func uniq(xs []int32) []int32 {
	seen := map[int32]bool{}
	var out []int32
	for i := len(xs) - 1; i >= 0; i-- {
		if !seen[xs[i]] {
			seen[xs[i]] = true
			out = append(out, xs[i])
		}
	}
	return out
}

func addFloat(a, b float64) float64 {
	if a < 0 {
		panic("negative")
	}
	return a + b
}
`
	results := rt.Execute(context.Background(), fragment, []model.TestCase{
		testCase(sum, []string{"2", "3"}, []string{"5"}),
		testCase(sum, []string{"2", "2"}, []string{"5"}),
		testCase(uniq, []string{"{3, 1, 3}"}, []string{"{1, 3}"}),
		testCase(addf, []string{"0.1", "0.2"}, []string{"0.3"}),
		testCase(addf, []string{"-1", "0"}, []string{"0"}),
	})
	if len(results) != 5 {
		t.Fatalf("len = %d", len(results))
	}
	wantSuccess := []bool{true, false, true, true, false}
	for i, res := range results {
		if res.Fatal {
			t.Fatalf("result %d fatal: %s", i, res.Output)
		}
		if res.Success != wantSuccess[i] {
			t.Errorf("result %d success = %v (%s)", i, res.Success, res.Output)
		}
	}
	if results[1].Output != "expected 5 but got 4" {
		t.Errorf("mismatch payload = %q", results[1].Output)
	}
	if !strings.Contains(results[4].Output, "panic: negative") {
		t.Errorf("panic payload = %q", results[4].Output)
	}
}

func TestExecuteAppliesFloatTolerance(t *testing.T) {
	if testing.Short() {
		t.Skip("compiles real programs")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not installed")
	}
	addf := signature("addFloat", []string{"float64", "float64"}, []string{"float64"})
	fragment := "func addFloat(a, b float64) float64 { return a + b }\n"

	tests := []struct {
		name      string
		tolerance *numeric.Tolerance
		want      bool
	}{
		{name: "default tolerance", want: true},
		{name: "exact comparison", tolerance: &numeric.Tolerance{MaxULP: 0}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := sandbox.NewHarness(sandbox.Config{WorkRoot: t.TempDir(), IdleTimeout: 5 * time.Second}, nil)
			rt, err := New(backend.Toolchain{FloatTolerance: tt.tolerance}, backend.Deps{Harness: h})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			results := rt.Execute(context.Background(), fragment, []model.TestCase{
				testCase(addf, []string{"0.1", "0.2"}, []string{"0.3"}),
			})
			if len(results) != 1 || results[0].Fatal {
				t.Fatalf("results = %+v", results)
			}
			if results[0].Success != tt.want {
				t.Fatalf("success = %v, want %v (%s)", results[0].Success, tt.want, results[0].Output)
			}
		})
	}
}

func TestExecuteCompileFailureIsFatal(t *testing.T) {
	rt := newGoRuntime(t)
	sum := signature("sumInt32", []string{"int32", "int32"}, []string{"int32"})

	results := rt.Execute(context.Background(), "func sumInt32(a int32, b int32) int32 { return a + }", []model.TestCase{
		testCase(sum, []string{"2", "3"}, []string{"5"}),
		testCase(sum, []string{"1", "1"}, []string{"2"}),
		testCase(sum, []string{"0", "0"}, []string{"0"}),
	})
	if len(results) != 3 {
		t.Fatalf("len = %d", len(results))
	}
	for _, res := range results {
		if !res.Fatal || !strings.Contains(res.Output, "syntax error") {
			t.Fatalf("result = %+v", res)
		}
		if res.Output != results[0].Output {
			t.Fatalf("fatal result not replicated")
		}
	}
}
