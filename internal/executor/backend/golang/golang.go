// Package golang is the reference backend for Go fragments. Fragments are
// compiled together with a generated main into a single file.
package golang

import (
	_ "embed"
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/template"
	"time"

	"polyrun/internal/executor/backend"
	"polyrun/internal/executor/model"
	"polyrun/internal/executor/numeric"
	"polyrun/internal/executor/typesys"
	pkgerrors "polyrun/pkg/errors"
)

const Language = "go"

var (
	//go:embed program.go.tmpl
	programSource string
	//go:embed blacklist.txt
	blacklistSource string

	programTemplate = template.Must(template.New("program.go").
			Funcs(template.FuncMap{"join": strings.Join}).
			Parse(programSource))
)

func DefaultToolchain() backend.Toolchain {
	return backend.Toolchain{
		SourceFile:         "main.go",
		BinaryFile:         "main",
		CompileCmd:         "go build -o {bin} {src}",
		RunCmd:             "{bin}",
		VersionCmd:         "go version",
		CompilerName:       "gc",
		Env:                []string{"CGO_ENABLED=0", "GOTOOLCHAIN=local", "GOFLAGS=-buildvcs=false"},
		CompileIdleTimeout: time.Minute,
		CompileMaxWait:     2 * time.Minute,
		RunIdleTimeout:     5 * time.Second,
	}
}

func New(override backend.Toolchain, deps backend.Deps) (*backend.Runtime, error) {
	return backend.NewRuntime(NewRenderer(), DefaultToolchain().Merge(override), deps)
}

type Renderer struct {
	tokens []string
}

func NewRenderer() *Renderer {
	return &Renderer{tokens: backend.ParseTokenList(blacklistSource)}
}

func (r *Renderer) Language() string { return Language }

func (r *Renderer) DisallowedTokens() []string {
	return append([]string(nil), r.tokens...)
}

// RenderTypeName maps a type to a Go type. Sets are slices compared without
// regard to order; decimals are float64.
func (r *Renderer) RenderTypeName(t *typesys.TypeExpr) (string, error) {
	switch t.Base {
	case typesys.String, typesys.Bool, typesys.Int8, typesys.Int16, typesys.Int32, typesys.Int64,
		typesys.Float32, typesys.Float64:
		return t.Base.Keyword(), nil
	case typesys.Char:
		return "rune", nil
	case typesys.Decimal:
		return "float64", nil
	case typesys.Array, typesys.List, typesys.Set:
		elem, err := r.RenderTypeName(t.Param(0))
		if err != nil {
			return "", err
		}
		return "[]" + elem, nil
	case typesys.Map:
		key, err := r.RenderTypeName(t.Param(0))
		if err != nil {
			return "", err
		}
		val, err := r.RenderTypeName(t.Param(1))
		if err != nil {
			return "", err
		}
		return "map[" + key + "]" + val, nil
	}
	return "", pkgerrors.Newf(pkgerrors.RenderFailure, "go has no type for %s", t)
}

// RenderLiteral writes v as a typed Go expression.
func (r *Renderer) RenderLiteral(v typesys.Value) (string, error) {
	typ, err := r.RenderTypeName(v.ValueType())
	if err != nil {
		return "", err
	}
	switch v := v.(type) {
	case *typesys.Scalar:
		return r.renderScalar(v, typ)
	case *typesys.Seq:
		items := make([]string, 0, len(v.Elements))
		for _, e := range v.Elements {
			s, err := r.RenderLiteral(e)
			if err != nil {
				return "", err
			}
			items = append(items, s)
		}
		return typ + "{" + strings.Join(items, ", ") + "}", nil
	case *typesys.Pairs:
		rows := make([]string, 0, len(v.Rows))
		for _, row := range v.Rows {
			key, err := r.RenderLiteral(row.Key)
			if err != nil {
				return "", err
			}
			val, err := r.RenderLiteral(row.Value)
			if err != nil {
				return "", err
			}
			rows = append(rows, key+": "+val)
		}
		return typ + "{" + strings.Join(rows, ", ") + "}", nil
	}
	return "", pkgerrors.New(pkgerrors.RenderFailure).WithMessage("unsupported value")
}

func (r *Renderer) renderScalar(s *typesys.Scalar, typ string) (string, error) {
	switch base := s.Type.Base; {
	case base == typesys.String:
		return strconv.Quote(backend.ScalarString(s)), nil
	case base == typesys.Char:
		c, err := backend.ScalarChar(s)
		if err != nil {
			return "", err
		}
		return "rune(" + strconv.QuoteRune(c) + ")", nil
	case base == typesys.Bool:
		b, err := backend.ScalarBool(s)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	case base.IsInteger():
		n, err := backend.ScalarInt(s)
		if err != nil {
			return "", err
		}
		return typ + "(" + strconv.FormatInt(n, 10) + ")", nil
	case base.IsFloat():
		f, err := backend.ScalarFloat(s)
		if err != nil {
			return "", err
		}
		return typ + "(" + floatExpr(f, base.BitSize()) + ")", nil
	case base == typesys.Decimal:
		text, err := backend.ScalarDecimal(s)
		if err != nil {
			return "", err
		}
		f, _ := strconv.ParseFloat(text, 64)
		return "float64(" + floatExpr(f, 64) + ")", nil
	}
	return "", pkgerrors.Newf(pkgerrors.RenderFailure, "%s is not a scalar type", s.Type)
}

func floatExpr(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "math.NaN()"
	case math.IsInf(f, 1):
		return "math.Inf(1)"
	case math.IsInf(f, -1):
		return "math.Inf(-1)"
	}
	return backend.FormatFloat(f, bits)
}

// RenderSkeleton writes one stub per function.
func (r *Renderer) RenderSkeleton(functions []*model.FunctionSignature) (string, error) {
	var b strings.Builder
	for i, fn := range functions {
		header, err := r.funcHeader(fn)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(header + " {\n\tpanic(\"not implemented\")\n}\n")
	}
	return b.String(), nil
}

func (r *Renderer) funcHeader(fn *model.FunctionSignature) (string, error) {
	if err := backend.CheckIdentifiers(fn); err != nil {
		return "", err
	}
	params := make([]string, len(fn.InputNames))
	for i, name := range fn.InputNames {
		typ, err := r.RenderTypeName(fn.InputTypes[i])
		if err != nil {
			return "", err
		}
		params[i] = name + " " + typ
	}
	header := "func " + fn.Name + "(" + strings.Join(params, ", ") + ")"

	results := make([]string, len(fn.OutputNames))
	for i, name := range fn.OutputNames {
		typ, err := r.RenderTypeName(fn.OutputTypes[i])
		if err != nil {
			return "", err
		}
		results[i] = name + " " + typ
	}
	switch len(results) {
	case 0:
		return header, nil
	case 1:
		typ, _ := r.RenderTypeName(fn.OutputTypes[0])
		return header + " " + typ, nil
	}
	return header + " (" + strings.Join(results, ", ") + ")", nil
}

type programData struct {
	Imports []string
	Body    string
	MaxULP  uint64
	Cases   []caseData
}

type caseData struct {
	Kinds    []string
	Call     string
	Expected []string
}

// RenderTestHarness builds a single-file program: the fragment's imports
// merged with the harness imports, the fragment body, then a main that runs
// each case.
func (r *Renderer) RenderTestHarness(fragment string, testCases []model.TestCase, tol numeric.Tolerance) (string, error) {
	imports, body := splitFragment(fragment)
	data := programData{
		Imports: mergeImports(imports),
		Body:    strings.TrimSpace(body),
		MaxULP:  tol.MaxULP,
		Cases:   make([]caseData, 0, len(testCases)),
	}
	for i := range testCases {
		tc := &testCases[i]
		if err := tc.Validate(); err != nil {
			return "", err
		}
		if err := backend.CheckIdentifiers(tc.Function); err != nil {
			return "", err
		}
		c, err := r.renderCase(tc)
		if err != nil {
			return "", pkgerrors.Wrapf(err, pkgerrors.RenderFailure, "test case %d: %v", i, err)
		}
		data.Cases = append(data.Cases, c)
	}

	var b strings.Builder
	if err := programTemplate.Execute(&b, data); err != nil {
		return "", pkgerrors.Wrapf(err, pkgerrors.RenderFailure, "execute go template failed")
	}
	return b.String(), nil
}

func (r *Renderer) renderCase(tc *model.TestCase) (caseData, error) {
	args := make([]string, len(tc.InputValues))
	for i, v := range tc.InputValues {
		s, err := r.RenderLiteral(v)
		if err != nil {
			return caseData{}, err
		}
		args[i] = s
	}
	expected := make([]string, len(tc.ExpectedOutputValues))
	for i, v := range tc.ExpectedOutputValues {
		s, err := r.RenderLiteral(v)
		if err != nil {
			return caseData{}, err
		}
		expected[i] = s
	}
	kinds := make([]string, len(tc.Function.OutputTypes))
	for i, t := range tc.Function.OutputTypes {
		kinds[i] = kindLiteral(t)
	}

	call := tc.Function.Name + "(" + strings.Join(args, ", ") + ")"
	switch n := len(kinds); n {
	case 0:
		call += "\n\t\treturn nil"
	case 1:
		call = "return []interface{}{" + call + "}"
	default:
		outs := make([]string, n)
		for i := range outs {
			outs[i] = fmt.Sprintf("o%d", i)
		}
		call = strings.Join(outs, ", ") + " := " + call +
			"\n\t\treturn []interface{}{" + strings.Join(outs, ", ") + "}"
	}
	return caseData{Kinds: kinds, Call: call, Expected: expected}, nil
}

// kindLiteral describes t for the generated comparator.
func kindLiteral(t *typesys.TypeExpr) string {
	if len(t.Params) == 0 {
		return `&polyrunKind{name: "` + t.Base.Keyword() + `"}`
	}
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = kindLiteral(p)
	}
	return `&polyrunKind{name: "` + t.Base.Keyword() + `", params: []*polyrunKind{` + strings.Join(params, ", ") + `}}`
}
