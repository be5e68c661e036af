// Package python is the reference backend for Python 3 fragments.
package python

import (
	_ "embed"
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

// Language is the registry key of this backend.
const Language = "python"

var (
	//go:embed program.py.tmpl
	programSource string
	//go:embed blacklist.txt
	blacklistSource string

	programTemplate = template.Must(template.New("program.py").
			Funcs(template.FuncMap{"join": strings.Join}).
			Parse(programSource))
)

// DefaultToolchain runs the program with an unbuffered CPython 3.
func DefaultToolchain() backend.Toolchain {
	return backend.Toolchain{
		SourceFile:     "main.py",
		RunCmd:         "python3 -u {src}",
		VersionCmd:     "python3 --version",
		CompilerName:   "CPython",
		Env:            []string{"PYTHONDONTWRITEBYTECODE=1", "PYTHONIOENCODING=utf-8"},
		RunIdleTimeout: 5 * time.Second,
	}
}

// New builds the python backend with override merged over the defaults.
func New(override backend.Toolchain, deps backend.Deps) (*backend.Runtime, error) {
	return backend.NewRuntime(NewRenderer(), DefaultToolchain().Merge(override), deps)
}

// Renderer writes Python 3 source.
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

// RenderTypeName maps a type to its typing annotation.
func (r *Renderer) RenderTypeName(t *typesys.TypeExpr) (string, error) {
	switch t.Base {
	case typesys.String, typesys.Char:
		return "str", nil
	case typesys.Bool:
		return "bool", nil
	case typesys.Int8, typesys.Int16, typesys.Int32, typesys.Int64:
		return "int", nil
	case typesys.Float32, typesys.Float64:
		return "float", nil
	case typesys.Decimal:
		return "Decimal", nil
	case typesys.Array, typesys.List:
		elem, err := r.RenderTypeName(t.Param(0))
		if err != nil {
			return "", err
		}
		return "List[" + elem + "]", nil
	case typesys.Set:
		elem, err := r.RenderTypeName(t.Param(0))
		if err != nil {
			return "", err
		}
		return "Set[" + elem + "]", nil
	case typesys.Map:
		key, err := r.RenderTypeName(t.Param(0))
		if err != nil {
			return "", err
		}
		val, err := r.RenderTypeName(t.Param(1))
		if err != nil {
			return "", err
		}
		return "Dict[" + key + ", " + val + "]", nil
	}
	return "", pkgerrors.Newf(pkgerrors.RenderFailure, "python has no type for %s", t)
}

// RenderLiteral writes v as a Python expression.
func (r *Renderer) RenderLiteral(v typesys.Value) (string, error) {
	switch v := v.(type) {
	case *typesys.Scalar:
		return r.renderScalar(v)
	case *typesys.Seq:
		items, err := r.renderAll(v.Elements)
		if err != nil {
			return "", err
		}
		body := strings.Join(items, ", ")
		if v.Type.Base == typesys.Set && hashable(v.Type.Param(0)) {
			if len(items) == 0 {
				return "set()", nil
			}
			return "{" + body + "}", nil
		}
		return "[" + body + "]", nil
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
		return "{" + strings.Join(rows, ", ") + "}", nil
	}
	return "", pkgerrors.New(pkgerrors.RenderFailure).WithMessage("unsupported value")
}

func (r *Renderer) renderAll(values []typesys.Value) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		s, err := r.RenderLiteral(v)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *Renderer) renderScalar(s *typesys.Scalar) (string, error) {
	switch base := s.Type.Base; {
	case base == typesys.String:
		return strconv.Quote(backend.ScalarString(s)), nil
	case base == typesys.Char:
		c, err := backend.ScalarChar(s)
		if err != nil {
			return "", err
		}
		return strconv.Quote(string(c)), nil
	case base == typesys.Bool:
		b, err := backend.ScalarBool(s)
		if err != nil {
			return "", err
		}
		if b {
			return "True", nil
		}
		return "False", nil
	case base.IsInteger():
		n, err := backend.ScalarInt(s)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(n, 10), nil
	case base.IsFloat():
		f, err := backend.ScalarFloat(s)
		if err != nil {
			return "", err
		}
		switch {
		case math.IsNaN(f):
			return `float("nan")`, nil
		case math.IsInf(f, 1):
			return `float("inf")`, nil
		case math.IsInf(f, -1):
			return `float("-inf")`, nil
		}
		return backend.FormatFloat(f, base.BitSize()), nil
	case base == typesys.Decimal:
		text, err := backend.ScalarDecimal(s)
		if err != nil {
			return "", err
		}
		return "Decimal(" + strconv.Quote(text) + ")", nil
	}
	return "", pkgerrors.Newf(pkgerrors.RenderFailure, "%s is not a scalar type", s.Type)
}

// collections of collections cannot go into a Python set
func hashable(t *typesys.TypeExpr) bool {
	return t.Base.Arity() == 0
}

// RenderSkeleton writes one stub per function.
func (r *Renderer) RenderSkeleton(functions []*model.FunctionSignature) (string, error) {
	var b strings.Builder
	for i, fn := range functions {
		if err := backend.CheckIdentifiers(fn); err != nil {
			return "", err
		}
		params := make([]string, len(fn.InputNames))
		for j, name := range fn.InputNames {
			typ, err := r.RenderTypeName(fn.InputTypes[j])
			if err != nil {
				return "", err
			}
			params[j] = name + ": " + typ
		}
		ret, err := r.returnAnnotation(fn)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("def " + fn.Name + "(" + strings.Join(params, ", ") + ") -> " + ret + ":\n")
		if len(fn.OutputNames) > 1 {
			b.WriteString(`    """Returns (` + strings.Join(fn.OutputNames, ", ") + `)."""` + "\n")
		}
		b.WriteString("    pass\n")
	}
	return b.String(), nil
}

func (r *Renderer) returnAnnotation(fn *model.FunctionSignature) (string, error) {
	names := make([]string, len(fn.OutputTypes))
	for i, t := range fn.OutputTypes {
		name, err := r.RenderTypeName(t)
		if err != nil {
			return "", err
		}
		names[i] = name
	}
	switch len(names) {
	case 0:
		return "None", nil
	case 1:
		return names[0], nil
	}
	return "Tuple[" + strings.Join(names, ", ") + "]", nil
}

type programData struct {
	Fragment string
	MaxULP   uint64
	Cases    []caseData
}

type caseData struct {
	Function string
	Args     []string
	Expected []string
	Kinds    []string
}

// RenderTestHarness embeds fragment in a program that runs every case and
// prints one result line per case.
func (r *Renderer) RenderTestHarness(fragment string, testCases []model.TestCase, tol numeric.Tolerance) (string, error) {
	data := programData{Fragment: fragment, MaxULP: tol.MaxULP, Cases: make([]caseData, 0, len(testCases))}
	for i := range testCases {
		tc := &testCases[i]
		if err := tc.Validate(); err != nil {
			return "", err
		}
		if err := backend.CheckIdentifiers(tc.Function); err != nil {
			return "", err
		}
		args, err := r.renderAll(tc.InputValues)
		if err != nil {
			return "", pkgerrors.Wrapf(err, pkgerrors.RenderFailure, "test case %d: %v", i, err)
		}
		expected, err := r.renderAll(tc.ExpectedOutputValues)
		if err != nil {
			return "", pkgerrors.Wrapf(err, pkgerrors.RenderFailure, "test case %d: %v", i, err)
		}
		kinds := make([]string, len(tc.Function.OutputTypes))
		for j, t := range tc.Function.OutputTypes {
			kinds[j] = kindLiteral(t)
		}
		data.Cases = append(data.Cases, caseData{
			Function: strconv.Quote(tc.Function.Name),
			Args:     args,
			Expected: expected,
			Kinds:    kinds,
		})
	}

	var b strings.Builder
	if err := programTemplate.Execute(&b, data); err != nil {
		return "", pkgerrors.Wrapf(err, pkgerrors.RenderFailure, "execute python template failed")
	}
	return b.String(), nil
}

// kindLiteral describes t as nested tuples for the generated comparator,
// e.g. ('map', ('string',), ('float64',)).
func kindLiteral(t *typesys.TypeExpr) string {
	parts := []string{"'" + t.Base.Keyword() + "'"}
	for _, p := range t.Params {
		parts = append(parts, kindLiteral(p))
	}
	return "(" + strings.Join(parts, ", ") + ",)"
}
