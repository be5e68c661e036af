// Package model holds the value objects shared by the executor packages.
package model

import (
	"encoding/json"
	"math"

	"polyrun/internal/executor/typesys"
	pkgerrors "polyrun/pkg/errors"
)

// MissingResultMessage is the output of results padded in for test cases the
// backend did not report.
const MissingResultMessage = "could not read execution result for test case"

// FunctionSignature describes one function the fragment must implement.
type FunctionSignature struct {
	Name        string
	InputNames  []string
	InputTypes  []*typesys.TypeExpr
	OutputNames []string
	OutputTypes []*typesys.TypeExpr
}

// Validate checks that names and types line up.
func (f *FunctionSignature) Validate() error {
	if f == nil {
		return pkgerrors.New(pkgerrors.MalformedSignature).WithMessage("function signature is missing")
	}
	if f.Name == "" {
		return pkgerrors.New(pkgerrors.MalformedSignature).WithMessage("function name is required")
	}
	if len(f.InputNames) != len(f.InputTypes) {
		return pkgerrors.Newf(pkgerrors.MalformedSignature,
			"function %s has %d input names but %d input types", f.Name, len(f.InputNames), len(f.InputTypes))
	}
	if len(f.OutputNames) != len(f.OutputTypes) {
		return pkgerrors.Newf(pkgerrors.MalformedSignature,
			"function %s has %d output names but %d output types", f.Name, len(f.OutputNames), len(f.OutputTypes))
	}
	for i, typ := range f.InputTypes {
		if typ == nil {
			return pkgerrors.Newf(pkgerrors.MalformedSignature, "function %s input %d has no type", f.Name, i)
		}
	}
	for i, typ := range f.OutputTypes {
		if typ == nil {
			return pkgerrors.Newf(pkgerrors.MalformedSignature, "function %s output %d has no type", f.Name, i)
		}
	}
	return nil
}

// TestCase is one invocation of a function with its expected outputs.
type TestCase struct {
	Function             *FunctionSignature
	InputValues          []typesys.Value
	ExpectedOutputValues []typesys.Value
}

// Validate checks the values against the function's declared types.
func (tc *TestCase) Validate() error {
	if err := tc.Function.Validate(); err != nil {
		return err
	}
	if len(tc.InputValues) != len(tc.Function.InputTypes) {
		return pkgerrors.Newf(pkgerrors.MalformedTestCase,
			"test case for %s has %d inputs, want %d", tc.Function.Name, len(tc.InputValues), len(tc.Function.InputTypes))
	}
	if len(tc.ExpectedOutputValues) != len(tc.Function.OutputTypes) {
		return pkgerrors.Newf(pkgerrors.MalformedTestCase,
			"test case for %s has %d expected outputs, want %d", tc.Function.Name, len(tc.ExpectedOutputValues), len(tc.Function.OutputTypes))
	}
	for i, v := range tc.InputValues {
		if err := checkShape(v, tc.Function.InputTypes[i]); err != nil {
			return pkgerrors.Wrapf(err, pkgerrors.MalformedTestCase, "input %s of %s: %v", tc.Function.InputNames[i], tc.Function.Name, err)
		}
	}
	for i, v := range tc.ExpectedOutputValues {
		if err := checkShape(v, tc.Function.OutputTypes[i]); err != nil {
			return pkgerrors.Wrapf(err, pkgerrors.MalformedTestCase, "output %s of %s: %v", tc.Function.OutputNames[i], tc.Function.Name, err)
		}
	}
	return nil
}

func checkShape(v typesys.Value, typ *typesys.TypeExpr) error {
	if v == nil {
		return pkgerrors.New(pkgerrors.MalformedValue).WithMessage("value is missing")
	}
	if v.Dimension() != typ.Base.Arity() {
		return pkgerrors.Newf(pkgerrors.MalformedValue, "value %s does not match type %s", v, typ)
	}
	return nil
}

// Result is the outcome of one test case.
// Fatal means the whole batch could not run; the same result is then
// repeated for every test case.
type Result struct {
	Success     bool                   `json:"success"`
	Fatal       bool                   `json:"fatal"`
	Output      string                 `json:"output"`
	Performance *PerformanceIndicators `json:"performance,omitempty"`
}

// PerformanceIndicators are timings in milliseconds. NaN means not measured.
type PerformanceIndicators struct {
	TotalCompileMillis      float64
	TotalExecutionMillis    float64
	TestCaseExecutionMillis float64
}

// NotMeasured returns indicators with every field NaN.
func NotMeasured() PerformanceIndicators {
	nan := math.NaN()
	return PerformanceIndicators{TotalCompileMillis: nan, TotalExecutionMillis: nan, TestCaseExecutionMillis: nan}
}

type performanceJSON struct {
	TotalCompileMillis      *float64 `json:"totalCompileMillis"`
	TotalExecutionMillis    *float64 `json:"totalExecutionMillis"`
	TestCaseExecutionMillis *float64 `json:"testCaseExecutionMillis"`
}

// MarshalJSON writes NaN and infinite timings as null.
func (p PerformanceIndicators) MarshalJSON() ([]byte, error) {
	return json.Marshal(performanceJSON{
		TotalCompileMillis:      finiteOrNil(p.TotalCompileMillis),
		TotalExecutionMillis:    finiteOrNil(p.TotalExecutionMillis),
		TestCaseExecutionMillis: finiteOrNil(p.TestCaseExecutionMillis),
	})
}

// UnmarshalJSON reads null or absent timings as NaN.
func (p *PerformanceIndicators) UnmarshalJSON(data []byte) error {
	var raw performanceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.TotalCompileMillis = valueOrNaN(raw.TotalCompileMillis)
	p.TotalExecutionMillis = valueOrNaN(raw.TotalExecutionMillis)
	p.TestCaseExecutionMillis = valueOrNaN(raw.TestCaseExecutionMillis)
	return nil
}

func finiteOrNil(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func valueOrNaN(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}

// VersionInfo describes a backend's toolchain and host platform.
type VersionInfo struct {
	LanguageVersion string `json:"languageVersion"`
	CompilerName    string `json:"compilerName"`
	CompilerVersion string `json:"compilerVersion"`
	PlatformName    string `json:"platformName"`
	PlatformVersion string `json:"platformVersion"`
	PlatformArch    string `json:"platformArch"`
}

// FatalResults repeats one fatal result n times.
func FatalResults(n int, output string) []Result {
	if n < 0 {
		n = 0
	}
	results := make([]Result, n)
	for i := range results {
		results[i] = Result{Fatal: true, Output: output}
	}
	return results
}

// PadResults returns exactly n results: missing ones are filled with fatal
// placeholders and extras are dropped.
func PadResults(results []Result, n int) []Result {
	if n < 0 {
		n = 0
	}
	if len(results) >= n {
		return results[:n]
	}
	out := make([]Result, n)
	copy(out, results)
	for i := len(results); i < n; i++ {
		out[i] = Result{Fatal: true, Output: MissingResultMessage}
	}
	return out
}
