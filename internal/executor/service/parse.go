package service

import (
	"polyrun/internal/executor/model"
	"polyrun/internal/executor/typesys"
	pkgerrors "polyrun/pkg/errors"
)

// parseFunctions turns wire signatures into model signatures, keyed by name.
func parseFunctions(defs []FunctionDef) ([]*model.FunctionSignature, map[string]*model.FunctionSignature, error) {
	list := make([]*model.FunctionSignature, 0, len(defs))
	byName := make(map[string]*model.FunctionSignature, len(defs))
	for i, def := range defs {
		fn := &model.FunctionSignature{
			Name:        def.Name,
			InputNames:  def.InputNames,
			OutputNames: def.OutputNames,
		}
		var err error
		if fn.InputTypes, err = parseTypes(def.InputTypes); err != nil {
			return nil, nil, pkgerrors.Wrapf(err, pkgerrors.MalformedType, "function %d (%s) input: %v", i, def.Name, err)
		}
		if fn.OutputTypes, err = parseTypes(def.OutputTypes); err != nil {
			return nil, nil, pkgerrors.Wrapf(err, pkgerrors.MalformedType, "function %d (%s) output: %v", i, def.Name, err)
		}
		if err := fn.Validate(); err != nil {
			return nil, nil, err
		}
		if _, dup := byName[fn.Name]; dup {
			return nil, nil, pkgerrors.Newf(pkgerrors.MalformedSignature, "function %s is declared twice", fn.Name)
		}
		byName[fn.Name] = fn
		list = append(list, fn)
	}
	return list, byName, nil
}

// types are parsed once per distinct descriptor so that repeated types in a
// signature share one tree
func parseTypes(descriptors []string) ([]*typesys.TypeExpr, error) {
	out := make([]*typesys.TypeExpr, len(descriptors))
	seen := make(map[string]*typesys.TypeExpr, len(descriptors))
	for i, d := range descriptors {
		if t, ok := seen[d]; ok {
			out[i] = t
			continue
		}
		t, err := typesys.ParseType(d)
		if err != nil {
			return nil, err
		}
		seen[d] = t
		out[i] = t
	}
	return out, nil
}

// parseTestCases binds each case to its function and parses its literals
// against the declared types.
func parseTestCases(defs []TestCaseDef, functions map[string]*model.FunctionSignature) ([]model.TestCase, error) {
	out := make([]model.TestCase, 0, len(defs))
	for i, def := range defs {
		fn, ok := functions[def.Function]
		if !ok {
			return nil, pkgerrors.Newf(pkgerrors.MalformedTestCase, "test case %d refers to unknown function %q", i, def.Function)
		}
		if len(def.InputValues) != len(fn.InputTypes) || len(def.ExpectedOutputValues) != len(fn.OutputTypes) {
			return nil, pkgerrors.Newf(pkgerrors.MalformedTestCase,
				"test case %d for %s has %d inputs and %d outputs, want %d and %d",
				i, fn.Name, len(def.InputValues), len(def.ExpectedOutputValues), len(fn.InputTypes), len(fn.OutputTypes))
		}
		tc := model.TestCase{
			Function:             fn,
			InputValues:          make([]typesys.Value, len(def.InputValues)),
			ExpectedOutputValues: make([]typesys.Value, len(def.ExpectedOutputValues)),
		}
		for j, text := range def.InputValues {
			v, err := typesys.ParseValue(fn.InputTypes[j], text)
			if err != nil {
				return nil, pkgerrors.Wrapf(err, pkgerrors.MalformedValue, "test case %d input %s: %v", i, fn.InputNames[j], err)
			}
			tc.InputValues[j] = v
		}
		for j, text := range def.ExpectedOutputValues {
			v, err := typesys.ParseValue(fn.OutputTypes[j], text)
			if err != nil {
				return nil, pkgerrors.Wrapf(err, pkgerrors.MalformedValue, "test case %d output %s: %v", i, fn.OutputNames[j], err)
			}
			tc.ExpectedOutputValues[j] = v
		}
		if err := tc.Validate(); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, nil
}
