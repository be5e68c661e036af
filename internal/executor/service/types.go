package service

import "polyrun/internal/executor/model"

// FunctionDef is a function signature on the wire. Types are descriptor
// strings such as "map<string, list<int32>>".
type FunctionDef struct {
	Name        string   `json:"name"`
	InputNames  []string `json:"inputNames"`
	InputTypes  []string `json:"inputTypes"`
	OutputNames []string `json:"outputNames"`
	OutputTypes []string `json:"outputTypes"`
}

// TestCaseDef refers to its function by name and carries value literals.
type TestCaseDef struct {
	Function             string   `json:"function"`
	InputValues          []string `json:"inputValues"`
	ExpectedOutputValues []string `json:"expectedOutputValues"`
}

// ExecuteRequest asks for fragment to be run against testCases.
type ExecuteRequest struct {
	Language  string        `json:"language"`
	Fragment  string        `json:"fragment"`
	Functions []FunctionDef `json:"functions"`
	TestCases []TestCaseDef `json:"testCases"`
}

// ExecuteResponse holds one result per test case, in request order.
type ExecuteResponse struct {
	Results []model.Result `json:"results"`
}

// FragmentRequest asks for the skeleton source of functions.
type FragmentRequest struct {
	Language  string        `json:"language"`
	Functions []FunctionDef `json:"functions"`
}

// FragmentResponse carries the rendered skeleton.
type FragmentResponse struct {
	Fragment string `json:"fragment"`
}

// LanguagesResponse lists supported language ids.
type LanguagesResponse struct {
	Languages []string `json:"languages"`
}

// BlacklistResponse lists the disallowed tokens of a language.
type BlacklistResponse struct {
	Language string   `json:"language"`
	Tokens   []string `json:"tokens"`
}

// PingResponse answers a liveness probe.
type PingResponse struct {
	Message string `json:"message"`
}
