// Package backend defines the per-language adapter contract and the generic
// runtime that turns an adapter plus a toolchain into an executable backend.
package backend

import (
	"context"

	"polyrun/internal/executor/model"
	"polyrun/internal/executor/numeric"
	"polyrun/internal/executor/observer"
	"polyrun/internal/executor/sandbox"
	"polyrun/internal/executor/sandbox/isolation"
	"polyrun/internal/executor/typesys"
)

// Renderer is the syntax-specific half of a language: it turns signatures,
// literals and test cases into source text.
type Renderer interface {
	Language() string
	RenderTypeName(t *typesys.TypeExpr) (string, error)
	RenderLiteral(v typesys.Value) (string, error)
	RenderSkeleton(functions []*model.FunctionSignature) (string, error)
	// RenderTestHarness returns a complete program that embeds fragment,
	// invokes every test case in order and prints one STATUS:DURATION:PAYLOAD
	// line per case, each followed by a blank line.
	RenderTestHarness(fragment string, testCases []model.TestCase, tol numeric.Tolerance) (string, error)
	DisallowedTokens() []string
}

// Backend is what the dispatcher executes against. Implementations must be
// safe for concurrent use.
type Backend interface {
	Language() string
	FetchVersionInfo(ctx context.Context) (model.VersionInfo, error)
	RenderSkeleton(functions []*model.FunctionSignature) (string, error)
	DisallowedTokens() []string
	// Execute always returns len(testCases) results.
	Execute(ctx context.Context, fragment string, testCases []model.TestCase) []model.Result
}

// Deps are the shared collaborators injected into every runtime.
type Deps struct {
	Harness   *sandbox.Harness
	Isolation isolation.Provisioner
	Metrics   observer.MetricsRecorder
}
