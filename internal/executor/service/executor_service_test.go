package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"polyrun/internal/executor/backend"
	"polyrun/internal/executor/dispatch"
	"polyrun/internal/executor/model"
	pkgerrors "polyrun/pkg/errors"
)

type stubBackend struct {
	mu       sync.Mutex
	executed [][]model.TestCase
	block    chan struct{}
}

func (s *stubBackend) Language() string { return "stub" }

func (s *stubBackend) FetchVersionInfo(context.Context) (model.VersionInfo, error) {
	return model.VersionInfo{LanguageVersion: "9.9", CompilerName: "stubc"}, nil
}

func (s *stubBackend) RenderSkeleton(functions []*model.FunctionSignature) (string, error) {
	var b strings.Builder
	for _, fn := range functions {
		b.WriteString("fn " + fn.Name + "(" + strings.Join(fn.InputNames, ",") + ")\n")
	}
	return b.String(), nil
}

func (s *stubBackend) DisallowedTokens() []string { return []string{"evil("} }

func (s *stubBackend) Execute(_ context.Context, _ string, testCases []model.TestCase) []model.Result {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	s.executed = append(s.executed, testCases)
	s.mu.Unlock()
	out := make([]model.Result, len(testCases))
	for i, tc := range testCases {
		out[i] = model.Result{Success: true, Output: tc.ExpectedOutputValues[0].String()}
	}
	return out
}

func newService(t *testing.T, b *stubBackend, opts Options) *ExecutorService {
	t.Helper()
	reg := dispatch.NewRegistry()
	if err := reg.Register("stub", func() (backend.Backend, error) { return b, nil }); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return NewExecutorService(dispatch.NewDispatcher(reg, nil), opts)
}

func sumFunction() FunctionDef {
	return FunctionDef{
		Name:        "sumInt32",
		InputNames:  []string{"a", "b"},
		InputTypes:  []string{"int32", "int32"},
		OutputNames: []string{"sum"},
		OutputTypes: []string{"int32"},
	}
}

func sumRequest(cases ...TestCaseDef) ExecuteRequest {
	return ExecuteRequest{
		Language:  "stub",
		Fragment:  "fn sumInt32(a, b) = a + b",
		Functions: []FunctionDef{sumFunction()},
		TestCases: cases,
	}
}

func sumCase(a, b, want string) TestCaseDef {
	return TestCaseDef{Function: "sumInt32", InputValues: []string{a, b}, ExpectedOutputValues: []string{want}}
}

func TestPingAndLanguages(t *testing.T) {
	svc := newService(t, &stubBackend{}, Options{})
	if got := svc.Ping(context.Background()).Message; got != "pong" {
		t.Fatalf("Ping = %q", got)
	}
	if got := svc.SupportedLanguages(context.Background()).Languages; len(got) != 1 || got[0] != "stub" {
		t.Fatalf("Languages = %v", got)
	}
}

func TestExecuteParsesAndDispatches(t *testing.T) {
	b := &stubBackend{}
	svc := newService(t, b, Options{})

	resp, err := svc.Execute(context.Background(), sumRequest(sumCase("2", "3", "5"), sumCase("-1", "1", "0")))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(resp.Results) != 2 || !resp.Results[0].Success || resp.Results[1].Output != "0" {
		t.Fatalf("results = %+v", resp.Results)
	}
	if len(b.executed) != 1 || len(b.executed[0]) != 2 {
		t.Fatalf("backend saw %d batches", len(b.executed))
	}
	tc := b.executed[0][0]
	if tc.Function.Name != "sumInt32" || tc.InputValues[1].String() != "3" {
		t.Fatalf("test case = %+v", tc)
	}
	if svc.InFlight() != 0 {
		t.Fatalf("slot not released")
	}
}

func TestExecuteMalformedInputBecomesFatalResults(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ExecuteRequest)
		reason string
	}{
		{
			name:   "bad type",
			mutate: func(r *ExecuteRequest) { r.Functions[0].InputTypes[0] = "int33" },
			reason: "int33",
		},
		{
			name: "bad value",
			mutate: func(r *ExecuteRequest) {
				r.Functions[0].InputTypes[0] = "list<int32>"
				r.TestCases[1].InputValues[0] = "1,}"
			},
			reason: "cannot be isolated",
		},
		{
			name:   "unknown function",
			mutate: func(r *ExecuteRequest) { r.TestCases[0].Function = "mulInt32" },
			reason: "mulInt32",
		},
		{
			name:   "arity mismatch",
			mutate: func(r *ExecuteRequest) { r.TestCases[0].InputValues = []string{"1"} },
			reason: "sumInt32",
		},
		{
			name:   "duplicate function",
			mutate: func(r *ExecuteRequest) { r.Functions = append(r.Functions, sumFunction()) },
			reason: "declared twice",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &stubBackend{}
			svc := newService(t, b, Options{})
			req := sumRequest(sumCase("1", "2", "3"), sumCase("3", "4", "7"), sumCase("0", "0", "0"))
			tt.mutate(&req)

			resp, err := svc.Execute(context.Background(), req)
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if len(resp.Results) != 3 {
				t.Fatalf("len = %d, want 3", len(resp.Results))
			}
			for _, r := range resp.Results {
				if !r.Fatal || r.Success || !strings.Contains(r.Output, tt.reason) {
					t.Fatalf("result = %+v, want fatal mentioning %q", r, tt.reason)
				}
				if r.Output != resp.Results[0].Output {
					t.Fatalf("fatal results differ")
				}
			}
			if len(b.executed) != 0 {
				t.Fatalf("backend ran a malformed request")
			}
		})
	}
}

func TestExecuteUnknownLanguageFailsTheCall(t *testing.T) {
	svc := newService(t, &stubBackend{}, Options{})
	req := sumRequest(sumCase("1", "2", "3"))
	req.Language = "cobol"
	if _, err := svc.Execute(context.Background(), req); !pkgerrors.Is(err, pkgerrors.UnknownLanguage) {
		t.Fatalf("expected UnknownLanguage, got %v", err)
	}
	req.Language = ""
	if _, err := svc.Execute(context.Background(), req); !pkgerrors.Is(err, pkgerrors.ValidationFailed) {
		t.Fatalf("expected ValidationFailed, got %v", err)
	}
}

func TestExecuteEnforcesLimits(t *testing.T) {
	svc := newService(t, &stubBackend{}, Options{MaxTestCases: 1, MaxFragment: 8})
	if _, err := svc.Execute(context.Background(), sumRequest(sumCase("1", "2", "3"), sumCase("1", "2", "3"))); !pkgerrors.Is(err, pkgerrors.InvalidParams) {
		t.Fatalf("expected InvalidParams for test case count, got %v", err)
	}
	if _, err := svc.Execute(context.Background(), sumRequest(sumCase("1", "2", "3"))); !pkgerrors.Is(err, pkgerrors.InvalidParams) {
		t.Fatalf("expected InvalidParams for fragment size, got %v", err)
	}
}

func TestExecuteBlacklistedFragment(t *testing.T) {
	b := &stubBackend{}
	svc := newService(t, b, Options{})
	req := sumRequest(sumCase("1", "2", "3"))
	req.Fragment = "evil(1)"
	resp, err := svc.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !resp.Results[0].Fatal || !strings.Contains(resp.Results[0].Output, "evil(") {
		t.Fatalf("result = %+v", resp.Results[0])
	}
	if len(b.executed) != 0 {
		t.Fatalf("backend ran a blacklisted fragment")
	}
}

func TestExecuteFullPoolTimesOut(t *testing.T) {
	b := &stubBackend{block: make(chan struct{})}
	svc := newService(t, b, Options{MaxConcurrent: 1, AcquireTimeout: 20 * time.Millisecond})

	done := make(chan error, 1)
	go func() {
		_, err := svc.Execute(context.Background(), sumRequest(sumCase("1", "2", "3")))
		done <- err
	}()
	deadline := time.Now().Add(time.Second)
	for svc.InFlight() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	if _, err := svc.Execute(context.Background(), sumRequest(sumCase("1", "2", "3"))); !pkgerrors.Is(err, pkgerrors.TooManyRequests) {
		t.Fatalf("expected TooManyRequests, got %v", err)
	}
	close(b.block)
	if err := <-done; err != nil {
		t.Fatalf("first execute: %v", err)
	}
}

func TestFragment(t *testing.T) {
	svc := newService(t, &stubBackend{}, Options{})
	resp, err := svc.Fragment(context.Background(), FragmentRequest{Language: "stub", Functions: []FunctionDef{sumFunction()}})
	if err != nil {
		t.Fatalf("Fragment: %v", err)
	}
	if resp.Fragment != "fn sumInt32(a,b)\n" {
		t.Fatalf("fragment = %q", resp.Fragment)
	}

	bad := sumFunction()
	bad.OutputTypes = []string{"list<"}
	if _, err := svc.Fragment(context.Background(), FragmentRequest{Language: "stub", Functions: []FunctionDef{bad}}); !pkgerrors.Is(err, pkgerrors.MalformedType) {
		t.Fatalf("expected MalformedType, got %v", err)
	}
	if _, err := svc.Fragment(context.Background(), FragmentRequest{Language: "stub"}); err == nil {
		t.Fatalf("expected error without functions")
	}
}

func TestBlacklistAndVersion(t *testing.T) {
	svc := newService(t, &stubBackend{}, Options{})
	bl, err := svc.Blacklist(context.Background(), "stub")
	if err != nil || len(bl.Tokens) != 1 || bl.Tokens[0] != "evil(" {
		t.Fatalf("Blacklist = %+v, %v", bl, err)
	}
	info, err := svc.VersionInformation(context.Background(), "stub")
	if err != nil || info.CompilerName != "stubc" {
		t.Fatalf("VersionInformation = %+v, %v", info, err)
	}
	if _, err := svc.Blacklist(context.Background(), "cobol"); !pkgerrors.Is(err, pkgerrors.UnknownLanguage) {
		t.Fatalf("expected UnknownLanguage, got %v", err)
	}
}
