package dispatch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"polyrun/internal/executor/backend"
	"polyrun/internal/executor/model"
	"polyrun/internal/executor/observer"
	"polyrun/internal/executor/typesys"
	pkgerrors "polyrun/pkg/errors"
)

type fakeBackend struct {
	language string
	tokens   []string
	results  func(n int) []model.Result
	calls    atomic.Int32
	panicMsg string
}

func (f *fakeBackend) Language() string { return f.language }

func (f *fakeBackend) FetchVersionInfo(context.Context) (model.VersionInfo, error) {
	return model.VersionInfo{LanguageVersion: "1.0", CompilerName: "fake"}, nil
}

func (f *fakeBackend) RenderSkeleton(functions []*model.FunctionSignature) (string, error) {
	names := make([]string, len(functions))
	for i, fn := range functions {
		names[i] = fn.Name
	}
	return "skeleton:" + strings.Join(names, ","), nil
}

func (f *fakeBackend) DisallowedTokens() []string { return f.tokens }

func (f *fakeBackend) Execute(_ context.Context, _ string, testCases []model.TestCase) []model.Result {
	f.calls.Add(1)
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.results != nil {
		return f.results(len(testCases))
	}
	out := make([]model.Result, len(testCases))
	for i := range out {
		out[i] = model.Result{Success: true, Output: "ok", Performance: &model.PerformanceIndicators{}}
	}
	return out
}

type countingMetrics struct {
	observer.NoopMetricsRecorder
	mu          sync.Mutex
	outcomes    []string
	blacklisted int
	inFlight    int
}

func (c *countingMetrics) ObserveExecution(_ context.Context, _ string, outcome string, _ int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes = append(c.outcomes, outcome)
}

func (c *countingMetrics) ObserveBlacklistRejection(context.Context, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blacklisted++
}

func (c *countingMetrics) AddInFlight(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight += delta
}

func testCases(n int) []model.TestCase {
	fn := &model.FunctionSignature{
		Name:        "sumInt32",
		InputNames:  []string{"a", "b"},
		InputTypes:  []*typesys.TypeExpr{typesys.MustParseType("int32"), typesys.MustParseType("int32")},
		OutputNames: []string{"sum"},
		OutputTypes: []*typesys.TypeExpr{typesys.MustParseType("int32")},
	}
	out := make([]model.TestCase, n)
	for i := range out {
		out[i] = model.TestCase{
			Function: fn,
			InputValues: []typesys.Value{
				typesys.MustParseValue(fn.InputTypes[0], "2"),
				typesys.MustParseValue(fn.InputTypes[1], "3"),
			},
			ExpectedOutputValues: []typesys.Value{typesys.MustParseValue(fn.OutputTypes[0], "5")},
		}
	}
	return out
}

func newDispatcher(t *testing.T, b *fakeBackend, metrics observer.MetricsRecorder) *Dispatcher {
	t.Helper()
	reg := NewRegistry()
	if err := reg.Register(b.language, func() (backend.Backend, error) { return b, nil }); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return NewDispatcher(reg, metrics)
}

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry()
	factory := func() (backend.Backend, error) { return &fakeBackend{language: "py"}, nil }
	if err := reg.Register("Py", factory); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.Register("py", factory); !pkgerrors.Is(err, pkgerrors.InvalidParams) {
		t.Fatalf("duplicate register should fail, got %v", err)
	}
	if err := reg.Register(" ", factory); err == nil {
		t.Fatalf("empty language should fail")
	}
	if err := reg.Register("go", factory); err != nil {
		t.Fatalf("Register go: %v", err)
	}
	if got := reg.Languages(); len(got) != 2 || got[0] != "go" || got[1] != "py" {
		t.Fatalf("Languages = %v", got)
	}
}

func TestRegistryResolveUnknownLanguage(t *testing.T) {
	_, err := NewRegistry().Resolve(context.Background(), "cobol")
	if !pkgerrors.Is(err, pkgerrors.UnknownLanguage) {
		t.Fatalf("expected UnknownLanguage, got %v", err)
	}
}

func TestRegistryResolveBuildsOnceConcurrently(t *testing.T) {
	reg := NewRegistry()
	var builds atomic.Int32
	_ = reg.Register("slow", func() (backend.Backend, error) {
		builds.Add(1)
		time.Sleep(50 * time.Millisecond)
		return &fakeBackend{language: "slow"}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := reg.Resolve(context.Background(), "SLOW"); err != nil {
				t.Errorf("Resolve: %v", err)
			}
		}()
	}
	wg.Wait()
	if n := builds.Load(); n != 1 {
		t.Fatalf("factory called %d times", n)
	}
}

func TestRegistryResolveRetriesFailedBuild(t *testing.T) {
	reg := NewRegistry()
	var attempts atomic.Int32
	_ = reg.Register("flaky", func() (backend.Backend, error) {
		if attempts.Add(1) == 1 {
			return nil, errors.New("toolchain missing")
		}
		return &fakeBackend{language: "flaky"}, nil
	})

	if _, err := reg.Resolve(context.Background(), "flaky"); !pkgerrors.Is(err, pkgerrors.BackendInitFailed) {
		t.Fatalf("expected BackendInitFailed, got %v", err)
	}
	if _, err := reg.Resolve(context.Background(), "flaky"); err != nil {
		t.Fatalf("second resolve should succeed, got %v", err)
	}
}

func TestExecuteBlacklistShortCircuits(t *testing.T) {
	b := &fakeBackend{language: "py", tokens: []string{"eval(", "import os", "open("}}
	metrics := &countingMetrics{}
	d := newDispatcher(t, b, metrics)

	results, err := d.Execute(context.Background(), "py", "import os\nx = eval('1')", testCases(3))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len = %d, want 3", len(results))
	}
	for _, r := range results {
		if !r.Fatal || r.Success {
			t.Fatalf("result = %+v", r)
		}
		if !strings.Contains(r.Output, "eval(, import os") {
			t.Fatalf("output should name the tokens: %q", r.Output)
		}
		if strings.Contains(r.Output, "open(") {
			t.Fatalf("output names a token that is not present: %q", r.Output)
		}
	}
	if b.calls.Load() != 0 {
		t.Fatalf("backend executed a blacklisted fragment")
	}
	if metrics.blacklisted != 1 || metrics.outcomes[0] != observer.OutcomeBlacklisted {
		t.Fatalf("metrics = %+v", metrics)
	}
}

func TestExecutePadsShortResults(t *testing.T) {
	b := &fakeBackend{language: "py", results: func(int) []model.Result {
		return []model.Result{{Success: true, Output: "5"}}
	}}
	metrics := &countingMetrics{}
	d := newDispatcher(t, b, metrics)

	results, err := d.Execute(context.Background(), "py", "", testCases(4))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("len = %d, want 4", len(results))
	}
	if !results[0].Success {
		t.Fatalf("first result lost")
	}
	for _, r := range results[1:] {
		if !r.Fatal || r.Output != model.MissingResultMessage {
			t.Fatalf("padded result = %+v", r)
		}
	}
	if metrics.outcomes[0] != observer.OutcomeFatal || metrics.inFlight != 0 {
		t.Fatalf("metrics = %+v", metrics)
	}
}

func TestExecuteTruncatesExtraResults(t *testing.T) {
	b := &fakeBackend{language: "py", results: func(n int) []model.Result {
		return make([]model.Result, n+2)
	}}
	results, err := newDispatcher(t, b, nil).Execute(context.Background(), "py", "", testCases(2))
	if err != nil || len(results) != 2 {
		t.Fatalf("len = %d, err = %v", len(results), err)
	}
}

func TestExecuteBackendPanicIsServiceError(t *testing.T) {
	b := &fakeBackend{language: "py", panicMsg: "boom"}
	metrics := &countingMetrics{}
	d := newDispatcher(t, b, metrics)

	results, err := d.Execute(context.Background(), "py", "", testCases(2))
	if !pkgerrors.Is(err, pkgerrors.ExecutorSystemError) {
		t.Fatalf("expected ExecutorSystemError, got %v", err)
	}
	if results != nil {
		t.Fatalf("results should be nil on a service error")
	}
	if pkgerrors.GetError(err).Detail("language") != "py" {
		t.Fatalf("error lost language context")
	}
	if metrics.inFlight != 0 {
		t.Fatalf("in-flight gauge leaked: %d", metrics.inFlight)
	}
}

func TestExecuteUnknownLanguageFailsTheCall(t *testing.T) {
	d := NewDispatcher(NewRegistry(), nil)
	if _, err := d.Execute(context.Background(), "cobol", "", testCases(1)); !pkgerrors.Is(err, pkgerrors.UnknownLanguage) {
		t.Fatalf("expected UnknownLanguage, got %v", err)
	}
}

func TestExecuteIsIdempotent(t *testing.T) {
	b := &fakeBackend{language: "py", results: func(n int) []model.Result {
		out := make([]model.Result, n)
		for i := range out {
			out[i] = model.Result{Success: i%2 == 0, Output: "x"}
		}
		return out
	}}
	d := newDispatcher(t, b, nil)
	first, _ := d.Execute(context.Background(), "py", "", testCases(5))
	second, _ := d.Execute(context.Background(), "py", "", testCases(5))
	for i := range first {
		if first[i].Success != second[i].Success || first[i].Fatal != second[i].Fatal {
			t.Fatalf("result %d differs between runs", i)
		}
	}
}

func TestDelegatingOperations(t *testing.T) {
	b := &fakeBackend{language: "py", tokens: []string{"a", "b"}}
	d := newDispatcher(t, b, nil)
	ctx := context.Background()

	tokens, err := d.Blacklist(ctx, "PY")
	if err != nil || len(tokens) != 2 {
		t.Fatalf("Blacklist = %v, %v", tokens, err)
	}
	frag, err := d.Fragment(ctx, "py", []*model.FunctionSignature{{Name: "f"}, {Name: "g"}})
	if err != nil || frag != "skeleton:f,g" {
		t.Fatalf("Fragment = %q, %v", frag, err)
	}
	info, err := d.VersionInfo(ctx, "py")
	if err != nil || info.CompilerName != "fake" {
		t.Fatalf("VersionInfo = %+v, %v", info, err)
	}
	if got := d.Languages(); len(got) != 1 || got[0] != "py" {
		t.Fatalf("Languages = %v", got)
	}
}

func TestViolations(t *testing.T) {
	tokens := []string{"__import__", "exec(", "import os"}
	tests := []struct {
		fragment string
		want     int
	}{
		{"def f(): return 1", 0},
		{"exec('x')", 1},
		{"import os; __import__('sys')", 2},
	}
	for _, tt := range tests {
		if got := Violations(tokens, tt.fragment); len(got) != tt.want {
			t.Errorf("Violations(%q) = %v, want %d tokens", tt.fragment, got, tt.want)
		}
	}
}
