package rpc

import (
	"context"
	"math"
	"net"
	"testing"

	polyrunv1 "polyrun/api/gen/polyrun/v1"
	"polyrun/internal/executor/backend"
	"polyrun/internal/executor/dispatch"
	"polyrun/internal/executor/model"
	"polyrun/internal/executor/service"
	pkgerrors "polyrun/pkg/errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"
)

type constBackend struct{}

func (constBackend) Language() string { return "const" }

func (constBackend) FetchVersionInfo(context.Context) (model.VersionInfo, error) {
	return model.VersionInfo{LanguageVersion: "0.1", CompilerName: "constc"}, nil
}

func (constBackend) RenderSkeleton(functions []*model.FunctionSignature) (string, error) {
	return "skeleton " + functions[0].Name, nil
}

func (constBackend) DisallowedTokens() []string { return []string{"forbidden"} }

func (constBackend) Execute(_ context.Context, _ string, testCases []model.TestCase) []model.Result {
	out := make([]model.Result, len(testCases))
	for i := range out {
		out[i] = model.Result{Success: i == 0, Output: "42"}
	}
	return out
}

func startServer(t *testing.T) *Client {
	t.Helper()
	reg := dispatch.NewRegistry()
	if err := reg.Register("const", func() (backend.Backend, error) { return constBackend{}, nil }); err != nil {
		t.Fatalf("Register: %v", err)
	}
	svc := service.NewExecutorService(dispatch.NewDispatcher(reg, nil), service.Options{})

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterExecutorService(srv, svc)
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return NewClient(polyrunv1.NewExecutorServiceClient(conn))
}

func TestRPCRoundTrip(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	pong, err := client.Ping(ctx)
	if err != nil || pong.Message != "pong" {
		t.Fatalf("Ping = %+v, %v", pong, err)
	}
	langs, err := client.SupportedLanguages(ctx)
	if err != nil || len(langs.Languages) != 1 || langs.Languages[0] != "const" {
		t.Fatalf("SupportedLanguages = %+v, %v", langs, err)
	}
	info, err := client.VersionInformation(ctx, "const")
	if err != nil || info.CompilerName != "constc" {
		t.Fatalf("VersionInformation = %+v, %v", info, err)
	}
	bl, err := client.Blacklist(ctx, "const")
	if err != nil || len(bl.Tokens) != 1 {
		t.Fatalf("Blacklist = %+v, %v", bl, err)
	}

	fn := service.FunctionDef{
		Name:        "answer",
		InputNames:  []string{},
		InputTypes:  []string{},
		OutputNames: []string{"x"},
		OutputTypes: []string{"int64"},
	}
	frag, err := client.Fragment(ctx, &service.FragmentRequest{Language: "const", Functions: []service.FunctionDef{fn}})
	if err != nil || frag.Fragment != "skeleton answer" {
		t.Fatalf("Fragment = %+v, %v", frag, err)
	}

	resp, err := client.Execute(ctx, &service.ExecuteRequest{
		Language:  "const",
		Fragment:  "answer = 42",
		Functions: []service.FunctionDef{fn},
		TestCases: []service.TestCaseDef{
			{Function: "answer", InputValues: []string{}, ExpectedOutputValues: []string{"42"}},
			{Function: "answer", InputValues: []string{}, ExpectedOutputValues: []string{"43"}},
		},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(resp.Results) != 2 || !resp.Results[0].Success || resp.Results[1].Success {
		t.Fatalf("results = %+v", resp.Results)
	}
}

func TestRPCErrorsMapToStatusCodes(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	_, err := client.Blacklist(ctx, "cobol")
	if status.Code(err) != codes.NotFound {
		t.Fatalf("unknown language code = %v", status.Code(err))
	}
	_, err = client.VersionInformation(ctx, "")
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("empty language code = %v", status.Code(err))
	}
	_, err = client.Fragment(ctx, &service.FragmentRequest{
		Language:  "const",
		Functions: []service.FunctionDef{{Name: "f", OutputNames: []string{"x"}, OutputTypes: []string{"map<int32>"}}},
	})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("malformed type code = %v", status.Code(err))
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		code pkgerrors.ErrorCode
		want codes.Code
	}{
		{pkgerrors.UnknownLanguage, codes.NotFound},
		{pkgerrors.MalformedValue, codes.InvalidArgument},
		{pkgerrors.ValidationFailed, codes.InvalidArgument},
		{pkgerrors.TooManyRequests, codes.ResourceExhausted},
		{pkgerrors.Timeout, codes.DeadlineExceeded},
		{pkgerrors.BackendInitFailed, codes.Unavailable},
		{pkgerrors.ExecutorSystemError, codes.Internal},
	}
	for _, tt := range tests {
		err := mapError(pkgerrors.New(tt.code))
		if got := status.Code(err); got != tt.want {
			t.Errorf("mapError(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestResultsSurviveWireEncoding(t *testing.T) {
	in := []model.Result{
		{Success: true, Output: "3", Performance: &model.PerformanceIndicators{
			TotalCompileMillis:      math.NaN(),
			TotalExecutionMillis:    12.5,
			TestCaseExecutionMillis: 0.25,
		}},
		{Fatal: true, Output: "compile error"},
	}
	data, err := proto.Marshal(&polyrunv1.ExecuteResponse{Results: resultsToProto(in)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded polyrunv1.ExecuteResponse
	if err := proto.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out := resultsFromProto(decoded.GetResults())
	if len(out) != 2 || !out[0].Success || !out[1].Fatal || out[1].Output != "compile error" {
		t.Fatalf("results = %+v", out)
	}
	perf := out[0].Performance
	if perf == nil || !math.IsNaN(perf.TotalCompileMillis) || perf.TotalExecutionMillis != 12.5 {
		t.Fatalf("performance = %+v", perf)
	}
	if out[1].Performance != nil {
		t.Fatalf("absent performance should stay nil")
	}
}

func TestExecuteRequestConversion(t *testing.T) {
	req := &service.ExecuteRequest{
		Language: "go",
		Fragment: "func f() int32 { return 1 }",
		Functions: []service.FunctionDef{{
			Name: "f", InputNames: []string{}, InputTypes: []string{},
			OutputNames: []string{"x"}, OutputTypes: []string{"int32"},
		}},
		TestCases: []service.TestCaseDef{{Function: "f", ExpectedOutputValues: []string{"1"}}},
	}
	got := executeFromProto(executeToProto(req))
	if got.Language != "go" || got.Fragment != req.Fragment || len(got.Functions) != 1 || len(got.TestCases) != 1 {
		t.Fatalf("request = %+v", got)
	}
	if got.Functions[0].OutputTypes[0] != "int32" || got.TestCases[0].ExpectedOutputValues[0] != "1" {
		t.Fatalf("request = %+v", got)
	}
}
