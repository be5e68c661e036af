package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"polyrun/internal/executor/backend"
	"polyrun/internal/executor/dispatch"
	"polyrun/internal/executor/model"
	"polyrun/internal/executor/service"
	pkgerrors "polyrun/pkg/errors"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type echoBackend struct{}

func (echoBackend) Language() string { return "echo" }

func (echoBackend) FetchVersionInfo(context.Context) (model.VersionInfo, error) {
	return model.VersionInfo{LanguageVersion: "1.2.3", CompilerName: "echoc", PlatformName: "Linux"}, nil
}

func (echoBackend) RenderSkeleton(functions []*model.FunctionSignature) (string, error) {
	return "def " + functions[0].Name + "():\n    pass\n", nil
}

func (echoBackend) DisallowedTokens() []string { return []string{"exec("} }

func (echoBackend) Execute(_ context.Context, fragment string, testCases []model.TestCase) []model.Result {
	out := make([]model.Result, len(testCases))
	for i := range out {
		out[i] = model.Result{Success: true, Output: fragment, Performance: &model.PerformanceIndicators{}}
	}
	return out
}

type envelope struct {
	Code    pkgerrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	reg := dispatch.NewRegistry()
	if err := reg.Register("echo", func() (backend.Backend, error) { return echoBackend{}, nil }); err != nil {
		t.Fatalf("Register: %v", err)
	}
	svc := service.NewExecutorService(dispatch.NewDispatcher(reg, nil), service.Options{})
	r := gin.New()
	NewExecutorController(svc).Register(r.Group("/api/v1"))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s %s: %v (%s)", method, path, err, w.Body.String())
	}
	return w.Code, env
}

func TestPingAndLanguagesEndpoints(t *testing.T) {
	r := newRouter(t)

	code, env := do(t, r, http.MethodGet, "/api/v1/ping", "")
	if code != http.StatusOK || !strings.Contains(string(env.Data), "pong") {
		t.Fatalf("ping = %d %s", code, env.Data)
	}

	code, env = do(t, r, http.MethodGet, "/api/v1/languages", "")
	if code != http.StatusOK || string(env.Data) != `{"languages":["echo"]}` {
		t.Fatalf("languages = %d %s", code, env.Data)
	}
}

func TestVersionAndBlacklistEndpoints(t *testing.T) {
	r := newRouter(t)

	code, env := do(t, r, http.MethodGet, "/api/v1/languages/ECHO/version", "")
	if code != http.StatusOK {
		t.Fatalf("version status = %d", code)
	}
	var info model.VersionInfo
	if err := json.Unmarshal(env.Data, &info); err != nil || info.LanguageVersion != "1.2.3" {
		t.Fatalf("version = %s, %v", env.Data, err)
	}

	code, env = do(t, r, http.MethodGet, "/api/v1/languages/echo/blacklist", "")
	if code != http.StatusOK || !strings.Contains(string(env.Data), `"exec("`) {
		t.Fatalf("blacklist = %d %s", code, env.Data)
	}

	code, env = do(t, r, http.MethodGet, "/api/v1/languages/cobol/blacklist", "")
	if code != http.StatusNotFound || env.Code != pkgerrors.UnknownLanguage {
		t.Fatalf("unknown language = %d %+v", code, env)
	}
}

func TestFragmentEndpoint(t *testing.T) {
	r := newRouter(t)
	body := `{"functions":[{"name":"f","inputNames":["a"],"inputTypes":["int32"],"outputNames":["r"],"outputTypes":["int32"]}]}`

	code, env := do(t, r, http.MethodPost, "/api/v1/languages/echo/fragment", body)
	if code != http.StatusOK || !strings.Contains(string(env.Data), "def f():") {
		t.Fatalf("fragment = %d %s", code, env.Data)
	}

	bad := strings.Replace(body, `"int32"]`, `"set<"]`, 1)
	code, env = do(t, r, http.MethodPost, "/api/v1/languages/echo/fragment", bad)
	if code != http.StatusBadRequest || env.Code != pkgerrors.MalformedType {
		t.Fatalf("malformed fragment = %d %+v", code, env)
	}

	code, _ = do(t, r, http.MethodPost, "/api/v1/languages/echo/fragment", `{`)
	if code != http.StatusBadRequest {
		t.Fatalf("invalid json = %d", code)
	}
}

func TestExecuteEndpoint(t *testing.T) {
	r := newRouter(t)
	req := service.ExecuteRequest{
		Language: "echo",
		Fragment: "body",
		Functions: []service.FunctionDef{{
			Name:        "id",
			InputNames:  []string{"xs"},
			InputTypes:  []string{"list<int64>"},
			OutputNames: []string{"ys"},
			OutputTypes: []string{"list<int64>"},
		}},
		TestCases: []service.TestCaseDef{
			{Function: "id", InputValues: []string{"{1,2}"}, ExpectedOutputValues: []string{"{1,2}"}},
			{Function: "id", InputValues: []string{"{}"}, ExpectedOutputValues: []string{"{}"}},
		},
	}
	raw, _ := json.Marshal(req)

	code, env := do(t, r, http.MethodPost, "/api/v1/execute", string(raw))
	if code != http.StatusOK {
		t.Fatalf("execute status = %d %s", code, env.Message)
	}
	var resp service.ExecuteResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(resp.Results) != 2 || !resp.Results[1].Success || resp.Results[1].Output != "body" {
		t.Fatalf("results = %+v", resp.Results)
	}

	req.Language = "cobol"
	raw, _ = json.Marshal(req)
	code, env = do(t, r, http.MethodPost, "/api/v1/execute", string(raw))
	if code != http.StatusNotFound || env.Code != pkgerrors.UnknownLanguage {
		t.Fatalf("unknown language = %d %+v", code, env)
	}
}
