// Package sandbox materializes a rendered program in a scratch directory,
// compiles and runs it as external processes under output-idle and absolute
// timeouts, and turns its console output into per-test-case results.
package sandbox

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"polyrun/internal/executor/model"
	"polyrun/internal/executor/observer"
	"polyrun/internal/executor/sandbox/isolation"
	pkgerrors "polyrun/pkg/errors"
	"polyrun/pkg/utils/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultIdleTimeout    = 1500 * time.Millisecond
	defaultJoinInterval   = time.Second
	defaultMaxWaitFactor  = 15
	defaultMaxOutputBytes = 8 << 20

	// DirPlaceholder in argv and env expands to the scratch directory as
	// the command sees it.
	DirPlaceholder = "{dir}"
)

// Config holds harness defaults.
type Config struct {
	// WorkRoot is the parent of per-run scratch directories. Defaults to os.TempDir().
	WorkRoot       string        `yaml:"workRoot"`
	IdleTimeout    time.Duration `yaml:"idleTimeout"`
	JoinInterval   time.Duration `yaml:"joinInterval"`
	MaxWaitFactor  int           `yaml:"maxWaitFactor"`
	MaxOutputBytes int           `yaml:"maxOutputBytes"`
}

// SourceFile is one file written into the scratch directory.
type SourceFile struct {
	Name    string
	Content string
}

// RunRequest is one compile-and-run of a rendered program.
type RunRequest struct {
	// Language labels logs and metrics and prefixes the scratch directory name.
	Language string
	Files    []SourceFile
	Compile  *CommandSpec
	Run      CommandSpec
	// Isolation may be nil for direct execution.
	Isolation isolation.Provisioner
}

// RunOutput is the console text of the run step plus timings.
type RunOutput struct {
	Output string
	// CompileMillis is NaN when there was no compile step.
	CompileMillis float64
	ExecMillis    float64
}

// Harness runs programs. It holds no per-run state and is safe for
// concurrent use.
type Harness struct {
	cfg     Config
	metrics observer.MetricsRecorder
}

// NewHarness creates a harness with defaults filled in.
func NewHarness(cfg Config, metrics observer.MetricsRecorder) *Harness {
	if cfg.WorkRoot == "" {
		cfg.WorkRoot = os.TempDir()
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = defaultIdleTimeout
	}
	if cfg.JoinInterval <= 0 {
		cfg.JoinInterval = defaultJoinInterval
	}
	if cfg.MaxWaitFactor <= 0 {
		cfg.MaxWaitFactor = defaultMaxWaitFactor
	}
	if cfg.MaxOutputBytes == 0 {
		cfg.MaxOutputBytes = defaultMaxOutputBytes
	}
	return &Harness{cfg: cfg, metrics: observer.OrNoop(metrics)}
}

// Config returns the effective configuration.
func (h *Harness) Config() Config {
	return h.cfg
}

// Run creates a scratch directory, provisions isolation, writes the files,
// compiles, and runs. Teardown and directory removal happen on every path;
// their failures are logged, never returned.
func (h *Harness) Run(ctx context.Context, req RunRequest) (RunOutput, error) {
	out := RunOutput{CompileMillis: math.NaN(), ExecMillis: math.NaN()}

	dir, err := h.createScratchDir(req.Language)
	if err != nil {
		return out, err
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			logger.Warn(ctx, "remove scratch dir failed", zap.String("dir", dir), zap.Error(err))
		}
	}()

	isoCtx := h.provision(ctx, req, dir)
	defer func() {
		// teardown must run even when the request context is already done
		tctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		if err := isoCtx.Teardown(tctx); err != nil {
			logger.Warn(ctx, "teardown isolation failed", zap.String("id", isoCtx.ID()), zap.Error(err))
		}
	}()

	if err := writeFiles(dir, req.Files); err != nil {
		return out, err
	}

	if req.Compile != nil {
		start := time.Now()
		_, err := h.executeStep(ctx, dir, h.bind(*req.Compile, isoCtx), pkgerrors.CompileFailure)
		elapsed := time.Since(start)
		out.CompileMillis = millis(elapsed)
		h.metrics.ObserveCompile(ctx, req.Language, err == nil, elapsed)
		if err != nil {
			return out, err
		}
	}

	start := time.Now()
	console, err := h.executeStep(ctx, dir, h.bind(req.Run, isoCtx), pkgerrors.RuntimeFailure)
	elapsed := time.Since(start)
	out.ExecMillis = millis(elapsed)
	h.metrics.ObserveRun(ctx, req.Language, err == nil, elapsed)
	if err != nil {
		return out, err
	}
	out.Output = console
	return out, nil
}

// Execute runs req and parses its output into exactly n results. Any failure
// becomes n copies of one fatal result describing it.
func (h *Harness) Execute(ctx context.Context, req RunRequest, n int) []model.Result {
	out, err := h.Run(ctx, req)
	if err != nil {
		logger.Info(ctx, "execution failed",
			zap.String("language", req.Language),
			zap.Int("code", int(pkgerrors.GetCode(err))),
			zap.Error(err))
		return model.FatalResults(n, Describe(err))
	}
	perf := model.PerformanceIndicators{
		TotalCompileMillis:      out.CompileMillis,
		TotalExecutionMillis:    out.ExecMillis,
		TestCaseExecutionMillis: math.NaN(),
	}
	return model.PadResults(ParseResults(out.Output, perf), n)
}

func (h *Harness) createScratchDir(language string) (string, error) {
	if err := os.MkdirAll(h.cfg.WorkRoot, 0o755); err != nil {
		return "", pkgerrors.Wrapf(err, pkgerrors.SandboxSystemError, "create work root failed")
	}
	prefix := language
	if prefix == "" {
		prefix = "run"
	}
	dir := filepath.Join(h.cfg.WorkRoot, prefix+"-"+uuid.NewString())
	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", pkgerrors.Wrapf(err, pkgerrors.SandboxSystemError, "create scratch dir failed")
	}
	return dir, nil
}

// provision binds an isolation context to dir. Any problem downgrades the
// run to direct execution.
func (h *Harness) provision(ctx context.Context, req RunRequest, dir string) isolation.Context {
	direct, _ := isolation.Direct{}.Provision(ctx, dir)
	p := req.Isolation
	if p == nil {
		return direct
	}
	if _, ok := p.(isolation.Direct); ok {
		return direct
	}
	if !p.Supported() {
		logger.Warn(ctx, "isolation not supported on this host, running directly",
			zap.String("provisioner", p.Name()))
		h.metrics.ObserveIsolationFallback(ctx, req.Language, p.Name())
		return direct
	}
	isoCtx, err := p.Provision(ctx, dir)
	if err != nil {
		logger.Warn(ctx, "provision isolation failed, running directly",
			zap.String("provisioner", p.Name()), zap.Error(err))
		h.metrics.ObserveIsolationFallback(ctx, req.Language, p.Name())
		return direct
	}
	return isoCtx
}

// bind expands {dir} and wraps the command for the isolation context.
func (h *Harness) bind(spec CommandSpec, isoCtx isolation.Context) CommandSpec {
	workdir := isoCtx.Workdir()
	argv := expandAll(spec.Argv, workdir)
	env := expandAll(spec.Env, workdir)
	spec.Argv = isoCtx.Wrap(argv, env)
	spec.Env = env
	return spec
}

func expandAll(items []string, dir string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.ReplaceAll(s, DirPlaceholder, dir)
	}
	return out
}

func writeFiles(dir string, files []SourceFile) error {
	if len(files) == 0 {
		return pkgerrors.New(pkgerrors.SandboxSystemError).WithMessage("no source files to write")
	}
	for _, f := range files {
		name := filepath.Clean(f.Name)
		if f.Name == "" || filepath.IsAbs(name) || name == ".." || strings.HasPrefix(name, ".."+string(filepath.Separator)) {
			return pkgerrors.Newf(pkgerrors.SandboxSystemError, "invalid source file name %q", f.Name)
		}
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return pkgerrors.Wrapf(err, pkgerrors.SandboxSystemError, "create source dir failed")
		}
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return pkgerrors.Wrapf(err, pkgerrors.SandboxSystemError, "write %s failed", f.Name)
		}
	}
	return nil
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
