package backend

import (
	"context"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"polyrun/internal/executor/model"
	"polyrun/internal/executor/numeric"
	"polyrun/internal/executor/observer"
	"polyrun/internal/executor/sandbox"
	"polyrun/internal/executor/sandbox/isolation"
	pkgerrors "polyrun/pkg/errors"
	"polyrun/pkg/utils/logger"

	"go.uber.org/zap"
)

var versionPattern = regexp.MustCompile(`\d+(?:\.\d+)+`)

// Runtime is a Backend built from a Renderer and a Toolchain. Everything it
// derives from them is computed once in NewRuntime; Execute only reads.
type Runtime struct {
	renderer  Renderer
	toolchain Toolchain
	harness   *sandbox.Harness
	isolation isolation.Provisioner
	metrics   observer.MetricsRecorder

	tolerance  numeric.Tolerance
	tokens     []string
	compile    *sandbox.CommandSpec
	run        sandbox.CommandSpec
	versionCmd []string

	versionMu sync.Mutex
	version   *model.VersionInfo
}

// NewRuntime validates the toolchain and precomputes the command lines and
// the disallowed token list.
func NewRuntime(renderer Renderer, toolchain Toolchain, deps Deps) (*Runtime, error) {
	if renderer == nil {
		return nil, pkgerrors.New(pkgerrors.BackendInitFailed).WithMessage("renderer is required")
	}
	if deps.Harness == nil {
		return nil, pkgerrors.New(pkgerrors.BackendInitFailed).WithMessage("harness is required")
	}
	if err := toolchain.Validate(); err != nil {
		return nil, pkgerrors.Wrapf(err, pkgerrors.BackendInitFailed, "invalid %s toolchain", renderer.Language())
	}

	r := &Runtime{
		renderer:  renderer,
		toolchain: toolchain,
		harness:   deps.Harness,
		isolation: deps.Isolation,
		metrics:   observer.OrNoop(deps.Metrics),
		tolerance: toolchain.Tolerance(),
		tokens:    NormalizeTokens(append(renderer.DisallowedTokens(), toolchain.ExtraDisallowedTokens...)),
	}

	if strings.TrimSpace(toolchain.CompileCmd) != "" {
		argv, err := toolchain.buildCommand(toolchain.CompileCmd)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, pkgerrors.BackendInitFailed, "invalid %s compile command", renderer.Language())
		}
		r.compile = &sandbox.CommandSpec{
			Argv:        argv,
			Env:         toolchain.Env,
			IdleTimeout: toolchain.CompileIdleTimeout,
			MaxWait:     toolchain.CompileMaxWait,
		}
	}

	argv, err := toolchain.buildCommand(toolchain.RunCmd)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, pkgerrors.BackendInitFailed, "invalid %s run command", renderer.Language())
	}
	r.run = sandbox.CommandSpec{
		Argv:        argv,
		Env:         toolchain.Env,
		IdleTimeout: toolchain.RunIdleTimeout,
		MaxWait:     toolchain.RunMaxWait,
	}

	if strings.TrimSpace(toolchain.VersionCmd) != "" {
		if r.versionCmd, err = toolchain.buildCommand(toolchain.VersionCmd); err != nil {
			return nil, pkgerrors.Wrapf(err, pkgerrors.BackendInitFailed, "invalid %s version command", renderer.Language())
		}
	}
	return r, nil
}

func (r *Runtime) Language() string {
	return r.renderer.Language()
}

// Renderer exposes the adapter for callers that need raw rendering.
func (r *Runtime) Renderer() Renderer {
	return r.renderer
}

// DisallowedTokens returns a sorted copy of the blacklist.
func (r *Runtime) DisallowedTokens() []string {
	return append([]string(nil), r.tokens...)
}

func (r *Runtime) RenderSkeleton(functions []*model.FunctionSignature) (string, error) {
	for _, fn := range functions {
		if err := fn.Validate(); err != nil {
			return "", err
		}
	}
	out, err := r.renderer.RenderSkeleton(functions)
	if err != nil {
		return "", pkgerrors.Wrapf(err, pkgerrors.RenderFailure, "render %s skeleton failed", r.Language())
	}
	return out, nil
}

// Execute renders the test harness around fragment and runs it. It never
// returns fewer or more results than test cases.
func (r *Runtime) Execute(ctx context.Context, fragment string, testCases []model.TestCase) []model.Result {
	n := len(testCases)
	if n == 0 {
		return []model.Result{}
	}
	program, err := r.renderer.RenderTestHarness(fragment, testCases, r.tolerance)
	if err != nil {
		err = pkgerrors.Wrapf(err, pkgerrors.RenderFailure, "render %s test harness failed", r.Language())
		logger.Info(ctx, "render test harness failed", zap.String("language", r.Language()), zap.Error(err))
		return model.FatalResults(n, sandbox.Describe(err))
	}

	return r.harness.Execute(ctx, sandbox.RunRequest{
		Language:  r.Language(),
		Files:     []sandbox.SourceFile{{Name: r.toolchain.SourceFile, Content: program}},
		Compile:   r.compile,
		Run:       r.run,
		Isolation: r.isolation,
	}, n)
}

// FetchVersionInfo runs the version command on the host once and caches a
// successful answer. Failures are not cached.
func (r *Runtime) FetchVersionInfo(ctx context.Context) (model.VersionInfo, error) {
	r.versionMu.Lock()
	defer r.versionMu.Unlock()
	if r.version != nil {
		return *r.version, nil
	}

	info := platformInfo()
	info.CompilerName = r.toolchain.CompilerName
	if len(r.versionCmd) > 0 {
		out, err := r.harness.ExecuteCommand(ctx, os.TempDir(), sandbox.CommandSpec{
			Argv: expandVersionArgv(r.versionCmd),
			Env:  r.toolchain.Env,
		})
		if err != nil {
			return model.VersionInfo{}, pkgerrors.Wrapf(err, pkgerrors.BackendInitFailed, "query %s version failed", r.Language())
		}
		version := parseVersion(out)
		info.LanguageVersion = version
		info.CompilerVersion = version
	}
	r.version = &info
	return info, nil
}

// parseVersion picks the first dotted number from the first non-empty line.
func parseVersion(out string) string {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if v := versionPattern.FindString(line); v != "" {
			return v
		}
		return line
	}
	return ""
}

// version commands run outside any scratch directory
func expandVersionArgv(argv []string) []string {
	out := make([]string, len(argv))
	for i, a := range argv {
		out[i] = strings.ReplaceAll(a, sandbox.DirPlaceholder, os.TempDir())
	}
	return out
}

// NormalizeTokens trims, drops empties and duplicates, and sorts.
func NormalizeTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

// ParseTokenList reads one token per line; blank lines and lines starting
// with # are skipped.
func ParseTokenList(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		out = append(out, strings.TrimSpace(line))
	}
	return NormalizeTokens(out)
}
