package dispatch

import (
	"context"
	"strings"

	"polyrun/internal/executor/model"
	"polyrun/internal/executor/observer"
	pkgerrors "polyrun/pkg/errors"
	"polyrun/pkg/utils/logger"

	"go.uber.org/zap"
)

// Dispatcher resolves a backend per call and wraps its operations with the
// blacklist policy and the result-count guarantee.
type Dispatcher struct {
	registry *Registry
	metrics  observer.MetricsRecorder
}

func NewDispatcher(registry *Registry, metrics observer.MetricsRecorder) *Dispatcher {
	return &Dispatcher{registry: registry, metrics: observer.OrNoop(metrics)}
}

// Languages lists the supported language ids.
func (d *Dispatcher) Languages() []string {
	return d.registry.Languages()
}

// Supports fails with UnknownLanguage when no backend serves language, and
// with BackendInitFailed when it cannot be built.
func (d *Dispatcher) Supports(ctx context.Context, language string) error {
	_, err := d.registry.Resolve(ctx, language)
	return err
}

// Execute runs fragment against testCases and returns exactly
// len(testCases) results in order. An error means the request could not be
// served at all; failures of the user code are reported in the results.
func (d *Dispatcher) Execute(ctx context.Context, language, fragment string, testCases []model.TestCase) (results []model.Result, err error) {
	b, err := d.registry.Resolve(ctx, language)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithLanguage(ctx, b.Language())

	if violations := Violations(b.DisallowedTokens(), fragment); len(violations) > 0 {
		d.metrics.ObserveBlacklistRejection(ctx, b.Language())
		d.metrics.ObserveExecution(ctx, b.Language(), observer.OutcomeBlacklisted, len(testCases))
		logger.Info(ctx, "fragment rejected by blacklist", zap.Strings("tokens", violations))
		msg := pkgerrors.Newf(pkgerrors.BlacklistViolation,
			"fragment contains disallowed tokens: %s", strings.Join(violations, ", ")).Error()
		return model.FatalResults(len(testCases), msg), nil
	}

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "backend panicked", zap.Any("panic", p), zap.Stack("stack"))
			d.metrics.ObserveExecution(ctx, b.Language(), observer.OutcomeError, len(testCases))
			results = nil
			err = pkgerrors.Newf(pkgerrors.ExecutorSystemError, "%s execute failed: %v", b.Language(), p).
				WithDetail("language", b.Language()).
				WithDetail("operation", "execute")
		}
	}()

	d.metrics.AddInFlight(1)
	defer d.metrics.AddInFlight(-1)
	raw := b.Execute(ctx, fragment, testCases)

	if len(raw) < len(testCases) {
		logger.Warn(ctx, "backend returned too few results",
			zap.Int("got", len(raw)), zap.Int("want", len(testCases)))
	}
	results = model.PadResults(raw, len(testCases))
	d.metrics.ObserveExecution(ctx, b.Language(), outcomeOf(results), len(testCases))
	return results, nil
}

// Blacklist returns the backend's disallowed tokens.
func (d *Dispatcher) Blacklist(ctx context.Context, language string) ([]string, error) {
	b, err := d.registry.Resolve(ctx, language)
	if err != nil {
		return nil, err
	}
	return b.DisallowedTokens(), nil
}

// Fragment renders the skeleton source for functions.
func (d *Dispatcher) Fragment(ctx context.Context, language string, functions []*model.FunctionSignature) (string, error) {
	b, err := d.registry.Resolve(ctx, language)
	if err != nil {
		return "", err
	}
	return b.RenderSkeleton(functions)
}

// VersionInfo describes the backend's toolchain.
func (d *Dispatcher) VersionInfo(ctx context.Context, language string) (model.VersionInfo, error) {
	b, err := d.registry.Resolve(ctx, language)
	if err != nil {
		return model.VersionInfo{}, err
	}
	info, err := b.FetchVersionInfo(ctx)
	if err != nil {
		return model.VersionInfo{}, pkgerrors.Wrapf(err, pkgerrors.ExecutorSystemError, "%s version information failed: %v", b.Language(), err).
			WithDetail("operation", "version")
	}
	return info, nil
}

// Violations lists the tokens literally present in fragment. tokens are
// expected sorted; the result keeps their order.
func Violations(tokens []string, fragment string) []string {
	var out []string
	for _, tok := range tokens {
		if tok != "" && strings.Contains(fragment, tok) {
			out = append(out, tok)
		}
	}
	return out
}

func outcomeOf(results []model.Result) string {
	outcome := observer.OutcomePassed
	for _, r := range results {
		if r.Fatal {
			return observer.OutcomeFatal
		}
		if !r.Success {
			outcome = observer.OutcomeFailed
		}
	}
	return outcome
}
