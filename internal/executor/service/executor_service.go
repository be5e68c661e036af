// Package service implements the executor operations shared by the HTTP,
// gRPC and queue transports.
package service

import (
	"context"
	"strings"
	"time"

	"polyrun/internal/common/mq"
	"polyrun/internal/executor/dispatch"
	"polyrun/internal/executor/model"
	pkgerrors "polyrun/pkg/errors"
	"polyrun/pkg/utils/logger"

	"go.uber.org/zap"
)

const (
	defaultMaxConcurrent  = 4
	defaultAcquireTimeout = 30 * time.Second
	defaultMaxTestCases   = 1000
	defaultMaxFragment    = 256 << 10
)

// Options bounds the work a service accepts.
type Options struct {
	// MaxConcurrent is the number of executions that may run at once.
	MaxConcurrent  int           `yaml:"maxConcurrent"`
	// AcquireTimeout is how long a request waits for a free slot.
	AcquireTimeout time.Duration `yaml:"acquireTimeout"`
	MaxTestCases   int           `yaml:"maxTestCases"`
	MaxFragment    int           `yaml:"maxFragmentBytes"`
}

// ExecutorService serves the six executor operations.
type ExecutorService struct {
	dispatcher     *dispatch.Dispatcher
	slots          *mq.TokenLimiter
	acquireTimeout time.Duration
	maxTestCases   int
	maxFragment    int
}

func NewExecutorService(dispatcher *dispatch.Dispatcher, opts Options) *ExecutorService {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = defaultMaxConcurrent
	}
	if opts.AcquireTimeout <= 0 {
		opts.AcquireTimeout = defaultAcquireTimeout
	}
	if opts.MaxTestCases <= 0 {
		opts.MaxTestCases = defaultMaxTestCases
	}
	if opts.MaxFragment <= 0 {
		opts.MaxFragment = defaultMaxFragment
	}
	return &ExecutorService{
		dispatcher:     dispatcher,
		slots:          mq.NewTokenLimiter(opts.MaxConcurrent),
		acquireTimeout: opts.AcquireTimeout,
		maxTestCases:   opts.MaxTestCases,
		maxFragment:    opts.MaxFragment,
	}
}

// Ping answers a liveness probe.
func (s *ExecutorService) Ping(ctx context.Context) PingResponse {
	return PingResponse{Message: "pong"}
}

// SupportedLanguages lists every registered language id.
func (s *ExecutorService) SupportedLanguages(ctx context.Context) LanguagesResponse {
	return LanguagesResponse{Languages: s.dispatcher.Languages()}
}

// VersionInformation describes the toolchain behind language.
func (s *ExecutorService) VersionInformation(ctx context.Context, language string) (model.VersionInfo, error) {
	if err := requireLanguage(language); err != nil {
		return model.VersionInfo{}, err
	}
	return s.dispatcher.VersionInfo(ctx, language)
}

// Blacklist lists the tokens a fragment for language may not contain.
func (s *ExecutorService) Blacklist(ctx context.Context, language string) (BlacklistResponse, error) {
	if err := requireLanguage(language); err != nil {
		return BlacklistResponse{}, err
	}
	tokens, err := s.dispatcher.Blacklist(ctx, language)
	if err != nil {
		return BlacklistResponse{}, err
	}
	return BlacklistResponse{Language: language, Tokens: tokens}, nil
}

// Fragment renders skeleton source for the requested functions. Malformed
// signatures fail the call.
func (s *ExecutorService) Fragment(ctx context.Context, req FragmentRequest) (FragmentResponse, error) {
	if err := requireLanguage(req.Language); err != nil {
		return FragmentResponse{}, err
	}
	if len(req.Functions) == 0 {
		return FragmentResponse{}, pkgerrors.ValidationError("functions", "at least one function is required")
	}
	functions, _, err := parseFunctions(req.Functions)
	if err != nil {
		return FragmentResponse{}, err
	}
	fragment, err := s.dispatcher.Fragment(ctx, req.Language, functions)
	if err != nil {
		return FragmentResponse{}, err
	}
	return FragmentResponse{Fragment: fragment}, nil
}

// Execute parses the request and runs it. Malformed signatures or values
// are reported as fatal results for every test case; an unknown language, a
// full worker pool or a backend crash fail the call.
func (s *ExecutorService) Execute(ctx context.Context, req ExecuteRequest) (*ExecuteResponse, error) {
	if err := requireLanguage(req.Language); err != nil {
		return nil, err
	}
	if len(req.TestCases) > s.maxTestCases {
		return nil, pkgerrors.Newf(pkgerrors.InvalidParams, "too many test cases: %d > %d", len(req.TestCases), s.maxTestCases)
	}
	if len(req.Fragment) > s.maxFragment {
		return nil, pkgerrors.Newf(pkgerrors.InvalidParams, "fragment too large: %d bytes > %d", len(req.Fragment), s.maxFragment)
	}
	ctx = logger.WithLanguage(ctx, req.Language)
	if err := s.dispatcher.Supports(ctx, req.Language); err != nil {
		return nil, err
	}

	n := len(req.TestCases)
	_, functions, err := parseFunctions(req.Functions)
	var testCases []model.TestCase
	if err == nil {
		testCases, err = parseTestCases(req.TestCases, functions)
	}
	if err != nil {
		logger.Info(ctx, "rejecting malformed execute request", zap.Error(err))
		return &ExecuteResponse{Results: model.FatalResults(n, err.Error())}, nil
	}

	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.slots.Release()

	start := time.Now()
	results, err := s.dispatcher.Execute(ctx, req.Language, req.Fragment, testCases)
	if err != nil {
		logger.Error(ctx, "execute failed", zap.Error(err))
		return nil, err
	}

	passed, fatal := 0, 0
	for _, r := range results {
		if r.Success {
			passed++
		}
		if r.Fatal {
			fatal++
		}
	}
	logger.Info(ctx, "execute finished",
		zap.Int("test_cases", n),
		zap.Int("passed", passed),
		zap.Int("fatal", fatal),
		zap.Duration("elapsed", time.Since(start)))
	return &ExecuteResponse{Results: results}, nil
}

func (s *ExecutorService) acquire(ctx context.Context) error {
	actx, cancel := context.WithTimeout(ctx, s.acquireTimeout)
	defer cancel()
	if err := s.slots.Acquire(actx); err != nil {
		if ctx.Err() != nil {
			return pkgerrors.Wrap(ctx.Err(), pkgerrors.Timeout)
		}
		return pkgerrors.Newf(pkgerrors.TooManyRequests, "no execution slot free within %s", s.acquireTimeout)
	}
	return nil
}

// InFlight is the number of executions holding a slot.
func (s *ExecutorService) InFlight() int {
	return s.slots.InUse()
}

func requireLanguage(language string) error {
	if strings.TrimSpace(language) == "" {
		return pkgerrors.ValidationError("language", "required")
	}
	return nil
}
