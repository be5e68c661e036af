// Package dispatch routes requests to language backends, enforces the token
// blacklist and guarantees one result per test case.
package dispatch

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"polyrun/internal/executor/backend"
	pkgerrors "polyrun/pkg/errors"
	"polyrun/pkg/utils/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Factory builds a backend. It is called at most once per successful
// resolution; a failed build is retried on the next lookup.
type Factory func() (backend.Backend, error)

// Registry maps language ids to lazily built backends.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory

	backends sync.Map // language -> backend.Backend
	group    singleflight.Group
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

func normalizeLanguage(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}

// Register adds a factory. Ids are case-insensitive.
func (r *Registry) Register(language string, factory Factory) error {
	key := normalizeLanguage(language)
	if key == "" {
		return pkgerrors.ValidationError("language", "required")
	}
	if factory == nil {
		return pkgerrors.ValidationError("factory", "required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[key]; exists {
		return pkgerrors.Newf(pkgerrors.InvalidParams, "language %q already registered", key)
	}
	r.factories[key] = factory
	return nil
}

// Resolve returns the backend for language, building it on first use.
// Concurrent first lookups share one build.
func (r *Registry) Resolve(ctx context.Context, language string) (backend.Backend, error) {
	key := normalizeLanguage(language)
	if b, ok := r.backends.Load(key); ok {
		return b.(backend.Backend), nil
	}

	r.mu.RLock()
	factory, ok := r.factories[key]
	r.mu.RUnlock()
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.UnknownLanguage, "unsupported language %q", language).
			WithDetail("language", language)
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		if b, ok := r.backends.Load(key); ok {
			return b, nil
		}
		b, err := factory()
		if err != nil {
			return nil, pkgerrors.Wrapf(err, pkgerrors.BackendInitFailed, "initialize %s backend failed", key)
		}
		r.backends.Store(key, b)
		logger.Info(ctx, "backend initialized", zap.String("language", key))
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(backend.Backend), nil
}

// Languages lists the registered ids, sorted.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for lang := range r.factories {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Close closes every built backend that holds resources.
func (r *Registry) Close() error {
	var firstErr error
	r.backends.Range(func(key, value interface{}) bool {
		if c, ok := value.(io.Closer); ok {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		r.backends.Delete(key)
		return true
	})
	return firstErr
}
