package middleware

import (
	"sync"
	"time"

	"polyrun/pkg/errors"
	"polyrun/pkg/utils/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig configures the request limiter.
type RateLimitConfig struct {
	Enabled     bool    `yaml:"enabled"`
	GlobalRPS   float64 `yaml:"globalRps"`
	GlobalBurst int     `yaml:"globalBurst"`
	ClientRPS   float64 `yaml:"clientRps"`
	ClientBurst int     `yaml:"clientBurst"`
	// ClientIdleTTL drops per-client limiters that have not been used for this long.
	ClientIdleTTL time.Duration `yaml:"clientIdleTtl"`
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests globally and per client IP.
type RateLimiter struct {
	cfg    RateLimitConfig
	global *rate.Limiter
	onDeny func()

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

// NewRateLimiter builds a limiter. onDeny is invoked for every rejected request and may be nil.
func NewRateLimiter(cfg RateLimitConfig, onDeny func()) *RateLimiter {
	if cfg.GlobalBurst <= 0 {
		cfg.GlobalBurst = int(cfg.GlobalRPS) * 2
		if cfg.GlobalBurst <= 0 {
			cfg.GlobalBurst = 1
		}
	}
	if cfg.ClientBurst <= 0 {
		cfg.ClientBurst = 1
	}
	if cfg.ClientIdleTTL <= 0 {
		cfg.ClientIdleTTL = 10 * time.Minute
	}
	global := rate.NewLimiter(rate.Inf, 0)
	if cfg.GlobalRPS > 0 {
		global = rate.NewLimiter(rate.Limit(cfg.GlobalRPS), cfg.GlobalBurst)
	}
	return &RateLimiter{
		cfg:     cfg,
		global:  global,
		onDeny:  onDeny,
		clients: make(map[string]*clientLimiter),
	}
}

// Allow reports whether a request from ip may proceed now.
func (rl *RateLimiter) Allow(ip string) bool {
	if !rl.global.Allow() {
		return false
	}
	if rl.cfg.ClientRPS <= 0 {
		return true
	}
	return rl.clientLimiter(ip, time.Now()).Allow()
}

func (rl *RateLimiter) clientLimiter(ip string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, cl := range rl.clients {
		if now.Sub(cl.lastSeen) > rl.cfg.ClientIdleTTL {
			delete(rl.clients, key)
		}
	}
	cl, ok := rl.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(rl.cfg.ClientRPS), rl.cfg.ClientBurst)}
		rl.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// Middleware rejects throttled requests with TooManyRequests.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			if rl.onDeny != nil {
				rl.onDeny()
			}
			response.AbortWithErrorCode(c, errors.TooManyRequests, "")
			return
		}
		c.Next()
	}
}
