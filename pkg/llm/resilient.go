package llm

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// ResilientProvider wraps an LLMProvider with a rate limiter and a circuit
// breaker. All pipeline components go through this wrapper so a dead or
// overloaded backend fails fast instead of stacking timeouts.
type ResilientProvider struct {
	inner   LLMProvider
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

var _ LLMProvider = &ResilientProvider{}

type ResilientConfig struct {
	RatePerSecond    int
	Burst            int
	FailureThreshold uint32
	OpenTimeout      time.Duration
	HalfOpenRequests uint32
}

func DefaultResilientConfig() ResilientConfig {
	return ResilientConfig{
		RatePerSecond:    5,
		Burst:            10,
		FailureThreshold: 3,
		OpenTimeout:      30 * time.Second,
		HalfOpenRequests: 2,
	}
}

func NewResilientProvider(inner LLMProvider, cfg ResilientConfig) *ResilientProvider {
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RatePerSecond
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.HalfOpenRequests == 0 {
		cfg.HalfOpenRequests = 2
	}

	settings := gobreaker.Settings{
		Name:        "llm",
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
	}

	return &ResilientProvider{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (p *ResilientProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}
	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.inner.Chat(ctx, history, options...)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (p *ResilientProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return p.Chat(ctx, []Message{{Role: "user", Content: prompt}}, options...)
}
