package ai

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrBreakerOpen is returned without contacting the upstream when the
// breaker has tripped.
var ErrBreakerOpen = errors.New("suggestion service circuit breaker is open")

type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
	breakerHalfOpen
)

type BreakerConfig struct {
	MaxFailures      int
	Timeout          time.Duration
	HalfOpenMaxCalls int
}

func DefaultBreakerConfig() *BreakerConfig {
	return &BreakerConfig{
		MaxFailures:      5,
		Timeout:          30 * time.Second,
		HalfOpenMaxCalls: 3,
	}
}

// BreakerGenerator wraps a TextGenerator with a circuit breaker so a
// flapping upstream fails fast instead of holding every request for the
// full client timeout.
type BreakerGenerator struct {
	inner TextGenerator

	mu              sync.Mutex
	state           breakerState
	failureCount    int
	successCount    int
	lastFailureTime time.Time

	maxFailures      int
	timeout          time.Duration
	halfOpenMaxCalls int
}

func NewBreakerGenerator(inner TextGenerator, config *BreakerConfig) *BreakerGenerator {
	if config == nil {
		config = DefaultBreakerConfig()
	}

	return &BreakerGenerator{
		inner:            inner,
		state:            breakerClosed,
		maxFailures:      config.MaxFailures,
		timeout:          config.Timeout,
		halfOpenMaxCalls: config.HalfOpenMaxCalls,
	}
}

func (b *BreakerGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if !b.allow() {
		return "", ErrBreakerOpen
	}

	text, err := b.inner.GenerateText(ctx, prompt)
	if err != nil {
		b.recordFailure()
		return "", err
	}

	b.recordSuccess()
	return text, nil
}

func (b *BreakerGenerator) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case breakerClosed:
		return true
	case breakerOpen:
		if time.Since(b.lastFailureTime) >= b.timeout {
			b.state = breakerHalfOpen
			b.successCount = 0
			return true
		}
		return false
	case breakerHalfOpen:
		return b.successCount < b.halfOpenMaxCalls
	default:
		return false
	}
}

func (b *BreakerGenerator) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount++
	b.lastFailureTime = time.Now()

	if b.state == breakerHalfOpen || b.failureCount >= b.maxFailures {
		b.state = breakerOpen
	}
}

func (b *BreakerGenerator) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case breakerHalfOpen:
		b.successCount++
		if b.successCount >= b.halfOpenMaxCalls {
			b.state = breakerClosed
			b.failureCount = 0
		}
	case breakerClosed:
		b.failureCount = 0
	}
}
