package mailchimp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Nazarious-ucu/cluemart-landing/internal/models"
)

// ErrUnavailable wraps errors produced while the breaker refuses calls.
var ErrUnavailable = errors.New("provider unavailable")

type memberAdder interface {
	AddMember(ctx context.Context, email string, source models.Source) error
}

type BreakerConfig struct {
	TimeInterval time.Duration
	TimeTimeOut  time.Duration
	RepeatNumber uint32
}

type BreakerClient struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped memberAdder
}

func NewBreakerClient(name string, cfg BreakerConfig, wrapped memberAdder) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.TimeInterval,
		Timeout:     cfg.TimeTimeOut,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.RepeatNumber
		},
		IsSuccessful: isHealthyOutcome,
	}
	return &BreakerClient{
		name:    name,
		cb:      gobreaker.NewCircuitBreaker(settings),
		wrapped: wrapped,
	}
}

func (b *BreakerClient) AddMember(ctx context.Context, email string, source models.Source) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.wrapped.AddMember(ctx, email, source)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s %w: %w", b.name, ErrUnavailable, err)
	}
	return err
}

func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

// isHealthyOutcome keeps rejected signups from tripping the breaker; only
// transport failures, throttling and 5xx answers count against the provider.
func isHealthyOutcome(err error) bool {
	if err == nil || errors.Is(err, ErrAlreadyMember) || errors.Is(err, context.Canceled) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.ClientError() && apiErr.StatusCode != http.StatusTooManyRequests
	}
	return false
}
