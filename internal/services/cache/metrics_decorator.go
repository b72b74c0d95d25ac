package cache

import (
	"context"
	"errors"

	"github.com/Nazarious-ucu/cluemart-landing/internal/metrics"
)

type cache[T any] interface {
	Set(ctx context.Context, key string, value T) error
	Get(ctx context.Context, key string) (T, error)
}

// MetricsDecorator counts lookups as hit, miss or error.
type MetricsDecorator[T any] struct {
	next cache[T]
	m    *metrics.Metrics
}

func NewMetricsDecorator[T any](next cache[T], m *metrics.Metrics) *MetricsDecorator[T] {
	return &MetricsDecorator[T]{next: next, m: m}
}

func (d *MetricsDecorator[T]) Set(ctx context.Context, key string, value T) error {
	err := d.next.Set(ctx, key, value)
	if err != nil {
		d.m.TechnicalErrors.WithLabelValues("cache_set", "warning").Inc()
	}
	return err
}

//nolint:ireturn
func (d *MetricsDecorator[T]) Get(ctx context.Context, key string) (T, error) {
	value, err := d.next.Get(ctx, key)
	switch {
	case err == nil:
		d.m.CacheLookups.WithLabelValues("hit").Inc()
	case errors.Is(err, ErrMiss):
		d.m.CacheLookups.WithLabelValues("miss").Inc()
	default:
		d.m.CacheLookups.WithLabelValues("error").Inc()
	}
	return value, err
}
