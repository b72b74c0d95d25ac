package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/cluemart-landing/internal/metrics"
	"github.com/Nazarious-ucu/cluemart-landing/internal/services/cache"
)

type entry struct {
	Source string    `json:"source"`
	At     time.Time `json:"at"`
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Set(ctx context.Context, key string, value entry) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *mockCache) Get(ctx context.Context, key string) (entry, error) {
	args := m.Called(ctx, key)
	e, _ := args.Get(0).(entry)
	return e, args.Error(1)
}

func TestMetricsDecorator_Get(t *testing.T) {
	inner := &mockCache{}
	inner.On("Get", mock.Anything, "hit").Return(entry{Source: "visitor"}, nil)
	inner.On("Get", mock.Anything, "miss").Return(entry{}, cache.ErrMiss)
	inner.On("Get", mock.Anything, "down").Return(entry{}, errors.New("connection refused"))

	m := metrics.NewMetrics("test")
	d := cache.NewMetricsDecorator[entry](inner, m)

	got, err := d.Get(context.Background(), "hit")
	require.NoError(t, err)
	assert.Equal(t, "visitor", got.Source)

	_, err = d.Get(context.Background(), "miss")
	assert.ErrorIs(t, err, cache.ErrMiss)

	_, err = d.Get(context.Background(), "down")
	assert.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("error")))
}

func TestMetricsDecorator_SetError(t *testing.T) {
	inner := &mockCache{}
	inner.On("Set", mock.Anything, "k", mock.Anything).Return(errors.New("readonly")).Once()

	m := metrics.NewMetrics("test")
	d := cache.NewMetricsDecorator[entry](inner, m)

	assert.Error(t, d.Set(context.Background(), "k", entry{}))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TechnicalErrors.WithLabelValues("cache_set", "warning")))
	inner.AssertExpectations(t)
}

func TestRedisClient_UnreachableServer(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	c := cache.NewRedisClient[entry](rdb, "test:", time.Minute, zerolog.Nop())

	_, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, cache.ErrMiss)

	assert.Error(t, c.Set(context.Background(), "k", entry{Source: "visitor"}))
}

// fakeRedis serves Get/Set from a map; any other command panics.
type fakeRedis struct {
	redis.Cmdable
	data map[string][]byte
	ttls map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	raw, _ := value.([]byte)
	f.data[key] = raw
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	raw, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(raw), nil)
}

func TestRedisClient_RoundTripUnderPrefix(t *testing.T) {
	rdb := newFakeRedis()
	c := cache.NewRedisClient[entry](rdb, "signup:", time.Hour, zerolog.Nop())

	at := time.Date(2025, time.December, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, c.Set(context.Background(), "aud:abc", entry{Source: "visitor", At: at}))

	assert.Contains(t, rdb.data, "signup:aud:abc")
	assert.Equal(t, time.Hour, rdb.ttls["signup:aud:abc"])

	got, err := c.Get(context.Background(), "aud:abc")
	require.NoError(t, err)
	assert.Equal(t, "visitor", got.Source)
	assert.True(t, got.At.Equal(at))
}

func TestRedisClient_MissAndUndecodable(t *testing.T) {
	rdb := newFakeRedis()
	c := cache.NewRedisClient[entry](rdb, "signup:", time.Hour, zerolog.Nop())

	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, cache.ErrMiss)

	rdb.data["signup:broken"] = []byte("not json")
	_, err = c.Get(context.Background(), "broken")
	assert.ErrorIs(t, err, cache.ErrMiss)
}
