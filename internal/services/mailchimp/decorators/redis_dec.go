package decorators

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/cluemart-landing/internal/models"
	"github.com/Nazarious-ucu/cluemart-landing/internal/services/mailchimp"
)

type memberAdder interface {
	AddMember(ctx context.Context, email string, source models.Source) error
}

type cacheClient[T any] interface {
	Set(ctx context.Context, key string, value T) error
	Get(ctx context.Context, key string) (T, error)
}

// CachedMemberAdder answers a repeat of an accepted (address, role) pair from
// cache instead of calling the provider again. A different role always reaches
// the provider. Cache failures fall through to the provider.
type CachedMemberAdder struct {
	inner      memberAdder
	cache      cacheClient[models.SignupRecord]
	audienceID string
	logger     zerolog.Logger
	now        func() time.Time
}

func NewCachedMemberAdder(
	inner memberAdder,
	cache cacheClient[models.SignupRecord],
	audienceID string,
	logger zerolog.Logger,
) *CachedMemberAdder {
	return &CachedMemberAdder{
		inner:      inner,
		cache:      cache,
		audienceID: audienceID,
		logger:     logger.With().Str("component", "CachedMemberAdder").Logger(),
		now:        time.Now,
	}
}

func (s *CachedMemberAdder) AddMember(ctx context.Context, email string, source models.Source) error {
	key := s.key(email, source)

	if _, err := s.cache.Get(ctx, key); err == nil {
		s.logger.Info().
			Ctx(ctx).
			Str("key", key).
			Msg("signup already accepted, skipping provider")
		return nil
	}

	err := s.inner.AddMember(ctx, email, source)
	if err != nil && !errors.Is(err, mailchimp.ErrAlreadyMember) {
		return err
	}

	record := models.SignupRecord{Source: source, Accepted: s.now().UTC()}
	if cerr := s.cache.Set(ctx, key, record); cerr != nil {
		s.logger.Warn().
			Ctx(ctx).
			Str("key", key).
			Err(cerr).
			Msg("cache set failed")
	}

	return err
}

// key hashes the address so raw emails never land in Redis.
func (s *CachedMemberAdder) key(email string, source models.Source) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return s.audienceID + ":" + hex.EncodeToString(sum[:]) + ":" + source.String()
}
