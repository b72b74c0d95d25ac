package subscriptions

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/cluemart-landing/internal/config"
	"github.com/Nazarious-ucu/cluemart-landing/internal/metrics"
	"github.com/Nazarious-ucu/cluemart-landing/internal/models"
	"github.com/Nazarious-ucu/cluemart-landing/internal/services/mailchimp"
)

var (
	ErrInvalidInput  = errors.New("invalid email address")
	ErrNotConfigured = config.ErrNotConfigured
	ErrProvider      = errors.New("provider rejected subscription")
)

const (
	resultOK            = "ok"
	resultAlreadyMember = "already_member"
	resultInvalid       = "invalid_input"
	resultNotConfigured = "not_configured"
	resultProvider      = "provider_error"
	resultUnexpected    = "unexpected_error"
)

type memberAdder interface {
	AddMember(ctx context.Context, email string, source models.Source) error
}

// Service forwards signups to the mailing list provider.
type Service struct {
	provider  memberAdder
	configErr error
	logger    zerolog.Logger
	m         *metrics.Metrics
}

// NewService validates cfg once; a missing credential turns every later
// Subscribe with a valid address into ErrNotConfigured.
func NewService(cfg config.Mailchimp, provider memberAdder, logger zerolog.Logger, m *metrics.Metrics) *Service {
	logger = logger.With().Str("component", "SubscriptionForwarder").Logger()
	configErr := cfg.Validate()
	if configErr != nil {
		logger.Warn().Err(configErr).Msg("subscription backend is not configured")
	}
	return &Service{
		provider:  provider,
		configErr: configErr,
		logger:    logger,
		m:         m,
	}
}

// Configured reports whether provider credentials were present at startup.
func (s *Service) Configured() bool {
	return s.configErr == nil
}

// Subscribe makes at most one provider call. Returned errors wrap
// ErrInvalidInput, ErrNotConfigured or ErrProvider; anything else is unexpected.
func (s *Service) Subscribe(ctx context.Context, req models.SubscriptionRequest) error {
	source := models.ParseSource(string(req.Source))

	if !models.ValidEmail(req.Email) {
		s.record(source, resultInvalid)
		s.m.BusinessErrors.WithLabelValues("invalid_email", "warning").Inc()
		return ErrInvalidInput
	}

	if s.configErr != nil {
		s.record(source, resultNotConfigured)
		s.m.TechnicalErrors.WithLabelValues("not_configured", "critical").Inc()
		return s.configErr
	}

	err := s.provider.AddMember(ctx, req.Email, source)
	switch {
	case err == nil:
		s.record(source, resultOK)
		s.logger.Info().Ctx(ctx).Str("source", source.String()).Msg("signup forwarded")
		return nil

	case errors.Is(err, mailchimp.ErrAlreadyMember):
		s.record(source, resultAlreadyMember)
		s.logger.Info().Ctx(ctx).Str("source", source.String()).Msg("address already subscribed")
		return nil

	case isProviderFailure(err):
		s.record(source, resultProvider)
		s.m.TechnicalErrors.WithLabelValues("provider_error", "critical").Inc()
		s.logger.Error().Ctx(ctx).Err(err).Str("source", source.String()).Msg("provider rejected signup")
		return fmt.Errorf("%w: %w", ErrProvider, err)

	default:
		s.record(source, resultUnexpected)
		s.m.TechnicalErrors.WithLabelValues("forward_error", "critical").Inc()
		return fmt.Errorf("forward signup: %w", err)
	}
}

func (s *Service) record(source models.Source, result string) {
	s.m.SubscriptionsForwarded.WithLabelValues(source.String(), result).Inc()
}

func isProviderFailure(err error) bool {
	var apiErr *mailchimp.APIError
	return errors.As(err, &apiErr) || errors.Is(err, mailchimp.ErrUnavailable)
}
