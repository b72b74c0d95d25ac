package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/cluemart-landing/internal/models"
	"github.com/Nazarious-ucu/cluemart-landing/internal/services/subscriptions"
)

const (
	timeoutDuration = 10 * time.Second
	maxBodyBytes    = 64 << 10
)

// Messages returned to the browser. Provider detail never appears here.
const (
	MsgInvalidEmail  = "Invalid email address."
	MsgNotConfigured = "Subscription backend is not configured."
	MsgProvider      = "Failed to subscribe with Mailchimp."
	MsgUnexpected    = "Unexpected error. Please try again later."
)

type subscriber interface {
	Subscribe(ctx context.Context, req models.SubscriptionRequest) error
}

type Handler struct {
	service subscriber
	logger  zerolog.Logger
}

func NewHandler(svc subscriber, logger zerolog.Logger) *Handler {
	return &Handler{
		service: svc,
		logger:  logger.With().Str("component", "SubscribeHandler").Logger(),
	}
}

// Subscribe
// @Summary Join the launch mailing list
// @Description Forwards an email signup to the mailing list. Re-subscribing an existing address succeeds.
// @Tags subscription
// @Accept json
// @Produce json
// @Param request body models.SubscriptionRequest true "Signup"
// @Success 200 {object} models.SubscriptionResult
// @Failure 400 {object} models.SubscriptionResult
// @Failure 429 {object} models.SubscriptionResult
// @Failure 500 {object} models.SubscriptionResult
// @Router /subscribe [post]
func (h *Handler) Subscribe(c *gin.Context) {
	payload, ok := decodeBody(c.Request.Body)
	if !ok {
		h.logger.Debug().Msg("unreadable subscribe body, treating as empty")
	}

	// A non-string email is indistinguishable from a missing one.
	email, _ := payload["email"].(string)
	source, _ := payload["source"].(string)

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	err := h.service.Subscribe(ctx, models.SubscriptionRequest{
		Email:  email,
		Source: models.ParseSource(source),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SubscriptionResult{OK: true})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, subscriptions.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, models.SubscriptionResult{Error: MsgInvalidEmail})
	case errors.Is(err, subscriptions.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, models.SubscriptionResult{Error: MsgNotConfigured})
	case errors.Is(err, subscriptions.ErrProvider):
		c.JSON(http.StatusInternalServerError, models.SubscriptionResult{Error: MsgProvider})
	default:
		h.logger.Error().Err(err).Msg("subscribe route error")
		c.JSON(http.StatusInternalServerError, models.SubscriptionResult{Error: MsgUnexpected})
	}
}

// decodeBody returns the JSON object in body, or false when there is none.
func decodeBody(body io.Reader) (map[string]any, bool) {
	if body == nil {
		return nil, false
	}
	raw, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, false
	}
	return payload, payload != nil
}
