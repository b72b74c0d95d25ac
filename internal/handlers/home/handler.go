package home

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/cluemart-landing/internal/landing"
)

type TeasersResponse struct {
	Teasers    []string `json:"teasers"`
	IntervalMs int64    `json:"interval_ms"`
}

type Handler struct {
	page   landing.Page
	now    func() time.Time
	logger zerolog.Logger
}

func NewHandler(page landing.Page, now func() time.Time, logger zerolog.Logger) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{page: page, now: now, logger: logger}
}

// Index renders the landing page.
func (h *Handler) Index(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.page.Render(&buf, h.now()); err != nil {
		h.logger.Error().Err(err).Msg("failed to render landing page")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// Countdown
// @Summary Time left until launch
// @Tags landing
// @Produce json
// @Success 200 {object} landing.TimeLeft
// @Router /countdown [get]
func (h *Handler) Countdown(c *gin.Context) {
	c.JSON(http.StatusOK, landing.Countdown(h.page.LaunchAt, h.now()))
}

// Teasers
// @Summary Rotating teaser copy
// @Tags landing
// @Produce json
// @Success 200 {object} TeasersResponse
// @Router /teasers [get]
func (h *Handler) Teasers(c *gin.Context) {
	c.JSON(http.StatusOK, TeasersResponse{
		Teasers:    landing.Teasers,
		IntervalMs: h.page.TeaserInterval.Milliseconds(),
	})
}
