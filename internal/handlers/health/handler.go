package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nazarious-ucu/cluemart-landing/internal/prober"
)

type statusReader interface {
	Status() prober.Status
}

type Response struct {
	Status     string        `json:"status"`
	Configured bool          `json:"configured"`
	Provider   prober.Status `json:"provider"`
}

type Handler struct {
	probe      statusReader
	configured bool
}

// NewHandler takes a nil probe when the backend is not configured.
func NewHandler(probe statusReader, configured bool) *Handler {
	return &Handler{probe: probe, configured: configured}
}

// Health answers 503 once a provider ping has failed. An unconfigured backend
// is reported but does not fail the check.
func (h *Handler) Health(c *gin.Context) {
	resp := Response{Status: "ok", Configured: h.configured}
	if h.probe != nil {
		resp.Provider = h.probe.Status()
	}

	if resp.Provider.Checked && !resp.Provider.Up {
		resp.Status = "degraded"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
