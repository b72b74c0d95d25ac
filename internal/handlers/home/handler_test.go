package home_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/cluemart-landing/internal/handlers/home"
	"github.com/Nazarious-ucu/cluemart-landing/internal/landing"
)

var launch = time.Date(2025, time.December, 24, 11, 1, 0, 0, time.UTC)

func setupRouter(now time.Time) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := home.NewHandler(landing.Page{
		ProductName:    "ClueMart",
		LaunchAt:       launch,
		TeaserInterval: 5 * time.Second,
		SubscribeURL:   "/api/subscribe",
	}, func() time.Time { return now }, zerolog.Nop())

	r := gin.New()
	r.GET("/", h.Index)
	r.GET("/api/countdown", h.Countdown)
	r.GET("/api/teasers", h.Teasers)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestIndex(t *testing.T) {
	w := get(setupRouter(launch.Add(-time.Minute)), "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "ClueMart Beta opens in")
}

func TestCountdownEndpoint(t *testing.T) {
	w := get(setupRouter(launch.Add(-(26*time.Hour + 30*time.Second))), "/api/countdown")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"days":1,"hours":2,"minutes":0,"seconds":30,"launched":false}`, w.Body.String())

	w = get(setupRouter(launch.Add(time.Second)), "/api/countdown")
	assert.JSONEq(t, `{"days":0,"hours":0,"minutes":0,"seconds":0,"launched":true}`, w.Body.String())
}

func TestTeasersEndpoint(t *testing.T) {
	w := get(setupRouter(launch), "/api/teasers")
	require.Equal(t, http.StatusOK, w.Code)

	var resp home.TeasersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, landing.Teasers, resp.Teasers)
	assert.Equal(t, int64(5000), resp.IntervalMs)
}
