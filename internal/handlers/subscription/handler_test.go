package subscription_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/Nazarious-ucu/cluemart-landing/internal/config"
	"github.com/Nazarious-ucu/cluemart-landing/internal/handlers/subscription"
	"github.com/Nazarious-ucu/cluemart-landing/internal/metrics"
	"github.com/Nazarious-ucu/cluemart-landing/internal/models"
	"github.com/Nazarious-ucu/cluemart-landing/internal/services/mailchimp"
	"github.com/Nazarious-ucu/cluemart-landing/internal/services/subscriptions"
)

type mockService struct {
	err error
	got []models.SubscriptionRequest
}

func (m *mockService) Subscribe(_ context.Context, req models.SubscriptionRequest) error {
	m.got = append(m.got, req)
	return m.err
}

func setupRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := subscription.NewHandler(svc, zerolog.Nop())
	r.POST("/api/subscribe", h.Subscribe)

	return r
}

func doPost(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubscribeEndpoint(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		mockErr  error
		wantCode int
		wantBody string
	}{
		{
			name:     "success",
			body:     `{"email":"a@b.com","source":"organiser"}`,
			wantCode: http.StatusOK,
			wantBody: `{"ok":true}`,
		},
		{
			name:     "invalid input",
			body:     `{"email":"not-an-email"}`,
			mockErr:  subscriptions.ErrInvalidInput,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Invalid email address."}`,
		},
		{
			name:     "not configured",
			body:     `{"email":"a@b.com"}`,
			mockErr:  fmt.Errorf("%w: missing MAILCHIMP_API_KEY", subscriptions.ErrNotConfigured),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Subscription backend is not configured."}`,
		},
		{
			name:     "provider error",
			body:     `{"email":"a@b.com"}`,
			mockErr:  fmt.Errorf("%w: mailchimp: status 400 Invalid Resource: secret", subscriptions.ErrProvider),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Failed to subscribe with Mailchimp."}`,
		},
		{
			name:     "unexpected error",
			body:     `{"email":"a@b.com"}`,
			mockErr:  errors.New("dial tcp: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Unexpected error. Please try again later."}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockService{err: tc.mockErr}
			w := doPost(setupRouter(svc), tc.body)

			assert.Equal(t, tc.wantCode, w.Code)
			assert.JSONEq(t, tc.wantBody, w.Body.String())
		})
	}
}

func TestSubscribeEndpoint_BodyDecoding(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		wantEmail  string
		wantSource models.Source
	}{
		{name: "full", body: `{"email":"a@b.com","source":"visitor"}`, wantEmail: "a@b.com", wantSource: models.SourceVisitor},
		{name: "unknown source", body: `{"email":"a@b.com","source":"vip"}`, wantEmail: "a@b.com", wantSource: models.SourceUnknown},
		{name: "numeric source", body: `{"email":"a@b.com","source":3}`, wantEmail: "a@b.com", wantSource: models.SourceUnknown},
		{name: "numeric email", body: `{"email":42}`, wantSource: models.SourceUnknown},
		{name: "array body", body: `["a@b.com"]`, wantSource: models.SourceUnknown},
		{name: "malformed", body: `{"email":`, wantSource: models.SourceUnknown},
		{name: "empty", body: ``, wantSource: models.SourceUnknown},
		{name: "null", body: `null`, wantSource: models.SourceUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockService{}
			doPost(setupRouter(svc), tc.body)

			if assert.Len(t, svc.got, 1) {
				assert.Equal(t, tc.wantEmail, svc.got[0].Email)
				assert.Equal(t, tc.wantSource, svc.got[0].Source)
			}
		})
	}
}

// providerStub mimics the members endpoint and counts calls.
func providerStub(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func forwarderRouter(cfg config.Mailchimp, httpClient mailchimp.HTTPClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := metrics.NewMetrics("test")
	client := mailchimp.NewClient(cfg, httpClient, zerolog.Nop(), m)
	svc := subscriptions.NewService(cfg, client, zerolog.Nop(), m)

	r := gin.New()
	r.POST("/api/subscribe", subscription.NewHandler(svc, zerolog.Nop()).Subscribe)
	return r
}

func TestForwarder_EndToEnd(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		body      string
		request   string
		wantCode  int
		wantBody  string
		wantCalls int32
	}{
		{
			name:      "provider accepts",
			status:    http.StatusOK,
			body:      `{"id":"1","status":"subscribed"}`,
			request:   `{"email":"a@b.com","source":"organiser"}`,
			wantCode:  http.StatusOK,
			wantBody:  `{"ok":true}`,
			wantCalls: 1,
		},
		{
			name:      "already a list member",
			status:    http.StatusBadRequest,
			body:      `{"title":"Member Exists","status":400,"detail":"foo@bar.com is already a list member of Audience."}`,
			request:   `{"email":"foo@bar.com","source":"visitor"}`,
			wantCode:  http.StatusOK,
			wantBody:  `{"ok":true}`,
			wantCalls: 1,
		},
		{
			name:      "provider rejects",
			status:    http.StatusBadRequest,
			body:      `{"title":"Invalid Resource","status":400,"detail":"foo@bar.com looks fake or invalid"}`,
			request:   `{"email":"foo@bar.com"}`,
			wantCode:  http.StatusInternalServerError,
			wantBody:  `{"error":"Failed to subscribe with Mailchimp."}`,
			wantCalls: 1,
		},
		{
			name:      "provider down",
			status:    http.StatusServiceUnavailable,
			body:      `oops`,
			request:   `{"email":"a@b.com","source":"stallholder"}`,
			wantCode:  http.StatusInternalServerError,
			wantBody:  `{"error":"Failed to subscribe with Mailchimp."}`,
			wantCalls: 1,
		},
		{
			name:      "invalid email",
			status:    http.StatusOK,
			request:   `{"email":"not-an-email","source":"visitor"}`,
			wantCode:  http.StatusBadRequest,
			wantBody:  `{"error":"Invalid email address."}`,
			wantCalls: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, calls := providerStub(t, tc.status, tc.body)
			cfg := config.Mailchimp{APIKey: "k-us21", AudienceID: "aud", ServerPrefix: "us21", BaseURL: srv.URL + "/3.0"}

			w := doPost(forwarderRouter(cfg, srv.Client()), tc.request)

			assert.Equal(t, tc.wantCode, w.Code)
			assert.JSONEq(t, tc.wantBody, w.Body.String())
			assert.NotContains(t, w.Body.String(), "fake")
			assert.Equal(t, tc.wantCalls, atomic.LoadInt32(calls))
		})
	}
}

func TestForwarder_NotConfiguredNeverCallsProvider(t *testing.T) {
	srv, calls := providerStub(t, http.StatusOK, `{}`)
	cfg := config.Mailchimp{AudienceID: "aud", BaseURL: srv.URL}

	w := doPost(forwarderRouter(cfg, srv.Client()), `{"email":"a@b.com","source":"visitor"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Subscription backend is not configured."}`, w.Body.String())
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}
