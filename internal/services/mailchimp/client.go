package mailchimp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/cluemart-landing/internal/config"
	"github.com/Nazarious-ucu/cluemart-landing/internal/metrics"
	"github.com/Nazarious-ucu/cluemart-landing/internal/models"
)

const (
	opAddMember = "add_member"
	opPing      = "ping"

	statusSubscribed = "subscribed"

	alreadyMemberMarker = "is already a list member"

	maxResponseBytes = 1 << 20
)

// ErrAlreadyMember is returned when the audience already holds the address.
var ErrAlreadyMember = errors.New("mailchimp: already a list member")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a non-success answer from the Marketing API.
type APIError struct {
	StatusCode int
	Title      string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("mailchimp: status %d %s", e.StatusCode, e.Title)
	}
	return fmt.Sprintf("mailchimp: status %d %s: %s", e.StatusCode, e.Title, e.Detail)
}

// ClientError reports whether the request itself was rejected.
func (e *APIError) ClientError() bool {
	return e.StatusCode >= http.StatusBadRequest && e.StatusCode < http.StatusInternalServerError
}

type memberRequest struct {
	EmailAddress string      `json:"email_address"`
	Status       string      `json:"status"`
	MergeFields  mergeFields `json:"merge_fields"`
}

type mergeFields struct {
	Source string `json:"SOURCE"`
}

// problem is the error document the API answers with.
type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// Client talks to the Mailchimp Marketing API v3.
type Client struct {
	apiKey     string
	audienceID string
	endpoint   string
	client     HTTPClient
	logger     zerolog.Logger
	m          *metrics.Metrics
}

func NewClient(cfg config.Mailchimp, httpClient HTTPClient, logger zerolog.Logger, m *metrics.Metrics) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		audienceID: cfg.AudienceID,
		endpoint:   cfg.Endpoint(),
		client:     httpClient,
		logger:     logger.With().Str("component", "MailchimpClient").Logger(),
		m:          m,
	}
}

// AddMember subscribes email to the audience with source as the SOURCE field.
func (c *Client) AddMember(ctx context.Context, email string, source models.Source) error {
	start := time.Now()
	target := c.endpoint + "/lists/" + url.PathEscape(c.audienceID) + "/members"

	payload, err := json.Marshal(memberRequest{
		EmailAddress: email,
		Status:       statusSubscribed,
		MergeFields:  mergeFields{Source: source.String()},
	})
	if err != nil {
		return fmt.Errorf("marshal member: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error().Err(err).Str("url", target).Msg("failed to create HTTP request")
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	c.logger.Debug().
		Str("source", source.String()).
		Msg("adding list member")

	status, body, err := c.do(req)
	if err != nil {
		c.m.RecordProvider(opAddMember, err)
		return fmt.Errorf("mailchimp add member: %w", err)
	}

	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		c.m.RecordProvider(opAddMember, nil)
		c.logger.Info().
			Str("source", source.String()).
			Dur("duration_ms", time.Since(start)).
			Msg("list member added")
		return nil
	}

	p, _ := decodeProblem(body)
	if status == http.StatusBadRequest && strings.Contains(p.Detail, alreadyMemberMarker) {
		c.m.RecordProvider(opAddMember, nil)
		return ErrAlreadyMember
	}

	apiErr := &APIError{StatusCode: status, Title: p.Title, Detail: p.Detail}
	c.m.RecordProvider(opAddMember, apiErr)
	c.logger.Error().
		Int("status", status).
		Str("title", p.Title).
		Str("detail", p.Detail).
		Msg("Mailchimp rejected member")
	return apiErr
}

// Ping calls the API health check.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/ping", nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	status, body, err := c.do(req)
	if err != nil {
		c.m.RecordProvider(opPing, err)
		return fmt.Errorf("mailchimp ping: %w", err)
	}
	if status != http.StatusOK {
		p, _ := decodeProblem(body)
		apiErr := &APIError{StatusCode: status, Title: p.Title, Detail: p.Detail}
		c.m.RecordProvider(opPing, apiErr)
		return apiErr
	}

	c.m.RecordProvider(opPing, nil)
	return nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "apikey "+c.apiKey)
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("url", req.URL.String()).
			Msg("error sending HTTP request to Mailchimp")
		return 0, nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Error().Err(cerr).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		// The status line is still meaningful without the body.
		c.logger.Warn().Err(err).Int("status", resp.StatusCode).Msg("failed to read response body")
		return resp.StatusCode, nil, nil
	}
	return resp.StatusCode, body, nil
}

// decodeProblem never fails the caller: an unreadable body is just absent.
func decodeProblem(body []byte) (problem, bool) {
	var p problem
	if len(body) == 0 {
		return p, false
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return problem{}, false
	}
	return p, true
}
