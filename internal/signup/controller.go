package signup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/cluemart-landing/internal/models"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

const (
	MsgInvalidEmail = "Please enter a valid email address."
	MsgChooseRole   = "Please choose if you’re a stallholder, an organiser, or a visitor first."
	MsgGeneric      = "Something went wrong. Please try again."
	MsgSuccess      = "You’re in! We’ll email you as soon as ClueMart Beta launches."

	maxResponseBytes = 64 << 10
)

var ErrUnknownRole = errors.New("role must be stallholder, organiser or visitor")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// State is the form as the visitor sees it. An empty Role means none chosen.
type State struct {
	Email   string        `json:"email"`
	Role    models.Source `json:"role"`
	Status  Status        `json:"status"`
	Message string        `json:"message"`
}

// Controller owns the signup form state and posts it to the subscribe endpoint.
type Controller struct {
	endpoint string
	client   HTTPClient
	logger   zerolog.Logger

	mu    sync.Mutex
	state State
}

func NewController(endpoint string, client HTTPClient, logger zerolog.Logger) *Controller {
	return &Controller{
		endpoint: endpoint,
		client:   client,
		logger:   logger.With().Str("component", "SignupForm").Logger(),
		state:    State{Status: StatusIdle},
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetEmail replaces the email text and clears a shown error.
func (c *Controller) SetEmail(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Email = email
	c.clearErrorLocked()
}

// SelectRole picks one of the selectable roles and clears a shown error.
func (c *Controller) SelectRole(role models.Source) error {
	if !role.Known() {
		return ErrUnknownRole
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Role = role
	c.clearErrorLocked()
	return nil
}

// CanSubmit mirrors the submit button: disabled while loading or without a role.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Status != StatusLoading && c.state.Role != ""
}

// Submit validates locally and, if valid, makes exactly one request. A call
// while another submission is in flight returns the current state untouched.
func (c *Controller) Submit(ctx context.Context) State {
	c.mu.Lock()
	if c.state.Status == StatusLoading {
		st := c.state
		c.mu.Unlock()
		return st
	}
	if !models.ValidEmail(c.state.Email) {
		c.setLocked(StatusError, MsgInvalidEmail)
		st := c.state
		c.mu.Unlock()
		return st
	}
	if c.state.Role == "" {
		c.setLocked(StatusError, MsgChooseRole)
		st := c.state
		c.mu.Unlock()
		return st
	}
	c.setLocked(StatusLoading, "")
	req := models.SubscriptionRequest{Email: c.state.Email, Source: c.state.Role}
	c.mu.Unlock()

	status, message := c.post(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(status, message)
	if status == StatusSuccess {
		c.state.Email = ""
	}
	return c.state
}

func (c *Controller) post(ctx context.Context, body models.SubscriptionRequest) (Status, string) {
	payload, err := json.Marshal(body)
	if err != nil {
		return StatusError, errorMessage(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return StatusError, errorMessage(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", c.endpoint).Msg("subscribe request failed")
		return StatusError, errorMessage(err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Error().Err(cerr).Msg("failed to close response body")
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, ok := apiErrorMessage(resp.Body)
		if !ok || msg == "" {
			msg = MsgGeneric
		}
		c.logger.Warn().Int("status", resp.StatusCode).Str("message", msg).Msg("subscribe rejected")
		return StatusError, msg
	}

	return StatusSuccess, MsgSuccess
}

func (c *Controller) setLocked(status Status, message string) {
	c.state.Status = status
	c.state.Message = message
}

func (c *Controller) clearErrorLocked() {
	if c.state.Status == StatusError {
		c.setLocked(StatusIdle, "")
	}
}

// apiErrorMessage extracts a string "error" field; any other body yields false.
func apiErrorMessage(body io.Reader) (string, bool) {
	raw, err := io.ReadAll(io.LimitReader(body, maxResponseBytes))
	if err != nil {
		return "", false
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", false
	}
	msg, ok := data["error"].(string)
	return msg, ok
}

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return MsgGeneric
	}
	return err.Error()
}
