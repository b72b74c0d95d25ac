package models

import (
	"strings"
	"time"
)

type SubscriptionRequest struct {
	Email  string `json:"email"`
	Source Source `json:"source,omitempty"`
}

type SubscriptionResult struct {
	OK    bool   `json:"ok,omitempty"`
	Error string `json:"error,omitempty"`
}

// ValidEmail applies the same loose check the signup form does.
func ValidEmail(email string) bool {
	return email != "" && strings.Contains(email, "@")
}

// SignupRecord marks an address the provider has already accepted.
type SignupRecord struct {
	Source   Source    `json:"source"`
	Accepted time.Time `json:"accepted"`
}
