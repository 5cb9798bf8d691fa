package payments

import (
	"errors"
	"strings"
)

// Record tracks one payment or upgrade attempt.
type Record struct {
	Name              string `json:"name,omitempty"`
	Email             string `json:"email,omitempty"`
	Plan              string `json:"plan"`
	AmountCents       int64  `json:"amount_cents"`
	Currency          string `json:"currency"`
	Status            Status `json:"status"`
	Provider          string `json:"provider"`
	CheckoutSessionID string `json:"checkout_session_id,omitempty"`
}

type Status string

const (
	StatusInitiated Status = "initiated"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

var ErrInvalidCheckout = errors.New("payments: invalid checkout request")

// CheckoutRequest is the input for starting a checkout session.
type CheckoutRequest struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Plan        string `json:"plan"`
	AmountCents int64  `json:"amount_cents"`
}

func (r CheckoutRequest) Validate() error {
	if strings.TrimSpace(r.Plan) == "" {
		return ErrInvalidCheckout
	}
	if r.AmountCents <= 0 {
		return ErrInvalidCheckout
	}
	return nil
}

// CheckoutResult is returned to the client to continue the hosted flow.
type CheckoutResult struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
	RecordID    string `json:"record_id"`
}
