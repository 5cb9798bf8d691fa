package payments

import (
	"context"
	"errors"

	"frontdesk-api/internal/store"

	"github.com/google/uuid"
)

const collection = "paymentrecord"

// Service simulates a Stripe checkout flow and records every attempt.
// Real session creation lives behind the provider's hosted page; this keeps
// the record trail so the flow can be swapped for live Stripe later.
type Service struct {
	store store.Store

	// checkoutBase is the hosted checkout page prefix.
	checkoutBase string
}

func NewService(s store.Store) *Service {
	return &Service{store: s, checkoutBase: "https://checkout.stripe.com/pay/"}
}

func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (CheckoutResult, error) {
	if s.store == nil {
		return CheckoutResult{}, errors.New("payments: store not configured")
	}
	if err := req.Validate(); err != nil {
		return CheckoutResult{}, err
	}

	sessionID := "sess_" + uuid.NewString()
	recordID, err := s.store.Insert(ctx, collection, store.Document{
		"name":                req.Name,
		"email":               req.Email,
		"plan":                req.Plan,
		"amount_cents":        req.AmountCents,
		"currency":            "usd",
		"status":              string(StatusInitiated),
		"provider":            "stripe",
		"checkout_session_id": sessionID,
	})
	if err != nil {
		return CheckoutResult{}, err
	}

	return CheckoutResult{
		CheckoutURL: s.checkoutBase + sessionID,
		SessionID:   sessionID,
		RecordID:    recordID,
	}, nil
}

// Confirm appends a succeeded record for the session. Verification against
// the provider happens via webhook in a live deployment.
func (s *Service) Confirm(ctx context.Context, sessionID string) (string, error) {
	if s.store == nil {
		return "", errors.New("payments: store not configured")
	}
	if sessionID == "" {
		return "", ErrInvalidCheckout
	}
	return s.store.Insert(ctx, collection, store.Document{
		"checkout_session_id": sessionID,
		"status":              string(StatusSucceeded),
		"provider":            "stripe",
	})
}

func (s *Service) List(ctx context.Context, limit int) ([]store.Document, error) {
	if s.store == nil {
		return nil, errors.New("payments: store not configured")
	}
	if limit <= 0 {
		limit = 100
	}
	return s.store.Find(ctx, collection, nil, limit)
}
