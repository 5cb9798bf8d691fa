package bookings

import (
	"context"
	"errors"

	"frontdesk-api/internal/store"
)

const collection = "booking"

type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service { return &Service{store: s} }

func (s *Service) Create(ctx context.Context, b Booking) (string, error) {
	if s.store == nil {
		return "", errors.New("bookings: store not configured")
	}
	b.Normalize()
	if err := b.Validate(); err != nil {
		return "", err
	}
	// Confirmation email and calendar invite would be queued here.
	return s.store.Insert(ctx, collection, store.Document{
		"name":     b.Name,
		"email":    b.Email,
		"company":  b.Company,
		"slot_iso": b.SlotISO,
		"notes":    b.Notes,
		"source":   b.Source,
	})
}

func (s *Service) List(ctx context.Context, limit int) ([]store.Document, error) {
	if s.store == nil {
		return nil, errors.New("bookings: store not configured")
	}
	if limit <= 0 {
		limit = 100
	}
	return s.store.Find(ctx, collection, nil, limit)
}
