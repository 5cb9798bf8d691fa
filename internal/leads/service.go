package leads

import (
	"context"
	"errors"

	"frontdesk-api/internal/store"
)

const collection = "lead"

type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service { return &Service{store: s} }

func (s *Service) Create(ctx context.Context, l Lead) (string, error) {
	if s.store == nil {
		return "", errors.New("leads: store not configured")
	}
	if err := l.Validate(); err != nil {
		return "", err
	}
	return s.store.Insert(ctx, collection, store.Document{
		"name":          l.Name,
		"email":         l.Email,
		"company":       l.Company,
		"inquiry_type":  string(l.InquiryType),
		"reason":        l.Reason,
		"qualification": l.Qualification,
	})
}

func (s *Service) List(ctx context.Context, limit int) ([]store.Document, error) {
	if s.store == nil {
		return nil, errors.New("leads: store not configured")
	}
	if limit <= 0 {
		limit = 100
	}
	return s.store.Find(ctx, collection, nil, limit)
}
