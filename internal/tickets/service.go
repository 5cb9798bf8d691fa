package tickets

import (
	"context"
	"errors"

	"frontdesk-api/internal/store"
)

const collection = "supportticket"

type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service { return &Service{store: s} }

func (s *Service) Create(ctx context.Context, t Ticket) (string, error) {
	if s.store == nil {
		return "", errors.New("tickets: store not configured")
	}
	t.Normalize()
	if err := t.Validate(); err != nil {
		return "", err
	}

	tags := make([]any, len(t.Tags))
	for i, tag := range t.Tags {
		tags[i] = tag
	}
	return s.store.Insert(ctx, collection, store.Document{
		"name":        t.Name,
		"email":       t.Email,
		"company":     t.Company,
		"issue_type":  string(t.IssueType),
		"subject":     t.Subject,
		"description": t.Description,
		"priority":    string(t.Priority),
		"tags":        tags,
	})
}

func (s *Service) List(ctx context.Context, limit int) ([]store.Document, error) {
	if s.store == nil {
		return nil, errors.New("tickets: store not configured")
	}
	if limit <= 0 {
		limit = 100
	}
	return s.store.Find(ctx, collection, nil, limit)
}
