package chats

import (
	"context"
	"errors"

	"frontdesk-api/internal/store"
)

const collection = "chatmessage"

type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service { return &Service{store: s} }

func (s *Service) Append(ctx context.Context, m Message) (string, error) {
	if s.store == nil {
		return "", errors.New("chats: store not configured")
	}
	if err := m.Validate(); err != nil {
		return "", err
	}
	return s.store.Insert(ctx, collection, store.Document{
		"session_id": m.SessionID,
		"sender":     string(m.Sender),
		"content":    m.Content,
		"topic":      m.Topic,
	})
}

func (s *Service) List(ctx context.Context, limit int) ([]store.Document, error) {
	if s.store == nil {
		return nil, errors.New("chats: store not configured")
	}
	if limit <= 0 {
		limit = 200
	}
	return s.store.Find(ctx, collection, nil, limit)
}
