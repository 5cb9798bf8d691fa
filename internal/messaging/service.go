package messaging

import (
	"context"
	"errors"

	"frontdesk-api/internal/notify"
	"frontdesk-api/internal/store"
	"frontdesk-api/pkg/logger"
)

const (
	smsCollection  = "smsmessage"
	callCollection = "calllog"
)

// ErrNotConfigured signals that outbound sends cannot be attempted because
// credentials or the from number are missing. Manual endpoints surface it;
// the voice flow treats it as any other swallowed side-effect failure.
var ErrNotConfigured = errors.New("messaging: outbound sender not configured")

// Sender is the provider client contract (satisfied by *notify.Client).
type Sender interface {
	Configured() bool
	SendMessage(ctx context.Context, to, from, body string) (notify.Message, error)
	PlaceCall(ctx context.Context, to, from, callbackURL string) (notify.Call, error)
}

// Service records SMS/call activity and drives manual outbound sends.
type Service struct {
	store  store.Store
	sender Sender

	// fromNumber is the E.164 origin for outbound SMS and calls.
	fromNumber string

	// voiceCallbackURL is handed to the provider for outbound calls.
	voiceCallbackURL string
}

func NewService(s store.Store, sender Sender, fromNumber, voiceCallbackURL string) *Service {
	return &Service{
		store:            s,
		sender:           sender,
		fromNumber:       fromNumber,
		voiceCallbackURL: voiceCallbackURL,
	}
}

// RecordSMS persists an SmsMessage as-is.
func (s *Service) RecordSMS(ctx context.Context, m SmsMessage) (string, error) {
	if s.store == nil {
		return "", errors.New("messaging: store not configured")
	}
	if err := m.Validate(); err != nil {
		return "", err
	}
	return s.store.Insert(ctx, smsCollection, store.Document{
		"to":        m.To,
		"from":      m.From,
		"body":      m.Body,
		"direction": string(m.Direction),
		"status":    m.Status,
		"sid":       m.SID,
	})
}

// RecordCallLog persists a CallLog as-is.
func (s *Service) RecordCallLog(ctx context.Context, c CallLog) (string, error) {
	if s.store == nil {
		return "", errors.New("messaging: store not configured")
	}
	if err := c.Validate(); err != nil {
		return "", err
	}
	return s.store.Insert(ctx, callCollection, store.Document{
		"to":        c.To,
		"from":      c.From,
		"sid":       c.SID,
		"status":    c.Status,
		"direction": string(c.Direction),
	})
}

// SendSMS sends a text through the provider and records the outbound
// message. The record write is best-effort once the provider accepted the
// message; a failed write is logged, not returned.
func (s *Service) SendSMS(ctx context.Context, to, body string) (SmsMessage, error) {
	if s.sender == nil || !s.sender.Configured() || s.fromNumber == "" {
		return SmsMessage{}, ErrNotConfigured
	}

	receipt, err := s.sender.SendMessage(ctx, to, s.fromNumber, body)
	if err != nil {
		if errors.Is(err, notify.ErrNotConfigured) {
			return SmsMessage{}, ErrNotConfigured
		}
		return SmsMessage{}, err
	}

	msg := SmsMessage{
		To:        to,
		From:      s.fromNumber,
		Body:      body,
		Direction: DirectionOutbound,
		Status:    receipt.Status,
		SID:       receipt.SID,
	}
	if _, err := s.RecordSMS(ctx, msg); err != nil {
		logger.From(ctx).Warn("sms record write failed", "sid", msg.SID, "err", err)
	}
	return msg, nil
}

// PlaceCall starts an outbound call pointing at the voice webhook and
// records the outbound leg.
func (s *Service) PlaceCall(ctx context.Context, to string) (CallLog, error) {
	if s.sender == nil || !s.sender.Configured() || s.fromNumber == "" {
		return CallLog{}, ErrNotConfigured
	}

	receipt, err := s.sender.PlaceCall(ctx, to, s.fromNumber, s.voiceCallbackURL)
	if err != nil {
		if errors.Is(err, notify.ErrNotConfigured) {
			return CallLog{}, ErrNotConfigured
		}
		return CallLog{}, err
	}

	cl := CallLog{
		To:        to,
		From:      s.fromNumber,
		SID:       receipt.SID,
		Status:    receipt.Status,
		Direction: DirectionOutbound,
	}
	if _, err := s.RecordCallLog(ctx, cl); err != nil {
		logger.From(ctx).Warn("call log write failed", "sid", cl.SID, "err", err)
	}
	return cl, nil
}

func (s *Service) ListSMS(ctx context.Context, limit int) ([]store.Document, error) {
	if s.store == nil {
		return nil, errors.New("messaging: store not configured")
	}
	if limit <= 0 {
		limit = 100
	}
	return s.store.Find(ctx, smsCollection, nil, limit)
}

func (s *Service) ListCalls(ctx context.Context, limit int) ([]store.Document, error) {
	if s.store == nil {
		return nil, errors.New("messaging: store not configured")
	}
	if limit <= 0 {
		limit = 100
	}
	return s.store.Find(ctx, callCollection, nil, limit)
}
