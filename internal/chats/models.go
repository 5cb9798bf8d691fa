package chats

import (
	"errors"
	"strings"
)

// Message is one line of a widget conversation transcript.
type Message struct {
	SessionID string `json:"session_id"`
	Sender    Sender `json:"sender"`
	Content   string `json:"content"`
	Topic     string `json:"topic,omitempty"`
}

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
	SenderSystem    Sender = "system"
)

var ErrInvalidMessage = errors.New("chats: invalid message")

func (s Sender) valid() bool {
	switch s {
	case SenderUser, SenderAssistant, SenderSystem:
		return true
	default:
		return false
	}
}

func (m Message) Validate() error {
	if strings.TrimSpace(m.SessionID) == "" {
		return ErrInvalidMessage
	}
	if !m.Sender.valid() {
		return ErrInvalidMessage
	}
	if strings.TrimSpace(m.Content) == "" {
		return ErrInvalidMessage
	}
	return nil
}
