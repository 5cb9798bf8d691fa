package messaging

import (
	"errors"
	"strings"
)

type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// SmsMessage records one text message. Direction is fixed at creation and
// never mutated; records are append-only.
type SmsMessage struct {
	To        string    `json:"to"`
	From      string    `json:"from"`
	Body      string    `json:"body"`
	Direction Direction `json:"direction"`
	Status    string    `json:"status"`
	SID       string    `json:"sid,omitempty"`
}

// CallLog records one call event. Same append-only rules as SmsMessage.
type CallLog struct {
	To        string    `json:"to"`
	From      string    `json:"from"`
	SID       string    `json:"sid"`
	Status    string    `json:"status"`
	Direction Direction `json:"direction"`
}

// CallStatusInboundStart marks the first webhook turn of an inbound call.
const CallStatusInboundStart = "inbound-start"

var ErrInvalidRecord = errors.New("messaging: invalid record")

func (d Direction) valid() bool {
	return d == DirectionInbound || d == DirectionOutbound
}

func (m SmsMessage) Validate() error {
	if strings.TrimSpace(m.To) == "" || strings.TrimSpace(m.Body) == "" {
		return ErrInvalidRecord
	}
	if !m.Direction.valid() {
		return ErrInvalidRecord
	}
	return nil
}

func (c CallLog) Validate() error {
	if strings.TrimSpace(c.From) == "" && strings.TrimSpace(c.To) == "" {
		return ErrInvalidRecord
	}
	if !c.Direction.valid() {
		return ErrInvalidRecord
	}
	return nil
}
