package messaging

import (
	"context"
	"errors"
	"testing"

	"frontdesk-api/internal/notify"
	"frontdesk-api/internal/store"
)

type fakeSender struct {
	configured bool
	sendErr    error

	sentTo   []string
	placedTo []string
}

func (f *fakeSender) Configured() bool { return f.configured }

func (f *fakeSender) SendMessage(ctx context.Context, to, from, body string) (notify.Message, error) {
	if f.sendErr != nil {
		return notify.Message{}, f.sendErr
	}
	f.sentTo = append(f.sentTo, to)
	return notify.Message{SID: "SM1", Status: "queued"}, nil
}

func (f *fakeSender) PlaceCall(ctx context.Context, to, from, callbackURL string) (notify.Call, error) {
	if f.sendErr != nil {
		return notify.Call{}, f.sendErr
	}
	f.placedTo = append(f.placedTo, to)
	return notify.Call{SID: "CA1", Status: "queued"}, nil
}

func TestSendSMSRequiresConfiguration(t *testing.T) {
	svc := NewService(store.NewMemory(), &fakeSender{configured: false}, "", "")
	if _, err := svc.SendSMS(context.Background(), "+15551234567", "hi"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}

	// Configured sender but no from number is still not configured.
	svc = NewService(store.NewMemory(), &fakeSender{configured: true}, "", "")
	if _, err := svc.SendSMS(context.Background(), "+15551234567", "hi"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured without from number, got %v", err)
	}
}

func TestSendSMSRecordsOutbound(t *testing.T) {
	mem := store.NewMemory()
	sender := &fakeSender{configured: true}
	svc := NewService(mem, sender, "+15550001111", "")

	msg, err := svc.SendSMS(context.Background(), "+15551234567", "hello")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.SID != "SM1" || msg.Direction != DirectionOutbound {
		t.Fatalf("unexpected message %+v", msg)
	}

	docs, _ := svc.ListSMS(context.Background(), 0)
	if len(docs) != 1 {
		t.Fatalf("expected 1 sms record, got %d", len(docs))
	}
	if docs[0]["direction"] != "outbound" || docs[0]["sid"] != "SM1" {
		t.Fatalf("unexpected record %+v", docs[0])
	}
}

func TestSendSMSRecordFailureIsNotFatal(t *testing.T) {
	mem := store.NewMemory()
	mem.FailInserts = errors.New("db down")
	svc := NewService(mem, &fakeSender{configured: true}, "+15550001111", "")

	// The provider accepted the message; a failed record write is logged only.
	if _, err := svc.SendSMS(context.Background(), "+15551234567", "hello"); err != nil {
		t.Fatalf("expected success despite record failure, got %v", err)
	}
}

func TestPlaceCallRecordsOutboundLeg(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem, &fakeSender{configured: true}, "+15550001111", "https://desk.example.com/webhooks/twilio/voice")

	cl, err := svc.PlaceCall(context.Background(), "+15551234567")
	if err != nil {
		t.Fatalf("place call: %v", err)
	}
	if cl.Direction != DirectionOutbound || cl.SID != "CA1" {
		t.Fatalf("unexpected call log %+v", cl)
	}

	docs, _ := svc.ListCalls(context.Background(), 0)
	if len(docs) != 1 || docs[0]["direction"] != "outbound" {
		t.Fatalf("expected outbound call log, got %+v", docs)
	}
}
