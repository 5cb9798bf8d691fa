package telephony

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseCallEvent(t *testing.T) {
	body := strings.NewReader("CallSid=CA123&From=%2B15551234567&To=%2B15557654321&Digits=1")
	r := httptest.NewRequest(http.MethodPost, "/webhooks/twilio/voice/gather", body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	ev, err := ParseCallEvent(r)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ev.CallSid != "CA123" {
		t.Fatalf("expected CallSid, got %q", ev.CallSid)
	}
	if ev.From != "+15551234567" || ev.To != "+15557654321" {
		t.Fatalf("unexpected from/to: %q %q", ev.From, ev.To)
	}
	if ev.Digits != "1" {
		t.Fatalf("expected digits, got %q", ev.Digits)
	}
}
