package telephony

import (
	"net/http"
	"strings"
)

// CallEvent captures the subset of voice webhook fields the flow cares about.
// Twilio sends application/x-www-form-urlencoded by default.
//
// The event is transient: it lives for one webhook turn and is never stored
// as a mutable entity. All state needed to resume a call travels in the
// webhook payload itself, not in server memory.
type CallEvent struct {
	CallSid string
	From    string
	To      string

	// Digits is the caller's key press; only present on the gather webhook.
	Digits string
}

// ParseCallEvent reads a voice webhook form body.
func ParseCallEvent(r *http.Request) (CallEvent, error) {
	if err := r.ParseForm(); err != nil {
		return CallEvent{}, err
	}
	return CallEvent{
		CallSid: r.PostFormValue("CallSid"),
		From:    strings.TrimSpace(r.PostFormValue("From")),
		To:      strings.TrimSpace(r.PostFormValue("To")),
		Digits:  strings.TrimSpace(r.PostFormValue("Digits")),
	}, nil
}
