package ivr

import (
	"context"
	"errors"
	"strings"
	"testing"

	"frontdesk-api/internal/leads"
	"frontdesk-api/internal/messaging"
	"frontdesk-api/internal/notify"
	"frontdesk-api/internal/store"
	"frontdesk-api/internal/telephony"
	"frontdesk-api/internal/tickets"
)

type fakeSender struct {
	failSends bool
	sent      int
}

func (f *fakeSender) Configured() bool { return true }

func (f *fakeSender) SendMessage(ctx context.Context, to, from, body string) (notify.Message, error) {
	if f.failSends {
		return notify.Message{}, errors.New("provider down")
	}
	f.sent++
	return notify.Message{SID: "SM1", Status: "queued"}, nil
}

func (f *fakeSender) PlaceCall(ctx context.Context, to, from, callbackURL string) (notify.Call, error) {
	return notify.Call{SID: "CA1", Status: "queued"}, nil
}

type harness struct {
	mem    *store.Memory
	sender *fakeSender
	ctrl   *Controller
}

func newHarness(claim ClaimFunc) *harness {
	mem := store.NewMemory()
	sender := &fakeSender{}
	msg := messaging.NewService(mem, sender, "+15550001111", "")
	ctrl := NewController(
		Options{GatherActionURL: "https://desk.example.com/webhooks/twilio/voice/gather"},
		leads.NewService(mem),
		tickets.NewService(mem),
		msg,
		msg,
		claim,
	)
	return &harness{mem: mem, sender: sender, ctrl: ctrl}
}

func inbound(digits string) telephony.CallEvent {
	return telephony.CallEvent{
		CallSid: "CA123",
		From:    "+15551234567",
		To:      "+15550001111",
		Digits:  digits,
	}
}

func render(t *testing.T, r *telephony.VoiceResponse) string {
	t.Helper()
	xml, err := r.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return xml
}

func TestAnswerSpeaksMenuAndLogsCall(t *testing.T) {
	h := newHarness(nil)
	xml := render(t, h.ctrl.Answer(context.Background(), inbound("")))

	for _, want := range []string{
		`numDigits="1"`,
		`timeout="6"`,
		`action="https://desk.example.com/webhooks/twilio/voice/gather"`,
		GreetingText,
		NoInputText,
	} {
		if !strings.Contains(xml, want) {
			t.Fatalf("expected %q in %s", want, xml)
		}
	}

	logs, err := h.mem.Find(context.Background(), "calllog", nil, 10)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 call log, got %d", len(logs))
	}
	if logs[0]["status"] != "inbound-start" || logs[0]["direction"] != "inbound" {
		t.Fatalf("unexpected call log %+v", logs[0])
	}
}

func TestAnswerDuplicateDeliveryLogsOnce(t *testing.T) {
	delivered := map[string]bool{}
	h := newHarness(func(ctx context.Context, sid string) bool {
		if delivered[sid] {
			return false
		}
		delivered[sid] = true
		return true
	})

	first := render(t, h.ctrl.Answer(context.Background(), inbound("")))
	second := render(t, h.ctrl.Answer(context.Background(), inbound("")))

	if first != second {
		t.Fatalf("markup must not depend on delivery count")
	}
	if n := h.mem.Count("calllog"); n != 1 {
		t.Fatalf("expected a single start log, got %d", n)
	}
}

func TestHandleDigitsBranchTable(t *testing.T) {
	cases := []struct {
		digits  string
		speech  string
		leads   int
		tickets int
		sms     int
	}{
		{"1", DemoConfirmationText, 1, 0, 1},
		{"2", SupportConfirmationText, 0, 1, 1},
		{"3", SalesConfirmationText, 1, 0, 1},
		{"", InvalidSelectionText, 0, 0, 0},
		{"9", InvalidSelectionText, 0, 0, 0},
		{"*", InvalidSelectionText, 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run("digits="+tc.digits, func(t *testing.T) {
			h := newHarness(nil)
			xml := render(t, h.ctrl.HandleDigits(context.Background(), inbound(tc.digits)))

			if !strings.Contains(xml, tc.speech) {
				t.Fatalf("expected %q in %s", tc.speech, xml)
			}
			if strings.Contains(xml, "<Gather") {
				t.Fatalf("branches are terminal, got gather in %s", xml)
			}
			if n := h.mem.Count("lead"); n != tc.leads {
				t.Fatalf("expected %d leads, got %d", tc.leads, n)
			}
			if n := h.mem.Count("supportticket"); n != tc.tickets {
				t.Fatalf("expected %d tickets, got %d", tc.tickets, n)
			}
			if n := h.mem.Count("smsmessage"); n != tc.sms {
				t.Fatalf("expected %d sms records, got %d", tc.sms, n)
			}
		})
	}
}

func TestDemoBranchDetails(t *testing.T) {
	h := newHarness(nil)
	render(t, h.ctrl.HandleDigits(context.Background(), inbound("1")))

	ls, _ := h.mem.Find(context.Background(), "lead", nil, 10)
	if len(ls) != 1 || ls[0]["inquiry_type"] != "demo" {
		t.Fatalf("expected one demo lead, got %+v", ls)
	}
	if reason, _ := ls[0]["reason"].(string); !strings.Contains(reason, "+15551234567") {
		t.Fatalf("expected reason to reference the caller, got %+v", ls[0])
	}

	sms, _ := h.mem.Find(context.Background(), "smsmessage", nil, 10)
	if len(sms) != 1 || sms[0]["direction"] != "outbound" {
		t.Fatalf("expected one outbound sms, got %+v", sms)
	}
}

func TestSupportBranchDetails(t *testing.T) {
	h := newHarness(nil)
	render(t, h.ctrl.HandleDigits(context.Background(), inbound("2")))

	ts, _ := h.mem.Find(context.Background(), "supportticket", nil, 10)
	if len(ts) != 1 {
		t.Fatalf("expected one ticket, got %d", len(ts))
	}
	if ts[0]["issue_type"] != "other" || ts[0]["priority"] != "medium" {
		t.Fatalf("unexpected ticket %+v", ts[0])
	}
	if desc, _ := ts[0]["description"].(string); !strings.Contains(desc, "+15551234567") {
		t.Fatalf("expected description to reference the caller, got %+v", ts[0])
	}
}

func TestSideEffectFailureDoesNotChangeMarkup(t *testing.T) {
	ok := newHarness(nil)
	want := render(t, ok.ctrl.HandleDigits(context.Background(), inbound("1")))

	broken := newHarness(nil)
	broken.mem.FailInserts = errors.New("db down")
	broken.sender.failSends = true
	got := render(t, broken.ctrl.HandleDigits(context.Background(), inbound("1")))

	if got != want {
		t.Fatalf("markup must be byte-identical when side effects fail:\nwant %s\ngot  %s", want, got)
	}
	if broken.mem.Count("lead") != 0 || broken.mem.Count("smsmessage") != 0 {
		t.Fatalf("no records expected when everything fails")
	}

	start := render(t, ok.ctrl.Answer(context.Background(), inbound("")))
	brokenStart := render(t, broken.ctrl.Answer(context.Background(), inbound("")))
	if start != brokenStart {
		t.Fatalf("start markup must be identical under failure")
	}
}
