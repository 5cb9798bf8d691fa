package ivr

import (
	"context"
	"fmt"

	"frontdesk-api/internal/leads"
	"frontdesk-api/internal/messaging"
	"frontdesk-api/internal/telephony"
	"frontdesk-api/internal/tickets"
)

// Spoken lines of the phone menu. Tests assert on these; change with care.
const (
	GreetingText = "Thanks for calling the front desk. " +
		"Press 1 to book a product demo. Press 2 for support. Press 3 to speak with sales."
	NoInputText             = "We did not receive any input. Goodbye."
	DemoConfirmationText    = "Great. We have texted you a link to schedule your demo. Goodbye."
	SupportConfirmationText = "Thanks. We have opened a support ticket and texted you a confirmation. Goodbye."
	SalesConfirmationText   = "Thanks. We have texted you our sales information and someone will reach out shortly. Goodbye."
	InvalidSelectionText    = "Sorry, that is not a valid selection. Goodbye."
)

// Placeholder identity for records created from a bare phone number.
const (
	phoneLeadName  = "IVR caller"
	phoneLeadEmail = "ivr-caller@frontdesk.local"
)

const (
	gatherDigits  = 1
	gatherTimeout = 6
)

// Notifier sends a confirmation text and records it (satisfied by
// *messaging.Service).
type Notifier interface {
	SendSMS(ctx context.Context, to, body string) (messaging.SmsMessage, error)
}

// LeadWriter persists leads (satisfied by *leads.Service).
type LeadWriter interface {
	Create(ctx context.Context, l leads.Lead) (string, error)
}

// TicketWriter persists support tickets (satisfied by *tickets.Service).
type TicketWriter interface {
	Create(ctx context.Context, t tickets.Ticket) (string, error)
}

// CallLogWriter persists call logs (satisfied by *messaging.Service).
type CallLogWriter interface {
	RecordCallLog(ctx context.Context, c messaging.CallLog) (string, error)
}

// ClaimFunc reports whether this is the first delivery of a call webhook.
// Used to keep provider retries from appending duplicate start logs. A nil
// or failing claim must answer true: recording twice beats not answering.
type ClaimFunc func(ctx context.Context, callSid string) bool

// Options is the immutable configuration the controller needs. No
// environment lookups happen inside the flow.
type Options struct {
	// GatherActionURL is the absolute URL digit presses are posted to.
	GatherActionURL string

	SchedulingLink string
	SalesLink      string
}

func (o *Options) applyDefaults() {
	if o.SchedulingLink == "" {
		o.SchedulingLink = "https://frontdesk.example.com/schedule"
	}
	if o.SalesLink == "" {
		o.SalesLink = "https://frontdesk.example.com/sales"
	}
}

// Controller is the IVR state machine. It is stateless across webhook
// turns: everything needed to resume a call travels in the webhook payload.
// Concurrent calls share nothing.
type Controller struct {
	opts Options

	leads    LeadWriter
	tickets  TicketWriter
	callLogs CallLogWriter
	notifier Notifier
	claim    ClaimFunc
}

func NewController(opts Options, lw LeadWriter, tw TicketWriter, cw CallLogWriter, n Notifier, claim ClaimFunc) *Controller {
	opts.applyDefaults()
	return &Controller{
		opts:     opts,
		leads:    lw,
		tickets:  tw,
		callLogs: cw,
		notifier: n,
		claim:    claim,
	}
}

// Answer handles the voice-start webhook: log the inbound call and speak
// the menu. The gather posts the caller's key press back to HandleDigits'
// endpoint; if it times out, the fallback line plays and the call ends.
func (c *Controller) Answer(ctx context.Context, ev telephony.CallEvent) *telephony.VoiceResponse {
	if c.firstDelivery(ctx, ev.CallSid) {
		bestEffort(ctx, "call start log", func() error {
			_, err := c.callLogs.RecordCallLog(ctx, messaging.CallLog{
				To:        ev.To,
				From:      ev.From,
				SID:       ev.CallSid,
				Status:    messaging.CallStatusInboundStart,
				Direction: messaging.DirectionInbound,
			})
			return err
		})
	}

	return new(telephony.VoiceResponse).
		Gather(telephony.GatherOptions{
			NumDigits: gatherDigits,
			Timeout:   gatherTimeout,
			Action:    c.opts.GatherActionURL,
		}, GreetingText).
		Say(NoInputText)
}

// HandleDigits handles the gather webhook. Every branch is terminal: the
// menu is one level deep. Unknown input is the normal invalid branch, not
// an error.
func (c *Controller) HandleDigits(ctx context.Context, ev telephony.CallEvent) *telephony.VoiceResponse {
	switch ev.Digits {
	case "1":
		c.sendText(ctx, ev.From, "Book your demo here: "+c.opts.SchedulingLink)
		c.recordLead(ctx, leads.InquiryDemo, fmt.Sprintf("Requested a demo via the phone menu from %s", ev.From))
		return say(DemoConfirmationText)

	case "2":
		c.recordTicket(ctx, ev)
		c.sendText(ctx, ev.From, "We received your support request and will follow up soon.")
		return say(SupportConfirmationText)

	case "3":
		c.sendText(ctx, ev.From, "Talk to our sales team: "+c.opts.SalesLink)
		c.recordLead(ctx, leads.InquiryPurchase, fmt.Sprintf("Asked for sales via the phone menu from %s", ev.From))
		return say(SalesConfirmationText)

	default:
		return say(InvalidSelectionText)
	}
}

func (c *Controller) firstDelivery(ctx context.Context, callSid string) bool {
	if c.claim == nil || callSid == "" {
		return true
	}
	return c.claim(ctx, callSid)
}

func (c *Controller) sendText(ctx context.Context, to, body string) {
	bestEffort(ctx, "confirmation sms", func() error {
		_, err := c.notifier.SendSMS(ctx, to, body)
		return err
	})
}

func (c *Controller) recordLead(ctx context.Context, inquiry leads.InquiryType, reason string) {
	bestEffort(ctx, "lead record", func() error {
		_, err := c.leads.Create(ctx, leads.Lead{
			Name:          phoneLeadName,
			Email:         phoneLeadEmail,
			InquiryType:   inquiry,
			Reason:        reason,
			Qualification: "phone",
		})
		return err
	})
}

func (c *Controller) recordTicket(ctx context.Context, ev telephony.CallEvent) {
	bestEffort(ctx, "support ticket record", func() error {
		_, err := c.tickets.Create(ctx, tickets.Ticket{
			Name:        phoneLeadName,
			Email:       phoneLeadEmail,
			IssueType:   tickets.IssueOther,
			Subject:     "Phone support request",
			Description: fmt.Sprintf("Caller %s requested support via the phone menu.", ev.From),
			Priority:    tickets.PriorityMedium,
			Tags:        []string{"ivr", "phone"},
		})
		return err
	})
}

func say(text string) *telephony.VoiceResponse {
	return new(telephony.VoiceResponse).Say(text)
}
