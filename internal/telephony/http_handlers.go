package telephony

import (
	"context"
	"net/http"

	"frontdesk-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// VoiceFlow answers webhook turns with voice markup. Implementations must be
// stateless across turns and must always produce a response, even when their
// side effects fail.
type VoiceFlow interface {
	Answer(ctx context.Context, ev CallEvent) *VoiceResponse
	HandleDigits(ctx context.Context, ev CallEvent) *VoiceResponse
}

// VoiceWebhookHandler converts Twilio webhooks to internal types, delegates
// to the flow, and writes TwiML.
//
// No business logic here. Signature verification runs as middleware before
// these handlers.
type VoiceWebhookHandler struct {
	Flow VoiceFlow
}

// HandleInbound serves the voice-start webhook.
func (h VoiceWebhookHandler) HandleInbound(c *gin.Context) {
	h.respond(c, func(ctx context.Context, ev CallEvent) *VoiceResponse {
		return h.Flow.Answer(ctx, ev)
	})
}

// HandleGather serves the digit-press webhook.
func (h VoiceWebhookHandler) HandleGather(c *gin.Context) {
	h.respond(c, func(ctx context.Context, ev CallEvent) *VoiceResponse {
		return h.Flow.HandleDigits(ctx, ev)
	})
}

func (h VoiceWebhookHandler) respond(c *gin.Context, answer func(context.Context, CallEvent) *VoiceResponse) {
	log := logger.FromGin(c)

	if h.Flow == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "voice flow not configured"})
		return
	}

	ev, err := ParseCallEvent(c.Request)
	if err != nil {
		log.Warn("voice webhook parse failed", "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}

	twiml, err := answer(c.Request.Context(), ev).Render()
	if err != nil {
		log.Error("twiml render failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "twiml failed"})
		return
	}

	c.Header("Content-Type", "application/xml")
	c.String(http.StatusOK, twiml)
}
