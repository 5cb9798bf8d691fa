package ivr

import (
	"context"

	"frontdesk-api/pkg/logger"
)

// bestEffort runs a side effect that must never block the voice response.
//
// The telephony provider expects a markup reply within a few seconds; a
// record or notification failure during a webhook turn is logged and
// otherwise ignored, so the caller always hears something.
func bestEffort(ctx context.Context, op string, fn func() error) {
	if err := fn(); err != nil {
		logger.From(ctx).Warn("voice side effect failed", "op", op, "err", err)
	}
}
