package main

import (
	"database/sql"
	"net/http"
	"time"

	"frontdesk-api/internal/auth"
	"frontdesk-api/internal/httpapi"
	"frontdesk-api/internal/telephony"
	"frontdesk-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(
	r *gin.Engine,
	h httpapi.Handlers,
	flow telephony.VoiceFlow,
	verifier *telephony.Verifier,
	m *auth.Manager,
	db *sql.DB,
	rdb *redis.Client,
) {
	// public
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "running", "service": "frontdesk-api"})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/status", statusHandler(db, rdb))

	// Provider webhooks (public path, gated by signature verification).
	webhooks := r.Group("/webhooks/twilio")
	webhooks.Use(telephony.RequireSignature(verifier))
	{
		wh := telephony.VoiceWebhookHandler{Flow: flow}
		webhooks.POST("/voice", wh.HandleInbound)
		webhooks.POST("/voice/gather", wh.HandleGather)
	}

	// account endpoints issue tokens, so they sit outside the auth gate
	r.POST("/v1/auth/register", h.Register)
	r.POST("/v1/auth/login", h.Login)

	// protected API group
	v1 := r.Group("/v1")
	v1.Use(auth.RequireAccessToken(m))
	{
		v1.POST("/leads", h.CreateLead)
		v1.GET("/leads", h.ListLeads)

		v1.POST("/chats", h.AppendChat)
		v1.GET("/chats", h.ListChats)

		v1.POST("/bookings", h.CreateBooking)
		v1.GET("/bookings", h.ListBookings)

		v1.POST("/tickets", h.CreateTicket)
		v1.GET("/tickets", h.ListTickets)

		v1.POST("/payments/checkout", h.Checkout)
		v1.POST("/payments/checkout/confirm/:session_id", h.ConfirmCheckout)
		v1.GET("/payments", h.ListPayments)

		v1.POST("/messages/sms", h.SendSMS)
		v1.GET("/messages/sms", h.ListSMS)
		v1.POST("/calls", h.PlaceCall)
		v1.GET("/calls", h.ListCalls)

		// CSV export can carry PII in bulk, so it is admin-only.
		v1.GET("/export/:resource", auth.RequireRole(auth.RoleAdmin), h.ExportCSV)
	}
}

// statusHandler reports per-dependency health for operators. It never
// fails the request; degraded dependencies show up in the body.
func statusHandler(db *sql.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "connected"
		if err := utils.HealthCheck(c.Request.Context(), db, 2*time.Second); err != nil {
			dbStatus = "error: " + err.Error()
		}
		redisStatus := "connected"
		if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "error: " + err.Error()
		}
		c.JSON(http.StatusOK, gin.H{
			"backend":  "running",
			"database": dbStatus,
			"redis":    redisStatus,
		})
	}
}
