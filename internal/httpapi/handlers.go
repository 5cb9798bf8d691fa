package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"frontdesk-api/internal/auth"
	"frontdesk-api/internal/bookings"
	"frontdesk-api/internal/chats"
	"frontdesk-api/internal/export"
	"frontdesk-api/internal/leads"
	"frontdesk-api/internal/messaging"
	"frontdesk-api/internal/payments"
	"frontdesk-api/internal/tickets"
	"frontdesk-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Auth  *auth.Manager
	Users *auth.UserService

	Leads     *leads.Service
	Chats     *chats.Service
	Bookings  *bookings.Service
	Tickets   *tickets.Service
	Payments  *payments.Service
	Messaging *messaging.Service
	Export    *export.Service
}

func limitQuery(c *gin.Context, def int) int {
	raw := c.Query("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// --- Accounts ---

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

func (h Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "email, password, name required"})
		return
	}
	u, err := h.Users.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	case errors.Is(err, auth.ErrInvalidUser):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid registration"})
		return
	case err != nil:
		logger.FromGin(c).Error("register failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	c.JSON(http.StatusCreated, u)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}
	u, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	pair, err := h.Auth.IssuePair(time.Now(), u.ID, u.Role)
	if err != nil {
		logger.FromGin(c).Error("token issuance failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

// --- Leads ---

func (h Handlers) CreateLead(c *gin.Context) {
	var l leads.Lead
	if err := c.ShouldBindJSON(&l); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	id, err := h.Leads.Create(c.Request.Context(), l)
	if err != nil {
		h.writeDomainError(c, err, leads.ErrInvalidLead)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "saved"})
}

func (h Handlers) ListLeads(c *gin.Context) {
	docs, err := h.Leads.List(c.Request.Context(), limitQuery(c, 100))
	if err != nil {
		h.writeListError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// --- Chats ---

func (h Handlers) AppendChat(c *gin.Context) {
	var m chats.Message
	if err := c.ShouldBindJSON(&m); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	id, err := h.Chats.Append(c.Request.Context(), m)
	if err != nil {
		h.writeDomainError(c, err, chats.ErrInvalidMessage)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h Handlers) ListChats(c *gin.Context) {
	docs, err := h.Chats.List(c.Request.Context(), limitQuery(c, 200))
	if err != nil {
		h.writeListError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// --- Bookings ---

func (h Handlers) CreateBooking(c *gin.Context) {
	var b bookings.Booking
	if err := c.ShouldBindJSON(&b); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	id, err := h.Bookings.Create(c.Request.Context(), b)
	if err != nil {
		h.writeDomainError(c, err, bookings.ErrInvalidBooking)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "scheduled"})
}

func (h Handlers) ListBookings(c *gin.Context) {
	docs, err := h.Bookings.List(c.Request.Context(), limitQuery(c, 100))
	if err != nil {
		h.writeListError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// --- Tickets ---

func (h Handlers) CreateTicket(c *gin.Context) {
	var t tickets.Ticket
	if err := c.ShouldBindJSON(&t); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	id, err := h.Tickets.Create(c.Request.Context(), t)
	if err != nil {
		h.writeDomainError(c, err, tickets.ErrInvalidTicket)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "created"})
}

func (h Handlers) ListTickets(c *gin.Context) {
	docs, err := h.Tickets.List(c.Request.Context(), limitQuery(c, 100))
	if err != nil {
		h.writeListError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// --- Payments ---

func (h Handlers) Checkout(c *gin.Context) {
	var req payments.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	res, err := h.Payments.Checkout(c.Request.Context(), req)
	if err != nil {
		h.writeDomainError(c, err, payments.ErrInvalidCheckout)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h Handlers) ConfirmCheckout(c *gin.Context) {
	sessionID := c.Param("session_id")
	if _, err := h.Payments.Confirm(c.Request.Context(), sessionID); err != nil {
		h.writeDomainError(c, err, payments.ErrInvalidCheckout)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "succeeded", "session_id": sessionID})
}

func (h Handlers) ListPayments(c *gin.Context) {
	docs, err := h.Payments.List(c.Request.Context(), limitQuery(c, 100))
	if err != nil {
		h.writeListError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// --- Messaging ---

type sendSMSRequest struct {
	To   string `json:"to" binding:"required"`
	Body string `json:"body" binding:"required"`
}

func (h Handlers) SendSMS(c *gin.Context) {
	var req sendSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "to and body required"})
		return
	}
	msg, err := h.Messaging.SendSMS(c.Request.Context(), req.To, req.Body)
	if err != nil {
		h.writeSendError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

type placeCallRequest struct {
	To string `json:"to" binding:"required"`
}

func (h Handlers) PlaceCall(c *gin.Context) {
	var req placeCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "to required"})
		return
	}
	cl, err := h.Messaging.PlaceCall(c.Request.Context(), req.To)
	if err != nil {
		h.writeSendError(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

func (h Handlers) ListSMS(c *gin.Context) {
	docs, err := h.Messaging.ListSMS(c.Request.Context(), limitQuery(c, 100))
	if err != nil {
		h.writeListError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h Handlers) ListCalls(c *gin.Context) {
	docs, err := h.Messaging.ListCalls(c.Request.Context(), limitQuery(c, 100))
	if err != nil {
		h.writeListError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// --- Export ---

func (h Handlers) ExportCSV(c *gin.Context) {
	out, err := h.Export.Export(c.Request.Context(), c.Param("resource"), limitQuery(c, 1000))
	if err != nil {
		if errors.Is(err, export.ErrUnknownResource) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown resource"})
			return
		}
		h.writeListError(c, err)
		return
	}
	c.Header("Content-Type", "text/csv")
	c.String(http.StatusOK, out)
}

// --- Error mapping ---

func (h Handlers) writeDomainError(c *gin.Context, err, invalid error) {
	if errors.Is(err, invalid) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logger.FromGin(c).Error("write failed", "err", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "persist failed"})
}

func (h Handlers) writeListError(c *gin.Context, err error) {
	logger.FromGin(c).Error("list failed", "err", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
}

func (h Handlers) writeSendError(c *gin.Context, err error) {
	if errors.Is(err, messaging.ErrNotConfigured) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "messaging not configured"})
		return
	}
	logger.FromGin(c).Error("outbound send failed", "err", err)
	c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "provider send failed"})
}
