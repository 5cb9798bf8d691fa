package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"frontdesk-api/internal/auth"
	"frontdesk-api/internal/bookings"
	"frontdesk-api/internal/chats"
	"frontdesk-api/internal/config"
	"frontdesk-api/internal/export"
	"frontdesk-api/internal/leads"
	"frontdesk-api/internal/messaging"
	"frontdesk-api/internal/notify"
	"frontdesk-api/internal/payments"
	"frontdesk-api/internal/store"
	"frontdesk-api/internal/tickets"

	"github.com/gin-gonic/gin"
)

type fakeSender struct {
	configured bool
	sent       int
}

func (f *fakeSender) Configured() bool { return f.configured }

func (f *fakeSender) SendMessage(_ context.Context, to, from, body string) (notify.Message, error) {
	f.sent++
	return notify.Message{SID: "SM-test", Status: "queued"}, nil
}

func (f *fakeSender) PlaceCall(_ context.Context, to, from, callbackURL string) (notify.Call, error) {
	return notify.Call{SID: "CA-test", Status: "queued"}, nil
}

type env struct {
	handlers Handlers
	mem      *store.Memory
	sender   *fakeSender
}

func newEnv(t *testing.T) env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := store.NewMemory()
	sender := &fakeSender{configured: true}

	manager, err := auth.NewManager(config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	return env{
		handlers: Handlers{
			Auth:      manager,
			Users:     auth.NewUserService(mem),
			Leads:     leads.NewService(mem),
			Chats:     chats.NewService(mem),
			Bookings:  bookings.NewService(mem),
			Tickets:   tickets.NewService(mem),
			Payments:  payments.NewService(mem),
			Messaging: messaging.NewService(mem, sender, "+15550001111", "https://desk.example.com/webhooks/twilio/voice"),
			Export:    export.NewService(mem),
		},
		mem:    mem,
		sender: sender,
	}
}

func doJSON(t *testing.T, handler gin.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.Handle(method, path, handler)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, w.Body.String())
	}
	return out
}

func TestCreateLeadPersistsAndLists(t *testing.T) {
	e := newEnv(t)

	w := doJSON(t, e.handlers.CreateLead, http.MethodPost, "/v1/leads",
		`{"name":"Ada","email":"ada@example.com","inquiry_type":"demo"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["id"] == "" || body["status"] != "saved" {
		t.Fatalf("unexpected body: %v", body)
	}

	w = doJSON(t, e.handlers.ListLeads, http.MethodGet, "/v1/leads", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var docs []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &docs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(docs) != 1 || docs[0]["email"] != "ada@example.com" {
		t.Fatalf("unexpected docs: %v", docs)
	}
}

func TestCreateLeadRejectsInvalid(t *testing.T) {
	e := newEnv(t)

	w := doJSON(t, e.handlers.CreateLead, http.MethodPost, "/v1/leads",
		`{"name":"","email":"","inquiry_type":"demo"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if e.mem.Count("lead") != 0 {
		t.Fatalf("invalid lead was persisted")
	}
}

func TestCreateLeadStoreFailure(t *testing.T) {
	e := newEnv(t)
	e.mem.FailInserts = context.DeadlineExceeded

	w := doJSON(t, e.handlers.CreateLead, http.MethodPost, "/v1/leads",
		`{"name":"Ada","email":"ada@example.com","inquiry_type":"demo"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	e := newEnv(t)

	w := doJSON(t, e.handlers.Register, http.MethodPost, "/v1/auth/register",
		`{"email":"Agent@Example.com","password":"correct horse","name":"Agent"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}

	// duplicate email conflicts regardless of case
	w = doJSON(t, e.handlers.Register, http.MethodPost, "/v1/auth/register",
		`{"email":"agent@example.com","password":"another pass","name":"Agent"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409", w.Code)
	}

	w = doJSON(t, e.handlers.Login, http.MethodPost, "/v1/auth/login",
		`{"email":"agent@example.com","password":"correct horse"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["access_token"] == "" || body["refresh_token"] == "" {
		t.Fatalf("missing tokens: %v", body)
	}

	w = doJSON(t, e.handlers.Login, http.MethodPost, "/v1/auth/login",
		`{"email":"agent@example.com","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d, want 401", w.Code)
	}
}

func TestCheckoutAndConfirm(t *testing.T) {
	e := newEnv(t)

	w := doJSON(t, e.handlers.Checkout, http.MethodPost, "/v1/payments/checkout",
		`{"plan":"pro","amount_cents":4900,"email":"ada@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("checkout status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	sessionID, _ := body["session_id"].(string)
	if !strings.HasPrefix(sessionID, "sess_") {
		t.Fatalf("session_id = %q", sessionID)
	}
	if url, _ := body["checkout_url"].(string); !strings.HasPrefix(url, "https://checkout.stripe.com/") {
		t.Fatalf("checkout_url = %q", url)
	}

	r := gin.New()
	r.POST("/v1/payments/checkout/confirm/:session_id", e.handlers.ConfirmCheckout)
	req := httptest.NewRequest(http.MethodPost, "/v1/payments/checkout/confirm/"+sessionID, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm status = %d, body %s", rec.Code, rec.Body.String())
	}
	if e.mem.Count("paymentrecord") != 2 {
		t.Fatalf("paymentrecord count = %d, want initiated + succeeded", e.mem.Count("paymentrecord"))
	}
}

func TestCheckoutRejectsInvalid(t *testing.T) {
	e := newEnv(t)

	w := doJSON(t, e.handlers.Checkout, http.MethodPost, "/v1/payments/checkout",
		`{"plan":"","amount_cents":0}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSendSMS(t *testing.T) {
	e := newEnv(t)

	w := doJSON(t, e.handlers.SendSMS, http.MethodPost, "/v1/messages/sms",
		`{"to":"+15557654321","body":"hello"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if e.sender.sent != 1 {
		t.Fatalf("sent = %d, want 1", e.sender.sent)
	}
	if e.mem.Count("smsmessage") != 1 {
		t.Fatalf("smsmessage count = %d, want 1", e.mem.Count("smsmessage"))
	}
}

func TestSendSMSNotConfigured(t *testing.T) {
	e := newEnv(t)
	e.sender.configured = false

	w := doJSON(t, e.handlers.SendSMS, http.MethodPost, "/v1/messages/sms",
		`{"to":"+15557654321","body":"hello"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if e.mem.Count("smsmessage") != 0 {
		t.Fatalf("no record should be written when sending is disabled")
	}
}

func TestExportCSV(t *testing.T) {
	e := newEnv(t)
	if _, err := e.handlers.Leads.Create(context.Background(), leads.Lead{
		Name: "Ada", Email: "ada@example.com", InquiryType: leads.InquiryDemo,
	}); err != nil {
		t.Fatalf("seed lead: %v", err)
	}

	r := gin.New()
	r.GET("/v1/export/:resource", e.handlers.ExportCSV)

	req := httptest.NewRequest(http.MethodGet, "/v1/export/leads", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "ada@example.com") {
		t.Fatalf("csv missing row: %q", w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/export/nonsense", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown resource status = %d, want 400", w.Code)
	}
}

func TestAppendChatDefaults(t *testing.T) {
	e := newEnv(t)

	w := doJSON(t, e.handlers.AppendChat, http.MethodPost, "/v1/chats",
		`{"session_id":"s1","sender":"user","content":"hi"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if e.mem.Count("chatmessage") != 1 {
		t.Fatalf("chatmessage count = %d", e.mem.Count("chatmessage"))
	}
}

func TestCreateBookingRejectsBadSlot(t *testing.T) {
	e := newEnv(t)

	w := doJSON(t, e.handlers.CreateBooking, http.MethodPost, "/v1/bookings",
		`{"name":"Ada","email":"ada@example.com","slot_iso":"next tuesday"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
