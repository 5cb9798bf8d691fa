package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"frontdesk-api/internal/config"
)

// ErrNotConfigured signals missing Twilio credentials. Manual API endpoints
// surface it as a server error; the voice flow swallows it like any other
// side-effect failure.
var ErrNotConfigured = errors.New("notify: twilio credentials not configured")

// Client talks to the Twilio REST API directly. No provider SDK; the two
// calls this system makes are plain form POSTs with basic auth.
type Client struct {
	accountSID string
	authToken  string

	baseURL    string
	httpClient *http.Client
}

// Message is the provider's receipt for an accepted SMS.
type Message struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// Call is the provider's receipt for a placed call.
type Call struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

func NewClient(cfg config.TwilioConfig) *Client {
	return &Client{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		baseURL:    "https://api.twilio.com/2010-04-01",
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Configured reports whether outbound requests can be attempted at all.
func (c *Client) Configured() bool {
	return c.accountSID != "" && c.authToken != ""
}

// SendMessage sends an SMS and returns the provider message id and status.
func (c *Client) SendMessage(ctx context.Context, to, from, body string) (Message, error) {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", from)
	form.Set("Body", body)

	var msg Message
	if err := c.post(ctx, "/Messages.json", form, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// PlaceCall starts an outbound call; Twilio fetches call instructions from
// callbackURL once the callee answers.
func (c *Client) PlaceCall(ctx context.Context, to, from, callbackURL string) (Call, error) {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", from)
	form.Set("Url", callbackURL)

	var call Call
	if err := c.post(ctx, "/Calls.json", form, &call); err != nil {
		return Call{}, err
	}
	return call, nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/Accounts/%s%s", c.baseURL, c.accountSID, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify: twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notify: twilio returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("notify: decode twilio response: %w", err)
	}
	return nil
}
