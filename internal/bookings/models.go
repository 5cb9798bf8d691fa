package bookings

import (
	"errors"
	"strings"
	"time"
)

// Booking is a scheduled product demo.
type Booking struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	SlotISO string `json:"slot_iso"`
	Notes   string `json:"notes,omitempty"`
	Source  string `json:"source"`
}

var ErrInvalidBooking = errors.New("bookings: invalid booking")

// Normalize applies the default source.
func (b *Booking) Normalize() {
	if strings.TrimSpace(b.Source) == "" {
		b.Source = "chat"
	}
}

func (b Booking) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrInvalidBooking
	}
	if strings.TrimSpace(b.Email) == "" || !strings.Contains(b.Email, "@") {
		return ErrInvalidBooking
	}
	if _, err := time.Parse(time.RFC3339, b.SlotISO); err != nil {
		return ErrInvalidBooking
	}
	return nil
}
