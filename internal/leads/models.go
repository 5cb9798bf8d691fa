package leads

import (
	"errors"
	"strings"
)

// Lead is a prospect captured by the assistant (chat widget, phone menu, or
// manual entry). Append-only; leads are never updated in place.
type Lead struct {
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Company       string      `json:"company,omitempty"`
	InquiryType   InquiryType `json:"inquiry_type"`
	Reason        string      `json:"reason,omitempty"`
	Qualification string      `json:"qualification,omitempty"`
}

type InquiryType string

const (
	InquiryDemo        InquiryType = "demo"
	InquiryPurchase    InquiryType = "purchase"
	InquirySupport     InquiryType = "support"
	InquiryPartnership InquiryType = "partnership"
	InquiryFAQ         InquiryType = "faq"
	InquiryOther       InquiryType = "other"
)

var ErrInvalidLead = errors.New("leads: invalid lead")

func (t InquiryType) valid() bool {
	switch t {
	case InquiryDemo, InquiryPurchase, InquirySupport, InquiryPartnership, InquiryFAQ, InquiryOther:
		return true
	default:
		return false
	}
}

func (l Lead) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrInvalidLead
	}
	if strings.TrimSpace(l.Email) == "" || !strings.Contains(l.Email, "@") {
		return ErrInvalidLead
	}
	if !l.InquiryType.valid() {
		return ErrInvalidLead
	}
	return nil
}
