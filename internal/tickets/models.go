package tickets

import (
	"errors"
	"sort"
	"strings"
)

// Ticket is a support issue routed to the internal team.
type Ticket struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     string    `json:"company,omitempty"`
	IssueType   IssueType `json:"issue_type"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Tags        []string  `json:"tags"`
}

type IssueType string

const (
	IssueTechnical IssueType = "technical"
	IssueBilling   IssueType = "billing"
	IssueAccount   IssueType = "account"
	IssueOther     IssueType = "other"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var ErrInvalidTicket = errors.New("tickets: invalid ticket")

func (t IssueType) valid() bool {
	switch t {
	case IssueTechnical, IssueBilling, IssueAccount, IssueOther:
		return true
	default:
		return false
	}
}

func (p Priority) valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Normalize applies defaults and dedupes tags. Tags behave as a set.
func (t *Ticket) Normalize() {
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	seen := map[string]struct{}{}
	tags := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	t.Tags = tags
}

func (t Ticket) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrInvalidTicket
	}
	if strings.TrimSpace(t.Email) == "" || !strings.Contains(t.Email, "@") {
		return ErrInvalidTicket
	}
	if !t.IssueType.valid() {
		return ErrInvalidTicket
	}
	if strings.TrimSpace(t.Subject) == "" || strings.TrimSpace(t.Description) == "" {
		return ErrInvalidTicket
	}
	if !t.Priority.valid() {
		return ErrInvalidTicket
	}
	return nil
}
