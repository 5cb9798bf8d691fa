package tickets

import (
	"context"
	"testing"

	"frontdesk-api/internal/store"
)

func TestNormalizeDefaultsAndTagSet(t *testing.T) {
	tk := Ticket{Tags: []string{"phone", "ivr", "phone", " "}}
	tk.Normalize()
	if tk.Priority != PriorityMedium {
		t.Fatalf("expected medium default, got %q", tk.Priority)
	}
	if len(tk.Tags) != 2 {
		t.Fatalf("expected deduped tags, got %v", tk.Tags)
	}
}

func TestCreateRejectsInvalid(t *testing.T) {
	svc := NewService(store.NewMemory())
	_, err := svc.Create(context.Background(), Ticket{
		Name:      "Grace",
		Email:     "grace@example.com",
		IssueType: "weird",
		Subject:   "s",
	})
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestCreateAndList(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem)

	_, err := svc.Create(context.Background(), Ticket{
		Name:        "Grace Hopper",
		Email:       "grace@example.com",
		IssueType:   IssueTechnical,
		Subject:     "Login broken",
		Description: "Cannot sign in since this morning.",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	docs, err := svc.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(docs))
	}
	if docs[0]["priority"] != "medium" {
		t.Fatalf("expected medium default, got %v", docs[0]["priority"])
	}
}
