package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/linnemanlabs/beacon/internal/ticket"
	"github.com/linnemanlabs/beacon/internal/triage"
)

func sampleBatch(id string) *triage.BatchResult {
	return &triage.BatchResult{
		ID: id,
		Results: []triage.TicketResult{
			{
				Ticket: ticket.Ticket{ID: "EPM-001", Customer: "Acme", Description: "sync failed"},
				Classification: ticket.Classification{
					Category: ticket.CategoryDataIntegration,
					Urgency:  ticket.UrgencyHigh,
				},
				ProcessedAt: time.Now(),
			},
		},
		CreatedAt: time.Now(),
	}
}

func TestLatestBatch_Empty(t *testing.T) {
	t.Parallel()

	s := New()
	_, ok, err := s.LatestBatch(context.Background())
	if err != nil {
		t.Fatalf("LatestBatch: %v", err)
	}
	if ok {
		t.Error("expected no batch in a fresh store")
	}
}

func TestPutBatch_ReplacesLatest(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	if err := s.PutBatch(ctx, sampleBatch("batch-1")); err != nil {
		t.Fatalf("PutBatch: %v", err)
	}
	if err := s.PutBatch(ctx, sampleBatch("batch-2")); err != nil {
		t.Fatalf("PutBatch: %v", err)
	}

	got, ok, err := s.LatestBatch(ctx)
	if err != nil || !ok {
		t.Fatalf("LatestBatch: ok=%v err=%v", ok, err)
	}
	if got.ID != "batch-2" {
		t.Errorf("latest batch = %q, want batch-2 (no history retained)", got.ID)
	}
}

func TestLatestBatch_ReturnsCopy(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	if err := s.PutBatch(ctx, sampleBatch("batch-1")); err != nil {
		t.Fatalf("PutBatch: %v", err)
	}

	first, _, _ := s.LatestBatch(ctx)
	first.Results[0].Ticket.Customer = "mutated"

	second, _, _ := s.LatestBatch(ctx)
	if second.Results[0].Ticket.Customer != "Acme" {
		t.Error("mutating a returned batch leaked into the store")
	}
}

func TestGetTicketResult(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	if _, ok, err := s.GetTicketResult(ctx, "EPM-001"); err != nil || ok {
		t.Fatalf("fresh store: ok=%v err=%v, want miss", ok, err)
	}

	if err := s.PutBatch(ctx, sampleBatch("batch-1")); err != nil {
		t.Fatalf("PutBatch: %v", err)
	}

	got, ok, err := s.GetTicketResult(ctx, "EPM-001")
	if err != nil || !ok {
		t.Fatalf("GetTicketResult: ok=%v err=%v", ok, err)
	}
	if got.Ticket.Customer != "Acme" {
		t.Errorf("customer = %q, want Acme", got.Ticket.Customer)
	}

	if _, ok, _ := s.GetTicketResult(ctx, "EPM-999"); ok {
		t.Error("expected miss for unknown ticket ID")
	}
}
