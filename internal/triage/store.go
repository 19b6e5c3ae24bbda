package triage

import "context"

// Store retains the most recent classified batch so results, stats,
// and manual dispatch can reference it. History is intentionally not
// kept.
type Store interface {
	PutBatch(ctx context.Context, batch *BatchResult) error
	LatestBatch(ctx context.Context) (*BatchResult, bool, error)
	GetTicketResult(ctx context.Context, ticketID string) (*TicketResult, bool, error)
}
