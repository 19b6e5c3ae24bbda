// Package memstore provides the in-memory implementation of
// triage.Store, holding only the latest batch.
package memstore

import (
	"context"
	"sync"

	"github.com/linnemanlabs/beacon/internal/triage"
)

// Store holds the latest batch result in memory.
type Store struct {
	mu     sync.RWMutex
	latest *triage.BatchResult
}

// New initializes an empty in-memory Store.
func New() *Store {
	return &Store{}
}

// PutBatch replaces the retained batch with a copy of the given one.
func (s *Store) PutBatch(_ context.Context, batch *triage.BatchResult) error {
	cp := *batch
	cp.Results = make([]triage.TicketResult, len(batch.Results))
	copy(cp.Results, batch.Results)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = &cp
	return nil
}

// LatestBatch returns a copy of the retained batch, if any.
func (s *Store) LatestBatch(_ context.Context) (*triage.BatchResult, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil, false, nil
	}
	cp := *s.latest
	cp.Results = make([]triage.TicketResult, len(s.latest.Results))
	copy(cp.Results, s.latest.Results)
	return &cp, true, nil
}

// GetTicketResult looks a ticket up in the retained batch by ID.
func (s *Store) GetTicketResult(_ context.Context, ticketID string) (*triage.TicketResult, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil, false, nil
	}
	for _, r := range s.latest.Results {
		if r.Ticket.ID == ticketID {
			cp := r
			return &cp, true, nil
		}
	}
	return nil, false, nil
}
