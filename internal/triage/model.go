package triage

import (
	"time"

	"github.com/linnemanlabs/beacon/internal/alert"
	"github.com/linnemanlabs/beacon/internal/ticket"
)

// TicketResult pairs a ticket with its classification and, when an
// automatic alert was attempted, the dispatch outcome.
type TicketResult struct {
	Ticket         ticket.Ticket         `json:"ticket"`
	Classification ticket.Classification `json:"classification"`
	ProcessedAt    time.Time             `json:"processed_at"`

	// Dispatch is nil when no automatic alert was attempted for this
	// ticket (not High urgency, or auto-dispatch disabled).
	Dispatch *alert.DispatchResult `json:"dispatch,omitempty"`
}

// Stats summarizes one classified batch.
type Stats struct {
	TotalTickets      int                    `json:"total_tickets"`
	Categories        map[ticket.Category]int `json:"categories"`
	Urgencies         map[ticket.Urgency]int  `json:"urgency_levels"`
	HighPriorityCount int                    `json:"high_priority_count"`
	TotalImpact       float64                `json:"total_impact"`
	AvgConfidence     float64                `json:"avg_confidence"`
}

// BatchResult is the full outcome of classifying one ticket batch.
type BatchResult struct {
	ID        string         `json:"batch_id"`
	Results   []TicketResult `json:"results"`
	Stats     Stats          `json:"stats"`
	CreatedAt time.Time      `json:"created_at"`
}

func computeStats(results []TicketResult) Stats {
	s := Stats{
		TotalTickets: len(results),
		Categories:   make(map[ticket.Category]int),
		Urgencies:    make(map[ticket.Urgency]int),
	}

	var confidenceSum float64
	for _, r := range results {
		s.Categories[r.Classification.Category]++
		s.Urgencies[r.Classification.Urgency]++
		if r.Classification.Urgency == ticket.UrgencyHigh {
			s.HighPriorityCount++
		}
		s.TotalImpact += r.Classification.ImpactScore
		confidenceSum += r.Classification.Confidence
	}
	if len(results) > 0 {
		s.AvgConfidence = confidenceSum / float64(len(results))
	}
	return s
}
