package triage

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/oklog/ulid/v2"

	"github.com/linnemanlabs/beacon/internal/alert"
	"github.com/linnemanlabs/beacon/internal/classify"
	"github.com/linnemanlabs/beacon/internal/ticket"
)

// ErrTicketNotFound is returned by ManualDispatch when the ticket is
// not in the retained batch.
var ErrTicketNotFound = errors.New("ticket not found in latest batch")

// Dispatch modes for metrics labelling.
const (
	modeAuto     = "auto"
	modeManual   = "manual"
	modeTest     = "test"
	modeIncident = "incident"
)

// Dispatcher delivers a formatted alert to the external sink.
type Dispatcher interface {
	Dispatch(ctx context.Context, m *alert.Message) alert.DispatchResult
	Configured() bool
}

// Service classifies ticket batches and owns the auto-dispatch policy.
// The policy bit starts false and is read once per batch with a single
// atomic load; a toggle issued mid-batch takes effect on the next one.
type Service struct {
	store      Store
	classifier classify.Classifier
	dispatcher Dispatcher
	logger     log.Logger
	metrics    *Metrics

	autoDispatch atomic.Bool
}

// NewService creates a triage service. Auto-dispatch starts disabled.
func NewService(store Store, classifier classify.Classifier, dispatcher Dispatcher, logger log.Logger, metrics *Metrics) *Service {
	if logger == nil {
		logger = log.Nop()
	}
	return &Service{
		store:      store,
		classifier: classifier,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// SetAutoDispatch flips the auto-dispatch policy. No other side effects.
func (s *Service) SetAutoDispatch(enabled bool) {
	s.autoDispatch.Store(enabled)
}

// AutoDispatch reports the current policy.
func (s *Service) AutoDispatch() bool {
	return s.autoDispatch.Load()
}

// SinkConfigured reports whether the alert sink has an endpoint.
func (s *Service) SinkConfigured() bool {
	return s.dispatcher.Configured()
}

// LatestBatch returns the most recently classified batch.
func (s *Service) LatestBatch(ctx context.Context) (*BatchResult, bool, error) {
	return s.store.LatestBatch(ctx)
}

// ClassifyBatch classifies every ticket independently and, when the
// auto-dispatch policy is enabled, sends an alert for each High-urgency
// result. One ticket's dispatch failure never blocks the rest; every
// outcome is recorded on its TicketResult.
func (s *Service) ClassifyBatch(ctx context.Context, tickets []ticket.Ticket) (*BatchResult, error) {
	batchID := ulid.Make().String()
	auto := s.autoDispatch.Load()

	L := s.logger.With("batch_id", batchID)
	L.Info(ctx, "classifying ticket batch", "tickets", len(tickets), "auto_dispatch", auto)

	results := make([]TicketResult, 0, len(tickets))
	for _, tk := range tickets {
		c := s.classifier.Classify(ctx, tk.Description)
		if s.metrics != nil {
			s.metrics.ClassificationsTotal.WithLabelValues(string(c.Category), string(c.Urgency)).Inc()
			s.metrics.ImpactTotal.Add(c.ImpactScore)
		}

		res := TicketResult{
			Ticket:         tk,
			Classification: c,
			ProcessedAt:    time.Now(),
		}

		if auto && c.Urgency == ticket.UrgencyHigh {
			msg := alert.Build("Critical Risk: "+tk.Customer, c, "")
			dr := s.dispatcher.Dispatch(ctx, &msg)
			res.Dispatch = &dr
			s.metrics.observeDispatch(modeAuto, dr.Success, dr.Attempts)
			if !dr.Success {
				L.Warn(ctx, "automatic alert dispatch failed",
					"ticket_id", tk.ID, "attempts", dr.Attempts, "error", dr.LastError)
			}
		}

		results = append(results, res)
	}

	batch := &BatchResult{
		ID:        batchID,
		Results:   results,
		Stats:     computeStats(results),
		CreatedAt: time.Now(),
	}

	if err := s.store.PutBatch(ctx, batch); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BatchesTotal.Inc()
		s.metrics.BatchSize.Observe(float64(len(results)))
	}

	L.Info(ctx, "batch classified",
		"tickets", batch.Stats.TotalTickets,
		"high_priority", batch.Stats.HighPriorityCount,
		"total_impact", batch.Stats.TotalImpact,
	)
	return batch, nil
}

// ManualDispatch sends an alert for a ticket from the retained batch,
// bypassing the auto-dispatch policy. High urgency maps to Critical,
// everything else to Warning (the operator asked, so it is never Info).
func (s *Service) ManualDispatch(ctx context.Context, ticketID string) (alert.DispatchResult, error) {
	res, ok, err := s.store.GetTicketResult(ctx, ticketID)
	if err != nil {
		return alert.DispatchResult{}, err
	}
	if !ok {
		return alert.DispatchResult{}, ErrTicketNotFound
	}

	level := alert.LevelWarning
	if res.Classification.Urgency == ticket.UrgencyHigh {
		level = alert.LevelCritical
	}

	msg := alert.Build("Manual Dispatch: "+res.Ticket.Customer, res.Classification, level)
	dr := s.dispatcher.Dispatch(ctx, &msg)
	s.metrics.observeDispatch(modeManual, dr.Success, dr.Attempts)

	s.logger.Info(ctx, "manual dispatch",
		"ticket_id", ticketID, "success", dr.Success, "attempts", dr.Attempts)
	return dr, nil
}

// DispatchIncident delivers an externally supplied alert message, as
// forwarded by the incident webhook gateway.
func (s *Service) DispatchIncident(ctx context.Context, m *alert.Message) alert.DispatchResult {
	dr := s.dispatcher.Dispatch(ctx, m)
	s.metrics.observeDispatch(modeIncident, dr.Success, dr.Attempts)

	s.logger.Info(ctx, "incident dispatch",
		"title", m.Title, "success", dr.Success, "attempts", dr.Attempts)
	return dr
}

// TestDispatch sends a diagnostic alert to verify sink connectivity.
func (s *Service) TestDispatch(ctx context.Context) alert.DispatchResult {
	msg := alert.Message{
		Title:       "System Connectivity Test",
		ImpactLevel: alert.LevelInfo,
		SystemArea:  "Portal Infrastructure",
		Details:     "Diagnostic ping from the triage hub.",
		Timestamp:   time.Now(),
	}
	dr := s.dispatcher.Dispatch(ctx, &msg)
	s.metrics.observeDispatch(modeTest, dr.Success, dr.Attempts)
	return dr
}
