// Package ticketapi exposes the HTTP surface: ticket batch
// classification, results and stats, the auto-dispatch toggle, manual
// and test dispatch, and the authenticated incident webhook.
package ticketapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/linnemanlabs/beacon/internal/alert"
	"github.com/linnemanlabs/beacon/internal/authmw"
	"github.com/linnemanlabs/beacon/internal/ticket"
	"github.com/linnemanlabs/beacon/internal/triage"
)

// webhookTokenHeader carries the shared secret on incident webhook
// requests.
const webhookTokenHeader = "X-Webhook-Token"

// TriageService defines the business operations ticketapi needs.
type TriageService interface {
	ClassifyBatch(ctx context.Context, tickets []ticket.Ticket) (*triage.BatchResult, error)
	LatestBatch(ctx context.Context) (*triage.BatchResult, bool, error)
	ManualDispatch(ctx context.Context, ticketID string) (alert.DispatchResult, error)
	TestDispatch(ctx context.Context) alert.DispatchResult
	DispatchIncident(ctx context.Context, m *alert.Message) alert.DispatchResult
	SetAutoDispatch(enabled bool)
	AutoDispatch() bool
	SinkConfigured() bool
}

// API holds dependencies for HTTP handlers.
type API struct {
	logger        log.Logger
	svc           TriageService
	webhookSecret string
}

// New creates a new API handler. An empty webhookSecret leaves the
// incident webhook unauthenticated (open by default).
func New(logger log.Logger, svc TriageService, webhookSecret string) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if svc == nil {
		panic(xerrors.New("triage service is required"))
	}
	return &API{
		logger:        logger,
		svc:           svc,
		webhookSecret: webhookSecret,
	}
}

// RegisterRoutes attaches API endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/tickets/classify", a.handleClassifyBatch)
		r.Get("/results", a.handleResults)
		r.Get("/stats", a.handleStats)
		r.Get("/config", a.handleGetConfig)
		r.Post("/config/auto-dispatch", a.handleSetAutoDispatch)
		r.Post("/dispatch", a.handleManualDispatch)
		r.Post("/notify/test", a.handleTestDispatch)
	})

	r.With(authmw.SharedSecret(webhookTokenHeader, a.webhookSecret)).
		Post("/webhook/incident", a.handleIncident)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
