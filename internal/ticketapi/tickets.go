package ticketapi

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/linnemanlabs/beacon/internal/ticket"
	"github.com/linnemanlabs/beacon/internal/triage"
)

func (a *API) handleClassifyBatch(w http.ResponseWriter, r *http.Request) {
	body, err := a.csvBody(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	defer func() { _ = body.Close() }()

	tickets, err := ticket.ParseCSV(body)
	if err != nil {
		var ve *ticket.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusUnprocessableEntity, ve.Error())
			return
		}
		a.logger.Error(r.Context(), err, "failed to read ticket batch")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	batch, err := a.svc.ClassifyBatch(r.Context(), tickets)
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to classify batch")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(
		attribute.String("beacon.batch.id", batch.ID),
		attribute.Int("beacon.batch.tickets", batch.Stats.TotalTickets),
		attribute.Int("beacon.batch.high_priority", batch.Stats.HighPriorityCount),
	)

	writeJSON(w, http.StatusOK, batch)
}

// csvBody extracts the CSV payload: the "file" part of a multipart
// upload, or the raw request body for text/csv posts.
func (a *API) csvBody(r *http.Request) (io.ReadCloser, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(ct, "multipart/") {
		f, _, err := r.FormFile("file")
		if err != nil {
			return nil, errors.New(`multipart upload missing "file" part`)
		}
		return f, nil
	}
	return r.Body, nil
}

func (a *API) handleResults(w http.ResponseWriter, r *http.Request) {
	batch, ok, err := a.svc.LatestBatch(r.Context())
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to load latest batch")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no classified batch yet")
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

func (a *API) handleStats(w http.ResponseWriter, r *http.Request) {
	batch, ok, err := a.svc.LatestBatch(r.Context())
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to load latest batch")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no classified batch yet")
		return
	}
	writeJSON(w, http.StatusOK, batch.Stats)
}

func (a *API) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"auto_dispatch":   a.svc.AutoDispatch(),
		"sink_configured": a.svc.SinkConfigured(),
	})
}

func (a *API) handleSetAutoDispatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled *bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
		writeError(w, http.StatusUnprocessableEntity, `body must be {"enabled": true|false}`)
		return
	}

	a.svc.SetAutoDispatch(*req.Enabled)
	a.logger.Info(r.Context(), "auto-dispatch toggled", "enabled", *req.Enabled)
	writeJSON(w, http.StatusOK, map[string]any{"auto_dispatch": *req.Enabled})
}

func (a *API) handleManualDispatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TicketID string `json:"ticket_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TicketID == "" {
		writeError(w, http.StatusUnprocessableEntity, `body must be {"ticket_id": "..."}`)
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.String("beacon.ticket.id", req.TicketID))

	dr, err := a.svc.ManualDispatch(r.Context(), req.TicketID)
	if errors.Is(err, triage.ErrTicketNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		a.logger.Error(r.Context(), err, "manual dispatch failed", "ticket_id", req.TicketID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !dr.Success {
		writeJSON(w, http.StatusBadGateway, dr)
		return
	}
	writeJSON(w, http.StatusOK, dr)
}

func (a *API) handleTestDispatch(w http.ResponseWriter, r *http.Request) {
	if !a.svc.SinkConfigured() {
		writeError(w, http.StatusServiceUnavailable, "alert sink not configured")
		return
	}

	dr := a.svc.TestDispatch(r.Context())
	if !dr.Success {
		writeJSON(w, http.StatusBadGateway, dr)
		return
	}
	writeJSON(w, http.StatusOK, dr)
}
