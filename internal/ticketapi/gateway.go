package ticketapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/linnemanlabs/beacon/internal/alert"
)

// incidentRequest is the payload accepted by the incident webhook.
type incidentRequest struct {
	IncidentTitle string  `json:"incident_title"`
	ImpactLevel   string  `json:"impact_level"`
	Details       string  `json:"details"`
	SystemArea    string  `json:"system_area"`
	ImpactValue   float64 `json:"impact_value"`
}

func (req *incidentRequest) validate() []string {
	var missing []string
	if strings.TrimSpace(req.IncidentTitle) == "" {
		missing = append(missing, "incident_title")
	}
	if strings.TrimSpace(req.ImpactLevel) == "" {
		missing = append(missing, "impact_level")
	}
	if strings.TrimSpace(req.Details) == "" {
		missing = append(missing, "details")
	}
	return missing
}

// handleIncident accepts an externally triggered alert and forwards it
// to the dispatcher. The shared-secret check has already run in
// middleware, before this validation.
func (a *API) handleIncident(w http.ResponseWriter, r *http.Request) {
	var req incidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid payload")
		return
	}
	if missing := req.validate(); len(missing) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "missing required fields: "+strings.Join(missing, ", "))
		return
	}

	a.logger.Info(r.Context(), "received incident webhook",
		"title", req.IncidentTitle, "impact", req.ImpactLevel)

	area := req.SystemArea
	if area == "" {
		area = "General Planning"
	}

	msg := alert.Message{
		Title:       req.IncidentTitle,
		ImpactLevel: req.ImpactLevel,
		SystemArea:  area,
		Details:     req.Details,
		ImpactValue: req.ImpactValue,
		Timestamp:   time.Now(),
	}

	if !a.svc.SinkConfigured() {
		writeError(w, http.StatusServiceUnavailable, "alert sink not configured")
		return
	}

	dr := a.svc.DispatchIncident(r.Context(), &msg)
	if !dr.Success {
		a.logger.Warn(r.Context(), "incident alert delivery failed",
			"title", req.IncidentTitle, "attempts", dr.Attempts, "last_error", dr.LastError)
		writeJSON(w, http.StatusBadGateway, dr)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"message":   "incident alert delivered",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
