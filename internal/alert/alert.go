// Package alert defines the wire-ready alert message, the mapping from
// classification urgency to impact level, and the dispatch result
// returned to callers.
package alert

import (
	"errors"
	"time"

	"github.com/linnemanlabs/beacon/internal/ticket"
)

// ErrNotConfigured is returned when dispatch is attempted without a
// configured sink. No network call is made in that case.
var ErrNotConfigured = errors.New("alert sink not configured")

// Impact levels carried on outbound alerts.
const (
	LevelCritical = "Critical"
	LevelWarning  = "Warning"
	LevelInfo     = "Info"
)

// Message is a formatted alert, built immediately before dispatch and
// discarded afterwards.
type Message struct {
	Title       string    `json:"title"`
	ImpactLevel string    `json:"impact_level"`
	SystemArea  string    `json:"system_area"`
	Details     string    `json:"details"`
	ImpactValue float64   `json:"impact_value"`
	Timestamp   time.Time `json:"timestamp"`
}

// DispatchResult reports the outcome of one dispatch, including how
// many delivery attempts were made and the last error when all failed.
type DispatchResult struct {
	Success   bool   `json:"success"`
	Attempts  int    `json:"attempts_made"`
	LastError string `json:"last_error,omitempty"`
}

// LevelForUrgency maps classification urgency to the outbound impact
// level.
func LevelForUrgency(u ticket.Urgency) string {
	switch u {
	case ticket.UrgencyHigh:
		return LevelCritical
	case ticket.UrgencyMedium:
		return LevelWarning
	default:
		return LevelInfo
	}
}

// Build formats a classification into a Message. levelOverride replaces
// the urgency-derived impact level when non-empty (manual dispatch and
// connectivity tests use this). The timestamp is taken now, at format
// time, not at classification time.
func Build(title string, c ticket.Classification, levelOverride string) Message {
	level := LevelForUrgency(c.Urgency)
	if levelOverride != "" {
		level = levelOverride
	}
	return Message{
		Title:       title,
		ImpactLevel: level,
		SystemArea:  string(c.Category),
		Details:     c.Summary,
		ImpactValue: c.ImpactScore,
		Timestamp:   time.Now(),
	}
}
