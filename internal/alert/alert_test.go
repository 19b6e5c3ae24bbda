package alert

import (
	"testing"
	"time"

	"github.com/linnemanlabs/beacon/internal/ticket"
)

func TestLevelForUrgency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		urgency ticket.Urgency
		want    string
	}{
		{ticket.UrgencyHigh, LevelCritical},
		{ticket.UrgencyMedium, LevelWarning},
		{ticket.UrgencyLow, LevelInfo},
		{ticket.Urgency("unknown"), LevelInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.urgency), func(t *testing.T) {
			t.Parallel()
			if got := LevelForUrgency(tt.urgency); got != tt.want {
				t.Errorf("LevelForUrgency(%q) = %q, want %q", tt.urgency, got, tt.want)
			}
		})
	}
}

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	c := ticket.Classification{
		Category:    ticket.CategoryDataIntegration,
		Urgency:     ticket.UrgencyHigh,
		ImpactScore: 1_200_000,
		Summary:     "Data sync failure detected.",
		Confidence:  0.98,
	}

	before := time.Now()
	m := Build("Critical Risk: Global Finance Corp", c, "")
	after := time.Now()

	if m.ImpactLevel != LevelCritical {
		t.Errorf("impact level = %q, want %q", m.ImpactLevel, LevelCritical)
	}
	if m.SystemArea != string(ticket.CategoryDataIntegration) {
		t.Errorf("system area = %q, want %q", m.SystemArea, ticket.CategoryDataIntegration)
	}
	if m.Details != c.Summary {
		t.Errorf("details = %q, want %q", m.Details, c.Summary)
	}
	if m.ImpactValue != c.ImpactScore {
		t.Errorf("impact value = %v, want %v", m.ImpactValue, c.ImpactScore)
	}
	if m.Timestamp.Before(before) || m.Timestamp.After(after) {
		t.Errorf("timestamp %v not taken at format time", m.Timestamp)
	}
}

func TestBuild_LevelOverride(t *testing.T) {
	t.Parallel()

	c := ticket.Classification{Urgency: ticket.UrgencyHigh, Category: ticket.CategoryGeneral}
	m := Build("System Connectivity Test", c, LevelInfo)
	if m.ImpactLevel != LevelInfo {
		t.Errorf("impact level = %q, want override %q", m.ImpactLevel, LevelInfo)
	}
}
