package classify

import (
	"context"
	"strings"
	"testing"

	"github.com/linnemanlabs/beacon/internal/ticket"
)

func TestClassify_Categories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		description  string
		wantCategory ticket.Category
		wantUrgency  ticket.Urgency
	}{
		{"sync maps to data integration", "the nightly sync is slow", ticket.CategoryDataIntegration, ticket.UrgencyMedium},
		{"failed sync escalates", "API sync failed overnight", ticket.CategoryDataIntegration, ticket.UrgencyHigh},
		{"formula error", "the headcount formula looks off", ticket.CategoryFormulaError, ticket.UrgencyMedium},
		{"ref marker escalates", "#REF errors all over the worksheet", ticket.CategoryFormulaError, ticket.UrgencyHigh},
		{"access always medium", "cannot login since the security update failed", ticket.CategoryAccessControl, ticket.UrgencyMedium},
		{"permission request", "need a new role with broader permission", ticket.CategoryAccessControl, ticket.UrgencyMedium},
		{"strategic planning", "the budget scenario needs review", ticket.CategoryStrategicPlanning, ticket.UrgencyMedium},
		{"strategic planning escalates", "budget cycle is stuck", ticket.CategoryStrategicPlanning, ticket.UrgencyHigh},
		{"unmatched falls back to general", "printer on floor 3 is out of toner", ticket.CategoryGeneral, ticket.UrgencyLow},
		{"general stays low despite failure word", "the coffee machine stopped", ticket.CategoryGeneral, ticket.UrgencyLow},
		{"case insensitive", "SYNC FAILED", ticket.CategoryDataIntegration, ticket.UrgencyHigh},
	}

	c := NewRules()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := c.Classify(context.Background(), tt.description)
			if got.Category != tt.wantCategory {
				t.Errorf("category = %q, want %q", got.Category, tt.wantCategory)
			}
			if got.Urgency != tt.wantUrgency {
				t.Errorf("urgency = %q, want %q", got.Urgency, tt.wantUrgency)
			}
			if got.Confidence != ruleConfidence {
				t.Errorf("confidence = %v, want %v", got.Confidence, ruleConfidence)
			}
			if got.ImpactScore < 0 {
				t.Errorf("impact score = %v, want >= 0", got.ImpactScore)
			}
		})
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	t.Parallel()

	// Matches both data-integration ("sync") and formula ("formula")
	// keywords; the earlier rule must win.
	got := NewRules().Classify(context.Background(), "sync broke the formula")
	if got.Category != ticket.CategoryDataIntegration {
		t.Errorf("category = %q, want %q", got.Category, ticket.CategoryDataIntegration)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	t.Parallel()

	c := NewRules()
	desc := "Our Q4 forecast budget scenario shifted by $3.5m"
	first := c.Classify(context.Background(), desc)
	for range 5 {
		if got := c.Classify(context.Background(), desc); got != first {
			t.Fatalf("classification changed between runs: %+v vs %+v", got, first)
		}
	}
}

func TestClassify_SummaryRef(t *testing.T) {
	t.Parallel()

	c := NewRules()

	withAmount := c.Classify(context.Background(), "sync dropped $1.2M of sales data")
	if want := "(Ref: 1,200,000.00)"; !strings.Contains(withAmount.Summary, want) {
		t.Errorf("summary = %q, want to contain %q", withAmount.Summary, want)
	}
	if withAmount.ImpactScore != 1_200_000 {
		t.Errorf("impact score = %v, want 1200000", withAmount.ImpactScore)
	}

	noAmount := c.Classify(context.Background(), "sync is flaky")
	if strings.Contains(noAmount.Summary, "Ref:") {
		t.Errorf("summary = %q, want no Ref marker without an amount", noAmount.Summary)
	}
	if noAmount.ImpactScore != 0 {
		t.Errorf("impact score = %v, want 0", noAmount.ImpactScore)
	}
}

func TestClassify_EndToEndExample(t *testing.T) {
	t.Parallel()

	got := NewRules().Classify(context.Background(), "API sync failed, $1.2M at risk")
	if got.Category != ticket.CategoryDataIntegration {
		t.Errorf("category = %q, want %q", got.Category, ticket.CategoryDataIntegration)
	}
	if got.Urgency != ticket.UrgencyHigh {
		t.Errorf("urgency = %q, want High", got.Urgency)
	}
	if got.ImpactScore != 1_200_000 {
		t.Errorf("impact score = %v, want 1200000", got.ImpactScore)
	}
}

func FuzzClassifyTotal(f *testing.F) {
	f.Add("API sync failed, $1.2M at risk")
	f.Add("")
	f.Add("login\x00permission\nrole")
	f.Add(strings.Repeat("budget ", 2000))
	f.Add("$9999999999999999999999b")

	c := NewRules()
	f.Fuzz(func(t *testing.T, description string) {
		got := c.Classify(context.Background(), description)

		if !ticket.ValidCategory(got.Category) {
			t.Errorf("category %q not in taxonomy", got.Category)
		}
		if !ticket.ValidUrgency(got.Urgency) {
			t.Errorf("urgency %q not in taxonomy", got.Urgency)
		}
		if got.ImpactScore < 0 {
			t.Errorf("impact score = %v, want >= 0", got.ImpactScore)
		}
		if got.Confidence < 0 || got.Confidence > 1 {
			t.Errorf("confidence = %v, want in [0,1]", got.Confidence)
		}
		if got.Summary == "" {
			t.Error("summary is empty")
		}
	})
}
