// Package ticket defines the support-ticket domain model: tickets as
// ingested from the support queue and the classification taxonomy they
// are mapped into.
package ticket

// Ticket is a single support request. Immutable once ingested.
type Ticket struct {
	ID          string `json:"ticket_id"`
	Customer    string `json:"customer"`
	Description string `json:"issue_description"`
}

// Category is the fixed classification taxonomy.
type Category string

const (
	CategoryDataIntegration   Category = "Data Integration"
	CategoryFormulaError      Category = "Formula Error"
	CategoryAccessControl     Category = "Access Control"
	CategoryStrategicPlanning Category = "Strategic Planning"
	CategoryGeneral           Category = "General"
)

// Urgency ranks how quickly a ticket needs attention.
type Urgency string

const (
	UrgencyHigh   Urgency = "High"
	UrgencyMedium Urgency = "Medium"
	UrgencyLow    Urgency = "Low"
)

// Classification is the outcome of classifying one ticket. Produced
// once per ticket and never mutated afterwards.
type Classification struct {
	Category    Category `json:"category"`
	Urgency     Urgency  `json:"urgency"`
	ImpactScore float64  `json:"impact_score"`
	Summary     string   `json:"summary"`
	Confidence  float64  `json:"confidence"`
}

// ValidCategory reports whether c is one of the enumerated categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryDataIntegration, CategoryFormulaError, CategoryAccessControl,
		CategoryStrategicPlanning, CategoryGeneral:
		return true
	}
	return false
}

// ValidUrgency reports whether u is one of the enumerated urgencies.
func ValidUrgency(u Urgency) bool {
	switch u {
	case UrgencyHigh, UrgencyMedium, UrgencyLow:
		return true
	}
	return false
}
