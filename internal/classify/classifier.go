// Package classify maps free-text ticket descriptions into the fixed
// category/urgency/impact taxonomy. The core is a prioritized keyword
// rule table; an optional LLM-backed classifier layers on top of it and
// falls back to the rules on any provider failure.
package classify

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/linnemanlabs/beacon/internal/ticket"
)

// ruleConfidence is the fixed confidence reported by the rule engine.
// Deterministic on purpose: a randomized confidence makes results
// unreproducible across runs.
const ruleConfidence = 0.98

// Classifier turns a ticket description into a Classification. It is
// total: every input classifies, unrecognized text lands in General/Low.
type Classifier interface {
	Classify(ctx context.Context, description string) ticket.Classification
}

// Rules is the deterministic keyword classifier.
type Rules struct{}

// NewRules returns the rule-based classifier.
func NewRules() *Rules { return &Rules{} }

var refPrinter = message.NewPrinter(language.English)

// Classify applies the rule table in priority order and returns the
// first matching category. Pure and deterministic for a given input.
func (*Rules) Classify(_ context.Context, description string) ticket.Classification {
	lower := strings.ToLower(description)

	matched := fallback
	for _, r := range rules {
		if containsAny(lower, r.keywords) {
			matched = r
			break
		}
	}

	impact := ExtractAmount(description)

	ref := ""
	if impact > 0 {
		ref = refPrinter.Sprintf(" (Ref: %.2f)", impact)
	}

	return ticket.Classification{
		Category:    matched.category,
		Urgency:     matched.urgency(containsAny(lower, failureKeywords)),
		ImpactScore: impact,
		Summary:     fmt.Sprintf(matched.summary, ref),
		Confidence:  ruleConfidence,
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
