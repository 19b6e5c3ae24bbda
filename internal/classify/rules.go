package classify

import "github.com/linnemanlabs/beacon/internal/ticket"

// urgencyRule decides the urgency for a matched category given whether
// the text contained a failure keyword.
type urgencyRule func(failure bool) ticket.Urgency

func escalating(failure bool) ticket.Urgency {
	if failure {
		return ticket.UrgencyHigh
	}
	return ticket.UrgencyMedium
}

func fixed(u ticket.Urgency) urgencyRule {
	return func(bool) ticket.Urgency { return u }
}

// rule binds a keyword set to a category, its urgency policy, and the
// summary template used when the rule wins.
type rule struct {
	keywords []string
	category ticket.Category
	urgency  urgencyRule
	summary  string
}

// rules is evaluated in order; the first rule whose keyword set matches
// wins. Reordering entries changes classification priority, so the
// order here is part of the contract.
var rules = []rule{
	{
		keywords: []string{"sync", "integration", "api", "connector", "platform", "workday", "data"},
		category: ticket.CategoryDataIntegration,
		urgency:  escalating,
		summary:  "Data sync failure detected%s. Forecast accuracy compromised.",
	},
	{
		keywords: []string{"formula", "calculation", "logic", "math", "balance", "wrong", "#ref"},
		category: ticket.CategoryFormulaError,
		urgency:  escalating,
		summary:  "Logic error in financial model%s. Verified incorrect projections.",
	},
	{
		keywords: []string{"access", "permission", "login", "security", "role"},
		category: ticket.CategoryAccessControl,
		urgency:  fixed(ticket.UrgencyMedium),
		summary:  "Security protocol blocking access%s. Planning approvals delayed.",
	},
	{
		keywords: []string{"forecast", "budget", "scenario", "strategic", "cycle"},
		category: ticket.CategoryStrategicPlanning,
		urgency:  escalating,
		summary:  "Strategic timeline disruption affecting budget cycle%s.",
	},
}

// fallback applies when no rule matches.
var fallback = rule{
	category: ticket.CategoryGeneral,
	urgency:  fixed(ticket.UrgencyLow),
	summary:  "Unrecognized issue queued for manual review%s.",
}

// failureKeywords escalate an escalating-urgency category to High.
var failureKeywords = []string{"failed", "stopped", "stuck", "error", "incorrect", "critical"}
