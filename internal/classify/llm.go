package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/linnemanlabs/go-core/log"

	"github.com/linnemanlabs/beacon/internal/ticket"
)

// llmConfidence marks results that came from the model rather than the
// rule table.
const llmConfidence = 0.99

const systemPrompt = "You are a precise EPM data analyst. Output only valid JSON."

const userPromptTemplate = `You are a high-precision analyst for an Enterprise Performance Management (EPM) platform.
CRITICAL: Most issues involve financial numbers and budget cycles. Be exact with any numbers mentioned.

Customer issue: %q

Return JSON with exactly these keys:
- "category": one of "Data Integration", "Formula Error", "Access Control", "Strategic Planning", "General"
- "urgency": one of "High", "Medium", "Low"
- "impact_score": numerical estimate of the dollar value at risk, 0 if none found
- "summary": one-sentence impact summary quoting any numbers present

JSON:`

// Provider is the completion surface the LLM classifier needs.
type Provider interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// LLM classifies through a language model and falls back to the rule
// engine whenever the provider fails or returns something outside the
// taxonomy. Classification stays total either way.
type LLM struct {
	provider Provider
	rules    *Rules
	logger   log.Logger
}

// NewLLM creates an LLM-backed classifier with rule fallback.
func NewLLM(provider Provider, rules *Rules, logger log.Logger) *LLM {
	if logger == nil {
		logger = log.Nop()
	}
	return &LLM{provider: provider, rules: rules, logger: logger}
}

type llmReply struct {
	Category    string  `json:"category"`
	Urgency     string  `json:"urgency"`
	ImpactScore float64 `json:"impact_score"`
	Summary     string  `json:"summary"`
}

// Classify asks the model for a classification, falling back to the
// rule table on any error.
func (l *LLM) Classify(ctx context.Context, description string) ticket.Classification {
	c, err := l.classifyWithModel(ctx, description)
	if err != nil {
		l.logger.Warn(ctx, "llm classification failed, using rule engine", "error", err)
		return l.rules.Classify(ctx, description)
	}
	return c
}

func (l *LLM) classifyWithModel(ctx context.Context, description string) (ticket.Classification, error) {
	text, err := l.provider.Complete(ctx, systemPrompt, fmt.Sprintf(userPromptTemplate, description))
	if err != nil {
		return ticket.Classification{}, err
	}

	var reply llmReply
	if err := json.Unmarshal([]byte(extractJSON(text)), &reply); err != nil {
		return ticket.Classification{}, fmt.Errorf("parse model reply: %w", err)
	}

	category := ticket.Category(reply.Category)
	urgency := ticket.Urgency(reply.Urgency)
	if !ticket.ValidCategory(category) {
		return ticket.Classification{}, fmt.Errorf("model returned unknown category %q", reply.Category)
	}
	if !ticket.ValidUrgency(urgency) {
		return ticket.Classification{}, fmt.Errorf("model returned unknown urgency %q", reply.Urgency)
	}
	if reply.ImpactScore < 0 {
		return ticket.Classification{}, fmt.Errorf("model returned negative impact score %v", reply.ImpactScore)
	}
	if reply.Summary == "" {
		reply.Summary = "Significant disruption to the planning workflow."
	}

	return ticket.Classification{
		Category:    category,
		Urgency:     urgency,
		ImpactScore: reply.ImpactScore,
		Summary:     reply.Summary,
		Confidence:  llmConfidence,
	}, nil
}

// extractJSON trims any prose or code fences the model wraps around the
// JSON object.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}
