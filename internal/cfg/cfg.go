// Package cfg holds beacon's application-level configuration.
package cfg

import (
	"errors"
	"flag"
	"fmt"
)

// Config adds app-specific configuration fields to the common
// cfg.Registerable and cfg.Validatable interfaces.
type Config struct {
	DrainSeconds          int
	ShutdownBudgetSeconds int
	APIPort               int
	SlackWebhookURL       string
	WebhookSecret         string
	DashboardURL          string
	DispatchMaxAttempts   int
	DispatchBaseDelayMS   int
	ClaudeAPIKey          string
	ClaudeModel           string
}

// RegisterFlags binds Config fields to the given FlagSet with defaults inline.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.DrainSeconds, "drain-seconds", 60, "seconds to wait for in-flight requests to drain before shutdown (1..300)")
	fs.IntVar(&c.ShutdownBudgetSeconds, "shutdown-budget-seconds", 90, "total seconds for component shutdown after drain (1..300)")
	fs.IntVar(&c.APIPort, "http-port", 8080, "API listen TCP port (1..65535)")
	fs.StringVar(&c.SlackWebhookURL, "slack-webhook-url", "", "Slack incoming webhook URL for alert delivery (empty = alerts disabled)")
	fs.StringVar(&c.WebhookSecret, "webhook-secret", "", "shared secret for the incident webhook; empty disables authentication (open by default)")
	fs.StringVar(&c.DashboardURL, "dashboard-url", "", "URL for the alert's open-dashboard action (empty = built-in default)")
	fs.IntVar(&c.DispatchMaxAttempts, "dispatch-max-attempts", 3, "delivery attempts per alert before giving up (1..10)")
	fs.IntVar(&c.DispatchBaseDelayMS, "dispatch-base-delay-ms", 100, "base retry backoff in milliseconds, doubled per attempt (10..60000)")
	fs.StringVar(&c.ClaudeAPIKey, "claude-api-key", "", "API key for LLM-assisted classification (empty = rule engine only)")
	fs.StringVar(&c.ClaudeModel, "claude-model", "claude-sonnet-4-20250514", "Claude model for LLM-assisted classification")
}

// Validate checks all configuration fields for correctness.
// It returns an error if any field is invalid, or nil if all fields are valid.
func (c *Config) Validate() error {
	var errs []error

	// Drain and shutdown budgets
	if c.DrainSeconds <= 0 || c.DrainSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid DRAIN_SECONDS %d (must be 1..300)", c.DrainSeconds))
	}
	if c.ShutdownBudgetSeconds <= 0 || c.ShutdownBudgetSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid SHUTDOWN_BUDGET_SECONDS %d (must be 1..300)", c.ShutdownBudgetSeconds))
	}

	// Shutdown budget must be greater than drain time
	if c.ShutdownBudgetSeconds <= c.DrainSeconds {
		errs = append(errs, fmt.Errorf("SHUTDOWN_BUDGET_SECONDS %d must be greater than DRAIN_SECONDS %d", c.ShutdownBudgetSeconds, c.DrainSeconds))
	}

	// API port must be valid TCP port number
	if c.APIPort <= 0 || c.APIPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP_PORT %d (must be 1..65535)", c.APIPort))
	}

	// Retry policy bounds keep worst-case dispatch latency sane
	if c.DispatchMaxAttempts < 1 || c.DispatchMaxAttempts > 10 {
		errs = append(errs, fmt.Errorf("invalid DISPATCH_MAX_ATTEMPTS %d (must be 1..10)", c.DispatchMaxAttempts))
	}
	if c.DispatchBaseDelayMS < 10 || c.DispatchBaseDelayMS > 60000 {
		errs = append(errs, fmt.Errorf("invalid DISPATCH_BASE_DELAY_MS %d (must be 10..60000)", c.DispatchBaseDelayMS))
	}

	// Model name is required whenever the LLM classifier is enabled
	if c.ClaudeAPIKey != "" && c.ClaudeModel == "" {
		errs = append(errs, errors.New("CLAUDE_MODEL is required when CLAUDE_API_KEY is set"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
