// Package slack delivers formatted alerts to a Slack incoming webhook
// with bounded exponential-backoff retries.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/linnemanlabs/beacon/internal/alert"
)

const (
	httpTimeout         = 10 * time.Second
	defaultMaxAttempts  = 3
	defaultBaseDelay    = 100 * time.Millisecond
	defaultDashboardURL = "https://planning-dashboard.aiops-platform.io/hub"
)

// Options tune the dispatcher. Zero values take the defaults above.
type Options struct {
	DashboardURL string
	MaxAttempts  int
	BaseDelay    time.Duration
}

// Dispatcher posts alert messages to a Slack webhook. If webhookURL is
// empty, Dispatch short-circuits without any network call.
type Dispatcher struct {
	webhookURL   string
	dashboardURL string
	maxAttempts  int
	baseDelay    time.Duration
	client       *http.Client
	logger       log.Logger
}

// New creates a Dispatcher for the given webhook URL.
func New(webhookURL string, logger log.Logger, opts Options) *Dispatcher {
	if logger == nil {
		logger = log.Nop()
	}
	if opts.DashboardURL == "" {
		opts.DashboardURL = defaultDashboardURL
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = defaultBaseDelay
	}
	return &Dispatcher{
		webhookURL:   webhookURL,
		dashboardURL: opts.DashboardURL,
		maxAttempts:  opts.MaxAttempts,
		baseDelay:    opts.BaseDelay,
		client:       &http.Client{Timeout: httpTimeout},
		logger:       logger,
	}
}

// Configured reports whether a webhook URL is set.
func (d *Dispatcher) Configured() bool { return d.webhookURL != "" }

// Dispatch delivers one message, retrying transport failures and
// non-2xx responses with exponential backoff. Attempts are strictly
// sequential; the result records the attempt count and, on exhaustion,
// the last error. Delivery is not deduplicated: a retried request
// whose first attempt landed server-side can double-post.
func (d *Dispatcher) Dispatch(ctx context.Context, m *alert.Message) alert.DispatchResult {
	if d.webhookURL == "" {
		d.logger.Warn(ctx, "webhook url not configured, alert not sent", "title", m.Title)
		return alert.DispatchResult{Success: false, Attempts: 0, LastError: alert.ErrNotConfigured.Error()}
	}

	body, err := json.Marshal(buildMessage(m, d.dashboardURL))
	if err != nil {
		return alert.DispatchResult{Success: false, Attempts: 0, LastError: fmt.Sprintf("marshal message: %v", err)}
	}

	var lastErr error
	for attempt := 0; attempt < d.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := d.baseDelay << (attempt - 1)
			d.logger.Info(ctx, "retrying alert delivery", "title", m.Title, "delay", delay, "attempt", attempt+1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return alert.DispatchResult{Success: false, Attempts: attempt, LastError: ctx.Err().Error()}
			}
		}

		if lastErr = d.post(ctx, body); lastErr == nil {
			d.logger.Info(ctx, "alert delivered", "title", m.Title, "attempts", attempt+1)
			return alert.DispatchResult{Success: true, Attempts: attempt + 1}
		}
		d.logger.Warn(ctx, "alert delivery attempt failed", "title", m.Title, "attempt", attempt+1, "error", lastErr)
	}

	d.logger.Error(ctx, lastErr, "alert delivery failed", "title", m.Title, "attempts", d.maxAttempts)
	return alert.DispatchResult{Success: false, Attempts: d.maxAttempts, LastError: lastErr.Error()}
}

func (d *Dispatcher) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req) //nolint:gosec // G704: webhookURL is from trusted config, not user input
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

var valuePrinter = message.NewPrinter(language.English)

func buildMessage(m *alert.Message, dashboardURL string) map[string]any {
	return map[string]any{
		"blocks": []map[string]any{
			headerBlock(m),
			impactFieldsBlock(m),
			areaFieldsBlock(m),
			detailsBlock(m),
			actionsBlock(m, dashboardURL),
			contextBlock(),
		},
	}
}

func headerBlock(m *alert.Message) map[string]any {
	return map[string]any{
		"type": "header",
		"text": map[string]any{
			"type":  "plain_text",
			"text":  fmt.Sprintf("%s EPM Intelligence: %s", levelEmoji(m.ImpactLevel), m.Title),
			"emoji": true,
		},
	}
}

func impactFieldsBlock(m *alert.Message) map[string]any {
	return map[string]any{
		"type": "section",
		"fields": []map[string]any{
			{"type": "mrkdwn", "text": fmt.Sprintf("*Impact Level:*\n%s", m.ImpactLevel)},
			{"type": "mrkdwn", "text": valuePrinter.Sprintf("*Impact Value:*\n$%.2f", m.ImpactValue)},
		},
	}
}

func areaFieldsBlock(m *alert.Message) map[string]any {
	return map[string]any{
		"type": "section",
		"fields": []map[string]any{
			{"type": "mrkdwn", "text": fmt.Sprintf("*System Area:*\n%s", m.SystemArea)},
			{"type": "mrkdwn", "text": fmt.Sprintf("*Detection Time:*\n%s", m.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC"))},
		},
	}
}

func detailsBlock(m *alert.Message) map[string]any {
	details := m.Details
	if details == "" {
		details = "_No details provided._"
	}
	return map[string]any{
		"type": "section",
		"text": map[string]any{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Incident Details:*\n%s", details),
		},
	}
}

func actionsBlock(m *alert.Message, dashboardURL string) map[string]any {
	return map[string]any{
		"type": "actions",
		"elements": []map[string]any{
			{
				"type":  "button",
				"text":  map[string]any{"type": "plain_text", "text": "Open Planning Model", "emoji": true},
				"style": "primary",
				"url":   dashboardURL,
			},
			{
				"type":  "button",
				"text":  map[string]any{"type": "plain_text", "text": "Rerun Integration", "emoji": true},
				"style": "danger",
				"value": "rerun_" + areaToken(m.SystemArea),
			},
		},
	}
}

func contextBlock() map[string]any {
	return map[string]any{
		"type": "context",
		"elements": []map[string]any{
			{"type": "mrkdwn", "text": "beacon | Strategic Decision Support"},
		},
	}
}

func levelEmoji(level string) string {
	switch strings.ToLower(level) {
	case "critical":
		return "\U0001f534" // red circle
	case "warning":
		return "\U0001f7e1" // yellow circle
	default:
		return "\U0001f7e2" // green circle
	}
}

// areaToken normalizes a system area into the action value suffix:
// lowercased, runs of non-alphanumerics collapsed to underscores.
func areaToken(area string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(area) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	token := strings.TrimSuffix(b.String(), "_")
	if token == "" {
		return "general"
	}
	return token
}
