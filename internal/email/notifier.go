// Package email sends the registration notification that lands in the
// church office mailbox after every form submission. Delivery is
// best-effort: the registration row is the source of truth, so a lost
// notification is acceptable and never affects the submission response.
package email

import (
	"context"
	"fmt"
	"html"
	"net/mail"
	"sort"
	"strings"

	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/config"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Notifier composes and sends registration summary emails via Resend.
type Notifier struct {
	config       config.EmailConfig
	resendClient *resend.Client
	logger       zerolog.Logger
}

func NewNotifier(cfg config.EmailConfig, logger zerolog.Logger) (*Notifier, error) {
	if cfg.Enabled() {
		if err := validateEmailAddress(cfg.NotifyTo); err != nil {
			return nil, fmt.Errorf("invalid notify address in config: %w", err)
		}
	}

	n := &Notifier{
		config: cfg,
		logger: logger.With().Str("component", "email").Logger(),
	}
	if cfg.Enabled() {
		n.resendClient = resend.NewClient(cfg.APIKey)
	}
	return n, nil
}

// Enabled reports whether a Resend API key is configured. When false,
// NotifyRegistration is a logged no-op and registrations still succeed.
func (n *Notifier) Enabled() bool {
	return n.config.Enabled()
}

// NotifyRegistration sends one summary email for a submitted registration.
// A single attempt, no retries; callers run this off the request path and
// only log failures.
func (n *Notifier) NotifyRegistration(ctx context.Context, eventSlug string, responseData map[string]any) error {
	if !n.Enabled() {
		n.logger.Debug().
			Str("event_slug", eventSlug).
			Msg("resend api key not configured, skipping registration notification")
		return nil
	}

	subject := fmt.Sprintf("New registration: %s", titleCase(eventSlug))
	htmlBody := composeSummary(eventSlug, responseData)

	if err := n.sendViaResend(ctx, n.config.NotifyTo, subject, htmlBody); err != nil {
		return fmt.Errorf("send registration notification: %w", err)
	}

	n.logger.Info().
		Str("event_slug", eventSlug).
		Str("to", n.config.NotifyTo).
		Msg("registration notification sent")
	return nil
}

// composeSummary renders the submitted fields as an HTML table, one row per
// field, with snake_case keys turned into Title Case labels. Keys are sorted
// so the email layout is stable.
func composeSummary(eventSlug string, responseData map[string]any) string {
	keys := make([]string, 0, len(responseData))
	for key := range responseData {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("<h2>New registration for ")
	b.WriteString(html.EscapeString(titleCase(eventSlug)))
	b.WriteString("</h2>\n<table>\n")
	for _, key := range keys {
		b.WriteString("<tr><td><strong>")
		b.WriteString(html.EscapeString(titleCase(key)))
		b.WriteString("</strong></td><td>")
		b.WriteString(html.EscapeString(renderValue(responseData[key])))
		b.WriteString("</td></tr>\n")
	}
	b.WriteString("</table>\n")
	return b.String()
}

// titleCase converts a snake-case or kebab-case field key into a
// human-readable label, e.g. "parent_name" -> "Parent Name".
func titleCase(key string) string {
	replaced := strings.NewReplacer("_", " ", "-", " ").Replace(key)
	words := strings.Fields(replaced)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func renderValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, renderValue(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// validateEmailAddress checks format and rejects header injection attempts.
func validateEmailAddress(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	if strings.ContainsAny(addr.Address, "\r\n") {
		return fmt.Errorf("invalid email address: contains newline characters")
	}
	return nil
}
