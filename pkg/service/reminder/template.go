package reminder

import (
	"fmt"
	"strings"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

// previewLimit caps the preview text attached to a schedule entry
const previewLimit = 160

// TemplateContext carries the values substituted into reminder templates
type TemplateContext struct {
	GrantTitle     string
	MilestoneLabel string
	DueDateLabel   string
	OffsetLabel    string
	UnsubscribeURL string
}

// Content is rendered reminder text. Subject is empty for SMS.
type Content struct {
	Subject string
	Body    string
}

// RenderTemplate produces channel-specific reminder content.
//
// Every email body ends with an unsubscribe footer. Compliance requirement:
// each outbound reminder must carry an opt-out mechanism, so the footer is
// never omitted.
func RenderTemplate(channel types.Channel, tc TemplateContext) Content {
	if channel == types.ChannelSMS {
		return Content{Body: renderSMS(tc)}
	}
	return Content{
		Subject: fmt.Sprintf("%s due %s · %s", tc.MilestoneLabel, tc.OffsetLabel, tc.GrantTitle),
		Body:    renderEmail(tc),
	}
}

func renderEmail(tc TemplateContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi there,\n\n")
	fmt.Fprintf(&b, "%s for %q is due %s.\n", tc.MilestoneLabel, tc.GrantTitle, tc.OffsetLabel)
	fmt.Fprintf(&b, "Due: %s\n\n", tc.DueDateLabel)
	b.WriteString("Before you submit:\n")
	b.WriteString("  - Confirm every required attachment is uploaded\n")
	b.WriteString("  - Give the budget and narrative a final review\n")
	b.WriteString("  - Verify your submission portal login still works\n\n")
	b.WriteString("--\n")
	b.WriteString("You are receiving this because grant reminders are enabled for your organization.\n")
	fmt.Fprintf(&b, "Unsubscribe: %s\n", tc.UnsubscribeURL)
	return b.String()
}

func renderSMS(tc TemplateContext) string {
	optOut := "Reply STOP to opt out."
	if tc.UnsubscribeURL != "" {
		optOut = "Opt out: " + tc.UnsubscribeURL
	}
	return fmt.Sprintf("%s for %s due %s (%s). %s",
		tc.MilestoneLabel, tc.GrantTitle, tc.OffsetLabel, tc.DueDateLabel, optOut)
}

// Preview truncates a rendered body to at most previewLimit characters. No
// word-boundary trimming; short bodies pass through unchanged.
func Preview(body string) string {
	runes := []rune(body)
	if len(runes) <= previewLimit {
		return body
	}
	return string(runes[:previewLimit])
}
