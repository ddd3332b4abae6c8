package notify

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/ignite-agency/website/api/internal/entity"
)

const notAvailable = "N/A"

// LeadEmail composes the admin notification for an accepted lead.
func LeadEmail(to string, lead entity.Lead) EmailMessage {
	var subject, text string
	submitted := lead.Timestamp.UTC().Format(time.RFC1123)

	switch lead.Kind {
	case entity.KindFreeTrial:
		subject = fmt.Sprintf("🚀 New Free Trial Request - %s (%s)", lead.Name, lead.Service)
		text = strings.Join([]string{
			"New Free Trial Request",
			"",
			"Name: " + lead.Name,
			"Email: " + lead.Email,
			"Service: " + lead.Service,
			"Language: " + string(lead.Language),
			"",
			"Project Description:",
			lead.Message,
			"",
			"Submitted at: " + submitted,
			"",
			"This is a free trial request - please follow up within 24 hours!",
		}, "\n")
	default:
		subject = fmt.Sprintf("New Contact Form Submission - %s", lead.Name)
		text = strings.Join([]string{
			"New Contact Form Submission",
			"",
			"Name: " + lead.Name,
			"Email: " + lead.Email,
			"Phone: " + lead.Phone(),
			"Company: " + orNotAvailable(lead.Company()),
			"Service: " + lead.Service,
			"Budget: " + orNotAvailable(lead.Budget()),
			"Language: " + string(lead.Language),
			"",
			"Message:",
			lead.Message,
			"",
			"Submitted at: " + submitted,
		}, "\n")
	}

	return EmailMessage{
		To:      to,
		Subject: subject,
		Text:    text,
		HTML:    strings.ReplaceAll(html.EscapeString(text), "\n", "<br>"),
	}
}

func orNotAvailable(value string) string {
	if strings.TrimSpace(value) == "" {
		return notAvailable
	}
	return value
}
