package email

import (
	"fmt"
	"strings"

	"advisory-console/internal/models"
)

// Template selects the email layout produced for an advisory.
type Template string

const (
	Standard Template = "standard"
	Urgent   Template = "urgent"
	Brief    Template = "brief"
)

// Content is a synthesized notification.
type Content struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

const defaultRecommendation = "Please review the full advisory for details."

// ParseTemplate maps a selector to a Template. Unknown selectors fall back to Standard.
func ParseTemplate(s string) Template {
	switch Template(strings.ToLower(strings.TrimSpace(s))) {
	case Urgent:
		return Urgent
	case Brief:
		return Brief
	default:
		return Standard
	}
}

// GenerateContent builds the subject and body for a. It performs no I/O and
// returns identical output for identical input.
func GenerateContent(a models.Advisory, tmpl Template) Content {
	switch tmpl {
	case Urgent:
		return Content{
			Subject: fmt.Sprintf("🚨 URGENT: %s - %s - Immediate Action Required", a.UpdateType, a.ServiceOrOS),
			Body:    "URGENT ACTION REQUIRED\n\n" + standardBody(a),
		}
	case Brief:
		return Content{
			Subject: fmt.Sprintf("Advisory Update: %s", a.ServiceOrOS),
			Body:    fmt.Sprintf("Quick update for %s:\n\n%s", a.ServiceOrOS, a.Description),
		}
	default:
		return Content{
			Subject: fmt.Sprintf("Security Advisory: %s for %s", a.UpdateType, a.ServiceOrOS),
			Body:    standardBody(a),
		}
	}
}

// GenerateContentWithSubject is GenerateContent with the subject replaced by
// customSubject when it is not blank. The body is never affected.
func GenerateContentWithSubject(a models.Advisory, tmpl Template, customSubject string) Content {
	c := GenerateContent(a, tmpl)
	if strings.TrimSpace(customSubject) != "" {
		c.Subject = customSubject
	}
	return c
}

func standardBody(a models.Advisory) string {
	rec := a.Recommendations
	if rec == "" {
		rec = defaultRecommendation
	}

	var sb strings.Builder
	sb.WriteString("Dear Team,\n\n")
	fmt.Fprintf(&sb, "This is a security advisory regarding %s.\n\n", a.ServiceOrOS)
	fmt.Fprintf(&sb, "Summary:\n%s\n\n", a.Description)
	fmt.Fprintf(&sb, "Recommendations:\n%s\n\n", rec)
	sb.WriteString("This is an automated notification from the Advisory System.\n")
	return sb.String()
}

// Priority is the dispatch priority for a template.
func Priority(tmpl Template) string {
	if tmpl == Urgent {
		return "high"
	}
	return "normal"
}

// ValidateAddress performs the console's minimal address check: non-empty and containing "@".
func ValidateAddress(to string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("email address is required")
	}
	if !strings.Contains(to, "@") {
		return fmt.Errorf("invalid email address: %s", to)
	}
	return nil
}
