package render

import (
	"advisory-console/internal/models"
	"advisory-console/internal/sanitize"
)

// CardTitle is the heading of an advisory card in the per-client listing.
func CardTitle(a models.Advisory) string {
	switch a.UpdateType {
	case models.UpdateAdvisory:
		return "Feed Advisory"
	case "":
		return "Consolidated Draft"
	default:
		return a.UpdateType
	}
}

// CategoryLabel maps the update type to the coarse category shown in the formatted view.
func CategoryLabel(updateType string) string {
	if updateType == models.UpdateVulnerabilityAlert {
		return "Malware"
	}
	return "General"
}

// Card is the listing projection of an advisory.
type Card struct {
	ID          int                   `json:"id"`
	Title       string                `json:"title"`
	ClientName  string                `json:"client_name"`
	ServiceOrOS string                `json:"service_or_os"`
	Description string                `json:"description"`
	Status      models.AdvisoryStatus `json:"status"`
	Timestamp   string                `json:"timestamp"`
	Editable    bool                  `json:"editable"`
}

// Cards projects advisories for the listing. Descriptions are reduced to plain text.
func Cards(advisories []models.Advisory) []Card {
	cards := make([]Card, 0, len(advisories))
	for _, a := range advisories {
		cards = append(cards, Card{
			ID:          a.ID,
			Title:       CardTitle(a),
			ClientName:  a.ClientName,
			ServiceOrOS: a.ServiceOrOS,
			Description: sanitize.StripHTML(a.Description),
			Status:      a.Status,
			Timestamp:   a.Timestamp,
			Editable:    !a.IsSent(),
		})
	}
	return cards
}
