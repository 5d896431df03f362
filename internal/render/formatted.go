package render

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"advisory-console/internal/models"
)

// TechnicalAnalysisLimit caps the Technical Analysis bullets in the formatted view.
const TechnicalAnalysisLimit = 5

// NoSummary replaces a blank description in the formatted view.
const NoSummary = "No summary provided."

// Section is a titled bullet list.
type Section struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// FormattedAdvisory is the reader-facing rendering of an advisory.
type FormattedAdvisory struct {
	Header   string    `json:"header"`
	Date     string    `json:"date"`
	Category string    `json:"category"`
	Product  string    `json:"product"`
	Summary  string    `json:"summary"`
	Sections []Section `json:"sections"`
}

// Format builds the formatted view of a.
func Format(a models.Advisory) FormattedAdvisory {
	date := a.Timestamp
	if t, ok := a.Time(); ok {
		date = t.Format("Jan 2, 2006")
	}

	summary := strings.TrimSpace(a.Description)
	if summary == "" {
		summary = NoSummary
	}

	return FormattedAdvisory{
		Header:   fmt.Sprintf("Update: %s for %s", a.UpdateType, a.ServiceOrOS),
		Date:     date,
		Category: CategoryLabel(a.UpdateType),
		Product:  a.ServiceOrOS,
		Summary:  summary,
		Sections: []Section{
			{Title: "Vulnerability Details", Items: Bullets(a.VulnerabilityDetails)},
			{Title: "Impact", Items: Bullets(a.ImpactDetails)},
			{Title: "Mitigation", Items: Bullets(a.MitigationStrategies)},
			{Title: "Technical Analysis", Items: BulletsN(a.TechnicalAnalysis, TechnicalAnalysisLimit)},
			{Title: "Detection & Response", Items: Bullets(a.DetectionResponse)},
			{Title: "Recommendations", Items: Bullets(a.Recommendations)},
		},
	}
}

const textTemplate = `{{ .Header }}
{{ repeat (len .Header) "=" }}
Date: {{ .Date }}
Category: {{ .Category }}
Product: {{ .Product }}

Summary
{{ .Summary }}
{{- range .Sections }}

{{ .Title }}
{{- range .Items }}
  - {{ . }}
{{- end }}
{{- end }}
`

var plainText = template.Must(template.New("advisory").Funcs(sprig.TxtFuncMap()).Parse(textTemplate))

// Text renders the formatted view as plain text.
func (f FormattedAdvisory) Text() (string, error) {
	var sb strings.Builder
	if err := plainText.Execute(&sb, f); err != nil {
		return "", fmt.Errorf("failed to render advisory: %w", err)
	}
	return sb.String(), nil
}
