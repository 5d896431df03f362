package models

import (
	"strings"
	"time"
)

// AdvisoryStatus is the lifecycle state of an advisory. Draft moves to Sent, never back.
type AdvisoryStatus string

const (
	StatusDraft AdvisoryStatus = "Draft"
	StatusSent  AdvisoryStatus = "Sent"
)

// Update types offered by the authoring form, plus the ones the server produces on its own.
const (
	UpdateSecurityPatch         = "Security Patch"
	UpdateVulnerabilityAlert    = "Vulnerability Alert"
	UpdateInformational         = "Informational"
	UpdateAdvisory              = "Advisory"
	UpdateAutomatedFeedSnapshot = "Automated Feed Snapshot"
)

// UpdateTypes are the values an operator may pick in the authoring form.
var UpdateTypes = []string{UpdateSecurityPatch, UpdateVulnerabilityAlert, UpdateInformational}

// Advisory is a security notice authored for one client.
type Advisory struct {
	ID                   int            `json:"id"`
	ClientID             *int           `json:"client_id"`
	ClientName           string         `json:"client_name"`
	ServiceOrOS          string         `json:"service_or_os"`
	UpdateType           string         `json:"update_type"`
	Description          string         `json:"description"`
	VulnerabilityDetails string         `json:"vulnerability_details"`
	TechnicalAnalysis    string         `json:"technical_analysis"`
	ImpactDetails        string         `json:"impact_details"`
	MitigationStrategies string         `json:"mitigation_strategies"`
	DetectionResponse    string         `json:"detection_response"`
	Recommendations      string         `json:"recommendations"`
	Status               AdvisoryStatus `json:"status"`
	Timestamp            string         `json:"timestamp"`
}

// IsSent reports whether the advisory reached its terminal state.
func (a Advisory) IsSent() bool {
	return a.Status == StatusSent
}

var timestampLayouts = []string{
	time.RFC3339,
	time.RFC1123,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Time parses Timestamp using the layouts the back office is known to emit.
func (a Advisory) Time() (time.Time, bool) {
	ts := strings.TrimSpace(a.Timestamp)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AdvisoryDraft is the bulk-creation payload. The server fans it out to every client
// whose assignment matches TechStackID and Version ("*" matches all versions).
type AdvisoryDraft struct {
	TechStackID          int    `json:"techStackId"`
	Version              string `json:"version"`
	UpdateType           string `json:"updateType"`
	Description          string `json:"description"`
	VulnerabilityDetails string `json:"vulnerability_details,omitempty"`
	TechnicalAnalysis    string `json:"technical_analysis,omitempty"`
	ImpactDetails        string `json:"impact_details,omitempty"`
	MitigationStrategies string `json:"mitigation_strategies,omitempty"`
	DetectionResponse    string `json:"detection_response,omitempty"`
	Recommendations      string `json:"recommendations,omitempty"`
}

// AdvisoryUpdate is the body of PUT /api/advisories/{id}.
type AdvisoryUpdate struct {
	Description          string         `json:"description"`
	VulnerabilityDetails string         `json:"vulnerability_details"`
	TechnicalAnalysis    string         `json:"technical_analysis"`
	ImpactDetails        string         `json:"impact_details"`
	MitigationStrategies string         `json:"mitigation_strategies"`
	DetectionResponse    string         `json:"detection_response"`
	Recommendations      string         `json:"recommendations"`
	Status               AdvisoryStatus `json:"status"`
}

// UpdateFrom copies the editable fields of a with the given status.
func UpdateFrom(a Advisory, status AdvisoryStatus) AdvisoryUpdate {
	return AdvisoryUpdate{
		Description:          a.Description,
		VulnerabilityDetails: a.VulnerabilityDetails,
		TechnicalAnalysis:    a.TechnicalAnalysis,
		ImpactDetails:        a.ImpactDetails,
		MitigationStrategies: a.MitigationStrategies,
		DetectionResponse:    a.DetectionResponse,
		Recommendations:      a.Recommendations,
		Status:               status,
	}
}

// DispatchRequest is the body of POST /api/dispatch-advisory.
type DispatchRequest struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	AdvisoryID      int    `json:"advisoryId,omitempty"`
	ClientTechMapID int    `json:"clientTechMapId,omitempty"`
	Priority        string `json:"priority"`
}

// GenerateRequest is the body of POST /api/generate-advisory-from-url.
type GenerateRequest struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// GeneratedAdvisory is the structured draft returned by the generation endpoint.
type GeneratedAdvisory struct {
	Summary              string `json:"summary"`
	VulnerabilityDetails string `json:"vulnerability_details"`
	TechnicalAnalysis    string `json:"technical_analysis"`
	ImpactAssessment     string `json:"impact_assessment"`
	MitigationStrategies string `json:"mitigation_strategies"`
	DetectionAndResponse string `json:"detection_and_response"`
	Recommendations      string `json:"recommendations"`
	UpdateType           string `json:"update_type"`
}

// MessageResponse is the generic {message} / {error} body returned by mutating endpoints.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
