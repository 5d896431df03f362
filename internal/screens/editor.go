package screens

import (
	"advisory-console/internal/models"
	"advisory-console/pkg/email"
)

// EditorMode is the state of the review/edit modal.
type EditorMode string

const (
	ModeViewing EditorMode = "viewing"
	ModeEditing EditorMode = "editing"
	// ModeSent is terminal.
	ModeSent EditorMode = "sent"
)

// RecipientsError is the single entry shown when recipients cannot be fetched.
const RecipientsError = "Error fetching recipients."

// EmailOptions is the dispatch template picker with its live preview.
type EmailOptions struct {
	Template      email.Template `json:"template"`
	CustomSubject string         `json:"custom_subject"`
	Preview       email.Content  `json:"preview"`
	Recipients    []string       `json:"recipients"`
}

// Editor is the review/edit/dispatch modal for one advisory. Edits go to a
// local copy so cancelling never touches the listed advisory.
type Editor struct {
	Mode     EditorMode      `json:"mode"`
	Original models.Advisory `json:"original"`
	Draft    models.Advisory `json:"draft"`
	Email    EmailOptions    `json:"email"`
}

// OpenEditor starts viewing a. Sent advisories open read-only.
func OpenEditor(a models.Advisory) Editor {
	mode := ModeViewing
	if a.IsSent() {
		mode = ModeSent
	}
	e := Editor{Mode: mode, Original: a, Draft: a}
	return e.SetEmailOptions(email.Standard, "")
}

// Edit enters editing with a fresh copy of the advisory.
func (e Editor) Edit() (Editor, error) {
	if e.Mode == ModeSent {
		return e, ErrAdvisorySent
	}
	e.Mode = ModeEditing
	e.Draft = e.Original
	return e, nil
}

// SetField changes one elaboration field of the local copy.
func (e Editor) SetField(field, value string) (Editor, error) {
	switch e.Mode {
	case ModeSent:
		return e, ErrAdvisorySent
	case ModeViewing:
		return e, Invalid("Advisory is not being edited.")
	}

	switch field {
	case "description":
		e.Draft.Description = value
	case "vulnerability_details":
		e.Draft.VulnerabilityDetails = value
	case "technical_analysis":
		e.Draft.TechnicalAnalysis = value
	case "impact_details":
		e.Draft.ImpactDetails = value
	case "mitigation_strategies":
		e.Draft.MitigationStrategies = value
	case "detection_response":
		e.Draft.DetectionResponse = value
	case "recommendations":
		e.Draft.Recommendations = value
	default:
		return e, Invalid("Unknown advisory field: %s", field)
	}
	return e, nil
}

// Cancel discards local edits.
func (e Editor) Cancel() Editor {
	if e.Mode == ModeEditing {
		e.Mode = ModeViewing
		e.Draft = e.Original
	}
	return e
}

// Current is what the modal shows and what save or dispatch would submit.
func (e Editor) Current() models.Advisory {
	if e.Mode == ModeEditing {
		return e.Draft
	}
	return e.Original
}

// SaveRequest is the PUT body for "Save as Draft".
func (e Editor) SaveRequest() (models.AdvisoryUpdate, error) {
	if e.Mode != ModeEditing {
		if e.Mode == ModeSent {
			return models.AdvisoryUpdate{}, ErrAdvisorySent
		}
		return models.AdvisoryUpdate{}, Invalid("Advisory is not being edited.")
	}
	return models.UpdateFrom(e.Draft, e.Draft.Status), nil
}

// Saved records a successful draft save. The editor stays in editing.
func (e Editor) Saved() Editor {
	e.Original = e.Draft
	return e
}

// DispatchRequest is the PUT body that moves the advisory to Sent.
func (e Editor) DispatchRequest() (models.AdvisoryUpdate, error) {
	if e.Mode == ModeSent {
		return models.AdvisoryUpdate{}, ErrAdvisorySent
	}
	return models.UpdateFrom(e.Current(), models.StatusSent), nil
}

// Sent records a successful status change. There is no way back.
func (e Editor) Sent() Editor {
	a := e.Current()
	a.Status = models.StatusSent
	e.Original = a
	e.Draft = a
	e.Mode = ModeSent
	return e.SetEmailOptions(e.Email.Template, e.Email.CustomSubject)
}

// SetEmailOptions picks a template and optional subject and refreshes the preview.
func (e Editor) SetEmailOptions(tmpl email.Template, customSubject string) Editor {
	e.Email.Template = tmpl
	e.Email.CustomSubject = customSubject
	e.Email.Preview = email.GenerateContentWithSubject(e.Current(), tmpl, customSubject)
	return e
}

func (e Editor) RecipientsLoaded(recipients []string) Editor {
	e.Email.Recipients = recipients
	return e
}

func (e Editor) RecipientsFailed() Editor {
	e.Email.Recipients = []string{RecipientsError}
	return e
}

// EmailRequest builds the notification for the chosen template.
func (e Editor) EmailRequest() models.DispatchRequest {
	a := e.Current()
	c := email.GenerateContentWithSubject(a, e.Email.Template, e.Email.CustomSubject)
	return models.DispatchRequest{
		Title:      c.Subject,
		Content:    c.Body,
		AdvisoryID: a.ID,
		Priority:   email.Priority(e.Email.Template),
	}
}
