package api

import (
	"advisory-console/internal/console"
	"advisory-console/internal/models"
	"advisory-console/internal/render"
)

// Request bodies of the console endpoints.

type clientRequest struct {
	ClientID int `json:"client_id"`
}

type createClientRequest struct {
	Name string `json:"name"`
}

type searchRequest struct {
	Term string `json:"term"`
}

type cascadeRequest struct {
	Target string `json:"target"`
	Level  string `json:"level" binding:"required"`
	ID     int    `json:"id"`
}

type tabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

type advisoryRequest struct {
	AdvisoryID int `json:"advisory_id" binding:"required"`
}

type fieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type emailOptionsRequest struct {
	Template      string `json:"template"`
	CustomSubject string `json:"custom_subject"`
}

type contactRequest struct {
	Email string `json:"email"`
	Level string `json:"level"`
}

type feedScopeRequest struct {
	TechStackID int `json:"tech_stack_id"`
}

type feedRequest struct {
	URL string `json:"url"`
}

type kbQueryRequest struct {
	Query string `json:"query"`
}

type pageRequest struct {
	Page int `json:"page"`
}

type kbSelectionRequest struct {
	ID models.FlexString `json:"id"`
}

type customerFilterRequest struct {
	Search string `json:"search"`
	OS     string `json:"os"`
}

type dispatchResponse struct {
	StatusUpdated     bool             `json:"status_updated"`
	NotificationError string           `json:"notification_error,omitempty"`
	Snapshot          console.Snapshot `json:"snapshot"`
}

type formattedResponse struct {
	Formatted render.FormattedAdvisory `json:"formatted"`
	Text      string                   `json:"text"`
}
