package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"advisory-console/internal/config"
	"advisory-console/internal/console"
	"advisory-console/internal/logging"
)

func NewRouter(svc *console.Service, logger *logging.Logger, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(RequestLoggingMiddleware(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := NewHandler(svc, logger)
	api := r.Group(cfg.API.BasePath)
	{
		// Sessions
		api.POST("/sessions", h.OpenSession)
		api.GET("/sessions/:id", h.GetSnapshot)
		api.DELETE("/sessions/:id", h.CloseSession)
		api.GET("/sessions/:id/ws", h.Stream)

		s := api.Group("/sessions/:id")

		// Client directory and taxonomy
		s.POST("/clients/load", h.LoadClients)
		s.POST("/clients", h.CreateClient)
		s.POST("/clients/search", h.SearchClients)
		s.POST("/clients/select", h.SelectClient)
		s.POST("/taxonomy/load", h.LoadCategories)
		s.POST("/taxonomy/select", h.SelectCascade)
		s.POST("/taxonomy", h.AddTaxonomy)

		// Advisories
		s.PUT("/advisory/form", h.SetForm)
		s.POST("/advisory/tab", h.SelectTab)
		s.POST("/advisory/submit", h.SubmitAdvisory)
		s.DELETE("/advisories/:advisoryId", h.DeleteAdvisory)
		s.GET("/advisories/:advisoryId/formatted", h.FormattedView)

		// Editor
		s.POST("/editor/open", h.OpenEditor)
		s.POST("/editor/edit", h.Edit)
		s.POST("/editor/field", h.SetField)
		s.POST("/editor/cancel", h.Cancel)
		s.POST("/editor/close", h.CloseEditor)
		s.POST("/editor/save", h.SaveDraft)
		s.POST("/editor/dispatch", h.Dispatch)
		s.POST("/editor/email-options", h.SetEmailOptions)
		s.POST("/editor/recipients", h.LoadRecipients)
		s.POST("/editor/send-email", h.SendEmail)

		// Client configuration
		s.POST("/config/open", h.OpenClientConfig)
		s.POST("/config/close", h.CloseClientConfig)
		s.POST("/config/assign", h.AssignTech)
		s.DELETE("/config/assignments/:assignmentId", h.DeleteAssignment)
		s.POST("/config/assignments/:assignmentId/contacts", h.AddAssignmentContact)

		// Escalation
		s.POST("/escalation/contacts", h.AddEscalationContact)
		s.DELETE("/escalation/contacts/:contactId", h.DeleteEscalationContact)

		// Feeds and AI generation
		s.POST("/feeds/scope", h.SelectFeedScope)
		s.POST("/feeds", h.AddFeed)
		s.POST("/feeds/delete-mode", h.ToggleFeedDeleteMode)
		s.POST("/feeds/selection", h.ToggleFeedSelection)
		s.POST("/feeds/delete", h.DeleteSelectedFeeds)
		s.POST("/feed-items/:itemId/generate", h.GenerateFromFeedItem)

		// Knowledge base
		s.POST("/kb/search", h.SearchKB)
		s.POST("/kb/back", h.KBGoBack)
		s.POST("/kb/page", h.SetKBPage)
		s.POST("/kb/delete-mode", h.ToggleKBDeleteMode)
		s.POST("/kb/selection", h.ToggleKBSelection)
		s.POST("/kb/delete", h.DeleteKBEntries)
		s.POST("/kb/entries", h.AddKBEntry)
		s.POST("/kb/import", h.ImportKB)
		s.POST("/kb/solutions/:entryId", h.UploadSolution)

		// Runbook
		s.POST("/runbook/customers/load", h.LoadCustomers)
		s.POST("/runbook/filter", h.FilterCustomers)
		s.POST("/runbook/select", h.SelectRunbookClient)
		s.POST("/runbook/tab", h.SelectRunbookTab)
		s.POST("/runbook/assets", h.AddAsset)
		s.POST("/runbook/sla", h.AddSLAPolicy)
		s.POST("/runbook/passwords", h.AddPassword)
		s.POST("/runbook/escalation", h.AddEscalationEntry)
		s.POST("/runbook/document", h.UploadClientPDF)
		s.DELETE("/runbook/document", h.DeleteClientPDF)
	}
	return r
}
