package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"advisory-console/internal/backoffice"
	"advisory-console/internal/console"
	"advisory-console/internal/logging"
	"advisory-console/internal/models"
	"advisory-console/internal/screens"
)

// AdminHeader marks a session as opened by an administrator. It only toggles
// admin affordances in the front end.
const AdminHeader = "X-Console-Admin"

type Handler struct {
	svc    *console.Service
	logger *logging.Logger
}

func NewHandler(svc *console.Service, logger *logging.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// statusFor maps an operation error to the HTTP status returned to the front end.
func statusFor(err error) int {
	switch {
	case errors.Is(err, console.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, console.ErrGenerationInFlight):
		return http.StatusConflict
	case screens.IsValidation(err),
		errors.Is(err, screens.ErrAdvisorySent),
		errors.Is(err, models.ErrUnknownTechType):
		return http.StatusUnprocessableEntity
	default:
		// Back-office application errors and transport failures alike.
		return http.StatusBadGateway
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusBadGateway && !backoffice.IsAPIError(err) {
		h.logger.Errorf("Back office unreachable: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respond writes err, or the session's current snapshot when err is nil.
func (h *Handler) respond(c *gin.Context, err error) {
	if err != nil {
		h.writeError(c, err)
		return
	}
	snap, err := h.svc.Snapshot(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		h.logger.Errorf("Invalid request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}

func (h *Handler) intParam(c *gin.Context, name string) (int, bool) {
	raw := c.Param(name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		h.logger.Errorf("Invalid %s %s: %v", name, raw, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return n, true
}

// readUpload reads a multipart file. A missing file yields an empty Upload so
// the console reports its own validation message.
func readUpload(c *gin.Context, field string) (backoffice.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return backoffice.Upload{}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return backoffice.Upload{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return backoffice.Upload{}, err
	}
	return backoffice.Upload{FileName: fh.Filename, Data: data}, nil
}

// Sessions

func (h *Handler) OpenSession(c *gin.Context) {
	isAdmin, _ := strconv.ParseBool(c.GetHeader(AdminHeader))
	snap := h.svc.OpenSession(isAdmin)
	c.JSON(http.StatusCreated, snap)
}

func (h *Handler) GetSnapshot(c *gin.Context) {
	h.respond(c, nil)
}

func (h *Handler) CloseSession(c *gin.Context) {
	if err := h.svc.CloseSession(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session closed"})
}

// Client directory and taxonomy

func (h *Handler) LoadClients(c *gin.Context) {
	h.respond(c, h.svc.LoadClients(c.Request.Context(), c.Param("id")))
}

func (h *Handler) CreateClient(c *gin.Context) {
	var req createClientRequest
	if !h.bind(c, &req) {
		return
	}
	_, err := h.svc.CreateClient(c.Request.Context(), c.Param("id"), req.Name)
	h.respond(c, err)
}

func (h *Handler) SearchClients(c *gin.Context) {
	var req searchRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.svc.SearchClients(c.Param("id"), req.Term))
}

func (h *Handler) SelectClient(c *gin.Context) {
	var req clientRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.svc.SelectClient(c.Request.Context(), c.Param("id"), req.ClientID))
}

func (h *Handler) LoadCategories(c *gin.Context) {
	h.respond(c, h.svc.LoadCategories(c.Request.Context(), c.Param("id")))
}

func (h *Handler) SelectCascade(c *gin.Context) {
	var req cascadeRequest
	if !h.bind(c, &req) {
		return
	}
	if req.Target == "" {
		req.Target = string(console.TargetForm)
	}
	target, err := console.ParseCascadeTarget(req.Target)
	if err != nil {
		h.writeError(c, err)
		return
	}

	ctx, id := c.Request.Context(), c.Param("id")
	switch req.Level {
	case "category":
		err = h.svc.SelectCategory(ctx, id, target, req.ID)
	case "subcategory":
		err = h.svc.SelectSubcategory(ctx, id, target, req.ID)
	case "tech_stack":
		err = h.svc.SelectTechStack(id, target, req.ID)
	default:
		err = screens.Invalid("Unknown taxonomy level: %s", req.Level)
	}
	h.respond(c, err)
}

func (h *Handler) AddTaxonomy(c *gin.Context) {
	var form screens.TaxonomyForm
	if !h.bind(c, &form) {
		return
	}
	h.respond(c, h.svc.AddTaxonomy(c.Request.Context(), c.Param("id"), form))
}

// Advisories

func (h *Handler) SetForm(c *gin.Context) {
	var form screens.AdvisoryForm
	if !h.bind(c, &form) {
		return
	}
	h.respond(c, h.svc.SetForm(c.Param("id"), form))
}

func (h *Handler) SelectTab(c *gin.Context) {
	var req tabRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.svc.SelectTab(c.Param("id"), screens.Tab(req.Tab)))
}

func (h *Handler) SubmitAdvisory(c *gin.Context) {
	_, err := h.svc.SubmitAdvisory(c.Request.Context(), c.Param("id"))
	h.respond(c, err)
}

func (h *Handler) DeleteAdvisory(c *gin.Context) {
	advisoryID, ok := h.intParam(c, "advisoryId")
	if !ok {
		return
	}
	h.respond(c, h.svc.DeleteAdvisory(c.Request.Context(), c.Param("id"), advisoryID))
}

func (h *Handler) FormattedView(c *gin.Context) {
	advisoryID, ok := h.intParam(c, "advisoryId")
	if !ok {
		return
	}
	f, err := h.svc.FormattedView(c.Param("id"), advisoryID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	text, err := f.Text()
	if err != nil {
		h.logger.Errorf("Failed to render advisory %d: %v", advisoryID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render advisory"})
		return
	}
	c.JSON(http.StatusOK, formattedResponse{Formatted: f, Text: text})
}

// Editor

func (h *Handler) OpenEditor(c *gin.Context) {
	var req advisoryRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.svc.OpenEditor(c.Param("id"), req.AdvisoryID))
}

func (h *Handler) Edit(c *gin.Context) {
	h.respond(c, h.svc.Edit(c.Param("id")))
}

func (h *Handler) SetField(c *gin.Context) {
	var req fieldRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.svc.SetField(c.Param("id"), req.Field, req.Value))
}

func (h *Handler) Cancel(c *gin.Context) {
	h.respond(c, h.svc.Cancel(c.Param("id")))
}

func (h *Handler) CloseEditor(c *gin.Context) {
	h.respond(c, h.svc.CloseEditor(c.Param("id")))
}

func (h *Handler) SaveDraft(c *gin.Context) {
	h.respond(c, h.svc.SaveDraft(c.Request.Context(), c.Param("id")))
}

// Dispatch reports both halves of the dispatch. A failed notification after a
// successful status change is still a 200.
func (h *Handler) Dispatch(c *gin.Context) {
	id := c.Param("id")
	outcome, err := h.svc.Dispatch(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	snap, err := h.svc.Snapshot(id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	resp := dispatchResponse{StatusUpdated: outcome.StatusUpdated, Snapshot: snap}
	if outcome.NotificationErr != nil {
		resp.NotificationError = outcome.NotificationErr.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) SetEmailOptions(c *gin.Context) {
	var req emailOptionsRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.svc.SetEmailOptions(c.Param("id"), req.Template, req.CustomSubject))
}

func (h *Handler) LoadRecipients(c *gin.Context) {
	h.respond(c, h.svc.LoadRecipients(c.Request.Context(), c.Param("id")))
}

func (h *Handler) SendEmail(c *gin.Context) {
	_, err := h.svc.SendEmail(c.Request.Context(), c.Param("id"))
	h.respond(c, err)
}

// Client configuration

func (h *Handler) OpenClientConfig(c *gin.Context) {
	var req clientRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.svc.OpenClientConfig(c.Request.Context(), c.Param("id"), req.ClientID))
}

func (h *Handler) CloseClientConfig(c *gin.Context) {
	h.respond(c, h.svc.CloseClientConfig(c.Param("id")))
}

func (h *Handler) AssignTech(c *gin.Context) {
	h.respond(c, h.svc.AssignTech(c.Request.Context(), c.Param("id")))
}

func (h *Handler) DeleteAssignment(c *gin.Context) {
	assignmentID, ok := h.intParam(c, "assignmentId")
	if !ok {
		return
	}
	h.respond(c, h.svc.DeleteAssignment(c.Request.Context(), c.Param("id"), assignmentID))
}

func (h *Handler) AddAssignmentContact(c *gin.Context) {
	assignmentID, ok := h.intParam(c, "assignmentId")
	if !ok {
		return
	}
	var req contactRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.svc.AddAssignmentContact(c.Request.Context(), c.Param("id"), assignmentID, req.Email))
}

// Escalation

func (h *Handler) AddEscalationContact(c *gin.Context) {
	var req contactRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.svc.AddEscalationContact(c.Request.Context(), c.Param("id"), req.Email, req.Level))
}

func (h *Handler) DeleteEscalationContact(c *gin.Context) {
	contactID, ok := h.intParam(c, "contactId")
	if !ok {
		return
	}
	h.respond(c, h.svc.DeleteEscalationContact(c.Request.Context(), c.Param("id"), contactID))
}

// Feeds and AI generation

func (h *Handler) SelectFeedScope(c *gin.Context) {
	var req feedScopeRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.svc.SelectFeedScope(c.Request.Context(), c.Param("id"), req.TechStackID))
}

func (h *Handler) AddFeed(c *gin.Context) {
	var req feedRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.svc.AddFeed(c.Request.Context(), c.Param("id"), req.URL))
}

func (h *Handler) ToggleFeedDeleteMode(c *gin.Context) {
	h.respond(c, h.svc.ToggleFeedDeleteMode(c.Param("id")))
}

func (h *Handler) ToggleFeedSelection(c *gin.Context) {
	var req feedRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.svc.ToggleFeedSelection(c.Param("id"), req.URL))
}

func (h *Handler) DeleteSelectedFeeds(c *gin.Context) {
	h.respond(c, h.svc.DeleteSelectedFeeds(c.Request.Context(), c.Param("id")))
}

func (h *Handler) GenerateFromFeedItem(c *gin.Context) {
	h.respond(c, h.svc.GenerateFromFeedItem(c.Request.Context(), c.Param("id"), c.Param("itemId")))
}

// Knowledge base

func (h *Handler) SearchKB(c *gin.Context) {
	var req kbQueryRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.svc.SearchKB(c.Request.Context(), c.Param("id"), req.Query))
}

func (h *Handler) KBGoBack(c *gin.Context) {
	h.respond(c, h.svc.KBGoBack(c.Request.Context(), c.Param("id")))
}

func (h *Handler) SetKBPage(c *gin.Context) {
	var req pageRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.svc.SetKBPage(c.Param("id"), req.Page))
}

func (h *Handler) ToggleKBDeleteMode(c *gin.Context) {
	h.respond(c, h.svc.ToggleKBDeleteMode(c.Param("id")))
}

func (h *Handler) ToggleKBSelection(c *gin.Context) {
	var req kbSelectionRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.svc.ToggleKBSelection(c.Param("id"), req.ID))
}

func (h *Handler) DeleteKBEntries(c *gin.Context) {
	h.respond(c, h.svc.DeleteKBEntries(c.Request.Context(), c.Param("id")))
}

func (h *Handler) AddKBEntry(c *gin.Context) {
	var entry models.KBEntry
	if !h.bind(c, &entry) {
		return
	}
	h.respond(c, h.svc.AddKBEntry(c.Request.Context(), c.Param("id"), entry))
}

func (h *Handler) ImportKB(c *gin.Context) {
	file, err := readUpload(c, "file")
	if err != nil {
		h.logger.Errorf("Failed to read import file: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file"})
		return
	}
	h.respond(c, h.svc.ImportKB(c.Request.Context(), c.Param("id"), file))
}

func (h *Handler) UploadSolution(c *gin.Context) {
	file, err := readUpload(c, "file")
	if err != nil {
		h.logger.Errorf("Failed to read solution file: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file"})
		return
	}
	h.respond(c, h.svc.UploadSolution(c.Request.Context(), c.Param("id"), c.Param("entryId"), file))
}

// Runbook

func (h *Handler) LoadCustomers(c *gin.Context) {
	h.respond(c, h.svc.LoadCustomers(c.Request.Context(), c.Param("id")))
}

func (h *Handler) FilterCustomers(c *gin.Context) {
	var req customerFilterRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.svc.FilterCustomers(c.Param("id"), req.Search, req.OS))
}

func (h *Handler) SelectRunbookClient(c *gin.Context) {
	var req clientRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.svc.SelectRunbookClient(c.Request.Context(), c.Param("id"), req.ClientID))
}

func (h *Handler) SelectRunbookTab(c *gin.Context) {
	var req tabRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, h.svc.SelectRunbookTab(c.Request.Context(), c.Param("id"), req.Tab))
}

func (h *Handler) AddAsset(c *gin.Context) {
	var a models.Asset
	if !h.bind(c, &a) {
		return
	}
	h.respond(c, h.svc.AddAsset(c.Request.Context(), c.Param("id"), a))
}

func (h *Handler) AddSLAPolicy(c *gin.Context) {
	var p models.SLAPolicy
	if !h.bind(c, &p) {
		return
	}
	h.respond(c, h.svc.AddSLAPolicy(c.Request.Context(), c.Param("id"), p))
}

func (h *Handler) AddPassword(c *gin.Context) {
	var p models.PasswordRecord
	if !h.bind(c, &p) {
		return
	}
	h.respond(c, h.svc.AddPassword(c.Request.Context(), c.Param("id"), p))
}

func (h *Handler) AddEscalationEntry(c *gin.Context) {
	var e models.EscalationMatrixEntry
	if !h.bind(c, &e) {
		return
	}
	h.respond(c, h.svc.AddEscalationEntry(c.Request.Context(), c.Param("id"), e))
}

func (h *Handler) UploadClientPDF(c *gin.Context) {
	file, err := readUpload(c, "pdf")
	if err != nil {
		h.logger.Errorf("Failed to read runbook PDF: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file"})
		return
	}
	h.respond(c, h.svc.UploadClientPDF(c.Request.Context(), c.Param("id"), file))
}

func (h *Handler) DeleteClientPDF(c *gin.Context) {
	h.respond(c, h.svc.DeleteClientPDF(c.Request.Context(), c.Param("id")))
}
