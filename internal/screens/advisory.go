package screens

import (
	"fmt"
	"strings"

	"advisory-console/internal/models"
	"advisory-console/internal/sanitize"
)

// Tab is the active pane of the advisory screen.
type Tab string

const (
	TabAdvisories Tab = "advisories"
	TabCreate     Tab = "create"
	TabFeeds      Tab = "feeds"
)

// Notices shown after AI generation.
const (
	NoticeGenerated        = "Advisory has been drafted by AI. Please review and dispatch."
	noticeGenerationFailed = "AI Generation Failed: %s"
)

// AdvisoryForm is the bulk authoring form.
type AdvisoryForm struct {
	TechStackID          int    `json:"techStackId"`
	Version              string `json:"version"`
	UpdateType           string `json:"updateType"`
	Description          string `json:"description"`
	VulnerabilityDetails string `json:"vulnerability_details"`
	TechnicalAnalysis    string `json:"technical_analysis"`
	ImpactDetails        string `json:"impact_details"`
	MitigationStrategies string `json:"mitigation_strategies"`
	DetectionResponse    string `json:"detection_response"`
	Recommendations      string `json:"recommendations"`
}

// Draft validates the form and builds the bulk payload. An empty version targets every version.
func (f AdvisoryForm) Draft() (models.AdvisoryDraft, error) {
	if f.TechStackID == 0 || strings.TrimSpace(f.UpdateType) == "" || strings.TrimSpace(f.Description) == "" {
		return models.AdvisoryDraft{}, Invalid("Please fill out the basic advisory fields (Tech, Type, Summary).")
	}
	version := strings.TrimSpace(f.Version)
	if version == "" {
		version = models.AnyVersion
	}
	return models.AdvisoryDraft{
		TechStackID:          f.TechStackID,
		Version:              version,
		UpdateType:           f.UpdateType,
		Description:          f.Description,
		VulnerabilityDetails: f.VulnerabilityDetails,
		TechnicalAnalysis:    f.TechnicalAnalysis,
		ImpactDetails:        f.ImpactDetails,
		MitigationStrategies: f.MitigationStrategies,
		DetectionResponse:    f.DetectionResponse,
		Recommendations:      f.Recommendations,
	}, nil
}

// Capabilities toggles optional features of the advisory screen.
type Capabilities struct {
	AIGeneration bool `json:"ai_generation"`
	BulkDispatch bool `json:"bulk_dispatch"`
}

// AdvisoryScreen is the client-scoped advisory workspace.
type AdvisoryScreen struct {
	Capabilities Capabilities `json:"capabilities"`

	Clients          []models.Client `json:"clients"`
	ClientSearch     string          `json:"client_search"`
	SelectedClientID int             `json:"selected_client_id"`
	// Selection is bumped on every client change. Loads stamped with an older
	// value are discarded.
	Selection        uint64          `json:"selection"`

	Advisories []models.Advisory  `json:"advisories"`
	FeedItems  []models.RssItem   `json:"feed_items"`
	Escalation EscalationRegistry `json:"escalation"`

	Cascade    Cascade         `json:"cascade"`
	Form       AdvisoryForm    `json:"form"`
	ActiveTab  Tab             `json:"active_tab"`
	Notice     string          `json:"notice"`
	Feeds      FeedManager     `json:"feeds"`
	// Generating holds the ids of feed items with an AI draft in flight.
	Generating map[string]bool `json:"generating"`
}

// NewAdvisoryScreen returns the initial screen state.
func NewAdvisoryScreen(caps Capabilities) AdvisoryScreen {
	return AdvisoryScreen{
		Capabilities: caps,
		Escalation:   NewEscalationRegistry(),
		ActiveTab:    TabAdvisories,
		Generating:   map[string]bool{},
	}
}

func (s AdvisoryScreen) ClientsLoaded(clients []models.Client) AdvisoryScreen {
	s.Clients = clients
	return s
}

// ClientCreated appends a newly registered client to the roster.
func (s AdvisoryScreen) ClientCreated(c models.Client) AdvisoryScreen {
	s.Clients = append(append([]models.Client(nil), s.Clients...), c)
	return s
}

func (s AdvisoryScreen) SearchClients(term string) AdvisoryScreen {
	s.ClientSearch = term
	return s
}

// VisibleClients is the roster filtered by the current search term.
func (s AdvisoryScreen) VisibleClients() []models.Client {
	return models.FilterClients(s.Clients, s.ClientSearch)
}

// SelectClient scopes the screen to id and clears everything loaded for the
// previous client. Id 0 deselects.
func (s AdvisoryScreen) SelectClient(id int) AdvisoryScreen {
	s.SelectedClientID = id
	s.Selection++
	s.Advisories = nil
	s.FeedItems = nil
	s.Escalation = s.Escalation.Reset(id)
	return s
}

// AdvisoriesLoaded applies a listing fetched under selection. The bool reports whether it was applied.
func (s AdvisoryScreen) AdvisoriesLoaded(selection uint64, advisories []models.Advisory) (AdvisoryScreen, bool) {
	if selection != s.Selection {
		return s, false
	}
	s.Advisories = advisories
	return s, true
}

// FeedItemsLoaded applies feed items fetched under selection. Summaries are
// reduced to plain text and items without an id get "rss-{index}".
func (s AdvisoryScreen) FeedItemsLoaded(selection uint64, items []models.RssItem) (AdvisoryScreen, bool) {
	if selection != s.Selection {
		return s, false
	}
	clean := make([]models.RssItem, len(items))
	for i, item := range items {
		item.Summary = sanitize.StripHTML(item.Summary)
		if item.ID == "" {
			item.ID = fmt.Sprintf("rss-%d", i)
		}
		clean[i] = item
	}
	s.FeedItems = clean
	return s, true
}

// EscalationLoaded applies a matrix fetched under selection.
func (s AdvisoryScreen) EscalationLoaded(selection uint64, m models.EscalationMatrix) (AdvisoryScreen, bool) {
	if selection != s.Selection {
		return s, false
	}
	s.Escalation = s.Escalation.Loaded(m)
	return s, true
}

// FindFeedItem returns the loaded feed item with the given id.
func (s AdvisoryScreen) FindFeedItem(id string) (models.RssItem, bool) {
	for _, item := range s.FeedItems {
		if item.ID == id {
			return item, true
		}
	}
	return models.RssItem{}, false
}

// FindAdvisory returns the loaded advisory with the given id.
func (s AdvisoryScreen) FindAdvisory(id int) (models.Advisory, bool) {
	for _, a := range s.Advisories {
		if a.ID == id {
			return a, true
		}
	}
	return models.Advisory{}, false
}

// AdvisoryUpdated replaces a listed advisory. A sent advisory never reverts to draft.
func (s AdvisoryScreen) AdvisoryUpdated(a models.Advisory) AdvisoryScreen {
	out := make([]models.Advisory, len(s.Advisories))
	for i, cur := range s.Advisories {
		if cur.ID == a.ID {
			if cur.IsSent() {
				a.Status = models.StatusSent
			}
			cur = a
		}
		out[i] = cur
	}
	s.Advisories = out
	return s
}

func (s AdvisoryScreen) SetForm(f AdvisoryForm) AdvisoryScreen {
	s.Form = f
	return s
}

// FormSubmitted clears the form and its cascading selection and shows the server's message.
func (s AdvisoryScreen) FormSubmitted(message string) AdvisoryScreen {
	s.Form = AdvisoryForm{}
	s.Cascade = s.Cascade.Reset()
	s.Notice = message
	return s
}

func (s AdvisoryScreen) SetNotice(msg string) AdvisoryScreen {
	s.Notice = msg
	return s
}

func (s AdvisoryScreen) SelectTab(t Tab) AdvisoryScreen {
	s.ActiveTab = t
	return s
}

func (s AdvisoryScreen) SetCascade(c Cascade) AdvisoryScreen {
	s.Cascade = c
	s.Form.TechStackID = c.TechStackID
	return s
}

func (s AdvisoryScreen) SetFeeds(f FeedManager) AdvisoryScreen {
	s.Feeds = f
	return s
}

func (s AdvisoryScreen) SetEscalation(r EscalationRegistry) AdvisoryScreen {
	s.Escalation = r
	return s
}

// IsGenerating reports whether an AI draft for itemID is in flight.
func (s AdvisoryScreen) IsGenerating(itemID string) bool {
	return s.Generating[itemID]
}

func (s AdvisoryScreen) GenerationStarted(itemID string) AdvisoryScreen {
	s.Generating = copyFlags(s.Generating)
	s.Generating[itemID] = true
	return s
}

// GenerationSucceeded replaces the form with the generated draft and switches to the create tab.
func (s AdvisoryScreen) GenerationSucceeded(itemID string, g models.GeneratedAdvisory) AdvisoryScreen {
	s = s.generationDone(itemID)
	updateType := g.UpdateType
	if updateType == "" {
		updateType = models.UpdateVulnerabilityAlert
	}
	s.Form = AdvisoryForm{
		UpdateType:           updateType,
		Description:          g.Summary,
		VulnerabilityDetails: g.VulnerabilityDetails,
		TechnicalAnalysis:    g.TechnicalAnalysis,
		ImpactDetails:        g.ImpactAssessment,
		MitigationStrategies: g.MitigationStrategies,
		DetectionResponse:    g.DetectionAndResponse,
		Recommendations:      g.Recommendations,
	}
	s.ActiveTab = TabCreate
	s.Notice = NoticeGenerated
	return s
}

// GenerationFailed reports err and leaves the form untouched.
func (s AdvisoryScreen) GenerationFailed(itemID string, err error) AdvisoryScreen {
	s = s.generationDone(itemID)
	s.Notice = fmt.Sprintf(noticeGenerationFailed, err.Error())
	return s
}

func (s AdvisoryScreen) generationDone(itemID string) AdvisoryScreen {
	s.Generating = copyFlags(s.Generating)
	delete(s.Generating, itemID)
	return s
}

func copyFlags(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
