package screens

import (
	"fmt"
	"strings"

	"advisory-console/internal/models"
)

// RunbookTab is a pane of the operation runbook.
type RunbookTab string

const (
	TabAssets     RunbookTab = "assets"
	TabSLA        RunbookTab = "sla"
	TabPasswords  RunbookTab = "passwords"
	TabEscalation RunbookTab = "escalation"
	TabDocuments  RunbookTab = "documents"
)

// RunbookTabs lists the panes in display order.
var RunbookTabs = []RunbookTab{TabAssets, TabSLA, TabPasswords, TabEscalation, TabDocuments}

func ParseRunbookTab(s string) (RunbookTab, error) {
	for _, t := range RunbookTabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", Invalid("Unknown runbook tab: %s", s)
}

// Runbook is the per-client operational inventory.
type Runbook struct {
	Customers []models.Customer `json:"customers"`
	Search    string            `json:"search"`
	OSFilter  string            `json:"os_filter"`

	ClientID   int                            `json:"client_id"`
	Tab        RunbookTab                     `json:"tab"`
	Assets     []models.Asset                 `json:"assets"`
	SLAs       []models.SLAPolicy             `json:"slas"`
	Passwords  []models.PasswordRecord        `json:"passwords"`
	Escalation []models.EscalationMatrixEntry `json:"escalation"`
	Document   models.ClientDocument          `json:"document"`
	Notice     string                         `json:"notice"`
}

func NewRunbook() Runbook {
	return Runbook{Tab: TabAssets}
}

func (r Runbook) CustomersLoaded(customers []models.Customer) Runbook {
	r.Customers = customers
	return r
}

func (r Runbook) Filter(search, os string) Runbook {
	r.Search = search
	r.OSFilter = os
	return r
}

// VisibleCustomers is the roster after the search and OS filters.
func (r Runbook) VisibleCustomers() []models.Customer {
	return models.FilterCustomers(r.Customers, r.Search, r.OSFilter)
}

// SelectClient opens the runbook of clientID on the assets tab.
func (r Runbook) SelectClient(clientID int) Runbook {
	return Runbook{
		Customers: r.Customers,
		Search:    r.Search,
		OSFilter:  r.OSFilter,
		ClientID:  clientID,
		Tab:       TabAssets,
	}
}

func (r Runbook) SelectTab(t RunbookTab) Runbook {
	r.Tab = t
	return r
}

func (r Runbook) AssetsLoaded(a []models.Asset) Runbook {
	r.Assets = a
	return r
}

func (r Runbook) SLAsLoaded(p []models.SLAPolicy) Runbook {
	r.SLAs = p
	return r
}

func (r Runbook) PasswordsLoaded(p []models.PasswordRecord) Runbook {
	r.Passwords = p
	return r
}

func (r Runbook) EscalationLoaded(e []models.EscalationMatrixEntry) Runbook {
	r.Escalation = e
	return r
}

func (r Runbook) DocumentLoaded(d models.ClientDocument) Runbook {
	r.Document = d
	return r
}

func (r Runbook) SetNotice(msg string) Runbook {
	r.Notice = msg
	return r
}

func (r Runbook) requireClient() error {
	if r.ClientID == 0 {
		return Invalid("Please select a client first.")
	}
	return nil
}

// AssetRequest scopes a to the selected client and checks required columns.
func (r Runbook) AssetRequest(a models.Asset) (models.Asset, error) {
	if err := r.requireClient(); err != nil {
		return a, err
	}
	a.ClientID = r.ClientID
	if missing := a.MissingFields(); len(missing) > 0 {
		return a, Invalid("Missing fields: %s", strings.Join(missing, ", "))
	}
	return a, nil
}

func (r Runbook) SLARequest(p models.SLAPolicy) (models.SLAPolicy, error) {
	if err := r.requireClient(); err != nil {
		return p, err
	}
	p.ClientID = r.ClientID
	if strings.TrimSpace(p.Priority) == "" {
		return p, Invalid("Missing fields: priority")
	}
	return p, nil
}

func (r Runbook) PasswordRequest(p models.PasswordRecord) (models.PasswordRecord, error) {
	if err := r.requireClient(); err != nil {
		return p, err
	}
	var missing []string
	if p.AssetID == 0 {
		missing = append(missing, "asset_id")
	}
	if strings.TrimSpace(p.Username) == "" {
		missing = append(missing, "username")
	}
	if len(missing) > 0 {
		return p, Invalid("Missing fields: %s", strings.Join(missing, ", "))
	}
	return p, nil
}

func (r Runbook) EscalationRequest(e models.EscalationMatrixEntry) (models.EscalationMatrixEntry, error) {
	if err := r.requireClient(); err != nil {
		return e, err
	}
	e.ClientID = r.ClientID
	if _, err := models.ParseEscalationLevel(string(e.Level)); err != nil {
		return e, &ValidationError{Message: fmt.Sprintf("Invalid escalation level: %s", e.Level), Err: err}
	}
	return e, nil
}

// DocumentRequest checks that a PDF was supplied for the selected client.
func (r Runbook) DocumentRequest(file []byte) error {
	if err := r.requireClient(); err != nil {
		return err
	}
	if len(file) == 0 {
		return Invalid("Missing file or clientId")
	}
	return nil
}
