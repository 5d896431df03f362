package backoffice

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"advisory-console/internal/models"
)

func clientQuery(clientID int) url.Values {
	return url.Values{"client": {strconv.Itoa(clientID)}}
}

func (c *Client) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := c.doJSON(ctx, http.MethodGet, "/api/customers", nil, nil, &customers, nil); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *Client) ListAssets(ctx context.Context, clientID int) ([]models.Asset, error) {
	var assets []models.Asset
	if err := c.doJSON(ctx, http.MethodGet, "/api/assets", clientQuery(clientID), nil, &assets, nil); err != nil {
		return nil, err
	}
	return assets, nil
}

func (c *Client) AddAsset(ctx context.Context, a models.Asset) error {
	return c.doJSON(ctx, http.MethodPost, "/api/assets", nil, a, nil, nil)
}

func (c *Client) ListSLAPolicies(ctx context.Context, clientID int) ([]models.SLAPolicy, error) {
	var policies []models.SLAPolicy
	if err := c.doJSON(ctx, http.MethodGet, "/api/sla", clientQuery(clientID), nil, &policies, nil); err != nil {
		return nil, err
	}
	return policies, nil
}

func (c *Client) AddSLAPolicy(ctx context.Context, p models.SLAPolicy) error {
	return c.doJSON(ctx, http.MethodPost, "/api/sla", nil, p, nil, nil)
}

func (c *Client) ListPasswords(ctx context.Context, clientID int) ([]models.PasswordRecord, error) {
	var records []models.PasswordRecord
	if err := c.doJSON(ctx, http.MethodGet, "/api/passwords", clientQuery(clientID), nil, &records, nil); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) AddPassword(ctx context.Context, p models.PasswordRecord) error {
	return c.doJSON(ctx, http.MethodPost, "/api/passwords", nil, p, nil, nil)
}

func (c *Client) ListEscalationEntries(ctx context.Context, clientID int) ([]models.EscalationMatrixEntry, error) {
	var entries []models.EscalationMatrixEntry
	if err := c.doJSON(ctx, http.MethodGet, "/api/escalation-matrix", clientQuery(clientID), nil, &entries, nil); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) AddEscalationEntry(ctx context.Context, e models.EscalationMatrixEntry) error {
	return c.doJSON(ctx, http.MethodPost, "/api/escalation-matrix", nil, e, nil, nil)
}

// UploadClientPDF stores the runbook PDF for a client.
func (c *Client) UploadClientPDF(ctx context.Context, clientID int, file Upload) (models.ClientDocument, error) {
	var doc models.ClientDocument
	fields := map[string]string{"clientId": strconv.Itoa(clientID)}
	if err := c.doMultipart(ctx, "/api/upload-pdf", map[string]Upload{"pdf": file}, fields, &doc); err != nil {
		return models.ClientDocument{}, err
	}
	return doc, nil
}

// ClientPDF looks up the stored runbook PDF. FileName is empty when none exists.
func (c *Client) ClientPDF(ctx context.Context, clientID int) (models.ClientDocument, error) {
	var doc models.ClientDocument
	q := url.Values{"clientId": {strconv.Itoa(clientID)}}
	if err := c.doJSON(ctx, http.MethodGet, "/api/get-client-pdf", q, nil, &doc, nil); err != nil {
		return models.ClientDocument{}, err
	}
	return doc, nil
}

func (c *Client) DeleteClientPDF(ctx context.Context, clientID int) error {
	q := url.Values{"clientId": {strconv.Itoa(clientID)}}
	return c.doJSON(ctx, http.MethodDelete, "/api/delete-client-pdf", q, nil, nil, nil)
}
