package backoffice

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"advisory-console/internal/models"
)

// IdempotencyHeader carries a per-dispatch key so a user-initiated resend of
// the same dispatch can be recognized by the server.
const IdempotencyHeader = "Idempotency-Key"

// CreateBulkAdvisory submits a draft that the server fans out to every matching client.
func (c *Client) CreateBulkAdvisory(ctx context.Context, draft models.AdvisoryDraft) (models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/advisories/bulk", nil, draft, &resp, nil); err != nil {
		return models.MessageResponse{}, err
	}
	return resp, nil
}

// UpdateAdvisory saves fields and status of an advisory.
func (c *Client) UpdateAdvisory(ctx context.Context, id int, update models.AdvisoryUpdate) error {
	path := fmt.Sprintf("/api/advisories/%d", id)
	return c.doJSON(ctx, http.MethodPut, path, nil, update, nil, nil)
}

// DeleteAdvisory removes an advisory.
func (c *Client) DeleteAdvisory(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/advisories/%d", id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil, nil)
}

// Recipients lists the addresses an advisory would be dispatched to.
func (c *Client) Recipients(ctx context.Context, advisoryID int) ([]string, error) {
	var recipients []string
	path := fmt.Sprintf("/api/advisories/%d/recipients", advisoryID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &recipients, nil); err != nil {
		return nil, err
	}
	return recipients, nil
}

// DispatchAdvisory hands a rendered advisory to the notification endpoint. An
// empty key gets a fresh one.
func (c *Client) DispatchAdvisory(ctx context.Context, req models.DispatchRequest, key string) (models.MessageResponse, error) {
	if key == "" {
		key = uuid.NewString()
	}
	header := http.Header{}
	header.Set(IdempotencyHeader, key)

	var resp models.MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/dispatch-advisory", nil, req, &resp, header); err != nil {
		return models.MessageResponse{}, err
	}
	return resp, nil
}

// GenerateAdvisory asks the server to draft an advisory from a feed item.
func (c *Client) GenerateAdvisory(ctx context.Context, req models.GenerateRequest) (models.GeneratedAdvisory, error) {
	var generated models.GeneratedAdvisory
	if err := c.doJSON(ctx, http.MethodPost, "/api/generate-advisory-from-url", nil, req, &generated, nil); err != nil {
		return models.GeneratedAdvisory{}, err
	}
	return generated, nil
}
