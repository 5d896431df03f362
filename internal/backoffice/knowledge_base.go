package backoffice

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"advisory-console/internal/models"
)

// SearchKB runs a knowledge base query. An empty query lists every entry.
func (c *Client) SearchKB(ctx context.Context, query string) ([]models.KBEntry, error) {
	var q url.Values
	if query != "" {
		q = url.Values{"query": {query}}
	}
	var entries []models.KBEntry
	if err := c.doJSON(ctx, http.MethodGet, "/api/kb-search", q, nil, &entries, nil); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) AddKBEntry(ctx context.Context, entry models.KBEntry) (models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/kb_table-add", nil, entry, &resp, nil); err != nil {
		return models.MessageResponse{}, err
	}
	return resp, nil
}

func (c *Client) DeleteKBEntries(ctx context.Context, ids []models.FlexString) (models.MessageResponse, error) {
	var resp models.MessageResponse
	in := models.KBDeleteRequest{IDs: ids}
	if err := c.doJSON(ctx, http.MethodPost, "/api/kb_table-delete", nil, in, &resp, nil); err != nil {
		return models.MessageResponse{}, err
	}
	return resp, nil
}

// ImportKB uploads a CSV or spreadsheet of entries.
func (c *Client) ImportKB(ctx context.Context, file Upload) (models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.doMultipart(ctx, "/api/kb_table-import", map[string]Upload{"file": file}, nil, &resp); err != nil {
		return models.MessageResponse{}, err
	}
	return resp, nil
}

// UploadSolution attaches a solution document to an entry.
func (c *Client) UploadSolution(ctx context.Context, entryID string, file Upload) (models.MessageResponse, error) {
	var resp models.MessageResponse
	path := fmt.Sprintf("/api/upload_solution/%s", url.PathEscape(entryID))
	if err := c.doMultipart(ctx, path, map[string]Upload{"file": file}, nil, &resp); err != nil {
		return models.MessageResponse{}, err
	}
	return resp, nil
}
