package backoffice

import (
	"context"
	"fmt"
	"net/http"

	"advisory-console/internal/models"
)

// ListClients fetches the roster. The server returns [id, name] tuples.
func (c *Client) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := c.doJSON(ctx, http.MethodGet, "/api/clients", nil, nil, &clients, nil); err != nil {
		return nil, err
	}
	return clients, nil
}

// CreateClient registers a new client and returns it with its assigned id.
func (c *Client) CreateClient(ctx context.Context, name string) (models.Client, error) {
	var created models.Client
	in := map[string]string{"name": name}
	if err := c.doJSON(ctx, http.MethodPost, "/api/clients", nil, in, &created, nil); err != nil {
		return models.Client{}, err
	}
	return created, nil
}

// ClientAdvisories lists every advisory scoped to a client, draft and sent.
func (c *Client) ClientAdvisories(ctx context.Context, clientID int) ([]models.Advisory, error) {
	var advisories []models.Advisory
	path := fmt.Sprintf("/api/clients/%d/advisories", clientID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &advisories, nil); err != nil {
		return nil, err
	}
	return advisories, nil
}

// ClientFeedItems lists the ingested feed entries for a client. Summaries are raw.
func (c *Client) ClientFeedItems(ctx context.Context, clientID int) ([]models.RssItem, error) {
	var items []models.RssItem
	path := fmt.Sprintf("/api/clients/%d/feed-items", clientID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &items, nil); err != nil {
		return nil, err
	}
	return items, nil
}
