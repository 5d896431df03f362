package backoffice

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"advisory-console/internal/models"
)

// ListFeeds lists the feed subscriptions of a tech stack.
func (c *Client) ListFeeds(ctx context.Context, techStackID int) ([]models.RssFeed, error) {
	var feeds []models.RssFeed
	q := url.Values{"techStackId": {strconv.Itoa(techStackID)}}
	if err := c.doJSON(ctx, http.MethodGet, "/api/rss-feeds", q, nil, &feeds, nil); err != nil {
		return nil, err
	}
	return feeds, nil
}

func (c *Client) AddFeed(ctx context.Context, req models.FeedRequest) (models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/rss-feeds", nil, req, &resp, nil); err != nil {
		return models.MessageResponse{}, err
	}
	return resp, nil
}

// DeleteFeeds removes every listed URL from a tech stack in one request.
func (c *Client) DeleteFeeds(ctx context.Context, req models.FeedDeleteRequest) (models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.doJSON(ctx, http.MethodDelete, "/api/rss-feeds", nil, req, &resp, nil); err != nil {
		return models.MessageResponse{}, err
	}
	return resp, nil
}
