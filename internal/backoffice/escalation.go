package backoffice

import (
	"context"
	"fmt"
	"net/http"

	"advisory-console/internal/models"
)

// EscalationMatrix fetches a client's contacts grouped by level.
func (c *Client) EscalationMatrix(ctx context.Context, clientID int) (models.EscalationMatrix, error) {
	var m models.EscalationMatrix
	path := fmt.Sprintf("/api/clients/%d/escalation-matrix", clientID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &m, nil); err != nil {
		return models.EmptyEscalationMatrix(), err
	}
	return m.Normalize(), nil
}

func (c *Client) AddEscalationContact(ctx context.Context, clientID int, req models.EscalationContactRequest) error {
	path := fmt.Sprintf("/api/clients/%d/escalation-contacts", clientID)
	return c.doJSON(ctx, http.MethodPost, path, nil, req, nil, nil)
}

func (c *Client) DeleteEscalationContact(ctx context.Context, contactID int) error {
	path := fmt.Sprintf("/api/escalation-contacts/%d", contactID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil, nil)
}
