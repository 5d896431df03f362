package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Client is a tenant organization managed by the back office.
type Client struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts both the roster's [id, name] tuple form and a plain object.
func (c *Client) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var tuple []json.RawMessage
		if err := json.Unmarshal(data, &tuple); err != nil {
			return err
		}
		if len(tuple) < 2 {
			return fmt.Errorf("client tuple needs 2 elements, got %d", len(tuple))
		}
		if err := json.Unmarshal(tuple[0], &c.ID); err != nil {
			return fmt.Errorf("invalid client id: %w", err)
		}
		if err := json.Unmarshal(tuple[1], &c.Name); err != nil {
			return fmt.Errorf("invalid client name: %w", err)
		}
		return nil
	}

	type Alias Client
	return json.Unmarshal(data, (*Alias)(c))
}

// FilterClients returns the clients whose name contains term, ignoring case.
// An empty term returns every client.
func FilterClients(clients []Client, term string) []Client {
	needle := strings.ToLower(term)
	out := make([]Client, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}

// FindClient returns the client with the given id.
func FindClient(clients []Client, id int) (Client, bool) {
	for _, c := range clients {
		if c.ID == id {
			return c, true
		}
	}
	return Client{}, false
}
