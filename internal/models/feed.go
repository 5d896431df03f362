package models

// RssFeed is a subscribed feed URL scoped to a tech stack.
type RssFeed struct {
	ID          int    `json:"id,omitempty"`
	URL         string `json:"url"`
	TechStackID int    `json:"tech_stack_id,omitempty"`
}

// RssItem is one ingested feed entry. Read-only; Summary may carry raw HTML until sanitized.
type RssItem struct {
	ID           string `json:"id,omitempty"`
	Title        string `json:"title"`
	Link         string `json:"link"`
	Summary      string `json:"summary"`
	Published    string `json:"published,omitempty"`
	CategoryID   int    `json:"category_id,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
}

// FeedRequest is the body of POST /api/rss-feeds.
type FeedRequest struct {
	TechStackID int    `json:"tech_stack_id"`
	URL         string `json:"url"`
}

// FeedDeleteRequest is the body of DELETE /api/rss-feeds.
type FeedDeleteRequest struct {
	TechStackID int      `json:"tech_stack_id"`
	URLs        []string `json:"urls"`
}
