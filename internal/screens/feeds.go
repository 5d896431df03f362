package screens

import (
	"sort"
	"strings"

	"github.com/scylladb/go-set/strset"

	"advisory-console/internal/models"
)

// FeedManager is the RSS subscription list of one tech stack.
type FeedManager struct {
	TechStackID int              `json:"tech_stack_id"`
	Feeds       []models.RssFeed `json:"feeds"`
	DeleteMode  bool             `json:"delete_mode"`
	// Selected is the pending-delete set, kept sorted.
	Selected []string `json:"selected"`
	Notice   string   `json:"notice"`
}

// SelectScope switches to another tech stack and drops everything loaded for the previous one.
func (f FeedManager) SelectScope(techStackID int) FeedManager {
	return FeedManager{TechStackID: techStackID}
}

// FeedsLoaded applies a listing fetched for techStackID, dropping stale ones.
func (f FeedManager) FeedsLoaded(techStackID int, feeds []models.RssFeed) FeedManager {
	if techStackID != f.TechStackID {
		return f
	}
	f.Feeds = feeds
	return f
}

// AddRequest validates a new subscription. The URL format is not checked.
func (f FeedManager) AddRequest(url string) (models.FeedRequest, error) {
	url = strings.TrimSpace(url)
	if f.TechStackID == 0 || url == "" {
		return models.FeedRequest{}, Invalid("Please select a category and enter a valid RSS URL.")
	}
	return models.FeedRequest{TechStackID: f.TechStackID, URL: url}, nil
}

// ToggleDeleteMode enters or leaves delete mode. Leaving clears the selection.
func (f FeedManager) ToggleDeleteMode() FeedManager {
	f.DeleteMode = !f.DeleteMode
	if !f.DeleteMode {
		f.Selected = nil
	}
	return f
}

// ToggleSelection adds url to the pending-delete set, or removes it if present.
func (f FeedManager) ToggleSelection(url string) (FeedManager, error) {
	if !f.DeleteMode {
		return f, Invalid("Enter delete mode to select feeds.")
	}
	set := strset.New(f.Selected...)
	if set.Has(url) {
		set.Remove(url)
	} else {
		set.Add(url)
	}
	f.Selected = set.List()
	sort.Strings(f.Selected)
	return f, nil
}

// DeleteRequest is the single batch delete for the pending set.
func (f FeedManager) DeleteRequest() (models.FeedDeleteRequest, error) {
	if len(f.Selected) == 0 || f.TechStackID == 0 {
		return models.FeedDeleteRequest{}, Invalid("No feeds selected or no category specified.")
	}
	return models.FeedDeleteRequest{
		TechStackID: f.TechStackID,
		URLs:        append([]string(nil), f.Selected...),
	}, nil
}

// Deleted clears the selection and leaves delete mode.
func (f FeedManager) Deleted(message string) FeedManager {
	f.Selected = nil
	f.DeleteMode = false
	f.Notice = message
	return f
}

func (f FeedManager) SetNotice(msg string) FeedManager {
	f.Notice = msg
	return f
}
