package screens

import (
	"strings"

	"advisory-console/internal/models"
)

// SearchCache memoizes knowledge base results by normalized query for the
// lifetime of a session. It has no eviction and no TTL, so it grows with every
// distinct query. Not safe for concurrent use.
type SearchCache struct {
	entries map[string][]models.KBEntry
}

func NewSearchCache() *SearchCache {
	return &SearchCache{entries: make(map[string][]models.KBEntry)}
}

// CacheKey normalizes a query: trimmed and lower-cased.
func CacheKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func (c *SearchCache) Get(query string) ([]models.KBEntry, bool) {
	e, ok := c.entries[CacheKey(query)]
	return e, ok
}

func (c *SearchCache) Put(query string, entries []models.KBEntry) {
	c.entries[CacheKey(query)] = entries
}

func (c *SearchCache) Len() int {
	return len(c.entries)
}

// KnowledgeBase is the ticket archive table.
type KnowledgeBase struct {
	Query         string              `json:"query"`
	Entries       []models.KBEntry    `json:"entries"`
	ShowingSearch bool                `json:"showing_search"`
	Page          int                 `json:"page"`
	PageSize      int                 `json:"page_size"`
	DeleteMode    bool                `json:"delete_mode"`
	Selected      []models.FlexString `json:"selected"`
	Notice        string              `json:"notice"`

	// Load stamps the newest archive load or search.
	Load uint64 `json:"-"`
}

func NewKnowledgeBase(pageSize int) KnowledgeBase {
	if pageSize <= 0 {
		pageSize = 15
	}
	return KnowledgeBase{Page: 1, PageSize: pageSize}
}

// Loaded shows the full archive.
func (kb KnowledgeBase) Loaded(entries []models.KBEntry) KnowledgeBase {
	kb.Entries = entries
	kb.ShowingSearch = false
	kb.Page = kb.clampPage(kb.Page)
	return kb
}

// SearchResults shows the results of query from the first page.
func (kb KnowledgeBase) SearchResults(query string, entries []models.KBEntry) KnowledgeBase {
	kb.Query = query
	kb.Entries = entries
	kb.ShowingSearch = true
	kb.Page = 1
	return kb
}

// StartLoad stamps a new archive load or search. Results of earlier loads are
// dropped by SearchLoaded and ArchiveLoaded.
func (kb KnowledgeBase) StartLoad() (KnowledgeBase, uint64) {
	kb.Load++
	return kb, kb.Load
}

// SearchLoaded applies the results of the search stamped load.
func (kb KnowledgeBase) SearchLoaded(load uint64, query string, entries []models.KBEntry) (KnowledgeBase, bool) {
	if load != kb.Load {
		return kb, false
	}
	return kb.SearchResults(query, entries), true
}

// ArchiveLoaded applies the full archive fetched under load.
func (kb KnowledgeBase) ArchiveLoaded(load uint64, entries []models.KBEntry) (KnowledgeBase, bool) {
	if load != kb.Load {
		return kb, false
	}
	return kb.Loaded(entries), true
}

// GoBack clears the query. The caller reloads the full archive.
func (kb KnowledgeBase) GoBack() KnowledgeBase {
	kb.Query = ""
	kb.ShowingSearch = false
	kb.Page = 1
	return kb
}

// PageCount is at least 1.
func (kb KnowledgeBase) PageCount() int {
	n := (len(kb.Entries) + kb.PageSize - 1) / kb.PageSize
	if n < 1 {
		return 1
	}
	return n
}

func (kb KnowledgeBase) SetPage(p int) KnowledgeBase {
	kb.Page = kb.clampPage(p)
	return kb
}

func (kb KnowledgeBase) clampPage(p int) int {
	if p < 1 {
		return 1
	}
	if last := kb.PageCount(); p > last {
		return last
	}
	return p
}

// PageEntries is the slice of entries on the current page.
func (kb KnowledgeBase) PageEntries() []models.KBEntry {
	start := (kb.Page - 1) * kb.PageSize
	if start >= len(kb.Entries) {
		return []models.KBEntry{}
	}
	end := start + kb.PageSize
	if end > len(kb.Entries) {
		end = len(kb.Entries)
	}
	return kb.Entries[start:end]
}

// ToggleDeleteMode shows or hides the row checkboxes. Hiding clears the selection.
func (kb KnowledgeBase) ToggleDeleteMode() KnowledgeBase {
	kb.DeleteMode = !kb.DeleteMode
	if !kb.DeleteMode {
		kb.Selected = nil
	}
	return kb
}

// ToggleSelection adds or removes an entry id from the selection.
func (kb KnowledgeBase) ToggleSelection(id models.FlexString) KnowledgeBase {
	out := make([]models.FlexString, 0, len(kb.Selected)+1)
	found := false
	for _, s := range kb.Selected {
		if s == id {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, id)
	}
	kb.Selected = out
	return kb
}

// DeleteRequest returns the selected ids.
func (kb KnowledgeBase) DeleteRequest() ([]models.FlexString, error) {
	if len(kb.Selected) == 0 {
		return nil, Invalid("No entries selected.")
	}
	return append([]models.FlexString(nil), kb.Selected...), nil
}

// Deleted shows the reloaded archive on the page where the lowest deleted id
// used to be, and clears the selection.
func (kb KnowledgeBase) Deleted(deleted []models.FlexString, entries []models.KBEntry) KnowledgeBase {
	minID := 0
	for _, id := range deleted {
		if n, ok := id.Int(); ok && (minID == 0 || n < minID) {
			minID = n
		}
	}
	page := (minID + kb.PageSize - 1) / kb.PageSize

	kb.Load++
	kb.Entries = entries
	kb.ShowingSearch = false
	kb.Query = ""
	kb.Selected = nil
	kb.DeleteMode = false
	kb.Page = kb.clampPage(page)
	kb.Notice = "Entries deleted successfully!"
	return kb
}

func (kb KnowledgeBase) SetNotice(msg string) KnowledgeBase {
	kb.Notice = msg
	return kb
}

// ValidateSolutionUpload requires both an entry id and a file.
func ValidateSolutionUpload(entryID string, file []byte) error {
	if strings.TrimSpace(entryID) == "" || len(file) == 0 {
		return Invalid("Please enter an entry ID and select a file.")
	}
	return nil
}
