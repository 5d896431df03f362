package console

import (
	"sync"

	"advisory-console/internal/models"
	"advisory-console/internal/render"
	"advisory-console/internal/screens"
)

// Session is one operator's console state. Screen fields are guarded by mu and
// only replaced through screen transitions.
type Session struct {
	ID string
	// IsAdmin only toggles admin affordances in the front end. It is not an access control.
	IsAdmin bool

	mu       sync.Mutex
	advisory screens.AdvisoryScreen
	editor   *screens.Editor
	config   *screens.ClientConfig
	kb       screens.KnowledgeBase
	kbCache  *screens.SearchCache
	runbook  screens.Runbook

	// version counts transitions and stamps every snapshot.
	version uint64

	// pubMu orders publishing. published is the newest version sent.
	pubMu     sync.Mutex
	published uint64
}

func newSession(id string, isAdmin bool, caps screens.Capabilities, kbPageSize int) *Session {
	return &Session{
		ID:       id,
		IsAdmin:  isAdmin,
		advisory: screens.NewAdvisoryScreen(caps),
		kb:       screens.NewKnowledgeBase(kbPageSize),
		kbCache:  screens.NewSearchCache(),
		runbook:  screens.NewRunbook(),
	}
}

// Snapshot is the serializable view of a session pushed to the front end.
type Snapshot struct {
	SessionID        string                 `json:"session_id"`
	Version          uint64                 `json:"version"`
	IsAdmin          bool                   `json:"is_admin"`
	Advisory         screens.AdvisoryScreen `json:"advisory"`
	VisibleClients   []models.Client        `json:"visible_clients"`
	Cards            []render.Card          `json:"cards"`
	Editor           *screens.Editor        `json:"editor,omitempty"`
	ClientConfig     *screens.ClientConfig  `json:"client_config,omitempty"`
	KnowledgeBase    screens.KnowledgeBase  `json:"knowledge_base"`
	KBPage           []models.KBEntry       `json:"kb_page"`
	Runbook          screens.Runbook        `json:"runbook"`
	VisibleCustomers []models.Customer      `json:"visible_customers"`
}

// snapshot must be called with mu held.
func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		SessionID:        s.ID,
		Version:          s.version,
		IsAdmin:          s.IsAdmin,
		Advisory:         s.advisory,
		VisibleClients:   s.advisory.VisibleClients(),
		Cards:            render.Cards(s.advisory.Advisories),
		KnowledgeBase:    s.kb,
		KBPage:           s.kb.PageEntries(),
		Runbook:          s.runbook,
		VisibleCustomers: s.runbook.VisibleCustomers(),
	}
	if s.editor != nil {
		e := *s.editor
		snap.Editor = &e
	}
	if s.config != nil {
		cc := *s.config
		snap.ClientConfig = &cc
	}
	return snap
}
