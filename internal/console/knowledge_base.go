package console

import (
	"context"
	"strings"

	"advisory-console/internal/backoffice"
	"advisory-console/internal/models"
	"advisory-console/internal/screens"
)

func (s *Service) setKB(sess *Session, fn func(screens.KnowledgeBase) screens.KnowledgeBase) {
	s.update(sess, func(sess *Session) {
		sess.kb = fn(sess.kb)
	})
}

func (s *Service) kbNotice(sess *Session, msg string) {
	s.setKB(sess, func(kb screens.KnowledgeBase) screens.KnowledgeBase { return kb.SetNotice(msg) })
}

// SearchKB searches the archive. An empty query shows every entry and bypasses
// the cache; other results are cached for the life of the session.
func (s *Service) SearchKB(ctx context.Context, sessionID, query string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(query) == "" {
		return s.loadKB(ctx, sess)
	}

	var (
		cached []models.KBEntry
		hit    bool
	)
	read(sess, func(sess *Session) {
		cached, hit = sess.kbCache.Get(query)
	})
	if hit {
		s.logger.Debugf("Knowledge base cache hit for %q", screens.CacheKey(query))
		s.setKB(sess, func(kb screens.KnowledgeBase) screens.KnowledgeBase {
			kb, _ = kb.StartLoad()
			return kb.SearchResults(query, cached)
		})
		return nil
	}

	var load uint64
	s.update(sess, func(sess *Session) {
		sess.kb, load = sess.kb.StartLoad()
	})
	entries, err := s.backoffice.SearchKB(ctx, query)
	if err != nil {
		s.kbNotice(sess, err.Error())
		return s.fail("SearchKB", err)
	}
	s.update(sess, func(sess *Session) {
		sess.kbCache.Put(query, entries)
		var applied bool
		if sess.kb, applied = sess.kb.SearchLoaded(load, query, entries); !applied {
			s.logger.Debugf("Dropped stale knowledge base results for %q", screens.CacheKey(query))
		}
	})
	return nil
}

func (s *Service) loadKB(ctx context.Context, sess *Session) error {
	var load uint64
	s.update(sess, func(sess *Session) {
		sess.kb, load = sess.kb.StartLoad()
	})
	entries, err := s.backoffice.SearchKB(ctx, "")
	if err != nil {
		s.kbNotice(sess, err.Error())
		return s.fail("LoadKB", err)
	}
	s.setKB(sess, func(kb screens.KnowledgeBase) screens.KnowledgeBase {
		kb, _ = kb.ArchiveLoaded(load, entries)
		return kb
	})
	return nil
}

// KBGoBack leaves search results and reloads the full archive.
func (s *Service) KBGoBack(ctx context.Context, sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	s.setKB(sess, screens.KnowledgeBase.GoBack)
	return s.loadKB(ctx, sess)
}

func (s *Service) SetKBPage(sessionID string, page int) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	s.setKB(sess, func(kb screens.KnowledgeBase) screens.KnowledgeBase { return kb.SetPage(page) })
	return nil
}

func (s *Service) ToggleKBDeleteMode(sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	s.setKB(sess, screens.KnowledgeBase.ToggleDeleteMode)
	return nil
}

func (s *Service) ToggleKBSelection(sessionID string, id models.FlexString) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	s.setKB(sess, func(kb screens.KnowledgeBase) screens.KnowledgeBase { return kb.ToggleSelection(id) })
	return nil
}

// DeleteKBEntries deletes the selected entries, reloads the archive and jumps
// to the page the lowest deleted id was on.
func (s *Service) DeleteKBEntries(ctx context.Context, sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	var kb screens.KnowledgeBase
	read(sess, func(sess *Session) {
		kb = sess.kb
	})
	ids, err := kb.DeleteRequest()
	if err != nil {
		s.kbNotice(sess, err.Error())
		return s.fail("DeleteKBEntries", err)
	}
	if _, err := s.backoffice.DeleteKBEntries(ctx, ids); err != nil {
		s.kbNotice(sess, err.Error())
		return s.fail("DeleteKBEntries", err)
	}
	entries, err := s.backoffice.SearchKB(ctx, "")
	if err != nil {
		s.kbNotice(sess, err.Error())
		return s.fail("DeleteKBEntries", err)
	}
	s.update(sess, func(sess *Session) {
		sess.kb = sess.kb.Deleted(ids, entries)
		// Cached results may still list the deleted rows.
		sess.kbCache = screens.NewSearchCache()
	})
	return nil
}

// AddKBEntry archives a new ticket and reloads the archive.
func (s *Service) AddKBEntry(ctx context.Context, sessionID string, entry models.KBEntry) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(entry.Title) == "" {
		err := screens.Invalid("Please enter a title.")
		s.kbNotice(sess, err.Error())
		return s.fail("AddKBEntry", err)
	}
	resp, err := s.backoffice.AddKBEntry(ctx, entry)
	if err != nil {
		s.kbNotice(sess, err.Error())
		return s.fail("AddKBEntry", err)
	}
	if err := s.loadKB(ctx, sess); err != nil {
		return err
	}
	msg := resp.Message
	if msg == "" {
		msg = "Entry added successfully!"
	}
	s.kbNotice(sess, msg)
	return nil
}

// ImportKB uploads a spreadsheet of tickets and reloads the archive.
func (s *Service) ImportKB(ctx context.Context, sessionID string, file backoffice.Upload) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	if len(file.Data) == 0 {
		err := screens.Invalid("Please select a file to import.")
		s.kbNotice(sess, err.Error())
		return s.fail("ImportKB", err)
	}
	if _, err := s.backoffice.ImportKB(ctx, file); err != nil {
		s.kbNotice(sess, err.Error())
		return s.fail("ImportKB", err)
	}
	s.update(sess, func(sess *Session) {
		sess.kbCache = screens.NewSearchCache()
	})
	if err := s.loadKB(ctx, sess); err != nil {
		return err
	}
	s.kbNotice(sess, "Import successful!")
	return nil
}

// UploadSolution attaches a solution document to an entry.
func (s *Service) UploadSolution(ctx context.Context, sessionID, entryID string, file backoffice.Upload) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	if err := screens.ValidateSolutionUpload(entryID, file.Data); err != nil {
		s.kbNotice(sess, err.Error())
		return s.fail("UploadSolution", err)
	}
	resp, err := s.backoffice.UploadSolution(ctx, strings.TrimSpace(entryID), file)
	if err != nil {
		s.kbNotice(sess, err.Error())
		return s.fail("UploadSolution", err)
	}
	msg := resp.Message
	if msg == "" {
		msg = "Solution uploaded successfully!"
	}
	s.kbNotice(sess, msg)
	return nil
}
