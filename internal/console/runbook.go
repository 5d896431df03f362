package console

import (
	"context"

	"advisory-console/internal/backoffice"
	"advisory-console/internal/models"
	"advisory-console/internal/screens"
)

func (s *Service) setRunbook(sess *Session, fn func(screens.Runbook) screens.Runbook) {
	s.update(sess, func(sess *Session) {
		sess.runbook = fn(sess.runbook)
	})
}

func (s *Service) runbookNotice(sess *Session, msg string) {
	s.setRunbook(sess, func(r screens.Runbook) screens.Runbook { return r.SetNotice(msg) })
}

// LoadCustomers fetches the runbook roster.
func (s *Service) LoadCustomers(ctx context.Context, sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	customers, err := s.backoffice.ListCustomers(ctx)
	if err != nil {
		s.runbookNotice(sess, err.Error())
		return s.fail("LoadCustomers", err)
	}
	s.setRunbook(sess, func(r screens.Runbook) screens.Runbook { return r.CustomersLoaded(customers) })
	return nil
}

func (s *Service) FilterCustomers(sessionID, search, os string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	s.setRunbook(sess, func(r screens.Runbook) screens.Runbook { return r.Filter(search, os) })
	return nil
}

// SelectRunbookClient opens a client's runbook on the assets tab.
func (s *Service) SelectRunbookClient(ctx context.Context, sessionID string, clientID int) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	s.setRunbook(sess, func(r screens.Runbook) screens.Runbook { return r.SelectClient(clientID) })
	if clientID == 0 {
		return nil
	}
	return s.loadRunbookTab(ctx, sess, clientID, screens.TabAssets)
}

// SelectRunbookTab switches pane and loads its rows.
func (s *Service) SelectRunbookTab(ctx context.Context, sessionID, tab string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	t, err := screens.ParseRunbookTab(tab)
	if err != nil {
		return s.fail("SelectRunbookTab", err)
	}
	var clientID int
	s.update(sess, func(sess *Session) {
		sess.runbook = sess.runbook.SelectTab(t)
		clientID = sess.runbook.ClientID
	})
	if clientID == 0 {
		return nil
	}
	return s.loadRunbookTab(ctx, sess, clientID, t)
}

// loadRunbookTab fetches the rows of one pane. Results for a client that is no
// longer open are dropped.
func (s *Service) loadRunbookTab(ctx context.Context, sess *Session, clientID int, tab screens.RunbookTab) error {
	var apply func(screens.Runbook) screens.Runbook
	switch tab {
	case screens.TabAssets:
		rows, err := s.backoffice.ListAssets(ctx, clientID)
		if err != nil {
			return s.runbookLoadFailed(sess, err)
		}
		apply = func(r screens.Runbook) screens.Runbook { return r.AssetsLoaded(rows) }
	case screens.TabSLA:
		rows, err := s.backoffice.ListSLAPolicies(ctx, clientID)
		if err != nil {
			return s.runbookLoadFailed(sess, err)
		}
		apply = func(r screens.Runbook) screens.Runbook { return r.SLAsLoaded(rows) }
	case screens.TabPasswords:
		rows, err := s.backoffice.ListPasswords(ctx, clientID)
		if err != nil {
			return s.runbookLoadFailed(sess, err)
		}
		apply = func(r screens.Runbook) screens.Runbook { return r.PasswordsLoaded(rows) }
	case screens.TabEscalation:
		rows, err := s.backoffice.ListEscalationEntries(ctx, clientID)
		if err != nil {
			return s.runbookLoadFailed(sess, err)
		}
		apply = func(r screens.Runbook) screens.Runbook { return r.EscalationLoaded(rows) }
	case screens.TabDocuments:
		doc, err := s.backoffice.ClientPDF(ctx, clientID)
		if err != nil {
			if !backoffice.IsAPIError(err) {
				return s.runbookLoadFailed(sess, err)
			}
			// No document stored for this client.
			doc = models.ClientDocument{}
		}
		apply = func(r screens.Runbook) screens.Runbook { return r.DocumentLoaded(doc) }
	}

	s.setRunbook(sess, func(r screens.Runbook) screens.Runbook {
		if r.ClientID != clientID {
			return r
		}
		return apply(r)
	})
	return nil
}

func (s *Service) runbookLoadFailed(sess *Session, err error) error {
	s.runbookNotice(sess, err.Error())
	return s.fail("LoadRunbookTab", err)
}

// addRunbookRow validates with build, posts with post and reloads tab.
func (s *Service) addRunbookRow(ctx context.Context, sessionID, op string, tab screens.RunbookTab, build func(screens.Runbook) error, post func() error) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	var (
		clientID int
		vErr     error
	)
	read(sess, func(sess *Session) {
		clientID = sess.runbook.ClientID
		vErr = build(sess.runbook)
	})
	if vErr != nil {
		s.runbookNotice(sess, vErr.Error())
		return s.fail(op, vErr)
	}
	if err := post(); err != nil {
		s.runbookNotice(sess, err.Error())
		return s.fail(op, err)
	}
	s.runbookNotice(sess, "Saved successfully!")
	return s.loadRunbookTab(ctx, sess, clientID, tab)
}

func (s *Service) AddAsset(ctx context.Context, sessionID string, a models.Asset) error {
	return s.addRunbookRow(ctx, sessionID, "AddAsset", screens.TabAssets,
		func(r screens.Runbook) (err error) {
			a, err = r.AssetRequest(a)
			return err
		},
		func() error { return s.backoffice.AddAsset(ctx, a) })
}

func (s *Service) AddSLAPolicy(ctx context.Context, sessionID string, p models.SLAPolicy) error {
	return s.addRunbookRow(ctx, sessionID, "AddSLAPolicy", screens.TabSLA,
		func(r screens.Runbook) (err error) {
			p, err = r.SLARequest(p)
			return err
		},
		func() error { return s.backoffice.AddSLAPolicy(ctx, p) })
}

func (s *Service) AddPassword(ctx context.Context, sessionID string, p models.PasswordRecord) error {
	return s.addRunbookRow(ctx, sessionID, "AddPassword", screens.TabPasswords,
		func(r screens.Runbook) (err error) {
			p, err = r.PasswordRequest(p)
			return err
		},
		func() error { return s.backoffice.AddPassword(ctx, p) })
}

func (s *Service) AddEscalationEntry(ctx context.Context, sessionID string, e models.EscalationMatrixEntry) error {
	return s.addRunbookRow(ctx, sessionID, "AddEscalationEntry", screens.TabEscalation,
		func(r screens.Runbook) (err error) {
			e, err = r.EscalationRequest(e)
			return err
		},
		func() error { return s.backoffice.AddEscalationEntry(ctx, e) })
}

// UploadClientPDF stores the runbook document of the open client.
func (s *Service) UploadClientPDF(ctx context.Context, sessionID string, file backoffice.Upload) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	var (
		clientID int
		vErr     error
	)
	read(sess, func(sess *Session) {
		clientID = sess.runbook.ClientID
		vErr = sess.runbook.DocumentRequest(file.Data)
	})
	if vErr != nil {
		s.runbookNotice(sess, vErr.Error())
		return s.fail("UploadClientPDF", vErr)
	}
	doc, err := s.backoffice.UploadClientPDF(ctx, clientID, file)
	if err != nil {
		s.runbookNotice(sess, err.Error())
		return s.fail("UploadClientPDF", err)
	}
	if doc.FileName == "" {
		doc.FileName = file.FileName
	}
	s.setRunbook(sess, func(r screens.Runbook) screens.Runbook {
		if r.ClientID != clientID {
			return r
		}
		return r.DocumentLoaded(doc).SetNotice("PDF uploaded successfully!")
	})
	return nil
}

// DeleteClientPDF removes the runbook document of the open client.
func (s *Service) DeleteClientPDF(ctx context.Context, sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	var clientID int
	read(sess, func(sess *Session) {
		clientID = sess.runbook.ClientID
	})
	if clientID == 0 {
		err := screens.Invalid("Please select a client first.")
		s.runbookNotice(sess, err.Error())
		return s.fail("DeleteClientPDF", err)
	}
	if err := s.backoffice.DeleteClientPDF(ctx, clientID); err != nil {
		s.runbookNotice(sess, err.Error())
		return s.fail("DeleteClientPDF", err)
	}
	s.setRunbook(sess, func(r screens.Runbook) screens.Runbook {
		if r.ClientID != clientID {
			return r
		}
		return r.DocumentLoaded(models.ClientDocument{}).SetNotice("PDF deleted successfully!")
	})
	return nil
}
