package console

import (
	"context"

	"advisory-console/internal/models"
	"advisory-console/internal/render"
	"advisory-console/internal/screens"
	"advisory-console/pkg/email"
)

// DispatchOutcome reports both halves of a dispatch. The status change is not
// rolled back when the notification fails.
type DispatchOutcome struct {
	StatusUpdated   bool  `json:"status_updated"`
	NotificationErr error `json:"-"`
}

// Dispatch notices.
const (
	NoticeDispatched         = "Advisory dispatched successfully."
	NoticeNotificationFailed = "Advisory marked as Sent, but the notification failed: "
)

// SetForm replaces the authoring form contents.
func (s *Service) SetForm(sessionID string, form screens.AdvisoryForm) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	s.update(sess, func(sess *Session) {
		sess.advisory = sess.advisory.SetForm(form)
	})
	return nil
}

func (s *Service) SelectTab(sessionID string, tab screens.Tab) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	switch tab {
	case screens.TabAdvisories, screens.TabCreate, screens.TabFeeds:
	default:
		return s.fail("SelectTab", screens.Invalid("Unknown tab: %s", tab))
	}
	s.update(sess, func(sess *Session) {
		sess.advisory = sess.advisory.SelectTab(tab)
	})
	return nil
}

// SubmitAdvisory creates a bulk advisory from the authoring form. The server
// fans it out to every matching client; its message is shown verbatim.
func (s *Service) SubmitAdvisory(ctx context.Context, sessionID string) (string, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return "", err
	}
	var (
		draft models.AdvisoryDraft
		vErr  error
	)
	read(sess, func(sess *Session) {
		if !sess.advisory.Capabilities.BulkDispatch {
			vErr = screens.Invalid("Bulk advisory creation is disabled.")
			return
		}
		draft, vErr = sess.advisory.Form.Draft()
	})
	if vErr != nil {
		s.update(sess, func(sess *Session) {
			sess.advisory = sess.advisory.SetNotice(vErr.Error())
		})
		return "", s.fail("SubmitAdvisory", vErr)
	}

	resp, err := s.backoffice.CreateBulkAdvisory(ctx, draft)
	if err != nil {
		s.update(sess, func(sess *Session) {
			sess.advisory = sess.advisory.SetNotice(err.Error())
		})
		return "", s.fail("SubmitAdvisory", err)
	}
	s.update(sess, func(sess *Session) {
		sess.advisory = sess.advisory.FormSubmitted(resp.Message)
	})
	if err := s.refreshAdvisories(ctx, sess); err != nil {
		s.logger.Warnf("Failed to refresh advisories after submit: %v", err)
	}
	return resp.Message, nil
}

// DeleteAdvisory removes an advisory and refetches the listing.
func (s *Service) DeleteAdvisory(ctx context.Context, sessionID string, advisoryID int) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	if err := s.backoffice.DeleteAdvisory(ctx, advisoryID); err != nil {
		s.update(sess, func(sess *Session) {
			sess.advisory = sess.advisory.SetNotice(err.Error())
		})
		return s.fail("DeleteAdvisory", err)
	}
	s.update(sess, func(sess *Session) {
		if sess.editor != nil && sess.editor.Original.ID == advisoryID {
			sess.editor = nil
		}
		sess.advisory = sess.advisory.SetNotice("Advisory deleted successfully.")
	})
	if err := s.refreshAdvisories(ctx, sess); err != nil {
		return s.fail("DeleteAdvisory", err)
	}
	return nil
}

// OpenEditor opens the review modal for a listed advisory.
func (s *Service) OpenEditor(sessionID string, advisoryID int) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	var opErr error
	s.update(sess, func(sess *Session) {
		a, ok := sess.advisory.FindAdvisory(advisoryID)
		if !ok {
			opErr = screens.Invalid("Advisory %d not found.", advisoryID)
			return
		}
		e := screens.OpenEditor(a)
		sess.editor = &e
	})
	if opErr != nil {
		return s.fail("OpenEditor", opErr)
	}
	return nil
}

// editorOp applies a transition to the open editor.
func (s *Service) editorOp(sessionID, op string, fn func(screens.Editor) (screens.Editor, error)) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	var opErr error
	s.update(sess, func(sess *Session) {
		if sess.editor == nil {
			opErr = screens.Invalid("No advisory is open.")
			return
		}
		var e screens.Editor
		if e, opErr = fn(*sess.editor); opErr == nil {
			sess.editor = &e
		}
	})
	if opErr != nil {
		return s.fail(op, opErr)
	}
	return nil
}

func (s *Service) Edit(sessionID string) error {
	return s.editorOp(sessionID, "Edit", screens.Editor.Edit)
}

func (s *Service) SetField(sessionID, field, value string) error {
	return s.editorOp(sessionID, "SetField", func(e screens.Editor) (screens.Editor, error) {
		return e.SetField(field, value)
	})
}

func (s *Service) Cancel(sessionID string) error {
	return s.editorOp(sessionID, "Cancel", func(e screens.Editor) (screens.Editor, error) {
		return e.Cancel(), nil
	})
}

// CloseEditor dismisses the modal, discarding unsaved edits.
func (s *Service) CloseEditor(sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	s.update(sess, func(sess *Session) {
		sess.editor = nil
	})
	return nil
}

// openEditor returns a copy of the open editor.
func (s *Service) openEditor(sess *Session) (screens.Editor, error) {
	var (
		e  screens.Editor
		ok bool
	)
	read(sess, func(sess *Session) {
		if sess.editor != nil {
			e, ok = *sess.editor, true
		}
	})
	if !ok {
		return e, screens.Invalid("No advisory is open.")
	}
	return e, nil
}

// SaveDraft persists local edits with the status unchanged. The editor stays in editing mode.
func (s *Service) SaveDraft(ctx context.Context, sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	e, err := s.openEditor(sess)
	if err != nil {
		return s.fail("SaveDraft", err)
	}
	update, err := e.SaveRequest()
	if err != nil {
		return s.fail("SaveDraft", err)
	}
	if err := s.backoffice.UpdateAdvisory(ctx, e.Original.ID, update); err != nil {
		s.update(sess, func(sess *Session) {
			sess.advisory = sess.advisory.SetNotice(err.Error())
		})
		return s.fail("SaveDraft", err)
	}
	s.update(sess, func(sess *Session) {
		if sess.editor != nil && sess.editor.Original.ID == e.Original.ID {
			saved := sess.editor.Saved()
			sess.editor = &saved
			sess.advisory = sess.advisory.AdvisoryUpdated(saved.Original)
		}
		sess.advisory = sess.advisory.SetNotice("Advisory saved as draft.")
	})
	return nil
}

// Dispatch marks the open advisory Sent and then asks the back office to send
// the standard notification. A notification failure leaves the advisory Sent and
// is reported in the outcome.
func (s *Service) Dispatch(ctx context.Context, sessionID string) (DispatchOutcome, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return DispatchOutcome{}, err
	}
	e, err := s.openEditor(sess)
	if err != nil {
		return DispatchOutcome{}, s.fail("Dispatch", err)
	}
	update, err := e.DispatchRequest()
	if err != nil {
		return DispatchOutcome{}, s.fail("Dispatch", err)
	}
	if err := s.backoffice.UpdateAdvisory(ctx, e.Original.ID, update); err != nil {
		s.update(sess, func(sess *Session) {
			sess.advisory = sess.advisory.SetNotice(err.Error())
		})
		return DispatchOutcome{}, s.fail("Dispatch", err)
	}

	var notification models.DispatchRequest
	s.update(sess, func(sess *Session) {
		sent := e.Sent()
		if sess.editor != nil && sess.editor.Original.ID == e.Original.ID {
			sent = sess.editor.Sent()
			sess.editor = &sent
		}
		sess.advisory = sess.advisory.AdvisoryUpdated(sent.Original)
		notification = sent.SetEmailOptions(email.Standard, "").EmailRequest()
	})

	outcome := DispatchOutcome{StatusUpdated: true}
	if _, err := s.backoffice.DispatchAdvisory(ctx, notification, ""); err != nil {
		outcome.NotificationErr = err
		s.logger.Errorf("Advisory %d marked Sent but notification failed: %v", e.Original.ID, err)
		s.update(sess, func(sess *Session) {
			sess.advisory = sess.advisory.SetNotice(NoticeNotificationFailed + err.Error())
		})
		return outcome, nil
	}
	s.update(sess, func(sess *Session) {
		sess.advisory = sess.advisory.SetNotice(NoticeDispatched)
	})
	return outcome, nil
}

// SetEmailOptions picks the template and subject for the open advisory and refreshes the preview.
func (s *Service) SetEmailOptions(sessionID, template, customSubject string) error {
	tmpl := email.ParseTemplate(template)
	return s.editorOp(sessionID, "SetEmailOptions", func(e screens.Editor) (screens.Editor, error) {
		return e.SetEmailOptions(tmpl, customSubject), nil
	})
}

// LoadRecipients fetches who the open advisory would be sent to. A failure
// shows a single error entry instead of the list.
func (s *Service) LoadRecipients(ctx context.Context, sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	e, err := s.openEditor(sess)
	if err != nil {
		return s.fail("LoadRecipients", err)
	}
	recipients, fetchErr := s.backoffice.Recipients(ctx, e.Original.ID)
	s.update(sess, func(sess *Session) {
		if sess.editor == nil || sess.editor.Original.ID != e.Original.ID {
			return
		}
		var next screens.Editor
		if fetchErr != nil {
			next = sess.editor.RecipientsFailed()
		} else {
			next = sess.editor.RecipientsLoaded(recipients)
		}
		sess.editor = &next
	})
	if fetchErr != nil {
		return s.fail("LoadRecipients", fetchErr)
	}
	return nil
}

// SendEmail sends the notification for the open advisory using the chosen template.
func (s *Service) SendEmail(ctx context.Context, sessionID string) (string, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return "", err
	}
	e, err := s.openEditor(sess)
	if err != nil {
		return "", s.fail("SendEmail", err)
	}
	resp, err := s.backoffice.DispatchAdvisory(ctx, e.EmailRequest(), "")
	if err != nil {
		s.update(sess, func(sess *Session) {
			sess.advisory = sess.advisory.SetNotice(err.Error())
		})
		return "", s.fail("SendEmail", err)
	}
	msg := resp.Message
	if msg == "" {
		msg = "Email sent successfully."
	}
	s.update(sess, func(sess *Session) {
		sess.advisory = sess.advisory.SetNotice(msg)
	})
	return msg, nil
}

// FormattedView renders a listed advisory as the structured document view.
func (s *Service) FormattedView(sessionID string, advisoryID int) (render.FormattedAdvisory, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return render.FormattedAdvisory{}, err
	}
	var (
		a  models.Advisory
		ok bool
	)
	read(sess, func(sess *Session) {
		a, ok = sess.advisory.FindAdvisory(advisoryID)
	})
	if !ok {
		return render.FormattedAdvisory{}, s.fail("FormattedView", screens.Invalid("Advisory %d not found.", advisoryID))
	}
	return render.Format(a), nil
}
