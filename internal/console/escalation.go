package console

import (
	"context"

	"advisory-console/internal/models"
)

// refreshEscalation refetches the contacts of clientID. The result is dropped
// unless selection is still current and clientID is still the registry's client.
func (s *Service) refreshEscalation(ctx context.Context, sess *Session, clientID int, selection uint64) {
	m, err := s.backoffice.EscalationMatrix(ctx, clientID)
	if err != nil {
		s.logger.Warnf("Failed to refresh escalation contacts for client %d: %v", clientID, err)
	}
	s.update(sess, func(sess *Session) {
		if sess.advisory.Selection != selection || sess.advisory.Escalation.ClientID != clientID {
			return
		}
		if err != nil {
			sess.advisory = sess.advisory.SetEscalation(sess.advisory.Escalation.LoadFailed())
			return
		}
		sess.advisory, _ = sess.advisory.EscalationLoaded(selection, m)
	})
}

// AddEscalationContact registers an address at level for the selected client.
func (s *Service) AddEscalationContact(ctx context.Context, sessionID, address, level string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	var (
		req       models.EscalationContactRequest
		clientID  int
		selection uint64
		vErr      error
	)
	read(sess, func(sess *Session) {
		clientID = sess.advisory.Escalation.ClientID
		selection = sess.advisory.Selection
		req, vErr = sess.advisory.Escalation.ContactRequest(address, level)
	})
	if vErr != nil {
		s.update(sess, func(sess *Session) {
			sess.advisory = sess.advisory.SetNotice(vErr.Error())
		})
		return s.fail("AddEscalationContact", vErr)
	}
	if err := s.backoffice.AddEscalationContact(ctx, clientID, req); err != nil {
		s.update(sess, func(sess *Session) {
			sess.advisory = sess.advisory.SetNotice(err.Error())
		})
		return s.fail("AddEscalationContact", err)
	}
	s.refreshEscalation(ctx, sess, clientID, selection)
	return nil
}

// DeleteEscalationContact removes a contact and refetches the matrix.
func (s *Service) DeleteEscalationContact(ctx context.Context, sessionID string, contactID int) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	var (
		clientID  int
		selection uint64
	)
	read(sess, func(sess *Session) {
		clientID = sess.advisory.Escalation.ClientID
		selection = sess.advisory.Selection
	})
	if err := s.backoffice.DeleteEscalationContact(ctx, contactID); err != nil {
		s.update(sess, func(sess *Session) {
			sess.advisory = sess.advisory.SetNotice(err.Error())
		})
		return s.fail("DeleteEscalationContact", err)
	}
	if clientID != 0 {
		s.refreshEscalation(ctx, sess, clientID, selection)
	}
	return nil
}
