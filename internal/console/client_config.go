package console

import (
	"context"

	"advisory-console/internal/models"
	"advisory-console/internal/screens"
)

// OpenClientConfig opens the technology assignment modal for clientID. A failed
// assignment fetch opens the modal with no assignments.
func (s *Service) OpenClientConfig(ctx context.Context, sessionID string, clientID int) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	var (
		client     models.Client
		categories []models.Category
		found      bool
	)
	read(sess, func(sess *Session) {
		for _, c := range sess.advisory.Clients {
			if c.ID == clientID {
				client, found = c, true
				break
			}
		}
		categories = sess.advisory.Cascade.Categories
	})
	if !found {
		return s.fail("OpenClientConfig", screens.Invalid("Client %d not found.", clientID))
	}

	s.update(sess, func(sess *Session) {
		cc := screens.OpenClientConfig(client, categories)
		sess.config = &cc
	})

	assignments, fetchErr := s.backoffice.ClientTech(ctx, clientID)
	s.update(sess, func(sess *Session) {
		if sess.config == nil || sess.config.Client.ID != clientID {
			return
		}
		cc := sess.config.AssignmentsLoaded(assignments)
		sess.config = &cc
	})
	if fetchErr != nil {
		return s.fail("OpenClientConfig", fetchErr)
	}
	return nil
}

// CloseClientConfig dismisses the assignment modal.
func (s *Service) CloseClientConfig(sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	s.update(sess, func(sess *Session) {
		sess.config = nil
	})
	return nil
}

func (s *Service) openConfig(sess *Session) (screens.ClientConfig, error) {
	var (
		cc screens.ClientConfig
		ok bool
	)
	read(sess, func(sess *Session) {
		if sess.config != nil {
			cc, ok = *sess.config, true
		}
	})
	if !ok {
		return cc, screens.Invalid("No client configuration is open.")
	}
	return cc, nil
}

// setConfigNotice shows msg in the modal if it still belongs to clientID.
func (s *Service) setConfigNotice(sess *Session, clientID int, msg string) {
	s.update(sess, func(sess *Session) {
		if sess.config != nil && sess.config.Client.ID == clientID {
			cc := sess.config.SetNotice(msg)
			sess.config = &cc
		}
	})
}

func (s *Service) refreshAssignments(ctx context.Context, sess *Session, clientID int) error {
	assignments, err := s.backoffice.ClientTech(ctx, clientID)
	if err != nil {
		return err
	}
	s.update(sess, func(sess *Session) {
		if sess.config != nil && sess.config.Client.ID == clientID {
			cc := sess.config.AssignmentsLoaded(assignments)
			sess.config = &cc
		}
	})
	return nil
}

// AssignTech assigns the modal's current selection to the client.
func (s *Service) AssignTech(ctx context.Context, sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	cc, err := s.openConfig(sess)
	if err != nil {
		return s.fail("AssignTech", err)
	}
	req, err := cc.AssignRequest()
	if err != nil {
		s.setConfigNotice(sess, cc.Client.ID, err.Error())
		return s.fail("AssignTech", err)
	}
	if _, err := s.backoffice.AssignTech(ctx, cc.Client.ID, req); err != nil {
		s.setConfigNotice(sess, cc.Client.ID, err.Error())
		return s.fail("AssignTech", err)
	}
	s.update(sess, func(sess *Session) {
		if sess.config != nil && sess.config.Client.ID == cc.Client.ID {
			next := sess.config.Assigned()
			sess.config = &next
		}
	})
	if err := s.refreshAssignments(ctx, sess, cc.Client.ID); err != nil {
		return s.fail("AssignTech", err)
	}
	return nil
}

// DeleteAssignment removes an assignment through the endpoint owning its scope.
func (s *Service) DeleteAssignment(ctx context.Context, sessionID string, assignmentID int) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	cc, err := s.openConfig(sess)
	if err != nil {
		return s.fail("DeleteAssignment", err)
	}
	scope, err := cc.DeleteScope(assignmentID)
	if err != nil {
		s.setConfigNotice(sess, cc.Client.ID, err.Error())
		return s.fail("DeleteAssignment", err)
	}
	if err := s.backoffice.DeleteAssignment(ctx, scope); err != nil {
		s.setConfigNotice(sess, cc.Client.ID, err.Error())
		return s.fail("DeleteAssignment", err)
	}
	s.setConfigNotice(sess, cc.Client.ID, "Assignment deleted successfully!")
	if err := s.refreshAssignments(ctx, sess, cc.Client.ID); err != nil {
		return s.fail("DeleteAssignment", err)
	}
	return nil
}

// AddAssignmentContact attaches a notification address to an assignment.
func (s *Service) AddAssignmentContact(ctx context.Context, sessionID string, assignmentID int, address string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	cc, err := s.openConfig(sess)
	if err != nil {
		return s.fail("AddAssignmentContact", err)
	}
	address, err = cc.ContactRequest(assignmentID, address)
	if err != nil {
		s.setConfigNotice(sess, cc.Client.ID, err.Error())
		return s.fail("AddAssignmentContact", err)
	}
	if err := s.backoffice.AddAssignmentContact(ctx, assignmentID, address); err != nil {
		s.setConfigNotice(sess, cc.Client.ID, err.Error())
		return s.fail("AddAssignmentContact", err)
	}
	s.setConfigNotice(sess, cc.Client.ID, "Contact added successfully!")
	if err := s.refreshAssignments(ctx, sess, cc.Client.ID); err != nil {
		return s.fail("AddAssignmentContact", err)
	}
	return nil
}
