package console

import (
	"context"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"advisory-console/internal/models"
	"advisory-console/internal/screens"
)

// LoadClients fetches the client roster.
func (s *Service) LoadClients(ctx context.Context, sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	clients, err := s.backoffice.ListClients(ctx)
	if err != nil {
		s.update(sess, func(sess *Session) {
			sess.advisory = sess.advisory.SetNotice(err.Error())
		})
		return s.fail("LoadClients", err)
	}
	s.update(sess, func(sess *Session) {
		sess.advisory = sess.advisory.ClientsLoaded(clients)
	})
	return nil
}

// CreateClient registers a new client and appends it to the roster.
func (s *Service) CreateClient(ctx context.Context, sessionID, name string) (models.Client, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return models.Client{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Client{}, s.fail("CreateClient", screens.Invalid("Client name is required"))
	}
	c, err := s.backoffice.CreateClient(ctx, name)
	if err != nil {
		return models.Client{}, s.fail("CreateClient", err)
	}
	s.update(sess, func(sess *Session) {
		sess.advisory = sess.advisory.ClientCreated(c)
	})
	return c, nil
}

// SearchClients filters the roster locally.
func (s *Service) SearchClients(sessionID, term string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	s.update(sess, func(sess *Session) {
		sess.advisory = sess.advisory.SearchClients(term)
	})
	return nil
}

// SelectClient scopes the advisory screen to clientID and loads its advisories,
// feed items and escalation contacts concurrently. Results that arrive after
// another client was selected are dropped.
func (s *Service) SelectClient(ctx context.Context, sessionID string, clientID int) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	var selection uint64
	s.update(sess, func(sess *Session) {
		sess.advisory = sess.advisory.SelectClient(clientID)
		selection = sess.advisory.Selection
	})
	if clientID == 0 {
		return nil
	}

	var (
		advisories []models.Advisory
		items      []models.RssItem
		matrix     models.EscalationMatrix
		errs       = make([]error, 3)
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		advisories, errs[0] = s.backoffice.ClientAdvisories(gctx, clientID)
		return nil
	})
	g.Go(func() error {
		items, errs[1] = s.backoffice.ClientFeedItems(gctx, clientID)
		return nil
	})
	g.Go(func() error {
		matrix, errs[2] = s.backoffice.EscalationMatrix(gctx, clientID)
		return nil
	})
	_ = g.Wait()

	var result *multierror.Error
	s.update(sess, func(sess *Session) {
		if errs[0] == nil {
			sess.advisory, _ = sess.advisory.AdvisoriesLoaded(selection, advisories)
		} else {
			result = multierror.Append(result, errs[0])
		}
		if errs[1] == nil {
			sess.advisory, _ = sess.advisory.FeedItemsLoaded(selection, items)
		} else {
			result = multierror.Append(result, errs[1])
		}
		if errs[2] == nil {
			sess.advisory, _ = sess.advisory.EscalationLoaded(selection, matrix)
		} else if sess.advisory.Selection == selection {
			sess.advisory = sess.advisory.SetEscalation(sess.advisory.Escalation.LoadFailed())
			result = multierror.Append(result, errs[2])
		}
	})
	if err := result.ErrorOrNil(); err != nil {
		return s.fail("SelectClient", err)
	}
	return nil
}

// refreshAdvisories refetches the listing of the currently selected client.
func (s *Service) refreshAdvisories(ctx context.Context, sess *Session) error {
	var (
		clientID  int
		selection uint64
	)
	read(sess, func(sess *Session) {
		clientID = sess.advisory.SelectedClientID
		selection = sess.advisory.Selection
	})
	if clientID == 0 {
		return nil
	}
	advisories, err := s.backoffice.ClientAdvisories(ctx, clientID)
	if err != nil {
		return err
	}
	s.update(sess, func(sess *Session) {
		sess.advisory, _ = sess.advisory.AdvisoriesLoaded(selection, advisories)
	})
	return nil
}
