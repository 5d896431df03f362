package console

import (
	"context"

	"advisory-console/internal/screens"
)

func (s *Service) setFeeds(sess *Session, fn func(screens.FeedManager) screens.FeedManager) {
	s.update(sess, func(sess *Session) {
		sess.advisory = sess.advisory.SetFeeds(fn(sess.advisory.Feeds))
	})
}

func (s *Service) refreshFeeds(ctx context.Context, sess *Session, techStackID int) error {
	feeds, err := s.backoffice.ListFeeds(ctx, techStackID)
	if err != nil {
		return err
	}
	s.setFeeds(sess, func(f screens.FeedManager) screens.FeedManager {
		return f.FeedsLoaded(techStackID, feeds)
	})
	return nil
}

// SelectFeedScope switches the feed manager to techStackID and loads its subscriptions.
func (s *Service) SelectFeedScope(ctx context.Context, sessionID string, techStackID int) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	s.setFeeds(sess, func(f screens.FeedManager) screens.FeedManager {
		return f.SelectScope(techStackID)
	})
	if techStackID == 0 {
		return nil
	}
	if err := s.refreshFeeds(ctx, sess, techStackID); err != nil {
		s.setFeeds(sess, func(f screens.FeedManager) screens.FeedManager {
			return f.SetNotice(err.Error())
		})
		return s.fail("SelectFeedScope", err)
	}
	return nil
}

// AddFeed subscribes the current tech stack to url.
func (s *Service) AddFeed(ctx context.Context, sessionID, url string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	var feeds screens.FeedManager
	read(sess, func(sess *Session) {
		feeds = sess.advisory.Feeds
	})
	req, err := feeds.AddRequest(url)
	if err != nil {
		s.setFeeds(sess, func(f screens.FeedManager) screens.FeedManager { return f.SetNotice(err.Error()) })
		return s.fail("AddFeed", err)
	}
	if _, err := s.backoffice.AddFeed(ctx, req); err != nil {
		s.setFeeds(sess, func(f screens.FeedManager) screens.FeedManager { return f.SetNotice(err.Error()) })
		return s.fail("AddFeed", err)
	}
	s.setFeeds(sess, func(f screens.FeedManager) screens.FeedManager {
		return f.SetNotice("RSS feed added successfully!")
	})
	if err := s.refreshFeeds(ctx, sess, req.TechStackID); err != nil {
		return s.fail("AddFeed", err)
	}
	return nil
}

func (s *Service) ToggleFeedDeleteMode(sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	s.setFeeds(sess, screens.FeedManager.ToggleDeleteMode)
	return nil
}

// ToggleFeedSelection adds or removes url from the pending-delete set.
func (s *Service) ToggleFeedSelection(sessionID, url string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	var opErr error
	s.update(sess, func(sess *Session) {
		var f screens.FeedManager
		if f, opErr = sess.advisory.Feeds.ToggleSelection(url); opErr == nil {
			sess.advisory = sess.advisory.SetFeeds(f)
		}
	})
	if opErr != nil {
		return s.fail("ToggleFeedSelection", opErr)
	}
	return nil
}

// DeleteSelectedFeeds removes every pending URL with a single request.
func (s *Service) DeleteSelectedFeeds(ctx context.Context, sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	var feeds screens.FeedManager
	read(sess, func(sess *Session) {
		feeds = sess.advisory.Feeds
	})
	req, err := feeds.DeleteRequest()
	if err != nil {
		s.setFeeds(sess, func(f screens.FeedManager) screens.FeedManager { return f.SetNotice(err.Error()) })
		return s.fail("DeleteSelectedFeeds", err)
	}
	resp, err := s.backoffice.DeleteFeeds(ctx, req)
	if err != nil {
		s.setFeeds(sess, func(f screens.FeedManager) screens.FeedManager { return f.SetNotice(err.Error()) })
		return s.fail("DeleteSelectedFeeds", err)
	}
	msg := resp.Message
	if msg == "" {
		msg = "Selected feeds deleted successfully!"
	}
	s.setFeeds(sess, func(f screens.FeedManager) screens.FeedManager {
		if f.TechStackID != req.TechStackID {
			return f
		}
		return f.Deleted(msg)
	})
	if err := s.refreshFeeds(ctx, sess, req.TechStackID); err != nil {
		return s.fail("DeleteSelectedFeeds", err)
	}
	return nil
}
