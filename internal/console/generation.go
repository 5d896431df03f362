package console

import (
	"context"

	"advisory-console/internal/models"
	"advisory-console/internal/screens"
)

// GenerateFromFeedItem asks the back office to draft an advisory from a feed
// item and loads the result into the authoring form. Only one generation per
// item may be in flight.
func (s *Service) GenerateFromFeedItem(ctx context.Context, sessionID, itemID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	var (
		item   models.RssItem
		preErr error
	)
	s.update(sess, func(sess *Session) {
		if !sess.advisory.Capabilities.AIGeneration {
			preErr = screens.Invalid("AI generation is disabled.")
			return
		}
		if sess.advisory.IsGenerating(itemID) {
			preErr = ErrGenerationInFlight
			return
		}
		var ok bool
		if item, ok = sess.advisory.FindFeedItem(itemID); !ok {
			preErr = screens.Invalid("Feed item %s not found.", itemID)
			return
		}
		sess.advisory = sess.advisory.GenerationStarted(itemID)
	})
	if preErr != nil {
		return s.fail("GenerateFromFeedItem", preErr)
	}

	s.logger.Infof("Generating advisory from feed item %s (%s)", itemID, item.Title)
	generated, err := s.backoffice.GenerateAdvisory(ctx, models.GenerateRequest{
		Title:   item.Title,
		Summary: item.Summary,
	})
	s.update(sess, func(sess *Session) {
		if err != nil {
			sess.advisory = sess.advisory.GenerationFailed(itemID, err)
			return
		}
		sess.advisory = sess.advisory.GenerationSucceeded(itemID, generated)
	})
	if err != nil {
		return s.fail("GenerateFromFeedItem", err)
	}
	return nil
}
