package console

import (
	"context"

	"advisory-console/internal/screens"
)

// CascadeTarget names which cascading selection an operation drives.
type CascadeTarget string

const (
	// TargetForm is the advisory authoring form.
	TargetForm CascadeTarget = "form"
	// TargetConfig is the open client configuration modal.
	TargetConfig CascadeTarget = "config"
)

func ParseCascadeTarget(s string) (CascadeTarget, error) {
	switch CascadeTarget(s) {
	case TargetForm, TargetConfig:
		return CascadeTarget(s), nil
	}
	return "", screens.Invalid("Unknown selection target: %s", s)
}

// cascade returns the selection for target. Must be called with sess.mu held.
func (sess *Session) cascade(target CascadeTarget) (screens.Cascade, error) {
	if target == TargetConfig {
		if sess.config == nil {
			return screens.Cascade{}, screens.Invalid("No client configuration is open.")
		}
		return sess.config.Cascade, nil
	}
	return sess.advisory.Cascade, nil
}

// setCascade must be called with sess.mu held.
func (sess *Session) setCascade(target CascadeTarget, c screens.Cascade) {
	if target == TargetConfig {
		if sess.config != nil {
			cc := sess.config.SetCascade(c)
			sess.config = &cc
		}
		return
	}
	sess.advisory = sess.advisory.SetCascade(c)
}

// LoadCategories fetches the top level of the taxonomy into the authoring form.
func (s *Service) LoadCategories(ctx context.Context, sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	categories, err := s.backoffice.ListCategories(ctx)
	if err != nil {
		return s.fail("LoadCategories", err)
	}
	s.update(sess, func(sess *Session) {
		sess.advisory = sess.advisory.SetCascade(sess.advisory.Cascade.CategoriesLoaded(categories))
		if sess.config != nil {
			cc := sess.config.SetCascade(sess.config.Cascade.CategoriesLoaded(categories))
			sess.config = &cc
		}
	})
	return nil
}

// SelectCategory chooses a category and loads its subcategories.
func (s *Service) SelectCategory(ctx context.Context, sessionID string, target CascadeTarget, categoryID int) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	var selErr error
	s.update(sess, func(sess *Session) {
		var c screens.Cascade
		if c, selErr = sess.cascade(target); selErr == nil {
			sess.setCascade(target, c.SelectCategory(categoryID))
		}
	})
	if selErr != nil {
		return s.fail("SelectCategory", selErr)
	}
	if categoryID == 0 {
		return nil
	}

	subs, err := s.backoffice.ListSubcategories(ctx, categoryID)
	if err != nil {
		return s.fail("SelectCategory", err)
	}
	s.update(sess, func(sess *Session) {
		if c, err := sess.cascade(target); err == nil {
			sess.setCascade(target, c.SubcategoriesLoaded(categoryID, subs))
		}
	})
	return nil
}

// SelectSubcategory chooses a subcategory and loads its tech stacks.
func (s *Service) SelectSubcategory(ctx context.Context, sessionID string, target CascadeTarget, subcategoryID int) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	var selErr error
	s.update(sess, func(sess *Session) {
		var c screens.Cascade
		if c, selErr = sess.cascade(target); selErr == nil {
			sess.setCascade(target, c.SelectSubcategory(subcategoryID))
		}
	})
	if selErr != nil {
		return s.fail("SelectSubcategory", selErr)
	}
	if subcategoryID == 0 {
		return nil
	}

	stacks, err := s.backoffice.ListTechStacks(ctx, subcategoryID)
	if err != nil {
		return s.fail("SelectSubcategory", err)
	}
	s.update(sess, func(sess *Session) {
		if c, err := sess.cascade(target); err == nil {
			sess.setCascade(target, c.TechStacksLoaded(subcategoryID, stacks))
		}
	})
	return nil
}

// SelectTechStack chooses the leaf technology. On the authoring form this also
// sets the advisory's techStackId.
func (s *Service) SelectTechStack(sessionID string, target CascadeTarget, techStackID int) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	var selErr error
	s.update(sess, func(sess *Session) {
		var c screens.Cascade
		if c, selErr = sess.cascade(target); selErr == nil {
			sess.setCascade(target, c.SelectTechStack(techStackID))
		}
	})
	if selErr != nil {
		return s.fail("SelectTechStack", selErr)
	}
	return nil
}

// AddTaxonomy creates a category, then optionally a subcategory beneath it and a
// technology beneath that. It stops at the first failure.
func (s *Service) AddTaxonomy(ctx context.Context, sessionID string, form screens.TaxonomyForm) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	form, err = form.Validate()
	if err != nil {
		return s.fail("AddTaxonomy", err)
	}

	cat, err := s.backoffice.CreateCategory(ctx, form.Category)
	if err != nil {
		return s.fail("AddTaxonomy", err)
	}
	if form.Subcategory != "" {
		sub, err := s.backoffice.CreateSubcategory(ctx, cat.ID, form.Subcategory)
		if err != nil {
			return s.fail("AddTaxonomy", err)
		}
		if form.Technology != "" {
			if _, err := s.backoffice.CreateTechStack(ctx, sub.ID, form.Technology); err != nil {
				return s.fail("AddTaxonomy", err)
			}
		}
	}

	s.update(sess, func(sess *Session) {
		sess.advisory = sess.advisory.SetNotice("Tech hierarchy added successfully!")
	})
	return s.LoadCategories(ctx, sessionID)
}
