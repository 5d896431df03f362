package screens

import "advisory-console/internal/models"

// Cascade is the category → subcategory → technology selection shared by the
// authoring form and the client configuration modal. Choosing a parent resets
// every choice below it.
type Cascade struct {
	Categories    []models.Category    `json:"categories"`
	CategoryID    int                  `json:"category_id"`
	Subcategories []models.Subcategory `json:"subcategories"`
	SubcategoryID int                  `json:"subcategory_id"`
	TechStacks    []models.TechStack   `json:"tech_stacks"`
	TechStackID   int                  `json:"tech_stack_id"`
}

func (c Cascade) CategoriesLoaded(categories []models.Category) Cascade {
	c.Categories = categories
	return c
}

func (c Cascade) SelectCategory(id int) Cascade {
	c.CategoryID = id
	c.Subcategories = nil
	c.SubcategoryID = 0
	c.TechStacks = nil
	c.TechStackID = 0
	return c
}

// SubcategoriesLoaded applies a listing fetched for categoryID. A listing for a
// category that is no longer selected is dropped.
func (c Cascade) SubcategoriesLoaded(categoryID int, subs []models.Subcategory) Cascade {
	if categoryID != c.CategoryID {
		return c
	}
	c.Subcategories = subs
	return c
}

func (c Cascade) SelectSubcategory(id int) Cascade {
	c.SubcategoryID = id
	c.TechStacks = nil
	c.TechStackID = 0
	return c
}

// TechStacksLoaded applies a listing fetched for subcategoryID, dropping stale ones.
func (c Cascade) TechStacksLoaded(subcategoryID int, stacks []models.TechStack) Cascade {
	if subcategoryID != c.SubcategoryID {
		return c
	}
	c.TechStacks = stacks
	return c
}

func (c Cascade) SelectTechStack(id int) Cascade {
	c.TechStackID = id
	return c
}

// Reset clears every choice but keeps the loaded categories.
func (c Cascade) Reset() Cascade {
	return Cascade{Categories: c.Categories}
}

// CategoryName is the name of the selected category, or "" when none is selected.
func (c Cascade) CategoryName() string {
	if cat, ok := models.FindCategory(c.Categories, c.CategoryID); ok {
		return cat.Name
	}
	return ""
}
