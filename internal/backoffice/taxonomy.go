package backoffice

import (
	"context"
	"fmt"
	"net/http"

	"advisory-console/internal/models"
)

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.doJSON(ctx, http.MethodGet, "/api/categories", nil, nil, &categories, nil); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) ListSubcategories(ctx context.Context, categoryID int) ([]models.Subcategory, error) {
	var subs []models.Subcategory
	path := fmt.Sprintf("/api/subcategories/%d", categoryID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &subs, nil); err != nil {
		return nil, err
	}
	return subs, nil
}

func (c *Client) ListTechStacks(ctx context.Context, subcategoryID int) ([]models.TechStack, error) {
	var stacks []models.TechStack
	path := fmt.Sprintf("/api/tech-stacks/%d", subcategoryID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &stacks, nil); err != nil {
		return nil, err
	}
	return stacks, nil
}

func (c *Client) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	var created models.Category
	in := map[string]string{"name": name}
	if err := c.doJSON(ctx, http.MethodPost, "/api/categories", nil, in, &created, nil); err != nil {
		return models.Category{}, err
	}
	return created, nil
}

func (c *Client) CreateSubcategory(ctx context.Context, categoryID int, name string) (models.Subcategory, error) {
	var created models.Subcategory
	in := models.Subcategory{CategoryID: categoryID, Name: name}
	if err := c.doJSON(ctx, http.MethodPost, "/api/subcategories", nil, in, &created, nil); err != nil {
		return models.Subcategory{}, err
	}
	return created, nil
}

func (c *Client) CreateTechStack(ctx context.Context, subcategoryID int, name string) (models.TechStack, error) {
	var created models.TechStack
	in := models.TechStack{SubcategoryID: subcategoryID, Name: name}
	if err := c.doJSON(ctx, http.MethodPost, "/api/tech-stacks", nil, in, &created, nil); err != nil {
		return models.TechStack{}, err
	}
	return created, nil
}

// ClientTech lists a client's technology assignments with their contacts.
func (c *Client) ClientTech(ctx context.Context, clientID int) ([]models.ClientTechAssignment, error) {
	var assignments []models.ClientTechAssignment
	path := fmt.Sprintf("/api/clients/%d/tech", clientID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &assignments, nil); err != nil {
		return nil, err
	}
	return assignments, nil
}

// AssignTech links a technology, subcategory or category to a client.
func (c *Client) AssignTech(ctx context.Context, clientID int, req models.TechAssignmentRequest) (models.MessageResponse, error) {
	var resp models.MessageResponse
	path := fmt.Sprintf("/api/clients/%d/tech", clientID)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, req, &resp, nil); err != nil {
		return models.MessageResponse{}, err
	}
	return resp, nil
}

// DeleteAssignment removes an assignment through the endpoint owning its scope.
func (c *Client) DeleteAssignment(ctx context.Context, scope models.ClientTechScope) error {
	return c.doJSON(ctx, http.MethodDelete, assignmentPath(scope), nil, nil, nil, nil)
}

func assignmentPath(scope models.ClientTechScope) string {
	switch s := scope.(type) {
	case models.TechStackScope:
		return fmt.Sprintf("/api/client-tech/%d", s.ID)
	case models.SubcategoryScope:
		return fmt.Sprintf("/api/client-subcategory/%d", s.ID)
	case models.CategoryScope:
		return fmt.Sprintf("/api/client-category/%d", s.ID)
	}
	panic(fmt.Sprintf("unhandled client tech scope %T", scope))
}

// AddAssignmentContact attaches a notification address to an assignment.
func (c *Client) AddAssignmentContact(ctx context.Context, assignmentID int, email string) error {
	path := fmt.Sprintf("/api/client-tech/%d/contacts", assignmentID)
	in := map[string]string{"email": email}
	return c.doJSON(ctx, http.MethodPost, path, nil, in, nil, nil)
}
