package screens

import (
	"fmt"
	"strings"

	"advisory-console/internal/models"
	"advisory-console/pkg/email"
)

// ClientConfig is the technology assignment modal for one client.
type ClientConfig struct {
	Client      models.Client                 `json:"client"`
	Assignments []models.ClientTechAssignment `json:"assignments"`
	Cascade     Cascade                       `json:"cascade"`
	Notice      string                        `json:"notice"`
}

// OpenClientConfig starts configuring c with the given categories available.
func OpenClientConfig(c models.Client, categories []models.Category) ClientConfig {
	return ClientConfig{Client: c, Cascade: Cascade{Categories: categories}}
}

// AssignmentsLoaded applies the client's assignments. A failed load shows none.
func (cc ClientConfig) AssignmentsLoaded(list []models.ClientTechAssignment) ClientConfig {
	if list == nil {
		list = []models.ClientTechAssignment{}
	}
	cc.Assignments = list
	return cc
}

func (cc ClientConfig) SetCascade(c Cascade) ClientConfig {
	cc.Cascade = c
	return cc
}

// AssignRequest builds the assignment for the current selection. At least one
// level of the cascade must be chosen.
func (cc ClientConfig) AssignRequest() (models.TechAssignmentRequest, error) {
	c := cc.Cascade
	if c.TechStackID == 0 && c.SubcategoryID == 0 && c.CategoryID == 0 {
		return models.TechAssignmentRequest{}, Invalid("Please select a tech stack, subcategory, or category.")
	}

	req := models.TechAssignmentRequest{Version: models.AnyVersion}
	if c.TechStackID != 0 {
		id := c.TechStackID
		req.TechStackID = &id
	}
	if c.SubcategoryID != 0 {
		id := c.SubcategoryID
		req.SubcategoryID = &id
	}
	if name := c.CategoryName(); name != "" {
		req.CategoryName = &name
	}
	return req, nil
}

// Assigned resets the cascade after a successful assignment.
func (cc ClientConfig) Assigned() ClientConfig {
	cc.Cascade = cc.Cascade.Reset()
	cc.Notice = "Technology assigned successfully!"
	return cc
}

// FindAssignment returns the listed assignment with the given id.
func (cc ClientConfig) FindAssignment(id int) (models.ClientTechAssignment, bool) {
	for _, a := range cc.Assignments {
		if a.ID == id {
			return a, true
		}
	}
	return models.ClientTechAssignment{}, false
}

// DeleteScope resolves which endpoint owns an assignment.
func (cc ClientConfig) DeleteScope(id int) (models.ClientTechScope, error) {
	a, ok := cc.FindAssignment(id)
	if !ok {
		return nil, Invalid("Assignment %d not found.", id)
	}
	scope, err := a.Scope()
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("Unknown tech type: %s", a.Type), Err: err}
	}
	return scope, nil
}

// ContactRequest validates an address to attach to an assignment.
func (cc ClientConfig) ContactRequest(assignmentID int, address string) (string, error) {
	if _, ok := cc.FindAssignment(assignmentID); !ok {
		return "", Invalid("Assignment %d not found.", assignmentID)
	}
	address = strings.TrimSpace(address)
	if err := email.ValidateAddress(address); err != nil {
		return "", &ValidationError{Message: "Please enter a valid email address.", Err: err}
	}
	return address, nil
}

func (cc ClientConfig) SetNotice(msg string) ClientConfig {
	cc.Notice = msg
	return cc
}

// TaxonomyForm adds a category with an optional subcategory and technology beneath it.
type TaxonomyForm struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Technology  string `json:"technology"`
}

// Validate requires a category name. A technology without a subcategory is ignored.
func (f TaxonomyForm) Validate() (TaxonomyForm, error) {
	f.Category = strings.TrimSpace(f.Category)
	f.Subcategory = strings.TrimSpace(f.Subcategory)
	f.Technology = strings.TrimSpace(f.Technology)
	if f.Category == "" {
		return f, Invalid("Please enter a category name.")
	}
	if f.Subcategory == "" {
		f.Technology = ""
	}
	return f, nil
}
