package screens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisory-console/internal/models"
)

func configWithAssignments() ClientConfig {
	cc := OpenClientConfig(models.Client{ID: 1, Name: "Acme"}, []models.Category{{ID: 3, Name: "Operating Systems"}})
	return cc.AssignmentsLoaded([]models.ClientTechAssignment{
		{ID: 10, Type: "tech_stack", Name: "Ubuntu"},
		{ID: 11, Type: "category", Name: "Firewalls"},
		{ID: 12, Type: "vendor", Name: "Legacy"},
	})
}

func TestAssignRequest(t *testing.T) {
	cc := configWithAssignments()
	_, err := cc.AssignRequest()
	assert.True(t, IsValidation(err))

	cc = cc.SetCascade(cc.Cascade.SelectCategory(3).SelectSubcategory(7).SelectTechStack(9))
	req, err := cc.AssignRequest()
	require.NoError(t, err)
	require.NotNil(t, req.TechStackID)
	require.NotNil(t, req.SubcategoryID)
	require.NotNil(t, req.CategoryName)
	assert.Equal(t, 9, *req.TechStackID)
	assert.Equal(t, 7, *req.SubcategoryID)
	assert.Equal(t, "Operating Systems", *req.CategoryName)
	assert.Equal(t, "*", req.Version)

	cc = cc.Assigned()
	assert.Zero(t, cc.Cascade.CategoryID)
	assert.Len(t, cc.Cascade.Categories, 1)
}

func TestAssignRequest_CategoryOnly(t *testing.T) {
	cc := configWithAssignments()
	cc = cc.SetCascade(cc.Cascade.SelectCategory(3))
	req, err := cc.AssignRequest()
	require.NoError(t, err)
	assert.Nil(t, req.TechStackID)
	assert.Nil(t, req.SubcategoryID)
	assert.Equal(t, "Operating Systems", *req.CategoryName)
}

func TestDeleteScope(t *testing.T) {
	cc := configWithAssignments()

	scope, err := cc.DeleteScope(10)
	require.NoError(t, err)
	assert.Equal(t, models.TechStackScope{ID: 10}, scope)

	scope, err = cc.DeleteScope(11)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryScope{ID: 11}, scope)

	_, err = cc.DeleteScope(12)
	require.Error(t, err)
	assert.Equal(t, "Unknown tech type: vendor", err.Error())
	assert.ErrorIs(t, err, models.ErrUnknownTechType)
}

func TestContactRequest(t *testing.T) {
	cc := configWithAssignments()

	_, err := cc.ContactRequest(10, "not-an-email")
	assert.True(t, IsValidation(err))

	addr, err := cc.ContactRequest(10, " a@b.com ")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", addr)

	_, err = cc.ContactRequest(99, "a@b.com")
	assert.True(t, IsValidation(err))
}

func TestEscalationRegistry_ContactRequest(t *testing.T) {
	r := NewEscalationRegistry().Reset(1)

	_, err := r.ContactRequest("not-an-email", "L1")
	assert.True(t, IsValidation(err))

	_, err = r.ContactRequest("a@b.com", "L4")
	assert.True(t, IsValidation(err))

	req, err := r.ContactRequest("a@b.com", "L1")
	require.NoError(t, err)
	assert.Equal(t, models.EscalationContactRequest{Email: "a@b.com", Level: models.LevelL1}, req)

	_, err = NewEscalationRegistry().ContactRequest("a@b.com", "L1")
	assert.True(t, IsValidation(err))
}

func TestTaxonomyForm_Validate(t *testing.T) {
	_, err := TaxonomyForm{Subcategory: "x"}.Validate()
	assert.True(t, IsValidation(err))

	f, err := TaxonomyForm{Category: " OS ", Technology: "Ubuntu"}.Validate()
	require.NoError(t, err)
	assert.Equal(t, TaxonomyForm{Category: "OS"}, f)
}
