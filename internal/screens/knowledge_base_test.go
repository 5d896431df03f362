package screens

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisory-console/internal/models"
)

func entries(n int) []models.KBEntry {
	out := make([]models.KBEntry, n)
	for i := range out {
		out[i] = models.KBEntry{ID: models.FlexString(fmt.Sprint(i + 1))}
	}
	return out
}

func TestSearchCache_NormalizesKey(t *testing.T) {
	c := NewSearchCache()
	c.Put("  VPN Drops ", entries(2))

	got, ok := c.Get("vpn drops")
	require.True(t, ok)
	assert.Len(t, got, 2)
	_, ok = c.Get("vpn")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestKnowledgeBase_Pagination(t *testing.T) {
	kb := NewKnowledgeBase(15).Loaded(entries(40))
	assert.Equal(t, 3, kb.PageCount())
	assert.Len(t, kb.PageEntries(), 15)

	kb = kb.SetPage(3)
	assert.Len(t, kb.PageEntries(), 10)
	assert.Equal(t, models.FlexString("31"), kb.PageEntries()[0].ID)

	assert.Equal(t, 3, kb.SetPage(99).Page)
	assert.Equal(t, 1, kb.SetPage(0).Page)
	assert.Equal(t, 1, NewKnowledgeBase(15).PageCount())
}

func TestKnowledgeBase_SearchAndBack(t *testing.T) {
	kb := NewKnowledgeBase(15).Loaded(entries(40)).SetPage(2)
	kb = kb.SearchResults("vpn", entries(3))
	assert.True(t, kb.ShowingSearch)
	assert.Equal(t, 1, kb.Page)

	kb = kb.GoBack()
	assert.Empty(t, kb.Query)
	assert.False(t, kb.ShowingSearch)
}

func TestKnowledgeBase_DropsStaleLoads(t *testing.T) {
	kb, first := NewKnowledgeBase(15).StartLoad()
	kb, second := kb.StartLoad()

	kb, ok := kb.SearchLoaded(second, "dns", entries(2))
	require.True(t, ok)
	kb, ok = kb.SearchLoaded(first, "vpn", entries(9))
	assert.False(t, ok)
	assert.Equal(t, "dns", kb.Query)
	assert.Len(t, kb.Entries, 2)

	_, ok = kb.ArchiveLoaded(first, entries(40))
	assert.False(t, ok)

	kb = kb.Deleted([]models.FlexString{"1"}, entries(1))
	_, ok = kb.ArchiveLoaded(second, entries(40))
	assert.False(t, ok)
}

func TestKnowledgeBase_DeleteJumpsToPage(t *testing.T) {
	kb := NewKnowledgeBase(15).Loaded(entries(60)).ToggleDeleteMode()
	kb = kb.ToggleSelection("40").ToggleSelection("31").ToggleSelection("50")

	ids, err := kb.DeleteRequest()
	require.NoError(t, err)
	assert.Equal(t, []models.FlexString{"40", "31", "50"}, ids)

	kb = kb.Deleted(ids, entries(57))
	assert.Equal(t, 3, kb.Page)
	assert.Empty(t, kb.Selected)
	assert.False(t, kb.DeleteMode)
}

func TestKnowledgeBase_DeletePageAtLeastOne(t *testing.T) {
	kb := NewKnowledgeBase(15).Loaded(entries(5)).ToggleSelection("abc")
	kb = kb.Deleted([]models.FlexString{"abc"}, entries(5))
	assert.Equal(t, 1, kb.Page)
}

func TestKnowledgeBase_EmptyDelete(t *testing.T) {
	_, err := NewKnowledgeBase(15).DeleteRequest()
	assert.True(t, IsValidation(err))
}

func TestValidateSolutionUpload(t *testing.T) {
	assert.Error(t, ValidateSolutionUpload("", []byte("x")))
	assert.Error(t, ValidateSolutionUpload("4", nil))
	assert.NoError(t, ValidateSolutionUpload("4", []byte("x")))
}
